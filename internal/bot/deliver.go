package bot

import (
	"regexp"
	"strings"
	"time"

	"github.com/parkourer10/yapper/internal/telemetry"
)

const (
	// singleMessageLimit is the longest content sent as one reply.
	singleMessageLimit = 1500
	// pacingDelay separates successive chunk sends so multi-part replies
	// render as a sequence instead of tripping platform rate limits.
	pacingDelay = 500 * time.Millisecond
)

var paragraphBreak = regexp.MustCompile(`\n\n+`)

// ReplySink delivers one chunk of content as a reply with the replied-user
// mention suppressed.
type ReplySink interface {
	Reply(content string) error
}

// Deliverer splits response text on blank-line boundaries and sends the
// pieces in source order, pacing between sends. Paragraphs are never merged
// or reordered once split.
type Deliverer struct {
	pacing  time.Duration
	sleep   func(time.Duration)
	metrics *telemetry.Metrics
}

func NewDeliverer(metrics *telemetry.Metrics) *Deliverer {
	return &Deliverer{pacing: pacingDelay, sleep: time.Sleep, metrics: metrics}
}

// Deliver sends content through sink. Single short paragraphs go out as one
// reply; anything else goes out one reply per non-empty trimmed paragraph
// with a pacing delay after each send. Empty paragraphs are skipped and do
// not consume a pacing slot.
func (d *Deliverer) Deliver(content string, sink ReplySink) error {
	paragraphs := paragraphBreak.Split(content, -1)

	if len(paragraphs) == 1 && len(content) <= singleMessageLimit {
		if err := sink.Reply(content); err != nil {
			return err
		}
		d.count(1)
		return nil
	}

	for _, paragraph := range paragraphs {
		part := strings.TrimSpace(paragraph)
		if part == "" {
			continue
		}
		if err := sink.Reply(part); err != nil {
			return err
		}
		d.count(1)
		d.sleep(d.pacing)
	}
	return nil
}

// Pace blocks for one pacing slot. Used by the search command between
// followup embeds.
func (d *Deliverer) Pace() {
	d.sleep(d.pacing)
}

func (d *Deliverer) count(n int) {
	if d.metrics != nil {
		d.metrics.ChunksDelivered.Add(float64(n))
	}
}

// splitParagraphs returns the trimmed non-empty paragraphs of content in
// source order.
func splitParagraphs(content string) []string {
	var out []string
	for _, paragraph := range paragraphBreak.Split(content, -1) {
		if part := strings.TrimSpace(paragraph); part != "" {
			out = append(out, part)
		}
	}
	return out
}
