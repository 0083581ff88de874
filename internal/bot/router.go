package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/parkourer10/yapper/internal/conversation"
	"github.com/parkourer10/yapper/internal/prompt"
	"github.com/parkourer10/yapper/internal/search"
	"github.com/parkourer10/yapper/internal/telemetry"
)

// pipelineErrorReply is the only text users see when the mention pipeline
// fails; details stay in the log.
const pipelineErrorReply = "Error occurred."

// searchErrorReply is the fixed text the search command shows on failure.
const searchErrorReply = "Sorry, I encountered an error while searching. Please try again later."

var mentionToken = regexp.MustCompile(`<@!?\d+>`)

// Completer is the slice of the completion provider the router needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// Searcher runs the web search pipeline.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Response, error)
}

// MentionEvent is an inbound channel message, decoupled from the gateway
// library so the pipeline can be driven in tests.
type MentionEvent struct {
	AuthorID    string
	AuthorIsBot bool
	Content     string
}

// MessageContext is what the mention pipeline can do with the originating
// message: signal typing and send paced replies.
type MessageContext interface {
	ReplySink
	Typing()
}

// InteractionContext is what the command handlers can do with a slash
// command invocation.
type InteractionContext interface {
	Defer() error
	EditText(content string) error
	EditEmbed(embed *discordgo.MessageEmbed) error
	Followup(embed *discordgo.MessageEmbed) error
	RespondEmbed(embed *discordgo.MessageEmbed) error
}

// Router dispatches inbound mention messages and slash commands through the
// conversation, completion, search and delivery components.
type Router struct {
	store        conversation.Store
	llm          Completer
	searcher     Searcher
	deliver      *Deliverer
	systemPrompt string
	metrics      *telemetry.Metrics
	logger       *log.Logger
}

func NewRouter(store conversation.Store, llm Completer, searcher Searcher, deliver *Deliverer, metrics *telemetry.Metrics) *Router {
	return &Router{
		store:        store,
		llm:          llm,
		searcher:     searcher,
		deliver:      deliver,
		systemPrompt: prompt.DefaultSystemPrompt,
		metrics:      metrics,
		logger:       log.New(log.Writer(), "[ROUTER] ", log.LstdFlags),
	}
}

// HandleMention runs the full response pipeline for one channel message.
// Messages from bots, messages without the bot's mention token, and messages
// that are empty after stripping mentions produce no outbound calls. Any
// failure past that point yields exactly one fixed-text error reply; the
// process never dies for a single message. Handlers run on gateway dispatch
// goroutines, so a panic anywhere in the pipeline is recovered here.
func (r *Router) HandleMention(ctx context.Context, botID string, ev MentionEvent, mc MessageContext) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Printf("mention pipeline panic from %s: %v", ev.AuthorID, p)
			if err := mc.Reply(pipelineErrorReply); err != nil {
				r.logger.Printf("send error reply: %v", err)
			}
		}
	}()

	if ev.AuthorIsBot {
		return
	}
	if !strings.Contains(ev.Content, "<@"+botID+">") {
		return
	}
	userText := strings.TrimSpace(mentionToken.ReplaceAllString(ev.Content, ""))
	if userText == "" {
		return
	}

	pipeline := uuid.NewString()
	if r.metrics != nil {
		r.metrics.MentionsHandled.Inc()
	}

	mc.Typing()

	history := r.store.History(ev.AuthorID)
	response := r.complete(ctx, prompt.Format(r.systemPrompt, history, userText))
	r.store.Append(ev.AuthorID, userText, response)

	if err := r.deliver.Deliver(response, mc); err != nil {
		r.logger.Printf("[%s] deliver reply to %s: %v", pipeline, ev.AuthorID, err)
		if err := mc.Reply(pipelineErrorReply); err != nil {
			r.logger.Printf("[%s] send error reply: %v", pipeline, err)
		}
	}
}

// HandleSearch serves the /search command: defer, run the search pipeline,
// ask the model for a paragraph-structured explanation, then emit a title
// embed followed by one paced embed per paragraph labeled with its position.
func (r *Router) HandleSearch(ctx context.Context, query string, ic InteractionContext) {
	pipeline := uuid.NewString()
	defer func() {
		if p := recover(); p != nil {
			r.logger.Printf("[%s] search pipeline panic for %q: %v", pipeline, query, p)
			if err := ic.EditText(searchErrorReply); err != nil {
				r.logger.Printf("[%s] edit error reply: %v", pipeline, err)
			}
		}
	}()

	if err := ic.Defer(); err != nil {
		r.logger.Printf("[%s] defer search reply: %v", pipeline, err)
		return
	}

	resp, err := r.searcher.Search(ctx, query)
	if err != nil {
		r.logger.Printf("[%s] search %q: %v", pipeline, query, err)
		r.countSearch("error")
		if err := ic.EditText(searchErrorReply); err != nil {
			r.logger.Printf("[%s] edit error reply: %v", pipeline, err)
		}
		return
	}
	r.countSearch("ok")

	serialized, _ := json.Marshal(resp.Results)
	summary := r.complete(ctx, fmt.Sprintf(
		`Based on these search results about "%s", provide a detailed explanation split into clear paragraphs: %s`,
		query, serialized))

	if err := ic.EditEmbed(searchTitleEmbed(query)); err != nil {
		r.logger.Printf("[%s] send title embed: %v", pipeline, err)
		return
	}

	paragraphs := splitParagraphs(summary)
	for i, part := range paragraphs {
		if err := ic.Followup(searchPartEmbed(part, i+1, len(paragraphs))); err != nil {
			r.logger.Printf("[%s] send part %d/%d: %v", pipeline, i+1, len(paragraphs), err)
			if err := ic.EditText(searchErrorReply); err != nil {
				r.logger.Printf("[%s] edit error reply: %v", pipeline, err)
			}
			return
		}
		r.deliver.Pace()
	}
}

// HandleHelp serves the /help command with a single static reference embed.
func (r *Router) HandleHelp(ic InteractionContext) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Printf("help handler panic: %v", p)
		}
	}()
	if err := ic.RespondEmbed(helpEmbed()); err != nil {
		r.logger.Printf("send help embed: %v", err)
	}
}

func (r *Router) complete(ctx context.Context, p string) string {
	if r.metrics != nil {
		r.metrics.Completions.Inc()
	}
	return r.llm.Complete(ctx, p)
}

func (r *Router) countSearch(outcome string) {
	if r.metrics != nil {
		r.metrics.Searches.WithLabelValues(outcome).Inc()
	}
}
