package journal

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// Entry is one persisted record in the durable conversation log. All users
// share a single append-oriented JSON array.
type Entry struct {
	UserID    string    `json:"userId"`
	User      string    `json:"user"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxEntriesPerUser bounds how many journal entries are retained per user.
const MaxEntriesPerUser = 10

// Journal mirrors recent turns to a single JSON file. Every Record is a
// serialized read-modify-write: load the collection (empty when the file is
// absent or corrupt), append, enforce the per-user cap, overwrite the file.
//
// Eviction removes the entry at the user's earliest array position, not the
// earliest by timestamp. With a single writer those coincide; the positional
// rule is kept because it is what readers of the log file expect.
type Journal struct {
	path   string
	mu     sync.Mutex
	logger *log.Logger
}

func New(path string) *Journal {
	return &Journal{
		path:   path,
		logger: log.New(log.Writer(), "[JOURNAL] ", log.LstdFlags),
	}
}

// Record appends one entry and prunes the user's oldest positional entry when
// the cap is exceeded. The returned error is for observability only; callers
// are expected to log it and carry on.
func (j *Journal) Record(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := j.load()
	entries = append(entries, entry)

	count := 0
	for _, e := range entries {
		if e.UserID == entry.UserID {
			count++
		}
	}
	if count > MaxEntriesPerUser {
		for i, e := range entries {
			if e.UserID == entry.UserID {
				entries = append(entries[:i], entries[i+1:]...)
				break
			}
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Entries returns the current journal contents, empty when the file is
// absent or unreadable.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.load()
}

func (j *Journal) load() []Entry {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Printf("read journal: %v", err)
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		j.logger.Printf("corrupt journal, starting empty: %v", err)
		return nil
	}
	return entries
}
