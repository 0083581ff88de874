package inmemory

import (
	"log"
	"sync"
	"time"

	"github.com/parkourer10/yapper/internal/conversation"
	"github.com/parkourer10/yapper/internal/conversation/journal"
)

// Store keeps per-user bounded histories in a process-local map. Concurrent
// appends for the same user are last-write-wins; distinct users are
// independent.
type Store struct {
	limit    int
	journal  *journal.Journal
	logger   *log.Logger
	mu       sync.RWMutex
	sessions map[string][]conversation.Turn
}

func NewStore(limit int, j *journal.Journal) *Store {
	return &Store{
		limit:    limit,
		journal:  j,
		logger:   log.New(log.Writer(), "[HISTORY] ", log.LstdFlags),
		sessions: make(map[string][]conversation.Turn),
	}
}

func (s *Store) History(userID string) []conversation.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.sessions[userID]
	out := make([]conversation.Turn, len(history))
	copy(out, history)
	return out
}

func (s *Store) Append(userID, userText, responseText string) {
	turn := conversation.Turn{User: userText, Response: responseText, Timestamp: time.Now()}

	s.mu.Lock()
	history := append(s.sessions[userID], turn)
	if len(history) > s.limit {
		history = history[1:]
	}
	s.sessions[userID] = history
	s.mu.Unlock()

	if s.journal == nil {
		return
	}
	go func() {
		err := s.journal.Record(journal.Entry{
			UserID:    userID,
			User:      userText,
			Response:  responseText,
			Timestamp: turn.Timestamp,
		})
		if err != nil {
			s.logger.Printf("journal write for user %s: %v", userID, err)
		}
	}()
}
