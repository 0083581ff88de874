package redis_store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkourer10/yapper/internal/conversation"
	"github.com/parkourer10/yapper/internal/conversation/journal"
)

// Store keeps per-user histories in capped Redis lists so the context window
// survives process restarts. The Store contract still holds: read and append
// failures are logged and the caller sees an empty history or a dropped turn,
// never an error.
type Store struct {
	client  *redis.Client
	limit   int
	journal *journal.Journal
	logger  *log.Logger
}

func NewStore(addr, password string, db, limit int, j *journal.Journal) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{
		client:  rdb,
		limit:   limit,
		journal: j,
		logger:  log.New(log.Writer(), "[HISTORY-REDIS] ", log.LstdFlags),
	}
}

func key(userID string) string { return fmt.Sprintf("yapper:history:%s", userID) }

func (s *Store) History(userID string) []conversation.Turn {
	ctx := context.Background()
	raw, err := s.client.LRange(ctx, key(userID), 0, -1).Result()
	if err != nil {
		s.logger.Printf("read history for user %s: %v", userID, err)
		return nil
	}
	out := make([]conversation.Turn, 0, len(raw))
	for _, item := range raw {
		var turn conversation.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			s.logger.Printf("skip malformed turn for user %s: %v", userID, err)
			continue
		}
		out = append(out, turn)
	}
	return out
}

func (s *Store) Append(userID, userText, responseText string) {
	turn := conversation.Turn{User: userText, Response: responseText, Timestamp: time.Now()}

	data, err := json.Marshal(turn)
	if err != nil {
		s.logger.Printf("marshal turn for user %s: %v", userID, err)
		return
	}

	ctx := context.Background()
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key(userID), data)
	pipe.LTrim(ctx, key(userID), int64(-s.limit), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Printf("append history for user %s: %v", userID, err)
	}

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
