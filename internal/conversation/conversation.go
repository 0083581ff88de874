package conversation

import "time"

// Turn is one exchange: the user's message (mention markup stripped) and the
// bot's response. Immutable once created.
type Turn struct {
	User      string    `json:"user"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Store holds the per-user bounded conversation history. Histories are
// ordered oldest first and never exceed the store's limit; the oldest turn is
// evicted first. Append never fails the caller: persistence problems are
// logged inside the implementation and swallowed.
type Store interface {
	// History returns a copy of the user's current history, empty if none.
	History(userID string) []Turn
	// Append records a new turn with the current timestamp and triggers an
	// asynchronous durable-journal write.
	Append(userID, userText, responseText string)
}
