package inmemory

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/parkourer10/yapper/internal/conversation/journal"
)

func TestHistory_EmptyForUnknownUser(t *testing.T) {
	t.Parallel()
	s := NewStore(10, nil)
	if got := s.History("nobody"); len(got) != 0 {
		t.Fatalf("got %d turns, want 0", len(got))
	}
}

func TestAppend_CapAndFIFO(t *testing.T) {
	t.Parallel()
	s := NewStore(10, nil)
	for i := 0; i < 25; i++ {
		s.Append("u1", fmt.Sprintf("msg-%d", i), "resp")
	}
	history := s.History("u1")
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	if history[0].User != "msg-15" {
		t.Fatalf("oldest retained turn is %q, want msg-15", history[0].User)
	}
	if history[9].User != "msg-24" {
		t.Fatalf("newest turn is %q, want msg-24", history[9].User)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatal("turns are not in insertion order")
		}
	}
}

func TestAppend_UsersAreIndependent(t *testing.T) {
	t.Parallel()
	s := NewStore(10, nil)
	s.Append("alice", "hi", "hello")
	s.Append("bob", "yo", "hey")
	if len(s.History("alice")) != 1 || len(s.History("bob")) != 1 {
		t.Fatal("histories should be tracked per user")
	}
	if s.History("alice")[0].User != "hi" {
		t.Fatal("alice's history holds the wrong turn")
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	t.Parallel()
	s := NewStore(10, nil)
	s.Append("u1", "original", "resp")
	got := s.History("u1")
	got[0].User = "mutated"
	if s.History("u1")[0].User != "original" {
		t.Fatal("History() must return a copy, not the backing slice")
	}
}

func TestAppend_WritesJournal(t *testing.T) {
	t.Parallel()
	j := journal.New(filepath.Join(t.TempDir(), "log.json"))
	s := NewStore(10, j)
	s.Append("u1", "hi", "hello")

	// The journal write is asynchronous; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if entries := j.Entries(); len(entries) == 1 {
			if entries[0].UserID != "u1" || entries[0].Response != "hello" {
				t.Fatalf("unexpected journal entry: %+v", entries[0])
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("journal entry never appeared")
}
