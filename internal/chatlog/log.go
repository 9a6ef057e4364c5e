// Package chatlog holds the shared chat history: an append-only, ordered,
// in-memory sequence of messages. Readers only ever see the most recent
// window (callers use 50), but the full log is retained so the persistence
// layer can snapshot everything that was said.
package chatlog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/partage-labs/partage/internal/domain"
)

// DefaultRecentLimit is the window size exposed by the message history
// endpoint.
const DefaultRecentLimit = 50

// Log is the append-only chat message log.
type Log struct {
	mu      sync.RWMutex
	entries []domain.Message
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// NewFrom seeds a log with previously persisted messages, preserving their
// order and identifiers.
func NewFrom(messages []domain.Message) *Log {
	l := &Log{entries: make([]domain.Message, len(messages))}
	copy(l.entries, messages)
	return l
}

// Append adds msg as the newest entry and returns the stored value.
// A zero ID, timestamp, or direction is filled in under the same lock that
// orders the append, so identifiers are unique and insertion order matches
// call order.
func (l *Log) Append(msg domain.Message) domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	if msg.Direction == "" {
		msg.Direction = domain.DirectionOutgoing
	}

	l.entries = append(l.entries, msg)
	return msg
}

// Recent returns a snapshot of at most the last limit messages, oldest first.
// A non-positive limit yields an empty slice.
func (l *Log) Recent(limit int) []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		return []domain.Message{}
	}
	start := len(l.entries) - limit
	if start < 0 {
		start = 0
	}

	out := make([]domain.Message, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Snapshot returns a copy of the entire log, oldest first. Used by the
// persistence layer; API readers go through Recent.
func (l *Log) Snapshot() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Message, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of messages ever appended.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
