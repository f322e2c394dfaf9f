package cart

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/keepers-bakery/pkg/logger"
)

// ErrSessionRequired is returned when With is called without a session id.
var ErrSessionRequired = errors.New("session id required")

// Sessions keeps the open Store of every active shopper and serializes access
// to each one. Different sessions never block each other.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session
	slots   SlotProvider
	logg    *logger.Logger
	now     func() time.Time
}

type session struct {
	lock     chan struct{}
	store    *Store
	lastSeen time.Time
	refs     int
}

func NewSessions(slots SlotProvider, logg *logger.Logger) *Sessions {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Sessions{
		entries: make(map[string]*session),
		slots:   slots,
		logg:    logg,
		now:     time.Now,
	}
}

// With runs fn with exclusive use of the session's Store, opening it from its
// slot on first use. fn must not retain the Store after returning.
func (s *Sessions) With(ctx context.Context, sessionID string, fn func(*Store) error) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}

	entry := s.acquire(sessionID)
	defer s.release(entry)

	select {
	case entry.lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-entry.lock }()

	if entry.store == nil {
		ctx = s.logg.WithSessionID(ctx, sessionID)
		store, err := Open(ctx, s.slots.Slot(sessionID), s.logg)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart slot unreadable")
			return err
		}
		entry.store = store
	}
	return fn(entry.store)
}

// Sweep drops stores idle for longer than idle and returns how many were
// evicted. Their slots are untouched, so the next With re-reads them.
func (s *Sessions) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	evicted := 0
	for id, entry := range s.entries {
		if entry.refs > 0 || entry.lastSeen.After(cutoff) {
			continue
		}
		delete(s.entries, id)
		evicted++
	}
	return evicted
}

// Len reports how many sessions are held in memory.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) acquire(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		entry = &session{lock: make(chan struct{}, 1)}
		s.entries[sessionID] = entry
	}
	entry.refs++
	entry.lastSeen = s.now()
	return entry
}

func (s *Sessions) release(entry *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.refs--
	entry.lastSeen = s.now()
}
