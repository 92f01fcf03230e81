package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// SessionStore keeps one checkout session per customer.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewSessionStore creates an empty store. A ttl of zero disables eviction.
func NewSessionStore(ttl time.Duration, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Start replaces any existing session of customerID with a fresh one for restaurant.
func (s *SessionStore) Start(customerID int64, restaurant *model.Restaurant) *Session {
	session := newSession(customerID, restaurant, uuid.NewString(), s.now())

	s.mu.Lock()
	s.sessions[customerID] = session
	s.mu.Unlock()

	return session
}

// Get returns the session of customerID and refreshes its idle timer.
func (s *SessionStore) Get(customerID int64) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[customerID]
	s.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrNoSession
	}
	session.touch(s.now())
	return session, nil
}

// Delete drops the session of customerID if it is still the given one.
// A nil session drops whatever is stored.
func (s *SessionStore) Delete(customerID int64, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[customerID]
	if !ok {
		return
	}
	if session == nil || current == session {
		delete(s.sessions, customerID)
	}
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle longer than the ttl and returns how many were removed.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("checkout sessions evicted", slog.Int("count", n))
			}
		}
	}
}
