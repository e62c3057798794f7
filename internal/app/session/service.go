// Package session owns the in-memory hand-entry sessions. Each session wraps
// one engine behind its own lock; the service maps ids to sessions and sweeps
// out sessions nobody has touched within the idle TTL.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hand-forge/internal/engine"
	"hand-forge/internal/store"
)

// Session is one hand being entered. All engine access goes through With so
// the per-session lock serializes handlers and the janitor sees fresh
// last-touched times.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	eng      *engine.Engine
	lastSeen time.Time
}

// With runs fn while holding the session lock and refreshes the idle clock.
func (s *Session) With(fn func(e *engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.eng)
}

type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      zerolog.Logger
}

func NewService(idleTTL time.Duration) *Service {
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}
	return &Service{
		sessions: make(map[string]*Session),
		ttl:      idleTTL,
		log:      log.With().Str("component", "sessions").Logger(),
	}
}

// Create starts a session around a freshly configured engine.
func (s *Service) Create(cfg engine.Config) (*Session, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &Session{
		ID:       store.NewID(),
		Created:  now,
		eng:      eng,
		lastSeen: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.log.Info().Str("session_id", sess.ID).Int("table_size", cfg.TableSize).Msg("session created")
	return sess, nil
}

func (s *Service) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) Remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps idle sessions until the context ends.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.sweep(now)
			}
		}
	}()
}

func (s *Service) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
			s.log.Info().Str("session_id", id).Dur("idle", idle).Msg("session expired")
		}
	}
}
