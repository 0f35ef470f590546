// Package session holds the authenticated admin session of the console.
//
// A Session is created once at start-up and injected wherever the token or
// the signed-in user is needed. It replaces process-wide credentials: the
// HTTP adapter reads the bearer token from it on every request, and the
// cache repository lets the console restore it on the next run.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/models"
)

var (
	// ErrNoSession is returned by [Session.Restore] when nothing is cached.
	ErrNoSession = errors.New("no saved session")

	// ErrEmptyToken is returned by [Session.Init] for a blank token.
	ErrEmptyToken = errors.New("empty session token")
)

// Session is safe for concurrent use. The zero value is not usable; call
// [New].
type Session struct {
	mu      sync.RWMutex
	current *models.Session

	repo   store.SessionRepository
	logger *logger.Logger
	now    func() time.Time
}

// New returns an inactive session backed by repo. A nil repo keeps the
// session in memory only.
func New(repo store.SessionRepository, log *logger.Logger) *Session {
	return &Session{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Init activates the session for user and token and caches it. The session
// is active even if caching fails; the error is returned so the caller can
// report it.
func (s *Session) Init(ctx context.Context, user models.User, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	user.Password = ""
	current := &models.Session{User: user, Token: token, CreatedAt: s.now()}

	s.mu.Lock()
	s.current = current
	s.mu.Unlock()

	s.logger.Info().Str("account_id", user.AccountID).Msg("session started")

	if s.repo == nil {
		return nil
	}
	if err := s.repo.SaveSession(ctx, *current); err != nil {
		return fmt.Errorf("cache session: %w", err)
	}
	return nil
}

// Restore activates the cached session, if any.
func (s *Session) Restore(ctx context.Context) (models.User, error) {
	if s.repo == nil {
		return models.User{}, ErrNoSession
	}

	cached, err := s.repo.LoadSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.User{}, ErrNoSession
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load session: %w", err)
	}
	if cached.Token == "" {
		return models.User{}, ErrNoSession
	}

	s.mu.Lock()
	s.current = &cached
	s.mu.Unlock()

	s.logger.Info().Str("account_id", cached.User.AccountID).Msg("session restored")
	return cached.User, nil
}

// Teardown deactivates the session and drops the cached copy. The in-memory
// session is cleared even if the cache cannot be deleted.
func (s *Session) Teardown(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.logger.Info().Msg("session ended")

	if s.repo == nil {
		return nil
	}
	if err := s.repo.DeleteSession(ctx); err != nil {
		return fmt.Errorf("drop cached session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when inactive.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// User returns the signed-in user. The second result is false when the
// session is inactive.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.User{}, false
	}
	return s.current.User, true
}

// Active reports whether a session is in progress.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current != nil
}
