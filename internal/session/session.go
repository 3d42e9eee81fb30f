package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the process-wide holder of the admin's bearer token pair. It
// starts unauthenticated; only the login flow sets the pair and only logout
// clears it. Every component that needs a token reads it from here instead
// of carrying its own copy.
type Session struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func New() *Session {
	return &Session{}
}

// Set stores a freshly issued token pair.
func (s *Session) Set(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

// SetAccess replaces only the access token, keeping the refresh token. Used
// by the token refresh flow.
func (s *Session) SetAccess(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
}

func (s *Session) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// ExpiresWithin reports whether the access token's exp claim falls inside the
// given window. The claim is read without signature verification; this
// service never validates tokens, it only decides when to refresh. A token
// that cannot be parsed or has no exp claim is treated as expiring so the
// caller refreshes it.
func (s *Session) ExpiresWithin(window time.Duration) bool {
	s.mu.RLock()
	access := s.access
	s.mu.RUnlock()

	if access == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return time.Until(exp.Time) < window
}
