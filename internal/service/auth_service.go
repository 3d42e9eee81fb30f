package service

import (
	"context"
	"log"
	"time"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"
)

// refreshWindow is how close to expiry the access token may get before
// EnsureFresh trades the refresh token for a new one.
const refreshWindow = 2 * time.Minute

// AuthService drives the login/refresh/logout flows. Authentication itself
// is the platform's job; this service only moves tokens between the upstream
// API and the process-wide session.
type AuthService struct {
	client  *upstream.Client
	session *session.Session
}

func NewAuthService(client *upstream.Client, sess *session.Session) *AuthService {
	return &AuthService{client: client, session: sess}
}

// Login exchanges credentials for a token pair and stores it in the session.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	pair, err := s.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	s.session.Set(pair.Access, pair.Refresh)
	log.Printf("admin logged in: %s", req.Email)
	return pair, nil
}

// RefreshToken replaces the stored access token using the refresh token.
func (s *AuthService) RefreshToken(ctx context.Context) (string, error) {
	refresh := s.session.Refresh()
	if refresh == "" {
		return "", ErrNotAuthenticated
	}

	access, err := s.client.RefreshToken(ctx, refresh)
	if err != nil {
		return "", err
	}

	s.session.SetAccess(access)
	return access, nil
}

// EnsureFresh refreshes the access token when it is close to expiry. Callers
// run it before long report fetches; a refresh failure is reported but the
// stored token stays usable until the upstream rejects it.
func (s *AuthService) EnsureFresh(ctx context.Context) error {
	if !s.session.Authenticated() {
		return ErrNotAuthenticated
	}
	if !s.session.ExpiresWithin(refreshWindow) {
		return nil
	}

	_, err := s.RefreshToken(ctx)
	return err
}

// Logout drops the token pair. Nothing is sent upstream.
func (s *AuthService) Logout() {
	s.session.Clear()
}
