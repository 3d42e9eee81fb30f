package service

import (
	"context"

	"github.com/Faeyinn/lestari.in---beyonder-team/internal/model"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/session"
	"github.com/Faeyinn/lestari.in---beyonder-team/internal/upstream"
)

// LeaderboardService reads the reporter leaderboard from the platform.
type LeaderboardService struct {
	client  *upstream.Client
	session *session.Session
}

func NewLeaderboardService(client *upstream.Client, sess *session.Session) *LeaderboardService {
	return &LeaderboardService{client: client, session: sess}
}

// Top returns the leaderboard, truncated to limit entries when limit > 0.
// The sidebar shows the top five.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]model.LeaderboardUser, error) {
	token := s.session.Access()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	users, err := s.client.FetchLeaderboard(ctx, token)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []model.LeaderboardUser{}
	}
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
