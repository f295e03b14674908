package memory

import (
	"context"
	"fmt"

	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/domain/user"
)

// LeaderboardRepository aggregates the score store on every read.
type LeaderboardRepository struct {
	scores scoring.Repository
	users  user.Repository
}

func NewLeaderboardRepository(scores scoring.Repository, users user.Repository) *LeaderboardRepository {
	return &LeaderboardRepository{scores: scores, users: users}
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := r.scores.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	entries := leaderboard.Aggregate(rows)
	if r.users == nil {
		return entries, nil
	}

	for i := range entries {
		profile, ok, err := r.users.Get(ctx, entries[i].UserID)
		if err != nil {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		if ok {
			entries[i].DisplayName = profile.DisplayName
			entries[i].Email = profile.Email
		}
	}
	return entries, nil
}
