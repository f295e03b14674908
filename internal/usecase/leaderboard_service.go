package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/thedyrex/pickems/internal/domain/leaderboard"
)

type LeaderboardService struct {
	repo leaderboard.Repository
}

func NewLeaderboardService(repo leaderboard.Repository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

func (s *LeaderboardService) List(ctx context.Context) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return items, nil
}

// GetUserRank returns the 1-based leaderboard position. Users without any
// scored pick have no rank.
func (s *LeaderboardService) GetUserRank(ctx context.Context, userID string) (int, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetUserRank")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, false, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("list leaderboard: %w", err)
	}

	rank, ok := leaderboard.Rank(items, userID)
	return rank, ok, nil
}
