package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

// LeaderboardRepository reads the leaderboard view. Ties fall back to the
// first scored row, then user id.
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) List(ctx context.Context) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select("*").
		From("leaderboard").
		OrderBy("total_points DESC", "first_scored_at ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build leaderboard query: %w", err)
	}

	var rows []leaderboardViewModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Entry{
			UserID:         row.UserID,
			DisplayName:    row.DisplayName,
			Email:          row.Email,
			TotalPoints:    row.TotalPoints,
			CorrectWinners: row.CorrectWinners,
			CorrectScores:  row.CorrectScores,
			MatchesScored:  row.MatchesScored,
		})
	}
	return out, nil
}
