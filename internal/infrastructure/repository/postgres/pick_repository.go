package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/pick"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Get(ctx context.Context, userID, matchID string) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").
		From("user_picks").
		Where(qb.Eq("user_id", userID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}
	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListForUser(ctx context.Context, userID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").
		From("user_picks").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at ASC", "match_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks for user query: %w", err)
	}
	return r.selectPicks(ctx, query, args)
}

func (r *PickRepository) ListByMatch(ctx context.Context, matchID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").
		From("user_picks").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("created_at ASC", "user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by match query: %w", err)
	}
	return r.selectPicks(ctx, query, args)
}

// SaveIfUnlocked upserts the pick only while the stored row has no team. The
// conditional DO UPDATE makes concurrent first picks race on the row lock and
// lets exactly one win.
func (r *PickRepository) SaveIfUnlocked(ctx context.Context, item pick.Pick) (bool, error) {
	insertModel := pickInsertModel{
		UserID:              item.UserID,
		MatchID:             item.MatchID,
		PickedTeamID:        nullString(item.PickedTeamID),
		PredictedTeam1Score: nullIntPtr(item.PredictedTeam1Score),
		PredictedTeam2Score: nullIntPtr(item.PredictedTeam2Score),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("user_picks", insertModel, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    picked_team_id = EXCLUDED.picked_team_id,
    predicted_team1_score = EXCLUDED.predicted_team1_score,
    predicted_team2_score = EXCLUDED.predicted_team2_score,
    updated_at = EXCLUDED.updated_at
WHERE user_picks.picked_team_id IS NULL
RETURNING user_id`)
	if err != nil {
		return false, fmt.Errorf("build save pick query: %w", err)
	}

	var userID string
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&userID); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("save pick: %w", err)
	}
	return true, nil
}

func (r *PickRepository) DeleteByMatchIDs(ctx context.Context, matchIDs []string) error {
	query, args, err := qb.DeleteFrom("user_picks").
		Where(qb.InStrings("match_id", matchIDs)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}
	return nil
}

func (r *PickRepository) selectPicks(ctx context.Context, query string, args []any) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		UserID:              row.UserID,
		MatchID:             row.MatchID,
		PickedTeamID:        row.PickedTeamID.String,
		PredictedTeam1Score: intPtrFromNull(row.PredictedTeam1Score),
		PredictedTeam2Score: intPtrFromNull(row.PredictedTeam2Score),
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}
