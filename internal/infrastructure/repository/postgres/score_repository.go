package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

const scoreUpsertBatchSize = 500

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Get(ctx context.Context, userID, matchID string) (scoring.Score, bool, error) {
	query, args, err := qb.Select("*").
		From("user_scores").
		Where(qb.Eq("user_id", userID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return scoring.Score{}, false, fmt.Errorf("build get score query: %w", err)
	}

	var row scoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Score{}, false, nil
		}
		return scoring.Score{}, false, fmt.Errorf("get score: %w", err)
	}
	return scoreFromRow(row), true, nil
}

func (r *ScoreRepository) ListByUser(ctx context.Context, userID string) ([]scoring.Score, error) {
	query, args, err := qb.Select("*").
		From("user_scores").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at ASC", "match_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores by user query: %w", err)
	}
	return r.selectScores(ctx, query, args)
}

func (r *ScoreRepository) ListAll(ctx context.Context) ([]scoring.Score, error) {
	query, args, err := qb.Select("*").
		From("user_scores").
		OrderBy("created_at ASC", "user_id ASC", "match_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}
	return r.selectScores(ctx, query, args)
}

// UpsertMany fully replaces each (user, match) row. Large sets are split into
// several statements inside one transaction.
func (r *ScoreRepository) UpsertMany(ctx context.Context, items []scoring.Score) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]scoreInsertModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, scoreInsertModel{
			UserID:        item.UserID,
			MatchID:       item.MatchID,
			PointsEarned:  item.PointsEarned,
			CorrectWinner: item.CorrectWinner,
			CorrectScore:  item.CorrectScore,
			CalculatedAt:  item.CalculatedAt,
		})
	}

	return withTx(ctx, r.db, "upsert scores", func(tx *sqlx.Tx) error {
		for _, part := range chunk(rows, scoreUpsertBatchSize) {
			query, args, err := qb.InsertModels("user_scores", part, `ON CONFLICT (user_id, match_id)
DO UPDATE SET
    points_earned = EXCLUDED.points_earned,
    correct_winner = EXCLUDED.correct_winner,
    correct_score = EXCLUDED.correct_score,
    calculated_at = EXCLUDED.calculated_at`)
			if err != nil {
				return fmt.Errorf("build upsert scores query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return crerr.Wrapf(err, "upsert %d scores", len(part))
			}
		}
		return nil
	})
}

func (r *ScoreRepository) DeleteByMatchIDs(ctx context.Context, matchIDs []string) error {
	query, args, err := qb.DeleteFrom("user_scores").
		Where(qb.InStrings("match_id", matchIDs)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	return nil
}

func (r *ScoreRepository) DeleteAll(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("user_scores").All().ToSQL()
	if err != nil {
		return fmt.Errorf("build delete all scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete all scores: %w", err)
	}
	return nil
}

func (r *ScoreRepository) selectScores(ctx context.Context, query string, args []any) ([]scoring.Score, error) {
	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select scores: %w", err)
	}

	out := make([]scoring.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreFromRow(row))
	}
	return out, nil
}

func scoreFromRow(row scoreTableModel) scoring.Score {
	return scoring.Score{
		UserID:        row.UserID,
		MatchID:       row.MatchID,
		PointsEarned:  row.PointsEarned,
		CorrectWinner: row.CorrectWinner,
		CorrectScore:  row.CorrectScore,
		CalculatedAt:  row.CalculatedAt,
	}
}
