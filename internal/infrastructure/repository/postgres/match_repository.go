package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/bracket"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]bracket.Match, error) {
	query, args, err := qb.Select("*").From("matches").OrderBy("match_number ASC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListByDay(ctx context.Context, day int) ([]bracket.Match, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(qb.Eq("day", day)).
		OrderBy("match_number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by day query: %w", err)
	}
	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (bracket.Match, bool, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return bracket.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bracket.Match{}, false, nil
		}
		return bracket.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return bracket.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) Update(ctx context.Context, item bracket.Match) error {
	return r.UpdateMany(ctx, []bracket.Match{item})
}

// UpdateMany writes mutable match columns for every item in one transaction.
func (r *MatchRepository) UpdateMany(ctx context.Context, items []bracket.Match) error {
	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("match %s: %w", item.ID, err)
		}
	}

	return withTx(ctx, r.db, "update matches", func(tx *sqlx.Tx) error {
		for _, item := range items {
			query, args, err := qb.Update("matches").
				Set("team1_id", nullString(item.Team1ID)).
				Set("team2_id", nullString(item.Team2ID)).
				Set("team1_score", nullIntPtr(item.Team1Score)).
				Set("team2_score", nullIntPtr(item.Team2Score)).
				Set("winner_id", nullString(item.WinnerID)).
				Set("is_double_points", item.IsDoublePoints).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("match_id", item.ID)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build update match query: %w", err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return crerr.Wrapf(err, "update match %s", item.ID)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return crerr.Wrapf(err, "rows affected for match %s", item.ID)
			}
			if affected == 0 {
				return crerr.Newf("match %s not found", item.ID)
			}
		}
		return nil
	})
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]bracket.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]bracket.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func matchFromRow(row matchTableModel) (bracket.Match, error) {
	team1Source, err := bracket.ParseOptionalDependencyRef(row.Team1Source.String)
	if err != nil {
		return bracket.Match{}, fmt.Errorf("match %s team1 source: %w", row.ID, err)
	}
	team2Source, err := bracket.ParseOptionalDependencyRef(row.Team2Source.String)
	if err != nil {
		return bracket.Match{}, fmt.Errorf("match %s team2 source: %w", row.ID, err)
	}

	return bracket.Match{
		ID:             row.ID,
		MatchNumber:    row.MatchNumber,
		Team1ID:        row.Team1ID.String,
		Team2ID:        row.Team2ID.String,
		Team1Source:    team1Source,
		Team2Source:    team2Source,
		Day:            row.Day,
		StartTime:      row.StartTime,
		Round:          row.Round,
		IsUpperBracket: row.IsUpperBracket,
		Team1Score:     intPtrFromNull(row.Team1Score),
		Team2Score:     intPtrFromNull(row.Team2Score),
		WinnerID:       row.WinnerID.String,
		IsDoublePoints: row.IsDoublePoints,
	}, nil
}

func matchInsertFromDomain(m bracket.Match) matchInsertModel {
	return matchInsertModel{
		ID:             m.ID,
		MatchNumber:    m.MatchNumber,
		Team1ID:        nullString(m.Team1ID),
		Team2ID:        nullString(m.Team2ID),
		Team1Source:    nullString(bracket.RefString(m.Team1Source)),
		Team2Source:    nullString(bracket.RefString(m.Team2Source)),
		Day:            m.Day,
		StartTime:      m.StartTime,
		Round:          m.Round,
		IsUpperBracket: m.IsUpperBracket,
		IsDoublePoints: m.IsDoublePoints,
	}
}
