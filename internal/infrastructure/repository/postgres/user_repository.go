package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/user"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, userID string) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get user: %w", err)
	}
	return user.Profile{
		UserID:      row.UserID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		LastSeenAt:  row.LastSeenAt,
	}, true, nil
}

func (r *UserRepository) Upsert(ctx context.Context, item user.Profile) error {
	query, args, err := qb.InsertModel("users", userInsertModel{
		UserID:      item.UserID,
		Email:       item.Email,
		DisplayName: item.DisplayName,
		LastSeenAt:  item.LastSeenAt,
	}, `ON CONFLICT (user_id)
DO UPDATE SET
    email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    last_seen_at = EXCLUDED.last_seen_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
