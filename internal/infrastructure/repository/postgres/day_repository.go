package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

type DayRepository struct {
	db *sqlx.DB
}

func NewDayRepository(db *sqlx.DB) *DayRepository {
	return &DayRepository{db: db}
}

func (r *DayRepository) List(ctx context.Context) ([]schedule.DaySetting, error) {
	query, args, err := qb.Select("*").From("day_settings").OrderBy("day ASC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list day settings query: %w", err)
	}

	var rows []daySettingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list day settings: %w", err)
	}

	out := make([]schedule.DaySetting, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.DaySetting{Day: row.Day, IsEnabled: row.IsEnabled, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (r *DayRepository) Get(ctx context.Context, day int) (schedule.DaySetting, bool, error) {
	query, args, err := qb.Select("*").From("day_settings").Where(qb.Eq("day", day)).ToSQL()
	if err != nil {
		return schedule.DaySetting{}, false, fmt.Errorf("build get day setting query: %w", err)
	}

	var row daySettingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.DaySetting{}, false, nil
		}
		return schedule.DaySetting{}, false, fmt.Errorf("get day setting: %w", err)
	}
	return schedule.DaySetting{Day: row.Day, IsEnabled: row.IsEnabled, UpdatedAt: row.UpdatedAt}, true, nil
}

func (r *DayRepository) Update(ctx context.Context, item schedule.DaySetting) error {
	query, args, err := qb.InsertModel("day_settings", daySettingTableModel{
		Day:       item.Day,
		IsEnabled: item.IsEnabled,
		UpdatedAt: item.UpdatedAt,
	}, `ON CONFLICT (day) DO UPDATE SET is_enabled = EXCLUDED.is_enabled, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert day setting query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert day setting: %w", err)
	}
	return nil
}

func (r *DayRepository) SetAllEnabled(ctx context.Context, enabled bool) error {
	query, args, err := qb.Update("day_settings").
		Set("is_enabled", enabled).
		SetExpr("updated_at", "NOW()").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set all days query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set all days: %w", err)
	}
	return nil
}
