package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/infrastructure/repository/memory"
	qb "github.com/thedyrex/pickems/internal/platform/querybuilder"
)

// BootstrapSeed loads the team field, the bracket template and the day
// switches into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, cal schedule.Calendar) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches`); err != nil {
		return fmt.Errorf("count matches for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	teams := make([]teamInsertModel, 0)
	for _, t := range memory.SeedTeams() {
		teams = append(teams, teamInsertModel{ID: t.ID, Name: t.Name, Logo: t.Logo, Seed: t.Seed})
	}

	matches := make([]matchInsertModel, 0)
	for _, m := range memory.SeedMatches() {
		matches = append(matches, matchInsertFromDomain(m))
	}

	days := make([]daySettingInsertModel, 0)
	for _, d := range memory.SeedDaySettings(cal) {
		days = append(days, daySettingInsertModel{Day: d.Day, IsEnabled: d.IsEnabled})
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		teamQuery, teamArgs, err := qb.InsertModels("teams", teams, "ON CONFLICT (team_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed teams query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, teamQuery, teamArgs...); err != nil {
			return fmt.Errorf("seed teams: %w", err)
		}

		matchQuery, matchArgs, err := qb.InsertModels("matches", matches, "ON CONFLICT (match_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, matchQuery, matchArgs...); err != nil {
			return fmt.Errorf("seed matches: %w", err)
		}

		if len(days) > 0 {
			dayQuery, dayArgs, err := qb.InsertModels("day_settings", days, "ON CONFLICT (day) DO NOTHING")
			if err != nil {
				return fmt.Errorf("build seed day settings query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, dayQuery, dayArgs...); err != nil {
				return fmt.Errorf("seed day settings: %w", err)
			}
		}
		return nil
	})
}
