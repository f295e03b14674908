package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID             string         `db:"match_id"`
	MatchNumber    int            `db:"match_number"`
	Team1ID        sql.NullString `db:"team1_id"`
	Team2ID        sql.NullString `db:"team2_id"`
	Team1Source    sql.NullString `db:"team1_source"`
	Team2Source    sql.NullString `db:"team2_source"`
	Day            int            `db:"day"`
	StartTime      string         `db:"start_time"`
	Round          string         `db:"round"`
	IsUpperBracket bool           `db:"is_upper_bracket"`
	Team1Score     sql.NullInt64  `db:"team1_score"`
	Team2Score     sql.NullInt64  `db:"team2_score"`
	WinnerID       sql.NullString `db:"winner_id"`
	IsDoublePoints bool           `db:"is_double_points"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	ID             string         `db:"match_id"`
	MatchNumber    int            `db:"match_number"`
	Team1ID        sql.NullString `db:"team1_id"`
	Team2ID        sql.NullString `db:"team2_id"`
	Team1Source    sql.NullString `db:"team1_source"`
	Team2Source    sql.NullString `db:"team2_source"`
	Day            int            `db:"day"`
	StartTime      string         `db:"start_time"`
	Round          string         `db:"round"`
	IsUpperBracket bool           `db:"is_upper_bracket"`
	IsDoublePoints bool           `db:"is_double_points"`
}
