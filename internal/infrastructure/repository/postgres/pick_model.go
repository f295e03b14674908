package postgres

import (
	"database/sql"
	"time"
)

type pickTableModel struct {
	UserID              string         `db:"user_id"`
	MatchID             string         `db:"match_id"`
	PickedTeamID        sql.NullString `db:"picked_team_id"`
	PredictedTeam1Score sql.NullInt64  `db:"predicted_team1_score"`
	PredictedTeam2Score sql.NullInt64  `db:"predicted_team2_score"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type pickInsertModel struct {
	UserID              string         `db:"user_id"`
	MatchID             string         `db:"match_id"`
	PickedTeamID        sql.NullString `db:"picked_team_id"`
	PredictedTeam1Score sql.NullInt64  `db:"predicted_team1_score"`
	PredictedTeam2Score sql.NullInt64  `db:"predicted_team2_score"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
