package postgres

import "time"

type scoreTableModel struct {
	UserID        string    `db:"user_id"`
	MatchID       string    `db:"match_id"`
	PointsEarned  int       `db:"points_earned"`
	CorrectWinner bool      `db:"correct_winner"`
	CorrectScore  bool      `db:"correct_score"`
	CalculatedAt  time.Time `db:"calculated_at"`
	CreatedAt     time.Time `db:"created_at"`
}

type scoreInsertModel struct {
	UserID        string    `db:"user_id"`
	MatchID       string    `db:"match_id"`
	PointsEarned  int       `db:"points_earned"`
	CorrectWinner bool      `db:"correct_winner"`
	CorrectScore  bool      `db:"correct_score"`
	CalculatedAt  time.Time `db:"calculated_at"`
}
