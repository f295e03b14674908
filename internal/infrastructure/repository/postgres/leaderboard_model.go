package postgres

import "time"

type leaderboardViewModel struct {
	UserID         string    `db:"user_id"`
	DisplayName    string    `db:"display_name"`
	Email          string    `db:"email"`
	TotalPoints    int       `db:"total_points"`
	CorrectWinners int       `db:"correct_winners"`
	CorrectScores  int       `db:"correct_scores"`
	MatchesScored  int       `db:"matches_scored"`
	FirstScoredAt  time.Time `db:"first_scored_at"`
}
