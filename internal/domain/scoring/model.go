package scoring

import (
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
)

// Score is the derived result of one pick on one match. It is replaced, never patched.
type Score struct {
	UserID        string
	MatchID       string
	PointsEarned  int
	CorrectWinner bool
	CorrectScore  bool
	CalculatedAt  time.Time
}

// Rules stores the point values of the game.
type Rules struct {
	WinnerPoints         int
	ExactScorePoints     int
	DoublePointsMultiple int
}

func DefaultRules() Rules {
	return Rules{
		WinnerPoints:         10,
		ExactScorePoints:     5,
		DoublePointsMultiple: 2,
	}
}

// Result is the output of Calculate.
type Result struct {
	Points        int
	CorrectWinner bool
	CorrectScore  bool
}

// Calculate scores a pick against a match. Ungraded matches score nothing.
func Calculate(m bracket.Match, p pick.Pick, rules Rules) Result {
	if !m.HasResult() {
		return Result{}
	}

	var out Result
	out.CorrectWinner = p.PickedTeamID != "" && p.PickedTeamID == m.WinnerID
	out.CorrectScore = p.HasScorePrediction() &&
		*p.PredictedTeam1Score == *m.Team1Score &&
		*p.PredictedTeam2Score == *m.Team2Score

	if out.CorrectWinner {
		out.Points += rules.WinnerPoints
	}
	if out.CorrectScore {
		out.Points += rules.ExactScorePoints
	}
	if m.IsDoublePoints && rules.DoublePointsMultiple > 0 {
		out.Points *= rules.DoublePointsMultiple
	}

	return out
}

// ScorePick builds the stored row for a pick.
func ScorePick(m bracket.Match, p pick.Pick, rules Rules, now time.Time) Score {
	res := Calculate(m, p, rules)
	return Score{
		UserID:        p.UserID,
		MatchID:       m.ID,
		PointsEarned:  res.Points,
		CorrectWinner: res.CorrectWinner,
		CorrectScore:  res.CorrectScore,
		CalculatedAt:  now,
	}
}
