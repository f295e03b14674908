package pick

import (
	"errors"
	"fmt"
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
)

var (
	ErrParticipantsUnresolved = errors.New("match participants are not decided yet")
	ErrTeamNotInMatch         = errors.New("picked team is not playing in this match")
	ErrIncompleteScore        = errors.New("both predicted scores must be provided together")
	ErrScoreOutOfRange        = errors.New("predicted score out of range")
	ErrTiedScore              = errors.New("predicted scores cannot be tied")
	ErrWinningScoreMismatch   = errors.New("predicted winning score must equal the first-to target")
	ErrPickScoreDisagree      = errors.New("predicted score winner must match the picked team")

	ErrPickLocked  = errors.New("pick is locked")
	ErrMatchGraded = errors.New("match is already graded")
	ErrDayClosed   = errors.New("picks are closed for this day")
)

// Pick is one player's prediction for one match.
type Pick struct {
	UserID              string
	MatchID             string
	PickedTeamID        string
	PredictedTeam1Score *int
	PredictedTeam2Score *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsLocked reports whether the pick has been saved with a team.
func (p Pick) IsLocked() bool {
	return p.PickedTeamID != ""
}

func (p Pick) HasScorePrediction() bool {
	return p.PredictedTeam1Score != nil && p.PredictedTeam2Score != nil
}

// Submission is an incoming pick before it is accepted.
type Submission struct {
	PickedTeamID        string
	PredictedTeam1Score *int
	PredictedTeam2Score *int
}

// Validate applies the pick rules in order; the first failing rule wins. The
// picked team must be a participant, checked once the score rules pass.
func Validate(m bracket.Match, in Submission) error {
	if !m.HasResolvedParticipants() {
		return fmt.Errorf("%w: match %s", ErrParticipantsUnresolved, m.ID)
	}
	if err := validateScore(m, in); err != nil {
		return err
	}
	if !m.HasParticipant(in.PickedTeamID) {
		return fmt.Errorf("%w: team %s, match %s", ErrTeamNotInMatch, in.PickedTeamID, m.ID)
	}
	return nil
}

func validateScore(m bracket.Match, in Submission) error {
	if in.PredictedTeam1Score == nil && in.PredictedTeam2Score == nil {
		return nil
	}
	if in.PredictedTeam1Score == nil || in.PredictedTeam2Score == nil {
		return ErrIncompleteScore
	}

	maxScore := m.MaxScore()
	t1, t2 := *in.PredictedTeam1Score, *in.PredictedTeam2Score
	if t1 < 0 || t1 > maxScore || t2 < 0 || t2 > maxScore {
		return fmt.Errorf("%w: scores must be between 0 and %d", ErrScoreOutOfRange, maxScore)
	}
	if t1 == t2 {
		return ErrTiedScore
	}

	predictedWinner, high := m.Team1ID, t1
	if t2 > t1 {
		predictedWinner, high = m.Team2ID, t2
	}
	if high != maxScore {
		return fmt.Errorf("%w: got %d, want %d", ErrWinningScoreMismatch, high, maxScore)
	}
	if predictedWinner != in.PickedTeamID {
		return ErrPickScoreDisagree
	}
	return nil
}

// State is the write state of a (user, match) pair.
type State string

const (
	StateOpen   State = "open"
	StateLocked State = "locked"
)

// StateOf folds the saved pick and the match grading into a write state.
// A graded match is locked even when the player never picked.
func StateOf(m bracket.Match, existing Pick, exists bool) State {
	if m.IsGraded() {
		return StateLocked
	}
	if exists && existing.IsLocked() {
		return StateLocked
	}
	return StateOpen
}
