package bracket

import (
	"errors"
	"fmt"
)

const (
	RoundGrandFinal = "Grand Final"

	defaultMaxScore    = 3
	grandFinalMaxScore = 5
)

var (
	ErrParticipantsUnresolved = errors.New("both participants must be resolved")
	ErrTiedResult             = errors.New("match result cannot be a tie")
	ErrScoreOutOfRange        = errors.New("score out of range")
	ErrWinnerScoreMismatch    = errors.New("winning score must equal the first-to target")
	ErrWinnerNotParticipant   = errors.New("winner must be one of the participants")
)

// Match is one scheduled series of the tournament.
type Match struct {
	ID             string
	MatchNumber    int
	Team1ID        string
	Team2ID        string
	Team1Source    *DependencyRef
	Team2Source    *DependencyRef
	Day            int
	StartTime      string
	Round          string
	IsUpperBracket bool
	Team1Score     *int
	Team2Score     *int
	WinnerID       string
	IsDoublePoints bool
}

// MaxScore is the first-to target: best-of-9 for the grand final, best-of-5 elsewhere.
func (m Match) MaxScore() int {
	if m.Round == RoundGrandFinal {
		return grandFinalMaxScore
	}
	return defaultMaxScore
}

func (m Match) IsGraded() bool {
	return m.WinnerID != ""
}

// HasResult reports whether both scores and a winner are recorded.
func (m Match) HasResult() bool {
	return m.WinnerID != "" && m.Team1Score != nil && m.Team2Score != nil
}

func (m Match) HasResolvedParticipants() bool {
	return m.Team1ID != "" && m.Team2ID != ""
}

func (m Match) HasParticipant(teamID string) bool {
	if teamID == "" {
		return false
	}
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// LoserID returns the participant that is not the winner, empty when ungraded.
func (m Match) LoserID() string {
	switch {
	case !m.IsGraded():
		return ""
	case m.WinnerID == m.Team1ID:
		return m.Team2ID
	case m.WinnerID == m.Team2ID:
		return m.Team1ID
	default:
		return ""
	}
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.MatchNumber <= 0 {
		return fmt.Errorf("match number must be > 0")
	}
	if m.Day <= 0 {
		return fmt.Errorf("match day must be > 0")
	}
	if (m.Team1Score == nil) != (m.Team2Score == nil) {
		return fmt.Errorf("match scores must be set together")
	}
	if m.IsGraded() {
		if m.Team1Score == nil {
			return fmt.Errorf("graded match requires scores")
		}
		// A cleared upstream result may blank a participant of a graded
		// match, so only the score line is checked here.
		if _, err := checkScoreLine(m, *m.Team1Score, *m.Team2Score); err != nil {
			return err
		}
	}

	return nil
}

// ResolveResult checks a final score against the match and returns the winner id.
func ResolveResult(m Match, team1Score, team2Score int) (string, error) {
	if !m.HasResolvedParticipants() {
		return "", fmt.Errorf("%w: match %s", ErrParticipantsUnresolved, m.ID)
	}

	team1Won, err := checkScoreLine(m, team1Score, team2Score)
	if err != nil {
		return "", err
	}
	if team1Won {
		return m.Team1ID, nil
	}
	return m.Team2ID, nil
}

// checkScoreLine reports whether team 1 won a valid final score.
func checkScoreLine(m Match, team1Score, team2Score int) (bool, error) {
	maxScore := m.MaxScore()
	if team1Score < 0 || team1Score > maxScore || team2Score < 0 || team2Score > maxScore {
		return false, fmt.Errorf("%w: scores must be between 0 and %d", ErrScoreOutOfRange, maxScore)
	}
	if team1Score == team2Score {
		return false, ErrTiedResult
	}
	if max(team1Score, team2Score) != maxScore {
		return false, fmt.Errorf("%w: got %d, want %d", ErrWinnerScoreMismatch, max(team1Score, team2Score), maxScore)
	}
	return team1Score > team2Score, nil
}

// WithResult returns a copy of m graded with the given score.
func (m Match) WithResult(team1Score, team2Score int) (Match, error) {
	winnerID, err := ResolveResult(m, team1Score, team2Score)
	if err != nil {
		return Match{}, err
	}

	out := m.Clone()
	out.Team1Score = intPtr(team1Score)
	out.Team2Score = intPtr(team2Score)
	out.WinnerID = winnerID
	return out, nil
}

// WithoutResult returns a copy of m with scores and winner blanked.
func (m Match) WithoutResult() Match {
	out := m.Clone()
	out.Team1Score = nil
	out.Team2Score = nil
	out.WinnerID = ""
	return out
}

func (m Match) Clone() Match {
	out := m
	if m.Team1Source != nil {
		ref := *m.Team1Source
		out.Team1Source = &ref
	}
	if m.Team2Source != nil {
		ref := *m.Team2Source
		out.Team2Source = &ref
	}
	if m.Team1Score != nil {
		out.Team1Score = intPtr(*m.Team1Score)
	}
	if m.Team2Score != nil {
		out.Team2Score = intPtr(*m.Team2Score)
	}
	return out
}

func intPtr(v int) *int {
	return &v
}
