package bracket

import (
	"errors"
	"testing"
)

func TestMatch_MaxScore(t *testing.T) {
	t.Parallel()

	if got := (Match{Round: "Upper Semifinal"}).MaxScore(); got != 3 {
		t.Fatalf("unexpected max score: got=%d want=3", got)
	}
	if got := (Match{Round: RoundGrandFinal}).MaxScore(); got != 5 {
		t.Fatalf("unexpected grand final max score: got=%d want=5", got)
	}
}

func TestResolveResult(t *testing.T) {
	t.Parallel()

	m := Match{ID: "M1", Team1ID: "a", Team2ID: "b", Round: "Round 1"}

	winner, err := ResolveResult(m, 1, 3)
	if err != nil {
		t.Fatalf("resolve result: %v", err)
	}
	if winner != "b" {
		t.Fatalf("unexpected winner: got=%s want=b", winner)
	}

	cases := []struct {
		name   string
		match  Match
		t1, t2 int
		want   error
	}{
		{name: "unresolved", match: Match{ID: "M9", Team1ID: "a"}, t1: 3, t2: 0, want: ErrParticipantsUnresolved},
		{name: "tie", match: m, t1: 2, t2: 2, want: ErrTiedResult},
		{name: "over max", match: m, t1: 4, t2: 1, want: ErrScoreOutOfRange},
		{name: "negative", match: m, t1: -1, t2: 3, want: ErrScoreOutOfRange},
		{name: "short of target", match: m, t1: 2, t2: 1, want: ErrWinnerScoreMismatch},
		{name: "grand final needs five", match: Match{ID: "GF", Team1ID: "a", Team2ID: "b", Round: RoundGrandFinal}, t1: 3, t2: 1, want: ErrWinnerScoreMismatch},
	}
	for _, tc := range cases {
		if _, err := ResolveResult(tc.match, tc.t1, tc.t2); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestMatch_WithResultAndWithoutResult(t *testing.T) {
	t.Parallel()

	m := Match{ID: "M4", MatchNumber: 4, Day: 1, Team1ID: "a", Team2ID: "b"}
	graded, err := m.WithResult(3, 1)
	if err != nil {
		t.Fatalf("grade match: %v", err)
	}
	if !graded.IsGraded() || graded.WinnerID != "a" || graded.LoserID() != "b" {
		t.Fatalf("unexpected graded match: %+v", graded)
	}
	if err := graded.Validate(); err != nil {
		t.Fatalf("graded match should validate: %v", err)
	}
	if m.IsGraded() {
		t.Fatalf("WithResult must not mutate the receiver")
	}

	cleared := graded.WithoutResult()
	if cleared.IsGraded() || cleared.Team1Score != nil || cleared.Team2Score != nil {
		t.Fatalf("unexpected cleared match: %+v", cleared)
	}
	if cleared.Team1ID != "a" || cleared.Team2ID != "b" {
		t.Fatalf("clearing a result must keep participants")
	}
}

func TestMatch_Validate_GradedWithBlankedSlot(t *testing.T) {
	t.Parallel()

	graded, err := Match{ID: "M5", MatchNumber: 5, Day: 2, Team1ID: "a", Team2ID: "b"}.WithResult(3, 0)
	if err != nil {
		t.Fatalf("grade match: %v", err)
	}
	graded.Team2ID = ""
	if err := graded.Validate(); err != nil {
		t.Fatalf("graded match with a blanked slot should validate: %v", err)
	}

	tied := graded
	tied.Team1Score, tied.Team2Score = intPtr(2), intPtr(2)
	if err := tied.Validate(); !errors.Is(err, ErrTiedResult) {
		t.Fatalf("expected ErrTiedResult, got %v", err)
	}
}
