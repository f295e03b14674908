package pick

import (
	"errors"
	"testing"

	"github.com/thedyrex/pickems/internal/domain/bracket"
)

func ptr(v int) *int { return &v }

func TestValidate_RuleOrder(t *testing.T) {
	t.Parallel()

	match := bracket.Match{ID: "M9", Team1ID: "team-a", Team2ID: "team-b", Round: "Lower Round 1"}
	final := bracket.Match{ID: "GF", Team1ID: "team-a", Team2ID: "team-b", Round: bracket.RoundGrandFinal}

	cases := []struct {
		name  string
		match bracket.Match
		in    Submission
		want  error
	}{
		{
			name:  "unresolved participants beat every other rule",
			match: bracket.Match{ID: "M13", Team1ID: "team-a"},
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(2), PredictedTeam2Score: ptr(2)},
			want:  ErrParticipantsUnresolved,
		},
		{
			name:  "team outside the match",
			match: match,
			in:    Submission{PickedTeamID: "team-z"},
			want:  ErrTeamNotInMatch,
		},
		{
			name:  "half a score",
			match: match,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(3)},
			want:  ErrIncompleteScore,
		},
		{
			name:  "out of range before tie",
			match: match,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(4), PredictedTeam2Score: ptr(4)},
			want:  ErrScoreOutOfRange,
		},
		{
			name:  "tie",
			match: match,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(2), PredictedTeam2Score: ptr(2)},
			want:  ErrTiedScore,
		},
		{
			name:  "winner below target",
			match: match,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(2), PredictedTeam2Score: ptr(1)},
			want:  ErrWinningScoreMismatch,
		},
		{
			name:  "grand final target is five",
			match: final,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(3), PredictedTeam2Score: ptr(0)},
			want:  ErrWinningScoreMismatch,
		},
		{
			name:  "score winner differs from pick",
			match: match,
			in:    Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(1), PredictedTeam2Score: ptr(3)},
			want:  ErrPickScoreDisagree,
		},
		{
			name:  "incomplete score reported before an outside team",
			match: match,
			in:    Submission{PickedTeamID: "team-z", PredictedTeam2Score: ptr(3)},
			want:  ErrIncompleteScore,
		},
		{
			name:  "tie reported before an outside team",
			match: match,
			in:    Submission{PickedTeamID: "team-z", PredictedTeam1Score: ptr(1), PredictedTeam2Score: ptr(1)},
			want:  ErrTiedScore,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := Validate(tc.match, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	t.Parallel()

	match := bracket.Match{ID: "M9", Team1ID: "team-a", Team2ID: "team-b"}
	if err := Validate(match, Submission{PickedTeamID: "team-b"}); err != nil {
		t.Fatalf("winner-only pick should pass: %v", err)
	}
	if err := Validate(match, Submission{PickedTeamID: "team-b", PredictedTeam1Score: ptr(0), PredictedTeam2Score: ptr(3)}); err != nil {
		t.Fatalf("3-0 pick should pass: %v", err)
	}

	final := bracket.Match{ID: "GF", Team1ID: "team-a", Team2ID: "team-b", Round: bracket.RoundGrandFinal}
	if err := Validate(final, Submission{PickedTeamID: "team-a", PredictedTeam1Score: ptr(5), PredictedTeam2Score: ptr(4)}); err != nil {
		t.Fatalf("5-4 grand final pick should pass: %v", err)
	}
}

func TestStateOf(t *testing.T) {
	t.Parallel()

	open := bracket.Match{ID: "M1", Team1ID: "a", Team2ID: "b"}
	graded := open
	graded.WinnerID = "a"

	if got := StateOf(open, Pick{}, false); got != StateOpen {
		t.Fatalf("unexpected state: got=%s want=%s", got, StateOpen)
	}
	if got := StateOf(open, Pick{PickedTeamID: "a"}, true); got != StateLocked {
		t.Fatalf("saved pick should lock: got=%s", got)
	}
	if got := StateOf(graded, Pick{}, false); got != StateLocked {
		t.Fatalf("graded match should lock without a pick: got=%s", got)
	}
}
