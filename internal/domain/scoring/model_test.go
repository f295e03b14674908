package scoring

import (
	"testing"
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
)

func intPtr(v int) *int { return &v }

func gradedMatch(double bool) bracket.Match {
	return bracket.Match{
		ID:             "M9",
		Team1ID:        "team-b",
		Team2ID:        "team-d",
		Team1Score:     intPtr(3),
		Team2Score:     intPtr(1),
		WinnerID:       "team-b",
		IsDoublePoints: double,
	}
}

func TestCalculate_PointsGrid(t *testing.T) {
	t.Parallel()

	wrong := pick.Pick{PickedTeamID: "team-d"}
	winnerOnly := pick.Pick{PickedTeamID: "team-b", PredictedTeam1Score: intPtr(3), PredictedTeam2Score: intPtr(0)}
	exact := pick.Pick{PickedTeamID: "team-b", PredictedTeam1Score: intPtr(3), PredictedTeam2Score: intPtr(1)}

	cases := []struct {
		name   string
		double bool
		pick   pick.Pick
		want   int
	}{
		{name: "wrong", pick: wrong, want: 0},
		{name: "winner only", pick: winnerOnly, want: 10},
		{name: "exact", pick: exact, want: 15},
		{name: "wrong doubled", double: true, pick: wrong, want: 0},
		{name: "winner only doubled", double: true, pick: winnerOnly, want: 20},
		{name: "exact doubled", double: true, pick: exact, want: 30},
	}

	rules := DefaultRules()
	for _, tc := range cases {
		got := Calculate(gradedMatch(tc.double), tc.pick, rules)
		if got.Points != tc.want {
			t.Fatalf("%s: unexpected points: got=%d want=%d", tc.name, got.Points, tc.want)
		}
	}
}

func TestCalculate_UngradedScoresNothing(t *testing.T) {
	t.Parallel()

	m := gradedMatch(true)
	m.WinnerID = ""
	p := pick.Pick{PickedTeamID: "team-b", PredictedTeam1Score: intPtr(3), PredictedTeam2Score: intPtr(1)}

	got := Calculate(m, p, DefaultRules())
	if got != (Result{}) {
		t.Fatalf("expected empty result, got %+v", got)
	}

	m = gradedMatch(false)
	m.Team2Score = nil
	if got := Calculate(m, p, DefaultRules()); got.Points != 0 || got.CorrectWinner {
		t.Fatalf("missing score must not score, got %+v", got)
	}
}

func TestCalculate_ExactScoreSetsBothFlags(t *testing.T) {
	t.Parallel()

	p := pick.Pick{PickedTeamID: "team-b", PredictedTeam1Score: intPtr(3), PredictedTeam2Score: intPtr(1)}
	got := Calculate(gradedMatch(false), p, DefaultRules())
	if !got.CorrectWinner || !got.CorrectScore {
		t.Fatalf("expected both flags, got %+v", got)
	}
}

func TestScorePick(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 11, 28, 20, 0, 0, 0, time.UTC)
	p := pick.Pick{UserID: "u1", MatchID: "M9", PickedTeamID: "team-b"}
	got := ScorePick(gradedMatch(false), p, DefaultRules(), now)
	if got.UserID != "u1" || got.MatchID != "M9" || got.PointsEarned != 10 || !got.CalculatedAt.Equal(now) {
		t.Fatalf("unexpected score row: %+v", got)
	}
}
