package usecase

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
)

func TestPickService_SavePick_FirstPickLocks(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	saved, err := e.pickService.SavePick(t.Context(), SavePickInput{
		UserID:              "u1",
		MatchID:             "M1",
		PickedTeamID:        bracket.TeamCC,
		PredictedTeam1Score: intRef(3),
		PredictedTeam2Score: intRef(2),
	})
	if err != nil {
		t.Fatalf("save pick: %v", err)
	}
	if !saved.IsLocked() || !saved.CreatedAt.Equal(beforeTournament) {
		t.Fatalf("unexpected saved pick: %+v", saved)
	}

	_, err = e.pickService.SavePick(t.Context(), SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamT1})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, pick.ErrPickLocked) {
		t.Fatalf("expected locked pick, got %v", err)
	}

	got, _, _ := e.pickService.GetPick(t.Context(), "u1", "M1")
	if got.PickedTeamID != bracket.TeamCC {
		t.Fatalf("locked pick was overwritten: %+v", got)
	}
}

func TestPickService_SavePick_RuleOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	e.grade(t, "M2", 3, 0)
	if _, err := e.dayService.SetDayEnabled(t.Context(), 3, false); err != nil {
		t.Fatalf("disable day 3: %v", err)
	}

	tests := []struct {
		name  string
		input SavePickInput
		kind  error
		want  error
	}{
		{
			name:  "unknown match",
			input: SavePickInput{UserID: "u1", MatchID: "M42", PickedTeamID: bracket.TeamCC},
			kind:  ErrNotFound,
		},
		{
			name:  "graded match",
			input: SavePickInput{UserID: "u1", MatchID: "M2", PickedTeamID: bracket.TeamFalcons},
			kind:  ErrConflict,
			want:  pick.ErrMatchGraded,
		},
		{
			name:  "disabled day beats unresolved participants",
			input: SavePickInput{UserID: "u1", MatchID: "M9", PickedTeamID: bracket.TeamPeps},
			kind:  ErrConflict,
			want:  pick.ErrDayClosed,
		},
		{
			name:  "unresolved participants",
			input: SavePickInput{UserID: "u1", MatchID: "M5", PickedTeamID: bracket.TeamRaccoon},
			kind:  ErrInvalidInput,
			want:  pick.ErrParticipantsUnresolved,
		},
		{
			name:  "team not in match",
			input: SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamLiquid},
			kind:  ErrInvalidInput,
			want:  pick.ErrTeamNotInMatch,
		},
		{
			name:  "one score only",
			input: SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamCC, PredictedTeam1Score: intRef(3)},
			kind:  ErrInvalidInput,
			want:  pick.ErrIncompleteScore,
		},
		{
			name:  "tied prediction",
			input: SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamCC, PredictedTeam1Score: intRef(2), PredictedTeam2Score: intRef(2)},
			kind:  ErrInvalidInput,
			want:  pick.ErrTiedScore,
		},
		{
			name:  "winner below target",
			input: SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamCC, PredictedTeam1Score: intRef(2), PredictedTeam2Score: intRef(1)},
			kind:  ErrInvalidInput,
			want:  pick.ErrWinningScoreMismatch,
		},
		{
			name:  "score disagrees with team",
			input: SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamT1, PredictedTeam1Score: intRef(3), PredictedTeam2Score: intRef(1)},
			kind:  ErrInvalidInput,
			want:  pick.ErrPickScoreDisagree,
		},
	}

	for _, tc := range tests {
		_, err := e.pickService.SavePick(t.Context(), tc.input)
		if !errors.Is(err, tc.kind) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.kind, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if items, _ := e.pickService.ListForUser(t.Context(), "u1"); len(items) != 0 {
		t.Fatalf("rejected picks must not be stored: %+v", items)
	}
}

func TestPickService_SavePick_TimeLock(t *testing.T) {
	t.Parallel()

	// 2024-11-27 3:30 PM EST: day 2 has started.
	now := time.Date(2024, time.November, 27, 20, 30, 0, 0, time.UTC)
	e := newTestEngine(t, now)
	e.grade(t, "M4", 3, 1)

	_, err := e.pickService.SavePick(t.Context(), SavePickInput{UserID: "u1", MatchID: "M5", PickedTeamID: bracket.TeamRaccoon})
	if !errors.Is(err, pick.ErrDayClosed) {
		t.Fatalf("expected day 2 to be time locked, got %v", err)
	}

	if _, err := e.pickService.SavePick(t.Context(), SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamCC}); err != nil {
		t.Fatalf("day 1 is never time locked: %v", err)
	}
}

func TestPickService_SavePick_ConcurrentFirstWriterWins(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)

	var (
		wg       sync.WaitGroup
		saved    atomic.Int32
		rejected atomic.Int32
	)
	teams := []string{bracket.TeamCC, bracket.TeamT1}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(team string) {
			defer wg.Done()
			_, err := e.pickService.SavePick(t.Context(), SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: team})
			switch {
			case err == nil:
				saved.Add(1)
			case errors.Is(err, pick.ErrPickLocked):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(teams[i%2])
	}
	wg.Wait()

	if saved.Load() != 1 || rejected.Load() != 15 {
		t.Fatalf("expected exactly one saved pick: saved=%d rejected=%d", saved.Load(), rejected.Load())
	}
}

func TestPickService_PredictionStats(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	for userID, team := range map[string]string{"u1": bracket.TeamCC, "u2": bracket.TeamCC, "u3": bracket.TeamT1} {
		if _, err := e.pickService.SavePick(t.Context(), SavePickInput{UserID: userID, MatchID: "M1", PickedTeamID: team}); err != nil {
			t.Fatalf("save pick: %v", err)
		}
	}

	stats, err := e.pickService.MatchPredictionStats(t.Context(), "M1")
	if err != nil {
		t.Fatalf("match stats: %v", err)
	}
	if stats.TotalPicks != 3 || stats.Team1Percentage != 67 || stats.Team2Percentage != 33 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	unresolved, err := e.pickService.MatchPredictionStats(t.Context(), "M5")
	if err != nil || unresolved != nil {
		t.Fatalf("expected no stats for unresolved match: stats=%+v err=%v", unresolved, err)
	}

	day1, err := e.pickService.PredictionStatsByDay(t.Context(), 1)
	if err != nil {
		t.Fatalf("stats by day: %v", err)
	}
	if len(day1) != 4 || day1[0].MatchID != "M1" || day1[3].MatchID != "M4" {
		t.Fatalf("unexpected day 1 stats: %+v", day1)
	}
	if day1[1].TotalPicks != 0 || day1[1].Team1Percentage != 0 {
		t.Fatalf("unexpected empty match stats: %+v", day1[1])
	}

	day2, err := e.pickService.PredictionStatsByDay(t.Context(), 2)
	if err != nil || len(day2) != 0 {
		t.Fatalf("expected unresolved day 2 to be omitted: %+v err=%v", day2, err)
	}
}

func TestRoundPercent(t *testing.T) {
	t.Parallel()

	cases := []struct{ part, total, want int }{
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := roundPercent(tc.part, tc.total); got != tc.want {
			t.Fatalf("roundPercent(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
		}
	}
}

func TestPickService_ResetMatchPicks(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	if _, err := e.pickService.SavePick(t.Context(), SavePickInput{UserID: "u1", MatchID: "M1", PickedTeamID: bracket.TeamCC}); err != nil {
		t.Fatalf("save pick: %v", err)
	}
	e.grade(t, "M1", 3, 0)

	if err := e.pickService.ResetMatchPicks(t.Context(), []string{"M1", " M1 ", ""}); err != nil {
		t.Fatalf("reset picks: %v", err)
	}

	if _, ok, _ := e.picks.Get(t.Context(), "u1", "M1"); ok {
		t.Fatalf("expected pick deleted")
	}
	if _, ok, _ := e.scores.Get(t.Context(), "u1", "M1"); ok {
		t.Fatalf("expected score deleted")
	}

	if err := e.pickService.ResetMatchPicks(t.Context(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ids, got %v", err)
	}
}
