package memory

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/domain/scoring"
)

func TestPickRepository_SaveIfUnlocked_FirstWriterWins(t *testing.T) {
	t.Parallel()

	repo := NewPickRepository()
	ctx := t.Context()

	const writers = 16
	var saved atomic.Int32
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		team := "a"
		if i%2 == 1 {
			team = "b"
		}
		go func() {
			defer wg.Done()
			ok, err := repo.SaveIfUnlocked(ctx, pick.Pick{UserID: "u1", MatchID: "M1", PickedTeamID: team})
			if err != nil {
				t.Errorf("save pick: %v", err)
				return
			}
			if ok {
				saved.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := saved.Load(); got != 1 {
		t.Fatalf("unexpected successful saves: got=%d want=1", got)
	}
}

func TestPickRepository_DeleteByMatchIDs(t *testing.T) {
	t.Parallel()

	repo := NewPickRepository()
	ctx := t.Context()
	for _, matchID := range []string{"M1", "M2", "M3"} {
		if _, err := repo.SaveIfUnlocked(ctx, pick.Pick{UserID: "u1", MatchID: matchID, PickedTeamID: "t"}); err != nil {
			t.Fatalf("save pick: %v", err)
		}
	}

	if err := repo.DeleteByMatchIDs(ctx, []string{"M1", "M3"}); err != nil {
		t.Fatalf("delete picks: %v", err)
	}

	left, _ := repo.ListForUser(ctx, "u1")
	if len(left) != 1 || left[0].MatchID != "M2" {
		t.Fatalf("unexpected remaining picks: %+v", left)
	}
}

func TestScoreRepository_KeepsInsertOrder(t *testing.T) {
	t.Parallel()

	repo := NewScoreRepository()
	ctx := t.Context()

	_ = repo.UpsertMany(ctx, []scoring.Score{
		{UserID: "b", MatchID: "M1", PointsEarned: 10},
		{UserID: "a", MatchID: "M1", PointsEarned: 0},
	})
	_ = repo.UpsertMany(ctx, []scoring.Score{
		{UserID: "a", MatchID: "M1", PointsEarned: 15},
		{UserID: "b", MatchID: "M2", PointsEarned: 10},
	})

	all, _ := repo.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("unexpected rows: got=%d want=3", len(all))
	}
	if all[0].UserID != "b" || all[1].UserID != "a" || all[1].PointsEarned != 15 {
		t.Fatalf("upsert must replace in place: %+v", all)
	}

	if err := repo.DeleteByMatchIDs(ctx, []string{"M1"}); err != nil {
		t.Fatalf("delete scores: %v", err)
	}
	all, _ = repo.ListAll(ctx)
	if len(all) != 1 || all[0].MatchID != "M2" {
		t.Fatalf("unexpected rows after delete: %+v", all)
	}
}
