package leaderboard

import (
	"testing"

	"github.com/thedyrex/pickems/internal/domain/scoring"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	scores := []scoring.Score{
		{UserID: "u1", MatchID: "M1", PointsEarned: 10, CorrectWinner: true},
		{UserID: "u2", MatchID: "M1", PointsEarned: 15, CorrectWinner: true, CorrectScore: true},
		{UserID: "u3", MatchID: "M1", PointsEarned: 0},
		{UserID: "u1", MatchID: "M2", PointsEarned: 30, CorrectWinner: true, CorrectScore: true},
		{UserID: "u3", MatchID: "M2", PointsEarned: 15, CorrectWinner: true, CorrectScore: true},
	}

	got := Aggregate(scores)
	if len(got) != 3 {
		t.Fatalf("unexpected entries count: got=%d want=3", len(got))
	}

	wantOrder := []string{"u1", "u2", "u3"}
	for i, id := range wantOrder {
		if got[i].UserID != id {
			t.Fatalf("unexpected user at %d: got=%s want=%s", i, got[i].UserID, id)
		}
	}
	if got[0].TotalPoints != 40 || got[0].CorrectWinners != 2 || got[0].CorrectScores != 1 || got[0].MatchesScored != 2 {
		t.Fatalf("unexpected u1 entry: %+v", got[0])
	}
}

func TestAggregate_TiesKeepStoreOrder(t *testing.T) {
	t.Parallel()

	got := Aggregate([]scoring.Score{
		{UserID: "b", PointsEarned: 10},
		{UserID: "a", PointsEarned: 10},
		{UserID: "c", PointsEarned: 20},
	})

	if got[0].UserID != "c" || got[1].UserID != "b" || got[2].UserID != "a" {
		t.Fatalf("unexpected tie order: %+v", got)
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	entries := []Entry{{UserID: "c"}, {UserID: "b"}, {UserID: "a"}}
	if rank, ok := Rank(entries, "b"); !ok || rank != 2 {
		t.Fatalf("unexpected rank: got=%d ok=%v", rank, ok)
	}
	if _, ok := Rank(entries, "missing"); ok {
		t.Fatalf("expected missing user to have no rank")
	}
}
