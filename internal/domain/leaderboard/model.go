package leaderboard

import (
	"context"
	"sort"

	"github.com/thedyrex/pickems/internal/domain/scoring"
)

// Entry is one player's aggregated line on the leaderboard.
type Entry struct {
	UserID         string
	DisplayName    string
	Email          string
	TotalPoints    int
	CorrectWinners int
	CorrectScores  int
	MatchesScored  int
}

// Repository reads the leaderboard projection, already ordered.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
}

// Aggregate folds score rows into entries ordered by total points descending.
// Ties keep the order in which users first appear in scores.
func Aggregate(scores []scoring.Score) []Entry {
	index := make(map[string]int)
	out := make([]Entry, 0)
	for _, s := range scores {
		i, ok := index[s.UserID]
		if !ok {
			i = len(out)
			index[s.UserID] = i
			out = append(out, Entry{UserID: s.UserID})
		}

		out[i].TotalPoints += s.PointsEarned
		out[i].MatchesScored++
		if s.CorrectWinner {
			out[i].CorrectWinners++
		}
		if s.CorrectScore {
			out[i].CorrectScores++
		}
	}

	Sort(out)
	return out
}

func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
}

// Rank returns the 1-based position of userID.
func Rank(entries []Entry, userID string) (int, bool) {
	for i, e := range entries {
		if e.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}
