package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) Get(_ context.Context, userID, matchID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pickKey(userID, matchID)]
	if !ok {
		return pick.Pick{}, false, nil
	}
	return clonePick(item), true, nil
}

func (r *PickRepository) ListForUser(_ context.Context, userID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p pick.Pick) bool { return p.UserID == userID }), nil
}

func (r *PickRepository) ListByMatch(_ context.Context, matchID string) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p pick.Pick) bool { return p.MatchID == matchID }), nil
}

func (r *PickRepository) SaveIfUnlocked(_ context.Context, item pick.Pick) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey(item.UserID, item.MatchID)
	if existing, ok := r.items[key]; ok && existing.IsLocked() {
		return false, nil
	}
	r.items[key] = clonePick(item)
	return true, nil
}

func (r *PickRepository) DeleteByMatchIDs(_ context.Context, matchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		drop[id] = struct{}{}
	}
	for key, item := range r.items {
		if _, ok := drop[item.MatchID]; ok {
			delete(r.items, key)
		}
	}
	return nil
}

// filter returns matching picks ordered by creation time, then key.
func (r *PickRepository) filter(keep func(pick.Pick) bool) []pick.Pick {
	out := make([]pick.Pick, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, clonePick(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return pickKey(out[i].UserID, out[i].MatchID) < pickKey(out[j].UserID, out[j].MatchID)
	})
	return out
}

func pickKey(userID, matchID string) string {
	return userID + "::" + matchID
}

func clonePick(item pick.Pick) pick.Pick {
	copied := item
	if item.PredictedTeam1Score != nil {
		v := *item.PredictedTeam1Score
		copied.PredictedTeam1Score = &v
	}
	if item.PredictedTeam2Score != nil {
		v := *item.PredictedTeam2Score
		copied.PredictedTeam2Score = &v
	}
	return copied
}
