package memory

import (
	"context"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/scoring"
)

// ScoreRepository keeps rows in first-insert order; the leaderboard relies on
// that order to break ties.
type ScoreRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]scoring.Score
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{items: make(map[string]scoring.Score)}
}

func (r *ScoreRepository) Get(_ context.Context, userID, matchID string) (scoring.Score, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[pickKey(userID, matchID)]
	return item, ok, nil
}

func (r *ScoreRepository) ListByUser(_ context.Context, userID string) ([]scoring.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Score, 0)
	for _, key := range r.order {
		if item := r.items[key]; item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ScoreRepository) ListAll(_ context.Context) ([]scoring.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Score, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.items[key])
	}
	return out, nil
}

func (r *ScoreRepository) UpsertMany(_ context.Context, items []scoring.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		key := pickKey(item.UserID, item.MatchID)
		if _, ok := r.items[key]; !ok {
			r.order = append(r.order, key)
		}
		r.items[key] = item
	}
	return nil
}

func (r *ScoreRepository) DeleteByMatchIDs(_ context.Context, matchIDs []string) error {
	drop := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		drop[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	for _, key := range r.order {
		if _, ok := drop[r.items[key].MatchID]; ok {
			delete(r.items, key)
			continue
		}
		kept = append(kept, key)
	}
	r.order = kept
	return nil
}

func (r *ScoreRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.items = make(map[string]scoring.Score)
	return nil
}
