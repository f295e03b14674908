package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/bracket"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]bracket.Match
}

func NewMatchRepository(matches []bracket.Match) *MatchRepository {
	items := make(map[string]bracket.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m.Clone()
	}
	return &MatchRepository{items: items}
}

func (r *MatchRepository) List(_ context.Context) ([]bracket.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(bracket.Match) bool { return true }), nil
}

func (r *MatchRepository) ListByDay(_ context.Context, day int) ([]bracket.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sorted(func(m bracket.Match) bool { return m.Day == day }), nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (bracket.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return bracket.Match{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *MatchRepository) Update(ctx context.Context, item bracket.Match) error {
	return r.UpdateMany(ctx, []bracket.Match{item})
}

// UpdateMany checks every item before touching the map, so a bad item leaves
// the store unchanged.
func (r *MatchRepository) UpdateMany(_ context.Context, items []bracket.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, ok := r.items[item.ID]; !ok {
			return fmt.Errorf("match %s not found", item.ID)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("match %s: %w", item.ID, err)
		}
	}
	for _, item := range items {
		r.items[item.ID] = item.Clone()
	}
	return nil
}

func (r *MatchRepository) sorted(keep func(bracket.Match) bool) []bracket.Match {
	out := make([]bracket.Match, 0, len(r.items))
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNumber < out[j].MatchNumber })
	return out
}
