package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		if _, ok := r.items[item.ID]; !ok {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	return item, ok, nil
}

func (r *TeamRepository) UpdateLogo(_ context.Context, teamID, logo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[teamID]
	if !ok {
		return fmt.Errorf("team %s not found", teamID)
	}
	item.Logo = logo
	r.items[teamID] = item
	return nil
}
