package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/schedule"
)

type DayRepository struct {
	mu    sync.RWMutex
	items map[int]schedule.DaySetting
}

func NewDayRepository(settings []schedule.DaySetting) *DayRepository {
	items := make(map[int]schedule.DaySetting, len(settings))
	for _, item := range settings {
		items[item.Day] = item
	}
	return &DayRepository{items: items}
}

func (r *DayRepository) List(_ context.Context) ([]schedule.DaySetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.DaySetting, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *DayRepository) Get(_ context.Context, day int) (schedule.DaySetting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[day]
	return item, ok, nil
}

func (r *DayRepository) Update(_ context.Context, item schedule.DaySetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.Day] = item
	return nil
}

func (r *DayRepository) SetAllEnabled(_ context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for day, item := range r.items {
		item.IsEnabled = enabled
		r.items[day] = item
	}
	return nil
}
