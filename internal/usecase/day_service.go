package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

type DayService struct {
	dayRepo   schedule.Repository
	matchRepo bracket.Repository
	calendar  schedule.Calendar
	logger    *logging.Logger
	now       func() time.Time
}

func NewDayService(
	dayRepo schedule.Repository,
	matchRepo bracket.Repository,
	calendar schedule.Calendar,
	logger *logging.Logger,
) *DayService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DayService{
		dayRepo:   dayRepo,
		matchRepo: matchRepo,
		calendar:  calendar,
		logger:    logger,
		now:       time.Now,
	}
}

// EvaluateDay reports whether picks are open for day. When the day has
// started, the following day is switched on if an operator had it off.
func (s *DayService) EvaluateDay(ctx context.Context, day int) (schedule.DayStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.EvaluateDay")
	defer span.End()

	if !s.calendar.Has(day) {
		return schedule.DayStatus{}, fmt.Errorf("%w: %w: day=%d", ErrNotFound, schedule.ErrUnknownDay, day)
	}
	return s.evaluate(ctx, day, s.now())
}

// EvaluateAll walks the calendar in order, so a promotion made for day N is
// visible when day N+1 is evaluated.
func (s *DayService) EvaluateAll(ctx context.Context) ([]schedule.DayStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.EvaluateAll")
	defer span.End()

	now := s.now()
	days := s.calendar.Days()
	out := make([]schedule.DayStatus, 0, len(days))
	for _, day := range days {
		status, err := s.evaluate(ctx, day, now)
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *DayService) ListDays(ctx context.Context) ([]schedule.DaySetting, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.ListDays")
	defer span.End()

	stored, err := s.dayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list day settings: %w", err)
	}

	byDay := make(map[int]schedule.DaySetting, len(stored))
	for _, item := range stored {
		byDay[item.Day] = item
	}

	days := s.calendar.Days()
	out := make([]schedule.DaySetting, 0, len(days))
	for _, day := range days {
		item, ok := byDay[day]
		if !ok {
			item = schedule.DaySetting{Day: day, IsEnabled: true}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *DayService) SetDayEnabled(ctx context.Context, day int, enabled bool) (schedule.DaySetting, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.SetDayEnabled")
	defer span.End()

	if !s.calendar.Has(day) {
		return schedule.DaySetting{}, fmt.Errorf("%w: %w: day=%d", ErrNotFound, schedule.ErrUnknownDay, day)
	}

	item := schedule.DaySetting{Day: day, IsEnabled: enabled, UpdatedAt: s.now().UTC()}
	if err := s.dayRepo.Update(ctx, item); err != nil {
		return schedule.DaySetting{}, fmt.Errorf("update day setting: %w", err)
	}

	s.logger.InfoContext(ctx, "day setting updated", "day", day, "enabled", enabled)
	return item, nil
}

func (s *DayService) ResetAllDays(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DayService.ResetAllDays")
	defer span.End()

	if err := s.dayRepo.SetAllEnabled(ctx, true); err != nil {
		return fmt.Errorf("enable all days: %w", err)
	}

	s.logger.InfoContext(ctx, "all days enabled")
	return nil
}

func (s *DayService) evaluate(ctx context.Context, day int, now time.Time) (schedule.DayStatus, error) {
	setting, err := s.setting(ctx, day)
	if err != nil {
		return schedule.DayStatus{}, err
	}

	matches, err := s.matchRepo.ListByDay(ctx, day)
	if err != nil {
		return schedule.DayStatus{}, fmt.Errorf("list matches by day: %w", err)
	}
	clocks := make([]string, 0, len(matches))
	for _, m := range matches {
		clocks = append(clocks, m.StartTime)
	}

	status := s.calendar.Evaluate(setting, clocks, now)
	if status.HasStarted {
		if err := s.promote(ctx, day+1, now); err != nil {
			return schedule.DayStatus{}, err
		}
	}
	return status, nil
}

func (s *DayService) promote(ctx context.Context, day int, now time.Time) error {
	if !s.calendar.Has(day) {
		return nil
	}

	next, exists, err := s.dayRepo.Get(ctx, day)
	if err != nil {
		return fmt.Errorf("get day setting: %w", err)
	}
	if !exists || next.IsEnabled {
		return nil
	}

	next.IsEnabled = true
	next.UpdatedAt = now.UTC()
	if err := s.dayRepo.Update(ctx, next); err != nil {
		return fmt.Errorf("promote day %d: %w", day, err)
	}

	s.logger.InfoContext(ctx, "day auto-enabled", "day", day)
	return nil
}

// A missing row means the operator never touched the day.
func (s *DayService) setting(ctx context.Context, day int) (schedule.DaySetting, error) {
	item, exists, err := s.dayRepo.Get(ctx, day)
	if err != nil {
		return schedule.DaySetting{}, fmt.Errorf("get day setting: %w", err)
	}
	if !exists {
		return schedule.DaySetting{Day: day, IsEnabled: true}, nil
	}
	return item, nil
}
