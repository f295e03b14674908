package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/infrastructure/repository/memory"
)

func TestDayService_EvaluateDay_PromotesNextDay(t *testing.T) {
	t.Parallel()

	// 2024-11-27 4:00 PM EST: day 2 is under way.
	e := newTestEngine(t, time.Date(2024, time.November, 27, 21, 0, 0, 0, time.UTC))
	if _, err := e.dayService.SetDayEnabled(t.Context(), 3, false); err != nil {
		t.Fatalf("disable day 3: %v", err)
	}

	status, err := e.dayService.EvaluateDay(t.Context(), 2)
	if err != nil {
		t.Fatalf("evaluate day 2: %v", err)
	}
	if !status.HasStarted || !status.IsTimeLocked || status.IsPickable {
		t.Fatalf("unexpected day 2 status: %+v", status)
	}

	next, ok, _ := e.days.Get(t.Context(), 3)
	if !ok || !next.IsEnabled {
		t.Fatalf("expected day 3 auto-enabled: %+v", next)
	}
}

func TestDayService_EvaluateDay_FirstDayStaysOpen(t *testing.T) {
	t.Parallel()

	// 2024-11-26 5:00 PM EST.
	e := newTestEngine(t, time.Date(2024, time.November, 26, 22, 0, 0, 0, time.UTC))
	if _, err := e.dayService.SetDayEnabled(t.Context(), 2, false); err != nil {
		t.Fatalf("disable day 2: %v", err)
	}

	status, err := e.dayService.EvaluateDay(t.Context(), 1)
	if err != nil {
		t.Fatalf("evaluate day 1: %v", err)
	}
	if !status.HasStarted || status.IsTimeLocked || !status.IsPickable {
		t.Fatalf("unexpected day 1 status: %+v", status)
	}
	if status.FirstMatchAt == nil || status.FirstMatchAt.Hour() != 15 {
		t.Fatalf("unexpected first match time: %v", status.FirstMatchAt)
	}

	if next, _, _ := e.days.Get(t.Context(), 2); !next.IsEnabled {
		t.Fatalf("expected day 2 auto-enabled once day 1 started")
	}
}

func TestDayService_EvaluateDay_NoPromotionBeforeStart(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	if _, err := e.dayService.SetDayEnabled(t.Context(), 2, false); err != nil {
		t.Fatalf("disable day 2: %v", err)
	}

	statuses, err := e.dayService.EvaluateAll(t.Context())
	if err != nil {
		t.Fatalf("evaluate all: %v", err)
	}
	if len(statuses) != 5 || statuses[1].IsPickable {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
	if next, _, _ := e.days.Get(t.Context(), 2); next.IsEnabled {
		t.Fatalf("day 2 must stay disabled before day 1 starts")
	}
}

func TestDayService_UnknownDay(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	_, err := e.dayService.EvaluateDay(t.Context(), 9)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, schedule.ErrUnknownDay) {
		t.Fatalf("expected unknown day, got %v", err)
	}
	if _, err := e.dayService.SetDayEnabled(t.Context(), 0, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDayService_ListDays_MissingRowsDefaultEnabled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	svc := NewDayService(e.days, e.matches, schedule.DefaultCalendar(), nil)
	if _, err := svc.SetDayEnabled(t.Context(), 4, false); err != nil {
		t.Fatalf("disable day 4: %v", err)
	}

	empty := NewDayService(memory.NewDayRepository(nil), e.matches, schedule.DefaultCalendar(), nil)
	items, err := empty.ListDays(t.Context())
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	for _, item := range items {
		if !item.IsEnabled {
			t.Fatalf("missing day %d must default to enabled", item.Day)
		}
	}

	if err := svc.ResetAllDays(t.Context()); err != nil {
		t.Fatalf("reset days: %v", err)
	}
	items, _ = svc.ListDays(t.Context())
	if len(items) != 5 || !items[3].IsEnabled {
		t.Fatalf("expected every day enabled after reset: %+v", items)
	}
}
