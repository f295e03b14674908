package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	now := time.Date(2024, time.November, 26, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteSkipsIgnoredErrors(t *testing.T) {
	b, _ := newTestBreaker(1)
	errRejected := errors.New("token rejected")
	b.IsFailure = func(err error) bool { return !errors.Is(err, errRejected) }

	for i := 0; i < 3; i++ {
		err := b.Execute(context.Background(), func(context.Context) error { return errRejected })
		if !errors.Is(err, errRejected) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("ignored errors must not trip the breaker, got %s", state)
	}

	_ = b.Execute(context.Background(), func(context.Context) error { return errors.New("timeout") })
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after counted failure, got %s", state)
	}

	called := false
	err := b.Execute(context.Background(), func(context.Context) error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("open breaker must short-circuit: err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_DisabledAlwaysRuns(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		_ = b.Execute(context.Background(), func(context.Context) error { return errors.New("down") })
	}
	calls := 0
	_ = b.Execute(context.Background(), func(context.Context) error { calls++; return nil })
	if calls != 1 {
		t.Fatalf("disabled breaker must run fn, calls=%d", calls)
	}
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true, FailureThreshold: -1, HalfOpenMaxReq: 0}.withDefaults()
	if cfg.FailureThreshold != defaultFailureThreshold || cfg.OpenTimeout != defaultOpenTimeout || cfg.HalfOpenMaxReq != defaultHalfOpenProbes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	kept := CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Second, HalfOpenMaxReq: 3}.withDefaults()
	if kept.FailureThreshold != 2 || kept.OpenTimeout != time.Second || kept.HalfOpenMaxReq != 3 || kept.Enabled {
		t.Fatalf("explicit values must survive: %+v", kept)
	}
}
