package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/thedyrex/pickems/internal/config"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

// Telemetry owns the process-wide tracing and profiling backends that were
// switched on by config.
type Telemetry struct {
	logger     *logging.Logger
	components []component
}

// Start brings up uptrace, pyroscope and the pprof listener in that order.
// If one fails, the ones already running are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}

	starters := []struct {
		name  string
		start func(config.Config, *logging.Logger) (stopFunc, error)
	}{
		{"uptrace", startTracing},
		{"pyroscope", startProfiler},
		{"pprof", startPprof},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, t.logger)
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", s.name, err)
		}
		if stop != nil {
			t.components = append(t.components, component{name: s.name, stop: stop})
		}
	}
	return t, nil
}

// Enabled lists the running backends.
func (t *Telemetry) Enabled() []string {
	names := make([]string, 0, len(t.components))
	for _, c := range t.components {
		names = append(names, c.name)
	}
	return names
}

// Shutdown stops backends in reverse start order and reports every failure.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.components) - 1; i >= 0; i-- {
		c := t.components[i]
		if err := c.stop(ctx); err != nil {
			t.logger.Warn("telemetry shutdown failed", "component", c.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	t.components = nil
	return errors.Join(errs...)
}
