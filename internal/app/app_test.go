package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thedyrex/pickems/internal/config"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

func TestNew_InMemoryServesMatches(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	app, err := New(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	if _, err := New(t.Context(), config.Config{}, nil); err == nil {
		t.Fatalf("expected error for empty HTTP addr")
	}
}
