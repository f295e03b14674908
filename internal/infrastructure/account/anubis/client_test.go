package anubis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/thedyrex/pickems/internal/domain/user"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/platform/resilience"
	"github.com/thedyrex/pickems/internal/usecase"
)

func newTestClient(baseURL string, admins user.AdminList, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(Config{
		BaseURL:        baseURL,
		IntrospectPath: "/v1/auth/introspect",
		AdminKey:       "admin-secret",
		Timeout:        time.Second,
		CircuitBreaker: breaker,
	}, admins, logging.NewNop())
}

func TestClientVerifyAccessToken_SendsAdminKeyAndParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := jsoniter.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":       true,
			"user_id":      "user-123",
			"email":        "ana@example.com",
			"display_name": "Ana",
			"roles":        []string{"viewer"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil, resilience.CircuitBreakerConfig{Enabled: false})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.DisplayName != "Ana" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if principal.IsAdmin {
		t.Fatalf("viewer must not be admin")
	}
}

func TestClientVerifyAccessToken_AdminFromListAndRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = jsoniter.NewDecoder(r.Body).Decode(&req)

		resp := map[string]any{"active": true, "user_id": req["token"], "email": req["token"] + "@example.com"}
		if req["token"] == "role-admin" {
			resp["roles"] = []string{"Admin"}
		}
		_ = jsoniter.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, user.NewAdminList([]string{" Listed@Example.com "}), resilience.CircuitBreakerConfig{})

	listed, err := client.VerifyAccessToken(context.Background(), "listed")
	if err != nil || !listed.IsAdmin {
		t.Fatalf("expected listed email to be admin: %+v err=%v", listed, err)
	}
	byRole, err := client.VerifyAccessToken(context.Background(), "role-admin")
	if err != nil || !byRole.IsAdmin {
		t.Fatalf("expected admin role to be admin: %+v err=%v", byRole, err)
	}
	plain, err := client.VerifyAccessToken(context.Background(), "plain")
	if err != nil || plain.IsAdmin {
		t.Fatalf("expected plain user: %+v err=%v", plain, err)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil, resilience.CircuitBreakerConfig{})

	_, err := client.VerifyAccessToken(context.Background(), "invalid-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := client.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestClientVerifyAccessToken_ForbiddenMappedToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil, resilience.CircuitBreakerConfig{})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientVerifyAccessToken_UsesInMemoryCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-cache",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil, resilience.CircuitBreakerConfig{})

	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.UserID)
		}
	}

	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token-down")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop the third call, upstream calls=%d", calls.Load())
	}
	if client.breaker.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %v", client.breaker.State())
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	cases := map[string][2]string{
		"https://anubis.local/v1/introspect": {"https://anubis.local/", "v1/introspect"},
		"https://other.local/x":              {"https://anubis.local", "https://other.local/x"},
		"https://anubis.local":               {"https://anubis.local/", ""},
	}
	for want, in := range cases {
		if got := buildURL(in[0], in[1]); got != want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
