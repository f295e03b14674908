package anubis

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/thedyrex/pickems/internal/domain/user"
	"github.com/thedyrex/pickems/internal/platform/cache"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/platform/resilience"
	"github.com/thedyrex/pickems/internal/usecase"
)

const (
	defaultTimeout  = 3 * time.Second
	defaultCacheTTL = 30 * time.Second
	maxResponseSize = 1 << 20
	roleAdmin       = "admin"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errTransient marks failures that count against the circuit breaker.
var errTransient = crerr.New("anubis transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies bearer tokens against the Anubis introspection endpoint.
type Client struct {
	http          *fasthttp.Client
	introspectURL string
	adminKey      string
	timeout       time.Duration
	admins        user.AdminList
	breaker       *resilience.CircuitBreaker
	tokens        *cache.Store
	logger        *logging.Logger
}

func NewClient(cfg Config, admins user.AdminList, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.IsFailure = isCircuitFailure

	return &Client{
		http: &fasthttp.Client{
			Name:                "pickems-anubis",
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxResponseBodySize: maxResponseSize,
		},
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		timeout:       cfg.Timeout,
		admins:        admins,
		breaker:       breaker,
		tokens:        cache.NewStore(cfg.CacheTTL),
		logger:        logger.Named("anubis"),
	}
}

// VerifyAccessToken resolves a bearer token to a principal. Successful
// lookups are cached by token hash; denials are not.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	principal, err := cache.Load(ctx, c.tokens, tokenCacheKey(token), func(ctx context.Context) (user.Principal, error) {
		var out user.Principal
		err := c.breaker.Execute(ctx, func(ctx context.Context) error {
			p, err := c.introspect(ctx, token)
			if err != nil {
				return err
			}
			out = p
			return nil
		})
		return out, err
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) || crerr.Is(err, errTransient) {
			return user.Principal{}, fmt.Errorf("%w: verify access token: %w", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	return c.admins.Apply(principal), nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if err := ctx.Err(); err != nil {
		return user.Principal{}, err
	}

	body, err := json.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}
	req.SetBodyRaw(body)

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		c.logger.WarnContext(ctx, "anubis introspection request failed", "error", err)
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "request introspection to anubis"), errTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusUnauthorized:
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "introspection denied")
	case status == http.StatusForbidden:
		// Anubis rejected our admin key, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", status)
		return user.Principal{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis introspection forbidden")
	case status >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection server error", "status_code", status)
		return user.Principal{}, crerr.Mark(crerr.Newf("anubis introspection failed with status %d", status), errTransient)
	case status != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", status)
		return user.Principal{}, crerr.Newf("anubis introspection failed with status %d", status)
	}

	var decoded introspectResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal introspect response")
	}
	if !decoded.Active {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "inactive token")
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return decoded.principal(), nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}
	return deadline
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active      bool     `json:"active"`
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	IsAdmin     bool     `json:"is_admin"`
	Roles       []string `json:"roles"`
}

func (r introspectResponse) principal() user.Principal {
	name := strings.TrimSpace(r.DisplayName)
	if name == "" {
		name = strings.TrimSpace(r.Name)
	}

	isAdmin := r.IsAdmin
	for _, role := range r.Roles {
		if strings.EqualFold(strings.TrimSpace(role), roleAdmin) {
			isAdmin = true
		}
	}

	return user.Principal{
		UserID:      r.UserID,
		Email:       strings.TrimSpace(r.Email),
		DisplayName: name,
		IsAdmin:     isAdmin,
	}
}
