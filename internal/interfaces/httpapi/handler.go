package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/thedyrex/pickems/internal/domain/user"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/usecase"
)

type Handler struct {
	bracketService     *usecase.BracketService
	gradingService     *usecase.GradingService
	pickService        *usecase.PickService
	scoringService     *usecase.ScoringService
	dayService         *usecase.DayService
	leaderboardService *usecase.LeaderboardService
	teamService        *usecase.TeamService
	profileService     *usecase.ProfileService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	bracketService *usecase.BracketService,
	gradingService *usecase.GradingService,
	pickService *usecase.PickService,
	scoringService *usecase.ScoringService,
	dayService *usecase.DayService,
	leaderboardService *usecase.LeaderboardService,
	teamService *usecase.TeamService,
	profileService *usecase.ProfileService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		bracketService:     bracketService,
		gradingService:     gradingService,
		pickService:        pickService,
		scoringService:     scoringService,
		dayService:         dayService,
		leaderboardService: leaderboardService,
		teamService:        teamService,
		profileService:     profileService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathDay(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("day"))
	day, err := strconv.Atoi(raw)
	if err != nil || day <= 0 {
		return 0, fmt.Errorf("%w: day must be a positive integer", usecase.ErrInvalidInput)
	}
	return day, nil
}

func queryDay(r *http.Request) (int, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("day"))
	if raw == "" {
		return 0, false, nil
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day <= 0 {
		return 0, false, fmt.Errorf("%w: day must be a positive integer", usecase.ErrInvalidInput)
	}
	return day, true, nil
}
