package httpapi

import (
	"net/http"
	"strings"

	"github.com/thedyrex/pickems/internal/usecase"
)

func (h *Handler) SavePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePick")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req savePickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// The leaderboard reads names from the mirrored profile; a failed sync
	// must not block the pick.
	if err := h.profileService.Sync(ctx, principal); err != nil {
		h.logger.WarnContext(ctx, "sync profile failed", "user_id", principal.UserID, "error", err)
	}

	item, err := h.pickService.SavePick(ctx, usecase.SavePickInput{
		UserID:              principal.UserID,
		MatchID:             matchID,
		PickedTeamID:        req.PickedTeamID,
		PredictedTeam1Score: req.PredictedTeam1Score,
		PredictedTeam2Score: req.PredictedTeam2Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save pick failed", "user_id", principal.UserID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, pickToDTO(item))
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.pickService.ListForUser(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list picks failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]pickDTO, 0, len(items))
	for _, item := range items {
		out = append(out, pickToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyScores")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.scoringService.ListUserScores(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list scores failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scoreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, scoreToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMyRank(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyRank")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rank, ranked, err := h.leaderboardService.GetUserRank(ctx, principal.UserID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get rank failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := rankDTO{UserID: principal.UserID}
	if ranked {
		out.Rank = &rank
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
