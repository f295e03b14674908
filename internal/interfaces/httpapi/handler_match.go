package httpapi

import (
	"net/http"
	"strings"

	"github.com/thedyrex/pickems/internal/domain/bracket"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	day, byDay, err := queryDay(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var items []bracket.Match
	if byDay {
		items, err = h.bracketService.ListMatchesByDay(ctx, day)
	} else {
		items, err = h.bracketService.ListMatches(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	item, err := h.bracketService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetMatchPredictionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchPredictionStats")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	stats, err := h.pickService.MatchPredictionStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get prediction stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if stats == nil {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionStatsToDTO(*stats))
}

func (h *Handler) ListPredictionStatsByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPredictionStatsByDay")
	defer span.End()

	day, err := pathDay(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.pickService.PredictionStatsByDay(ctx, day)
	if err != nil {
		h.logger.ErrorContext(ctx, "list prediction stats failed", "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionStatsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionStatsToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDays")
	defer span.End()

	items, err := h.dayService.EvaluateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluate days failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]dayStatusDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dayStatusToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboard")
	defer span.End()

	items, err := h.leaderboardService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(items))
	for i, item := range items {
		out = append(out, leaderboardEntryToDTO(i+1, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
