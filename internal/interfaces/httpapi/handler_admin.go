package httpapi

import (
	"net/http"
	"strings"

	"github.com/thedyrex/pickems/internal/usecase"
)

func (h *Handler) GradeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GradeMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req gradeMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.gradingService.GradeMatch(ctx, usecase.GradeMatchInput{
		MatchID:    matchID,
		Team1Score: *req.Team1Score,
		Team2Score: *req.Team2Score,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "grade match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match graded",
		"match_id", matchID,
		"winner_id", result.Match.WinnerID,
		"progressed", len(result.Progressed),
		"scores_written", result.ScoresWritten,
	)
	writeSuccess(ctx, w, http.StatusOK, gradeMatchToDTO(result))
}

func (h *Handler) ClearMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearMatchResult")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.gradingService.ClearMatchResult(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "clear match result failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if len(result.OrphanedPicks) > 0 {
		h.logger.WarnContext(ctx, "cleared result left orphaned picks", "match_id", matchID, "orphaned_picks", len(result.OrphanedPicks))
	}
	writeSuccess(ctx, w, http.StatusOK, clearMatchResultToDTO(result))
}

func (h *Handler) SetDoublePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetDoublePoints")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req toggleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.gradingService.SetDoublePoints(ctx, matchID, *req.Enabled)
	if err != nil {
		h.logger.WarnContext(ctx, "set double points failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ResetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetBracket")
	defer span.End()

	n, err := h.bracketService.ResetBracket(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reset bracket failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "bracket reset", "matches", n)
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"matches_reset": n})
}

func (h *Handler) ResetPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetPicks")
	defer span.End()

	var req resetPicksRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.pickService.ResetMatchPicks(ctx, req.MatchIDs); err != nil {
		h.logger.ErrorContext(ctx, "reset picks failed", "match_ids", req.MatchIDs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"match_ids": req.MatchIDs})
}

func (h *Handler) RecalculateScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateScores")
	defer span.End()

	result, err := h.scoringService.RecalculateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate scores failed", "failed_matches", result.FailedMatches, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recalculateToDTO(result))
}

func (h *Handler) ClearScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearScores")
	defer span.End()

	if err := h.scoringService.ClearAllScores(ctx); err != nil {
		h.logger.ErrorContext(ctx, "clear scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *Handler) ListDaySettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDaySettings")
	defer span.End()

	items, err := h.dayService.ListDays(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list day settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]daySettingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, daySettingToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SetDayEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetDayEnabled")
	defer span.End()

	day, err := pathDay(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req toggleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.dayService.SetDayEnabled(ctx, day, *req.Enabled)
	if err != nil {
		h.logger.WarnContext(ctx, "set day enabled failed", "day", day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, daySettingToDTO(item))
}

func (h *Handler) ResetDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDays")
	defer span.End()

	if err := h.dayService.ResetAllDays(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reset days failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"reset": true})
}

func (h *Handler) UpdateTeamLogo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamLogo")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req updateLogoRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.UpdateLogo(ctx, teamID, req.Logo)
	if err != nil {
		h.logger.WarnContext(ctx, "update team logo failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}
