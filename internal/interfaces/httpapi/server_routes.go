package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/stats", handler.GetMatchPredictionStats)
	mux.HandleFunc("GET /v1/days", handler.ListDays)
	mux.HandleFunc("GET /v1/days/{day}/stats", handler.ListPredictionStatsByDay)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/leaderboard", handler.ListLeaderboard)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/matches/{matchID}/pick", RequireAuth(verifier, http.HandlerFunc(handler.SavePick)))
	mux.Handle("GET /v1/me/picks", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPicks)))
	mux.Handle("GET /v1/me/scores", RequireAuth(verifier, http.HandlerFunc(handler.ListMyScores)))
	mux.Handle("GET /v1/me/rank", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRank)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(fn))
	}

	mux.Handle("POST /v1/admin/matches/{matchID}/result", admin(handler.GradeMatch))
	mux.Handle("DELETE /v1/admin/matches/{matchID}/result", admin(handler.ClearMatchResult))
	mux.Handle("PUT /v1/admin/matches/{matchID}/double-points", admin(handler.SetDoublePoints))
	mux.Handle("POST /v1/admin/bracket/reset", admin(handler.ResetBracket))
	mux.Handle("POST /v1/admin/picks/reset", admin(handler.ResetPicks))
	mux.Handle("POST /v1/admin/scores/recalculate", admin(handler.RecalculateScores))
	mux.Handle("DELETE /v1/admin/scores", admin(handler.ClearScores))
	mux.Handle("GET /v1/admin/days", admin(handler.ListDaySettings))
	mux.Handle("PUT /v1/admin/days/{day}", admin(handler.SetDayEnabled))
	mux.Handle("POST /v1/admin/days/reset", admin(handler.ResetDays))
	mux.Handle("PUT /v1/admin/teams/{teamID}/logo", admin(handler.UpdateTeamLogo))
}
