package httpapi

import (
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/domain/team"
	"github.com/thedyrex/pickems/internal/usecase"
)

type savePickRequest struct {
	PickedTeamID        string `json:"picked_team_id" validate:"required,max=64"`
	PredictedTeam1Score *int   `json:"predicted_team1_score"`
	PredictedTeam2Score *int   `json:"predicted_team2_score"`
}

type gradeMatchRequest struct {
	Team1Score *int `json:"team1_score" validate:"required"`
	Team2Score *int `json:"team2_score" validate:"required"`
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type resetPicksRequest struct {
	MatchIDs []string `json:"match_ids" validate:"required,min=1,dive,required"`
}

type updateLogoRequest struct {
	Logo string `json:"logo" validate:"required,max=512"`
}

type matchDTO struct {
	ID             string  `json:"id"`
	MatchNumber    int     `json:"match_number"`
	Team1ID        string  `json:"team1_id,omitempty"`
	Team2ID        string  `json:"team2_id,omitempty"`
	Team1Source    *string `json:"team1_source,omitempty"`
	Team2Source    *string `json:"team2_source,omitempty"`
	Day            int     `json:"day"`
	StartTime      string  `json:"start_time"`
	Round          string  `json:"round"`
	IsUpperBracket bool    `json:"is_upper_bracket"`
	Team1Score     *int    `json:"team1_score"`
	Team2Score     *int    `json:"team2_score"`
	WinnerID       string  `json:"winner_id,omitempty"`
	IsDoublePoints bool    `json:"is_double_points"`
	MaxScore       int     `json:"max_score"`
	IsGraded       bool    `json:"is_graded"`
}

type pickDTO struct {
	UserID              string    `json:"user_id"`
	MatchID             string    `json:"match_id"`
	PickedTeamID        string    `json:"picked_team_id"`
	PredictedTeam1Score *int      `json:"predicted_team1_score"`
	PredictedTeam2Score *int      `json:"predicted_team2_score"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type scoreDTO struct {
	MatchID       string    `json:"match_id"`
	PointsEarned  int       `json:"points_earned"`
	CorrectWinner bool      `json:"correct_winner"`
	CorrectScore  bool      `json:"correct_score"`
	CalculatedAt  time.Time `json:"calculated_at"`
}

type leaderboardEntryDTO struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	TotalPoints    int    `json:"total_points"`
	CorrectWinners int    `json:"correct_winners"`
	CorrectScores  int    `json:"correct_scores"`
	MatchesScored  int    `json:"matches_scored"`
}

type rankDTO struct {
	UserID string `json:"user_id"`
	Rank   *int   `json:"rank"`
}

type dayStatusDTO struct {
	Day          int        `json:"day"`
	IsEnabled    bool       `json:"is_enabled"`
	FirstMatchAt *time.Time `json:"first_match_at"`
	HasStarted   bool       `json:"has_started"`
	IsTimeLocked bool       `json:"is_time_locked"`
	IsPickable   bool       `json:"is_pickable"`
}

type daySettingDTO struct {
	Day       int       `json:"day"`
	IsEnabled bool      `json:"is_enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
	Seed int    `json:"seed"`
}

type predictionStatsDTO struct {
	MatchID         string `json:"match_id"`
	Team1ID         string `json:"team1_id"`
	Team2ID         string `json:"team2_id"`
	Team1Percentage int    `json:"team1_percentage"`
	Team2Percentage int    `json:"team2_percentage"`
	TotalPicks      int    `json:"total_picks"`
}

type gradeMatchDTO struct {
	Match                 matchDTO   `json:"match"`
	Progressed            []matchDTO `json:"progressed"`
	InvalidatedDependents []matchDTO `json:"invalidated_dependents"`
	ScoresWritten         int        `json:"scores_written"`
}

type clearMatchResultDTO struct {
	Match                 matchDTO   `json:"match"`
	Cleared               []matchDTO `json:"cleared"`
	InvalidatedDependents []matchDTO `json:"invalidated_dependents"`
	OrphanedPicks         []pickDTO  `json:"orphaned_picks"`
	ScoresWritten         int        `json:"scores_written"`
}

type recalculateDTO struct {
	Matches       int      `json:"matches"`
	ScoresWritten int      `json:"scores_written"`
	FailedMatches []string `json:"failed_matches"`
}

func matchToDTO(m bracket.Match) matchDTO {
	return matchDTO{
		ID:             m.ID,
		MatchNumber:    m.MatchNumber,
		Team1ID:        m.Team1ID,
		Team2ID:        m.Team2ID,
		Team1Source:    refString(m.Team1Source),
		Team2Source:    refString(m.Team2Source),
		Day:            m.Day,
		StartTime:      m.StartTime,
		Round:          m.Round,
		IsUpperBracket: m.IsUpperBracket,
		Team1Score:     m.Team1Score,
		Team2Score:     m.Team2Score,
		WinnerID:       m.WinnerID,
		IsDoublePoints: m.IsDoublePoints,
		MaxScore:       m.MaxScore(),
		IsGraded:       m.IsGraded(),
	}
}

func matchesToDTO(items []bracket.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func refString(ref *bracket.DependencyRef) *string {
	if ref == nil {
		return nil
	}
	v := ref.String()
	return &v
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		UserID:              p.UserID,
		MatchID:             p.MatchID,
		PickedTeamID:        p.PickedTeamID,
		PredictedTeam1Score: p.PredictedTeam1Score,
		PredictedTeam2Score: p.PredictedTeam2Score,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func scoreToDTO(s scoring.Score) scoreDTO {
	return scoreDTO{
		MatchID:       s.MatchID,
		PointsEarned:  s.PointsEarned,
		CorrectWinner: s.CorrectWinner,
		CorrectScore:  s.CorrectScore,
		CalculatedAt:  s.CalculatedAt,
	}
}

// Emails stay server side; the public board only shows display names.
func leaderboardEntryToDTO(rank int, e leaderboard.Entry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:           rank,
		UserID:         e.UserID,
		DisplayName:    e.DisplayName,
		TotalPoints:    e.TotalPoints,
		CorrectWinners: e.CorrectWinners,
		CorrectScores:  e.CorrectScores,
		MatchesScored:  e.MatchesScored,
	}
}

func dayStatusToDTO(s schedule.DayStatus) dayStatusDTO {
	return dayStatusDTO{
		Day:          s.Day,
		IsEnabled:    s.IsEnabled,
		FirstMatchAt: s.FirstMatchAt,
		HasStarted:   s.HasStarted,
		IsTimeLocked: s.IsTimeLocked,
		IsPickable:   s.IsPickable,
	}
}

func daySettingToDTO(s schedule.DaySetting) daySettingDTO {
	return daySettingDTO{Day: s.Day, IsEnabled: s.IsEnabled, UpdatedAt: s.UpdatedAt}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, Logo: t.Logo, Seed: t.Seed}
}

func predictionStatsToDTO(s usecase.PredictionStats) predictionStatsDTO {
	return predictionStatsDTO{
		MatchID:         s.MatchID,
		Team1ID:         s.Team1ID,
		Team2ID:         s.Team2ID,
		Team1Percentage: s.Team1Percentage,
		Team2Percentage: s.Team2Percentage,
		TotalPicks:      s.TotalPicks,
	}
}

func gradeMatchToDTO(r usecase.GradeMatchResult) gradeMatchDTO {
	return gradeMatchDTO{
		Match:                 matchToDTO(r.Match),
		Progressed:            matchesToDTO(r.Progressed),
		InvalidatedDependents: matchesToDTO(r.InvalidatedDependents),
		ScoresWritten:         r.ScoresWritten,
	}
}

func clearMatchResultToDTO(r usecase.ClearMatchResultOutput) clearMatchResultDTO {
	orphaned := make([]pickDTO, 0, len(r.OrphanedPicks))
	for _, item := range r.OrphanedPicks {
		orphaned = append(orphaned, pickToDTO(item))
	}
	return clearMatchResultDTO{
		Match:                 matchToDTO(r.Match),
		Cleared:               matchesToDTO(r.Cleared),
		InvalidatedDependents: matchesToDTO(r.InvalidatedDependents),
		OrphanedPicks:         orphaned,
		ScoresWritten:         r.ScoresWritten,
	}
}

func recalculateToDTO(r usecase.RecalculateAllResult) recalculateDTO {
	failed := r.FailedMatches
	if failed == nil {
		failed = []string{}
	}
	return recalculateDTO{Matches: r.Matches, ScoresWritten: r.ScoresWritten, FailedMatches: failed}
}
