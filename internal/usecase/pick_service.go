package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

const predictionStatsConcurrency = 4

type dayGate interface {
	EvaluateDay(ctx context.Context, day int) (schedule.DayStatus, error)
}

type SavePickInput struct {
	UserID              string
	MatchID             string
	PickedTeamID        string
	PredictedTeam1Score *int
	PredictedTeam2Score *int
}

// PredictionStats is the crowd split on one match. Percentages are rounded
// independently, so they need not sum to 100.
type PredictionStats struct {
	MatchID         string
	Team1ID         string
	Team2ID         string
	Team1Percentage int
	Team2Percentage int
	TotalPicks      int
}

type PickService struct {
	matchRepo bracket.Repository
	pickRepo  pick.Repository
	scoreRepo scoring.Repository
	days      dayGate
	logger    *logging.Logger
	now       func() time.Time
}

func NewPickService(
	matchRepo bracket.Repository,
	pickRepo pick.Repository,
	scoreRepo scoring.Repository,
	days dayGate,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		matchRepo: matchRepo,
		pickRepo:  pickRepo,
		scoreRepo: scoreRepo,
		days:      days,
		logger:    logger,
		now:       time.Now,
	}
}

// SavePick stores a player's first and only pick on a match.
func (s *PickService) SavePick(ctx context.Context, input SavePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SavePick")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PickedTeamID = strings.TrimSpace(input.PickedTeamID)
	if input.UserID == "" {
		return pick.Pick{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return pick.Pick{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return pick.Pick{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if m.IsGraded() {
		return pick.Pick{}, fmt.Errorf("%w: %w", ErrConflict, pick.ErrMatchGraded)
	}

	existing, hasPick, err := s.pickRepo.Get(ctx, input.UserID, input.MatchID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get pick: %w", err)
	}
	if pick.StateOf(m, existing, hasPick) == pick.StateLocked {
		return pick.Pick{}, fmt.Errorf("%w: %w", ErrConflict, pick.ErrPickLocked)
	}

	status, err := s.days.EvaluateDay(ctx, m.Day)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("evaluate day: %w", err)
	}
	if !status.IsPickable {
		return pick.Pick{}, fmt.Errorf("%w: %w: day=%d", ErrConflict, pick.ErrDayClosed, m.Day)
	}

	submission := pick.Submission{
		PickedTeamID:        input.PickedTeamID,
		PredictedTeam1Score: input.PredictedTeam1Score,
		PredictedTeam2Score: input.PredictedTeam2Score,
	}
	if err := pick.Validate(m, submission); err != nil {
		return pick.Pick{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	item := pick.Pick{
		UserID:              input.UserID,
		MatchID:             input.MatchID,
		PickedTeamID:        input.PickedTeamID,
		PredictedTeam1Score: input.PredictedTeam1Score,
		PredictedTeam2Score: input.PredictedTeam2Score,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if hasPick && !existing.CreatedAt.IsZero() {
		item.CreatedAt = existing.CreatedAt
	}

	saved, err := s.pickRepo.SaveIfUnlocked(ctx, item)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("save pick: %w", err)
	}
	if !saved {
		return pick.Pick{}, fmt.Errorf("%w: %w", ErrConflict, pick.ErrPickLocked)
	}

	return item, nil
}

func (s *PickService) GetPick(ctx context.Context, userID, matchID string) (pick.Pick, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetPick")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return pick.Pick{}, false, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	item, exists, err := s.pickRepo.Get(ctx, userID, matchID)
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}
	return item, exists, nil
}

func (s *PickService) ListForUser(ctx context.Context, userID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListForUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.pickRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list picks for user: %w", err)
	}
	return items, nil
}

// MatchPredictionStats returns nil while either participant is unresolved.
func (s *PickService) MatchPredictionStats(ctx context.Context, matchID string) (*PredictionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.MatchPredictionStats")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return s.statsFor(ctx, m)
}

// PredictionStatsByDay computes stats for every match of a day concurrently.
// The result follows match order; unresolved matches are omitted.
func (s *PickService) PredictionStatsByDay(ctx context.Context, day int) ([]PredictionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.PredictionStatsByDay")
	defer span.End()

	if day <= 0 {
		return nil, fmt.Errorf("%w: day must be > 0", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list matches by day: %w", err)
	}

	slots := make([]*PredictionStats, len(matches))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(predictionStatsConcurrency).WithCancelOnError()
	for i, m := range matches {
		p.Go(func(ctx context.Context) error {
			stats, err := s.statsFor(ctx, m)
			if err != nil {
				return err
			}
			slots[i] = stats
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make([]PredictionStats, 0, len(slots))
	for _, stats := range slots {
		if stats != nil {
			out = append(out, *stats)
		}
	}
	return out, nil
}

// ResetMatchPicks deletes every pick and score on the given matches.
func (s *PickService) ResetMatchPicks(ctx context.Context, matchIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ResetMatchPicks")
	defer span.End()

	ids := make([]string, 0, len(matchIDs))
	seen := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}

	if err := s.pickRepo.DeleteByMatchIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}
	if err := s.scoreRepo.DeleteByMatchIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}

	s.logger.WarnContext(ctx, "match picks reset", "match_ids", ids)
	return nil
}

func (s *PickService) statsFor(ctx context.Context, m bracket.Match) (*PredictionStats, error) {
	if !m.HasResolvedParticipants() {
		return nil, nil
	}

	picks, err := s.pickRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list picks by match: %w", err)
	}

	out := &PredictionStats{MatchID: m.ID, Team1ID: m.Team1ID, Team2ID: m.Team2ID, TotalPicks: len(picks)}
	if len(picks) == 0 {
		return out, nil
	}

	var team1, team2 int
	for _, p := range picks {
		switch p.PickedTeamID {
		case m.Team1ID:
			team1++
		case m.Team2ID:
			team2++
		}
	}
	out.Team1Percentage = roundPercent(team1, len(picks))
	out.Team2Percentage = roundPercent(team2, len(picks))
	return out, nil
}

// roundPercent rounds half up.
func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
