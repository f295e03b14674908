package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

type matchRescorer interface {
	RecalculateMatch(ctx context.Context, matchID string) (int, error)
}

type GradeMatchInput struct {
	MatchID    string
	Team1Score int
	Team2Score int
}

// GradeMatchResult reports the graded match and the dependents it rewrote.
// InvalidatedDependents lists the rewritten ones that already had a result.
type GradeMatchResult struct {
	Match                 bracket.Match
	Progressed            []bracket.Match
	InvalidatedDependents []bracket.Match
	ScoresWritten         int
}

type ClearMatchResultOutput struct {
	Match                 bracket.Match
	Cleared               []bracket.Match
	InvalidatedDependents []bracket.Match
	OrphanedPicks         []pick.Pick
	ScoresWritten         int
}

// GradingService records match results. The result and its progression are
// written together; rescoring follows. Rerunning a call repairs a failure
// between the two steps.
type GradingService struct {
	matchRepo bracket.Repository
	pickRepo  pick.Repository
	bracket   *BracketService
	scorer    matchRescorer
	logger    *logging.Logger
}

func NewGradingService(
	matchRepo bracket.Repository,
	pickRepo pick.Repository,
	bracketService *BracketService,
	scorer matchRescorer,
	logger *logging.Logger,
) *GradingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GradingService{
		matchRepo: matchRepo,
		pickRepo:  pickRepo,
		bracket:   bracketService,
		scorer:    scorer,
		logger:    logger,
	}
}

func (s *GradingService) GradeMatch(ctx context.Context, input GradeMatchInput) (GradeMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.GradeMatch")
	defer span.End()

	current, err := s.getMatch(ctx, input.MatchID)
	if err != nil {
		return GradeMatchResult{}, err
	}

	graded, err := current.WithResult(input.Team1Score, input.Team2Score)
	if err != nil {
		return GradeMatchResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	progressed, err := s.bracket.planProgression(ctx, graded.ID, graded.WinnerID, graded.LoserID())
	if err != nil {
		return GradeMatchResult{}, err
	}

	batch := append([]bracket.Match{graded}, progressed...)
	if err := s.bracket.write(ctx, batch); err != nil {
		return GradeMatchResult{}, err
	}

	written, err := s.scorer.RecalculateMatch(ctx, graded.ID)
	if err != nil {
		return GradeMatchResult{}, fmt.Errorf("rescore graded match: %w", err)
	}

	invalidated := gradedAmong(progressed)
	if len(invalidated) > 0 {
		s.logger.WarnContext(ctx, "graded dependents changed participants",
			"match_id", graded.ID,
			"dependents", matchIDs(invalidated),
		)
	}

	s.logger.InfoContext(ctx, "match graded",
		"match_id", graded.ID,
		"winner_id", graded.WinnerID,
		"team1_score", input.Team1Score,
		"team2_score", input.Team2Score,
		"progressed", matchIDs(progressed),
		"scores_written", written,
	)

	return GradeMatchResult{
		Match:                 graded,
		Progressed:            progressed,
		InvalidatedDependents: invalidated,
		ScoresWritten:         written,
	}, nil
}

// ClearMatchResult removes a result and empties the slots it fed, one hop only.
// Dependents that were already graded keep their results and are returned as
// InvalidatedDependents. Picks already made on the dependents are left locked;
// the ones whose team is no longer a participant are returned as OrphanedPicks.
func (s *GradingService) ClearMatchResult(ctx context.Context, matchID string) (ClearMatchResultOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.ClearMatchResult")
	defer span.End()

	current, err := s.getMatch(ctx, matchID)
	if err != nil {
		return ClearMatchResultOutput{}, err
	}

	cleared := current.WithoutResult()
	dependents, err := s.bracket.planClear(ctx, cleared.ID)
	if err != nil {
		return ClearMatchResultOutput{}, err
	}

	orphaned, err := s.orphanedPicks(ctx, dependents)
	if err != nil {
		return ClearMatchResultOutput{}, err
	}

	batch := append([]bracket.Match{cleared}, dependents...)
	if err := s.bracket.write(ctx, batch); err != nil {
		return ClearMatchResultOutput{}, err
	}

	written, err := s.scorer.RecalculateMatch(ctx, cleared.ID)
	if err != nil {
		return ClearMatchResultOutput{}, fmt.Errorf("rescore cleared match: %w", err)
	}

	invalidated := gradedAmong(dependents)
	if len(invalidated) > 0 {
		s.logger.WarnContext(ctx, "cleared result left graded dependents without a participant",
			"match_id", cleared.ID,
			"dependents", matchIDs(invalidated),
		)
	}
	if len(orphaned) > 0 {
		s.logger.WarnContext(ctx, "cleared result left orphaned picks",
			"match_id", cleared.ID,
			"orphaned_picks", len(orphaned),
			"dependents", matchIDs(dependents),
		)
	}
	s.logger.InfoContext(ctx, "match result cleared", "match_id", cleared.ID, "scores_written", written)

	return ClearMatchResultOutput{
		Match:                 cleared,
		Cleared:               dependents,
		InvalidatedDependents: invalidated,
		OrphanedPicks:         orphaned,
		ScoresWritten:         written,
	}, nil
}

func (s *GradingService) SetDoublePoints(ctx context.Context, matchID string, enabled bool) (bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GradingService.SetDoublePoints")
	defer span.End()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return bracket.Match{}, err
	}

	item.IsDoublePoints = enabled
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return bracket.Match{}, fmt.Errorf("update match: %w", err)
	}

	if _, err := s.scorer.RecalculateMatch(ctx, item.ID); err != nil {
		return bracket.Match{}, fmt.Errorf("rescore match after double points change: %w", err)
	}

	s.logger.InfoContext(ctx, "double points updated", "match_id", item.ID, "enabled", enabled)
	return item, nil
}

func (s *GradingService) getMatch(ctx context.Context, matchID string) (bracket.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return bracket.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return bracket.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return bracket.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

// orphanedPicks evaluates picks against the post-clear state of each dependent.
func (s *GradingService) orphanedPicks(ctx context.Context, dependents []bracket.Match) ([]pick.Pick, error) {
	var out []pick.Pick
	for _, m := range dependents {
		picks, err := s.pickRepo.ListByMatch(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list picks by match: %w", err)
		}
		for _, p := range picks {
			if p.PickedTeamID != "" && !m.HasParticipant(p.PickedTeamID) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func matchIDs(items []bracket.Match) []string {
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}
