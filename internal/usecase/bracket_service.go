package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

// BracketService moves teams through the bracket graph. Every write goes out
// as a single UpdateMany batch.
type BracketService struct {
	matchRepo bracket.Repository
	graph     *bracket.Graph
	logger    *logging.Logger
}

func NewBracketService(matchRepo bracket.Repository, graph *bracket.Graph, logger *logging.Logger) *BracketService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BracketService{
		matchRepo: matchRepo,
		graph:     graph,
		logger:    logger,
	}
}

func (s *BracketService) ListMatches(ctx context.Context) ([]bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.ListMatches")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *BracketService) ListMatchesByDay(ctx context.Context, day int) ([]bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.ListMatchesByDay")
	defer span.End()

	if day <= 0 {
		return nil, fmt.Errorf("%w: day must be > 0", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list matches by day: %w", err)
	}
	return items, nil
}

func (s *BracketService) GetMatch(ctx context.Context, matchID string) (bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.GetMatch")
	defer span.End()

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

// ApplyProgression places winnerID into every W-<matchID> slot and loserID into
// every L-<matchID> slot. Only matches whose slots change are written, so a
// second call with the same arguments writes nothing.
func (s *BracketService) ApplyProgression(ctx context.Context, matchID, winnerID, loserID string) ([]bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.ApplyProgression")
	defer span.End()

	changed, err := s.planProgression(ctx, matchID, winnerID, loserID)
	if err != nil {
		return nil, err
	}
	if err := s.write(ctx, changed); err != nil {
		return nil, err
	}
	return changed, nil
}

// ClearProgression blanks every slot fed by matchID. It does not cascade past
// the direct dependents.
func (s *BracketService) ClearProgression(ctx context.Context, matchID string) ([]bracket.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.ClearProgression")
	defer span.End()

	changed, err := s.planClear(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.write(ctx, changed); err != nil {
		return nil, err
	}
	return changed, nil
}

// ResetBracket removes every result and empties every sourced slot. Fixed
// participants stay in place.
func (s *BracketService) ResetBracket(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.ResetBracket")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list matches: %w", err)
	}

	out := make([]bracket.Match, 0, len(items))
	for _, m := range items {
		reset := m.WithoutResult()
		if reset.Team1Source != nil {
			reset.Team1ID = ""
		}
		if reset.Team2Source != nil {
			reset.Team2ID = ""
		}
		out = append(out, reset)
	}

	if err := s.write(ctx, out); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "bracket reset", "matches", len(out))
	return len(out), nil
}

func (s *BracketService) planProgression(ctx context.Context, matchID, winnerID, loserID string) ([]bracket.Match, error) {
	matchID = strings.TrimSpace(matchID)
	winnerID = strings.TrimSpace(winnerID)
	loserID = strings.TrimSpace(loserID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if winnerID == "" || loserID == "" {
		return nil, fmt.Errorf("%w: winner and loser are required", ErrInvalidInput)
	}
	if winnerID == loserID {
		return nil, fmt.Errorf("%w: winner and loser must differ", ErrInvalidInput)
	}

	return s.planSlots(ctx, matchID, func(dep bracket.Dependent) string {
		if dep.Outcome == bracket.OutcomeWinner {
			return winnerID
		}
		return loserID
	})
}

func (s *BracketService) planClear(ctx context.Context, matchID string) ([]bracket.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	return s.planSlots(ctx, matchID, func(bracket.Dependent) string { return "" })
}

// planSlots loads the direct dependents of matchID and returns the ones whose
// slots change under assign, in match-number order. Graded dependents are
// rewritten like any other; their results stay as recorded.
func (s *BracketService) planSlots(ctx context.Context, matchID string, assign func(bracket.Dependent) string) ([]bracket.Match, error) {
	if !s.graph.Has(matchID) {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	dependents := s.graph.Dependents(matchID)
	if len(dependents) == 0 {
		return nil, nil
	}

	pending := make(map[string]*bracket.Match, len(dependents))
	order := make([]string, 0, len(dependents))
	changed := make(map[string]bool, len(dependents))
	for _, dep := range dependents {
		target, ok := pending[dep.MatchID]
		if !ok {
			item, exists, err := s.matchRepo.GetByID(ctx, dep.MatchID)
			if err != nil {
				return nil, fmt.Errorf("get dependent match %s: %w", dep.MatchID, err)
			}
			if !exists {
				return nil, fmt.Errorf("%w: dependent match=%s", ErrNotFound, dep.MatchID)
			}
			target = &item
			pending[dep.MatchID] = target
			order = append(order, dep.MatchID)
		}

		if bracket.SetTeamInSlot(target, dep.Slot, assign(dep)) {
			changed[dep.MatchID] = true
		}
	}

	out := make([]bracket.Match, 0, len(changed))
	for _, id := range order {
		if changed[id] {
			out = append(out, *pending[id])
		}
	}
	return out, nil
}

// gradedAmong returns the matches in items that already carry a result.
func gradedAmong(items []bracket.Match) []bracket.Match {
	var out []bracket.Match
	for _, m := range items {
		if m.IsGraded() {
			out = append(out, m)
		}
	}
	return out
}

func (s *BracketService) write(ctx context.Context, items []bracket.Match) error {
	if len(items) == 0 {
		return nil
	}
	if err := s.matchRepo.UpdateMany(ctx, items); err != nil {
		return fmt.Errorf("update matches: %w", err)
	}
	return nil
}
