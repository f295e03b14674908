package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/domain/scoring"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

const defaultScoringWorkers = 4

type RecalculateAllResult struct {
	Matches       int
	ScoresWritten int
	FailedMatches []string
}

type ScoringService struct {
	matchRepo bracket.Repository
	pickRepo  pick.Repository
	scoreRepo scoring.Repository
	rules     scoring.Rules
	workers   int
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoringService(
	matchRepo bracket.Repository,
	pickRepo pick.Repository,
	scoreRepo scoring.Repository,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		matchRepo: matchRepo,
		pickRepo:  pickRepo,
		scoreRepo: scoreRepo,
		rules:     scoring.DefaultRules(),
		workers:   defaultScoringWorkers,
		logger:    logger,
		now:       time.Now,
	}
}

// SetWorkers bounds the pool used by RecalculateAll.
func (s *ScoringService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// RecalculateMatch rescores every pick on a match and replaces their rows in one batch.
func (s *ScoringService) RecalculateMatch(ctx context.Context, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return 0, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	picks, err := s.pickRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("list picks by match: %w", err)
	}
	if len(picks) == 0 {
		return 0, nil
	}

	now := s.now().UTC()
	rows := make([]scoring.Score, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, scoring.ScorePick(m, p, s.rules, now))
	}

	if err := s.scoreRepo.UpsertMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert scores: %w", err)
	}
	return len(rows), nil
}

// RecalculateAll rescores every match on a bounded worker pool. A failing match
// does not stop the others; the joined error lists every failure.
func (s *ScoringService) RecalculateAll(ctx context.Context) (RecalculateAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateAll")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("list matches: %w", err)
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		written  atomic.Int64
		mu       sync.Mutex
		failed   []string
		failures []error
		workers  sync.WaitGroup
	)

	for _, m := range matches {
		matchID := m.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			n, err := s.RecalculateMatch(ctx, matchID)
			if err != nil {
				mu.Lock()
				failed = append(failed, matchID)
				failures = append(failures, fmt.Errorf("match %s: %w", matchID, err))
				mu.Unlock()
				return
			}
			written.Add(int64(n))
		}); err != nil {
			workers.Done()
			return RecalculateAllResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result := RecalculateAllResult{
		Matches:       len(matches),
		ScoresWritten: int(written.Load()),
		FailedMatches: failed,
	}

	s.logger.InfoContext(ctx, "scores recalculated",
		"matches", result.Matches,
		"scores_written", result.ScoresWritten,
		"failed", len(failed),
	)

	if len(failures) > 0 {
		return result, errors.Join(failures...)
	}
	return result, nil
}

func (s *ScoringService) ClearAllScores(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ClearAllScores")
	defer span.End()

	if err := s.scoreRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all scores: %w", err)
	}

	s.logger.WarnContext(ctx, "all scores cleared")
	return nil
}

func (s *ScoringService) ListUserScores(ctx context.Context, userID string) ([]scoring.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListUserScores")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.scoreRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list scores by user: %w", err)
	}
	return items, nil
}

func (s *ScoringService) GetUserMatchScore(ctx context.Context, userID, matchID string) (scoring.Score, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetUserMatchScore")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return scoring.Score{}, false, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	item, exists, err := s.scoreRepo.Get(ctx, userID, matchID)
	if err != nil {
		return scoring.Score{}, false, fmt.Errorf("get score: %w", err)
	}
	return item, exists, nil
}
