package usecase

import (
	"testing"
	"time"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/infrastructure/repository/memory"
)

// 2024-11-25 noon UTC, the day before the first match.
var beforeTournament = time.Date(2024, time.November, 25, 12, 0, 0, 0, time.UTC)

type testEngine struct {
	matches *memory.MatchRepository
	picks   *memory.PickRepository
	scores  *memory.ScoreRepository
	days    *memory.DayRepository

	bracket     *BracketService
	grading     *GradingService
	scoring     *ScoringService
	dayService  *DayService
	pickService *PickService
	leaderboard *LeaderboardService
}

func newTestEngine(t *testing.T, now time.Time) *testEngine {
	t.Helper()

	cal := schedule.DefaultCalendar()
	e := &testEngine{
		matches: memory.NewMatchRepository(memory.SeedMatches()),
		picks:   memory.NewPickRepository(),
		scores:  memory.NewScoreRepository(),
		days:    memory.NewDayRepository(memory.SeedDaySettings(cal)),
	}

	clock := func() time.Time { return now }

	e.bracket = NewBracketService(e.matches, bracket.DefaultGraph(), nil)
	e.scoring = NewScoringService(e.matches, e.picks, e.scores, nil)
	e.scoring.now = clock
	e.grading = NewGradingService(e.matches, e.picks, e.bracket, e.scoring, nil)
	e.dayService = NewDayService(e.days, e.matches, cal, nil)
	e.dayService.now = clock
	e.pickService = NewPickService(e.matches, e.picks, e.scores, e.dayService, nil)
	e.pickService.now = clock
	e.leaderboard = NewLeaderboardService(memory.NewLeaderboardRepository(e.scores, nil))

	return e
}

func (e *testEngine) grade(t *testing.T, matchID string, team1Score, team2Score int) GradeMatchResult {
	t.Helper()

	res, err := e.grading.GradeMatch(t.Context(), GradeMatchInput{MatchID: matchID, Team1Score: team1Score, Team2Score: team2Score})
	if err != nil {
		t.Fatalf("grade %s: %v", matchID, err)
	}
	return res
}

func (e *testEngine) match(t *testing.T, matchID string) bracket.Match {
	t.Helper()

	m, ok, err := e.matches.GetByID(t.Context(), matchID)
	if err != nil || !ok {
		t.Fatalf("get match %s: ok=%v err=%v", matchID, ok, err)
	}
	return m
}

func intRef(v int) *int {
	return &v
}
