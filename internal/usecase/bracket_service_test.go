package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/thedyrex/pickems/internal/domain/bracket"
	bracketmock "github.com/thedyrex/pickems/internal/mocks/domain/bracket"
)

func TestBracketService_ApplyAndClearProgression(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)

	changed, err := e.bracket.ApplyProgression(t.Context(), "M1", bracket.TeamT1, bracket.TeamCC)
	if err != nil {
		t.Fatalf("apply progression: %v", err)
	}
	if got := matchIDs(changed); len(got) != 2 || got[0] != "M7" || got[1] != "M11" {
		t.Fatalf("unexpected changed matches: %v", got)
	}
	if m7 := e.match(t, "M7"); m7.Team2ID != bracket.TeamT1 {
		t.Fatalf("unexpected M7 team2: %s", m7.Team2ID)
	}

	cleared, err := e.bracket.ClearProgression(t.Context(), "M1")
	if err != nil {
		t.Fatalf("clear progression: %v", err)
	}
	if len(cleared) != 2 {
		t.Fatalf("unexpected cleared count: %d", len(cleared))
	}
	if m11 := e.match(t, "M11"); m11.Team2ID != "" {
		t.Fatalf("expected M11 team2 cleared, got %s", m11.Team2ID)
	}

	again, err := e.bracket.ClearProgression(t.Context(), "M1")
	if err != nil || len(again) != 0 {
		t.Fatalf("second clear must be a no-op: changed=%v err=%v", matchIDs(again), err)
	}
}

func TestBracketService_ApplyProgression_InvalidInput(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)

	if _, err := e.bracket.ApplyProgression(t.Context(), "M1", bracket.TeamCC, bracket.TeamCC); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for same winner and loser, got %v", err)
	}
	if _, err := e.bracket.ApplyProgression(t.Context(), "M1", "", bracket.TeamCC); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty winner, got %v", err)
	}
	if _, err := e.bracket.ApplyProgression(t.Context(), "X1", bracket.TeamCC, bracket.TeamT1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestBracketService_ApplyProgression_FinalsChain(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)

	if _, err := e.bracket.ApplyProgression(t.Context(), bracket.MatchIDUpperFinal, bracket.TeamRaccoon, bracket.TeamLiquid); err != nil {
		t.Fatalf("apply upper final: %v", err)
	}
	if lbf := e.match(t, bracket.MatchIDLowerFinal); lbf.Team1ID != bracket.TeamLiquid {
		t.Fatalf("expected upper final loser in lower final, got %s", lbf.Team1ID)
	}
	if gf := e.match(t, bracket.MatchIDGrandFinal); gf.Team1ID != bracket.TeamRaccoon {
		t.Fatalf("expected upper final winner in grand final, got %s", gf.Team1ID)
	}
}

func TestBracketService_ResetBracket(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)
	e.grade(t, "M4", 3, 1)
	e.grade(t, "M5", 3, 2)
	e.grade(t, "M1", 0, 3)

	n, err := e.bracket.ResetBracket(t.Context())
	if err != nil {
		t.Fatalf("reset bracket: %v", err)
	}
	if n != len(bracket.DefaultTemplate()) {
		t.Fatalf("unexpected reset count: %d", n)
	}

	items, _ := e.bracket.ListMatches(t.Context())
	template := bracket.DefaultTemplate()
	for i, m := range items {
		if m.IsGraded() || m.Team1Score != nil || m.Team2Score != nil {
			t.Fatalf("match %s still has a result", m.ID)
		}
		if m.Team1ID != template[i].Team1ID || m.Team2ID != template[i].Team2ID {
			t.Fatalf("match %s participants not restored: %q vs %q", m.ID, m.Team1ID, m.Team2ID)
		}
	}
}

func TestBracketService_ListMatchesByDay(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, beforeTournament)

	items, err := e.bracket.ListMatchesByDay(t.Context(), 3)
	if err != nil {
		t.Fatalf("list by day: %v", err)
	}
	if len(items) != 6 || items[0].ID != "M9" || items[5].ID != "M14" {
		t.Fatalf("unexpected day 3 matches: %v", matchIDs(items))
	}
	if _, err := e.bracket.ListMatchesByDay(t.Context(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := e.bracket.GetMatch(t.Context(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBracketService_ApplyProgression_WriteFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := bracketmock.NewRepository(t)
	template := bracket.DefaultTemplate()
	writeErr := errors.New("write failed")

	matchRepo.On("GetByID", mock.Anything, "M7").Return(template[6], true, nil).Once()
	matchRepo.On("GetByID", mock.Anything, "M11").Return(template[10], true, nil).Once()
	matchRepo.
		On("UpdateMany", mock.Anything, mock.MatchedBy(func(items []bracket.Match) bool {
			return len(items) == 2 && items[0].Team2ID == bracket.TeamCC && items[1].Team2ID == bracket.TeamT1
		})).
		Return(writeErr).
		Once()

	svc := NewBracketService(matchRepo, bracket.DefaultGraph(), nil)
	if _, err := svc.ApplyProgression(ctx, "M1", bracket.TeamCC, bracket.TeamT1); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
}
