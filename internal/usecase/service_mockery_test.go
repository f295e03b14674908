package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/thedyrex/pickems/internal/domain/leaderboard"
	"github.com/thedyrex/pickems/internal/domain/schedule"
	"github.com/thedyrex/pickems/internal/domain/team"
	"github.com/thedyrex/pickems/internal/domain/user"
	leaderboardmock "github.com/thedyrex/pickems/internal/mocks/domain/leaderboard"
	schedulemock "github.com/thedyrex/pickems/internal/mocks/domain/schedule"
	teammock "github.com/thedyrex/pickems/internal/mocks/domain/team"
	usermock "github.com/thedyrex/pickems/internal/mocks/domain/user"
)

func TestTeamService_UpdateLogo_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	teamRepo := teammock.NewRepository(t)
	svc := NewTeamService(teamRepo)

	teamRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "t1").
		Return(team.Team{ID: "t1", Name: "T1", Logo: "/logos/t1.png"}, true, nil).
		Once()
	teamRepo.
		On("UpdateLogo", mock.Anything, "t1", "https://cdn.example.com/t1.svg").
		Return(nil).
		Once()

	got, err := svc.UpdateLogo(ctx, "t1", " https://cdn.example.com/t1.svg ")
	if err != nil {
		t.Fatalf("update logo: %v", err)
	}
	if got.Logo != "https://cdn.example.com/t1.svg" {
		t.Fatalf("unexpected logo: %s", got.Logo)
	}
}

func TestTeamService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	svc := NewTeamService(teamRepo)

	teamRepo.On("GetByID", mock.Anything, "missing").Return(team.Team{}, false, nil).Once()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateLogo(context.Background(), "t1", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardService_GetUserRankUsingMockery(t *testing.T) {
	t.Parallel()

	repo := leaderboardmock.NewRepository(t)
	svc := NewLeaderboardService(repo)

	repo.On("List", mock.Anything).Return([]leaderboard.Entry{
		{UserID: "u2", TotalPoints: 40},
		{UserID: "u1", TotalPoints: 25},
	}, nil).Once()

	rank, ok, err := svc.GetUserRank(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get rank: %v", err)
	}
	if !ok || rank != 2 {
		t.Fatalf("unexpected rank: rank=%d ok=%v", rank, ok)
	}
}

func TestProfileService_SyncUsingMockery(t *testing.T) {
	t.Parallel()

	repo := usermock.NewRepository(t)
	svc := NewProfileService(repo)
	seen := time.Date(2024, time.November, 26, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return seen }

	repo.
		On("Upsert", mock.Anything, user.Profile{UserID: "u1", Email: "a@example.com", DisplayName: "Ann", LastSeenAt: seen}).
		Return(nil).
		Once()

	err := svc.Sync(context.Background(), user.Principal{UserID: "u1", Email: "a@example.com", DisplayName: "Ann"})
	if err != nil {
		t.Fatalf("sync profile: %v", err)
	}

	if err := svc.Sync(context.Background(), user.Principal{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDayService_SetDayEnabled_UsingMockery(t *testing.T) {
	t.Parallel()

	dayRepo := schedulemock.NewRepository(t)
	svc := NewDayService(dayRepo, nil, schedule.DefaultCalendar(), nil)
	svc.now = func() time.Time { return beforeTournament }

	dayRepo.
		On("Update", mock.Anything, mock.MatchedBy(func(item schedule.DaySetting) bool {
			return item.Day == 3 && !item.IsEnabled && item.UpdatedAt.Equal(beforeTournament)
		})).
		Return(nil).
		Once()

	got, err := svc.SetDayEnabled(context.Background(), 3, false)
	if err != nil {
		t.Fatalf("set day enabled: %v", err)
	}
	if got.Day != 3 || got.IsEnabled {
		t.Fatalf("unexpected setting: %+v", got)
	}

	if _, err := svc.SetDayEnabled(context.Background(), 9, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for day outside the calendar, got %v", err)
	}
}

func TestDayService_ResetAllDays_FailureUsingMockery(t *testing.T) {
	t.Parallel()

	dayRepo := schedulemock.NewRepository(t)
	svc := NewDayService(dayRepo, nil, schedule.DefaultCalendar(), nil)

	dayRepo.On("SetAllEnabled", mock.Anything, true).Return(errors.New("db down")).Once()

	if err := svc.ResetAllDays(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
