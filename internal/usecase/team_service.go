package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/thedyrex/pickems/internal/domain/team"
)

type TeamService struct {
	teamRepo team.Repository
}

func NewTeamService(teamRepo team.Repository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) UpdateLogo(ctx context.Context, teamID, logo string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdateLogo")
	defer span.End()

	logo = strings.TrimSpace(logo)
	if logo == "" {
		return team.Team{}, fmt.Errorf("%w: logo is required", ErrInvalidInput)
	}

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if err := s.teamRepo.UpdateLogo(ctx, item.ID, logo); err != nil {
		return team.Team{}, fmt.Errorf("update team logo: %w", err)
	}

	item.Logo = logo
	return item, nil
}
