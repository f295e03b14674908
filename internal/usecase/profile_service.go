package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thedyrex/pickems/internal/domain/user"
)

// ProfileService mirrors the caller's account details so the leaderboard can
// show names without calling the account service.
type ProfileService struct {
	repo user.Repository
	now  func() time.Time
}

func NewProfileService(repo user.Repository) *ProfileService {
	return &ProfileService{repo: repo, now: time.Now}
}

func (s *ProfileService) Sync(ctx context.Context, principal user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Sync")
	defer span.End()

	if strings.TrimSpace(principal.UserID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if err := s.repo.Upsert(ctx, user.ProfileOf(principal, s.now().UTC())); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
