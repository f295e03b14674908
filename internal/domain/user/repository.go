package user

import (
	"context"
	"time"
)

// Profile is the public face of a player on the leaderboard.
type Profile struct {
	UserID      string
	Email       string
	DisplayName string
	LastSeenAt  time.Time
}

func ProfileOf(p Principal, now time.Time) Profile {
	return Profile{
		UserID:      p.UserID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		LastSeenAt:  now,
	}
}

type Repository interface {
	Get(ctx context.Context, userID string) (Profile, bool, error)
	Upsert(ctx context.Context, item Profile) error
}
