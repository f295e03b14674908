package pick

import "context"

type Repository interface {
	Get(ctx context.Context, userID, matchID string) (Pick, bool, error)
	ListForUser(ctx context.Context, userID string) ([]Pick, error)
	ListByMatch(ctx context.Context, matchID string) ([]Pick, error)
	// SaveIfUnlocked creates or overwrites the pick unless a locked pick already exists.
	// saved is false when the existing pick won.
	SaveIfUnlocked(ctx context.Context, item Pick) (saved bool, err error)
	DeleteByMatchIDs(ctx context.Context, matchIDs []string) error
}
