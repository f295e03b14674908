package scoring

import "context"

type Repository interface {
	Get(ctx context.Context, userID, matchID string) (Score, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Score, error)
	ListAll(ctx context.Context) ([]Score, error)

	// UpsertMany replaces every given (user, match) row in one atomic write.
	UpsertMany(ctx context.Context, items []Score) error
	DeleteByMatchIDs(ctx context.Context, matchIDs []string) error
	DeleteAll(ctx context.Context) error
}
