package bracket

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListByDay(ctx context.Context, day int) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Update(ctx context.Context, item Match) error
	// UpdateMany writes every item or none of them.
	UpdateMany(ctx context.Context, items []Match) error
}
