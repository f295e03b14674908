package schedule

import "context"

// Repository stores the operator day switches.
type Repository interface {
	List(ctx context.Context) ([]DaySetting, error)
	Get(ctx context.Context, day int) (DaySetting, bool, error)
	Update(ctx context.Context, item DaySetting) error
	SetAllEnabled(ctx context.Context, enabled bool) error
}
