package domain

import "context"

// ServicePort defines the qa service contract
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) ([]Record, int, error)
	Recent(ctx context.Context, in RecentInput) ([]Record, error)
	Tags(ctx context.Context) ([]Tag, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}
