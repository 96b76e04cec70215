package domain

import "context"

// ServicePort defines the videos service contract
type ServicePort interface {
	List(ctx context.Context, in ListInput) ([]Video, int, error)
	Get(ctx context.Context, in GetInput) (*VideoDetail, error)
}
