package module

import (
	"context"

	"vidqa/internal/services/api/videos/domain"
	videossvc "vidqa/internal/services/api/videos/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptVideosPort exposes service methods as module ports for cross-module usage
type adaptVideosPort struct{ svc videossvc.Service }

// List returns one page of videos plus the unpaged total
func (a adaptVideosPort) List(ctx context.Context, in domain.ListInput) ([]domain.Video, int, error) {
	return a.svc.List(ctx, in)
}

// Get returns one video with its Q&A items
func (a adaptVideosPort) Get(ctx context.Context, in domain.GetInput) (*domain.VideoDetail, error) {
	return a.svc.Get(ctx, in)
}
