package module

import (
	"context"

	"vidqa/internal/services/api/qa/domain"
	qasvc "vidqa/internal/services/api/qa/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptQAPort exposes service methods as module ports for cross-module usage
type adaptQAPort struct{ svc qasvc.Service }

// Search returns one page of matching records plus the unpaged total
func (a adaptQAPort) Search(ctx context.Context, in domain.SearchInput) ([]domain.Record, int, error) {
	return a.svc.Search(ctx, in)
}

// Recent returns the newest records across all videos
func (a adaptQAPort) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Record, error) {
	return a.svc.Recent(ctx, in)
}

// Tags returns all tags with usage counts
func (a adaptQAPort) Tags(ctx context.Context) ([]domain.Tag, error) {
	return a.svc.Tags(ctx)
}

// Categories returns record counts by category and subcategory
func (a adaptQAPort) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	return a.svc.Categories(ctx)
}
