// Package service contains qa search workflows
package service

import (
	"context"
	"fmt"

	"vidqa/internal/adapters/youtube"
	"vidqa/internal/core/qatext"
	"vidqa/internal/modkit/repokit"
	"vidqa/internal/services/api/qa/domain"
	"vidqa/internal/services/api/qa/repo"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultRecent   = 20
)

// Service defines the service contract for qa search
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new qa service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("qa.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("qa.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Search returns one page of matching records plus the unpaged total.
// Tag filters are folded the same way ingest stores tag names
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) ([]domain.Record, int, error) {
	page, size := paging(in.Page, in.PageSize)
	tag := ""
	if in.Tag != "" {
		tag = qatext.Fold(in.Tag)
	}

	total, err := s.Repo.Count(ctx, in.Query, in.Category, in.Subcategory, tag)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Repo.Search(ctx, in.Query, in.Category, in.Subcategory, tag, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	return toRecords(rows), total, nil
}

// Recent returns the newest records across all videos
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Record, error) {
	limit := in.Limit
	if limit < 1 || limit > maxPageSize {
		limit = defaultRecent
	}
	rows, err := s.Repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

// Tags returns all tags with usage counts
func (s *Svc) Tags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.Repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tag, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Tag{Name: r.Name, Count: r.Count})
	}
	return out, nil
}

// Categories returns record counts bucketed by category and subcategory
func (s *Svc) Categories(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CategoryCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CategoryCount{
			Category:    r.Category,
			Subcategory: r.Subcategory,
			Count:       r.Count,
		})
	}
	return out, nil
}

func toRecords(rows []repo.RowRecord) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Record{
			YouTubeID:     r.YouTubeID,
			VideoTitle:    r.VideoTitle,
			URL:           timedURL(r.YouTubeID, r.Seconds),
			Timestamp:     r.TimestampText,
			Seconds:       r.Seconds,
			Question:      r.Question,
			AnswerPreview: r.AnswerPreview,
			Category:      r.Category,
			Subcategory:   r.Subcategory,
			Tags:          r.Tags,
		})
	}
	return out
}

// timedURL deep-links into the video at the record's timestamp
func timedURL(youtubeID string, seconds int) string {
	if seconds <= 0 {
		return youtube.WatchURL(youtubeID)
	}
	return fmt.Sprintf("%s&t=%ds", youtube.WatchURL(youtubeID), seconds)
}

func paging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}
	return page, size
}
