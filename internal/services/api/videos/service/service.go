// Package service contains videos workflows
package service

import (
	"context"

	"vidqa/internal/modkit/repokit"
	"vidqa/internal/services/api/videos/domain"
	"vidqa/internal/services/api/videos/repo"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service defines the service contract for videos
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new videos service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("videos.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("videos.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns one page of videos plus the unpaged total
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Video, int, error) {
	page, size := paging(in.Page, in.PageSize)

	total, err := s.Repo.Count(ctx, in.Query, in.Channel, in.Status)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Repo.List(ctx, in.Query, in.Channel, in.Status, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Video, 0, len(rows))
	for _, r := range rows {
		out = append(out, toVideo(r))
	}
	return out, total, nil
}

// Get returns one video with its ordered Q&A items
func (s *Svc) Get(ctx context.Context, in domain.GetInput) (*domain.VideoDetail, error) {
	v, err := s.Repo.Get(ctx, in.YouTubeID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.Items(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	det := &domain.VideoDetail{
		Video:       toVideo(*v),
		Description: v.Description,
		Items:       make([]domain.QAItem, 0, len(items)),
	}
	for _, it := range items {
		det.Items = append(det.Items, domain.QAItem{
			Timestamp:     it.TimestampText,
			Seconds:       it.Seconds,
			Question:      it.Question,
			AnswerPreview: it.AnswerPreview,
			Answer:        it.Answer,
			Category:      it.Category,
			Subcategory:   it.Subcategory,
			Tags:          it.Tags,
		})
	}
	return det, nil
}

func toVideo(r repo.RowVideo) domain.Video {
	return domain.Video{
		YouTubeID:     r.YouTubeID,
		URL:           r.URL,
		Title:         r.Title,
		ChannelTitle:  r.ChannelTitle,
		PublishedAt:   r.PublishedAt,
		ProcessedAt:   r.ProcessedAt,
		Status:        r.Status,
		QuestionCount: r.QuestionCount,
	}
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
