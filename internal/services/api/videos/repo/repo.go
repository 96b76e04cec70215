// Package repo provides postgres access for videos
package repo

import (
	"context"

	"vidqa/internal/modkit/repokit"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/store"
)

// Repo defines the repository contract for videos
type Repo interface {
	Count(ctx context.Context, query, channel, status string) (int, error)
	List(ctx context.Context, query, channel, status string, limit, offset int) ([]RowVideo, error)
	Get(ctx context.Context, youtubeID string) (*RowVideo, error)
	Items(ctx context.Context, videoID string) ([]RowItem, error)
}

// RowVideo represents a video row from the database
type RowVideo struct {
	ID            string
	YouTubeID     string
	URL           string
	Title         string
	ChannelTitle  string
	PublishedAt   string
	ProcessedAt   string
	Status        string
	Description   string
	QuestionCount int
}

// RowItem represents a qa item row with aggregated tags
type RowItem struct {
	TimestampText string
	Seconds       int
	Question      string
	Answer        string
	AnswerPreview string
	Category      string
	Subcategory   string
	Tags          []string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const videoFilter = `
where ($1 = '' or v.title ilike '%' || $1 || '%')
and ($2 = '' or v.channel_title = $2)
and ($3 = '' or v.status = $3)
`

func (r *queries) Count(ctx context.Context, query, channel, status string) (int, error) {
	const sql = `select count(*) from videos v ` + videoFilter
	n, err := store.Scalar[int](ctx, r.q, sql, query, channel, status)
	if err != nil {
		return 0, perr.FromPostgres(err, "count videos")
	}
	return n, nil
}

func (r *queries) List(ctx context.Context, query, channel, status string, limit, offset int) ([]RowVideo, error) {
	const sql = `
select v.id::text, v.youtube_id, v.url, v.title,
coalesce(v.channel_title, ''),
coalesce(v.published_at::text, ''), coalesce(v.processed_at::text, ''),
v.status,
(select count(*) from qa_items qi where qi.video_id = v.id)
from videos v ` + videoFilter + `
order by v.published_at desc nulls last, v.youtube_id
limit $4 offset $5
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowVideo, error) {
		var rr RowVideo
		err := row.Scan(
			&rr.ID,
			&rr.YouTubeID,
			&rr.URL,
			&rr.Title,
			&rr.ChannelTitle,
			&rr.PublishedAt,
			&rr.ProcessedAt,
			&rr.Status,
			&rr.QuestionCount,
		)
		return rr, err
	}, sql, query, channel, status, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list videos")
	}
	return out, nil
}

func (r *queries) Get(ctx context.Context, youtubeID string) (*RowVideo, error) {
	const sql = `
select v.id::text, v.youtube_id, v.url, v.title,
coalesce(v.channel_title, ''),
coalesce(v.published_at::text, ''), coalesce(v.processed_at::text, ''),
v.status, coalesce(v.description, ''),
(select count(*) from qa_items qi where qi.video_id = v.id)
from videos v
where v.youtube_id = $1
`
	rr, err := store.One(ctx, r.q, func(row store.Row) (RowVideo, error) {
		var v RowVideo
		err := row.Scan(
			&v.ID,
			&v.YouTubeID,
			&v.URL,
			&v.Title,
			&v.ChannelTitle,
			&v.PublishedAt,
			&v.ProcessedAt,
			&v.Status,
			&v.Description,
			&v.QuestionCount,
		)
		return v, err
	}, sql, youtubeID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, perr.NotFoundf("video %s not found", youtubeID)
		}
		return nil, perr.FromPostgres(err, "get video")
	}
	return &rr, nil
}

func (r *queries) Items(ctx context.Context, videoID string) ([]RowItem, error) {
	const sql = `
select qi.timestamp_text, qi.timestamp_seconds, qi.question, qi.answer, qi.answer_preview,
coalesce(qi.category, ''), coalesce(qi.subcategory, ''),
coalesce(array_agg(t.name order by t.name) filter (where t.name is not null), '{}')
from qa_items qi
left join qa_item_tags qt on qt.qa_item_id = qi.id
left join tags t on t.id = qt.tag_id
where qi.video_id = $1
group by qi.id
order by qi.timestamp_seconds
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowItem, error) {
		var rr RowItem
		err := row.Scan(
			&rr.TimestampText,
			&rr.Seconds,
			&rr.Question,
			&rr.Answer,
			&rr.AnswerPreview,
			&rr.Category,
			&rr.Subcategory,
			&rr.Tags,
		)
		return rr, err
	}, sql, videoID)
	if err != nil {
		return nil, perr.FromPostgres(err, "list qa items")
	}
	return out, nil
}
