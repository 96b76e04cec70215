// Package repo provides postgres access for qa search
package repo

import (
	"context"

	"vidqa/internal/modkit/repokit"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/store"
)

// Repo defines the repository contract for qa search
type Repo interface {
	Count(ctx context.Context, query, category, subcategory, tag string) (int, error)
	Search(ctx context.Context, query, category, subcategory, tag string, limit, offset int) ([]RowRecord, error)
	Recent(ctx context.Context, limit int) ([]RowRecord, error)
	Tags(ctx context.Context) ([]RowTag, error)
	Categories(ctx context.Context) ([]RowCategory, error)
}

// RowRecord represents a qa search row joined to its video
type RowRecord struct {
	YouTubeID     string
	VideoTitle    string
	TimestampText string
	Seconds       int
	Question      string
	AnswerPreview string
	Category      string
	Subcategory   string
	Tags          []string
}

// RowTag represents one tag with its usage count
type RowTag struct {
	Name  string
	Count int
}

// RowCategory represents one category/subcategory bucket
type RowCategory struct {
	Category    string
	Subcategory string
	Count       int
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

const searchFilter = `
where ($1 = '' or qi.question ilike '%' || $1 || '%' or qi.answer ilike '%' || $1 || '%')
and ($2 = '' or qi.category = $2)
and ($3 = '' or qi.subcategory = $3)
and ($4 = '' or exists (
	select 1 from qa_item_tags qt
	join tags t on t.id = qt.tag_id
	where qt.qa_item_id = qi.id and t.name = $4
))
`

const recordColumns = `
select v.youtube_id, v.title, qi.timestamp_text, qi.timestamp_seconds,
qi.question, qi.answer_preview,
coalesce(qi.category, ''), coalesce(qi.subcategory, ''),
coalesce((
	select array_agg(t.name order by t.name)
	from qa_item_tags qt join tags t on t.id = qt.tag_id
	where qt.qa_item_id = qi.id
), '{}')
from qa_items qi
join videos v on v.id = qi.video_id
`

func (r *queries) Count(ctx context.Context, query, category, subcategory, tag string) (int, error) {
	const sql = `select count(*) from qa_items qi ` + searchFilter
	n, err := store.Scalar[int](ctx, r.q, sql, query, category, subcategory, tag)
	if err != nil {
		return 0, perr.FromPostgres(err, "count qa records")
	}
	return n, nil
}

func (r *queries) Search(
	ctx context.Context,
	query, category, subcategory, tag string,
	limit, offset int,
) ([]RowRecord, error) {
	const sql = recordColumns + searchFilter + `
order by v.published_at desc nulls last, qi.timestamp_seconds
limit $5 offset $6
`
	out, err := store.Many(ctx, r.q, scanRecord, sql, query, category, subcategory, tag, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "search qa records")
	}
	return out, nil
}

func (r *queries) Recent(ctx context.Context, limit int) ([]RowRecord, error) {
	const sql = recordColumns + `
order by v.published_at desc nulls last, qi.timestamp_seconds
limit $1
`
	out, err := store.Many(ctx, r.q, scanRecord, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "recent qa records")
	}
	return out, nil
}

func scanRecord(row store.Row) (RowRecord, error) {
	var rr RowRecord
	err := row.Scan(
		&rr.YouTubeID,
		&rr.VideoTitle,
		&rr.TimestampText,
		&rr.Seconds,
		&rr.Question,
		&rr.AnswerPreview,
		&rr.Category,
		&rr.Subcategory,
		&rr.Tags,
	)
	return rr, err
}

func (r *queries) Tags(ctx context.Context) ([]RowTag, error) {
	const sql = `
select t.name, count(qt.qa_item_id)
from tags t
left join qa_item_tags qt on qt.tag_id = t.id
group by t.name
order by count(qt.qa_item_id) desc, t.name
limit 500
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowTag, error) {
		var rr RowTag
		err := row.Scan(&rr.Name, &rr.Count)
		return rr, err
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list tags")
	}
	return out, nil
}

func (r *queries) Categories(ctx context.Context) ([]RowCategory, error) {
	const sql = `
select qi.category, coalesce(qi.subcategory, ''), count(*)
from qa_items qi
where qi.category is not null
group by qi.category, qi.subcategory
order by count(*) desc, qi.category, qi.subcategory
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (RowCategory, error) {
		var rr RowCategory
		err := row.Scan(&rr.Category, &rr.Subcategory, &rr.Count)
		return rr, err
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list categories")
	}
	return out, nil
}
