// Package repo provides the postgres repositories for the ingest service
package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vidqa/internal/adapters/youtube"
	"vidqa/internal/core/qatext"
	"vidqa/internal/modkit/repokit"
	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/store"
	"vidqa/internal/services/ingest/domain"
)

// PG binds the storage repo to a Queryer
type PG struct{}

// NewPG returns a binder for the storage repo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

type queries struct{ q repokit.Queryer }

const upsertVideoSQL = `
	INSERT INTO videos
		(id, youtube_id, url, title, channel_id, channel_title, published_at, description, status, processed_at, error)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), NULL)
	ON CONFLICT (youtube_id) DO UPDATE SET
		url           = EXCLUDED.url,
		title         = EXCLUDED.title,
		channel_id    = EXCLUDED.channel_id,
		channel_title = EXCLUDED.channel_title,
		published_at  = EXCLUDED.published_at,
		description   = EXCLUDED.description,
		status        = EXCLUDED.status,
		processed_at  = now(),
		error         = NULL
	RETURNING id`

func (r *queries) UpsertVideo(ctx context.Context, meta domain.Metadata, status string) (string, error) {
	var id uuid.UUID
	err := r.q.QueryRow(ctx, upsertVideoSQL,
		uuid.New(),
		meta.YouTubeID,
		youtube.WatchURL(meta.YouTubeID),
		meta.Title,
		meta.ChannelID,
		meta.ChannelTitle,
		meta.PublishedAt,
		meta.Description,
		status,
	).Scan(&id)
	if err != nil {
		return "", perr.FromPostgres(err, "upsert video")
	}
	return id.String(), nil
}

const upsertTranscriptSQL = `
	INSERT INTO transcripts (id, video_id, raw_data, full_text)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (video_id) DO UPDATE SET
		raw_data  = EXCLUDED.raw_data,
		full_text = EXCLUDED.full_text`

func (r *queries) UpsertTranscript(ctx context.Context, videoID string, rawData []byte, fullText string) error {
	_, err := r.q.Exec(ctx, upsertTranscriptSQL, uuid.New(), videoID, rawData, fullText)
	return perr.FromPostgres(err, "upsert transcript")
}

// Reprocessing a video with classification disabled keeps earlier labels:
// NULL incoming category and subcategory never clobber stored values
const upsertQAItemSQL = `
	INSERT INTO qa_items
		(id, video_id, timestamp_seconds, timestamp_text, question, answer, answer_preview, category, subcategory)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (video_id, timestamp_seconds) DO UPDATE SET
		timestamp_text = EXCLUDED.timestamp_text,
		question       = EXCLUDED.question,
		answer         = EXCLUDED.answer,
		answer_preview = EXCLUDED.answer_preview,
		category       = COALESCE(EXCLUDED.category, qa_items.category),
		subcategory    = COALESCE(EXCLUDED.subcategory, qa_items.subcategory)
	RETURNING id`

const ensureTagSQL = `
	INSERT INTO tags (id, name)
	VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	RETURNING id`

const linkTagSQL = `
	INSERT INTO qa_item_tags (qa_item_id, tag_id)
	VALUES ($1, $2)
	ON CONFLICT DO NOTHING`

func (r *queries) UpsertQAItem(ctx context.Context, videoID string, cm domain.ClassifiedMatch) error {
	var category, subcategory any
	var tags []string
	if cm.Class != nil {
		category = cm.Class.Category
		subcategory = cm.Class.Subcategory
		tags = cm.Class.Tags
	}

	var itemID uuid.UUID
	err := r.q.QueryRow(ctx, upsertQAItemSQL,
		uuid.New(),
		videoID,
		cm.Seconds,
		cm.TimeText,
		cm.Question,
		cm.Answer,
		cm.Preview,
		category,
		subcategory,
	).Scan(&itemID)
	if err != nil {
		return perr.FromPostgres(err, "upsert qa item")
	}

	for _, raw := range tags {
		// tags are stored folded so search filters compare equal forms
		name := qatext.Fold(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		var tagID uuid.UUID
		if err := r.q.QueryRow(ctx, ensureTagSQL, uuid.New(), name).Scan(&tagID); err != nil {
			return perr.FromPostgresf(err, "ensure tag %q", name)
		}
		if _, err := r.q.Exec(ctx, linkTagSQL, itemID, tagID); err != nil {
			return perr.FromPostgresf(err, "link tag %q", name)
		}
	}
	return nil
}

const isProcessedSQL = `
	SELECT EXISTS (SELECT 1 FROM videos WHERE youtube_id = $1 AND status = 'processed')`

func (r *queries) IsProcessed(ctx context.Context, youtubeID string) (bool, error) {
	done, err := store.Scalar[bool](ctx, r.q, isProcessedSQL, youtubeID)
	if err != nil {
		return false, perr.FromPostgres(err, "is processed")
	}
	return done, nil
}

// QueuePG binds the job queue repo to a Queryer
type QueuePG struct{}

// NewQueuePG returns a binder for the job queue repo
func NewQueuePG() repokit.Binder[domain.QueueRepo] { return QueuePG{} }

// Bind implements repokit.Binder
func (QueuePG) Bind(q repokit.Queryer) domain.QueueRepo { return &queueQueries{q: q} }

type queueQueries struct{ q repokit.Queryer }

const enqueueSQL = `
	INSERT INTO ingest_jobs (youtube_id, status)
	VALUES ($1, 'pending')
	RETURNING id`

func (r *queueQueries) Enqueue(ctx context.Context, youtubeID string) (int64, error) {
	id, err := store.Scalar[int64](ctx, r.q, enqueueSQL, youtubeID)
	if err != nil {
		return 0, perr.FromPostgres(err, "enqueue ingest job")
	}
	return id, nil
}

// SKIP LOCKED keeps concurrent claimers from blocking on each other's rows
const claimNextSQL = `
	UPDATE ingest_jobs SET
		status    = 'processing',
		attempts  = attempts + 1,
		locked_at = now()
	WHERE id = (
		SELECT id FROM ingest_jobs
		WHERE status = 'pending'
		ORDER BY id
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	)
	RETURNING id, youtube_id, attempts`

func (r *queueQueries) ClaimNext(ctx context.Context) (*domain.Job, error) {
	job, err := store.One(ctx, r.q, func(row store.Row) (domain.Job, error) {
		j := domain.Job{Status: domain.JobProcessing}
		err := row.Scan(&j.ID, &j.YouTubeID, &j.Attempts)
		return j, err
	}, claimNextSQL)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, perr.FromPostgres(err, "claim ingest job")
	}
	return &job, nil
}

const completeSQL = `
	UPDATE ingest_jobs SET
		status     = $2,
		last_error = NULLIF($3, ''),
		locked_at  = NULL
	WHERE id = $1`

func (r *queueQueries) Complete(ctx context.Context, jobID int64, errText string) error {
	status := domain.JobDone
	if errText != "" {
		status = domain.JobFailed
	}
	_, err := r.q.Exec(ctx, completeSQL, jobID, string(status), errText)
	return perr.FromPostgres(err, "complete ingest job")
}

const queueStatsSQL = `
	SELECT
		count(*) FILTER (WHERE status = 'pending'),
		count(*) FILTER (WHERE status = 'processing'),
		count(*) FILTER (WHERE status = 'done'),
		count(*) FILTER (WHERE status = 'failed')
	FROM ingest_jobs`

func (r *queueQueries) Stats(ctx context.Context) (domain.QueueStats, error) {
	var s domain.QueueStats
	err := r.q.QueryRow(ctx, queueStatsSQL).Scan(&s.Pending, &s.Processing, &s.Done, &s.Failed)
	if err != nil {
		return domain.QueueStats{}, perr.FromPostgres(err, "queue stats")
	}
	return s, nil
}
