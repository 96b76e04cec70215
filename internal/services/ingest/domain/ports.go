package domain

import (
	"context"
)

// ProcessorPort is the public port exposed by the ingest module
type ProcessorPort interface {
	// ProcessVideo runs the full pipeline for one video id or URL.
	// Failures are reported inside the result, never as a returned error
	ProcessVideo(ctx context.Context, urlOrID string) ProcessResult

	// RunBatch processes many videos sequentially, honoring the configured
	// request delay between them, and never aborts the list on failure
	RunBatch(ctx context.Context, ids []string, opt BatchOptions, onResult func(ProcessResult)) BatchStats

	// Check fetches metadata and previews extracted markers with cleaned
	// question text; nothing is persisted
	Check(ctx context.Context, urlOrID string) (*CheckResult, error)
}

// QueuePort drives the persistent ingest job queue
type QueuePort interface {
	Enqueue(ctx context.Context, youtubeID string) (int64, error)

	// RunNext claims the oldest pending job, processes it, and records the
	// outcome. Returns nil when the queue is empty
	RunNext(ctx context.Context) (*ProcessResult, error)

	// ScanPlaylist enqueues every video in a playlist that storage does not
	// already mark processed, returning how many jobs were queued
	ScanPlaylist(ctx context.Context, playlistID string) (int, error)

	Stats(ctx context.Context) (QueueStats, error)
}

// BatchOptions tunes one RunBatch call
type BatchOptions struct {
	// Limit stops after N processed videos, zero means no limit
	Limit int

	// DryRun counts what would run without fetching or writing
	DryRun bool

	// SkipProcessed skips videos already marked processed in storage
	SkipProcessed bool
}

// MetadataPort fetches snippet metadata for a video
type MetadataPort interface {
	Metadata(ctx context.Context, youtubeID string) (*Metadata, error)
}

// TranscriptPort fetches the timed transcript for a video
type TranscriptPort interface {
	Transcript(ctx context.Context, youtubeID string) ([]Segment, error)
}

// PlaylistPort lists every video id in a playlist
type PlaylistPort interface {
	PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error)
}

// ClassifierPort labels one question and answer pair
type ClassifierPort interface {
	Enabled() bool
	Classify(ctx context.Context, question, answer string) (*Classification, error)
}

// StorageRepo persists pipeline output. All writes for one run happen on the
// same transaction-scoped Queryer so they commit or roll back together
type StorageRepo interface {
	// UpsertVideo writes the video row keyed by youtube id and returns the
	// row's id for child records
	UpsertVideo(ctx context.Context, meta Metadata, status string) (string, error)

	// UpsertTranscript writes the raw segment JSON and full text, one row
	// per video
	UpsertTranscript(ctx context.Context, videoID string, rawData []byte, fullText string) error

	// UpsertQAItem writes one classified match keyed by
	// (video id, timestamp seconds). Rows at timestamps absent from the
	// current run are left untouched
	UpsertQAItem(ctx context.Context, videoID string, cm ClassifiedMatch) error

	// IsProcessed reports whether the video already completed a run
	IsProcessed(ctx context.Context, youtubeID string) (bool, error)
}

// QueueRepo persists ingest jobs
type QueueRepo interface {
	Enqueue(ctx context.Context, youtubeID string) (int64, error)

	// ClaimNext locks and returns the oldest pending job, nil when none.
	// Claimed rows are invisible to concurrent claimers
	ClaimNext(ctx context.Context) (*Job, error)

	// Complete finishes a claimed job; a non-empty errText marks it failed
	Complete(ctx context.Context, jobID int64, errText string) error

	Stats(ctx context.Context) (QueueStats, error)
}
