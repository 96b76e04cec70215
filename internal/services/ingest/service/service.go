// Package service implements the ingest pipeline over the domain ports
package service

import (
	"context"
	"time"

	"vidqa/internal/adapters/youtube"
	"vidqa/internal/core/answers"
	"vidqa/internal/core/markers"
	"vidqa/internal/core/qatext"
	"vidqa/internal/core/timecode"
	"vidqa/internal/modkit/repokit"
	"vidqa/internal/platform/logger"
	"vidqa/internal/services/ingest/domain"
)

// pipeline error and warning strings surfaced inside ProcessResult
const (
	errBadVideoRef     = "invalid video URL or id"
	errMetadataFetch   = "failed to fetch video metadata"
	errTranscriptFetch = "failed to fetch transcript"
	errPersist         = "failed to save results"
	warnNoTimestamps   = "no timestamps found in description"
)

// Config tunes the pipeline
type Config struct {
	// SkipClassification leaves every match unlabeled even when the
	// classifier is configured
	SkipClassification bool

	// PreviewLength bounds answer previews, zero means the default
	PreviewLength int

	// RequestDelay spaces out videos in batch and queue runs
	RequestDelay time.Duration
}

// Service runs the extract, slice, classify, persist pipeline
type Service struct {
	cfg     Config
	meta    domain.MetadataPort
	scripts domain.TranscriptPort
	lists   domain.PlaylistPort
	class   domain.ClassifierPort
	tx      repokit.TxRunner
	store   repokit.Binder[domain.StorageRepo]
	jobs    repokit.Binder[domain.QueueRepo]
	log     logger.Logger

	sleep func(ctx context.Context, d time.Duration)
}

// New wires a Service; all ports are required except class, which may be nil
// when classification is disabled
func New(
	cfg Config,
	meta domain.MetadataPort,
	scripts domain.TranscriptPort,
	lists domain.PlaylistPort,
	class domain.ClassifierPort,
	tx repokit.TxRunner,
	store repokit.Binder[domain.StorageRepo],
	jobs repokit.Binder[domain.QueueRepo],
) *Service {
	return &Service{
		cfg:     cfg,
		meta:    meta,
		scripts: scripts,
		lists:   lists,
		class:   class,
		tx:      tx,
		store:   store,
		jobs:    jobs,
		log:     *logger.Named("ingest"),
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// ProcessVideo runs the full pipeline for one video reference.
// Each stage failure is terminal for the video and lands in res.Error;
// classification failures are absorbed per match and never fail the run
func (s *Service) ProcessVideo(ctx context.Context, urlOrID string) domain.ProcessResult {
	res := domain.ProcessResult{YouTubeID: urlOrID}

	id, err := youtube.VideoID(urlOrID)
	if err != nil {
		res.Error = errBadVideoRef
		return res
	}
	res.YouTubeID = id

	log := s.log.With().Str("youtube_id", id).Logger()
	log.Info().Msg("processing video")

	md, err := s.meta.Metadata(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("metadata fetch failed")
		res.Error = errMetadataFetch
		return res
	}
	res.Title = md.Title

	marks := markers.Extract(md.Description)
	res.QuestionsFound = len(marks)
	if len(marks) == 0 {
		log.Warn().Msg("no timestamp markers in description")
		res.Warnings = append(res.Warnings, warnNoTimestamps)
	}

	segs, err := s.scripts.Transcript(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("transcript fetch failed")
		res.Error = errTranscriptFetch
		return res
	}

	matches := answers.Slice(marks, segs, s.cfg.PreviewLength)
	classified := s.classifyAll(ctx, matches, &res)

	raw, err := youtube.RawData(segs)
	if err != nil {
		res.Error = errPersist
		return res
	}

	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.store.Bind(q)
		videoID, err := st.UpsertVideo(ctx, *md, "processed")
		if err != nil {
			return err
		}
		if err := st.UpsertTranscript(ctx, videoID, raw, youtube.FullText(segs)); err != nil {
			return err
		}
		for _, cm := range classified {
			if err := st.UpsertQAItem(ctx, videoID, cm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("persist failed")
		res.Error = errPersist
		return res
	}

	res.QuestionsSaved = len(classified)
	res.Success = true
	log.Info().Int("found", res.QuestionsFound).Int("saved", res.QuestionsSaved).Msg("video processed")
	return res
}

// Check previews the markers a full run would extract. Question labels are
// cleaned for display; ProcessVideo persists them verbatim
func (s *Service) Check(ctx context.Context, urlOrID string) (*domain.CheckResult, error) {
	id, err := youtube.VideoID(urlOrID)
	if err != nil {
		return nil, err
	}
	md, err := s.meta.Metadata(ctx, id)
	if err != nil {
		return nil, err
	}

	marks := markers.Extract(md.Description)
	out := &domain.CheckResult{
		YouTubeID: id,
		Title:     md.Title,
		Markers:   make([]domain.CheckItem, 0, len(marks)),
	}
	for _, m := range marks {
		out.Markers = append(out.Markers, domain.CheckItem{
			TimeText: timecode.Format(m.Seconds),
			Seconds:  m.Seconds,
			Question: qatext.CleanQuestion(m.Label),
		})
	}
	return out, nil
}

// classifyAll labels matches one by one, degrading to unlabeled on any error
func (s *Service) classifyAll(
	ctx context.Context,
	matches []answers.Match,
	res *domain.ProcessResult,
) []domain.ClassifiedMatch {
	out := make([]domain.ClassifiedMatch, 0, len(matches))
	enabled := !s.cfg.SkipClassification && s.class != nil && s.class.Enabled()
	for _, m := range matches {
		cm := domain.ClassifiedMatch{Match: m}
		if enabled {
			cls, err := s.class.Classify(ctx, m.Question, m.Answer)
			if err != nil {
				s.log.Warn().Err(err).Str("time", m.TimeText).Msg("classification failed, keeping match unlabeled")
				res.Warnings = append(res.Warnings, "classification failed at "+m.TimeText)
			} else {
				cm.Class = cls
			}
		}
		out = append(out, cm)
	}
	return out
}

// RunBatch processes ids sequentially. One video's failure never stops the
// rest; onResult, when set, observes every result in order
func (s *Service) RunBatch(
	ctx context.Context,
	ids []string,
	opt domain.BatchOptions,
	onResult func(domain.ProcessResult),
) domain.BatchStats {
	stats := domain.BatchStats{Total: len(ids)}

	for _, ref := range ids {
		if ctx.Err() != nil {
			break
		}
		if opt.Limit > 0 && stats.Processed >= opt.Limit {
			break
		}

		if opt.SkipProcessed {
			if id, err := youtube.VideoID(ref); err == nil {
				done, err := s.isProcessed(ctx, id)
				if err == nil && done {
					stats.Skipped++
					continue
				}
			}
		}

		if opt.DryRun {
			stats.Processed++
			continue
		}

		res := s.ProcessVideo(ctx, ref)
		stats.Processed++
		if res.Success {
			stats.Successful++
			stats.TotalQuestions += res.QuestionsSaved
		} else {
			stats.Failed++
			stats.Errors = append(stats.Errors, domain.BatchError{
				YouTubeID: res.YouTubeID,
				Message:   res.Error,
			})
		}
		if onResult != nil {
			onResult(res)
		}

		s.sleep(ctx, s.cfg.RequestDelay)
	}
	return stats
}

func (s *Service) isProcessed(ctx context.Context, youtubeID string) (done bool, err error) {
	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		done, err = s.store.Bind(q).IsProcessed(ctx, youtubeID)
		return err
	})
	return done, err
}

// Enqueue records one pending ingest job
func (s *Service) Enqueue(ctx context.Context, youtubeID string) (jobID int64, err error) {
	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		jobID, err = s.jobs.Bind(q).Enqueue(ctx, youtubeID)
		return err
	})
	return jobID, err
}

// RunNext claims and processes the oldest pending job. A nil result with a
// nil error means the queue was empty
func (s *Service) RunNext(ctx context.Context) (*domain.ProcessResult, error) {
	var job *domain.Job
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		var err error
		job, err = s.jobs.Bind(q).ClaimNext(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}

	res := s.ProcessVideo(ctx, job.YouTubeID)

	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		return s.jobs.Bind(q).Complete(ctx, job.ID, res.Error)
	})
	if err != nil {
		return &res, err
	}
	return &res, nil
}

// ScanPlaylist walks a playlist and enqueues every video not already marked
// processed. Videos with pending jobs may be enqueued again; the queue runner
// resolves duplicates by reprocessing, which is idempotent
func (s *Service) ScanPlaylist(ctx context.Context, playlistID string) (int, error) {
	ids, err := s.lists.PlaylistVideoIDs(ctx, playlistID)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return queued, ctx.Err()
		}
		done, err := s.isProcessed(ctx, id)
		if err != nil {
			return queued, err
		}
		if done {
			continue
		}
		if _, err := s.Enqueue(ctx, id); err != nil {
			return queued, err
		}
		queued++
	}
	s.log.Info().Str("playlist_id", playlistID).Int("queued", queued).Msg("playlist scanned")
	return queued, nil
}

// Stats reports queue counts by status
func (s *Service) Stats(ctx context.Context) (out domain.QueueStats, err error) {
	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		out, err = s.jobs.Bind(q).Stats(ctx)
		return err
	})
	return out, err
}
