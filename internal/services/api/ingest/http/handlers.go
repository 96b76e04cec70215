// Package http provides the key-protected ingest endpoints
package http

import (
	stdhttp "net/http"

	"vidqa/internal/modkit/httpkit"
	"vidqa/internal/services/api/ingest/domain"
	ingdom "vidqa/internal/services/ingest/domain"
)

// Ports are the worker-side ports the handlers delegate to
type Ports struct {
	Processor ingdom.ProcessorPort
	Queue     ingdom.QueuePort
}

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{p: p}
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
	httpkit.PostJSON[domain.EnqueueInput](r, "/enqueue", h.enqueue)
	httpkit.PostJSON[domain.RunInput](r, "/run", h.run)
	httpkit.PostJSON[domain.ScanPlaylistInput](r, "/scan-playlist", h.scanPlaylist)
	httpkit.Get(r, "/queue", h.queue)
}

type handlers struct{ p Ports }

// swagger:route POST /ingest/check Ingest ingestCheck
// @Summary Preview extracted markers without persisting
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Video"
// @Success 200 {object} ingdom.CheckResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /ingest/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.p.Processor.Check(r.Context(), in.URL)
}

// swagger:route POST /ingest/enqueue Ingest ingestEnqueue
// @Summary Queue one video for background processing
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.EnqueueInput true "Video"
// @Success 201 {object} domain.EnqueueOutput "created"
// @Router /ingest/enqueue [post]
func (h *handlers) enqueue(r *stdhttp.Request, in domain.EnqueueInput) (any, error) {
	jobID, err := h.p.Queue.Enqueue(r.Context(), in.YouTubeID)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(domain.EnqueueOutput{
		JobID:     jobID,
		YouTubeID: in.YouTubeID,
		Status:    string(ingdom.JobPending),
	}), nil
}

// swagger:route POST /ingest/run Ingest ingestRun
// @Summary Process one video synchronously
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Video"
// @Success 200 {object} ingdom.ProcessResult "ok"
// @Router /ingest/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.p.Processor.ProcessVideo(r.Context(), in.URL), nil
}

// swagger:route POST /ingest/scan-playlist Ingest ingestScanPlaylist
// @Summary Enqueue every unprocessed video in a playlist
// @Tags Ingest
// @Accept json
// @Produce json
// @Param payload body domain.ScanPlaylistInput true "Playlist"
// @Success 200 {object} domain.ScanPlaylistOutput "ok"
// @Router /ingest/scan-playlist [post]
func (h *handlers) scanPlaylist(r *stdhttp.Request, in domain.ScanPlaylistInput) (any, error) {
	queued, err := h.p.Queue.ScanPlaylist(r.Context(), in.PlaylistID)
	if err != nil {
		return nil, err
	}
	return domain.ScanPlaylistOutput{PlaylistID: in.PlaylistID, Queued: queued}, nil
}

// swagger:route GET /ingest/queue Ingest ingestQueue
// @Summary Job queue counts by status
// @Tags Ingest
// @Produce json
// @Success 200 {object} ingdom.QueueStats "ok"
// @Router /ingest/queue [get]
func (h *handlers) queue(r *stdhttp.Request) (any, error) {
	return h.p.Queue.Stats(r.Context())
}
