// Package http provides http transport for videos
package http

import (
	stdhttp "net/http"

	"vidqa/internal/modkit/httpkit"
	"vidqa/internal/services/api/videos/domain"
	svc "vidqa/internal/services/api/videos/service"
)

// Register mounts videos endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /videos/list Videos videosList
// @Summary List videos with optional title search
// @Tags Videos
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {array} domain.Video "ok"
// @Router /videos/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	items, total, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	return httpkit.List(items, total, page, len(items)), nil
}

// swagger:route POST /videos/get Videos videosGet
// @Summary One video with its extracted Q&A items
// @Tags Videos
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Query"
// @Success 200 {object} domain.VideoDetail "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /videos/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	return h.svc.Get(r.Context(), in)
}
