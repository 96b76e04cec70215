// Package http provides http transport for qa search
package http

import (
	stdhttp "net/http"

	"vidqa/internal/modkit/httpkit"
	"vidqa/internal/services/api/qa/domain"
	svc "vidqa/internal/services/api/qa/service"
)

// Register mounts qa endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
	httpkit.PostJSON[domain.RecentInput](r, "/recent", h.recent)
	httpkit.Get(r, "/tags", h.tags)
	httpkit.Get(r, "/categories", h.categories)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /qa/search QA qaSearch
// @Summary Search questions and answers
// @Tags QA
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {array} domain.Record "ok"
// @Router /qa/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	items, total, err := h.svc.Search(r.Context(), in)
	if err != nil {
		return nil, err
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	return httpkit.List(items, total, page, len(items)), nil
}

// swagger:route POST /qa/recent QA qaRecent
// @Summary Newest Q&A records across all videos
// @Tags QA
// @Accept json
// @Produce json
// @Param payload body domain.RecentInput true "Query"
// @Success 200 {array} domain.Record "ok"
// @Router /qa/recent [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.RecentInput) (any, error) {
	return h.svc.Recent(r.Context(), in)
}

// swagger:route GET /qa/tags QA qaTags
// @Summary All tags with usage counts
// @Tags QA
// @Produce json
// @Success 200 {array} domain.Tag "ok"
// @Router /qa/tags [get]
func (h *handlers) tags(r *stdhttp.Request) (any, error) {
	return h.svc.Tags(r.Context())
}

// swagger:route GET /qa/categories QA qaCategories
// @Summary Record counts by category and subcategory
// @Tags QA
// @Produce json
// @Success 200 {array} domain.CategoryCount "ok"
// @Router /qa/categories [get]
func (h *handlers) categories(r *stdhttp.Request) (any, error) {
	return h.svc.Categories(r.Context())
}
