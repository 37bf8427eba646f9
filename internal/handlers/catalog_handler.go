package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/search"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for published content lookups
type CatalogService interface {
	// SearchVideos returns a page of videos matching the parameters.
	//
	// Pagination is clamped and unknown sort keys fall back to newest, so only storage
	// failures are returned as errors.
	SearchVideos(ctx context.Context, params search.Params) (*models.Page[models.Video], error)
	// GetVideo returns a NotFound error when no video has the id.
	GetVideo(ctx context.Context, id int) (*models.Video, error)
	// SearchVideoEmbeds returns a page of approved video embeds matching the parameters.
	SearchVideoEmbeds(ctx context.Context, params search.Params) (*models.Page[models.VideoEmbed], error)
	GetVideoEmbed(ctx context.Context, id int) (*models.VideoEmbed, error)
	// SearchExternalLinks returns a page of approved external links matching the parameters.
	// Duration and quality bounds do not apply to links.
	SearchExternalLinks(ctx context.Context, params search.Params) (*models.Page[models.ExternalLink], error)
	GetExternalLink(ctx context.Context, id int) (*models.ExternalLink, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.ContentTag, error)
}

// CatalogHandler handles HTTP requests for published content
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/videos", h.SearchVideos)
	r.Get("/videos/{id}", h.GetVideo)
	r.Get("/video-embeds", h.SearchVideoEmbeds)
	r.Get("/video-embeds/{id}", h.GetVideoEmbed)
	r.Get("/external-links", h.SearchExternalLinks)
	r.Get("/external-links/{id}", h.GetExternalLink)
	r.Get("/categories", h.ListCategories)
	r.Get("/content-tags", h.ListTags)
}

// SearchVideos handles GET /api/v1/videos
// @Summary Search videos
// @Description Search hosted videos by free text, category, quality, duration and tag with pagination
// @Tags catalog
// @Produce json
// @Param q query string false "Free text matched against title and description (alias: search)"
// @Param category query string false "Category slug"
// @Param quality query string false "Quality, e.g. hd"
// @Param duration_min query int false "Minimal duration in minutes"
// @Param duration_max query int false "Maximal duration in minutes"
// @Param tag query string false "Exact tag"
// @Param sort query string false "newest, oldest, popular, rating or title (default newest)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100; alias: per_page)"
// @Success 200 {object} models.Page[models.Video]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos [get]
func (h *CatalogHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseQuery(r.URL.Query())
	if err != nil {
		h.respondServiceError(w, r, "failed to parse search parameters", err)
		return
	}

	page, err := h.service.SearchVideos(r.Context(), params)
	if err != nil {
		h.respondServiceError(w, r, "failed to search videos", err)
		return
	}

	h.respondJSON(w, http.StatusOK, page)
}

// GetVideo handles GET /api/v1/videos/{id}
// @Summary Get video
// @Description Get a hosted video by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} models.Video
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{id} [get]
func (h *CatalogHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondServiceError(w, r, "invalid video id", err)
		return
	}

	video, err := h.service.GetVideo(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "failed to get video", err)
		return
	}

	h.respondJSON(w, http.StatusOK, video)
}

// SearchVideoEmbeds handles GET /api/v1/video-embeds
// @Summary Search video embeds
// @Description Search approved video embeds; accepts the same parameters as video search except quality
// @Tags catalog
// @Produce json
// @Param q query string false "Free text matched against title and description"
// @Param category query string false "Category slug"
// @Param duration_min query int false "Minimal duration in minutes"
// @Param duration_max query int false "Maximal duration in minutes"
// @Param tag query string false "Exact tag"
// @Param sort query string false "newest, oldest, popular, rating or title"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page[models.VideoEmbed]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/video-embeds [get]
func (h *CatalogHandler) SearchVideoEmbeds(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseQuery(r.URL.Query())
	if err != nil {
		h.respondServiceError(w, r, "failed to parse search parameters", err)
		return
	}

	page, err := h.service.SearchVideoEmbeds(r.Context(), params)
	if err != nil {
		h.respondServiceError(w, r, "failed to search video embeds", err)
		return
	}

	h.respondJSON(w, http.StatusOK, page)
}

// GetVideoEmbed handles GET /api/v1/video-embeds/{id}
// @Summary Get video embed
// @Description Get an approved video embed by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Video embed ID"
// @Success 200 {object} models.VideoEmbed
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/video-embeds/{id} [get]
func (h *CatalogHandler) GetVideoEmbed(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondServiceError(w, r, "invalid video embed id", err)
		return
	}

	embed, err := h.service.GetVideoEmbed(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "failed to get video embed", err)
		return
	}

	h.respondJSON(w, http.StatusOK, embed)
}

// SearchExternalLinks handles GET /api/v1/external-links
// @Summary Search external links
// @Description Search approved external links by free text, category and tag
// @Tags catalog
// @Produce json
// @Param q query string false "Free text matched against title and description"
// @Param category query string false "Category slug"
// @Param tag query string false "Exact tag"
// @Param sort query string false "newest, oldest, popular, rating or title"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page[models.ExternalLink]
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/external-links [get]
func (h *CatalogHandler) SearchExternalLinks(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseQuery(r.URL.Query())
	if err != nil {
		h.respondServiceError(w, r, "failed to parse search parameters", err)
		return
	}

	page, err := h.service.SearchExternalLinks(r.Context(), params)
	if err != nil {
		h.respondServiceError(w, r, "failed to search external links", err)
		return
	}

	h.respondJSON(w, http.StatusOK, page)
}

// GetExternalLink handles GET /api/v1/external-links/{id}
// @Summary Get external link
// @Description Get an approved external link by ID
// @Tags catalog
// @Produce json
// @Param id path int true "External link ID"
// @Success 200 {object} models.ExternalLink
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/external-links/{id} [get]
func (h *CatalogHandler) GetExternalLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.respondServiceError(w, r, "invalid external link id", err)
		return
	}

	link, err := h.service.GetExternalLink(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, "failed to get external link", err)
		return
	}

	h.respondJSON(w, http.StatusOK, link)
}

// ListCategories handles GET /api/v1/categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "failed to list categories", err)
		return
	}

	h.respondJSON(w, http.StatusOK, categories)
}

// ListTags handles GET /api/v1/content-tags
// @Summary List content tags
// @Tags catalog
// @Produce json
// @Success 200 {array} models.ContentTag
// @Failure 500 {object} map[string]string
// @Router /api/v1/content-tags [get]
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		h.respondServiceError(w, r, "failed to list content tags", err)
		return
	}

	h.respondJSON(w, http.StatusOK, tags)
}
