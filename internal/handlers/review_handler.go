package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// ReviewService is the interface that wraps methods for video reviews
type ReviewService interface {
	// Create stores one review per caller and video and refreshes the video rating.
	Create(ctx context.Context, identity *models.Identity, req models.CreateReviewRequest) (*models.Review, error)
	// ListForVideo returns reviews newest first; NotFound when the video does not exist.
	ListForVideo(ctx context.Context, videoID int) ([]models.Review, error)
}

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	BaseHandler
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(svc ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all review handler routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/videos/{id}/reviews", h.ListForVideo)
	r.With(middleware.RequireAuth).Post("/reviews", h.Create)
}

// Create handles POST /api/v1/reviews
// @Summary Create review
// @Description Rate and comment on a video; one review per user and video
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondServiceError(w, r, "failed to decode request body", err)
		return
	}

	review, err := h.service.Create(r.Context(), h.identity(r), req)
	if err != nil {
		h.respondServiceError(w, r, "failed to create review", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, review)
}

// ListForVideo handles GET /api/v1/videos/{id}/reviews
// @Summary List video reviews
// @Description List reviews of a video, newest first
// @Tags reviews
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {array} models.Review
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{id}/reviews [get]
func (h *ReviewHandler) ListForVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseIDParam(r, "id")
	if err != nil {
		h.respondServiceError(w, r, "invalid video id", err)
		return
	}

	reviews, err := h.service.ListForVideo(r.Context(), videoID)
	if err != nil {
		h.respondServiceError(w, r, "failed to list reviews", err)
		return
	}

	h.respondJSON(w, http.StatusOK, reviews)
}
