package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// SubmissionService is the interface that wraps methods for user content submissions
type SubmissionService interface {
	// Create validates the request and its type specific payload and stores a pending submission.
	Create(ctx context.Context, identity *models.Identity, req models.CreateSubmissionRequest) (*models.Submission, error)
	// ListForOwner returns the caller's submissions newest first.
	ListForOwner(ctx context.Context, identity *models.Identity) ([]models.Submission, error)
}

// SubmissionHandler handles HTTP requests for content submissions
type SubmissionHandler struct {
	BaseHandler
	service SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(svc SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all submission handler routes
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/content-submissions", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
	})
}

// Create handles POST /api/v1/content-submissions
// @Summary Submit content
// @Description Submit a video embed or external link for moderation
// @Tags submissions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateSubmissionRequest true "Submission"
// @Success 201 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/content-submissions [post]
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondServiceError(w, r, "failed to decode request body", err)
		return
	}

	submission, err := h.service.Create(r.Context(), h.identity(r), req)
	if err != nil {
		h.respondServiceError(w, r, "failed to create submission", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, submission)
}

// ListMine handles GET /api/v1/content-submissions
// @Summary List own submissions
// @Description List the caller's submissions, newest first
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Submission
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/content-submissions [get]
func (h *SubmissionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.ListForOwner(r.Context(), h.identity(r))
	if err != nil {
		h.respondServiceError(w, r, "failed to list submissions", err)
		return
	}

	h.respondJSON(w, http.StatusOK, submissions)
}
