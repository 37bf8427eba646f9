package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// SubmissionQueue lists submissions for moderators
type SubmissionQueue interface {
	// ListByStatus returns submissions in the status, pending when status is empty.
	ListByStatus(ctx context.Context, identity *models.Identity, status string) ([]models.Submission, error)
}

// ModerationService applies moderation decisions
type ModerationService interface {
	// Decide moves the submission to the requested status and publishes or unpublishes
	// the derived catalog record in the same transaction.
	Decide(ctx context.Context, identity *models.Identity, submissionID int, req models.ModerationDecisionRequest) (*models.Submission, error)
}

// AdminHandler handles HTTP requests for the moderation queue
type AdminHandler struct {
	BaseHandler
	queue      SubmissionQueue
	moderation ModerationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(queue SubmissionQueue, moderation ModerationService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		queue:       queue,
		moderation:  moderation,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/submissions", func(r chi.Router) {
		r.Use(middleware.RequireModerator)
		r.Get("/", h.ListSubmissions)
		r.Put("/{id}", h.Decide)
	})
}

// ListSubmissions handles GET /api/v1/admin/submissions
// @Summary List submissions by status
// @Description List submissions for moderation with submitter and category names
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "pending, approved or rejected (default pending)"
// @Success 200 {array} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/submissions [get]
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.queue.ListByStatus(r.Context(), h.identity(r), r.URL.Query().Get("status"))
	if err != nil {
		h.respondServiceError(w, r, "failed to list submissions", err)
		return
	}

	h.respondJSON(w, http.StatusOK, submissions)
}

// Decide handles PUT /api/v1/admin/submissions/{id}
// @Summary Moderate submission
// @Description Approve or reject a submission; approval publishes a video embed or external link
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Param request body models.ModerationDecisionRequest true "Decision"
// @Success 200 {object} models.Submission
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/submissions/{id} [put]
func (h *AdminHandler) Decide(w http.ResponseWriter, r *http.Request) {
	submissionID, err := parseIDParam(r, "id")
	if err != nil {
		h.respondServiceError(w, r, "invalid submission id", err)
		return
	}

	var req models.ModerationDecisionRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondServiceError(w, r, "failed to decode request body", err)
		return
	}

	submission, err := h.moderation.Decide(r.Context(), h.identity(r), submissionID, req)
	if err != nil {
		h.respondServiceError(w, r, "failed to moderate submission", err)
		return
	}

	h.respondJSON(w, http.StatusOK, submission)
}
