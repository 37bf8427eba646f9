package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// AnalyticsService records engagement events
type AnalyticsService interface {
	// Record appends the event and bumps the matching counter; identity may be nil.
	Record(ctx context.Context, identity *models.Identity, req models.RecordEventRequest) (*models.AnalyticsEvent, error)
}

// AnalyticsHandler handles HTTP requests for engagement events
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all analytics handler routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/analytics/record", h.Record)
}

// Record handles POST /api/v1/analytics/record
// @Summary Record engagement event
// @Description Record a view, click, like or share; anonymous callers are allowed
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body models.RecordEventRequest true "Event"
// @Success 201 {object} models.AnalyticsEvent
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/analytics/record [post]
func (h *AnalyticsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordEventRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondServiceError(w, r, "failed to decode request body", err)
		return
	}

	event, err := h.service.Record(r.Context(), h.identity(r), req)
	if err != nil {
		h.respondServiceError(w, r, "failed to record event", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, event)
}
