package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// FavoriteService is the interface that wraps methods for the caller's favorite videos
type FavoriteService interface {
	// List returns the caller's favorites ordered by sort (newest, oldest or title).
	List(ctx context.Context, identity *models.Identity, sort string) ([]models.FavoriteListItem, error)
	// Add returns a Duplicate error when the video is already a favorite
	// and NotFound when the video does not exist.
	Add(ctx context.Context, identity *models.Identity, req models.FavoriteRequest) (*models.Favorite, error)
	Remove(ctx context.Context, identity *models.Identity, videoID int) error
}

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	BaseHandler
	service FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(svc FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all favorite handler routes
func (h *FavoriteHandler) RegisterRoutes(r chi.Router) {
	r.Route("/favorites", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.List)
		r.Post("/", h.Add)
		r.Delete("/", h.Remove)
	})
}

// List handles GET /api/v1/favorites
// @Summary List favorites
// @Description List the caller's favorite videos
// @Tags favorites
// @Produce json
// @Security ApiKeyAuth
// @Param sort query string false "newest, oldest or title (default newest)"
// @Success 200 {array} models.FavoriteListItem
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.service.List(r.Context(), h.identity(r), r.URL.Query().Get("sort"))
	if err != nil {
		h.respondServiceError(w, r, "failed to list favorites", err)
		return
	}

	h.respondJSON(w, http.StatusOK, favorites)
}

// Add handles POST /api/v1/favorites
// @Summary Add favorite
// @Description Add a video to the caller's favorites
// @Tags favorites
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.FavoriteRequest true "Video to add"
// @Success 201 {object} models.Favorite
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/favorites [post]
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.FavoriteRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondServiceError(w, r, "failed to decode request body", err)
		return
	}

	favorite, err := h.service.Add(r.Context(), h.identity(r), req)
	if err != nil {
		h.respondServiceError(w, r, "failed to add favorite", err)
		return
	}

	h.respondJSON(w, http.StatusCreated, favorite)
}

// Remove handles DELETE /api/v1/favorites
// @Summary Remove favorite
// @Description Remove a video from the caller's favorites; video_id is read from the query or the JSON body
// @Tags favorites
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param video_id query int false "Video ID"
// @Param request body models.FavoriteRequest false "Video to remove"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/favorites [delete]
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	videoID, err := h.favoriteVideoID(r)
	if err != nil {
		h.respondServiceError(w, r, "invalid video id", err)
		return
	}

	if err := h.service.Remove(r.Context(), h.identity(r), videoID); err != nil {
		h.respondServiceError(w, r, "failed to remove favorite", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "removed from favorites"})
}

func (h *FavoriteHandler) favoriteVideoID(r *http.Request) (int, error) {
	if raw := r.URL.Query().Get("video_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return 0, apperrors.Validation("invalid video_id")
		}
		return id, nil
	}

	var req models.FavoriteRequest
	if err := h.decodeJSON(r, &req); err != nil {
		return 0, apperrors.Validation("video_id is required")
	}
	if req.VideoID <= 0 {
		return 0, apperrors.Validation("video_id is required")
	}
	return req.VideoID, nil
}
