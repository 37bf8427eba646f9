package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps a service error to its status code and client-safe message.
// Internal faults are logged with the failing operation.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(operation,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
	}
	h.respondError(w, status, apperrors.PublicMessage(err))
}

// decodeJSON decodes the request body into dst.
// An empty body is reported as an invalid request body.
func (h *BaseHandler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is required")
		}
		return apperrors.Validation("invalid request body")
	}
	return nil
}

// identity returns the caller identity or nil for anonymous requests
func (h *BaseHandler) identity(r *http.Request) *models.Identity {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return nil
	}
	return identity
}

// parseIDParam reads a positive integer URL parameter
func parseIDParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid " + name)
	}
	return id, nil
}
