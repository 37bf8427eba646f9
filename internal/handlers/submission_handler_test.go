package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionHandler(t *testing.T) {
	t.Run("anonymous rejected", func(t *testing.T) {
		svc := &mockSubmissionService{}
		router := newTestRouter(NewSubmissionHandler(svc, testLogger()), nil)

		w := serve(t, router, http.MethodGet, "/api/v1/content-submissions", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, svc.caller)
	})

	t.Run("create passes payload through", func(t *testing.T) {
		svc := &mockSubmissionService{submission: &models.Submission{ID: 11, UserID: 7, Status: models.SubmissionStatusPending}}
		router := newTestRouter(NewSubmissionHandler(svc, testLogger()), member)

		body := `{"submission_type":"external_link","title":"Docs","tags":["go"],"content_data":{"url":"https://go.dev"}}`
		w := serve(t, router, http.MethodPost, "/api/v1/content-submissions", body)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, models.SubmissionTypeExternalLink, svc.req.SubmissionType)
		assert.Equal(t, []string{"go"}, svc.req.Tags)
		assert.JSONEq(t, `{"url":"https://go.dev"}`, string(svc.req.ContentData))
		assert.Equal(t, member, svc.caller)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})

	t.Run("create validation error", func(t *testing.T) {
		svc := &mockSubmissionService{err: apperrors.Validation("url is required")}
		router := newTestRouter(NewSubmissionHandler(svc, testLogger()), member)

		w := serve(t, router, http.MethodPost, "/api/v1/content-submissions", `{"submission_type":"external_link","title":"Docs"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "url is required")
	})

	t.Run("list own", func(t *testing.T) {
		svc := &mockSubmissionService{submissions: []models.Submission{{ID: 1}, {ID: 2}}}
		router := newTestRouter(NewSubmissionHandler(svc, testLogger()), member)

		w := serve(t, router, http.MethodGet, "/api/v1/content-submissions", "")

		require.Equal(t, http.StatusOK, w.Code)
		var submissions []models.Submission
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submissions))
		assert.Len(t, submissions, 2)
	})
}

func TestAdminHandler(t *testing.T) {
	tests := []struct {
		name           string
		identity       *models.Identity
		method         string
		target         string
		body           string
		moderation     *mockModerationService
		queue          *mockSubmissionService
		expectedStatus int
		expectedBody   string
		validateFunc   func(*testing.T, *mockSubmissionService, *mockModerationService)
	}{
		{
			name:           "anonymous",
			method:         http.MethodGet,
			target:         "/api/v1/admin/submissions",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "member forbidden",
			identity:       member,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/3",
			body:           `{"status":"approved"}`,
			expectedStatus: http.StatusForbidden,
			validateFunc: func(t *testing.T, _ *mockSubmissionService, m *mockModerationService) {
				assert.Zero(t, m.submissionID)
			},
		},
		{
			name:           "list by status",
			identity:       moderator,
			method:         http.MethodGet,
			target:         "/api/v1/admin/submissions?status=rejected",
			queue:          &mockSubmissionService{submissions: []models.Submission{{ID: 4, SubmitterName: "kim"}}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"submitterName":"kim"`,
			validateFunc: func(t *testing.T, q *mockSubmissionService, _ *mockModerationService) {
				assert.Equal(t, "rejected", q.status)
			},
		},
		{
			name:           "unknown status",
			identity:       moderator,
			method:         http.MethodGet,
			target:         "/api/v1/admin/submissions?status=archived",
			queue:          &mockSubmissionService{err: apperrors.Validation("invalid status")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid status",
		},
		{
			name:           "approve",
			identity:       moderator,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/3",
			body:           `{"status":"approved","admin_notes":"ok"}`,
			moderation:     &mockModerationService{submission: &models.Submission{ID: 3, Status: models.SubmissionStatusApproved}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"approved"`,
			validateFunc: func(t *testing.T, _ *mockSubmissionService, m *mockModerationService) {
				assert.Equal(t, 3, m.submissionID)
				assert.Equal(t, models.ModerationDecisionRequest{Status: models.SubmissionStatusApproved, AdminNotes: "ok"}, m.req)
			},
		},
		{
			name:           "terminal switch conflict",
			identity:       moderator,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/3",
			body:           `{"status":"rejected"}`,
			moderation:     &mockModerationService{err: apperrors.Conflict("submission is already approved")},
			expectedStatus: http.StatusConflict,
			expectedBody:   "submission is already approved",
		},
		{
			name:           "missing submission",
			identity:       moderator,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/99",
			body:           `{"status":"rejected"}`,
			moderation:     &mockModerationService{err: apperrors.NotFound("submission not found")},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			identity:       moderator,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/x",
			body:           `{"status":"rejected"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid id",
		},
		{
			name:           "malformed body",
			identity:       moderator,
			method:         http.MethodPut,
			target:         "/api/v1/admin/submissions/3",
			body:           `status=approved`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.queue == nil {
				tt.queue = &mockSubmissionService{}
			}
			if tt.moderation == nil {
				tt.moderation = &mockModerationService{}
			}
			router := newTestRouter(NewAdminHandler(tt.queue, tt.moderation, testLogger()), tt.identity)

			w := serve(t, router, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			if tt.validateFunc != nil {
				tt.validateFunc(t, tt.queue, tt.moderation)
			}
		})
	}
}
