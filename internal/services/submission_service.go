package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// SubmissionRepository is the interface that wraps methods for content_submissions table data access
type SubmissionRepository interface {
	// Create inserts the submission and assigns its ID.
	Create(ctx context.Context, s *models.Submission) error
	// ListByOwner returns the submissions of a user, newest first.
	ListByOwner(ctx context.Context, userID int) ([]models.Submission, error)
	// ListByStatus returns submissions in the given state joined with submitter and category names, newest first.
	ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error)
}

type submissionService struct {
	repo     SubmissionRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

// NewSubmissionService creates a new content submission service
func NewSubmissionService(repo SubmissionRepository, logger *zap.Logger) *submissionService {
	return &submissionService{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
		logger:   logger,
	}
}

// Create stores a pending submission owned by the caller
func (s *submissionService) Create(ctx context.Context, identity *models.Identity, req models.CreateSubmissionRequest) (*models.Submission, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.ThumbnailURL = strings.TrimSpace(req.ThumbnailURL)

	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if !req.SubmissionType.Valid() {
		return nil, apperrors.Validation("submission_type must be one of: video_embed, external_link")
	}

	contentData, err := s.normalizePayload(req.SubmissionType, req.ContentData)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	submission := &models.Submission{
		UserID:         identity.ID,
		SubmissionType: req.SubmissionType,
		Title:          req.Title,
		Description:    req.Description,
		ThumbnailURL:   req.ThumbnailURL,
		CategoryID:     req.CategoryID,
		Tags:           normalizeTags(req.Tags),
		ContentData:    contentData,
		Status:         models.SubmissionStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		s.logger.Error("failed to create submission", zap.Int("user_id", identity.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("submission created",
		zap.Int("submission_id", submission.ID),
		zap.Int("user_id", identity.ID),
		zap.String("type", string(submission.SubmissionType)),
	)

	return submission, nil
}

// ListForOwner returns the submissions of the caller, newest first
func (s *submissionService) ListForOwner(ctx context.Context, identity *models.Identity) ([]models.Submission, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	submissions, err := s.repo.ListByOwner(ctx, identity.ID)
	if err != nil {
		s.logger.Error("failed to list own submissions", zap.Int("user_id", identity.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, nil
}

// ListByStatus returns submissions in a moderation state for moderators.
// An empty status lists pending submissions.
func (s *submissionService) ListByStatus(ctx context.Context, identity *models.Identity, status string) ([]models.Submission, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !identity.CanModerate {
		return nil, apperrors.Forbidden("moderation privilege required")
	}

	state := models.SubmissionStatus(status)
	if state == "" {
		state = models.SubmissionStatusPending
	}
	if !state.Valid() {
		return nil, apperrors.Validation("status must be one of: pending, approved, rejected")
	}

	submissions, err := s.repo.ListByStatus(ctx, state)
	if err != nil {
		s.logger.Error("failed to list submissions by status", zap.String("status", string(state)), zap.Error(err))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, nil
}

// normalizePayload validates the type specific content data and re-encodes it with only the known fields
func (s *submissionService) normalizePayload(submissionType models.SubmissionType, raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, apperrors.Validation("content_data is required")
	}

	var payload any
	switch submissionType {
	case models.SubmissionTypeVideoEmbed:
		var p models.VideoEmbedPayload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, apperrors.Validation("content_data must be an object with embed_code and duration")
		}
		p.EmbedCode = strings.TrimSpace(p.EmbedCode)
		payload = p
	case models.SubmissionTypeExternalLink:
		var p models.ExternalLinkPayload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, apperrors.Validation("content_data must be an object with url")
		}
		p.URL = strings.TrimSpace(p.URL)
		payload = p
	}

	if err := validateStruct(s.validate, payload); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content data: %w", err)
	}

	return encoded, nil
}

// normalizeTags trims tags and drops blanks and repeats, keeping the first occurrence order
func normalizeTags(tags []string) models.Tags {
	result := make(models.Tags, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
