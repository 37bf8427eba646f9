package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/repositories"
	"go.uber.org/zap"
)

// ModerationRepository runs moderation writes inside a single transaction
type ModerationRepository interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx repositories.ModerationTx) error) error
}

type moderationService struct {
	repo                ModerationRepository
	allowTerminalSwitch bool
	validate            *validator.Validate
	now                 func() time.Time
	logger              *zap.Logger
}

// NewModerationService creates a new moderation service.
//
// allowTerminalSwitch permits moving a decided submission from approved to rejected and back.
func NewModerationService(repo ModerationRepository, allowTerminalSwitch bool, logger *zap.Logger) *moderationService {
	return &moderationService{
		repo:                repo,
		allowTerminalSwitch: allowTerminalSwitch,
		validate:            newValidator(),
		now:                 time.Now,
		logger:              logger,
	}
}

// Decide applies a moderation decision to a submission and returns the updated submission.
//
// Approval publishes the submission as a video embed or external link in the same transaction
// as the status update. Re-approving never publishes a second record. Rejecting a previously
// approved submission hides the record published from it.
func (s *moderationService) Decide(ctx context.Context, identity *models.Identity, submissionID int, req models.ModerationDecisionRequest) (*models.Submission, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !identity.CanModerate {
		return nil, apperrors.Forbidden("moderation privilege required")
	}
	if req.Status != models.SubmissionStatusApproved && req.Status != models.SubmissionStatusRejected {
		return nil, apperrors.Validation("status must be one of: approved, rejected")
	}

	req.AdminNotes = strings.TrimSpace(req.AdminNotes)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if submissionID <= 0 {
		return nil, apperrors.NotFound("submission not found")
	}

	var notes *string
	if req.AdminNotes != "" {
		notes = &req.AdminNotes
	}

	var result *models.Submission
	err := s.repo.WithinTransaction(ctx, func(tx repositories.ModerationTx) error {
		current, err := tx.GetForUpdate(ctx, submissionID)
		if err != nil {
			return err
		}

		if err := s.checkTransition(current.Status, req.Status); err != nil {
			return err
		}

		reviewedAt := s.now().UTC()
		if err := tx.UpdateDecision(ctx, submissionID, req.Status, notes, identity.ID, reviewedAt); err != nil {
			return err
		}

		previous := current.Status
		reviewerID := identity.ID
		current.Status = req.Status
		current.AdminNotes = notes
		current.ReviewedBy = &reviewerID
		current.ReviewedAt = &reviewedAt
		current.UpdatedAt = reviewedAt
		result = current

		switch req.Status {
		case models.SubmissionStatusApproved:
			return s.publish(ctx, tx, submissionID, reviewedAt)
		case models.SubmissionStatusRejected:
			if previous == models.SubmissionStatusApproved {
				return tx.Unpublish(ctx, submissionID, current.SubmissionType, reviewedAt)
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		s.logger.Error("failed to apply moderation decision",
			zap.Int("submission_id", submissionID),
			zap.String("status", string(req.Status)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to apply moderation decision: %w", err)
	}

	s.logger.Info("moderation decision applied",
		zap.Int("submission_id", submissionID),
		zap.String("status", string(req.Status)),
		zap.Int("reviewer_id", identity.ID),
	)

	return result, nil
}

// checkTransition enforces the transition policy between moderation states.
// Same-state re-review is always allowed.
func (s *moderationService) checkTransition(from, to models.SubmissionStatus) error {
	if from == to || !from.Terminal() {
		return nil
	}
	if s.allowTerminalSwitch {
		return nil
	}
	return apperrors.Conflict(fmt.Sprintf("submission is already %s", from))
}

// publish materializes an approved submission from its stored payload.
// A submission that disappeared before the re-read is left unpublished.
func (s *moderationService) publish(ctx context.Context, tx repositories.ModerationTx, submissionID int, at time.Time) error {
	submission, err := tx.GetForUpdate(ctx, submissionID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			s.logger.Warn("approved submission vanished before publishing", zap.Int("submission_id", submissionID))
			return nil
		}
		return err
	}

	switch submission.SubmissionType {
	case models.SubmissionTypeVideoEmbed:
		var payload models.VideoEmbedPayload
		if err := json.Unmarshal(submission.ContentData, &payload); err != nil {
			s.logger.Error("stored submission payload is corrupt", zap.Int("submission_id", submissionID), zap.Error(err))
			return apperrors.Internal("stored submission payload is corrupt", err)
		}
		embed := &models.VideoEmbed{
			SubmissionID: &submission.ID,
			Title:        submission.Title,
			Description:  submission.Description,
			ThumbnailURL: submission.ThumbnailURL,
			EmbedCode:    payload.EmbedCode,
			Duration:     payload.Duration,
			CategoryRef:  models.CategoryRef{CategoryID: submission.CategoryID},
			Tags:         submission.Tags,
			IsApproved:   true,
			CreatedAt:    at,
			UpdatedAt:    at,
		}
		created, err := tx.UpsertVideoEmbed(ctx, embed)
		if err != nil {
			return err
		}
		s.logger.Info("video embed published",
			zap.Int("submission_id", submissionID),
			zap.Int("video_embed_id", embed.ID),
			zap.Bool("created", created),
		)
	case models.SubmissionTypeExternalLink:
		var payload models.ExternalLinkPayload
		if err := json.Unmarshal(submission.ContentData, &payload); err != nil {
			s.logger.Error("stored submission payload is corrupt", zap.Int("submission_id", submissionID), zap.Error(err))
			return apperrors.Internal("stored submission payload is corrupt", err)
		}
		link := &models.ExternalLink{
			SubmissionID: &submission.ID,
			Title:        submission.Title,
			Description:  submission.Description,
			ThumbnailURL: submission.ThumbnailURL,
			URL:          payload.URL,
			CategoryRef:  models.CategoryRef{CategoryID: submission.CategoryID},
			Tags:         submission.Tags,
			IsApproved:   true,
			CreatedAt:    at,
			UpdatedAt:    at,
		}
		created, err := tx.UpsertExternalLink(ctx, link)
		if err != nil {
			return err
		}
		s.logger.Info("external link published",
			zap.Int("submission_id", submissionID),
			zap.Int("external_link_id", link.ID),
			zap.Bool("created", created),
		)
	default:
		s.logger.Error("submission has an unknown type",
			zap.Int("submission_id", submissionID),
			zap.String("type", string(submission.SubmissionType)),
		)
		return apperrors.Internal("unknown submission type", nil)
	}

	return nil
}
