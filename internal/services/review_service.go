package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// ReviewRepository is the interface that wraps methods for reviews table data access
type ReviewRepository interface {
	// Create inserts the review and refreshes the video rating atomically.
	// A second review of the same video by the same user yields a Duplicate error.
	Create(ctx context.Context, review *models.Review) error
	ListByVideo(ctx context.Context, videoID int) ([]models.Review, error)
}

// VideoExistenceChecker reports whether a video exists
type VideoExistenceChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type reviewService struct {
	repo     ReviewRepository
	videos   VideoExistenceChecker
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(repo ReviewRepository, videos VideoExistenceChecker, logger *zap.Logger) *reviewService {
	return &reviewService{
		repo:     repo,
		videos:   videos,
		validate: newValidator(),
		now:      time.Now,
		logger:   logger,
	}
}

// Create records a review of a video by the caller
func (s *reviewService) Create(ctx context.Context, identity *models.Identity, req models.CreateReviewRequest) (*models.Review, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    identity.ID,
		VideoID:   req.VideoID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		s.logger.Error("failed to create review", zap.Int("video_id", req.VideoID), zap.Error(err))
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

// ListForVideo returns the reviews of a video, newest first
func (s *reviewService) ListForVideo(ctx context.Context, videoID int) ([]models.Review, error) {
	if videoID <= 0 {
		return nil, apperrors.Validation("invalid video id")
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		s.logger.Error("failed to check video", zap.Int("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to check video: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("video not found")
	}

	reviews, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		s.logger.Error("failed to list reviews", zap.Int("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
