package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// FavoriteRepository is the interface that wraps methods for favorites table data access
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int, sort models.FavoriteSort) ([]models.FavoriteListItem, error)
	// Create yields a Duplicate error when the video is already a favorite and NotFound when the video is absent.
	Create(ctx context.Context, favorite *models.Favorite) error
	// Delete yields NotFound when nothing was removed.
	Delete(ctx context.Context, userID, videoID int) error
}

type favoriteService struct {
	repo     FavoriteRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(repo FavoriteRepository, logger *zap.Logger) *favoriteService {
	return &favoriteService{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
		logger:   logger,
	}
}

// List returns the favorites of the caller.
// An empty or unknown sort orders newest first.
func (s *favoriteService) List(ctx context.Context, identity *models.Identity, sort string) ([]models.FavoriteListItem, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}

	order := models.FavoriteSort(sort)
	switch order {
	case models.FavoriteSortNewest, models.FavoriteSortOldest, models.FavoriteSortTitle:
	default:
		order = models.FavoriteSortNewest
	}

	items, err := s.repo.ListByUser(ctx, identity.ID, order)
	if err != nil {
		s.logger.Error("failed to list favorites", zap.Int("user_id", identity.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return items, nil
}

// Add saves a video to the favorites of the caller
func (s *favoriteService) Add(ctx context.Context, identity *models.Identity, req models.FavoriteRequest) (*models.Favorite, error) {
	if identity == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}

	favorite := &models.Favorite{
		UserID:    identity.ID,
		VideoID:   req.VideoID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, favorite); err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		s.logger.Error("failed to add favorite", zap.Int("user_id", identity.ID), zap.Int("video_id", req.VideoID), zap.Error(err))
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return favorite, nil
}

// Remove deletes a video from the favorites of the caller
func (s *favoriteService) Remove(ctx context.Context, identity *models.Identity, videoID int) error {
	if identity == nil {
		return apperrors.Unauthorized("authentication required")
	}
	if videoID <= 0 {
		return apperrors.Validation("video_id must be greater than 0")
	}

	if err := s.repo.Delete(ctx, identity.ID, videoID); err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return err
		}
		s.logger.Error("failed to remove favorite", zap.Int("user_id", identity.ID), zap.Int("video_id", videoID), zap.Error(err))
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}
