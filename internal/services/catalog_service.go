package services

import (
	"context"
	"fmt"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/search"
	"go.uber.org/zap"
)

// VideoRepository is the interface that wraps methods for videos table data access
type VideoRepository interface {
	// Search returns one page of videos matching the filter and the total number of matches.
	Search(ctx context.Context, f search.Filter) ([]models.Video, int, error)
	// GetByID returns a NotFound error when no video has the id.
	GetByID(ctx context.Context, id int) (*models.Video, error)
	Exists(ctx context.Context, id int) (bool, error)
}

// VideoEmbedRepository is the interface that wraps methods for approved video embeds data access
type VideoEmbedRepository interface {
	Search(ctx context.Context, f search.Filter) ([]models.VideoEmbed, int, error)
	GetByID(ctx context.Context, id int) (*models.VideoEmbed, error)
}

// ExternalLinkRepository is the interface that wraps methods for approved external links data access
type ExternalLinkRepository interface {
	Search(ctx context.Context, f search.Filter) ([]models.ExternalLink, int, error)
	GetByID(ctx context.Context, id int) (*models.ExternalLink, error)
}

// CategoryRepository is the interface that wraps methods for categories table data access
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
}

// TagRepository is the interface that wraps methods for content_tags table data access
type TagRepository interface {
	GetAll(ctx context.Context) ([]models.ContentTag, error)
}

type catalogService struct {
	videos     VideoRepository
	embeds     VideoEmbedRepository
	links      ExternalLinkRepository
	categories CategoryRepository
	tags       TagRepository
	limits     search.Limits
	logger     *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	videos VideoRepository,
	embeds VideoEmbedRepository,
	links ExternalLinkRepository,
	categories CategoryRepository,
	tags TagRepository,
	limits search.Limits,
	logger *zap.Logger,
) *catalogService {
	return &catalogService{
		videos:     videos,
		embeds:     embeds,
		links:      links,
		categories: categories,
		tags:       tags,
		limits:     limits,
		logger:     logger,
	}
}

// SearchVideos returns a page of videos matching the search parameters
func (s *catalogService) SearchVideos(ctx context.Context, params search.Params) (*models.Page[models.Video], error) {
	page, err := searchPage(ctx, search.VideoTarget, params, s.limits, s.videos.Search)
	if err != nil {
		s.logger.Error("failed to search videos", zap.Error(err))
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	return page, nil
}

// GetVideo returns a single video
func (s *catalogService) GetVideo(ctx context.Context, id int) (*models.Video, error) {
	if id <= 0 {
		return nil, apperrors.Validation("invalid video id")
	}
	return s.videos.GetByID(ctx, id)
}

// SearchVideoEmbeds returns a page of approved video embeds matching the search parameters
func (s *catalogService) SearchVideoEmbeds(ctx context.Context, params search.Params) (*models.Page[models.VideoEmbed], error) {
	page, err := searchPage(ctx, search.VideoEmbedTarget, params, s.limits, s.embeds.Search)
	if err != nil {
		s.logger.Error("failed to search video embeds", zap.Error(err))
		return nil, fmt.Errorf("failed to search video embeds: %w", err)
	}
	return page, nil
}

// GetVideoEmbed returns a single approved video embed
func (s *catalogService) GetVideoEmbed(ctx context.Context, id int) (*models.VideoEmbed, error) {
	if id <= 0 {
		return nil, apperrors.Validation("invalid video embed id")
	}
	return s.embeds.GetByID(ctx, id)
}

// SearchExternalLinks returns a page of approved external links matching the search parameters
func (s *catalogService) SearchExternalLinks(ctx context.Context, params search.Params) (*models.Page[models.ExternalLink], error) {
	page, err := searchPage(ctx, search.ExternalLinkTarget, params, s.limits, s.links.Search)
	if err != nil {
		s.logger.Error("failed to search external links", zap.Error(err))
		return nil, fmt.Errorf("failed to search external links: %w", err)
	}
	return page, nil
}

// GetExternalLink returns a single approved external link
func (s *catalogService) GetExternalLink(ctx context.Context, id int) (*models.ExternalLink, error) {
	if id <= 0 {
		return nil, apperrors.Validation("invalid external link id")
	}
	return s.links.GetByID(ctx, id)
}

// ListCategories returns all categories
func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListTags returns all content tags
func (s *catalogService) ListTags(ctx context.Context) ([]models.ContentTag, error) {
	tags, err := s.tags.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list content tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list content tags: %w", err)
	}
	return tags, nil
}

// searchPage builds the filter for a target, runs it and wraps the rows with pagination metadata
func searchPage[T any](
	ctx context.Context,
	target search.Target,
	params search.Params,
	limits search.Limits,
	fetch func(context.Context, search.Filter) ([]T, int, error),
) (*models.Page[T], error) {
	filter := search.Build(target, params, limits)

	items, total, err := fetch(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return &models.Page[T]{
		Items:      items,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}
