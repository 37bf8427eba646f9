package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/search"
	"go.uber.org/zap"
)

const videoColumns = `v.id, v.title, v.description, v.thumbnail_url, v.video_url, v.duration, v.quality,
	v.category_id, COALESCE(c.name, ''), COALESCE(c.slug, ''), v.tags,
	v.view_count, v.like_count, v.rating, v.created_at, v.updated_at`

type videoRepository struct {
	queryExecutor
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sql.DB, logger *zap.Logger) *videoRepository {
	return &videoRepository{
		queryExecutor: queryExecutor{db: db, logger: logger},
	}
}

// Search retrieves a page of videos matching the filter and the total match count
func (r *videoRepository) Search(ctx context.Context, f search.Filter) ([]models.Video, int, error) {
	return executeSearch(ctx, r.queryExecutor, f, videoColumns, scanVideo)
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id int) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		LEFT JOIN categories c ON c.id = v.category_id
		WHERE v.id = ?
	`, videoColumns)

	video, err := scanVideo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("video not found")
		}
		r.logger.Error("failed to query video by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query video: %w", err)
	}

	return &video, nil
}

// Exists checks if a video with the given ID exists
func (r *videoRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM videos WHERE id = ?)"
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}
	return exists, nil
}

func scanVideo(row rowScanner) (models.Video, error) {
	var v models.Video
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.ThumbnailURL,
		&v.VideoURL,
		&v.Duration,
		&v.Quality,
		&v.CategoryID,
		&v.CategoryName,
		&v.CategorySlug,
		&v.Tags,
		&v.ViewCount,
		&v.LikeCount,
		&v.Rating,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	return v, err
}
