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

const videoEmbedColumns = `e.id, e.submission_id, e.title, e.description, e.thumbnail_url, e.embed_code, e.duration,
	e.category_id, COALESCE(c.name, ''), COALESCE(c.slug, ''), e.tags,
	e.view_count, e.like_count, e.is_approved, e.created_at, e.updated_at`

type videoEmbedRepository struct {
	queryExecutor
}

// NewVideoEmbedRepository creates a new video embed repository
func NewVideoEmbedRepository(db *sql.DB, logger *zap.Logger) *videoEmbedRepository {
	return &videoEmbedRepository{
		queryExecutor: queryExecutor{db: db, logger: logger},
	}
}

// Search retrieves a page of approved video embeds matching the filter and the total match count
func (r *videoEmbedRepository) Search(ctx context.Context, f search.Filter) ([]models.VideoEmbed, int, error) {
	return executeSearch(ctx, r.queryExecutor, f, videoEmbedColumns, scanVideoEmbed)
}

// GetByID retrieves an approved video embed by its ID
func (r *videoEmbedRepository) GetByID(ctx context.Context, id int) (*models.VideoEmbed, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM video_embeds e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = ? AND e.is_approved = TRUE
	`, videoEmbedColumns)

	embed, err := scanVideoEmbed(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("video embed not found")
		}
		r.logger.Error("failed to query video embed by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query video embed: %w", err)
	}

	return &embed, nil
}

func scanVideoEmbed(row rowScanner) (models.VideoEmbed, error) {
	var e models.VideoEmbed
	err := row.Scan(
		&e.ID,
		&e.SubmissionID,
		&e.Title,
		&e.Description,
		&e.ThumbnailURL,
		&e.EmbedCode,
		&e.Duration,
		&e.CategoryID,
		&e.CategoryName,
		&e.CategorySlug,
		&e.Tags,
		&e.ViewCount,
		&e.LikeCount,
		&e.IsApproved,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
