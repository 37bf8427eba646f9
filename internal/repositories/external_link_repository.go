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

const externalLinkColumns = `l.id, l.submission_id, l.title, l.description, l.thumbnail_url, l.url,
	l.category_id, COALESCE(c.name, ''), COALESCE(c.slug, ''), l.tags,
	l.click_count, l.like_count, l.is_approved, l.created_at, l.updated_at`

type externalLinkRepository struct {
	queryExecutor
}

// NewExternalLinkRepository creates a new external link repository
func NewExternalLinkRepository(db *sql.DB, logger *zap.Logger) *externalLinkRepository {
	return &externalLinkRepository{
		queryExecutor: queryExecutor{db: db, logger: logger},
	}
}

// Search retrieves a page of approved external links matching the filter and the total match count
func (r *externalLinkRepository) Search(ctx context.Context, f search.Filter) ([]models.ExternalLink, int, error) {
	return executeSearch(ctx, r.queryExecutor, f, externalLinkColumns, scanExternalLink)
}

// GetByID retrieves an approved external link by its ID
func (r *externalLinkRepository) GetByID(ctx context.Context, id int) (*models.ExternalLink, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM external_links l
		LEFT JOIN categories c ON c.id = l.category_id
		WHERE l.id = ? AND l.is_approved = TRUE
	`, externalLinkColumns)

	link, err := scanExternalLink(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("external link not found")
		}
		r.logger.Error("failed to query external link by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to query external link: %w", err)
	}

	return &link, nil
}

func scanExternalLink(row rowScanner) (models.ExternalLink, error) {
	var l models.ExternalLink
	err := row.Scan(
		&l.ID,
		&l.SubmissionID,
		&l.Title,
		&l.Description,
		&l.ThumbnailURL,
		&l.URL,
		&l.CategoryID,
		&l.CategoryName,
		&l.CategorySlug,
		&l.Tags,
		&l.ClickCount,
		&l.LikeCount,
		&l.IsApproved,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}
