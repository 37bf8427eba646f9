package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediacatalog/backend/internal/models"
)

type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new content tag repository
func NewTagRepository(db *sql.DB) *tagRepository {
	return &tagRepository{
		db: db,
	}
}

// GetAll retrieves all content tags ordered by name
func (r *tagRepository) GetAll(ctx context.Context) ([]models.ContentTag, error) {
	query := `
		SELECT id, name, slug
		FROM content_tags
		ORDER BY name, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query content tags: %w", err)
	}
	defer rows.Close()

	tags := []models.ContentTag{}
	for rows.Next() {
		var tag models.ContentTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan content tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tags, nil
}
