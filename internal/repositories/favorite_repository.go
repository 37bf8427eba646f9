package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
)

var favoriteOrders = map[models.FavoriteSort]string{
	models.FavoriteSortNewest: "f.created_at DESC, f.id DESC",
	models.FavoriteSortOldest: "f.created_at ASC, f.id ASC",
	models.FavoriteSortTitle:  "v.title ASC, f.id ASC",
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *sql.DB) *favoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// ListByUser retrieves the favorites of a user joined with their videos.
// Unknown sort values fall back to newest first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int, sort models.FavoriteSort) ([]models.FavoriteListItem, error) {
	orderBy, ok := favoriteOrders[sort]
	if !ok {
		orderBy = favoriteOrders[models.FavoriteSortNewest]
	}

	query := fmt.Sprintf(`
		SELECT f.video_id, v.title, v.thumbnail_url, v.duration, f.created_at
		FROM favorites f
		JOIN videos v ON v.id = f.video_id
		WHERE f.user_id = ?
		ORDER BY %s
	`, orderBy)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	items := []models.FavoriteListItem{}
	for rows.Next() {
		var item models.FavoriteListItem
		if err := rows.Scan(&item.VideoID, &item.Title, &item.ThumbnailURL, &item.Duration, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// Create inserts a favorite and sets its ID
func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, video_id, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, favorite.UserID, favorite.VideoID, favorite.CreatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.Duplicate("video is already in favorites")
		}
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("video not found")
		}
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	favorite.ID = int(id)

	return nil
}

// Delete removes a favorite of a user
func (r *favoriteRepository) Delete(ctx context.Context, userID, videoID int) error {
	query := "DELETE FROM favorites WHERE user_id = ? AND video_id = ?"

	result, err := r.db.ExecContext(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NotFound("favorite not found")
	}

	return nil
}
