package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) *reviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a review and recomputes the video rating in the same transaction
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO reviews (user_id, video_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, insertQuery, review.UserID, review.VideoID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperrors.Duplicate("you have already reviewed this video")
		}
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("video not found")
		}
		return fmt.Errorf("failed to insert review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ratingQuery := `
		UPDATE videos
		SET rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE video_id = ?)
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, ratingQuery, review.VideoID, review.VideoID); err != nil {
		r.logger.Error("failed to recompute video rating", zap.Int("video_id", review.VideoID), zap.Error(err))
		return fmt.Errorf("failed to update video rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	review.ID = int(id)
	return nil
}

// ListByVideo retrieves the reviews of a video, newest first
func (r *reviewRepository) ListByVideo(ctx context.Context, videoID int) ([]models.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.video_id, r.rating, r.comment, COALESCE(u.display_name, ''), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.video_id = ?
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.UserID, &review.VideoID, &review.Rating, &review.Comment, &review.AuthorName, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}
