package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediacatalog/backend/internal/models"
)

var counterQueries = map[models.Counter]string{
	models.CounterVideoViews: "UPDATE videos SET view_count = view_count + 1 WHERE id = ?",
	models.CounterEmbedViews: "UPDATE video_embeds SET view_count = view_count + 1 WHERE id = ?",
	models.CounterLinkClicks: "UPDATE external_links SET click_count = click_count + 1 WHERE id = ?",
}

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *sql.DB) *analyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// InsertEvent appends an event to the analytics ledger and sets its ID
func (r *analyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (content_type, content_id, action_type, user_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, event.ContentType, event.ContentID, event.ActionType, event.UserID, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	event.ID = int(id)

	return nil
}

// IncrementCounter atomically adds one to a counter of a record.
// It reports whether a record with the id was found.
func (r *analyticsRepository) IncrementCounter(ctx context.Context, counter models.Counter, id int) (bool, error) {
	query, ok := counterQueries[counter]
	if !ok {
		return false, fmt.Errorf("unknown counter: %s", counter)
	}

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to increment %s: %w", counter, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
