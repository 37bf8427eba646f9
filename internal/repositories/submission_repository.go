package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

const submissionColumns = `s.id, s.user_id, s.submission_type, s.title, s.description, s.thumbnail_url,
	s.category_id, s.tags, s.content_data, s.status, s.admin_notes, s.reviewed_by, s.reviewed_at,
	s.created_at, s.updated_at`

type submissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a new content submission repository
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *submissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a submission and sets its ID
func (r *submissionRepository) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO content_submissions
			(user_id, submission_type, title, description, thumbnail_url, category_id, tags, content_data, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		s.UserID,
		s.SubmissionType,
		s.Title,
		s.Description,
		s.ThumbnailURL,
		s.CategoryID,
		s.Tags,
		[]byte(s.ContentData),
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("category not found")
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	s.ID = int(id)

	return nil
}

// ListByOwner retrieves the submissions of a user, newest first
func (r *submissionRepository) ListByOwner(ctx context.Context, userID int) ([]models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM content_submissions s
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC, s.id DESC
	`, submissionColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}

// ListByStatus retrieves submissions in a moderation state with submitter and category names, newest first
func (r *submissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(u.display_name, ''), COALESCE(c.name, '')
		FROM content_submissions s
		LEFT JOIN users u ON u.id = s.user_id
		LEFT JOIN categories c ON c.id = s.category_id
		WHERE s.status = ?
		ORDER BY s.created_at DESC, s.id DESC
	`, submissionColumns)

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		r.logger.Error("failed to query submissions by status", zap.String("status", string(status)), zap.Error(err))
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return submissions, nil
}

// GetByID retrieves a submission by its ID
func (r *submissionRepository) GetByID(ctx context.Context, id int) (*models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM content_submissions s
		WHERE s.id = ?
	`, submissionColumns)

	s, err := scanSubmission(r.db.QueryRowContext(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("submission not found")
		}
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	return &s, nil
}

// ModerationTx is the set of writes a moderation decision performs inside one transaction
type ModerationTx interface {
	GetForUpdate(ctx context.Context, id int) (*models.Submission, error)
	UpdateDecision(ctx context.Context, id int, status models.SubmissionStatus, notes *string, reviewerID int, reviewedAt time.Time) error
	UpsertVideoEmbed(ctx context.Context, e *models.VideoEmbed) (bool, error)
	UpsertExternalLink(ctx context.Context, l *models.ExternalLink) (bool, error)
	Unpublish(ctx context.Context, submissionID int, submissionType models.SubmissionType, at time.Time) error
}

// WithinTransaction runs fn in a single transaction.
// The transaction is committed when fn returns nil and rolled back otherwise.
func (r *submissionRepository) WithinTransaction(ctx context.Context, fn func(tx ModerationTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&moderationTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type moderationTx struct {
	tx *sql.Tx
}

// GetForUpdate reads a submission and locks its row until the transaction ends
func (m *moderationTx) GetForUpdate(ctx context.Context, id int) (*models.Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM content_submissions s
		WHERE s.id = ?
		FOR UPDATE
	`, submissionColumns)

	s, err := scanSubmission(m.tx.QueryRowContext(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("submission not found")
		}
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}

	return &s, nil
}

// UpdateDecision stamps a moderation decision on a submission
func (m *moderationTx) UpdateDecision(ctx context.Context, id int, status models.SubmissionStatus, notes *string, reviewerID int, reviewedAt time.Time) error {
	query := `
		UPDATE content_submissions
		SET status = ?, admin_notes = ?, reviewed_by = ?, reviewed_at = ?, updated_at = ?
		WHERE id = ?
	`

	if _, err := m.tx.ExecContext(ctx, query, status, notes, reviewerID, reviewedAt, reviewedAt, id); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	return nil
}

// UpsertVideoEmbed publishes a video embed for its submission and sets its ID.
// A record already materialized for the submission is re-approved instead of duplicated;
// created reports whether a new row was inserted.
func (m *moderationTx) UpsertVideoEmbed(ctx context.Context, e *models.VideoEmbed) (bool, error) {
	query := `
		INSERT INTO video_embeds
			(submission_id, title, description, thumbnail_url, embed_code, duration, category_id, tags, is_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), is_approved = TRUE, updated_at = VALUES(updated_at)
	`

	result, err := m.tx.ExecContext(ctx, query,
		e.SubmissionID,
		e.Title,
		e.Description,
		e.ThumbnailURL,
		e.EmbedCode,
		e.Duration,
		e.CategoryID,
		e.Tags,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert video embed: %w", err)
	}

	return applyUpsertResult(result, &e.ID)
}

// UpsertExternalLink publishes an external link for its submission and sets its ID.
// A record already materialized for the submission is re-approved instead of duplicated;
// created reports whether a new row was inserted.
func (m *moderationTx) UpsertExternalLink(ctx context.Context, l *models.ExternalLink) (bool, error) {
	query := `
		INSERT INTO external_links
			(submission_id, title, description, thumbnail_url, url, category_id, tags, is_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), is_approved = TRUE, updated_at = VALUES(updated_at)
	`

	result, err := m.tx.ExecContext(ctx, query,
		l.SubmissionID,
		l.Title,
		l.Description,
		l.ThumbnailURL,
		l.URL,
		l.CategoryID,
		l.Tags,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert external link: %w", err)
	}

	return applyUpsertResult(result, &l.ID)
}

// Unpublish hides the record materialized from a submission, if any
func (m *moderationTx) Unpublish(ctx context.Context, submissionID int, submissionType models.SubmissionType, at time.Time) error {
	var query string
	switch submissionType {
	case models.SubmissionTypeVideoEmbed:
		query = "UPDATE video_embeds SET is_approved = FALSE, updated_at = ? WHERE submission_id = ?"
	case models.SubmissionTypeExternalLink:
		query = "UPDATE external_links SET is_approved = FALSE, updated_at = ? WHERE submission_id = ?"
	default:
		return fmt.Errorf("unknown submission type: %s", submissionType)
	}

	if _, err := m.tx.ExecContext(ctx, query, at, submissionID); err != nil {
		return fmt.Errorf("failed to unpublish %s: %w", submissionType, err)
	}

	return nil
}

// applyUpsertResult reads the record id of an INSERT ... ON DUPLICATE KEY UPDATE.
// MySQL reports one affected row for an insert and two for an update of an existing row.
func applyUpsertResult(result sql.Result, id *int) (bool, error) {
	lastID, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to get last insert id: %w", err)
	}
	*id = int(lastID)

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func scanSubmission(row rowScanner, withNames bool) (models.Submission, error) {
	var s models.Submission
	var contentData []byte
	dest := []any{
		&s.ID,
		&s.UserID,
		&s.SubmissionType,
		&s.Title,
		&s.Description,
		&s.ThumbnailURL,
		&s.CategoryID,
		&s.Tags,
		&contentData,
		&s.Status,
		&s.AdminNotes,
		&s.ReviewedBy,
		&s.ReviewedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	}
	if withNames {
		dest = append(dest, &s.SubmitterName, &s.CategoryName)
	}

	if err := row.Scan(dest...); err != nil {
		return s, err
	}
	s.ContentData = contentData

	return s, nil
}
