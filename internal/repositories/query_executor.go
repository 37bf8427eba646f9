package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediacatalog/backend/internal/search"
	"go.uber.org/zap"
)

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// queryExecutor runs a search filter against its target collection
type queryExecutor struct {
	db     *sql.DB
	logger *zap.Logger
}

// executeSearch fetches one page of rows and the total match count for a filter.
//
// Both queries are rendered from the same filter, so they share the FROM clause, the WHERE
// clause and its args. They are separate round-trips and the count may drift from the page
// under concurrent writes.
func executeSearch[T any](ctx context.Context, e queryExecutor, f search.Filter, columns string, scan func(rowScanner) (T, error)) ([]T, int, error) {
	where, args := f.Where()
	from := f.From()

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		%s
		LIMIT ? OFFSET ?
	`, columns, from, where, f.OrderBy())

	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, f.Limit, f.Offset)

	rows, err := e.db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		e.logger.Error("failed to query search page", zap.String("table", f.Target.Table), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query %s: %w", f.Target.Table, err)
	}
	defer rows.Close()

	items := make([]T, 0, f.Limit)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			e.logger.Error("failed to scan search row", zap.String("table", f.Target.Table), zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan %s row: %w", f.Target.Table, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		e.logger.Error("error iterating rows", zap.String("table", f.Target.Table), zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		%s
	`, from, where)

	var total int
	if err := e.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		e.logger.Error("failed to count search matches", zap.String("table", f.Target.Table), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count %s: %w", f.Target.Table, err)
	}

	return items, total, nil
}
