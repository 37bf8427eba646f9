package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a mock database and a development logger
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return db, mock, logger
}

var videoRowColumns = []string{
	"id", "title", "description", "thumbnail_url", "video_url", "duration", "quality",
	"category_id", "category_name", "category_slug", "tags",
	"view_count", "like_count", "rating", "created_at", "updated_at",
}

func addVideoRow(rows *sqlmock.Rows, id int, title string) *sqlmock.Rows {
	return rows.AddRow(id, title, "about "+title, "thumb.jpg", "video.mp4", 600, "hd",
		2, "Tutorials", "tutorials", `["go","sql"]`, 10, 3, 4.5, fixedTime, fixedTime)
}

func TestNewVideoRepository(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	repo := NewVideoRepository(db, logger)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, logger, repo.logger)
}

func TestVideoRepository_Search(t *testing.T) {
	pageQuery := `SELECT (.+) FROM videos v LEFT JOIN categories c ON c.id = v.category_id ` +
		`WHERE \(LOWER\(v.title\) LIKE \? OR LOWER\(v.description\) LIKE \?\) AND JSON_CONTAINS\(v.tags, \?\) ` +
		`ORDER BY v.created_at DESC, v.id DESC LIMIT \? OFFSET \?`
	countQuery := `SELECT COUNT\(\*\) FROM videos v LEFT JOIN categories c ON c.id = v.category_id ` +
		`WHERE \(LOWER\(v.title\) LIKE \? OR LOWER\(v.description\) LIKE \?\) AND JSON_CONTAINS\(v.tags, \?\)`

	filter := search.Build(search.VideoTarget, search.Params{Query: "Go", Tag: "go", Page: 2, Limit: 10}, search.DefaultLimits)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
		expectedTotal int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(videoRowColumns)
				addVideoRow(rows, 11, "Go basics")
				addVideoRow(rows, 12, "Go channels")
				mock.ExpectQuery(pageQuery).
					WithArgs("%go%", "%go%", `"go"`, 10, 10).
					WillReturnRows(rows)
				mock.ExpectQuery(countQuery).
					WithArgs("%go%", "%go%", `"go"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
			},
			expectedCount: 2,
			expectedTotal: 12,
		},
		{
			name: "empty page",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(pageQuery).
					WithArgs("%go%", "%go%", `"go"`, 10, 10).
					WillReturnRows(sqlmock.NewRows(videoRowColumns))
				mock.ExpectQuery(countQuery).
					WithArgs("%go%", "%go%", `"go"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			expectedCount: 0,
			expectedTotal: 0,
		},
		{
			name: "page query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(pageQuery).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(videoRowColumns).
					AddRow("invalid", "t", "d", "", "", 1, "", nil, "", "", "[]", 0, 0, 0, fixedTime, fixedTime)
				mock.ExpectQuery(pageQuery).WillReturnRows(rows)
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(videoRowColumns)
				addVideoRow(rows, 11, "Go basics").RowError(0, errors.New("row error"))
				mock.ExpectQuery(pageQuery).WillReturnRows(rows)
			},
			expectedError: true,
		},
		{
			name: "count query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(videoRowColumns)
				addVideoRow(rows, 11, "Go basics")
				mock.ExpectQuery(pageQuery).WillReturnRows(rows)
				mock.ExpectQuery(countQuery).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger := setupTestDB(t)
			repo := NewVideoRepository(db, logger)
			tt.setupMock(mock)

			items, total, err := repo.Search(context.Background(), filter)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, items)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, items)
				assert.Len(t, items, tt.expectedCount)
				assert.Equal(t, tt.expectedTotal, total)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_Search_NoPredicates(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewVideoRepository(db, logger)
	filter := search.Build(search.VideoTarget, search.Params{Sort: search.SortPopular}, search.DefaultLimits)

	mock.ExpectQuery(`FROM videos v LEFT JOIN categories c ON c.id = v.category_id ORDER BY v.view_count DESC, v.id DESC LIMIT \? OFFSET \?`).
		WithArgs(20, 0).
		WillReturnRows(addVideoRow(sqlmock.NewRows(videoRowColumns), 1, "Popular"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM videos v LEFT JOIN categories c ON c.id = v.category_id`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.Search(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, models.Tags{"go", "sql"}, items[0].Tags)
	assert.Equal(t, "tutorials", items[0].CategorySlug)
	require.NotNil(t, items[0].CategoryID)
	assert.Equal(t, 2, *items[0].CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_GetByID(t *testing.T) {
	query := `SELECT (.+) FROM videos v LEFT JOIN categories c ON c.id = v.category_id WHERE v.id = \?`

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedKind  apperrors.Kind
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(5).
					WillReturnRows(addVideoRow(sqlmock.NewRows(videoRowColumns), 5, "Found"))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(5).WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			expectedKind:  apperrors.KindNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(5).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedKind:  apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, logger := setupTestDB(t)
			repo := NewVideoRepository(db, logger)
			tt.setupMock(mock)

			video, err := repo.GetByID(context.Background(), 5)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, video)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, 5, video.ID)
				assert.Equal(t, "Found", video.Title)
				assert.Equal(t, 4.5, video.Rating)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVideoRepository_Exists(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewVideoRepository(db, logger)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM videos WHERE id = \?\)`).WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM videos WHERE id = \?\)`).WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.Exists(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoEmbedRepository_Search(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewVideoEmbedRepository(db, logger)
	minutes := 5
	filter := search.Build(search.VideoEmbedTarget, search.Params{
		CategorySlug: "music",
		Quality:      "hd",
		DurationMin:  &minutes,
		Sort:         search.SortRating,
	}, search.DefaultLimits)

	columns := []string{
		"id", "submission_id", "title", "description", "thumbnail_url", "embed_code", "duration",
		"category_id", "category_name", "category_slug", "tags",
		"view_count", "like_count", "is_approved", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(1, 9, "Clip", "", "", "<iframe></iframe>", 400, nil, "", "", nil, 0, 7, true, fixedTime, fixedTime)

	// Quality is ignored for embeds
	mock.ExpectQuery(`FROM video_embeds e LEFT JOIN categories c ON c.id = e.category_id ` +
		`WHERE e.is_approved = \? AND c.slug = \? AND e.duration >= \? ORDER BY e.like_count DESC, e.id DESC LIMIT \? OFFSET \?`).
		WithArgs(true, "music", 300, 20, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM video_embeds e LEFT JOIN categories c ON c.id = e.category_id ` +
		`WHERE e.is_approved = \? AND c.slug = \? AND e.duration >= \?`).
		WithArgs(true, "music", 300).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.Search(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Nil(t, items[0].CategoryID)
	require.NotNil(t, items[0].SubmissionID)
	assert.Equal(t, 9, *items[0].SubmissionID)
	assert.Empty(t, items[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoEmbedRepository_GetByID(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewVideoEmbedRepository(db, logger)

	mock.ExpectQuery(`FROM video_embeds e LEFT JOIN categories c ON c.id = e.category_id WHERE e.id = \? AND e.is_approved = TRUE`).
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	embed, err := repo.GetByID(context.Background(), 7)

	assert.Nil(t, embed)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalLinkRepository_Search(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewExternalLinkRepository(db, logger)
	minutes := 5
	filter := search.Build(search.ExternalLinkTarget, search.Params{
		DurationMax: &minutes,
		Sort:        search.SortPopular,
		Page:        3,
		Limit:       500,
	}, search.DefaultLimits)

	columns := []string{
		"id", "submission_id", "title", "description", "thumbnail_url", "url",
		"category_id", "category_name", "category_slug", "tags",
		"click_count", "like_count", "is_approved", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(4, nil, "Docs", "", "", "https://go.dev", 1, "Reference", "reference", `["go"]`, 42, 1, true, fixedTime, fixedTime)

	// Duration is ignored for links; limit is clamped to the maximum
	mock.ExpectQuery(`FROM external_links l LEFT JOIN categories c ON c.id = l.category_id ` +
		`WHERE l.is_approved = \? ORDER BY l.click_count DESC, l.id DESC LIMIT \? OFFSET \?`).
		WithArgs(true, 100, 200).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM external_links l LEFT JOIN categories c ON c.id = l.category_id WHERE l.is_approved = \?`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(201))

	items, total, err := repo.Search(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 201, total)
	assert.Equal(t, int64(42), items[0].ClickCount)
	assert.Nil(t, items[0].SubmissionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExternalLinkRepository_GetByID(t *testing.T) {
	db, mock, logger := setupTestDB(t)
	repo := NewExternalLinkRepository(db, logger)

	mock.ExpectQuery(`FROM external_links l LEFT JOIN categories c ON c.id = l.category_id WHERE l.id = \? AND l.is_approved = TRUE`).
		WithArgs(7).
		WillReturnError(errors.New("database error"))

	link, err := repo.GetByID(context.Background(), 7)

	assert.Nil(t, link)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetAll(t *testing.T) {
	query := `SELECT id, name, slug, description, created_at FROM categories ORDER BY name, id`

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at"}).
					AddRow(1, "Music", "music", "", fixedTime).
					AddRow(2, "Tutorials", "tutorials", "How-to videos", fixedTime)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "empty",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "created_at"}))
			},
			expectedCount: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := setupTestDB(t)
			repo := NewCategoryRepository(db)
			tt.setupMock(mock)

			categories, err := repo.GetAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, categories)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, categories)
				assert.Len(t, categories, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTagRepository_GetAll(t *testing.T) {
	db, mock, _ := setupTestDB(t)
	repo := NewTagRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "slug"}).
		AddRow(1, "Go", "go").
		AddRow(2, "SQL", "sql")
	mock.ExpectQuery(`SELECT id, name, slug FROM content_tags ORDER BY name, id`).WillReturnRows(rows)

	tags, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.ContentTag{{ID: 1, Name: "Go", Slug: "go"}, {ID: 2, Name: "SQL", Slug: "sql"}}, tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}
