package services

import (
	"context"
	"time"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/repositories"
	"github.com/mediacatalog/backend/internal/search"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// mockVideoRepository is a mock implementation of VideoRepository
type mockVideoRepository struct {
	videos     []models.Video
	total      int
	video      *models.Video
	exists     bool
	err        error
	lastFilter search.Filter
}

func (m *mockVideoRepository) Search(ctx context.Context, f search.Filter) ([]models.Video, int, error) {
	m.lastFilter = f
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.videos, m.total, nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id int) (*models.Video, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.video == nil {
		return nil, apperrors.NotFound("video not found")
	}
	return m.video, nil
}

func (m *mockVideoRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

// mockVideoEmbedRepository is a mock implementation of VideoEmbedRepository
type mockVideoEmbedRepository struct {
	embeds     []models.VideoEmbed
	total      int
	embed      *models.VideoEmbed
	err        error
	lastFilter search.Filter
}

func (m *mockVideoEmbedRepository) Search(ctx context.Context, f search.Filter) ([]models.VideoEmbed, int, error) {
	m.lastFilter = f
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.embeds, m.total, nil
}

func (m *mockVideoEmbedRepository) GetByID(ctx context.Context, id int) (*models.VideoEmbed, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.embed == nil {
		return nil, apperrors.NotFound("video embed not found")
	}
	return m.embed, nil
}

// mockExternalLinkRepository is a mock implementation of ExternalLinkRepository
type mockExternalLinkRepository struct {
	links      []models.ExternalLink
	total      int
	link       *models.ExternalLink
	err        error
	lastFilter search.Filter
}

func (m *mockExternalLinkRepository) Search(ctx context.Context, f search.Filter) ([]models.ExternalLink, int, error) {
	m.lastFilter = f
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.links, m.total, nil
}

func (m *mockExternalLinkRepository) GetByID(ctx context.Context, id int) (*models.ExternalLink, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.link == nil {
		return nil, apperrors.NotFound("external link not found")
	}
	return m.link, nil
}

// mockCategoryRepository is a mock implementation of CategoryRepository
type mockCategoryRepository struct {
	categories []models.Category
	err        error
}

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

// mockTagRepository is a mock implementation of TagRepository
type mockTagRepository struct {
	tags []models.ContentTag
	err  error
}

func (m *mockTagRepository) GetAll(ctx context.Context) ([]models.ContentTag, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tags, nil
}

// mockFavoriteRepository is a mock implementation of FavoriteRepository
type mockFavoriteRepository struct {
	items     []models.FavoriteListItem
	err       error
	lastSort  models.FavoriteSort
	created   *models.Favorite
	deletedID int
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID int, sort models.FavoriteSort) ([]models.FavoriteListItem, error) {
	m.lastSort = sort
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockFavoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if m.err != nil {
		return m.err
	}
	favorite.ID = 1
	m.created = favorite
	return nil
}

func (m *mockFavoriteRepository) Delete(ctx context.Context, userID, videoID int) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = videoID
	return nil
}

// mockReviewRepository is a mock implementation of ReviewRepository
type mockReviewRepository struct {
	reviews []models.Review
	err     error
	created *models.Review
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.err != nil {
		return m.err
	}
	review.ID = 1
	m.created = review
	return nil
}

func (m *mockReviewRepository) ListByVideo(ctx context.Context, videoID int) ([]models.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

// mockSubmissionRepository is a mock implementation of SubmissionRepository
type mockSubmissionRepository struct {
	submissions []models.Submission
	err         error
	created     *models.Submission
	lastStatus  models.SubmissionStatus
}

func (m *mockSubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	if m.err != nil {
		return m.err
	}
	s.ID = 1
	m.created = s
	return nil
}

func (m *mockSubmissionRepository) ListByOwner(ctx context.Context, userID int) ([]models.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.submissions, nil
}

func (m *mockSubmissionRepository) ListByStatus(ctx context.Context, status models.SubmissionStatus) ([]models.Submission, error) {
	m.lastStatus = status
	if m.err != nil {
		return nil, m.err
	}
	return m.submissions, nil
}

type recordedDecision struct {
	id         int
	status     models.SubmissionStatus
	notes      *string
	reviewerID int
	reviewedAt time.Time
}

// mockModerationTx is an in-memory ModerationTx keyed by submission id
type mockModerationTx struct {
	submissions map[int]*models.Submission

	// vanishOnReread makes the second read of a submission report NotFound
	vanishOnReread bool
	reads          int
	updateErr      error

	decisions   []recordedDecision
	embeds      map[int]*models.VideoEmbed
	links       map[int]*models.ExternalLink
	unpublished []int
	nextID      int
}

func newMockModerationTx(submissions ...models.Submission) *mockModerationTx {
	tx := &mockModerationTx{
		submissions: make(map[int]*models.Submission),
		embeds:      make(map[int]*models.VideoEmbed),
		links:       make(map[int]*models.ExternalLink),
		nextID:      100,
	}
	for i := range submissions {
		s := submissions[i]
		tx.submissions[s.ID] = &s
	}
	return tx
}

func (m *mockModerationTx) GetForUpdate(ctx context.Context, id int) (*models.Submission, error) {
	m.reads++
	s, ok := m.submissions[id]
	if !ok || (m.vanishOnReread && m.reads > 1) {
		return nil, apperrors.NotFound("submission not found")
	}
	copied := *s
	return &copied, nil
}

func (m *mockModerationTx) UpdateDecision(ctx context.Context, id int, status models.SubmissionStatus, notes *string, reviewerID int, reviewedAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.decisions = append(m.decisions, recordedDecision{id: id, status: status, notes: notes, reviewerID: reviewerID, reviewedAt: reviewedAt})
	if s, ok := m.submissions[id]; ok {
		s.Status = status
		s.AdminNotes = notes
		s.ReviewedBy = &reviewerID
		s.ReviewedAt = &reviewedAt
	}
	return nil
}

func (m *mockModerationTx) UpsertVideoEmbed(ctx context.Context, e *models.VideoEmbed) (bool, error) {
	if existing, ok := m.embeds[*e.SubmissionID]; ok {
		existing.IsApproved = true
		e.ID = existing.ID
		return false, nil
	}
	m.nextID++
	e.ID = m.nextID
	m.embeds[*e.SubmissionID] = e
	return true, nil
}

func (m *mockModerationTx) UpsertExternalLink(ctx context.Context, l *models.ExternalLink) (bool, error) {
	if existing, ok := m.links[*l.SubmissionID]; ok {
		existing.IsApproved = true
		l.ID = existing.ID
		return false, nil
	}
	m.nextID++
	l.ID = m.nextID
	m.links[*l.SubmissionID] = l
	return true, nil
}

func (m *mockModerationTx) Unpublish(ctx context.Context, submissionID int, submissionType models.SubmissionType, at time.Time) error {
	m.unpublished = append(m.unpublished, submissionID)
	if e, ok := m.embeds[submissionID]; ok {
		e.IsApproved = false
	}
	if l, ok := m.links[submissionID]; ok {
		l.IsApproved = false
	}
	return nil
}

// mockModerationRepository runs fn against a shared mockModerationTx
type mockModerationRepository struct {
	tx        *mockModerationTx
	commits   int
	rollbacks int
}

func (m *mockModerationRepository) WithinTransaction(ctx context.Context, fn func(tx repositories.ModerationTx) error) error {
	if err := fn(m.tx); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

// mockAnalyticsRepository is a mock implementation of AnalyticsRepository
type mockAnalyticsRepository struct {
	insertErr    error
	counterErr   error
	counterFound bool
	events       []models.AnalyticsEvent
	counters     []models.Counter
}

func (m *mockAnalyticsRepository) InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	event.ID = len(m.events) + 1
	m.events = append(m.events, *event)
	return nil
}

func (m *mockAnalyticsRepository) IncrementCounter(ctx context.Context, counter models.Counter, id int) (bool, error) {
	m.counters = append(m.counters, counter)
	if m.counterErr != nil {
		return false, m.counterErr
	}
	return m.counterFound, nil
}
