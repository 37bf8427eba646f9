package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/models"
	"github.com/mediacatalog/backend/internal/search"
	"go.uber.org/zap"
)

var (
	member    = &models.Identity{ID: 7, Email: "member@example.com"}
	moderator = &models.Identity{ID: 1, Email: "mod@example.com", CanModerate: true}
)

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// newTestRouter mounts the handler under /api/v1 and injects identity when set
func newTestRouter(h routeRegistrar, identity *models.Identity) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if identity != nil {
				req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api/v1", h.RegisterRoutes)
	return r
}

func serve(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type mockCatalogService struct {
	params      search.Params
	videoPage   *models.Page[models.Video]
	embedPage   *models.Page[models.VideoEmbed]
	linkPage    *models.Page[models.ExternalLink]
	video       *models.Video
	embed       *models.VideoEmbed
	link        *models.ExternalLink
	categories  []models.Category
	tags        []models.ContentTag
	requestedID int
	err         error
}

func (m *mockCatalogService) SearchVideos(ctx context.Context, params search.Params) (*models.Page[models.Video], error) {
	m.params = params
	return m.videoPage, m.err
}

func (m *mockCatalogService) GetVideo(ctx context.Context, id int) (*models.Video, error) {
	m.requestedID = id
	return m.video, m.err
}

func (m *mockCatalogService) SearchVideoEmbeds(ctx context.Context, params search.Params) (*models.Page[models.VideoEmbed], error) {
	m.params = params
	return m.embedPage, m.err
}

func (m *mockCatalogService) GetVideoEmbed(ctx context.Context, id int) (*models.VideoEmbed, error) {
	m.requestedID = id
	return m.embed, m.err
}

func (m *mockCatalogService) SearchExternalLinks(ctx context.Context, params search.Params) (*models.Page[models.ExternalLink], error) {
	m.params = params
	return m.linkPage, m.err
}

func (m *mockCatalogService) GetExternalLink(ctx context.Context, id int) (*models.ExternalLink, error) {
	m.requestedID = id
	return m.link, m.err
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return m.categories, m.err
}

func (m *mockCatalogService) ListTags(ctx context.Context) ([]models.ContentTag, error) {
	return m.tags, m.err
}

type mockFavoriteService struct {
	items    []models.FavoriteListItem
	favorite *models.Favorite
	err      error

	sort      string
	addReq    models.FavoriteRequest
	removedID int
	caller    *models.Identity
}

func (m *mockFavoriteService) List(ctx context.Context, identity *models.Identity, sort string) ([]models.FavoriteListItem, error) {
	m.caller = identity
	m.sort = sort
	return m.items, m.err
}

func (m *mockFavoriteService) Add(ctx context.Context, identity *models.Identity, req models.FavoriteRequest) (*models.Favorite, error) {
	m.caller = identity
	m.addReq = req
	return m.favorite, m.err
}

func (m *mockFavoriteService) Remove(ctx context.Context, identity *models.Identity, videoID int) error {
	m.caller = identity
	m.removedID = videoID
	return m.err
}

type mockReviewService struct {
	review  *models.Review
	reviews []models.Review
	err     error

	req     models.CreateReviewRequest
	videoID int
}

func (m *mockReviewService) Create(ctx context.Context, identity *models.Identity, req models.CreateReviewRequest) (*models.Review, error) {
	m.req = req
	return m.review, m.err
}

func (m *mockReviewService) ListForVideo(ctx context.Context, videoID int) ([]models.Review, error) {
	m.videoID = videoID
	return m.reviews, m.err
}

type mockSubmissionService struct {
	submission  *models.Submission
	submissions []models.Submission
	err         error

	req    models.CreateSubmissionRequest
	status string
	caller *models.Identity
}

func (m *mockSubmissionService) Create(ctx context.Context, identity *models.Identity, req models.CreateSubmissionRequest) (*models.Submission, error) {
	m.caller = identity
	m.req = req
	return m.submission, m.err
}

func (m *mockSubmissionService) ListForOwner(ctx context.Context, identity *models.Identity) ([]models.Submission, error) {
	m.caller = identity
	return m.submissions, m.err
}

func (m *mockSubmissionService) ListByStatus(ctx context.Context, identity *models.Identity, status string) ([]models.Submission, error) {
	m.caller = identity
	m.status = status
	return m.submissions, m.err
}

type mockModerationService struct {
	submission *models.Submission
	err        error

	submissionID int
	req          models.ModerationDecisionRequest
}

func (m *mockModerationService) Decide(ctx context.Context, identity *models.Identity, submissionID int, req models.ModerationDecisionRequest) (*models.Submission, error) {
	m.submissionID = submissionID
	m.req = req
	return m.submission, m.err
}

type mockAnalyticsService struct {
	event  *models.AnalyticsEvent
	err    error
	req    models.RecordEventRequest
	caller *models.Identity
	called bool
}

func (m *mockAnalyticsService) Record(ctx context.Context, identity *models.Identity, req models.RecordEventRequest) (*models.AnalyticsEvent, error) {
	m.called = true
	m.caller = identity
	m.req = req
	return m.event, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}
