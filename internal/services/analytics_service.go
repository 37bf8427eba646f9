package services

import (
	"context"
	"time"

	"github.com/mediacatalog/backend/internal/apperrors"
	"github.com/mediacatalog/backend/internal/models"
	"go.uber.org/zap"
)

// AnalyticsRepository is the interface that wraps methods for engagement data access
type AnalyticsRepository interface {
	// InsertEvent appends the event to the ledger and assigns its ID.
	InsertEvent(ctx context.Context, event *models.AnalyticsEvent) error
	// IncrementCounter adds one to a record counter and reports whether the record exists.
	IncrementCounter(ctx context.Context, counter models.Counter, id int) (bool, error)
}

type counterRule struct {
	contentType models.ContentType
	actionType  models.ActionType
}

// counterRules lists the (content, action) pairs that also bump a record counter
var counterRules = map[counterRule]models.Counter{
	{models.ContentTypeEmbed, models.ActionView}: models.CounterEmbedViews,
	{models.ContentTypeLink, models.ActionClick}: models.CounterLinkClicks,
	{models.ContentTypeVideo, models.ActionView}: models.CounterVideoViews,
}

type analyticsService struct {
	repo   AnalyticsRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo AnalyticsRepository, logger *zap.Logger) *analyticsService {
	return &analyticsService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// Record appends an engagement event and bumps the matching record counter.
//
// identity is nil for anonymous callers. A failed counter update is logged and does not fail the call.
func (s *analyticsService) Record(ctx context.Context, identity *models.Identity, req models.RecordEventRequest) (*models.AnalyticsEvent, error) {
	if !req.ContentType.Valid() {
		return nil, apperrors.Validation("content_type must be one of: video, embed, link")
	}
	if !req.ActionType.Valid() {
		return nil, apperrors.Validation("action_type must be one of: view, click, like, share")
	}
	if req.ContentID <= 0 {
		return nil, apperrors.Validation("content_id must be greater than 0")
	}

	event := &models.AnalyticsEvent{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		ActionType:  req.ActionType,
		CreatedAt:   s.now().UTC(),
	}
	if identity != nil {
		userID := identity.ID
		event.UserID = &userID
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		s.logger.Error("failed to record analytics event",
			zap.String("content_type", string(req.ContentType)),
			zap.Int("content_id", req.ContentID),
			zap.Error(err),
		)
		return nil, apperrors.Internal("failed to record analytics event", err)
	}

	counter, ok := counterRules[counterRule{req.ContentType, req.ActionType}]
	if !ok {
		return event, nil
	}

	found, err := s.repo.IncrementCounter(ctx, counter, req.ContentID)
	switch {
	case err != nil:
		s.logger.Error("failed to increment engagement counter",
			zap.String("counter", string(counter)),
			zap.Int("content_id", req.ContentID),
			zap.Error(err),
		)
	case !found:
		s.logger.Warn("engagement counter target not found",
			zap.String("counter", string(counter)),
			zap.Int("content_id", req.ContentID),
		)
	}

	return event, nil
}
