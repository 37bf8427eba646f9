package models

import "time"

// Favorite links a user to a saved video
type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	VideoID   int       `json:"videoId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteListItem is a favorite joined with its video
type FavoriteListItem struct {
	VideoID      int       `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     int       `json:"duration"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FavoriteRequest represents a request to add or remove a favorite
type FavoriteRequest struct {
	VideoID int `json:"video_id" validate:"required,gt=0"`
}

// FavoriteSort is a listing order for favorites
type FavoriteSort string

const (
	FavoriteSortNewest FavoriteSort = "newest"
	FavoriteSortOldest FavoriteSort = "oldest"
	FavoriteSortTitle  FavoriteSort = "title"
)

// Review is a rating left by a user on a video; one per user and video
type Review struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	VideoID    int       `json:"videoId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateReviewRequest represents a request to review a video
type CreateReviewRequest struct {
	VideoID int    `json:"video_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ActionType is an engagement action recorded in analytics
type ActionType string

const (
	ActionView  ActionType = "view"
	ActionClick ActionType = "click"
	ActionLike  ActionType = "like"
	ActionShare ActionType = "share"
)

// Valid reports whether the action type is recognized
func (a ActionType) Valid() bool {
	switch a {
	case ActionView, ActionClick, ActionLike, ActionShare:
		return true
	}
	return false
}

// Counter names an engagement counter column on a published record
type Counter string

const (
	CounterVideoViews Counter = "video_views"
	CounterEmbedViews Counter = "embed_views"
	CounterLinkClicks Counter = "link_clicks"
)

// AnalyticsEvent is an append-only engagement ledger entry
type AnalyticsEvent struct {
	ID          int         `json:"id"`
	ContentType ContentType `json:"contentType"`
	ContentID   int         `json:"contentId"`
	ActionType  ActionType  `json:"actionType"`
	UserID      *int        `json:"userId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// RecordEventRequest is the body of an analytics record call
type RecordEventRequest struct {
	ContentType ContentType `json:"content_type" validate:"required"`
	ContentID   int         `json:"content_id" validate:"required,gt=0"`
	ActionType  ActionType  `json:"action_type" validate:"required"`
}
