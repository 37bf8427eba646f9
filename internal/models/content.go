package models

import "time"

// ContentType identifies a published content collection in analytics events
type ContentType string

const (
	ContentTypeVideo ContentType = "video"
	ContentTypeEmbed ContentType = "embed"
	ContentTypeLink  ContentType = "link"
)

// Valid reports whether the content type is recognized
func (t ContentType) Valid() bool {
	return t == ContentTypeVideo || t == ContentTypeEmbed || t == ContentTypeLink
}

// Category groups content records; referenced by id, never owned
type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ContentTag represents a tag offered for content filtering
type ContentTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRef holds the joined category columns of a content record
type CategoryRef struct {
	CategoryID   *int   `json:"categoryId"`
	CategoryName string `json:"categoryName,omitempty"`
	CategorySlug string `json:"categorySlug,omitempty"`
}

// Video represents a hosted video
type Video struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	// Duration in seconds
	Duration int    `json:"duration"`
	Quality  string `json:"quality"`
	CategoryRef
	Tags      Tags      `json:"tags"`
	ViewCount int64     `json:"viewCount"`
	LikeCount int64     `json:"likeCount"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VideoEmbed represents an externally hosted clip embedded by code
type VideoEmbed struct {
	ID           int    `json:"id"`
	SubmissionID *int   `json:"submissionId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	EmbedCode    string `json:"embedCode"`
	// Duration in seconds
	Duration int `json:"duration"`
	CategoryRef
	Tags       Tags      `json:"tags"`
	ViewCount  int64     `json:"viewCount"`
	LikeCount  int64     `json:"likeCount"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ExternalLink represents a link to content hosted elsewhere
type ExternalLink struct {
	ID           int    `json:"id"`
	SubmissionID *int   `json:"submissionId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	URL          string `json:"url"`
	CategoryRef
	Tags       Tags      `json:"tags"`
	ClickCount int64     `json:"clickCount"`
	LikeCount  int64     `json:"likeCount"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
