package models

import (
	"encoding/json"
	"time"
)

// SubmissionType is the kind of content a submission is promoted into
type SubmissionType string

const (
	SubmissionTypeVideoEmbed   SubmissionType = "video_embed"
	SubmissionTypeExternalLink SubmissionType = "external_link"
)

// Valid reports whether the submission type is recognized
func (t SubmissionType) Valid() bool {
	return t == SubmissionTypeVideoEmbed || t == SubmissionTypeExternalLink
}

// SubmissionStatus is the moderation state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether the status is a known moderation state
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition out of the status exists in normal operation
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// Submission is a user-submitted draft under moderation.
// The row is kept as an audit trail after a decision.
type Submission struct {
	ID             int              `json:"id"`
	UserID         int              `json:"userId"`
	SubmissionType SubmissionType   `json:"submissionType"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	ThumbnailURL   string           `json:"thumbnailUrl"`
	CategoryID     *int             `json:"categoryId"`
	Tags           Tags             `json:"tags"`
	ContentData    json.RawMessage  `json:"contentData"`
	Status         SubmissionStatus `json:"status"`
	AdminNotes     *string          `json:"adminNotes"`
	ReviewedBy     *int             `json:"reviewedBy"`
	ReviewedAt     *time.Time       `json:"reviewedAt"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	// Populated by joins in moderator listings
	SubmitterName string `json:"submitterName,omitempty"`
	CategoryName  string `json:"categoryName,omitempty"`
}

// VideoEmbedPayload is the content_data of a video_embed submission
type VideoEmbedPayload struct {
	EmbedCode string `json:"embed_code" validate:"required,max=10000"`
	// Duration in seconds
	Duration int `json:"duration" validate:"gte=0"`
}

// ExternalLinkPayload is the content_data of an external_link submission
type ExternalLinkPayload struct {
	URL string `json:"url" validate:"required,http_url,max=2048"`
}

// CreateSubmissionRequest represents a request to submit content for review
type CreateSubmissionRequest struct {
	SubmissionType SubmissionType  `json:"submission_type" validate:"required"`
	Title          string          `json:"title" validate:"required,max=255"`
	Description    string          `json:"description" validate:"max=5000"`
	ThumbnailURL   string          `json:"thumbnail_url" validate:"omitempty,url,max=2048"`
	CategoryID     *int            `json:"category_id" validate:"omitempty,gt=0"`
	Tags           []string        `json:"tags" validate:"max=20,dive,required,max=50"`
	ContentData    json.RawMessage `json:"content_data"`
}

// ModerationDecisionRequest is the body of a moderation decision
type ModerationDecisionRequest struct {
	Status     SubmissionStatus `json:"status"`
	AdminNotes string           `json:"admin_notes" validate:"max=2000"`
}
