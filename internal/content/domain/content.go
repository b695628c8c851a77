package domain

import "time"

// Status is the processing state of a content record.
// Transitions: uploaded → processing → {complete | failed}. A record never
// leaves a terminal state.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// Terminal reports whether s permits no further transitions.
func (s Status) Terminal() bool { return s == StatusComplete || s == StatusFailed }

// MediaType is the accepted artifact type.
type MediaType string

const (
	MediaPDF   MediaType = "pdf"
	MediaVideo MediaType = "video"
)

// ContentRecord is persisted metadata and processing status for one uploaded artifact.
type ContentRecord struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	Filename    string    `json:"filename"`
	MediaType   MediaType `json:"mediaType"`
	StoragePath string    `json:"-"`
	SizeBytes   int64     `json:"sizeBytes"`
	Status      Status    `json:"status"`
	Summary     *string   `json:"summary,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
