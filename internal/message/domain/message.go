package domain

import "time"

// Message is one persisted direct message. Immutable once created except for
// ReadAt, which is set at most once when the recipient reads the conversation.
type Message struct {
	ID          int64      `json:"id"`
	SenderID    int64      `json:"senderId"`
	RecipientID int64      `json:"recipientId"`
	Content     string     `json:"content"`
	SentAt      time.Time  `json:"sentAt"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
}
