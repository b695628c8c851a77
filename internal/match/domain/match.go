// Package domain defines match requests between users.
package domain

import "time"

// Status is the lifecycle state of a match request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// Match is a request from one user to exchange skills with another. Only the
// partner may accept or decline, and only while the match is pending.
type Match struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requesterId"`
	PartnerID   int64     `json:"partnerId"`
	SkillName   string    `json:"skillName,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
