// Package recommend produces partner suggestions for a user, either from an
// external recommendation service or from a local skill-complement scan.
package recommend

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no recommendation endpoint is set.
var ErrNotConfigured = errors.New("recommend: no recommender endpoint configured")

// Suggestion is one proposed exchange partner.
type Suggestion struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	SkillName string `json:"skillName,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Recommender proposes partners for userID.
type Recommender interface {
	Suggest(ctx context.Context, userID int64) ([]Suggestion, error)
}
