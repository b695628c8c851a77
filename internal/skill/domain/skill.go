package domain

import "time"

// Kind says whether the owner offers to teach the skill or wants to learn it.
type Kind string

const (
	KindTeach Kind = "teach"
	KindLearn Kind = "learn"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k == KindTeach || k == KindLearn }

// Skill is one teach/learn entry on a user's profile.
type Skill struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Level     string    `json:"level,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
