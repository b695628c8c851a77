package recommend

import (
	"context"
	"strings"

	skilldomain "skillswap/backend/internal/skill/domain"
	userdomain "skillswap/backend/internal/user/domain"
)

const maxLocalSuggestions = 10

// SkillLister is the slice of the skill repository the local recommender needs.
type SkillLister interface {
	ListByUser(ctx context.Context, userID int64) ([]*skilldomain.Skill, error)
	List(ctx context.Context, kind skilldomain.Kind) ([]*skilldomain.Skill, error)
}

// UserGetter resolves user ids to profiles. Missing users are skipped.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*userdomain.User, error)
}

// Local suggests partners by complementing skills: users who teach what the
// caller wants to learn. It serves as the fallback when no external
// recommendation service is configured.
type Local struct {
	skills SkillLister
	users  UserGetter
}

// NewLocal returns a skill-complement recommender.
func NewLocal(skills SkillLister, users UserGetter) *Local {
	return &Local{skills: skills, users: users}
}

func (l *Local) Suggest(ctx context.Context, userID int64) ([]Suggestion, error) {
	mine, err := l.skills.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{})
	for _, s := range mine {
		if s.Kind == skilldomain.KindLearn {
			wanted[strings.ToLower(s.Name)] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return []Suggestion{}, nil
	}

	taught, err := l.skills.List(ctx, skilldomain.KindTeach)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	out := []Suggestion{}
	for _, s := range taught {
		if s.UserID == userID {
			continue
		}
		if _, ok := wanted[strings.ToLower(s.Name)]; !ok {
			continue
		}
		if _, dup := seen[s.UserID]; dup {
			continue
		}
		u, err := l.users.GetByID(ctx, s.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		seen[s.UserID] = struct{}{}
		out = append(out, Suggestion{
			UserID:    s.UserID,
			Username:  u.Username,
			SkillName: s.Name,
			Reason:    "teaches a skill you want to learn",
		})
		if len(out) == maxLocalSuggestions {
			break
		}
	}
	return out, nil
}
