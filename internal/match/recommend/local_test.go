package recommend

import (
	"context"
	"testing"

	skilldomain "skillswap/backend/internal/skill/domain"
	skillrepo "skillswap/backend/internal/skill/repository"
	userdomain "skillswap/backend/internal/user/domain"
	userrepo "skillswap/backend/internal/user/repository"
)

func seed(t *testing.T, users *userrepo.MemoryRepository, skills *skillrepo.MemoryRepository) {
	t.Helper()
	ctx := context.Background()
	for _, u := range []*userdomain.User{
		{Username: "alice", Email: "alice@example.com"},
		{Username: "bob", Email: "bob@example.com"},
		{Username: "carol", Email: "carol@example.com"},
	} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	for _, s := range []*skilldomain.Skill{
		{UserID: 1, Name: "Go", Kind: skilldomain.KindLearn},
		{UserID: 2, Name: "go", Kind: skilldomain.KindTeach},
		{UserID: 3, Name: "Piano", Kind: skilldomain.KindTeach},
		{UserID: 1, Name: "Go", Kind: skilldomain.KindTeach}, // own teach skill, never suggested
	} {
		if err := skills.Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLocal_SuggestsComplementaryTeachers(t *testing.T) {
	users := userrepo.NewMemoryRepository()
	skills := skillrepo.NewMemoryRepository()
	seed(t, users, skills)

	got, err := NewLocal(skills, users).Suggest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(got))
	}
	if got[0].UserID != 2 || got[0].Username != "bob" {
		t.Errorf("suggestion = %+v, want bob (id 2)", got[0])
	}
}

func TestLocal_NoLearnSkillsMeansNoSuggestions(t *testing.T) {
	users := userrepo.NewMemoryRepository()
	skills := skillrepo.NewMemoryRepository()
	seed(t, users, skills)

	got, err := NewLocal(skills, users).Suggest(context.Background(), 3)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("suggestions = %d, want 0", len(got))
	}
}

func TestHTTPClient_UnconfiguredReturnsSentinel(t *testing.T) {
	_, err := NewHTTPClient("").Suggest(context.Background(), 1)
	if err != ErrNotConfigured {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
