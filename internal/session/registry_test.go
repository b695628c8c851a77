package session

import (
	"context"
	"errors"
	"testing"
)

type fakeUserLister struct {
	id       int64
	username string
	ok       bool
	err      error
}

func (f *fakeUserLister) First(ctx context.Context) (int64, string, bool, error) {
	return f.id, f.username, f.ok, f.err
}

func TestRegistry_CreateAndResolve(t *testing.T) {
	r := NewRegistry()

	token, err := r.Create(42, "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("Create returned empty token")
	}

	id, ok := r.Resolve(token)
	if !ok {
		t.Fatal("Resolve: token not found")
	}
	if id.UserID != 42 || id.Username != "alice" {
		t.Errorf("Resolve = %+v, want {42 alice}", id)
	}
}

func TestRegistry_ResolveUnknownToken(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Resolve("nope"); ok {
		t.Error("Resolve of unknown token should return ok=false")
	}
}

func TestRegistry_TokensAreUnique(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := r.Create(int64(i), "u")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d creations", i)
		}
		seen[tok] = true
	}
	if r.Len() != 100 {
		t.Errorf("Len = %d, want 100", r.Len())
	}
}

func TestRegistry_EnsureDefault(t *testing.T) {
	r := NewRegistry()
	users := &fakeUserLister{id: 7, username: "bootstrap", ok: true}

	token, err := r.EnsureDefault(context.Background(), users)
	if err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	id, ok := r.Resolve(token)
	if !ok || id.UserID != 7 || id.Username != "bootstrap" {
		t.Errorf("Resolve = %+v ok=%v, want {7 bootstrap} true", id, ok)
	}
}

func TestRegistry_EnsureDefaultNoUsers(t *testing.T) {
	r := NewRegistry()
	if _, err := r.EnsureDefault(context.Background(), &fakeUserLister{}); !errors.Is(err, ErrNoUsers) {
		t.Errorf("err = %v, want ErrNoUsers", err)
	}
}

func TestRegistry_EnsureDefaultStoreError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("store down")
	if _, err := r.EnsureDefault(context.Background(), &fakeUserLister{err: boom}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want store error", err)
	}
}
