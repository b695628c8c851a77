package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"skillswap/backend/internal/match/domain"
	"skillswap/backend/internal/match/recommend"
	"skillswap/backend/internal/match/repository"
	"skillswap/backend/internal/server/middleware"
	userdomain "skillswap/backend/internal/user/domain"
	userrepo "skillswap/backend/internal/user/repository"
)

type fakeRecommender struct {
	suggestions []recommend.Suggestion
	err         error
}

func (f *fakeRecommender) Suggest(ctx context.Context, userID int64) ([]recommend.Suggestion, error) {
	return f.suggestions, f.err
}

func newTestHandler(t *testing.T, rec recommend.Recommender) (*Handler, *repository.MemoryRepository) {
	t.Helper()
	users := userrepo.NewMemoryRepository()
	ctx := context.Background()
	for _, u := range []*userdomain.User{
		{Username: "alice", Email: "alice@example.com"},
		{Username: "bob", Email: "bob@example.com"},
	} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	repo := repository.NewMemoryRepository()
	return NewHandler(repo, users, rec, nil), repo
}

func authedRequest(method, target string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, "alice", "tok"))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreate_PendingMatch(t *testing.T) {
	h, _ := newTestHandler(t, &fakeRecommender{})

	rr := httptest.NewRecorder()
	h.Create(rr, authedRequest(http.MethodPost, "/api/matches", []byte(`{"partnerId":2,"skillName":"Go"}`), 1))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body)
	}
	var m domain.Match
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m.Status != domain.StatusPending || m.RequesterID != 1 || m.PartnerID != 2 {
		t.Errorf("match = %+v", m)
	}
}

func TestCreate_RejectsSelfAndUnknownPartner(t *testing.T) {
	h, _ := newTestHandler(t, &fakeRecommender{})

	for name, body := range map[string]string{
		"self":    `{"partnerId":1}`,
		"unknown": `{"partnerId":99}`,
	} {
		rr := httptest.NewRecorder()
		h.Create(rr, authedRequest(http.MethodPost, "/api/matches", []byte(body), 1))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rr.Code)
		}
	}
}

func TestUpdate_OnlyPartnerDecidesOnce(t *testing.T) {
	h, repo := newTestHandler(t, &fakeRecommender{})
	m := &domain.Match{RequesterID: 1, PartnerID: 2, Status: domain.StatusPending, CreatedAt: time.Now()}
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatal(err)
	}

	// The requester may not decide their own request.
	rr := httptest.NewRecorder()
	req := withURLParam(authedRequest(http.MethodPatch, "/api/matches/1", []byte(`{"status":"accepted"}`), 1), "id", "1")
	h.Update(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("requester decide: status = %d, want 403", rr.Code)
	}

	// The partner accepts.
	rr = httptest.NewRecorder()
	req = withURLParam(authedRequest(http.MethodPatch, "/api/matches/1", []byte(`{"status":"accepted"}`), 2), "id", "1")
	h.Update(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("accept: status = %d, want 200: %s", rr.Code, rr.Body)
	}

	// A decided match is immutable.
	rr = httptest.NewRecorder()
	req = withURLParam(authedRequest(http.MethodPatch, "/api/matches/1", []byte(`{"status":"declined"}`), 2), "id", "1")
	h.Update(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("re-decide: status = %d, want 409", rr.Code)
	}

	got, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusAccepted {
		t.Errorf("status = %s, want accepted", got.Status)
	}
}

func TestSuggestions_FallsBackWhenUnconfigured(t *testing.T) {
	fallback := &fakeRecommender{suggestions: []recommend.Suggestion{{UserID: 2, Username: "bob"}}}
	users := userrepo.NewMemoryRepository()
	repo := repository.NewMemoryRepository()
	h := NewHandler(repo, users, recommend.NewHTTPClient(""), fallback)

	rr := httptest.NewRecorder()
	h.Suggestions(rr, authedRequest(http.MethodGet, "/api/matches/suggestions", nil, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	var got []recommend.Suggestion
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Username != "bob" {
		t.Errorf("suggestions = %+v, want bob", got)
	}
}
