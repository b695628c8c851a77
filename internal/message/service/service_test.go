package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/backend/internal/message/repository"
	userdomain "skillswap/backend/internal/user/domain"
)

// fakeUsers knows a fixed set of user ids.
type fakeUsers struct{ ids map[int64]bool }

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*userdomain.User, error) {
	if f.ids[id] {
		return &userdomain.User{ID: id, Username: "u"}, nil
	}
	return nil, nil
}

func newTestService() *Service {
	return NewService(repository.NewMemoryRepository(), &fakeUsers{ids: map[int64]bool{1: true, 2: true, 3: true}})
}

func TestAppend_StrictlyIncreasingIDs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		m, err := svc.Append(ctx, 1, 2, "hello")
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if m.ID <= last {
			t.Fatalf("id %d not strictly greater than previous %d", m.ID, last)
		}
		last = m.ID
	}
}

func TestAppend_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Append(ctx, 1, 2, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
	if _, err := svc.Append(ctx, 1, 99, "hi"); !errors.Is(err, ErrRecipientNotFound) {
		t.Errorf("err = %v, want ErrRecipientNotFound", err)
	}
}

func TestConversation_BothDirectionsOldestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Append(ctx, 1, 2, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Append(ctx, 2, 1, "second"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Append(ctx, 1, 3, "other pair"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Append(ctx, 1, 2, "third"); err != nil {
		t.Fatal(err)
	}

	msgs, err := svc.Conversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	want := []string{"first", "second", "third"}
	for i, m := range msgs {
		if m.Content != want[i] {
			t.Errorf("msgs[%d] = %q, want %q", i, m.Content, want[i])
		}
		if i > 0 && msgs[i-1].ID >= m.ID {
			t.Errorf("ids not ascending at %d", i)
		}
	}
}

func TestConversation_MarksIncomingRead(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Append(ctx, 2, 1, "to reader"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Append(ctx, 1, 2, "from reader"); err != nil {
		t.Fatal(err)
	}

	msgs, err := svc.Conversation(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Conversation: %v", err)
	}
	for _, m := range msgs {
		if m.RecipientID == 1 && m.ReadAt == nil {
			t.Errorf("incoming message %d should be marked read", m.ID)
		}
		if m.RecipientID == 2 && m.ReadAt != nil {
			t.Errorf("outgoing message %d should stay unread for the counterpart", m.ID)
		}
	}
}

func TestMarkRead_Idempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Append(ctx, 2, 1, "hi"); err != nil {
		t.Fatal(err)
	}
	if err := svc.MarkRead(ctx, 1, 2); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	first, err := svc.Conversation(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	readAt := *first[0].ReadAt

	time.Sleep(2 * time.Millisecond)
	if err := svc.MarkRead(ctx, 1, 2); err != nil {
		t.Fatalf("MarkRead again: %v", err)
	}
	second, err := svc.Conversation(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].ReadAt.Equal(readAt) {
		t.Errorf("ReadAt changed on repeat MarkRead: %v != %v", second[0].ReadAt, readAt)
	}

	// Marking with no matching messages is a no-op, not an error.
	if err := svc.MarkRead(ctx, 3, 1); err != nil {
		t.Errorf("MarkRead with nothing to mark: %v", err)
	}
}
