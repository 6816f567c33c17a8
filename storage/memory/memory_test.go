package memory

import (
	"context"
	"testing"

	"qaportal/pkg/logger"
	"qaportal/pkg/models"
)

func TestSetAndGet(t *testing.T) {
	s := New(logger.Nop())
	defer s.Close()
	ctx := context.Background()

	users := []models.User{
		{ID: "u1", Nickname: "Alice", Phone: "13800001111"},
	}
	s.Set(ctx, "qa_users", users)

	var got []models.User
	if !s.Get(ctx, "qa_users", &got) {
		t.Fatal("expected Get to find the key")
	}
	if len(got) != 1 || got[0].Nickname != "Alice" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestGetMissingKeyLeavesDefault(t *testing.T) {
	s := New(logger.Nop())
	defer s.Close()

	got := []models.User{{ID: "default"}}
	if s.Get(context.Background(), "nope", &got) {
		t.Fatal("expected Get to report a miss")
	}
	if len(got) != 1 || got[0].ID != "default" {
		t.Fatalf("dest was modified on a miss: %+v", got)
	}
}

func TestReturnedValueIsACopy(t *testing.T) {
	s := New(logger.Nop())
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "qa_users", []models.User{{ID: "u1", Nickname: "Alice"}})

	var first []models.User
	s.Get(ctx, "qa_users", &first)
	first[0].Nickname = "Mallory"

	var second []models.User
	s.Get(ctx, "qa_users", &second)
	if second[0].Nickname != "Alice" {
		t.Fatalf("mutating a read value leaked into the store: %+v", second)
	}
}

func TestOverwrite(t *testing.T) {
	s := New(logger.Nop())
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "k", "one")
	s.Set(ctx, "k", "two")

	var got string
	if !s.Get(ctx, "k", &got) || got != "two" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestSetUnencodableValueKeepsPrevious(t *testing.T) {
	s := New(logger.Nop())
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "k", "good")
	s.Set(ctx, "k", func() {}) // not JSON-serializable

	var got string
	if !s.Get(ctx, "k", &got) || got != "good" {
		t.Fatalf("expected previous value to survive a failed Set, got %q", got)
	}
}
