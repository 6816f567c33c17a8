package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"qaportal/config"
	"qaportal/pkg/logger"
	"qaportal/pkg/models"
	"qaportal/storage"
)

func setupTestStore(t *testing.T) storage.IStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg := config.Config{
		RedisHost: mr.Host(),
		RedisPort: mr.Port(),
	}
	s, err := New(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("Failed to connect store to miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	return s
}

func TestSetAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	answer := "3pm"
	questions := []models.Question{
		{ID: "q1", Text: "What time?", AuthorID: "u1", Timestamp: 1700000000000, Answer: &answer},
	}
	s.Set(ctx, "qa_questions", questions)

	var got []models.Question
	if !s.Get(ctx, "qa_questions", &got) {
		t.Fatal("expected Get to find the key")
	}
	if len(got) != 1 || got[0].Answer == nil || *got[0].Answer != "3pm" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := setupTestStore(t)

	var got []models.User
	if s.Get(context.Background(), "qa_users", &got) {
		t.Fatal("expected a miss for an unset key")
	}
	if got != nil {
		t.Fatalf("dest was modified on a miss: %+v", got)
	}
}

func TestOverwrite(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "qa_session:1", models.AsAdmin())
	s.Set(ctx, "qa_session:1", models.Anonymous())

	var got models.Identity
	if !s.Get(ctx, "qa_session:1", &got) {
		t.Fatal("expected Get to find the key")
	}
	if !got.IsAnonymous() {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}

func TestNewFailsWhenRedisUnreachable(t *testing.T) {
	cfg := config.Config{
		RedisHost: "localhost",
		RedisPort: "1", // nothing listens here
	}
	if _, err := New(cfg, logger.Nop()); err == nil {
		t.Fatal("expected connection error")
	}
}
