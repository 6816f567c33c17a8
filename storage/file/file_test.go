package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"qaportal/pkg/logger"
	"qaportal/pkg/models"
)

func TestValueSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s := New(path, logger.Nop())
	s.Set(ctx, "qa_questions", []models.Question{
		{ID: "q1", Text: "What time?", AuthorID: "u1", Timestamp: 1700000000000},
	})
	s.Close()

	reopened := New(path, logger.Nop())
	defer reopened.Close()

	var got []models.Question
	if !reopened.Get(ctx, "qa_questions", &got) {
		t.Fatal("expected key to survive a restart")
	}
	if len(got) != 1 || got[0].Text != "What time?" {
		t.Fatalf("unexpected value after reopen: %+v", got)
	}
}

func TestMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	s := New(path, logger.Nop())
	defer s.Close()

	var got []models.User
	if s.Get(context.Background(), "qa_users", &got) {
		t.Fatal("expected empty store for a missing file")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(path, logger.Nop())
	defer s.Close()
	ctx := context.Background()

	var got []models.User
	if s.Get(ctx, "qa_users", &got) {
		t.Fatal("expected corrupt file to degrade to empty state")
	}

	// The store must still be writable afterwards.
	s.Set(ctx, "qa_users", []models.User{{ID: "u1"}})
	if !s.Get(ctx, "qa_users", &got) || len(got) != 1 {
		t.Fatalf("store not usable after corrupt load: %+v", got)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := New(path, logger.Nop())
	defer s.Close()
	ctx := context.Background()

	s.Set(ctx, "a", 1)
	s.Set(ctx, "b", 2)

	var a, b int
	if !s.Get(ctx, "a", &a) || a != 1 {
		t.Fatalf("key a: got %d", a)
	}
	if !s.Get(ctx, "b", &b) || b != 2 {
		t.Fatalf("key b: got %d", b)
	}
}
