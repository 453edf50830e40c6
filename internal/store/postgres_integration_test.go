//go:build integration

package store

import (
	"context"
	"os"
	"testing"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE scout_candidates")
		s.Close()
	})

	return s
}

func TestUpsertAndGetCandidate(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	c := &Candidate{
		ID:                "cand-1",
		Name:              "Ada Lovelace",
		Title:             "ML Engineer",
		Skills:            []string{"LangChain", "Python"},
		Location:          "Berlin, Germany",
		ExperienceYears:   6,
		Availability:      "Open to contract work",
		Summary:           "GenAI engineer",
		Projects:          []string{"RAG pipeline"},
		PublicationsCount: 3,
		ReputationScore:   1200,
		RecencySignal:     "2 days ago",
	}
	if err := s.UpsertCandidate(ctx, c); err != nil {
		t.Fatalf("UpsertCandidate failed: %v", err)
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := s.GetCandidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("GetCandidate failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected candidate, got nil")
	}
	if got.Name != "Ada Lovelace" || got.ExperienceYears != 6 || len(got.Skills) != 2 {
		t.Errorf("unexpected round-trip: %+v", got)
	}

	c.ExperienceYears = 7
	if err := s.UpsertCandidate(ctx, c); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	got, _ = s.GetCandidate(ctx, "cand-1")
	if got.ExperienceYears != 7 {
		t.Errorf("expected updated experience 7, got %d", got.ExperienceYears)
	}
}

func TestGetCandidateMissing(t *testing.T) {
	s := setupTestDB(t)
	got, err := s.GetCandidate(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing candidate, got %+v", got)
	}
}

func TestListCandidatesStableOrder(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := s.UpsertCandidate(ctx, &Candidate{ID: id, Name: id}); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	first, err := s.ListCandidates(ctx, CandidateFilter{})
	if err != nil {
		t.Fatalf("ListCandidates failed: %v", err)
	}
	second, err := s.ListCandidates(ctx, CandidateFilter{})
	if err != nil {
		t.Fatalf("ListCandidates failed: %v", err)
	}
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 candidates, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("order differs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}

	limited, err := s.ListCandidates(ctx, CandidateFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("ListCandidates with limit failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != first[1].ID {
		t.Errorf("unexpected page: %+v", limited)
	}
}
