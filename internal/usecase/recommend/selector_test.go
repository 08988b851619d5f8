package recommend_test

import (
	"context"
	"testing"

	"source-search/internal/infra/adapter/persistence/memory"
	"source-search/internal/usecase/recommend"
	"source-search/tests/fixtures"
)

func seedCorpus(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	seeds := []struct {
		id       int64
		language string
		topics   []string
		embedded bool
	}{
		{1, "Go", []string{"cli", "tooling"}, true},
		{2, "Go", []string{"web"}, true},
		{3, "Rust", []string{"cli"}, true},
		{4, "Go", []string{"cli"}, false},
	}

	for _, s := range seeds {
		opts := []fixtures.RepoOption{
			fixtures.WithID(s.id),
			fixtures.WithLanguage(s.language),
			fixtures.WithTopics(s.topics...),
		}
		if !s.embedded {
			opts = append(opts, fixtures.WithoutEmbedding())
		}
		if err := store.Upsert(ctx, fixtures.NewTestRepo(opts...)); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	return store
}

func TestSelector_Select_Filtered(t *testing.T) {
	store := seedCorpus(t)
	selector := recommend.NewSelector(store, true)

	goLang := "Go"
	candidates, err := selector.Select(context.Background(), &goLang, []string{"cli"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// Record 4 matches the filters but has no embedding.
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].ID != 1 {
		t.Errorf("candidates[0].ID = %d, want 1", candidates[0].ID)
	}
}

func TestSelector_Select_FallbackOnEmptyFilter(t *testing.T) {
	store := seedCorpus(t)
	selector := recommend.NewSelector(store, true)

	python := "Python"
	candidates, err := selector.Select(context.Background(), &python, []string{"machine-learning"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// Nothing matches, so every embedded record comes back.
	if len(candidates) != 3 {
		t.Errorf("candidates = %d, want 3", len(candidates))
	}
}

func TestSelector_Select_FallbackDisabled(t *testing.T) {
	store := seedCorpus(t)
	selector := recommend.NewSelector(store, false)

	python := "Python"
	candidates, err := selector.Select(context.Background(), &python, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %d, want 0", len(candidates))
	}
}

func TestSelector_Select_EmptyCorpus(t *testing.T) {
	selector := recommend.NewSelector(memory.NewStore(), true)

	candidates, err := selector.Select(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %d, want 0", len(candidates))
	}
}
