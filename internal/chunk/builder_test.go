package chunk_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"source-search/internal/chunk"
	"source-search/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestBuild(t *testing.T) {
	repo := &entity.Repo{
		ID:          1,
		Name:        "gin",
		FullName:    "gin-gonic/gin",
		URL:         "https://github.com/gin-gonic/gin",
		Description: strPtr("# Gin\n\nA **fast** HTTP web framework"),
		Language:    strPtr("Go"),
		Topics:      []string{"http", "web", "framework"},
	}

	want := "Repository Name: gin\n" +
		"Description: Gin A fast HTTP web framework\n" +
		"Language: Go\n" +
		"Topics: http, web, framework\n" +
		"URL: https://github.com/gin-gonic/gin"

	got := chunk.Build(repo)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chunk mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_AbsentFields(t *testing.T) {
	repo := &entity.Repo{
		ID:       2,
		Name:     "mystery",
		FullName: "acme/mystery",
		URL:      "https://github.com/acme/mystery",
	}

	got := chunk.Build(repo)
	assert.Contains(t, got, "Description: \n")
	assert.Contains(t, got, "Language: Unknown\n")
	assert.Contains(t, got, "Topics: \n")
}

func TestBuild_EmptyLanguageStringUsesPlaceholder(t *testing.T) {
	repo := &entity.Repo{
		ID:       3,
		Name:     "x",
		FullName: "a/x",
		URL:      "https://github.com/a/x",
		Language: strPtr(""),
	}
	assert.Contains(t, chunk.Build(repo), "Language: Unknown\n")
}

func TestBuild_Deterministic(t *testing.T) {
	repo := &entity.Repo{
		ID:          4,
		Name:        "repeat",
		FullName:    "a/repeat",
		URL:         "https://github.com/a/repeat",
		Description: strPtr("same every time"),
		Topics:      []string{"one", "two"},
	}
	assert.Equal(t, chunk.Build(repo), chunk.Build(repo))
}
