package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"source-search/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestRepo_Validate(t *testing.T) {
	valid := entity.Repo{
		ID:       42,
		Name:     "linux",
		FullName: "torvalds/linux",
		URL:      "https://github.com/torvalds/linux",
		Stars:    150000,
		Language: strPtr("C"),
	}

	tests := []struct {
		name      string
		mutate    func(r *entity.Repo)
		wantField string
	}{
		{
			name:   "valid record",
			mutate: func(r *entity.Repo) {},
		},
		{
			name:   "missing description and language are allowed",
			mutate: func(r *entity.Repo) { r.Description = nil; r.Language = nil },
		},
		{
			name:      "zero id",
			mutate:    func(r *entity.Repo) { r.ID = 0 },
			wantField: "id",
		},
		{
			name:      "negative id",
			mutate:    func(r *entity.Repo) { r.ID = -1 },
			wantField: "id",
		},
		{
			name:      "empty full_name",
			mutate:    func(r *entity.Repo) { r.FullName = "" },
			wantField: "full_name",
		},
		{
			name:      "empty url",
			mutate:    func(r *entity.Repo) { r.URL = "" },
			wantField: "url",
		},
		{
			name:      "negative stars",
			mutate:    func(r *entity.Repo) { r.Stars = -5 },
			wantField: "stars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *entity.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestRepo_HasEmbedding(t *testing.T) {
	r := entity.Repo{}
	assert.False(t, r.HasEmbedding())

	r.Embedding = []float32{}
	assert.False(t, r.HasEmbedding())

	r.Embedding = []float32{0.1, 0.2}
	assert.True(t, r.HasEmbedding())
}
