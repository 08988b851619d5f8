package recommend_test

import (
	"errors"
	"testing"

	"source-search/internal/domain/entity"
	"source-search/internal/usecase/recommend"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "github url",
			url:       "https://github.com/acme/example",
			wantOwner: "acme",
			wantRepo:  "example",
		},
		{
			name:      "trailing slash",
			url:       "https://github.com/acme/example/",
			wantOwner: "acme",
			wantRepo:  "example",
		},
		{
			name:      "dot git suffix",
			url:       "https://github.com/acme/example.git",
			wantOwner: "acme",
			wantRepo:  "example",
		},
		{
			name:      "non-github host",
			url:       "https://git.example.com/acme/example",
			wantOwner: "acme",
			wantRepo:  "example",
		},
		{
			name:    "owner only",
			url:     "https://github.com/acme",
			wantErr: true,
		},
		{
			name:    "extra path segment",
			url:     "https://github.com/acme/example/issues",
			wantErr: true,
		},
		{
			name:    "http scheme",
			url:     "http://github.com/acme/example",
			wantErr: true,
		},
		{
			name:    "not a url",
			url:     "acme/example",
			wantErr: true,
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := recommend.ParseRepoURL(tt.url)

			if tt.wantErr {
				if !errors.Is(err, entity.ErrInvalidRepoURL) {
					t.Fatalf("ParseRepoURL(%q) error = %v, want ErrInvalidRepoURL", tt.url, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseRepoURL(%q) error = %v", tt.url, err)
			}
			if owner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", owner, tt.wantOwner)
			}
			if repo != tt.wantRepo {
				t.Errorf("repo = %q, want %q", repo, tt.wantRepo)
			}
		})
	}
}
