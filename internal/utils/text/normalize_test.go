package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"source-search/internal/utils/text"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \n\t  ",
			want:  "",
		},
		{
			name:  "strips markdown markers",
			input: "# A **fast** `HTTP` router - for Go",
			want:  "A fast HTTP router for Go",
		},
		{
			name:  "collapses newlines and runs of spaces",
			input: "line one\n\nline   two\tline three",
			want:  "line one line two line three",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "  padded  ",
			want:  "padded",
		},
		{
			name:  "plain text unchanged",
			input: "already clean",
			want:  "already clean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, text.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"# heading\nbody `code`",
		"   spaced    out   ",
		"plain",
	}
	for _, in := range inputs {
		once := text.Normalize(in)
		assert.Equal(t, once, text.Normalize(once))
	}
}

func TestNormalizePtr(t *testing.T) {
	assert.Equal(t, "", text.NormalizePtr(nil))

	s := "**bold** text"
	assert.Equal(t, "bold text", text.NormalizePtr(&s))
}
