// Package chunk assembles the textual block that represents one repository
// for embedding. The field order and presence are stable across ingestion
// runs; the embedding provider treats the exact layout as non-semantic.
package chunk

import (
	"fmt"
	"strings"

	"source-search/internal/domain/entity"
	"source-search/internal/utils/text"
)

// unknownLanguage is the placeholder substituted when the source reports no
// primary language for a repository.
const unknownLanguage = "Unknown"

// Build produces the chunk text for a repository record. The result is
// deterministic for the same record.
func Build(repo *entity.Repo) string {
	language := unknownLanguage
	if repo.Language != nil && *repo.Language != "" {
		language = *repo.Language
	}

	return fmt.Sprintf(
		"Repository Name: %s\nDescription: %s\nLanguage: %s\nTopics: %s\nURL: %s",
		repo.Name,
		text.NormalizePtr(repo.Description),
		language,
		strings.Join(repo.Topics, ", "),
		repo.URL,
	)
}
