package recommend

import (
	"fmt"
	"regexp"

	"source-search/internal/domain/entity"
)

// repoURLPattern accepts https URLs with exactly an owner and a repository
// segment. The host is not pinned so GitHub Enterprise style hosts work.
// A trailing slash or .git suffix is tolerated.
var repoURLPattern = regexp.MustCompile(`^https://[^/]+/([^/]+?)/([^/]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts the owner and repository name from a repository URL.
// Malformed input fails with ErrInvalidRepoURL.
func ParseRepoURL(rawURL string) (owner, name string, err error) {
	m := repoURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", fmt.Errorf("parse %q: %w", rawURL, entity.ErrInvalidRepoURL)
	}
	return m[1], m[2], nil
}
