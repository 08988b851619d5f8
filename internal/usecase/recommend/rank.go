package recommend

import (
	"sort"

	"source-search/internal/domain/entity"
)

const (
	// DefaultK is the number of results returned when the caller does not
	// specify one.
	DefaultK = 5

	// MaxK caps the result size regardless of what the caller requests.
	MaxK = 50
)

// ScoredRepo pairs a candidate with its similarity to the query target.
type ScoredRepo struct {
	Repo  *entity.Repo
	Score float64
}

// RankTopK sorts scored candidates by score descending and truncates to k.
// The sort is stable, so equal scores keep the order in which candidates
// were scored. k values below 1 fall back to DefaultK; values above MaxK
// are clamped.
func RankTopK(scored []ScoredRepo, k int) []ScoredRepo {
	if k < 1 {
		k = DefaultK
	}
	if k > MaxK {
		k = MaxK
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
