package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the lowest Similarity score Suggest reports.
const MinSimilarity = 0.5

// Suggest returns up to limit candidates that look like name, best first.
// Ties keep the order of candidates. Exact matches are never suggested.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Similarity(name, c); s >= MinSimilarity {
			ranked = append(ranked, scored{c, s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
