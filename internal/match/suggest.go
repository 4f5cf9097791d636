package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the lowest normalized similarity Suggest accepts.
const MinSimilarity = 0.5

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates most similar to query, best first.
// Ties keep alphabetical order. Candidates below MinSimilarity and exact
// duplicates of query are left out.
func Suggest(query string, candidates []string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	q := NormalizeIdent(query)

	var ranked []scored
	for _, c := range candidates {
		if c == query {
			continue
		}

		n := NormalizeIdent(c)

		score := Similarity(q, n)
		if len(q) > 0 && len(n) > len(q) && n[:len(q)] == q {
			// a typed prefix is as good as a one-rune typo
			score = max(score, 1-1/float64(len([]rune(n))))
		}

		if score >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		return cmp.Compare(a.name, b.name)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked[:min(limit, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
