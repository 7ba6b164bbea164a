package match

import (
	"cmp"
	"slices"
)

// DefaultMinSimilarity is the lowest Similarity score Suggest reports.
const DefaultMinSimilarity = 0.6

// Candidate is a scored suggestion.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those at or above
// minScore, best first. Ties keep the candidates' original order.
func Rank(name string, candidates []string, minScore float64) []Candidate {
	var out []Candidate

	for _, c := range candidates {
		score := Similarity(name, c)
		if score < minScore {
			continue
		}

		out = append(out, Candidate{Name: c, Score: score})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return out
}

// Suggest returns up to limit candidate names close to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates, DefaultMinSimilarity)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	return names
}
