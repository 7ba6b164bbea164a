package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-byte insertions, deletions or substitutions that turn one
// into the other.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	// Keep the shorter string in a so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity returns 1 - distance/maxLen over normalized identifiers, so 1.0
// means the names are the same identifier spelled differently.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)

	longest := max(len(na), len(nb))
	if longest == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(na, nb))/float64(longest)
}
