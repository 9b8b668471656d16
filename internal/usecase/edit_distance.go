package usecase

// DefaultMaxDistance is the edit tolerance used when none is configured
const DefaultMaxDistance = 2

// EditDistance calculates the Levenshtein distance between two strings.
// Costs are one per inserted, deleted or substituted rune.
func EditDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	// Keep the shorter string on the inner loop
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}
	if len(r2) == 0 {
		return len(r1)
	}

	m := len(r1)
	n := len(r2)

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// IsMatch reports whether two strings are within maxDistance edits of each other
func IsMatch(s1, s2 string, maxDistance int) bool {
	// Length difference is a lower bound on the distance
	lenDiff := len([]rune(s1)) - len([]rune(s2))
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > maxDistance {
		return false
	}

	return EditDistance(s1, s2) <= maxDistance
}
