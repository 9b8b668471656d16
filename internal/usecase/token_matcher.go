package usecase

import "strings"

// TokenMatch reports whether any whitespace token of text is within maxDistance of value
func TokenMatch(text, value string, maxDistance int) bool {
	for _, token := range strings.Fields(text) {
		if IsMatch(token, value, maxDistance) {
			return true
		}
	}
	return false
}

// NameMatch reports whether every token of name has some token of text within maxDistance.
// Each name token is checked independently, so a single text token may satisfy
// several name tokens. An empty name matches any text.
func NameMatch(text, name string, maxDistance int) bool {
	textTokens := strings.Fields(text)

	for _, part := range strings.Fields(name) {
		found := false
		for _, token := range textTokens {
			if IsMatch(token, part, maxDistance) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// NameMatchBijective is the strict form of NameMatch: every name token must be
// paired with a distinct text token within maxDistance.
func NameMatchBijective(text, name string, maxDistance int) bool {
	nameTokens := strings.Fields(name)
	if len(nameTokens) == 0 {
		return true
	}

	textTokens := strings.Fields(text)
	if len(textTokens) < len(nameTokens) {
		return false
	}

	// candidates[i] lists the text tokens close enough to name token i
	candidates := make([][]int, len(nameTokens))
	for i, part := range nameTokens {
		for j, token := range textTokens {
			if IsMatch(token, part, maxDistance) {
				candidates[i] = append(candidates[i], j)
			}
		}
		if len(candidates[i]) == 0 {
			return false
		}
	}

	// owner[j] is the name token currently paired with text token j, or -1
	owner := make([]int, len(textTokens))
	for j := range owner {
		owner[j] = -1
	}

	for i := range nameTokens {
		visited := make([]bool, len(textTokens))
		if !assignToken(i, candidates, owner, visited) {
			return false
		}
	}

	return true
}

// assignToken searches for an augmenting path that pairs name token i with a free text token
func assignToken(i int, candidates [][]int, owner []int, visited []bool) bool {
	for _, j := range candidates[i] {
		if visited[j] {
			continue
		}
		visited[j] = true
		if owner[j] < 0 || assignToken(owner[j], candidates, owner, visited) {
			owner[j] = i
			return true
		}
	}
	return false
}
