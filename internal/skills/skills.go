// Package skills provides skill token normalization for the matching engine.
// All comparison elsewhere in the system assumes skills have passed through
// NormalizeSet, so the invariant "no two entries normalize to the same token"
// is established here and nowhere else.
package skills

import "strings"

// Normalize canonicalizes a single skill token: trims whitespace and folds to
// lowercase. Returns "" for blank input.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeSet canonicalizes a list of skill tokens: each token is trimmed and
// lowercased, empty tokens are dropped, and duplicates are removed preserving
// first-seen order. Normalizing an already-normalized set is a no-op.
func NormalizeSet(tokens []string) []string {
	normalized := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		skill := Normalize(token)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		normalized = append(normalized, skill)
	}

	return normalized
}

// Split parses comma-separated skill input into a normalized set. The API
// accepts skills either as a JSON array or as a single comma-separated string,
// so both paths funnel through here.
func Split(csv string) []string {
	return NormalizeSet(strings.Split(csv, ","))
}

// Contains reports whether the normalized set contains the given token after
// normalizing it.
func Contains(set []string, token string) bool {
	skill := Normalize(token)
	for _, s := range set {
		if s == skill {
			return true
		}
	}
	return false
}
