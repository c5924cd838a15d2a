// Package shortlist implements keyword-based candidate filtering and
// ranking. It is the lightweight matching path: no semantic scorer, just
// case-insensitive substring hits over resume text and skills.
package shortlist

import (
	"strings"

	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/types"
)

// Entry is one shortlisted candidate with its keyword hit count.
type Entry struct {
	Candidate types.CandidateProfile `json:"candidate"`
	Score     int                    `json:"score"`
}

// Shortlist scores each candidate by the number of keywords found in the
// concatenation of resume text and skills, drops candidates with no hits,
// and returns the rest ranked by score descending (ties keep input order).
func Shortlist(candidates []types.CandidateProfile, keywords []string) []Entry {
	keys := skills.NormalizeSet(keywords)
	if len(keys) == 0 {
		return []Entry{}
	}

	items := make([]ranking.Item[Entry], 0, len(candidates))
	for _, candidate := range candidates {
		score := keywordHits(candidate.SearchText(), keys)
		if score == 0 {
			continue
		}
		items = append(items, ranking.Item[Entry]{
			Entity: Entry{Candidate: candidate, Score: score},
			Score:  float64(score),
		})
	}

	ranked := ranking.Rank(items)

	entries := make([]Entry, len(ranked))
	for i, item := range ranked {
		entries[i] = item.Entity
	}
	return entries
}

// keywordHits counts how many keywords appear as substrings of haystack,
// case-insensitively. Each keyword counts at most once.
func keywordHits(haystack string, keywords []string) int {
	haystack = strings.ToLower(haystack)
	hits := 0
	for _, key := range keywords {
		if strings.Contains(haystack, key) {
			hits++
		}
	}
	return hits
}
