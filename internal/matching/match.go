// Package matching implements skill overlap matching and match score
// composition between candidate profiles and job requirements.
package matching

import (
	"github.com/jonathan/talent-match/internal/skills"
)

// Overlap holds the outcome of matching a candidate's skill set against a
// job's required skill set. Matched and Missing partition the normalized
// required set and follow its insertion order.
type Overlap struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Ratio   float64  `json:"ratio"`
}

// Match computes matched and missing required skills for a candidate.
// Both sides are normalized before comparison, so duplicate or differently
// cased tokens never inflate the counts. Ratio is |matched| over the unique
// required count, and 0 when nothing is required: no requirements means no
// skill credit, and the composer never divides by zero.
func Match(candidateSkills, requiredSkills []string) Overlap {
	required := skills.NormalizeSet(requiredSkills)

	candidate := make(map[string]bool)
	for _, s := range skills.NormalizeSet(candidateSkills) {
		candidate[s] = true
	}

	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, s := range required {
		if candidate[s] {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}

	ratio := 0.0
	if len(required) > 0 {
		ratio = float64(len(matched)) / float64(len(required))
	}

	return Overlap{Matched: matched, Missing: missing, Ratio: ratio}
}
