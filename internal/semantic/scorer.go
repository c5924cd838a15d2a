// Package semantic defines the semantic similarity scoring boundary. The
// engine treats the scorer as a black box returning a similarity in [0,1];
// implementations here call out of process and may fail or time out, which
// the scoring layer handles by degrading to skill-only scores.
package semantic

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the semantic scorer could not produce a score
// (network failure, timeout, malformed reply). Callers degrade rather than
// propagate this as fatal.
var ErrUnavailable = errors.New("semantic scorer unavailable")

// Scorer scores the semantic similarity of two text blobs on [0,1].
type Scorer interface {
	Score(ctx context.Context, textA, textB string) (float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, textA, textB string) (float64, error)

// Score implements Scorer.
func (f ScorerFunc) Score(ctx context.Context, textA, textB string) (float64, error) {
	return f(ctx, textA, textB)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
