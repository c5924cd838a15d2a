package matching

import (
	"fmt"
	"os"
	"strconv"
)

// Default weights for blending skill overlap and semantic similarity into
// the final percentage. Skill overlap dominates; semantic relevance
// differentiates otherwise-tied candidates.
const (
	defaultSkillWeight    = 0.6
	defaultSemanticWeight = 0.4
)

// Weights defines the blending policy for match score composition.
// Skill + Semantic must sum to 1.
type Weights struct {
	Skill    float64
	Semantic float64
}

// DefaultWeights returns the standard 0.6/0.4 blending policy.
func DefaultWeights() Weights {
	return Weights{Skill: defaultSkillWeight, Semantic: defaultSemanticWeight}
}

// WeightsFromEnv reads MATCH_SKILL_WEIGHT and MATCH_SEMANTIC_WEIGHT,
// falling back to the defaults when unset. Both must be set together.
func WeightsFromEnv() (Weights, error) {
	skillStr := os.Getenv("MATCH_SKILL_WEIGHT")
	semanticStr := os.Getenv("MATCH_SEMANTIC_WEIGHT")
	if skillStr == "" && semanticStr == "" {
		return DefaultWeights(), nil
	}
	if skillStr == "" || semanticStr == "" {
		return Weights{}, fmt.Errorf("MATCH_SKILL_WEIGHT and MATCH_SEMANTIC_WEIGHT must both be set")
	}

	skill, err := strconv.ParseFloat(skillStr, 64)
	if err != nil {
		return Weights{}, fmt.Errorf("invalid MATCH_SKILL_WEIGHT: %v", err)
	}
	semantic, err := strconv.ParseFloat(semanticStr, 64)
	if err != nil {
		return Weights{}, fmt.Errorf("invalid MATCH_SEMANTIC_WEIGHT: %v", err)
	}

	w := Weights{Skill: skill, Semantic: semantic}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Skill < 0 || w.Semantic < 0 {
		return fmt.Errorf("match weights must be non-negative, got skill=%.2f semantic=%.2f", w.Skill, w.Semantic)
	}
	const epsilon = 1e-9
	if sum := w.Skill + w.Semantic; sum < 1-epsilon || sum > 1+epsilon {
		return fmt.Errorf("match weights must sum to 1, got %.4f", w.Skill+w.Semantic)
	}
	return nil
}

// Score is the composed match score for one (job, candidate) pair.
type Score struct {
	SkillScore      float64
	SemanticScore   float64
	MatchPercentage float64
	Degraded        bool
}

// Compose blends a skill ratio and a semantic score into a percentage using
// the weighting policy. Inputs are clamped to [0,1] and the result to
// [0,100]. Deterministic: identical inputs always compose identically.
func (w Weights) Compose(skillRatio, semanticScore float64) Score {
	skillRatio = clamp01(skillRatio)
	semanticScore = clamp01(semanticScore)

	overall := skillRatio*w.Skill + semanticScore*w.Semantic
	percentage := clamp(overall*100, 0, 100)

	return Score{
		SkillScore:      skillRatio,
		SemanticScore:   semanticScore,
		MatchPercentage: percentage,
	}
}

// ComposeDegraded produces a skill-only score for when the semantic scorer
// is unavailable: the percentage falls back to the raw skill ratio and the
// result is flagged degraded.
func (w Weights) ComposeDegraded(skillRatio float64) Score {
	skillRatio = clamp01(skillRatio)
	return Score{
		SkillScore:      skillRatio,
		MatchPercentage: clamp(skillRatio*100, 0, 100),
		Degraded:        true,
	}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
