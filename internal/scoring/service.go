// Package scoring orchestrates the matching pipeline: skill normalization,
// overlap matching, semantic similarity, and score composition.
package scoring

import (
	"context"
	"time"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/semantic"
	"github.com/jonathan/talent-match/internal/types"
)

// DefaultScorerTimeout bounds each semantic scorer call.
const DefaultScorerTimeout = 10 * time.Second

// DefaultConcurrency bounds parallel scoring fan-out in batch operations.
const DefaultConcurrency = 8

// Service computes match scores for (job, candidate) pairs. The semantic
// scorer is optional: with a nil scorer every result is computed in degraded
// skill-only mode. Service itself holds no mutable state and is safe for
// concurrent use.
type Service struct {
	scorer      semantic.Scorer
	weights     matching.Weights
	timeout     time.Duration
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithScorerTimeout sets the per-call semantic scorer timeout.
func WithScorerTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithConcurrency sets the batch scoring fan-out limit.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a scoring service. scorer may be nil for skill-only
// deployments.
func NewService(scorer semantic.Scorer, weights matching.Weights, opts ...Option) *Service {
	s := &Service{
		scorer:      scorer,
		weights:     weights,
		timeout:     DefaultScorerTimeout,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreApplication scores one candidate against one job. It is total over
// well-formed inputs: sparse jobs or candidates (nothing to match on) yield
// the zero MatchResult, and semantic scorer failures yield a degraded
// skill-only result. It never returns an error.
func (s *Service) ScoreApplication(ctx context.Context, job *types.JobRequirement, candidate *types.CandidateProfile) types.MatchResult {
	if job == nil || candidate == nil || !job.HasContent() || !candidate.HasContent() {
		return types.MatchResult{MatchedSkills: []string{}, MissingSkills: []string{}}
	}

	overlap := matching.Match(candidate.Skills, job.RequiredSkills)
	experienceMet := candidate.ExperienceYears >= job.MinExperienceYears

	score := s.composeWithSemantic(ctx, overlap.Ratio, job.Description, candidate.ResumeText)

	return types.MatchResult{
		MatchedSkills:   overlap.Matched,
		MissingSkills:   overlap.Missing,
		SkillScore:      score.SkillScore,
		SemanticScore:   score.SemanticScore,
		MatchPercentage: score.MatchPercentage,
		ExperienceMet:   experienceMet,
		Degraded:        score.Degraded,
	}
}

// composeWithSemantic blends the skill ratio with a semantic score when one
// can be obtained, degrading to skill-only otherwise. Degradation covers a
// nil scorer, missing text on either side, and scorer failure or timeout.
func (s *Service) composeWithSemantic(ctx context.Context, skillRatio float64, jobText, resumeText string) matching.Score {
	if s.scorer == nil || jobText == "" || resumeText == "" {
		return s.weights.ComposeDegraded(skillRatio)
	}

	scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	semanticScore, err := s.scorer.Score(scoreCtx, jobText, resumeText)
	if err != nil {
		return s.weights.ComposeDegraded(skillRatio)
	}

	return s.weights.Compose(skillRatio, semanticScore)
}
