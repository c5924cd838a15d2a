package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/semantic"
	"github.com/jonathan/talent-match/internal/types"
)

func fixedScorer(score float64) semantic.Scorer {
	return semantic.ScorerFunc(func(_ context.Context, _, _ string) (float64, error) {
		return score, nil
	})
}

func failingScorer() semantic.Scorer {
	return semantic.ScorerFunc(func(_ context.Context, _, _ string) (float64, error) {
		return 0, semantic.ErrUnavailable
	})
}

func testJob() *types.JobRequirement {
	return &types.JobRequirement{
		Title:              "Backend Engineer",
		Description:        "Build and operate Go services on AWS.",
		RequiredSkills:     []string{"Python", "AWS"},
		MinExperienceYears: 2,
	}
}

func testCandidate() *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:            "Ada",
		Skills:          []string{"python", "React"},
		ExperienceYears: 3,
		ResumeText:      "Built data pipelines in Python.",
	}
}

func TestScoreApplication_BlendsSkillAndSemantic(t *testing.T) {
	svc := NewService(fixedScorer(0.5), matching.DefaultWeights())

	result := svc.ScoreApplication(context.Background(), testJob(), testCandidate())

	// ratio 0.5 * 0.6 + semantic 0.5 * 0.4 = 0.5 -> 50%
	assert.Equal(t, []string{"python"}, result.MatchedSkills)
	assert.Equal(t, []string{"aws"}, result.MissingSkills)
	assert.InDelta(t, 0.5, result.SkillScore, 0.0001)
	assert.InDelta(t, 0.5, result.SemanticScore, 0.0001)
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.0001)
	assert.True(t, result.ExperienceMet)
	assert.False(t, result.Degraded)
}

func TestScoreApplication_ScorerFailureDegrades(t *testing.T) {
	svc := NewService(failingScorer(), matching.DefaultWeights())

	result := svc.ScoreApplication(context.Background(), testJob(), testCandidate())

	// Degraded mode: skill ratio alone drives the percentage.
	assert.True(t, result.Degraded)
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.0001)
	assert.Zero(t, result.SemanticScore)
	assert.Equal(t, []string{"python"}, result.MatchedSkills)
}

func TestScoreApplication_ScorerTimeoutDegrades(t *testing.T) {
	slow := semantic.ScorerFunc(func(ctx context.Context, _, _ string) (float64, error) {
		select {
		case <-time.After(time.Second):
			return 0.9, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	svc := NewService(slow, matching.DefaultWeights(), WithScorerTimeout(10*time.Millisecond))

	result := svc.ScoreApplication(context.Background(), testJob(), testCandidate())

	assert.True(t, result.Degraded)
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.0001)
}

func TestScoreApplication_NilScorerDegrades(t *testing.T) {
	svc := NewService(nil, matching.DefaultWeights())

	result := svc.ScoreApplication(context.Background(), testJob(), testCandidate())

	assert.True(t, result.Degraded)
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.0001)
}

func TestScoreApplication_MissingTextSkipsSemantic(t *testing.T) {
	called := false
	scorer := semantic.ScorerFunc(func(_ context.Context, _, _ string) (float64, error) {
		called = true
		return 1, nil
	})
	svc := NewService(scorer, matching.DefaultWeights())

	candidate := testCandidate()
	candidate.ResumeText = ""
	result := svc.ScoreApplication(context.Background(), testJob(), candidate)

	assert.False(t, called)
	assert.True(t, result.Degraded)
}

func TestScoreApplication_SparseInputsYieldZeroResult(t *testing.T) {
	svc := NewService(fixedScorer(1), matching.DefaultWeights())

	emptyJob := &types.JobRequirement{Title: "Mystery Role"}
	result := svc.ScoreApplication(context.Background(), emptyJob, testCandidate())
	assert.Zero(t, result.MatchPercentage)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)

	emptyCandidate := &types.CandidateProfile{Name: "Ghost"}
	result = svc.ScoreApplication(context.Background(), testJob(), emptyCandidate)
	assert.Zero(t, result.MatchPercentage)
	assert.Empty(t, result.MatchedSkills)

	result = svc.ScoreApplication(context.Background(), nil, nil)
	assert.Zero(t, result.MatchPercentage)
}

func TestScoreApplication_ExperienceBelowMinimum(t *testing.T) {
	svc := NewService(fixedScorer(0.5), matching.DefaultWeights())

	candidate := testCandidate()
	candidate.ExperienceYears = 1
	result := svc.ScoreApplication(context.Background(), testJob(), candidate)

	assert.False(t, result.ExperienceMet)
	// Experience never feeds the score itself.
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.0001)
}

func TestScoreApplication_Deterministic(t *testing.T) {
	svc := NewService(fixedScorer(0.5), matching.DefaultWeights())

	first := svc.ScoreApplication(context.Background(), testJob(), testCandidate())
	second := svc.ScoreApplication(context.Background(), testJob(), testCandidate())

	assert.Equal(t, first, second)
}

func TestScoreApplication_ScorerErrorOtherThanUnavailable(t *testing.T) {
	scorer := semantic.ScorerFunc(func(_ context.Context, _, _ string) (float64, error) {
		return 0, errors.New("connection reset")
	})
	svc := NewService(scorer, matching.DefaultWeights())

	result := svc.ScoreApplication(context.Background(), testJob(), testCandidate())
	assert.True(t, result.Degraded)
}
