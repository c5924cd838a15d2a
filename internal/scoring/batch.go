package scoring

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-match/internal/ranking"
	"github.com/jonathan/talent-match/internal/types"
)

// ScoreCandidates scores every candidate against the job concurrently and
// returns them ranked by match percentage descending. On equal percentages
// candidates meeting the job's experience minimum rank first; remaining ties
// keep input order. One candidate degrading or scoring zero never blocks the
// rest of the batch.
func (s *Service) ScoreCandidates(ctx context.Context, job *types.JobRequirement, candidates []types.CandidateProfile) []types.ScoredCandidate {
	results := make([]types.MatchResult, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range candidates {
		g.Go(func() error {
			results[i] = s.ScoreApplication(gCtx, job, &candidates[i])
			return nil
		})
	}
	// ScoreApplication never returns an error.
	_ = g.Wait()

	items := make([]ranking.Item[types.ScoredCandidate], len(candidates))
	for i := range candidates {
		items[i] = ranking.Item[types.ScoredCandidate]{
			Entity: types.ScoredCandidate{Candidate: candidates[i], Result: results[i]},
			Score:  results[i].MatchPercentage,
		}
	}

	ranked := ranking.RankFunc(items, func(a, b types.ScoredCandidate) bool {
		return a.Result.ExperienceMet && !b.Result.ExperienceMet
	})

	scored := make([]types.ScoredCandidate, len(ranked))
	for i, item := range ranked {
		scored[i] = item.Entity
	}
	return scored
}

// ScoreJobs scores one candidate against every job concurrently and returns
// the jobs ranked by match percentage descending, ties keeping input order.
func (s *Service) ScoreJobs(ctx context.Context, candidate *types.CandidateProfile, jobs []types.JobRequirement) []types.ScoredJob {
	results := make([]types.MatchResult, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range jobs {
		g.Go(func() error {
			results[i] = s.ScoreApplication(gCtx, &jobs[i], candidate)
			return nil
		})
	}
	_ = g.Wait()

	items := make([]ranking.Item[types.ScoredJob], len(jobs))
	for i := range jobs {
		items[i] = ranking.Item[types.ScoredJob]{
			Entity: types.ScoredJob{Job: jobs[i], Result: results[i]},
			Score:  results[i].MatchPercentage,
		}
	}

	ranked := ranking.Rank(items)

	scored := make([]types.ScoredJob, len(ranked))
	for i, item := range ranked {
		scored[i] = item.Entity
	}
	return scored
}
