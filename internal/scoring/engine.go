package scoring

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

const DefaultTopN = 10

// Options control one engine run.
type Options struct {
	TopN          int
	MinScore      float64
	IncludeCohort bool
}

// Outcome is the ranked, truncated result of a run. TierCounts and Cohort are
// computed over every candidate that survived the MinScore filter.
type Outcome struct {
	Requirement JobRequirement     `json:"requirement"`
	Ideal       personality.Vector `json:"ideal_vector"`
	Evaluated   int                `json:"total_candidates_evaluated"`
	Scored      int                `json:"total_scored"`
	Matched     []ScoredCandidate  `json:"matched_candidates"`
	TierCounts  map[Tier]int       `json:"tier_counts"`
	Cohort      *CohortAggregate   `json:"cohort,omitempty"`
}

// CountTiers tallies scored by tier. Every tier is present, zero when empty.
func CountTiers(scored []ScoredCandidate) map[Tier]int {
	counts := make(map[Tier]int, len(Tiers))
	for _, t := range Tiers {
		counts[t] = 0
	}
	for _, sc := range scored {
		counts[sc.Tier]++
	}
	return counts
}

// Engine scores candidates in parallel, then ranks and aggregates them.
type Engine struct {
	scorer  *Scorer
	workers int
	logger  *slog.Logger
}

func NewEngine(scorer *Scorer, workers int, logger *slog.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{scorer: scorer, workers: workers, logger: logger}
}

// Run scores every candidate against req. Output is deterministic for a given
// input regardless of worker count. The only error is ctx cancellation.
func (e *Engine) Run(ctx context.Context, req JobRequirement, candidates []*store.CandidateProfile, opts Options) (*Outcome, error) {
	target := NewTarget(req)
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	profiles := make([]*store.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			profiles = append(profiles, c)
		}
	}

	scored := make([]ScoredCandidate, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, c := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = e.scorer.ScoreCandidate(target, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored = FilterMinScore(scored, opts.MinScore)
	Rank(scored)

	out := &Outcome{
		Requirement: target.Requirement,
		Ideal:       target.Ideal,
		Evaluated:   len(candidates),
		Scored:      len(scored),
		Matched:     TopN(scored, opts.TopN),
		TierCounts:  CountTiers(scored),
	}
	if opts.IncludeCohort {
		agg := Aggregate(scored, target.Requirement)
		out.Cohort = &agg
	}

	e.logger.Debug("engine run complete",
		"evaluated", out.Evaluated,
		"scored", out.Scored,
		"matched", len(out.Matched),
	)
	return out, nil
}
