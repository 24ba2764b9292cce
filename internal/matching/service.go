// Package matching runs one candidate-job match end to end: fetch the scoped
// cohort, score and rank it, annotate the leaders, publish an event and record
// metrics.
package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Fitment/internal/hermes"
	"github.com/MikeSquared-Agency/Fitment/internal/insights"
	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

const AlgorithmVersion = "2.1.0"

var (
	ErrInvalidRequest  = errors.New("invalid match request")
	ErrCandidateSource = errors.New("candidate source unavailable")
)

// Request describes one match run.
type Request struct {
	Requirement     scoring.JobRequirement
	Scope           store.Scope
	TopN            int
	MinScore        float64
	IncludeInsights bool
	IncludeCohort   bool
}

// Result is the envelope returned to callers.
//
// Each matched candidate exposes two distinct confidences: the breakdown's
// confidence_multiplier (data completeness) and confidence_level (cohort
// percentile rank).
type Result struct {
	RunID            string                    `json:"run_id"`
	RoleTitle        string                    `json:"role_title"`
	Requirement      scoring.JobRequirement    `json:"parsed_requirements"`
	IdealVector      personality.Vector        `json:"ideal_vector"`
	Scope            store.Scope               `json:"scope"`
	Evaluated        int                       `json:"total_candidates_evaluated"`
	Scored           int                       `json:"total_scored"`
	Matched          []scoring.ScoredCandidate `json:"matched_candidates"`
	Cohort           *scoring.CohortAggregate  `json:"cohort,omitempty"`
	InsightsFallback bool                      `json:"insights_fallback,omitempty"`
	ExecutionTimeMs  int64                     `json:"execution_time_ms"`
	AlgorithmVersion string                    `json:"algorithm_version"`
}

type Config struct {
	DefaultTopN   int
	MaxTopN       int
	MaxCandidates int
}

type Service struct {
	store     store.Store
	engine    *scoring.Engine
	annotator *insights.Annotator
	events    hermes.Client
	metrics   *Metrics
	cfg       Config
	logger    *slog.Logger
}

// NewService wires a Service. annotator and events may be nil.
func NewService(s store.Store, engine *scoring.Engine, annotator *insights.Annotator, events hermes.Client, metrics *Metrics, cfg Config, logger *slog.Logger) *Service {
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = scoring.DefaultTopN
	}
	if cfg.MaxTopN < cfg.DefaultTopN {
		cfg.MaxTopN = cfg.DefaultTopN
	}
	return &Service{
		store:     s,
		engine:    engine,
		annotator: annotator,
		events:    events,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run matches the requirement against every candidate visible in req.Scope.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.New().String()
	start := time.Now()

	if err := req.Scope.Validate(); err != nil {
		s.fail(runID, req.Scope, start, "invalid", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if s.store == nil {
		err := errors.New("no candidate store configured")
		s.fail(runID, req.Scope, start, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCandidateSource, err)
	}

	candidates, err := s.store.ListCandidates(ctx, req.Scope, s.cfg.MaxCandidates)
	if err != nil {
		s.fail(runID, req.Scope, start, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCandidateSource, err)
	}
	return s.execute(ctx, runID, start, req, candidates)
}

// Preview matches the requirement against caller-supplied candidates. It never
// touches the store or the insight generator.
func (s *Service) Preview(ctx context.Context, req Request, candidates []*store.CandidateProfile) (*Result, error) {
	runID := uuid.New().String()
	start := time.Now()

	if s.cfg.MaxCandidates > 0 && len(candidates) > s.cfg.MaxCandidates {
		err := fmt.Errorf("%d candidates exceeds the limit of %d", len(candidates), s.cfg.MaxCandidates)
		s.fail(runID, req.Scope, start, "invalid", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	req.IncludeInsights = false
	return s.execute(ctx, runID, start, req, candidates)
}

func (s *Service) execute(ctx context.Context, runID string, start time.Time, req Request, candidates []*store.CandidateProfile) (*Result, error) {
	outcome, err := s.engine.Run(ctx, req.Requirement, candidates, scoring.Options{
		TopN:          s.topN(req.TopN),
		MinScore:      req.MinScore,
		IncludeCohort: req.IncludeCohort,
	})
	if err != nil {
		s.fail(runID, req.Scope, start, "cancelled", err)
		return nil, err
	}

	res := &Result{
		RunID:            runID,
		RoleTitle:        outcome.Requirement.RoleTitle,
		Requirement:      outcome.Requirement,
		IdealVector:      outcome.Ideal,
		Scope:            req.Scope,
		Evaluated:        outcome.Evaluated,
		Scored:           outcome.Scored,
		Matched:          outcome.Matched,
		Cohort:           outcome.Cohort,
		AlgorithmVersion: AlgorithmVersion,
	}

	if req.IncludeInsights && s.annotator != nil && len(res.Matched) > 0 {
		if err := s.annotator.Annotate(ctx, outcome.Requirement, res.Matched); err != nil {
			res.InsightsFallback = true
			if s.metrics != nil {
				s.metrics.InsightFailures.Inc()
			}
		}
	}

	elapsed := time.Since(start)
	res.ExecutionTimeMs = elapsed.Milliseconds()
	s.record(req.Scope, "success", elapsed, outcome)
	s.publishCompleted(res, outcome)

	s.logger.Info("match run complete",
		"run_id", runID,
		"scope", req.Scope.Label(),
		"evaluated", res.Evaluated,
		"scored", res.Scored,
		"matched", len(res.Matched),
		"duration_ms", res.ExecutionTimeMs,
	)
	return res, nil
}

func (s *Service) topN(n int) int {
	if n <= 0 {
		return s.cfg.DefaultTopN
	}
	if n > s.cfg.MaxTopN {
		return s.cfg.MaxTopN
	}
	return n
}

func (s *Service) record(scope store.Scope, outcome string, elapsed time.Duration, o *scoring.Outcome) {
	if s.metrics == nil {
		return
	}
	s.metrics.Runs.WithLabelValues(scope.Label(), outcome).Inc()
	s.metrics.Duration.Observe(elapsed.Seconds())
	if o == nil {
		return
	}
	s.metrics.CandidatesScored.Add(float64(o.Scored))
	for tier, n := range o.TierCounts {
		s.metrics.CandidatesByTier.WithLabelValues(string(tier)).Add(float64(n))
	}
}

func (s *Service) fail(runID string, scope store.Scope, start time.Time, outcome string, err error) {
	s.record(scope, outcome, time.Since(start), nil)
	s.logger.Warn("match run failed", "run_id", runID, "scope", scope.Label(), "error", err)
	if s.events == nil {
		return
	}
	ev := hermes.MatchFailedEvent{RunID: runID, Scope: scope.Label(), Error: err.Error(), Timestamp: time.Now().UTC()}
	if perr := s.events.Publish(hermes.SubjectMatchFailed(runID), ev); perr != nil {
		s.logger.Warn("failed to publish match event", "run_id", runID, "error", perr)
	}
}

func (s *Service) publishCompleted(res *Result, o *scoring.Outcome) {
	if s.events == nil {
		return
	}
	ev := hermes.MatchCompletedEvent{
		RunID:            res.RunID,
		Scope:            res.Scope.Label(),
		CorporateID:      res.Scope.CorporateID,
		GroupID:          res.Scope.GroupID,
		RoleTitle:        res.RoleTitle,
		Evaluated:        res.Evaluated,
		Scored:           res.Scored,
		Matched:          len(res.Matched),
		TierDistribution: map[string]int{},
		AlgorithmVersion: res.AlgorithmVersion,
		DurationMs:       res.ExecutionTimeMs,
		Timestamp:        time.Now().UTC(),
	}
	for tier, n := range o.TierCounts {
		ev.TierDistribution[string(tier)] = n
	}
	if len(res.Matched) > 0 && res.Matched[0].Candidate != nil {
		id := res.Matched[0].Candidate.RegistrationID
		ev.TopCandidateID = &id
		ev.TopScore = res.Matched[0].CompositeScore
	}
	if err := s.events.Publish(hermes.SubjectMatchCompleted(res.RunID), ev); err != nil {
		s.logger.Warn("failed to publish match event", "run_id", res.RunID, "error", err)
	}
}
