package matching

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
)

// Metrics are the match-run collectors.
type Metrics struct {
	Runs             *prometheus.CounterVec
	Duration         prometheus.Histogram
	CandidatesScored prometheus.Counter
	CandidatesByTier *prometheus.CounterVec
	InsightFailures  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fitment_match_runs_total",
			Help: "Match runs by scope and outcome.",
		}, []string{"scope", "outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fitment_match_duration_seconds",
			Help:    "Wall time of a match run.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		CandidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fitment_candidates_scored_total",
			Help: "Candidates scored across all runs.",
		}),
		CandidatesByTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fitment_candidates_by_tier_total",
			Help: "Scored candidates by fit tier.",
		}, []string{"tier"}),
		InsightFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fitment_insight_failures_total",
			Help: "Insight generations that fell back to canned text.",
		}),
	}
	reg.MustRegister(m.Runs, m.Duration, m.CandidatesScored, m.CandidatesByTier, m.InsightFailures)
	for _, t := range scoring.Tiers {
		m.CandidatesByTier.WithLabelValues(string(t))
	}
	return m
}
