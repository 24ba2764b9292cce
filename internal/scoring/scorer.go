package scoring

import (
	"log/slog"
	"math"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

type Tier string

const (
	TierStrongFit   Tier = "STRONG_FIT"
	TierGoodFit     Tier = "GOOD_FIT"
	TierModerateFit Tier = "MODERATE_FIT"
	TierDeveloping  Tier = "DEVELOPING"
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierStrongFit, TierGoodFit, TierModerateFit, TierDeveloping}

// ClassifyTier bands a composite score.
func ClassifyTier(composite float64) Tier {
	switch {
	case composite >= 80:
		return TierStrongFit
	case composite >= 65:
		return TierGoodFit
	case composite >= 50:
		return TierModerateFit
	}
	return TierDeveloping
}

// Breakdown holds the sub-scores behind a composite. ConfidenceMultiplier is
// data completeness; it is unrelated to ScoredCandidate.ConfidenceLevel.
type Breakdown struct {
	BehavioralAlignment  float64 `json:"behavioral_alignment"`
	AgileReadiness       float64 `json:"agile_readiness"`
	TraitFit             float64 `json:"trait_fit"`
	Reliability          float64 `json:"reliability"`
	ConfidenceMultiplier float64 `json:"confidence_multiplier"`
	IndustryBonus        float64 `json:"industry_bonus"`
	SeniorityPenalty     float64 `json:"seniority_penalty"`
}

// ScoredCandidate is one candidate's result within a single run.
//
// ConfidenceLevel is the cohort percentile once Rank has run. Before ranking
// it holds the confidence multiplier as a percentage.
type ScoredCandidate struct {
	Candidate         *store.CandidateProfile `json:"candidate"`
	CompositeScore    float64                 `json:"composite_score"`
	Tier              Tier                    `json:"tier"`
	ConfidenceLevel   int                     `json:"confidence_level"`
	Breakdown         Breakdown               `json:"breakdown"`
	Factors           []FactorResult          `json:"factors"`
	Vector            personality.Vector      `json:"vector"`
	MatchReasons      []string                `json:"match_reasons"`
	DevelopmentAreas  []string                `json:"development_areas"`
	TeamFitScore      float64                 `json:"team_fit_score"`
	SuccessPrediction float64                 `json:"success_prediction"`
	RetentionRisk     RetentionRisk           `json:"retention_risk"`
	Insights          []string                `json:"insights,omitempty"`
}

// Target is a normalized requirement with its ideal vector, computed once per
// run and shared read-only by every candidate.
type Target struct {
	Requirement JobRequirement
	Ideal       personality.Vector
}

// NewTarget normalizes req and builds its ideal vector.
func NewTarget(req JobRequirement) *Target {
	n := req.Normalize()
	return &Target{Requirement: n, Ideal: BuildIdealVector(n)}
}

// Scorer computes the composite fit of one candidate against a Target.
type Scorer struct {
	weights   WeightSet
	catalogue *personality.Catalogue
	logger    *slog.Logger
}

// NewScorer creates a Scorer. A nil catalogue uses the embedded default.
func NewScorer(weights WeightSet, catalogue *personality.Catalogue, logger *slog.Logger) *Scorer {
	if catalogue == nil {
		catalogue = personality.Default()
	}
	return &Scorer{
		weights:   weights,
		catalogue: catalogue,
		logger:    logger,
	}
}

// Weights returns the composite weights.
func (s *Scorer) Weights() WeightSet { return s.weights }

// ScoreCandidate computes the full result for one candidate. It never fails:
// missing fields degrade to their documented defaults.
func (s *Scorer) ScoreCandidate(t *Target, c *store.CandidateProfile) ScoredCandidate {
	req := t.Requirement
	vector := s.catalogue.Lookup(c.PersonalityStyle)
	agileScore := c.AgileScore()

	factors := []FactorResult{
		BehavioralAlignment(vector, t.Ideal),
		AgileReadiness(agileScore, req.Agile()),
		TraitFit(vector, req),
		Reliability(c),
	}

	var raw float64
	for i, w := range s.weights.asList() {
		factors[i].Weight = w
		factors[i].Weighted = factors[i].Score * w
		raw += factors[i].Weighted
	}

	b := Breakdown{
		BehavioralAlignment:  factors[0].Score,
		AgileReadiness:       factors[1].Score,
		TraitFit:             factors[2].Score,
		Reliability:          factors[3].Score,
		ConfidenceMultiplier: ConfidenceMultiplier(c),
		IndustryBonus:        IndustryBonus(vector, req.IndustryContext),
		SeniorityPenalty:     SeniorityPenalty(vector, req.SeniorityLevel),
	}

	composite := clamp(raw*b.ConfidenceMultiplier, 0, 100)
	composite = clamp(composite+b.IndustryBonus, 0, 100)
	composite = clamp(composite-b.SeniorityPenalty, 0, 100)
	composite = round1(composite)

	result := ScoredCandidate{
		Candidate:         c,
		CompositeScore:    composite,
		Tier:              ClassifyTier(composite),
		ConfidenceLevel:   int(math.Round(b.ConfidenceMultiplier * 100)),
		Breakdown:         b,
		Factors:           factors,
		Vector:            vector,
		MatchReasons:      MatchReasons(vector, req, b),
		DevelopmentAreas:  DevelopmentAreas(vector, req),
		TeamFitScore:      round1(TeamFit(vector, req.TeamDynamic)),
		SuccessPrediction: SuccessPrediction(vector, req, b),
		RetentionRisk:     AssessRetentionRisk(vector, req, agileScore),
	}

	s.logger.Debug("candidate scored",
		"registration_id", c.RegistrationID,
		"composite", composite,
		"tier", result.Tier,
	)
	return result
}
