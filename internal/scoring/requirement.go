package scoring

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

type Seniority string

const (
	SeniorityEntry     Seniority = "entry"
	SeniorityMid       Seniority = "mid"
	SenioritySenior    Seniority = "senior"
	SeniorityLead      Seniority = "lead"
	SeniorityExecutive Seniority = "executive"
)

type TeamDynamic string

const (
	TeamSolo            TeamDynamic = "solo"
	TeamSmall           TeamDynamic = "small_team"
	TeamLarge           TeamDynamic = "large_team"
	TeamCrossFunctional TeamDynamic = "cross_functional"
)

type Importance string

const (
	ImportanceCritical   Importance = "critical"
	ImportanceImportant  Importance = "important"
	ImportanceNiceToHave Importance = "nice_to_have"
)

type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
)

// TraitRequirement asks for a minimum level of one DISC trait.
type TraitRequirement struct {
	TraitName  string     `json:"trait_name" validate:"required"`
	Importance Importance `json:"importance" validate:"omitempty,oneof=critical important nice_to_have"`
	MinLevel   Level      `json:"min_level" validate:"omitempty,oneof=low moderate high very_high"`
}

// BehavioralPattern is a free-text behavior the role calls for. Weight is a
// mixing coefficient; pattern weights need not sum to one.
type BehavioralPattern struct {
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight" validate:"gte=0,lte=1"`
}

// AgileRequirement sets agile-index thresholds on the 0-125 scale.
type AgileRequirement struct {
	MinScore           float64 `json:"min_score" validate:"gte=0"`
	IdealScore         float64 `json:"ideal_score" validate:"gte=0"`
	AdaptabilityWeight float64 `json:"adaptability_weight" validate:"gte=0,lte=1"`
}

// JobRequirement is the structured form of a job description. Any field may be
// missing; Normalize fills the defaults.
type JobRequirement struct {
	RoleTitle          string              `json:"role_title"`
	SeniorityLevel     Seniority           `json:"seniority_level" validate:"omitempty,oneof=entry mid senior lead executive"`
	RequiredTraits     []TraitRequirement  `json:"required_traits" validate:"dive"`
	SoftSkills         []string            `json:"soft_skills,omitempty"`
	BehavioralPatterns []BehavioralPattern `json:"behavioral_patterns" validate:"dive"`
	AgileRequirement   *AgileRequirement   `json:"agile_requirement,omitempty"`
	IndustryContext    string              `json:"industry_context"`
	TeamDynamic        TeamDynamic         `json:"team_dynamic" validate:"omitempty,oneof=solo small_team large_team cross_functional"`
	LeadershipRequired bool                `json:"leadership_required"`
	CreativityRequired bool                `json:"creativity_required"`
	AnalyticalRequired bool                `json:"analytical_required"`
	CustomerFacing     bool                `json:"customer_facing"`
}

// DefaultAgileRequirement is used when the requirement carries none.
func DefaultAgileRequirement() AgileRequirement {
	return AgileRequirement{MinScore: 50, IdealScore: 80, AdaptabilityWeight: 0.5}
}

// UnmarshalJSON fills each absent or null field with its default, so a
// partial object such as {"ideal_score": 100} keeps min_score at 50.
func (a *AgileRequirement) UnmarshalJSON(data []byte) error {
	var raw struct {
		MinScore           *float64 `json:"min_score"`
		IdealScore         *float64 `json:"ideal_score"`
		AdaptabilityWeight *float64 `json:"adaptability_weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = DefaultAgileRequirement()
	if raw.MinScore != nil {
		a.MinScore = *raw.MinScore
	}
	if raw.IdealScore != nil {
		a.IdealScore = *raw.IdealScore
	}
	if raw.AdaptabilityWeight != nil {
		a.AdaptabilityWeight = *raw.AdaptabilityWeight
	}
	return nil
}

// Normalize returns a copy with every missing or out-of-range field replaced by
// its default. The receiver is not modified.
func (r JobRequirement) Normalize() JobRequirement {
	out := r
	out.RoleTitle = strings.TrimSpace(r.RoleTitle)
	if out.RoleTitle == "" {
		out.RoleTitle = "Unknown Role"
	}
	if strings.TrimSpace(out.IndustryContext) == "" {
		out.IndustryContext = "General"
	}

	switch Seniority(strings.ToLower(string(r.SeniorityLevel))) {
	case SeniorityEntry, SeniorityMid, SenioritySenior, SeniorityLead, SeniorityExecutive:
		out.SeniorityLevel = Seniority(strings.ToLower(string(r.SeniorityLevel)))
	default:
		out.SeniorityLevel = SeniorityMid
	}

	switch TeamDynamic(strings.ToLower(string(r.TeamDynamic))) {
	case TeamSolo, TeamSmall, TeamLarge, TeamCrossFunctional:
		out.TeamDynamic = TeamDynamic(strings.ToLower(string(r.TeamDynamic)))
	default:
		out.TeamDynamic = TeamSmall
	}

	agile := DefaultAgileRequirement()
	if r.AgileRequirement != nil {
		a := *r.AgileRequirement
		if a.MinScore >= 0 && !math.IsNaN(a.MinScore) {
			agile.MinScore = a.MinScore
		}
		if a.IdealScore > 0 && !math.IsNaN(a.IdealScore) {
			agile.IdealScore = a.IdealScore
		}
		agile.AdaptabilityWeight = clamp(a.AdaptabilityWeight, 0, 1)
	}
	out.AgileRequirement = &agile

	out.RequiredTraits = make([]TraitRequirement, 0, len(r.RequiredTraits))
	for _, t := range r.RequiredTraits {
		t.Importance = Importance(strings.ToLower(strings.TrimSpace(string(t.Importance))))
		t.MinLevel = Level(strings.ToLower(strings.TrimSpace(string(t.MinLevel))))
		out.RequiredTraits = append(out.RequiredTraits, t)
	}
	out.SoftSkills = append([]string(nil), r.SoftSkills...)
	out.BehavioralPatterns = make([]BehavioralPattern, 0, len(r.BehavioralPatterns))
	for _, p := range r.BehavioralPatterns {
		if math.IsNaN(p.Weight) {
			p.Weight = 0
		}
		p.Weight = clamp(p.Weight, 0, 1)
		out.BehavioralPatterns = append(out.BehavioralPatterns, p)
	}
	return out
}

// Agile returns the agile requirement, falling back to the default on an
// un-normalized requirement.
func (r JobRequirement) Agile() AgileRequirement {
	if r.AgileRequirement == nil {
		return DefaultAgileRequirement()
	}
	return *r.AgileRequirement
}

// traitDimension maps a DISC trait name onto its vector dimension. Names other
// than the four DISC traits are ignored.
func traitDimension(name string) (personality.Dimension, bool) {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "dominance"):
		return personality.Dominance, true
	case strings.Contains(n, "influence"):
		return personality.Influence, true
	case strings.Contains(n, "steadiness"):
		return personality.Steadiness, true
	case strings.Contains(n, "compliance"):
		return personality.Compliance, true
	}
	return "", false
}

func levelValue(l Level) float64 {
	switch l {
	case LevelVeryHigh:
		return 95
	case LevelHigh:
		return 80
	case LevelModerate:
		return 60
	}
	return 40
}

// criticalThreshold is the value a critical trait must reach to count as met.
func criticalThreshold(l Level) float64 {
	switch l {
	case LevelVeryHigh:
		return 85
	case LevelHigh:
		return 75
	}
	return 60
}

func importanceMultiplier(i Importance) float64 {
	switch i {
	case ImportanceCritical:
		return 1.2
	case ImportanceImportant:
		return 1.0
	}
	return 0.8
}
