package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

type RetentionRisk string

const (
	RetentionLow    RetentionRisk = "LOW"
	RetentionMedium RetentionRisk = "MEDIUM"
	RetentionHigh   RetentionRisk = "HIGH"
)

// TeamFit scores how well the profile suits the role's team dynamic.
func TeamFit(v personality.Vector, team TeamDynamic) float64 {
	score := personality.NeutralValue
	switch team {
	case TeamSolo:
		score = v.Independence*0.6 + v.Analytical*0.3 + (100-v.Teamwork)*0.1
	case TeamSmall:
		score = v.Teamwork*0.4 + v.Communication*0.3 + v.Adaptability*0.3
	case TeamLarge:
		score = v.Teamwork*0.5 + v.Empathy*0.3 + v.Steadiness*0.2
	case TeamCrossFunctional:
		score = v.Communication*0.4 + v.Adaptability*0.3 + v.Influence*0.3
	}
	return clamp(score, 0, 100)
}

// SuccessPrediction blends the sub-scores with bonuses for met critical traits
// and penalties for missing role-critical dimensions. Rounded to an integer.
func SuccessPrediction(v personality.Vector, req JobRequirement, b Breakdown) float64 {
	p := b.BehavioralAlignment*0.3 + b.AgileReadiness*0.25 + b.TraitFit*0.25 + b.Reliability*0.2

	for _, t := range req.RequiredTraits {
		if t.Importance != ImportanceCritical {
			continue
		}
		value := personality.NeutralValue
		if dim, ok := traitDimension(t.TraitName); ok {
			value = v.Get(dim)
		}
		if value >= criticalThreshold(t.MinLevel) {
			p += 5
		}
	}

	if req.LeadershipRequired && v.Leadership < 60 {
		p -= 10
	}
	if req.AnalyticalRequired && v.Analytical < 60 {
		p -= 10
	}
	if req.CreativityRequired && v.Creativity < 60 {
		p -= 8
	}
	if v.Variance() < 400 {
		p += 3
	}
	return clamp(math.Round(p), 0, 100)
}

// AssessRetentionRisk sums risk points: five or more is HIGH, two or more MEDIUM.
func AssessRetentionRisk(v personality.Vector, req JobRequirement, agileScore float64) RetentionRisk {
	points := 0
	if req.SeniorityLevel == SeniorityEntry && v.Leadership > 80 && v.Dominance > 80 {
		points += 3
	}
	if req.CreativityRequired && v.Creativity < 50 && v.Adaptability < 50 {
		points += 2
	}
	if req.TeamDynamic == TeamLarge && v.Teamwork < 50 && v.Independence > 80 {
		points += 2
	}
	if req.Agile().AdaptabilityWeight > 0.6 && agileScore < 50 {
		points += 2
	}
	if req.TeamDynamic != TeamSolo && v.Steadiness < 40 {
		points++
	}

	switch {
	case points >= 5:
		return RetentionHigh
	case points >= 2:
		return RetentionMedium
	}
	return RetentionLow
}
