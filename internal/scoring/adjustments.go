package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

const (
	maxIndustryBonus    = 5.0
	maxSeniorityPenalty = 8.0
)

// industryBonus awards bonus when a candidate meets the condition.
type industryBonus struct {
	bonus float64
	met   func(v personality.Vector) bool
}

// industryFamily is one row of the industry alignment table.
type industryFamily struct {
	name    string
	re      *regexp.Regexp
	bonuses []industryBonus
}

var industryFamilies = []industryFamily{
	{
		name: "technology",
		re:   regexp.MustCompile(`\b(tech\w*|it|software|data|engineering|ai|saas)\b`),
		bonuses: []industryBonus{
			{3, func(v personality.Vector) bool { return v.Analytical >= 75 && v.Adaptability >= 65 }},
			{2, func(v personality.Vector) bool { return v.Creativity >= 70 }},
		},
	},
	{
		name: "finance",
		re:   regexp.MustCompile(`\b(financ\w*|bank\w*|accounting|audit\w*|insurance)\b`),
		bonuses: []industryBonus{
			{4, func(v personality.Vector) bool { return v.Compliance >= 80 && v.Analytical >= 75 }},
			{2, func(v personality.Vector) bool { return v.Steadiness >= 70 }},
		},
	},
	{
		name: "sales",
		re:   regexp.MustCompile(`\b(sales|marketing|business development|advertising)\b`),
		bonuses: []industryBonus{
			{4, func(v personality.Vector) bool { return v.Influence >= 80 && v.Communication >= 75 }},
			{2, func(v personality.Vector) bool { return v.Adaptability >= 70 }},
		},
	},
	{
		name: "healthcare",
		re:   regexp.MustCompile(`\b(healthcare|medical|hospital\w*|pharma\w*|care)\b`),
		bonuses: []industryBonus{
			{4, func(v personality.Vector) bool { return v.Empathy >= 75 && v.Steadiness >= 70 }},
			{2, func(v personality.Vector) bool { return v.Compliance >= 70 }},
		},
	},
	{
		name: "consulting",
		re:   regexp.MustCompile(`\b(consult\w*|advisory|strategy)\b`),
		bonuses: []industryBonus{
			{4, func(v personality.Vector) bool { return v.Analytical >= 75 && v.Communication >= 75 }},
			{2, func(v personality.Vector) bool { return v.Leadership >= 65 }},
		},
	},
	{
		name: "startup",
		re:   regexp.MustCompile(`\b(startup\w*|entrepreneur\w*|venture\w*)\b`),
		bonuses: []industryBonus{
			{4, func(v personality.Vector) bool { return v.Adaptability >= 80 && v.Independence >= 75 }},
			{2, func(v personality.Vector) bool { return v.Creativity >= 70 }},
		},
	},
}

// IndustryBonus sums the bonuses of every matching industry family, capped at 5.
func IndustryBonus(v personality.Vector, industry string) float64 {
	text := strings.ToLower(industry)
	var bonus float64
	for _, f := range industryFamilies {
		if !f.re.MatchString(text) {
			continue
		}
		for _, b := range f.bonuses {
			if b.met(v) {
				bonus += b.bonus
			}
		}
	}
	return math.Min(maxIndustryBonus, bonus)
}

// SeniorityPenalty is subtracted when the candidate's profile is out of step
// with the role's seniority. Capped at 8.
func SeniorityPenalty(v personality.Vector, level Seniority) float64 {
	var penalty float64
	switch level {
	case SeniorityLead, SeniorityExecutive:
		if v.Leadership < 70 {
			penalty += 5
		}
		if v.Dominance < 65 {
			penalty += 3
		}
		if v.Analytical < 65 {
			penalty += 2
		}
	case SenioritySenior:
		if v.Leadership < 55 {
			penalty += 3
		}
		if v.Independence < 60 {
			penalty += 2
		}
	case SeniorityEntry:
		if v.Leadership > 85 && v.Dominance > 85 {
			penalty += 2
		}
	}
	return math.Min(maxSeniorityPenalty, penalty)
}
