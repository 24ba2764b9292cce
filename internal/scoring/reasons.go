package scoring

import "github.com/MikeSquared-Agency/Fitment/internal/personality"

// FallbackReason is emitted when no match reason qualifies.
const FallbackReason = "Candidate has completed assessment with available data"

type band struct {
	min  float64
	text string
}

// banded emits the first text whose threshold the score reaches.
type banded struct {
	score func(b Breakdown) float64
	bands []band
}

var scoreReasons = []banded{
	{
		score: func(b Breakdown) float64 { return b.BehavioralAlignment },
		bands: []band{
			{80, "Excellent behavioral alignment with role requirements"},
			{65, "Good behavioral alignment with role needs"},
		},
	},
	{
		score: func(b Breakdown) float64 { return b.AgileReadiness },
		bands: []band{
			{85, "Outstanding agile readiness and adaptability"},
			{70, "Strong agile mindset for dynamic environments"},
		},
	},
	{
		score: func(b Breakdown) float64 { return b.TraitFit },
		bands: []band{
			{80, "Personality traits strongly match role demands"},
			{65, "Personality traits complement role requirements"},
		},
	},
}

// rule emits text when applies holds for the requirement and profile.
type rule struct {
	applies func(v personality.Vector, req JobRequirement) bool
	text    string
}

var traitReasons = []rule{
	{func(v personality.Vector, r JobRequirement) bool { return r.LeadershipRequired && v.Leadership >= 80 },
		"Natural leadership qualities align with role"},
	{func(v personality.Vector, r JobRequirement) bool { return r.CreativityRequired && v.Creativity >= 80 },
		"Strong creative thinking matches innovation needs"},
	{func(v personality.Vector, r JobRequirement) bool { return r.AnalyticalRequired && v.Analytical >= 80 },
		"Analytical mindset suits data-driven requirements"},
	{func(v personality.Vector, r JobRequirement) bool {
		return r.CustomerFacing && (v.Communication >= 80 || v.Empathy >= 80)
	}, "Strong communication/empathy for customer-facing role"},
}

var developmentRules = []rule{
	{func(v personality.Vector, r JobRequirement) bool { return r.LeadershipRequired && v.Leadership < 60 },
		"Leadership development needed — consider mentoring/coaching programs"},
	{func(v personality.Vector, r JobRequirement) bool { return r.AnalyticalRequired && v.Analytical < 60 },
		"Analytical skills enhancement — data literacy training recommended"},
	{func(v personality.Vector, r JobRequirement) bool { return r.CreativityRequired && v.Creativity < 60 },
		"Creative thinking — design thinking workshops could help"},
	{func(v personality.Vector, r JobRequirement) bool { return r.CustomerFacing && v.Communication < 60 },
		"Communication skills — presentation and interpersonal training"},
	{func(v personality.Vector, r JobRequirement) bool { return r.CustomerFacing && v.Empathy < 60 },
		"Emotional intelligence development for client interactions"},
	{func(v personality.Vector, r JobRequirement) bool {
		return r.Agile().AdaptabilityWeight > 0.6 && v.Adaptability < 60
	}, "Adaptability & change management — agile training recommended"},
	{func(v personality.Vector, r JobRequirement) bool {
		return (r.TeamDynamic == TeamLarge || r.TeamDynamic == TeamCrossFunctional) && v.Teamwork < 60
	}, "Team collaboration skills — cross-functional project experience needed"},
	{func(v personality.Vector, r JobRequirement) bool { return r.TeamDynamic == TeamSolo && v.Independence < 60 },
		"Independent working capability — self-management skills development"},
}

// MatchReasons lists the strengths that qualify, in table order. It never
// returns an empty list.
func MatchReasons(v personality.Vector, req JobRequirement, b Breakdown) []string {
	var out []string
	for _, sr := range scoreReasons {
		s := sr.score(b)
		for _, bd := range sr.bands {
			if s >= bd.min {
				out = append(out, bd.text)
				break
			}
		}
	}
	for _, r := range traitReasons {
		if r.applies(v, req) {
			out = append(out, r.text)
		}
	}
	if len(out) == 0 {
		out = append(out, FallbackReason)
	}
	return out
}

// DevelopmentAreas lists the gaps that qualify, in table order.
func DevelopmentAreas(v personality.Vector, req JobRequirement) []string {
	out := []string{}
	for _, r := range developmentRules {
		if r.applies(v, req) {
			out = append(out, r.text)
		}
	}
	return out
}
