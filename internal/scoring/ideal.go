package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
)

// BuildIdealVector projects a requirement onto the behavioral vector space.
//
// Trait requirements assign directly (the last trait of a name wins). Role
// flags and the team dynamic then only raise dimensions to a floor.
func BuildIdealVector(req JobRequirement) personality.Vector {
	ideal := personality.Neutral()

	for _, t := range req.RequiredTraits {
		dim, ok := traitDimension(t.TraitName)
		if !ok {
			continue
		}
		scaled := math.Min(100, math.Round(levelValue(t.MinLevel)*importanceMultiplier(t.Importance)))
		ideal.Set(dim, scaled)
		switch dim {
		case personality.Dominance:
			ideal.Independence = math.Round(scaled * 0.85)
		case personality.Influence:
			ideal.Communication = math.Round(scaled * 0.9)
			ideal.Empathy = math.Round(scaled * 0.7)
		case personality.Steadiness:
			ideal.Teamwork = math.Round(scaled * 0.85)
		case personality.Compliance:
			ideal.Analytical = math.Round(scaled * 0.9)
		}
	}

	if req.LeadershipRequired {
		ideal.Raise(personality.Leadership, 80)
		ideal.Raise(personality.Dominance, 75)
	}
	if req.CreativityRequired {
		ideal.Raise(personality.Creativity, 80)
		ideal.Raise(personality.Adaptability, 70)
	}
	if req.AnalyticalRequired {
		ideal.Raise(personality.Analytical, 85)
		ideal.Raise(personality.Compliance, 75)
	}
	if req.CustomerFacing {
		ideal.Raise(personality.Communication, 80)
		ideal.Raise(personality.Empathy, 75)
		ideal.Raise(personality.Influence, 70)
	}

	switch req.TeamDynamic {
	case TeamSolo:
		ideal.Raise(personality.Independence, 85)
	case TeamLarge, TeamCrossFunctional:
		ideal.Raise(personality.Teamwork, 80)
		ideal.Raise(personality.Communication, 75)
	}

	return ideal.Clamped()
}
