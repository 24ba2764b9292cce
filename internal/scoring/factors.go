package scoring

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

// FactorResult captures one sub-score's contribution to the composite.
type FactorResult struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Weight    float64 `json:"weight"`
	Weighted  float64 `json:"weighted"`
	Available bool    `json:"available"`
	Reason    string  `json:"reason"`
}

const (
	FactorBehavioral  = "behavioral_alignment"
	FactorAgile       = "agile_readiness"
	FactorTraitFit    = "trait_fit"
	FactorReliability = "reliability"
)

// --- Sub-score calculators ---

// BehavioralAlignment maps the cosine similarity of the candidate and ideal
// vectors from [-1, 1] onto [0, 100].
func BehavioralAlignment(candidate, ideal personality.Vector) FactorResult {
	sim := personality.CosineSimilarity(candidate.Values(), ideal.Values())
	return FactorResult{
		Name:      FactorBehavioral,
		Score:     clamp((sim+1)*50, 0, 100),
		Available: true,
		Reason:    fmt.Sprintf("cosine similarity %.3f", sim),
	}
}

// AgileReadiness scores an agile-index reading against the role thresholds.
// At or above ideal it earns 90 plus a bonus of at most 10; between min and
// ideal it interpolates 50..90; below min it decays through a logistic curve.
func AgileReadiness(score float64, a AgileRequirement) FactorResult {
	r := FactorResult{Name: FactorAgile, Available: true}

	switch {
	case score >= a.IdealScore:
		bonus := math.Min(10, (score-a.IdealScore)/math.Max(1, a.IdealScore)*20)
		r.Score = math.Min(100, 90+bonus)
		r.Reason = fmt.Sprintf("%.1f meets ideal %.1f", score, a.IdealScore)
	case score >= a.MinScore:
		r.Score = 50 + 40*(score-a.MinScore)/math.Max(1, a.IdealScore-a.MinScore)
		r.Reason = fmt.Sprintf("%.1f between min %.1f and ideal %.1f", score, a.MinScore, a.IdealScore)
	default:
		ratio := score / math.Max(1, a.MinScore)
		r.Score = math.Max(0, 50/(1+math.Exp(-8*(ratio-0.5))))
		r.Reason = fmt.Sprintf("%.1f below min %.1f", score, a.MinScore)
	}
	r.Score = clamp(r.Score, 0, 100)
	return r
}

// patternRule scores a behavioral pattern whose description matches re.
type patternRule struct {
	family string
	re     *regexp.Regexp
	score  func(v personality.Vector) float64
}

// patternRules are evaluated in order and a later match replaces an earlier
// one. Matching is by word prefix so stems like "analy" catch "analytical";
// "care" is a whole word so "career" and "careful" stay neutral.
var patternRules = []patternRule{
	{"decisive", regexp.MustCompile(`\b(decision|decisive|authority|asserti)`), func(v personality.Vector) float64 {
		return v.Dominance*0.7 + v.Independence*0.3
	}},
	{"teamwork", regexp.MustCompile(`\b(team|collaborat|cooperat)`), func(v personality.Vector) float64 {
		return v.Teamwork*0.6 + v.Communication*0.4
	}},
	{"creative", regexp.MustCompile(`\b(creat|innovat|ideate)`), func(v personality.Vector) float64 {
		return v.Creativity*0.7 + v.Adaptability*0.3
	}},
	{"analytical", regexp.MustCompile(`\b(analy|data|logic|system)`), func(v personality.Vector) float64 {
		return v.Analytical*0.7 + v.Compliance*0.3
	}},
	{"leadership", regexp.MustCompile(`\b(lead|inspir|motiv|vision)`), func(v personality.Vector) float64 {
		return v.Leadership*0.6 + v.Influence*0.4
	}},
	{"stability", regexp.MustCompile(`\b(stable|consistent|reliable|steady)`), func(v personality.Vector) float64 {
		return v.Steadiness*0.7 + v.Teamwork*0.3
	}},
	{"communication", regexp.MustCompile(`\b(communicat|present|negotiat|persua)`), func(v personality.Vector) float64 {
		return v.Communication*0.6 + v.Influence*0.4
	}},
	{"empathy", regexp.MustCompile(`\b(empath|support|cares?\b|cared\b|caring|patient)`), func(v personality.Vector) float64 {
		return v.Empathy*0.6 + v.Steadiness*0.4
	}},
	{"adaptability", regexp.MustCompile(`\b(adapt|flexib|change|agile)`), func(v personality.Vector) float64 {
		return v.Adaptability*0.7 + v.Creativity*0.3
	}},
}

// PatternScore scores one behavioral pattern and reports which keyword family
// decided it ("" when none matched and the neutral 50 applies).
func PatternScore(v personality.Vector, pattern string) (float64, string) {
	text := strings.ToLower(pattern)
	score, family := personality.NeutralValue, ""
	for _, rule := range patternRules {
		if rule.re.MatchString(text) {
			score, family = rule.score(v), rule.family
		}
	}
	return clamp(score, 0, 100), family
}

// TraitFit is the weighted mean of behavioral pattern scores, or a role-flag
// blend when the requirement has no weighted patterns.
func TraitFit(v personality.Vector, req JobRequirement) FactorResult {
	var total, weight float64
	for _, p := range req.BehavioralPatterns {
		s, _ := PatternScore(v, p.Pattern)
		total += s * p.Weight
		weight += p.Weight
	}
	if weight == 0 {
		return fallbackTraitFit(v, req)
	}
	return FactorResult{
		Name:      FactorTraitFit,
		Score:     clamp(round1(total/weight), 0, 100),
		Available: true,
		Reason:    fmt.Sprintf("%d behavioral patterns", len(req.BehavioralPatterns)),
	}
}

func fallbackTraitFit(v personality.Vector, req JobRequirement) FactorResult {
	score, factors := 50.0, 1.0
	if req.LeadershipRequired {
		score += v.Leadership * 0.5
		factors++
	}
	if req.CreativityRequired {
		score += v.Creativity * 0.5
		factors++
	}
	if req.AnalyticalRequired {
		score += v.Analytical * 0.5
		factors++
	}
	if req.CustomerFacing {
		score += (v.Communication + v.Empathy) * 0.25
		factors++
	}
	if req.SeniorityLevel == SeniorityLead || req.SeniorityLevel == SeniorityExecutive {
		score += v.Leadership * 0.3
		factors++
	}
	return FactorResult{
		Name:      FactorTraitFit,
		Score:     clamp(score/factors, 0, 100),
		Available: true,
		Reason:    "no behavioral patterns, role-flag blend",
	}
}

var sincerityBonus = map[store.SincerityClass]float64{
	store.SincerityHigh:     30,
	store.SincerityModerate: 20,
	store.SincerityAdequate: 15,
	store.SincerityLow:      5,
	store.SincerityVeryLow:  0,
}

// Reliability combines sincerity, attempt history and score consistency.
func Reliability(c *store.CandidateProfile) FactorResult {
	score := 50.0
	var reason string

	switch {
	case c.SincerityClass != "":
		bonus, ok := sincerityBonus[store.SincerityClass(strings.ToUpper(string(c.SincerityClass)))]
		if !ok {
			bonus = 10
		}
		score += bonus
		reason = "sincerity class " + string(c.SincerityClass)
	case c.SincerityIndex != nil:
		score += math.Min(30, *c.SincerityIndex/100*30)
		reason = fmt.Sprintf("sincerity index %.1f", *c.SincerityIndex)
	default:
		score += 15
		reason = "sincerity unknown"
	}

	switch {
	case c.AttemptCount >= 3:
		score += 15
	case c.AttemptCount >= 2:
		score += 10
	case c.AttemptCount >= 1:
		score += 5
	}

	if c.BestScore != nil && c.TotalScore != nil {
		best, total := *c.BestScore, *c.TotalScore
		score += math.Round(5 * (1 - math.Abs(best-total)/math.Max(1, best)))
	}

	return FactorResult{
		Name:      FactorReliability,
		Score:     clamp(score, 0, 100),
		Available: c.SincerityClass != "" || c.SincerityIndex != nil,
		Reason:    fmt.Sprintf("%s, %d attempts", reason, c.AttemptCount),
	}
}

// ConfidenceMultiplier reflects how complete the candidate's data is. It is
// 0.6 with nothing recorded and reaches 1.0 with every signal present.
func ConfidenceMultiplier(c *store.CandidateProfile) float64 {
	m := 0.6
	if strings.TrimSpace(c.PersonalityStyle) != "" {
		m += 0.2
	}
	if c.TotalScore != nil {
		m += 0.1
	}
	if c.SincerityIndex != nil || c.SincerityClass != "" {
		m += 0.05
	}
	if !IsPlaceholderName(c.FullName) {
		m += 0.05
	}
	return math.Min(1.0, math.Round(m*100)/100)
}

// IsPlaceholderName reports whether a name carries no identity.
func IsPlaceholderName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	return n == "" || n == "unknown" || n == "n/a"
}

func clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
