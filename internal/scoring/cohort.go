package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const topStyleCount = 5

// StyleSummary is one personality style's share of the cohort.
type StyleSummary struct {
	Style    string  `json:"style"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// GroupSummary is one organizational group's share of the cohort.
type GroupSummary struct {
	GroupName string  `json:"group_name"`
	Count     int     `json:"candidate_count"`
	AvgScore  float64 `json:"avg_score"`
}

// CohortAggregate summarizes every scored candidate of one run.
type CohortAggregate struct {
	Total            int            `json:"total_assessed_candidates"`
	AverageScore     float64        `json:"average_match_score"`
	TierDistribution map[Tier]int   `json:"tier_distribution"`
	StrongFitPct     float64        `json:"strong_fit_pct"`
	HighRetentionPct float64        `json:"high_retention_risk_pct"`
	TopStyles        []StyleSummary `json:"top_personality_styles"`
	Groups           []GroupSummary `json:"group_distribution"`
	Gaps             []string       `json:"talent_gaps"`
}

type accumulator struct {
	key   string
	count int
	total float64
}

// groupBy accumulates scores per key in first-seen order.
func groupBy(scored []ScoredCandidate, key func(sc ScoredCandidate) string) []accumulator {
	index := map[string]int{}
	var out []accumulator
	for _, sc := range scored {
		k := key(sc)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, accumulator{key: k})
		}
		out[i].count++
		out[i].total += sc.CompositeScore
	}
	sort.SliceStable(out, func(i, j int) bool {
		return round1(out[i].total/float64(out[i].count)) > round1(out[j].total/float64(out[j].count))
	})
	return out
}

func nameOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Aggregate computes cohort statistics and talent-gap findings. It must be
// given the full scored cohort, not a truncated top-N. An empty cohort yields
// zeroed statistics and no findings.
func Aggregate(scored []ScoredCandidate, req JobRequirement) CohortAggregate {
	agg := CohortAggregate{
		Total:            len(scored),
		TierDistribution: map[Tier]int{},
		TopStyles:        []StyleSummary{},
		Groups:           []GroupSummary{},
		Gaps:             []string{},
	}
	for _, t := range Tiers {
		agg.TierDistribution[t] = 0
	}
	if len(scored) == 0 {
		return agg
	}

	total := float64(len(scored))
	var sum float64
	var high, leaders, analysts int
	for _, sc := range scored {
		sum += sc.CompositeScore
		agg.TierDistribution[sc.Tier]++
		if sc.RetentionRisk == RetentionHigh {
			high++
		}
		if sc.Vector.Leadership >= 75 {
			leaders++
		}
		if sc.Vector.Analytical >= 75 {
			analysts++
		}
	}
	agg.AverageScore = round1(sum / total)
	agg.StrongFitPct = round1(float64(agg.TierDistribution[TierStrongFit]) / total * 100)
	agg.HighRetentionPct = round1(float64(high) / total * 100)

	styles := groupBy(scored, func(sc ScoredCandidate) string {
		return nameOr(sc.Candidate.PersonalityStyle, "Unknown")
	})
	for i, a := range styles {
		if i == topStyleCount {
			break
		}
		agg.TopStyles = append(agg.TopStyles, StyleSummary{
			Style: a.key, Count: a.count, AvgScore: round1(a.total / float64(a.count)),
		})
	}

	for _, a := range groupBy(scored, func(sc ScoredCandidate) string {
		return nameOr(sc.Candidate.GroupName, "Unassigned")
	}) {
		agg.Groups = append(agg.Groups, GroupSummary{
			GroupName: a.key, Count: a.count, AvgScore: round1(a.total / float64(a.count)),
		})
	}

	strongPct := float64(agg.TierDistribution[TierStrongFit]) / total * 100
	switch {
	case strongPct < 5:
		agg.Gaps = append(agg.Gaps, fmt.Sprintf(
			"Critical gap: Only %d%% of your workforce is a strong fit for this role — consider external hiring or targeted development programs",
			int(math.Round(strongPct))))
	case strongPct < 15:
		agg.Gaps = append(agg.Gaps, fmt.Sprintf(
			"Moderate gap: %d%% strong fit rate — some development investment recommended",
			int(math.Round(strongPct))))
	}
	if req.LeadershipRequired && leaders < 3 {
		agg.Gaps = append(agg.Gaps, fmt.Sprintf(
			"Leadership pipeline: Only %d candidates show strong natural leadership traits", leaders))
	}
	if req.AnalyticalRequired && analysts < 3 {
		agg.Gaps = append(agg.Gaps, fmt.Sprintf(
			"Analytical talent: Only %d candidates demonstrate strong analytical capabilities", analysts))
	}
	if float64(high) > total*0.3 {
		agg.Gaps = append(agg.Gaps, fmt.Sprintf(
			"Retention warning: %d candidates (%d%%) show high retention risk for this role",
			high, int(math.Round(float64(high)/total*100))))
	}
	return agg
}
