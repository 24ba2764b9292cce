package scoring

import (
	"math"
	"sort"
)

// Rank sorts scored candidates by composite score, best first, keeping input
// order among ties, and assigns each its cohort percentile. It sorts in place.
func Rank(scored []ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompositeScore > scored[j].CompositeScore
	})
	n := float64(len(scored))
	for i := range scored {
		scored[i].ConfidenceLevel = int(math.Round((n - float64(i)) / n * 100))
	}
}

// FilterMinScore keeps candidates whose composite reaches min, preserving order.
func FilterMinScore(scored []ScoredCandidate, min float64) []ScoredCandidate {
	if min <= 0 {
		return scored
	}
	out := make([]ScoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.CompositeScore >= min {
			out = append(out, sc)
		}
	}
	return out
}

// TopN returns at most n leading candidates. n <= 0 returns none.
func TopN(ranked []ScoredCandidate, n int) []ScoredCandidate {
	if n <= 0 {
		return []ScoredCandidate{}
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]ScoredCandidate, n)
	copy(out, ranked[:n])
	return out
}
