// Package insights attaches short free-text commentary to the top-ranked
// candidates of a match run. Text comes from an external generator and is
// stored verbatim; when the generator fails a canned sentence is used instead.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
)

const DefaultTopN = 5

// ContentGenerator turns a prompt into text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Insight is one generated entry, correlated to a candidate by rank (1-based).
type Insight struct {
	Rank           int    `json:"rank"`
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation"`
}

// Annotator fills the insight slot of ranked candidates.
type Annotator struct {
	generator ContentGenerator
	topN      int
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAnnotator creates an Annotator. A nil generator always uses the fallback.
func NewAnnotator(generator ContentGenerator, topN int, timeout time.Duration, logger *slog.Logger) *Annotator {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Annotator{generator: generator, topN: topN, timeout: timeout, logger: logger}
}

// Annotate sets Insights on the leading candidates of ranked, which must be in
// rank order. On generator failure every summarized candidate receives the
// fallback sentence and the error is returned for reporting only.
func (a *Annotator) Annotate(ctx context.Context, req scoring.JobRequirement, ranked []scoring.ScoredCandidate) error {
	n := a.topN
	if n > len(ranked) {
		n = len(ranked)
	}
	if n == 0 {
		return nil
	}
	top := ranked[:n]

	err := a.generate(ctx, req, top)
	if err != nil {
		a.logger.Warn("insight generation failed, using fallback", "error", err)
		for i := range top {
			top[i].Insights = []string{Fallback(top[i], req.RoleTitle)}
		}
	}
	return err
}

func (a *Annotator) generate(ctx context.Context, req scoring.JobRequirement, top []scoring.ScoredCandidate) error {
	if a.generator == nil {
		return errors.New("no insight generator configured")
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.generator.GenerateContent(ctx, BuildPrompt(req, top))
	if err != nil {
		return err
	}
	items, err := ParseInsights(raw)
	if err != nil {
		return err
	}
	for _, it := range items {
		idx := it.Rank - 1
		if idx < 0 || idx >= len(top) {
			continue
		}
		top[idx].Insights = []string{it.Insight, it.Recommendation}
	}
	return nil
}

// BuildPrompt summarizes the role and the leading candidates for the generator.
func BuildPrompt(req scoring.JobRequirement, top []scoring.ScoredCandidate) string {
	var b strings.Builder
	b.WriteString("You are an expert talent analyst. Generate brief, specific insights for each candidate matched to this role.\n\n")
	fmt.Fprintf(&b, "ROLE: %s (%s level)\n", req.RoleTitle, req.SeniorityLevel)
	fmt.Fprintf(&b, "Key Requirements: %s\n", strings.Join(req.SoftSkills, ", "))
	fmt.Fprintf(&b, "Industry: %s\n\nCANDIDATES:\n", req.IndustryContext)

	for i, sc := range top {
		c := sc.Candidate
		fmt.Fprintf(&b, "%d. %s | Style: %s | Score: %.1f/100 | Tier: %s | Group: %s | Agile: %g/125\n",
			i+1,
			orDefault(c.FullName, "Unnamed"),
			orDefault(c.PersonalityStyle, "Unknown"),
			sc.CompositeScore,
			sc.Tier,
			orDefault(c.GroupName, "General"),
			c.AgileScore(),
		)
		fmt.Fprintf(&b, "   Strengths: %s\n", strings.Join(sc.MatchReasons, "; "))
		fmt.Fprintf(&b, "   Gaps: %s\n", strings.Join(sc.DevelopmentAreas, "; "))
	}

	b.WriteString("\nFor each candidate, provide a 1-2 sentence insight about their fit and one actionable recommendation.\n")
	b.WriteString("Output ONLY a JSON array:\n")
	b.WriteString(`[{"rank": 1, "insight": "...", "recommendation": "..."}, ...]`)
	return b.String()
}

// ParseInsights decodes the generator's JSON array, tolerating a markdown
// code fence around it.
func ParseInsights(raw string) ([]Insight, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(strings.TrimPrefix(s, "json"), "JSON")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	var items []Insight
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	return items, nil
}

// Fallback is the canned sentence used when no generated insight is available.
func Fallback(sc scoring.ScoredCandidate, roleTitle string) string {
	quality := "moderate"
	switch sc.Tier {
	case scoring.TierStrongFit:
		quality = "excellent"
	case scoring.TierGoodFit:
		quality = "good"
	}
	subject := "This candidate"
	if sc.Candidate != nil && strings.TrimSpace(sc.Candidate.PersonalityStyle) != "" {
		subject = sc.Candidate.PersonalityStyle
	}
	return fmt.Sprintf("%s shows %s alignment with the %s role.", subject, quality, roleTitle)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
