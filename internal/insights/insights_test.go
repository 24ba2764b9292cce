package insights

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ranked(n int) []scoring.ScoredCandidate {
	out := make([]scoring.ScoredCandidate, n)
	for i := range out {
		out[i] = scoring.ScoredCandidate{
			Candidate:      &store.CandidateProfile{RegistrationID: int64(i + 1), FullName: "Person", PersonalityStyle: "Creative Thinker"},
			CompositeScore: 82,
			Tier:           scoring.TierStrongFit,
			MatchReasons:   []string{"Good behavioral alignment with role needs"},
		}
	}
	return out
}

func requirement() scoring.JobRequirement {
	return scoring.JobRequirement{RoleTitle: "Product Designer", SoftSkills: []string{"empathy", "storytelling"}}.Normalize()
}

func TestAnnotateInsertsByRank(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" +
		`[{"rank": 2, "insight": "second", "recommendation": "do b"},` +
		`{"rank": 1, "insight": "first", "recommendation": "do a"},` +
		`{"rank": 9, "insight": "ignored", "recommendation": "x"}]` + "\n```"}
	a := NewAnnotator(gen, 5, time.Second, discardLogger())

	cands := ranked(3)
	require.NoError(t, a.Annotate(context.Background(), requirement(), cands))

	assert.Equal(t, []string{"first", "do a"}, cands[0].Insights)
	assert.Equal(t, []string{"second", "do b"}, cands[1].Insights)
	assert.Nil(t, cands[2].Insights)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "ROLE: Product Designer (mid level)")
	assert.Contains(t, gen.prompts[0], "Key Requirements: empathy, storytelling")
	assert.Contains(t, gen.prompts[0], "3. Person | Style: Creative Thinker")
}

func TestAnnotateOnlyTopN(t *testing.T) {
	gen := &stubGenerator{response: `[]`}
	a := NewAnnotator(gen, 2, 0, discardLogger())
	require.NoError(t, a.Annotate(context.Background(), requirement(), ranked(6)))
	assert.NotContains(t, gen.prompts[0], "3. Person")
}

func TestAnnotateFallbackOnError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	a := NewAnnotator(gen, 5, 0, discardLogger())

	cands := ranked(2)
	cands[1].Tier = scoring.TierModerateFit
	cands[1].Candidate.PersonalityStyle = ""

	err := a.Annotate(context.Background(), requirement(), cands)
	require.Error(t, err)
	assert.Equal(t, []string{"Creative Thinker shows excellent alignment with the Product Designer role."}, cands[0].Insights)
	assert.Equal(t, []string{"This candidate shows moderate alignment with the Product Designer role."}, cands[1].Insights)
}

func TestAnnotateFallbackOnBadJSON(t *testing.T) {
	a := NewAnnotator(&stubGenerator{response: "Sure! Here are insights."}, 5, 0, discardLogger())
	cands := ranked(1)
	require.Error(t, a.Annotate(context.Background(), requirement(), cands))
	require.Len(t, cands[0].Insights, 1)
	assert.True(t, strings.HasSuffix(cands[0].Insights[0], "Product Designer role."))
}

func TestAnnotateNilGeneratorAndEmpty(t *testing.T) {
	a := NewAnnotator(nil, 0, 0, discardLogger())
	assert.NoError(t, a.Annotate(context.Background(), requirement(), nil))

	cands := ranked(1)
	assert.Error(t, a.Annotate(context.Background(), requirement(), cands))
	assert.Len(t, cands[0].Insights, 1)
}

func TestParseInsights(t *testing.T) {
	items, err := ParseInsights("```\n[{\"rank\":1,\"insight\":\"a\",\"recommendation\":\"b\"}]\n```")
	require.NoError(t, err)
	assert.Equal(t, []Insight{{Rank: 1, Insight: "a", Recommendation: "b"}}, items)

	_, err = ParseInsights("{}")
	assert.Error(t, err)
}

func TestFallbackGoodFit(t *testing.T) {
	sc := scoring.ScoredCandidate{Tier: scoring.TierGoodFit}
	assert.Equal(t, "This candidate shows good alignment with the Analyst role.", Fallback(sc, "Analyst"))
}
