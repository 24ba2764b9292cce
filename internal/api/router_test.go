package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Fitment/internal/insights"
	"github.com/MikeSquared-Agency/Fitment/internal/matching"
	"github.com/MikeSquared-Agency/Fitment/internal/personality"
	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListCandidates(ctx context.Context, scope store.Scope, limit int) ([]*store.CandidateProfile, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.CandidateProfile), args.Error(1)
}

func (m *MockStore) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func f64(v float64) *float64 { return &v }

func candidates() []*store.CandidateProfile {
	return []*store.CandidateProfile{
		{RegistrationID: 10, FullName: "Grace Hopper", PersonalityStyle: "Analytical Leader", TotalScore: f64(105), SincerityClass: store.SincerityHigh, AttemptCount: 1},
		{RegistrationID: 11, FullName: "Linus Pauling", PersonalityStyle: "Creative Thinker", TotalScore: f64(88), SincerityClass: store.SincerityAdequate, AttemptCount: 1},
	}
}

type stubGenerator struct {
	response string
}

func (s stubGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return s.response, nil
}

func setupRouter(ms *MockStore, token string) http.Handler {
	return setupRouterWithInsights(ms, token, nil)
}

func setupRouterWithInsights(ms *MockStore, token string, gen insights.ContentGenerator) http.Handler {
	logger := testLogger()
	engine := scoring.NewEngine(scoring.NewScorer(scoring.DefaultWeights(), nil, logger), 2, logger)
	var annotator *insights.Annotator
	if gen != nil {
		annotator = insights.NewAnnotator(gen, 5, time.Second, logger)
	}
	svc := matching.NewService(ms, engine, annotator, nil, matching.NewMetrics(prometheus.NewRegistry()),
		matching.Config{DefaultTopN: 10, MaxTopN: 100, MaxCandidates: 500}, logger)
	return NewRouter(svc, personality.Default(), token, logger)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestMatchAdminScope(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, store.Scope{Kind: store.ScopeAdmin}, 500).Return(candidates(), nil)
	r := setupRouter(ms, "")

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{
			"role_title":          "Data Lead",
			"seniority_level":     "senior",
			"analytical_required": true,
		},
		"include_cohort": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res matching.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Data Lead", res.RoleTitle)
	assert.Equal(t, 2, res.Evaluated)
	assert.Len(t, res.Matched, 2)
	assert.NotNil(t, res.Cohort)
	assert.Equal(t, matching.AlgorithmVersion, res.AlgorithmVersion)
	assert.Equal(t, scoring.SenioritySenior, res.Requirement.SeniorityLevel)
	ms.AssertExpectations(t)
}

func TestMatchCohortAndInsightsOnByDefault(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, mock.Anything, mock.Anything).Return(candidates(), nil)
	r := setupRouterWithInsights(ms, "", stubGenerator{response: `[{"rank": 1, "insight": "Ready now", "recommendation": "Interview"}]`})

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Data Lead"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res matching.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotNil(t, res.Cohort)
	assert.Equal(t, 2, res.Cohort.Total)
	require.NotEmpty(t, res.Matched)
	assert.Equal(t, []string{"Ready now", "Interview"}, res.Matched[0].Insights)
}

func TestMatchCohortAndInsightsOptOut(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, mock.Anything, mock.Anything).Return(candidates(), nil)
	r := setupRouterWithInsights(ms, "", stubGenerator{response: `[{"rank": 1, "insight": "Ready now", "recommendation": "Interview"}]`})

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement":      map[string]interface{}{"role_title": "Data Lead"},
		"include_cohort":   false,
		"include_insights": false,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res matching.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Nil(t, res.Cohort)
	for _, sc := range res.Matched {
		assert.Nil(t, sc.Insights)
	}
}

func TestMatchCorporateScopeFromBody(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, mock.MatchedBy(func(s store.Scope) bool {
		return s.Kind == store.ScopeCorporate && s.CorporateID != nil && *s.CorporateID == 42 &&
			s.GroupID != nil && *s.GroupID == 3
	}), 500).Return(candidates()[:1], nil)
	r := setupRouter(ms, "")

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Analyst"},
		"scope":       map[string]interface{}{"corporate_id": 42, "group_id": 3},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ms.AssertExpectations(t)
}

func TestMatchCorporateKindWithoutID(t *testing.T) {
	r := setupRouter(&MockStore{}, "")
	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Analyst"},
		"scope":       map[string]interface{}{"kind": "corporate"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "corporate_id")
}

func TestMatchValidationErrors(t *testing.T) {
	r := setupRouter(&MockStore{}, "")

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "negative top_n",
			body:  map[string]interface{}{"top_n": -1},
			field: "MatchRequest.TopN",
		},
		{
			name:  "min_score above 100",
			body:  map[string]interface{}{"min_score": 150},
			field: "MatchRequest.MinScore",
		},
		{
			name: "trait without name",
			body: map[string]interface{}{"requirement": map[string]interface{}{
				"required_traits": []map[string]interface{}{{"importance": "critical"}},
			}},
			field: "MatchRequest.Requirement.RequiredTraits[0].TraitName",
		},
		{
			name: "unknown importance",
			body: map[string]interface{}{"requirement": map[string]interface{}{
				"required_traits": []map[string]interface{}{{"trait_name": "steadiness", "importance": "vital"}},
			}},
			field: "MatchRequest.Requirement.RequiredTraits[0].Importance",
		},
		{
			name:  "bad scope kind",
			body:  map[string]interface{}{"scope": map[string]interface{}{"kind": "global"}},
			field: "MatchRequest.Scope.Kind",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, "POST", "/api/v1/match", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "validation failed", resp.Error)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}
}

func TestMatchUppercaseEnumsAccepted(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, mock.Anything, mock.Anything).Return(candidates(), nil)
	r := setupRouter(ms, "")

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{
			"seniority_level": "Lead",
			"required_traits": []map[string]interface{}{{"trait_name": "dominance", "importance": "CRITICAL", "min_level": "High"}},
		},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMatchInvalidBody(t *testing.T) {
	r := setupRouter(&MockStore{}, "")
	req := httptest.NewRequest("POST", "/api/v1/match", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchStoreFailure(t *testing.T) {
	ms := &MockStore{}
	ms.On("ListCandidates", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("pool closed"))
	r := setupRouter(ms, "")

	w := doJSON(t, r, "POST", "/api/v1/match", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Analyst"},
	}, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "pool closed")
}

func TestPreview(t *testing.T) {
	ms := &MockStore{}
	r := setupRouter(ms, "")

	w := doJSON(t, r, "POST", "/api/v1/match/preview", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Designer", "creativity_required": true},
		"candidates":  candidates(),
		"top_n":       1,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res matching.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Evaluated)
	assert.Equal(t, 2, res.Scored)
	require.Len(t, res.Matched, 1)
	assert.Equal(t, 100, res.Matched[0].ConfidenceLevel)
	require.NotNil(t, res.Cohort, "cohort is included unless disabled")
	assert.Equal(t, 2, res.Cohort.Total)
	ms.AssertNotCalled(t, "ListCandidates", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewRequiresCandidates(t *testing.T) {
	r := setupRouter(&MockStore{}, "")
	w := doJSON(t, r, "POST", "/api/v1/match/preview", map[string]interface{}{
		"requirement": map[string]interface{}{"role_title": "Designer"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PreviewRequest.Candidates")
}

func TestAdminTokenGuardsAPI(t *testing.T) {
	r := setupRouter(&MockStore{}, "s3cret")

	w := doJSON(t, r, "GET", "/api/v1/personality/styles", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "GET", "/api/v1/personality/styles", nil, map[string]string{"Authorization": "Bearer s3cret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListStyles(t *testing.T) {
	r := setupRouter(&MockStore{}, "")
	w := doJSON(t, r, "GET", "/api/v1/personality/styles", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Version int                 `json:"version"`
		Styles  []personality.Style `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, personality.Default().Version(), resp.Version)
	assert.Len(t, resp.Styles, len(personality.Default().Styles()))
}

func TestResolveStyle(t *testing.T) {
	r := setupRouter(&MockStore{}, "")

	w := doJSON(t, r, "GET", "/api/v1/personality/styles/creative%20thinker", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Creative Thinker", resp.Name)

	w = doJSON(t, r, "GET", "/api/v1/personality/styles/zzz", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsRouter(t *testing.T) {
	r := NewMetricsRouter()

	w := doJSON(t, r, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = doJSON(t, r, "GET", "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
