package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Fitment/internal/matching"
	"github.com/MikeSquared-Agency/Fitment/internal/scoring"
	"github.com/MikeSquared-Agency/Fitment/internal/store"
)

// ScopeRequest selects the candidate pool. A corporate_id implies corporate
// scope; kind may be given explicitly.
type ScopeRequest struct {
	Kind        string `json:"kind,omitempty" validate:"omitempty,oneof=admin corporate"`
	CorporateID *int64 `json:"corporate_id,omitempty" validate:"omitempty,gt=0"`
	GroupID     *int64 `json:"group_id,omitempty" validate:"omitempty,gt=0"`
}

func (s ScopeRequest) scope() store.Scope {
	kind := store.ScopeKind(s.Kind)
	if kind == "" {
		kind = store.ScopeAdmin
		if s.CorporateID != nil {
			kind = store.ScopeCorporate
		}
	}
	return store.Scope{Kind: kind, CorporateID: s.CorporateID, GroupID: s.GroupID}
}

type MatchRequest struct {
	Requirement     scoring.JobRequirement `json:"requirement"`
	Scope           ScopeRequest           `json:"scope"`
	TopN            int                    `json:"top_n" validate:"gte=0"`
	MinScore        float64                `json:"min_score" validate:"gte=0,lte=100"`
	IncludeInsights *bool                  `json:"include_insights,omitempty"`
	IncludeCohort   *bool                  `json:"include_cohort,omitempty"`
}

type PreviewRequest struct {
	Requirement   scoring.JobRequirement    `json:"requirement"`
	Candidates    []*store.CandidateProfile `json:"candidates" validate:"required"`
	TopN          int                       `json:"top_n" validate:"gte=0"`
	MinScore      float64                   `json:"min_score" validate:"gte=0,lte=100"`
	IncludeCohort *bool                     `json:"include_cohort,omitempty"`
}

// enabled reads an optional flag that is on unless explicitly false.
func enabled(flag *bool) bool {
	return flag == nil || *flag
}

type MatchHandler struct {
	svc      *matching.Service
	validate *validator.Validate
}

func NewMatchHandler(svc *matching.Service) *MatchHandler {
	return &MatchHandler{svc: svc, validate: validator.New()}
}

// Match runs a scoped match against stored candidates.
// POST /api/v1/match
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Requirement = req.Requirement.Normalize()
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := h.svc.Run(r.Context(), matching.Request{
		Requirement:     req.Requirement,
		Scope:           req.Scope.scope(),
		TopN:            req.TopN,
		MinScore:        req.MinScore,
		IncludeInsights: enabled(req.IncludeInsights),
		IncludeCohort:   enabled(req.IncludeCohort),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Preview scores caller-supplied candidates without touching the store.
// POST /api/v1/match/preview
func (h *MatchHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Requirement = req.Requirement.Normalize()
	if err := h.validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := h.svc.Preview(r.Context(), matching.Request{
		Requirement:   req.Requirement,
		TopN:          req.TopN,
		MinScore:      req.MinScore,
		IncludeCohort: enabled(req.IncludeCohort),
	}, req.Candidates)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "validation failed",
		"fields": fields,
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matching.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, matching.ErrCandidateSource):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
