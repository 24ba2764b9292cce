package store

import (
	"context"
	"errors"
)

// SincerityClass buckets the assessment's sincerity check.
type SincerityClass string

const (
	SincerityHigh     SincerityClass = "HIGH"
	SincerityModerate SincerityClass = "MODERATE"
	SincerityAdequate SincerityClass = "ADEQUATE"
	SincerityLow      SincerityClass = "LOW"
	SincerityVeryLow  SincerityClass = "VERY_LOW"
)

// CandidateProfile is one assessed registration. Nil pointers and empty
// strings mean the value was never recorded. Profiles are read-only inputs.
type CandidateProfile struct {
	RegistrationID     int64          `json:"registration_id"`
	FullName           string         `json:"full_name,omitempty"`
	Email              string         `json:"email,omitempty"`
	PersonalityStyle   string         `json:"personality_style,omitempty"`
	PersonalityCode    string         `json:"personality_code,omitempty"`
	TotalScore         *float64       `json:"total_score,omitempty"`
	BestScore          *float64       `json:"best_score,omitempty"`
	SincerityIndex     *float64       `json:"sincerity_index,omitempty"`
	SincerityClass     SincerityClass `json:"sincerity_class,omitempty"`
	AttemptCount       int            `json:"attempt_count"`
	AssessmentStatus   string         `json:"assessment_status,omitempty"`
	CorporateAccountID *int64         `json:"corporate_account_id,omitempty"`
	GroupID            *int64         `json:"group_id,omitempty"`
	GroupName          string         `json:"group_name,omitempty"`
}

// AgileScore is the agile-index reading used for scoring: the best completed
// attempt, else the latest, else 0.
func (c *CandidateProfile) AgileScore() float64 {
	if c.BestScore != nil {
		return *c.BestScore
	}
	if c.TotalScore != nil {
		return *c.TotalScore
	}
	return 0
}

// ScopeKind distinguishes the platform-wide view from a single organization.
type ScopeKind string

const (
	ScopeAdmin     ScopeKind = "admin"
	ScopeCorporate ScopeKind = "corporate"
)

// Scope filters which registrations a match run may see.
type Scope struct {
	Kind        ScopeKind `json:"kind"`
	CorporateID *int64    `json:"corporate_id,omitempty"`
	GroupID     *int64    `json:"group_id,omitempty"`
}

var ErrScopeRequired = errors.New("corporate scope requires a corporate_id")

// Validate checks the scope is internally consistent.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeAdmin, "":
		return nil
	case ScopeCorporate:
		if s.CorporateID == nil {
			return ErrScopeRequired
		}
		return nil
	default:
		return errors.New("unknown scope kind: " + string(s.Kind))
	}
}

// Label is a low-cardinality name for metrics and logs.
func (s Scope) Label() string {
	if s.Kind == "" {
		return string(ScopeAdmin)
	}
	return string(s.Kind)
}

// Store reads candidate profiles. Implementations never mutate them.
type Store interface {
	ListCandidates(ctx context.Context, scope Scope, limit int) ([]*CandidateProfile, error)
	Close() error
}
