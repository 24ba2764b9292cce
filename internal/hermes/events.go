package hermes

import "time"

type MatchCompletedEvent struct {
	RunID            string         `json:"run_id"`
	Scope            string         `json:"scope"`
	CorporateID      *int64         `json:"corporate_id,omitempty"`
	GroupID          *int64         `json:"group_id,omitempty"`
	RoleTitle        string         `json:"role_title"`
	Evaluated        int            `json:"total_candidates_evaluated"`
	Scored           int            `json:"total_scored"`
	Matched          int            `json:"matched"`
	TierDistribution map[string]int `json:"tier_distribution"`
	TopCandidateID   *int64         `json:"top_candidate_id,omitempty"`
	TopScore         float64        `json:"top_score,omitempty"`
	AlgorithmVersion string         `json:"algorithm_version"`
	DurationMs       int64          `json:"duration_ms"`
	Timestamp        time.Time      `json:"timestamp"`
}

type MatchFailedEvent struct {
	RunID     string    `json:"run_id"`
	Scope     string    `json:"scope"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
