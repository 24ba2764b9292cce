package store

import (
	"errors"
	"strings"
	"testing"
)

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestSincerityClassValues(t *testing.T) {
	classes := []SincerityClass{
		SincerityHigh, SincerityModerate, SincerityAdequate, SincerityLow, SincerityVeryLow,
	}
	expected := []string{"HIGH", "MODERATE", "ADEQUATE", "LOW", "VERY_LOW"}
	for i, c := range classes {
		if string(c) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], c)
		}
	}
}

func TestAgileScore(t *testing.T) {
	tests := []struct {
		name string
		c    CandidateProfile
		want float64
	}{
		{"best wins", CandidateProfile{BestScore: float64Ptr(90), TotalScore: float64Ptr(70)}, 90},
		{"zero best still wins", CandidateProfile{BestScore: float64Ptr(0), TotalScore: float64Ptr(70)}, 0},
		{"total fallback", CandidateProfile{TotalScore: float64Ptr(70)}, 70},
		{"nothing recorded", CandidateProfile{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.AgileScore(); got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScopeValidate(t *testing.T) {
	if err := (Scope{}).Validate(); err != nil {
		t.Errorf("empty scope should be admin: %v", err)
	}
	if err := (Scope{Kind: ScopeCorporate}).Validate(); !errors.Is(err, ErrScopeRequired) {
		t.Errorf("expected ErrScopeRequired, got %v", err)
	}
	if err := (Scope{Kind: ScopeCorporate, CorporateID: int64Ptr(4)}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Scope{Kind: "team"}).Validate(); err == nil {
		t.Error("expected unknown kind error")
	}
}

func TestScopeLabel(t *testing.T) {
	if got := (Scope{}).Label(); got != "admin" {
		t.Errorf("expected admin, got %s", got)
	}
	if got := (Scope{Kind: ScopeCorporate}).Label(); got != "corporate" {
		t.Errorf("expected corporate, got %s", got)
	}
}

func TestBuildCandidateQuery(t *testing.T) {
	t.Run("admin unbounded", func(t *testing.T) {
		q, args := buildCandidateQuery(Scope{Kind: ScopeAdmin}, 0)
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
		if strings.Contains(q, "LIMIT") || strings.Contains(q, "corporate_account_id =") {
			t.Errorf("unexpected filter in admin query: %s", q)
		}
	})

	t.Run("corporate group limited", func(t *testing.T) {
		scope := Scope{Kind: ScopeCorporate, CorporateID: int64Ptr(7), GroupID: int64Ptr(3)}
		q, args := buildCandidateQuery(scope, 50)
		if len(args) != 3 {
			t.Fatalf("expected 3 args, got %d", len(args))
		}
		if args[0] != int64(7) || args[1] != int64(3) || args[2] != 50 {
			t.Errorf("unexpected args: %v", args)
		}
		for _, frag := range []string{"r.corporate_account_id = $1", "r.group_id = $2", "LIMIT $3"} {
			if !strings.Contains(q, frag) {
				t.Errorf("query missing %q", frag)
			}
		}
	})

	t.Run("group only", func(t *testing.T) {
		q, args := buildCandidateQuery(Scope{GroupID: int64Ptr(9)}, 0)
		if len(args) != 1 || !strings.Contains(q, "r.group_id = $1") {
			t.Errorf("unexpected query %q args %v", q, args)
		}
	})
}
