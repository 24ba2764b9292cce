//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

const testSchema = "fitment_it"

var schemaDDL = []string{
	`DROP SCHEMA IF EXISTS ` + testSchema + ` CASCADE`,
	`CREATE SCHEMA ` + testSchema,
	`CREATE TABLE users (id BIGSERIAL PRIMARY KEY, email TEXT)`,
	`CREATE TABLE groups (id BIGSERIAL PRIMARY KEY, name TEXT)`,
	`CREATE TABLE personality_traits (id BIGSERIAL PRIMARY KEY, blended_style_name TEXT, code TEXT)`,
	`CREATE TABLE registrations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		full_name TEXT,
		corporate_account_id BIGINT,
		group_id BIGINT REFERENCES groups(id),
		is_deleted BOOLEAN NOT NULL DEFAULT false)`,
	`CREATE TABLE assessment_attempts (
		id BIGSERIAL PRIMARY KEY,
		registration_id BIGINT REFERENCES registrations(id),
		status TEXT,
		total_score NUMERIC,
		sincerity_index NUMERIC,
		sincerity_class TEXT,
		dominant_trait_id BIGINT REFERENCES personality_traits(id),
		completed_at TIMESTAMPTZ)`,
}

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = testSchema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("ddl %q: %v", stmt, err)
		}
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+testSchema+` CASCADE`)
		pool.Close()
	})
	return &PostgresStore{pool: pool}
}

func seed(t *testing.T, s *PostgresStore) {
	t.Helper()
	ctx := context.Background()
	stmts := []string{
		`INSERT INTO users (id, email) VALUES (1, 'a@x.io'), (2, 'b@x.io'), (3, 'c@x.io')`,
		`INSERT INTO groups (id, name) VALUES (10, 'Engineering')`,
		`INSERT INTO personality_traits (id, blended_style_name, code) VALUES (100, 'Decisive Analyst', 'DC')`,
		`INSERT INTO registrations (id, user_id, full_name, corporate_account_id, group_id, is_deleted) VALUES
			(1, 1, 'Ada', 5, 10, false),
			(2, 2, 'Ben', 6, NULL, false),
			(3, 3, 'Cy', 5, NULL, true)`,
		`INSERT INTO assessment_attempts (registration_id, status, total_score, sincerity_index, sincerity_class, dominant_trait_id, completed_at) VALUES
			(1, 'COMPLETED', 70, 88, 'HIGH', 100, now() - interval '2 days'),
			(1, 'COMPLETED', 82, 90, 'HIGH', 100, now() - interval '1 day'),
			(1, 'IN_PROGRESS', 120, NULL, NULL, NULL, NULL),
			(2, 'COMPLETED', 60, NULL, NULL, NULL, now()),
			(3, 'COMPLETED', 99, NULL, NULL, NULL, now())`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("seed %q: %v", stmt, err)
		}
	}
}

func TestListCandidatesAdmin(t *testing.T) {
	s := setupTestDB(t)
	seed(t, s)

	got, err := s.ListCandidates(context.Background(), Scope{Kind: ScopeAdmin}, 0)
	if err != nil {
		t.Fatalf("ListCandidates failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 live candidates, got %d", len(got))
	}

	ada := got[0]
	if ada.FullName != "Ada" || ada.Email != "a@x.io" {
		t.Errorf("unexpected first candidate: %+v", ada)
	}
	if ada.TotalScore == nil || *ada.TotalScore != 82 {
		t.Errorf("expected latest completed total 82, got %v", ada.TotalScore)
	}
	if ada.BestScore == nil || *ada.BestScore != 82 {
		t.Errorf("expected best completed 82, got %v", ada.BestScore)
	}
	if ada.AttemptCount != 2 {
		t.Errorf("expected 2 completed attempts, got %d", ada.AttemptCount)
	}
	if ada.PersonalityStyle != "Decisive Analyst" || ada.GroupName != "Engineering" {
		t.Errorf("unexpected joins: style=%q group=%q", ada.PersonalityStyle, ada.GroupName)
	}
	if ada.SincerityClass != SincerityHigh {
		t.Errorf("expected HIGH sincerity, got %q", ada.SincerityClass)
	}

	ben := got[1]
	if ben.PersonalityStyle != "" || ben.SincerityIndex != nil || ben.GroupID != nil {
		t.Errorf("expected nullable fields empty for Ben: %+v", ben)
	}
}

func TestListCandidatesCorporateScope(t *testing.T) {
	s := setupTestDB(t)
	seed(t, s)

	corp := int64(6)
	got, err := s.ListCandidates(context.Background(), Scope{Kind: ScopeCorporate, CorporateID: &corp}, 10)
	if err != nil {
		t.Fatalf("ListCandidates failed: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ben" {
		t.Fatalf("expected only Ben in corporate 6, got %+v", got)
	}

	if _, err := s.ListCandidates(context.Background(), Scope{Kind: ScopeCorporate}, 10); err == nil {
		t.Fatal("expected scope validation error")
	}
}
