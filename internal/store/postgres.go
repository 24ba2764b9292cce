package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// candidateQuery selects each live registration with its most recent completed
// attempt, the best completed score and the number of completed attempts.
const candidateQuery = `
	SELECT
		r.id,
		r.full_name,
		u.email,
		r.corporate_account_id,
		r.group_id,
		g.name,
		pt.blended_style_name,
		pt.code,
		aa.total_score::float8,
		aa.sincerity_index::float8,
		aa.sincerity_class,
		aa.status,
		(SELECT MAX(aa2.total_score)::float8 FROM assessment_attempts aa2
			WHERE aa2.registration_id = r.id AND aa2.status = 'COMPLETED'),
		(SELECT COUNT(*) FROM assessment_attempts aa3
			WHERE aa3.registration_id = r.id AND aa3.status = 'COMPLETED')
	FROM registrations r
	JOIN users u ON r.user_id = u.id
	JOIN assessment_attempts aa ON aa.registration_id = r.id
		AND aa.status = 'COMPLETED'
		AND aa.id = (
			SELECT id FROM assessment_attempts
			WHERE registration_id = r.id AND status = 'COMPLETED'
			ORDER BY completed_at DESC NULLS LAST
			LIMIT 1
		)
	LEFT JOIN personality_traits pt ON aa.dominant_trait_id = pt.id
	LEFT JOIN groups g ON r.group_id = g.id
	WHERE r.is_deleted = false`

// buildCandidateQuery appends scope filters and the limit to candidateQuery.
func buildCandidateQuery(scope Scope, limit int) (string, []interface{}) {
	query := candidateQuery
	args := []interface{}{}
	n := 0

	if scope.CorporateID != nil {
		n++
		query += fmt.Sprintf(" AND r.corporate_account_id = $%d", n)
		args = append(args, *scope.CorporateID)
	}
	if scope.GroupID != nil {
		n++
		query += fmt.Sprintf(" AND r.group_id = $%d", n)
		args = append(args, *scope.GroupID)
	}

	query += " ORDER BY aa.total_score DESC NULLS LAST, r.id ASC"

	if limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, limit)
	}
	return query, args
}

func (s *PostgresStore) ListCandidates(ctx context.Context, scope Scope, limit int) ([]*CandidateProfile, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	query, args := buildCandidateQuery(scope, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*CandidateProfile
	for rows.Next() {
		c := &CandidateProfile{}
		var fullName, email, groupName, style, code, sincerityClass, status sql.NullString
		var attempts int64
		if err := rows.Scan(
			&c.RegistrationID, &fullName, &email,
			&c.CorporateAccountID, &c.GroupID, &groupName,
			&style, &code,
			&c.TotalScore, &c.SincerityIndex, &sincerityClass, &status,
			&c.BestScore, &attempts,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.FullName = fullName.String
		c.Email = email.String
		c.GroupName = groupName.String
		c.PersonalityStyle = style.String
		c.PersonalityCode = code.String
		c.SincerityClass = SincerityClass(sincerityClass.String)
		c.AssessmentStatus = status.String
		c.AttemptCount = int(attempts)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}
