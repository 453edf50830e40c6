package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

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

// Migrate creates the candidate table if it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const candidateColumns = `candidate_id, name, title, skills, location, experience_years,
	availability, summary, projects, publications_count, reputation_score, recency_signal,
	created_at, updated_at`

// ListCandidates returns candidates in insertion order. The order is the
// tie-break order used by the ranker, so it must not depend on row layout.
func (s *PostgresStore) ListCandidates(ctx context.Context, filter CandidateFilter) ([]*Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM scout_candidates ORDER BY created_at ASC, candidate_id ASC`
	args := []interface{}{}
	n := 0

	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (s *PostgresStore) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+candidateColumns+`
		FROM scout_candidates WHERE candidate_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0], nil
}

func (s *PostgresStore) UpsertCandidate(ctx context.Context, c *Candidate) error {
	if c.ID == "" {
		return errors.New("candidate_id required")
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO scout_candidates (candidate_id, name, title, skills, location, experience_years,
			availability, summary, projects, publications_count, reputation_score, recency_signal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (candidate_id) DO UPDATE SET
			name = EXCLUDED.name, title = EXCLUDED.title, skills = EXCLUDED.skills,
			location = EXCLUDED.location, experience_years = EXCLUDED.experience_years,
			availability = EXCLUDED.availability, summary = EXCLUDED.summary,
			projects = EXCLUDED.projects, publications_count = EXCLUDED.publications_count,
			reputation_score = EXCLUDED.reputation_score, recency_signal = EXCLUDED.recency_signal,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Title, nonNil(c.Skills), c.Location, c.ExperienceYears,
		c.Availability, c.Summary, nonNil(c.Projects), c.PublicationsCount, c.ReputationScore, c.RecencySignal,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func scanCandidates(rows pgx.Rows) ([]*Candidate, error) {
	var candidates []*Candidate
	for rows.Next() {
		c := &Candidate{}
		var title, location, availability, summary, recency sql.NullString
		if err := rows.Scan(
			&c.ID, &c.Name, &title, &c.Skills, &location, &c.ExperienceYears,
			&availability, &summary, &c.Projects, &c.PublicationsCount, &c.ReputationScore, &recency,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		c.Title = title.String
		c.Location = location.String
		c.Availability = availability.String
		c.Summary = summary.String
		c.RecencySignal = recency.String
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
