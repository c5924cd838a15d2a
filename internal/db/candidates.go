package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// CreateCandidate inserts a new candidate profile and returns its ID
func (db *DB) CreateCandidate(ctx context.Context, candidate *types.CandidateProfile) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, skills, experience_years, resume_text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		candidate.Name, candidate.Email, candidate.Skills, candidate.ExperienceYears, candidate.ResumeText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// GetCandidate retrieves a candidate profile by ID
func (db *DB) GetCandidate(ctx context.Context, candidateID uuid.UUID) (*types.CandidateProfile, error) {
	var c types.CandidateProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, skills, experience_years, resume_text, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		candidateID,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Skills, &c.ExperienceYears, &c.ResumeText, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// UpdateCandidate updates a candidate profile in place
func (db *DB) UpdateCandidate(ctx context.Context, candidate *types.CandidateProfile) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET name = $1, email = $2, skills = $3, experience_years = $4, resume_text = $5, updated_at = NOW()
		 WHERE id = $6`,
		candidate.Name, candidate.Email, candidate.Skills, candidate.ExperienceYears,
		candidate.ResumeText, candidate.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", candidate.ID)
	}
	return nil
}

// ListCandidates retrieves candidate profiles, most recent first. A limit of
// zero or less returns every candidate, which shortlisting and match ranking
// rely on to score the full pool.
func (db *DB) ListCandidates(ctx context.Context, limit int) ([]types.CandidateProfile, error) {
	query := `SELECT id, name, email, skills, experience_years, resume_text, created_at, updated_at
		 FROM candidates ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.CandidateProfile
	for rows.Next() {
		var c types.CandidateProfile
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Skills, &c.ExperienceYears,
			&c.ResumeText, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate and their applications (via cascade)
func (db *DB) DeleteCandidate(ctx context.Context, candidateID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", candidateID)
	}
	return nil
}
