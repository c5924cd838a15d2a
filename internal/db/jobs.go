package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// CreateJob inserts a new job requirement and returns its ID
func (db *DB) CreateJob(ctx context.Context, job *types.JobRequirement) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, description, required_skills, min_experience_years, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		job.Title, job.Company, job.Description, job.RequiredSkills, job.MinExperienceYears, job.CreatedBy,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job requirement by ID
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*types.JobRequirement, error) {
	var job types.JobRequirement
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, description, required_skills, min_experience_years, created_by, created_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.RequiredSkills,
		&job.MinExperienceYears, &job.CreatedBy, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves job requirements, most recent first. A limit of zero
// or less returns every job, which ranking endpoints rely on to score the
// full pool.
func (db *DB) ListJobs(ctx context.Context, limit int) ([]types.JobRequirement, error) {
	query := `SELECT id, title, company, description, required_skills, min_experience_years, created_by, created_at
		 FROM jobs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRequirement
	for rows.Next() {
		var job types.JobRequirement
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.Description, &job.RequiredSkills,
			&job.MinExperienceYears, &job.CreatedBy, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// DeleteJob deletes a job and its applications (via cascade)
func (db *DB) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
