package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

// CreateApplication inserts a new application with its score snapshot and
// returns its ID. The match result is stored as JSONB so the breakdown that
// produced the score survives later profile edits.
func (db *DB) CreateApplication(ctx context.Context, app *types.Application) (uuid.UUID, error) {
	resultJSON, err := json.Marshal(app.Result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal match result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, cover_letter, resume_snapshot, status, score, match_result)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		app.JobID, app.CandidateID, app.CoverLetter, app.ResumeSnapshot, app.Status, app.Score, resultJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, appID uuid.UUID) (*types.Application, error) {
	var app types.Application
	var resultJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, cover_letter, resume_snapshot, status, score, match_result, created_at, updated_at
		 FROM applications WHERE id = $1`,
		appID,
	).Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeSnapshot,
		&app.Status, &app.Score, &resultJSON, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &app.Result)
	}

	return &app, nil
}

// ApplicationExists reports whether a candidate has already applied to a job
func (db *DB) ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// ListApplicationsByJob retrieves a job's applications ordered by score
// descending, with the candidate profile joined in.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_snapshot,
		        a.status, a.score, a.match_result, a.created_at, a.updated_at,
		        c.id, c.name, c.email, c.skills, c.experience_years, c.resume_text, c.created_at, c.updated_at
		 FROM applications a
		 JOIN candidates c ON c.id = a.candidate_id
		 WHERE a.job_id = $1
		 ORDER BY a.score DESC, a.created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for job: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var app types.Application
		var candidate types.CandidateProfile
		var resultJSON []byte
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeSnapshot,
			&app.Status, &app.Score, &resultJSON, &app.CreatedAt, &app.UpdatedAt,
			&candidate.ID, &candidate.Name, &candidate.Email, &candidate.Skills,
			&candidate.ExperienceYears, &candidate.ResumeText, &candidate.CreatedAt, &candidate.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &app.Result)
		}
		app.Candidate = &candidate
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// ListApplicationsByCandidate retrieves a candidate's applications, most
// recent first, with the job joined in.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume_snapshot,
		        a.status, a.score, a.match_result, a.created_at, a.updated_at,
		        j.id, j.title, j.company, j.description, j.required_skills, j.min_experience_years, j.created_by, j.created_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for candidate: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		var app types.Application
		var job types.JobRequirement
		var resultJSON []byte
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.ResumeSnapshot,
			&app.Status, &app.Score, &resultJSON, &app.CreatedAt, &app.UpdatedAt,
			&job.ID, &job.Title, &job.Company, &job.Description, &job.RequiredSkills,
			&job.MinExperienceYears, &job.CreatedBy, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &app.Result)
		}
		app.Job = &job
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus sets the status of an application
func (db *DB) UpdateApplicationStatus(ctx context.Context, appID uuid.UUID, status types.Status) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, appID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", appID)
	}
	return nil
}
