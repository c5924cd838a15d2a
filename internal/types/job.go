// Package types provides type definitions for structured data used throughout the talent-match system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// JobRequirement represents a job posting against which candidates are matched.
type JobRequirement struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company,omitempty"`
	Description        string    `json:"description,omitempty"`
	RequiredSkills     []string  `json:"required_skills"`
	MinExperienceYears int       `json:"min_experience_years"`
	CreatedBy          uuid.UUID `json:"created_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// HasContent reports whether the job carries anything the engine can match
// against: required skills or free-text description.
func (j *JobRequirement) HasContent() bool {
	return len(j.RequiredSkills) > 0 || j.Description != ""
}
