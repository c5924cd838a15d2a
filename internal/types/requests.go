package types

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SkillList accepts skills either as a JSON array of strings or as a single
// comma-separated string. Both forms were accepted by the original intake
// endpoints, so the API keeps taking both and normalizes downstream.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler for the dual array/CSV form.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return err
	}

	parts := strings.Split(csv, ",")
	list = make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	*s = list
	return nil
}

// CreateJobRequest represents the request to create a job posting.
type CreateJobRequest struct {
	Title              string    `json:"title" validate:"required,min=1"`
	Company            string    `json:"company,omitempty"`
	Description        string    `json:"description,omitempty"`
	RequiredSkills     SkillList `json:"required_skills,omitempty"`
	MinExperienceYears int       `json:"min_experience_years,omitempty" validate:"gte=0"`
}

// CreateJobFromURLRequest represents the request to create a job posting by
// fetching and extracting a posting page. Title is optional; when omitted it
// is extracted from the page.
type CreateJobFromURLRequest struct {
	URL                string    `json:"url" validate:"required,url"`
	Title              string    `json:"title,omitempty"`
	Company            string    `json:"company,omitempty"`
	RequiredSkills     SkillList `json:"required_skills,omitempty"`
	MinExperienceYears int       `json:"min_experience_years,omitempty" validate:"gte=0"`
}

// CreateCandidateRequest represents the request to create or replace a candidate profile.
type CreateCandidateRequest struct {
	Name            string    `json:"name" validate:"required,min=1"`
	Email           string    `json:"email,omitempty" validate:"omitempty,email"`
	Skills          SkillList `json:"skills,omitempty"`
	ExperienceYears int       `json:"experience_years,omitempty" validate:"gte=0"`
	ResumeText      string    `json:"resume_text,omitempty"`
}

// ApplyRequest represents the request to apply to a job.
type ApplyRequest struct {
	JobID       string `json:"job_id" validate:"required,uuid"`
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	CoverLetter string `json:"cover_letter,omitempty"`
	ResumeText  string `json:"resume_text,omitempty"`
}

// UpdateStatusRequest represents a recruiter's status change for an application.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=applied under_review shortlisted rejected"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateJobFromURLRequest using the validator.
func (r *CreateJobFromURLRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ApplyRequest using the validator.
func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateStatusRequest using the validator.
func (r *UpdateStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
