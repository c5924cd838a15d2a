package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CandidateProfile represents a registered candidate with skills and resume text.
type CandidateProfile struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	ResumeText      string    `json:"resume_text,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasContent reports whether the profile carries anything the engine can
// match against: skills or resume text.
func (c *CandidateProfile) HasContent() bool {
	return len(c.Skills) > 0 || c.ResumeText != ""
}

// SearchText returns the concatenation of resume text and skills used by
// keyword shortlisting.
func (c *CandidateProfile) SearchText() string {
	return c.ResumeText + " " + strings.Join(c.Skills, " ")
}
