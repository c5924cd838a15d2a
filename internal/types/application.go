package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the state of an application in the review workflow.
type Status string

// Application status values. The workflow is
// applied -> under_review -> {shortlisted, rejected}; shortlisted and
// rejected are terminal.
const (
	StatusApplied     Status = "applied"
	StatusUnderReview Status = "under_review"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusUnderReview, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusShortlisted || s == StatusRejected
}

// InvalidTransitionError indicates a requested status change that is not
// reachable from the current status.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// ValidateTransition checks a requested status change against the workflow
// graph and returns the new status if legal. It is a pure function; callers
// that want the original system's loose behavior may log the error and apply
// the requested status anyway.
func ValidateTransition(current, requested Status) (Status, error) {
	if !requested.Valid() {
		return "", &InvalidTransitionError{From: current, To: requested}
	}
	if transitionAllowed(current, requested) {
		return requested, nil
	}
	return "", &InvalidTransitionError{From: current, To: requested}
}

func transitionAllowed(from, to Status) bool {
	switch from {
	case StatusApplied:
		return to == StatusUnderReview
	case StatusUnderReview:
		return to == StatusShortlisted || to == StatusRejected
	default:
		return false
	}
}

// Application records one candidate's submission to one job, including the
// MatchResult snapshot computed at submission time. Live matching views
// recompute fresh results and never read this snapshot.
type Application struct {
	ID             uuid.UUID   `json:"id"`
	JobID          uuid.UUID   `json:"job_id"`
	CandidateID    uuid.UUID   `json:"candidate_id"`
	CoverLetter    string      `json:"cover_letter,omitempty"`
	ResumeSnapshot string      `json:"resume_snapshot,omitempty"`
	Status         Status      `json:"status"`
	Score          float64     `json:"score"`
	Result         MatchResult `json:"result"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Joined views, populated by listing queries.
	Candidate *CandidateProfile `json:"candidate,omitempty"`
	Job       *JobRequirement   `json:"job,omitempty"`
}
