package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// handleApply submits an application: the candidate is scored against the job
// at submission time and the breakdown is persisted with the application.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		log.Printf("Error getting job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "job", ID: jobID}).Error())
		return
	}

	candidate, err := s.store.GetCandidate(r.Context(), candidateID)
	if err != nil {
		log.Printf("Error getting candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get candidate")
		return
	}
	if candidate == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "candidate", ID: candidateID}).Error())
		return
	}

	exists, err := s.store.ApplicationExists(r.Context(), jobID, candidateID)
	if err != nil {
		log.Printf("Error checking existing application: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to check existing application")
		return
	}
	if exists {
		dup := &ErrDuplicateApplication{JobID: jobID, CandidateID: candidateID}
		s.errorResponse(w, HTTPStatus(dup), dup.Error())
		return
	}

	// An application-specific resume overrides the profile resume for both
	// the snapshot and the score.
	scored := *candidate
	if req.ResumeText != "" {
		scored.ResumeText = req.ResumeText
	}

	result := s.scoring.ScoreApplication(r.Context(), job, &scored)

	app := &types.Application{
		JobID:          jobID,
		CandidateID:    candidateID,
		CoverLetter:    req.CoverLetter,
		ResumeSnapshot: scored.ResumeText,
		Status:         types.StatusApplied,
		Score:          result.MatchPercentage,
		Result:         result,
	}

	appID, err := s.store.CreateApplication(r.Context(), app)
	if err != nil {
		log.Printf("Error creating application: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create application")
		return
	}

	created, err := s.store.GetApplication(r.Context(), appID)
	if err != nil || created == nil {
		log.Printf("Error reloading created application %s: %v", appID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created application")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleGetApplication returns a single application by ID.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.store.GetApplication(r.Context(), appID)
	if err != nil {
		log.Printf("Error getting application %s: %v", appID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get application")
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "application", ID: appID}).Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateStatus moves an application through the review flow. Transitions
// outside the applied -> under_review -> {shortlisted, rejected} flow are
// logged but still applied.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req types.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.store.GetApplication(r.Context(), appID)
	if err != nil {
		log.Printf("Error getting application %s: %v", appID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get application")
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "application", ID: appID}).Error())
		return
	}

	if _, err := types.ValidateTransition(app.Status, req.Status); err != nil {
		log.Printf("Application %s: %v (applying anyway)", appID, err)
	}

	if err := s.store.UpdateApplicationStatus(r.Context(), appID, req.Status); err != nil {
		log.Printf("Error updating application %s status: %v", appID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	updated, err := s.store.GetApplication(r.Context(), appID)
	if err != nil || updated == nil {
		log.Printf("Error reloading application %s: %v", appID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load updated application")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
