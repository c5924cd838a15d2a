package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/shortlist"
	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/types"
)

// handleCreateCandidate creates a candidate profile.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidate := &types.CandidateProfile{
		Name:            req.Name,
		Email:           req.Email,
		Skills:          skills.NormalizeSet(req.Skills),
		ExperienceYears: req.ExperienceYears,
		ResumeText:      req.ResumeText,
	}

	candidateID, err := s.store.CreateCandidate(r.Context(), candidate)
	if err != nil {
		log.Printf("Error creating candidate: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	created, err := s.store.GetCandidate(r.Context(), candidateID)
	if err != nil || created == nil {
		log.Printf("Error reloading created candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created candidate")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListCandidates lists candidate profiles.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	candidates, err := s.store.ListCandidates(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}
	if candidates == nil {
		candidates = []types.CandidateProfile{}
	}

	s.jsonResponse(w, http.StatusOK, candidates)
}

// handleGetCandidate returns a single candidate by ID.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
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

	s.jsonResponse(w, http.StatusOK, candidate)
}

// handleUpdateCandidate replaces a candidate profile.
func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
		return
	}

	var req types.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	existing, err := s.store.GetCandidate(r.Context(), candidateID)
	if err != nil {
		log.Printf("Error getting candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get candidate")
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, (&ErrNotFound{Resource: "candidate", ID: candidateID}).Error())
		return
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Skills = skills.NormalizeSet(req.Skills)
	existing.ExperienceYears = req.ExperienceYears
	existing.ResumeText = req.ResumeText

	if err := s.store.UpdateCandidate(r.Context(), existing); err != nil {
		log.Printf("Error updating candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	updated, err := s.store.GetCandidate(r.Context(), candidateID)
	if err != nil || updated == nil {
		log.Printf("Error reloading candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load updated candidate")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleShortlist filters the candidate pool by keywords and returns hits
// ranked by keyword count. Keywords come as a comma-separated query parameter.
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
	keywords := skills.Split(r.URL.Query().Get("keywords"))
	if len(keywords) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "At least one keyword is required")
		return
	}

	candidates, err := s.store.ListCandidates(r.Context(), 0)
	if err != nil {
		log.Printf("Error listing candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	entries := shortlist.Shortlist(candidates, keywords)

	s.jsonResponse(w, http.StatusOK, entries)
}

// handleListCandidateApplications lists a candidate's applications, most recent first.
func (s *Server) handleListCandidateApplications(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
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

	apps, err := s.store.ListApplicationsByCandidate(r.Context(), candidateID)
	if err != nil {
		log.Printf("Error listing applications for candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []types.Application{}
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

// handleCandidateMatches scores every open job against the candidate and
// returns them ranked by fit.
func (s *Server) handleCandidateMatches(w http.ResponseWriter, r *http.Request) {
	candidateID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid candidate ID")
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

	jobs, err := s.store.ListJobs(r.Context(), 0)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	matches := s.scoring.ScoreJobs(r.Context(), candidate, jobs)
	if matches == nil {
		matches = []types.ScoredJob{}
	}

	s.jsonResponse(w, http.StatusOK, matches)
}
