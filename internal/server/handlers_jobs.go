package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/fetch"
	"github.com/jonathan/talent-match/internal/server/middleware"
	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/types"
)

// handleCreateJob creates a job requirement owned by the authenticated recruiter.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	job := &types.JobRequirement{
		Title:              req.Title,
		Company:            req.Company,
		Description:        req.Description,
		RequiredSkills:     skills.NormalizeSet(req.RequiredSkills),
		MinExperienceYears: req.MinExperienceYears,
		CreatedBy:          userID,
	}

	jobID, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		log.Printf("Error creating job: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	created, err := s.store.GetJob(r.Context(), jobID)
	if err != nil || created == nil {
		log.Printf("Error reloading created job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleCreateJobFromURL fetches a posting page and creates a job from its
// extracted content. Skills are not guessed from the page; the recruiter
// supplies them.
func (s *Server) handleCreateJobFromURL(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobFromURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posting, err := fetch.JobPosting(r.Context(), req.URL, nil)
	if err != nil {
		log.Printf("Error fetching job posting %s: %v", req.URL, err)
		s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("Failed to fetch posting: %v", err))
		return
	}

	title := req.Title
	if title == "" {
		title = posting.Title
	}
	if title == "" {
		s.errorResponse(w, http.StatusBadRequest, "No title provided and none found on the page")
		return
	}

	job := &types.JobRequirement{
		Title:              title,
		Company:            req.Company,
		Description:        posting.Text,
		RequiredSkills:     skills.NormalizeSet(req.RequiredSkills),
		MinExperienceYears: req.MinExperienceYears,
		CreatedBy:          userID,
	}

	jobID, err := s.store.CreateJob(r.Context(), job)
	if err != nil {
		log.Printf("Error creating job from URL: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	created, err := s.store.GetJob(r.Context(), jobID)
	if err != nil || created == nil {
		log.Printf("Error reloading created job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleListJobs lists recent jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	jobs, err := s.store.ListJobs(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []types.JobRequirement{}
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns a single job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
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

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListJobApplications lists a job's applications, best score first.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
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

	apps, err := s.store.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		log.Printf("Error listing applications for job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []types.Application{}
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

// handleJobMatches scores every candidate in the pool against the job and
// returns them ranked. Scores are computed live from current profiles, not
// from application snapshots.
func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
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

	candidates, err := s.store.ListCandidates(r.Context(), 0)
	if err != nil {
		log.Printf("Error listing candidates: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	matches := s.scoring.ScoreCandidates(r.Context(), job, candidates)
	if matches == nil {
		matches = []types.ScoredCandidate{}
	}

	s.jsonResponse(w, http.StatusOK, matches)
}
