package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/shortlist"
	"github.com/jonathan/talent-match/internal/types"
)

func TestCreateCandidate_Success(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	body := `{"name":"Ada","email":"ada@example.com","skills":["Python","AWS"],` +
		`"experience_years":4,"resume_text":"Backend engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var candidate types.CandidateProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidate))
	assert.Equal(t, "Ada", candidate.Name)
	assert.Equal(t, []string{"python", "aws"}, candidate.Skills)
	assert.Equal(t, 4, candidate.ExperienceYears)
}

func TestCreateCandidate_InvalidEmail(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	body := `{"name":"Ada","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/candidates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCandidate_ReplacesProfile(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)

	candidateID, err := store.CreateCandidate(context.Background(), &types.CandidateProfile{
		Name: "Ada", Skills: []string{"python"},
	})
	require.NoError(t, err)

	body := `{"name":"Ada Lovelace","skills":["python","terraform"],"experience_years":5}`
	req := httptest.NewRequest(http.MethodPut, "/candidates/"+candidateID.String(), strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var candidate types.CandidateProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidate))
	assert.Equal(t, "Ada Lovelace", candidate.Name)
	assert.Equal(t, []string{"python", "terraform"}, candidate.Skills)
	assert.Equal(t, 5, candidate.ExperienceYears)
}

func TestUpdateCandidate_NotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	body := `{"name":"Nobody"}`
	req := httptest.NewRequest(http.MethodPut,
		"/candidates/550e8400-e29b-41d4-a716-446655440000", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShortlist_FiltersAndRanks(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)
	ctx := context.Background()

	_, err := store.CreateCandidate(ctx, &types.CandidateProfile{
		Name: "Both", Skills: []string{"aws"}, ResumeText: "node services on aws",
	})
	require.NoError(t, err)
	_, err = store.CreateCandidate(ctx, &types.CandidateProfile{
		Name: "SkillsOnly", Skills: []string{"aws"},
	})
	require.NoError(t, err)
	_, err = store.CreateCandidate(ctx, &types.CandidateProfile{
		Name: "Neither", Skills: []string{"figma"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/candidates/shortlist?keywords=aws,node", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []shortlist.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Both", entries[0].Candidate.Name)
	assert.Equal(t, 2, entries[0].Score)
	assert.Equal(t, "SkillsOnly", entries[1].Candidate.Name)
	assert.Equal(t, 1, entries[1].Score)
}

func TestShortlist_RequiresKeywords(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/candidates/shortlist", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCandidateMatches_RanksJobs(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store, nil)
	ctx := context.Background()

	candidateID, err := store.CreateCandidate(ctx, &types.CandidateProfile{
		Name: "Ada", Skills: []string{"python", "aws"},
	})
	require.NoError(t, err)

	_, err = store.CreateJob(ctx, &types.JobRequirement{
		Title: "Perfect Fit", RequiredSkills: []string{"python", "aws"},
	})
	require.NoError(t, err)
	_, err = store.CreateJob(ctx, &types.JobRequirement{
		Title: "Partial Fit", RequiredSkills: []string{"python", "rust"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/candidates/"+candidateID.String()+"/matches", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var matches []types.ScoredJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 2)
	assert.Equal(t, "Perfect Fit", matches[0].Job.Title)
	assert.Equal(t, "Partial Fit", matches[1].Job.Title)
}

func TestCandidateMatches_ScoresFullJobPool(t *testing.T) {
	store := newFakeStore()
	lr := &listRecorder{fakeStore: store}
	s := newTestServer(t, lr, nil)
	ctx := context.Background()

	candidateID, err := store.CreateCandidate(ctx, &types.CandidateProfile{
		Name: "Grace", Skills: []string{"go"},
	})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = store.CreateJob(ctx, &types.JobRequirement{
			Title: fmt.Sprintf("Opening %d", i), RequiredSkills: []string{"go"},
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/candidates/"+candidateID.String()+"/matches", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Match ranking walks every open job, not just the first listing page.
	require.NotNil(t, lr.jobLimit)
	assert.LessOrEqual(t, *lr.jobLimit, 0)

	var matches []types.ScoredJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	assert.Len(t, matches, 4)
}

func TestShortlist_ScansFullCandidatePool(t *testing.T) {
	store := newFakeStore()
	lr := &listRecorder{fakeStore: store}
	s := newTestServer(t, lr, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.CreateCandidate(ctx, &types.CandidateProfile{
			Name: fmt.Sprintf("Dev %d", i), Skills: []string{"kubernetes"},
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/candidates/shortlist?keywords=kubernetes", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, lr.candidateLimit)
	assert.LessOrEqual(t, *lr.candidateLimit, 0)
}

func TestCandidateMatches_CandidateNotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore(), nil)

	req := httptest.NewRequest(http.MethodGet,
		"/candidates/550e8400-e29b-41d4-a716-446655440000/matches", nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
