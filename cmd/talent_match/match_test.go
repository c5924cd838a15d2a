package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jonathan/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJobFile(t *testing.T, dir string) string {
	t.Helper()

	content := `{
		"title": "Backend Engineer",
		"required_skills": ["go", "postgres"],
		"description": "Build backend services in Go.",
		"min_experience_years": 3
	}`

	path := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJobRequirement(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeJobFile(t, tmpDir)

	job, err := loadJobRequirement(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, []string{"go", "postgres"}, job.RequiredSkills)
	assert.Equal(t, 3, job.MinExperienceYears)
}

func TestLoadJobRequirement_MissingFile(t *testing.T) {
	_, err := loadJobRequirement("/nonexistent/job.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestMatchCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "match")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestMatchCommand_ValidInput(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	jobFile := writeJobFile(t, tmpDir)
	outputFile := filepath.Join(tmpDir, "result.json")

	candidateContent := `{
		"name": "Alice",
		"skills": ["go", "aws"],
		"resume_text": "Built services in Go.",
		"experience_years": 5
	}`
	candidateFile := filepath.Join(tmpDir, "candidate.json")
	require.NoError(t, os.WriteFile(candidateFile, []byte(candidateContent), 0644))

	cmd := exec.Command(binaryPath, "match",
		"--job", jobFile,
		"--candidate", candidateFile,
		"--out", outputFile)
	// Unset semantic backends so the score is deterministic
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=", "SEMANTIC_URL=")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, []string{"go"}, result.MatchedSkills)
	assert.Equal(t, []string{"postgres"}, result.MissingSkills)
	assert.InDelta(t, 50.0, result.MatchPercentage, 0.01)
	assert.True(t, result.Degraded)
	assert.True(t, result.ExperienceMet)
}

func TestRankCommand_ValidInput(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	jobFile := writeJobFile(t, tmpDir)
	candidatesFile := writeCandidatesFile(t, tmpDir)
	outputFile := filepath.Join(tmpDir, "ranked.json")

	cmd := exec.Command(binaryPath, "rank",
		"--job", jobFile,
		"--candidates", candidatesFile,
		"--out", outputFile)
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=", "SEMANTIC_URL=")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var matches []types.ScoredCandidate
	require.NoError(t, json.Unmarshal(data, &matches))
	require.Len(t, matches, 3)

	// Alice matches go; everyone else scores lower
	assert.Equal(t, "Alice", matches[0].Candidate.Name)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Result.MatchPercentage, matches[0].Result.MatchPercentage)
	}
}
