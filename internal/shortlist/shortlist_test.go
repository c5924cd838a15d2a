package shortlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/types"
)

func TestShortlist_RanksByKeywordHits(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Alice", Skills: []string{"Python"}, ResumeText: "Backend engineer, Python and Docker"},
		{Name: "Bob", Skills: []string{"Python", "Docker", "AWS"}, ResumeText: "Python, Docker and AWS in production"},
		{Name: "Carol", Skills: []string{"Figma"}, ResumeText: "Product designer"},
	}

	entries := Shortlist(candidates, []string{"python", "docker", "aws"})

	require.Len(t, entries, 2)
	assert.Equal(t, "Bob", entries[0].Candidate.Name)
	assert.Equal(t, 3, entries[0].Score)
	assert.Equal(t, "Alice", entries[1].Candidate.Name)
	assert.Equal(t, 2, entries[1].Score)
}

func TestShortlist_SkillsOnlyCandidate(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Dana", Skills: []string{"aws"}, ResumeText: ""},
	}

	entries := Shortlist(candidates, []string{"aws", "node"})

	require.Len(t, entries, 1)
	assert.Equal(t, "Dana", entries[0].Candidate.Name)
	assert.Equal(t, 1, entries[0].Score)
}

func TestShortlist_ExcludesZeroScores(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Eve", Skills: []string{"Rust"}, ResumeText: "Systems programming"},
	}

	entries := Shortlist(candidates, []string{"python"})
	assert.Empty(t, entries)
}

func TestShortlist_CaseInsensitive(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Frank", Skills: []string{"PYTHON"}, ResumeText: "Loves TypeScript"},
	}

	entries := Shortlist(candidates, []string{"Python", "typescript"})

	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Score)
}

func TestShortlist_TiesKeepInputOrder(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "G1", Skills: []string{"go"}},
		{Name: "G2", Skills: []string{"go"}},
		{Name: "G3", Skills: []string{"go"}},
	}

	entries := Shortlist(candidates, []string{"go"})

	require.Len(t, entries, 3)
	assert.Equal(t, "G1", entries[0].Candidate.Name)
	assert.Equal(t, "G2", entries[1].Candidate.Name)
	assert.Equal(t, "G3", entries[2].Candidate.Name)
}

func TestShortlist_EmptyKeywords(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Hana", Skills: []string{"python"}},
	}

	assert.Empty(t, Shortlist(candidates, nil))
	assert.Empty(t, Shortlist(candidates, []string{"  ", ""}))
}

func TestShortlist_DuplicateKeywordsCountOnce(t *testing.T) {
	candidates := []types.CandidateProfile{
		{Name: "Ivan", Skills: []string{"python"}},
	}

	entries := Shortlist(candidates, []string{"python", "Python", " python "})

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Score)
}
