package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/talent-match/internal/shortlist"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		MatchedSkills:   []string{"go", "postgres"},
		MissingSkills:   []string{"kubernetes"},
		SkillScore:      0.67,
		SemanticScore:   0.8,
		MatchPercentage: 72.2,
	}

	p.PrintMatchResult("MATCH: Alice vs Backend Engineer", result)
	output := buf.String()

	assert.Contains(t, output, "MATCH: Alice vs Backend Engineer")
	assert.Contains(t, output, "72.2%")
	assert.Contains(t, output, "go")
	assert.Contains(t, output, "postgres")
	assert.Contains(t, output, "kubernetes")
	assert.Contains(t, output, "Semantic: 0.80")
}

func TestPrintMatchResult_Degraded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		MatchedSkills:   []string{"python"},
		SkillScore:      0.5,
		MatchPercentage: 50.0,
		Degraded:        true,
	}

	p.PrintMatchResult("MATCH", result)
	output := buf.String()

	assert.Contains(t, output, "semantic scoring unavailable")
	assert.NotContains(t, output, "Semantic: ")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult("MATCH", nil)

	assert.Empty(t, buf.String())
}

func TestPrintShortlist(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entries := []shortlist.Entry{
		{
			Candidate: types.CandidateProfile{Name: "Alice", Skills: []string{"go", "aws"}},
			Score:     3,
		},
		{
			Candidate: types.CandidateProfile{Name: "Bob", Skills: []string{"python"}},
			Score:     1,
		},
	}

	p.PrintShortlist(entries)
	output := buf.String()

	assert.Contains(t, output, "SHORTLIST")
	assert.Contains(t, output, "Shortlisted 2 candidates")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "Keywords hit: 3")

	// Alice ranks above Bob
	assert.Less(t, strings.Index(output, "Alice"), strings.Index(output, "Bob"))
}

func TestPrintShortlist_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintShortlist(nil)

	assert.Contains(t, buf.String(), "NO MATCHING CANDIDATES")
}

func TestPrintShortlist_TruncatesLongList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	entries := make([]shortlist.Entry, 8)
	for i := range entries {
		entries[i] = shortlist.Entry{
			Candidate: types.CandidateProfile{Name: "Candidate"},
			Score:     8 - i,
		}
	}

	p.PrintShortlist(entries)
	output := buf.String()

	assert.Contains(t, output, "and 3 more candidates")
}

func TestPrintRankedCandidates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	matches := []types.ScoredCandidate{
		{
			Candidate: types.CandidateProfile{Name: "Alice"},
			Result: types.MatchResult{
				MatchPercentage: 90.0,
				MatchedSkills:   []string{"go", "postgres"},
			},
		},
		{
			Candidate: types.CandidateProfile{Name: "Bob"},
			Result: types.MatchResult{
				MatchPercentage: 40.0,
				Degraded:        true,
			},
		},
	}

	p.PrintRankedCandidates(matches)
	output := buf.String()

	assert.Contains(t, output, "RANKED CANDIDATES")
	assert.Contains(t, output, "Total candidates scored: 2")
	assert.Contains(t, output, "90.0%")
	assert.Contains(t, output, "(degraded)")
}

func TestPrintRankedCandidates_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedCandidates(nil)

	assert.Empty(t, buf.String())
}
