// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-match/internal/shortlist"
	"github.com/jonathan/talent-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable breakdown of a match score.
func (p *Printer) PrintMatchResult(title string, result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Match:    %.1f%%\n", result.MatchPercentage))
	sb.WriteString(fmt.Sprintf("Skills:   %.2f", result.SkillScore))
	if result.Degraded {
		sb.WriteString("  (semantic scoring unavailable)")
	} else {
		sb.WriteString(fmt.Sprintf("  Semantic: %.2f", result.SemanticScore))
	}
	sb.WriteString("\n\n")

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("Matched:\n")
		count := min(len(result.MatchedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MatchedSkills[i]))
		}
		if len(result.MatchedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MatchedSkills)-maxItemsToShow))
		}
	}

	if len(result.MissingSkills) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(result.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MissingSkills[i]))
		}
		if len(result.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingSkills)-maxItemsToShow))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintShortlist outputs shortlisted candidates with their keyword hit counts.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintShortlist(entries []shortlist.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHING CANDIDATES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Shortlisted %d candidates:\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, entry.Candidate.Name))
		sb.WriteString(fmt.Sprintf("    Keywords hit: %d\n", entry.Score))
		if len(entry.Candidate.Skills) > 0 {
			skillsLine := strings.Join(entry.Candidate.Skills, ", ")
			if len(skillsLine) > 40 {
				skillsLine = skillsLine[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skillsLine))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(entries)-maxItemsToShow))
	}

	p.printBox("SHORTLIST", sb.String())
}

// PrintRankedCandidates outputs scored candidates in rank order.
func (p *Printer) PrintRankedCandidates(matches []types.ScoredCandidate) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates scored: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.Candidate.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.1f%%", match.Result.MatchPercentage))
		if match.Result.Degraded {
			sb.WriteString(" (degraded)")
		}
		sb.WriteString("\n")
		if len(match.Result.MatchedSkills) > 0 {
			matched := strings.Join(match.Result.MatchedSkills, ", ")
			if len(matched) > 40 {
				matched = matched[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", matched))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(matches)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}
