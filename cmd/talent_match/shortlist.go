package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/shortlist"
	"github.com/jonathan/talent-match/internal/skills"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/spf13/cobra"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Shortlist candidates by keyword",
	Long:  "Scans a candidates JSON file for the given keywords, ranks candidates by distinct keyword hits, and outputs the shortlist as JSON.",
	RunE:  runShortlist,
}

var (
	shortlistCandidates string
	shortlistKeywords   string
	shortlistOutput     string
	shortlistConfig     string
	shortlistVerbose    bool
)

func init() {
	shortlistCmd.Flags().StringVarP(&shortlistCandidates, "candidates", "i", "", "Path to input candidates JSON file")
	shortlistCmd.Flags().StringVarP(&shortlistKeywords, "keywords", "k", "", "Comma-separated keywords to match (required)")
	shortlistCmd.Flags().StringVarP(&shortlistOutput, "out", "o", "", "Path to output shortlist JSON file (default: stdout)")
	shortlistCmd.Flags().StringVarP(&shortlistConfig, "config", "c", "", "Path to JSON config file")
	shortlistCmd.Flags().BoolVarP(&shortlistVerbose, "verbose", "v", false, "Print a formatted shortlist summary")

	if err := shortlistCmd.MarkFlagRequired("keywords"); err != nil {
		panic(fmt.Sprintf("failed to mark keywords flag as required: %v", err))
	}

	rootCmd.AddCommand(shortlistCmd)
}

func runShortlist(_ *cobra.Command, _ []string) error {
	candidatesPath := shortlistCandidates
	verbose := shortlistVerbose

	if shortlistConfig != "" {
		fileCfg, err := config.LoadConfig(shortlistConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		if candidatesPath == "" {
			candidatesPath = fileCfg.Candidates
		}
		if fileCfg.Verbose {
			verbose = true
		}
	}

	if candidatesPath == "" {
		return fmt.Errorf("candidates file is required (--candidates flag or 'candidates' config field)")
	}

	keywords := skills.Split(shortlistKeywords)
	if len(keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}

	candidates, err := loadCandidates(candidatesPath)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	entries := shortlist.Shortlist(candidates, keywords)

	jsonOutput, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal shortlist to JSON: %w", err)
	}

	if shortlistOutput != "" {
		outputDir := filepath.Dir(shortlistOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}
		}
		if err := os.WriteFile(shortlistOutput, jsonOutput, 0644); err != nil {
			return fmt.Errorf("failed to write shortlist to output file %s: %w", shortlistOutput, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Shortlisted %d of %d candidates to %s\n", len(entries), len(candidates), shortlistOutput)
	} else if !verbose {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
	}

	if verbose {
		observability.NewPrinter(os.Stdout).PrintShortlist(entries)
	}

	return nil
}

// loadCandidates reads and parses a candidates JSON file. The file holds an
// array of candidate profiles. Validation against the schema is a safety
// check, not a requirement.
func loadCandidates(path string) ([]types.CandidateProfile, error) {
	if schemaPath := schemas.ResolveSchemaPath("schemas/candidates.schema.json"); schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: candidates file validation failed: %v\n", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file %s: %w", path, err)
	}

	var candidates []types.CandidateProfile
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidates JSON: %w", err)
	}

	return candidates, nil
}
