package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
	"github.com/jonathan/talent-match/internal/schemas"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/semantic"
	"github.com/jonathan/talent-match/internal/types"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a candidate against a job requirement",
	Long:  "Computes the match score for a single candidate against a job requirement from JSON files, blending skill overlap with semantic similarity when a scorer is configured.",
	RunE:  runMatch,
}

var (
	matchJob       string
	matchCandidate string
	matchOutput    string
	matchVerbose   bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to input JobRequirement JSON file (required)")
	matchCmd.Flags().StringVarP(&matchCandidate, "candidate", "p", "", "Path to input CandidateProfile JSON file (required)")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output MatchResult JSON file (default: stdout)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted score breakdown")

	if err := matchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	job, err := loadJobRequirement(matchJob)
	if err != nil {
		return fmt.Errorf("failed to load job requirement: %w", err)
	}

	candidateContent, err := os.ReadFile(matchCandidate)
	if err != nil {
		return fmt.Errorf("failed to read candidate file %s: %w", matchCandidate, err)
	}

	var candidate types.CandidateProfile
	if err := json.Unmarshal(candidateContent, &candidate); err != nil {
		return fmt.Errorf("failed to unmarshal candidate JSON: %w", err)
	}

	service, closeScorer, err := newScoringService()
	if err != nil {
		return err
	}
	defer closeScorer()

	result := service.ScoreApplication(context.Background(), job, &candidate)

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match result to JSON: %w", err)
	}

	if matchOutput != "" {
		outputDir := filepath.Dir(matchOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}
		}
		if err := os.WriteFile(matchOutput, jsonOutput, 0644); err != nil {
			return fmt.Errorf("failed to write match result to output file %s: %w", matchOutput, err)
		}

		// Output validation is a safety check, not a requirement.
		if schemaPath := schemas.ResolveSchemaPath("schemas/match_result.schema.json"); schemaPath != "" {
			if err := schemas.ValidateJSON(schemaPath, matchOutput); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
			}
		}

		_, _ = fmt.Fprintf(os.Stdout, "Match: %.1f%% (%s)\n", result.MatchPercentage, matchOutput)
	} else if !matchVerbose {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
	}

	if matchVerbose {
		title := fmt.Sprintf("MATCH: %s vs %s", candidate.Name, job.Title)
		observability.NewPrinter(os.Stdout).PrintMatchResult(title, &result)
	}

	return nil
}

func loadJobRequirement(path string) (*types.JobRequirement, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	var job types.JobRequirement
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job JSON: %w", err)
	}

	return &job, nil
}

// newScoringService builds a scoring service from the environment. Without a
// semantic backend the service runs degraded on skill overlap alone.
func newScoringService() (*scoring.Service, func(), error) {
	weights, err := matching.WeightsFromEnv()
	if err != nil {
		return nil, nil, err
	}

	closeScorer := func() {}

	var scorer semantic.Scorer
	if semanticURL := os.Getenv("SEMANTIC_URL"); semanticURL != "" {
		scorer = semantic.NewHTTPScorer(semanticURL, 30*time.Second)
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := semantic.NewGeminiScorer(context.Background(), apiKey, semantic.DefaultGeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create semantic scorer: %w", err)
		}
		scorer = gemini
		closeScorer = func() { _ = gemini.Close() }
	} else {
		log.Printf("No semantic backend configured; scoring on skill overlap only")
	}

	return scoring.NewService(scorer, weights), closeScorer, nil
}
