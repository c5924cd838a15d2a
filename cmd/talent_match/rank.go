package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/talent-match/internal/observability"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against a job requirement",
	Long:  "Scores every candidate in a candidates JSON file against a job requirement and outputs them sorted by match percentage.",
	RunE:  runRank,
}

var (
	rankJob        string
	rankCandidates string
	rankOutput     string
	rankVerbose    bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to input JobRequirement JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidates, "candidates", "i", "", "Path to input candidates JSON file (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ranked candidates JSON file (default: stdout)")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a formatted ranking summary")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	job, err := loadJobRequirement(rankJob)
	if err != nil {
		return fmt.Errorf("failed to load job requirement: %w", err)
	}

	candidates, err := loadCandidates(rankCandidates)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	service, closeScorer, err := newScoringService()
	if err != nil {
		return err
	}
	defer closeScorer()

	matches := service.ScoreCandidates(context.Background(), job, candidates)

	jsonOutput, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ranked candidates to JSON: %w", err)
	}

	if rankOutput != "" {
		outputDir := filepath.Dir(rankOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}
		}
		if err := os.WriteFile(rankOutput, jsonOutput, 0644); err != nil {
			return fmt.Errorf("failed to write ranked candidates to output file %s: %w", rankOutput, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Ranked %d candidates to %s\n", len(matches), rankOutput)
	} else if !rankVerbose {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
	}

	if rankVerbose {
		observability.NewPrinter(os.Stdout).PrintRankedCandidates(matches)
	}

	return nil
}
