package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/talent-match/internal/fetch"
	"github.com/spf13/cobra"
)

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job",
	Short: "Fetch a job posting from a URL",
	Long:  "Fetches a job posting page, detects the hosting platform, extracts the title and description text, and outputs the posting as JSON.",
	RunE:  runFetchJob,
}

var (
	fetchJobURL    string
	fetchJobOutput string
)

func init() {
	fetchJobCmd.Flags().StringVarP(&fetchJobURL, "url", "u", "", "URL to fetch the job posting from (required)")
	fetchJobCmd.Flags().StringVarP(&fetchJobOutput, "out", "o", "", "Path to output posting JSON file (default: stdout)")

	if err := fetchJobCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	posting, err := fetch.JobPosting(ctx, fetchJobURL, fetch.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to fetch job posting: %w", err)
	}

	jsonOutput, err := json.MarshalIndent(posting, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal posting to JSON: %w", err)
	}

	if fetchJobOutput != "" {
		outputDir := filepath.Dir(fetchJobOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}
		}
		if err := os.WriteFile(fetchJobOutput, jsonOutput, 0644); err != nil {
			return fmt.Errorf("failed to write posting to output file %s: %w", fetchJobOutput, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Fetched %q (%s) to %s\n", posting.Title, posting.Platform, fetchJobOutput)
	} else {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
	}

	return nil
}
