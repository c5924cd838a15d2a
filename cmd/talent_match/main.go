// Package main provides the entry point for the Talent Match HTTP API server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_match",
	Short: "Talent Match HTTP API Server",
	Long:  "Talent Match scores candidate profiles against job requirements, ranks applicants, and shortlists candidates by keyword, exposed via REST API and CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
