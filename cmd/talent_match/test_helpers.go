package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath locates the built talent_match binary for end-to-end CLI
// tests, skipping when it has not been built or in short mode.
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	path := filepath.Join("..", "..", "bin", "talent_match")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", path)
	}
	return path
}
