package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/job-fit/internal/schemas"
	"github.com/jonathan/job-fit/internal/types"
	bundled "github.com/jonathan/job-fit/schemas"
)

// writeJSON writes v as indented JSON to path, or to w when path is empty or "-"
func writeJSON(w io.Writer, path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprintln(w, string(jsonOutput))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// validateResults checks each result against the bundled analysis schema
func validateResults(results []*types.AnalysisResult) error {
	schema, err := bundled.Load(bundled.AnalysisResult)
	if err != nil {
		return err
	}
	for i, r := range results {
		if err := schemas.ValidateValue(schema, r); err != nil {
			return fmt.Errorf("result %d failed schema validation: %w", i, err)
		}
	}
	return nil
}
