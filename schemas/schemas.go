// Package schemas bundles the JSON Schemas for job, profile and analysis documents.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names
const (
	Job            = "job.schema.json"
	Profile        = "profile.schema.json"
	AnalysisResult = "analysis_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Names lists every bundled schema
func Names() []string {
	return []string{Job, Profile, AnalysisResult}
}

// Load returns the content of a bundled schema
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return string(data), nil
}
