// Package analysis runs the full job/profile compatibility pipeline.
package analysis

import "fmt"

// InvalidInputError means there is nothing meaningful to score: the job has no
// requirements, or the profile has neither skills nor experiences.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

// ConfigurationError is returned by NewEngine when thresholds, weights or
// collaborators are unusable.
type ConfigurationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}
