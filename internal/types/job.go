// Package types provides type definitions for structured data used throughout the job-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Job represents a structured job posting produced by upstream extraction
type Job struct {
	ID                string        `json:"id,omitempty" yaml:"id,omitempty"`
	Title             string        `json:"title" yaml:"title" validate:"required"`
	Description       string        `json:"description" yaml:"description"`
	Responsibilities  []string      `json:"responsibilities" yaml:"responsibilities"`
	Requirements      []Requirement `json:"requirements" yaml:"requirements" validate:"required,min=1,dive"`
	TechnicalSkills   []string      `json:"technical_skills" yaml:"technical_skills"`
	ToolsTechnologies []string      `json:"tools_technologies" yaml:"tools_technologies"`
	SoftSkills        []string      `json:"soft_skills" yaml:"soft_skills"`
	Company           Company       `json:"company" yaml:"company"`
}

// Company identifies the hiring organization
type Company struct {
	Name string      `json:"name" yaml:"name"`
	Size CompanySize `json:"size,omitempty" yaml:"size,omitempty" validate:"omitempty,oneof=startup small medium large enterprise"`
}

// Requirement is a single qualification criterion from a job posting
type Requirement struct {
	Text          string              `json:"text" yaml:"text" validate:"required"`
	Priority      Priority            `json:"priority" yaml:"priority" validate:"required,oneof=must_have nice_to_have preferred"`
	Category      RequirementCategory `json:"category" yaml:"category" validate:"required,oneof=technical experience education certification soft_skill other"`
	YearsRequired *int                `json:"years_required,omitempty" yaml:"years_required,omitempty" validate:"omitempty,gte=0"`
}
