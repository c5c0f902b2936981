// Package types provides type definitions for structured data used throughout the job-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// Profile is the candidate profile produced by upstream ingestion
type Profile struct {
	ID              string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string       `json:"name,omitempty" yaml:"name,omitempty"`
	Title           string       `json:"title" yaml:"title"`
	YearsExperience float64      `json:"years_experience" yaml:"years_experience" validate:"gte=0"`
	Skills          []Skill      `json:"skills" yaml:"skills" validate:"dive"`
	Experiences     []Experience `json:"experiences" yaml:"experiences" validate:"dive"`
	Education       []Education  `json:"education" yaml:"education" validate:"dive"`
}

// Skill is a single candidate skill
type Skill struct {
	Name     string     `json:"name" yaml:"name" validate:"required"`
	Level    SkillLevel `json:"level" yaml:"level" validate:"required,oneof=beginner intermediate advanced expert"`
	Years    *float64   `json:"years,omitempty" yaml:"years,omitempty" validate:"omitempty,gte=0"`
	Keywords []string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// CompositeText is the text embedded for skill matching: the name followed by its keywords
func (s Skill) CompositeText() string {
	if len(s.Keywords) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Keywords, " ")
}

// Experience is one position held by the candidate.
// Current is true iff EndDate is empty.
type Experience struct {
	Company      string   `json:"company" yaml:"company" validate:"required"`
	Title        string   `json:"title" yaml:"title" validate:"required"`
	StartDate    string   `json:"start_date" yaml:"start_date" validate:"required"`
	EndDate      string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Current      bool     `json:"current" yaml:"current"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
}

// Ref is a short human-readable handle for an experience
func (e Experience) Ref() string {
	return e.Title + " at " + e.Company
}

// CompositeText is the text embedded for experience matching
func (e Experience) CompositeText() string {
	var sb strings.Builder
	sb.WriteString(e.Ref())
	sb.WriteString(".")
	if e.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSuffix(e.Description, "."))
		sb.WriteString(".")
	}
	if len(e.Technologies) > 0 {
		sb.WriteString(" Technologies: ")
		sb.WriteString(strings.Join(e.Technologies, ", "))
		sb.WriteString(".")
	}
	if len(e.Achievements) > 0 {
		sb.WriteString(" Achievements: ")
		sb.WriteString(strings.Join(e.Achievements, "; "))
	}
	return sb.String()
}

// Education is a degree or program on the profile
type Education struct {
	Institution    string `json:"institution" yaml:"institution" validate:"required"`
	Degree         string `json:"degree" yaml:"degree"`
	Field          string `json:"field,omitempty" yaml:"field,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty" yaml:"graduation_year,omitempty"`
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseDate parses the date formats accepted on experiences: YYYY-MM-DD, YYYY-MM, or YYYY.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
