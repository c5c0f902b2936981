// Package types provides type definitions for structured data used throughout the job-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Priority is how strongly a job posting asks for a requirement
type Priority string

// Priority values
const (
	PriorityMustHave   Priority = "must_have"
	PriorityNiceToHave Priority = "nice_to_have"
	PriorityPreferred  Priority = "preferred"
)

// UnmarshalText rejects unknown priorities so the engine never sees one
func (p *Priority) UnmarshalText(text []byte) error {
	switch v := Priority(text); v {
	case PriorityMustHave, PriorityNiceToHave, PriorityPreferred:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown priority %q", string(text))
	}
}

// RequirementCategory classifies what kind of qualification a requirement asks for
type RequirementCategory string

// RequirementCategory values
const (
	CategoryTechnical     RequirementCategory = "technical"
	CategoryExperience    RequirementCategory = "experience"
	CategoryEducation     RequirementCategory = "education"
	CategoryCertification RequirementCategory = "certification"
	CategorySoftSkill     RequirementCategory = "soft_skill"
	CategoryOther         RequirementCategory = "other"
)

// UnmarshalText rejects unknown categories
func (c *RequirementCategory) UnmarshalText(text []byte) error {
	switch v := RequirementCategory(text); v {
	case CategoryTechnical, CategoryExperience, CategoryEducation,
		CategoryCertification, CategorySoftSkill, CategoryOther:
		*c = v
		return nil
	default:
		return fmt.Errorf("unknown requirement category %q", string(text))
	}
}

// SkillLevel is the candidate's self-assessed proficiency
type SkillLevel string

// SkillLevel values
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// UnmarshalText rejects unknown skill levels
func (l *SkillLevel) UnmarshalText(text []byte) error {
	switch v := SkillLevel(text); v {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		*l = v
		return nil
	default:
		return fmt.Errorf("unknown skill level %q", string(text))
	}
}

// CompanySize buckets the hiring company
type CompanySize string

// CompanySize values
const (
	SizeStartup    CompanySize = "startup"
	SizeSmall      CompanySize = "small"
	SizeMedium     CompanySize = "medium"
	SizeLarge      CompanySize = "large"
	SizeEnterprise CompanySize = "enterprise"
)

// UnmarshalText rejects unknown company sizes
func (s *CompanySize) UnmarshalText(text []byte) error {
	switch v := CompanySize(text); v {
	case SizeStartup, SizeSmall, SizeMedium, SizeLarge, SizeEnterprise:
		*s = v
		return nil
	default:
		return fmt.Errorf("unknown company size %q", string(text))
	}
}

// MatchLevel is the discrete label for an overall compatibility score
type MatchLevel string

// MatchLevel values
const (
	MatchPoor      MatchLevel = "poor"
	MatchWeak      MatchLevel = "weak"
	MatchModerate  MatchLevel = "moderate"
	MatchStrong    MatchLevel = "strong"
	MatchExcellent MatchLevel = "excellent"
)

// MatchLevelFor maps an overall score (0-100) to its label
func MatchLevelFor(overall float64) MatchLevel {
	switch {
	case overall >= 85:
		return MatchExcellent
	case overall >= 70:
		return MatchStrong
	case overall >= 55:
		return MatchModerate
	case overall >= 40:
		return MatchWeak
	default:
		return MatchPoor
	}
}

// Importance ranks a qualification gap
type Importance string

// Importance values
const (
	ImportanceCritical   Importance = "critical"
	ImportanceImportant  Importance = "important"
	ImportanceBeneficial Importance = "beneficial"
)

// GapType is what kind of qualification is missing
type GapType string

// GapType values
const (
	GapSkill         GapType = "skill"
	GapExperience    GapType = "experience"
	GapEducation     GapType = "education"
	GapCertification GapType = "certification"
)

// Difficulty estimates how hard a gap is to close
type Difficulty string

// Difficulty values
const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyModerate  Difficulty = "moderate"
	DifficultyDifficult Difficulty = "difficult"
)

// Tone is the recommended voice for application material
type Tone string

// Tone values
const (
	ToneCasual       Tone = "casual"
	ToneProfessional Tone = "professional"
	ToneTechnical    Tone = "technical"
	ToneBalanced     Tone = "balanced"
)

// CustomizationPriority is how much tailoring an application deserves
type CustomizationPriority string

// CustomizationPriority values
const (
	CustomizationLow    CustomizationPriority = "low"
	CustomizationMedium CustomizationPriority = "medium"
	CustomizationHigh   CustomizationPriority = "high"
)
