// Package types provides type definitions for structured data used throughout the job-fit system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// ScoredSkill is a candidate skill with its similarity to a requirement
type ScoredSkill struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SkillMatch is the result of matching one job requirement against every candidate skill
type SkillMatch struct {
	Requirement    string              `json:"requirement"`
	Priority       Priority            `json:"priority"`
	Category       RequirementCategory `json:"category"`
	MatchedSkills  []ScoredSkill       `json:"matched_skills"` // top 3, best first
	BestMatchScore float64             `json:"best_match_score"`
	UserSkillLevel SkillLevel          `json:"user_skill_level,omitempty"`
	YearsRequired  *int                `json:"years_required,omitempty"`
	YearsPossessed *float64            `json:"years_possessed,omitempty"`
	// Threshold overrides the priority's default cutoff when set
	Threshold *float64 `json:"threshold,omitempty"`
}

// Default cutoffs a best-match score must reach for a requirement to count as met
const (
	DefaultMustHaveThreshold   = 0.7
	DefaultNiceToHaveThreshold = 0.5
)

// DefaultThreshold is the cutoff for a priority when none was configured.
// Preferred requirements share the nice-to-have cutoff.
func DefaultThreshold(p Priority) float64 {
	if p == PriorityMustHave {
		return DefaultMustHaveThreshold
	}
	return DefaultNiceToHaveThreshold
}

// EffectiveThreshold is the configured Threshold, or the priority default when unset
func (m SkillMatch) EffectiveThreshold() float64 {
	if m.Threshold != nil {
		return *m.Threshold
	}
	return DefaultThreshold(m.Priority)
}

// IsMet reports whether the best match clears the threshold for its priority
func (m SkillMatch) IsMet() bool {
	return m.BestMatchScore >= m.EffectiveThreshold()
}

// BestSkill returns the name of the top matched skill, or "" when nothing matched
func (m SkillMatch) BestSkill() string {
	if len(m.MatchedSkills) == 0 {
		return ""
	}
	return m.MatchedSkills[0].Name
}

// MarshalJSON includes the derived is_met flag and the threshold it was judged against
func (m SkillMatch) MarshalJSON() ([]byte, error) {
	type alias SkillMatch
	return json.Marshal(struct {
		alias
		Threshold float64 `json:"threshold"`
		IsMet     bool    `json:"is_met"`
	}{alias: alias(m), Threshold: m.EffectiveThreshold(), IsMet: m.IsMet()})
}

// ExperienceMatch scores one candidate experience against the job as a whole
type ExperienceMatch struct {
	ExperienceIndex      int      `json:"experience_index"`
	ExperienceRef        string   `json:"experience_ref"`
	RelevanceScore       float64  `json:"relevance_score"`
	MatchingKeywords     []string `json:"matching_keywords"`
	RelevantAchievements []string `json:"relevant_achievements"`
	YearsInRole          float64  `json:"years_in_role"`
	RecencyBonus         float64  `json:"recency_bonus"`
}

// CompatibilityScore is the weighted 0-100 summary of candidate-job fit
type CompatibilityScore struct {
	Overall             float64 `json:"overall"`
	TechnicalSkills     float64 `json:"technical_skills"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	RequirementsMet     float64 `json:"requirements_met"`
	SoftSkills          float64 `json:"soft_skills"`
	EducationMatch      float64 `json:"education_match"`
	MustHaveMet         int     `json:"must_have_met"`
	MustHaveTotal       int     `json:"must_have_total"`
	NiceToHaveMet       int     `json:"nice_to_have_met"`
	NiceToHaveTotal     int     `json:"nice_to_have_total"`
}

// MatchLevel is derived from Overall on every call
func (c CompatibilityScore) MatchLevel() MatchLevel {
	return MatchLevelFor(c.Overall)
}

// AllMustHavesMet is true when every must-have requirement was met, including when there are none
func (c CompatibilityScore) AllMustHavesMet() bool {
	return c.MustHaveMet == c.MustHaveTotal
}

// MarshalJSON includes the derived match_level
func (c CompatibilityScore) MarshalJSON() ([]byte, error) {
	type alias CompatibilityScore
	return json.Marshal(struct {
		alias
		MatchLevel MatchLevel `json:"match_level"`
	}{alias: alias(c), MatchLevel: c.MatchLevel()})
}

// QualificationGap is one unmet requirement with a remediation suggestion
type QualificationGap struct {
	Requirement           string     `json:"requirement"`
	Importance            Importance `json:"importance"`
	GapType               GapType    `json:"gap_type"`
	ImprovementDifficulty Difficulty `json:"improvement_difficulty"`
	SuggestedAction       string     `json:"suggested_action"`
	EstimatedTime         string     `json:"estimated_time,omitempty"`
}

// ApplicationStrategy is the positioning advice derived from an analysis
type ApplicationStrategy struct {
	PositioningStatement   string                `json:"positioning_statement"`
	KeyStrengths           []string              `json:"key_strengths"`
	ExperiencesToHighlight []string              `json:"experiences_to_highlight"`
	SkillsToEmphasize      []string              `json:"skills_to_emphasize"`
	KeywordsToInclude      []string              `json:"keywords_to_include"`
	GapsToAddress          []string              `json:"gaps_to_address"`
	Tone                   Tone                  `json:"tone"`
	CustomizationPriority  CustomizationPriority `json:"customization_priority"`
	EstimatedSuccessRate   float64               `json:"estimated_success_rate"`
}

// KeywordPlacement splits missing keywords by where they should be worked in
type KeywordPlacement struct {
	Summary    []string `json:"summary"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
}

// ATSReport is the raw keyword-overlap view of a job/profile pair
type ATSReport struct {
	MatchRate       float64          `json:"match_rate"`
	MissingKeywords []string         `json:"missing_keywords"`
	Suggestions     KeywordPlacement `json:"suggestions"`
}

// AnalysisResult is the complete output for one (job, profile) pair
type AnalysisResult struct {
	JobRef             string              `json:"job_ref"`
	ProfileRef         string              `json:"profile_ref"`
	EmbeddingModel     string              `json:"embedding_model"`
	Compatibility      CompatibilityScore  `json:"compatibility"`
	SkillMatches       []SkillMatch        `json:"skill_matches"`
	ExperienceMatches  []ExperienceMatch   `json:"experience_matches"`
	Gaps               []QualificationGap  `json:"gaps"`
	Strategy           ApplicationStrategy `json:"strategy"`
	Confidence         float64             `json:"confidence"`
	ATSMatchRate       float64             `json:"ats_match_rate"`
	MissingKeywords    []string            `json:"missing_keywords"`
	KeywordSuggestions KeywordPlacement    `json:"keyword_suggestions"`
}
