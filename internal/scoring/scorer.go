package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/job-fit/internal/keywords"
	"github.com/jonathan/job-fit/internal/types"
)

// Fallback sub-scores used when nothing qualifies for a bucket
const (
	defaultTechnicalScore  = 50.0
	defaultExperienceScore = 40.0
	defaultSoftSkillsScore = 60.0
	emptyNiceToHaveRate    = 0.5
	topExperiences         = 5
)

var technicalTerms = []string{
	"programming", "software", "technical", "engineering", "development", "developer",
	"language", "framework", "library", "database", "cloud", "api", "architecture",
	"infrastructure", "devops", "testing", "security", "backend", "frontend", "data",
	"python", "java", "go", "golang", "javascript", "typescript", "rust", "c++", "c#",
	"sql", "aws", "gcp", "azure", "docker", "kubernetes", "linux", "react",
}

var softSkillTerms = []string{
	"communication", "communicate", "leadership", "lead", "team", "teams", "teamwork",
	"collaboration", "collaborative", "collaborate", "mentoring", "mentor", "interpersonal",
	"stakeholder", "stakeholders",
}

var educationTerms = []string{
	"degree", "bachelor", "bachelors", "master", "masters", "phd", "doctorate",
	"diploma", "university", "education", "msc", "bsc", "mba",
}

// IsTechnical reports whether a requirement belongs to the technical bucket, either by
// category or because its text names a technical term or one of the job's listed technologies.
func IsTechnical(req types.Requirement, job *types.Job) bool {
	if req.Category == types.CategoryTechnical {
		return true
	}
	if keywords.ContainsAny(req.Text, technicalTerms) {
		return true
	}
	if job != nil {
		return keywords.ContainsAny(req.Text, job.TechnicalSkills) || keywords.ContainsAny(req.Text, job.ToolsTechnologies)
	}
	return false
}

// IsSoftSkill reports whether a requirement is about interpersonal skills
func IsSoftSkill(req types.Requirement) bool {
	return req.Category == types.CategorySoftSkill || keywords.ContainsAny(req.Text, softSkillTerms)
}

// IsEducation reports whether a requirement asks for formal education
func IsEducation(req types.Requirement) bool {
	return req.Category == types.CategoryEducation || keywords.ContainsAny(req.Text, educationTerms)
}

// Scorer computes CompatibilityScore values with a fixed weight set
type Scorer struct {
	weights Weights
}

// NewScorer validates the weights and returns a scorer
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring weights: %w", err)
	}
	return &Scorer{weights: w}, nil
}

// Weights returns the weights in use
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score is a pure function of its inputs. skillMatches must be in requirement order
// (one per job requirement).
func (s *Scorer) Score(job *types.Job, profile *types.Profile, skillMatches []types.SkillMatch, expMatches []types.ExperienceMatch) types.CompatibilityScore {
	var technical, soft []float64
	hasEducationReq := false

	for i, m := range skillMatches {
		req := requirementFor(job, m, i)
		if IsTechnical(req, job) {
			technical = append(technical, m.BestMatchScore*100)
		}
		if IsSoftSkill(req) {
			soft = append(soft, m.BestMatchScore*100)
		}
		if IsEducation(req) {
			hasEducationReq = true
		}
	}

	technicalScore := meanOr(technical, defaultTechnicalScore)
	softScore := meanOr(soft, defaultSoftSkillsScore)
	experienceScore := experienceRelevance(expMatches)
	educationScore := educationMatch(hasEducationReq, len(profile.Education) > 0)

	counts := countRequirements(skillMatches)
	requirementsScore := requirementsMet(counts)

	overall := technicalScore*s.weights.Technical +
		experienceScore*s.weights.Experience +
		requirementsScore*s.weights.RequirementsMet +
		softScore*s.weights.SoftSkills +
		educationScore*s.weights.Education

	return types.CompatibilityScore{
		Overall:             round1(clamp(overall, 0, 100)),
		TechnicalSkills:     round1(technicalScore),
		ExperienceRelevance: round1(experienceScore),
		RequirementsMet:     round1(requirementsScore),
		SoftSkills:          round1(softScore),
		EducationMatch:      round1(educationScore),
		MustHaveMet:         counts.mustHaveMet,
		MustHaveTotal:       counts.mustHaveTotal,
		NiceToHaveMet:       counts.niceToHaveMet,
		NiceToHaveTotal:     counts.niceToHaveTotal,
	}
}

// requirementFor recovers the requirement behind a match; matches carry enough to
// classify on their own when the job list does not line up.
func requirementFor(job *types.Job, m types.SkillMatch, i int) types.Requirement {
	if job != nil && i < len(job.Requirements) && job.Requirements[i].Text == m.Requirement {
		return job.Requirements[i]
	}
	return types.Requirement{Text: m.Requirement, Priority: m.Priority, Category: m.Category}
}

type requirementCounts struct {
	mustHaveMet, mustHaveTotal     int
	niceToHaveMet, niceToHaveTotal int
}

// countRequirements buckets preferred requirements with nice-to-haves
func countRequirements(matches []types.SkillMatch) requirementCounts {
	var c requirementCounts
	for _, m := range matches {
		if m.Priority == types.PriorityMustHave {
			c.mustHaveTotal++
			if m.IsMet() {
				c.mustHaveMet++
			}
			continue
		}
		c.niceToHaveTotal++
		if m.IsMet() {
			c.niceToHaveMet++
		}
	}
	return c
}

func requirementsMet(c requirementCounts) float64 {
	mustRate := 1.0
	if c.mustHaveTotal > 0 {
		mustRate = float64(c.mustHaveMet) / float64(c.mustHaveTotal)
	}
	niceRate := emptyNiceToHaveRate
	if c.niceToHaveTotal > 0 {
		niceRate = float64(c.niceToHaveMet) / float64(c.niceToHaveTotal)
	}
	return mustRate*70 + niceRate*30
}

// experienceRelevance averages the top five experiences; input order is not assumed
func experienceRelevance(matches []types.ExperienceMatch) float64 {
	if len(matches) == 0 {
		return defaultExperienceScore
	}
	scores := make([]float64, len(matches))
	for i, m := range matches {
		scores[i] = m.RelevanceScore * 100
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > topExperiences {
		scores = scores[:topExperiences]
	}
	return meanOr(scores, defaultExperienceScore)
}

func educationMatch(required, hasEducation bool) float64 {
	switch {
	case !required:
		return 100
	case hasEducation:
		return 80
	default:
		return 40
	}
}

func meanOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
