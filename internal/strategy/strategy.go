// Package strategy derives application positioning advice from a completed analysis.
package strategy

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/job-fit/internal/keywords"
	"github.com/jonathan/job-fit/internal/types"
)

// Limits on list lengths in the generated strategy
const (
	maxKeyStrengths       = 5
	maxExperienceStrength = 2
	maxHighlights         = 3
	maxSkillsToEmphasize  = 6
	maxKeywords           = 15
	maxTechnicalKeywords  = 10
	maxToolKeywords       = 5
	maxRequirementTokens  = 5
	maxGapsToAddress      = 3
)

// Score cutoffs used by the generator
const (
	strongSkillAbove      = 0.8
	strongExperienceAbove = 0.7
	highlightAbove        = 0.6
	criticalGapPenalty    = 0.15
	allMustHavesBonus     = 0.10
	minSuccessRate        = 0.05
	maxSuccessRate        = 0.95
)

var seniorityTokens = []string{"senior", "sr", "lead", "principal", "staff", "director", "head", "manager", "vp", "chief"}

var technicalTitleTokens = []string{"engineer", "engineering", "technical"}

// Generate builds the ApplicationStrategy. expMatches may be in any order.
func Generate(
	job *types.Job,
	profile *types.Profile,
	compat types.CompatibilityScore,
	skillMatches []types.SkillMatch,
	expMatches []types.ExperienceMatch,
	gaps []types.QualificationGap,
) types.ApplicationStrategy {
	ranked := rankExperiences(expMatches)

	return types.ApplicationStrategy{
		PositioningStatement:   PositioningStatement(job, profile, compat.Overall),
		KeyStrengths:           keyStrengths(profile, skillMatches, ranked),
		ExperiencesToHighlight: experiencesToHighlight(ranked),
		SkillsToEmphasize:      skillsToEmphasize(skillMatches),
		KeywordsToInclude:      KeywordsToInclude(job),
		GapsToAddress:          gapsToAddress(gaps),
		Tone:                   ChooseTone(job),
		CustomizationPriority:  customizationPriority(compat.Overall),
		EstimatedSuccessRate:   SuccessRate(compat, gaps),
	}
}

func rankExperiences(matches []types.ExperienceMatch) []types.ExperienceMatch {
	ranked := make([]types.ExperienceMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})
	return ranked
}

func keyStrengths(profile *types.Profile, skillMatches []types.SkillMatch, ranked []types.ExperienceMatch) []string {
	strengths := make([]string, 0, maxKeyStrengths)
	for _, m := range skillMatches {
		if m.BestMatchScore > strongSkillAbove {
			strengths = append(strengths, "Strong match in "+m.Requirement)
		}
	}

	added := 0
	for _, em := range ranked {
		if added == maxExperienceStrength || em.RelevanceScore <= strongExperienceAbove {
			break
		}
		strengths = append(strengths, "Relevant experience as "+experienceLabel(profile, em))
		added++
	}

	if len(strengths) > maxKeyStrengths {
		strengths = strengths[:maxKeyStrengths]
	}
	return strengths
}

func experienceLabel(profile *types.Profile, em types.ExperienceMatch) string {
	if profile != nil && em.ExperienceIndex >= 0 && em.ExperienceIndex < len(profile.Experiences) {
		return profile.Experiences[em.ExperienceIndex].Ref()
	}
	return em.ExperienceRef
}

func experiencesToHighlight(ranked []types.ExperienceMatch) []string {
	out := make([]string, 0, maxHighlights)
	for _, em := range ranked {
		if len(out) == maxHighlights || em.RelevanceScore <= highlightAbove {
			break
		}
		out = append(out, em.ExperienceRef)
	}
	return out
}

// skillsToEmphasize lists the best skill behind each met must-have, in requirement order
func skillsToEmphasize(matches []types.SkillMatch) []string {
	set := keywords.NewOrderedSet()
	for _, m := range matches {
		if m.Priority != types.PriorityMustHave || !m.IsMet() {
			continue
		}
		if name := m.BestSkill(); name != "" {
			set.Add(name)
		}
		if set.Len() == maxSkillsToEmphasize {
			break
		}
	}
	return set.Items()
}

// KeywordsToInclude merges the job's technical skills, tools and the leading word of
// its first requirements, de-duplicated case-insensitively.
func KeywordsToInclude(job *types.Job) []string {
	set := keywords.NewOrderedSet(
		head(job.TechnicalSkills, maxTechnicalKeywords),
		head(job.ToolsTechnologies, maxToolKeywords),
	)
	for i, req := range job.Requirements {
		if i == maxRequirementTokens {
			break
		}
		set.Add(keywords.FirstToken(req.Text))
	}
	return head(set.Items(), maxKeywords)
}

func gapsToAddress(gaps []types.QualificationGap) []string {
	ordered := make([]types.QualificationGap, len(gaps))
	copy(ordered, gaps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Importance == types.ImportanceCritical && ordered[j].Importance != types.ImportanceCritical
	})

	out := make([]string, 0, maxGapsToAddress)
	for _, g := range head(ordered, maxGapsToAddress) {
		if g.Importance == types.ImportanceCritical {
			out = append(out, "Demonstrate transferable skills for "+g.Requirement)
		} else {
			out = append(out, "Show willingness to learn "+g.Requirement)
		}
	}
	return out
}

// ChooseTone picks the writing tone from company size, then job title
func ChooseTone(job *types.Job) types.Tone {
	switch {
	case job.Company.Size == types.SizeStartup || job.Company.Size == types.SizeSmall:
		return types.ToneCasual
	case keywords.ContainsAny(job.Title, seniorityTokens):
		return types.ToneProfessional
	case keywords.ContainsAny(job.Title, technicalTitleTokens):
		return types.ToneTechnical
	default:
		return types.ToneBalanced
	}
}

func customizationPriority(overall float64) types.CustomizationPriority {
	switch {
	case overall >= 75:
		return types.CustomizationHigh
	case overall >= 55:
		return types.CustomizationMedium
	default:
		return types.CustomizationLow
	}
}

// SuccessRate estimates the chance of progressing: overall/100 less 0.15 per critical gap,
// plus 0.10 when every must-have is met, clamped to [0.05, 0.95] and rounded to 2 decimals.
func SuccessRate(compat types.CompatibilityScore, gaps []types.QualificationGap) float64 {
	critical := 0
	for _, g := range gaps {
		if g.Importance == types.ImportanceCritical {
			critical++
		}
	}

	rate := compat.Overall/100 - criticalGapPenalty*float64(critical)
	if compat.AllMustHavesMet() {
		rate += allMustHavesBonus
	}
	rate = math.Max(minSuccessRate, math.Min(maxSuccessRate, rate))
	return math.Round(rate*100) / 100
}

// PositioningStatement is a templated one-line pitch chosen by score band
func PositioningStatement(job *types.Job, profile *types.Profile, overall float64) string {
	role := job.Title
	if job.Company.Name != "" {
		role += " at " + job.Company.Name
	}
	who := describeCandidate(profile)

	switch {
	case overall >= 80:
		return fmt.Sprintf("Ideal candidate for the %s role: %s whose skills and experience line up directly with the core requirements.", role, who)
	case overall >= 60:
		return fmt.Sprintf("Strong foundation for the %s role: %s covering most core requirements, with clear growth areas to close quickly.", role, who)
	default:
		return fmt.Sprintf("Transferable skills for the %s role: %s bringing adjacent experience and a record of picking up new domains.", role, who)
	}
}

func describeCandidate(profile *types.Profile) string {
	title := "professional"
	if profile != nil && profile.Title != "" {
		title = profile.Title
	}
	who := article(title) + " " + title
	if profile != nil && profile.YearsExperience > 0 {
		who += " with " + strconv.FormatFloat(profile.YearsExperience, 'f', -1, 64) + " years of experience"
	}
	return who
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		return "an"
	}
	return "a"
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
