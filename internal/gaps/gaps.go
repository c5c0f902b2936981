// Package gaps turns unmet skill matches into qualification gaps with remediation advice.
package gaps

import (
	"fmt"

	"github.com/jonathan/job-fit/internal/keywords"
	"github.com/jonathan/job-fit/internal/types"
)

// A gap below this best-match score on an optional requirement is "important" rather than "beneficial"
const importantBelow = 0.3

// A skill gap above this score already has a foundation to build on
const foundationAbove = 0.5

var (
	experienceTerms    = []string{"year", "years", "yrs", "experience", "experienced", "senior", "junior"}
	educationTerms     = []string{"degree", "bachelor", "bachelors", "master", "masters", "phd", "doctorate", "diploma"}
	certificationTerms = []string{"certification", "certifications", "certified", "certificate", "license", "licensed"}
)

type remediation struct {
	action string
	time   string
}

// remediations is keyed by gap type; skill gaps pick a time by foundation below
var remediations = map[types.GapType]remediation{
	types.GapSkill:         {action: "Take a course and build a small project using %s", time: "1-3 months"},
	types.GapExperience:    {action: "Highlight transferable experience that maps to %s", time: "Immediate"},
	types.GapEducation:     {action: "Consider a certification alternative to %s", time: "2-6 months"},
	types.GapCertification: {action: "Obtain certification: %s", time: "1-3 months"},
}

const skillFoundationTime = "2-4 weeks"

// IdentifyGaps returns one gap per unmet match, in match order
func IdentifyGaps(matches []types.SkillMatch) []types.QualificationGap {
	gaps := make([]types.QualificationGap, 0)
	for _, m := range matches {
		if m.IsMet() {
			continue
		}
		gaps = append(gaps, GapFor(m))
	}
	return gaps
}

// GapFor classifies a single unmet match
func GapFor(m types.SkillMatch) types.QualificationGap {
	gapType := ClassifyGapType(m.Requirement, m.Category)
	rem := remediations[gapType]

	estimate := rem.time
	if gapType == types.GapSkill && m.BestMatchScore > foundationAbove {
		estimate = skillFoundationTime
	}

	return types.QualificationGap{
		Requirement:           m.Requirement,
		Importance:            importanceOf(m),
		GapType:               gapType,
		ImprovementDifficulty: difficultyOf(gapType, m.BestMatchScore),
		SuggestedAction:       fmt.Sprintf(rem.action, m.Requirement),
		EstimatedTime:         estimate,
	}
}

func importanceOf(m types.SkillMatch) types.Importance {
	switch {
	case m.Priority == types.PriorityMustHave:
		return types.ImportanceCritical
	case m.BestMatchScore < importantBelow:
		return types.ImportanceImportant
	default:
		return types.ImportanceBeneficial
	}
}

// ClassifyGapType checks the requirement text for experience, then degree, then
// certification vocabulary. Text without any of those falls back to the requirement
// category, and finally to a plain skill gap.
func ClassifyGapType(text string, category types.RequirementCategory) types.GapType {
	switch {
	case keywords.ContainsAny(text, experienceTerms):
		return types.GapExperience
	case keywords.ContainsAny(text, educationTerms):
		return types.GapEducation
	case keywords.ContainsAny(text, certificationTerms):
		return types.GapCertification
	}

	switch category {
	case types.CategoryExperience:
		return types.GapExperience
	case types.CategoryEducation:
		return types.GapEducation
	case types.CategoryCertification:
		return types.GapCertification
	default:
		return types.GapSkill
	}
}

func difficultyOf(gapType types.GapType, best float64) types.Difficulty {
	switch gapType {
	case types.GapExperience, types.GapEducation:
		return types.DifficultyDifficult
	case types.GapCertification:
		return types.DifficultyModerate
	default:
		if best > foundationAbove {
			return types.DifficultyEasy
		}
		return types.DifficultyModerate
	}
}
