// Package ats measures raw keyword coverage between a job and a profile, the way an
// applicant tracking system would scan for terms.
package ats

import (
	"github.com/jonathan/job-fit/internal/keywords"
	"github.com/jonathan/job-fit/internal/types"
)

const (
	emptyJobMatchRate  = 0.5
	maxMissingKeywords = 10
	summarySlots       = 3
	skillsSlots        = 3
	experienceSlots    = 4
)

// JobKeywords is the union of the job's technical skills, tools and soft skills, in discovery order
func JobKeywords(job *types.Job) *keywords.OrderedSet {
	return keywords.NewOrderedSet(job.TechnicalSkills, job.ToolsTechnologies, job.SoftSkills)
}

// ProfileKeywords is the union of skill names and every experience's technologies
func ProfileKeywords(profile *types.Profile) *keywords.OrderedSet {
	set := keywords.NewOrderedSet()
	for _, s := range profile.Skills {
		set.Add(s.Name)
	}
	for _, exp := range profile.Experiences {
		set.AddAll(exp.Technologies)
	}
	return set
}

// Analyze computes the keyword match rate, the missing keywords, and where to place them
func Analyze(job *types.Job, profile *types.Profile) types.ATSReport {
	jobKeywords := JobKeywords(job)
	profileKeywords := ProfileKeywords(profile)

	rate := emptyJobMatchRate
	if jobKeywords.Len() > 0 {
		rate = float64(len(jobKeywords.Intersect(profileKeywords))) / float64(jobKeywords.Len())
	}

	missing := jobKeywords.Difference(profileKeywords)
	if len(missing) > maxMissingKeywords {
		missing = missing[:maxMissingKeywords]
	}

	return types.ATSReport{
		MatchRate:       rate,
		MissingKeywords: missing,
		Suggestions:     Place(missing),
	}
}

// Place partitions missing keywords into summary (first 3), skills (next 3) and
// experience (up to 4 more) buckets.
func Place(missing []string) types.KeywordPlacement {
	p := types.KeywordPlacement{
		Summary:    []string{},
		Skills:     []string{},
		Experience: []string{},
	}
	p.Summary = append(p.Summary, window(missing, 0, summarySlots)...)
	p.Skills = append(p.Skills, window(missing, summarySlots, skillsSlots)...)
	p.Experience = append(p.Experience, window(missing, summarySlots+skillsSlots, experienceSlots)...)
	return p
}

func window(items []string, start, n int) []string {
	if start >= len(items) {
		return nil
	}
	end := start + n
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
