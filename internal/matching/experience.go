package matching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/job-fit/internal/keywords"
	"github.com/jonathan/job-fit/internal/types"
)

const (
	maxRecencyBonus   = 0.2
	recencyDecayPerYr = 0.04
	hoursPerYear      = 24 * 365.25
)

// ExperienceReport is the full output of the experience matcher
type ExperienceReport struct {
	Matches []types.ExperienceMatch
	Stats   EmbedStats
}

// MatchExperiences scores every experience against the job, most relevant first
func (m *Matcher) MatchExperiences(ctx context.Context, job *types.Job, profile *types.Profile) ([]types.ExperienceMatch, error) {
	report, err := m.ExperienceReport(ctx, job, profile)
	if err != nil {
		return nil, err
	}
	return report.Matches, nil
}

// ExperienceReport embeds the job context, every experience, and every achievement,
// then combines raw similarity with a recency bonus.
func (m *Matcher) ExperienceReport(ctx context.Context, job *types.Job, profile *types.Profile) (*ExperienceReport, error) {
	texts := []string{JobContextText(job)}
	expIdx := make([]int, len(profile.Experiences))
	achIdx := make([][]int, len(profile.Experiences))
	for i, exp := range profile.Experiences {
		expIdx[i] = len(texts)
		texts = append(texts, exp.CompositeText())
		for _, ach := range exp.Achievements {
			achIdx[i] = append(achIdx[i], len(texts))
			texts = append(texts, ach)
		}
	}

	vectors, stats, err := m.embedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("experience matching canceled: %w", err)
	}
	jobVec := vectors[0]

	jobKeywords := keywords.NewOrderedSet(job.TechnicalSkills, job.ToolsTechnologies)
	now := m.now()

	matches := make([]types.ExperienceMatch, len(profile.Experiences))
	for i, exp := range profile.Experiences {
		raw := CosineSimilarity(vectors[expIdx[i]], jobVec)

		relevant := make([]string, 0)
		for k, idx := range achIdx[i] {
			if CosineSimilarity(vectors[idx], jobVec) > m.thresholds.Achievement {
				relevant = append(relevant, exp.Achievements[k])
			}
		}

		bonus := RecencyBonus(exp, now)
		relevance := math.Min(1.0, raw+bonus)
		// a failed embedding scores the experience as 0, bonus included
		if vectors[expIdx[i]] == nil || jobVec == nil {
			relevance = 0
		}
		matches[i] = types.ExperienceMatch{
			ExperienceIndex:      i,
			ExperienceRef:        exp.Ref(),
			RelevanceScore:       relevance,
			MatchingKeywords:     keywords.NewOrderedSet(exp.Technologies).Intersect(jobKeywords),
			RelevantAchievements: relevant,
			YearsInRole:          YearsInRole(exp, now),
			RecencyBonus:         bonus,
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].RelevanceScore > matches[b].RelevanceScore
	})

	return &ExperienceReport{Matches: matches, Stats: stats}, nil
}

// JobContextText is the single text embedded to represent the whole job
func JobContextText(job *types.Job) string {
	parts := make([]string, 0, 2+len(job.Responsibilities))
	for _, p := range append([]string{job.Title, job.Description}, job.Responsibilities...) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// isOngoing treats a missing end date as a current role
func isOngoing(exp types.Experience) bool {
	return exp.Current || strings.TrimSpace(exp.EndDate) == ""
}

// YearsInRole is the tenure in years, rounded to one decimal.
// Unparsable dates yield 0.
func YearsInRole(exp types.Experience, now time.Time) float64 {
	start, err := types.ParseDate(exp.StartDate)
	if err != nil {
		return 0
	}

	end := now
	if !isOngoing(exp) {
		end, err = types.ParseDate(exp.EndDate)
		if err != nil {
			return 0
		}
	}

	years := end.Sub(start).Hours() / hoursPerYear
	if years <= 0 {
		return 0
	}
	return math.Round(years*10) / 10
}

// RecencyBonus is 0.2 for a current role, otherwise decays by 0.04 per year since
// the role ended and reaches 0 at five years. Unparsable end dates yield 0.
func RecencyBonus(exp types.Experience, now time.Time) float64 {
	if isOngoing(exp) {
		return maxRecencyBonus
	}

	end, err := types.ParseDate(exp.EndDate)
	if err != nil {
		return 0
	}

	yearsSince := now.Sub(end).Hours() / hoursPerYear
	if yearsSince < 0 {
		yearsSince = 0
	}
	return math.Max(0, maxRecencyBonus-yearsSince*recencyDecayPerYr)
}
