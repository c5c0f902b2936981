package matching

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/jonathan/job-fit/internal/types"
)

const topSkillMatches = 3

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*(?:years?|yrs?)`)

// SkillReport is the full output of the skill matcher for one job/profile pair
type SkillReport struct {
	Matches []types.SkillMatch
	Matrix  *MatchMatrix
	Stats   EmbedStats
}

// MatchSkills returns one SkillMatch per job requirement, in requirement order
func (m *Matcher) MatchSkills(ctx context.Context, job *types.Job, profile *types.Profile) ([]types.SkillMatch, error) {
	report, err := m.SkillReport(ctx, job, profile)
	if err != nil {
		return nil, err
	}
	return report.Matches, nil
}

// SkillReport embeds every requirement and every skill composite text and scores all pairs.
// A profile without skills yields zero scores rather than an error.
func (m *Matcher) SkillReport(ctx context.Context, job *types.Job, profile *types.Profile) (*SkillReport, error) {
	reqTexts := make([]string, len(job.Requirements))
	for i, req := range job.Requirements {
		reqTexts[i] = req.Text
	}
	skillNames := make([]string, len(profile.Skills))
	skillTexts := make([]string, len(profile.Skills))
	for i, skill := range profile.Skills {
		skillNames[i] = skill.Name
		skillTexts[i] = skill.CompositeText()
	}

	texts := make([]string, 0, len(reqTexts)+len(skillTexts))
	texts = append(texts, reqTexts...)
	texts = append(texts, skillTexts...)

	vectors, stats, err := m.embedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("skill matching canceled: %w", err)
	}
	reqVecs := vectors[:len(reqTexts)]
	skillVecs := vectors[len(reqTexts):]

	matrix := newMatchMatrix(reqTexts, skillNames)
	matches := make([]types.SkillMatch, len(job.Requirements))

	for i, req := range job.Requirements {
		scores := make([]float64, len(profile.Skills))
		order := make([]int, len(profile.Skills))
		for j := range profile.Skills {
			scores[j] = CosineSimilarity(reqVecs[i], skillVecs[j])
			order[j] = j
			matrix.set(i, j, scores[j])
		}
		sort.SliceStable(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})

		threshold := m.thresholdFor(req.Priority)
		match := types.SkillMatch{
			Requirement:   req.Text,
			Priority:      req.Priority,
			Category:      req.Category,
			MatchedSkills: make([]types.ScoredSkill, 0, topSkillMatches),
			YearsRequired: yearsRequired(req),
			Threshold:     &threshold,
		}

		for rank, j := range order {
			if rank == topSkillMatches {
				break
			}
			match.MatchedSkills = append(match.MatchedSkills, types.ScoredSkill{
				Name:  profile.Skills[j].Name,
				Score: scores[j],
			})
		}

		if len(order) > 0 && scores[order[0]] > 0 {
			best := profile.Skills[order[0]]
			match.BestMatchScore = scores[order[0]]
			match.UserSkillLevel = best.Level
			match.YearsPossessed = best.Years
		}

		matches[i] = match
	}

	return &SkillReport{Matches: matches, Matrix: matrix, Stats: stats}, nil
}

func (m *Matcher) thresholdFor(p types.Priority) float64 {
	if p == types.PriorityMustHave {
		return m.thresholds.MustHave
	}
	return m.thresholds.NiceToHave
}

// yearsRequired prefers the explicit field and falls back to "N+ years" in the text
func yearsRequired(req types.Requirement) *int {
	if req.YearsRequired != nil {
		years := *req.YearsRequired
		return &years
	}
	sub := yearsPattern.FindStringSubmatch(req.Text)
	if sub == nil {
		return nil
	}
	years, err := strconv.Atoi(sub[1])
	if err != nil {
		return nil
	}
	return &years
}
