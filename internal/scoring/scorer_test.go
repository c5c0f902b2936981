package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-fit/internal/types"
)

func match(text string, priority types.Priority, category types.RequirementCategory, score float64) types.SkillMatch {
	return types.SkillMatch{
		Requirement:    text,
		Priority:       priority,
		Category:       category,
		BestMatchScore: score,
	}
}

func jobFor(matches ...types.SkillMatch) *types.Job {
	job := &types.Job{Title: "Engineer"}
	for _, m := range matches {
		job.Requirements = append(job.Requirements, types.Requirement{Text: m.Requirement, Priority: m.Priority, Category: m.Category})
	}
	return job
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	w := DefaultWeights()
	assert.InDelta(t, 1.0, w.Sum(), 1e-12)
	assert.NoError(t, w.Validate())
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr string
	}{
		{name: "sum too high", mutate: func(w *Weights) { w.Technical = 0.5 }, wantErr: "sum to 1.0"},
		{name: "negative", mutate: func(w *Weights) { w.Technical = -0.1; w.Experience = 0.7 }, wantErr: "technical"},
		{name: "above one", mutate: func(w *Weights) { w.Education = 1.5 }, wantErr: "education"},
		{name: "rebalanced is fine", mutate: func(w *Weights) { w.Technical = 0.45; w.SoftSkills = 0.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewScorer_RejectsBadWeights(t *testing.T) {
	_, err := NewScorer(Weights{Technical: 1, Experience: 1})
	require.Error(t, err)
}

func TestScore_WeightedOverall(t *testing.T) {
	matches := []types.SkillMatch{
		match("Python", types.PriorityMustHave, types.CategoryTechnical, 0.9),
		match("Kubernetes", types.PriorityMustHave, types.CategoryTechnical, 0.4),
		match("GraphQL", types.PriorityNiceToHave, types.CategoryTechnical, 0.6),
	}
	exps := []types.ExperienceMatch{{RelevanceScore: 0.9}, {RelevanceScore: 0.5}}

	s, err := NewScorer(DefaultWeights())
	require.NoError(t, err)
	got := s.Score(jobFor(matches...), &types.Profile{}, matches, exps)

	// technical (90+40+60)/3, experience 70, requirements 0.5*70+1*30, soft default, education not required
	assert.InDelta(t, 63.3, got.TechnicalSkills, 1e-9)
	assert.Equal(t, 70.0, got.ExperienceRelevance)
	assert.Equal(t, 65.0, got.RequirementsMet)
	assert.Equal(t, 60.0, got.SoftSkills)
	assert.Equal(t, 100.0, got.EducationMatch)
	assert.InDelta(t, 190.0/3*0.35+70*0.25+65*0.2+6+10, got.Overall, 0.051)
	assert.Equal(t, 1, got.MustHaveMet)
	assert.Equal(t, 2, got.MustHaveTotal)
	assert.Equal(t, 1, got.NiceToHaveMet)
	assert.Equal(t, 1, got.NiceToHaveTotal)
	assert.Equal(t, types.MatchModerate, got.MatchLevel())
}

func TestScore_NoNiceToHavesUsesNeutralRate(t *testing.T) {
	matches := []types.SkillMatch{
		match("Python", types.PriorityMustHave, types.CategoryTechnical, 0.9),
		match("Go", types.PriorityMustHave, types.CategoryTechnical, 0.2),
	}
	s, _ := NewScorer(DefaultWeights())
	got := s.Score(jobFor(matches...), &types.Profile{}, matches, nil)

	// 0.5*70 + 0.5*30: absent optional requirements are neither a penalty nor a bonus
	assert.Equal(t, 50.0, got.RequirementsMet)
	assert.Equal(t, 0, got.NiceToHaveTotal)
}

func TestScore_NoMustHavesCountsAsFullyMet(t *testing.T) {
	matches := []types.SkillMatch{
		match("GraphQL", types.PriorityNiceToHave, types.CategoryTechnical, 0.2),
		match("Rust", types.PriorityPreferred, types.CategoryTechnical, 0.6),
	}
	s, _ := NewScorer(DefaultWeights())
	got := s.Score(jobFor(matches...), &types.Profile{}, matches, nil)

	assert.Equal(t, 85.0, got.RequirementsMet)
	assert.Equal(t, 2, got.NiceToHaveTotal)
	assert.Equal(t, 1, got.NiceToHaveMet)
	assert.True(t, got.AllMustHavesMet())
}

func TestScore_Fallbacks(t *testing.T) {
	matches := []types.SkillMatch{
		match("Fluent Spanish", types.PriorityNiceToHave, types.CategoryOther, 0.3),
	}
	s, _ := NewScorer(DefaultWeights())
	got := s.Score(jobFor(matches...), &types.Profile{}, matches, nil)

	assert.Equal(t, 50.0, got.TechnicalSkills)
	assert.Equal(t, 40.0, got.ExperienceRelevance)
	assert.Equal(t, 60.0, got.SoftSkills)
	assert.Equal(t, 100.0, got.EducationMatch)
}

func TestScore_SoftSkillsAndEducation(t *testing.T) {
	matches := []types.SkillMatch{
		match("Strong communication skills", types.PriorityNiceToHave, types.CategoryOther, 0.8),
		match("Mentoring", types.PriorityNiceToHave, types.CategorySoftSkill, 0.4),
		match("Bachelor's degree in Computer Science", types.PriorityMustHave, types.CategoryOther, 0.1),
	}
	s, _ := NewScorer(DefaultWeights())
	job := jobFor(matches...)

	without := s.Score(job, &types.Profile{}, matches, nil)
	assert.InDelta(t, 60.0, without.SoftSkills, 1e-9)
	assert.Equal(t, 40.0, without.EducationMatch)

	with := s.Score(job, &types.Profile{Education: []types.Education{{Institution: "State U"}}}, matches, nil)
	assert.Equal(t, 80.0, with.EducationMatch)
}

func TestScore_TechnicalFromJobSkills(t *testing.T) {
	m := match("Terraform", types.PriorityMustHave, types.CategoryOther, 0.8)
	job := jobFor(m)
	job.ToolsTechnologies = []string{"Terraform"}

	s, _ := NewScorer(DefaultWeights())
	got := s.Score(job, &types.Profile{}, []types.SkillMatch{m}, nil)
	assert.Equal(t, 80.0, got.TechnicalSkills)
}

func TestScore_TopFiveExperiences(t *testing.T) {
	exps := []types.ExperienceMatch{
		{RelevanceScore: 0.1}, {RelevanceScore: 1.0}, {RelevanceScore: 0.9},
		{RelevanceScore: 0.8}, {RelevanceScore: 0.7}, {RelevanceScore: 0.6},
	}
	s, _ := NewScorer(DefaultWeights())
	got := s.Score(&types.Job{}, &types.Profile{}, nil, exps)
	assert.Equal(t, 80.0, got.ExperienceRelevance)
}

func TestScore_OverallBounds(t *testing.T) {
	s, _ := NewScorer(DefaultWeights())

	perfect := []types.SkillMatch{
		match("Python", types.PriorityMustHave, types.CategoryTechnical, 1.0),
		match("Teamwork", types.PriorityNiceToHave, types.CategorySoftSkill, 1.0),
	}
	high := s.Score(jobFor(perfect...), &types.Profile{}, perfect, []types.ExperienceMatch{{RelevanceScore: 1.0}})
	assert.Equal(t, 100.0, high.Overall)
	assert.Equal(t, types.MatchExcellent, high.MatchLevel())

	none := []types.SkillMatch{
		match("Python", types.PriorityMustHave, types.CategoryTechnical, 0),
		match("Teamwork", types.PriorityNiceToHave, types.CategorySoftSkill, 0),
		match("PhD in physics", types.PriorityNiceToHave, types.CategoryEducation, 0),
	}
	low := s.Score(jobFor(none...), &types.Profile{}, none, []types.ExperienceMatch{{RelevanceScore: 0}})
	assert.GreaterOrEqual(t, low.Overall, 0.0)
	assert.Equal(t, types.MatchPoor, low.MatchLevel())
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsTechnical(types.Requirement{Text: "Welding", Category: types.CategoryTechnical}, nil))
	assert.True(t, IsTechnical(types.Requirement{Text: "Experience with Go"}, nil))
	assert.False(t, IsTechnical(types.Requirement{Text: "Good attitude"}, nil))

	assert.True(t, IsSoftSkill(types.Requirement{Text: "Works well in a team"}))
	assert.False(t, IsSoftSkill(types.Requirement{Text: "Teamcity pipelines"}))

	assert.True(t, IsEducation(types.Requirement{Text: "PhD preferred"}))
	assert.True(t, IsEducation(types.Requirement{Text: "Anything", Category: types.CategoryEducation}))
	assert.False(t, IsEducation(types.Requirement{Text: "5 years Python"}))
}
