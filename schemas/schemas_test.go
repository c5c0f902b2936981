package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/job-fit/internal/schemas"
	"github.com/jonathan/job-fit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			content, err := Load(name)
			require.NoError(t, err)

			var v map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &v), "schema file should be valid JSON")
			assert.Contains(t, v, "$schema")
			assert.Contains(t, v, "properties")
		})
	}
}

func TestAllSchemaFiles_Compile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			content, err := Load(name)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
			assert.NoError(t, err)
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("resume.schema.json")
	assert.Error(t, err)
}

func TestJobSchema(t *testing.T) {
	content, err := Load(Job)
	require.NoError(t, err)

	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name: "valid job",
			doc: `{
				"title": "Backend Engineer",
				"requirements": [
					{"text": "Python", "priority": "must_have", "category": "technical", "years_required": 3}
				],
				"company": {"name": "Acme", "size": "startup"}
			}`,
		},
		{
			name:      "no requirements",
			doc:       `{"title": "Backend Engineer", "requirements": []}`,
			wantError: true,
		},
		{
			name:      "unknown priority",
			doc:       `{"title": "X", "requirements": [{"text": "Go", "priority": "urgent", "category": "technical"}]}`,
			wantError: true,
		},
		{
			name:      "unknown company size",
			doc:       `{"title": "X", "requirements": [{"text": "Go", "priority": "preferred", "category": "other"}], "company": {"size": "huge"}}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(content, tt.doc)
			if tt.wantError {
				var validationErr *schemas.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileSchema(t *testing.T) {
	content, err := Load(Profile)
	require.NoError(t, err)

	years := 4.0
	profile := types.Profile{
		Name:            "Sam",
		Title:           "Software Engineer",
		YearsExperience: 6,
		Skills:          []types.Skill{{Name: "Python", Level: types.LevelExpert, Years: &years}},
		Experiences: []types.Experience{{
			Company:   "Acme",
			Title:     "Engineer",
			StartDate: "2021-03",
			Current:   true,
		}},
	}
	assert.NoError(t, schemas.ValidateValue(content, profile))

	profile.Skills[0].Level = "guru"
	assert.Error(t, schemas.ValidateValue(content, profile))
}

func TestAnalysisResultSchema(t *testing.T) {
	content, err := Load(AnalysisResult)
	require.NoError(t, err)

	result := &types.AnalysisResult{
		JobRef:         "job-1",
		ProfileRef:     "profile-1",
		EmbeddingModel: "hash-v1-256",
		Compatibility: types.CompatibilityScore{
			Overall:         75.5,
			TechnicalSkills: 80,
			MustHaveMet:     1,
			MustHaveTotal:   1,
		},
		SkillMatches: []types.SkillMatch{{
			Requirement:    "Python",
			Priority:       types.PriorityMustHave,
			Category:       types.CategoryTechnical,
			MatchedSkills:  []types.ScoredSkill{{Name: "Python", Score: 0.9}},
			BestMatchScore: 0.9,
		}},
		Gaps: []types.QualificationGap{},
		Strategy: types.ApplicationStrategy{
			PositioningStatement:  "Strong foundation for the Backend role.",
			Tone:                  types.ToneTechnical,
			CustomizationPriority: types.CustomizationMedium,
			EstimatedSuccessRate:  0.86,
		},
		Confidence:         0.8,
		ATSMatchRate:       1,
		KeywordSuggestions: types.KeywordPlacement{Summary: []string{}, Skills: []string{}, Experience: []string{}},
	}
	assert.NoError(t, schemas.ValidateValue(content, result))

	result.Compatibility.Overall = 140
	err = schemas.ValidateValue(content, result)
	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "compatibility.overall")
}
