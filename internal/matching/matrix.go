package matching

import (
	"encoding/json"
	"sort"
)

// MatrixKey addresses one requirement/skill pair by position in the job and profile
type MatrixKey struct {
	RequirementIndex int
	SkillIndex       int
}

// MatchMatrix is a sparse requirement-by-skill similarity table kept for debugging.
// Pairs with zero similarity are not stored.
type MatchMatrix struct {
	Requirements []string
	Skills       []string
	scores       map[MatrixKey]float64
}

func newMatchMatrix(requirements, skills []string) *MatchMatrix {
	return &MatchMatrix{
		Requirements: requirements,
		Skills:       skills,
		scores:       make(map[MatrixKey]float64),
	}
}

func (m *MatchMatrix) set(req, skill int, score float64) {
	if score > 0 {
		m.scores[MatrixKey{RequirementIndex: req, SkillIndex: skill}] = score
	}
}

// Score returns the similarity for a pair, 0 when absent
func (m *MatchMatrix) Score(req, skill int) float64 {
	return m.scores[MatrixKey{RequirementIndex: req, SkillIndex: skill}]
}

// Len returns the number of stored non-zero pairs
func (m *MatchMatrix) Len() int {
	return len(m.scores)
}

// MatrixEntry is the serialized form of one stored pair
type MatrixEntry struct {
	RequirementIndex int     `json:"requirement_index"`
	Requirement      string  `json:"requirement"`
	SkillIndex       int     `json:"skill_index"`
	Skill            string  `json:"skill"`
	Score            float64 `json:"score"`
}

// Entries returns every stored pair ordered by requirement then skill
func (m *MatchMatrix) Entries() []MatrixEntry {
	keys := make([]MatrixKey, 0, len(m.scores))
	for k := range m.scores {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RequirementIndex != keys[j].RequirementIndex {
			return keys[i].RequirementIndex < keys[j].RequirementIndex
		}
		return keys[i].SkillIndex < keys[j].SkillIndex
	})

	entries := make([]MatrixEntry, len(keys))
	for i, k := range keys {
		entries[i] = MatrixEntry{
			RequirementIndex: k.RequirementIndex,
			Requirement:      m.Requirements[k.RequirementIndex],
			SkillIndex:       k.SkillIndex,
			Skill:            m.Skills[k.SkillIndex],
			Score:            m.scores[k],
		}
	}
	return entries
}

// MarshalJSON writes the matrix as a sorted entry list
func (m *MatchMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}
