package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"5+", "years", "of", "c++", "and", "node.js"}, Tokenize("5+ years of C++ and Node.js."))
	assert.Equal(t, []string{"ci", "cd", "pipelines"}, Tokenize("CI/CD pipelines"))
	assert.Empty(t, Tokenize("  ... "))
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    bool
	}{
		{"Go developer with cloud experience", "go", true},
		{"Good communication skills", "go", false},
		{"Experience with machine learning pipelines", "machine learning", true},
		{"Learning machines", "machine learning", false},
		{"Strong Communication", "communication", true},
		{"", "go", false},
		{"anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsKeyword(tt.text, tt.keyword))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Bachelor's degree in CS", []string{"phd", "degree"}))
	assert.False(t, ContainsAny("Team player", []string{"leadership", "communication"}))
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "5+", FirstToken("5+ years Python"))
	assert.Equal(t, "AWS", FirstToken("AWS, GCP or Azure"))
	assert.Equal(t, "", FirstToken("   "))
}
