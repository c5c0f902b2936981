package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet_DedupesCaseInsensitively(t *testing.T) {
	s := NewOrderedSet([]string{"Python", "AWS", "python"}, []string{"Golang", "Go", "aws"})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"Python", "AWS", "Golang"}, s.Items())
	assert.True(t, s.Contains("go"))
	assert.True(t, s.Contains("PYTHON"))
	assert.False(t, s.Contains("Rust"))
}

func TestOrderedSet_IgnoresEmpty(t *testing.T) {
	s := NewOrderedSet()
	assert.False(t, s.Add(""))
	assert.False(t, s.Add("   "))
	assert.True(t, s.Add("Docker"))
	assert.False(t, s.Add("docker"))
	assert.Equal(t, 1, s.Len())
}

func TestOrderedSet_IntersectAndDifference(t *testing.T) {
	job := NewOrderedSet([]string{"Python", "Kubernetes", "Terraform", "Communication"})
	profile := NewOrderedSet([]string{"k8s", "python", "Go"})

	assert.Equal(t, []string{"Python", "Kubernetes"}, job.Intersect(profile))
	assert.Equal(t, []string{"Terraform", "Communication"}, job.Difference(profile))
}

func TestOrderedSet_ItemsIsACopy(t *testing.T) {
	s := NewOrderedSet([]string{"Go"})
	items := s.Items()
	items[0] = "Rust"
	assert.Equal(t, []string{"Go"}, s.Items())
}
