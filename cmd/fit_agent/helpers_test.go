package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testProfileYAML = `name: Ada
title: Backend Engineer
years_experience: 6
skills:
  - name: Python
    level: expert
    years: 6
    keywords: [django]
  - name: Docker
    level: advanced
experiences:
  - company: Acme
    title: Python Developer
    start_date: "2020-01"
    description: Built django services on AWS
    technologies: [Python, Docker]
    achievements:
      - Migrated python services to Kubernetes
`

const testJobYAML = `title: Python Engineer
company:
  name: Globex
  size: startup
requirements:
  - text: Python
    priority: must_have
    category: technical
  - text: Kafka streaming
    priority: nice_to_have
    category: technical
technical_skills: [Python, Kafka]
tools_technologies: [Docker]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
