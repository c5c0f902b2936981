// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-fit/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs the job title, company and requirement list.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	if job.Company.Name != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s", job.Company.Name))
		if job.Company.Size != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", job.Company.Size))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Requirements:\n")
	count := min(len(job.Requirements), maxItemsToShow)
	for i := 0; i < count; i++ {
		req := job.Requirements[i]
		sb.WriteString(fmt.Sprintf("  • %s [%s]\n", req.Text, req.Priority))
	}
	if len(job.Requirements) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Requirements)-maxItemsToShow))
	}

	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompatibility outputs the overall score, match level and sub-scores.
func (p *Printer) PrintCompatibility(score types.CompatibilityScore) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %.1f / 100 (%s)\n", score.Overall, score.MatchLevel()))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Technical:    %5.1f\n", score.TechnicalSkills))
	sb.WriteString(fmt.Sprintf("Experience:   %5.1f\n", score.ExperienceRelevance))
	sb.WriteString(fmt.Sprintf("Requirements: %5.1f\n", score.RequirementsMet))
	sb.WriteString(fmt.Sprintf("Soft skills:  %5.1f\n", score.SoftSkills))
	sb.WriteString(fmt.Sprintf("Education:    %5.1f\n", score.EducationMatch))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Must-haves met:    %d/%d\n", score.MustHaveMet, score.MustHaveTotal))
	sb.WriteString(fmt.Sprintf("Nice-to-haves met: %d/%d", score.NiceToHaveMet, score.NiceToHaveTotal))

	p.printBox("COMPATIBILITY", sb.String())
}

// PrintSkillMatches outputs each requirement with its best skill and met status.
func (p *Printer) PrintSkillMatches(matches []types.SkillMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range matches {
		mark := "✗"
		if m.IsMet() {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, m.Requirement))
		best := m.BestSkill()
		if best == "" {
			best = "no matching skill"
		}
		sb.WriteString(fmt.Sprintf("    %.2f  %s", m.BestMatchScore, best))
		if m.UserSkillLevel != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.UserSkillLevel))
		}
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL MATCHES", sb.String())
}

// PrintExperienceMatches outputs the top experiences by relevance.
func (p *Printer) PrintExperienceMatches(matches []types.ExperienceMatch) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.ExperienceRef))
		sb.WriteString(fmt.Sprintf("    Relevance: %.2f (recency +%.2f), %.1f yrs", m.RelevanceScore, m.RecencyBonus, m.YearsInRole))
		if len(m.MatchingKeywords) > 0 {
			sb.WriteString(fmt.Sprintf("\n    Keywords: %s", strings.Join(m.MatchingKeywords, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(matches)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE RELEVANCE", sb.String())
}

// PrintGaps outputs qualification gaps with their suggested remediation.
func (p *Printer) PrintGaps(gaps []types.QualificationGap) {
	if len(gaps) == 0 {
		p.printBox("QUALIFICATION GAPS", "No gaps found")
		return
	}

	var sb strings.Builder
	for i, g := range gaps {
		sb.WriteString(fmt.Sprintf("[%s] %s (%s, %s)\n", strings.ToUpper(string(g.Importance)), g.Requirement, g.GapType, g.ImprovementDifficulty))
		sb.WriteString(fmt.Sprintf("    → %s", g.SuggestedAction))
		if g.EstimatedTime != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", g.EstimatedTime))
		}
		if i < len(gaps)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("QUALIFICATION GAPS", sb.String())
}

// PrintStrategy outputs the positioning advice.
func (p *Printer) PrintStrategy(s types.ApplicationStrategy) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tone: %s    Priority: %s    Success: %.0f%%\n", s.Tone, s.CustomizationPriority, s.EstimatedSuccessRate*100))
	sb.WriteString("\n")
	sb.WriteString(s.PositioningStatement)
	sb.WriteString("\n")

	writeList(&sb, "Key strengths", s.KeyStrengths)
	writeList(&sb, "Highlight", s.ExperiencesToHighlight)
	writeList(&sb, "Gaps to address", s.GapsToAddress)
	if len(s.KeywordsToInclude) > 0 {
		sb.WriteString(fmt.Sprintf("\nKeywords: %s\n", strings.Join(s.KeywordsToInclude, ", ")))
	}

	p.printBox("APPLICATION STRATEGY", wrap(strings.TrimSuffix(sb.String(), "\n"), boxWidth-4))
}

// PrintATS outputs keyword coverage and placement hints.
func (p *Printer) PrintATS(report types.ATSReport) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keyword match rate: %.0f%%\n", report.MatchRate*100))
	if len(report.MissingKeywords) == 0 {
		sb.WriteString("No missing keywords")
	} else {
		sb.WriteString(fmt.Sprintf("Missing: %s\n", strings.Join(report.MissingKeywords, ", ")))
		sb.WriteString(fmt.Sprintf("\nSummary:    %s\n", strings.Join(report.Suggestions.Summary, ", ")))
		sb.WriteString(fmt.Sprintf("Skills:     %s\n", strings.Join(report.Suggestions.Skills, ", ")))
		sb.WriteString(fmt.Sprintf("Experience: %s", strings.Join(report.Suggestions.Experience, ", ")))
	}

	p.printBox("ATS KEYWORDS", wrap(strings.TrimSuffix(sb.String(), "\n"), boxWidth-4))
}

// PrintAnalysis prints every section of an analysis result.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	p.PrintCompatibility(result.Compatibility)
	p.PrintSkillMatches(result.SkillMatches)
	p.PrintExperienceMatches(result.ExperienceMatches)
	p.PrintGaps(result.Gaps)
	p.PrintStrategy(result.Strategy)
	p.PrintATS(types.ATSReport{
		MatchRate:       result.ATSMatchRate,
		MissingKeywords: result.MissingKeywords,
		Suggestions:     result.KeywordSuggestions,
	})
}

// PrintBatchSummary prints one line per analyzed job, in input order.
func (p *Printer) PrintBatchSummary(labels []string, results []*types.AnalysisResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range results {
		label := r.JobRef
		if i < len(labels) {
			label = labels[i]
		}
		sb.WriteString(fmt.Sprintf("%5.1f  %-9s %s", r.Compatibility.Overall, r.Compatibility.MatchLevel(), label))
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("BATCH RESULTS", sb.String())
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
}

// wrap breaks lines longer than width on word boundaries
func wrap(text string, width int) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len([]rune(line)) <= width {
			out = append(out, line)
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " •"))]
		current := ""
		for _, word := range strings.Fields(line) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if len([]rune(candidate)) > width && current != "" {
				out = append(out, current)
				current = strings.Repeat(" ", len([]rune(indent))) + word
				continue
			}
			current = candidate
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
