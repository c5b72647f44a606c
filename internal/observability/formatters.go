// Package observability provides Prometheus metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-guide/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintProfile outputs the answered questionnaire fields.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	qa := profile.ToQA()
	if len(qa) == 0 {
		return
	}

	var sb strings.Builder
	for _, pair := range qa {
		sb.WriteString(fmt.Sprintf("%s\n  %s\n", pair.Question, pair.Answer))
	}
	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs generated follow-up questions with their answer options.
func (p *Printer) PrintQuestions(questions []types.GeneratedQuestion) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated questions: %d\n\n", len(questions)))
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, q.QuestionText))
		sb.WriteString(fmt.Sprintf("    Type: %s  Category: %s", q.QuestionType, q.Category))
		if !q.IsRequired {
			sb.WriteString("  (optional)")
		}
		sb.WriteString("\n")
		if len(q.Options) > 0 {
			sb.WriteString(fmt.Sprintf("    Options: %s\n", strings.Join(q.Options, " / ")))
		}
	}
	p.printBox("FOLLOW-UP QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareerOptions outputs the top career options with salary range and growth.
func (p *Printer) PrintCareerOptions(options []types.CareerOption) {
	if len(options) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Career options: %d\n\n", len(options)))

	count := min(len(options), maxItemsToShow)
	for i := 0; i < count; i++ {
		o := options[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, o.Name))
		sb.WriteString(fmt.Sprintf("    Salary: %.0f - %.0f %s\n", o.SalaryRangeMin, o.SalaryRangeMax, o.Currency))
		sb.WriteString(fmt.Sprintf("    Growth: %.1f%%\n", o.GrowthRate))
		if len(o.RequiredSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(o.RequiredSkills, ", ")))
		}
	}
	if len(options) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(options)-maxItemsToShow))
	}
	p.printBox("CAREER OPTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmap outputs the roadmap steps with duration and outcomes.
func (p *Printer) PrintRoadmap(roadmap *types.Roadmap) {
	if roadmap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Career:     %s\n", roadmap.Career))
	if roadmap.EstimatedTimeline != "" {
		sb.WriteString(fmt.Sprintf("Timeline:   %s\n", roadmap.EstimatedTimeline))
	}
	if roadmap.DifficultyLevel != "" {
		sb.WriteString(fmt.Sprintf("Difficulty: %s\n", roadmap.DifficultyLevel))
	}
	if roadmap.Fallback {
		sb.WriteString("Source:     default roadmap (generation unavailable)\n")
	}
	sb.WriteString("\n")

	for i, step := range roadmap.Steps {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, step.Step))
		if step.Duration != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", step.Duration))
		}
		sb.WriteString("\n")
		for _, outcome := range step.KeyOutcomes {
			sb.WriteString(fmt.Sprintf("   ✓ %s\n", outcome))
		}
	}

	p.printBox("CAREER ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}
