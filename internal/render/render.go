// Package render turns evaluation reports into their output formats:
// plain text, markdown, JSON, YAML, and styled terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"specvet/internal/engine"
	"specvet/internal/health"
)

// Markdown renders the report as a markdown document.
func Markdown(rep *engine.Report) string {
	var b strings.Builder
	b.WriteString("# Spec Health Check\n\n")
	fmt.Fprintf(&b, "**Verdict: %s**\n\n", rep.Verdict)

	b.WriteString("## Axis Scores\n\n")
	b.WriteString("| Axis | Score |\n|---|---|\n")
	for _, axis := range health.AxisOrder {
		fmt.Fprintf(&b, "| %s | %.2f |\n", axisTitle(axis), rep.Axes[string(axis)])
	}
	fmt.Fprintf(&b, "| Balance | %.2f |\n\n", rep.Balance)

	b.WriteString("## Sub-checks\n\n")
	b.WriteString("| Check | Axis | Score |\n|---|---|---|\n")
	for _, sc := range rep.SubChecks {
		fmt.Fprintf(&b, "| %s | %s | %.2f |\n", sc.ID, axisTitle(sc.Axis), sc.Score)
	}
	b.WriteString("\n")

	if len(rep.Actionable) > 0 {
		b.WriteString("## Top Findings\n\n")
		for _, a := range rep.Actionable {
			fmt.Fprintf(&b, "1. %s\n", a)
		}
		b.WriteString("\n")
	}
	if len(rep.Findings) > 0 {
		b.WriteString("## All Findings\n\n")
		for _, f := range rep.Findings {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", f.Severity, f.Section, f.Message)
		}
		b.WriteString("\n")
	}
	if rep.Repaired {
		fmt.Fprintf(&b, "Self-repair applied: %s\n", rep.RepairAction)
	}
	return b.String()
}

// Text renders the report as unstyled plain text.
func Text(rep *engine.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Verdict: %s\n\n", rep.Verdict)
	for _, axis := range health.AxisOrder {
		fmt.Fprintf(&b, "%-14s %.2f\n", axisTitle(axis), rep.Axes[string(axis)])
	}
	fmt.Fprintf(&b, "%-14s %.2f\n\n", "Balance", rep.Balance)
	for _, sc := range rep.SubChecks {
		fmt.Fprintf(&b, "  %s  %.2f\n", sc.ID, sc.Score)
	}
	if len(rep.Actionable) > 0 {
		b.WriteString("\nTop findings:\n")
		for i, a := range rep.Actionable {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, a)
		}
	}
	if rep.Repaired {
		fmt.Fprintf(&b, "\nSelf-repair applied: %s\n", rep.RepairAction)
	}
	return b.String()
}

// JSON renders the report as indented JSON.
func JSON(rep *engine.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// YAML renders the report as YAML.
func YAML(rep *engine.Report) ([]byte, error) {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

var verdictColors = map[health.Verdict]string{
	health.VerdictShipIt:          "42",
	health.VerdictAlmost:          "78",
	health.VerdictDraft:           "178",
	health.VerdictVague:           "208",
	health.VerdictUnbounded:       "203",
	health.VerdictOverConstrained: "203",
	health.VerdictSketch:          "196",
}

// Badge returns the styled verdict badge for terminal output.
func Badge(v health.Verdict) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color(verdictColors[v]))
	return style.Render(string(v))
}

// Terminal renders the markdown report for the terminal via glamour,
// with a styled verdict badge on top. Falls back to plain text when the
// renderer cannot be built.
func Terminal(rep *engine.Report, width int) string {
	if width <= 0 {
		width = 80
	}
	body := Markdown(rep)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return Badge(rep.Verdict) + "\n\n" + Text(rep)
	}
	rendered, err := renderer.Render(body)
	if err != nil {
		return Badge(rep.Verdict) + "\n\n" + Text(rep)
	}
	return Badge(rep.Verdict) + "\n" + rendered
}

func axisTitle(a health.Axis) string {
	switch a {
	case health.AxisCompleteness:
		return "Completeness"
	case health.AxisClarity:
		return "Clarity"
	case health.AxisConstraints:
		return "Constraints"
	case health.AxisSpecificity:
		return "Specificity"
	default:
		return string(a)
	}
}
