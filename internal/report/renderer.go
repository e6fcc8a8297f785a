// Package report renders finished analysis reports. Pure
// presentation: reports are consumed read-only and never fed back
// into the engines.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pshenichny/columella/internal/model"
)

// Renderer writes reports as JSON, YAML, Markdown or a terminal
// summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. The footer credits the tool in
// Markdown output and can be disabled.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderYAML writes the report as YAML.
func (r *Renderer) RenderYAML(report *model.AnalysisReport, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write YAML report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report.
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	md := r.buildMarkdown(report)
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write Markdown report: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes a separate LLM narrative file.
func (r *Renderer) RenderLLMMarkdown(markdown string, path string) error {
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

func (r *Renderer) buildMarkdown(report *model.AnalysisReport) string {
	var b strings.Builder

	subject := report.Subject
	if subject == "" {
		subject = "Column Analysis"
	}
	fmt.Fprintf(&b, "# %s\n\n", subject)
	fmt.Fprintf(&b, "Analyzed at: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Best Hypothesis | Confidence | Ambiguous |\n")
	b.WriteString("|--------|-----------------|------------|-----------|\n")
	for _, col := range report.Order {
		result := report.Columns[col]
		best := result.Best()
		if best == nil {
			fmt.Fprintf(&b, "| `%s` | _no match_ | - | - |\n", col)
			continue
		}
		ambiguous := "no"
		if result.IsAmbiguous() {
			ambiguous = "yes"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %.2f | %s |\n", col, best.Label, best.Confidence, ambiguous)
	}
	b.WriteString("\n")

	b.WriteString("## Details\n\n")
	for _, col := range report.Order {
		result := report.Columns[col]
		if len(result.Hypotheses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### `%s`\n\n", col)
		for _, h := range result.Hypotheses {
			fmt.Fprintf(&b, "- **%s** (confidence %.2f", h.Label, h.Confidence)
			if h.Priority != 0 {
				fmt.Fprintf(&b, ", priority %d", h.Priority)
			}
			b.WriteString(")\n")
			if h.Description != "" {
				fmt.Fprintf(&b, "  - %s\n", h.Description)
			}
			for _, t := range h.RecommendedTreatment {
				fmt.Fprintf(&b, "  - Treatment: %s\n", t)
			}
			for _, c := range h.ExpectedConditions {
				fmt.Fprintf(&b, "  - Expect: %s\n", c)
			}
		}
		b.WriteString("\n")
	}

	if report.Summary != nil {
		s := report.Summary
		b.WriteString("## Summary\n\n")
		fmt.Fprintf(&b, "- Columns: %d\n", s.TotalColumns)
		fmt.Fprintf(&b, "- Hypotheses: %d\n", s.TotalHypotheses)
		fmt.Fprintf(&b, "- Average confidence: %.2f\n", s.AverageConfidence)
		if len(s.AmbiguousColumns) > 0 {
			fmt.Fprintf(&b, "- Ambiguous columns: %s\n", strings.Join(s.AmbiguousColumns, ", "))
		}
		if len(s.UnmatchedColumns) > 0 {
			fmt.Fprintf(&b, "- Unmatched columns: %s\n", strings.Join(s.UnmatchedColumns, ", "))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("_Generated by columella. Inference is name-based only; no data was sampled._\n")
	}

	return b.String()
}

// RenderSummary prints a short report summary to stdout.
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	fmt.Println()
	for _, col := range report.Order {
		result := report.Columns[col]
		best := result.Best()
		if best == nil {
			fmt.Printf("  %-30s  (no match)\n", col)
			continue
		}
		marker := ""
		if result.IsAmbiguous() {
			marker = "  [ambiguous]"
		}
		fmt.Printf("  %-30s  %s (%.0f%%)%s\n", col, best.Label, best.Confidence*100, marker)
	}
	if report.Summary != nil {
		fmt.Printf("\n  %d columns, %d hypotheses, avg confidence %.2f\n",
			report.Summary.TotalColumns,
			report.Summary.TotalHypotheses,
			report.Summary.AverageConfidence)
	}
	fmt.Println()
}
