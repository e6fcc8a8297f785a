package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pshenichny/columella/internal/model"
)

// Results wraps an AnalysisReport with convenient read-only access
// methods, so callers do not navigate the raw maps themselves.
type Results struct {
	report *model.AnalysisReport
}

// NewResults wraps a finished report.
func NewResults(report *model.AnalysisReport) *Results {
	return &Results{report: report}
}

// Report returns the underlying report.
func (r *Results) Report() *model.AnalysisReport {
	return r.report
}

// Count returns the number of columns analyzed.
func (r *Results) Count() int {
	return len(r.report.Order)
}

// Columns returns the analyzed column names in input order.
func (r *Results) Columns() []string {
	return r.report.Order
}

// Get returns the result for one column, or nil if absent.
func (r *Results) Get(columnName string) *model.InferenceResult {
	return r.report.Columns[columnName]
}

// BestFor returns the best hypothesis for a column, or nil.
func (r *Results) BestFor(columnName string) *model.SemanticHypothesis {
	if result, ok := r.report.Columns[columnName]; ok {
		return result.Best()
	}
	return nil
}

// AllHypotheses returns every hypothesis from every column, in column
// order.
func (r *Results) AllHypotheses() []model.SemanticHypothesis {
	var all []model.SemanticHypothesis
	for _, col := range r.report.Order {
		all = append(all, r.report.Columns[col].Hypotheses...)
	}
	return all
}

// SemanticTypes returns the sorted set of labels found.
func (r *Results) SemanticTypes() []string {
	set := make(map[string]struct{})
	for _, h := range r.AllHypotheses() {
		set[h.Label] = struct{}{}
	}
	types := make([]string, 0, len(set))
	for label := range set {
		types = append(types, label)
	}
	sort.Strings(types)
	return types
}

// Distribution counts hypotheses per label.
func (r *Results) Distribution() map[string]int {
	dist := make(map[string]int)
	for _, h := range r.AllHypotheses() {
		dist[h.Label]++
	}
	return dist
}

// AverageConfidence averages over all hypotheses; 0 when there are
// none.
func (r *Results) AverageConfidence() float64 {
	all := r.AllHypotheses()
	if len(all) == 0 {
		return 0.0
	}
	total := 0.0
	for _, h := range all {
		total += h.Confidence
	}
	return total / float64(len(all))
}

// TopHypothesis returns the single hypothesis with the highest
// confidence across all columns, or nil.
func (r *Results) TopHypothesis() *model.SemanticHypothesis {
	var top *model.SemanticHypothesis
	for _, h := range r.AllHypotheses() {
		h := h
		if top == nil || h.Confidence > top.Confidence {
			top = &h
		}
	}
	return top
}

// HighConfidence returns all hypotheses at or above min.
func (r *Results) HighConfidence(min float64) []model.SemanticHypothesis {
	var high []model.SemanticHypothesis
	for _, h := range r.AllHypotheses() {
		if h.Confidence >= min {
			high = append(high, h)
		}
	}
	return high
}

// ColumnsWithLabel returns columns carrying a hypothesis with the
// given label, in input order.
func (r *Results) ColumnsWithLabel(label string) []string {
	var matching []string
	for _, col := range r.report.Order {
		for _, h := range r.report.Columns[col].Hypotheses {
			if h.Label == label {
				matching = append(matching, col)
				break
			}
		}
	}
	return matching
}

// FilterByConfidence returns new Results keeping only hypotheses at
// or above min; columns left without hypotheses are dropped.
func (r *Results) FilterByConfidence(min float64) *Results {
	filtered := &model.AnalysisReport{
		Subject:    r.report.Subject,
		AnalyzedAt: r.report.AnalyzedAt,
		Columns:    make(map[string]*model.InferenceResult),
	}

	for _, col := range r.report.Order {
		result := r.report.Columns[col]
		var kept []model.SemanticHypothesis
		for _, h := range result.Hypotheses {
			if h.Confidence >= min {
				kept = append(kept, h)
			}
		}
		if len(kept) == 0 {
			continue
		}
		filtered.Columns[col] = &model.InferenceResult{
			ColumnName: result.ColumnName,
			Hypotheses: kept,
		}
		filtered.Order = append(filtered.Order, col)
	}

	return NewResults(filtered)
}

// SummaryText renders a short human-readable summary.
func (r *Results) SummaryText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Columns analyzed: %d\n", r.Count())
	fmt.Fprintf(&b, "Total hypotheses: %d\n", len(r.AllHypotheses()))
	fmt.Fprintf(&b, "Semantic types found: %d\n", len(r.SemanticTypes()))
	fmt.Fprintf(&b, "Average confidence: %.2f\n", r.AverageConfidence())

	dist := r.Distribution()
	if len(dist) > 0 {
		total := len(r.AllHypotheses())
		b.WriteString("\nSemantic distribution:\n")
		for _, label := range r.SemanticTypes() {
			count := dist[label]
			fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", label, count, float64(count)/float64(total)*100)
		}
	}

	return b.String()
}
