// Package analyze wires the full per-column pipeline: tokenize ->
// normalize -> detect -> infer. The Analyzer holds only immutable
// configuration, so one instance may be shared by concurrent callers.
package analyze

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pshenichny/columella/internal/cache"
	"github.com/pshenichny/columella/internal/detect"
	"github.com/pshenichny/columella/internal/engine"
	"github.com/pshenichny/columella/internal/knowledge"
	"github.com/pshenichny/columella/internal/model"
	"github.com/pshenichny/columella/internal/tokenize"
)

// Analyzer is the high-level orchestrator for column semantic
// analysis. It operates purely on column names.
type Analyzer struct {
	tokenizer  *tokenize.Tokenizer
	normalizer *tokenize.Normalizer
	detectors  []detect.Detector
	inference  *engine.InferenceEngine

	results  cache.Cache
	cacheTTL time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache memoizes per-column results. Inference is deterministic,
// so a cached result is always valid while the knowledge base lives.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.results = c
		a.cacheTTL = ttl
	}
}

// New creates an analyzer over a loaded knowledge base. Fails if the
// knowledge base carries no rules: the engine would have nothing to
// infer.
func New(kb *knowledge.Base, opts ...Option) (*Analyzer, error) {
	rules, err := engine.NewRulesEngine(kb.Rules, engine.NewConfidenceEngine())
	if err != nil {
		return nil, fmt.Errorf("build rules engine: %w", err)
	}

	a := &Analyzer{
		tokenizer:  tokenize.NewTokenizer(),
		normalizer: tokenize.NewNormalizer(kb.FlatStopwords()),
		detectors: []detect.Detector{
			detect.NewAbbreviationDetector(kb.Abbreviations),
			detect.NewDateDetector(kb.Dates),
			detect.NewCurrencyDetector(kb.Currencies),
			detect.NewRoleDetector(kb.Roles),
			detect.NewDataTypeDetector(kb.DataTypes),
		},
		inference: engine.NewInferenceEngine(rules),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Signals runs tokenization, normalization and all detectors for one
// column name. Signal order follows detector order, then token order.
func (a *Analyzer) Signals(columnName string) []model.Signal {
	tokens := a.normalizer.Normalize(a.tokenizer.Tokenize(columnName))

	var signals []model.Signal
	for _, d := range a.detectors {
		signals = append(signals, d.Detect(tokens)...)
	}
	return signals
}

// Analyze infers the semantic meaning of a single column name.
func (a *Analyzer) Analyze(columnName string) *model.InferenceResult {
	if a.results != nil {
		if data, ok := a.results.Get(cache.Key(columnName)); ok {
			var cached model.InferenceResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached
			}
		}
	}

	result := a.inference.Infer(columnName, a.Signals(columnName))

	if a.results != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = a.results.Set(cache.Key(columnName), data, a.cacheTTL)
		}
	}

	return result
}

// ManyOptions controls batch analysis.
type ManyOptions struct {
	// IncludeSummary adds batch-level statistics to the report.
	IncludeSummary bool

	// ConfidenceThreshold drops hypotheses below this confidence from
	// the summary statistics (per-column results are untouched).
	ConfidenceThreshold float64

	// Subject names the report (e.g. the schema file analyzed).
	Subject string
}

// AnalyzeMany analyzes multiple column names. Column names are
// validated up front; invalid input is an error before any analysis
// runs. Each column is an independent analysis.
func (a *Analyzer) AnalyzeMany(columns []string, opts ManyOptions) (*model.AnalysisReport, error) {
	if err := ValidateColumnNames(columns); err != nil {
		return nil, err
	}

	report := &model.AnalysisReport{
		Subject:    opts.Subject,
		AnalyzedAt: time.Now().UTC(),
		Columns:    make(map[string]*model.InferenceResult, len(columns)),
		Order:      make([]string, 0, len(columns)),
	}

	for _, col := range columns {
		if _, seen := report.Columns[col]; seen {
			continue
		}
		report.Columns[col] = a.Analyze(col)
		report.Order = append(report.Order, col)
	}

	if opts.IncludeSummary {
		report.Summary = buildSummary(report, opts.ConfidenceThreshold)
	}

	return report, nil
}

// buildSummary aggregates statistics over all hypotheses at or above
// the confidence threshold.
func buildSummary(report *model.AnalysisReport, threshold float64) *model.Summary {
	summary := &model.Summary{
		TotalColumns: len(report.Order),
		Distribution: make(map[string]int),
	}

	total := 0.0
	for _, col := range report.Order {
		result := report.Columns[col]
		if len(result.Hypotheses) == 0 {
			summary.UnmatchedColumns = append(summary.UnmatchedColumns, col)
			continue
		}
		if result.IsAmbiguous() {
			summary.AmbiguousColumns = append(summary.AmbiguousColumns, col)
		}
		for _, h := range result.Hypotheses {
			if h.Confidence < threshold {
				continue
			}
			summary.TotalHypotheses++
			summary.Distribution[h.Label]++
			total += h.Confidence
		}
	}

	if summary.TotalHypotheses > 0 {
		summary.AverageConfidence = total / float64(summary.TotalHypotheses)
	}

	summary.SemanticTypes = make([]string, 0, len(summary.Distribution))
	for label := range summary.Distribution {
		summary.SemanticTypes = append(summary.SemanticTypes, label)
	}
	sort.Strings(summary.SemanticTypes)

	return summary
}
