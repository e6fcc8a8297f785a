package model

import "time"

// AnalysisReport is the complete output of analyzing one set of
// column names. Consumed read-only by the reporting layer; never fed
// back into the engines.
type AnalysisReport struct {
	Subject    string                      `json:"subject" yaml:"subject"`
	AnalyzedAt time.Time                   `json:"analyzed_at" yaml:"analyzed_at"`
	Columns    map[string]*InferenceResult `json:"columns" yaml:"columns"`
	Order      []string                    `json:"column_order" yaml:"column_order"`
	Summary    *Summary                    `json:"summary,omitempty" yaml:"summary,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty" yaml:"llm,omitempty"`
}

// Summary holds batch-level statistics over all hypotheses.
type Summary struct {
	TotalColumns      int            `json:"total_columns" yaml:"total_columns"`
	TotalHypotheses   int            `json:"total_hypotheses" yaml:"total_hypotheses"`
	SemanticTypes     []string       `json:"semantic_types_found" yaml:"semantic_types_found"`
	Distribution      map[string]int `json:"semantic_distribution" yaml:"semantic_distribution"`
	AverageConfidence float64        `json:"average_confidence" yaml:"average_confidence"`
	AmbiguousColumns  []string       `json:"ambiguous_columns,omitempty" yaml:"ambiguous_columns,omitempty"`
	UnmatchedColumns  []string       `json:"unmatched_columns,omitempty" yaml:"unmatched_columns,omitempty"`
}

// LLMSummary contains an optional LLM-generated narrative.
// It never affects inference or scoring and is clearly separated.
type LLMSummary struct {
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	Provider  string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model     string   `json:"model,omitempty" yaml:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty" yaml:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
