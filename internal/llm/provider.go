// Package llm generates an optional narrative summary of a finished
// analysis report. The summary is strictly presentation: it runs
// after inference, never affects labels or confidence scores, and its
// failure is a warning rather than an error.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/pshenichny/columella/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a narrative summary of the report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for LLM summarization.
type SummarizeRequest struct {
	// Report is the finished analysis report to narrate.
	Report *model.AnalysisReport

	// Prompt is an optional custom prompt (if empty, use default).
	Prompt string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output.
type SummarizeResponse struct {
	// Summary is the generated Markdown text.
	Summary string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI.
	APIKey string

	// BaseURL for custom or local endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}

// NewProvider creates an LLM provider based on configuration. An
// empty provider name disables summarization (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "ollama":
		return NewOllamaProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt. The LLM is
// told its narrative must restate the computed results, not second-
// guess them: the engines decide, the LLM explains.
func BuildPrompt(report *model.AnalysisReport) string {
	var b strings.Builder

	b.WriteString(`You are summarizing a column-name semantic analysis report.
The analysis inferred likely meanings of database columns purely from their
names - no data was sampled.

RULES:
1. Restate the computed hypotheses and confidence scores. DO NOT invent
   new hypotheses or adjust confidences.
2. Highlight ambiguous columns (where the analysis could not prefer one
   hypothesis) and unmatched columns.
3. Keep the summary to 4-6 sentences of plain prose.

Results:
`)

	for _, col := range report.Order {
		result := report.Columns[col]
		best := result.Best()
		if best == nil {
			fmt.Fprintf(&b, "- %s: no hypothesis\n", col)
			continue
		}
		flag := ""
		if result.IsAmbiguous() {
			flag = " (ambiguous)"
		}
		fmt.Fprintf(&b, "- %s: %s, confidence %.2f%s\n", col, best.Label, best.Confidence, flag)
	}

	if report.Summary != nil {
		fmt.Fprintf(&b, "\nTotals: %d columns, %d hypotheses, average confidence %.2f\n",
			report.Summary.TotalColumns,
			report.Summary.TotalHypotheses,
			report.Summary.AverageConfidence)
	}

	return b.String()
}
