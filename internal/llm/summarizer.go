package llm

import (
	"context"
	"fmt"

	"github.com/pshenichny/columella/internal/model"
)

// Summarizer wraps a provider and produces the report's LLMSummary
// block.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer, or an error for an unknown
// provider. A disabled configuration yields a summarizer whose
// IsEnabled reports false.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary asks the provider for a narrative of the report.
// Called after all scoring is done; the result is attached to the
// report for display only.
func (s *Summarizer) GenerateSummary(ctx context.Context, report *model.AnalysisReport) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s summarization: %w", s.provider.Name(), err)
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}

// RenderSeparateMarkdown renders the LLM summary as a standalone
// Markdown document, clearly labeled as machine narrative.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}
	header := fmt.Sprintf("# LLM Narrative Summary\n\n_Generated by %s/%s. This narrative restates computed results and never affects them._\n\n",
		summary.Provider, summary.Model)
	return header + summary.SummaryMD + "\n"
}
