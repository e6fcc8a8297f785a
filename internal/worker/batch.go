package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pshenichny/columella/internal/analyze"
	"github.com/pshenichny/columella/internal/llm"
	"github.com/pshenichny/columella/internal/model"
)

// Analyzer defines the interface for analyzing a list of columns.
type Analyzer interface {
	AnalyzeMany(columns []string, opts analyze.ManyOptions) (*model.AnalysisReport, error)
}

// FileJob analyzes one schema file (one column name per line).
type FileJob struct {
	Path       string
	Analyzer   Analyzer
	Summarizer *llm.Summarizer
	Limiter    *Limiter
}

// Execute runs the analysis for one file.
func (j *FileJob) Execute(ctx context.Context) Result {
	columns, err := ReadColumnsFromFile(j.Path)
	if err != nil {
		return &FileResult{Path: j.Path, Error: err}
	}

	subject := strings.TrimSuffix(filepath.Base(j.Path), filepath.Ext(j.Path))
	report, err := j.Analyzer.AnalyzeMany(columns, analyze.ManyOptions{
		IncludeSummary: true,
		Subject:        subject,
	})
	if err != nil {
		return &FileResult{Path: j.Path, Error: err}
	}

	// Narrative summary is additive; a failed LLM call degrades to a
	// warning, never fails the file.
	if j.Summarizer.IsEnabled() {
		if j.Limiter != nil {
			if err := j.Limiter.Wait(ctx); err != nil {
				return &FileResult{Path: j.Path, Report: report, Warning: err.Error()}
			}
		}
		summary, err := j.Summarizer.GenerateSummary(ctx, report)
		if err != nil {
			return &FileResult{Path: j.Path, Report: report, Warning: err.Error()}
		}
		report.LLM = summary
	}

	return &FileResult{Path: j.Path, Report: report}
}

// FileResult is the outcome of analyzing one schema file.
type FileResult struct {
	Path    string
	Report  *model.AnalysisReport
	Warning string
	Error   error
}

// GetError returns the error, if any.
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple schema files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	summarizer  *llm.Summarizer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor. The limiter may be nil
// when no LLM summarization is configured.
func NewBatchProcessor(analyzer Analyzer, summarizer *llm.Summarizer, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		summarizer:  summarizer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given schema files in parallel.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := newPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&FileJob{
			Path:       path,
			Analyzer:   b.analyzer,
			Summarizer: b.summarizer,
			Limiter:    b.limiter,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}
	return fileResults
}

// ReadColumnsFromFile reads column names from a file, one per line.
// Blank lines and # comments are skipped; duplicates are dropped
// while preserving first-seen order.
func ReadColumnsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var columns []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		columns = append(columns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return columns, nil
}
