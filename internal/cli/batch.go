package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pshenichny/columella/internal/llm"
	"github.com/pshenichny/columella/internal/report"
	"github.com/pshenichny/columella/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// knowledgeDir, noCache, noFooter and the LLM flags are defined in
	// analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <schema-file>...",
	Short: "Analyze multiple schema files in parallel",
	Long: `Batch processes multiple schema files concurrently:
- Each file lists column names, one per line (# comments allowed)
- Files are analyzed in parallel with a configurable worker count
- One JSON + Markdown report is written per input file

Example:
  columella batch orders.txt customers.txt
  columella batch schemas/*.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./columella-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().StringVar(&knowledgeDir, "knowledge", "", "knowledge directory (default: built-in)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable per-column result memoization")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summaries")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	files := args
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input files:  %d\n", len(files))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	// LLM summarizer and limiter are shared across workers; a nil
	// limiter means no outbound calls to throttle.
	var (
		summarizer *llm.Summarizer
		limiter    *worker.Limiter
	)
	if llmEnabled {
		llmCfg, err := llmConfigFromFlags(cfg)
		if err != nil {
			return err
		}
		summarizer, err = llm.NewSummarizer(llmCfg)
		if err != nil {
			return err
		}
		limiter = worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		fmt.Fprintf(os.Stderr, "  LLM:          %s\n", llmProvider)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(analyzer, summarizer, limiter, concurrency)
	results := processor.ProcessFiles(ctx, files)

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++

		if result.Warning != "" {
			fmt.Fprintf(os.Stderr, "! %s: %s\n", result.Path, result.Warning)
		}

		slug := sanitizeFilename(result.Report.Subject)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}
		if result.Report.LLM != nil && result.Report.LLM.Enabled {
			llmPath := filepath.Join(outputDir, slug+".llm.md")
			if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.Report.LLM), llmPath); err != nil {
				fmt.Fprintf(os.Stderr, "! %s: failed to write LLM summary: %v\n", result.Path, err)
			}
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d columns, %d hypotheses)\n",
			result.Report.Subject,
			result.Report.Summary.TotalColumns,
			result.Report.Summary.TotalHypotheses)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(filepath.Base(s))

	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
