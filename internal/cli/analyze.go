package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pshenichny/columella/internal/analyze"
	"github.com/pshenichny/columella/internal/cache"
	"github.com/pshenichny/columella/internal/knowledge"
	"github.com/pshenichny/columella/internal/llm"
	"github.com/pshenichny/columella/internal/model"
	"github.com/pshenichny/columella/internal/report"
	"github.com/pshenichny/columella/internal/worker"
)

var (
	outJSON       string
	outYAML       string
	outMD         string
	columnsFile   string
	knowledgeDir  string
	minConfidence float64
	noCache       bool
	noFooter      bool
	llmEnabled    bool
	llmProvider   string
	llmModel      string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <column>...",
	Short: "Infer the semantic meaning of column names",
	Long: `Analyze infers, for each column name:
- Ranked semantic hypotheses with confidence scores
- The evidence (detected signals) behind every hypothesis
- Recommended downstream treatment and data-quality expectations
- Whether the top hypotheses are too close to call (ambiguity)

Example:
  columella analyze user_id created_at amount_usd
  columella analyze --file schema.txt --json report.json --md report.md
  columella analyze total_amt_usd --llm --llm-provider openai`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&columnsFile, "file", "", "read column names from file (one per line)")
	analyzeCmd.Flags().StringVar(&knowledgeDir, "knowledge", "", "knowledge directory (default: built-in)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	analyzeCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	analyzeCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "summary confidence threshold")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable per-column result memoization")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative summary")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	columns := args
	if columnsFile != "" {
		fromFile, err := readColumnsFile(columnsFile)
		if err != nil {
			return err
		}
		columns = append(columns, fromFile...)
	}
	if len(columns) == 0 {
		return fmt.Errorf("no column names given (pass arguments or --file)")
	}

	cfg := buildConfig()

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	subject := "columns"
	if columnsFile != "" {
		subject = columnsFile
	}

	result, err := analyzer.AnalyzeMany(columns, analyze.ManyOptions{
		IncludeSummary:      true,
		ConfidenceThreshold: minConfidence,
		Subject:             subject,
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d columns\n", len(result.Order))
		fmt.Fprintf(os.Stderr, "✓ Generated %d hypotheses\n", result.Summary.TotalHypotheses)
	}

	// Narrative summary runs last; a failure is a warning, never an
	// analysis error.
	if llmEnabled {
		llmCfg, err := llmConfigFromFlags(cfg)
		if err != nil {
			return err
		}
		summarizer, err := llm.NewSummarizer(llmCfg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		summary, err := summarizer.GenerateSummary(ctx, result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else {
			result.LLM = summary
		}
	}

	return renderReport(result, cfg)
}

// buildConfig assembles the effective configuration from defaults and
// flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Knowledge.Path = knowledgeDir
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	return cfg
}

// buildAnalyzer loads the knowledge base and wires the analyzer.
func buildAnalyzer(cfg *model.Config) (*analyze.Analyzer, error) {
	var (
		kb  *knowledge.Base
		err error
	)
	if cfg.Knowledge.Path != "" {
		kb, err = knowledge.Load(cfg.Knowledge.Path)
	} else {
		kb, err = knowledge.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load knowledge: %w", err)
	}

	var opts []analyze.Option
	if cfg.Cache.Enabled {
		opts = append(opts, analyze.WithCache(
			cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute),
			cfg.Cache.TTL,
		))
	}

	analyzer, err := analyze.New(kb, opts...)
	if err != nil {
		return nil, fmt.Errorf("build analyzer: %w", err)
	}
	return analyzer, nil
}

// llmConfigFromFlags resolves the LLM configuration, pulling API keys
// from the environment.
func llmConfigFromFlags(cfg *model.Config) (llm.Config, error) {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return llm.Config{}, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return llm.ConfigFromModel(cfg.LLM), nil
}

// renderReport writes the requested outputs and prints the terminal
// summary.
func renderReport(result *model.AnalysisReport, cfg *model.Config) error {
	renderer := report.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outYAML != "" {
		if err := renderer.RenderYAML(result, outYAML); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote YAML: %s\n", outYAML)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render Markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	if result.LLM != nil && result.LLM.Enabled && outMD != "" {
		llmPath := strings.TrimSuffix(outMD, ".md") + ".llm.md"
		if err := renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(result.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	renderer.RenderSummary(result)
	return nil
}

// readColumnsFile uses the worker package's reader so analyze and
// batch accept the same file format.
func readColumnsFile(path string) ([]string, error) {
	columns, err := worker.ReadColumnsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	return columns, nil
}
