package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pshenichny/columella/internal/knowledge"
)

// knowledgeCmd represents the knowledge command
var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "Manage semantic knowledge (dictionaries and rules)",
	Long: `Columella ships with built-in dictionaries (abbreviations,
currencies, dates, roles, data types, stopwords) and a declarative
rule set. Export them to a directory to customize, then point analyze
or batch at it with --knowledge.`,
}

var knowledgeInitCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Export the built-in knowledge files to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := knowledge.Export(dir); err != nil {
			return err
		}
		fmt.Printf("✓ Exported knowledge files to %s\n", dir)
		fmt.Printf("\nTo use them:\n  columella analyze --knowledge %s <columns>\n\n", dir)
		return nil
	},
}

var knowledgeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a summary of the loaded knowledge base",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			kb  *knowledge.Base
			err error
		)
		if knowledgeDir != "" {
			kb, err = knowledge.Load(knowledgeDir)
		} else {
			kb, err = knowledge.Default()
		}
		if err != nil {
			return fmt.Errorf("load knowledge: %w", err)
		}

		fmt.Printf("Abbreviations: %d\n", len(kb.Abbreviations))
		fmt.Printf("Currencies:    %d\n", len(kb.Currencies))
		fmt.Printf("Dates:         %d\n", len(kb.Dates))
		fmt.Printf("Roles:         %d\n", len(kb.Roles))
		fmt.Printf("Data types:    %d\n", len(kb.DataTypes))
		fmt.Printf("Stopwords:     %d\n", len(kb.FlatStopwords()))
		fmt.Printf("Rules:         %d\n", len(kb.Rules))

		fmt.Println("\nRules:")
		for _, rule := range kb.Rules {
			fmt.Printf("  %-20s priority %d", rule.Label, rule.Priority)
			if rule.Description != "" {
				fmt.Printf("  %s", rule.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(knowledgeCmd)
	knowledgeCmd.AddCommand(knowledgeInitCmd)
	knowledgeCmd.AddCommand(knowledgeShowCmd)

	knowledgeShowCmd.Flags().StringVar(&knowledgeDir, "knowledge", "", "knowledge directory (default: built-in)")
}
