// ReturnSight — Synthetic E-Commerce Returns Analysis
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/retailmetrics/returnsight/internal/config"
	"github.com/retailmetrics/returnsight/internal/dataset"
	"github.com/retailmetrics/returnsight/internal/report"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "returnsight",
	Short: "ReturnSight — Synthetic E-Commerce Returns Analysis",
	Long: `ReturnSight synthesizes a seeded e-commerce returns dataset and renders
it into a self-contained HTML report: refund treemap, per-region scatter
facets, and a weekday/hour return-volume heatmap. Identical settings
always reproduce the identical report.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)

		if err := cfg.Validate(); err != nil {
			return err
		}
		start, err := cfg.Dataset.StartDate()
		if err != nil {
			return err
		}

		gen := dataset.New(dataset.Options{
			Records: cfg.Dataset.Records,
			Seed:    cfg.Dataset.Seed,
			Start:   start,
		})
		table := gen.Generate()

		if cfg.Report.CSV != "" {
			if err := dataset.WriteCSVFile(cfg.Report.CSV, table); err != nil {
				return err
			}
			fmt.Printf("CSV written to %s\n", cfg.Report.CSV)
		}

		rcfg := report.DefaultReportConfig()
		if cfg.Report.Title != "" {
			rcfg.Title = cfg.Report.Title
		}

		html, err := report.Generate(table, rcfg)
		if err != nil {
			return err
		}
		if err := report.WriteFile(html, cfg.Report.Output); err != nil {
			return err
		}

		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			text, err := report.GenerateText(table, rcfg)
			if err != nil {
				return err
			}
			fmt.Println(text)
		}

		fmt.Printf("Generated %d return records (%d columns)\n", table.Len(), len(table.Columns()))
		fmt.Printf("Report written to %s\n", cfg.Report.Output)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.Flags().Int("records", 0, "number of return records to generate")
	rootCmd.Flags().Int64("seed", 0, "random seed for the dataset (must be non-zero)")
	rootCmd.Flags().String("start", "", "first return timestamp, YYYY-MM-DD")
	rootCmd.Flags().String("output", "", "report output path")
	rootCmd.Flags().String("csv", "", "also write the dataset as CSV to this path")
	rootCmd.Flags().Bool("preview", false, "print the text preview before the completion message")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
}

// applyFlagOverrides layers explicitly-set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("records") {
		cfg.Dataset.Records, _ = cmd.Flags().GetInt("records")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Dataset.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("start") {
		cfg.Dataset.Start, _ = cmd.Flags().GetString("start")
	}
	if cmd.Flags().Changed("output") {
		cfg.Report.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("csv") {
		cfg.Report.CSV, _ = cmd.Flags().GetString("csv")
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ReturnSight %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Inspect Command ---

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Verify the structure of an emitted report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := report.InspectFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("🔍 Inspecting %s\n", args[0])
		fmt.Printf("  Title:        %s\n", in.Title)
		fmt.Printf("  Charts:       %d of 3\n", len(in.Charts))
		for _, id := range in.MissingCharts {
			fmt.Printf("  Missing:      %s\n", id)
		}
		fmt.Printf("  Summary grid: %v\n", in.HasSummary)
		fmt.Printf("  Records:      %d\n", in.RecordCount)

		if in.Complete() {
			fmt.Println("✅ Report is complete")
		} else {
			fmt.Println("⚠️  Report is missing charts")
		}
		return nil
	},
}
