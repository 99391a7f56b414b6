package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/regatta/internal/config"
	"github.com/dotcommander/regatta/internal/output"
	"github.com/dotcommander/regatta/internal/scoring"
	"github.com/dotcommander/regatta/internal/seriesfile"
)

var scoreCmd = &cobra.Command{
	Use:   "score [globs...]",
	Short: "Compute ranked standings for series documents",
	Long: `Score discovers series documents, validates them, runs the scoring
pipeline, and renders the ranked standing in the configured format.

A scoring failure means the series cannot be scored: the message
describes a configuration or data problem for an administrator to fix,
and no partial standing is produced.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(patterns []string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	trend, err := cfg.TrendOption()
	if err != nil {
		return err
	}

	files, err := seriesfile.Discover(cfg.Root, patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no series files found")
	}

	outputter := output.NewOutputter(cfg)
	for _, file := range files {
		series, err := seriesfile.Load(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		results, err := scoring.ComputeWithOptions(series, scoring.Options{Trend: trend})
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := outputter.Render(results); err != nil {
			return fmt.Errorf("error formatting output: %w", err)
		}
	}
	return nil
}
