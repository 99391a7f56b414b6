package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/regatta/internal/scoring"
	"github.com/dotcommander/regatta/internal/seriesfile"
)

var codesCmd = &cobra.Command{
	Use:   "codes <series.yaml>",
	Short: "List the effective score codes for a series",
	Long: `Codes flattens the series' scoring-system inheritance chain and prints
the effective score-code table: each code's formula, parameter, and
flags, with locally-defined codes shadowing ancestors by name.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCodes(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)
}

func runCodes(path string) error {
	series, err := seriesfile.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if series.System == nil {
		return fmt.Errorf("%s: series has no scoring block", path)
	}

	table := scoring.BuildCodeTable(series.System)
	fmt.Printf("%s (%s)\n", series.System.Name, scoring.ResolveVariant(series.System))
	fmt.Printf("%-8s %-24s %8s  %s\n", "CODE", "FORMULA", "VALUE", "FLAGS")
	for _, code := range table.Effective() {
		var flags []string
		if code.Discardable {
			flags = append(flags, "discardable")
		}
		if code.PreserveResult {
			flags = append(flags, "preserves-result")
		}
		if !code.AdjustOtherScores {
			flags = append(flags, "no-adjust")
		}
		if code.Started {
			flags = append(flags, "started")
		}
		if code.CameToStart {
			flags = append(flags, "came-to-start")
		}
		if code.CountAsParticipation {
			flags = append(flags, "participation")
		}
		fmt.Printf("%-8s %-24s %8.1f  %s\n", code.Name, code.Formula, code.FormulaValue, strings.Join(flags, ","))
	}
	return nil
}
