package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/regatta/internal/config"
	"github.com/dotcommander/regatta/internal/schema"
	"github.com/dotcommander/regatta/internal/seriesfile"
)

var checkCmd = &cobra.Command{
	Use:   "check [globs...]",
	Short: "Validate series documents without scoring them",
	Long: `Check validates series documents against the embedded schema and the
loader's reference checks, reporting every problem it finds. Nothing is
scored.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(patterns []string) error {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	files, err := seriesfile.Discover(cfg.Root, patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no series files found")
	}

	validator := schema.NewValidator()
	failed := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		problems := validator.ValidateFile(file, content)
		if len(problems) == 0 {
			if _, err := seriesfile.Parse(content); err != nil {
				problems = append(problems, schema.ValidationError{File: file, Message: err.Error()})
			}
		}
		if len(problems) > 0 {
			failed++
			for _, p := range problems {
				fmt.Fprintf(os.Stderr, "%s: %s\n", p.File, p.Message)
			}
			continue
		}
		if !cfg.Quiet {
			fmt.Printf("✓ %s\n", file)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d series file(s) failed validation", failed, len(files))
	}
	return nil
}
