package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	trendOption  string
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "regatta",
	Short: "Regatta - series scoring for sailing race results",
	Long: `Regatta computes ranked series standings from per-race results under a
configurable scoring system: low point, high point percentage,
Cox-Sprague, top-X, and PWA variants, with score codes, discards, tie
averaging, and trend tracking.

By default, regatta scores every series document it discovers. Use the
specialized commands to validate documents or inspect score codes.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Directory to discover series files in (default: working directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for standings (console|json|markdown|yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for standings (stdout if omitted)")
	rootCmd.PersistentFlags().StringVarP(&trendOption, "trend", "t", "none", "Trend baseline (none|race|day|week)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color in console output")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("trend", rootCmd.PersistentFlags().Lookup("trend"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	configPaths := []string{".regattarc.json", ".regattarc.yaml", ".regattarc.yml"}
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				os.Exit(1)
			}
			break
		}
	}
}
