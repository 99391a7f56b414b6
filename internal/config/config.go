package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dotcommander/regatta/internal/scoring"
)

// Config represents the regatta CLI configuration.
type Config struct {
	Root    string `mapstructure:"root"`
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`
	Trend   string `mapstructure:"trend"`
	NoColor bool   `mapstructure:"no-color"`
}

// LoadConfig loads configuration from rc files, environment, and bound
// flags. rootPath, when given, overrides the configured root.
func LoadConfig(rootPath string) (*Config, error) {
	cwd, _ := os.Getwd()
	viper.SetDefault("root", cwd)
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("trend", "none")
	viper.SetDefault("no-color", false)

	// Config file locations
	configPaths := []string{".regattarc.json", ".regattarc.yaml", ".regattarc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix("REGATTA")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// TrendOption resolves the configured trend string.
func (c *Config) TrendOption() (scoring.TrendOption, error) {
	return scoring.ParseTrendOption(c.Trend)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	switch config.Format {
	case "console", "json", "markdown", "yaml":
	default:
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', 'markdown', or 'yaml'", config.Format)
	}

	if _, err := scoring.ParseTrendOption(config.Trend); err != nil {
		return fmt.Errorf("invalid trend: %s. Must be 'none', 'race', 'day', or 'week'", config.Trend)
	}

	return nil
}
