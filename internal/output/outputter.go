package output

import (
	"fmt"

	"github.com/dotcommander/regatta/internal/config"
	"github.com/dotcommander/regatta/internal/scoring"
)

// Outputter selects and drives the formatter for the configured format.
type Outputter struct {
	config *config.Config
}

// NewOutputter creates a new Outputter.
func NewOutputter(config *config.Config) *Outputter {
	return &Outputter{config: config}
}

// Render flattens the results and writes them in the configured format.
func (o *Outputter) Render(results *scoring.SeriesResults) error {
	report := BuildReport(results)
	switch o.config.Format {
	case "console":
		return NewConsoleFormatter(o.config.Quiet, o.config.Verbose, !o.config.NoColor).Format(report)
	case "json":
		return NewJSONFormatter(true, o.config.Output).Format(report)
	case "markdown":
		return NewMarkdownFormatter(o.config.Output).Format(report)
	case "yaml":
		return NewYAMLFormatter(o.config.Output).Format(report)
	default:
		return fmt.Errorf("unsupported format: %s", o.config.Format)
	}
}
