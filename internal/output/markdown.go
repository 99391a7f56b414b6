package output

import (
	"fmt"
	"os"
	"strings"
)

// MarkdownFormatter writes the standing as a markdown table.
type MarkdownFormatter struct {
	outputFile string
}

// NewMarkdownFormatter creates a new MarkdownFormatter. An empty output
// file writes to stdout.
func NewMarkdownFormatter(outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{outputFile: outputFile}
}

// Format renders the report.
func (f *MarkdownFormatter) Format(report *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Series)
	if report.System != "" {
		fmt.Fprintf(&b, "Scoring: %s (%s), %d discard(s)\n\n", report.System, report.Variant, report.Discards)
	}

	header := []string{"Rank", "Competitor"}
	for _, r := range report.Races {
		header = append(header, r.Name)
	}
	header = append(header, "Total", "Trend")
	fmt.Fprintf(&b, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(&b, "|%s\n", strings.Repeat(" --- |", len(header)))

	for _, entry := range report.Standing {
		row := []string{rankText(entry.Rank), competitorText(entry)}
		for _, cell := range entry.Scores {
			row = append(row, CellText(cell))
		}
		row = append(row, totalText(entry.Total), trendText(entry.Trend))
		fmt.Fprintf(&b, "| %s |\n", strings.Join(row, " | "))
	}

	if f.outputFile == "" {
		fmt.Print(b.String())
		return nil
	}
	if err := os.WriteFile(f.outputFile, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("error writing report file: %w", err)
	}
	return nil
}
