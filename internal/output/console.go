package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleFormatter renders a standings grid for terminal display.
type ConsoleFormatter struct {
	quiet    bool
	verbose  bool
	colorize bool
}

// NewConsoleFormatter creates a new ConsoleFormatter.
func NewConsoleFormatter(quiet, verbose, colorize bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		quiet:    quiet,
		verbose:  verbose,
		colorize: colorize,
	}
}

// Format prints the standing to stdout.
func (f *ConsoleFormatter) Format(report *Report) error {
	if f.quiet {
		return nil
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	discardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	leaderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	if !f.colorize {
		headerStyle = lipgloss.NewStyle()
		discardStyle = lipgloss.NewStyle()
		leaderStyle = lipgloss.NewStyle()
	}

	title := report.Series
	if report.System != "" {
		title += " — " + report.System
	}
	fmt.Println(headerStyle.Render(title))
	if f.verbose {
		fmt.Printf("variant: %s, races: %d, discards: %d\n", report.Variant, len(report.Races), report.Discards)
	}

	header := []string{"Rank", "Competitor"}
	for _, r := range report.Races {
		header = append(header, r.Name)
	}
	header = append(header, "Total", "Trend")

	rows := make([][]string, 0, len(report.Standing))
	for _, entry := range report.Standing {
		row := []string{rankText(entry.Rank), competitorText(entry)}
		for _, cell := range entry.Scores {
			row = append(row, CellText(cell))
		}
		row = append(row, totalText(entry.Total), trendText(entry.Trend))
		rows = append(rows, row)
	}

	widths := columnWidths(header, rows)
	fmt.Println(renderRow(header, widths, headerStyle))
	for i, row := range rows {
		style := lipgloss.NewStyle()
		entry := report.Standing[i]
		switch {
		case entry.Rank != nil && *entry.Rank == 1:
			style = leaderStyle
		case entry.Rank == nil:
			style = discardStyle
		}
		fmt.Println(renderRow(row, widths, style))
	}
	return nil
}

func rankText(rank *int) string {
	if rank == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *rank)
}

func competitorText(entry StandingEntry) string {
	if entry.Sail != "" {
		return entry.Competitor + " (" + entry.Sail + ")"
	}
	return entry.Competitor
}

func totalText(total *float64) string {
	if total == nil {
		return "-"
	}
	return FormatValue(*total)
}

func trendText(trend *int) string {
	switch {
	case trend == nil:
		return ""
	case *trend > 0:
		return fmt.Sprintf("▲%d", *trend)
	case *trend < 0:
		return fmt.Sprintf("▼%d", -*trend)
	default:
		return "="
	}
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}
	return widths
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		pad := widths[i] - len([]rune(cell))
		if pad < 0 {
			pad = 0
		}
		padded[i] = cell + strings.Repeat(" ", pad)
	}
	return style.Render(strings.Join(padded, "  "))
}
