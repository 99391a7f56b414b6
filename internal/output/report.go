// Package output renders a computed series standing for display or
// export. The engine mandates no wire format; these formatters flatten
// SeriesResults into a competitor-by-race grid with totals and ranks.
package output

import (
	"fmt"
	"math"

	"github.com/dotcommander/regatta/internal/scoring"
)

// Report is the serializable view of one series standing.
type Report struct {
	Series   string          `json:"series" yaml:"series"`
	System   string          `json:"system,omitempty" yaml:"system,omitempty"`
	Variant  string          `json:"variant" yaml:"variant"`
	Discards int             `json:"discards" yaml:"discards"`
	Races    []RaceReport    `json:"races" yaml:"races"`
	Standing []StandingEntry `json:"standing" yaml:"standing"`
}

// RaceReport identifies one scored race in the grid.
type RaceReport struct {
	Name  string `json:"name" yaml:"name"`
	Date  string `json:"date" yaml:"date"`
	Order int    `json:"order" yaml:"order"`
}

// StandingEntry is one competitor's row: rank, per-race cells, totals.
type StandingEntry struct {
	Rank          *int        `json:"rank" yaml:"rank"`
	Competitor    string      `json:"competitor" yaml:"competitor"`
	Sail          string      `json:"sail,omitempty" yaml:"sail,omitempty"`
	Scores        []ScoreCell `json:"scores" yaml:"scores"`
	Total         *float64    `json:"total" yaml:"total"`
	Trend         *int        `json:"trend,omitempty" yaml:"trend,omitempty"`
	Participation float64     `json:"participation" yaml:"participation"`
	Earned        *float64    `json:"pointsEarned,omitempty" yaml:"pointsEarned,omitempty"`
	Possible      *float64    `json:"pointsPossible,omitempty" yaml:"pointsPossible,omitempty"`
}

// ScoreCell is one grid cell.
type ScoreCell struct {
	Race      string   `json:"race" yaml:"race"`
	Value     *float64 `json:"value" yaml:"value"`
	Code      string   `json:"code,omitempty" yaml:"code,omitempty"`
	Discarded bool     `json:"discarded,omitempty" yaml:"discarded,omitempty"`
}

// BuildReport flattens a computed standing into the export view.
func BuildReport(results *scoring.SeriesResults) *Report {
	report := &Report{
		Series:   results.Series.Name,
		Variant:  variantName(results),
		Discards: results.Discards,
	}
	if results.Series.System != nil {
		report.System = results.Series.System.Name
	}
	for _, r := range results.Races {
		report.Races = append(report.Races, RaceReport{
			Name:  r.Name,
			Date:  r.Date.Format("2006-01-02"),
			Order: r.Order,
		})
	}
	for _, c := range results.Competitors {
		entry := StandingEntry{
			Rank:          c.Rank,
			Competitor:    c.Competitor.Name,
			Sail:          c.Competitor.SailNumber,
			Total:         c.Total,
			Trend:         c.Trend,
			Participation: c.ParticipationPercent,
			Earned:        c.PointsEarned,
			Possible:      c.PointsPossible,
		}
		for _, cs := range c.Scores {
			entry.Scores = append(entry.Scores, ScoreCell{
				Race:      cs.Race.Name,
				Value:     cs.Value,
				Code:      cs.Code,
				Discarded: cs.Discard,
			})
		}
		report.Standing = append(report.Standing, entry)
	}
	return report
}

func variantName(results *scoring.SeriesResults) string {
	if results.Series.System == nil {
		return scoring.VariantLowPoint.String()
	}
	return scoring.ResolveVariant(results.Series.System).String()
}

// FormatValue renders a score value compactly: whole numbers without a
// decimal point, everything else to one decimal.
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// CellText renders a grid cell: the value, the code when one applies,
// and parentheses around discarded results.
func CellText(cell ScoreCell) string {
	text := ""
	switch {
	case cell.Value != nil && cell.Code != "":
		text = FormatValue(*cell.Value) + "/" + cell.Code
	case cell.Value != nil:
		text = FormatValue(*cell.Value)
	case cell.Code != "":
		text = cell.Code
	default:
		text = "-"
	}
	if cell.Discarded {
		text = "(" + text + ")"
	}
	return text
}
