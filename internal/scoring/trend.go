package scoring

import (
	"fmt"
	"strings"

	"github.com/dotcommander/regatta/internal/model"
)

// TrendOption selects how much recent history the trend diff excludes.
type TrendOption int

const (
	TrendNone TrendOption = iota
	// TrendPreviousRace drops the single most recent race.
	TrendPreviousRace
	// TrendPreviousDay drops every race on or after the most recent date
	// minus one day.
	TrendPreviousDay
	// TrendPreviousWeek drops every race on or after the most recent date
	// minus seven days.
	TrendPreviousWeek
)

// ParseTrendOption maps a CLI/config string to a trend option.
func ParseTrendOption(s string) (TrendOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TrendNone, nil
	case "race":
		return TrendPreviousRace, nil
	case "day":
		return TrendPreviousDay, nil
	case "week":
		return TrendPreviousWeek, nil
	default:
		return TrendNone, fmt.Errorf("unknown trend option: %q", s)
	}
}

// ApplyTrend reruns the pipeline on a truncated race set and records each
// ranked competitor's movement as oldRank - newRank. Competitors absent
// from the truncated ranking baseline at one worse than the old field.
func ApplyTrend(results *SeriesResults, opt TrendOption) error {
	if opt == TrendNone || len(results.Races) == 0 {
		return nil
	}
	truncated := truncateSeries(results.Series, results.Races, opt)
	previous, err := Compute(truncated)
	if err != nil {
		return fmt.Errorf("computing trend baseline: %w", err)
	}

	maxOld := 0
	for _, c := range previous.Competitors {
		if c.Rank != nil && *c.Rank > maxOld {
			maxOld = *c.Rank
		}
	}

	for _, c := range results.Competitors {
		if c.Rank == nil {
			continue
		}
		old := maxOld + 1
		if pc := previous.ResultsFor(c.Competitor.ID); pc != nil && pc.Rank != nil {
			old = *pc.Rank
		}
		trend := old - *c.Rank
		c.Trend = &trend
	}
	return nil
}

// truncateSeries copies the series with the trailing races removed per
// the trend option. Sailed races arrive in (date, order) sequence.
func truncateSeries(series *model.Series, sailed []*model.Race, opt TrendOption) *model.Series {
	drop := func(r *model.Race) bool { return false }
	last := sailed[len(sailed)-1]
	switch opt {
	case TrendPreviousRace:
		drop = func(r *model.Race) bool { return r == last }
	case TrendPreviousDay:
		cutoff := last.Date.AddDate(0, 0, -1)
		drop = func(r *model.Race) bool { return !r.Date.Before(cutoff) }
	case TrendPreviousWeek:
		cutoff := last.Date.AddDate(0, 0, -7)
		drop = func(r *model.Race) bool { return !r.Date.Before(cutoff) }
	}

	out := &model.Series{
		Name:        series.Name,
		Competitors: series.Competitors,
		System:      series.System,
	}
	for _, r := range series.Races {
		if !drop(r) {
			out.Races = append(out.Races, r)
		}
	}
	return out
}
