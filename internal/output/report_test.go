package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/regatta/internal/model"
	"github.com/dotcommander/regatta/internal/scoring"
)

func computedResults(t *testing.T) *scoring.SeriesResults {
	t.Helper()
	place := func(p int) *int { return &p }
	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	series := &model.Series{
		Name: "Spring Series",
		System: &model.ScoringSystem{
			Name:           "Appendix A Low Point",
			DiscardPattern: "0,1",
		},
		Competitors: []model.Competitor{
			{ID: "a", Name: "Aurora", SailNumber: "GBR 1"},
			{ID: "b", Name: "Borealis"},
		},
		Races: []*model.Race{
			{ID: "r1", Name: "Race 1", Date: day, Order: 1, State: model.RaceStateRaced,
				Scores: []model.Score{
					{CompetitorID: "a", Place: place(1)},
					{CompetitorID: "b", Place: place(2)},
				}},
			{ID: "r2", Name: "Race 2", Date: day.AddDate(0, 0, 1), Order: 1, State: model.RaceStateRaced,
				Scores: []model.Score{
					{CompetitorID: "a", Place: place(1)},
					{CompetitorID: "b", Place: place(2)},
				}},
		},
	}
	results, err := scoring.Compute(series)
	require.NoError(t, err)
	return results
}

func TestBuildReport(t *testing.T) {
	report := BuildReport(computedResults(t))

	assert.Equal(t, "Spring Series", report.Series)
	assert.Equal(t, "Appendix A Low Point", report.System)
	assert.Equal(t, "low-point", report.Variant)
	assert.Equal(t, 1, report.Discards)

	require.Len(t, report.Races, 2)
	assert.Equal(t, "Race 1", report.Races[0].Name)
	assert.Equal(t, "2025-06-01", report.Races[0].Date)

	require.Len(t, report.Standing, 2)
	leader := report.Standing[0]
	assert.Equal(t, "Aurora", leader.Competitor)
	assert.Equal(t, "GBR 1", leader.Sail)
	require.NotNil(t, leader.Rank)
	assert.Equal(t, 1, *leader.Rank)
	require.NotNil(t, leader.Total)
	assert.Equal(t, 1.0, *leader.Total)
	require.Len(t, leader.Scores, 2)
	// One of the two wins is the mandatory discard.
	discards := 0
	for _, cell := range leader.Scores {
		if cell.Discarded {
			discards++
		}
	}
	assert.Equal(t, 1, discards)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 3, want: "3"},
		{in: 2.5, want: "2.5"},
		{in: 100, want: "100"},
		{in: 66.7, want: "66.7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}

func TestCellText(t *testing.T) {
	v := 5.0
	tests := []struct {
		name string
		cell ScoreCell
		want string
	}{
		{name: "plain value", cell: ScoreCell{Value: &v}, want: "5"},
		{name: "value with code", cell: ScoreCell{Value: &v, Code: "DNF"}, want: "5/DNF"},
		{name: "code only", cell: ScoreCell{Code: "DNC"}, want: "DNC"},
		{name: "empty", cell: ScoreCell{}, want: "-"},
		{name: "discarded", cell: ScoreCell{Value: &v, Discarded: true}, want: "(5)"},
		{name: "discarded code", cell: ScoreCell{Value: &v, Code: "DNF", Discarded: true}, want: "(5/DNF)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellText(tt.cell))
		})
	}
}

func TestJSONFormatterWritesFile(t *testing.T) {
	report := BuildReport(computedResults(t))
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, NewJSONFormatter(true, path).Format(report))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var wrapped JSONReport
	require.NoError(t, json.Unmarshal(content, &wrapped))
	assert.Equal(t, "regatta", wrapped.Header.Tool)
	require.NotNil(t, wrapped.Report)
	assert.Equal(t, "Spring Series", wrapped.Report.Series)
	assert.Len(t, wrapped.Report.Standing, 2)
}

func TestMarkdownFormatterWritesFile(t *testing.T) {
	report := BuildReport(computedResults(t))
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, NewMarkdownFormatter(path).Format(report))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "# Spring Series"))
	assert.Contains(t, text, "| Rank | Competitor | Race 1 | Race 2 | Total | Trend |")
	assert.Contains(t, text, "Aurora (GBR 1)")
	assert.Contains(t, text, "(1)") // discarded win in parentheses
}

func TestYAMLFormatterWritesFile(t *testing.T) {
	report := BuildReport(computedResults(t))
	path := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, NewYAMLFormatter(path).Format(report))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "series: Spring Series")
	assert.Contains(t, string(content), "variant: low-point")
}

func TestConsoleFormatterColorize(t *testing.T) {
	assert.True(t, NewConsoleFormatter(false, false, true).colorize)
	assert.False(t, NewConsoleFormatter(false, false, false).colorize)
}

func TestTrendText(t *testing.T) {
	up, down, flat := 2, -1, 0
	assert.Equal(t, "", trendText(nil))
	assert.Equal(t, "▲2", trendText(&up))
	assert.Equal(t, "▼1", trendText(&down))
	assert.Equal(t, "=", trendText(&flat))
}
