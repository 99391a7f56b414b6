package scoring

import (
	"github.com/dotcommander/regatta/internal/model"
)

// CalculatedScore is the derived result for one (competitor, sailed race)
// pair. Exactly one exists per pair after the fill-defaults step.
type CalculatedScore struct {
	Race         *model.Race
	CompetitorID string
	// Raw is the underlying raw score; nil when the entry was synthesized
	// for a race the competitor did not enter.
	Raw *model.Score
	// Code is the resolved score-code name, empty for a plain place.
	Code string
	// Place is the working place after transient places are cleared.
	Place *int
	// Value is the resolved score value; nil until computed.
	Value *float64
	// Perfect is the best obtainable value in this race, the ratio
	// denominator for percent systems.
	Perfect float64
	// Discard marks the score as excluded from the total.
	Discard bool
	// Counts marks the race as counting toward participation.
	Counts bool
}

// value returns the resolved score value, zero when unresolved.
func (c *CalculatedScore) value() float64 {
	if c.Value == nil {
		return 0
	}
	return *c.Value
}

func (c *CalculatedScore) setValue(v float64) {
	c.Value = &v
}

// CompetitorResults is the per-competitor slice of a series standing.
type CompetitorResults struct {
	Competitor model.Competitor
	// Scores holds one CalculatedScore per sailed race, in race order.
	Scores []*CalculatedScore
	// Total is nil when the competitor failed a participation threshold.
	Total *float64
	// Rank is nil when the competitor is unranked.
	Rank *int
	// Trend is the signed rank delta against a truncated race set.
	Trend *int
	// ParticipationPercent is the share of sailed races that counted
	// toward participation, 0-100.
	ParticipationPercent float64
	// PointsEarned and PointsPossible carry the percent-system ratio.
	PointsEarned   *float64
	PointsPossible *float64

	byRace map[string]*CalculatedScore
}

func newCompetitorResults(c model.Competitor, races []*model.Race) *CompetitorResults {
	return &CompetitorResults{
		Competitor: c,
		Scores:     make([]*CalculatedScore, 0, len(races)),
		byRace:     make(map[string]*CalculatedScore, len(races)),
	}
}

func (c *CompetitorResults) add(cs *CalculatedScore) {
	c.Scores = append(c.Scores, cs)
	c.byRace[cs.Race.ID] = cs
}

// ScoreFor returns the calculated score for a race, or nil when the race
// is not part of the computed set.
func (c *CompetitorResults) ScoreFor(raceID string) *CalculatedScore {
	return c.byRace[raceID]
}

// countedRaces is the number of races counting toward participation.
func (c *CompetitorResults) countedRaces() int {
	n := 0
	for _, cs := range c.Scores {
		if cs.Counts {
			n++
		}
	}
	return n
}

// SeriesResults is the ranked outcome of one computation.
type SeriesResults struct {
	Series *model.Series
	// Races are the sailed races in (date, order) sequence.
	Races []*model.Race
	// Competitors are reordered by rank after computation; unranked
	// competitors sort last.
	Competitors []*CompetitorResults
	// Discards is the series-level discard count from the pattern.
	Discards int

	byCompetitor map[string]*CompetitorResults
}

// ResultsFor returns the per-competitor results, or nil when unknown.
func (r *SeriesResults) ResultsFor(competitorID string) *CompetitorResults {
	return r.byCompetitor[competitorID]
}

// ScoreFor looks up the calculated score for a (competitor, race) pair,
// defaulting to a synthetic did-not-compete entry when absent.
func (r *SeriesResults) ScoreFor(competitorID, raceID string) *CalculatedScore {
	if cr := r.byCompetitor[competitorID]; cr != nil {
		if cs := cr.ScoreFor(raceID); cs != nil {
			return cs
		}
	}
	return &CalculatedScore{CompetitorID: competitorID, Code: codeDNC}
}
