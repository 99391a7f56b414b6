// Package model defines the input-side data model for series scoring:
// races, raw scores, competitors, and the scoring-system configuration.
// Everything here is read-only for the duration of one computation.
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RaceState describes whether a race contributes to the series standing.
type RaceState string

// Race states. Only Raced and Preliminary races are scored; everything
// else is excluded from series computation entirely.
const (
	RaceStateRaced       RaceState = "raced"
	RaceStatePreliminary RaceState = "preliminary"
	RaceStateScheduled   RaceState = "scheduled"
	RaceStateAbandoned   RaceState = "abandoned"
)

// Scored reports whether races in this state count toward the series.
func (s RaceState) Scored() bool {
	return s == RaceStateRaced || s == RaceStatePreliminary
}

// ParseRaceState parses a race state string, defaulting empty to raced.
func ParseRaceState(s string) (RaceState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raced":
		return RaceStateRaced, nil
	case "preliminary":
		return RaceStatePreliminary, nil
	case "scheduled":
		return RaceStateScheduled, nil
	case "abandoned":
		return RaceStateAbandoned, nil
	default:
		return "", fmt.Errorf("unknown race state: %q", s)
	}
}

// Formula identifies one of the closed set of score-code calculations.
type Formula string

// The closed set of formula kinds. Tie is a marker consumed by tie
// resolution rather than a value formula.
const (
	FormulaFixed                 Formula = "fixed"
	FormulaManual                Formula = "manual"
	FormulaFinishersPlus         Formula = "finishers-plus"
	FormulaCameToStartPlus       Formula = "came-to-start-plus"
	FormulaPlacePlusPercent      Formula = "place-plus-percent"
	FormulaAverage               Formula = "average"
	FormulaAverageNoDiscards     Formula = "average-no-discards"
	FormulaAveragePriorRaces     Formula = "average-prior-races"
	FormulaSeriesCompetitorsPlus Formula = "series-competitors-plus"
	FormulaTie                   Formula = "tie"
)

// ParseFormula resolves a configured formula name to its kind. Unknown
// names are a configuration error, surfaced at load time rather than
// mid-computation.
func ParseFormula(s string) (Formula, error) {
	f := Formula(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormulaFixed, FormulaManual, FormulaFinishersPlus, FormulaCameToStartPlus,
		FormulaPlacePlusPercent, FormulaAverage, FormulaAverageNoDiscards,
		FormulaAveragePriorRaces, FormulaSeriesCompetitorsPlus, FormulaTie:
		return f, nil
	default:
		return "", fmt.Errorf("unknown formula: %q", s)
	}
}

// ScoreCode is a symbolic result (e.g. "DNF") substituting for a numeric
// place, plus the flags controlling how it interacts with the rest of
// the series.
type ScoreCode struct {
	Name         string
	Formula      Formula
	FormulaValue float64

	// Discardable scores may be excluded from the total by the discard
	// pattern.
	Discardable bool
	// PreserveResult keeps the original place-derived value even though
	// the code is set.
	PreserveResult bool
	// AdjustOtherScores: when false, a competitor carrying this code does
	// not count toward "beaten by" totals for others.
	AdjustOtherScores bool
	// Started marks the competitor as having started the race.
	Started bool
	// CameToStart marks the competitor as having come to the start area.
	CameToStart bool
	// CountAsParticipation makes the race count toward participation
	// thresholds and percent-system denominators.
	CountAsParticipation bool
}

// ScoringSystem is the configured rule set for a series. Systems form a
// tree via Parent; effective score codes are the system's own codes plus
// all ancestor codes, own codes shadowing ancestors by name.
type ScoringSystem struct {
	Name string
	// DiscardPattern is a comma-separated list: index i gives the number
	// of discards owed for i+1 sailed races, with the last entry
	// repeating for larger counts. The literal string format is part of
	// the persisted configuration.
	DiscardPattern string
	// ParticipationPercent is the 0-100 threshold a competitor must sail
	// to receive a rank in percent systems. The Top-X family reuses it as
	// the number of counted scores.
	ParticipationPercent *float64
	// FirstPlaceValue substitutes a constant for a first-place finish in
	// low-point systems ("first place is X").
	FirstPlaceValue *float64
	Parent          *ScoringSystem
	Codes           []ScoreCode
}

// Root walks the parent chain to the topmost system.
func (s *ScoringSystem) Root() *ScoringSystem {
	r := s
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Competitor identifies an entrant in the series.
type Competitor struct {
	ID         string
	Name       string
	SailNumber string
}

// Score is one raw result: a place, a code, or both. CodePoints is an
// explicit manual override that wins over any formula.
type Score struct {
	CompetitorID string
	RaceID       string
	Place        *int
	Code         string
	CodePoints   *float64
}

// Race is a single start carrying its raw scores. Order breaks ties when
// two races share a date.
type Race struct {
	ID     string
	Name   string
	Date   time.Time
	Order  int
	State  RaceState
	Scores []Score
}

// Before reports whether r was sailed strictly before o in (date, order)
// sequence.
func (r *Race) Before(o *Race) bool {
	if !r.Date.Equal(o.Date) {
		return r.Date.Before(o.Date)
	}
	return r.Order < o.Order
}

// Series is the full set of races scored together under one system.
type Series struct {
	Name        string
	Competitors []Competitor
	Races       []*Race
	System      *ScoringSystem
}

// Competitor returns the competitor with the given id, if present.
func (s *Series) Competitor(id string) (Competitor, bool) {
	for _, c := range s.Competitors {
		if c.ID == id {
			return c, true
		}
	}
	return Competitor{}, false
}

// SailedRaces returns the scored races in (date, order) ascending
// sequence without mutating the series.
func (s *Series) SailedRaces() []*Race {
	sailed := make([]*Race, 0, len(s.Races))
	for _, r := range s.Races {
		if r.State.Scored() {
			sailed = append(sailed, r)
		}
	}
	sort.SliceStable(sailed, func(i, j int) bool { return sailed[i].Before(sailed[j]) })
	return sailed
}
