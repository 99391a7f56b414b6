// Package scoring implements the series scoring engine: it converts raw
// per-race results into a ranked standing under a configurable scoring
// system. The engine is a pure function of its inputs; it performs no I/O
// and keeps no state between computations.
package scoring

import (
	"errors"
	"sort"
	"strings"

	"github.com/dotcommander/regatta/internal/model"
)

// Fatal error taxonomy. Configuration and input-validity errors abort the
// whole computation; callers report the message verbatim to an operator.
var (
	ErrScoreOutsideSeries = errors.New("score references a race or competitor outside the series")
	ErrBadDiscardPattern  = errors.New("discard pattern must be comma-separated non-negative integers")
	ErrUnknownFormula     = errors.New("score code resolves to an unknown formula")
	ErrPlaceOutOfRange    = errors.New("place is out of range for the number of starters")
)

// Reserved code names. DNC backs every missing result; DNF anchors the
// place-plus-percent penalty.
const (
	codeDNC = "DNC"
	codeDNF = "DNF"
)

// defaultDNC is the hard fallback used when no system in the inheritance
// chain defines a DNC code: series size + 1, discardable, no participation.
var defaultDNC = model.ScoreCode{
	Name:              codeDNC,
	Formula:           model.FormulaSeriesCompetitorsPlus,
	FormulaValue:      1,
	Discardable:       true,
	AdjustOtherScores: true,
}

// CodeTable is the flattened effective score-code lookup for one scoring
// system: own codes first, then every ancestor's, own shadowing ancestors
// by name (case-insensitive). The engine never walks the parent chain at
// evaluation time.
type CodeTable struct {
	codes map[string]model.ScoreCode
}

// BuildCodeTable flattens a scoring system's inheritance chain into a
// single lookup and guarantees a DNC entry exists.
func BuildCodeTable(sys *model.ScoringSystem) CodeTable {
	t := CodeTable{codes: make(map[string]model.ScoreCode)}
	for s := sys; s != nil; s = s.Parent {
		for _, c := range s.Codes {
			key := strings.ToLower(c.Name)
			if _, shadowed := t.codes[key]; shadowed {
				continue
			}
			t.codes[key] = c
		}
	}
	if _, ok := t.codes[strings.ToLower(codeDNC)]; !ok {
		t.codes[strings.ToLower(codeDNC)] = defaultDNC
	}
	return t
}

// Lookup resolves a code name. Missing definitions fall back to the
// reserved default code, never to nil behavior.
func (t CodeTable) Lookup(name string) model.ScoreCode {
	if c, ok := t.codes[strings.ToLower(name)]; ok {
		return c
	}
	return t.Default()
}

// Has reports whether the name resolves to a real definition rather than
// the fallback.
func (t CodeTable) Has(name string) bool {
	_, ok := t.codes[strings.ToLower(name)]
	return ok
}

// Default returns the effective DNC code.
func (t CodeTable) Default() model.ScoreCode {
	return t.codes[strings.ToLower(codeDNC)]
}

// DNF returns the code anchoring place-plus-percent penalties, falling
// back to the default code when the system defines none.
func (t CodeTable) DNF() model.ScoreCode {
	if c, ok := t.codes[strings.ToLower(codeDNF)]; ok {
		return c
	}
	return t.Default()
}

// Effective lists the flattened codes sorted by name, for display.
func (t CodeTable) Effective() []model.ScoreCode {
	out := make([]model.ScoreCode, 0, len(t.codes))
	for _, c := range t.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
