package scoring

import (
	"fmt"

	"github.com/dotcommander/regatta/internal/model"
)

// raceContext carries the per-race counts the race-based formulas need.
type raceContext struct {
	race        *model.Race
	started     int
	cameToStart int
	entries     int
}

// buildRaceContext counts starters and start-area attendance for one
// race. A plain placed result counts for both; coded results follow the
// code's flags.
func (p *pipeline) buildRaceContext(r *model.Race) *raceContext {
	rc := &raceContext{race: r, entries: len(r.Scores)}
	for _, s := range r.Scores {
		if s.Code == "" {
			if s.Place != nil {
				rc.started++
				rc.cameToStart++
			}
			continue
		}
		code := p.codes.Lookup(s.Code)
		if code.Started {
			rc.started++
		}
		if code.CameToStart {
			rc.cameToStart++
		}
	}
	return rc
}

// raceBased reports whether the formula is computable from the current
// race alone (step 4 of the pipeline).
func raceBased(f model.Formula) bool {
	switch f {
	case model.FormulaFixed, model.FormulaManual, model.FormulaFinishersPlus,
		model.FormulaCameToStartPlus, model.FormulaPlacePlusPercent:
		return true
	}
	return false
}

// averageFamily reports whether the formula draws on the competitor's
// score history (step 5).
func averageFamily(f model.Formula) bool {
	switch f {
	case model.FormulaAverage, model.FormulaAverageNoDiscards, model.FormulaAveragePriorRaces:
		return true
	}
	return false
}

// evalRaceCode computes a trivial or race-based formula for one score.
// An unhandled formula here is a configuration bug and aborts the whole
// computation.
func (p *pipeline) evalRaceCode(code model.ScoreCode, rc *raceContext, cs *CalculatedScore) (float64, error) {
	switch code.Formula {
	case model.FormulaFixed:
		return code.FormulaValue, nil
	case model.FormulaManual:
		// The raw place is reinterpreted directly as the numeric value.
		if cs != nil && cs.Raw != nil && cs.Raw.Place != nil {
			return float64(*cs.Raw.Place), nil
		}
		if cs != nil && cs.Value != nil {
			return *cs.Value, nil
		}
		return 0, nil
	case model.FormulaFinishersPlus:
		return float64(rc.started) + code.FormulaValue, nil
	case model.FormulaCameToStartPlus:
		return float64(rc.cameToStart) + code.FormulaValue, nil
	case model.FormulaPlacePlusPercent:
		dnf := p.codes.DNF()
		if dnf.Formula == model.FormulaPlacePlusPercent {
			return 0, fmt.Errorf("%w: DNF code cannot itself be place-plus-percent", ErrUnknownFormula)
		}
		dnfScore, err := p.evalRaceCode(dnf, rc, nil)
		if err != nil {
			return 0, err
		}
		cur := 0.0
		if cs != nil {
			switch {
			case cs.Value != nil:
				cur = *cs.Value
			case cs.Raw != nil && cs.Raw.Place != nil:
				cur = float64(*cs.Raw.Place)
			}
		}
		return p.rules.penalty(cur, dnfScore, rc.cameToStart, code.FormulaValue), nil
	default:
		return 0, fmt.Errorf("%w: %q used as a race-based formula (code %q)", ErrUnknownFormula, code.Formula, code.Name)
	}
}

// defaultAbsentValue is what an absent competitor would score in the
// race, the bound every coded score is clamped against.
func (p *pipeline) defaultAbsentValue(rc *raceContext) (float64, error) {
	code := p.codes.Default()
	if code.Formula == model.FormulaSeriesCompetitorsPlus {
		return float64(len(p.series.Competitors)) + code.FormulaValue, nil
	}
	if raceBased(code.Formula) {
		return p.evalRaceCode(code, rc, nil)
	}
	return 0, fmt.Errorf("%w: default code %q uses formula %q", ErrUnknownFormula, code.Name, code.Formula)
}
