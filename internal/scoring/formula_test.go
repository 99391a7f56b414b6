package scoring

import (
	"errors"
	"testing"

	"github.com/dotcommander/regatta/internal/model"
)

func testPipeline(t *testing.T, races ...*model.Race) *pipeline {
	t.Helper()
	p, err := newPipeline(newSeries(lowPointSystem(""), []string{"a", "b", "c", "d"}, races...))
	if err != nil {
		t.Fatalf("newPipeline: %v", err)
	}
	return p
}

func TestBuildRaceContext(t *testing.T) {
	r := raceOn(0, 1,
		placed("a", 1),
		coded("b", "DNF"), // started and came to start
		coded("c", "DNS"), // came to start only
		coded("d", "DNC"), // neither
	)
	p := testPipeline(t, r)
	rc := p.ctxs[r.ID]

	if rc.started != 2 {
		t.Errorf("started = %d, want 2", rc.started)
	}
	if rc.cameToStart != 3 {
		t.Errorf("cameToStart = %d, want 3", rc.cameToStart)
	}
	if rc.entries != 4 {
		t.Errorf("entries = %d, want 4", rc.entries)
	}
}

func TestEvalRaceCode(t *testing.T) {
	r := raceOn(0, 1, placed("a", 1), placed("b", 2), coded("c", "DNS"))
	p := testPipeline(t, r)
	rc := p.ctxs[r.ID]

	tests := []struct {
		name string
		code model.ScoreCode
		want float64
	}{
		{
			name: "fixed",
			code: model.ScoreCode{Name: "RET", Formula: model.FormulaFixed, FormulaValue: 9},
			want: 9,
		},
		{
			name: "finishers plus",
			code: model.ScoreCode{Name: "DNF", Formula: model.FormulaFinishersPlus, FormulaValue: 2},
			want: 4, // two started plus two
		},
		{
			name: "came to start plus",
			code: model.ScoreCode{Name: "DNS", Formula: model.FormulaCameToStartPlus, FormulaValue: 1},
			want: 4, // three came to start plus one
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.evalRaceCode(tt.code, rc, nil)
			if err != nil {
				t.Fatalf("evalRaceCode: %v", err)
			}
			if got != tt.want {
				t.Errorf("evalRaceCode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalRaceCodeManual(t *testing.T) {
	r := raceOn(0, 1, placed("a", 1))
	p := testPipeline(t, r)
	code := model.ScoreCode{Name: "MAN", Formula: model.FormulaManual}

	cs := &CalculatedScore{Raw: &model.Score{Place: ip(7)}}
	got, err := p.evalRaceCode(code, p.ctxs[r.ID], cs)
	if err != nil {
		t.Fatalf("evalRaceCode: %v", err)
	}
	if got != 7 {
		t.Errorf("manual value = %v, want 7 (the recorded place reused as points)", got)
	}
}

func TestEvalRaceCodeRejectsSeriesFormulas(t *testing.T) {
	r := raceOn(0, 1, placed("a", 1))
	p := testPipeline(t, r)
	code := model.ScoreCode{Name: "AVG", Formula: model.FormulaAverage}

	if _, err := p.evalRaceCode(code, p.ctxs[r.ID], nil); !errors.Is(err, ErrUnknownFormula) {
		t.Fatalf("err = %v, want ErrUnknownFormula", err)
	}
}

func TestEvalRaceCodeSelfReferentialPenalty(t *testing.T) {
	codes := []model.ScoreCode{
		{Name: "DNF", Formula: model.FormulaPlacePlusPercent, FormulaValue: 20},
	}
	sys := systemNamed("Appendix A Low Point", "", codes...)
	r := raceOn(0, 1, placed("a", 1))
	p, err := newPipeline(newSeries(sys, []string{"a"}, r))
	if err != nil {
		t.Fatalf("newPipeline: %v", err)
	}

	_, err = p.evalRaceCode(p.codes.DNF(), p.ctxs[r.ID], nil)
	if !errors.Is(err, ErrUnknownFormula) {
		t.Fatalf("err = %v, want ErrUnknownFormula for a self-referential DNF", err)
	}
}

func TestDefaultAbsentValue(t *testing.T) {
	t.Run("series competitors plus", func(t *testing.T) {
		r := raceOn(0, 1, placed("a", 1), placed("b", 2))
		p := testPipeline(t, r)
		got, err := p.defaultAbsentValue(p.ctxs[r.ID])
		if err != nil {
			t.Fatalf("defaultAbsentValue: %v", err)
		}
		if got != 5 { // four competitors in the series plus one
			t.Errorf("defaultAbsentValue = %v, want 5", got)
		}
	})

	t.Run("race based default", func(t *testing.T) {
		codes := []model.ScoreCode{
			{Name: "DNC", Formula: model.FormulaCameToStartPlus, FormulaValue: 2, Discardable: true},
		}
		sys := systemNamed("Appendix A Low Point", "", codes...)
		r := raceOn(0, 1, placed("a", 1), placed("b", 2))
		p, err := newPipeline(newSeries(sys, []string{"a", "b"}, r))
		if err != nil {
			t.Fatalf("newPipeline: %v", err)
		}
		got, err := p.defaultAbsentValue(p.ctxs[r.ID])
		if err != nil {
			t.Fatalf("defaultAbsentValue: %v", err)
		}
		if got != 4 { // two came to start plus two
			t.Errorf("defaultAbsentValue = %v, want 4", got)
		}
	})
}

func TestPenaltyDirections(t *testing.T) {
	t.Run("low point adds a share of the dnf score", func(t *testing.T) {
		var r lowPointRules
		if got := r.penalty(2, 5, 4, 20); got != 3 {
			t.Errorf("penalty = %v, want 3", got)
		}
		// Never worse than the DNF score itself.
		if got := r.penalty(4, 5, 4, 100); got != 5 {
			t.Errorf("penalty = %v, want 5", got)
		}
	})

	t.Run("cox sprague subtracts a share of the fleet", func(t *testing.T) {
		var r coxSpragueRules
		if got := r.penalty(94, 0, 10, 20); got != 92 {
			t.Errorf("penalty = %v, want 92", got)
		}
		// Floored at the DNF score.
		if got := r.penalty(10, 8, 10, 100); got != 8 {
			t.Errorf("penalty = %v, want 8", got)
		}
	})
}
