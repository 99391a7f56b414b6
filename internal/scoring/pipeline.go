package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/dotcommander/regatta/internal/model"
)

// Options configure one computation.
type Options struct {
	// Trend recomputes the standing on a truncated race set and records
	// each competitor's rank movement.
	Trend TrendOption
}

// Compute runs the full scoring pipeline over a series. It is a pure
// function of the races, scores, and scoring system; identical inputs
// yield identical results.
func Compute(series *model.Series) (*SeriesResults, error) {
	return ComputeWithOptions(series, Options{})
}

// ComputeWithOptions runs the pipeline and, when requested, the trend
// diff against a truncated race set.
func ComputeWithOptions(series *model.Series, opts Options) (*SeriesResults, error) {
	p, err := newPipeline(series)
	if err != nil {
		return nil, err
	}
	results, err := p.run()
	if err != nil {
		return nil, err
	}
	if opts.Trend != TrendNone {
		if err := ApplyTrend(results, opts.Trend); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// pipeline is the working state of one computation. It is built fresh
// per call and discarded with the result.
type pipeline struct {
	series  *model.Series
	races   []*model.Race
	ctxs    map[string]*raceContext
	codes   CodeTable
	pattern []int
	rules   variantRules
}

func newPipeline(series *model.Series) (*pipeline, error) {
	sys := series.System
	if sys == nil {
		sys = &model.ScoringSystem{Name: "Appendix A Low Point"}
	}
	pattern, err := ParseDiscardPattern(sys.DiscardPattern)
	if err != nil {
		return nil, err
	}
	p := &pipeline{
		series:  series,
		races:   series.SailedRaces(),
		codes:   BuildCodeTable(sys),
		pattern: pattern,
		rules:   rulesFor(ResolveVariant(sys), sys),
	}
	p.ctxs = make(map[string]*raceContext, len(p.races))
	for _, r := range p.races {
		p.ctxs[r.ID] = p.buildRaceContext(r)
	}
	return p, nil
}

func (p *pipeline) run() (*SeriesResults, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	results := &SeriesResults{
		Series:       p.series,
		Races:        p.races,
		Discards:     DiscardsFor(p.pattern, len(p.races)),
		byCompetitor: make(map[string]*CompetitorResults, len(p.series.Competitors)),
	}
	for _, c := range p.series.Competitors {
		cr := newCompetitorResults(c, p.races)
		results.Competitors = append(results.Competitors, cr)
		results.byCompetitor[c.ID] = cr
	}

	if err := p.basicScores(results); err != nil {
		return nil, err
	}
	if err := p.raceDependentScores(results); err != nil {
		return nil, err
	}
	if err := p.seriesDependentScores(results); err != nil {
		return nil, err
	}
	if err := p.applyCaps(results); err != nil {
		return nil, err
	}

	for _, c := range results.Competitors {
		if len(p.races) > 0 {
			c.ParticipationPercent = float64(c.countedRaces()) / float64(len(p.races)) * 100
		}
		p.rules.selectDiscards(p, c, p.rules.discardCount(p, c))
		p.rules.totals(p, c)
	}

	p.rank(results)
	return results, nil
}

// validate fails fast when any raw score references a race or competitor
// outside the series. These are operator-facing data bugs; no partial
// result is produced.
func (p *pipeline) validate() error {
	for _, r := range p.series.Races {
		for _, s := range r.Scores {
			if s.RaceID != "" && s.RaceID != r.ID {
				return fmt.Errorf("%w: score in race %q names race %q", ErrScoreOutsideSeries, r.ID, s.RaceID)
			}
			if _, ok := p.series.Competitor(s.CompetitorID); !ok {
				return fmt.Errorf("%w: unknown competitor %q in race %q", ErrScoreOutsideSeries, s.CompetitorID, r.ID)
			}
		}
	}
	return nil
}

// basicScores fills one CalculatedScore per (competitor, sailed race):
// placed results get their tie-resolved ordinal value, absent results are
// synthesized under the reserved default code.
func (p *pipeline) basicScores(results *SeriesResults) error {
	for _, r := range p.races {
		rc := p.ctxs[r.ID]
		entries := p.placedEntries(r)
		entryIdx := make(map[*model.Score]int, len(entries))
		for i, e := range entries {
			entryIdx[e.score] = i
		}
		byCompetitor := make(map[string]*model.Score, len(r.Scores))
		for i := range r.Scores {
			s := &r.Scores[i]
			if _, dup := byCompetitor[s.CompetitorID]; !dup {
				byCompetitor[s.CompetitorID] = s
			}
		}

		perfect := 0.0
		if rc.cameToStart > 0 {
			pf, err := p.rules.perfect(rc)
			if err != nil {
				return err
			}
			perfect = pf
		}

		for _, comp := range p.series.Competitors {
			cs := &CalculatedScore{Race: r, CompetitorID: comp.ID, Perfect: perfect}
			raw := byCompetitor[comp.ID]
			if raw == nil {
				cs.Code = p.codes.Default().Name
				cs.Counts = p.codes.Default().CountAsParticipation
			} else {
				cs.Raw = raw
				cs.Code = raw.Code
				cs.Counts = true
				if raw.Code != "" {
					cs.Counts = p.codes.Lookup(raw.Code).CountAsParticipation
				}
				cs.Place = p.effectivePlace(raw)
				if cs.Place != nil {
					v, err := p.resolvePlaceValue(entries, entryIdx[raw], rc)
					if err != nil {
						return err
					}
					cs.setValue(v)
				}
			}
			results.byCompetitor[comp.ID].add(cs)
		}
	}
	return nil
}

// raceDependentScores resolves trivial and race-based formulas, using
// only the current race's data. An explicit codePoints override wins
// over any formula.
func (p *pipeline) raceDependentScores(results *SeriesResults) error {
	for _, c := range results.Competitors {
		for _, cs := range c.Scores {
			if cs.Code == "" {
				continue
			}
			if cs.Raw != nil && cs.Raw.CodePoints != nil {
				cs.setValue(*cs.Raw.CodePoints)
				continue
			}
			code := p.codes.Lookup(cs.Code)
			if code.Formula == model.FormulaTie || !raceBased(code.Formula) {
				continue
			}
			if code.PreserveResult && cs.Value != nil && code.Formula != model.FormulaPlacePlusPercent {
				continue
			}
			v, err := p.evalRaceCode(code, p.ctxs[cs.Race.ID], cs)
			if err != nil {
				return err
			}
			cs.setValue(v)
		}
	}
	return nil
}

// seriesDependentScores resolves the average family and
// series-competitors-plus, which need the competitor's full history.
func (p *pipeline) seriesDependentScores(results *SeriesResults) error {
	for _, c := range results.Competitors {
		for i, cs := range c.Scores {
			// Values resolved earlier (places, race-based formulas,
			// codePoints overrides, preserved results) stand.
			if cs.Code == "" || cs.Value != nil {
				continue
			}
			code := p.codes.Lookup(cs.Code)
			switch {
			case code.Formula == model.FormulaSeriesCompetitorsPlus:
				cs.setValue(float64(len(p.series.Competitors)) + code.FormulaValue)
			case averageFamily(code.Formula):
				cs.setValue(p.averageValue(c, i, code.Formula))
			case code.Formula == model.FormulaTie || raceBased(code.Formula):
				// tie markers without a place resolve to nothing; race
				// formulas were handled in the previous pass
			default:
				return fmt.Errorf("%w: %q (code %q)", ErrUnknownFormula, code.Formula, code.Name)
			}
		}
	}
	return nil
}

// averageValue is the mean of the competitor's non-zero, non-average
// scores, rounded to one decimal half away from zero. The no-discards
// flavor drops the worst N values first; the prior-races flavor only
// looks at races sailed strictly before the current one.
func (p *pipeline) averageValue(c *CompetitorResults, idx int, f model.Formula) float64 {
	cur := c.Scores[idx]
	pop := make([]float64, 0, len(c.Scores))
	for j, other := range c.Scores {
		if j == idx || other.Value == nil || *other.Value == 0 {
			continue
		}
		if other.Code != "" && averageFamily(p.codes.Lookup(other.Code).Formula) {
			continue
		}
		if f == model.FormulaAveragePriorRaces && !other.Race.Before(cur.Race) {
			continue
		}
		pop = append(pop, *other.Value)
	}
	if f == model.FormulaAverageNoDiscards {
		drop := DiscardsFor(p.pattern, len(c.Scores))
		sort.SliceStable(pop, func(i, j int) bool { return p.rules.worse(pop[i], pop[j]) })
		if drop > len(pop) {
			drop = len(pop)
		}
		pop = pop[drop:]
	}
	if len(pop) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range pop {
		sum += v
	}
	return math.Round(sum/float64(len(pop))*10) / 10
}

// applyCaps clamps every coded value against the race's default absent
// score: a coded result never beats what staying home would have earned.
func (p *pipeline) applyCaps(results *SeriesResults) error {
	absents := make(map[string]float64, len(p.races))
	for _, r := range p.races {
		v, err := p.defaultAbsentValue(p.ctxs[r.ID])
		if err != nil {
			return err
		}
		absents[r.ID] = v
	}
	for _, c := range results.Competitors {
		for _, cs := range c.Scores {
			if cs.Code == "" || cs.Value == nil {
				continue
			}
			cs.setValue(p.rules.capCoded(*cs.Value, absents[cs.Race.ID]))
		}
	}
	return nil
}

// rank orders competitors with the variant comparator and assigns shared
// ranks: equal competitors share a rank, and the next distinct competitor
// takes its 1-based position, so ranks may skip but never compress.
func (p *pipeline) rank(results *SeriesResults) {
	sorted := append([]*CompetitorResults(nil), results.Competitors...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return p.rules.compare(sorted[i], sorted[j]) < 0
	})
	prevRank := 0
	for i, c := range sorted {
		if c.Total == nil {
			c.Rank = nil
			continue
		}
		rank := i + 1
		if i > 0 && sorted[i-1].Total != nil && p.rules.compare(sorted[i-1], c) == 0 {
			rank = prevRank
		}
		r := rank
		c.Rank = &r
		prevRank = rank
	}
	results.Competitors = sorted
}

// participationThreshold walks the system chain for the configured floor.
func (p *pipeline) participationThreshold() *float64 {
	sys := p.series.System
	for s := sys; s != nil; s = s.Parent {
		if s.ParticipationPercent != nil {
			return s.ParticipationPercent
		}
	}
	return nil
}
