package scoring

import (
	"math"
	"sort"

	"github.com/dotcommander/regatta/internal/model"
)

// variantRules is the capability set a variant supplies to the shared
// pipeline: the place-to-points mapping, the perfect score, the override
// cap direction, the penalty formula, the discard policy, the totals
// rule, and the ranking comparator. One pipeline, five implementations.
type variantRules interface {
	variant() Variant
	// placeValue maps a finishing place to points in the given race.
	placeValue(rc *raceContext, place int) (float64, error)
	// perfect is the best obtainable value in the race, the percent
	// denominator.
	perfect(rc *raceContext) (float64, error)
	// capCoded clamps a coded value against the race's default absent
	// value: low-point caps from above, high-point floors from below.
	capCoded(v, absent float64) float64
	// penalty computes the place-plus-percent value.
	penalty(cur, dnf float64, fleet int, pct float64) float64
	// worse reports whether value a is a worse result than b.
	worse(a, b float64) bool
	// discardCount resolves the discard pattern for one competitor.
	discardCount(p *pipeline, c *CompetitorResults) int
	// selectDiscards marks the discarded scores.
	selectDiscards(p *pipeline, c *CompetitorResults, n int)
	// totals fills Total and, for percent systems, the earned/possible
	// pair.
	totals(p *pipeline, c *CompetitorResults)
	// compare is the variant's total order over competitor results.
	compare(a, b *CompetitorResults) int
}

// rulesFor builds the capability set for a resolved variant.
func rulesFor(v Variant, sys *model.ScoringSystem) variantRules {
	switch v {
	case VariantHighPointPercent:
		return highPointRules{}
	case VariantCoxSprague:
		return coxSpragueRules{}
	case VariantTopX:
		return topXRules{x: topXCount(sys)}
	case VariantPWA:
		return pwaRules{}
	default:
		return lowPointRules{first: firstPlaceValue(sys)}
	}
}

// topXCount reads the counted-score limit from the participation-percent
// field, which the Top-X family reuses for this purpose.
func topXCount(sys *model.ScoringSystem) int {
	for s := sys; s != nil; s = s.Parent {
		if s.ParticipationPercent != nil {
			return int(*s.ParticipationPercent)
		}
	}
	return 0
}

// percentTotals computes earned/possible over the non-discarded counted
// races and nulls the total for competitors under the participation
// floor.
func percentTotals(p *pipeline, c *CompetitorResults) {
	earned, possible := 0.0, 0.0
	for _, cs := range c.Scores {
		if cs.Discard || !cs.Counts || cs.Value == nil {
			continue
		}
		earned += *cs.Value
		possible += cs.Perfect
	}
	c.PointsEarned = &earned
	c.PointsPossible = &possible
	if possible == 0 {
		return
	}
	if th := p.participationThreshold(); th != nil && c.ParticipationPercent < *th {
		return
	}
	total := earned / possible * 100
	c.Total = &total
}

// sumTotals is the additive rule: non-discarded values summed, zero where
// unresolved.
func sumTotals(c *CompetitorResults) {
	total := 0.0
	for _, cs := range c.Scores {
		if cs.Discard {
			continue
		}
		total += cs.value()
	}
	c.Total = &total
}

// lowPointRules is the Appendix-A low point system, with the optional
// "first place is X" override.
type lowPointRules struct {
	first *float64
}

func (lowPointRules) variant() Variant { return VariantLowPoint }

func (r lowPointRules) placeValue(_ *raceContext, place int) (float64, error) {
	if place == 1 && r.first != nil {
		return *r.first, nil
	}
	return float64(place), nil
}

func (r lowPointRules) perfect(rc *raceContext) (float64, error) {
	return r.placeValue(rc, 1)
}

func (lowPointRules) capCoded(v, absent float64) float64 {
	return math.Min(v, absent)
}

func (lowPointRules) penalty(cur, dnf float64, _ int, pct float64) float64 {
	return math.Min(dnf, math.Round(dnf*pct/100)+cur)
}

func (lowPointRules) worse(a, b float64) bool { return a > b }

func (lowPointRules) discardCount(p *pipeline, _ *CompetitorResults) int {
	return DiscardsFor(p.pattern, len(p.races))
}

func (lowPointRules) selectDiscards(p *pipeline, c *CompetitorResults, n int) {
	p.selectDefaultDiscards(c, n, false)
}

func (lowPointRules) totals(_ *pipeline, c *CompetitorResults) { sumTotals(c) }

func (lowPointRules) compare(a, b *CompetitorResults) int { return compareLowPoint(a, b) }

// highPointRules scores fleet size minus place plus one and totals as a
// percentage of possible points.
type highPointRules struct{}

func (highPointRules) variant() Variant { return VariantHighPointPercent }

func (highPointRules) placeValue(rc *raceContext, place int) (float64, error) {
	v := float64(rc.cameToStart + 1 - place)
	if v < 0 {
		v = 0
	}
	return v, nil
}

func (highPointRules) perfect(rc *raceContext) (float64, error) {
	return float64(rc.cameToStart), nil
}

func (highPointRules) capCoded(v, absent float64) float64 {
	return math.Max(v, absent)
}

func (highPointRules) penalty(cur, dnf float64, _ int, pct float64) float64 {
	return math.Min(dnf, math.Round(dnf*pct/100)+cur)
}

func (highPointRules) worse(a, b float64) bool { return a < b }

func (highPointRules) discardCount(p *pipeline, c *CompetitorResults) int {
	return DiscardsFor(p.pattern, c.countedRaces())
}

func (highPointRules) selectDiscards(p *pipeline, c *CompetitorResults, n int) {
	p.selectDefaultDiscards(c, n, true)
}

func (highPointRules) totals(p *pipeline, c *CompetitorResults) { percentTotals(p, c) }

func (highPointRules) compare(a, b *CompetitorResults) int {
	return compareHighPoint(a, b, false)
}

// coxSpragueRules is the table-driven percent system. High is worse for
// its penalty direction, and discards are chosen by quotient rather than
// by worst value.
type coxSpragueRules struct{}

func (coxSpragueRules) variant() Variant { return VariantCoxSprague }

func (coxSpragueRules) placeValue(rc *raceContext, place int) (float64, error) {
	v, err := CoxSpragueScore(place, rc.cameToStart)
	return float64(v), err
}

func (coxSpragueRules) perfect(rc *raceContext) (float64, error) {
	v, err := CoxSpragueScore(1, rc.cameToStart)
	return float64(v), err
}

func (coxSpragueRules) capCoded(v, absent float64) float64 {
	return math.Max(v, absent)
}

func (coxSpragueRules) penalty(cur, dnf float64, fleet int, pct float64) float64 {
	return math.Max(dnf, cur-math.Round(float64(fleet)*pct/100))
}

func (coxSpragueRules) worse(a, b float64) bool { return a < b }

func (coxSpragueRules) discardCount(p *pipeline, c *CompetitorResults) int {
	return DiscardsFor(p.pattern, c.countedRaces())
}

func (coxSpragueRules) selectDiscards(p *pipeline, c *CompetitorResults, n int) {
	p.selectQuotientDiscards(c, n)
}

func (coxSpragueRules) totals(p *pipeline, c *CompetitorResults) { percentTotals(p, c) }

func (coxSpragueRules) compare(a, b *CompetitorResults) int {
	return compareHighPoint(a, b, true)
}

// topXRules sums the best x scores with no discard marking at all.
type topXRules struct {
	x int
}

func (topXRules) variant() Variant { return VariantTopX }

func (topXRules) placeValue(rc *raceContext, place int) (float64, error) {
	v := float64(rc.cameToStart + 1 - place)
	if v < 0 {
		v = 0
	}
	return v, nil
}

func (topXRules) perfect(rc *raceContext) (float64, error) {
	return float64(rc.cameToStart), nil
}

func (topXRules) capCoded(v, absent float64) float64 {
	return math.Max(v, absent)
}

func (topXRules) penalty(cur, dnf float64, _ int, pct float64) float64 {
	return math.Min(dnf, math.Round(dnf*pct/100)+cur)
}

func (topXRules) worse(a, b float64) bool { return a < b }

func (topXRules) discardCount(*pipeline, *CompetitorResults) int { return 0 }

func (topXRules) selectDiscards(*pipeline, *CompetitorResults, int) {}

func (r topXRules) totals(_ *pipeline, c *CompetitorResults) {
	vals := scoreValues(c, true)
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))
	limit := r.x
	if limit <= 0 || limit > len(vals) {
		limit = len(vals)
	}
	total := 0.0
	for _, v := range vals[:limit] {
		total += v
	}
	c.Total = &total
}

func (topXRules) compare(a, b *CompetitorResults) int {
	return compareHighPoint(a, b, false)
}

// pwaRules is low point scoring with the PWA tie-break chain.
type pwaRules struct{}

func (pwaRules) variant() Variant { return VariantPWA }

func (pwaRules) placeValue(_ *raceContext, place int) (float64, error) {
	return float64(place), nil
}

func (pwaRules) perfect(*raceContext) (float64, error) { return 1, nil }

func (pwaRules) capCoded(v, absent float64) float64 {
	return math.Min(v, absent)
}

func (pwaRules) penalty(cur, dnf float64, _ int, pct float64) float64 {
	return math.Min(dnf, math.Round(dnf*pct/100)+cur)
}

func (pwaRules) worse(a, b float64) bool { return a > b }

func (pwaRules) discardCount(p *pipeline, _ *CompetitorResults) int {
	return DiscardsFor(p.pattern, len(p.races))
}

func (pwaRules) selectDiscards(p *pipeline, c *CompetitorResults, n int) {
	p.selectDefaultDiscards(c, n, false)
}

func (pwaRules) totals(_ *pipeline, c *CompetitorResults) { sumTotals(c) }

func (pwaRules) compare(a, b *CompetitorResults) int { return comparePWA(a, b) }
