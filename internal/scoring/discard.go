package scoring

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParseDiscardPattern parses the comma-separated discard pattern into its
// positional counts. The literal string format is part of the persisted
// configuration and must round-trip exactly; a malformed pattern is a
// fatal configuration error.
func ParseDiscardPattern(pattern string) ([]int, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	counts := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadDiscardPattern, pattern)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// DiscardsFor returns the number of discards owed for the given sailed
// race count: index min(count, len)-1 selects the entry, out-of-range
// counts clamp to the last entry, zero races owe zero discards.
func DiscardsFor(counts []int, raceCount int) int {
	if raceCount <= 0 || len(counts) == 0 {
		return 0
	}
	idx := raceCount - 1
	if idx >= len(counts) {
		idx = len(counts) - 1
	}
	return counts[idx]
}

// discardable reports whether a calculated score may be excluded from the
// total. Plain place results always may; coded results follow the code.
func (p *pipeline) discardable(cs *CalculatedScore) bool {
	if cs.Code == "" {
		return true
	}
	return p.codes.Lookup(cs.Code).Discardable
}

// selectDefaultDiscards marks the worst n discardable scores as
// discarded: descending by value for low-point scales, ascending by
// value/perfect ratio for percent scales, tie-broken by race date then
// order.
func (p *pipeline) selectDefaultDiscards(c *CompetitorResults, n int, byRatio bool) {
	if n <= 0 {
		return
	}
	candidates := make([]*CalculatedScore, 0, len(c.Scores))
	for _, cs := range c.Scores {
		if p.discardable(cs) && cs.Value != nil {
			candidates = append(candidates, cs)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		var ka, kb float64
		if byRatio {
			ka, kb = ratio(a), ratio(b)
			if ka != kb {
				return ka < kb
			}
		} else {
			ka, kb = a.value(), b.value()
			if ka != kb {
				return ka > kb
			}
		}
		return a.Race.Before(b.Race)
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, cs := range candidates[:n] {
		cs.Discard = true
	}
}

// ratio is the percent-system discard key: earned share of the perfect
// score, worst-first when ascending.
func ratio(cs *CalculatedScore) float64 {
	if cs.Perfect == 0 {
		return 0
	}
	return cs.value() / cs.Perfect
}

// selectQuotientDiscards implements the Cox-Sprague policy: an additive
// worst-value discard is wrong for a ratio system, so each of the n
// discards re-evaluates every remaining race against the quotient
//
//	earned/(earned-v) - (possible-earned)/(possible-earned-perfect+v)
//
// and drops the race with the smallest result. A zero right-hand
// denominator means removal leaves a perfect remainder and wins
// outright; a zero left-hand denominator means the race holds all the
// earned points and loses outright. The quotient is non-separable
// across races, hence the greedy per-step re-evaluation.
func (p *pipeline) selectQuotientDiscards(c *CompetitorResults, n int) {
	earned, possible := 0.0, 0.0
	candidates := make([]*CalculatedScore, 0, len(c.Scores))
	for _, cs := range c.Scores {
		if cs.Value == nil || !cs.Counts {
			continue
		}
		earned += cs.value()
		possible += cs.Perfect
		if p.discardable(cs) {
			candidates = append(candidates, cs)
		}
	}
	for ; n > 0 && len(candidates) > 0; n-- {
		bestIdx := -1
		bestKey := math.Inf(1)
		for i, cs := range candidates {
			num := earned - cs.value()
			den := possible - earned - cs.Perfect + cs.value()
			var key float64
			switch {
			case den == 0:
				// Removal leaves a perfect remainder.
				key = math.Inf(-1)
			case num == 0:
				// Removal leaves no earned points at all.
				key = math.Inf(1)
			default:
				key = earned/num - (possible-earned)/den
			}
			if bestIdx == -1 || key < bestKey ||
				(key == bestKey && cs.Race.Before(candidates[bestIdx].Race)) {
				bestIdx, bestKey = i, key
			}
		}
		if bestIdx == -1 {
			return
		}
		dropped := candidates[bestIdx]
		dropped.Discard = true
		earned -= dropped.value()
		possible -= dropped.Perfect
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
	}
}
