package scoring

import "sort"

// compareTotals orders two competitors by total score. A nil total sorts
// last; when zeroEmpty is set (low-point scales) a zero total is treated
// as "no races counted" and also sorts last. The second return reports
// whether the ordering was decided here.
func compareTotals(a, b *CompetitorResults, highBetter, zeroEmpty bool) (int, bool) {
	ea := a.Total == nil || (zeroEmpty && *a.Total == 0)
	eb := b.Total == nil || (zeroEmpty && *b.Total == 0)
	switch {
	case ea && eb:
		return 0, true
	case ea:
		return 1, true
	case eb:
		return -1, true
	}
	if *a.Total != *b.Total {
		if (*a.Total < *b.Total) != highBetter {
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// scoreValues collects a competitor's resolved score values, optionally
// including discarded races.
func scoreValues(c *CompetitorResults, includeDiscards bool) []float64 {
	vals := make([]float64, 0, len(c.Scores))
	for _, cs := range c.Scores {
		if cs.Value == nil {
			continue
		}
		if cs.Discard && !includeDiscards {
			continue
		}
		vals = append(vals, *cs.Value)
	}
	return vals
}

// lexCompare compares two score sequences best-result-first: ascending
// for low-point scales (a lower value at the first difference wins),
// descending for high-point scales (a higher value wins).
func lexCompare(av, bv []float64, highBetter bool) int {
	as := append([]float64(nil), av...)
	bs := append([]float64(nil), bv...)
	if highBetter {
		sort.Sort(sort.Reverse(sort.Float64Slice(as)))
		sort.Sort(sort.Reverse(sort.Float64Slice(bs)))
	} else {
		sort.Float64s(as)
		sort.Float64s(bs)
	}
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		if (as[i] < bs[i]) != highBetter {
			return -1
		}
		return 1
	}
	if len(as) != len(bs) {
		if (len(as) < len(bs)) != highBetter {
			return -1
		}
		return 1
	}
	return 0
}

// recentRaceCompare breaks a remaining tie on the most recent race where
// the two competitors' values differ. Score slices are aligned by race in
// (date, order) sequence, so walking from the end visits races newest
// first.
func recentRaceCompare(a, b *CompetitorResults, highBetter bool) int {
	n := len(a.Scores)
	if len(b.Scores) < n {
		n = len(b.Scores)
	}
	for i := n - 1; i >= 0; i-- {
		av, bv := a.Scores[i].value(), b.Scores[i].value()
		if av == bv {
			continue
		}
		if (av < bv) != highBetter {
			return -1
		}
		return 1
	}
	return 0
}

// compareLowPoint is the Appendix-A ordering: total, then the sorted
// non-discarded scores lexicographically, then the most recent differing
// race.
func compareLowPoint(a, b *CompetitorResults) int {
	if r, done := compareTotals(a, b, false, true); done {
		return r
	}
	if r := lexCompare(scoreValues(a, false), scoreValues(b, false), false); r != 0 {
		return r
	}
	return recentRaceCompare(a, b, false)
}

// compareHighPoint orders the high-is-better family. Cox-Sprague inserts
// a participation-count comparison before the lexicographic step.
func compareHighPoint(a, b *CompetitorResults, withParticipation bool) int {
	if r, done := compareTotals(a, b, true, false); done {
		return r
	}
	if withParticipation {
		if ca, cb := a.countedRaces(), b.countedRaces(); ca != cb {
			if ca > cb {
				return -1
			}
			return 1
		}
	}
	if r := lexCompare(scoreValues(a, false), scoreValues(b, false), true); r != 0 {
		return r
	}
	return recentRaceCompare(a, b, true)
}

// comparePWA is the four-stage PWA chain: pairwise beat count across
// shared races, lexicographic compare including discarded scores, best
// discarded result, then the most recent differing race.
func comparePWA(a, b *CompetitorResults) int {
	if r, done := compareTotals(a, b, false, true); done {
		return r
	}
	aw, bw := 0, 0
	n := len(a.Scores)
	if len(b.Scores) < n {
		n = len(b.Scores)
	}
	for i := 0; i < n; i++ {
		if a.Scores[i].Value == nil || b.Scores[i].Value == nil {
			continue
		}
		switch {
		case *a.Scores[i].Value < *b.Scores[i].Value:
			aw++
		case *b.Scores[i].Value < *a.Scores[i].Value:
			bw++
		}
	}
	if aw != bw {
		if aw > bw {
			return -1
		}
		return 1
	}
	if r := lexCompare(scoreValues(a, true), scoreValues(b, true), false); r != 0 {
		return r
	}
	if r := bestDiscardCompare(a, b); r != 0 {
		return r
	}
	return recentRaceCompare(a, b, false)
}

// bestDiscardCompare compares the competitors' best (lowest) discarded
// results; it stands aside when either has no discards.
func bestDiscardCompare(a, b *CompetitorResults) int {
	ba, oka := bestDiscard(a)
	bb, okb := bestDiscard(b)
	if !oka || !okb {
		return 0
	}
	switch {
	case ba < bb:
		return -1
	case bb < ba:
		return 1
	}
	return 0
}

func bestDiscard(c *CompetitorResults) (float64, bool) {
	best, ok := 0.0, false
	for _, cs := range c.Scores {
		if !cs.Discard || cs.Value == nil {
			continue
		}
		if !ok || *cs.Value < best {
			best, ok = *cs.Value, true
		}
	}
	return best, ok
}
