package scoring

import (
	"sort"

	"github.com/dotcommander/regatta/internal/model"
)

// raceEntry is one placed raw score in a race, flattened for the tie and
// ordinal passes. Entries are kept in a place-sorted slice; no pass
// follows live references.
type raceEntry struct {
	score *model.Score
	place int
	// adjusts: the entry counts toward "beaten by" totals for others.
	adjusts bool
	// tie: the entry carries a TIE-formula code, linking it to the
	// preceding result.
	tie bool
}

// placedEntries collects the race's raw scores that still carry a place
// after transient places are cleared, sorted by place (stable on input
// order).
func (p *pipeline) placedEntries(r *model.Race) []raceEntry {
	entries := make([]raceEntry, 0, len(r.Scores))
	for i := range r.Scores {
		s := &r.Scores[i]
		place := p.effectivePlace(s)
		if place == nil {
			continue
		}
		e := raceEntry{score: s, place: *place, adjusts: true}
		if s.Code != "" {
			code := p.codes.Lookup(s.Code)
			e.adjusts = code.AdjustOtherScores
			e.tie = code.Formula == model.FormulaTie
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].place < entries[j].place })
	return entries
}

// effectivePlace is the working place after step 2: codes that do not
// preserve the result fully replace the place-derived value.
func (p *pipeline) effectivePlace(s *model.Score) *int {
	if s.Place == nil {
		return nil
	}
	if s.Code != "" && !p.codes.Lookup(s.Code).PreserveResult {
		return nil
	}
	return s.Place
}

// ordinalOf is the basic place value: 1 plus the number of adjusting
// entries with a strictly lower place.
func ordinalOf(entries []raceEntry, idx int) int {
	ord := 1
	for j, e := range entries {
		if j != idx && e.adjusts && e.place < entries[idx].place {
			ord++
		}
	}
	return ord
}

// resolvePlaceValue computes the score value for one placed entry,
// averaging across the tie group when the entry shares a place or sits in
// a chain of TIE-coded results.
func (p *pipeline) resolvePlaceValue(entries []raceEntry, idx int, rc *raceContext) (float64, error) {
	cur := entries[idx]
	tieBase := ordinalOf(entries, idx)
	numTied := 0
	for j, e := range entries {
		if e.place == cur.place && (e.adjusts || j == idx) {
			numTied++
		}
	}

	if numTied == 1 {
		switch {
		case cur.tie:
			// A TIE code links this result to the preceding place; walk
			// backward to the chain's anchor, then forward over any
			// further TIE-coded results.
			j := idx
			for j > 0 {
				j--
				numTied++
				if !entries[j].tie {
					break
				}
			}
			tieBase = ordinalOf(entries, j)
			for k := idx; k+1 < len(entries) && entries[k+1].tie; k++ {
				numTied++
			}
		case idx+1 < len(entries) && entries[idx+1].tie:
			// This entry anchors a TIE chain declared on the scores that
			// follow it; the average is shared with them.
			for k := idx; k+1 < len(entries) && entries[k+1].tie; k++ {
				numTied++
			}
		}
	}

	if numTied <= 1 {
		return p.rules.placeValue(rc, tieBase)
	}
	sum := 0.0
	for i := 0; i < numTied; i++ {
		v, err := p.rules.placeValue(rc, tieBase+i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float64(numTied), nil
}
