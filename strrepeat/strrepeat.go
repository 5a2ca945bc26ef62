// Package strrepeat detects short tandem repeats (STRs) directly in an
// assembled sequence. It backs two callers: graph pruning's short-link
// guard, which must not discard a small bubble that is actually the normal
// stutter shape of an STR, and transcript extraction, which annotates a
// variant with the repeat context it falls inside.
package strrepeat

import "github.com/vertgenlab/gonomics/dna"

// Params bundles the thresholds a repeat must satisfy to be reported.
type Params struct {
	MaxUnitLength int // largest repeat unit size considered, inclusive
	MinUnits      int // minimum number of consecutive unit copies required
	MinLen        int // minimum total span (in bases) the repeat must cover
	MaxDist       int // how far from the query offset a repeat run may start
}

// Result describes the best tandem repeat found near the query offset.
type Result struct {
	Found      bool
	UnitLength int
	NumUnits   int
	Start      int // 0-based, inclusive
	End        int // 0-based, exclusive
}

// Find looks for a tandem repeat overlapping offset in seq, trying every
// unit length from 1 up to MaxUnitLength and every candidate start position
// within MaxDist bases of offset. It returns the longest-spanning repeat
// that satisfies MinUnits and MinLen, or a zero Result if none qualifies.
func Find(seq []dna.Base, offset int, p Params) Result {
	if len(seq) == 0 {
		return Result{}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(seq) {
		offset = len(seq)
	}

	lo := offset - p.MaxDist
	if lo < 0 {
		lo = 0
	}
	hi := offset + p.MaxDist
	if hi > len(seq) {
		hi = len(seq)
	}

	best := Result{}
	for start := lo; start <= hi; start++ {
		for unit := 1; unit <= p.MaxUnitLength; unit++ {
			if start+unit > len(seq) {
				continue
			}
			units := countRepeatUnits(seq, start, unit)
			span := units * unit
			if units < p.MinUnits || span < p.MinLen {
				continue
			}
			if span > (best.End - best.Start) {
				best = Result{Found: true, UnitLength: unit, NumUnits: units, Start: start, End: start + span}
			}
		}
	}

	return best
}

// countRepeatUnits counts how many consecutive, non-overlapping copies of
// seq[start:start+unit] appear starting at start.
func countRepeatUnits(seq []dna.Base, start, unit int) int {
	units := 0
	for pos := start; pos+unit <= len(seq); pos += unit {
		if !equalBases(seq[start:start+unit], seq[pos:pos+unit]) {
			break
		}
		units++
	}
	return units
}

func equalBases(a, b []dna.Base) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
