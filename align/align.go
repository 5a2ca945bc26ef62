// Package align pairwise-aligns an enumerated path against its reference
// anchor. Two sequences within a handful of mismatches of each other and of
// identical length are compared base-by-base directly; everything else goes
// through gonomics' affine-gap global aligner, matching the reference
// implementation's short-circuit for the overwhelmingly common
// few-SNVs-only case.
package align

import (
	"fmt"

	"github.com/vertgenlab/gonomics/align"
	"github.com/vertgenlab/gonomics/dna"
)

const gapOpen = -400
const gapExtend = -30

// Aligned holds the padded ref/query rows produced by alignment: equal
// length, with dna.Gap standing in for an indel column.
type Aligned struct {
	Ref []dna.Base
	Qry []dna.Base
}

// Align global-aligns ref against qry, short-circuiting to a direct
// base-by-base comparison when the two sequences are the same length and
// within maxHamming mismatches of each other.
func Align(ref, qry []dna.Base, maxHamming int) (Aligned, error) {
	if len(ref) == len(qry) && hammingWithin(ref, qry, maxHamming) {
		return Aligned{Ref: append([]dna.Base(nil), ref...), Qry: append([]dna.Base(nil), qry...)}, nil
	}

	_, cigar := align.AffineGap(ref, qry, align.HumanChimpTwoScoreMatrix, gapOpen, gapExtend)
	if len(cigar) == 0 {
		return Aligned{}, fmt.Errorf("alignment produced no cigar for ref len=%d qry len=%d", len(ref), len(qry))
	}

	var alnRef, alnQry []dna.Base
	var refIdx, qryIdx int
	for _, c := range cigar {
		runLen := int(c.RunLength)
		switch c.Op {
		case align.ColM:
			alnRef = append(alnRef, ref[refIdx:refIdx+runLen]...)
			alnQry = append(alnQry, qry[qryIdx:qryIdx+runLen]...)
			refIdx += runLen
			qryIdx += runLen
		case align.ColD:
			alnRef = append(alnRef, ref[refIdx:refIdx+runLen]...)
			alnQry = append(alnQry, gapRun(runLen)...)
			refIdx += runLen
		case align.ColI:
			alnRef = append(alnRef, gapRun(runLen)...)
			alnQry = append(alnQry, qry[qryIdx:qryIdx+runLen]...)
			qryIdx += runLen
		}
	}

	return Aligned{Ref: alnRef, Qry: alnQry}, nil
}

func gapRun(n int) []dna.Base {
	out := make([]dna.Base, n)
	for i := range out {
		out[i] = dna.Gap
	}
	return out
}

func hammingWithin(a, b []dna.Base, max int) bool {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
			if d > max {
				return false
			}
		}
	}
	return true
}

// TrimEndGaps removes any leading or trailing alignment columns that are a
// gap on either side, since a global alignment can pad both ends when the
// two sequences differ in length only at their very tips. It returns the
// number of leading reference bases the trim consumed, needed to keep the
// genome coordinate of the first surviving column correct.
func TrimEndGaps(a *Aligned) int {
	if len(a.Ref) == 0 {
		return 0
	}

	start := 0
	refStartTrim := 0
	for start < len(a.Ref) && (a.Ref[start] == dna.Gap || a.Qry[start] == dna.Gap) {
		if a.Ref[start] != dna.Gap {
			refStartTrim++
		}
		start++
	}

	end := len(a.Ref)
	for end > start && (a.Ref[end-1] == dna.Gap || a.Qry[end-1] == dna.Gap) {
		end--
	}

	a.Ref = a.Ref[start:end]
	a.Qry = a.Qry[start:end]
	return refStartTrim
}
