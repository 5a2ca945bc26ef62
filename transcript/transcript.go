// Package transcript walks an aligned path/reference pair and coalesces it
// into a small number of variant transcripts, mirroring how a human would
// describe the difference between two similar sequences: runs of matching
// bases are skipped, and adjacent mismatch/indel columns are greedily
// merged into a single event rather than reported as isolated columns.
package transcript

import (
	"github.com/dasnellings/lancetgo/align"
	"github.com/dasnellings/lancetgo/graph"
	"github.com/dasnellings/lancetgo/strrepeat"
	"github.com/vertgenlab/gonomics/dna"
)

// Code classifies one coalesced transcript.
type Code byte

const (
	RefMatch Code = iota
	SNV
	Insertion
	Deletion
	Complex
)

// Allele distinguishes which side of a transcript a coverage push belongs
// to.
type Allele byte

const (
	Ref Allele = iota
	Alt
)

// Offsets records the half-open [Start,End) ranges of a transcript within
// the alignment's reference and alt (path) coordinate frames.
type Offsets struct {
	RefStart, RefEnd int
	AltStart, AltEnd int
}

// Transcript is one coalesced variant event: its genomic position, the
// bases it replaces, and the per-sample haplotype coverage supporting the
// reference and alternate alleles.
type Transcript struct {
	Chrom    string
	Pos      int // 1-based genomic position of the first affected base
	Code     Code
	Offsets  Offsets
	RefBase  dna.Base
	AltBase  dna.Base
	PrevRef  dna.Base
	PrevAlt  dna.Base
	RefSeq   []dna.Base
	AltSeq   []dna.Base
	Somatic  bool
	STR      strrepeat.Result

	NormalRefCov []graph.HPBucket
	NormalAltCov []graph.HPBucket
	TumorRefCov  []graph.HPBucket
	TumorAltCov  []graph.HPBucket
}

func (t *Transcript) addCov(label graph.SampleLabel, al Allele, c graph.HPBucket) {
	switch {
	case label == graph.NORMAL && al == Ref:
		t.NormalRefCov = append(t.NormalRefCov, c)
	case label == graph.NORMAL && al == Alt:
		t.NormalAltCov = append(t.NormalAltCov, c)
	case label == graph.TUMOR && al == Ref:
		t.TumorRefCov = append(t.TumorRefCov, c)
	default:
		t.TumorAltCov = append(t.TumorAltCov, c)
	}
}

// sumRaw totals the raw observation count across every haplotype bucket in
// cov, folding all three HP buckets (unassigned/HP1/HP2) into one figure.
func sumRaw(cov []graph.HPBucket) int {
	var total int
	for _, bucket := range cov {
		for _, hp := range bucket {
			total += int(hp.Raw)
		}
	}
	return total
}

// HasAltCov reports whether alt-allele support was actually observed, not
// merely whether a coverage push was ever recorded: addCov runs
// unconditionally as Extract walks the alignment, so a transcript can carry
// alt-coverage entries that are all zero-valued.
func (t *Transcript) HasAltCov() bool {
	return sumRaw(t.NormalAltCov) > 0 || sumRaw(t.TumorAltCov) > 0
}

// VariantState classifies a transcript by which samples its alt allele is
// actually supported in.
type VariantState byte

const (
	// StateNone means no sample carries real alt support; the transcript
	// is alignment noise and should not be reported.
	StateNone VariantState = iota
	// StateGermline means both matched samples carry alt support.
	StateGermline
	// StateSomatic means only the tumor sample carries alt support.
	StateSomatic
)

func (s VariantState) String() string {
	switch s {
	case StateGermline:
		return "GERMLINE"
	case StateSomatic:
		return "SOMATIC"
	default:
		return "NONE"
	}
}

// ComputeState classifies the transcript's alt support across samples. A
// transcript with tumor-only alt support and no normal alt support is
// somatic; alt support in both samples is germline; no real alt support in
// either sample is NONE.
func (t *Transcript) ComputeState() VariantState {
	normalAlt := sumRaw(t.NormalAltCov)
	tumorAlt := sumRaw(t.TumorAltCov)
	switch {
	case tumorAlt == 0 && normalAlt == 0:
		return StateNone
	case normalAlt > 0:
		return StateGermline
	default:
		return StateSomatic
	}
}

// RefInfo is the per-base sample coverage profile of the reference anchor,
// supplied by the caller (window construction, out of this package's
// scope) for both matched samples.
type RefInfo struct {
	Normal []graph.HPBucket
	Tumor  []graph.HPBucket
}

// Len and At let RefInfo satisfy window.RefInfoLike for debug coverage
// sparklines without that package importing transcript directly.
func (r RefInfo) Len() int { return len(r.Normal) }
func (r RefInfo) At(i int) (normal, tumor graph.HPBucket) { return r.Normal[i], r.Tumor[i] }

// Extract aligns pathSeq against refAnchor and coalesces the differences
// into transcripts, following the reference implementation's greedy
// column walk: a run of matches ends the current transcript, an SNV/indel
// either starts a new one or extends the last if it is contiguous and of
// compatible shape, and anything else escalates the transcript to Complex.
func Extract(chrom string, genomeAnchorStart int, path *graph.Path, refAnchor []dna.Base, refInfo RefInfo, k int, strParams strrepeat.Params) ([]Transcript, error) {
	pathSeq := path.Seq()
	if seqEqual(pathSeq, refAnchor) {
		return nil, nil
	}

	aligned := align.Aligned{Ref: append([]dna.Base(nil), refAnchor...), Qry: append([]dna.Base(nil), pathSeq...)}
	if !(len(refAnchor) == len(pathSeq) && hammingWithin(refAnchor, pathSeq, 5)) {
		a, err := align.Align(refAnchor, pathSeq, 5)
		if err != nil {
			return nil, err
		}
		aligned = a
	}

	refStartTrim := align.TrimEndGaps(&aligned)
	anchorStart := genomeAnchorStart + refStartTrim

	var transcripts []Transcript
	var refIdx, refPos, pathPos int
	code := RefMatch

	for idx := 0; idx < len(aligned.Ref); idx++ {
		prevCode := code

		switch {
		case aligned.Ref[idx] == dna.Gap:
			code = Insertion
			refIdx = refPos
			pathPos++
		case aligned.Qry[idx] == dna.Gap:
			code = Deletion
			refIdx = refPos
			refPos++
		default:
			if aligned.Ref[idx] == aligned.Qry[idx] {
				code = RefMatch
			} else {
				code = SNV
			}
			refIdx = refPos
			refPos++
			pathPos++
		}

		if code == RefMatch {
			continue
		}

		pathIdx := pathPos - 1
		genomeRefPos := anchorStart + refIdx + 1

		spanner := path.FindSpanningNode(pathIdx)
		var somaticSeed bool
		if spanner != nil {
			somaticSeed = spanner.Label.LabelRatio(graph.LabelTumor) >= 0.8
		}

		prevRefIdx := prevBaseIdx(aligned.Ref, idx)
		prevPathIdx := prevBaseIdx(aligned.Qry, idx)

		if len(transcripts) == 0 || prevCode == RefMatch {
			tr := Transcript{
				Chrom:   chrom,
				Pos:     genomeRefPos,
				Code:    code,
				Offsets: Offsets{RefStart: refIdx, RefEnd: refIdx + 1, AltStart: pathIdx, AltEnd: pathIdx + 1},
				RefBase: aligned.Ref[idx],
				AltBase: aligned.Qry[idx],
				PrevRef: aligned.Ref[prevRefIdx],
				PrevAlt: aligned.Qry[prevPathIdx],
				Somatic: somaticSeed,
			}
			tr.addCov(graph.NORMAL, Ref, refInfo.Normal[refIdx])
			tr.addCov(graph.TUMOR, Ref, refInfo.Tumor[refIdx])
			tr.addCov(graph.NORMAL, Alt, path.HpCovAt(graph.NORMAL, pathIdx))
			tr.addCov(graph.TUMOR, Alt, path.HpCovAt(graph.TUMOR, pathIdx))
			transcripts = append(transcripts, tr)
			continue
		}

		tr := &transcripts[len(transcripts)-1]
		sameCode := tr.Code == code
		if somaticSeed && !tr.Somatic {
			tr.Somatic = true
		}
		tr.RefSeq = append(tr.RefSeq, aligned.Ref[idx])
		tr.AltSeq = append(tr.AltSeq, aligned.Qry[idx])
		if code == Insertion || code == SNV {
			tr.Offsets.AltEnd = pathIdx + 1
		}
		if code == Deletion || code == SNV {
			tr.Offsets.RefEnd = refIdx + 1
		}

		if sameCode && code == Insertion && tr.Pos == genomeRefPos {
			tr.addCov(graph.TUMOR, Alt, path.HpCovAt(graph.TUMOR, pathIdx))
			tr.addCov(graph.NORMAL, Alt, path.HpCovAt(graph.NORMAL, pathIdx))
			continue
		}

		deletedRefLen := len(tr.AltSeq)
		if sameCode && code == Deletion && tr.Pos+deletedRefLen == genomeRefPos {
			tr.addCov(graph.NORMAL, Ref, refInfo.Normal[refIdx])
			tr.addCov(graph.TUMOR, Ref, refInfo.Tumor[refIdx])
			continue
		}

		tr.Code = Complex
		tr.addCov(graph.NORMAL, Ref, refInfo.Normal[refIdx])
		tr.addCov(graph.TUMOR, Ref, refInfo.Tumor[refIdx])
		tr.addCov(graph.TUMOR, Alt, path.HpCovAt(graph.TUMOR, pathIdx))
		tr.addCov(graph.NORMAL, Alt, path.HpCovAt(graph.NORMAL, pathIdx))
	}

	// Left-shifted indels can desync path/reference coverage for up to k+1
	// bases past the event; walk that far past every non-trivial transcript
	// and top up coverage so downstream genotyping sees the full picture.
	for i := range transcripts {
		tr := &transcripts[i]
		tr.STR = strrepeat.Find(pathSeq, tr.Offsets.AltStart, strParams)
		if tr.Code == RefMatch || tr.Code == SNV {
			continue
		}
		for pos := 0; pos <= k; pos++ {
			currPathIdx := tr.Offsets.AltEnd + pos
			currRefIdx := tr.Offsets.RefEnd + pos

			spanner := path.FindSpanningNode(currPathIdx)
			if spanner != nil && spanner.Label.LabelRatio(graph.LabelTumor) >= 0.8 {
				tr.Somatic = true
			}

			if currRefIdx < len(refInfo.Normal) && currRefIdx < len(refInfo.Tumor) {
				tr.addCov(graph.NORMAL, Ref, refInfo.Normal[currRefIdx])
				tr.addCov(graph.TUMOR, Ref, refInfo.Tumor[currRefIdx])
			}
			if currPathIdx >= path.Length() {
				continue
			}
			tr.addCov(graph.TUMOR, Alt, path.HpCovAt(graph.TUMOR, currPathIdx))
			tr.addCov(graph.NORMAL, Alt, path.HpCovAt(graph.NORMAL, currPathIdx))
		}
	}

	out := transcripts[:0]
	for _, tr := range transcripts {
		if !tr.HasAltCov() || tr.ComputeState() == StateNone {
			continue
		}
		out = append(out, tr)
	}
	return out, nil
}

func prevBaseIdx(row []dna.Base, idx int) int {
	i := idx - 1
	for i > 0 && !dna.DefineBase(row[i]) {
		i--
	}
	return i
}

func seqEqual(a, b []dna.Base) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
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
