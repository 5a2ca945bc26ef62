// Package window drives the per-window control loop: hand a reference
// window and a starting k to a ReadExtractor, run the resulting graph
// through the assembler core, and retry at a larger k whenever the graph
// signals a cycle or a near-repeat k-mer instead of treating either as an
// error. Read extraction from BAMs and reference FASTA access are outside
// this package's scope; ReadExtractor is the seam a caller wires those up
// through.
package window

import (
	"fmt"

	"github.com/dasnellings/lancetgo/config"
	"github.com/dasnellings/lancetgo/errs"
	"github.com/dasnellings/lancetgo/graph"
	"github.com/dasnellings/lancetgo/strrepeat"
	"github.com/dasnellings/lancetgo/transcript"
	"github.com/vertgenlab/gonomics/dna"
)

// RefWindow is the reference-anchored region a single graph is built over.
type RefWindow struct {
	Idx    int
	Chrom  string
	Start  int // 0-based
	End    int // 0-based, exclusive
	Seq    []dna.Base
}

func (w *RefWindow) Length() int { return w.End - w.Start }

func (w *RefWindow) RegionString() string {
	return fmt.Sprintf("%s:%d-%d", w.Chrom, w.Start+1, w.End)
}

// ReadExtractor is the boundary this module assumes reads have already
// crossed: given a window and a k-mer size, it returns a populated node
// container (reads and reference already folded in as coverage/HP/label
// tracks) along with the window's average sample coverage and the
// reference anchor's per-base sample coverage profile used by transcript
// extraction. Constructing this from BAM records is explicitly out of
// scope for this module.
type ReadExtractor interface {
	ExtractNodes(w *RefWindow, k int) (graph.NodeContainer, float64, transcript.RefInfo, error)
}

// Result mirrors the reference implementation's WindowResult: enough to
// let a scheduler report progress without shipping variant data back
// through the result queue.
type Result struct {
	WindowIdx int
	RuntimeNS int64
}

func (r Result) IsEmpty() bool { return r.WindowIdx == 0 && r.RuntimeNS == 0 }

// Processor owns the parameters and read-extraction seam needed to run one
// window end to end.
type Processor struct {
	Params    config.Params
	Extractor ReadExtractor
}

// Emit receives every transcript extracted from every enumerated path in
// the window, in no particular order.
type Emit func(transcript.Transcript)

// ProcessWindow runs the k-increment retry loop for w, calling emit for
// every transcript found. It returns nil once a k either succeeds (finds
// no reason to retry) or the configured k range is exhausted -- exhausting
// the k range is not itself an error, matching the reference behavior of
// silently giving up on a window rather than failing the whole run.
func (p *Processor) ProcessWindow(w *RefWindow, emit Emit) error {
	strParams := strrepeat.Params{
		MaxUnitLength: p.Params.MaxSTRUnitLength,
		MinUnits:      p.Params.MinSTRUnits,
		MinLen:        p.Params.MinSTRLen,
		MaxDist:       p.Params.MaxSTRDist,
	}

	for k := p.Params.MinK; k <= p.Params.MaxK; k += p.Params.KStep {
		nodes, avgCov, refInfo, err := p.Extractor.ExtractNodes(w, k)
		if err != nil {
			return err
		}

		g := graph.New(nodes, w.Seq, avgCov, k, p.Params)

		var extractErr error
		err = g.ProcessGraph(func(path *graph.Path, anchor graph.SrcSnkResult) {
			if extractErr != nil {
				return
			}
			refAnchor := w.Seq[anchor.StartOffset:anchor.EndOffset]
			clamped := transcript.RefInfo{
				Normal: graph.ClampToSourceSink(refInfo.Normal, anchor),
				Tumor:  graph.ClampToSourceSink(refInfo.Tumor, anchor),
			}

			trs, err := transcript.Extract(w.Chrom, w.Start+anchor.StartOffset, path, refAnchor, clamped, k, strParams)
			if err != nil {
				extractErr = errs.Alignment(w.RegionString(), dna.BasesToString(refAnchor), dna.BasesToString(path.Seq()), err)
				return
			}
			for _, tr := range trs {
				emit(tr)
			}
		})
		if err != nil {
			return err
		}
		if extractErr != nil {
			return extractErr
		}

		if !g.ShouldIncrementK {
			return nil
		}
	}

	return nil
}
