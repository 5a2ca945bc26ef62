// Package config collects the tunable parameters accepted by the assembler
// core. Unlike the teacher's flag-parsed cmd/ binaries, CLI wiring is
// explicitly out of scope for this module: callers construct a Params value
// directly (or via Default()) and pass it into window.Processor.
package config

// Params bundles every configuration knob the core pipeline (kmer sizing,
// pruning thresholds, path enumeration bounds, STR detection) accepts.
type Params struct {
	// K-mer sizing. The pipeline starts at MinK and increments by KStep on
	// a cycle or near-repeat restart, up to and including MaxK.
	MinK  int
	MaxK  int
	KStep int

	// MinNodeCov is the absolute floor on per-base sample coverage used by
	// RemoveLowCovNodes.
	MinNodeCov int
	// MinCovRatio is multiplied by the graph's average sample coverage to
	// produce an additional coverage floor.
	MinCovRatio float64
	// MinAnchorCov is the minimum total sample count for a reference k-mer
	// to be eligible as a source/sink anchor.
	MinAnchorCov int
	// MinGraphTipLength is the minimum unique-sequence length (in bases,
	// post length-k+1 normalization) below which a low-degree node is
	// pruned as a tip.
	MinGraphTipLength int
	// MaxIndelLength bounds the maximum path length as slack over the
	// reference anchor length.
	MaxIndelLength int
	// GraphTraversalLimit caps the number of PathBuilder visits performed
	// by a single MaxFlowEnumerator.NextPath call.
	GraphTraversalLimit uint32
	// MaxRptMismatch is the Hamming-distance tolerance used by the
	// near-repeat k-mer detector that forces a k increment.
	MaxRptMismatch int

	// STR detection thresholds shared by short-link pruning and transcript
	// tandem-repeat annotation.
	MaxSTRUnitLength int
	MinSTRUnits      int
	MinSTRLen        int
	MaxSTRDist       int

	// OutGraphsDir, when non-empty, causes each component to be dot
	// serialized before pruning, after pruning, and after path enumeration.
	OutGraphsDir string
	// TenxMode is forwarded to the path enumerator. Its effect on scoring
	// is intentionally unspecified; see graph.PathBuilder.LinkedReadHook.
	TenxMode bool
}

// Default returns the parameter set documented as the reference defaults.
func Default() Params {
	return Params{
		MinK:                11,
		MaxK:                101,
		KStep:               10,
		MinNodeCov:          2,
		MinCovRatio:         0.01,
		MinAnchorCov:        5,
		MinGraphTipLength:   11,
		MaxIndelLength:      500,
		GraphTraversalLimit: 100000,
		MaxRptMismatch:      2,
		MaxSTRUnitLength:    6,
		MinSTRUnits:         3,
		MinSTRLen:           9,
		MaxSTRDist:          1,
		OutGraphsDir:        "",
		TenxMode:            false,
	}
}
