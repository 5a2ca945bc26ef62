package graph

import "github.com/dasnellings/lancetgo/kmer"

// EdgeKind encodes the relative strand orientation between a k-mer and the
// (k-1)-overlap neighbour it was observed adjacent to, mirroring the four
// link types a de Bruijn assembler must distinguish: both k-mers read in
// their forward orientation (FF), source forward/dest reverse (FR), source
// reverse/dest forward (RF), and both reverse (RR).
type EdgeKind byte

const (
	FF EdgeKind = iota
	FR
	RF
	RR
)

func (k EdgeKind) String() string {
	switch k {
	case FF:
		return "FF"
	case FR:
		return "FR"
	case RF:
		return "RF"
	default:
		return "RR"
	}
}

// MakeEdgeKind derives the edge kind from the strand each endpoint's k-mer
// was canonicalized to.
func MakeEdgeKind(src, dst kmer.Strand) EdgeKind {
	switch {
	case src == kmer.FWD && dst == kmer.FWD:
		return FF
	case src == kmer.FWD && dst == kmer.REV:
		return FR
	case src == kmer.REV && dst == kmer.FWD:
		return RF
	default:
		return RR
	}
}

// SourceStrand and DestStrand recover the endpoint strands encoded by kind.
func (k EdgeKind) SourceStrand() kmer.Strand {
	if k == FF || k == FR {
		return kmer.FWD
	}
	return kmer.REV
}

func (k EdgeKind) DestStrand() kmer.Strand {
	if k == FF || k == RF {
		return kmer.FWD
	}
	return kmer.REV
}

// Reverse returns the edge kind seen from the destination node looking back
// at the source: walking an edge (a,b) backwards gives (b',a'), which swaps
// the two strands and complements each, so FF and RR swap with each other
// while FR and RF each map to themselves.
func (k EdgeKind) Reverse() EdgeKind {
	switch k {
	case FF:
		return RR
	case RR:
		return FF
	default:
		return k
	}
}

// BuddyPositionFor derives where a neighbour reached via an edge of kind
// should be placed relative to the node it extends, and whether the
// neighbour's own arrays must be reversed before splicing: a FWD source
// strand extends the node at its BACK, a REV source strand extends it at
// its FRONT, and the buddy's arrays are reversed first exactly when the
// edge's source and destination strands differ.
func (k EdgeKind) BuddyPositionFor() (BuddyPosition, bool) {
	if k.SourceStrand() == kmer.FWD {
		return BACK, k.DestStrand() == kmer.REV
	}
	return FRONT, k.DestStrand() == kmer.FWD
}

// MockSourceID and MockSinkID identify the two sentinel nodes ProcessGraph
// attaches to every component's reference-anchored entry and exit k-mers
// (both sentinels carry a zero-length sequence). kmer.IDOf does not keep a
// real k-mer's ID off these two values; a real node whose ID is 0 or 1
// shares its key with a sentinel, and edges to it are skipped wherever
// edges to the sentinels are.
const (
	MockSourceID uint64 = 0
	MockSinkID   uint64 = 1
)

// Edge is a directed link from the owning node to DstID, tagged with the
// strand relationship that produced it.
type Edge struct {
	DstID uint64
	Kind  EdgeKind
}
