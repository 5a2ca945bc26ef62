package graph

import (
	"github.com/dasnellings/lancetgo/kmer"
	"github.com/vertgenlab/gonomics/dna"
)

// Neighbour identifies one of a node's edges by the ID it points at and the
// strand relationship recorded on that edge.
type Neighbour struct {
	BuddyID uint64
	Kind    EdgeKind
}

// Node is a compressed run of one or more merged k-mers: a canonical
// sequence, the strand it was canonicalized to relative to its first
// contributing k-mer, and the per-base coverage/haplotype/label tracks that
// travel with it through compression.
type Node struct {
	ID          uint64
	Seq         []dna.Base
	Orientation kmer.Strand
	Coverage    NodeCoverage
	Label       NodeLabel
	ComponentID uint64
	Edges       []Edge
	IsMock      bool
}

// NewNode builds a single-kmer node in its canonical orientation. Per-base
// HP coverage is not tracked separately from Coverage: Coverage.Update
// records it directly, and callers that need a per-position HPBucket view
// (PathBuilder.BuildPath) read Coverage.At(pos, label).HP.
func NewNode(id uint64, seq []dna.Base, orientation kmer.Strand) *Node {
	return &Node{
		ID:          id,
		Seq:         append([]dna.Base(nil), seq...),
		Orientation: orientation,
		Coverage:    NewNodeCoverage(len(seq)),
		Label:       NewNodeLabel(len(seq)),
	}
}

// NewMockNode builds one of the two zero-length sentinel nodes ProcessGraph
// anchors a component's traversal to.
func NewMockNode(id uint64) *Node {
	return &Node{ID: id, IsMock: true}
}

func (n *Node) Len() int { return len(n.Seq) }

// EmplaceEdge adds an edge to dst of kind, unless an identical edge already
// exists.
func (n *Node) EmplaceEdge(dst uint64, kind EdgeKind) {
	for _, e := range n.Edges {
		if e.DstID == dst && e.Kind == kind {
			return
		}
	}
	n.Edges = append(n.Edges, Edge{DstID: dst, Kind: kind})
}

// EraseEdge removes every edge pointing at dst regardless of kind.
func (n *Node) EraseEdge(dst uint64) {
	out := n.Edges[:0]
	for _, e := range n.Edges {
		if e.DstID != dst {
			out = append(out, e)
		}
	}
	n.Edges = out
}

// EraseEdgeKind removes only the edge pointing at dst with the given kind.
func (n *Node) EraseEdgeKind(dst uint64, kind EdgeKind) {
	out := n.Edges[:0]
	for _, e := range n.Edges {
		if !(e.DstID == dst && e.Kind == kind) {
			out = append(out, e)
		}
	}
	n.Edges = out
}

// OutDegree counts edges whose source strand matches dir, i.e. edges
// leaving the node when it is walked in that direction.
func (n *Node) OutDegree(dir kmer.Strand) int {
	count := 0
	for _, e := range n.Edges {
		if e.Kind.SourceStrand() == dir {
			count++
		}
	}
	return count
}

// FindMergeableNeighbours returns every neighbour reachable by an edge on a
// strand where this node has exactly one outgoing edge -- the local half of
// the mutual, degree-one check FindCompressibleNeighbours applies to both
// sides.
func (n *Node) FindMergeableNeighbours() []Neighbour {
	if n.IsMock {
		return nil
	}
	var fwd, rev []Neighbour
	for _, e := range n.Edges {
		if e.DstID == MockSourceID || e.DstID == MockSinkID {
			continue
		}
		if e.Kind.SourceStrand() == kmer.FWD {
			fwd = append(fwd, Neighbour{BuddyID: e.DstID, Kind: e.Kind})
		} else {
			rev = append(rev, Neighbour{BuddyID: e.DstID, Kind: e.Kind})
		}
	}
	var out []Neighbour
	if len(fwd) == 1 {
		out = append(out, fwd[0])
	}
	if len(rev) == 1 {
		out = append(out, rev[0])
	}
	return out
}

// CanMerge reports whether buddy's sequence can be spliced onto n at dir
// with a (k-1)-base overlap: both must carry at least k-1 bases and neither
// may be a mock sentinel.
func (n *Node) CanMerge(buddy *Node, dir BuddyPosition, k int) bool {
	if n.IsMock || buddy.IsMock {
		return false
	}
	return n.Len() >= k-1 && buddy.Len() >= k-1
}

// MergeBuddy splices buddy onto n at dir, complementing sequence data when
// the connecting edge kind implies buddy was walked in the opposite strand,
// and folds buddy's coverage and label state into n's own; edges are left
// untouched here and rewired by the caller. HP coverage rides along inside
// Coverage, so merging it needs no separate step.
func (n *Node) MergeBuddy(buddy *Node, dir BuddyPosition, kind EdgeKind, k int) {
	_, reverseBuddy := kind.BuddyPositionFor()

	seq := buddy.Seq
	if reverseBuddy {
		seq = dna.ReverseComplementAndCopy(buddy.Seq)
	}
	n.Seq = mergeArrays(n.Seq, seq, dir, false, k)
	n.Coverage.MergeBuddy(buddy.Coverage, dir, reverseBuddy, k)
	n.Label.MergeBuddy(buddy.Label, dir, reverseBuddy, k)
}
