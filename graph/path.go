package graph

import (
	"github.com/dasnellings/lancetgo/kmer"
	"github.com/vertgenlab/gonomics/dna"
)

type edgeKey struct {
	src, dst uint64
	kind     EdgeKind
}

type nodeSpan struct {
	start, end int
	node       *Node
}

// Path is the finished, immutable result of one PathBuilder walk: a spliced
// haplotype sequence plus enough bookkeeping (per-node spans, per-position
// coverage) to let transcript extraction map an alignment column back onto
// the node that produced it.
type Path struct {
	seq        []dna.Base
	spans      []nodeSpan
	nmlHP      []HPBucket
	tmrHP      []HPBucket
	touchedIDs map[uint64]bool
}

func (p *Path) Seq() []dna.Base { return p.seq }
func (p *Path) Length() int     { return len(p.seq) }

// TouchedIDs returns every non-mock node ID visited by the path, used to
// annotate dot output; the edges marked for the next enumeration round come
// from PathEdges.
func (p *Path) TouchedIDs() map[uint64]bool { return p.touchedIDs }

// FindSpanningNode returns the node whose span contains 0-based path index
// idx, extending the search to the last node's span when idx runs past the
// end (transcript extraction walks up to k bases beyond the last variant to
// resynchronize coverage).
func (p *Path) FindSpanningNode(idx int) *Node {
	if len(p.spans) == 0 {
		return nil
	}
	for _, s := range p.spans {
		if idx >= s.start && idx < s.end {
			return s.node
		}
	}
	return p.spans[len(p.spans)-1].node
}

// HpCovAt returns the merged per-sample HP coverage bucket at 0-based path
// index idx.
func (p *Path) HpCovAt(label SampleLabel, idx int) HPBucket {
	if idx < 0 {
		return HPBucket{}
	}
	arr := p.nmlHP
	if label == TUMOR {
		arr = p.tmrHP
	}
	if idx >= len(arr) {
		return HPBucket{}
	}
	return arr[idx]
}

// PathBuilder accumulates one bounded-BFS candidate walk through the graph.
// It is copied by value at every branch point in MaxFlowEnumerator.NextPath,
// mirroring the reference algorithm's "duplicate then extend" fan-out.
type PathBuilder struct {
	k         int
	tenxMode  bool
	nodes     []*Node
	edgeKinds []EdgeKind
	score     int
	touchSink bool
	direction kmer.Strand
	pathLen   int
	touched   map[edgeKey]bool

	// LinkedReadHook is left unset by default. The reference algorithm's
	// 10x-mode scoring adjustment (favoring paths whose barcode support
	// agrees across nodes) is not specified precisely enough to replicate;
	// callers running with config.Params.TenxMode may install a scoring
	// hook here without touching the traversal logic.
	LinkedReadHook func(pb *PathBuilder, n *Node) int
}

func newPathBuilder(k int, tenxMode bool) PathBuilder {
	return PathBuilder{k: k, tenxMode: tenxMode, direction: kmer.FWD, touched: make(map[edgeKey]bool)}
}

func (pb PathBuilder) clone() PathBuilder {
	cp := pb
	cp.nodes = append([]*Node(nil), pb.nodes...)
	cp.edgeKinds = append([]EdgeKind(nil), pb.edgeKinds...)
	cp.touched = make(map[edgeKey]bool, len(pb.touched))
	for k, v := range pb.touched {
		cp.touched[k] = v
	}
	return cp
}

func (pb *PathBuilder) NumNodes() int { return len(pb.nodes) }
func (pb *PathBuilder) IsEmpty() bool { return len(pb.nodes) == 0 }
func (pb *PathBuilder) Score() int    { return pb.score }
func (pb *PathBuilder) IncrementScore() {
	pb.score++
	if pb.LinkedReadHook != nil && len(pb.nodes) > 0 {
		pb.score += pb.LinkedReadHook(pb, pb.nodes[len(pb.nodes)-1])
	}
}
func (pb *PathBuilder) TouchedSink() bool  { return pb.touchSink }
func (pb *PathBuilder) MarkSinkTouch()     { pb.touchSink = true }
func (pb *PathBuilder) Direction() kmer.Strand { return pb.direction }
func (pb *PathBuilder) PathLength() int    { return pb.pathLen }

func (pb *PathBuilder) LastNode() *Node {
	if len(pb.nodes) == 0 {
		return nil
	}
	return pb.nodes[len(pb.nodes)-1]
}

// Extend appends node, reached via edge e out of srcID (the current last
// node, or the enumerator's source sentinel for the first hop), onto the
// walk.
func (pb *PathBuilder) Extend(srcID uint64, e Edge, node *Node) {
	pb.nodes = append(pb.nodes, node)
	pb.edgeKinds = append(pb.edgeKinds, e.Kind)
	pb.direction = e.Kind.DestStrand()
	if len(pb.nodes) == 1 {
		pb.pathLen = node.Len()
	} else {
		overlap := pb.k - 1
		if overlap > node.Len() {
			overlap = node.Len()
		}
		pb.pathLen += node.Len() - overlap
	}
	pb.touched[edgeKey{src: srcID, dst: node.ID, kind: e.Kind}] = true
}

// PathEdges returns the set of edge keys visited by this walk, used by the
// enumerator to bias future traversals toward unexplored edges.
func (pb *PathBuilder) PathEdges() map[edgeKey]bool { return pb.touched }

// BuildPath splices every visited node's sequence (and HP coverage) into a
// single Path, complementing a node's contribution whenever the edge that
// reached it points into it on the reverse strand.
func (pb *PathBuilder) BuildPath() *Path {
	p := &Path{touchedIDs: make(map[uint64]bool, len(pb.nodes))}
	if len(pb.nodes) == 0 {
		return p
	}

	for i, n := range pb.nodes {
		p.touchedIDs[n.ID] = true
		reversed := pb.edgeKinds[i].DestStrand() == kmer.REV

		seq := n.Seq
		nmlHP := make([]HPBucket, n.Len())
		tmrHP := make([]HPBucket, n.Len())
		for pos := range nmlHP {
			nmlHP[pos] = nodeHPAt(&n.Coverage, pos, NORMAL)
			tmrHP[pos] = nodeHPAt(&n.Coverage, pos, TUMOR)
		}
		if reversed {
			seq = dna.ReverseComplementAndCopy(n.Seq)
			nmlHP = reverseSlice(nmlHP)
			tmrHP = reverseSlice(tmrHP)
		}

		if i == 0 {
			p.seq = append([]dna.Base(nil), seq...)
			p.nmlHP = append([]HPBucket(nil), nmlHP...)
			p.tmrHP = append([]HPBucket(nil), tmrHP...)
			p.spans = append(p.spans, nodeSpan{start: 0, end: len(p.seq), node: n})
			continue
		}

		start := len(p.seq)
		p.seq = mergeArrays(p.seq, seq, BACK, false, pb.k)
		p.nmlHP = mergeArrays(p.nmlHP, nmlHP, BACK, false, pb.k)
		p.tmrHP = mergeArrays(p.tmrHP, tmrHP, BACK, false, pb.k)
		p.spans = append(p.spans, nodeSpan{start: start, end: len(p.seq), node: n})
	}

	return p
}
