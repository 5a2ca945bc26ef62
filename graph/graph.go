// Package graph implements the localized colored de Bruijn graph used to
// assemble candidate haplotypes inside a single reference window: k-mer
// graph construction, connected-component partitioning, source/sink
// anchoring against the reference, cycle detection, the pruning pipeline
// (low-coverage removal, node compression, tip removal, short-link/bubble
// removal), and bounded path enumeration between the anchors.
package graph

import (
	"math"

	"github.com/dasnellings/lancetgo/config"
	"github.com/dasnellings/lancetgo/kmer"
	"github.com/dasnellings/lancetgo/strrepeat"
	"github.com/vertgenlab/gonomics/dna"
)

// NodeContainer is the graph's backing store, keyed by canonical k-mer ID.
// Construction (extracting k-mers from reads and the reference, resolving
// them to canonical IDs, and inserting/merging nodes and edges) happens
// upstream of this package, at the window/read-extraction boundary; Graph
// only ever receives an already-populated container.
type NodeContainer map[uint64]*Node

// ComponentInfo summarizes one connected component discovered by
// MarkConnectedComponents.
type ComponentInfo struct {
	ID       uint64
	NumNodes int
}

// SrcSnkResult reports the reference-relative half-open byte range spanned
// by a component's anchored source and sink nodes.
type SrcSnkResult struct {
	Found       bool
	StartOffset int
	EndOffset   int
}

// RefAnchorLen is the number of reference bases spanned by the anchor
// range.
func (r SrcSnkResult) RefAnchorLen() int { return r.EndOffset - r.StartOffset }

// Graph owns one window's node container plus the state ProcessGraph
// threads through the pruning and enumeration pipeline.
type Graph struct {
	Nodes            NodeContainer
	RefSeq           []dna.Base
	AvgSampleCov     float64
	K                int
	Params           config.Params
	ShouldIncrementK bool

	nextComponentID uint64
}

// New wires a populated node container into a Graph ready for ProcessGraph.
// The container need not hold the source/sink mocks: MarkSourceSink inserts
// them under MockSourceID/MockSinkID when they are absent.
func New(nodes NodeContainer, refSeq []dna.Base, avgSampleCov float64, k int, params config.Params) *Graph {
	return &Graph{Nodes: nodes, RefSeq: refSeq, AvgSampleCov: avgSampleCov, K: k, Params: params}
}

// PathCallback receives every enumerated path for a component along with
// the reference anchor range it must be aligned against; it is the
// boundary between graph enumeration and alignment/transcript extraction,
// which live in separate packages so graph stays free of alignment
// concerns.
type PathCallback func(p *Path, anchor SrcSnkResult)

// ProcessGraph runs the full per-window pipeline: low-coverage cleanup,
// component partitioning, per-component anchoring, cycle detection,
// pruning, and bounded path enumeration. It returns early the moment a
// cycle or a near-repeat k-mer is detected, setting ShouldIncrementK so the
// caller can retry the window at a larger k; neither condition is reported
// as an error.
func (g *Graph) ProcessGraph(emit PathCallback) error {
	g.RemoveLowCovNodes(0)
	components := g.MarkConnectedComponents()

	for _, comp := range components {
		anchor, srcID, snkID, ok := g.MarkSourceSink(comp.ID)
		if !ok {
			continue
		}

		if g.HasCycle() {
			g.ShouldIncrementK = true
			return nil
		}

		if g.Params.OutGraphsDir != "" {
			g.WriteDot(comp.ID, "before_pruning")
		}

		g.CompressGraph(comp.ID)
		g.RemoveLowCovNodes(comp.ID)
		g.CompressGraph(comp.ID)
		g.RemoveTips(comp.ID)
		g.RemoveShortLinks(comp.ID)

		if g.Params.OutGraphsDir != "" {
			g.WriteDot(comp.ID, "after_pruning")
		}

		if g.HasCycle() {
			g.ShouldIncrementK = true
			return nil
		}

		maxPathLen := anchor.RefAnchorLen() + g.Params.MaxIndelLength
		enumerator := NewMaxFlowEnumerator(g.Nodes, g.K, maxPathLen, g.Params.GraphTraversalLimit, g.Params.TenxMode, srcID, snkID)

		var touched []map[uint64]bool
		for {
			p := enumerator.NextPath()
			if p == nil {
				break
			}

			if hasAlmostRepeatKmer(p.Seq(), g.K, g.Params.MaxRptMismatch) {
				g.ShouldIncrementK = true
				return nil
			}

			touched = append(touched, p.TouchedIDs())
			emit(p, anchor)
		}

		if g.Params.OutGraphsDir != "" && len(touched) > 0 {
			g.WriteDotPaths(comp.ID, touched)
		}
	}

	return nil
}

// MarkConnectedComponents assigns a 1-based component ID to every node via
// BFS over the edge graph, skipping already-assigned nodes so repeated
// calls across a growing node set only visit newly reachable nodes.
func (g *Graph) MarkConnectedComponents() []ComponentInfo {
	var infos []ComponentInfo

	for id, n := range g.Nodes {
		if n.ComponentID != 0 {
			continue
		}
		g.nextComponentID++
		comp := g.nextComponentID
		infos = append(infos, ComponentInfo{ID: comp})
		idx := len(infos) - 1

		queue := []uint64{id}
		for len(queue) > 0 {
			curID := queue[0]
			queue = queue[1:]
			cur, exists := g.Nodes[curID]
			if !exists || cur.ComponentID != 0 {
				continue
			}
			cur.ComponentID = comp
			infos[idx].NumNodes++
			for _, e := range cur.Edges {
				if _, ok := g.Nodes[e.DstID]; ok {
					queue = append(queue, e.DstID)
				}
			}
		}
	}

	return infos
}

type refEndResult struct {
	nodeID uint64
	merIdx int
	found  bool
}

func (g *Graph) findRefEnd(comp uint64, refMerIDs []uint64, fromStart bool) refEndResult {
	minEndCov := g.Params.MinAnchorCov
	n := len(refMerIDs)
	for i := 0; i < n; i++ {
		node, ok := g.Nodes[refMerIDs[i]]
		if !ok || node.IsMock {
			continue
		}
		if int(node.ComponentID) != int(comp) || node.Coverage.TotalSampleCount() < minEndCov {
			continue
		}
		idx := i
		if !fromStart {
			idx = n - i - 1
		}
		return refEndResult{nodeID: refMerIDs[i], merIdx: idx, found: true}
	}
	return refEndResult{}
}

// MarkSourceSink anchors MockSourceID/MockSinkID onto the first and last
// reference k-mers present in comp with sufficient anchor coverage, wiring
// a single edge from each sentinel to its data node. It returns the
// reference byte range the anchors span, and the resolved source/sink node
// IDs for the enumerator (MockSourceID/MockSinkID themselves).
func (g *Graph) MarkSourceSink(comp uint64) (SrcSnkResult, uint64, uint64, bool) {
	refMerIDs, err := kmer.CanonicalHashes(g.RefSeq, g.K)
	if err != nil {
		return SrcSnkResult{}, 0, 0, false
	}

	src := g.findRefEnd(comp, refMerIDs, true)
	if !src.found {
		return SrcSnkResult{}, 0, 0, false
	}

	reversed := make([]uint64, len(refMerIDs))
	for i, v := range refMerIDs {
		reversed[len(refMerIDs)-1-i] = v
	}
	snk := g.findRefEnd(comp, reversed, false)
	if !snk.found || src.nodeID == snk.nodeID {
		return SrcSnkResult{}, 0, 0, false
	}

	// Reuse the mock nodes across components rather than allocating fresh
	// ones: a previous component's data node may still hold a reciprocal
	// edge back to MockSourceID/MockSinkID, and disconnectEdgesTo needs the
	// prior Edges slice in hand to clear it before this component rewires
	// the sentinel.
	fauxSrc, ok := g.Nodes[MockSourceID]
	if !ok {
		fauxSrc = &Node{ID: MockSourceID, IsMock: true}
		g.Nodes[MockSourceID] = fauxSrc
	}
	fauxSnk, ok := g.Nodes[MockSinkID]
	if !ok {
		fauxSnk = &Node{ID: MockSinkID, IsMock: true}
		g.Nodes[MockSinkID] = fauxSnk
	}
	g.disconnectEdgesTo(MockSourceID)
	g.disconnectEdgesTo(MockSinkID)
	fauxSrc.ComponentID = comp
	fauxSnk.ComponentID = comp

	dataSrc := g.Nodes[src.nodeID]
	dataSnk := g.Nodes[snk.nodeID]

	srcKind := MakeEdgeKind(kmer.FWD, dataSrc.Orientation)
	fauxSrc.EmplaceEdge(src.nodeID, srcKind)
	dataSrc.EmplaceEdge(MockSourceID, srcKind.Reverse())

	snkKind := RR
	if dataSnk.Orientation == kmer.REV {
		snkKind = FF
	}
	fauxSnk.EmplaceEdge(snk.nodeID, snkKind)
	dataSnk.EmplaceEdge(MockSinkID, snkKind.Reverse())

	start := src.merIdx
	end := snk.merIdx + dataSnk.Len()
	return SrcSnkResult{Found: true, StartOffset: start, EndOffset: end}, MockSourceID, MockSinkID, true
}

func (g *Graph) disconnectEdgesTo(id uint64) {
	target := g.Nodes[id]
	for _, e := range target.Edges {
		if n, ok := g.Nodes[e.DstID]; ok {
			n.EraseEdgeKind(id, e.Kind.Reverse())
		}
	}
	target.Edges = nil
}

// RemoveLowCovNodes drops every node in comp whose sample-observation
// pattern looks like sequencing noise: a node backed by exactly one
// normal read and one tumor read, or any node whose minimum per-base
// coverage falls at or below the effective floor (the larger of the
// absolute MinNodeCov and MinCovRatio scaled by the window's average
// coverage).
func (g *Graph) RemoveLowCovNodes(comp uint64) bool {
	minWindowCov := int(math.Ceil(g.Params.MinCovRatio * g.AvgSampleCov))
	minReqCov := g.Params.MinNodeCov
	if minWindowCov > minReqCov {
		minReqCov = minWindowCov
	}

	var toRemove []uint64
	for id, n := range g.Nodes {
		if n.IsMock || n.ComponentID != comp {
			continue
		}
		isNormalSingleton := n.Coverage.SampleCount(NORMAL) == 1
		isTumorSingleton := n.Coverage.SampleCount(TUMOR) == 1
		if (isNormalSingleton && isTumorSingleton) || n.Coverage.MinSampleBaseCov() <= minReqCov {
			toRemove = append(toRemove, id)
		}
	}

	g.removeNodes(toRemove)
	return len(toRemove) > 0
}

func (g *Graph) removeNodes(ids []uint64) {
	for _, id := range ids {
		g.eraseNode(id)
	}
}

func (g *Graph) eraseNode(id uint64) {
	n, ok := g.Nodes[id]
	if !ok || n.IsMock {
		return
	}
	for _, e := range n.Edges {
		if neighbour, ok := g.Nodes[e.DstID]; ok {
			neighbour.EraseEdgeKind(id, e.Kind.Reverse())
		}
	}
	delete(g.Nodes, id)
}

// FindCompressibleNeighbours returns the set of neighbours src can be
// merged into: a neighbour qualifies only when src and the neighbour are
// each other's sole outgoing edge on the connecting strand (mutual,
// degree-one) and CanMerge agrees.
func (g *Graph) FindCompressibleNeighbours(srcID uint64) []Neighbour {
	src, ok := g.Nodes[srcID]
	if !ok || src.IsMock {
		return nil
	}
	srcNeighbours := src.FindMergeableNeighbours()
	if len(srcNeighbours) == 0 {
		return nil
	}

	var results []Neighbour
	for _, nb := range srcNeighbours {
		buddy, ok := g.Nodes[nb.BuddyID]
		if !ok {
			continue
		}
		mutual := false
		for _, back := range buddy.FindMergeableNeighbours() {
			if back.BuddyID == srcID {
				mutual = true
				break
			}
		}
		if !mutual {
			continue
		}
		dir, _ := nb.Kind.BuddyPositionFor()
		if src.CanMerge(buddy, dir, g.K) {
			results = append(results, nb)
		}
	}
	return results
}

// CompressNode repeatedly splices src's compressible buddies into it,
// rewiring the buddy's other edges onto src, until at most a source/sink
// pair of buddies remains uncompressed or no more mutual buddies exist.
func (g *Graph) CompressNode(srcID uint64, buddies []Neighbour, compressed map[uint64]bool) {
	if len(buddies) == 0 || len(buddies) > 2 {
		return
	}
	src := g.Nodes[srcID]

	remaining := make([]Neighbour, 0, len(buddies))
	for _, b := range buddies {
		if !compressed[b.BuddyID] {
			remaining = append(remaining, b)
		}
	}

	for len(remaining) > 0 && len(remaining) <= 2 {
		nb := remaining[0]
		remaining = remaining[1:]
		buddy, ok := g.Nodes[nb.BuddyID]
		if !ok {
			continue
		}

		dir, _ := nb.Kind.BuddyPositionFor()
		if !src.CanMerge(buddy, dir, g.K) {
			continue
		}

		src.MergeBuddy(buddy, dir, nb.Kind, g.K)
		src.EraseEdge(nb.BuddyID)
		compressed[nb.BuddyID] = true

		srcBuddyDiffStrands := nb.Kind.SourceStrand() != nb.Kind.DestStrand()
		for _, be := range buddy.Edges {
			if be.DstID == srcID {
				continue
			}
			buddyNeighbour, ok := g.Nodes[be.DstID]
			if !ok {
				continue
			}

			srcLinkStrand := be.Kind.SourceStrand()
			if srcBuddyDiffStrands {
				srcLinkStrand = srcLinkStrand.Reverse()
			}
			resultKind := MakeEdgeKind(srcLinkStrand, be.Kind.DestStrand())

			if be.DstID == nb.BuddyID {
				src.EmplaceEdge(srcID, resultKind)
				continue
			}

			src.EmplaceEdge(be.DstID, resultKind)
			buddyNeighbour.EraseEdge(nb.BuddyID)
			buddyNeighbour.EmplaceEdge(srcID, resultKind.Reverse())
		}

		next := g.FindCompressibleNeighbours(srcID)
		for _, n := range next {
			if !compressed[n.BuddyID] {
				remaining = append(remaining, n)
			}
		}
	}
}

// CompressGraph runs CompressNode over every non-mock node of comp once,
// removing every buddy that ended up folded into another node.
func (g *Graph) CompressGraph(comp uint64) bool {
	compressed := make(map[uint64]bool)
	for id, n := range g.Nodes {
		if n.ComponentID != comp || n.IsMock || compressed[id] {
			continue
		}
		g.CompressNode(id, g.FindCompressibleNeighbours(id), compressed)
	}

	var toRemove []uint64
	for id := range compressed {
		toRemove = append(toRemove, id)
	}
	g.removeNodes(toRemove)
	return len(toRemove) > 0
}

// RemoveTips removes low-degree, short nodes (dead ends shorter than
// MinGraphTipLength once normalized for k-mer overlap) and recompresses,
// repeating until a pass removes nothing -- compression after tip removal
// can expose new tips.
func (g *Graph) RemoveTips(comp uint64) bool {
	totalRemoved := 0
	for {
		var toRemove []uint64
		for id, n := range g.Nodes {
			if n.IsMock || n.ComponentID != comp {
				continue
			}
			if len(n.Edges) <= 1 && (n.Len()-g.K+1) < g.Params.MinGraphTipLength {
				toRemove = append(toRemove, id)
			}
		}
		if len(toRemove) == 0 {
			break
		}
		totalRemoved += len(toRemove)
		g.removeNodes(toRemove)
		g.CompressGraph(comp)
	}
	return totalRemoved > 0
}

// RemoveShortLinks removes short bubbles: nodes of degree >= 2, shorter
// than half the k-mer length once overlap-normalized, whose minimum
// coverage does not exceed sqrt(avg sample coverage) -- unless the node's
// sequence itself looks like a short tandem repeat, since small bubbles
// are the expected shape of an STR rather than sequencing noise.
func (g *Graph) RemoveShortLinks(comp uint64) bool {
	minLinkLen := g.K / 2
	minReqCov := math.Floor(math.Sqrt(g.AvgSampleCov))
	strParams := strrepeat.Params{
		MaxUnitLength: g.Params.MaxSTRUnitLength,
		MinUnits:      g.Params.MinSTRUnits,
		MinLen:        g.Params.MinSTRLen,
		MaxDist:       g.Params.MaxSTRDist,
	}

	var toRemove []uint64
	for id, n := range g.Nodes {
		if n.IsMock || n.ComponentID != comp {
			continue
		}
		degree := len(n.Edges)
		uniqLen := n.Len() - g.K + 1
		minCov := float64(n.Coverage.MinSampleBaseCov())
		if degree >= 2 && uniqLen < minLinkLen && minCov <= minReqCov {
			res := strrepeat.Find(n.Seq, g.K-1, strParams)
			if !res.Found {
				toRemove = append(toRemove, id)
			}
		}
	}

	if len(toRemove) > 0 {
		g.removeNodes(toRemove)
		g.CompressGraph(comp)
	}
	return len(toRemove) > 0
}

// HasCycle detects a cycle reachable from the mock source in either
// traversal direction. A single touched-set is shared across both launches
// so a node revisited by the reverse launch after the forward launch
// already cleared it does not produce a false positive.
func (g *Graph) HasCycle() bool {
	touched := make(map[uint64]bool)
	return g.hasCycleFrom(MockSourceID, kmer.FWD, touched) || g.hasCycleFrom(MockSourceID, kmer.REV, touched)
}

func (g *Graph) hasCycleFrom(id uint64, dir kmer.Strand, touched map[uint64]bool) bool {
	n, ok := g.Nodes[id]
	if !ok {
		return false
	}
	touched[id] = true
	for _, e := range n.Edges {
		if e.DstID == MockSourceID || e.DstID == MockSinkID || e.Kind.SourceStrand() != dir {
			continue
		}
		if !touched[e.DstID] {
			if g.hasCycleFrom(e.DstID, e.Kind.DestStrand(), touched) {
				return true
			}
			continue
		}
		delete(touched, id)
		return true
	}
	delete(touched, id)
	return false
}

// ClampToSourceSink is a hook for the window/read-extraction layer's
// per-base reference sample-coverage profile: it slices that profile down
// to the anchor's reference range so transcript.Extract
// walks the same coordinate frame as the enumerated path.
func ClampToSourceSink[T any](refInfo []T, anchor SrcSnkResult) []T {
	if anchor.StartOffset >= len(refInfo) || anchor.EndOffset > len(refInfo) {
		return refInfo
	}
	return refInfo[anchor.StartOffset:anchor.EndOffset]
}

// hasAlmostRepeatKmer reports whether path contains two k-mers, at least k
// bases apart, within maxMismatch Hamming distance of each other -- a sign
// that the current k is too small to resolve a near-perfect repeat and the
// path should be re-enumerated at a larger k rather than trusted as-is.
func hasAlmostRepeatKmer(seq []dna.Base, k, maxMismatch int) bool {
	numMers := len(seq) - k + 1
	if numMers < 2 {
		return false
	}
	for i := 0; i < numMers; i++ {
		for j := i + k; j < numMers; j++ {
			if hamming(seq[i:i+k], seq[j:j+k]) <= maxMismatch {
				return true
			}
		}
	}
	return false
}

func hamming(a, b []dna.Base) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
