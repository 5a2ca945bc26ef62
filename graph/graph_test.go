package graph

import (
	"testing"

	"github.com/dasnellings/lancetgo/config"
	"github.com/dasnellings/lancetgo/kmer"
	"github.com/vertgenlab/gonomics/dna"
)

func coveredNode(id uint64, seq string, normalReads, tumorReads int) *Node {
	n := NewNode(id, dna.StringToBases(seq), kmer.FWD)
	for s := 0; s < normalReads; s++ {
		n.Coverage.IncrementSampleCount(NORMAL)
		for i := 0; i < n.Len(); i++ {
			n.Coverage.Update(i, NORMAL, kmer.FWD, true, HPUnassigned)
		}
	}
	for s := 0; s < tumorReads; s++ {
		n.Coverage.IncrementSampleCount(TUMOR)
		for i := 0; i < n.Len(); i++ {
			n.Coverage.Update(i, TUMOR, kmer.FWD, true, HPUnassigned)
		}
	}
	return n
}

func TestMarkConnectedComponents(t *testing.T) {
	a := coveredNode(1, "ACGT", 3, 3)
	b := coveredNode(2, "GTAC", 3, 3)
	c := coveredNode(3, "TTTT", 3, 3) // isolated
	a.EmplaceEdge(2, FF)
	b.EmplaceEdge(1, FF.Reverse())

	g := New(NodeContainer{1: a, 2: b, 3: c}, nil, 0, 4, config.Default())
	infos := g.MarkConnectedComponents()
	if len(infos) != 2 {
		t.Fatalf("expected 2 components, got %d", len(infos))
	}
	if a.ComponentID != b.ComponentID {
		t.Error("a and b should share a component")
	}
	if a.ComponentID == c.ComponentID {
		t.Error("c should be in its own component")
	}
}

func TestRemoveLowCovNodesDropsSingletons(t *testing.T) {
	singleton := coveredNode(1, "ACGT", 1, 1)
	singleton.ComponentID = 1
	healthy := coveredNode(2, "GTAC", 3, 3)
	healthy.ComponentID = 1

	g := New(NodeContainer{1: singleton, 2: healthy}, nil, 0, 4, config.Default())
	removed := g.RemoveLowCovNodes(1)
	if !removed {
		t.Error("expected RemoveLowCovNodes to report a removal")
	}
	if _, ok := g.Nodes[1]; ok {
		t.Error("the normal+tumor singleton node should have been removed")
	}
	if _, ok := g.Nodes[2]; !ok {
		t.Error("a well-covered node should survive")
	}
}

func TestRemoveLowCovNodesRespectsMinNodeCov(t *testing.T) {
	params := config.Default()
	params.MinNodeCov = 10
	low := coveredNode(1, "ACGT", 3, 3)
	low.ComponentID = 1
	g := New(NodeContainer{1: low}, nil, 0, 4, params)
	g.RemoveLowCovNodes(1)
	if _, ok := g.Nodes[1]; ok {
		t.Error("a node below MinNodeCov should be removed even with multiple reads")
	}
}

func TestCompressGraphMergesLinearChain(t *testing.T) {
	a := coveredNode(3, "ACGTA", 3, 3)
	b := coveredNode(2, "TACGG", 3, 3)
	a.ComponentID, b.ComponentID = 1, 1
	a.EmplaceEdge(2, FF)
	b.EmplaceEdge(3, FF.Reverse())

	g := New(NodeContainer{3: a, 2: b}, nil, 0, 4, config.Default())
	removed := g.CompressGraph(1)
	if !removed {
		t.Fatal("expected CompressGraph to fold one node into the other")
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("expected exactly one surviving node after compression, got %d", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.Len() != 7 {
			t.Errorf("expected merged length 7, got %d", n.Len())
		}
	}
}

func TestRemoveTipsPrunesShortDeadEnd(t *testing.T) {
	params := config.Default()
	params.MinGraphTipLength = 5
	main := coveredNode(1, "ACGTACGTAC", 3, 3)
	tip := coveredNode(2, "GTAC", 3, 3) // len-k+1 = 1, below MinGraphTipLength
	main.ComponentID, tip.ComponentID = 1, 1
	main.EmplaceEdge(2, FF)
	// tip has degree 1 (no back edge), qualifying it as a dead end.

	g := New(NodeContainer{1: main, 2: tip}, nil, 0, 4, params)
	removed := g.RemoveTips(1)
	if !removed {
		t.Fatal("expected RemoveTips to remove the short dead end")
	}
	if _, ok := g.Nodes[2]; ok {
		t.Error("the short tip should have been removed")
	}
}

func TestHasCycleDetectsTwoNodeCycle(t *testing.T) {
	src := NewMockNode(MockSourceID)
	a := coveredNode(3, "ACGTA", 3, 3)
	b := coveredNode(2, "TACGG", 3, 3)
	src.EmplaceEdge(3, FF)
	a.EmplaceEdge(2, FF)
	b.EmplaceEdge(3, FF) // cycle back to a

	g := New(NodeContainer{MockSourceID: src, 3: a, 2: b}, nil, 0, 4, config.Default())
	if !g.HasCycle() {
		t.Error("expected a cycle to be detected")
	}
}

func TestHasCycleFalseOnLinearGraph(t *testing.T) {
	src := NewMockNode(MockSourceID)
	a := coveredNode(3, "ACGTA", 3, 3)
	b := coveredNode(2, "TACGG", 3, 3)
	src.EmplaceEdge(3, FF)
	a.EmplaceEdge(2, FF)

	g := New(NodeContainer{MockSourceID: src, 3: a, 2: b}, nil, 0, 4, config.Default())
	if g.HasCycle() {
		t.Error("expected no cycle on a linear chain")
	}
}

func TestClampToSourceSink(t *testing.T) {
	refInfo := []int{0, 1, 2, 3, 4, 5}
	anchor := SrcSnkResult{Found: true, StartOffset: 1, EndOffset: 4}
	got := ClampToSourceSink(refInfo, anchor)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestClampToSourceSinkOutOfRangeReturnsInput(t *testing.T) {
	refInfo := []int{0, 1, 2}
	anchor := SrcSnkResult{Found: true, StartOffset: 1, EndOffset: 10}
	got := ClampToSourceSink(refInfo, anchor)
	if len(got) != len(refInfo) {
		t.Errorf("expected the unclamped input back, got %v", got)
	}
}

func TestHasAlmostRepeatKmer(t *testing.T) {
	seq := dna.StringToBases("ACGTACGTACGT") // k=4, period-4 repeat
	if !hasAlmostRepeatKmer(seq, 4, 0) {
		t.Error("expected a perfect repeat to be detected")
	}
	if hasAlmostRepeatKmer(dna.StringToBases("ACGT"), 4, 0) {
		t.Error("a single k-mer cannot be a repeat of itself")
	}
}

func TestHammingDistance(t *testing.T) {
	a := dna.StringToBases("ACGT")
	b := dna.StringToBases("ACGA")
	if d := hamming(a, b); d != 1 {
		t.Errorf("expected hamming distance 1, got %d", d)
	}
}
