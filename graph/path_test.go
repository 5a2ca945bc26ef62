package graph

import (
	"testing"

	"github.com/dasnellings/lancetgo/kmer"
	"github.com/vertgenlab/gonomics/dna"
)

func nodeWithHP(id uint64, seq string, hp1Count int) *Node {
	n := NewNode(id, dna.StringToBases(seq), kmer.FWD)
	for i := 0; i < hp1Count && i < n.Len(); i++ {
		n.Coverage.Update(i, NORMAL, kmer.FWD, true, HP1)
	}
	return n
}

func TestPathBuilderExtendAndBuildPathFF(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 5)
	n2 := nodeWithHP(2, "TACGG", 0)

	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	if pb.PathLength() != 5 {
		t.Fatalf("expected path length 5 after first node, got %d", pb.PathLength())
	}
	pb.Extend(n1.ID, Edge{DstID: n2.ID, Kind: FF}, n2)
	// overlap k-1=3, so total length = 5 + (5-3) = 7
	if pb.PathLength() != 7 {
		t.Fatalf("expected path length 7 after second node, got %d", pb.PathLength())
	}
	if pb.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes in builder, got %d", pb.NumNodes())
	}
	if pb.Direction() != kmer.FWD {
		t.Errorf("FF edges should leave the builder walking FWD, got %s", pb.Direction())
	}

	p := pb.BuildPath()
	if got := dna.BasesToString(p.Seq()); p.Length() != 7 {
		t.Errorf("expected built path length 7, got %d (%s)", p.Length(), got)
	}
	if !p.TouchedIDs()[1] || !p.TouchedIDs()[2] {
		t.Errorf("expected both node IDs marked touched, got %+v", p.TouchedIDs())
	}
}

func TestPathBuilderExtendReversedNodeComplementsSeq(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 0)
	n2 := nodeWithHP(2, "TACGT", 0)

	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	// FR: source FWD, dest REV -- n2's contribution to the path is reverse complemented.
	pb.Extend(n1.ID, Edge{DstID: n2.ID, Kind: FR}, n2)
	if pb.Direction() != kmer.REV {
		t.Errorf("an FR edge should leave the builder walking REV, got %s", pb.Direction())
	}

	p := pb.BuildPath()
	rc := dna.ReverseComplementAndCopy(dna.StringToBases("TACGT"))
	wantTail := dna.BasesToString(rc[3:])
	gotSeq := dna.BasesToString(p.Seq())
	if gotSeq[5:] != wantTail {
		t.Errorf("expected reverse-complemented tail %s, got full seq %s", wantTail, gotSeq)
	}
}

func TestFindSpanningNode(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 0)
	n2 := nodeWithHP(2, "TACGG", 0)
	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	pb.Extend(n1.ID, Edge{DstID: n2.ID, Kind: FF}, n2)
	p := pb.BuildPath()

	if p.FindSpanningNode(0).ID != 1 {
		t.Error("index 0 should fall within the first node's span")
	}
	if p.FindSpanningNode(6).ID != 2 {
		t.Error("index 6 should fall within the second node's span")
	}
	// past the end, clamps to the last node.
	if p.FindSpanningNode(100).ID != 2 {
		t.Error("an out-of-range index should clamp to the last node")
	}
}

func TestHpCovAt(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 5)
	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	p := pb.BuildPath()

	if p.HpCovAt(NORMAL, 0)[HP1].Raw != 1 {
		t.Errorf("expected normal HP1 raw 1 at index 0, got %+v", p.HpCovAt(NORMAL, 0))
	}
	if p.HpCovAt(NORMAL, -1) != (HPBucket{}) {
		t.Error("a negative index should return a zero-value bucket")
	}
	if p.HpCovAt(NORMAL, 1000) != (HPBucket{}) {
		t.Error("an out-of-range index should return a zero-value bucket")
	}
}

func TestPathEdgesTracksVisitedEdges(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 0)
	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	edges := pb.PathEdges()
	if !edges[edgeKey{src: MockSourceID, dst: 1, kind: FF}] {
		t.Errorf("expected the traversed edge to be recorded, got %+v", edges)
	}
}

func TestPathBuilderCloneIsIndependent(t *testing.T) {
	k := 4
	pb := newPathBuilder(k, false)
	n1 := nodeWithHP(1, "ACGTA", 0)
	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)

	cp := pb.clone()
	n2 := nodeWithHP(2, "TACGG", 0)
	cp.Extend(n1.ID, Edge{DstID: n2.ID, Kind: FF}, n2)

	if pb.NumNodes() != 1 {
		t.Errorf("extending the clone should not affect the original, got %d nodes", pb.NumNodes())
	}
	if cp.NumNodes() != 2 {
		t.Errorf("expected the clone to have 2 nodes, got %d", cp.NumNodes())
	}
}

func TestIncrementScoreInvokesLinkedReadHook(t *testing.T) {
	pb := newPathBuilder(4, true)
	n1 := nodeWithHP(1, "ACGTA", 0)
	pb.Extend(MockSourceID, Edge{DstID: n1.ID, Kind: FF}, n1)
	pb.LinkedReadHook = func(pb *PathBuilder, n *Node) int { return 5 }
	pb.IncrementScore()
	if pb.Score() != 6 {
		t.Errorf("expected score 1 (base) + 5 (hook) = 6, got %d", pb.Score())
	}
}
