package graph

import (
	"testing"

	"github.com/dasnellings/lancetgo/kmer"
)

func TestMakeEdgeKind(t *testing.T) {
	cases := []struct {
		src, dst kmer.Strand
		want     EdgeKind
	}{
		{kmer.FWD, kmer.FWD, FF},
		{kmer.FWD, kmer.REV, FR},
		{kmer.REV, kmer.FWD, RF},
		{kmer.REV, kmer.REV, RR},
	}
	for _, c := range cases {
		got := MakeEdgeKind(c.src, c.dst)
		if got != c.want {
			t.Errorf("MakeEdgeKind(%s,%s) = %s, want %s", c.src, c.dst, got, c.want)
		}
		if got.SourceStrand() != c.src {
			t.Errorf("%s.SourceStrand() = %s, want %s", got, got.SourceStrand(), c.src)
		}
		if got.DestStrand() != c.dst {
			t.Errorf("%s.DestStrand() = %s, want %s", got, got.DestStrand(), c.dst)
		}
	}
}

func TestEdgeKindReverse(t *testing.T) {
	if FF.Reverse() != RR {
		t.Error("FF should reverse to RR")
	}
	if RR.Reverse() != FF {
		t.Error("RR should reverse to FF")
	}
	if FR.Reverse() != FR {
		t.Error("FR should reverse to itself")
	}
	if RF.Reverse() != RF {
		t.Error("RF should reverse to itself")
	}
}

func TestBuddyPositionFor(t *testing.T) {
	cases := []struct {
		kind        EdgeKind
		wantPos     BuddyPosition
		wantReverse bool
	}{
		{FF, BACK, false},
		{FR, BACK, true},
		{RF, FRONT, true},
		{RR, FRONT, false},
	}
	for _, c := range cases {
		pos, rev := c.kind.BuddyPositionFor()
		if pos != c.wantPos || rev != c.wantReverse {
			t.Errorf("%s.BuddyPositionFor() = (%v,%v), want (%v,%v)", c.kind, pos, rev, c.wantPos, c.wantReverse)
		}
	}
}

func TestEdgeKindString(t *testing.T) {
	for _, k := range []EdgeKind{FF, FR, RF, RR} {
		if k.String() == "" {
			t.Errorf("EdgeKind %d should have a non-empty string representation", k)
		}
	}
}
