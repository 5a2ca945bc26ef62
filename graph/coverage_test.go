package graph

import (
	"testing"

	"github.com/dasnellings/lancetgo/kmer"
)

func TestNodeCoverageUpdateAndAt(t *testing.T) {
	c := NewNodeCoverage(3)
	c.Update(0, NORMAL, kmer.FWD, true, HPUnassigned)
	c.Update(0, NORMAL, kmer.REV, false, HP1)
	c.Update(0, TUMOR, kmer.FWD, true, HP2)

	nml := c.At(0, NORMAL)
	if nml.Strand.FwdRaw != 1 || nml.Strand.RevRaw != 1 {
		t.Errorf("expected one fwd and one rev raw count, got %+v", nml.Strand)
	}
	if nml.Strand.FwdBQPass != 1 || nml.Strand.RevBQPass != 0 {
		t.Errorf("bq-pass counts wrong: %+v", nml.Strand)
	}
	if nml.HP[HP1].Raw != 1 {
		t.Errorf("expected HP1 raw count 1, got %d", nml.HP[HP1].Raw)
	}

	tmr := c.At(0, TUMOR)
	if tmr.HP[HP2].Raw != 1 || tmr.HP[HP2].BQPass != 1 {
		t.Errorf("expected tumor HP2 raw/bqpass 1, got %+v", tmr.HP[HP2])
	}
}

func TestSampleCountSurvivesIndependentOfBaseCoverage(t *testing.T) {
	c := NewNodeCoverage(1)
	c.IncrementSampleCount(NORMAL)
	c.IncrementSampleCount(NORMAL)
	c.IncrementSampleCount(TUMOR)
	if c.SampleCount(NORMAL) != 2 {
		t.Errorf("expected normal sample count 2, got %d", c.SampleCount(NORMAL))
	}
	if c.TotalSampleCount() != 3 {
		t.Errorf("expected total sample count 3, got %d", c.TotalSampleCount())
	}
}

func TestMinSampleBaseCov(t *testing.T) {
	c := NewNodeCoverage(3)
	for i := 0; i < 3; i++ {
		c.Update(i, NORMAL, kmer.FWD, true, HPUnassigned)
	}
	c.Update(1, TUMOR, kmer.FWD, true, HPUnassigned)
	// base 0 and 2 have 1 bq-passing read total, base 1 has 2.
	if got := c.MinSampleBaseCov(); got != 1 {
		t.Errorf("expected min coverage 1, got %d", got)
	}
}

func TestMinSampleBaseCovEmpty(t *testing.T) {
	c := NewNodeCoverage(0)
	if c.MinSampleBaseCov() != 0 {
		t.Error("an empty coverage array should report 0 min coverage")
	}
}

func TestNodeCoverageMergeBuddyConcatenatesAndTrims(t *testing.T) {
	a := NewNodeCoverage(4)
	b := NewNodeCoverage(4)
	for i := 0; i < 4; i++ {
		a.Update(i, NORMAL, kmer.FWD, true, HPUnassigned)
		b.Update(i, NORMAL, kmer.FWD, true, HPUnassigned)
	}
	a.IncrementSampleCount(NORMAL)
	b.IncrementSampleCount(NORMAL)

	a.MergeBuddy(b, BACK, false, 3)
	// k-1=2 overlap trimmed from b's front, leaving 4 + (4-2) = 6 positions.
	if a.Len() != 6 {
		t.Errorf("expected merged length 6, got %d", a.Len())
	}
	if a.SampleCount(NORMAL) != 2 {
		t.Errorf("expected sample counts to add across merge, got %d", a.SampleCount(NORMAL))
	}
}
