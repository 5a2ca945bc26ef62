package graph

import "github.com/dasnellings/lancetgo/kmer"

// SampleLabel distinguishes the two matched sequencing samples the
// assembler compares.
type SampleLabel byte

const (
	NORMAL SampleLabel = iota
	TUMOR
)

func (s SampleLabel) String() string {
	if s == TUMOR {
		return "TUMOR"
	}
	return "NORMAL"
}

// Haplotype is the read-phase bucket a base observation is assigned to.
type Haplotype byte

const (
	HPUnassigned Haplotype = iota
	HP1
	HP2
	numHaplotypes = 3
)

// PairedCount holds forward/reverse strand observation counts, split into
// raw and base-quality-passing tallies.
type PairedCount struct {
	FwdRaw, RevRaw       uint16
	FwdBQPass, RevBQPass uint16
}

func (p PairedCount) rawTotal() int    { return int(p.FwdRaw) + int(p.RevRaw) }
func (p PairedCount) bqPassTotal() int { return int(p.FwdBQPass) + int(p.RevBQPass) }

// HPCount holds raw and base-quality-passing counts for a single haplotype
// bucket.
type HPCount struct {
	Raw, BQPass uint16
}

// BaseCoverage is the per-sample coverage recorded at one base of a node's
// sequence: strand-split raw/bqpass counts plus the three haplotype
// buckets.
type BaseCoverage struct {
	Strand PairedCount
	HP     [numHaplotypes]HPCount
}

// NodeCoverage is the per-base, per-sample coverage array carried by a
// Node, plus a coarse total-read-count tally per sample; when compression
// merges two nodes, MergeBuddy adds the buddy's tally to this one.
type NodeCoverage struct {
	bases       [][2]BaseCoverage // indexed [pos][SampleLabel]
	sampleCount [2]int
}

// NewNodeCoverage allocates a zeroed coverage array of length n.
func NewNodeCoverage(n int) NodeCoverage {
	return NodeCoverage{bases: make([][2]BaseCoverage, n)}
}

func (c *NodeCoverage) Len() int { return len(c.bases) }

// Update records one base observation from a read at position pos.
func (c *NodeCoverage) Update(pos int, label SampleLabel, strand kmer.Strand, bqPass bool, hp Haplotype) {
	bc := &c.bases[pos][label]
	if strand == kmer.FWD {
		bc.Strand.FwdRaw++
		if bqPass {
			bc.Strand.FwdBQPass++
		}
	} else {
		bc.Strand.RevRaw++
		if bqPass {
			bc.Strand.RevBQPass++
		}
	}
	bc.HP[hp].Raw++
	if bqPass {
		bc.HP[hp].BQPass++
	}
}

// IncrementSampleCount records that one additional read from label
// contributed to this node during construction.
func (c *NodeCoverage) IncrementSampleCount(label SampleLabel) {
	c.sampleCount[label]++
}

// SampleCount returns the total number of reads from label that touched
// this node since construction, summed over every node merged into it.
func (c *NodeCoverage) SampleCount(label SampleLabel) int { return c.sampleCount[label] }

// TotalSampleCount sums SampleCount across both samples.
func (c *NodeCoverage) TotalSampleCount() int {
	return c.sampleCount[NORMAL] + c.sampleCount[TUMOR]
}

// MinSampleBaseCov returns, across every base of the node, the minimum of
// the combined (NORMAL+TUMOR) base-quality-passing coverage. An empty
// coverage array (mock nodes) returns 0.
func (c *NodeCoverage) MinSampleBaseCov() int {
	if len(c.bases) == 0 {
		return 0
	}
	min := -1
	for i := range c.bases {
		total := c.bases[i][NORMAL].Strand.bqPassTotal() + c.bases[i][TUMOR].Strand.bqPassTotal()
		if min == -1 || total < min {
			min = total
		}
	}
	return min
}

// At returns the coverage recorded for label at position pos.
func (c *NodeCoverage) At(pos int, label SampleLabel) BaseCoverage { return c.bases[pos][label] }

// MergeBuddy merges buddy's per-base coverage into c following the same
// front/back placement and reversal rules used for sequence merging.
func (c *NodeCoverage) MergeBuddy(buddy NodeCoverage, dir BuddyPosition, reverseBuddy bool, k int) {
	c.sampleCount[NORMAL] += buddy.sampleCount[NORMAL]
	c.sampleCount[TUMOR] += buddy.sampleCount[TUMOR]
	c.bases = mergeArrays(c.bases, buddy.bases, dir, reverseBuddy, k)
}
