// Package kmer implements canonical k-mer representation and identity
// hashing for the colored de Bruijn graph assembler.
package kmer

import (
	"github.com/dasnellings/lancetgo/errs"
	"github.com/tenfyzhong/cityhash"
	"github.com/vertgenlab/gonomics/dna"
)

// Strand records which orientation of a sequence was chosen as canonical.
type Strand byte

const (
	FWD Strand = iota
	REV
)

func (s Strand) Reverse() Strand {
	if s == FWD {
		return REV
	}
	return FWD
}

func (s Strand) String() string {
	if s == FWD {
		return "FWD"
	}
	return "REV"
}

// Seed0 and Seed1 are the fixed CityHash64WithSeeds seed pair used to
// compute k-mer identifiers. These MUST stay constant for node ids to be
// stable across runs and across the lifetime of the corpus.
const (
	Seed0 uint64 = 0xc3a5c85c97cb3127
	Seed1 uint64 = 0xb492b66fbe98f273
)

// Kmer holds the canonicalized sequence of a k-mer and the strand it was
// canonicalized from.
type Kmer struct {
	Seq    []dna.Base
	Strand Strand
}

// New canonicalizes seq and returns the resulting Kmer.
func New(seq []dna.Base) Kmer {
	canon, strnd := Canonicalize(seq)
	return Kmer{Seq: canon, Strand: strnd}
}

// Canonicalize returns the lexicographically smaller of seq and its reverse
// complement, along with the strand that was chosen. FWD means seq was
// already canonical.
func Canonicalize(seq []dna.Base) ([]dna.Base, Strand) {
	rc := dna.ReverseComplementAndCopy(seq)
	if compareBases(seq, rc) <= 0 {
		return seq, FWD
	}
	return rc, REV
}

// IsCanonical reports whether seq is already lexicographically <= its
// reverse complement.
func IsCanonical(seq []dna.Base) bool {
	rc := dna.ReverseComplementAndCopy(seq)
	return compareBases(seq, rc) <= 0
}

// ID returns the 64-bit identity hash of the k-mer's canonical sequence.
// Two k-mers that are reverse complements of one another always hash to the
// same id since both canonicalize to the same sequence.
func (k Kmer) ID() uint64 {
	return IDOf(k.Seq)
}

// IDOf hashes an already-canonicalized sequence directly, avoiding the
// allocation of a Kmer wrapper in hot loops.
func IDOf(canonSeq []dna.Base) uint64 {
	raw := make([]byte, len(canonSeq))
	for i := range canonSeq {
		raw[i] = byte(canonSeq[i])
	}
	return cityhash.CityHash64WithSeeds(raw, Seed0, Seed1)
}

// FwdSeq returns the sequence as it appeared before canonicalization,
// reconstructing the forward-strand representation.
func (k Kmer) FwdSeq() []dna.Base {
	if k.Strand == REV {
		return dna.ReverseComplementAndCopy(k.Seq)
	}
	return k.Seq
}

func compareBases(a, b []dna.Base) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// CanonicalHashes returns the canonical-kmer id for every k-length window of
// seq, in order, used to walk the reference for source/sink anchoring.
func CanonicalHashes(seq []dna.Base, k int) ([]uint64, error) {
	if len(seq) < k {
		return nil, errs.GraphInvariantf("sequence of length %d shorter than k=%d", len(seq), k)
	}
	ids := make([]uint64, 0, len(seq)-k+1)
	for i := 0; i+k <= len(seq); i++ {
		ids = append(ids, IDOf(canonicalOnly(seq[i:i+k])))
	}
	return ids, nil
}

func canonicalOnly(seq []dna.Base) []dna.Base {
	canon, _ := Canonicalize(seq)
	return canon
}
