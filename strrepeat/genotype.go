package strrepeat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// StutterProb and StutterMismatchProb are the reference stutter model's
// default priors: the probability a read's apparent repeat count differs
// from its true allele by slippage, and the floor below which no
// per-allele read likelihood is allowed to fall.
const (
	StutterProb         = 0.15
	StutterMismatchProb = 0.01
)

// BestSingleGenotype picks the diploid genotype (a pair of unit counts)
// that best explains observedUnitCounts under a Poisson stutter model,
// trying every unordered pair of observed counts (homozygous pairs
// included) as candidate alleles.
func BestSingleGenotype(observedUnitCounts []int, poissonLambda float64) (genotype []int, logLik float64) {
	alleles := uniqueSorted(observedUnitCounts)
	genotypes := pairwise(alleles)
	if len(genotypes) == 0 && len(alleles) == 1 {
		genotypes = [][]int{{alleles[0], alleles[0]}}
	}

	best := -math.MaxFloat64
	var bestGenotype []int
	for _, g := range genotypes {
		ll := genotypeLogLikelihood(observedUnitCounts, g, poissonLambda)
		if ll > best {
			best = ll
			bestGenotype = g
		}
	}
	return bestGenotype, best
}

func genotypeLogLikelihood(reads []int, genotype []int, poissonLambda float64) float64 {
	var ll float64
	for _, r := range reads {
		ll += math.Log(readLikelihood(r, genotype, poissonLambda))
	}
	return ll
}

// readLikelihood is the probability that an observed unit count came from
// one of genotype's two alleles: an exact match costs 1-StutterProb, a
// slipped-by-N-units match costs a Poisson-weighted share of StutterProb,
// and any per-allele likelihood below StutterMismatchProb is raised to it.
func readLikelihood(unitCount int, genotype []int, poissonLambda float64) float64 {
	var maxLik float64
	p := distuv.Poisson{Lambda: poissonLambda}
	for _, allele := range genotype {
		diff := unitCount - allele
		if diff < 0 {
			diff = -diff
		}
		var lik float64
		switch {
		case diff == 0:
			lik = 1 - StutterProb
		default:
			lik = (StutterProb / 2) * p.Prob(float64(diff))
		}
		if lik < StutterMismatchProb {
			lik = StutterMismatchProb
		}
		if lik > maxLik {
			maxLik = lik
		}
	}
	return maxLik
}

func uniqueSorted(s []int) []int {
	cp := append([]int(nil), s...)
	sort.Ints(cp)
	out := cp[:0]
	prev := -1
	for _, v := range cp {
		if v != prev {
			out = append(out, v)
			prev = v
		}
	}
	return out
}

func pairwise(alleles []int) [][]int {
	var out [][]int
	for i := 0; i < len(alleles); i++ {
		for j := i; j < len(alleles); j++ {
			out = append(out, []int{alleles[i], alleles[j]})
		}
	}
	return out
}
