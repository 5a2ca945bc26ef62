package window

import (
	"github.com/dasnellings/lancetgo/graph"
	"github.com/guptarohit/asciigraph"
)

// CoverageSparkline renders a window's combined normal+tumor per-base
// coverage as an ASCII line plot, the same terminal-friendly diagnostic
// format the teacher's tooling uses for quick eyeballing of a region
// without opening IGV. Intended for verbose/debug logging only.
func CoverageSparkline(refInfo RefInfoLike, width int) string {
	series := make([]float64, refInfo.Len())
	for i := 0; i < refInfo.Len(); i++ {
		n, t := refInfo.At(i)
		series[i] = float64(bucketTotal(n)) + float64(bucketTotal(t))
	}
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(width))
}

// RefInfoLike is the minimal read needed to sparkline a coverage profile,
// satisfied by transcript.RefInfo without this package importing it just
// for a debug helper.
type RefInfoLike interface {
	Len() int
	At(i int) (normal, tumor graph.HPBucket)
}

func bucketTotal(b graph.HPBucket) int {
	total := 0
	for _, hp := range b {
		total += int(hp.Raw)
	}
	return total
}
