package graph

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vertgenlab/gonomics/dna"
	"golang.org/x/exp/slices"
)

// WriteDot serializes every node of comp to a Graphviz dot file under
// Params.OutGraphsDir, named by component and pipeline stage (e.g.
// "component3.before_pruning.dot"). Coloring follows NodeLabel.FillColor so
// tumor-private, normal-private, and shared segments are visually distinct
// when rendered.
func (g *Graph) WriteDot(comp uint64, suffix string) {
	if g.Params.OutGraphsDir == "" {
		return
	}
	path := filepath.Join(g.Params.OutGraphsDir, fmt.Sprintf("component%d.%s.dot", comp, suffix))
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	ids := make([]uint64, 0, len(g.Nodes))
	for id, n := range g.Nodes {
		if n.ComponentID == comp {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	fmt.Fprintf(f, "digraph component%d {\n", comp)
	for _, id := range ids {
		n := g.Nodes[id]
		label := dna.BasesToString(n.Seq)
		if n.IsMock {
			label = "*"
		}
		fmt.Fprintf(f, "  %d [label=%q fillcolor=%q style=filled];\n", id, label, n.Label.FillColor())
		for _, e := range n.Edges {
			fmt.Fprintf(f, "  %d -> %d [label=%q];\n", id, e.DstID, e.Kind.String())
		}
	}
	fmt.Fprintln(f, "}")
}

// WriteDotPaths writes one dot file per component annotating which nodes
// were touched by the enumerated flow paths, used to visually cross-check
// path enumeration against the pruned graph.
func (g *Graph) WriteDotPaths(comp uint64, touched []map[uint64]bool) {
	if g.Params.OutGraphsDir == "" {
		return
	}
	path := filepath.Join(g.Params.OutGraphsDir, fmt.Sprintf("component%d.paths.dot", comp))
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	union := make(map[uint64]bool)
	for _, t := range touched {
		for id := range t {
			union[id] = true
		}
	}

	fmt.Fprintf(f, "digraph component%d_paths {\n", comp)
	for id, n := range g.Nodes {
		if n.ComponentID != comp {
			continue
		}
		color := "white"
		if union[id] {
			color = "gold"
		}
		fmt.Fprintf(f, "  %d [fillcolor=%q style=filled];\n", id, color)
	}
	fmt.Fprintln(f, "}")
}
