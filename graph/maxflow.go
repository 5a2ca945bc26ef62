package graph

// MaxFlowEnumerator repeatedly walks source-to-sink paths through a
// component with NextPath, biasing each successive walk toward edges the
// previous walks did not touch. It is a simplified, single-flow-unit
// Edmond-Karp variant: rather than tracking residual capacities it scores a
// candidate walk by how many not-yet-marked edges it crosses, and accepts
// the first sink-touching walk with a positive score.
type MaxFlowEnumerator struct {
	nodes       NodeContainer
	k           int
	maxPathLen  int
	bfsLimit    uint32
	tenxMode    bool
	sourceID    uint64
	sinkID      uint64
	markedEdges map[edgeKey]bool
}

// NewMaxFlowEnumerator builds an enumerator over nodes, anchored at
// sourceID/sinkID (ordinarily MockSourceID/MockSinkID).
func NewMaxFlowEnumerator(nodes NodeContainer, k, maxPathLen int, bfsLimit uint32, tenxMode bool, sourceID, sinkID uint64) *MaxFlowEnumerator {
	return &MaxFlowEnumerator{
		nodes:       nodes,
		k:           k,
		maxPathLen:  maxPathLen,
		bfsLimit:    bfsLimit,
		tenxMode:    tenxMode,
		sourceID:    sourceID,
		sinkID:      sinkID,
		markedEdges: make(map[edgeKey]bool),
	}
}

// NextPath performs one bounded-BFS traversal from the source and returns
// the first sink-touching candidate with positive score, or nil once no
// unexplored path remains or the traversal budget (bfsLimit visits) is
// exhausted.
func (m *MaxFlowEnumerator) NextPath() *Path {
	var numVisits uint32
	best := newPathBuilder(m.k, m.tenxMode)
	candidates := []PathBuilder{newPathBuilder(m.k, m.tenxMode)}

	for len(candidates) > 0 {
		numVisits++
		if numVisits > m.bfsLimit {
			break
		}

		cur := candidates[0]

		var lastID uint64
		var lastNode *Node
		if cur.NumNodes() == 0 && numVisits == 1 {
			lastID = m.sourceID
			lastNode = m.nodes[m.sourceID]
		} else {
			lastNode = cur.LastNode()
			lastID = lastNode.ID
		}

		if cur.PathLength() > m.maxPathLen {
			candidates = candidates[1:]
			continue
		}

		if cur.TouchedSink() && cur.Score() > 0 {
			best = cur
			break
		}

		for _, e := range lastNode.Edges {
			if e.DstID == m.sinkID {
				if cur.Score() <= best.Score() {
					continue
				}
				toSink := cur.clone()
				toSink.MarkSinkTouch()
				candidates = append(candidates, toSink)
				continue
			}

			if e.DstID == m.sourceID || e.Kind.SourceStrand() != cur.Direction() {
				continue
			}
			neighbour, ok := m.nodes[e.DstID]
			if !ok {
				continue
			}

			ext := cur.clone()
			if !m.markedEdges[edgeKey{src: lastID, dst: e.DstID, kind: e.Kind}] {
				ext.IncrementScore()
			}
			ext.Extend(lastID, e, neighbour)
			candidates = append(candidates, ext)
		}

		candidates = candidates[1:]
	}

	if best.IsEmpty() {
		return nil
	}
	for k := range best.PathEdges() {
		m.markedEdges[k] = true
	}
	return best.BuildPath()
}
