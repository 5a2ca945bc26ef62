package graph

// KmerLabel colors a base by which input(s) it was observed in.
type KmerLabel byte

const (
	LabelReference KmerLabel = 1 << iota
	LabelTumor
	LabelNormal
)

// BaseLabel is the set of KmerLabel flags attached to a single base.
type BaseLabel byte

func (b BaseLabel) Has(l KmerLabel) bool { return b&BaseLabel(l) != 0 }
func (b *BaseLabel) Set(l KmerLabel)     { *b |= BaseLabel(l) }

// NodeLabel is the per-base color set carried by a node, used to compute
// the tumor label ratio that seeds a transcript's preliminary somatic flag.
type NodeLabel struct {
	bases []BaseLabel
}

// NewNodeLabel allocates an all-unlabeled array of length n.
func NewNodeLabel(n int) NodeLabel { return NodeLabel{bases: make([]BaseLabel, n)} }

func (n *NodeLabel) Len() int { return len(n.bases) }

// Push applies label to every base of the node (used when a node is first
// colored by a contributing read/reference pass).
func (n *NodeLabel) Push(label KmerLabel) {
	for i := range n.bases {
		n.bases[i].Set(label)
	}
}

// LabelRatio returns the fraction of bases carrying label.
func (n *NodeLabel) LabelRatio(label KmerLabel) float64 {
	if len(n.bases) == 0 {
		return 0
	}
	count := 0
	for _, b := range n.bases {
		if b.Has(label) {
			count++
		}
	}
	return float64(count) / float64(len(n.bases))
}

// HasLabel reports whether any base carries label.
func (n *NodeLabel) HasLabel(label KmerLabel) bool {
	for _, b := range n.bases {
		if b.Has(label) {
			return true
		}
	}
	return false
}

// FillColor mirrors the source's dot-serialization coloring rule, kept here
// since it is a pure function of the label set.
func (n *NodeLabel) FillColor() string {
	hasRef := n.HasLabel(LabelReference)
	hasTmr := n.HasLabel(LabelTumor)
	hasNml := n.HasLabel(LabelNormal)

	switch {
	case hasRef && hasTmr && hasNml:
		return "lightblue"
	case hasTmr && !hasNml:
		return "orangered"
	case hasNml && !hasTmr:
		if hasRef {
			return "lightblue"
		}
		return "royalblue"
	default:
		return "lightblue"
	}
}

// MergeBuddy merges buddy's label array into n using the shared placement
// rule.
func (n *NodeLabel) MergeBuddy(buddy NodeLabel, dir BuddyPosition, reverseBuddy bool, k int) {
	n.bases = mergeArrays(n.bases, buddy.bases, dir, reverseBuddy, k)
}
