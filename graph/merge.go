package graph

// BuddyPosition records which side of the receiving node a merge buddy
// attaches to. It is derived from the connecting edge's source strand: a
// FWD source strand places the buddy at the BACK, REV places it at FRONT.
type BuddyPosition byte

const (
	FRONT BuddyPosition = iota
	BACK
)

func reverseSlice[T any](s []T) []T {
	out := make([]T, len(s))
	for i := range s {
		out[len(s)-1-i] = s[i]
	}
	return out
}

// mergeArrays concatenates a (the receiving node's own per-position array)
// with b (the buddy's), discarding the (k-1)-length overlap from exactly
// one side: from a's front when the buddy attaches at FRONT (buddy comes
// first), or from b's front when the buddy attaches at BACK (buddy comes
// last). reverseBuddy flips b's ordering before concatenation, without
// altering the values themselves -- callers merging sequence data must
// complement separately; callers merging position-indexed coverage/label
// data must not.
func mergeArrays[T any](a, b []T, dir BuddyPosition, reverseBuddy bool, k int) []T {
	if reverseBuddy {
		b = reverseSlice(b)
	}
	overlap := k - 1
	if overlap < 0 {
		overlap = 0
	}

	switch dir {
	case FRONT:
		trim := overlap
		if trim > len(a) {
			trim = len(a)
		}
		kept := a[trim:]
		out := make([]T, 0, len(b)+len(kept))
		out = append(out, b...)
		out = append(out, kept...)
		return out
	default: // BACK
		trim := overlap
		if trim > len(b) {
			trim = len(b)
		}
		tail := b[trim:]
		out := make([]T, 0, len(a)+len(tail))
		out = append(out, a...)
		out = append(out, tail...)
		return out
	}
}
