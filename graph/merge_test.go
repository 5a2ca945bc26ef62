package graph

import "testing"

func TestMergeArraysBackTrimsOverlapFromBuddy(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := []int{3, 4, 5, 6}
	// k-1 = 2, so the first two elements of b ([3,4]) are the claimed overlap.
	out := mergeArrays(a, b, BACK, false, 3)
	want := []int{1, 2, 3, 4, 5, 6}
	if !intsEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestMergeArraysFrontTrimsOverlapFromReceiver(t *testing.T) {
	a := []int{3, 4, 5, 6}
	b := []int{1, 2, 3, 4}
	// buddy attaches at FRONT: buddy comes first, receiver's own front overlap is dropped.
	out := mergeArrays(a, b, FRONT, false, 3)
	want := []int{1, 2, 3, 4, 5, 6}
	if !intsEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestMergeArraysReversesBuddyWhenRequested(t *testing.T) {
	a := []int{1, 2}
	b := []int{5, 4, 3}
	out := mergeArrays(a, b, BACK, true, 1)
	// reversed b = [3,4,5]; k-1=0 overlap, so nothing trimmed.
	want := []int{1, 2, 3, 4, 5}
	if !intsEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestMergeArraysZeroOverlap(t *testing.T) {
	a := []int{1, 2}
	b := []int{3, 4}
	out := mergeArrays(a, b, BACK, false, 1)
	want := []int{1, 2, 3, 4}
	if !intsEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestMergeArraysOverlapLargerThanBuddy(t *testing.T) {
	a := []int{1, 2, 3}
	b := []int{9}
	out := mergeArrays(a, b, BACK, false, 5)
	want := []int{1, 2, 3}
	if !intsEqual(out, want) {
		t.Errorf("overlap larger than buddy should drop all of buddy, got %v", out)
	}
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
