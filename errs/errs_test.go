package errs

import (
	"errors"
	"testing"
)

func TestAlignmentErrorWrapsUnderlying(t *testing.T) {
	inner := errors.New("boom")
	e := Alignment("chr1:1-100", "ACGT", "ACGG", inner)
	if !errors.Is(e, inner) {
		t.Error("AlignmentError should unwrap to the original error")
	}
	if e.Error() == "" {
		t.Error("AlignmentError.Error() should not be empty")
	}
}

func TestGraphInvariantPanicsAndRecovers(t *testing.T) {
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		GraphInvariant("bad state")
	}()
	if recovered == nil {
		t.Fatal("expected GraphInvariant to panic")
	}
	err := AsError(recovered)
	if err == nil {
		t.Fatal("AsError should convert the recovered panic into an error")
	}
	var gie *GraphInvariantError
	if !errors.As(err, &gie) {
		t.Errorf("expected a *GraphInvariantError, got %T", err)
	}
}

func TestAsErrorOnNonErrorPanic(t *testing.T) {
	err := AsError("some string panic")
	if err == nil {
		t.Error("AsError should wrap a non-error panic value into an error")
	}
}

func TestAsErrorOnNil(t *testing.T) {
	if AsError(nil) != nil {
		t.Error("AsError(nil) should return nil")
	}
}

func TestGraphInvariantfReturnsError(t *testing.T) {
	err := GraphInvariantf("node %d missing", 7)
	if err == nil {
		t.Fatal("expected a non-nil error")
	}
	var gie *GraphInvariantError
	if !errors.As(err, &gie) {
		t.Errorf("expected *GraphInvariantError, got %T", err)
	}
}
