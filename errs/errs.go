// Package errs defines the tagged error kinds propagated across the
// assembler core. Cycle and repeat-kmer detection are pipeline signals, not
// errors, and are represented as plain booleans by their callers instead of
// living in this package.
package errs

import "fmt"

// AlignmentError wraps a failure from the global aligner. It is fatal for
// the window that produced it but never for the process.
type AlignmentError struct {
	Window string
	Ref    string
	Qry    string
	Err    error
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("alignment failed in window %s (ref=%q qry=%q): %v", e.Window, e.Ref, e.Qry, e.Err)
}

func (e *AlignmentError) Unwrap() error { return e.Err }

func Alignment(window, ref, qry string, err error) *AlignmentError {
	return &AlignmentError{Window: window, Ref: ref, Qry: qry, Err: err}
}

// GraphInvariantError signals a broken assumption in the colored de Bruijn
// graph model. It panics through GraphInvariant/GraphInvariantf so that
// callers get debug-build-style hard failures unless they explicitly recover
// at a window boundary, mirroring the source's assert-then-drop-window
// behavior at the MicroAssembler layer.
type GraphInvariantError struct {
	msg string
}

func (e *GraphInvariantError) Error() string { return "graph invariant violated: " + e.msg }

// GraphInvariant panics with a GraphInvariantError. Callers that want the
// release-build behavior of "log and drop the window" should recover at
// their processing boundary and convert the recovered value back into an
// error with AsError.
func GraphInvariant(msg string) {
	panic(&GraphInvariantError{msg: msg})
}

func GraphInvariantf(format string, args ...any) error {
	return &GraphInvariantError{msg: fmt.Sprintf(format, args...)}
}

// AsError converts a value recovered from a panic into an error, preserving
// GraphInvariantError identity when applicable.
func AsError(recovered any) error {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", recovered)
}

// ErrQueueClosed signals a worker that the input window queue has been
// closed and drained; it is not a failure.
var ErrQueueClosed = fmt.Errorf("window queue closed")
