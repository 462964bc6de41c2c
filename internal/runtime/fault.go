package runtime

import "github.com/pkg/errors"

// FaultKind classifies an EngineFault: a condition the engine cannot
// turn into an ordinary ES exception because the failure is in the
// substrate exception handling itself depends on (the heap that would
// back a new Error object, or an invariant the bytecode decoder already
// promised held).
type FaultKind string

const (
	// FaultOutOfMemory is raised when memory.Heap's allocation-failure
	// cascade exhausts drop-caches/minor-GC/major-GC and still can't
	// satisfy a request.
	FaultOutOfMemory FaultKind = "out_of_memory"
	// FaultAssertion marks an internal invariant violation — a state the
	// interpreter's own bookkeeping promised could not occur.
	FaultAssertion FaultKind = "assertion_violation"
	// FaultCorruptProgram marks a loaded bytecode image that decoded
	// successfully but references an out-of-range literal, function, or
	// try-region index once execution reaches it.
	FaultCorruptProgram FaultKind = "corrupt_program"
)

// EngineFault is the engine-internal counterpart to a thrown ES
// exception: a fatal condition cmd/engine reports and exits on, rather
// than something interpreter.go's dispatch loop can unwind through
// try/catch. Its shape — a kind tag plus a wrapped cause — follows
// sentra's own SentraError, adapted from a compile-time diagnostic (kind
// plus source location) to a runtime one (kind plus the lower-level
// error, if any, that triggered it), and uses the same
// github.com/pkg/errors Wrap/Cause machinery sentra's error plumbing
// builds on.
type EngineFault struct {
	Kind    FaultKind
	Message string
	cause   error
}

// NewFault builds a fault with no underlying cause.
func NewFault(kind FaultKind, message string) *EngineFault {
	return &EngineFault{Kind: kind, Message: message, cause: errors.New(message)}
}

// WrapFault builds a fault around a lower-level error — typically
// memory.ErrOutOfMemory bubbling up out of Heap.Alloc.
func WrapFault(kind FaultKind, cause error, message string) *EngineFault {
	return &EngineFault{Kind: kind, Message: message, cause: errors.Wrap(cause, message)}
}

func (f *EngineFault) Error() string { return f.cause.Error() }

// Cause returns the innermost wrapped error, per github.com/pkg/errors'
// Cause convention.
func (f *EngineFault) Cause() error { return errors.Cause(f.cause) }
