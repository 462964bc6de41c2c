package runtime

import "github.com/tom9nguyen/jerryscript/internal/memory"

// Nominal record sizes charged against the memory substrate for each
// kind of record this package allocates, rounded up to the pool's fixed
// chunk classes (16/32/64/128 bytes) even though the record itself
// lives as an ordinary Go value of a different actual size: the
// substrate tracks allocation pressure and recovery behavior, not
// Go's own memory layout, the same accounting-over-Go's-allocator
// relationship internal/memory's own package doc describes.
const (
	objectRecordSize = 64
	propertyNodeSize = 16
	envRecordSize    = 32
)

// allocator is the pool every Object, PropertyDescriptor, and
// Environment record accounts its nominal size against. Nil until
// internal/engine wires one in with SetSubstrate, in which case
// accountAlloc/accountFree are no-ops — the path internal/vm's own
// dispatch-loop unit tests take when they build an interpreter directly
// rather than through internal/engine.
var allocator *memory.Pool

// SetSubstrate wires the pool that backs every subsequent Object,
// PropertyDescriptor, and Environment's accounting handle. Called once
// by internal/engine.New; never unset for an engine instance's lifetime.
func SetSubstrate(p *memory.Pool) { allocator = p }

// accountAlloc charges size bytes against the substrate and returns the
// resulting handle, or the null handle if no substrate is wired. A
// shortfall that survives internal/memory.Heap's own drop-caches/
// minor-GC/major-GC recovery cascade is fatal: rather than threading an
// error through every object/property/environment constructor, it's
// raised as a typed panic and recovered exactly once, at
// internal/vm.Interpreter.RunFromPos.
func accountAlloc(size uint32) memory.CompressedPtr {
	if allocator == nil {
		return 0
	}
	cp, err := allocator.Alloc(size)
	if err != nil {
		panic(WrapFault(FaultOutOfMemory, err, "allocating a runtime record"))
	}
	return cp
}

// accountFree releases a handle previously returned by accountAlloc. A
// null handle — no substrate wired, or the record was never charged —
// is a no-op.
func accountFree(cp memory.CompressedPtr, size uint32) {
	if allocator == nil || cp == 0 {
		return
	}
	allocator.Free(cp, size)
}
