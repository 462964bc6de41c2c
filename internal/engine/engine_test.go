package engine

import (
	"testing"

	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/config"
)

// objectFloodProgram assembles a program that allocates count fresh
// empty objects into the same register in a loop, so every iteration
// but the last leaves its predecessor unreachable the moment the next
// object_decl overwrites the register. Nothing outlives the Run call:
// once it returns, the interpreter's only root is the global object.
func objectFloodProgram(count int) *bytecode.Program {
	a := bytecode.NewAssembler()
	one := byte(1)
	limit := a.AddNumberLiteral(float64(count))

	const (
		rCounter = 0
		rLimit   = 1
		rOne     = 2
		rObj     = 3
		rCond    = 4
	)

	a.Emit(bytecode.OpAssignment, rCounter, 0, byte(bytecode.AssignSmallInt))
	a.Emit(bytecode.OpAssignment, rLimit, byte(limit), byte(bytecode.AssignNumber))
	a.Emit(bytecode.OpAssignment, rOne, one, byte(bytecode.AssignSmallInt))

	loopStart := a.Here()
	a.EmitABx(bytecode.OpObjectDecl, rObj, 0)
	a.Emit(bytecode.OpAdd, rCounter, rCounter, rOne)
	a.Emit(bytecode.OpLess, rCond, rCounter, rLimit)
	jumpPos := a.EmitAsBx(bytecode.OpJumpIfTrue, rCond, 0)
	a.Patch(jumpPos, bytecode.CreateAsBx(bytecode.OpJumpIfTrue, rCond, int16(loopStart-(jumpPos+1))))

	a.Emit(bytecode.OpRetValue, rObj, 0, 0)
	return a.Program()
}

// TestFullGCReclaimsFloodedHeap exercises TESTABLE PROPERTIES §8
// scenario 5: drive the heap to high occupancy with live allocation
// traffic, drop every reference to what was allocated, run a full
// collection, and confirm AllocatedBytes returns to its pre-flood
// baseline rather than sitting wherever the allocation cascade left it.
func TestFullGCReclaimsFloodedHeap(t *testing.T) {
	cfg := config.Default()
	cfg.Memory.HeapSizeBytes = 1 << 20
	// Disable the proactive pressure-triggered minor collection so the
	// flood below genuinely pushes the heap to high occupancy before
	// any collection runs, rather than being trimmed mid-flight.
	cfg.GC.MinorThresholdBytes = 1 << 31

	e := New(cfg)
	baseline := e.Stats().Heap.AllocatedBytes

	prog := objectFloodProgram(4000)
	if _, err := e.Run(prog); err != nil {
		t.Fatalf("Run: %v", err)
	}

	flooded := e.Stats().Heap.AllocatedBytes
	if flooded <= baseline {
		t.Fatalf("expected the flood to raise allocated bytes above baseline %d, got %d", baseline, flooded)
	}

	e.Collect(true)

	reclaimed := e.Stats().Heap.AllocatedBytes
	if reclaimed != baseline {
		t.Fatalf("expected a full collection to return allocated bytes to baseline %d, got %d (flooded was %d)", baseline, reclaimed, flooded)
	}
}
