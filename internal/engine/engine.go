// Package engine is the composition root: it wires the memory substrate,
// the collector, the global object, and the interpreter into one runnable
// unit, the way the teacher's own cmd/sentra assembles a VM and its module
// loader behind a single entry point. cmd/engine is the only caller.
package engine

import (
	"fmt"

	"github.com/tom9nguyen/jerryscript/internal/builtins"
	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/config"
	"github.com/tom9nguyen/jerryscript/internal/gc"
	"github.com/tom9nguyen/jerryscript/internal/memory"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
	"github.com/tom9nguyen/jerryscript/internal/vm"
)

// Engine owns every long-lived piece of one running instance: the
// compressed-pointer heap and pool, the collector watching it, the
// global object, and the register interpreter. One Engine loads and
// runs exactly one Program in its lifetime, mirroring spec.md's
// single-program execution model for a memory-constrained device.
type Engine struct {
	cfg    config.Config
	heap   *memory.Heap
	pool   *memory.Pool
	gc     *gc.Collector
	cache  *vm.LCache
	global *builtins.Globals
	interp *vm.Interpreter
}

// New assembles an Engine from cfg: the heap and pool first (so the
// collector has something to reclaim into), then the global object and
// interpreter, then wires the collector as the heap's Reclaimer and the
// interpreter's allocation hook as the collector's object tracker.
func New(cfg config.Config) *Engine {
	heap := memory.NewHeap(cfg.Memory.HeapSizeBytes)
	pool := memory.NewPool(heap)
	runtime.SetSubstrate(pool)

	globals := builtins.New()
	cache := vm.NewLCache()
	interp := vm.New(globals.Object, globals.Env, cache, cfg.Interpreter.MaxCallDepth,
		globals.ObjectProto, globals.FunctionProto, globals.ArrayProto)

	collector := gc.NewCollector(interp)
	gc.SetCacheDrop(cache.DropAll)
	heap.SetReclaimer(collector)

	threshold := uint64(cfg.GC.MinorThresholdBytes)
	interp.SetPressureCheck(func() {
		if heap.Stats().AllocatedBytes >= threshold {
			collector.Collect(false)
		}
	})

	return &Engine{
		cfg:    cfg,
		heap:   heap,
		pool:   pool,
		gc:     collector,
		cache:  cache,
		global: globals,
		interp: interp,
	}
}

// Load decodes a bytecode image produced by bytecode.Encode. It does not
// execute anything; Run does.
func (e *Engine) Load(data []byte) (*bytecode.Program, error) {
	prog, err := bytecode.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("engine: decoding program: %w", err)
	}
	return prog, nil
}

// Run executes prog to completion in the global environment. The
// returned error, when non-nil, is always a *runtime.EngineFault —
// distinct from an ES exception the program itself threw, which comes
// back inside the Completion instead.
func (e *Engine) Run(prog *bytecode.Program) (runtime.Completion, error) {
	return e.interp.Run(prog)
}

// Collect runs an explicit collection at the requested severity,
// independent of the heap's own allocation-failure cascade; cmd/engine
// does not currently expose this, but tests and a future REPL do.
func (e *Engine) Collect(major bool) gc.Stats {
	return e.gc.Collect(major)
}

// MemStats is the snapshot --mem-stats reports: heap, pool, and
// collector bookkeeping as of the moment it's taken.
type MemStats struct {
	Heap             memory.HeapStats
	Pool             memory.PoolStats
	GC               gc.Stats
	GlobalPeakAlloc  uint64
	GlobalPeakWaste  uint64
}

// Stats gathers the current memory and collector bookkeeping.
func (e *Engine) Stats() MemStats {
	peakAlloc, peakWaste := memory.GlobalPeaks()
	return MemStats{
		Heap:            e.heap.Stats(),
		Pool:            e.pool.Stats(),
		GC:              e.gc.StatsSnapshot(),
		GlobalPeakAlloc: peakAlloc,
		GlobalPeakWaste: peakWaste,
	}
}
