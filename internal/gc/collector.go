// Package gc implements the engine's stop-the-world mark-and-sweep
// collector: a full (major) sweep over the whole live object graph, or a
// restricted (minor) sweep over only objects allocated since the last
// major collection, selected by the severity internal/memory's
// allocation-failure cascade requests. internal/runtime.Object carries
// a reference-count field, but nothing in the engine updates it and
// this collector does not read it: liveness is decided by the mark
// phase alone, so cyclic structures are freed once marking finds them
// unreachable from the roots.
package gc

import "github.com/tom9nguyen/jerryscript/internal/runtime"

// RootProvider supplies the collector's root set at the moment a
// collection runs: the global object, the active call frames' live
// register values, and the current lexical environment chain.
// internal/vm implements this once and hands it to NewCollector.
type RootProvider interface {
	Roots() []*runtime.Object
	RootEnvironments() []runtime.Environment
}

// Collector implements memory.Reclaimer and internal/runtime's
// allocation hook, giving it both ends of the graph it manages: it
// learns about every object as it's born, and it's asked to free memory
// when the heap is exhausted.
type Collector struct {
	roots RootProvider

	all   *runtime.Object // head of the all-objects linked list
	young []*runtime.Object // objects allocated since the last major GC
	epoch uint64

	allEnvs runtime.Environment // head of the all-environments linked list

	strongRoots []runtime.Value // explicit keep-alive list for in-flight Completions

	stats Stats
}

// Stats tracks collector-observable counters, read by the CLI's
// --mem-stats reporting path.
type Stats struct {
	MinorCollections int
	MajorCollections int
	ObjectsFreed     int
	LastFreed        int
}

// NewCollector creates a collector and wires it into internal/runtime's
// allocation hook so every object this engine instance creates is
// tracked from birth.
func NewCollector(roots RootProvider) *Collector {
	c := &Collector{roots: roots}
	runtime.RegisterAllocHook(c.track)
	runtime.RegisterEnvAllocHook(c.trackEnv)
	runtime.RegisterWriteBarrierHook(c.barrier)
	return c
}

func (c *Collector) track(o *runtime.Object) {
	o.SetNext(c.all)
	c.all = o
	o.SetMayReferenceYounger(true)
	c.young = append(c.young, o)
}

func (c *Collector) trackEnv(e runtime.Environment) {
	runtime.SetEnvNext(e, c.allEnvs)
	c.allEnvs = e
}

// barrier implements the generational write barrier: if an old object —
// one a prior collection already proved didn't need rescanning — is
// made to reference a young one, its mayReferenceYounger hint must be
// re-set, or mark's minor-collection skip (below) would leave that edge
// undiscovered and a subsequent sweep could free the still-live target.
func (c *Collector) barrier(holder, target *runtime.Object) {
	if holder == nil || target == nil {
		return
	}
	if !holder.MayReferenceYounger() && isYoung(c.young, target) {
		holder.SetMayReferenceYounger(true)
	}
}

// PinStrongRoot adds v to the explicit strong-roots list spec.md's
// design notes call out for in-flight Completion values that aren't yet
// reachable from any register or environment (e.g. a thrown exception
// object being unwound through several call frames' worth of defer-like
// cleanup). UnpinStrongRoot must be called once the value is either
// stored somewhere reachable or genuinely no longer needed.
func (c *Collector) PinStrongRoot(v runtime.Value) { c.strongRoots = append(c.strongRoots, v) }

// UnpinStrongRoot removes the most recently pinned occurrence of v.
func (c *Collector) UnpinStrongRoot(v runtime.Value) {
	for i := len(c.strongRoots) - 1; i >= 0; i-- {
		if sameValue(c.strongRoots[i], v) {
			c.strongRoots = append(c.strongRoots[:i], c.strongRoots[i+1:]...)
			return
		}
	}
}

func sameValue(a, b runtime.Value) bool { return runtime.SameValue(a, b) }

// DropCaches implements memory.Reclaimer's first recovery stage: no-op
// here because this engine's property lookup cache lives in
// internal/vm, which registers its own drop function via SetCacheDrop.
var cacheDropHook func()

// SetCacheDrop wires in internal/vm's LCache.DropAll so the heap
// exhaustion cascade's first, cheapest stage has something to call.
func SetCacheDrop(fn func()) { cacheDropHook = fn }

func (c *Collector) DropCaches() {
	if cacheDropHook != nil {
		cacheDropHook()
	}
}

// MinorGC implements memory.Reclaimer's second recovery stage: mark and
// sweep only the young generation, trusting mayReferenceYounger on
// older objects to tell us which of them might point into it.
func (c *Collector) MinorGC() bool {
	freed := c.collect(false)
	c.stats.MinorCollections++
	c.stats.LastFreed = freed
	c.stats.ObjectsFreed += freed
	return freed > 0
}

// MajorGC implements memory.Reclaimer's third recovery stage: mark and
// sweep the entire object graph.
func (c *Collector) MajorGC() bool {
	freed := c.collect(true)
	c.stats.MajorCollections++
	c.stats.LastFreed = freed
	c.stats.ObjectsFreed += freed
	c.young = c.young[:0]
	return freed > 0
}

// Collect runs a collection at the given severity: Minor restricts the
// sweep to young objects, Major sweeps everything. This is the public
// entry point internal/engine calls directly (as opposed to
// MinorGC/MajorGC, which memory.Heap calls through the Reclaimer
// interface during the allocation-failure cascade).
func (c *Collector) Collect(major bool) Stats {
	if major {
		c.MajorGC()
	} else {
		c.MinorGC()
	}
	return c.stats
}

// StatsSnapshot returns the collector's running counters without
// triggering a collection, for the CLI's --mem-stats report.
func (c *Collector) StatsSnapshot() Stats { return c.stats }

func (c *Collector) collect(major bool) int {
	c.mark(major)
	return c.sweep(major) + c.sweepEnvs()
}

func (c *Collector) mark(major bool) {
	visited := make(map[*runtime.Object]bool)
	var visit func(o *runtime.Object)
	visit = func(o *runtime.Object) {
		if o == nil || visited[o] {
			return
		}
		if !major && !o.MayReferenceYounger() && !isYoung(c.young, o) {
			// an old object that's never been told it might point at a
			// young one is skipped during a minor collection; its
			// subgraph was already proven stable by a prior major scan.
			return
		}
		visited[o] = true
		o.SetMarked(true)
		o.Children(visit)
	}

	for _, root := range c.roots.Roots() {
		visit(root)
	}
	for _, env := range c.roots.RootEnvironments() {
		// every environment in a root's outer chain is reachable, not
		// just the objects it binds; mark the chain itself so sweepEnvs
		// knows not to reclaim it. Unlike the Object graph, environment
		// reachability has no generational distinction: RootEnvironments
		// re-walks each frame's whole chain on every collection anyway.
		for cur := env; cur != nil; cur = cur.Outer() {
			runtime.SetEnvMarked(cur, true)
		}
		runtime.EnvironmentChildren(env, visit)
	}
	for _, v := range c.strongRoots {
		if v.IsObject() {
			visit(v.Object())
		}
	}
}

func isYoung(young []*runtime.Object, o *runtime.Object) bool {
	for _, y := range young {
		if y == o {
			return true
		}
	}
	return false
}

func (c *Collector) sweep(major bool) int {
	freed := 0
	var prev *runtime.Object
	cur := c.all
	for cur != nil {
		next := cur.Next()
		keep := true
		if !major && !isYoung(c.young, cur) {
			// leave old, unmarked-this-pass objects alone during a
			// minor collection; they weren't candidates for freeing.
		} else if cur.Marked() {
			cur.SetMarked(false)
			cur.SetMayReferenceYounger(false)
		} else {
			keep = false
			freed++
			cur.ReleaseRecord()
		}
		if keep {
			if prev != nil {
				prev.SetNext(cur)
			} else {
				c.all = cur
			}
			prev = cur
		}
		cur = next
	}
	if prev != nil {
		prev.SetNext(nil)
	} else {
		c.all = nil
	}
	return freed
}

// sweepEnvs reclaims every environment record that wasn't marked
// reachable during this pass. Unlike sweep, this always walks the full
// list: environments have no generational fast path, since mark already
// re-walks every root's whole outer chain on every collection.
func (c *Collector) sweepEnvs() int {
	freed := 0
	var prev runtime.Environment
	cur := c.allEnvs
	for cur != nil {
		next := runtime.EnvNext(cur)
		keep := true
		if runtime.EnvMarked(cur) {
			runtime.SetEnvMarked(cur, false)
		} else {
			keep = false
			freed++
			runtime.ReleaseEnvRecord(cur)
		}
		if keep {
			if prev != nil {
				runtime.SetEnvNext(prev, cur)
			} else {
				c.allEnvs = cur
			}
			prev = cur
		}
		cur = next
	}
	if prev != nil {
		runtime.SetEnvNext(prev, nil)
	} else {
		c.allEnvs = nil
	}
	return freed
}
