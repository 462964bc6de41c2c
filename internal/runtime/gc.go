package runtime

import "github.com/tom9nguyen/jerryscript/internal/memory"

// The methods in this file are the seam internal/gc uses to walk and
// mark the object graph. They're kept separate from object.go's
// ECMA-visible surface so it reads clearly as bookkeeping, not spec
// behavior — mirroring the teacher's own Object header (Marked/Next)
// sitting apart from each heap type's payload fields.

func (o *Object) Marked() bool    { return o.gc.marked }
func (o *Object) SetMarked(m bool) { o.gc.marked = m }

func (o *Object) RefCount() uint32 { return o.gc.refcount }
func (o *Object) IncRef()          { o.gc.refcount++ }
func (o *Object) DecRef() {
	if o.gc.refcount > 0 {
		o.gc.refcount--
	}
}

func (o *Object) MayReferenceYounger() bool     { return o.gc.mayReferenceYounger }
func (o *Object) SetMayReferenceYounger(b bool) { o.gc.mayReferenceYounger = b }

func (o *Object) Next() *Object     { return o.gc.next }
func (o *Object) SetNext(n *Object) { o.gc.next = n }

// writeBarrierHook is invoked whenever a post-construction mutation
// establishes a persistent Object-to-Object reference, letting
// internal/gc re-flag an old (already-scanned) holder as
// mayReferenceYounger if the mutation points it at a young object —
// without this, a later minor collection's generational skip would
// leave the new edge undiscovered and could sweep a still-live target.
var writeBarrierHook func(holder, target *Object)

// RegisterWriteBarrierHook wires the collector's generational write
// barrier into every place this package records an Object-to-Object
// reference after construction. Called once by internal/gc.NewCollector,
// mirroring RegisterAllocHook's wiring.
func RegisterWriteBarrierHook(fn func(holder, target *Object)) { writeBarrierHook = fn }

// noteReference reports that holder now references target. A nil
// target or an unwired hook are both no-ops, so call sites don't need
// to guard against an absent getter/setter/prototype themselves.
func noteReference(holder, target *Object) {
	if target == nil || writeBarrierHook == nil {
		return
	}
	writeBarrierHook(holder, target)
}

// Children calls visit for every Value/Object this object directly
// references: its prototype, every property's value/getter/setter, its
// primitive wrapper value if any, and its closed-over scope chain's
// binding values. internal/gc's mark phase uses this to traverse the
// graph without reaching into Object's private fields itself.
func (o *Object) Children(visit func(*Object)) {
	if o.prototype != nil {
		visit(o.prototype)
	}
	for _, pd := range o.props {
		if pd.IsDataDescriptor() {
			if pd.value.IsObject() {
				visit(pd.value.Object())
			}
		} else {
			if pd.getter != nil {
				visit(pd.getter)
			}
			if pd.setter != nil {
				visit(pd.setter)
			}
		}
	}
	if o.hasPrimitive && o.primitive.IsObject() {
		visit(o.primitive.Object())
	}
	if o.scope != nil {
		// the closed-over chain's records are marked reachable too, so
		// internal/gc's sweepEnvs keeps them while the closure lives.
		for cur := o.scope; cur != nil; cur = cur.Outer() {
			SetEnvMarked(cur, true)
		}
		EnvironmentChildren(o.scope, visit)
	}
}

// envAllocHook is invoked for every Environment this package creates,
// mirroring allocHook: it lets internal/gc thread new environment
// records onto its own tracked list so their substrate handles are
// reclaimed once the environment itself becomes unreachable, rather
// than leaking for the life of the process.
var envAllocHook func(Environment)

// RegisterEnvAllocHook wires the collector's environment tracking in.
// Called once by internal/gc.NewCollector.
func RegisterEnvAllocHook(fn func(Environment)) { envAllocHook = fn }

// envGCState is the bookkeeping internal/gc needs to track and reclaim
// an environment record, mirroring objectGCState. Both concrete
// Environment implementations embed one and expose it through the
// unexported envGCer interface below.
type envGCState struct {
	handle memory.CompressedPtr
	marked bool
	next   Environment
}

type envGCer interface {
	envGC() *envGCState
}

// EnvMarked, SetEnvMarked, EnvNext, SetEnvNext, and ReleaseEnvRecord are
// internal/gc's seam onto Environment's bookkeeping, mirroring Object's
// Marked/SetMarked/Next/SetNext/ReleaseRecord — implemented as free
// functions rather than interface methods because Environment's own
// interface is the ES5-visible one, not a place for GC plumbing.
func EnvMarked(e Environment) bool      { return e.(envGCer).envGC().marked }
func SetEnvMarked(e Environment, m bool) { e.(envGCer).envGC().marked = m }
func EnvNext(e Environment) Environment  { return e.(envGCer).envGC().next }
func SetEnvNext(e Environment, n Environment) { e.(envGCer).envGC().next = n }

// ReleaseEnvRecord frees an environment's substrate handle once
// internal/gc proves it unreachable.
func ReleaseEnvRecord(e Environment) {
	accountFree(e.(envGCer).envGC().handle, envRecordSize)
}

// EnvironmentChildren calls visit for every object referenced by an
// environment record: its bound object (object environments) or its
// bindings' values (declarative environments), plus its outer
// environment's own children, transitively.
func EnvironmentChildren(env Environment, visit func(*Object)) {
	for cur := env; cur != nil; cur = cur.Outer() {
		switch e := cur.(type) {
		case *ObjectEnvironment:
			if e.bindingObj != nil {
				visit(e.bindingObj)
			}
		case *DeclarativeEnvironment:
			for _, b := range e.bindings {
				if b.initialized && b.value.IsObject() {
					visit(b.value.Object())
				}
			}
		}
	}
}
