package runtime

import (
	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/memory"
)

// Class is an object's [[Class]] internal property: an informative
// string ToString's [object Class] branch reads, and the tag the object
// operation v-table dispatches array/string/arguments/function
// overrides on.
type Class string

const (
	ClassObject    Class = "Object"
	ClassArray     Class = "Array"
	ClassFunction  Class = "Function"
	ClassArguments Class = "Arguments"
	ClassError     Class = "Error"
	ClassBoolean   Class = "Boolean"
	ClassNumber    Class = "Number"
	ClassString    Class = "String"
	ClassGlobal    Class = "global"
)

// NativeFunc is the [[Call]] internal method for a native (Go-
// implemented) function object.
type NativeFunc func(this Value, args []Value) Completion

// ConstructFunc is the [[Construct]] internal method for a native
// constructor. Ordinary functions get the default construct behavior
// (ecma.Construct in internal/ecma); native constructors such as Error
// override it directly.
type ConstructFunc func(args []Value) Completion

// Object is the engine's object record: a property list plus the
// internal slots ES5's various object kinds need. Every Value of kind
// KindObject points to one of these.
type Object struct {
	class      Class
	extensible bool
	prototype  *Object

	props    map[string]*PropertyDescriptor
	propKeys []string // insertion order, for for-in and own-property enumeration

	// [[PrimitiveValue]], present on Boolean/Number/String wrapper
	// objects and unset otherwise.
	primitive    Value
	hasPrimitive bool

	// Function internal slots. call is nil for non-callable objects.
	call       NativeFunc
	construct  ConstructFunc
	proto      *bytecode.FunctionProto
	scope      Environment
	paramNames []string

	// Array internal bookkeeping: [[Class]] == Array objects keep
	// `length` as an ordinary writable property (per ES5 15.4.5.1) but
	// array index assignment needs to keep it in sync, so the property
	// itself is special-cased in [[DefineOwnProperty]], not here.

	// handle is this object's nominal allocation handle in the memory
	// substrate (internal/runtime/substrate.go); zero if none was
	// charged (no substrate wired).
	handle memory.CompressedPtr

	// GC bookkeeping: marked/refcount/mayReferenceYounger/next are read
	// and written only by internal/gc.
	gc objectGCState
}

// objectGCState groups the fields internal/gc mutates, kept distinct
// from the ECMA-visible fields above so it's obvious at a glance which
// parts of Object are spec-observable and which are bookkeeping.
type objectGCState struct {
	marked              bool
	refcount            uint32
	mayReferenceYounger bool
	next                *Object // all-objects linked list, threaded at allocation
}

// allocHook is invoked for every object this package creates, letting
// internal/gc thread new objects onto its all-objects list and apply
// the generational "born young" bookkeeping without this package
// importing internal/gc (which itself imports this package to walk the
// graph).
var allocHook func(*Object)

// RegisterAllocHook wires the collector's bookkeeping into every object
// constructor in this package. Called once by internal/gc.NewCollector.
func RegisterAllocHook(fn func(*Object)) { allocHook = fn }

func newObject(class Class, proto *Object) *Object {
	o := &Object{
		class:      class,
		extensible: true,
		prototype:  proto,
		props:      make(map[string]*PropertyDescriptor),
		handle:     accountAlloc(objectRecordSize),
	}
	if allocHook != nil {
		allocHook(o)
	}
	return o
}

// NewObject creates a plain object with the given prototype (nil for
// none) and [[Class]] "Object", extensible per ES5 15.2.2.1.
func NewObject(proto *Object) *Object {
	return newObject(ClassObject, proto)
}

func (o *Object) Class() Class       { return o.class }
func (o *Object) Prototype() *Object { return o.prototype }
func (o *Object) SetPrototype(p *Object) {
	o.prototype = p
	noteReference(o, p)
	o.lcacheInvalidate()
}
func (o *Object) Extensible() bool     { return o.extensible }
func (o *Object) SetExtensible(b bool) { o.extensible = b }
func (o *Object) SetClass(c Class)     { o.class = c }

func (o *Object) PrimitiveValue() (Value, bool) { return o.primitive, o.hasPrimitive }
func (o *Object) SetPrimitiveValue(v Value) {
	o.primitive, o.hasPrimitive = v, true
	if v.IsObject() {
		noteReference(o, v.Object())
	}
}

// OwnPropertyKeys returns own property names in insertion order.
func (o *Object) OwnPropertyKeys() []string {
	out := make([]string, len(o.propKeys))
	copy(out, o.propKeys)
	return out
}

// NewNativeFunction creates a callable object wrapping a Go function,
// per the NativeFnObj pattern: a heap object whose [[Call]] slot is a Go
// closure rather than a bytecode.FunctionProto.
func NewNativeFunction(proto *Object, name string, arity int, fn NativeFunc) *Object {
	f := newObject(ClassFunction, proto)
	f.call = fn
	f.defineInternal("name", String(name))
	f.defineInternal("length", Number(float64(arity)))
	return f
}

// NewFunction creates a callable object backed by a compiled function
// body, to be invoked by internal/vm's call_n opcode handler rather than
// by a Go closure.
func NewFunction(proto *Object, fp *bytecode.FunctionProto, scope Environment) *Object {
	f := newObject(ClassFunction, proto)
	f.proto = fp
	f.scope = scope
	f.paramNames = fp.ParamNames
	f.defineInternal("name", String(fp.Name))
	f.defineInternal("length", Number(float64(len(fp.ParamNames))))
	return f
}

// defineInternal installs a non-enumerable, non-writable, non-
// configurable own property, the shape ES5 uses for built-in properties
// like Function.prototype.name.
func (o *Object) defineInternal(name string, v Value) {
	o.putOwn(name, &PropertyDescriptor{value: v, kind: dataProperty})
}

func (o *Object) putOwn(name string, pd *PropertyDescriptor) {
	if existing, exists := o.props[name]; exists {
		pd.handle = existing.handle
	} else {
		o.propKeys = append(o.propKeys, name)
		pd.handle = accountAlloc(propertyNodeSize)
	}
	o.props[name] = pd
	o.noteDescriptorReferences(pd)
}

// noteDescriptorReferences runs the write barrier for every Object this
// descriptor now holds a persistent reference to, so a minor collection
// after this object has been aged out of the young generation won't skip
// rescanning it.
func (o *Object) noteDescriptorReferences(pd *PropertyDescriptor) {
	if pd.IsDataDescriptor() {
		if pd.value.IsObject() {
			noteReference(o, pd.value.Object())
		}
		return
	}
	noteReference(o, pd.getter)
	noteReference(o, pd.setter)
}

func (o *Object) deleteOwn(name string) {
	pd, exists := o.props[name]
	if !exists {
		return
	}
	accountFree(pd.handle, propertyNodeSize)
	delete(o.props, name)
	for i, k := range o.propKeys {
		if k == name {
			o.propKeys = append(o.propKeys[:i], o.propKeys[i+1:]...)
			break
		}
	}
}

// ReleaseRecord frees this object's own substrate handle and every
// remaining own property's handle. Called by internal/gc's sweep once
// an object is proven unreachable — it never runs for an object Go's
// own collector still considers live, since that collector, not this
// method, is what actually reclaims the Object value itself.
func (o *Object) ReleaseRecord() {
	for _, pd := range o.props {
		accountFree(pd.handle, propertyNodeSize)
	}
	accountFree(o.handle, objectRecordSize)
}

// IsCallable reports whether the object has a [[Call]] internal method,
// covering both native functions and compiled function bodies.
func (o *Object) IsCallable() bool { return o.call != nil || o.proto != nil }

// IsConstructor reports whether the object has a [[Construct]] internal
// method. Every compiled function is constructible in ES5.1; native
// functions are constructible only if they explicitly opt in.
func (o *Object) IsConstructor() bool { return o.construct != nil || o.proto != nil }

// Scope returns the environment a compiled function closed over.
func (o *Object) Scope() Environment { return o.scope }

// FunctionProto returns the compiled function body, or nil for a native
// function.
func (o *Object) FunctionProto() *bytecode.FunctionProto { return o.proto }

// NativeCall returns the Go [[Call]] implementation, or nil for a
// compiled function.
func (o *Object) NativeCall() NativeFunc { return o.call }

// NativeConstruct returns the Go [[Construct]] override, or nil.
func (o *Object) NativeConstruct() ConstructFunc { return o.construct }

// SetNativeConstruct installs a [[Construct]] override, used by
// internal/builtins for Error and the other built-in constructors whose
// constructed object shape native code must control directly.
func (o *Object) SetNativeConstruct(c ConstructFunc) { o.construct = c }

// ParamNames returns the function's formal parameter names, used to
// build the Arguments object and to bind parameters on call.
func (o *Object) ParamNames() []string { return o.paramNames }
