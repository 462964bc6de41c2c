package runtime

import "github.com/tom9nguyen/jerryscript/internal/memory"

// propertyKind distinguishes a named data property from a named
// accessor property, per ES5 8.10.
type propertyKind uint8

const (
	dataProperty propertyKind = iota
	accessorProperty
)

// PropertyDescriptor is a named property's attribute record. A data
// property uses value/writable; an accessor property uses getter/setter.
// enumerable/configurable apply to both kinds.
type PropertyDescriptor struct {
	kind propertyKind

	value    Value
	writable bool

	getter *Object // nil means absent, per ES5 8.10.1
	setter *Object

	enumerable   bool
	configurable bool

	// handle is this descriptor's nominal allocation handle in the
	// memory substrate, set by Object.putOwn when the descriptor is
	// actually installed as an own property — not here, since a
	// descriptor built by DataDescriptor/AccessorDescriptor but never
	// attached to an object should never be charged.
	handle memory.CompressedPtr
}

// DataDescriptor builds a named data property descriptor.
func DataDescriptor(value Value, writable, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		kind: dataProperty, value: value, writable: writable,
		enumerable: enumerable, configurable: configurable,
	}
}

// AccessorDescriptor builds a named accessor property descriptor.
func AccessorDescriptor(getter, setter *Object, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{
		kind: accessorProperty, getter: getter, setter: setter,
		enumerable: enumerable, configurable: configurable,
	}
}

func (pd *PropertyDescriptor) IsDataDescriptor() bool     { return pd != nil && pd.kind == dataProperty }
func (pd *PropertyDescriptor) IsAccessorDescriptor() bool { return pd != nil && pd.kind == accessorProperty }
func (pd *PropertyDescriptor) Value() Value               { return pd.value }
func (pd *PropertyDescriptor) Writable() bool             { return pd.writable }
func (pd *PropertyDescriptor) Getter() *Object            { return pd.getter }
func (pd *PropertyDescriptor) Setter() *Object            { return pd.setter }
func (pd *PropertyDescriptor) Enumerable() bool           { return pd.enumerable }
func (pd *PropertyDescriptor) Configurable() bool         { return pd.configurable }

// sameDescriptor implements the field-by-field comparison
// [[DefineOwnProperty]] uses to decide whether a redefinition is a
// no-op, per ES5 8.12.9 step 6. Every value comparison uses SameValue,
// not ==, so NaN/NaN and +0/-0 are handled as spec.md's design notes
// require.
func sameDescriptor(a, b *PropertyDescriptor) bool {
	if a.kind != b.kind {
		return false
	}
	if a.enumerable != b.enumerable || a.configurable != b.configurable {
		return false
	}
	if a.kind == dataProperty {
		return a.writable == b.writable && SameValue(a.value, b.value)
	}
	return a.getter == b.getter && a.setter == b.setter
}

// --- Object internal methods, ES5 8.12 ---

// lcacheInvalidate is called on every structural mutation (define,
// delete, prototype change) to keep internal/vm's lookup cache coherent.
// It is a no-op until a cache registers itself via OnStructuralChange.
func (o *Object) lcacheInvalidate() {
	for _, cb := range structuralChangeHooks {
		cb(o)
	}
}

var structuralChangeHooks []func(*Object)

// OnStructuralChange registers a callback invoked whenever any object's
// own-property list is mutated. internal/vm's LCache uses this to drop
// entries rather than risk serving a stale (object, name) -> descriptor
// lookup.
func OnStructuralChange(cb func(*Object)) {
	structuralChangeHooks = append(structuralChangeHooks, cb)
}

// GetOwnProperty implements [[GetOwnProperty]], ES5 8.12.1 (the ordinary
// object algorithm; Array/String/Arguments override elsewhere by
// special-casing index-like names before falling back to this).
func (o *Object) GetOwnProperty(name string) *PropertyDescriptor {
	return o.props[name]
}

// GetProperty implements [[GetProperty]], ES5 8.12.2: walk the
// prototype chain until an own property is found.
func (o *Object) GetProperty(name string) *PropertyDescriptor {
	for cur := o; cur != nil; cur = cur.prototype {
		if pd := cur.GetOwnProperty(name); pd != nil {
			return pd
		}
	}
	return nil
}

// Get implements [[Get]], ES5 8.12.3: read a data property's value or
// invoke an accessor's getter with `this` bound to the receiving object
// (the object Get was called on, not the one whose prototype chain held
// the accessor).
func (o *Object) Get(name string) Completion {
	pd := o.GetProperty(name)
	if pd == nil {
		return NormalCompletion(Undefined)
	}
	if pd.IsDataDescriptor() {
		return NormalCompletion(pd.value)
	}
	if pd.getter == nil {
		return NormalCompletion(Undefined)
	}
	return pd.getter.Call(FromObject(o), nil)
}

// CanPut implements [[CanPut]], ES5 8.12.4.
func (o *Object) CanPut(name string) bool {
	pd := o.GetOwnProperty(name)
	if pd != nil {
		if pd.IsAccessorDescriptor() {
			return pd.setter != nil
		}
		return pd.writable
	}
	if o.prototype == nil {
		return o.extensible
	}
	inherited := o.prototype.GetProperty(name)
	if inherited == nil {
		return o.extensible
	}
	if inherited.IsAccessorDescriptor() {
		return inherited.setter != nil
	}
	if !o.extensible {
		return false
	}
	return inherited.writable
}

// Put implements [[Put]], ES5 8.12.5. throwOnFailure is true in strict
// mode, where a failed put throws TypeError instead of silently no-oping.
func (o *Object) Put(name string, v Value, throwOnFailure bool) Completion {
	if !o.CanPut(name) {
		if throwOnFailure {
			return ThrowTypeError("cannot assign to read-only property %q", name)
		}
		return EmptyCompletion()
	}
	ownPd := o.GetOwnProperty(name)
	if ownPd != nil && ownPd.IsDataDescriptor() {
		o.DefineOwnProperty(name, DataDescriptor(v, ownPd.writable, ownPd.enumerable, ownPd.configurable), throwOnFailure)
		return EmptyCompletion()
	}
	// search o itself and then its prototype chain for an accessor to
	// invoke, or fall through to creating a new own data property.
	for cur := o; cur != nil; cur = cur.prototype {
		if pd := cur.GetOwnProperty(name); pd != nil {
			if pd.IsAccessorDescriptor() {
				if pd.setter != nil {
					pd.setter.Call(FromObject(o), []Value{v})
				}
				return EmptyCompletion()
			}
			break
		}
	}
	o.DefineOwnProperty(name, DataDescriptor(v, true, true, true), throwOnFailure)
	return EmptyCompletion()
}

// HasProperty implements [[HasProperty]], ES5 8.12.6.
func (o *Object) HasProperty(name string) bool { return o.GetProperty(name) != nil }

// Delete implements [[Delete]], ES5 8.12.7.
func (o *Object) Delete(name string, throwOnFailure bool) Completion {
	pd := o.GetOwnProperty(name)
	if pd == nil {
		return NormalCompletion(True)
	}
	if !pd.configurable {
		if throwOnFailure {
			return ThrowTypeError("cannot delete non-configurable property %q", name)
		}
		return NormalCompletion(False)
	}
	o.deleteOwn(name)
	o.lcacheInvalidate()
	return NormalCompletion(True)
}

// DefaultValue implements [[DefaultValue]], ES5 8.12.8. hint is "String",
// "Number", or "" (meaning Number, per ES5 8.12.8 step 1's default for
// non-Date objects).
func (o *Object) DefaultValue(hint string) Completion {
	methods := []string{"valueOf", "toString"}
	if hint == "String" {
		methods = []string{"toString", "valueOf"}
	}
	for _, name := range methods {
		c := o.Get(name)
		if c.IsThrow() {
			return c
		}
		if c.Value.IsCallable() {
			result := c.Value.Object().Call(FromObject(o), nil)
			if result.IsThrow() {
				return result
			}
			if !result.Value.IsObject() {
				return NormalCompletion(result.Value)
			}
		}
	}
	return ThrowTypeError("cannot convert object to primitive value")
}

// DefineOwnProperty implements [[DefineOwnProperty]], dispatching to the
// Array override (ES5 15.4.5.1) when the receiver's [[Class]] is
// "Array", and to the ordinary algorithm (ES5 8.12.9) otherwise.
func (o *Object) DefineOwnProperty(name string, desc *PropertyDescriptor, throwOnFailure bool) Completion {
	if o.class == ClassArray {
		return o.defineArrayOwnProperty(name, desc, throwOnFailure)
	}
	return o.ordinaryDefineOwnProperty(name, desc, throwOnFailure)
}

// ordinaryDefineOwnProperty implements [[DefineOwnProperty]], ES5
// 8.12.9: the full reject/accept decision table for redefining an
// existing property or creating a new one, honoring configurability and
// the data/accessor-descriptor split.
func (o *Object) ordinaryDefineOwnProperty(name string, desc *PropertyDescriptor, throwOnFailure bool) Completion {
	current := o.GetOwnProperty(name)
	reject := func() Completion {
		if throwOnFailure {
			return ThrowTypeError("cannot redefine property %q", name)
		}
		return NormalCompletion(False)
	}

	if current == nil {
		if !o.extensible {
			return reject()
		}
		o.putOwn(name, desc)
		o.lcacheInvalidate()
		return NormalCompletion(True)
	}

	if sameDescriptor(current, desc) {
		return NormalCompletion(True)
	}

	if !current.configurable {
		if desc.configurable {
			return reject()
		}
		if desc.enumerable != current.enumerable {
			return reject()
		}
		if current.kind != desc.kind {
			return reject()
		}
		if current.kind == dataProperty {
			if !current.writable && (desc.writable || !SameValue(current.value, desc.value)) {
				return reject()
			}
		} else {
			if desc.getter != current.getter || desc.setter != current.setter {
				return reject()
			}
		}
	}

	o.putOwn(name, desc)
	o.lcacheInvalidate()
	return NormalCompletion(True)
}

// Call implements [[Call]] for both native and compiled function
// objects. Compiled functions are invoked by internal/vm registering a
// dispatcher via SetCallDispatcher; until that happens, calling a
// compiled function from inside internal/runtime itself (e.g. from
// DefaultValue) returns a TypeError, since there is nothing yet to run
// its bytecode.
func (o *Object) Call(this Value, args []Value) Completion {
	if o.call != nil {
		return o.call(this, args)
	}
	if o.proto != nil && callDispatcher != nil {
		return callDispatcher(o, this, args)
	}
	return ThrowTypeError("value is not a function")
}

// callDispatcher is set by internal/vm at engine startup so that
// internal/runtime's own algorithms (DefaultValue, Put through an
// accessor, etc.) can invoke compiled functions without internal/vm's
// interpreter depending back on internal/runtime in a cycle it already
// doesn't have to: runtime defines the seam, vm fills it in.
var callDispatcher func(fn *Object, this Value, args []Value) Completion

// SetCallDispatcher wires the interpreter's call mechanism into the
// object model's [[Call]] internal method.
func SetCallDispatcher(fn func(fn *Object, this Value, args []Value) Completion) {
	callDispatcher = fn
}
