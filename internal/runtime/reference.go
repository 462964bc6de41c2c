package runtime

// Reference is the ES5 8.7 Reference type: the result of evaluating an
// identifier or a property accessor, before GetValue/PutValue resolve
// it. base is either an Environment (identifier reference) or an Object
// (property reference); exactly one of envBase/objBase is set, or
// neither for an unresolvable reference.
type Reference struct {
	envBase  Environment
	objBase  *Object
	primBase *Value // property reference off a primitive (e.g. "x".length)
	name     string
	strict   bool
}

// NewEnvironmentReference builds an identifier Reference resolved
// against an environment record.
func NewEnvironmentReference(env Environment, name string, strict bool) Reference {
	return Reference{envBase: env, name: name, strict: strict}
}

// NewPropertyReference builds a property Reference off an object.
func NewPropertyReference(obj *Object, name string, strict bool) Reference {
	return Reference{objBase: obj, name: name, strict: strict}
}

// NewPrimitivePropertyReference builds a property Reference off a
// primitive base value (ES5 8.7.1 allows GetValue to work against a
// reference whose base is a primitive, by ToObject-ing it transiently).
func NewPrimitivePropertyReference(base Value, name string, strict bool) Reference {
	return Reference{primBase: &base, name: name, strict: strict}
}

// IsUnresolvable reports an identifier reference whose name was not
// found in any environment on the scope chain.
func (r Reference) IsUnresolvable() bool {
	return r.envBase == nil && r.objBase == nil && r.primBase == nil
}

// IsPropertyReference reports whether GetValue/PutValue should use
// [[Get]]/[[Put]] rather than an environment record's binding methods.
func (r Reference) IsPropertyReference() bool {
	return r.objBase != nil || r.primBase != nil
}

func (r Reference) Name() string { return r.name }
func (r Reference) Strict() bool { return r.strict }

// ToObjectCoercer converts a primitive reference base to an object for
// property lookup. Supplied by internal/ecma (which owns ToObject) via
// SetToObjectCoercer to avoid a runtime->ecma import cycle.
var toObjectCoercer func(Value) *Object

// SetToObjectCoercer wires internal/ecma.ToObject into the reference
// resolution path.
func SetToObjectCoercer(fn func(Value) *Object) { toObjectCoercer = fn }

// GetValue implements ES5 8.7.1.
func (r Reference) GetValue() Completion {
	if r.IsUnresolvable() {
		return ThrowReferenceError("%s is not defined", r.name)
	}
	if r.primBase != nil {
		obj := toObjectCoercer(*r.primBase)
		return obj.Get(r.name)
	}
	if r.objBase != nil {
		return r.objBase.Get(r.name)
	}
	return r.envBase.GetBindingValue(r.name, r.strict)
}

// PutValue implements ES5 8.7.2.
func (r Reference) PutValue(v Value) Completion {
	if r.IsUnresolvable() {
		if r.strict {
			return ThrowReferenceError("%s is not defined", r.name)
		}
		// non-strict unresolvable assignment creates a property on the
		// global object; internal/vm's global environment reference
		// handles this by never constructing an unresolvable Reference
		// for plain identifiers in the first place (it always falls
		// back to the global object environment record), so this path
		// is defensive only.
		return ThrowReferenceError("%s is not defined", r.name)
	}
	if r.primBase != nil {
		// ES5 8.7.2 step 3: writes through a primitive base are
		// observably no-ops (CanPut against a fresh wrapper object is
		// always false for inherited, non-configured properties).
		return EmptyCompletion()
	}
	if r.objBase != nil {
		c := r.objBase.Put(r.name, v, r.strict)
		if c.IsThrow() {
			return c
		}
		return EmptyCompletion()
	}
	return r.envBase.SetMutableBinding(r.name, v, r.strict)
}
