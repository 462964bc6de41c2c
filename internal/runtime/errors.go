package runtime

import "fmt"

// errorPrototypes holds the five standard Error subtype prototypes
// (TypeError, RangeError, ReferenceError, SyntaxError, URIError) plus
// plain Error, registered by internal/builtins at engine startup. The
// object model's own internal methods need to be able to throw a
// TypeError (e.g. [[Put]] in strict mode against a non-writable
// property) without importing internal/builtins, which would cycle
// back into this package; RegisterErrorPrototype is the seam that
// breaks the cycle, the same role memory.Reclaimer plays for the heap.
var errorPrototypes = map[string]*Object{}

// RegisterErrorPrototype wires the prototype object for a standard
// error kind ("TypeError", "RangeError", "ReferenceError",
// "SyntaxError", "URIError", "Error"). Called once by internal/builtins
// during global object setup.
func RegisterErrorPrototype(kind string, proto *Object) {
	errorPrototypes[kind] = proto
}

// NewError constructs an Error-class object of the given standard kind
// with the given message, using whatever prototype internal/builtins
// has registered for that kind. If none was registered (e.g. in a unit
// test that exercises internal/runtime in isolation) the object gets no
// prototype; it is still usable as a thrown value.
func NewError(kind, message string) *Object {
	o := NewObject(errorPrototypes[kind])
	o.SetClass(ClassError)
	o.putOwn("message", &PropertyDescriptor{
		kind: dataProperty, value: String(message),
		writable: true, configurable: true,
	})
	o.putOwn("name", &PropertyDescriptor{
		kind: dataProperty, value: String(kind),
		writable: true, configurable: true,
	})
	return o
}

// ThrowTypeError is a convenience used throughout the object operations
// in property.go wherever ES5 says "Throw a TypeError exception".
func ThrowTypeError(format string, args ...any) Completion {
	return ThrowCompletion(FromObject(NewError("TypeError", fmt.Sprintf(format, args...))))
}

// ThrowReferenceError is the reference-resolution counterpart of
// ThrowTypeError, used by GetValue/PutValue and the environment record
// SetMutableBinding/GetBindingValue failure paths.
func ThrowReferenceError(format string, args ...any) Completion {
	return ThrowCompletion(FromObject(NewError("ReferenceError", fmt.Sprintf(format, args...))))
}

// ThrowRangeError is used by array length and numeric-conversion
// boundary checks.
func ThrowRangeError(format string, args ...any) Completion {
	return ThrowCompletion(FromObject(NewError("RangeError", fmt.Sprintf(format, args...))))
}
