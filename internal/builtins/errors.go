package builtins

import (
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// errorKinds lists the five standard Error subtypes plus generic Error,
// the set internal/runtime.errorPrototypes expects RegisterErrorPrototype
// to have been called for before its own [[Put]]/[[DefineOwnProperty]]
// throw paths run.
var errorKinds = []string{"Error", "TypeError", "RangeError", "ReferenceError", "SyntaxError", "URIError"}

// installErrorConstructors builds Error.prototype and each subtype's
// prototype (chained to Error.prototype, per ES5 15.11.6/15.11.7.9),
// registers them with internal/runtime, and installs the six
// constructor function objects on the global object.
func installErrorConstructors(g, objectProto, functionProto *runtime.Object) {
	errorProto := runtime.NewObject(objectProto)
	errorProto.DefineOwnProperty("name", runtime.DataDescriptor(runtime.String("Error"), true, false, true), false)
	errorProto.DefineOwnProperty("message", runtime.DataDescriptor(runtime.String(""), true, false, true), false)
	errorProto.DefineOwnProperty("toString", runtime.DataDescriptor(runtime.FromObject(
		runtime.NewNativeFunction(functionProto, "toString", 0, errorToString)), true, false, true), false)
	runtime.RegisterErrorPrototype("Error", errorProto)

	ctor := makeErrorConstructor(functionProto, errorProto, "Error")
	errorProto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	g.DefineOwnProperty("Error", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)

	for _, kind := range errorKinds[1:] {
		proto := runtime.NewObject(errorProto)
		proto.DefineOwnProperty("name", runtime.DataDescriptor(runtime.String(kind), true, false, true), false)
		runtime.RegisterErrorPrototype(kind, proto)

		kindCtor := makeErrorConstructor(functionProto, proto, kind)
		proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(kindCtor), true, false, true), false)
		g.DefineOwnProperty(kind, runtime.DataDescriptor(runtime.FromObject(kindCtor), true, false, true), false)
	}
}

// makeErrorConstructor builds a single Error subtype's constructor
// function, callable both as `new TypeError(msg)` and as a bare
// `TypeError(msg)` (ES5 15.11.1.1 treats the two identically).
func makeErrorConstructor(functionProto, proto *runtime.Object, kind string) *runtime.Object {
	build := func(args []runtime.Value) runtime.Completion {
		o := runtime.NewObject(proto)
		o.SetClass(runtime.ClassError)
		if len(args) > 0 && !args[0].IsUndefined() {
			c := ecma.ToString(args[0])
			if c.IsThrow() {
				return c
			}
			o.DefineOwnProperty("message", runtime.DataDescriptor(c.Value, true, false, true), false)
		}
		return runtime.NormalCompletion(runtime.FromObject(o))
	}
	ctor := runtime.NewNativeFunction(functionProto, kind, 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		return build(args)
	})
	ctor.SetNativeConstruct(build)
	return ctor
}

// errorToString implements ES5 15.11.4.4: "name: message", or just
// name when message is empty.
func errorToString(this runtime.Value, args []runtime.Value) runtime.Completion {
	if !this.IsObject() {
		return runtime.ThrowTypeError("Error.prototype.toString called on non-object")
	}
	o := this.Object()
	nameC := o.Get("name")
	if nameC.IsThrow() {
		return nameC
	}
	name := "Error"
	if !nameC.Value.IsUndefined() {
		nc := ecma.ToString(nameC.Value)
		if nc.IsThrow() {
			return nc
		}
		name = nc.Value.StringValue()
	}
	msgC := o.Get("message")
	if msgC.IsThrow() {
		return msgC
	}
	msg := ""
	if !msgC.Value.IsUndefined() {
		mc := ecma.ToString(msgC.Value)
		if mc.IsThrow() {
			return mc
		}
		msg = mc.Value.StringValue()
	}
	if msg == "" {
		return runtime.NormalCompletion(runtime.String(name))
	}
	return runtime.NormalCompletion(runtime.String(name + ": " + msg))
}
