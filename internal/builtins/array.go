package builtins

import (
	"strconv"

	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// installArrayConstructor installs a minimal Array.prototype/Array
// constructor: enough for internal/vm's array_decl opcode to give
// constructed arrays a prototype chain. Array.prototype's method suite
// (push, slice, forEach, ...) is out of scope for the core interpreter
// this package serves.
func installArrayConstructor(g, objectProto, functionProto *runtime.Object) *runtime.Object {
	proto := runtime.NewArray(objectProto, 0)

	build := func(args []runtime.Value) runtime.Completion {
		if len(args) == 1 && args[0].IsNumber() {
			return runtime.NormalCompletion(runtime.FromObject(runtime.NewArray(proto, uint32(args[0].NumberValue()))))
		}
		a := runtime.NewArray(proto, uint32(len(args)))
		for i, v := range args {
			a.DefineOwnProperty(strconv.Itoa(i), runtime.DataDescriptor(v, true, true, true), false)
		}
		return runtime.NormalCompletion(runtime.FromObject(a))
	}
	ctor := runtime.NewNativeFunction(functionProto, "Array", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		return build(args)
	})
	ctor.SetNativeConstruct(build)

	proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	ctor.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(proto), false, false, false), false)
	g.DefineOwnProperty("Array", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	return proto
}
