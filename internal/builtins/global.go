// Package builtins wires up the minimal global object the core
// interpreter needs to run at all: the six standard Error constructors
// (required by the object model's own throw paths in internal/runtime),
// Object.defineProperty/getOwnPropertyDescriptor, and a print function
// for the Testable Property scenarios to observe output with.
//
// Every native function here follows the teacher's NativeFnObj shape: a
// Go closure wrapped in a heap object via runtime.NewNativeFunction,
// rather than a bytecode.FunctionProto.
package builtins

import (
	"fmt"
	"math"

	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// Globals is the result of installing the built-in surface: the global
// object itself plus the object environment internal/engine binds the
// top-level scope to.
type Globals struct {
	Object        *runtime.Object
	Env           *runtime.ObjectEnvironment
	ObjectProto   *runtime.Object
	FunctionProto *runtime.Object
	ArrayProto    *runtime.Object
}

// New builds the global object from scratch and registers every seam
// internal/runtime and internal/ecma expose for deferred wiring
// (RegisterErrorPrototype, RegisterWrapperPrototype).
func New() *Globals {
	objectProto := runtime.NewObject(nil)
	functionProto := runtime.NewObject(objectProto)

	g := runtime.NewObject(objectProto)
	g.SetClass(runtime.ClassGlobal)

	installObjectConstructor(g, objectProto, functionProto)
	arrayProto := installArrayConstructor(g, objectProto, functionProto)
	installErrorConstructors(g, objectProto, functionProto)
	installWrapperConstructors(g, objectProto, functionProto)
	installPrint(g, functionProto)

	g.DefineOwnProperty("this", runtime.DataDescriptor(runtime.FromObject(g), false, false, false), false)
	g.DefineOwnProperty("undefined", runtime.DataDescriptor(runtime.Undefined, false, false, false), false)
	g.DefineOwnProperty("NaN", runtime.DataDescriptor(runtime.Number(math.NaN()), false, false, false), false)
	g.DefineOwnProperty("Infinity", runtime.DataDescriptor(runtime.Number(math.Inf(1)), false, false, false), false)

	return &Globals{
		Object:        g,
		Env:           runtime.NewObjectEnvironment(g, nil, false),
		ObjectProto:   objectProto,
		FunctionProto: functionProto,
		ArrayProto:    arrayProto,
	}
}

// installPrint registers a single-argument print(v) native function
// that converts its argument with ecma.ToString and writes it to
// standard output; internal/engine's --mem-stats report uses a separate
// path, this is purely the script-visible I/O primitive.
func installPrint(g, functionProto *runtime.Object) {
	fn := runtime.NewNativeFunction(functionProto, "print", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		var arg runtime.Value = runtime.Undefined
		if len(args) > 0 {
			arg = args[0]
		}
		c := ecma.ToString(arg)
		if c.IsThrow() {
			return c
		}
		fmt.Println(c.Value.StringValue())
		return runtime.NormalCompletion(runtime.Undefined)
	})
	g.DefineOwnProperty("print", runtime.DataDescriptor(runtime.FromObject(fn), true, false, true), false)
}
