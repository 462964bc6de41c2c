package builtins

import (
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// installWrapperConstructors registers Boolean.prototype/Number.prototype/
// String.prototype with internal/ecma.ToObject (the seam ecma.conversion.go
// calls RegisterWrapperPrototype through) and installs the three
// constructor functions, callable both as conversion functions
// (`Number("3")`) and as object constructors (`new Number("3")`).
func installWrapperConstructors(g, objectProto, functionProto *runtime.Object) {
	installBoolean(g, objectProto, functionProto)
	installNumber(g, objectProto, functionProto)
	installString(g, objectProto, functionProto)
}

func installBoolean(g, objectProto, functionProto *runtime.Object) {
	proto := runtime.NewObject(objectProto)
	proto.SetClass(runtime.ClassBoolean)
	proto.SetPrimitiveValue(runtime.False)
	ecma.RegisterWrapperPrototype("Boolean", proto)

	ctor := runtime.NewNativeFunction(functionProto, "Boolean", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		return runtime.NormalCompletion(runtime.Bool(boolArg(args)))
	})
	ctor.SetNativeConstruct(func(args []runtime.Value) runtime.Completion {
		o := runtime.NewObject(proto)
		o.SetClass(runtime.ClassBoolean)
		o.SetPrimitiveValue(runtime.Bool(boolArg(args)))
		return runtime.NormalCompletion(runtime.FromObject(o))
	})
	proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	ctor.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(proto), false, false, false), false)
	g.DefineOwnProperty("Boolean", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
}

func boolArg(args []runtime.Value) bool {
	if len(args) == 0 {
		return false
	}
	return ecma.ToBoolean(args[0])
}

func installNumber(g, objectProto, functionProto *runtime.Object) {
	proto := runtime.NewObject(objectProto)
	proto.SetClass(runtime.ClassNumber)
	proto.SetPrimitiveValue(runtime.Number(0))
	ecma.RegisterWrapperPrototype("Number", proto)

	conv := func(args []runtime.Value) runtime.Completion {
		if len(args) == 0 {
			return runtime.NormalCompletion(runtime.Number(0))
		}
		return ecma.ToNumber(args[0])
	}
	ctor := runtime.NewNativeFunction(functionProto, "Number", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		return conv(args)
	})
	ctor.SetNativeConstruct(func(args []runtime.Value) runtime.Completion {
		c := conv(args)
		if c.IsThrow() {
			return c
		}
		o := runtime.NewObject(proto)
		o.SetClass(runtime.ClassNumber)
		o.SetPrimitiveValue(c.Value)
		return runtime.NormalCompletion(runtime.FromObject(o))
	})
	proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	ctor.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(proto), false, false, false), false)
	g.DefineOwnProperty("Number", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
}

func installString(g, objectProto, functionProto *runtime.Object) {
	proto := runtime.NewObject(objectProto)
	proto.SetClass(runtime.ClassString)
	proto.SetPrimitiveValue(runtime.String(""))
	ecma.RegisterWrapperPrototype("String", proto)

	conv := func(args []runtime.Value) runtime.Completion {
		if len(args) == 0 {
			return runtime.NormalCompletion(runtime.String(""))
		}
		return ecma.ToString(args[0])
	}
	ctor := runtime.NewNativeFunction(functionProto, "String", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		return conv(args)
	})
	ctor.SetNativeConstruct(func(args []runtime.Value) runtime.Completion {
		c := conv(args)
		if c.IsThrow() {
			return c
		}
		o := runtime.NewObject(proto)
		o.SetClass(runtime.ClassString)
		o.SetPrimitiveValue(c.Value)
		return runtime.NormalCompletion(runtime.FromObject(o))
	})
	proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
	ctor.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(proto), false, false, false), false)
	g.DefineOwnProperty("String", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
}
