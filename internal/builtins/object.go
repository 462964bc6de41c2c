package builtins

import (
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// installObjectConstructor installs the Object constructor plus the two
// property-descriptor primitives the core's own exception machinery and
// Testable Property scenarios exercise directly: defineProperty and
// getOwnPropertyDescriptor (ES5 15.2.3.6/15.2.3.3).
func installObjectConstructor(g, objectProto, functionProto *runtime.Object) {
	ctor := runtime.NewNativeFunction(functionProto, "Object", 1, func(this runtime.Value, args []runtime.Value) runtime.Completion {
		if len(args) > 0 && args[0].IsObject() {
			return runtime.NormalCompletion(args[0])
		}
		return runtime.NormalCompletion(runtime.FromObject(runtime.NewObject(objectProto)))
	})
	ctor.SetNativeConstruct(func(args []runtime.Value) runtime.Completion {
		if len(args) > 0 && args[0].IsObject() {
			return runtime.NormalCompletion(args[0])
		}
		return runtime.NormalCompletion(runtime.FromObject(runtime.NewObject(objectProto)))
	})

	defineProp := runtime.NewNativeFunction(functionProto, "defineProperty", 3, objectDefineProperty)
	ctor.DefineOwnProperty("defineProperty", runtime.DataDescriptor(runtime.FromObject(defineProp), true, false, true), false)

	getOwn := runtime.NewNativeFunction(functionProto, "getOwnPropertyDescriptor", 2, objectGetOwnPropertyDescriptor)
	ctor.DefineOwnProperty("getOwnPropertyDescriptor", runtime.DataDescriptor(runtime.FromObject(getOwn), true, false, true), false)

	ctor.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(objectProto), false, false, false), false)
	objectProto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)

	g.DefineOwnProperty("Object", runtime.DataDescriptor(runtime.FromObject(ctor), true, false, true), false)
}

// objectDefineProperty implements ES5 15.2.3.6.
func objectDefineProperty(this runtime.Value, args []runtime.Value) runtime.Completion {
	o, name, descVal, ok := threeArgs(args)
	if !ok {
		return runtime.ThrowTypeError("Object.defineProperty called on non-object")
	}
	desc, c := toPropertyDescriptor(descVal)
	if c.IsThrow() {
		return c
	}
	result := o.DefineOwnProperty(name, desc, true)
	if result.IsThrow() {
		return result
	}
	return runtime.NormalCompletion(runtime.FromObject(o))
}

// objectGetOwnPropertyDescriptor implements ES5 15.2.3.3.
func objectGetOwnPropertyDescriptor(this runtime.Value, args []runtime.Value) runtime.Completion {
	if len(args) == 0 || !args[0].IsObject() {
		return runtime.ThrowTypeError("Object.getOwnPropertyDescriptor called on non-object")
	}
	o := args[0].Object()
	name := ""
	if len(args) > 1 {
		c := ecma.ToString(args[1])
		if c.IsThrow() {
			return c
		}
		name = c.Value.StringValue()
	}
	pd := o.GetOwnProperty(name)
	if pd == nil {
		return runtime.NormalCompletion(runtime.Undefined)
	}
	return runtime.NormalCompletion(runtime.FromObject(fromPropertyDescriptor(pd)))
}

func threeArgs(args []runtime.Value) (*runtime.Object, string, runtime.Value, bool) {
	if len(args) < 1 || !args[0].IsObject() {
		return nil, "", runtime.Undefined, false
	}
	o := args[0].Object()
	name := "undefined"
	if len(args) > 1 {
		c := ecma.ToString(args[1])
		if !c.IsThrow() {
			name = c.Value.StringValue()
		}
	}
	var desc runtime.Value = runtime.Undefined
	if len(args) > 2 {
		desc = args[2]
	}
	return o, name, desc, true
}

// toPropertyDescriptor implements ES5 8.10.5: read the well-known
// fields off a plain descriptor object into a runtime.PropertyDescriptor,
// defaulting absent fields to false/undefined as the spec requires.
func toPropertyDescriptor(v runtime.Value) (*runtime.PropertyDescriptor, runtime.Completion) {
	if !v.IsObject() {
		return nil, runtime.ThrowTypeError("property descriptor must be an object")
	}
	o := v.Object()

	hasGetter := o.HasProperty("get")
	hasSetter := o.HasProperty("set")
	if hasGetter || hasSetter {
		var getter, setter *runtime.Object
		if hasGetter {
			gc := o.Get("get")
			if gc.IsThrow() {
				return nil, gc
			}
			if gc.Value.IsObject() {
				getter = gc.Value.Object()
			}
		}
		if hasSetter {
			sc := o.Get("set")
			if sc.IsThrow() {
				return nil, sc
			}
			if sc.Value.IsObject() {
				setter = sc.Value.Object()
			}
		}
		return runtime.AccessorDescriptor(getter, setter, boolField(o, "enumerable"), boolField(o, "configurable")), runtime.EmptyCompletion()
	}

	value := runtime.Undefined
	if o.HasProperty("value") {
		vc := o.Get("value")
		if vc.IsThrow() {
			return nil, vc
		}
		value = vc.Value
	}
	return runtime.DataDescriptor(value, boolField(o, "writable"), boolField(o, "enumerable"), boolField(o, "configurable")), runtime.EmptyCompletion()
}

func boolField(o *runtime.Object, name string) bool {
	if !o.HasProperty(name) {
		return false
	}
	c := o.Get(name)
	if c.IsThrow() {
		return false
	}
	return ecma.ToBoolean(c.Value)
}

// fromPropertyDescriptor implements ES5 8.10.4: the inverse of
// toPropertyDescriptor, building a fresh plain object out of a
// PropertyDescriptor's fields.
func fromPropertyDescriptor(pd *runtime.PropertyDescriptor) *runtime.Object {
	out := runtime.NewObject(nil)
	if pd.IsDataDescriptor() {
		out.DefineOwnProperty("value", runtime.DataDescriptor(pd.Value(), true, true, true), false)
		out.DefineOwnProperty("writable", runtime.DataDescriptor(runtime.Bool(pd.Writable()), true, true, true), false)
	} else {
		getter := runtime.Undefined
		if pd.Getter() != nil {
			getter = runtime.FromObject(pd.Getter())
		}
		setter := runtime.Undefined
		if pd.Setter() != nil {
			setter = runtime.FromObject(pd.Setter())
		}
		out.DefineOwnProperty("get", runtime.DataDescriptor(getter, true, true, true), false)
		out.DefineOwnProperty("set", runtime.DataDescriptor(setter, true, true, true), false)
	}
	out.DefineOwnProperty("enumerable", runtime.DataDescriptor(runtime.Bool(pd.Enumerable()), true, true, true), false)
	out.DefineOwnProperty("configurable", runtime.DataDescriptor(runtime.Bool(pd.Configurable()), true, true, true), false)
	return out
}
