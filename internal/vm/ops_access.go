package vm

import (
	"strconv"

	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

func (it *Interpreter) execGetVar(f *Frame, instr bytecode.Instruction) runtime.Completion {
	name := f.literalString(instr.B())
	ref := runtime.NewEnvironmentReference(f.env, name, f.strict)
	c := ref.GetValue()
	if c.IsThrow() {
		return c
	}
	f.set(instr.A(), c.Value)
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execPutVar(f *Frame, instr bytecode.Instruction) runtime.Completion {
	name := f.literalString(instr.B())
	ref := runtime.NewEnvironmentReference(f.env, name, f.strict)
	c := ref.PutValue(f.get(instr.A()))
	if c.IsThrow() {
		return c
	}
	return runtime.EmptyCompletion()
}

// execDeleteVar implements delete_var. A compliant upstream compiler
// never emits delete_var for strict-mode code — ES5's early error for
// deleting an unqualified identifier is caught at compile time, not run
// time — so reaching this instruction under f.strict signals a broken
// bytecode image rather than a user-observable SyntaxError, surfaced as
// an engine fault instead of a thrown exception.
func (it *Interpreter) execDeleteVar(f *Frame, instr bytecode.Instruction) runtime.Completion {
	name := f.literalString(instr.B())
	if f.strict {
		return it.raiseFault(runtime.FaultAssertion, "delete_var must not be emitted for strict-mode code")
	}
	for env := f.env; env != nil; env = env.Outer() {
		if env.HasBinding(name) {
			f.set(instr.A(), runtime.Bool(env.DeleteBinding(name)))
			return runtime.EmptyCompletion()
		}
	}
	f.set(instr.A(), runtime.True)
	return runtime.EmptyCompletion()
}

// propertyKey coerces a register's value to the string name used to
// index into an object, per ES5 11.2.1's ToString(the subscript).
func propertyKey(v runtime.Value) runtime.Completion {
	return ecma.ToString(v)
}

func (it *Interpreter) execGetProp(f *Frame, instr bytecode.Instruction) runtime.Completion {
	base, key := f.get(instr.B()), f.get(instr.C())
	keyC := propertyKey(key)
	if keyC.IsThrow() {
		return keyC
	}
	name := keyC.Value.StringValue()

	if base.IsObject() {
		o := base.Object()
		if pd, ok := it.cache.Lookup(o, name); ok {
			f.set(instr.A(), resolveDescriptor(o, pd))
			return runtime.EmptyCompletion()
		}
		c := o.Get(name)
		if c.IsThrow() {
			return c
		}
		if pd := o.GetProperty(name); pd != nil {
			it.cache.Store(o, name, pd)
		}
		f.set(instr.A(), c.Value)
		return runtime.EmptyCompletion()
	}

	coercible := ecma.CheckObjectCoercible(base)
	if coercible.IsThrow() {
		return coercible
	}
	ref := runtime.NewPrimitivePropertyReference(base, name, f.strict)
	c := ref.GetValue()
	if c.IsThrow() {
		return c
	}
	f.set(instr.A(), c.Value)
	return runtime.EmptyCompletion()
}

func resolveDescriptor(receiver *runtime.Object, pd *runtime.PropertyDescriptor) runtime.Value {
	if pd.IsDataDescriptor() {
		return pd.Value()
	}
	if pd.Getter() == nil {
		return runtime.Undefined
	}
	return pd.Getter().Call(runtime.FromObject(receiver), nil).Value
}

func (it *Interpreter) execPutProp(f *Frame, instr bytecode.Instruction) runtime.Completion {
	base, key, val := f.get(instr.A()), f.get(instr.B()), f.get(instr.C())
	keyC := propertyKey(key)
	if keyC.IsThrow() {
		return keyC
	}
	name := keyC.Value.StringValue()
	if !base.IsObject() {
		coercible := ecma.CheckObjectCoercible(base)
		if coercible.IsThrow() {
			return coercible
		}
		return runtime.EmptyCompletion() // writes through a primitive base are no-ops, ES5 8.7.2
	}
	c := base.Object().Put(name, val, f.strict)
	if c.IsThrow() {
		return c
	}
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execDeleteProp(f *Frame, instr bytecode.Instruction) runtime.Completion {
	base, key := f.get(instr.B()), f.get(instr.C())
	if !base.IsObject() {
		return runtime.ThrowTypeError("cannot delete property of a non-object")
	}
	keyC := propertyKey(key)
	if keyC.IsThrow() {
		return keyC
	}
	c := base.Object().Delete(keyC.Value.StringValue(), f.strict)
	if c.IsThrow() {
		return c
	}
	f.set(instr.A(), c.Value)
	return runtime.EmptyCompletion()
}

// execObjectDecl implements object_decl: Bx following property metas are
// consumed in a run immediately after this instruction, each carrying
// (key literal index in B, value/accessor-function register in C) and
// tagged MetaVarg for a data property or MetaVargGetter/MetaVargSetter
// for one half of an accessor property. A getter and setter sharing a
// key arrive as two separate metas; DefineOwnProperty's own redefinition
// rules merge them into one accessor descriptor, per ES5 11.1.5.
func (it *Interpreter) execObjectDecl(f *Frame, instr bytecode.Instruction, code *[]bytecode.Instruction) runtime.Completion {
	dst := instr.A()
	count := int(instr.Bx())
	o := runtime.NewObject(it.objectPrototype())
	for i := 0; i < count; i++ {
		meta := (*code)[f.pc]
		f.pc++
		name := f.literalString(meta.B())
		switch bytecode.MetaType(meta.A()) {
		case bytecode.MetaVargGetter:
			getter := f.get(meta.C())
			o.DefineOwnProperty(name, objectLiteralAccessor(o, name, getter.Object(), nil), false)
		case bytecode.MetaVargSetter:
			setter := f.get(meta.C())
			o.DefineOwnProperty(name, objectLiteralAccessor(o, name, nil, setter.Object()), false)
		default:
			val := f.get(meta.C())
			o.DefineOwnProperty(name, runtime.DataDescriptor(val, true, true, true), false)
		}
	}
	f.set(dst, runtime.FromObject(o))
	return runtime.EmptyCompletion()
}

// objectLiteralAccessor builds the accessor descriptor to install for
// one getter/setter meta, carrying over the other half from any accessor
// descriptor already installed under the same name so that a { get
// x(){}, set x(v){} } pair compiled as two metas ends up as a single
// descriptor with both functions set, rather than each meta clobbering
// the other's half.
func objectLiteralAccessor(o *runtime.Object, name string, getter, setter *runtime.Object) *runtime.PropertyDescriptor {
	if existing := o.GetOwnProperty(name); existing != nil && existing.IsAccessorDescriptor() {
		if getter == nil {
			getter = existing.Getter()
		}
		if setter == nil {
			setter = existing.Setter()
		}
	}
	return runtime.AccessorDescriptor(getter, setter, true, true)
}

// execArrayDecl implements array_decl: the following metas carry the
// element values in order, register held in B.
func (it *Interpreter) execArrayDecl(f *Frame, instr bytecode.Instruction, code *[]bytecode.Instruction) runtime.Completion {
	dst := instr.A()
	count := int(instr.Bx())
	a := runtime.NewArray(it.arrayPrototype(), uint32(count))
	for i := 0; i < count; i++ {
		meta := (*code)[f.pc]
		f.pc++
		val := f.get(meta.B())
		a.DefineOwnProperty(strconv.Itoa(i), runtime.DataDescriptor(val, true, true, true), false)
	}
	f.set(dst, runtime.FromObject(a))
	return runtime.EmptyCompletion()
}
