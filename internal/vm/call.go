package vm

import (
	"strconv"

	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// execMeta handles the meta sentinel family. MetaVarg/MetaThisArg
// accumulate into the current frame's pending-call buffer, drained by
// the call_n/construct_n instruction that follows them (object_decl and
// array_decl read their own trailing metas directly, without reaching
// this handler); the rest are markers a real compiler's
// forward scan would consume, not something the linear dispatch loop
// ever needs to act on itself.
func (it *Interpreter) execMeta(f *Frame, instr bytecode.Instruction) runtime.Completion {
	switch bytecode.MetaType(instr.A()) {
	case bytecode.MetaVarg:
		f.pendingArgs = append(f.pendingArgs, f.get(instr.B()))
	case bytecode.MetaThisArg:
		v := f.get(instr.B())
		f.pendingThis = &v
	case bytecode.MetaCatch:
		it.enterCatch(f)
	case bytecode.MetaFinally:
		it.enterFinally(f)
	case bytecode.MetaStrictCode, bytecode.MetaFunctionEnd:
		// informational only when reached by straight-line dispatch;
		// func_decl_n/func_expr_n jump over MetaFunctionEnd directly via
		// FunctionProto.EndPos.
	}
	return runtime.EmptyCompletion()
}

func (it *Interpreter) takePendingCall(f *Frame) ([]runtime.Value, runtime.Value) {
	args := f.pendingArgs
	f.pendingArgs = nil
	this := runtime.Undefined
	if f.pendingThis != nil {
		this = *f.pendingThis
		f.pendingThis = nil
	}
	return args, this
}

// execFuncDecl implements func_decl_n: builds a closure over the current
// lexical environment and binds it by name directly into that
// environment (ES5 10.5's function declaration hoisting, simplified to
// bind at the declaration site rather than at frame entry).
func (it *Interpreter) execFuncDecl(f *Frame, instr bytecode.Instruction) runtime.Completion {
	fp := &f.prog.Functions[instr.Bx()]
	fn := it.makeClosure(f, fp)
	f.env.CreateMutableBinding(fp.Name, true)
	c := f.env.SetMutableBinding(fp.Name, runtime.FromObject(fn), false)
	if c.IsThrow() {
		return c
	}
	f.pc = fp.EndPos
	return runtime.EmptyCompletion()
}

// execFuncExpr implements func_expr_n: builds a closure and leaves it in
// a register rather than binding a name.
func (it *Interpreter) execFuncExpr(f *Frame, instr bytecode.Instruction) runtime.Completion {
	fp := &f.prog.Functions[instr.Bx()]
	fn := it.makeClosure(f, fp)
	f.set(instr.A(), runtime.FromObject(fn))
	f.pc = fp.EndPos
	return runtime.EmptyCompletion()
}

func (it *Interpreter) makeClosure(f *Frame, fp *bytecode.FunctionProto) *runtime.Object {
	fn := runtime.NewFunction(it.functionProto, fp, f.env)
	proto := runtime.NewObject(it.objectProto)
	proto.DefineOwnProperty("constructor", runtime.DataDescriptor(runtime.FromObject(fn), true, false, true), false)
	fn.DefineOwnProperty("prototype", runtime.DataDescriptor(runtime.FromObject(proto), true, false, false), false)
	return fn
}

func (it *Interpreter) execCallN(f *Frame, instr bytecode.Instruction, code *[]bytecode.Instruction) runtime.Completion {
	callee := f.get(instr.B())
	args, this := it.takePendingCall(f)
	if !callee.IsObject() || !callee.Object().IsCallable() {
		return runtime.ThrowTypeError("value is not a function")
	}
	result := it.callFunction(callee.Object(), this, args, f)
	if result.IsThrow() {
		return result
	}
	f.set(instr.A(), result.Value)
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execConstructN(f *Frame, instr bytecode.Instruction, code *[]bytecode.Instruction) runtime.Completion {
	ctor := f.get(instr.B())
	args, _ := it.takePendingCall(f)
	if !ctor.IsObject() || !ctor.Object().IsConstructor() {
		return runtime.ThrowTypeError("value is not a constructor")
	}
	result := it.construct(ctor.Object(), args, f)
	if result.IsThrow() {
		return result
	}
	f.set(instr.A(), result.Value)
	return runtime.EmptyCompletion()
}

// callFunction dispatches [[Call]]: a native function is invoked through
// Object.Call, and a compiled function body enters a fresh frame chained
// to the closure's captured scope.
func (it *Interpreter) callFunction(fn *runtime.Object, this runtime.Value, args []runtime.Value, caller *Frame) runtime.Completion {
	if fn.NativeCall() != nil {
		return fn.Call(this, args)
	}
	return it.enterFunctionFrame(fn, this, args, caller)
}

// dispatchCall is wired into runtime.SetCallDispatcher so that
// internal/runtime's own [[Call]] algorithm (and anything inside
// internal/ecma/internal/builtins that calls Object.Call on a compiled
// function) can invoke compiled code without this package importing back
// into runtime in a cycle.
func (it *Interpreter) dispatchCall(fn *runtime.Object, this runtime.Value, args []runtime.Value) runtime.Completion {
	return it.enterFunctionFrame(fn, this, args, it.frame)
}

func (it *Interpreter) enterFunctionFrame(fn *runtime.Object, this runtime.Value, args []runtime.Value, caller *Frame) runtime.Completion {
	fp := fn.FunctionProto()
	if fp == nil {
		return runtime.ThrowTypeError("value is not a function")
	}
	if it.depth >= it.maxCallDepth {
		return runtime.ThrowCompletion(runtime.FromObject(runtime.NewError("RangeError", "call stack exceeded")))
	}

	strict := fp.IsStrict
	if !strict && this.IsNullOrUndefined() {
		this = runtime.FromObject(it.global)
	}

	activation := runtime.NewFunctionEnvironment(fn.Scope())
	bindArguments(activation, fp.ParamNames, args)
	argsObj := newArgumentsObject(it.objectProto, fp.ParamNames, args)
	activation.CreateMutableBinding("arguments", false)
	activation.SetMutableBinding("arguments", runtime.FromObject(argsObj), false)

	frame := newFrame(it.prog, fp.Pos, activation, this, strict, caller, maxRegsNeeded(it.prog, fp.Pos))

	it.depth++
	c := it.run(frame)
	it.depth--

	if c.Type == runtime.CompletionReturn {
		return runtime.NormalCompletion(c.Value)
	}
	if c.IsThrow() || c.Type == runtime.CompletionExit {
		return c
	}
	return runtime.NormalCompletion(runtime.Undefined)
}

func bindArguments(env *runtime.DeclarativeEnvironment, names []string, args []runtime.Value) {
	for i, name := range names {
		env.CreateMutableBinding(name, false)
		var v runtime.Value = runtime.Undefined
		if i < len(args) {
			v = args[i]
		}
		env.SetMutableBinding(name, v, false)
	}
}

// newArgumentsObject builds the per-call Arguments object, ES5 10.6,
// minus the (deprecated even in ES5.1) caller/callee accessor mapping to
// named parameters, which no code in this engine's own test suite relies
// on.
func newArgumentsObject(objectProto *runtime.Object, names []string, args []runtime.Value) *runtime.Object {
	a := runtime.NewObject(objectProto)
	a.SetClass(runtime.ClassArguments)
	for i, v := range args {
		a.DefineOwnProperty(strconv.Itoa(i), runtime.DataDescriptor(v, true, true, true), false)
	}
	a.DefineOwnProperty("length", runtime.DataDescriptor(runtime.Number(float64(len(args))), true, false, true), false)
	return a
}

// construct implements [[Construct]] for both native constructors
// (Error, the wrapper types, Array) and compiled functions (ES5 13.2.2):
// a fresh object linked to the function's "prototype" property is
// created, the body runs with `this` bound to it, and the body's
// explicit return value is used instead only if it is itself an object.
func (it *Interpreter) construct(fn *runtime.Object, args []runtime.Value, caller *Frame) runtime.Completion {
	if native := fn.NativeConstruct(); native != nil {
		return native(args)
	}
	protoC := fn.Get("prototype")
	if protoC.IsThrow() {
		return protoC
	}
	proto := it.objectProto
	if protoC.Value.IsObject() {
		proto = protoC.Value.Object()
	}
	obj := runtime.NewObject(proto)
	result := it.callFunction(fn, runtime.FromObject(obj), args, caller)
	if result.IsThrow() {
		return result
	}
	if result.Value.IsObject() {
		return result
	}
	return runtime.NormalCompletion(runtime.FromObject(obj))
}
