// Package vm implements the bytecode dispatch loop: the fixed-width
// instruction decode/execute cycle, call frame management, and the
// glue that wires the object model's deferred seams (SetCallDispatcher,
// OnStructuralChange) into a concrete interpreter. It follows the
// teacher's RegisterVM.run() shape — cache code, consts, and the
// register window as locals across one tight dispatch for loop — minus
// the JIT/hot-loop-counting machinery, which sits outside this spec.
package vm

import (
	"fmt"

	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// Interpreter owns the running engine's call stack and global state. One
// Interpreter corresponds to one loaded Program.
type Interpreter struct {
	global    *runtime.Object
	globalEnv runtime.Environment
	cache     *LCache

	objectProto   *runtime.Object
	functionProto *runtime.Object
	arrayProto    *runtime.Object

	frame *Frame // the currently executing frame; nil between top-level runs
	prog  *bytecode.Program

	maxCallDepth int
	depth        int

	// pendingFault carries an engine-internal fault raised mid-dispatch
	// (raiseFault) up through the ordinary completion-propagation path —
	// reusing CompletionExit's unwind-everything behavior — to the
	// top-level Run/RunFromPos call, which reports it as a Go error
	// rather than an ES exception a script's own try/catch could observe.
	pendingFault *runtime.EngineFault

	// pressureCheck, when wired by internal/engine via SetPressureCheck,
	// runs after every dispatched instruction so the heap's occupancy
	// can trigger a proactive minor collection before an allocation
	// actually fails.
	pressureCheck func()
}

// raiseFault records a fault and produces the completion that unwinds
// every active frame without being caught by any try's catch clause
// (faults are never ES-catchable), the same way a program-level exit
// unwinds: finally clauses still run on the way out, but no catch does.
func (it *Interpreter) raiseFault(kind runtime.FaultKind, format string, args ...any) runtime.Completion {
	it.pendingFault = runtime.NewFault(kind, fmt.Sprintf(format, args...))
	return runtime.Completion{Type: runtime.CompletionExit, Value: runtime.Undefined}
}

// New creates an interpreter bound to the given global object/environment
// and wires runtime.SetCallDispatcher so the object model's own [[Call]]
// on compiled functions routes back into this interpreter's call
// machinery. objectProto/functionProto/arrayProto come from
// internal/builtins.Globals, so object/array literals and compiled
// function closures get the same prototype chain the global built-ins do.
func New(global *runtime.Object, globalEnv runtime.Environment, cache *LCache, maxCallDepth int, objectProto, functionProto, arrayProto *runtime.Object) *Interpreter {
	it := &Interpreter{
		global: global, globalEnv: globalEnv, cache: cache, maxCallDepth: maxCallDepth,
		objectProto: objectProto, functionProto: functionProto, arrayProto: arrayProto,
	}
	runtime.SetCallDispatcher(it.dispatchCall)
	return it
}

func (it *Interpreter) objectPrototype() *runtime.Object { return it.objectProto }
func (it *Interpreter) arrayPrototype() *runtime.Object  { return it.arrayProto }

// SetPressureCheck wires a proactive GC-pressure callback into the
// dispatch loop. internal/engine.New calls this once, after constructing
// both the interpreter and the collector the callback closes over — the
// two can't be built in the opposite order, since the collector itself
// takes the interpreter as its gc.RootProvider.
func (it *Interpreter) SetPressureCheck(fn func()) { it.pressureCheck = fn }

// Roots implements gc.RootProvider: the global object plus every live
// register across the active call stack.
func (it *Interpreter) Roots() []*runtime.Object {
	roots := []*runtime.Object{it.global}
	for f := it.frame; f != nil; f = f.caller {
		for _, v := range f.regs {
			if v.IsObject() {
				roots = append(roots, v.Object())
			}
		}
		if f.this.IsObject() {
			roots = append(roots, f.this.Object())
		}
	}
	return roots
}

// RootEnvironments implements gc.RootProvider: the global environment
// plus every active frame's lexical environment chain.
func (it *Interpreter) RootEnvironments() []runtime.Environment {
	envs := []runtime.Environment{it.globalEnv}
	for f := it.frame; f != nil; f = f.caller {
		envs = append(envs, f.env)
	}
	return envs
}

// Run executes prog from its first instruction in the global environment,
// per spec.md's `run` entry point, returning the final completion. A
// non-nil error is always an *runtime.EngineFault: an engine-internal
// condition distinct from any ES exception the program itself threw,
// which is carried in the completion instead.
func (it *Interpreter) Run(prog *bytecode.Program) (runtime.Completion, error) {
	return it.RunFromPos(prog, 0, maxRegsNeeded(prog, 0))
}

// RunFromPos executes prog starting at instruction pos, in a fresh frame
// chained to the global environment, per spec.md's `run_from_pos` entry
// point (used to resume a suspended generator-like continuation or to
// invoke a specific function body directly from the CLI/test harness).
func (it *Interpreter) RunFromPos(prog *bytecode.Program, pos, regCount int) (runtime.Completion, error) {
	it.prog = prog
	f := newFrame(prog, pos, it.globalEnv, runtime.FromObject(it.global), prog.StrictMode, it.frame, regCount)
	c, fault := it.runGuarded(f)
	if fault != nil {
		return runtime.Completion{}, fault
	}
	if it.pendingFault != nil {
		fault := it.pendingFault
		it.pendingFault = nil
		return runtime.Completion{}, fault
	}
	return c, nil
}

// runGuarded runs f and recovers an *runtime.EngineFault panic raised by
// internal/runtime's allocation accounting when the memory substrate's
// own drop-caches/minor-GC/major-GC cascade still can't satisfy a
// record's allocation. That condition is raised as a typed panic rather
// than threaded through every object/property/environment constructor's
// return value, and is recovered exactly once here regardless of call
// depth: recursive function calls go through it.run directly rather than
// re-entering RunFromPos, so Go's ordinary panic unwinding reaches this
// deferred recover no matter how deep the call stack was.
func (it *Interpreter) runGuarded(f *Frame) (c runtime.Completion, fault *runtime.EngineFault) {
	defer func() {
		if r := recover(); r != nil {
			ef, ok := r.(*runtime.EngineFault)
			if !ok {
				panic(r)
			}
			fault = ef
		}
	}()
	c = it.run(f)
	return c, nil
}

// maxRegsNeeded reads the reg_var_decl instruction expected at pos to
// size the frame's register window before execution begins.
func maxRegsNeeded(prog *bytecode.Program, pos int) int {
	if pos < len(prog.Code) && prog.Code[pos].Op() == bytecode.OpRegVarDecl {
		instr := prog.Code[pos]
		return int(instr.B()) + 1
	}
	return 256
}

// run is the dispatch loop: it decodes one instruction at a time,
// executes its handler, and loops until the frame produces an abrupt
// completion (return/throw/exit) or runs off the end of its code.
func (it *Interpreter) run(f *Frame) runtime.Completion {
	it.frame = f
	defer func() { it.frame = f.caller }()

	code := f.code // cached locally, mirroring the teacher's dispatch loop

	for f.pc < len(code) {
		instr := code[f.pc]
		op := instr.Op()
		f.pc++

		if it.pressureCheck != nil {
			it.pressureCheck()
		}

		var c runtime.Completion
		switch op {
		case bytecode.OpNop, bytecode.OpRegVarDecl:
			c = runtime.EmptyCompletion()
		case bytecode.OpMeta:
			c = it.execMeta(f, instr)
		case bytecode.OpAssignment:
			c = it.execAssignment(f, instr)
		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod:
			c = it.execArith(f, instr, op)
		case bytecode.OpNegate:
			c = it.execUnaryNumeric(f, instr, op)
		case bytecode.OpBitAnd, bytecode.OpBitOr, bytecode.OpBitXor, bytecode.OpShiftLeft, bytecode.OpShiftRight, bytecode.OpShiftRightUnsigned:
			c = it.execBitwise(f, instr, op)
		case bytecode.OpBitNot:
			c = it.execUnaryNumeric(f, instr, op)
		case bytecode.OpLess, bytecode.OpGreater, bytecode.OpLessEqual, bytecode.OpGreaterEqual:
			c = it.execRelational(f, instr, op)
		case bytecode.OpEqual, bytecode.OpNotEqual, bytecode.OpStrictEqual, bytecode.OpStrictNotEqual:
			c = it.execEquality(f, instr, op)
		case bytecode.OpInstanceOf:
			c = it.execInstanceOf(f, instr)
		case bytecode.OpIn:
			c = it.execIn(f, instr)
		case bytecode.OpLogicalNot:
			c = it.execLogicalNot(f, instr)
		case bytecode.OpPreIncr, bytecode.OpPreDecr, bytecode.OpPostIncr, bytecode.OpPostDecr:
			c = it.execIncrDecr(f, instr, op)
		case bytecode.OpTypeOf:
			c = it.execTypeOf(f, instr)
		case bytecode.OpToNumber:
			c = it.execToNumber(f, instr)
		case bytecode.OpToBoolean:
			c = it.execToBoolean(f, instr)
		case bytecode.OpVoid:
			f.set(instr.A(), runtime.Undefined)
			c = runtime.EmptyCompletion()
		case bytecode.OpGetVar:
			c = it.execGetVar(f, instr)
		case bytecode.OpPutVar:
			c = it.execPutVar(f, instr)
		case bytecode.OpDeleteVar:
			c = it.execDeleteVar(f, instr)
		case bytecode.OpGetProp:
			c = it.execGetProp(f, instr)
		case bytecode.OpPutProp:
			c = it.execPutProp(f, instr)
		case bytecode.OpDeleteProp:
			c = it.execDeleteProp(f, instr)
		case bytecode.OpObjectDecl:
			c = it.execObjectDecl(f, instr, &code)
		case bytecode.OpArrayDecl:
			c = it.execArrayDecl(f, instr, &code)
		case bytecode.OpFuncDeclN:
			c = it.execFuncDecl(f, instr)
		case bytecode.OpFuncExprN:
			c = it.execFuncExpr(f, instr)
		case bytecode.OpCallN:
			c = it.execCallN(f, instr, &code)
		case bytecode.OpConstructN:
			c = it.execConstructN(f, instr, &code)
		case bytecode.OpJump:
			f.pc += int(instr.SBx())
			c = runtime.EmptyCompletion()
		case bytecode.OpJumpIfTrue:
			if ecma.ToBoolean(f.get(instr.A())) {
				f.pc += int(instr.SBx())
			}
			c = runtime.EmptyCompletion()
		case bytecode.OpJumpIfFalse:
			if !ecma.ToBoolean(f.get(instr.A())) {
				f.pc += int(instr.SBx())
			}
			c = runtime.EmptyCompletion()
		case bytecode.OpTryBlock:
			it.execTryBlock(f, instr)
			c = runtime.EmptyCompletion()
		case bytecode.OpEndTryCatchFinally:
			c = it.execEndTry(f)
		case bytecode.OpThrowValue:
			c = runtime.ThrowCompletion(f.get(instr.A()))
		case bytecode.OpWith:
			c = it.execWith(f, instr)
		case bytecode.OpEndWith:
			f.env = f.env.Outer()
			c = runtime.EmptyCompletion()
		case bytecode.OpForInStart:
			c = it.execForInStart(f, instr)
		case bytecode.OpForInNext:
			c = it.execForInNext(f, instr)
		case bytecode.OpRetValue:
			return runtime.ReturnCompletion(f.get(instr.A()))
		case bytecode.OpRet:
			return runtime.ReturnCompletion(runtime.Undefined)
		case bytecode.OpExitVal:
			return runtime.Completion{Type: runtime.CompletionExit, Value: f.get(instr.A())}
		default:
			c = it.raiseFault(runtime.FaultCorruptProgram, "unknown opcode %s at pc %d", op.String(), f.pc-1)
		}

		if c.IsAbrupt() {
			if it.unwind(f, c) {
				continue
			}
			return c
		}
	}
	return runtime.NormalCompletion(runtime.Undefined)
}
