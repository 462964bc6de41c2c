package vm

import (
	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// execTryBlock implements try_block: it pushes the try region named by
// instr.Bx() onto the frame's try stack. The region's catch/finally entry
// points come from the program's TryRegions side table rather than from
// scanning forward through meta(catch)/meta(finally) markers at throw
// time, the one deliberate departure from a literal forward-scan
// dispatch loop.
func (it *Interpreter) execTryBlock(f *Frame, instr bytecode.Instruction) {
	region := f.prog.TryRegions[instr.Bx()]
	f.tryStack = append(f.tryStack, tryState{region: region, savedEnv: f.env, phase: tryPhaseBody})
}

// execEndTry implements end_try_catch_finally: it is reached exactly
// once per try/catch/finally construct, after whichever of try/catch/
// finally control last ran through (the compiled code jumps across the
// clauses it isn't executing). It restores the environment captured at
// try_block and, if a return/throw/exit was deferred so a finally clause
// could run first, resumes that completion now.
func (it *Interpreter) execEndTry(f *Frame) runtime.Completion {
	if len(f.tryStack) == 0 {
		return runtime.EmptyCompletion()
	}
	top := f.tryStack[len(f.tryStack)-1]
	f.tryStack = f.tryStack[:len(f.tryStack)-1]
	f.env = top.savedEnv
	if top.pending != nil {
		return *top.pending
	}
	return runtime.EmptyCompletion()
}

// unwind handles an abrupt completion (throw, return, or exit) produced
// while one or more try regions are active on f. It walks the try stack
// from the innermost region outward: a throw reaching a region still in
// its try body is offered to that region's catch clause; any abrupt
// completion reaching a region with an unrun finally clause is deferred
// and the finally clause entered; a region with neither catches nothing
// and is popped so the completion keeps unwinding. It reports whether it
// redirected control flow (the dispatch loop should continue) or left
// the completion for the caller to return as-is.
func (it *Interpreter) unwind(f *Frame, c runtime.Completion) bool {
	for len(f.tryStack) > 0 {
		top := &f.tryStack[len(f.tryStack)-1]
		switch top.phase {
		case tryPhaseBody:
			if c.IsThrow() && top.region.CatchPC >= 0 {
				f.env = top.savedEnv
				f.pendingException = c.Value
				f.pc = top.region.CatchPC
				top.phase = tryPhaseCatch
				return true
			}
			if top.region.FinallyPC >= 0 {
				f.env = top.savedEnv
				top.pending = &c
				top.phase = tryPhaseFinally
				f.pc = top.region.FinallyPC
				return true
			}
			f.tryStack = f.tryStack[:len(f.tryStack)-1]
		case tryPhaseCatch:
			if top.region.FinallyPC >= 0 {
				f.env = top.savedEnv
				top.pending = &c
				top.phase = tryPhaseFinally
				f.pc = top.region.FinallyPC
				return true
			}
			f.tryStack = f.tryStack[:len(f.tryStack)-1]
		case tryPhaseFinally:
			// An abrupt completion raised by the finally clause itself
			// overrides whatever completion it was running to propagate,
			// per ES5 12.14; this region is done regardless.
			f.tryStack = f.tryStack[:len(f.tryStack)-1]
		}
		f.env = top.savedEnv
	}
	return false
}

// enterCatch is invoked by meta(catch), reached only when unwind has just
// redirected pc here: it binds the pending exception value to the
// catch clause's parameter name in a fresh declarative environment
// chained to the environment active when the try block was entered, per
// ES5 12.14.
func (it *Interpreter) enterCatch(f *Frame) {
	if len(f.tryStack) == 0 {
		return
	}
	top := &f.tryStack[len(f.tryStack)-1]
	env := runtime.NewDeclarativeEnvironment(top.savedEnv)
	name := f.prog.Literals[top.region.CatchVarLiteral].Str
	env.CreateMutableBinding(name, false)
	env.SetMutableBinding(name, f.pendingException, false)
	f.env = env
	f.pendingException = runtime.Undefined
	top.phase = tryPhaseCatch
}

// enterFinally is invoked by meta(finally), reached either by ordinary
// fallthrough (the try or catch body completed normally and the
// compiled code jumps here) or by unwind redirecting pc after an abrupt
// completion. Either way it marks the active region as now running its
// finally clause, so a second abrupt completion raised inside the
// clause is recognized as overriding rather than nesting.
func (it *Interpreter) enterFinally(f *Frame) {
	if len(f.tryStack) == 0 {
		return
	}
	f.tryStack[len(f.tryStack)-1].phase = tryPhaseFinally
}

// execWith implements the `with` statement's entry, ES5 12.10: the
// expression is coerced to an object and pushed as a provide-this object
// environment ahead of the existing scope chain. end_with pops it off
// again once the statement body completes.
func (it *Interpreter) execWith(f *Frame, instr bytecode.Instruction) runtime.Completion {
	v := f.get(instr.B())
	c := ecma.CheckObjectCoercible(v)
	if c.IsThrow() {
		return c
	}
	obj := ecma.ToObject(v)
	f.env = runtime.NewObjectEnvironment(obj, f.env, true)
	return runtime.EmptyCompletion()
}

// execForInStart implements for_in_start, ES5 12.6.4's enumeration setup:
// it snapshots the enumerable property names the loop will visit —
// own and inherited, each name visited at most once — so that properties
// added or removed by the loop body don't perturb an in-progress
// iteration. A null or undefined operand (the value for-in(x) over
// x == null never runs its body for) yields an empty iteration.
func (it *Interpreter) execForInStart(f *Frame, instr bytecode.Instruction) runtime.Completion {
	v := f.get(instr.B())
	var names []string
	if !v.IsNullOrUndefined() {
		names = collectForInNames(ecma.ToObject(v))
	}
	f.forInStack = append(f.forInStack, &forInState{names: names})
	return runtime.EmptyCompletion()
}

func collectForInNames(obj *runtime.Object) []string {
	seen := make(map[string]bool)
	var names []string
	for cur := obj; cur != nil; cur = cur.Prototype() {
		for _, name := range cur.OwnPropertyKeys() {
			if seen[name] {
				continue
			}
			seen[name] = true
			if pd := cur.GetOwnProperty(name); pd != nil && pd.Enumerable() {
				names = append(names, name)
			}
		}
	}
	return names
}

// execForInNext implements for_in_next: it writes the next name into the
// register named by operand A and whether one was available into the
// register named by operand B, the boolean the compiled loop's
// jmp_false tests to exit. Exhausting the names pops the iteration state
// kept by for_in_start; there is no separate "end for-in" opcode.
func (it *Interpreter) execForInNext(f *Frame, instr bytecode.Instruction) runtime.Completion {
	if len(f.forInStack) == 0 {
		f.set(instr.B(), runtime.False)
		return runtime.EmptyCompletion()
	}
	top := f.forInStack[len(f.forInStack)-1]
	if top.idx < len(top.names) {
		f.set(instr.A(), runtime.String(top.names[top.idx]))
		top.idx++
		f.set(instr.B(), runtime.True)
		return runtime.EmptyCompletion()
	}
	f.forInStack = f.forInStack[:len(f.forInStack)-1]
	f.set(instr.B(), runtime.False)
	return runtime.EmptyCompletion()
}
