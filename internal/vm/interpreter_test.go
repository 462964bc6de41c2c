package vm

import (
	"testing"

	"github.com/tom9nguyen/jerryscript/internal/builtins"
	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// newTestInterpreter wires a fresh global object and interpreter exactly
// the way internal/engine's composition root does, minus the memory
// substrate, which these dispatch-loop tests don't exercise.
func newTestInterpreter() *Interpreter {
	g := builtins.New()
	return New(g.Object, g.Env, NewLCache(), 64, g.ObjectProto, g.FunctionProto, g.ArrayProto)
}

func TestArithmeticAddition(t *testing.T) {
	a := bytecode.NewAssembler()
	a.Emit(bytecode.OpAssignment, 0, 2, byte(bytecode.AssignSmallInt))
	a.Emit(bytecode.OpAssignment, 1, 3, byte(bytecode.AssignSmallInt))
	a.Emit(bytecode.OpAdd, 2, 0, 1)
	a.Emit(bytecode.OpRetValue, 2, 0, 0)
	prog := a.Program()

	it := newTestInterpreter()
	c, err := it.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Type != runtime.CompletionReturn || c.Value.NumberValue() != 5 {
		t.Fatalf("expected return 5, got %+v", c)
	}
}

func TestFunctionCallReturnsValue(t *testing.T) {
	a := bytecode.NewAssembler()
	xLit := a.AddStringLiteral("x")

	// top level: func_expr_n r0 <- fn, whose body follows inline and is
	// jumped over via EndPos; meta(varg r1=42); call_n r2 <- r0()
	a.Emit(bytecode.OpAssignment, 1, 42, byte(bytecode.AssignSmallInt))
	fnPos := a.Here() + 1
	fp := bytecode.FunctionProto{Name: "id", Pos: fnPos, EndPos: fnPos + 2, ParamNames: []string{"x"}}
	fnIdx := a.AddFunction(fp)
	a.EmitABx(bytecode.OpFuncExprN, 0, fnIdx)

	// function body: get_var r0 <- "x"; ret_value r0
	a.Emit(bytecode.OpGetVar, 0, byte(xLit), 0)
	a.Emit(bytecode.OpRetValue, 0, 0, 0)

	a.Emit(bytecode.OpMeta, byte(bytecode.MetaVarg), 1, 0)
	a.Emit(bytecode.OpCallN, 2, 0, 0)
	a.Emit(bytecode.OpRetValue, 2, 0, 0)
	prog := a.Program()

	it := newTestInterpreter()
	c, err := it.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.Type != runtime.CompletionReturn || c.Value.NumberValue() != 42 {
		t.Fatalf("expected return 42, got %+v", c)
	}
}

func TestUnknownOpcodeRaisesCorruptProgramFault(t *testing.T) {
	prog := &bytecode.Program{Code: []bytecode.Instruction{bytecode.CreateABC(bytecode.OpCode(250), 0, 0, 0)}}
	it := newTestInterpreter()
	_, err := it.Run(prog)
	if err == nil {
		t.Fatal("expected an engine fault for an unrecognized opcode")
	}
	fault, ok := err.(*runtime.EngineFault)
	if !ok {
		t.Fatalf("expected *runtime.EngineFault, got %T", err)
	}
	if fault.Kind != runtime.FaultCorruptProgram {
		t.Fatalf("expected FaultCorruptProgram, got %v", fault.Kind)
	}
}
