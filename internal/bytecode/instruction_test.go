package bytecode

import "testing"

func TestCreateABCRoundTrip(t *testing.T) {
	i := CreateABC(OpAdd, 1, 2, 3)
	if i.Op() != OpAdd {
		t.Fatalf("Op() = %v, want OpAdd", i.Op())
	}
	if i.A() != 1 || i.B() != 2 || i.C() != 3 {
		t.Fatalf("operands = (%d,%d,%d), want (1,2,3)", i.A(), i.B(), i.C())
	}
}

func TestCreateABxRoundTrip(t *testing.T) {
	i := CreateABx(OpGetVar, 5, 4000)
	if i.Op() != OpGetVar || i.A() != 5 || i.Bx() != 4000 {
		t.Fatalf("got op=%v a=%d bx=%d", i.Op(), i.A(), i.Bx())
	}
}

func TestCreateAsBxNegativeOffset(t *testing.T) {
	i := CreateAsBx(OpJump, 0, -10)
	if i.SBx() != -10 {
		t.Fatalf("SBx() = %d, want -10", i.SBx())
	}
}

func TestOpCodeString(t *testing.T) {
	if OpAdd.String() != "add" {
		t.Fatalf("String() = %q", OpAdd.String())
	}
	if OpCode(255).String() != "unknown" {
		t.Fatalf("expected unknown for unmapped opcode")
	}
}
