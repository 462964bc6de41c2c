package bytecode

import "testing"

func TestAssemblerBuildsProgram(t *testing.T) {
	a := NewAssembler()
	lit := a.AddNumberLiteral(42)
	a.Emit(OpAssignment, 0, byte(lit), byte(AssignNumber))
	a.Emit(OpRet, 0, 0, 0)
	p := a.Program()
	if len(p.Code) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(p.Code))
	}
	if p.BuildID == "" {
		t.Fatal("expected a non-empty build id")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	a := NewAssembler()
	a.AddStringLiteral("hello")
	a.Emit(OpRetValue, 0, 0, 0)
	a.SetDebugInfo(0, DebugInfo{Line: 1, File: "fixture.js"})
	want := a.Program()

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.BuildID != want.BuildID {
		t.Fatalf("BuildID mismatch: %q vs %q", got.BuildID, want.BuildID)
	}
	if len(got.Code) != len(want.Code) || got.Code[0] != want.Code[0] {
		t.Fatalf("Code mismatch")
	}
	if got.Literals[0].Str != "hello" {
		t.Fatalf("literal round-trip failed: %+v", got.Literals[0])
	}
	if got.LineFor(0).Line != 1 {
		t.Fatalf("debug info round-trip failed: %+v", got.LineFor(0))
	}
}

func TestPatchBackpatchesJump(t *testing.T) {
	a := NewAssembler()
	jmp := a.EmitAsBx(OpJump, 0, 0)
	a.Emit(OpNop, 0, 0, 0)
	target := a.Here()
	a.Patch(jmp, CreateAsBx(OpJump, 0, int16(target-jmp)))
	if a.Program().Code[jmp].SBx() != int16(target-jmp) {
		t.Fatalf("patch did not take effect")
	}
}
