package bytecode

import (
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// LiteralKind tags a Literal's payload.
type LiteralKind byte

const (
	LiteralNumber LiteralKind = iota
	LiteralString
)

// Literal is one entry of a Program's literal table. Opcodes reference
// literals by table index rather than embedding values inline, so the
// fixed-width instruction encoding never has to carry a variable-length
// payload.
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
}

// FunctionProto describes one compiled function body: where its code
// starts and ends, and its declared parameter names. The register count
// is not stored here: internal/vm sizes each frame's register window
// when the frame is created, as the B operand + 1 of a reg_var_decl at
// the function's first instruction, or 256 registers without one.
type FunctionProto struct {
	Name       string
	Pos        int // instruction index of the function's first opcode
	EndPos     int // instruction index just past MetaFunctionEnd
	ParamNames []string
	IsStrict   bool
}

// Program is a complete bytecode image: one flat instruction stream, a
// global literal table, and a table of function prototypes referenced
// by OpFuncDeclN/OpFuncExprN. Program is the unit internal/vm.Run
// consumes and the unit the CLI loads from disk.
type Program struct {
	BuildID     string // opaque uuid stamped at assembly time
	Code        []Instruction
	Literals    []Literal
	Functions   []FunctionProto
	StrictMode  bool // whether the leading meta(strict_code) was present
	Debug       []DebugInfo
	TryRegions  []TryRegion
}

// TryRegion is one try/catch/finally construct's side table entry,
// referenced by OpTryBlock's Bx operand rather than packed into
// instruction operands (an exception table, the way a JVM class file
// keeps one rather than encoding handler ranges inline). CatchPC/
// FinallyPC are -1 when that clause is absent.
type TryRegion struct {
	CatchPC        int
	FinallyPC      int
	EndPC          int
	CatchVarLiteral uint16 // literal table index of the bound exception name, valid only if CatchPC >= 0
}

// Encode serializes a Program to its on-disk image format.
func Encode(p *Program) ([]byte, error) {
	return msgpack.Marshal(p)
}

// Decode parses a Program from its on-disk image format.
func Decode(data []byte) (*Program, error) {
	var p Program
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Assembler builds a Program incrementally. It exists to construct test
// fixtures and CLI demo programs in lieu of an external source-to-
// bytecode compiler, which spec.md places out of scope.
type Assembler struct {
	prog *Program
}

// NewAssembler starts a fresh Program with a freshly generated build id.
func NewAssembler() *Assembler {
	return &Assembler{prog: &Program{BuildID: uuid.NewString()}}
}

// Emit appends an ABC-layout instruction and returns its index.
func (a *Assembler) Emit(op OpCode, x, y, z byte) int {
	a.prog.Code = append(a.prog.Code, CreateABC(op, x, y, z))
	return len(a.prog.Code) - 1
}

// EmitABx appends an ABx-layout instruction and returns its index.
func (a *Assembler) EmitABx(op OpCode, x byte, bx uint16) int {
	a.prog.Code = append(a.prog.Code, CreateABx(op, x, bx))
	return len(a.prog.Code) - 1
}

// EmitAsBx appends an AsBx-layout instruction and returns its index.
func (a *Assembler) EmitAsBx(op OpCode, x byte, sbx int16) int {
	a.prog.Code = append(a.prog.Code, CreateAsBx(op, x, sbx))
	return len(a.prog.Code) - 1
}

// Patch overwrites an already-emitted instruction, used to back-patch
// forward jump targets once their destination is known.
func (a *Assembler) Patch(pos int, instr Instruction) {
	a.prog.Code[pos] = instr
}

// Here returns the index the next Emit* call will occupy.
func (a *Assembler) Here() int { return len(a.prog.Code) }

// AddNumberLiteral interns a numeric literal and returns its table index.
func (a *Assembler) AddNumberLiteral(n float64) uint16 {
	a.prog.Literals = append(a.prog.Literals, Literal{Kind: LiteralNumber, Num: n})
	return uint16(len(a.prog.Literals) - 1)
}

// AddStringLiteral interns a string literal and returns its table index.
func (a *Assembler) AddStringLiteral(s string) uint16 {
	a.prog.Literals = append(a.prog.Literals, Literal{Kind: LiteralString, Str: s})
	return uint16(len(a.prog.Literals) - 1)
}

// AddFunction registers a function prototype and returns its index.
func (a *Assembler) AddFunction(fp FunctionProto) uint16 {
	a.prog.Functions = append(a.prog.Functions, fp)
	return uint16(len(a.prog.Functions) - 1)
}

// SetStrict marks the whole program as running in strict mode.
func (a *Assembler) SetStrict(strict bool) { a.prog.StrictMode = strict }

// AddTryRegion registers a try/catch/finally side-table entry and
// returns its index, for OpTryBlock's Bx operand to reference.
func (a *Assembler) AddTryRegion(r TryRegion) uint16 {
	a.prog.TryRegions = append(a.prog.TryRegions, r)
	return uint16(len(a.prog.TryRegions) - 1)
}

// Program returns the assembled image.
func (a *Assembler) Program() *Program { return a.prog }
