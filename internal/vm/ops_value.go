package vm

import (
	"math"

	"github.com/tom9nguyen/jerryscript/internal/bytecode"
	"github.com/tom9nguyen/jerryscript/internal/ecma"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// assignment sentinel codes for AssignSimple, mirroring jerryscript's
// OPCODE_GET_VALUE_SIMPLE literal set.
const (
	simpleUndefined byte = 0
	simpleNull      byte = 1
	simpleTrue      byte = 2
	simpleFalse     byte = 3
	simpleThis      byte = 4
)

func (it *Interpreter) execAssignment(f *Frame, instr bytecode.Instruction) runtime.Completion {
	dst, b, mode := instr.A(), instr.B(), bytecode.AssignmentMode(instr.C())
	switch mode {
	case bytecode.AssignSimple:
		switch b {
		case simpleUndefined:
			f.set(dst, runtime.Undefined)
		case simpleNull:
			f.set(dst, runtime.Null)
		case simpleTrue:
			f.set(dst, runtime.True)
		case simpleFalse:
			f.set(dst, runtime.False)
		case simpleThis:
			f.set(dst, f.this)
		}
	case bytecode.AssignString:
		f.set(dst, runtime.String(f.literalString(b)))
	case bytecode.AssignNumber:
		f.set(dst, runtime.Number(f.literalNumber(b)))
	case bytecode.AssignNumberNegate:
		f.set(dst, runtime.Number(-f.literalNumber(b)))
	case bytecode.AssignSmallInt:
		f.set(dst, runtime.Number(float64(b)))
	case bytecode.AssignSmallIntNegate:
		f.set(dst, runtime.Number(-float64(b)))
	case bytecode.AssignVariable:
		f.set(dst, f.get(b))
	}
	return runtime.EmptyCompletion()
}

// toNumberPair evaluates ToPrimitive then ToNumber on both
// operands, the shared first half of every arithmetic operator except
// Add (which must check for string concatenation first).
func toNumberPair(x, y runtime.Value) (float64, float64, runtime.Completion) {
	nx := ecma.ToNumber(x)
	if nx.IsThrow() {
		return 0, 0, nx
	}
	ny := ecma.ToNumber(y)
	if ny.IsThrow() {
		return 0, 0, ny
	}
	return nx.Value.NumberValue(), ny.Value.NumberValue(), runtime.EmptyCompletion()
}

func (it *Interpreter) execArith(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, l, r := instr.A(), f.get(instr.B()), f.get(instr.C())
	if op == bytecode.OpAdd {
		return it.execAdd(f, dst, l, r)
	}
	x, y, c := toNumberPair(l, r)
	if c.IsThrow() {
		return c
	}
	var res float64
	switch op {
	case bytecode.OpSub:
		res = x - y
	case bytecode.OpMul:
		res = x * y
	case bytecode.OpDiv:
		res = x / y
	case bytecode.OpMod:
		res = math.Mod(x, y)
	}
	f.set(dst, runtime.Number(res))
	return runtime.EmptyCompletion()
}

// execAdd implements ES5 11.6.1: ToPrimitive both operands, then
// concatenate if either primitive is a string, else add as numbers.
func (it *Interpreter) execAdd(f *Frame, dst byte, l, r runtime.Value) runtime.Completion {
	pl := ecma.ToPrimitive(l, "")
	if pl.IsThrow() {
		return pl
	}
	pr := ecma.ToPrimitive(r, "")
	if pr.IsThrow() {
		return pr
	}
	if pl.Value.IsString() || pr.Value.IsString() {
		sl := ecma.ToString(pl.Value)
		if sl.IsThrow() {
			return sl
		}
		sr := ecma.ToString(pr.Value)
		if sr.IsThrow() {
			return sr
		}
		f.set(dst, runtime.String(sl.Value.StringValue()+sr.Value.StringValue()))
		return runtime.EmptyCompletion()
	}
	x, y, c := toNumberPair(pl.Value, pr.Value)
	if c.IsThrow() {
		return c
	}
	f.set(dst, runtime.Number(x+y))
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execUnaryNumeric(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, v := instr.A(), f.get(instr.B())
	switch op {
	case bytecode.OpNegate:
		n := ecma.ToNumber(v)
		if n.IsThrow() {
			return n
		}
		f.set(dst, runtime.Number(-n.Value.NumberValue()))
	case bytecode.OpBitNot:
		i := ecma.ToInt32(v)
		if i.IsThrow() {
			return i
		}
		f.set(dst, runtime.Number(float64(^int32(i.Value.NumberValue()))))
	}
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execBitwise(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, l, r := instr.A(), f.get(instr.B()), f.get(instr.C())
	switch op {
	case bytecode.OpBitAnd, bytecode.OpBitOr, bytecode.OpBitXor:
		lx := ecma.ToInt32(l)
		if lx.IsThrow() {
			return lx
		}
		ry := ecma.ToInt32(r)
		if ry.IsThrow() {
			return ry
		}
		a, b := int32(lx.Value.NumberValue()), int32(ry.Value.NumberValue())
		var res int32
		switch op {
		case bytecode.OpBitAnd:
			res = a & b
		case bytecode.OpBitOr:
			res = a | b
		case bytecode.OpBitXor:
			res = a ^ b
		}
		f.set(dst, runtime.Number(float64(res)))
	case bytecode.OpShiftLeft, bytecode.OpShiftRight:
		lx := ecma.ToInt32(l)
		if lx.IsThrow() {
			return lx
		}
		ry := ecma.ToUint32(r)
		if ry.IsThrow() {
			return ry
		}
		shift := uint32(ry.Value.NumberValue()) & 0x1F
		a := int32(lx.Value.NumberValue())
		var res int32
		if op == bytecode.OpShiftLeft {
			res = a << shift
		} else {
			res = a >> shift
		}
		f.set(dst, runtime.Number(float64(res)))
	case bytecode.OpShiftRightUnsigned:
		lx := ecma.ToUint32(l)
		if lx.IsThrow() {
			return lx
		}
		ry := ecma.ToUint32(r)
		if ry.IsThrow() {
			return ry
		}
		shift := uint32(ry.Value.NumberValue()) & 0x1F
		a := uint32(lx.Value.NumberValue())
		f.set(dst, runtime.Number(float64(a>>shift)))
	}
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execRelational(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, l, r := instr.A(), f.get(instr.B()), f.get(instr.C())
	var c runtime.Completion
	switch op {
	case bytecode.OpLess:
		c = ecma.LessThan(l, r)
	case bytecode.OpGreater:
		c = ecma.GreaterThan(l, r)
	case bytecode.OpLessEqual:
		c = ecma.LessThanOrEqual(l, r)
	case bytecode.OpGreaterEqual:
		c = ecma.GreaterThanOrEqual(l, r)
	}
	if c.IsThrow() {
		return c
	}
	f.set(dst, c.Value)
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execEquality(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, l, r := instr.A(), f.get(instr.B()), f.get(instr.C())
	switch op {
	case bytecode.OpEqual:
		c := ecma.Equals(l, r)
		if c.IsThrow() {
			return c
		}
		f.set(dst, c.Value)
	case bytecode.OpNotEqual:
		c := ecma.Equals(l, r)
		if c.IsThrow() {
			return c
		}
		f.set(dst, runtime.Bool(!c.Value.BoolValue()))
	case bytecode.OpStrictEqual:
		f.set(dst, runtime.Bool(ecma.StrictEquals(l, r)))
	case bytecode.OpStrictNotEqual:
		f.set(dst, runtime.Bool(!ecma.StrictEquals(l, r)))
	}
	return runtime.EmptyCompletion()
}

// execInstanceOf implements ES5 11.8.6.
func (it *Interpreter) execInstanceOf(f *Frame, instr bytecode.Instruction) runtime.Completion {
	dst, l, r := instr.A(), f.get(instr.B()), f.get(instr.C())
	if !r.IsObject() || !r.Object().IsCallable() {
		return runtime.ThrowTypeError("right-hand side of instanceof is not callable")
	}
	if !l.IsObject() {
		f.set(dst, runtime.False)
		return runtime.EmptyCompletion()
	}
	protoC := r.Object().Get("prototype")
	if protoC.IsThrow() {
		return protoC
	}
	if !protoC.Value.IsObject() {
		return runtime.ThrowTypeError("prototype is not an object")
	}
	proto := protoC.Value.Object()
	for cur := l.Object().Prototype(); cur != nil; cur = cur.Prototype() {
		if cur == proto {
			f.set(dst, runtime.True)
			return runtime.EmptyCompletion()
		}
	}
	f.set(dst, runtime.False)
	return runtime.EmptyCompletion()
}

// execIn implements ES5 11.8.7: B holds the key register, C the object
// register (key first, matching the source text `key in obj`).
func (it *Interpreter) execIn(f *Frame, instr bytecode.Instruction) runtime.Completion {
	dst, key, obj := instr.A(), f.get(instr.B()), f.get(instr.C())
	if !obj.IsObject() {
		return runtime.ThrowTypeError("cannot use 'in' operator on a non-object")
	}
	name := ecma.ToString(key)
	if name.IsThrow() {
		return name
	}
	f.set(dst, runtime.Bool(obj.Object().HasProperty(name.Value.StringValue())))
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execLogicalNot(f *Frame, instr bytecode.Instruction) runtime.Completion {
	f.set(instr.A(), runtime.Bool(!ecma.ToBoolean(f.get(instr.B()))))
	return runtime.EmptyCompletion()
}

// execIncrDecr implements the four pre/post increment/decrement
// opcodes against a variable reference (B holds the identifier's
// literal-table string index); property-target increment/decrement is
// out of scope for the in-module assembler, the way a compiler would
// otherwise lower `obj.x++` into an explicit get_prop/put_prop pair
// around a plain arithmetic add instead of a dedicated opcode.
func (it *Interpreter) execIncrDecr(f *Frame, instr bytecode.Instruction, op bytecode.OpCode) runtime.Completion {
	dst, nameIdx := instr.A(), instr.B()
	name := f.literalString(nameIdx)
	ref := runtime.NewEnvironmentReference(f.env, name, f.strict)
	cur := ref.GetValue()
	if cur.IsThrow() {
		return cur
	}
	n := ecma.ToNumber(cur.Value)
	if n.IsThrow() {
		return n
	}
	old := n.Value.NumberValue()
	var updated float64
	switch op {
	case bytecode.OpPreIncr, bytecode.OpPostIncr:
		updated = old + 1
	case bytecode.OpPreDecr, bytecode.OpPostDecr:
		updated = old - 1
	}
	put := ref.PutValue(runtime.Number(updated))
	if put.IsThrow() {
		return put
	}
	if op == bytecode.OpPreIncr || op == bytecode.OpPreDecr {
		f.set(dst, runtime.Number(updated))
	} else {
		f.set(dst, runtime.Number(old))
	}
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execTypeOf(f *Frame, instr bytecode.Instruction) runtime.Completion {
	f.set(instr.A(), runtime.String(f.get(instr.B()).TypeOf()))
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execToNumber(f *Frame, instr bytecode.Instruction) runtime.Completion {
	c := ecma.ToNumber(f.get(instr.B()))
	if c.IsThrow() {
		return c
	}
	f.set(instr.A(), c.Value)
	return runtime.EmptyCompletion()
}

func (it *Interpreter) execToBoolean(f *Frame, instr bytecode.Instruction) runtime.Completion {
	f.set(instr.A(), runtime.Bool(ecma.ToBoolean(f.get(instr.B()))))
	return runtime.EmptyCompletion()
}
