package ecma

import (
	"math"

	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// StrictEquals implements ES5 11.9.6, the === algorithm: no coercion,
// but (unlike SameValue) +0 === -0 and NaN !== NaN.
func StrictEquals(x, y runtime.Value) bool {
	if x.Kind() != y.Kind() {
		return false
	}
	switch x.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return true
	case runtime.KindBoolean:
		return x.BoolValue() == y.BoolValue()
	case runtime.KindNumber:
		return x.NumberValue() == y.NumberValue()
	case runtime.KindString:
		return x.StringValue() == y.StringValue()
	case runtime.KindObject:
		return x.Object() == y.Object()
	default:
		return false
	}
}

// Equals implements ES5 11.9.3, the == algorithm, including the
// cross-type coercion steps (number/string, boolean/anything,
// object/primitive).
func Equals(x, y runtime.Value) runtime.Completion {
	if x.Kind() == y.Kind() {
		return runtime.NormalCompletion(runtime.Bool(StrictEquals(x, y)))
	}
	if x.IsNull() && y.IsUndefined() || x.IsUndefined() && y.IsNull() {
		return runtime.NormalCompletion(runtime.True)
	}
	if x.IsNumber() && y.IsString() {
		n := ToNumber(y)
		return runtime.NormalCompletion(runtime.Bool(x.NumberValue() == n.Value.NumberValue()))
	}
	if x.IsString() && y.IsNumber() {
		return Equals(y, x)
	}
	if x.IsBoolean() {
		n := ToNumber(x)
		return Equals(n.Value, y)
	}
	if y.IsBoolean() {
		return Equals(y, x)
	}
	if (x.IsNumber() || x.IsString()) && y.IsObject() {
		prim := ToPrimitive(y, "")
		if prim.IsThrow() {
			return prim
		}
		return Equals(x, prim.Value)
	}
	if x.IsObject() && (y.IsNumber() || y.IsString()) {
		return Equals(y, x)
	}
	return runtime.NormalCompletion(runtime.False)
}

// CompareResult is the three-valued outcome of an abstract relational
// comparison (ES5 11.8.5): LessThan, NotLess, or Undefined when either
// operand converts to NaN.
type CompareResult uint8

const (
	CompareLess CompareResult = iota
	CompareNotLess
	CompareUndefined
)

// Compare implements ES5 11.8.5. leftFirst controls evaluation order of
// the ToPrimitive conversions, mattering only for user-visible side
// effects from valueOf/toString, not for the comparison result itself.
func Compare(x, y runtime.Value, leftFirst bool) (CompareResult, runtime.Completion) {
	var px, py runtime.Completion
	if leftFirst {
		px = ToPrimitive(x, "Number")
		if px.IsThrow() {
			return CompareUndefined, px
		}
		py = ToPrimitive(y, "Number")
		if py.IsThrow() {
			return CompareUndefined, py
		}
	} else {
		py = ToPrimitive(y, "Number")
		if py.IsThrow() {
			return CompareUndefined, py
		}
		px = ToPrimitive(x, "Number")
		if px.IsThrow() {
			return CompareUndefined, px
		}
	}

	if px.Value.IsString() && py.Value.IsString() {
		a, b := px.Value.StringValue(), py.Value.StringValue()
		if a < b {
			return CompareLess, runtime.EmptyCompletion()
		}
		return CompareNotLess, runtime.EmptyCompletion()
	}

	nx := ToNumber(px.Value)
	if nx.IsThrow() {
		return CompareUndefined, nx
	}
	ny := ToNumber(py.Value)
	if ny.IsThrow() {
		return CompareUndefined, ny
	}
	a, b := nx.Value.NumberValue(), ny.Value.NumberValue()
	if math.IsNaN(a) || math.IsNaN(b) {
		return CompareUndefined, runtime.EmptyCompletion()
	}
	if a < b {
		return CompareLess, runtime.EmptyCompletion()
	}
	return CompareNotLess, runtime.EmptyCompletion()
}

// LessThan is the convenience form internal/vm's OpLess handler uses:
// CompareUndefined (a NaN operand) evaluates to false, per ES5 11.8.1.
func LessThan(x, y runtime.Value) runtime.Completion {
	r, c := Compare(x, y, true)
	if c.IsThrow() {
		return c
	}
	return runtime.NormalCompletion(runtime.Bool(r == CompareLess))
}

// GreaterThan implements ES5 11.8.2: y < x with operands evaluated
// right-to-left.
func GreaterThan(x, y runtime.Value) runtime.Completion {
	r, c := Compare(y, x, false)
	if c.IsThrow() {
		return c
	}
	return runtime.NormalCompletion(runtime.Bool(r == CompareLess))
}

// LessThanOrEqual implements ES5 11.8.3: !(y < x), where an undefined
// (NaN-driven) comparison result makes the whole expression false.
func LessThanOrEqual(x, y runtime.Value) runtime.Completion {
	r, c := Compare(y, x, false)
	if c.IsThrow() {
		return c
	}
	return runtime.NormalCompletion(runtime.Bool(r == CompareNotLess))
}

// GreaterThanOrEqual implements ES5 11.8.4: !(x < y), where an undefined
// (NaN-driven) comparison result makes the whole expression false.
func GreaterThanOrEqual(x, y runtime.Value) runtime.Completion {
	r, c := Compare(x, y, true)
	if c.IsThrow() {
		return c
	}
	return runtime.NormalCompletion(runtime.Bool(r == CompareNotLess))
}
