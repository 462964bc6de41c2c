package ecma

import (
	"math"
	"testing"

	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

func TestStrictEqualsZeroSigns(t *testing.T) {
	if !StrictEquals(runtime.Number(0), runtime.Number(math.Copysign(0, -1))) {
		t.Fatal("=== should treat +0 and -0 as equal, unlike SameValue")
	}
}

func TestStrictEqualsNaN(t *testing.T) {
	nan := runtime.Number(math.NaN())
	if StrictEquals(nan, nan) {
		t.Fatal("NaN === NaN should be false")
	}
}

func TestEqualsNullUndefined(t *testing.T) {
	c := Equals(runtime.Null, runtime.Undefined)
	if !c.Value.BoolValue() {
		t.Fatal("null == undefined should be true")
	}
}

func TestEqualsNumberString(t *testing.T) {
	c := Equals(runtime.Number(1), runtime.String("1"))
	if !c.Value.BoolValue() {
		t.Fatal("1 == '1' should be true")
	}
}

func TestEqualsBooleanCoercion(t *testing.T) {
	c := Equals(runtime.True, runtime.Number(1))
	if !c.Value.BoolValue() {
		t.Fatal("true == 1 should be true")
	}
}

func TestLessThanStringComparison(t *testing.T) {
	c := LessThan(runtime.String("a"), runtime.String("b"))
	if !c.Value.BoolValue() {
		t.Fatal("'a' < 'b' should be true")
	}
}

func TestLessThanNaNIsFalse(t *testing.T) {
	c := LessThan(runtime.Number(math.NaN()), runtime.Number(1))
	if c.Value.BoolValue() {
		t.Fatal("NaN < 1 should be false")
	}
	c = GreaterThanOrEqual(runtime.Number(math.NaN()), runtime.Number(1))
	if c.Value.BoolValue() {
		t.Fatal("NaN >= 1 should also be false, per the undefined comparison result")
	}
}

func TestCompareNumericVsLexicographic(t *testing.T) {
	// numeric strings still compare lexicographically under ES5 11.8.5
	// when both operands remain strings after ToPrimitive.
	c := LessThan(runtime.String("10"), runtime.String("9"))
	if !c.Value.BoolValue() {
		t.Fatal("'10' < '9' should be true (lexicographic)")
	}
}
