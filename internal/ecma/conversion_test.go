package ecma

import (
	"math"
	"testing"

	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

func TestToBooleanFalsy(t *testing.T) {
	falsy := []runtime.Value{
		runtime.Undefined, runtime.Null, runtime.False,
		runtime.Number(0), runtime.Number(math.NaN()), runtime.String(""),
	}
	for _, v := range falsy {
		if ToBoolean(v) {
			t.Errorf("ToBoolean(%v) should be false", v.Kind())
		}
	}
}

func TestToBooleanTruthy(t *testing.T) {
	truthy := []runtime.Value{
		runtime.True, runtime.Number(1), runtime.Number(-1), runtime.String("0"),
		runtime.FromObject(runtime.NewObject(nil)),
	}
	for _, v := range truthy {
		if !ToBoolean(v) {
			t.Errorf("ToBoolean(%v) should be true", v.Kind())
		}
	}
}

func TestToNumberConversions(t *testing.T) {
	tests := []struct {
		v    runtime.Value
		want float64
	}{
		{runtime.Undefined, math.NaN()},
		{runtime.Null, 0},
		{runtime.True, 1},
		{runtime.False, 0},
		{runtime.String("  42  "), 42},
		{runtime.String(""), 0},
		{runtime.String("abc"), math.NaN()},
		{runtime.String("0x1F"), 31},
	}
	for _, tt := range tests {
		c := ToNumber(tt.v)
		got := c.Value.NumberValue()
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("ToNumber(%v) = %v, want NaN", tt.v, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ToNumber(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestToStringConversions(t *testing.T) {
	tests := []struct {
		v    runtime.Value
		want string
	}{
		{runtime.Undefined, "undefined"},
		{runtime.Null, "null"},
		{runtime.True, "true"},
		{runtime.Number(0), "0"},
		{runtime.Number(math.NaN()), "NaN"},
		{runtime.Number(math.Inf(1)), "Infinity"},
		{runtime.String("s"), "s"},
	}
	for _, tt := range tests {
		c := ToString(tt.v)
		if c.Value.StringValue() != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.v.Kind(), c.Value.StringValue(), tt.want)
		}
	}
}

func TestCheckObjectCoercibleRejectsNullish(t *testing.T) {
	if c := CheckObjectCoercible(runtime.Undefined); !c.IsThrow() {
		t.Fatal("expected throw for undefined")
	}
	if c := CheckObjectCoercible(runtime.Null); !c.IsThrow() {
		t.Fatal("expected throw for null")
	}
	if c := CheckObjectCoercible(runtime.Number(0)); c.IsThrow() {
		t.Fatal("numbers are object-coercible")
	}
}

func TestToObjectWrapsPrimitivesWithPrimitiveValueSlot(t *testing.T) {
	o := ToObject(runtime.Number(7))
	pv, ok := o.PrimitiveValue()
	if !ok || pv.NumberValue() != 7 {
		t.Fatalf("expected wrapped primitive value 7, got %v ok=%v", pv, ok)
	}
	if o.Class() != runtime.ClassNumber {
		t.Fatalf("expected [[Class]] Number, got %v", o.Class())
	}
}

func TestToObjectOnObjectIsIdentity(t *testing.T) {
	orig := runtime.NewObject(nil)
	if got := ToObject(runtime.FromObject(orig)); got != orig {
		t.Fatal("ToObject on an object value should return the same object")
	}
}

func TestStringWrapperHasIndexProperties(t *testing.T) {
	o := ToObject(runtime.String("ab"))
	if o.Get("0").Value.StringValue() != "a" {
		t.Fatal("expected index 0 to be 'a'")
	}
	if o.Get("length").Value.NumberValue() != 2 {
		t.Fatal("expected length 2")
	}
}

func TestToInt32Wraps(t *testing.T) {
	c := ToInt32(runtime.Number(4294967296 + 5)) // 2^32 + 5
	if c.Value.NumberValue() != 5 {
		t.Fatalf("ToInt32 wraparound = %v, want 5", c.Value.NumberValue())
	}
}
