// Package ecma implements the ES5.1 type conversion and comparison
// abstract operations (§9 and §11.8.5/§11.9.3 of the spec) that need to
// invoke object methods ([[Get]], [[Call]], [[DefaultValue]]) and so sit
// one layer above internal/runtime's object model rather than inside it.
package ecma

import (
	"math"
	"strconv"
	"strings"

	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

func init() {
	// Break the runtime<->ecma dependency by handing runtime a closure
	// over ToObject, used when a Reference's base is a primitive value
	// (e.g. "x".length).
	runtime.SetToObjectCoercer(func(v runtime.Value) *runtime.Object {
		return ToObject(v)
	})
}

// CheckObjectCoercible implements ES5 9.10: throws TypeError for
// undefined and null, and is a no-op otherwise.
func CheckObjectCoercible(v runtime.Value) runtime.Completion {
	if v.IsNullOrUndefined() {
		return runtime.ThrowTypeError("cannot read property of %s", v.TypeOf())
	}
	return runtime.NormalCompletion(v)
}

// ToPrimitive implements ES5 9.1. hint is "String", "Number", or "" for
// the default hint (Number).
func ToPrimitive(v runtime.Value, hint string) runtime.Completion {
	if !v.IsObject() {
		return runtime.NormalCompletion(v)
	}
	return v.Object().DefaultValue(hint)
}

// ToBoolean implements ES5 9.2. It never throws.
func ToBoolean(v runtime.Value) bool {
	switch v.Kind() {
	case runtime.KindUndefined, runtime.KindNull:
		return false
	case runtime.KindBoolean:
		return v.BoolValue()
	case runtime.KindNumber:
		n := v.NumberValue()
		return n != 0 && !math.IsNaN(n)
	case runtime.KindString:
		return v.StringValue() != ""
	case runtime.KindObject:
		return true
	default:
		return false
	}
}

// ToNumber implements ES5 9.3.
func ToNumber(v runtime.Value) runtime.Completion {
	switch v.Kind() {
	case runtime.KindUndefined:
		return runtime.NormalCompletion(runtime.Number(math.NaN()))
	case runtime.KindNull:
		return runtime.NormalCompletion(runtime.Number(0))
	case runtime.KindBoolean:
		if v.BoolValue() {
			return runtime.NormalCompletion(runtime.Number(1))
		}
		return runtime.NormalCompletion(runtime.Number(0))
	case runtime.KindNumber:
		return runtime.NormalCompletion(v)
	case runtime.KindString:
		return runtime.NormalCompletion(runtime.Number(stringToNumber(v.StringValue())))
	case runtime.KindObject:
		prim := ToPrimitive(v, "Number")
		if prim.IsThrow() {
			return prim
		}
		return ToNumber(prim.Value)
	default:
		return runtime.NormalCompletion(runtime.Number(math.NaN()))
	}
}

// stringToNumber implements ES5 9.3.1's StringNumericLiteral grammar,
// approximated with strconv plus the spec's special cases for empty/
// whitespace-only strings (0) and the Infinity literals.
func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	switch t {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		n, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// ToInteger implements ES5 9.4.
func ToInteger(v runtime.Value) runtime.Completion {
	c := ToNumber(v)
	if c.IsThrow() {
		return c
	}
	n := c.Value.NumberValue()
	if math.IsNaN(n) {
		return runtime.NormalCompletion(runtime.Number(0))
	}
	if math.IsInf(n, 0) || n == 0 {
		return runtime.NormalCompletion(runtime.Number(n))
	}
	sign := 1.0
	if n < 0 {
		sign = -1
	}
	return runtime.NormalCompletion(runtime.Number(sign * math.Floor(math.Abs(n))))
}

// ToInt32 implements ES5 9.5.
func ToInt32(v runtime.Value) runtime.Completion {
	c := ToNumber(v)
	if c.IsThrow() {
		return c
	}
	n := c.Value.NumberValue()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return runtime.NormalCompletion(runtime.Number(0))
	}
	u := uint32(int64(math.Trunc(n)))
	return runtime.NormalCompletion(runtime.Number(float64(int32(u))))
}

// ToUint32 implements ES5 9.6.
func ToUint32(v runtime.Value) runtime.Completion {
	c := ToNumber(v)
	if c.IsThrow() {
		return c
	}
	n := c.Value.NumberValue()
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return runtime.NormalCompletion(runtime.Number(0))
	}
	u := uint32(int64(math.Trunc(n)))
	return runtime.NormalCompletion(runtime.Number(float64(u)))
}

// ToString implements ES5 9.8.
func ToString(v runtime.Value) runtime.Completion {
	switch v.Kind() {
	case runtime.KindUndefined:
		return runtime.NormalCompletion(runtime.String("undefined"))
	case runtime.KindNull:
		return runtime.NormalCompletion(runtime.String("null"))
	case runtime.KindBoolean:
		if v.BoolValue() {
			return runtime.NormalCompletion(runtime.String("true"))
		}
		return runtime.NormalCompletion(runtime.String("false"))
	case runtime.KindNumber:
		return runtime.NormalCompletion(runtime.String(numberToString(v.NumberValue())))
	case runtime.KindString:
		return runtime.NormalCompletion(v)
	case runtime.KindObject:
		prim := ToPrimitive(v, "String")
		if prim.IsThrow() {
			return prim
		}
		return ToString(prim.Value)
	default:
		return runtime.NormalCompletion(runtime.String(""))
	}
}

func numberToString(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if n == 0 {
		return "0"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if abs := math.Abs(n); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(n, 'e', -1, 64), "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// ToObject implements ES5 9.9. Wrapping primitives into Boolean/Number/
// String objects uses plain *runtime.Object with the corresponding
// [[Class]] and [[PrimitiveValue]] slot set, per ES5 15.6/15.7/15.5;
// their prototype chains are wired by internal/builtins at startup via
// RegisterWrapperPrototype, the same deferred-wiring seam
// runtime.RegisterErrorPrototype uses for Error subtypes.
func ToObject(v runtime.Value) *runtime.Object {
	switch v.Kind() {
	case runtime.KindBoolean:
		o := runtime.NewObject(wrapperPrototypes["Boolean"])
		o.SetClass(runtime.ClassBoolean)
		o.SetPrimitiveValue(v)
		return o
	case runtime.KindNumber:
		o := runtime.NewObject(wrapperPrototypes["Number"])
		o.SetClass(runtime.ClassNumber)
		o.SetPrimitiveValue(v)
		return o
	case runtime.KindString:
		o := runtime.NewObject(wrapperPrototypes["String"])
		o.SetClass(runtime.ClassString)
		o.SetPrimitiveValue(v)
		installStringIndices(o, v.StringValue())
		return o
	case runtime.KindObject:
		return v.Object()
	default:
		panic("ecma: ToObject on undefined/null; caller must CheckObjectCoercible first")
	}
}

var wrapperPrototypes = map[string]*runtime.Object{}

// RegisterWrapperPrototype wires Boolean.prototype/Number.prototype/
// String.prototype into ToObject's wrapping path.
func RegisterWrapperPrototype(class string, proto *runtime.Object) {
	wrapperPrototypes[class] = proto
}

// installStringIndices gives a String wrapper object own read-only
// index properties mirroring ES5 15.5.5.2, so `"ab"[0]` works through
// the ordinary [[Get]] algorithm rather than a special case in it.
func installStringIndices(o *runtime.Object, s string) {
	for i, r := range []rune(s) {
		o.DefineOwnProperty(strconv.Itoa(i), runtime.DataDescriptor(runtime.String(string(r)), false, true, false), false)
	}
	o.DefineOwnProperty("length", runtime.DataDescriptor(runtime.Number(float64(len([]rune(s)))), false, false, false), false)
}
