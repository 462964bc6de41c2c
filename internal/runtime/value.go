// Package runtime implements the ECMAScript value and object model: the
// Value tagged union, Object records with named data/accessor
// properties, lexical Environments, References, and Completion values.
// Mutually recursive types (a Value can hold an Object, an Object's
// properties hold Values, an Environment binds names to Values and
// chains to Objects for the `with` statement) live in one package the
// way the teacher's vmregister package combines Value, Object, and every
// heap type it points to, rather than splitting along lines Go's import
// graph can't express as a cycle.
package runtime

import (
	"fmt"
	"math"
)

// Kind tags a Value's active representation.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindEmpty // the "empty" pseudo-value used by Completion and uninitialized bindings
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Value is the tagged union spec.md's data model describes. It is a
// plain Go struct rather than a NaN-boxed word: ES5 needs undefined,
// null, and empty as distinct values on top of boolean/number/string/
// object, which NaN-boxing's single pointer-sized tag space can't carry
// as cheaply as a single extra byte can here.
type Value struct {
	kind Kind
	num  float64
	str  string
	obj  *Object
}

var (
	Undefined = Value{kind: KindUndefined}
	Null      = Value{kind: KindNull}
	Empty     = Value{kind: KindEmpty}
	True      = Value{kind: KindBoolean, num: 1}
	False     = Value{kind: KindBoolean, num: 0}
)

// Bool returns True or False for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Number wraps n as a Value, including NaN and both zeros.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String wraps s as a Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// FromObject wraps an object reference as a Value. obj must not be nil;
// use Undefined or Null for the absence of an object.
func FromObject(obj *Object) Value {
	if obj == nil {
		panic("runtime: FromObject(nil)")
	}
	return Value{kind: KindObject, obj: obj}
}

func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsUndefined() bool  { return v.kind == KindUndefined }
func (v Value) IsNull() bool       { return v.kind == KindNull }
func (v Value) IsNullOrUndefined() bool {
	return v.kind == KindNull || v.kind == KindUndefined
}
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }
func (v Value) IsNumber() bool  { return v.kind == KindNumber }
func (v Value) IsString() bool  { return v.kind == KindString }
func (v Value) IsObject() bool  { return v.kind == KindObject }
func (v Value) IsEmpty() bool   { return v.kind == KindEmpty }

// BoolValue returns the Value's boolean payload. Panics if not a boolean;
// callers must check Kind or go through ToBoolean in internal/ecma for
// coercing conversions.
func (v Value) BoolValue() bool {
	v.mustBe(KindBoolean)
	return v.num != 0
}

// NumberValue returns the Value's float64 payload.
func (v Value) NumberValue() float64 {
	v.mustBe(KindNumber)
	return v.num
}

// StringValue returns the Value's string payload.
func (v Value) StringValue() string {
	v.mustBe(KindString)
	return v.str
}

// Object returns the Value's object payload.
func (v Value) Object() *Object {
	v.mustBe(KindObject)
	return v.obj
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("runtime: Value is %s, not %s", v.kind, k))
	}
}

// IsCallable reports whether v is an object with a [[Call]] internal
// method.
func (v Value) IsCallable() bool {
	return v.kind == KindObject && v.obj.IsCallable()
}

// TypeOf implements ES5 11.4.3's typeof operator, which is exempt from
// CheckObjectCoercible and never throws.
func (v Value) TypeOf() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object" // ES5 quirk: typeof null === "object"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		if v.IsCallable() {
			return "function"
		}
		return "object"
	default:
		panic("runtime: TypeOf on non-language value " + v.kind.String())
	}
}

// SameValue implements ES5 9.12, the strict "is this literally the same
// value" comparison used by [[DefineOwnProperty]] and Object.is-style
// checks. Unlike ===, SameValue distinguishes +0 from -0 and treats NaN
// as equal to itself.
func SameValue(x, y Value) bool {
	if x.kind != y.kind {
		return false
	}
	switch x.kind {
	case KindUndefined, KindNull, KindEmpty:
		return true
	case KindBoolean:
		return x.num == y.num
	case KindNumber:
		if math.IsNaN(x.num) && math.IsNaN(y.num) {
			return true
		}
		if x.num == 0 && y.num == 0 {
			return math.Signbit(x.num) == math.Signbit(y.num)
		}
		return x.num == y.num
	case KindString:
		return x.str == y.str
	case KindObject:
		return x.obj == y.obj
	default:
		return false
	}
}
