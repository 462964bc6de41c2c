package runtime

import "testing"

func TestDefineAndGetDataProperty(t *testing.T) {
	o := NewObject(nil)
	c := o.DefineOwnProperty("x", DataDescriptor(Number(42), true, true, true), true)
	if c.IsThrow() {
		t.Fatalf("unexpected throw: %+v", c.Value)
	}
	got := o.Get("x")
	if got.Value.NumberValue() != 42 {
		t.Fatalf("Get(x) = %v, want 42", got.Value)
	}
}

func TestNonConfigurableCannotBeRedefinedAsConfigurable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), true, true, false), true)
	c := o.DefineOwnProperty("x", DataDescriptor(Number(1), true, true, true), false)
	if !c.Value.IsBoolean() || c.Value.BoolValue() {
		t.Fatalf("expected rejection, got %+v", c)
	}
}

func TestNonConfigurableRedefinitionThrowsWhenRequested(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), false, false, false), true)
	c := o.DefineOwnProperty("x", DataDescriptor(Number(2), false, false, false), true)
	if !c.IsThrow() {
		t.Fatal("expected TypeError for redefining a non-writable, non-configurable property with a different value")
	}
}

func TestSameDescriptorRedefinitionIsNoOp(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), false, false, false), true)
	c := o.DefineOwnProperty("x", DataDescriptor(Number(1), false, false, false), true)
	if c.IsThrow() || !c.Value.BoolValue() {
		t.Fatalf("identical redefinition should succeed as a no-op, got %+v", c)
	}
}

func TestPrototypeChainGet(t *testing.T) {
	base := NewObject(nil)
	base.DefineOwnProperty("greeting", DataDescriptor(String("hi"), true, true, true), true)
	derived := NewObject(base)
	got := derived.Get("greeting")
	if got.Value.StringValue() != "hi" {
		t.Fatalf("Get through prototype chain = %v", got.Value)
	}
}

func TestPutCreatesOwnPropertyNotPrototypeProperty(t *testing.T) {
	base := NewObject(nil)
	base.DefineOwnProperty("x", DataDescriptor(Number(1), true, true, true), true)
	derived := NewObject(base)
	derived.Put("x", Number(2), true)
	if derived.GetOwnProperty("x") == nil {
		t.Fatal("Put should create an own property on derived, not mutate the prototype's")
	}
	if base.GetOwnProperty("x").value.NumberValue() != 1 {
		t.Fatal("prototype's own property should be untouched")
	}
}

func TestPutNonWritableStrictThrows(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), false, true, true), true)
	c := o.Put("x", Number(2), true)
	if !c.IsThrow() {
		t.Fatal("strict-mode put to non-writable property should throw TypeError")
	}
}

func TestPutNonWritableNonStrictSilentlyFails(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), false, true, true), true)
	c := o.Put("x", Number(2), false)
	if c.IsThrow() {
		t.Fatal("non-strict put should not throw")
	}
	if o.Get("x").Value.NumberValue() != 1 {
		t.Fatal("value should be unchanged")
	}
}

func TestDeleteNonConfigurable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwnProperty("x", DataDescriptor(Number(1), true, true, false), true)
	c := o.Delete("x", false)
	if c.Value.BoolValue() {
		t.Fatal("deleting a non-configurable property should return false")
	}
	if o.GetOwnProperty("x") == nil {
		t.Fatal("property should still exist")
	}
}

func TestAccessorProperty(t *testing.T) {
	o := NewObject(nil)
	var stored Value = Number(0)
	getter := NewNativeFunction(nil, "get", 0, func(this Value, args []Value) Completion {
		return NormalCompletion(stored)
	})
	setter := NewNativeFunction(nil, "set", 1, func(this Value, args []Value) Completion {
		stored = args[0]
		return NormalCompletion(Undefined)
	})
	o.DefineOwnProperty("x", AccessorDescriptor(getter, setter, true, true), true)
	o.Put("x", Number(99), true)
	if got := o.Get("x"); got.Value.NumberValue() != 99 {
		t.Fatalf("accessor round-trip failed, got %v", got.Value)
	}
}
