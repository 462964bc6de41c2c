package runtime

import "testing"

func TestDeclarativeEnvironmentBindingLifecycle(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	if env.HasBinding("x") {
		t.Fatal("fresh environment should have no bindings")
	}
	env.CreateMutableBinding("x", true)
	if !env.HasBinding("x") {
		t.Fatal("expected binding after CreateMutableBinding")
	}
	env.SetMutableBinding("x", Number(5), true)
	c := env.GetBindingValue("x", true)
	if c.Value.NumberValue() != 5 {
		t.Fatalf("GetBindingValue = %v, want 5", c.Value)
	}
	if !env.DeleteBinding("x") || env.HasBinding("x") {
		t.Fatal("expected binding to be deletable")
	}
}

func TestDeclarativeEnvironmentStrictUndefinedThrows(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	c := env.GetBindingValue("missing", true)
	if !c.IsThrow() {
		t.Fatal("expected ReferenceError for missing binding")
	}
}

func TestImmutableBindingRejectsSet(t *testing.T) {
	env := NewDeclarativeEnvironment(nil)
	env.CreateImmutableBinding("x")
	env.InitializeImmutableBinding("x", Number(1))
	c := env.SetMutableBinding("x", Number(2), true)
	if !c.IsThrow() {
		t.Fatal("strict assignment to an immutable binding should throw TypeError")
	}
	got := env.GetBindingValue("x", true)
	if got.Value.NumberValue() != 1 {
		t.Fatal("value should remain unchanged")
	}
}

func TestObjectEnvironmentDelegatesToObject(t *testing.T) {
	global := NewObject(nil)
	env := NewObjectEnvironment(global, nil, false)
	env.CreateMutableBinding("x", true)
	env.SetMutableBinding("x", String("hello"), false)
	if global.GetOwnProperty("x") == nil {
		t.Fatal("object environment bindings should be own properties of the bound object")
	}
	c := env.GetBindingValue("x", false)
	if c.Value.StringValue() != "hello" {
		t.Fatalf("GetBindingValue = %v", c.Value)
	}
}

func TestWithEnvironmentProvidesThis(t *testing.T) {
	obj := NewObject(nil)
	withEnv := NewObjectEnvironment(obj, nil, true)
	if withEnv.ImplicitThisValue().Object() != obj {
		t.Fatal("a with-statement environment should provide its bound object as this")
	}
	global := NewObjectEnvironment(NewObject(nil), nil, false)
	if !global.ImplicitThisValue().IsUndefined() {
		t.Fatal("a non-with object environment should not provide this")
	}
}

func TestScopeChainWalksOuter(t *testing.T) {
	outer := NewDeclarativeEnvironment(nil)
	outer.CreateMutableBinding("x", true)
	outer.SetMutableBinding("x", Number(1), true)
	inner := NewDeclarativeEnvironment(outer)
	if inner.HasBinding("x") {
		t.Fatal("HasBinding should not itself walk the outer chain; callers walk it")
	}
	var env Environment = inner
	for env != nil && !env.HasBinding("x") {
		env = env.Outer()
	}
	if env == nil {
		t.Fatal("expected to find x by walking the outer chain")
	}
}
