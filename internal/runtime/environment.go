package runtime

// Environment is a lexical environment record, ES5 10.2: either a
// declarative environment record (function scopes, catch clauses) or an
// object environment record (the global object, or a `with` statement's
// bound object). Both kinds chain to an outer environment, forming the
// scope chain a Reference's identifier resolution walks.
type Environment interface {
	HasBinding(name string) bool
	CreateMutableBinding(name string, deletable bool)
	SetMutableBinding(name string, v Value, strict bool) Completion
	GetBindingValue(name string, strict bool) Completion
	DeleteBinding(name string) bool
	ImplicitThisValue() Value
	Outer() Environment

	// declarative-only operations; object environment records panic if
	// called, matching ES5 10.2.1's restriction that these are never
	// invoked against them by the syntax-directed operations that use
	// lexical environments (they're only ever used for function/catch
	// scopes, which are always declarative).
	CreateImmutableBinding(name string)
	InitializeImmutableBinding(name string, v Value)
}

type declarativeBinding struct {
	value       Value
	mutable     bool
	deletable   bool
	initialized bool
}

// DeclarativeEnvironment implements ES5 10.2.1, used for function
// activation records, catch clause bindings, and the top-level
// `var`/function declarations of eval code.
type DeclarativeEnvironment struct {
	outer    Environment
	bindings map[string]*declarativeBinding

	gc envGCState
}

// NewDeclarativeEnvironment creates a declarative environment chained to
// outer (nil for none).
func NewDeclarativeEnvironment(outer Environment) *DeclarativeEnvironment {
	e := &DeclarativeEnvironment{outer: outer, bindings: make(map[string]*declarativeBinding)}
	e.gc.handle = accountAlloc(envRecordSize)
	if envAllocHook != nil {
		envAllocHook(e)
	}
	return e
}

func (e *DeclarativeEnvironment) envGC() *envGCState { return &e.gc }

func (e *DeclarativeEnvironment) Outer() Environment { return e.outer }

func (e *DeclarativeEnvironment) HasBinding(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

func (e *DeclarativeEnvironment) CreateMutableBinding(name string, deletable bool) {
	e.bindings[name] = &declarativeBinding{value: Undefined, mutable: true, deletable: deletable, initialized: true}
}

func (e *DeclarativeEnvironment) SetMutableBinding(name string, v Value, strict bool) Completion {
	b, ok := e.bindings[name]
	if !ok {
		if strict {
			return ThrowReferenceError("%s is not defined", name)
		}
		e.CreateMutableBinding(name, true)
		b = e.bindings[name]
	}
	if !b.mutable {
		if strict {
			return ThrowTypeError("assignment to constant variable %q", name)
		}
		return EmptyCompletion()
	}
	b.value = v
	return EmptyCompletion()
}

func (e *DeclarativeEnvironment) GetBindingValue(name string, strict bool) Completion {
	b, ok := e.bindings[name]
	if !ok || !b.initialized {
		if strict || !ok {
			return ThrowReferenceError("%s is not defined", name)
		}
		return NormalCompletion(Undefined)
	}
	return NormalCompletion(b.value)
}

func (e *DeclarativeEnvironment) DeleteBinding(name string) bool {
	b, ok := e.bindings[name]
	if !ok {
		return true
	}
	if !b.deletable {
		return false
	}
	delete(e.bindings, name)
	return true
}

func (e *DeclarativeEnvironment) ImplicitThisValue() Value { return Undefined }

func (e *DeclarativeEnvironment) CreateImmutableBinding(name string) {
	e.bindings[name] = &declarativeBinding{mutable: false, initialized: false}
}

func (e *DeclarativeEnvironment) InitializeImmutableBinding(name string, v Value) {
	b := e.bindings[name]
	b.value = v
	b.initialized = true
}

// ObjectEnvironment implements ES5 10.2.1.2, used for the global
// environment (bound to the global object) and for `with` statement
// bodies (bound to ToObject(the with expression)).
type ObjectEnvironment struct {
	outer       Environment
	bindingObj  *Object
	provideThis bool // true only for `with` environments, per ES5 10.2.1.2.6

	gc envGCState
}

// NewObjectEnvironment creates an object environment bound to obj,
// chained to outer.
func NewObjectEnvironment(obj *Object, outer Environment, provideThis bool) *ObjectEnvironment {
	e := &ObjectEnvironment{outer: outer, bindingObj: obj, provideThis: provideThis}
	e.gc.handle = accountAlloc(envRecordSize)
	if envAllocHook != nil {
		envAllocHook(e)
	}
	return e
}

func (e *ObjectEnvironment) envGC() *envGCState { return &e.gc }

func (e *ObjectEnvironment) Outer() Environment   { return e.outer }
func (e *ObjectEnvironment) BindingObject() *Object { return e.bindingObj }

func (e *ObjectEnvironment) HasBinding(name string) bool {
	return e.bindingObj.HasProperty(name)
}

func (e *ObjectEnvironment) CreateMutableBinding(name string, deletable bool) {
	e.bindingObj.DefineOwnProperty(name, DataDescriptor(Undefined, true, true, deletable), true)
}

func (e *ObjectEnvironment) SetMutableBinding(name string, v Value, strict bool) Completion {
	return e.bindingObj.Put(name, v, strict)
}

func (e *ObjectEnvironment) GetBindingValue(name string, strict bool) Completion {
	if !e.bindingObj.HasProperty(name) {
		if strict {
			return ThrowReferenceError("%s is not defined", name)
		}
		return NormalCompletion(Undefined)
	}
	return e.bindingObj.Get(name)
}

func (e *ObjectEnvironment) DeleteBinding(name string) bool {
	c := e.bindingObj.Delete(name, false)
	return c.Value.IsBoolean() && c.Value.BoolValue()
}

func (e *ObjectEnvironment) ImplicitThisValue() Value {
	if e.provideThis {
		return FromObject(e.bindingObj)
	}
	return Undefined
}

func (e *ObjectEnvironment) CreateImmutableBinding(name string) {
	panic("runtime: CreateImmutableBinding on an object environment record")
}

func (e *ObjectEnvironment) InitializeImmutableBinding(name string, v Value) {
	panic("runtime: InitializeImmutableBinding on an object environment record")
}

// NewFunctionEnvironment builds the activation-record environment ES5
// 10.4.3/13.2.1 describes: a fresh, empty declarative environment
// chained to the function's closed-over scope. internal/vm binds the
// formal parameters and `arguments` into it; the function's own name is
// not bound here.
func NewFunctionEnvironment(scope Environment) *DeclarativeEnvironment {
	return NewDeclarativeEnvironment(scope)
}
