package runtime

import "testing"

func TestArrayIndexAssignmentGrowsLength(t *testing.T) {
	a := NewArray(nil, 0)
	a.DefineOwnProperty("0", DataDescriptor(String("x"), true, true, true), true)
	a.DefineOwnProperty("5", DataDescriptor(String("y"), true, true, true), true)
	length := a.Get("length").Value.NumberValue()
	if length != 6 {
		t.Fatalf("length = %v, want 6", length)
	}
}

func TestArrayLengthTruncationDeletesIndices(t *testing.T) {
	a := NewArray(nil, 0)
	a.DefineOwnProperty("0", DataDescriptor(String("x"), true, true, true), true)
	a.DefineOwnProperty("1", DataDescriptor(String("y"), true, true, true), true)
	a.DefineOwnProperty("2", DataDescriptor(String("z"), true, true, true), true)
	a.DefineOwnProperty("length", DataDescriptor(Number(1), true, false, false), true)
	if a.GetOwnProperty("1") != nil || a.GetOwnProperty("2") != nil {
		t.Fatal("truncating length should delete indices >= new length")
	}
	if a.GetOwnProperty("0") == nil {
		t.Fatal("index below new length should survive")
	}
}

func TestArrayLengthTruncationBlockedByNonConfigurable(t *testing.T) {
	a := NewArray(nil, 0)
	a.DefineOwnProperty("0", DataDescriptor(String("x"), true, true, true), true)
	a.DefineOwnProperty("1", DataDescriptor(String("y"), true, true, false), true)
	c := a.DefineOwnProperty("length", DataDescriptor(Number(0), true, false, false), false)
	if c.Value.BoolValue() {
		t.Fatal("truncation past a non-configurable element should fail")
	}
	if a.GetOwnProperty("1") == nil {
		t.Fatal("non-configurable element should survive a blocked truncation")
	}
}

func TestIsArrayIndexRejectsNonCanonicalForms(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"0", true}, {"1", true}, {"4294967294", true},
		{"4294967295", false}, // 2^32-1 is not a valid index
		{"01", false},         // leading zero doesn't round-trip
		{"-1", false},
		{"x", false},
	}
	for _, c := range cases {
		_, ok := isArrayIndex(c.name)
		if ok != c.ok {
			t.Errorf("isArrayIndex(%q) = %v, want %v", c.name, ok, c.ok)
		}
	}
}
