package runtime

import (
	"errors"
	"testing"
)

func TestNewFaultMessage(t *testing.T) {
	f := NewFault(FaultAssertion, "register window overrun")
	if f.Kind != FaultAssertion {
		t.Fatalf("expected FaultAssertion, got %v", f.Kind)
	}
	if f.Error() != "register window overrun" {
		t.Fatalf("unexpected message: %q", f.Error())
	}
}

func TestWrapFaultPreservesCause(t *testing.T) {
	cause := errors.New("heap exhausted")
	f := WrapFault(FaultOutOfMemory, cause, "allocating object")
	if f.Cause().Error() != cause.Error() {
		t.Fatalf("expected wrapped cause to round-trip, got %q", f.Cause())
	}
	if f.Error() == "" {
		t.Fatal("expected a non-empty wrapped message")
	}
}
