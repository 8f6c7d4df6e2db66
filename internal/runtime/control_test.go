package runtime

import "testing"

func TestControlFlowNoneIsInactive(t *testing.T) {
	if None().IsActive() {
		t.Error("None() should not be active")
	}
}

func TestControlFlowReturnIsActive(t *testing.T) {
	cf := Return(Number{Value: 42})
	if !cf.IsActive() {
		t.Error("Return(...) should be active")
	}
	if n, ok := cf.Value.(Number); !ok || n.Value != 42 {
		t.Errorf("expected Return value Number(42), got %#v", cf.Value)
	}
}
