package zbuiltin

import (
	"testing"

	"github.com/zata-lang/zvm/zvalue"
)

func TestNewStateReturnsCanonicalSingletons(t *testing.T) {
	cases := []struct {
		v    StateValue
		want *State
	}{
		{False, StateFalse}, {True, StateTrue}, {None, StateNone}, {NotFound, StateNotFound},
	}
	for _, c := range cases {
		if got := NewState(c.v); got != c.want {
			t.Errorf("NewState(%v) = %p, want %p", c.v, got, c.want)
		}
	}
}

func TestFromBool(t *testing.T) {
	if FromBool(true) != StateTrue {
		t.Error("expected FromBool(true) to be the True singleton")
	}
	if FromBool(false) != StateFalse {
		t.Error("expected FromBool(false) to be the False singleton")
	}
}

func TestIsTruthy(t *testing.T) {
	truthy, ok := IsTruthy(StateTrue)
	if !ok || !truthy {
		t.Fatal("expected StateTrue to be truthy")
	}
	truthy, ok = IsTruthy(StateNone)
	if !ok || truthy {
		t.Fatal("expected StateNone to be falsy but a valid state value")
	}
	if _, ok := IsTruthy(NewInteger(1)); ok {
		t.Fatal("expected a non-state value to fail the truthiness check")
	}
}

func TestStateEqAndWeqAreIdentical(t *testing.T) {
	for _, slot := range []zvalue.SlotID{zvalue.SlotEq, zvalue.SlotWeq} {
		result, bound, err := stateMetatype.Slot(slot).Invoke(nil, []zvalue.Value{StateTrue, StateTrue})
		if !bound || err != nil {
			t.Fatalf("expected %v bound with no error, got bound=%v err=%v", slot, bound, err)
		}
		if result.(*State) != StateTrue {
			t.Fatalf("expected StateTrue == StateTrue via %v, got %v", slot, result)
		}
	}
}

func TestStateEqRejectsNonState(t *testing.T) {
	result, bound, err := stateMetatype.Slot(zvalue.SlotEq).Invoke(nil, []zvalue.Value{StateTrue, NewInteger(1)})
	if !bound || err != nil {
		t.Fatalf("expected SlotEq bound with no error, got bound=%v err=%v", bound, err)
	}
	if result.(*State) != StateFalse {
		t.Fatal("expected comparing a state to a non-state value to be False")
	}
}

func TestStateStrSlot(t *testing.T) {
	result, bound, err := stateMetatype.Slot(zvalue.SlotStr).Invoke(nil, []zvalue.Value{StateNotFound})
	if !bound || err != nil {
		t.Fatalf("expected bound str slot, got bound=%v err=%v", bound, err)
	}
	if result.(*String).Value != "not_found" {
		t.Fatalf("expected \"not_found\", got %v", result)
	}
}
