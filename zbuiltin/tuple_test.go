package zbuiltin

import (
	"testing"

	"github.com/zata-lang/zvm/zvalue"
)

func TestTupleGetItem(t *testing.T) {
	tup := NewTuple([]zvalue.Value{NewInteger(1), NewInteger(2)})
	result, bound, err := tupleMetatype.Slot(zvalue.SlotGetItem).Invoke(nil, []zvalue.Value{tup, NewInteger(1)})
	if !bound || err != nil {
		t.Fatalf("expected bound getitem, got bound=%v err=%v", bound, err)
	}
	if result.(*Integer).Value != 2 {
		t.Fatalf("expected tup[1] = 2, got %v", result)
	}
}

func TestTupleGetItemOutOfRange(t *testing.T) {
	tup := NewTuple(nil)
	_, bound, err := tupleMetatype.Slot(zvalue.SlotGetItem).Invoke(nil, []zvalue.Value{tup, NewInteger(0)})
	if !bound {
		t.Fatal("expected getitem to be bound on an empty tuple")
	}
	if err == nil {
		t.Fatal("expected an out-of-range index to error")
	}
}

func TestTupleEqComparesElementwise(t *testing.T) {
	a := NewTuple([]zvalue.Value{NewInteger(1), NewInteger(2)})
	b := NewTuple([]zvalue.Value{NewInteger(1), NewInteger(2)})
	c := NewTuple([]zvalue.Value{NewInteger(1), NewInteger(3)})

	eq := invokeBinary(t, tupleMetatype, zvalue.SlotEq, a, b).(*State)
	if eq.Value != True {
		t.Fatal("expected equal-content tuples to compare equal")
	}
	neq := invokeBinary(t, tupleMetatype, zvalue.SlotEq, a, c).(*State)
	if neq.Value != False {
		t.Fatal("expected differing-content tuples to compare unequal")
	}
}
