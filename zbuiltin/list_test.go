package zbuiltin

import (
	"testing"

	"github.com/zata-lang/zvm/zvalue"
)

func TestListConcatenation(t *testing.T) {
	a := NewList([]zvalue.Value{NewInteger(1), NewInteger(2)})
	b := NewList([]zvalue.Value{NewInteger(3)})
	result := invokeBinary(t, listMetatype, zvalue.SlotAdd, a, b).(*List)
	if result.Len() != 3 {
		t.Fatalf("expected a merged list of length 3, got %d", result.Len())
	}
}

func TestListGetItemAndSetItem(t *testing.T) {
	l := NewList([]zvalue.Value{NewInteger(1), NewInteger(2)})

	result, bound, err := listMetatype.Slot(zvalue.SlotGetItem).Invoke(nil, []zvalue.Value{l, NewInteger(1)})
	if !bound || err != nil {
		t.Fatalf("expected bound getitem, got bound=%v err=%v", bound, err)
	}
	if result.(*Integer).Value != 2 {
		t.Fatalf("expected l[1] = 2, got %v", result)
	}

	_, bound, err = listMetatype.Slot(zvalue.SlotSetItem).Invoke(nil, []zvalue.Value{l, NewInteger(0), NewInteger(99)})
	if !bound || err != nil {
		t.Fatalf("expected bound setitem, got bound=%v err=%v", bound, err)
	}
	if l.Elements[0].(*Integer).Value != 99 {
		t.Fatalf("expected l[0] to be updated to 99, got %v", l.Elements[0])
	}
}

func TestListGetItemOutOfRange(t *testing.T) {
	l := NewList(nil)
	_, bound, err := listMetatype.Slot(zvalue.SlotGetItem).Invoke(nil, []zvalue.Value{l, NewInteger(0)})
	if !bound {
		t.Fatal("expected getitem to be bound on an empty list")
	}
	if err == nil {
		t.Fatal("expected an out-of-range index on an empty list to error")
	}
}

func TestListEqComparesElementwise(t *testing.T) {
	a := NewList([]zvalue.Value{NewInteger(1), NewInteger(2)})
	b := NewList([]zvalue.Value{NewInteger(1), NewInteger(2)})
	c := NewList([]zvalue.Value{NewInteger(1), NewInteger(3)})

	eq := invokeBinary(t, listMetatype, zvalue.SlotEq, a, b).(*State)
	if eq.Value != True {
		t.Fatal("expected equal-content lists to compare equal")
	}
	neq := invokeBinary(t, listMetatype, zvalue.SlotEq, a, c).(*State)
	if neq.Value != False {
		t.Fatal("expected differing-content lists to compare unequal")
	}
}

func TestListEqRejectsDifferentLength(t *testing.T) {
	a := NewList([]zvalue.Value{NewInteger(1)})
	b := NewList([]zvalue.Value{NewInteger(1), NewInteger(2)})
	eq := invokeBinary(t, listMetatype, zvalue.SlotEq, a, b).(*State)
	if eq.Value != False {
		t.Fatal("expected lists of different length to compare unequal")
	}
}
