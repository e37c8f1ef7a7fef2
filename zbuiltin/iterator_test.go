package zbuiltin

import (
	"testing"

	"github.com/zata-lang/zvm/zvalue"
)

func TestIteratorNextAdvancesOverAList(t *testing.T) {
	l := NewList([]zvalue.Value{NewInteger(10), NewInteger(20)})
	it := NewIterator(l)

	v, ok, err := it.Next(nil)
	if err != nil || !ok {
		t.Fatalf("expected the first element, got ok=%v err=%v", ok, err)
	}
	if v.(*Integer).Value != 10 {
		t.Fatalf("expected 10, got %v", v)
	}

	v, ok, err = it.Next(nil)
	if err != nil || !ok {
		t.Fatalf("expected the second element, got ok=%v err=%v", ok, err)
	}
	if v.(*Integer).Value != 20 {
		t.Fatalf("expected 20, got %v", v)
	}

	_, ok, err = it.Next(nil)
	if err != nil {
		t.Fatalf("expected exhaustion to report ok=false with no error, got err=%v", err)
	}
	if ok {
		t.Fatal("expected the iterator to be exhausted after the list's elements")
	}
}

func TestIteratorOverUnindexableTarget(t *testing.T) {
	it := NewIterator(StateNone)
	_, ok, err := it.Next(nil)
	if err != nil || ok {
		t.Fatalf("expected a target with no getitem slot to immediately report exhausted, got ok=%v err=%v", ok, err)
	}
}
