package zframe

import (
	"testing"

	"github.com/zata-lang/zvm/zbuiltin"
)

func TestOperandStackPushPop(t *testing.T) {
	var s OperandStack
	a := zbuiltin.NewInteger(1)
	b := zbuiltin.NewInteger(2)
	s.Push(a)
	s.Push(b)

	got, err := s.Pop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != b {
		t.Fatalf("expected LIFO order, got %v want %v", got, b)
	}

	got, err = s.Pop()
	if err != nil || got != a {
		t.Fatalf("expected %v, got %v, err %v", a, got, err)
	}

	if _, err := s.Pop(); err == nil {
		t.Fatal("expected underflow error on empty stack")
	}
}

func TestOperandStackSwapAndDup(t *testing.T) {
	var s OperandStack
	a := zbuiltin.NewInteger(1)
	b := zbuiltin.NewInteger(2)
	s.Push(a)
	s.Push(b)

	if err := s.Swap(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, _ := s.Peek()
	if top != a {
		t.Fatalf("expected swap to bring %v to top, got %v", a, top)
	}

	if err := s.Dup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected dup to grow the stack to 3, got %d", s.Len())
	}
}

func TestOperandStackTruncate(t *testing.T) {
	var s OperandStack
	s.Push(zbuiltin.NewInteger(1))
	s.Push(zbuiltin.NewInteger(2))
	s.Push(zbuiltin.NewInteger(3))

	s.Truncate(1)
	if s.Len() != 1 {
		t.Fatalf("expected stack truncated to 1, got %d", s.Len())
	}
}

func TestOperandStackUnderflowErrors(t *testing.T) {
	var s OperandStack
	if err := s.Swap(); err == nil {
		t.Fatal("expected underflow error from Swap on empty stack")
	}
	if err := s.Dup(); err == nil {
		t.Fatal("expected underflow error from Dup on empty stack")
	}
	if _, err := s.Peek(); err == nil {
		t.Fatal("expected underflow error from Peek on empty stack")
	}
}
