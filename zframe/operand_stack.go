package zframe

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// OperandStack is the LIFO every instruction reads its operands from and
// writes its results to (§4.3). Underflow is a stack error, not a panic.
type OperandStack struct {
	values []zvalue.Value
}

func (s *OperandStack) Push(v zvalue.Value) {
	s.values = append(s.values, v)
}

func (s *OperandStack) Pop() (zvalue.Value, error) {
	if len(s.values) == 0 {
		return nil, zerror.New(zerror.StackErr, "operand stack underflow")
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Peek returns the top value without popping it.
func (s *OperandStack) Peek() (zvalue.Value, error) {
	if len(s.values) == 0 {
		return nil, zerror.New(zerror.StackErr, "operand stack underflow")
	}
	return s.values[len(s.values)-1], nil
}

// Swap exchanges the top two values, as the SWAP opcode requires.
func (s *OperandStack) Swap() error {
	if len(s.values) < 2 {
		return zerror.New(zerror.StackErr, "operand stack underflow")
	}
	n := len(s.values)
	s.values[n-1], s.values[n-2] = s.values[n-2], s.values[n-1]
	return nil
}

// Dup pushes a second reference to the top value, as DUP requires.
func (s *OperandStack) Dup() error {
	top, err := s.Peek()
	if err != nil {
		return err
	}
	s.Push(zvalue.Retain(top))
	return nil
}

func (s *OperandStack) Len() int { return len(s.values) }

// Truncate discards values down to depth, used when unwinding the operand
// stack back to a block's entry depth on THROW.
func (s *OperandStack) Truncate(depth int) {
	for len(s.values) > depth {
		zvalue.Release(s.values[len(s.values)-1])
		s.values = s.values[:len(s.values)-1]
	}
}

// Values returns the full stack bottom to top, used by the host entry
// point to report the final stack on a normal return (§6).
func (s *OperandStack) Values() []zvalue.Value {
	return append([]zvalue.Value(nil), s.values...)
}
