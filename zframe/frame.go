// Package zframe implements the ZVM's frame and stack machine (§4.3): the
// operand stack, the call stack of frames, and the block stack the
// exception opcodes use to record handler locations.
package zframe

import (
	"github.com/zata-lang/zvm/zclass"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Frame is a single activation record: the program counter, a local-slot
// vector sized to the callee's declared local count, the return address
// (the caller's resumption PC), the code object currently executing, a
// name used only for traceback presentation, and - when the frame belongs
// to a closure - the function value LOAD_CLOSURE resolves names against.
type Frame struct {
	PC       int
	Locals   []zvalue.Value
	ReturnPC int
	Code     *zcode.Code
	Name     string
	Blocks   BlockStack
	Closure  *zclass.Function
}

// NewFrame allocates a frame for code, sizing its locals vector to the
// code object's declared local count and copying args into the leading
// slots in order (§4.1's CALL: "arguments occupy slots 0..arg_count-1").
func NewFrame(code *zcode.Code, name string, returnPC int, args []zvalue.Value) *Frame {
	locals := make([]zvalue.Value, code.LocalCount)
	for i, a := range args {
		if i >= len(locals) {
			break
		}
		locals[i] = zvalue.Retain(a)
	}
	return &Frame{PC: 0, Locals: locals, ReturnPC: returnPC, Code: code, Name: name}
}

// NewClosureFrame is NewFrame specialized for invoking a user function
// value, recording it on the frame so LOAD_CLOSURE can resolve captured
// names.
func NewClosureFrame(fn *zclass.Function, returnPC int, args []zvalue.Value) *Frame {
	f := NewFrame(fn.Code, fn.Name, returnPC, args)
	f.Closure = fn
	return f
}

// MaxCallDepth bounds the call stack to prevent runaway recursion from
// exhausting memory; §4.3 suggests 10,000 as a reasonable implementation
// default.
const MaxCallDepth = 10000

// CallStack is the LIFO of frames bounded by MaxCallDepth.
type CallStack struct {
	frames []*Frame
}

func NewCallStack() *CallStack { return &CallStack{} }

func (s *CallStack) Push(f *Frame) error {
	if len(s.frames) >= MaxCallDepth {
		return zerror.New(zerror.StackErr, "call stack exceeded max depth %d", MaxCallDepth)
	}
	s.frames = append(s.frames, f)
	return nil
}

func (s *CallStack) Pop() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, zerror.New(zerror.StackErr, "RET with empty call stack")
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// Top returns the innermost frame without popping it, or nil if empty.
func (s *CallStack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *CallStack) Depth() int { return len(s.frames) }

// Frames returns the stack from innermost to outermost, the order the
// error reporter walks it in for a traceback (§4.7: "top to bottom").
func (s *CallStack) Frames() []*Frame {
	out := make([]*Frame, len(s.frames))
	for i := range s.frames {
		out[i] = s.frames[len(s.frames)-1-i]
	}
	return out
}
