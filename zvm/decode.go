package zvm

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
)

// fetchOp reads the opcode word at the frame's PC and advances past it.
func fetchOp(frame *zframe.Frame) (Opcode, error) {
	if frame.PC < 0 || frame.PC >= len(frame.Code.Instructions) {
		return 0, zerror.New(zerror.BytecodeErr, "pc %d out of range for code %q", frame.PC, frame.Code.Name)
	}
	op := Opcode(frame.Code.Instructions[frame.PC])
	frame.PC++
	return op, nil
}

// fetchOperand reads one inline operand word and advances past it.
func fetchOperand(frame *zframe.Frame) (int, error) {
	if frame.PC < 0 || frame.PC >= len(frame.Code.Instructions) {
		return 0, zerror.New(zerror.BytecodeErr, "truncated instruction in code %q", frame.Code.Name)
	}
	v := frame.Code.Instructions[frame.PC]
	frame.PC++
	return v, nil
}
