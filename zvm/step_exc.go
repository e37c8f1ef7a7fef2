package zvm

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
)

// execSetupHandler implements SETUP_FINALLY/SETUP_CATCH: both set the
// handler PC on the block TRY_FINALLY_START/TRY_CATCH_START most recently
// opened. kind guards against setting a catch handler on a finally block
// or vice versa.
func (vm *VM) execSetupHandler(frame *zframe.Frame, kind zframe.BlockKind) *zerror.Error {
	offset, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	block, ok := frame.Blocks.Top()
	if !ok || block.Kind != kind {
		return zerror.New(zerror.RuntimeErr, "SETUP_%s outside a matching try block", kind.String())
	}
	block.HandlerPC = frame.PC + offset
	frame.Blocks.SetTop(block)
	return nil
}

// execThrow implements THROW (§4.1): pops the thrown value, then unwinds
// - first the current frame's block stack looking for a handler, then
// (frame by frame) the call stack - until one is found. A handler match
// truncates the operand stack back to the block's entry depth, pushes
// the thrown value, and resumes at the handler PC. No match anywhere
// turns the throw into a fatal runtime error (§4.1 "Failure semantics":
// there is no implicit catch).
func (vm *VM) execThrow(frame *zframe.Frame) *zerror.Error {
	thrown, err := vm.operands.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	for {
		top := vm.calls.Top()
		if top == nil {
			return zerror.New(zerror.RuntimeErr, "uncaught throw")
		}
		if block, ok := top.Blocks.FindHandler(); ok {
			vm.operands.Truncate(block.StackDepth)
			vm.operands.Push(thrown)
			top.PC = block.HandlerPC
			return nil
		}
		if _, err := vm.calls.Pop(); err != nil {
			return err.(*zerror.Error)
		}
	}
}
