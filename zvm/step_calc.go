package zvm

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
	"github.com/zata-lang/zvm/zvalue"
)

// execBinaryCalc implements B_CALC: pops rhs then lhs (rhs was pushed
// last, so it's on top), dispatches through lhs's metatype at the slot
// the pattern operand names (§4.1, §4.2).
func (vm *VM) execBinaryCalc(frame *zframe.Frame) *zerror.Error {
	pattern, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	slot, ok := zvalue.BinarySlot(pattern)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "B_CALC: unknown pattern %d", pattern)
	}
	rhs, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	lhs, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	result, bound, callErr := lhs.Header().Metatype().Slot(slot).Invoke(vm, []zvalue.Value{lhs, rhs})
	if callErr != nil {
		return toZError(callErr)
	}
	if !bound {
		// §4.1 "Comparison of mismatched variants yields state(False) for
		// equality operators and a type error for ordering operators."
		if slot == zvalue.SlotEq || slot == zvalue.SlotWeq {
			vm.operands.Push(zbuiltin.FromBool(false))
			return nil
		}
		return zerror.TypeErrorf(lhs.Header().ID(), slot.String())
	}
	vm.operands.Push(result)
	return nil
}

// execUnaryCalc implements U_CALC: pops the sole operand and dispatches
// through its metatype at the slot the pattern names.
func (vm *VM) execUnaryCalc(frame *zframe.Frame) *zerror.Error {
	pattern, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	slot, ok := zvalue.UnarySlot(pattern)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "U_CALC: unknown pattern %d", pattern)
	}
	v, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	result, bound, callErr := v.Header().Metatype().Slot(slot).Invoke(vm, []zvalue.Value{v})
	if callErr != nil {
		return toZError(callErr)
	}
	if !bound {
		return zerror.TypeErrorf(v.Header().ID(), slot.String())
	}
	vm.operands.Push(result)
	return nil
}

// toZError normalizes an arbitrary error from a native slot or a user
// call into a *zerror.Error, wrapping anything that isn't one already
// (a user function forwarding an error is still typed by the time it
// reaches here in practice, but slot implementations are free Go code).
func toZError(err error) *zerror.Error {
	if zerr, ok := err.(*zerror.Error); ok {
		return zerr
	}
	return zerror.New(zerror.RuntimeErr, "%v", err)
}
