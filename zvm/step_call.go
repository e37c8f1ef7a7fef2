package zvm

import (
	"github.com/zata-lang/zvm/zclass"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
	"github.com/zata-lang/zvm/zhostfn"
	"github.com/zata-lang/zvm/zvalue"
)

// execCall implements CALL <arg_count> (§4.1): pops the callable, pops
// arg_count arguments (stack order reversed back into call order), then
// dispatches on the callable's kind.
func (vm *VM) execCall(frame *zframe.Frame) *zerror.Error {
	argCount, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	callee, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	args := make([]zvalue.Value, argCount)
	for i := argCount - 1; i >= 0; i-- {
		v, perr := vm.operands.Pop()
		if perr != nil {
			return perr.(*zerror.Error)
		}
		args[i] = v
	}

	switch c := callee.(type) {
	case *zhostfn.Builtin:
		result, err := c.Fn(args)
		if err != nil {
			return toZError(err)
		}
		vm.operands.Push(result)
		return nil

	case *zclass.Function:
		newFrame := zframe.NewClosureFrame(c, frame.PC, args)
		if err := vm.calls.Push(newFrame); err != nil {
			return err.(*zerror.Error)
		}
		return nil

	case *zclass.Class:
		result, err := vm.construct(c, args)
		if err != nil {
			return toZError(err)
		}
		vm.operands.Push(result)
		return nil

	default:
		return zerror.New(zerror.TypeErr, "<object id=%d> is not callable", callee.Header().ID())
	}
}

// construct builds a fresh instance of class, invoking its new slot, then
// __init__ (if the class defines one) with the instance prepended to args
// - the path a CALL on a class value takes (§4.1: "the class's new/init
// slots performing construction"). MAKE_INSTANCE does not come through
// here; it invokes only the new slot.
func (vm *VM) construct(class *zclass.Class, args []zvalue.Value) (zvalue.Value, error) {
	instanceVal, _, err := classMetatypeNew(class)
	if err != nil {
		return nil, err
	}
	if initSlot := class.Instances.Slot(zvalue.SlotInit); initSlot.Bound() {
		initArgs := append([]zvalue.Value{instanceVal}, args...)
		if _, err := vm.CallFunctionValue(mustUserFunction(initSlot), initArgs); err != nil {
			return nil, err
		}
	}
	return instanceVal, nil
}

func classMetatypeNew(class *zclass.Class) (zvalue.Value, bool, error) {
	return zclass.ClassMetatype().Slot(zvalue.SlotNew).Invoke(nil, []zvalue.Value{class})
}

func mustUserFunction(s zvalue.Slot) zvalue.Value {
	fn, _ := s.UserFunction()
	return fn
}

// execRet implements RET (§4.1): pops the current frame, restoring the
// caller's resumption PC. An empty call stack here is a runtime error -
// the root frame never executes RET since module-level code falls off
// the end of its instruction stream instead.
func (vm *VM) execRet(frame *zframe.Frame) *zerror.Error {
	popped, err := vm.calls.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	// ReturnPC is -1 for a frame invoke() pushed on behalf of a metatype
	// slot (a class method called out from inside another opcode, not
	// from a CALL site) - the enclosing frame is mid-instruction, not
	// paused at a resumable PC, so there is nothing to restore here;
	// invoke()'s own loop notices the depth drop and returns instead.
	if caller := vm.calls.Top(); caller != nil && popped.ReturnPC >= 0 {
		caller.PC = popped.ReturnPC
	}
	return nil
}

// execLoadSLL implements LOAD_SLL <fn_index> <arg_count> (§4.1, §4.6):
// pops the module value describing the library, pops arg_count
// arguments, resolves and calls the export.
func (vm *VM) execLoadSLL(frame *zframe.Frame) *zerror.Error {
	fnIndex, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	argCount, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	modVal, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	args := make([]zvalue.Value, argCount)
	for i := argCount - 1; i >= 0; i-- {
		v, perr := vm.operands.Pop()
		if perr != nil {
			return perr.(*zerror.Error)
		}
		args[i] = v
	}
	result, zerr := vm.loadSLL(modVal, fnIndex, args)
	if zerr != nil {
		return zerr
	}
	vm.operands.Push(result)
	return nil
}
