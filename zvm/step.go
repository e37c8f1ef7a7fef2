package zvm

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
	"github.com/zata-lang/zvm/zhostfn"
	"github.com/zata-lang/zvm/zvalue"
)

// step decodes and executes a single instruction in frame, the current
// call stack's top. It returns a non-nil *zerror.Error on any failure;
// the dispatch loop never recovers from one (§4.1 "Failure semantics").
func (vm *VM) step(frame *zframe.Frame) *zerror.Error {
	op, err := fetchOp(frame)
	if err != nil {
		return err.(*zerror.Error)
	}

	switch op {
	case NOP:
		return nil
	case HALT:
		vm.running = false
		return nil

	case B_CALC:
		return vm.execBinaryCalc(frame)
	case U_CALC:
		return vm.execUnaryCalc(frame)

	case LOAD_CONST:
		return vm.execLoadConst(frame)
	case LOAD_LOCAL:
		return vm.execLoadLocal(frame)
	case STORE_LOCAL:
		return vm.execStoreLocal(frame)
	case LOAD_GLOBAL:
		return vm.execLoadGlobal(frame)
	case STORE_GLOBAL:
		return vm.execStoreGlobal(frame)
	case LOAD_CLOSURE:
		return vm.execLoadClosure(frame)
	case SWAP:
		if err := vm.operands.Swap(); err != nil {
			return err.(*zerror.Error)
		}
		return nil
	case DUP:
		if err := vm.operands.Dup(); err != nil {
			return err.(*zerror.Error)
		}
		return nil
	case POP:
		v, err := vm.operands.Pop()
		if err != nil {
			return err.(*zerror.Error)
		}
		zvalue.Release(v)
		return nil
	case LOAD_SLL:
		return vm.execLoadSLL(frame)

	case JMP:
		offset, err := fetchOperand(frame)
		if err != nil {
			return err.(*zerror.Error)
		}
		frame.PC += offset
		return nil
	case JMP_IF_TRUE:
		return vm.execCondJump(frame, true)
	case JMP_IF_FALSE:
		return vm.execCondJump(frame, false)

	case CALL:
		return vm.execCall(frame)
	case RET:
		return vm.execRet(frame)

	case MAKE_INSTANCE:
		return vm.execMakeInstance(frame)
	case GET_ATTR:
		return vm.execGetAttr(frame)
	case SET_ATTR:
		return vm.execSetAttr(frame)
	case GET_ITER:
		return vm.execGetIter(frame)
	case NEXT_ITER:
		return vm.execNextIter(frame)

	case ALLOC:
		return vm.execAlloc(frame)
	case FREE:
		return vm.execFree(frame)
	case LOAD_MEM:
		return vm.execLoadMem(frame)
	case STORE_MEM:
		return vm.execStoreMem(frame)

	case SETUP_FINALLY:
		return vm.execSetupHandler(frame, zframe.BlockTryFinally)
	case TRY_FINALLY_START:
		frame.Blocks.Push(zframe.Block{Kind: zframe.BlockTryFinally, StackDepth: vm.operands.Len(), HandlerPC: -1})
		return nil
	case TRY_CATCH_START:
		frame.Blocks.Push(zframe.Block{Kind: zframe.BlockTryCatch, StackDepth: vm.operands.Len(), HandlerPC: -1})
		return nil
	case SETUP_CATCH:
		return vm.execSetupHandler(frame, zframe.BlockTryCatch)
	case END_FINALLY, BS_POP:
		if _, err := frame.Blocks.Pop(); err != nil {
			return err.(*zerror.Error)
		}
		return nil
	case THROW:
		return vm.execThrow(frame)

	default:
		return zerror.New(zerror.BytecodeErr, "unknown opcode 0x%02x at pc %d in code %q", int(op), frame.PC-1, frame.Code.Name)
	}
}

func (vm *VM) execLoadConst(frame *zframe.Frame) *zerror.Error {
	k, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	c, ok := frame.Code.Const(k)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "LOAD_CONST: index %d out of range", k)
	}
	vm.operands.Push(c)
	return nil
}

func (vm *VM) execLoadLocal(frame *zframe.Frame) *zerror.Error {
	i, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	if i < 0 || i >= len(frame.Locals) {
		return zerror.New(zerror.BytecodeErr, "LOAD_LOCAL: index %d out of range", i)
	}
	v := frame.Locals[i]
	if v == nil {
		v = zbuiltin.StateNone
	}
	vm.operands.Push(zvalue.Retain(v))
	return nil
}

func (vm *VM) execStoreLocal(frame *zframe.Frame) *zerror.Error {
	i, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	if i < 0 || i >= len(frame.Locals) {
		return zerror.New(zerror.BytecodeErr, "STORE_LOCAL: index %d out of range", i)
	}
	v, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	if old := frame.Locals[i]; old != nil {
		zvalue.Release(old)
	}
	frame.Locals[i] = v
	return nil
}

func (vm *VM) execLoadGlobal(frame *zframe.Frame) *zerror.Error {
	i, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	name, ok := frame.Code.NameAt(i)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "LOAD_GLOBAL: name index %d out of range", i)
	}
	if v, ok := vm.module.Global(i); ok {
		vm.operands.Push(zvalue.Retain(v))
		return nil
	}
	if fn, ok := vm.builtins.Lookup(name); ok {
		vm.operands.Push(zhostfn.NewBuiltin(name, fn))
		return nil
	}
	return zerror.New(zerror.RuntimeErr, "undefined global %q", name)
}

func (vm *VM) execStoreGlobal(frame *zframe.Frame) *zerror.Error {
	i, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	v, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	if !vm.module.SetGlobal(i, v) {
		return zerror.New(zerror.BytecodeErr, "STORE_GLOBAL: name index %d out of range", i)
	}
	return nil
}

func (vm *VM) execLoadClosure(frame *zframe.Frame) *zerror.Error {
	i, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	name, ok := frame.Code.NameAt(i)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "LOAD_CLOSURE: name index %d out of range", i)
	}
	if frame.Closure == nil {
		return zerror.New(zerror.RuntimeErr, "LOAD_CLOSURE outside a closure")
	}
	v, ok := frame.Closure.Captured[name]
	if !ok {
		return zerror.New(zerror.RuntimeErr, "closure has no captured variable %q", name)
	}
	vm.operands.Push(zvalue.Retain(v))
	return nil
}

func (vm *VM) execCondJump(frame *zframe.Frame, wantTrue bool) *zerror.Error {
	offset, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	v, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	truthy, ok := zbuiltin.IsTruthy(v)
	zvalue.Release(v)
	if !ok {
		return zerror.New(zerror.TypeErr, "conditional jump requires a state value")
	}
	if truthy == wantTrue {
		frame.PC += offset
	}
	return nil
}
