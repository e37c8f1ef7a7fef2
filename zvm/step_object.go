package zvm

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zclass"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
	"github.com/zata-lang/zvm/zvalue"
)

// execMakeInstance implements MAKE_INSTANCE <const_k> (§4.1): fetches a
// class from the constant pool and invokes its new slot, pushing the
// fresh instance. Unlike CALL on a class value, this opcode carries no
// arg_count operand, so it never invokes __init__ - a compiler wanting
// construction-with-arguments emits CALL against the class instead.
func (vm *VM) execMakeInstance(frame *zframe.Frame) *zerror.Error {
	k, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	c, ok := frame.Code.Const(k)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "MAKE_INSTANCE: const index %d out of range", k)
	}
	class, ok := c.(*zclass.Class)
	if !ok {
		return zerror.New(zerror.TypeErr, "MAKE_INSTANCE: constant %d is not a class", k)
	}
	instance, _, callErr := classMetatypeNew(class)
	if callErr != nil {
		return toZError(callErr)
	}
	vm.operands.Push(instance)
	return nil
}

// execGetAttr implements GET_ATTR <name_k> (§4.1): pops a target (an
// instance, class, or module) and pushes the named attribute. Instances
// shadow class attributes of the same name.
func (vm *VM) execGetAttr(frame *zframe.Frame) *zerror.Error {
	name, zerr := fetchName(frame)
	if zerr != nil {
		return zerr
	}
	target, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	switch t := target.(type) {
	case *zclass.Instance:
		v, ok := t.GetAttr(name)
		if !ok {
			return zerror.New(zerror.TypeErr, "<object id=%d> has no attribute %q", t.Header().ID(), name)
		}
		vm.operands.Push(v)
		return nil
	case *zclass.Class:
		v, ok := t.Lookup(name)
		if !ok {
			return zerror.New(zerror.TypeErr, "class %q has no attribute %q", t.Name, name)
		}
		vm.operands.Push(v)
		return nil
	case *zcode.Module:
		v, ok := t.Attributes[name]
		if !ok {
			return zerror.New(zerror.TypeErr, "module %q has no attribute %q", t.Name, name)
		}
		vm.operands.Push(v)
		return nil
	default:
		return zerror.New(zerror.TypeErr, "<object id=%d> does not support attribute access", target.Header().ID())
	}
}

// execSetAttr implements SET_ATTR <name_k> (§4.1): "pops value then
// target and stores."
func (vm *VM) execSetAttr(frame *zframe.Frame) *zerror.Error {
	name, zerr := fetchName(frame)
	if zerr != nil {
		return zerr
	}
	value, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	target, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	switch t := target.(type) {
	case *zclass.Instance:
		t.SetAttr(name, value)
		return nil
	case *zclass.Class:
		if old, ok := t.Attributes[name]; ok {
			zvalue.Release(old)
		}
		t.Attributes[name] = zvalue.Retain(value)
		return nil
	case *zcode.Module:
		if old, ok := t.Attributes[name]; ok {
			zvalue.Release(old)
		}
		t.Attributes[name] = zvalue.Retain(value)
		return nil
	default:
		return zerror.New(zerror.TypeErr, "<object id=%d> does not support attribute assignment", target.Header().ID())
	}
}

// execGetIter implements GET_ITER (§4.1): pops a container and pushes an
// iterator over it. The iterator stays on the operand stack for the
// duration of the loop; NEXT_ITER peeks it rather than popping it.
func (vm *VM) execGetIter(frame *zframe.Frame) *zerror.Error {
	target, perr := vm.operands.Pop()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	vm.operands.Push(zbuiltin.NewIterator(target))
	return nil
}

// execNextIter implements NEXT_ITER (§4.1): peeks the iterator left on
// top of the stack by GET_ITER and pushes the next element, or
// state(not_found) once the underlying container refuses the index.
func (vm *VM) execNextIter(frame *zframe.Frame) *zerror.Error {
	top, perr := vm.operands.Peek()
	if perr != nil {
		return perr.(*zerror.Error)
	}
	it, ok := top.(*zbuiltin.Iterator)
	if !ok {
		return zerror.New(zerror.TypeErr, "NEXT_ITER requires an iterator on top of stack")
	}
	v, _, err := it.Next(vm)
	if err != nil {
		return toZError(err)
	}
	vm.operands.Push(v)
	return nil
}

func fetchName(frame *zframe.Frame) (string, *zerror.Error) {
	i, err := fetchOperand(frame)
	if err != nil {
		return "", err.(*zerror.Error)
	}
	name, ok := frame.Code.NameAt(i)
	if !ok {
		return "", zerror.New(zerror.BytecodeErr, "name index %d out of range", i)
	}
	return name, nil
}
