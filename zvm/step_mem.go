package zvm

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zframe"
)

// memory is a flat bump-allocated arena backing the legacy ALLOC/FREE/
// LOAD_MEM/STORE_MEM opcode group (§4.1, §9). Their purpose alongside the
// managed value model is undefined in the source; this treats them as an
// optional raw scratch space a module may use without it ever touching
// the value model proper. FREE is a no-op bounds check - there's no
// mechanism described to reclaim arena space, so pretending otherwise
// would be inventing semantics the source doesn't have.
type memory struct {
	cells []uint64
}

const maxMemoryCells = 1 << 20

func newMemory() *memory { return &memory{} }

func (m *memory) alloc(size int) (int, *zerror.Error) {
	if size < 0 || len(m.cells)+size > maxMemoryCells {
		return 0, zerror.New(zerror.MemoryErr, "allocation of %d cells exceeds arena capacity", size)
	}
	addr := len(m.cells)
	m.cells = append(m.cells, make([]uint64, size)...)
	return addr, nil
}

func (m *memory) load(addr int) (uint64, *zerror.Error) {
	if addr < 0 || addr >= len(m.cells) {
		return 0, zerror.New(zerror.MemoryErr, "load of unmapped address %d", addr)
	}
	return m.cells[addr], nil
}

func (m *memory) store(addr int, v uint64) *zerror.Error {
	if addr < 0 || addr >= len(m.cells) {
		return zerror.New(zerror.MemoryErr, "store to unmapped address %d", addr)
	}
	m.cells[addr] = v
	return nil
}

func (vm *VM) execAlloc(frame *zframe.Frame) *zerror.Error {
	k, err := fetchOperand(frame)
	if err != nil {
		return err.(*zerror.Error)
	}
	c, ok := frame.Code.Const(k)
	if !ok {
		return zerror.New(zerror.BytecodeErr, "ALLOC: const index %d out of range", k)
	}
	size, ok := c.(*zbuiltin.Integer)
	if !ok {
		return zerror.New(zerror.TypeErr, "ALLOC: size constant must be an integer")
	}
	addr, zerr := vm.mem.alloc(int(size.Value))
	if zerr != nil {
		return zerr
	}
	vm.operands.Push(zbuiltin.NewInteger(int32(addr)))
	return nil
}

func (vm *VM) execFree(frame *zframe.Frame) *zerror.Error {
	v, err := vm.operands.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	addr, ok := v.(*zbuiltin.Integer)
	if !ok {
		return zerror.New(zerror.TypeErr, "FREE requires an address integer")
	}
	if int(addr.Value) < 0 || int(addr.Value) >= len(vm.mem.cells) {
		return zerror.New(zerror.MemoryErr, "FREE of unallocated address %d", addr.Value)
	}
	return nil
}

func (vm *VM) execLoadMem(frame *zframe.Frame) *zerror.Error {
	v, err := vm.operands.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	addr, ok := v.(*zbuiltin.Integer)
	if !ok {
		return zerror.New(zerror.TypeErr, "LOAD_MEM requires an address integer")
	}
	value, zerr := vm.mem.load(int(addr.Value))
	if zerr != nil {
		return zerr
	}
	vm.operands.Push(zbuiltin.NewLongInteger(int64(value)))
	return nil
}

func (vm *VM) execStoreMem(frame *zframe.Frame) *zerror.Error {
	value, err := vm.operands.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	addrVal, err := vm.operands.Pop()
	if err != nil {
		return err.(*zerror.Error)
	}
	addr, ok := addrVal.(*zbuiltin.Integer)
	if !ok {
		return zerror.New(zerror.TypeErr, "STORE_MEM requires an address integer")
	}
	var word uint64
	switch n := value.(type) {
	case *zbuiltin.Integer:
		word = uint64(uint32(n.Value))
	case *zbuiltin.LongInteger:
		word = uint64(n.Value)
	default:
		return zerror.New(zerror.TypeErr, "STORE_MEM requires an integer value")
	}
	return vm.mem.store(int(addr.Value), word)
}
