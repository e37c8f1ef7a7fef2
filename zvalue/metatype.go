package zvalue

// SlotID names a single operator slot in a Metatype. The dispatch loop
// indexes a value's metatype by SlotID; it never inspects a Tag to decide
// behaviour (§4.2).
type SlotID int

const (
	SlotNew SlotID = iota
	SlotInit

	SlotAdd
	SlotSub
	SlotMul
	SlotDiv
	SlotMod
	SlotEq
	SlotWeq
	SlotLt
	SlotGt
	SlotLe
	SlotGe
	SlotBitAnd
	SlotBitOr
	SlotBitXor

	SlotNeg
	SlotBitNot

	SlotGetItem
	SlotSetItem
	SlotDelItem

	SlotStr
	SlotNil

	SlotCall
	SlotDel

	slotCount
)

var slotNames = [...]string{
	SlotNew: "new", SlotInit: "init",
	SlotAdd: "add", SlotSub: "sub", SlotMul: "mul", SlotDiv: "div", SlotMod: "mod",
	SlotEq: "eq", SlotWeq: "weq", SlotLt: "lt", SlotGt: "gt", SlotLe: "le", SlotGe: "ge",
	SlotBitAnd: "bit_and", SlotBitOr: "bit_or", SlotBitXor: "bit_xor",
	SlotNeg: "neg", SlotBitNot: "bit_not",
	SlotGetItem: "getitem", SlotSetItem: "setitem", SlotDelItem: "delitem",
	SlotStr: "str", SlotNil: "nil",
	SlotCall: "call", SlotDel: "del",
}

// String names a slot the way it appears in §4.2's slot table, used in
// "<object id=N> cannot support op P" type errors (§4.1).
func (id SlotID) String() string {
	if int(id) >= 0 && int(id) < len(slotNames) && slotNames[id] != "" {
		return slotNames[id]
	}
	return "unknown"
}

// binaryOpSlot maps a B_CALC pattern (§4.1) to its slot.
var binaryOpSlot = [...]SlotID{
	0: SlotAdd, 1: SlotSub, 2: SlotMul, 3: SlotDiv, 4: SlotMod,
	5: SlotEq, 6: SlotWeq, 7: SlotLt, 8: SlotGt, 9: SlotLe, 10: SlotGe,
	11: SlotBitAnd, 12: SlotBitOr, 13: SlotBitXor,
}

// unaryOpSlot maps a U_CALC pattern to its slot.
var unaryOpSlot = [...]SlotID{0: SlotNeg, 1: SlotBitNot}

// SlotCount returns the number of slots a metatype carries, for code that
// needs to range over every slot (e.g. class inheritance resolution).
func SlotCount() int { return int(slotCount) }

// BinarySlot returns the slot a B_CALC pattern dispatches through, and
// whether the pattern is valid.
func BinarySlot(pattern int) (SlotID, bool) {
	if pattern < 0 || pattern >= len(binaryOpSlot) {
		return 0, false
	}
	return binaryOpSlot[pattern], true
}

// UnarySlot returns the slot a U_CALC pattern dispatches through, and
// whether the pattern is valid.
func UnarySlot(pattern int) (SlotID, bool) {
	if pattern < 0 || pattern >= len(unaryOpSlot) {
		return 0, false
	}
	return unaryOpSlot[pattern], true
}

// Native is the signature every host-provided or built-in slot
// implementation conforms to: a vector of argument values in, a single
// value out. Matches the native-callable signature in §6.
type Native func(args []Value) (Value, error)

// Slot is either unbound, a native callable, or a reference to a
// user-defined function value (set when a class defines a method whose
// name matches a slot, e.g. `__add__`). Exactly one of the two is set
// when Bound() is true.
type Slot struct {
	native Native
	userFn Value
}

// BoundNative returns a slot bound to a native callable.
func BoundNative(fn Native) Slot { return Slot{native: fn} }

// BoundUser returns a slot bound to a user-defined function value.
func BoundUser(fn Value) Slot { return Slot{userFn: fn} }

// Bound reports whether the slot carries an implementation.
func (s Slot) Bound() bool { return s.native != nil || s.userFn != nil }

// Native returns the slot's native implementation and whether it has one.
func (s Slot) Native() (Native, bool) { return s.native, s.native != nil }

// UserFunction returns the slot's user-defined function value, if any.
func (s Slot) UserFunction() (Value, bool) { return s.userFn, s.userFn != nil }

// Metatype is a record of operator slots, the sole dispatch mechanism for
// arithmetic, comparison, conversion, container access and lifecycle
// (§3, §4.2). Built-in and user types alike populate one of these; the
// dispatch loop never hard-codes type behaviour.
type Metatype struct {
	Name  string
	slots [slotCount]Slot
}

// NewMetatype constructs an empty metatype; all slots start unbound.
func NewMetatype(name string) *Metatype {
	return &Metatype{Name: name}
}

// Bind installs an implementation for a slot. Rebinding an already-bound
// slot (e.g. a user class overriding a built-in method name) replaces it.
func (m *Metatype) Bind(id SlotID, s Slot) *Metatype {
	m.slots[id] = s
	return m
}

// BindNative is shorthand for Bind(id, BoundNative(fn)).
func (m *Metatype) BindNative(id SlotID, fn Native) *Metatype {
	return m.Bind(id, BoundNative(fn))
}

// Slot returns the slot installed for id, which may be unbound.
func (m *Metatype) Slot(id SlotID) Slot {
	return m.slots[id]
}

// UserCaller invokes a user-defined function value with the given
// arguments. Implemented by the dispatch loop (zvm), which is the only
// component that knows how to push a frame; zvalue stays ignorant of
// frames so the value model has no dependency on the interpreter.
type UserCaller interface {
	CallFunctionValue(fn Value, args []Value) (Value, error)
}

// Invoke calls the slot (native or user) with args, returning the result,
// whether the slot was bound at all, and any error raised by the call
// itself. An unbound slot reports bound=false and the dispatch loop is
// responsible for turning that into a typed "op not supported" error
// carrying the receiver's identity (§4.1).
func (s Slot) Invoke(caller UserCaller, args []Value) (result Value, bound bool, err error) {
	if fn, ok := s.Native(); ok {
		v, err := fn(args)
		return v, true, err
	}
	if fn, ok := s.UserFunction(); ok {
		v, err := caller.CallFunctionValue(fn, args)
		return v, true, err
	}
	return nil, false, nil
}
