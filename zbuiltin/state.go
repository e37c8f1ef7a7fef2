// Package zbuiltin provides the metatype tables for Zata's primitive
// types (§3, §4.3 "Built-in type library") plus constructor helpers. The
// dispatch loop never special-cases these types; it only ever indexes the
// metatype each constructor attaches.
package zbuiltin

import (
	"fmt"

	"github.com/zata-lang/zvm/zvalue"
)

// StateValue is the four-valued logic variant used for conditionals and
// sentinel returns (§3, GLOSSARY "State").
type StateValue int

const (
	False    StateValue = 0
	True     StateValue = 1
	None     StateValue = 2
	NotFound StateValue = 3
)

func (s StateValue) String() string {
	switch s {
	case False:
		return "false"
	case True:
		return "true"
	case None:
		return "none"
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// State is the runtime value wrapping a StateValue.
type State struct {
	zvalue.Header
	Value StateValue
}

var stateMetatype = zvalue.NewMetatype("state")

// StateMetatype returns the shared metatype bound to every State value.
func StateMetatype() *zvalue.Metatype { return stateMetatype }

// Canonical singletons - JMP_IF_TRUE/FALSE and comparison operators return
// one of these rather than allocating, since State carries no payload
// beyond its four fixed values.
var (
	StateFalse    = &State{Header: zvalue.NewHeader(zvalue.TagState, stateMetatype), Value: False}
	StateTrue     = &State{Header: zvalue.NewHeader(zvalue.TagState, stateMetatype), Value: True}
	StateNone     = &State{Header: zvalue.NewHeader(zvalue.TagState, stateMetatype), Value: None}
	StateNotFound = &State{Header: zvalue.NewHeader(zvalue.TagState, stateMetatype), Value: NotFound}
)

// NewState returns the canonical singleton for v.
func NewState(v StateValue) *State {
	switch v {
	case False:
		return StateFalse
	case True:
		return StateTrue
	case None:
		return StateNone
	default:
		return StateNotFound
	}
}

// FromBool is a convenience wrapper used throughout the arithmetic and
// comparison slots below.
func FromBool(b bool) *State {
	if b {
		return StateTrue
	}
	return StateFalse
}

// IsTruthy implements the JMP_IF_TRUE/JMP_IF_FALSE test in §4.1: the
// value must be of variant state, true iff its numeric value is 1.
func IsTruthy(v zvalue.Value) (bool, bool) {
	s, ok := v.(*State)
	if !ok {
		return false, false
	}
	return s.Value == True, true
}

func init() {
	stateMetatype.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a := args[0].(*State)
		b, ok := args[1].(*State)
		return FromBool(ok && a.Value == b.Value), nil
	})
	stateMetatype.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a := args[0].(*State)
		b, ok := args[1].(*State)
		return FromBool(ok && a.Value == b.Value), nil
	})
	stateMetatype.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return NewString(args[0].(*State).Value.String()), nil
	})
}
