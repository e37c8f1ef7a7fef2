// Package zclass implements the user-defined object model variants:
// function, class and instance (§3). Classes populate an instance
// metatype from methods whose names match a metatype slot name (e.g.
// `__add__`), per §4.2 "User type" - the dispatch loop forwards through
// that slot exactly as it would to any native implementation.
package zclass

import (
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zvalue"
)

// Function is a user-defined callable: a name, declared argument count,
// code object, and - for closures - the free-variable names it captures
// plus the environment captured at creation time (§3, §9 Open Question 2
// on LOAD_CLOSURE).
type Function struct {
	zvalue.Header
	Name     string
	ArgCount int
	Code     *zcode.Code
	FreeVars []string
	Captured map[string]zvalue.Value
}

var functionMetatype = zvalue.NewMetatype("function")

func FunctionMetatype() *zvalue.Metatype { return functionMetatype }

func NewFunction(name string, argCount int, code *zcode.Code, freeVars []string, captured map[string]zvalue.Value) *Function {
	return &Function{
		Header:   zvalue.NewHeader(zvalue.TagFunction, functionMetatype),
		Name:     name,
		ArgCount: argCount,
		Code:     code,
		FreeVars: freeVars,
		Captured: captured,
	}
}

// slotMethodNames maps the dunder-style method name a class may define to
// the metatype slot it binds, per §4.2.
var slotMethodNames = map[string]zvalue.SlotID{
	"__new__": zvalue.SlotNew, "__init__": zvalue.SlotInit,
	"__add__": zvalue.SlotAdd, "__sub__": zvalue.SlotSub, "__mul__": zvalue.SlotMul,
	"__div__": zvalue.SlotDiv, "__mod__": zvalue.SlotMod,
	"__eq__": zvalue.SlotEq, "__weq__": zvalue.SlotWeq,
	"__lt__": zvalue.SlotLt, "__gt__": zvalue.SlotGt, "__le__": zvalue.SlotLe, "__ge__": zvalue.SlotGe,
	"__and__": zvalue.SlotBitAnd, "__or__": zvalue.SlotBitOr, "__xor__": zvalue.SlotBitXor,
	"__neg__": zvalue.SlotNeg, "__not__": zvalue.SlotBitNot,
	"__getitem__": zvalue.SlotGetItem, "__setitem__": zvalue.SlotSetItem, "__delitem__": zvalue.SlotDelItem,
	"__str__": zvalue.SlotStr, "__nil__": zvalue.SlotNil,
	"__call__": zvalue.SlotCall, "__del__": zvalue.SlotDel,
}

// SlotNameFor returns the method name a class would define to back id,
// and whether one is defined.
func SlotNameFor(id zvalue.SlotID) (string, bool) {
	for name, slot := range slotMethodNames {
		if slot == id {
			return name, true
		}
	}
	return "", false
}
