package zvm

import (
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zloader"
	"github.com/zata-lang/zvm/zvalue"
)

// loadSLL resolves modVal (expected to be a module value whose path names
// a native shared library) and calls its fnIndex'th export, caching the
// opened library by path since loading is "additive and idempotent per
// path" (§5).
func (vm *VM) loadSLL(modVal zvalue.Value, fnIndex int, args []zvalue.Value) (zvalue.Value, *zerror.Error) {
	mod, ok := modVal.(*zcode.Module)
	if !ok {
		return nil, zerror.New(zerror.TypeErr, "LOAD_SLL requires a module value")
	}
	lib, ok := vm.libs[mod.Path]
	if !ok {
		loaded, err := zloader.Load(mod.Path, mod.Exports)
		if err != nil {
			return nil, err.(*zerror.Error)
		}
		vm.libs[mod.Path] = loaded
		lib = loaded
	}
	result, err := lib.Call(mod.Exports, fnIndex, args)
	if err != nil {
		return nil, toZError(err)
	}
	return result, nil
}
