package zhostfn

import "github.com/zata-lang/zvm/zvalue"

// Builtin is the value a built-in registry entry is wrapped in once
// LOAD_GLOBAL resolves it by name, so it can flow through the operand
// stack like any other callable.
type Builtin struct {
	zvalue.Header
	Name string
	Fn   Native
}

var builtinMetatype = zvalue.NewMetatype("builtin")

func BuiltinMetatype() *zvalue.Metatype { return builtinMetatype }

func NewBuiltin(name string, fn Native) *Builtin {
	return &Builtin{Header: zvalue.NewHeader(tagBuiltin, builtinMetatype), Name: name, Fn: fn}
}

// tagBuiltin reuses zvalue.TagFunction: a built-in is a callable exactly
// as far as the value model's Tag-based diagnostics care, and adding a
// dedicated tag would mean threading a new variant through code that
// switches on Tag purely for presentation (the error reporter, str()).
const tagBuiltin = zvalue.TagFunction
