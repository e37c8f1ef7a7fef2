package zbuiltin

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// String is an immutable UTF-8 byte sequence value (§3).
type String struct {
	zvalue.Header
	Value string
}

var stringMetatype = zvalue.NewMetatype("string")

func StringMetatype() *zvalue.Metatype { return stringMetatype }

func NewString(s string) *String {
	return &String{Header: zvalue.NewHeader(zvalue.TagString, stringMetatype), Value: s}
}

func init() {
	m := stringMetatype
	m.BindNative(zvalue.SlotAdd, func(args []zvalue.Value) (zvalue.Value, error) {
		a, ok := args[0].(*String)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "add")
		}
		b, ok := args[1].(*String)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "add")
		}
		return NewString(a.Value + b.Value), nil
	})
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*String)
		return FromBool(ok && args[0].(*String).Value == b.Value), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*String)
		return FromBool(ok && args[0].(*String).Value == b.Value), nil
	})
	m.BindNative(zvalue.SlotLt, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*String)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "lt")
		}
		return FromBool(args[0].(*String).Value < b.Value), nil
	})
	m.BindNative(zvalue.SlotGt, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*String)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "gt")
		}
		return FromBool(args[0].(*String).Value > b.Value), nil
	})
	m.BindNative(zvalue.SlotGetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		s := args[0].(*String)
		idx, ok := args[1].(*Integer)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "getitem")
		}
		runes := []rune(s.Value)
		if idx.Value < 0 || int(idx.Value) >= len(runes) {
			return nil, zerror.New(zerror.TypeErr, "string index %d out of range", idx.Value)
		}
		return NewString(string(runes[idx.Value])), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return args[0], nil
	})
}
