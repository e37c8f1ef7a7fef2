package zbuiltin

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// List is an ordered, mutable sequence of values with a cached length
// (§3). Elements are held with a strong reference for the lifetime of
// their slot in Elements.
type List struct {
	zvalue.Header
	Elements []zvalue.Value
}

var listMetatype = zvalue.NewMetatype("list")

func ListMetatype() *zvalue.Metatype { return listMetatype }

func NewList(elements []zvalue.Value) *List {
	for _, e := range elements {
		zvalue.Retain(e)
	}
	return &List{Header: zvalue.NewHeader(zvalue.TagList, listMetatype), Elements: elements}
}

func (l *List) Len() int { return len(l.Elements) }

func init() {
	m := listMetatype
	m.BindNative(zvalue.SlotAdd, func(args []zvalue.Value) (zvalue.Value, error) {
		a, ok := args[0].(*List)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "add")
		}
		b, ok := args[1].(*List)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "add")
		}
		merged := make([]zvalue.Value, 0, len(a.Elements)+len(b.Elements))
		merged = append(merged, a.Elements...)
		merged = append(merged, b.Elements...)
		return NewList(merged), nil
	})
	m.BindNative(zvalue.SlotGetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		l := args[0].(*List)
		idx, ok := args[1].(*Integer)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "getitem")
		}
		if idx.Value < 0 || int(idx.Value) >= len(l.Elements) {
			return nil, zerror.New(zerror.TypeErr, "list index %d out of range", idx.Value)
		}
		return l.Elements[idx.Value], nil
	})
	m.BindNative(zvalue.SlotSetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		l := args[0].(*List)
		idx, ok := args[1].(*Integer)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "setitem")
		}
		if idx.Value < 0 || int(idx.Value) >= len(l.Elements) {
			return nil, zerror.New(zerror.TypeErr, "list index %d out of range", idx.Value)
		}
		zvalue.Release(l.Elements[idx.Value])
		l.Elements[idx.Value] = zvalue.Retain(args[2])
		return StateNone, nil
	})
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*List)
		if !ok || len(b.Elements) != len(args[0].(*List).Elements) {
			return FromBool(false), nil
		}
		a := args[0].(*List)
		for i := range a.Elements {
			eq, _, err := a.Elements[i].Header().Metatype().Slot(zvalue.SlotEq).Invoke(nil, []zvalue.Value{a.Elements[i], b.Elements[i]})
			if err != nil {
				return nil, err
			}
			if s, ok := eq.(*State); !ok || s.Value != True {
				return FromBool(false), nil
			}
		}
		return FromBool(true), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return NewString("[list]"), nil
	})
}
