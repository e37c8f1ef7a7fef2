package zbuiltin

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Tuple is an immutable ordered sequence of values (§3).
type Tuple struct {
	zvalue.Header
	Elements []zvalue.Value
}

var tupleMetatype = zvalue.NewMetatype("tuple")

func TupleMetatype() *zvalue.Metatype { return tupleMetatype }

func NewTuple(elements []zvalue.Value) *Tuple {
	for _, e := range elements {
		zvalue.Retain(e)
	}
	return &Tuple{Header: zvalue.NewHeader(zvalue.TagTuple, tupleMetatype), Elements: elements}
}

func init() {
	m := tupleMetatype
	m.BindNative(zvalue.SlotGetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		t := args[0].(*Tuple)
		idx, ok := args[1].(*Integer)
		if !ok {
			return nil, zerror.TypeErrorf(args[0].Header().ID(), "getitem")
		}
		if idx.Value < 0 || int(idx.Value) >= len(t.Elements) {
			return nil, zerror.New(zerror.TypeErr, "tuple index %d out of range", idx.Value)
		}
		return t.Elements[idx.Value], nil
	})
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a := args[0].(*Tuple)
		b, ok := args[1].(*Tuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return FromBool(false), nil
		}
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
		return NewString("[tuple]"), nil
	})
}
