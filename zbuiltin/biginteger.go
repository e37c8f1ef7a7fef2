package zbuiltin

import (
	"github.com/zata-lang/zvm/zbigint"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// BigInteger is an arbitrary-width signed integer (§3), backed by
// zbigint.Int's base-10^9 limb representation.
type BigInteger struct {
	zvalue.Header
	Value zbigint.Int
}

var bigIntegerMetatype = zvalue.NewMetatype("big_integer")

func BigIntegerMetatype() *zvalue.Metatype { return bigIntegerMetatype }

func NewBigInteger(v zbigint.Int) *BigInteger {
	return &BigInteger{Header: zvalue.NewHeader(zvalue.TagBigInteger, bigIntegerMetatype), Value: v}
}

func asBigInt(v zvalue.Value) (zbigint.Int, bool) {
	switch n := v.(type) {
	case *BigInteger:
		return n.Value, true
	case *Integer:
		return zbigint.FromInt64(int64(n.Value)), true
	case *LongInteger:
		return zbigint.FromInt64(n.Value), true
	}
	return zbigint.Int{}, false
}

func init() {
	m := bigIntegerMetatype
	bin := func(id zvalue.SlotID, fn func(a, b zbigint.Int) (zbigint.Int, error)) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asBigInt(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), id.String())
			}
			b, ok := asBigInt(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), id.String())
			}
			r, err := fn(a, b)
			if err != nil {
				return nil, zerror.New(zerror.CalcErr, "%v", err)
			}
			return NewBigInteger(r), nil
		})
	}
	bin(zvalue.SlotAdd, func(a, b zbigint.Int) (zbigint.Int, error) { return zbigint.Add(a, b), nil })
	bin(zvalue.SlotSub, func(a, b zbigint.Int) (zbigint.Int, error) { return zbigint.Sub(a, b), nil })
	bin(zvalue.SlotMul, func(a, b zbigint.Int) (zbigint.Int, error) { return zbigint.Mul(a, b), nil })
	bin(zvalue.SlotDiv, func(a, b zbigint.Int) (zbigint.Int, error) { return zbigint.Int{}, zbigint.ErrUnsupported })
	bin(zvalue.SlotMod, func(a, b zbigint.Int) (zbigint.Int, error) { return zbigint.Int{}, zbigint.ErrUnsupported })

	cmp := func(id zvalue.SlotID, fn func(c int) bool) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asBigInt(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), id.String())
			}
			b, ok := asBigInt(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), id.String())
			}
			return FromBool(fn(zbigint.Cmp(a, b))), nil
		})
	}
	cmp(zvalue.SlotLt, func(c int) bool { return c < 0 })
	cmp(zvalue.SlotGt, func(c int) bool { return c > 0 })
	cmp(zvalue.SlotLe, func(c int) bool { return c <= 0 })
	cmp(zvalue.SlotGe, func(c int) bool { return c >= 0 })
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asBigInt(args[0])
		b, ok := asBigInt(args[1])
		return FromBool(ok && zbigint.Cmp(a, b) == 0), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asBigInt(args[0])
		b, ok := asBigInt(args[1])
		return FromBool(ok && zbigint.Cmp(a, b) == 0), nil
	})
	m.BindNative(zvalue.SlotNeg, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asBigInt(args[0])
		a.Negative = !a.Negative
		return NewBigInteger(a), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asBigInt(args[0])
		return NewString(a.String()), nil
	})
}
