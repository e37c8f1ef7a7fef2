package zbuiltin

import (
	"github.com/zata-lang/zvm/zbigint"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Decimal is a fixed-scale decimal value (§3), backed by
// zbigint.Decimal's sign + integer-limb + fractional-limb representation.
type Decimal struct {
	zvalue.Header
	Value zbigint.Decimal
}

var decimalMetatype = zvalue.NewMetatype("decimal")

func DecimalMetatype() *zvalue.Metatype { return decimalMetatype }

func NewDecimal(v zbigint.Decimal) *Decimal {
	return &Decimal{Header: zvalue.NewHeader(zvalue.TagDecimal, decimalMetatype), Value: v}
}

func asDecimal(v zvalue.Value) (zbigint.Decimal, bool) {
	switch n := v.(type) {
	case *Decimal:
		return n.Value, true
	case *Integer:
		return zbigint.Decimal{IntPart: zbigint.FromInt64(int64(n.Value)).Limbs, Negative: n.Value < 0}, true
	}
	return zbigint.Decimal{}, false
}

func init() {
	m := decimalMetatype
	bin := func(id zvalue.SlotID, fn func(a, b zbigint.Decimal) zbigint.Decimal) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asDecimal(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), id.String())
			}
			b, ok := asDecimal(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), id.String())
			}
			return NewDecimal(fn(a, b)), nil
		})
	}
	bin(zvalue.SlotAdd, zbigint.DecimalAdd)
	bin(zvalue.SlotSub, zbigint.DecimalSub)
	bin(zvalue.SlotMul, zbigint.DecimalMul)
	m.BindNative(zvalue.SlotDiv, func(args []zvalue.Value) (zvalue.Value, error) {
		return nil, zerror.New(zerror.CalcErr, "decimal division is unsupported")
	})
	cmp := func(id zvalue.SlotID, fn func(c int) bool) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asDecimal(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), id.String())
			}
			b, ok := asDecimal(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), id.String())
			}
			return FromBool(fn(zbigint.DecimalCmp(a, b))), nil
		})
	}
	cmp(zvalue.SlotLt, func(c int) bool { return c < 0 })
	cmp(zvalue.SlotGt, func(c int) bool { return c > 0 })
	cmp(zvalue.SlotLe, func(c int) bool { return c <= 0 })
	cmp(zvalue.SlotGe, func(c int) bool { return c >= 0 })
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asDecimal(args[0])
		b, ok := asDecimal(args[1])
		return FromBool(ok && zbigint.DecimalCmp(a, b) == 0), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asDecimal(args[0])
		b, ok := asDecimal(args[1])
		return FromBool(ok && zbigint.DecimalCmp(a, b) == 0), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asDecimal(args[0])
		return NewString(a.String()), nil
	})
}
