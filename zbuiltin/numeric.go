package zbuiltin

import (
	"math"
	"strconv"

	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// Integer is a machine-width (32-bit) signed integer value (§3).
type Integer struct {
	zvalue.Header
	Value int32
}

// LongInteger is a 64-bit signed integer value.
type LongInteger struct {
	zvalue.Header
	Value int64
}

// Float is an IEEE-754 single-precision value.
type Float struct {
	zvalue.Header
	Value float32
}

// Double is an IEEE-754 double-precision value.
type Double struct {
	zvalue.Header
	Value float64
}

var (
	integerMetatype     = zvalue.NewMetatype("integer")
	longIntegerMetatype = zvalue.NewMetatype("long_integer")
	floatMetatype       = zvalue.NewMetatype("float")
	doubleMetatype = zvalue.NewMetatype("double")
)

func IntegerMetatype() *zvalue.Metatype     { return integerMetatype }
func LongIntegerMetatype() *zvalue.Metatype { return longIntegerMetatype }
func FloatMetatype() *zvalue.Metatype       { return floatMetatype }
func DoubleMetatype() *zvalue.Metatype      { return doubleMetatype }

func NewInteger(v int32) *Integer { return &Integer{Header: zvalue.NewHeader(zvalue.TagInteger, integerMetatype), Value: v} }
func NewLongInteger(v int64) *LongInteger {
	return &LongInteger{Header: zvalue.NewHeader(zvalue.TagLongInteger, longIntegerMetatype), Value: v}
}
func NewFloat(v float32) *Float { return &Float{Header: zvalue.NewHeader(zvalue.TagFloat, floatMetatype), Value: v} }
func NewDouble(v float64) *Double {
	return &Double{Header: zvalue.NewHeader(zvalue.TagDouble, doubleMetatype), Value: v}
}

func asInteger(v zvalue.Value, op string) (int32, error) {
	i, ok := v.(*Integer)
	if !ok {
		return 0, zerror.TypeErrorf(v.Header().ID(), op)
	}
	return i.Value, nil
}

// wrap32 two's-complement-overflows an int64 result back into int32 (§4.1
// "Integer overflow wraps (two's-complement) at the declared width").
func wrap32(v int64) int32 { return int32(uint32(v)) }

func init() {
	bindIntegerOps()
	bindLongIntegerOps()
	bindFloatOps(floatMetatype, func(v float64) zvalue.Value { return NewFloat(float32(v)) }, func(v zvalue.Value) (float64, bool) {
		f, ok := v.(*Float)
		if !ok {
			return 0, false
		}
		return float64(f.Value), true
	})
	bindFloatOps(doubleMetatype, func(v float64) zvalue.Value { return NewDouble(v) }, func(v zvalue.Value) (float64, bool) {
		d, ok := v.(*Double)
		if !ok {
			return 0, false
		}
		return d.Value, true
	})
}

func bindIntegerOps() {
	m := integerMetatype
	bin := func(id zvalue.SlotID, fn func(a, b int32) (int32, error)) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, err := asInteger(args[0], slotName(id))
			if err != nil {
				return nil, err
			}
			b, err := asInteger(args[1], slotName(id))
			if err != nil {
				return nil, err
			}
			r, err := fn(a, b)
			if err != nil {
				return nil, err
			}
			return NewInteger(r), nil
		})
	}
	bin(zvalue.SlotAdd, func(a, b int32) (int32, error) { return wrap32(int64(a) + int64(b)), nil })
	bin(zvalue.SlotSub, func(a, b int32) (int32, error) { return wrap32(int64(a) - int64(b)), nil })
	bin(zvalue.SlotMul, func(a, b int32) (int32, error) { return wrap32(int64(a) * int64(b)), nil })
	bin(zvalue.SlotDiv, func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "division by zero")
		}
		return wrap32(int64(a) / int64(b)), nil
	})
	bin(zvalue.SlotMod, func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "modulo by zero")
		}
		return wrap32(int64(a) % int64(b)), nil
	})
	bin(zvalue.SlotBitAnd, func(a, b int32) (int32, error) { return a & b, nil })
	bin(zvalue.SlotBitOr, func(a, b int32) (int32, error) { return a | b, nil })
	bin(zvalue.SlotBitXor, func(a, b int32) (int32, error) { return a ^ b, nil })

	cmp := func(id zvalue.SlotID, fn func(a, b int32) bool) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, err := asInteger(args[0], slotName(id))
			if err != nil {
				return nil, err
			}
			b, err := asInteger(args[1], slotName(id))
			if err != nil {
				return nil, err
			}
			return FromBool(fn(a, b)), nil
		})
	}
	cmp(zvalue.SlotLt, func(a, b int32) bool { return a < b })
	cmp(zvalue.SlotGt, func(a, b int32) bool { return a > b })
	cmp(zvalue.SlotLe, func(a, b int32) bool { return a <= b })
	cmp(zvalue.SlotGe, func(a, b int32) bool { return a >= b })

	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		b, ok := args[1].(*Integer)
		return FromBool(ok && args[0].(*Integer).Value == b.Value), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a := args[0].(*Integer).Value
		switch b := args[1].(type) {
		case *Integer:
			return FromBool(a == b.Value), nil
		case *LongInteger:
			return FromBool(int64(a) == b.Value), nil
		case *Float:
			return FromBool(float32(a) == b.Value), nil
		case *Double:
			return FromBool(float64(a) == b.Value), nil
		default:
			return FromBool(false), nil
		}
	})
	m.BindNative(zvalue.SlotNeg, func(args []zvalue.Value) (zvalue.Value, error) {
		a, err := asInteger(args[0], "neg")
		if err != nil {
			return nil, err
		}
		return NewInteger(wrap32(-int64(a))), nil
	})
	m.BindNative(zvalue.SlotBitNot, func(args []zvalue.Value) (zvalue.Value, error) {
		a, err := asInteger(args[0], "bit_not")
		if err != nil {
			return nil, err
		}
		return NewInteger(^a), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		return NewString(strconv.Itoa(int(args[0].(*Integer).Value))), nil
	})
}

func bindLongIntegerOps() {
	m := longIntegerMetatype
	asLong := func(v zvalue.Value) (int64, bool) {
		switch n := v.(type) {
		case *LongInteger:
			return n.Value, true
		case *Integer:
			return int64(n.Value), true
		}
		return 0, false
	}
	bin := func(id zvalue.SlotID, fn func(a, b int64) (int64, error)) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asLong(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), slotName(id))
			}
			b, ok := asLong(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), slotName(id))
			}
			r, err := fn(a, b)
			if err != nil {
				return nil, err
			}
			return NewLongInteger(r), nil
		})
	}
	bin(zvalue.SlotAdd, func(a, b int64) (int64, error) { return a + b, nil })
	bin(zvalue.SlotSub, func(a, b int64) (int64, error) { return a - b, nil })
	bin(zvalue.SlotMul, func(a, b int64) (int64, error) { return a * b, nil })
	bin(zvalue.SlotDiv, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "division by zero")
		}
		return a / b, nil
	})
	bin(zvalue.SlotMod, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "modulo by zero")
		}
		return a % b, nil
	})
	cmp := func(id zvalue.SlotID, fn func(a, b int64) bool) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, _ := asLong(args[0])
			b, _ := asLong(args[1])
			return FromBool(fn(a, b)), nil
		})
	}
	cmp(zvalue.SlotLt, func(a, b int64) bool { return a < b })
	cmp(zvalue.SlotGt, func(a, b int64) bool { return a > b })
	cmp(zvalue.SlotLe, func(a, b int64) bool { return a <= b })
	cmp(zvalue.SlotGe, func(a, b int64) bool { return a >= b })
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asLong(args[0])
		b, ok := asLong(args[1])
		return FromBool(ok && a == b), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asLong(args[0])
		b, ok := asLong(args[1])
		if !ok {
			if f, isF := args[1].(*Float); isF {
				return FromBool(float32(a) == f.Value), nil
			}
			if d, isD := args[1].(*Double); isD {
				return FromBool(float64(a) == d.Value), nil
			}
		}
		return FromBool(ok && a == b), nil
	})
	m.BindNative(zvalue.SlotNeg, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asLong(args[0])
		return NewLongInteger(-a), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asLong(args[0])
		return NewString(strconv.FormatInt(a, 10)), nil
	})
}

func bindFloatOps(m *zvalue.Metatype, wrap func(float64) zvalue.Value, unwrap func(zvalue.Value) (float64, bool)) {
	asF := func(v zvalue.Value) (float64, bool) {
		if f, ok := unwrap(v); ok {
			return f, true
		}
		switch n := v.(type) {
		case *Integer:
			return float64(n.Value), true
		case *LongInteger:
			return float64(n.Value), true
		}
		return 0, false
	}
	bin := func(id zvalue.SlotID, fn func(a, b float64) (float64, error)) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, ok := asF(args[0])
			if !ok {
				return nil, zerror.TypeErrorf(args[0].Header().ID(), slotName(id))
			}
			b, ok := asF(args[1])
			if !ok {
				return nil, zerror.TypeErrorf(args[1].Header().ID(), slotName(id))
			}
			r, err := fn(a, b)
			if err != nil {
				return nil, err
			}
			return wrap(r), nil
		})
	}
	bin(zvalue.SlotAdd, func(a, b float64) (float64, error) { return a + b, nil })
	bin(zvalue.SlotSub, func(a, b float64) (float64, error) { return a - b, nil })
	bin(zvalue.SlotMul, func(a, b float64) (float64, error) { return a * b, nil })
	bin(zvalue.SlotDiv, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "division by zero")
		}
		return a / b, nil
	})
	bin(zvalue.SlotMod, func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, zerror.New(zerror.CalcErr, "modulo by zero")
		}
		return math.Mod(a, b), nil
	})
	cmp := func(id zvalue.SlotID, fn func(a, b float64) bool) {
		m.BindNative(id, func(args []zvalue.Value) (zvalue.Value, error) {
			a, _ := asF(args[0])
			b, _ := asF(args[1])
			return FromBool(fn(a, b)), nil
		})
	}
	cmp(zvalue.SlotLt, func(a, b float64) bool { return a < b })
	cmp(zvalue.SlotGt, func(a, b float64) bool { return a > b })
	cmp(zvalue.SlotLe, func(a, b float64) bool { return a <= b })
	cmp(zvalue.SlotGe, func(a, b float64) bool { return a >= b })
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asF(args[0])
		b, ok := asF(args[1])
		return FromBool(ok && a == b), nil
	})
	m.BindNative(zvalue.SlotWeq, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asF(args[0])
		b, ok := asF(args[1])
		return FromBool(ok && a == b), nil
	})
	m.BindNative(zvalue.SlotNeg, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asF(args[0])
		return wrap(-a), nil
	})
	m.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		a, _ := asF(args[0])
		return NewString(strconv.FormatFloat(a, 'g', -1, 64)), nil
	})
}

func slotName(id zvalue.SlotID) string {
	return id.String()
}
