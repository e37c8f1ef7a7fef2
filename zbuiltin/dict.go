package zbuiltin

import (
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
)

// dictKey is the structural-or-identity key used to back Dict (§3: "keyed
// by identity-or-structural equality per the key's metatype"). Primitive
// variants (integer, string, state, ...) key structurally on their Go
// value; everything else keys on identity, matching the spec's fallback.
type dictKey struct {
	structural any
	identity   uint64
	isIdentity bool
}

func keyFor(v zvalue.Value) dictKey {
	switch t := v.(type) {
	case *Integer:
		return dictKey{structural: t.Value}
	case *LongInteger:
		return dictKey{structural: t.Value}
	case *String:
		return dictKey{structural: t.Value}
	case *State:
		return dictKey{structural: t.Value}
	case *Float:
		return dictKey{structural: t.Value}
	case *Double:
		return dictKey{structural: t.Value}
	default:
		return dictKey{identity: v.Header().ID(), isIdentity: true}
	}
}

// Dict maps values to values (§3). Backed by a Go map keyed on the
// structural-or-identity key above, plus a side table to recover the
// original key Value for Keys(). GET_ITER/NEXT_ITER do not consult it:
// iterating a dict replays getitem with the integer keys 0, 1, 2, ...
type Dict struct {
	zvalue.Header
	entries map[dictKey]zvalue.Value
	keys    map[dictKey]zvalue.Value
	order   []dictKey
}

var dictMetatype = zvalue.NewMetatype("dict")

func DictMetatype() *zvalue.Metatype { return dictMetatype }

func NewDict() *Dict {
	return &Dict{
		Header:  zvalue.NewHeader(zvalue.TagDict, dictMetatype),
		entries: make(map[dictKey]zvalue.Value),
		keys:    make(map[dictKey]zvalue.Value),
	}
}

func (d *Dict) Get(key zvalue.Value) (zvalue.Value, bool) {
	v, ok := d.entries[keyFor(key)]
	return v, ok
}

func (d *Dict) Set(key, value zvalue.Value) {
	k := keyFor(key)
	if _, exists := d.entries[k]; !exists {
		d.order = append(d.order, k)
		d.keys[k] = zvalue.Retain(key)
	} else {
		zvalue.Release(d.entries[k])
	}
	d.entries[k] = zvalue.Retain(value)
}

func (d *Dict) Delete(key zvalue.Value) {
	k := keyFor(key)
	if v, ok := d.entries[k]; ok {
		zvalue.Release(v)
		zvalue.Release(d.keys[k])
		delete(d.entries, k)
		delete(d.keys, k)
		for i, kk := range d.order {
			if kk == k {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

func (d *Dict) Len() int { return len(d.entries) }

// Keys returns the dict's keys in insertion order.
func (d *Dict) Keys() []zvalue.Value {
	out := make([]zvalue.Value, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.keys[k])
	}
	return out
}

func init() {
	m := dictMetatype
	m.BindNative(zvalue.SlotGetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		d := args[0].(*Dict)
		v, ok := d.Get(args[1])
		if !ok {
			return StateNotFound, nil
		}
		return v, nil
	})
	m.BindNative(zvalue.SlotSetItem, func(args []zvalue.Value) (zvalue.Value, error) {
		d := args[0].(*Dict)
		d.Set(args[1], args[2])
		return StateNone, nil
	})
	m.BindNative(zvalue.SlotDelItem, func(args []zvalue.Value) (zvalue.Value, error) {
		d := args[0].(*Dict)
		d.Delete(args[1])
		return StateNone, nil
	})
	m.BindNative(zvalue.SlotEq, func(args []zvalue.Value) (zvalue.Value, error) {
		a := args[0].(*Dict)
		b, ok := args[1].(*Dict)
		if !ok || a.Len() != b.Len() {
			return FromBool(false), nil
		}
		for k, v := range a.entries {
			bv, ok := b.entries[k]
			if !ok {
				return FromBool(false), nil
			}
			slot := v.Header().Metatype().Slot(zvalue.SlotEq)
			if _, isUser := slot.UserFunction(); isUser {
				return nil, zerror.New(zerror.TypeErr, "dict eq: value of type %q binds __eq__ through a user function, which this native comparison path cannot invoke", v.Header().Tag())
			}
			eq, _, err := slot.Invoke(nil, []zvalue.Value{v, bv})
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
		return NewString("[dict]"), nil
	})
}
