package zclass

import "github.com/zata-lang/zvm/zvalue"

// Instance is a live object of some Class: its own field map (which
// shadows the class's attributes of the same name, §4.1) plus a back
// reference to the class that produced it.
type Instance struct {
	zvalue.Header
	Class  *Class
	Fields map[string]zvalue.Value
}

// NewInstance allocates a bare instance of class, dispatching through the
// class's derived instance metatype. Fields start empty; __init__, if the
// class defines one, is expected to populate them (invoked separately by
// the dispatch loop when CALL is applied to a class, since only it holds a
// UserCaller; MAKE_INSTANCE does not run __init__).
func NewInstance(class *Class) *Instance {
	return &Instance{
		Header: zvalue.NewHeader(zvalue.TagInstance, class.Instances),
		Class:  class,
		Fields: make(map[string]zvalue.Value),
	}
}

// GetAttr resolves name against the instance's own fields first, falling
// back to the owning class's attribute lookup (§4.1: "instances shadow
// class attributes").
func (i *Instance) GetAttr(name string) (zvalue.Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	return i.Class.Lookup(name)
}

// SetAttr always writes to the instance's own field map; it never mutates
// the class, even if name currently resolves to a class-level attribute.
func (i *Instance) SetAttr(name string, v zvalue.Value) {
	if old, ok := i.Fields[name]; ok {
		zvalue.Release(old)
	}
	i.Fields[name] = zvalue.Retain(v)
}

func init() {
	classMetatype.BindNative(zvalue.SlotNew, func(args []zvalue.Value) (zvalue.Value, error) {
		class := args[0].(*Class)
		return NewInstance(class), nil
	})
}
