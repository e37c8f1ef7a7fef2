package zclass

import (
	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zvalue"
)

// Class is a user-defined type: a name, its parent classes (for attribute
// lookup fallback), a name table (GET_ATTR/SET_ATTR resolve their operand
// through the executing code object's name table, not this one), and the
// attribute map holding its methods and class-level fields (§3).
//
// A Class is itself a Value (tag class, dispatching through classMetatype,
// shared by every class so that e.g. `str(SomeClass)` works uniformly) and
// it owns a second metatype - Instances - populated from any attribute
// whose name matches a slot method name (§4.2), which its instances
// dispatch through.
type Class struct {
	zvalue.Header
	Name       string
	Parents    []*Class
	Names      []string
	Attributes map[string]zvalue.Value
	Instances  *zvalue.Metatype
}

var classMetatype = zvalue.NewMetatype("class")

func ClassMetatype() *zvalue.Metatype { return classMetatype }

// NewClass builds a class from its declared attribute map, deriving the
// instance metatype by binding every attribute whose name matches a slot
// method name (__add__, __init__, ...) as a user-function slot.
func NewClass(name string, parents []*Class, names []string, attrs map[string]zvalue.Value) *Class {
	c := &Class{
		Header:     zvalue.NewHeader(zvalue.TagClass, classMetatype),
		Name:       name,
		Parents:    parents,
		Names:      names,
		Attributes: attrs,
		Instances:  zvalue.NewMetatype(name),
	}
	for attrName, v := range attrs {
		if slot, ok := slotMethodNames[attrName]; ok {
			if _, isFn := v.(*Function); isFn {
				c.Instances.Bind(slot, zvalue.BoundUser(v))
			}
		}
	}
	for _, p := range parents {
		for slot := zvalue.SlotID(0); slot < zvalue.SlotID(zvalue.SlotCount()); slot++ {
			if !c.Instances.Slot(slot).Bound() && p.Instances.Slot(slot).Bound() {
				c.Instances.Bind(slot, p.Instances.Slot(slot))
			}
		}
	}
	return c
}

// Lookup resolves an attribute by walking this class then its parents
// depth-first, the fallback GET_ATTR uses once an instance's own field map
// has been checked and found not to shadow it (§4.1).
func (c *Class) Lookup(name string) (zvalue.Value, bool) {
	if v, ok := c.Attributes[name]; ok {
		return v, true
	}
	for _, p := range c.Parents {
		if v, ok := p.Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is target or descends from it, for any
// native that type-checks an instance's class before operating on it.
func (c *Class) IsSubclassOf(target *Class) bool {
	if c == target {
		return true
	}
	for _, p := range c.Parents {
		if p.IsSubclassOf(target) {
			return true
		}
	}
	return false
}

func init() {
	classMetatype.BindNative(zvalue.SlotStr, func(args []zvalue.Value) (zvalue.Value, error) {
		c := args[0].(*Class)
		return zbuiltin.NewString("<class " + c.Name + ">"), nil
	})
}
