package zclass

import (
	"testing"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zvalue"
)

func TestInstanceFieldsShadowClassAttributes(t *testing.T) {
	classVal := zbuiltin.NewInteger(1)
	shape := NewClass("Shape", nil, nil, map[string]zvalue.Value{"x": classVal})
	inst := NewInstance(shape)

	v, ok := inst.GetAttr("x")
	if !ok || v != classVal {
		t.Fatalf("expected GetAttr to fall back to the class attribute, got %v, ok=%v", v, ok)
	}

	instVal := zbuiltin.NewInteger(2)
	inst.SetAttr("x", instVal)

	v, ok = inst.GetAttr("x")
	if !ok || v != instVal {
		t.Fatalf("expected the instance's own field to shadow the class attribute, got %v", v)
	}
}

func TestInstanceSetAttrNeverMutatesClass(t *testing.T) {
	classVal := zbuiltin.NewInteger(1)
	shape := NewClass("Shape", nil, nil, map[string]zvalue.Value{"x": classVal})
	inst := NewInstance(shape)
	inst.SetAttr("x", zbuiltin.NewInteger(2))

	if shape.Attributes["x"] != classVal {
		t.Fatal("expected SetAttr to leave the class's own attribute map untouched")
	}
}

func TestInstanceGetAttrMissing(t *testing.T) {
	shape := NewClass("Shape", nil, nil, map[string]zvalue.Value{})
	inst := NewInstance(shape)

	if _, ok := inst.GetAttr("missing"); ok {
		t.Fatal("expected GetAttr to report false for a field nobody defines")
	}
}

func TestNewInstanceDispatchesThroughInstanceMetatype(t *testing.T) {
	shape := NewClass("Shape", nil, nil, map[string]zvalue.Value{})
	inst := NewInstance(shape)

	if inst.Header.Metatype() != shape.Instances {
		t.Fatal("expected a new instance to dispatch through its class's derived instance metatype")
	}
	if inst.Class != shape {
		t.Fatal("expected the instance to record a back reference to its class")
	}
}

func TestClassSlotNewConstructsInstance(t *testing.T) {
	shape := NewClass("Shape", nil, nil, map[string]zvalue.Value{})

	result, bound, err := ClassMetatype().Slot(zvalue.SlotNew).Invoke(nil, []zvalue.Value{shape})
	if !bound || err != nil {
		t.Fatalf("expected SlotNew to be bound with no error, got bound=%v err=%v", bound, err)
	}
	inst, ok := result.(*Instance)
	if !ok || inst.Class != shape {
		t.Fatalf("expected SlotNew to return a fresh instance of shape, got %v", result)
	}
}
