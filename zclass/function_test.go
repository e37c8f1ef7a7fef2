package zclass

import (
	"testing"

	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zvalue"
)

func TestNewFunctionFields(t *testing.T) {
	code := zcode.NewCode("add", 2, nil, nil, nil, nil)
	captured := map[string]zvalue.Value{"y": nil}
	fn := NewFunction("add", 2, code, []string{"y"}, captured)

	if fn.Name != "add" || fn.ArgCount != 2 || fn.Code != code {
		t.Fatalf("expected constructor args to populate fields verbatim, got %+v", fn)
	}
	if len(fn.FreeVars) != 1 || fn.FreeVars[0] != "y" {
		t.Fatalf("expected FreeVars to be recorded, got %v", fn.FreeVars)
	}
	if fn.Header.Tag() != zvalue.TagFunction {
		t.Fatalf("expected TagFunction, got %v", fn.Header.Tag())
	}
	if fn.Header.Metatype() != FunctionMetatype() {
		t.Fatal("expected a new function to dispatch through the shared function metatype")
	}
}

func TestSlotNameForRoundTripsAllMappedSlots(t *testing.T) {
	for name, slot := range slotMethodNames {
		got, ok := SlotNameFor(slot)
		if !ok || got != name {
			t.Errorf("SlotNameFor(%v) = %q, %v; want %q, true", slot, got, ok, name)
		}
	}
}
