package zbuiltin

import (
	"testing"

	"github.com/zata-lang/zvm/zbigint"
	"github.com/zata-lang/zvm/zvalue"
)

func TestDecimalAdd(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}, FracPart: []uint32{500000000}}) // 1.5
	b := NewDecimal(zbigint.Decimal{IntPart: []uint32{2}})                                // 2

	result := invokeBinary(t, decimalMetatype, zvalue.SlotAdd, a, b)
	if got := result.(*Decimal).Value.String(); got != "3.500000000" {
		t.Fatalf("expected 1.5 + 2 = 3.500000000, got %s", got)
	}
}

func TestDecimalCoercesIntegerOperand(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}, FracPart: []uint32{250000000}}) // 1.25
	b := NewInteger(1)

	result := invokeBinary(t, decimalMetatype, zvalue.SlotAdd, a, b)
	if got := result.(*Decimal).Value.String(); got != "2.250000000" {
		t.Fatalf("expected 1.25 + 1 = 2.250000000, got %s", got)
	}
}

func TestDecimalSub(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}})
	b := NewDecimal(zbigint.Decimal{FracPart: []uint32{1}})

	result := invokeBinary(t, decimalMetatype, zvalue.SlotSub, a, b)
	if got := result.(*Decimal).Value.String(); got != "0.999999999" {
		t.Fatalf("expected 1 - 0.000000001 = 0.999999999, got %s", got)
	}
}

func TestDecimalDivIsUnsupported(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}})
	b := NewDecimal(zbigint.Decimal{IntPart: []uint32{2}})
	_, bound, err := decimalMetatype.Slot(zvalue.SlotDiv).Invoke(nil, []zvalue.Value{a, b})
	if !bound {
		t.Fatal("expected SlotDiv to be bound even though it always errors")
	}
	if err == nil {
		t.Fatal("expected decimal division to report an error")
	}
}

func TestDecimalComparisons(t *testing.T) {
	small := NewDecimal(zbigint.Decimal{FracPart: []uint32{999999999}}) // 0.999999999
	big := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}})           // 1

	lt := invokeBinary(t, decimalMetatype, zvalue.SlotLt, small, big).(*State)
	if lt.Value != True {
		t.Fatal("expected 0.999999999 < 1")
	}
	ge := invokeBinary(t, decimalMetatype, zvalue.SlotGe, big, small).(*State)
	if ge.Value != True {
		t.Fatal("expected 1 >= 0.999999999")
	}
}

func TestDecimalEqRejectsNonNumeric(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{1}})
	result, bound, err := decimalMetatype.Slot(zvalue.SlotEq).Invoke(nil, []zvalue.Value{a, StateNone})
	if !bound || err != nil {
		t.Fatalf("expected eq to be bound with no error, got bound=%v err=%v", bound, err)
	}
	if result.(*State).Value != False {
		t.Fatal("expected comparing against a non-numeric value to be unequal")
	}
}

func TestDecimalStrSlot(t *testing.T) {
	a := NewDecimal(zbigint.Decimal{IntPart: []uint32{7}, FracPart: []uint32{250000000}})
	result, bound, err := decimalMetatype.Slot(zvalue.SlotStr).Invoke(nil, []zvalue.Value{a})
	if !bound || err != nil {
		t.Fatalf("expected str to be bound with no error, got bound=%v err=%v", bound, err)
	}
	if got := result.(*String).Value; got != "7.250000000" {
		t.Fatalf("expected \"7.250000000\", got %q", got)
	}
}
