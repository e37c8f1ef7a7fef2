package zbigint

import "testing"

func TestDecimalStringRendersFractionalLimb(t *testing.T) {
	d := Decimal{IntPart: []uint32{3}, FracPart: []uint32{750000000}}
	if got := d.String(); got != "3.750000000" {
		t.Fatalf("expected 3.750000000, got %s", got)
	}
}

func TestDecimalStringWithNoFraction(t *testing.T) {
	d := Decimal{IntPart: []uint32{42}}
	if got := d.String(); got != "42" {
		t.Fatalf("expected 42, got %s", got)
	}
}

func TestDecimalAddRescalesNarrowerOperand(t *testing.T) {
	// a = 1 (scale 0), b = 0.000000001 (scale 1)
	a := Decimal{IntPart: []uint32{1}}
	b := Decimal{FracPart: []uint32{1}}

	got := DecimalAdd(a, b).String()
	if got != "1.000000001" {
		t.Fatalf("expected 1 + 0.000000001 = 1.000000001, got %s", got)
	}
}

func TestDecimalSub(t *testing.T) {
	a := Decimal{IntPart: []uint32{1}}
	b := Decimal{FracPart: []uint32{1}}

	got := DecimalSub(a, b).String()
	if got != "0.999999999" {
		t.Fatalf("expected 1 - 0.000000001 = 0.999999999, got %s", got)
	}
}

func TestDecimalMulCombinesScales(t *testing.T) {
	a := Decimal{IntPart: []uint32{1}, FracPart: []uint32{500000000}} // 1.5
	b := Decimal{IntPart: []uint32{2}}                                // 2

	got := DecimalMul(a, b).String()
	if got != "3.000000000" {
		t.Fatalf("expected 1.5 * 2 = 3.000000000, got %s", got)
	}
}

func TestDecimalCmpAcrossDifferingScales(t *testing.T) {
	a := Decimal{IntPart: []uint32{1}}        // 1 (scale 0)
	b := Decimal{FracPart: []uint32{999999999}} // 0.999999999 (scale 1)

	if got := DecimalCmp(a, b); got != 1 {
		t.Fatalf("expected 1 > 0.999999999 to yield Cmp=1, got %d", got)
	}
	if got := DecimalCmp(b, a); got != -1 {
		t.Fatalf("expected 0.999999999 < 1 to yield Cmp=-1, got %d", got)
	}
	if got := DecimalCmp(a, a); got != 0 {
		t.Fatalf("expected equal decimals to yield Cmp=0, got %d", got)
	}
}

func TestDecimalNegativeAddYieldsNonNegativeZero(t *testing.T) {
	a := Decimal{IntPart: []uint32{5}}
	b := Decimal{IntPart: []uint32{5}, Negative: true}

	d := DecimalAdd(a, b)
	if d.Negative {
		t.Fatal("expected 5 + (-5) to normalize to a non-negative zero")
	}
	if got := d.String(); got != "0" {
		t.Fatalf("expected 0, got %s", got)
	}
}
