package zbigint

// Decimal is a sign-and-magnitude fixed-point number: an integer-part limb
// vector and a fractional-part limb vector, each base 10^9, per §3's
// payload table ("sign flag + integer-part limbs + fractional-part
// limbs"). Scale is the number of base-10^9 fractional limbs, so two
// Decimals must share Scale before Add/Sub/Cmp - DecimalAdd etc. rescale
// the narrower operand by zero-padding its fractional limbs.
type Decimal struct {
	Negative bool
	IntPart  []uint32
	FracPart []uint32 // base 1e9 fractional limbs, most-significant first
}

func rescale(d Decimal, scale int) Decimal {
	if len(d.FracPart) >= scale {
		return d
	}
	frac := make([]uint32, scale)
	copy(frac, d.FracPart)
	d.FracPart = frac
	return d
}

func commonScale(a, b Decimal) int {
	if len(a.FracPart) > len(b.FracPart) {
		return len(a.FracPart)
	}
	return len(b.FracPart)
}

// DecimalAdd returns a+b, rescaling to the wider operand's fractional
// precision first.
func DecimalAdd(a, b Decimal) Decimal {
	scale := commonScale(a, b)
	a, b = rescale(a, scale), rescale(b, scale)

	ai := Int{Negative: a.Negative, Limbs: joinLimbs(a.IntPart, a.FracPart)}
	bi := Int{Negative: b.Negative, Limbs: joinLimbs(b.IntPart, b.FracPart)}
	sum := Add(ai, bi)
	return splitLimbs(sum, scale)
}

// DecimalSub returns a-b.
func DecimalSub(a, b Decimal) Decimal {
	return DecimalAdd(a, Decimal{Negative: !b.Negative, IntPart: b.IntPart, FracPart: b.FracPart})
}

// DecimalMul returns a*b at the sum of both operands' scales.
func DecimalMul(a, b Decimal) Decimal {
	ai := Int{Negative: a.Negative, Limbs: joinLimbs(a.IntPart, a.FracPart)}
	bi := Int{Negative: b.Negative, Limbs: joinLimbs(b.IntPart, b.FracPart)}
	product := Mul(ai, bi)
	return splitLimbs(product, len(a.FracPart)+len(b.FracPart))
}

// DecimalCmp compares a and b numerically.
func DecimalCmp(a, b Decimal) int {
	scale := commonScale(a, b)
	a, b = rescale(a, scale), rescale(b, scale)
	ai := Int{Negative: a.Negative, Limbs: joinLimbs(a.IntPart, a.FracPart)}
	bi := Int{Negative: b.Negative, Limbs: joinLimbs(b.IntPart, b.FracPart)}
	return Cmp(ai, bi)
}

// joinLimbs packs integer-part (little-endian) and fractional-part
// (most-significant-first, i.e. limb 0 is the most significant fractional
// digit group) limbs into one little-endian limb vector scaled up by
// scale limbs.
func joinLimbs(intPart, fracPart []uint32) []uint32 {
	scale := len(fracPart)
	out := make([]uint32, scale+len(intPart))
	for i, f := range fracPart {
		out[scale-1-i] = f
	}
	copy(out[scale:], intPart)
	return trim(out)
}

func splitLimbs(v Int, scale int) Decimal {
	limbs := make([]uint32, scale)
	copy(limbs, v.Limbs)
	frac := make([]uint32, scale)
	for i := 0; i < scale && i < len(limbs); i++ {
		frac[scale-1-i] = limbs[i]
	}
	var intPart []uint32
	if len(v.Limbs) > scale {
		intPart = append([]uint32(nil), v.Limbs[scale:]...)
	}
	d := Decimal{Negative: v.Negative, IntPart: trim(intPart), FracPart: frac}
	if len(d.IntPart) == 0 && allZero(d.FracPart) {
		d.Negative = false
	}
	return d
}

func allZero(limbs []uint32) bool {
	for _, l := range limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

// String renders the decimal using '.' as the radix point.
func (d Decimal) String() string {
	intVal := Int{Negative: d.Negative, Limbs: d.IntPart}
	s := intVal.String()
	if len(d.FracPart) == 0 {
		return s
	}
	frac := ""
	for i := 0; i < len(d.FracPart); i++ {
		frac += padLimb(d.FracPart[i])
	}
	if s == "0" && d.Negative {
		s = "-0"
	}
	return s + "." + frac
}

func padLimb(v uint32) string {
	s := Int{Limbs: []uint32{v}}.String()
	for len(s) < 9 {
		s = "0" + s
	}
	return s
}
