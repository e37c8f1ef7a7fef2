// Package zbigint implements arbitrary-width signed integer and
// fixed-scale decimal arithmetic on base-10^9 limb vectors, per §3/§9 of
// the ZVM spec. Neither type has a division operation here (§9 Open
// Question, "big integer and decimal... division... are open questions
// flagged for the implementer"); the big-integer div and mod slots in
// zbuiltin report ErrUnsupported rather than approximating.
package zbigint

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by operations §9 explicitly leaves open.
var ErrUnsupported = errors.New("zbigint: operation not supported")

const limbBase = 1_000_000_000

// Int is a sign-and-magnitude big integer: limbs are base-10^9 words,
// least-significant first. Zero is represented with Negative=false and an
// empty (or all-zero) limb vector.
type Int struct {
	Negative bool
	Limbs    []uint32 // base 1e9, little-endian
}

// FromInt64 builds an Int from a machine integer.
func FromInt64(v int64) Int {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	return Int{Negative: neg, Limbs: limbsFromUint64(u)}
}

func limbsFromUint64(u uint64) []uint32 {
	if u == 0 {
		return nil
	}
	var limbs []uint32
	for u > 0 {
		limbs = append(limbs, uint32(u%limbBase))
		u /= limbBase
	}
	return limbs
}

func (a Int) isZero() bool {
	for _, l := range a.Limbs {
		if l != 0 {
			return false
		}
	}
	return true
}

func trim(limbs []uint32) []uint32 {
	n := len(limbs)
	for n > 0 && limbs[n-1] == 0 {
		n--
	}
	return limbs[:n]
}

func magCmp(a, b []uint32) int {
	a, b = trim(a), trim(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func magAdd(a, b []uint32) []uint32 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]uint32, n+1)
	carry := uint64(0)
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = uint64(a[i])
		}
		if i < len(b) {
			bv = uint64(b[i])
		}
		s := av + bv + carry
		out[i] = uint32(s % limbBase)
		carry = s / limbBase
	}
	out[n] = uint32(carry)
	return trim(out)
}

// magSub computes a-b assuming a >= b in magnitude.
func magSub(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	borrow := int64(0)
	for i := range a {
		av := int64(a[i])
		var bv int64
		if i < len(b) {
			bv = int64(b[i])
		}
		d := av - bv - borrow
		if d < 0 {
			d += limbBase
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d)
	}
	return trim(out)
}

// Add returns a+b.
func Add(a, b Int) Int {
	if a.Negative == b.Negative {
		return normalize(Int{Negative: a.Negative, Limbs: magAdd(a.Limbs, b.Limbs)})
	}
	switch magCmp(a.Limbs, b.Limbs) {
	case 0:
		return Int{}
	case 1:
		return normalize(Int{Negative: a.Negative, Limbs: magSub(a.Limbs, b.Limbs)})
	default:
		return normalize(Int{Negative: b.Negative, Limbs: magSub(b.Limbs, a.Limbs)})
	}
}

// Sub returns a-b.
func Sub(a, b Int) Int {
	return Add(a, Int{Negative: !b.Negative && !b.isZero(), Limbs: b.Limbs})
}

// Mul returns a*b (schoolbook long multiplication on base-1e9 limbs).
func Mul(a, b Int) Int {
	if a.isZero() || b.isZero() {
		return Int{}
	}
	out := make([]uint64, len(a.Limbs)+len(b.Limbs))
	for i, av := range a.Limbs {
		carry := uint64(0)
		for j, bv := range b.Limbs {
			p := out[i+j] + uint64(av)*uint64(bv) + carry
			out[i+j] = p % limbBase
			carry = p / limbBase
		}
		k := i + len(b.Limbs)
		for carry > 0 {
			p := out[k] + carry
			out[k] = p % limbBase
			carry = p / limbBase
			k++
		}
	}
	limbs := make([]uint32, len(out))
	for i, v := range out {
		limbs[i] = uint32(v)
	}
	return normalize(Int{Negative: a.Negative != b.Negative, Limbs: trim(limbs)})
}

func normalize(v Int) Int {
	v.Limbs = trim(v.Limbs)
	if len(v.Limbs) == 0 {
		v.Negative = false
	}
	return v
}

// Cmp returns -1, 0 or 1 comparing a to b.
func Cmp(a, b Int) int {
	if a.Negative != b.Negative {
		if a.isZero() && b.isZero() {
			return 0
		}
		if a.Negative {
			return -1
		}
		return 1
	}
	c := magCmp(a.Limbs, b.Limbs)
	if a.Negative {
		return -c
	}
	return c
}

// String renders the decimal representation.
func (a Int) String() string {
	limbs := trim(a.Limbs)
	if len(limbs) == 0 {
		return "0"
	}
	var b strings.Builder
	if a.Negative {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(int(limbs[len(limbs)-1])))
	for i := len(limbs) - 2; i >= 0; i-- {
		b.WriteString(strconv.FormatUint(uint64(limbs[i])+limbBase, 10)[1:])
	}
	return b.String()
}
