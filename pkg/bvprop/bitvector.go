// Package bvprop implements the invertibility-condition kernel used by the
// local-search layer of a fixed-width bit-vector SMT solver.
//
// Given an equation f(x, s) = t (or f(s, x) = t) where x is unknown and s, t
// are concrete bit-vectors, the kernel decides whether *any* value of x in a
// three-valued abstract domain satisfies the equation. It never searches for
// or constructs such a value; it only decides existence.
//
// The package provides:
//   - BitVector: fixed-width unsigned integers with wrap-around arithmetic
//   - Domain: abstract bit-vectors where each bit is 0, 1, or unknown
//   - Generator: lazy enumeration of the concrete members of a domain
//   - invertibility oracles (IsInv*, IsInv*Const) for the supported operators
//   - a mod-30 wheel factorizer (GetFactor) that finds factors of a value
//     lying in a domain
//
// The kernel is strictly single-threaded and synchronous. Inputs are
// borrowed, never mutated or retained; the only mutating operations are
// BitVector.SetBit and Domain.FixBit, and those are never applied to oracle
// inputs.
package bvprop

import (
	"math/big"
	"math/rand"
	"strings"

	"github.com/pkg/errors"
)

var bigOne = big.NewInt(1)

// BitVector is a fixed-width unsigned integer with two's-complement
// wrap-around semantics. The width is at least 1 and the value is always kept
// in [0, 2^width). All binary operations require equal widths; mixing widths
// is a contract violation and panics.
type BitVector struct {
	width int
	val   *big.Int
}

// maskFor returns 2^width - 1 as a big integer.
func maskFor(width int) *big.Int {
	m := new(big.Int).Lsh(bigOne, uint(width))
	return m.Sub(m, bigOne)
}

func checkWidth(op string, width int) {
	if width < 1 {
		panic("bvprop: " + op + ": width must be >= 1")
	}
}

func (bv *BitVector) checkSameWidth(op string, other *BitVector) {
	if bv.width != other.width {
		panic("bvprop: " + op + ": operands have different widths")
	}
}

// New returns the zero bit-vector of the given width.
// Panics if width < 1.
func New(width int) *BitVector {
	checkWidth("New", width)
	return &BitVector{width: width, val: new(big.Int)}
}

// NewUint64 returns a bit-vector of the given width holding val truncated to
// that width. Panics if width < 1.
func NewUint64(val uint64, width int) *BitVector {
	checkWidth("NewUint64", width)
	v := new(big.Int).SetUint64(val)
	v.And(v, maskFor(width))
	return &BitVector{width: width, val: v}
}

// NewFromString parses a binary string (MSB first, characters '0' and '1')
// into a bit-vector whose width is the string length.
func NewFromString(s string) (*BitVector, error) {
	if len(s) == 0 {
		return nil, errors.New("NewFromString: empty string")
	}
	v := new(big.Int)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			v.SetBit(v, len(s)-1-i, 1)
		default:
			return nil, errors.Errorf("NewFromString: invalid character %q at position %d", s[i], i)
		}
	}
	return &BitVector{width: len(s), val: v}, nil
}

// Ones returns the all-ones bit-vector of the given width.
func Ones(width int) *BitVector {
	checkWidth("Ones", width)
	return &BitVector{width: width, val: maskFor(width)}
}

// One returns the bit-vector of the given width with value 1.
func One(width int) *BitVector {
	return NewUint64(1, width)
}

// NewRandomRange draws a value uniformly from [min, max] at the given width.
// Panics if min > max or the widths disagree.
func NewRandomRange(rnd *rand.Rand, width int, min, max *BitVector) *BitVector {
	checkWidth("NewRandomRange", width)
	min.checkSameWidth("NewRandomRange", max)
	if min.width != width {
		panic("bvprop: NewRandomRange: bounds have wrong width")
	}
	if min.Compare(max) > 0 {
		panic("bvprop: NewRandomRange: min > max")
	}
	n := new(big.Int).Sub(max.val, min.val)
	n.Add(n, bigOne)
	r := new(big.Int).Rand(rnd, n)
	r.Add(r, min.val)
	return &BitVector{width: width, val: r}
}

// Width returns the width in bits.
func (bv *BitVector) Width() int { return bv.width }

// Copy returns an independent copy.
func (bv *BitVector) Copy() *BitVector {
	return &BitVector{width: bv.width, val: new(big.Int).Set(bv.val)}
}

// Bit returns bit i (0 is the least significant bit).
// Panics if i is out of range.
func (bv *BitVector) Bit(i int) uint {
	if i < 0 || i >= bv.width {
		panic("bvprop: Bit: index out of range")
	}
	return bv.val.Bit(i)
}

// SetBit sets bit i in place. Panics if i is out of range.
func (bv *BitVector) SetBit(i int, value bool) {
	if i < 0 || i >= bv.width {
		panic("bvprop: SetBit: index out of range")
	}
	b := uint(0)
	if value {
		b = 1
	}
	bv.val.SetBit(bv.val, i, b)
}

// IsZero reports whether the value is 0.
func (bv *BitVector) IsZero() bool { return bv.val.Sign() == 0 }

// IsOnes reports whether every bit is set.
func (bv *BitVector) IsOnes() bool { return bv.val.Cmp(maskFor(bv.width)) == 0 }

// IsTrue reports whether the vector is the single-bit value 1.
func (bv *BitVector) IsTrue() bool { return bv.width == 1 && bv.val.Cmp(bigOne) == 0 }

// IsFalse reports whether the vector is the single-bit value 0.
func (bv *BitVector) IsFalse() bool { return bv.width == 1 && bv.val.Sign() == 0 }

// Compare orders two bit-vectors of equal width as unsigned integers,
// returning -1, 0, or 1.
func (bv *BitVector) Compare(other *BitVector) int {
	bv.checkSameWidth("Compare", other)
	return bv.val.Cmp(other.val)
}

// Eq returns the single-bit vector 1 if both operands are equal, else 0.
func (bv *BitVector) Eq(other *BitVector) *BitVector {
	bv.checkSameWidth("Eq", other)
	if bv.val.Cmp(other.val) == 0 {
		return NewUint64(1, 1)
	}
	return New(1)
}

// Add returns bv + other mod 2^width.
func (bv *BitVector) Add(other *BitVector) *BitVector {
	bv.checkSameWidth("Add", other)
	v := new(big.Int).Add(bv.val, other.val)
	v.And(v, maskFor(bv.width))
	return &BitVector{width: bv.width, val: v}
}

// Sub returns bv - other mod 2^width.
func (bv *BitVector) Sub(other *BitVector) *BitVector {
	bv.checkSameWidth("Sub", other)
	v := new(big.Int).Sub(bv.val, other.val)
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(bigOne, uint(bv.width)))
	}
	return &BitVector{width: bv.width, val: v}
}

// Inc returns bv + 1 mod 2^width.
func (bv *BitVector) Inc() *BitVector { return bv.Add(One(bv.width)) }

// Dec returns bv - 1 mod 2^width.
func (bv *BitVector) Dec() *BitVector { return bv.Sub(One(bv.width)) }

// Neg returns the two's complement -bv mod 2^width.
func (bv *BitVector) Neg() *BitVector {
	v := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(bv.width)), bv.val)
	v.And(v, maskFor(bv.width))
	return &BitVector{width: bv.width, val: v}
}

// Mul returns bv * other mod 2^width.
func (bv *BitVector) Mul(other *BitVector) *BitVector {
	bv.checkSameWidth("Mul", other)
	v := new(big.Int).Mul(bv.val, other.val)
	v.And(v, maskFor(bv.width))
	return &BitVector{width: bv.width, val: v}
}

// And returns the bitwise conjunction.
func (bv *BitVector) And(other *BitVector) *BitVector {
	bv.checkSameWidth("And", other)
	return &BitVector{width: bv.width, val: new(big.Int).And(bv.val, other.val)}
}

// Or returns the bitwise disjunction.
func (bv *BitVector) Or(other *BitVector) *BitVector {
	bv.checkSameWidth("Or", other)
	return &BitVector{width: bv.width, val: new(big.Int).Or(bv.val, other.val)}
}

// Xor returns the bitwise exclusive or.
func (bv *BitVector) Xor(other *BitVector) *BitVector {
	bv.checkSameWidth("Xor", other)
	return &BitVector{width: bv.width, val: new(big.Int).Xor(bv.val, other.val)}
}

// Xnor returns the bitwise equivalence ~(bv ^ other).
func (bv *BitVector) Xnor(other *BitVector) *BitVector {
	return bv.Xor(other).Not()
}

// Not returns the bitwise complement.
func (bv *BitVector) Not() *BitVector {
	return &BitVector{width: bv.width, val: new(big.Int).Xor(bv.val, maskFor(bv.width))}
}

// Redor reduces the vector with or, returning the single-bit vector 1 if any
// bit is set and 0 otherwise.
func (bv *BitVector) Redor() *BitVector {
	if bv.val.Sign() != 0 {
		return NewUint64(1, 1)
	}
	return New(1)
}

// Sll shifts left by the value of shift. Shift amounts >= width yield zero.
func (bv *BitVector) Sll(shift *BitVector) *BitVector {
	bv.checkSameWidth("Sll", shift)
	if shift.val.Cmp(big.NewInt(int64(bv.width))) >= 0 {
		return New(bv.width)
	}
	return bv.SllUint(uint(shift.val.Uint64()))
}

// SllUint shifts left by n bits. Shift amounts >= width yield zero.
func (bv *BitVector) SllUint(n uint) *BitVector {
	if n >= uint(bv.width) {
		return New(bv.width)
	}
	v := new(big.Int).Lsh(bv.val, n)
	v.And(v, maskFor(bv.width))
	return &BitVector{width: bv.width, val: v}
}

// Srl shifts right (logical) by the value of shift. Shift amounts >= width
// yield zero.
func (bv *BitVector) Srl(shift *BitVector) *BitVector {
	bv.checkSameWidth("Srl", shift)
	if shift.val.Cmp(big.NewInt(int64(bv.width))) >= 0 {
		return New(bv.width)
	}
	return bv.SrlUint(uint(shift.val.Uint64()))
}

// SrlUint shifts right (logical) by n bits. Shift amounts >= width yield
// zero.
func (bv *BitVector) SrlUint(n uint) *BitVector {
	if n >= uint(bv.width) {
		return New(bv.width)
	}
	return &BitVector{width: bv.width, val: new(big.Int).Rsh(bv.val, n)}
}

// Udiv returns the unsigned quotient bv / other. Division by zero yields the
// all-ones vector.
func (bv *BitVector) Udiv(other *BitVector) *BitVector {
	bv.checkSameWidth("Udiv", other)
	if other.IsZero() {
		return Ones(bv.width)
	}
	return &BitVector{width: bv.width, val: new(big.Int).Div(bv.val, other.val)}
}

// Urem returns the unsigned remainder bv % other. Remainder by zero yields
// the dividend.
func (bv *BitVector) Urem(other *BitVector) *BitVector {
	bv.checkSameWidth("Urem", other)
	if other.IsZero() {
		return bv.Copy()
	}
	return &BitVector{width: bv.width, val: new(big.Int).Mod(bv.val, other.val)}
}

// UdivUrem returns quotient and remainder in one step, with the same
// division-by-zero semantics as Udiv and Urem.
func (bv *BitVector) UdivUrem(other *BitVector) (*BitVector, *BitVector) {
	bv.checkSameWidth("UdivUrem", other)
	if other.IsZero() {
		return Ones(bv.width), bv.Copy()
	}
	q, r := new(big.Int).QuoRem(bv.val, other.val, new(big.Int))
	return &BitVector{width: bv.width, val: q}, &BitVector{width: bv.width, val: r}
}

// Slice extracts bits [upper:lower] (both inclusive) into a new vector of
// width upper-lower+1. Panics unless 0 <= lower <= upper < width.
func (bv *BitVector) Slice(upper, lower int) *BitVector {
	if lower < 0 || upper < lower || upper >= bv.width {
		panic("bvprop: Slice: invalid bit range")
	}
	w := upper - lower + 1
	v := new(big.Int).Rsh(bv.val, uint(lower))
	v.And(v, maskFor(w))
	return &BitVector{width: w, val: v}
}

// Concat returns bv ∘ other with bv occupying the most significant bits.
func (bv *BitVector) Concat(other *BitVector) *BitVector {
	v := new(big.Int).Lsh(bv.val, uint(other.width))
	v.Or(v, other.val)
	return &BitVector{width: bv.width + other.width, val: v}
}

// TrailingZeros returns the number of trailing zero bits; width for the zero
// vector.
func (bv *BitVector) TrailingZeros() int {
	if bv.IsZero() {
		return bv.width
	}
	return int(bv.val.TrailingZeroBits())
}

// ModInverse returns the multiplicative inverse of bv modulo 2^width.
// Panics if bv is even (no inverse exists).
func (bv *BitVector) ModInverse() *BitVector {
	mod := new(big.Int).Lsh(bigOne, uint(bv.width))
	inv := new(big.Int).ModInverse(bv.val, mod)
	if inv == nil {
		panic("bvprop: ModInverse: operand is not invertible")
	}
	return &BitVector{width: bv.width, val: inv}
}

// Uint64 returns the value as a uint64. The result is undefined if the value
// does not fit.
func (bv *BitVector) Uint64() uint64 { return bv.val.Uint64() }

// String renders the value as a binary string, MSB first.
func (bv *BitVector) String() string {
	var sb strings.Builder
	sb.Grow(bv.width)
	for i := bv.width - 1; i >= 0; i-- {
		if bv.val.Bit(i) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
