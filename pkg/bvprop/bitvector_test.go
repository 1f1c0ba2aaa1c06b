package bvprop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bv(t *testing.T, s string) *BitVector {
	t.Helper()
	v, err := NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestBitVectorConstructors(t *testing.T) {
	require.Equal(t, "0000", New(4).String())
	require.Equal(t, "1111", Ones(4).String())
	require.Equal(t, "0001", One(4).String())
	require.Equal(t, "1010", NewUint64(10, 4).String())
	// Truncation to width.
	require.Equal(t, "0010", NewUint64(18, 4).String())

	v, err := NewFromString("01101")
	require.NoError(t, err)
	require.Equal(t, 5, v.Width())
	require.Equal(t, uint64(13), v.Uint64())

	_, err = NewFromString("01x0")
	require.Error(t, err)
	_, err = NewFromString("")
	require.Error(t, err)
}

func TestBitVectorArithmeticWraps(t *testing.T) {
	tests := []struct {
		name string
		got  *BitVector
		want string
	}{
		{"add", NewUint64(9, 4).Add(NewUint64(5, 4)), "1110"},
		{"add wrap", NewUint64(12, 4).Add(NewUint64(7, 4)), "0011"},
		{"sub", NewUint64(9, 4).Sub(NewUint64(5, 4)), "0100"},
		{"sub wrap", NewUint64(3, 4).Sub(NewUint64(5, 4)), "1110"},
		{"mul", NewUint64(3, 4).Mul(NewUint64(4, 4)), "1100"},
		{"mul wrap", NewUint64(9, 4).Mul(NewUint64(3, 4)), "1011"},
		{"neg", NewUint64(5, 4).Neg(), "1011"},
		{"neg zero", New(4).Neg(), "0000"},
		{"inc", NewUint64(7, 4).Inc(), "1000"},
		{"inc wrap", Ones(4).Inc(), "0000"},
		{"dec", NewUint64(8, 4).Dec(), "0111"},
		{"dec wrap", New(4).Dec(), "1111"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.String())
		})
	}
}

func TestBitVectorBitwise(t *testing.T) {
	a := bv(t, "0110")
	b := bv(t, "1010")
	assert.Equal(t, "0010", a.And(b).String())
	assert.Equal(t, "1110", a.Or(b).String())
	assert.Equal(t, "1100", a.Xor(b).String())
	assert.Equal(t, "0011", a.Xnor(b).String())
	assert.Equal(t, "1001", a.Not().String())
	assert.True(t, a.Redor().IsTrue())
	assert.True(t, New(4).Redor().IsFalse())
}

func TestBitVectorShifts(t *testing.T) {
	v := bv(t, "0110")
	assert.Equal(t, "1100", v.Sll(NewUint64(1, 4)).String())
	assert.Equal(t, "0011", v.Srl(NewUint64(1, 4)).String())
	// Shift amounts >= width shift everything out.
	assert.Equal(t, "0000", v.Sll(NewUint64(4, 4)).String())
	assert.Equal(t, "0000", v.Srl(NewUint64(15, 4)).String())
	assert.Equal(t, "0000", v.SllUint(100).String())
	assert.Equal(t, "0110", v.SllUint(0).String())
	assert.Equal(t, "0001", v.SrlUint(2).String())
}

func TestBitVectorDivRem(t *testing.T) {
	a := NewUint64(13, 4)
	b := NewUint64(5, 4)
	assert.Equal(t, uint64(2), a.Udiv(b).Uint64())
	assert.Equal(t, uint64(3), a.Urem(b).Uint64())

	q, r := a.UdivUrem(b)
	assert.Equal(t, uint64(2), q.Uint64())
	assert.Equal(t, uint64(3), r.Uint64())

	// Division by zero yields ones, remainder by zero the dividend.
	zero := New(4)
	assert.True(t, a.Udiv(zero).IsOnes())
	assert.Equal(t, uint64(13), a.Urem(zero).Uint64())
	q, r = a.UdivUrem(zero)
	assert.True(t, q.IsOnes())
	assert.Equal(t, uint64(13), r.Uint64())
}

func TestBitVectorSliceConcat(t *testing.T) {
	v := bv(t, "110101")
	s := v.Slice(4, 1)
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, "1010", s.String())
	assert.Equal(t, "1", v.Slice(0, 0).String())
	assert.Equal(t, "110101", v.Slice(5, 0).String())

	c := bv(t, "11").Concat(bv(t, "0101"))
	assert.Equal(t, 6, c.Width())
	assert.Equal(t, "110101", c.String())
}

func TestBitVectorCompareEq(t *testing.T) {
	a := NewUint64(5, 4)
	b := NewUint64(9, 4)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a.Copy()))
	assert.True(t, a.Eq(a.Copy()).IsTrue())
	assert.True(t, a.Eq(b).IsFalse())
}

func TestBitVectorTrailingZeros(t *testing.T) {
	assert.Equal(t, 2, NewUint64(12, 4).TrailingZeros())
	assert.Equal(t, 0, NewUint64(5, 4).TrailingZeros())
	assert.Equal(t, 4, New(4).TrailingZeros())
}

func TestBitVectorModInverse(t *testing.T) {
	// Every odd value is invertible modulo 2^w.
	for v := uint64(1); v < 16; v += 2 {
		inv := NewUint64(v, 4).ModInverse()
		assert.Equal(t, uint64(1), NewUint64(v, 4).Mul(inv).Uint64(), "inverse of %d", v)
	}
	assert.Panics(t, func() { NewUint64(6, 4).ModInverse() })
}

func TestBitVectorSetBit(t *testing.T) {
	v := New(4)
	v.SetBit(2, true)
	assert.Equal(t, "0100", v.String())
	assert.Equal(t, uint(1), v.Bit(2))
	v.SetBit(2, false)
	assert.True(t, v.IsZero())

	// Copies are independent.
	a := NewUint64(3, 4)
	b := a.Copy()
	b.SetBit(3, true)
	assert.Equal(t, "0011", a.String())
	assert.Equal(t, "1011", b.String())
}

func TestBitVectorWidthContracts(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { NewUint64(1, 4).Add(NewUint64(1, 5)) })
	assert.Panics(t, func() { NewUint64(1, 4).Compare(NewUint64(1, 3)) })
	assert.Panics(t, func() { NewUint64(1, 4).Bit(4) })
	assert.Panics(t, func() { NewUint64(1, 4).Slice(4, 0) })
	assert.Panics(t, func() { NewUint64(1, 4).Slice(1, 2) })
}

func TestBitVectorRandomRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	min := NewUint64(3, 6)
	max := NewUint64(17, 6)
	seen := map[uint64]bool{}
	for i := 0; i < 500; i++ {
		v := NewRandomRange(rng, 6, min, max)
		require.GreaterOrEqual(t, v.Compare(min), 0)
		require.LessOrEqual(t, v.Compare(max), 0)
		seen[v.Uint64()] = true
	}
	// 500 draws over 15 values should hit every value.
	assert.Len(t, seen, 15)

	// Degenerate range.
	v := NewRandomRange(rng, 6, min, min)
	assert.Equal(t, uint64(3), v.Uint64())
}

func TestBitVectorStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "1010", "0000", "111111111", "100000000"} {
		v, err := NewFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, v.String())
	}
}
