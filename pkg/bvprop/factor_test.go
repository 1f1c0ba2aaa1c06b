package bvprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// factorize drains the wheel into the full factor sequence.
func factorize(t *testing.T, n uint64, width int, limit uint64) []uint64 {
	t.Helper()
	wf := newWheelFactorizer(NewUint64(n, width), limit)
	var res []uint64
	for {
		f := wf.next()
		if f == nil {
			return res
		}
		res = append(res, f.Uint64())
		require.Less(t, len(res), 100)
	}
}

func TestWheelFactorizerSequence(t *testing.T) {
	tests := []struct {
		n    uint64
		want []uint64
	}{
		{60, []uint64{2, 2, 3, 5}},
		{84, []uint64{2, 2, 3, 7}},
		{97, []uint64{97}},      // prime
		{121, []uint64{11, 11}}, // square of a wheel candidate
		{2, []uint64{2}},
	}
	for _, tt := range tests {
		got := factorize(t, tt.n, 8, 0)
		assert.Equal(t, tt.want, got, "n = %d", tt.n)

		// Every factor divides n and the product reconstructs it.
		prod := uint64(1)
		for _, f := range got {
			assert.Zero(t, tt.n%f, "factor %d of %d", f, tt.n)
			prod *= f
		}
		assert.Equal(t, tt.n, prod, "product of factors of %d", tt.n)
	}
}

func TestWheelFactorizerLimit(t *testing.T) {
	// 251 is prime; finishing needs many wheel steps, so a limit of 1
	// candidate per call gives up first.
	wf := newWheelFactorizer(NewUint64(251, 8), 1)
	assert.Nil(t, wf.next())
	// The factorizer stays finished.
	assert.Nil(t, wf.next())
}

func TestWheelFactorizerOverflow(t *testing.T) {
	// At width 3 the squared candidates wrap (3*3, 5*5 and 7*7 are all 1
	// mod 8), so the sqrt bound is never reached for 7: the wheel walks
	// 2, 3, 5, 7 and returns 7 as its own factor. With 1 left over, the
	// next increment 7 + 4 wraps around and ends the iteration.
	wf := newWheelFactorizer(NewUint64(7, 3), 0)
	f := wf.next()
	require.NotNil(t, f)
	assert.Equal(t, uint64(7), f.Uint64())
	assert.Nil(t, wf.next())
}

func TestGetFactor(t *testing.T) {
	n := NewUint64(60, 8)

	// Unconstrained: the first factor found.
	f := GetFactor(n, nil, nil, 0)
	require.NotNil(t, f)
	assert.Equal(t, uint64(2), f.Uint64())

	// Exclusion bound skips the small factors.
	f = GetFactor(n, nil, NewUint64(3, 8), 0)
	require.NotNil(t, f)
	assert.Equal(t, uint64(5), f.Uint64())

	// Domain filter: only factors consistent with the fixed bits qualify.
	// 00000x1x admits 2, 3, 6, 7; the wheel reaches 2 first.
	d := dom(t, "00000x1x")
	f = GetFactor(n, d, nil, 0)
	require.NotNil(t, f)
	assert.Equal(t, uint64(2), f.Uint64())

	// Combined: exclude <= 2, fixed bits require 0000x101 (admits 5, 13).
	f = GetFactor(n, dom(t, "0000x101"), NewUint64(2, 8), 0)
	require.NotNil(t, f)
	assert.Equal(t, uint64(5), f.Uint64())

	// No admissible factor.
	f = GetFactor(n, dom(t, "01000000"), nil, 0)
	assert.Nil(t, f)

	// The result is a copy, owned by the caller.
	f = GetFactor(n, nil, nil, 0)
	f.SetBit(7, true)
	g := GetFactor(n, nil, nil, 0)
	assert.Equal(t, uint64(2), g.Uint64())
}
