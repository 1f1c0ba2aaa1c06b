// This file implements lazy enumeration of the concrete members of a
// domain, optionally restricted to a value range [min, max].
//
// Progress is tracked with a compact counter over only the unknown bit
// positions of the domain: counter bit j (low to high) corresponds to the
// j-th unknown position (low to high). The emitted value is lo with the
// unknown positions overwritten by the counter bits, so composition happens
// only on emission and stepping is a single increment.
package bvprop

import "math/rand"

// Generator yields every concrete bit-vector consistent with a domain and
// lying in a clipped range [min, max], in ascending order. Random draws
// uniformly within the same range instead and never exhausts the generator.
//
// The generator owns its internal state, including the last emitted value:
// Next and Random return a vector that is invalidated by the following
// emission. Callers that keep a value across emissions must Copy it.
type Generator struct {
	domain *Domain
	rng    *rand.Rand

	// bits is the free-bit counter; nil when the generator is empty or
	// exhausted. bitsMin and bitsMax bound the counter such that every
	// composed value lies in [min, max].
	bits    *BitVector
	bitsMin *BitVector
	bitsMax *BitVector

	cur *BitVector

	min *BitVector
	max *BitVector
}

// NewGenerator returns a generator over all concrete members of d.
// rng may be nil if Random is never called.
func NewGenerator(d *Domain, rng *rand.Rand) *Generator {
	return NewGeneratorRange(d, rng, nil, nil)
}

// NewGeneratorRange returns a generator over the members of d within
// [min, max]. A nil bound means the corresponding domain bound. The range is
// clipped to [d.Lo(), d.Hi()]; an empty intersection yields an exhausted
// generator. A domain with no unknown bits also yields an exhausted
// generator: its only candidate is d.Lo(), which callers test directly.
func NewGeneratorRange(d *Domain, rng *rand.Rand, min, max *BitVector) *Generator {
	bw := d.Width()

	cnt := 0
	for i := 0; i < bw; i++ {
		if !d.IsFixedBit(i) {
			cnt++
		}
	}

	if min == nil || d.lo.Compare(min) > 0 {
		min = d.lo
	}
	if max == nil || d.hi.Compare(max) < 0 {
		max = d.hi
	}

	g := &Generator{
		domain: d.Copy(),
		rng:    rng,
		min:    min.Copy(),
		max:    max.Copy(),
	}

	if cnt == 0 || min.Compare(d.hi) > 0 || max.Compare(d.lo) < 0 {
		return g
	}

	// Smallest free-bit pattern whose composed value is >= min. Scan from
	// the MSB: free bits copy min until a fixed bit disagrees. A fixed 1
	// against min's 0 makes the composed value already greater, so the
	// remaining counter bits stay 0. A fixed 0 against min's 1 makes it
	// smaller at this position; repair by bumping the lowest-significance
	// free bit that copied a 0 (j0) and clearing everything below it.
	g.bitsMin = New(cnt)
	for i, j, j0 := 0, 0, 0; i < bw; i++ {
		idxI := bw - 1 - i
		bit := min.Bit(idxI)
		if !d.IsFixedBit(idxI) {
			g.bitsMin.SetBit(cnt-1-j, bit == 1)
			if bit == 0 {
				j0 = j
			}
			j++
		} else if d.IsFixedBitTrue(idxI) && bit == 0 {
			break
		} else if d.IsFixedBitFalse(idxI) && bit == 1 {
			g.bitsMin.SetBit(cnt-1-j0, true)
			for k := j0 + 1; k < cnt; k++ {
				g.bitsMin.SetBit(cnt-1-k, false)
			}
			break
		}
	}

	// Largest free-bit pattern whose composed value is <= max, derived
	// symmetrically from all-ones, tracking the lowest-significance free
	// bit that copied a 1.
	g.bitsMax = Ones(cnt)
	for i, j, j0 := 0, 0, 0; i < bw; i++ {
		idxI := bw - 1 - i
		bit := max.Bit(idxI)
		if !d.IsFixedBit(idxI) {
			g.bitsMax.SetBit(cnt-1-j, bit == 1)
			if bit == 1 {
				j0 = j
			}
			j++
		} else if d.IsFixedBitTrue(idxI) && bit == 0 {
			g.bitsMax.SetBit(cnt-1-j0, false)
			for k := j0 + 1; k < cnt; k++ {
				g.bitsMax.SetBit(cnt-1-k, true)
			}
			break
		} else if d.IsFixedBitFalse(idxI) && bit == 1 {
			break
		}
	}

	if g.bitsMin.Compare(g.bitsMax) <= 0 {
		g.bits = g.bitsMin.Copy()
	}
	return g
}

// HasNext reports whether Next has another value to yield.
func (g *Generator) HasNext() bool {
	return g.bits != nil && g.bits.Compare(g.bitsMax) <= 0
}

// Next yields the next value in ascending order. The returned vector is
// owned by the generator and invalidated by the following emission.
// Panics if the generator is exhausted.
func (g *Generator) Next() *BitVector {
	if !g.HasNext() {
		panic("bvprop: Generator.Next: generator is exhausted")
	}
	return g.nextBits(false)
}

// Random yields a value drawn uniformly from the generator's range. It
// never exhausts the generator. Panics if the generator was constructed
// without an RNG or is empty.
func (g *Generator) Random() *BitVector {
	if g.rng == nil {
		panic("bvprop: Generator.Random: no RNG")
	}
	if g.bitsMin == nil {
		panic("bvprop: Generator.Random: generator is empty")
	}
	return g.nextBits(true)
}

// Cur returns the value produced by the most recent emission, or nil before
// the first one. Borrowed; see Next.
func (g *Generator) Cur() *BitVector { return g.cur }

func (g *Generator) nextBits(random bool) *BitVector {
	bw := g.domain.Width()
	res := g.domain.lo.Copy()

	// Random resets the counter to a fresh draw in [bitsMin, bitsMax].
	if random {
		g.bits = NewRandomRange(g.rng, g.bitsMin.Width(), g.bitsMin, g.bitsMax)
	}

	for i, j := 0, 0; i < bw; i++ {
		if !g.domain.IsFixedBit(i) {
			res.SetBit(i, g.bits.Bit(j) == 1)
			j++
		}
	}

	if g.bits.Compare(g.bitsMax) == 0 {
		// All values enumerated. Random wraps around instead of
		// terminating.
		if random {
			g.bits = g.bitsMin.Copy()
		} else {
			g.bits = nil
		}
	} else {
		g.bits = g.bits.Inc()
	}

	g.cur = res
	return res
}
