// Trial division with a mod-30 wheel (prime basis {2, 3, 5}), used by
// GetFactor to look for factors of a concrete value that lie in a domain.
// The invertibility oracles in this package do not call it.
package bvprop

// wheelFactorizer yields successive divisors of a number during trial
// division. After the initial candidates 2, 3 and 5 it steps through the
// mod-30 wheel, skipping multiples of 2, 3, and 5.
type wheelFactorizer struct {
	done bool
	num  *BitVector
	fact *BitVector

	pos int
	inc [11]*BitVector

	limit uint64
}

// newWheelFactorizer prepares trial division of n. A non-zero limit bounds
// the number of candidates tried per call to next.
func newWheelFactorizer(n *BitVector, limit uint64) *wheelFactorizer {
	bw := n.Width()
	one := One(bw)
	two := NewUint64(2, bw)
	four := NewUint64(4, bw)
	six := NewUint64(6, bw)

	return &wheelFactorizer{
		limit: limit,
		num:   n.Copy(),
		fact:  two.Copy(),
		inc:   [11]*BitVector{one, two, two, four, two, four, two, four, six, two, six},
	}
}

// next returns the next factor of the remaining number, or nil when
// iteration is finished. Termination cases: the candidate exceeds sqrt(num)
// and the remaining number is returned as the final prime factor; the
// per-call iteration limit is exceeded; or the candidate increment wraps
// around the bit-vector width.
func (wf *wheelFactorizer) next() *BitVector {
	if wf.done {
		return nil
	}

	var numIterations uint64
	for {
		numIterations++
		if wf.limit != 0 && numIterations > wf.limit {
			wf.done = true
			return nil
		}

		// sqrt(num) is the maximum factor.
		if wf.fact.Mul(wf.fact).Compare(wf.num) > 0 {
			wf.done = true
			return wf.num
		}

		quot, rem := wf.num.UdivUrem(wf.fact)
		if rem.IsZero() {
			wf.num = quot
			return wf.fact
		}

		next := wf.fact.Add(wf.inc[wf.pos])
		overflow := next.Compare(wf.fact) <= 0
		wf.fact = next
		if wf.pos == 10 {
			wf.pos = 3
		} else {
			wf.pos++
		}
		if overflow {
			wf.done = true
			return nil
		}
	}
}

// GetFactor returns a factor of num that is strictly greater than
// exclMinVal (if non-nil) and consistent with the fixed bits of x (if
// non-nil), or nil if trial division finds no such factor within limit
// candidates per step. The result is freshly owned by the caller.
func GetFactor(num *BitVector, x *Domain, exclMinVal *BitVector, limit uint64) *BitVector {
	wf := newWheelFactorizer(num, limit)
	for {
		fact := wf.next()
		if fact == nil {
			return nil
		}
		if (exclMinVal == nil || fact.Compare(exclMinVal) > 0) && (x == nil || x.CheckFixedBits(fact)) {
			return fact.Copy()
		}
	}
}
