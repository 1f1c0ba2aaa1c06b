// Invertibility conditions for fixed-width bit-vector operators, based on
//
//	Aina Niemetz, Mathias Preiner, Andrew Reynolds, Clark Barrett, Cesare
//	Tinelli: Solving Quantified Bit-Vectors Using Invertibility Conditions.
//	CAV (2) 2018: 236-255
//
// Each oracle decides, for an equation with one unknown operand x, whether
// any value of x satisfies it. The oracles in this file treat x as fully
// unconstrained; the *Const variants in inv_const.go additionally respect
// the fixed bits of the domain of x.
//
// posX selects the position of x: 0 means x is the left operand, 1 the
// right. For commutative operators posX is irrelevant.
package bvprop

// IsInvAdd checks invertibility (ignoring fixed bits in x) for:
//
//	x + s = t
//	s + x = t
//
// IC: true
func IsInvAdd(x *Domain, t, s *BitVector, posX int) bool {
	return true
}

// IsInvAnd checks invertibility (ignoring fixed bits in x) for:
//
//	x & s = t
//	s & x = t
//
// IC: t & s = t
func IsInvAnd(x *Domain, t, s *BitVector, posX int) bool {
	return t.And(s).Compare(t) == 0
}

// IsInvConcat checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x ∘ s = t, IC: s = t[w(s)-1 : 0]
//	posX = 1: s ∘ x = t, IC: s = t[w(t)-1 : w(t)-w(s)]
func IsInvConcat(x *Domain, t, s *BitVector, posX int) bool {
	bwS := s.Width()
	bwT := t.Width()
	var slice *BitVector
	if posX == 0 {
		slice = t.Slice(bwS-1, 0)
	} else {
		slice = t.Slice(bwT-1, bwT-bwS)
	}
	return s.Compare(slice) == 0
}

// IsInvEq checks invertibility (ignoring fixed bits in x) for:
//
//	x == s = t
//	s == x = t
//
// IC: true
func IsInvEq(x *Domain, t, s *BitVector, posX int) bool {
	return true
}

// IsInvMul checks invertibility (ignoring fixed bits in x) for:
//
//	x * s = t
//	s * x = t
//
// IC: (-s | s) & t = t
func IsInvMul(x *Domain, t, s *BitVector, posX int) bool {
	return s.Neg().Or(s).And(t).Compare(t) == 0
}

// IsInvSll checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x << s = t, IC: (t >> s) << s = t
//	posX = 1: s << x = t, IC: \/ s << i = t for i = 0..w(s)
//
// The shift amounts iterated for posX = 1 include w(s) itself, covering the
// case where s is shifted out entirely.
func IsInvSll(x *Domain, t, s *BitVector, posX int) bool {
	if posX == 0 {
		return t.Srl(s).Sll(s).Compare(t) == 0
	}
	bwS := s.Width()
	for i := 0; i <= bwS; i++ {
		if s.Sll(NewUint64(uint64(i), bwS)).Compare(t) == 0 {
			return true
		}
	}
	return false
}

// IsInvSrl checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x >> s = t, IC: (t << s) >> s = t
//	posX = 1: s >> x = t, IC: \/ s >> i = t for i = 0..w(s)
func IsInvSrl(x *Domain, t, s *BitVector, posX int) bool {
	if posX == 0 {
		return t.Sll(s).Srl(s).Compare(t) == 0
	}
	bwS := s.Width()
	for i := 0; i <= bwS; i++ {
		if s.Srl(NewUint64(uint64(i), bwS)).Compare(t) == 0 {
			return true
		}
	}
	return false
}

// IsInvUdiv checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x / s = t, IC: (s * t) / s = t
//	posX = 1: s / x = t, IC: s / (s / t) = t
func IsInvUdiv(x *Domain, t, s *BitVector, posX int) bool {
	var udiv *BitVector
	if posX == 0 {
		udiv = s.Mul(t).Udiv(s)
	} else {
		udiv = s.Udiv(s.Udiv(t))
	}
	return udiv.Compare(t) == 0
}

// IsInvUlt checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x < s = t, IC: t = 0 \/ s != 0
//	posX = 1: s < x = t, IC: t = 0 \/ s != ones
func IsInvUlt(x *Domain, t, s *BitVector, posX int) bool {
	if posX == 0 {
		return t.IsZero() || !s.IsZero()
	}
	return t.IsZero() || !s.IsOnes()
}

// IsInvUrem checks invertibility (ignoring fixed bits in x) for:
//
//	posX = 0: x % s = t, IC: ~(-s) >= t
//	posX = 1: s % x = t, IC: (t + t - s) & s >= t
func IsInvUrem(x *Domain, t, s *BitVector, posX int) bool {
	negS := s.Neg()
	if posX == 0 {
		return t.Compare(negS.Not()) <= 0
	}
	return t.Compare(t.Add(t).Add(negS).And(s)) <= 0
}

// IsInvSlice checks invertibility (ignoring fixed bits in x) for:
//
//	x[upper:lower] = t
//
// IC: true
func IsInvSlice(x *Domain, t *BitVector, upper, lower int) bool {
	return true
}
