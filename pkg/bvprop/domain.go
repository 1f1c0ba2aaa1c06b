// This file defines the three-valued abstract bit-vector domain used by the
// invertibility oracles. A domain stores two concrete bounds (lo, hi) of
// equal width; a concrete vector b belongs to the domain iff
// (lo & b) = lo and (b | hi) = hi, i.e. lo <= b <= hi bitwise. A bit
// position is fixed iff lo and hi agree on it.
//
// Representing the domain as two concrete bit-vectors (rather than a ternary
// array) keeps every propagation step reducible to bitwise primitives: the
// fixed-bit mask is ~(lo ^ hi), membership is a pair of masks, and bitwise
// not is a bound swap.
package bvprop

import (
	"strings"

	"github.com/pkg/errors"
)

// Domain is an abstract bit-vector where each bit is 0, 1, or unknown.
//
// Invariant: a domain is valid iff ~lo | hi is all-ones, i.e. no position
// has lo=1, hi=0. Constructors do not enforce validity; callers that depend
// on it check IsValid.
//
// Domains passed to oracles are read-only; FixBit is the only mutating
// operation and is never applied by the kernel to its inputs.
type Domain struct {
	lo *BitVector
	hi *BitVector
}

// NewDomain returns the fully-unknown domain of the given width
// (lo = 0, hi = ones). Panics if width < 1.
func NewDomain(width int) *Domain {
	return &Domain{lo: New(width), hi: Ones(width)}
}

// NewDomainFromBounds returns the domain with the given bounds, copied.
// Panics if the widths disagree.
func NewDomainFromBounds(lo, hi *BitVector) *Domain {
	lo.checkSameWidth("NewDomainFromBounds", hi)
	return &Domain{lo: lo.Copy(), hi: hi.Copy()}
}

// NewDomainFromString parses a ternary string (MSB first) over the alphabet
// {'0', '1', 'x'} where 'x' marks an unknown bit. The lower bound replaces
// 'x' with 0, the upper bound with 1.
func NewDomainFromString(s string) (*Domain, error) {
	if len(s) == 0 {
		return nil, errors.New("NewDomainFromString: empty string")
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '0' && c != '1' && c != 'x' {
			return nil, errors.Errorf("NewDomainFromString: invalid character %q at position %d", c, i)
		}
	}
	lo, err := NewFromString(strings.Map(func(r rune) rune {
		if r == 'x' {
			return '0'
		}
		return r
	}, s))
	if err != nil {
		return nil, errors.Wrap(err, "NewDomainFromString")
	}
	hi, err := NewFromString(strings.Map(func(r rune) rune {
		if r == 'x' {
			return '1'
		}
		return r
	}, s))
	if err != nil {
		return nil, errors.Wrap(err, "NewDomainFromString")
	}
	return &Domain{lo: lo, hi: hi}, nil
}

// NewFixedDomain returns the singleton domain {bv}.
func NewFixedDomain(bv *BitVector) *Domain {
	return &Domain{lo: bv.Copy(), hi: bv.Copy()}
}

// NewFixedDomainUint64 returns the singleton domain holding val at the given
// width. Panics if width < 1.
func NewFixedDomainUint64(val uint64, width int) *Domain {
	lo := NewUint64(val, width)
	return &Domain{lo: lo, hi: lo.Copy()}
}

// Lo returns the lower bound. The result is borrowed; callers must not
// mutate it.
func (d *Domain) Lo() *BitVector { return d.lo }

// Hi returns the upper bound. The result is borrowed; callers must not
// mutate it.
func (d *Domain) Hi() *BitVector { return d.hi }

// Width returns the width of the domain in bits.
func (d *Domain) Width() int { return d.lo.Width() }

// Copy returns an independent copy of the domain.
func (d *Domain) Copy() *Domain {
	return &Domain{lo: d.lo.Copy(), hi: d.hi.Copy()}
}

// Equal reports structural equality on both bounds.
func (d *Domain) Equal(other *Domain) bool {
	return d.hi.Compare(other.hi) == 0 && d.lo.Compare(other.lo) == 0
}

// Slice extracts bit range [upper:lower] from both bounds into a new domain
// of width upper-lower+1.
func (d *Domain) Slice(upper, lower int) *Domain {
	return &Domain{lo: d.lo.Slice(upper, lower), hi: d.hi.Slice(upper, lower)}
}

// Not returns the bitwise complement of the domain. The bounds swap
// (~hi becomes the new lo) so that lo <= hi is preserved.
func (d *Domain) Not() *Domain {
	return &Domain{lo: d.hi.Not(), hi: d.lo.Not()}
}

// IsValid reports whether no bit position has lo=1, hi=0.
func (d *Domain) IsValid() bool {
	return d.lo.Not().Or(d.hi).IsOnes()
}

// IsFixed reports whether the domain is a single concrete value (lo = hi).
func (d *Domain) IsFixed() bool {
	return d.lo.Eq(d.hi).IsTrue()
}

// HasFixedBits reports whether at least one bit position is fixed.
func (d *Domain) HasFixedBits() bool {
	return d.lo.Xnor(d.hi).Redor().IsTrue()
}

// FixBit fixes bit pos to the given value by setting it in both bounds.
// Panics if pos is out of range.
func (d *Domain) FixBit(pos int, value bool) {
	if pos < 0 || pos >= d.Width() {
		panic("bvprop: FixBit: index out of range")
	}
	d.lo.SetBit(pos, value)
	d.hi.SetBit(pos, value)
}

// IsFixedBit reports whether bit pos is fixed. Panics if pos is out of
// range.
func (d *Domain) IsFixedBit(pos int) bool {
	if pos < 0 || pos >= d.Width() {
		panic("bvprop: IsFixedBit: index out of range")
	}
	return d.lo.Bit(pos) == d.hi.Bit(pos)
}

// IsFixedBitTrue reports whether bit pos is fixed to 1.
func (d *Domain) IsFixedBitTrue(pos int) bool {
	return d.lo.Bit(pos) == 1 && d.hi.Bit(pos) == 1
}

// IsFixedBitFalse reports whether bit pos is fixed to 0.
func (d *Domain) IsFixedBitFalse(pos int) bool {
	return d.lo.Bit(pos) == 0 && d.hi.Bit(pos) == 0
}

// CheckFixedBits reports whether every fixed bit of the domain equals the
// corresponding bit of bv, computed as ((bv & hi) | lo) = bv.
func (d *Domain) CheckFixedBits(bv *BitVector) bool {
	return bv.And(d.hi).Or(d.lo).Compare(bv) == 0
}

// IsConsistent reports the same property as CheckFixedBits, expressed
// bit by bit.
func (d *Domain) IsConsistent(bv *BitVector) bool {
	w := bv.Width()
	for i := 0; i < w; i++ {
		if d.IsFixedBit(i) && d.lo.Bit(i) != bv.Bit(i) {
			return false
		}
	}
	return true
}

// String renders the domain as a ternary string, MSB first: '0'/'1' where
// the bounds agree, 'x' for an unknown bit (lo=0, hi=1), and '?' for the
// invalid case lo=1, hi=0.
func (d *Domain) String() string {
	w := d.Width()
	var sb strings.Builder
	sb.Grow(w)
	for i := w - 1; i >= 0; i-- {
		sb.WriteByte(renderBit(d.lo.Bit(i), d.hi.Bit(i)))
	}
	return sb.String()
}

func renderBit(lo, hi uint) byte {
	switch {
	case lo == hi && lo == 0:
		return '0'
	case lo == hi:
		return '1'
	case lo == 0:
		return 'x'
	default:
		return '?'
	}
}

const printBufferSize = 1024

// Process-wide rotating buffer backing ToStr. Not safe for concurrent use
// without external serialization.
var (
	strBuf    [printBufferSize]byte
	strBufPos int
)

// ToStr renders the domain through a fixed-size process-wide rotating
// buffer. Rendering that would not fit in the remaining buffer space resets
// to the buffer start; domains whose width + 1 reaches the buffer size
// (width >= 1023) are truncated to width-3 bits and suffixed with "...". Intended for debugging output only;
// use String for an owned rendering.
func (d *Domain) ToStr() string {
	width := d.Width()
	tooLong := width+1 >= printBufferSize

	if width+1 >= printBufferSize-strBufPos {
		strBufPos = 0
	}

	printWidth := width
	if tooLong {
		printWidth = width - 3
	}
	bufStart := strBufPos
	for i := 1; i <= printWidth; i++ {
		strBuf[strBufPos] = renderBit(d.lo.Bit(width-i), d.hi.Bit(width-i))
		strBufPos++
	}
	if tooLong {
		copy(strBuf[strBufPos:], "...")
		strBufPos += 3
	}
	return string(strBuf[bufStart:strBufPos])
}
