// Package zint implements arbitrary-precision signed integers in
// sign-magnitude form: a boolean sign and a little-endian vector of 64-bit
// digits. Unlike math/big, every fallible operation returns an explicit
// error, memory comes from a pluggable allocator, and failure paths roll
// back cleanly, so the type remains usable on out-of-memory instead of
// aborting the process.
//
// The zero value of Int is a valid representation of 0 and needs no
// initialization. Values are not safe for concurrent mutation; distinct
// values may be used from distinct goroutines freely.
//
// Operands and results may alias: x.Add(x, x), u.DivMod(u, v, u, r) and
// similar calls all produce correct results. Outputs of one call must be
// distinct from each other unless a method documents otherwise.
package zint

import (
	"math"

	"zint/internal/alloc"
	"zint/internal/mpn"
)

// Word is one 64-bit digit of a magnitude, least significant digit first.
type Word = mpn.Word

// maxDigits caps the digit count of any value, keeping every size and
// bit-position computation inside int64.
const maxDigits = math.MaxInt64 / mpn.WordBits

// version is reported by Version.
const version = "1.0.0"

// Int is an arbitrary-precision signed integer. The representation is
// always normalized: no high zero digits, and the sign flag is never set
// on a zero value.
type Int struct {
	neg    bool
	digits []Word
}

// Version returns the library version string.
func Version() string {
	return version
}

// MaxBits returns the largest supported operand width in bits.
func MaxBits() uint64 {
	return uint64(maxDigits) * mpn.WordBits
}

// resize grows or shrinks the digit count to n. Capacity only grows: a
// shrinking resize reuses the existing buffer. On allocation failure the
// value is left untouched and ErrMem is returned. Resizing to 0 clears
// the sign.
func (z *Int) resize(n int) error {
	if n > maxDigits {
		return ErrBuf
	}
	if cap(z.digits) >= n {
		z.digits = z.digits[:n]
		if n == 0 {
			z.neg = false
		}
		return nil
	}
	buf, err := alloc.Alloc(n)
	if err != nil {
		return ErrMem
	}
	copy(buf, z.digits)
	if cap(z.digits) > 0 {
		alloc.Free(cap(z.digits))
	}
	z.digits = buf[:n]
	return nil
}

// normalize strips high zero digits and clears the sign of zero.
func (z *Int) normalize() {
	n := len(z.digits)
	for n > 0 && z.digits[n-1] == 0 {
		n--
	}
	z.digits = z.digits[:n]
	if n == 0 {
		z.neg = false
	}
}

// Clear releases the value's storage and resets it to zero. The value
// remains usable afterwards. Clearing is only needed when a custom
// accounting allocator is installed; under the default allocator the
// garbage collector reclaims storage either way.
func (z *Int) Clear() {
	if cap(z.digits) > 0 {
		alloc.Free(cap(z.digits))
	}
	z.digits = nil
	z.neg = false
}

// setZero resets to 0 without releasing storage.
func (z *Int) setZero() {
	z.digits = z.digits[:0]
	z.neg = false
}

// IsZero reports whether z is 0.
func (z *Int) IsZero() bool {
	return len(z.digits) == 0
}

// IsOdd reports whether z is odd.
func (z *Int) IsOdd() bool {
	return len(z.digits) > 0 && z.digits[0]&1 == 1
}

// Sign returns -1, 0 or +1.
func (z *Int) Sign() int {
	switch {
	case len(z.digits) == 0:
		return 0
	case z.neg:
		return -1
	}
	return 1
}

// BitLen returns the magnitude's bit length; 0 for a zero value.
func (z *Int) BitLen() uint64 {
	return mpn.BitLen(z.digits)
}

// TrailingZeroBits returns the position of the lowest set bit of the
// magnitude. It returns 0 for a zero value, indistinguishable from a
// value with bit 0 set; callers check IsZero when it matters.
func (z *Int) TrailingZeroBits() uint64 {
	if len(z.digits) == 0 {
		return 0
	}
	return mpn.TrailingZeros(z.digits)
}

// PopCount returns the number of set bits in the magnitude.
func (z *Int) PopCount() uint64 {
	return mpn.PopCount(z.digits)
}

// bit reports whether bit i of the magnitude is set.
func (z *Int) bit(i uint64) bool {
	wi := i / mpn.WordBits
	if wi >= uint64(len(z.digits)) {
		return false
	}
	return z.digits[wi]>>(i%mpn.WordBits)&1 == 1
}

// Cmp compares z and x, returning -1, 0 or +1. Comparing a value against
// itself is free.
func (z *Int) Cmp(x *Int) int {
	if z == x {
		return 0
	}
	zs, xs := z.Sign(), x.Sign()
	switch {
	case zs != xs:
		if zs < xs {
			return -1
		}
		return 1
	case zs == 0:
		return 0
	}
	c := cmpMag(z.digits, x.digits)
	if z.neg {
		return -c
	}
	return c
}

// CmpInt64 compares z against a fixed-width value.
func (z *Int) CmpInt64(x int64) int {
	var t Int
	var buf [1]Word
	t.digits = buf[:0]
	t.setInt64NoAlloc(x)
	return z.Cmp(&t)
}

// cmpMag compares two normalized magnitudes of any lengths.
func cmpMag(x, y []Word) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return mpn.Cmp(x, y)
}

// Set copies x into z.
func (z *Int) Set(x *Int) error {
	if z == x {
		return nil
	}
	if err := z.resize(len(x.digits)); err != nil {
		return err
	}
	z.neg = x.neg
	copy(z.digits, x.digits)
	return nil
}

// Abs sets z to |x|.
func (z *Int) Abs(x *Int) error {
	if err := z.Set(x); err != nil {
		return err
	}
	z.neg = false
	return nil
}

// Neg sets z to -x.
func (z *Int) Neg(x *Int) error {
	if err := z.Set(x); err != nil {
		return err
	}
	z.neg = !z.neg && len(z.digits) > 0
	return nil
}
