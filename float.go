package zint

import (
	"math"

	"zint/internal/mpn"
)

// float64 has a 53-bit significand and values up to 2^1024.
const (
	floatMantBits = 53
	floatMaxExp   = 1024
)

// SetFloat64 sets z to v truncated toward zero. NaN is ErrVal and an
// infinity is ErrBuf.
func (z *Int) SetFloat64(v float64) error {
	if math.IsNaN(v) {
		return ErrVal
	}
	if math.IsInf(v, 0) {
		return ErrBuf
	}
	neg := math.Signbit(v)
	a := math.Abs(v)
	if a < 1 {
		return z.resize(0)
	}
	fr, exp := math.Frexp(a)
	// a = mant * 2^(exp-53) exactly, with mant a 53-bit integer.
	mant := uint64(fr * (1 << floatMantBits))
	if err := z.SetUint64(mant); err != nil {
		return err
	}
	switch {
	case exp > floatMantBits:
		if err := z.Lsh(z, uint64(exp-floatMantBits)); err != nil {
			return err
		}
	case exp < floatMantBits:
		// Non-negative value, so the floor shift truncates toward zero.
		if err := z.Rsh(z, uint64(floatMantBits-exp)); err != nil {
			return err
		}
	}
	z.neg = neg && len(z.digits) > 0
	return nil
}

// Float64 returns the nearest float64, rounding ties to even. Values
// beyond the float64 range return the signed infinity together with
// ErrBuf.
func (z *Int) Float64() (float64, error) {
	size := len(z.digits)
	if size == 0 {
		return 0, nil
	}
	if size > floatMaxExp/mpn.WordBits+1 {
		return math.Inf(signFactor(z.neg)), ErrBuf
	}

	bits := z.BitLen()
	var d float64
	if bits <= floatMantBits {
		d = float64(z.digits[0])
	} else {
		// Truncate to the top 53 bits, then round.
		lo := bits - floatMantBits
		wi := lo / mpn.WordBits
		off := lo % mpn.WordBits
		v := z.digits[wi] >> off
		if off != 0 && int(wi+1) < size {
			v |= z.digits[wi+1] << (mpn.WordBits - off)
		}
		v &= 1<<floatMantBits - 1
		d = math.Ldexp(float64(v), int(lo))

		// Round half to even on the discarded bits: the bit just below
		// the significand decides, with any lower set bit breaking the
		// tie upward and an exact tie going to the even significand.
		guard := lo - 1
		if z.bit(guard) {
			tz := mpn.TrailingZeros(z.digits)
			if tz < guard || (tz == guard && z.bit(guard+1)) {
				d = math.Nextafter(d, math.Inf(1))
			}
		}
	}
	if math.IsInf(d, 0) {
		return math.Inf(signFactor(z.neg)), ErrBuf
	}
	if z.neg {
		d = -d
	}
	return d, nil
}

func signFactor(neg bool) int {
	if neg {
		return -1
	}
	return 1
}
