package mpn

import (
	"math"
	"math/bits"

	"zint/internal/alloc"
)

// SizeInBase returns the number of digits needed to write x in the given
// base (2..36), excluding any sign. For power-of-two bases the count is
// exact; otherwise it may overestimate by one. Zero needs one digit.
func SizeInBase(x []Word, base int) int {
	bitlen := BitLen(x)
	if bitlen == 0 {
		return 1
	}
	if base&(base-1) == 0 {
		lb := uint64(bits.TrailingZeros(uint(base)))
		return int((bitlen + lb - 1) / lb)
	}
	return int(float64(bitlen)/math.Log2(float64(base))) + 1
}

// bigBase returns the largest power of base fitting in a word, together
// with its exponent.
func bigBase(base Word) (bb Word, dpw int) {
	bb, dpw = base, 1
	for bb <= MaxWord/base {
		bb *= base
		dpw++
	}
	return
}

// SetStr assembles z from digit values (0 <= d < base), most significant
// first, and returns the normalized length. The caller guarantees
// len(z) >= 1 + len(digits)/2, a generous bound for any base >= 2, and
// that z is writable scratch (its prior contents are ignored).
func SetStr(z []Word, digits []byte, base int) int {
	b := Word(base)
	_, dpw := bigBase(b)
	zl := 0
	for i := 0; i < len(digits); {
		chunk, mult := Word(0), Word(1)
		for j := 0; j < dpw && i < len(digits); j++ {
			chunk = chunk*b + Word(digits[i])
			mult *= b
			i++
		}
		var c Word
		if zl > 0 {
			c = Mul1(z[:zl], z[:zl], mult)
		}
		c += AddW(z[:zl], z[:zl], chunk)
		if c != 0 {
			z[zl] = c
			zl++
		}
	}
	return zl
}

// GetStr converts x to digit values in the given base (2..36), most
// significant first. Zero yields a single zero digit. x is not modified;
// non-power-of-two bases take a scratch copy from sc.
func GetStr(sc *alloc.Scope, x []Word, base int) ([]byte, error) {
	if len(x) == 0 {
		return []byte{0}, nil
	}
	b := Word(base)

	if base&(base-1) == 0 {
		lb := uint64(bits.TrailingZeros(uint(base)))
		bitlen := BitLen(x)
		ndig := (bitlen + lb - 1) / lb
		out := make([]byte, ndig)
		for j := uint64(0); j < ndig; j++ {
			pos := j * lb
			wi := pos / WordBits
			off := pos % WordBits
			v := x[wi] >> off
			if off+lb > WordBits && int(wi+1) < len(x) {
				v |= x[wi+1] << (WordBits - off)
			}
			out[ndig-1-j] = byte(v & (b - 1))
		}
		return out, nil
	}

	tmp, err := sc.Alloc(len(x))
	if err != nil {
		return nil, err
	}
	copy(tmp, x)
	tl := len(x)
	bb, dpw := bigBase(b)

	out := make([]byte, 0, SizeInBase(x, base))
	for tl > 0 {
		r := DivRem1(tmp[:tl], tmp[:tl], bb)
		tl = NormLen(tmp[:tl])
		if tl > 0 {
			// Full chunk: emit exactly dpw digits, low first.
			for j := 0; j < dpw; j++ {
				out = append(out, byte(r%b))
				r /= b
			}
		} else {
			for {
				out = append(out, byte(r%b))
				r /= b
				if r == 0 {
					break
				}
			}
		}
	}
	sc.Release(tmp)

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
