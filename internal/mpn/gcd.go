package mpn

import "zint/internal/alloc"

// cmpNorm compares two normalized vectors of possibly different lengths.
func cmpNorm(x, y []Word) int {
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return Cmp(x, y)
}

// gcdWW is Euclid on single words.
func gcdWW(a, b Word) Word {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// stripTZ shifts a[:n] right by its count of trailing zero bits, in place,
// and returns the new normalized length. a[:n] must be nonzero.
func stripTZ(a []Word, n int) int {
	tz := TrailingZeros(a[:n])
	whole := int(tz / WordBits)
	if whole > 0 {
		copy(a, a[whole:n])
		n -= whole
	}
	if s := uint(tz % WordBits); s > 0 {
		Rshift(a[:n], a[:n], s)
	}
	return NormLen(a[:n])
}

// Gcd computes g = gcd(x, y) for nonzero normalized vectors whose common
// power of two has already been removed by the caller, and returns the
// normalized length of g. g needs room for min(len(x), len(y)) words and
// must not overlap x or y. x and y are not modified.
//
// Binary reduction with a single-word Euclid finish; the gcd of inputs
// with no common factor of two is odd, so per-operand trailing zeros can
// be discarded freely.
func Gcd(sc *alloc.Scope, g, x, y []Word) (int, error) {
	a, err := sc.Alloc(len(x))
	if err != nil {
		return 0, err
	}
	b, err := sc.Alloc(len(y))
	if err != nil {
		return 0, err
	}
	copy(a, x)
	copy(b, y)
	an := stripTZ(a, len(x))
	bn := stripTZ(b, len(y))

	for {
		if an == 1 && bn == 1 {
			g[0] = gcdWW(a[0], b[0])
			break
		}
		if bn == 1 {
			g[0] = gcdWW(b[0], Mod1(a[:an], b[0]))
			break
		}
		if an == 1 {
			g[0] = gcdWW(a[0], Mod1(b[:bn], a[0]))
			break
		}
		switch cmpNorm(a[:an], b[:bn]) {
		case 0:
			copy(g, a[:an])
			sc.Release(b)
			sc.Release(a)
			return an, nil
		case 1:
			Sub(a[:an], a[:an], b[:bn])
			an = stripTZ(a, NormLen(a[:an]))
		default:
			Sub(b[:bn], b[:bn], a[:an])
			bn = stripTZ(b, NormLen(b[:bn]))
		}
	}
	sc.Release(b)
	sc.Release(a)
	return 1, nil
}
