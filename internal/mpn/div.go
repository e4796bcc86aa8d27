package mpn

import (
	"math/bits"

	"zint/internal/alloc"
)

// DivRem1 computes q = x / d and returns the remainder, for d != 0 and
// len(q) == len(x). q may alias x.
func DivRem1(q, x []Word, d Word) (r Word) {
	for i := len(x) - 1; i >= 0; i-- {
		q[i], r = bits.Div64(r, x[i], d)
	}
	return
}

// Mod1 returns x mod d for d != 0 without computing the quotient.
func Mod1(x []Word, d Word) (r Word) {
	for i := len(x) - 1; i >= 0; i-- {
		_, r = bits.Div64(r, x[i], d)
	}
	return
}

// subMul1 computes z -= x * w over len(x) words and returns the borrow
// word to subtract from the next position.
func subMul1(z, x []Word, w Word) (b Word) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], w)
		lo, c := bits.Add64(lo, b, 0)
		hi += c
		z[i], c = bits.Sub64(z[i], lo, 0)
		b = hi + c
	}
	return
}

// DivRem computes the truncating division u / v into q and the remainder
// into r, using Knuth's Algorithm D. Requirements:
//
//	len(v) >= 1, v normalized (top word nonzero)
//	len(u) >= len(v), u normalized
//	len(q) == len(u) - len(v) + 1 (the top word of q may come out zero)
//	len(r) == len(v)
//
// q and r must not overlap u or v. Scratch is taken from sc; on allocation
// failure q and r are left unspecified and the error is returned.
func DivRem(sc *alloc.Scope, q, r, u, v []Word) error {
	n := len(v)
	if n == 1 {
		r[0] = DivRem1(q, u, v[0])
		return nil
	}
	m := len(u) - n

	un, err := sc.Alloc(len(u) + 1)
	if err != nil {
		return err
	}
	vn, err := sc.Alloc(n)
	if err != nil {
		return err
	}

	// D1: normalize so the top word of vn has its high bit set.
	shift := uint(bits.LeadingZeros64(v[n-1]))
	if shift > 0 {
		Lshift(vn, v, shift)
		un[len(u)] = Lshift(un[:len(u)], u, shift)
	} else {
		copy(vn, v)
		copy(un, u)
		un[len(u)] = 0
	}

	// D2..D7: schoolbook quotient words, most significant first.
	for j := m; j >= 0; j-- {
		qhat := MaxWord
		if ujn := un[j+n]; ujn != vn[n-1] {
			var rhat Word
			qhat, rhat = bits.Div64(ujn, un[j+n-1], vn[n-1])
			for {
				hi, lo := bits.Mul64(qhat, vn[n-2])
				if hi < rhat || (hi == rhat && lo <= un[j+n-2]) {
					break
				}
				qhat--
				prev := rhat
				rhat += vn[n-1]
				if rhat < prev {
					break
				}
			}
		}
		// D4: multiply and subtract.
		b := subMul1(un[j:j+n], vn, qhat)
		top, borrow := bits.Sub64(un[j+n], b, 0)
		un[j+n] = top
		if borrow != 0 {
			// D6: qhat was one too large, add v back.
			qhat--
			c := AddN(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
		}
		q[j] = qhat
	}

	// Denormalize the remainder.
	if shift > 0 {
		Rshift(r, un[:n], shift)
	} else {
		copy(r, un[:n])
	}
	sc.Release(vn)
	sc.Release(un)
	return nil
}
