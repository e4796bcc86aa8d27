package mpn

import "zint/internal/alloc"

// addBit adds 1<<pos to z in place and returns the carry out of the top
// word.
func addBit(z []Word, pos uint64) Word {
	wi := pos / WordBits
	return AddW(z[wi:], z[wi:], Word(1)<<(pos%WordBits))
}

// SqrtRem computes the integer square root of u and, when rem is non-nil,
// the remainder u - root*root. Requirements:
//
//	len(u) >= 1, u normalized
//	len(root) >= (len(u)+1)/2
//	rem nil, or len(rem) >= len(u)
//
// u is not modified. Returns the normalized lengths of root and remainder
// (remLen is 0 when rem is nil).
//
// Digit-by-digit method over base 4: for each bit pair, from the leading
// power of four downward, try appending a set bit to the root and keep it
// if the running remainder stays non-negative.
func SqrtRem(sc *alloc.Scope, root, rem, u []Word) (rootLen, remLen int, err error) {
	n := len(u)
	num, err := sc.Alloc(n)
	if err != nil {
		return 0, 0, err
	}
	res, err := sc.Alloc(n)
	if err != nil {
		return 0, 0, err
	}
	t, err := sc.Alloc(n)
	if err != nil {
		return 0, 0, err
	}
	copy(num, u)

	for bp := int64((BitLen(u) - 1) &^ 1); bp >= 0; bp -= 2 {
		// t = res + 1<<bp, then res >>= 1. If the trial value fits in
		// the remainder, accept the bit.
		copy(t, res)
		carry := addBit(t, uint64(bp))
		Rshift(res, res, 1)
		if carry == 0 && cmpNorm(num[:NormLen(num)], t[:NormLen(t)]) >= 0 {
			Sub(num, num, t)
			addBit(res, uint64(bp))
		}
	}

	rootLen = NormLen(res)
	copy(root, res[:rootLen])
	if rem != nil {
		remLen = NormLen(num)
		copy(rem, num[:remLen])
	}
	sc.Release(t)
	sc.Release(res)
	sc.Release(num)
	return rootLen, remLen, nil
}
