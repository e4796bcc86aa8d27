// Package mpn implements low-level arithmetic on vectors of 64-bit words,
// least-significant word first. It is the primitive layer underneath the
// signed integer type: all functions here operate on magnitudes only and
// know nothing about signs.
//
// Conventions, shared with classic bignum kernels:
//   - vectors are []Word slices whose length is the operand size;
//   - an operand of length zero represents the value zero;
//   - "normalized" means the most significant word is nonzero;
//   - destination slices must be fully sized by the caller unless a
//     function documents otherwise.
//
// Only schoolbook algorithms are used. Functions that need scratch space
// take an *alloc.Scope so failed allocations roll back cleanly.
package mpn

import "math/bits"

// Word is one 64-bit digit of a multi-precision magnitude.
type Word = uint64

const (
	// WordBits is the number of bits in a Word.
	WordBits = 64
	// WordBytes is the number of bytes in a Word.
	WordBytes = 8
	// MaxWord is the all-ones word.
	MaxWord = ^Word(0)
)

// Cmp compares two equally sized vectors, most significant word first.
// It returns -1, 0 or +1.
func Cmp(x, y []Word) int {
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// AddN computes z = x + y for equally sized vectors and returns the carry.
// z may alias x or y.
func AddN(z, x, y []Word) (c Word) {
	for i := range z {
		z[i], c = bits.Add64(x[i], y[i], c)
	}
	return
}

// SubN computes z = x - y for equally sized vectors and returns the borrow.
// z may alias x or y.
func SubN(z, x, y []Word) (b Word) {
	for i := range z {
		z[i], b = bits.Sub64(x[i], y[i], b)
	}
	return
}

// Add computes z = x + y where len(x) >= len(y) and len(z) == len(x),
// returning the final carry. z may alias x or y.
func Add(z, x, y []Word) Word {
	c := AddN(z[:len(y)], x, y)
	return addCarry(z[len(y):], x[len(y):], c)
}

// Sub computes z = x - y where x >= y element-wise as magnitudes,
// len(x) >= len(y) and len(z) == len(x). The returned borrow is zero when
// the precondition holds. z may alias x or y.
func Sub(z, x, y []Word) Word {
	b := SubN(z[:len(y)], x, y)
	return subBorrow(z[len(y):], x[len(y):], b)
}

// AddW computes z = x + w, where w may be any word, and returns the
// carry out of the top word. z may alias x.
func AddW(z, x []Word, w Word) Word {
	if len(z) == 0 {
		return w
	}
	var c Word
	z[0], c = bits.Add64(x[0], w, 0)
	return addCarry(z[1:], x[1:], c)
}

// SubW computes z = x - w, where w may be any word, and returns the
// borrow out of the top word. z may alias x.
func SubW(z, x []Word, w Word) Word {
	if len(z) == 0 {
		return w
	}
	var b Word
	z[0], b = bits.Sub64(x[0], w, 0)
	return subBorrow(z[1:], x[1:], b)
}

// addCarry propagates a 0/1 carry through z = x + c.
func addCarry(z, x []Word, c Word) Word {
	for i := range z {
		z[i], c = bits.Add64(x[i], 0, c)
	}
	return c
}

// subBorrow propagates a 0/1 borrow through z = x - b.
func subBorrow(z, x []Word, b Word) Word {
	for i := range z {
		z[i], b = bits.Sub64(x[i], 0, b)
	}
	return b
}

// Lshift computes z = x << s for 0 < s < 64 with len(z) == len(x), and
// returns the bits shifted out of the top word. In-place operation is
// allowed, including z at a higher offset within the same buffer.
func Lshift(z, x []Word, s uint) (out Word) {
	n := len(x)
	if n == 0 {
		return 0
	}
	ŝ := WordBits - s
	w1 := x[n-1]
	out = w1 >> ŝ
	for i := n - 1; i > 0; i-- {
		w := w1
		w1 = x[i-1]
		z[i] = w<<s | w1>>ŝ
	}
	z[0] = w1 << s
	return
}

// Rshift computes z = x >> s for 0 < s < 64 with len(z) == len(x), and
// returns the bits shifted out of the bottom word, left-aligned. In-place
// operation is allowed, including z at a lower offset within the same
// buffer.
func Rshift(z, x []Word, s uint) (out Word) {
	n := len(x)
	if n == 0 {
		return 0
	}
	ŝ := WordBits - s
	w1 := x[0]
	out = w1 << ŝ
	for i := 0; i < n-1; i++ {
		w := w1
		w1 = x[i+1]
		z[i] = w>>s | w1<<ŝ
	}
	z[n-1] = w1 >> s
	return
}

// Mul1 computes z = x * w with len(z) == len(x) and returns the carry word.
// z may alias x.
func Mul1(z, x []Word, w Word) (c Word) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], w)
		lo, cc := bits.Add64(lo, c, 0)
		z[i] = lo
		c = hi + cc
	}
	return
}

// AddMul1 computes z += x * w with len(z) == len(x) and returns the carry
// word.
func AddMul1(z, x []Word, w Word) (c Word) {
	for i := range x {
		hi, lo := bits.Mul64(x[i], w)
		lo, c1 := bits.Add64(lo, c, 0)
		lo, c2 := bits.Add64(lo, z[i], 0)
		z[i] = lo
		c = hi + c1 + c2
	}
	return
}

// AndN computes z = x & y for equally sized vectors.
func AndN(z, x, y []Word) {
	for i := range z {
		z[i] = x[i] & y[i]
	}
}

// AndnN computes z = x &^ y for equally sized vectors.
func AndnN(z, x, y []Word) {
	for i := range z {
		z[i] = x[i] &^ y[i]
	}
}

// IorN computes z = x | y for equally sized vectors.
func IorN(z, x, y []Word) {
	for i := range z {
		z[i] = x[i] | y[i]
	}
}

// XorN computes z = x ^ y for equally sized vectors.
func XorN(z, x, y []Word) {
	for i := range z {
		z[i] = x[i] ^ y[i]
	}
}

// Zero clears z.
func Zero(z []Word) {
	for i := range z {
		z[i] = 0
	}
}

// NormLen returns the normalized length of x: the length with high zero
// words stripped.
func NormLen(x []Word) int {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return n
}

// BitLen returns the position of the most significant set bit plus one,
// or 0 for an all-zero (or empty) vector. x need not be normalized.
func BitLen(x []Word) uint64 {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != 0 {
			return uint64(i)*WordBits + uint64(bits.Len64(x[i]))
		}
	}
	return 0
}

// TrailingZeros returns the position of the least significant set bit.
// x must be nonzero.
func TrailingZeros(x []Word) uint64 {
	for i := 0; i < len(x); i++ {
		if x[i] != 0 {
			return uint64(i)*WordBits + uint64(bits.TrailingZeros64(x[i]))
		}
	}
	return 0
}

// PopCount returns the number of set bits in x.
func PopCount(x []Word) (n uint64) {
	for _, w := range x {
		n += uint64(bits.OnesCount64(w))
	}
	return
}
