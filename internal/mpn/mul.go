package mpn

import "math/bits"

// Mul computes z = x * y with len(z) == len(x)+len(y), len(x) >= len(y) >= 1.
// z must not overlap x or y. The top word of z may come out zero; callers
// trim it.
func Mul(z, x, y []Word) {
	z[len(x)] = Mul1(z[:len(x)], x, y[0])
	for i := 1; i < len(y); i++ {
		z[len(x)+i] = AddMul1(z[i:i+len(x)], x, y[i])
	}
}

// Sqr computes z = x * x with len(z) == 2*len(x), len(x) >= 1. z must not
// overlap x. Schoolbook squaring: the off-diagonal triangle is accumulated
// once and doubled, then the diagonal squares are added in.
func Sqr(z, x []Word) {
	n := len(x)
	Zero(z[:2*n])
	for i := 0; i < n-1; i++ {
		z[n+i] = AddMul1(z[2*i+1:i+n], x[i+1:], x[i])
	}
	if n > 1 {
		Lshift(z[1:2*n], z[1:2*n], 1)
	}
	var c Word
	for i := 0; i < n; i++ {
		hi, lo := bits.Mul64(x[i], x[i])
		var c1, c2 Word
		z[2*i], c1 = bits.Add64(z[2*i], lo, c)
		z[2*i+1], c2 = bits.Add64(z[2*i+1], hi, c1)
		c = c2
	}
}
