package zint

import (
	"zint/internal/alloc"
	"zint/internal/mpn"
)

// Mul sets z = x * y. Single-digit operands take a fast path; squarings
// are detected and use the dedicated primitive; aliased operands are
// copied to scratch first because the schoolbook kernel needs disjoint
// buffers.
func (z *Int) Mul(x, y *Int) error {
	if len(x.digits) < len(y.digits) {
		x, y = y, x
	}
	if len(y.digits) == 0 {
		return z.SetUint64(0)
	}
	if len(y.digits) == 1 {
		neg := x.neg != y.neg
		if err := z.MulUint64(x, y.digits[0]); err != nil {
			return err
		}
		z.neg = neg && len(z.digits) > 0
		return nil
	}
	if x == z || y == z {
		var tmp Int
		defer tmp.Clear()
		if err := tmp.Mul(x, y); err != nil {
			return err
		}
		return z.Set(&tmp)
	}

	xs, ys := len(x.digits), len(y.digits)
	if err := z.resize(xs + ys); err != nil {
		return err
	}
	z.neg = x.neg != y.neg
	if x == y {
		mpn.Sqr(z.digits, x.digits)
	} else {
		mpn.Mul(z.digits, x.digits, y.digits)
	}
	z.normalize()
	return nil
}

// MulUint64 sets z = x * y, preserving x's sign on a nonzero result.
func (z *Int) MulUint64(x *Int, y uint64) error {
	xs := len(x.digits)
	if xs == 0 || y == 0 {
		return z.SetUint64(0)
	}
	neg := x.neg
	if err := z.resize(xs + 1); err != nil {
		return err
	}
	z.digits[xs] = mpn.Mul1(z.digits[:xs], x.digits[:xs], y)
	z.neg = neg
	z.normalize()
	return nil
}

// MulInt64 sets z = x * y.
func (z *Int) MulInt64(x *Int, y int64) error {
	if y < 0 {
		if err := z.MulUint64(x, negAbs(y)); err != nil {
			return err
		}
		return z.Neg(z)
	}
	return z.MulUint64(x, uint64(y))
}

// Pow sets z = x**e. The result sign follows the base: negative base and
// odd exponent give a negative result. An exponent so large that the
// result would exceed MaxBits returns ErrBuf.
func (z *Int) Pow(x *Int, e uint64) error {
	if x == z {
		var tmp Int
		defer tmp.Clear()
		if err := tmp.Set(x); err != nil {
			return err
		}
		return z.Pow(&tmp, e)
	}
	if e == 0 {
		return z.SetUint64(1)
	}
	xs := len(x.digits)
	if xs == 0 {
		return z.SetUint64(0)
	}
	if xs == 1 && x.digits[0] == 1 {
		// |x| == 1: only the sign can vary.
		if err := z.SetUint64(1); err != nil {
			return err
		}
		z.neg = x.neg && e&1 == 1
		return nil
	}
	if e > maxDigits/uint64(xs) {
		return ErrBuf
	}
	wsize := int(e) * xs
	if err := z.resize(wsize); err != nil {
		return err
	}

	sc := alloc.NewScope()
	defer sc.Close()
	wl, err := mpn.Pow1(sc, z.digits, x.digits, e)
	if err != nil {
		z.Clear()
		return ErrMem
	}
	z.digits = z.digits[:wl]
	z.neg = x.neg && e&1 == 1
	return nil
}

// Fac sets z = n!.
func (z *Int) Fac(n uint64) error {
	if err := z.SetUint64(1); err != nil {
		return err
	}
	for i := uint64(2); i <= n; i++ {
		if err := z.MulUint64(z, i); err != nil {
			return err
		}
	}
	return nil
}

// Bin sets z to the binomial coefficient C(n, k). The running product
// stays integral because each prefix product of i consecutive integers is
// divisible by i!.
func (z *Int) Bin(n, k uint64) error {
	if k > n {
		return z.SetUint64(0)
	}
	if n-k < k {
		k = n - k
	}
	if err := z.SetUint64(1); err != nil {
		return err
	}
	for i := uint64(1); i <= k; i++ {
		if err := z.MulUint64(z, n-k+i); err != nil {
			return err
		}
		if err := z.DivInt64(z, int64(i), nil); err != nil {
			return err
		}
	}
	return nil
}
