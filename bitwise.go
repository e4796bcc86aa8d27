package zint

import "zint/internal/mpn"

// The bitwise operations treat values as infinite two's-complement bit
// strings. A negative value -m has the bits ^(m-1), so each operation
// reduces to magnitude arithmetic on m-1 for its negative operands, with
// one final increment when the result is negative.

// magMinusOne sets o = |x| - 1 for a negative x.
func magMinusOne(o, x *Int) error {
	n := len(x.digits)
	if err := o.resize(n); err != nil {
		return err
	}
	mpn.SubW(o.digits, x.digits[:n], 1)
	o.neg = false
	o.normalize()
	return nil
}

// Not sets z = ^x = -x - 1.
func (z *Int) Not(x *Int) error {
	xs := len(x.digits)
	if xs == 0 {
		return z.SetInt64(-1)
	}
	if x.neg {
		if err := z.resize(xs); err != nil {
			return err
		}
		mpn.SubW(z.digits, x.digits[:xs], 1)
		z.neg = false
		z.normalize()
		return nil
	}
	if err := z.resize(xs + 1); err != nil {
		return err
	}
	z.digits[xs] = mpn.AddW(z.digits[:xs], x.digits[:xs], 1)
	z.neg = true
	z.normalize()
	return nil
}

// And sets z = x & y.
func (z *Int) And(x, y *Int) error {
	if !x.neg && !y.neg {
		if len(x.digits) < len(y.digits) {
			x, y = y, x
		}
		n := len(y.digits)
		if err := z.resize(n); err != nil {
			return err
		}
		mpn.AndN(z.digits, x.digits[:n], y.digits[:n])
		z.neg = false
		z.normalize()
		return nil
	}

	var o1, o2 Int
	defer o1.Clear()
	defer o2.Clear()
	if x.neg && !y.neg {
		x, y = y, x
	}
	if !x.neg {
		// x & -m = x &^ (m-1): non-negative, at most x's width.
		if err := magMinusOne(&o2, y); err != nil {
			return err
		}
		xs := len(x.digits)
		if err := z.resize(xs); err != nil {
			return err
		}
		n := min(xs, len(o2.digits))
		mpn.AndnN(z.digits[:n], x.digits[:n], o2.digits[:n])
		copy(z.digits[n:], x.digits[n:xs])
		z.neg = false
		z.normalize()
		return nil
	}
	// -m & -k = -(((m-1) | (k-1)) + 1).
	if err := magMinusOne(&o1, x); err != nil {
		return err
	}
	if err := magMinusOne(&o2, y); err != nil {
		return err
	}
	a, b := o1.digits, o2.digits
	if len(a) < len(b) {
		a, b = b, a
	}
	n := len(a)
	if err := z.resize(n + 1); err != nil {
		return err
	}
	mpn.IorN(z.digits[:len(b)], a[:len(b)], b)
	copy(z.digits[len(b):n], a[len(b):])
	z.digits[n] = mpn.AddW(z.digits[:n], z.digits[:n], 1)
	z.neg = true
	z.normalize()
	return nil
}

// Or sets z = x | y.
func (z *Int) Or(x, y *Int) error {
	if !x.neg && !y.neg {
		if len(x.digits) < len(y.digits) {
			x, y = y, x
		}
		xs, ys := len(x.digits), len(y.digits)
		if err := z.resize(xs); err != nil {
			return err
		}
		mpn.IorN(z.digits[:ys], x.digits[:ys], y.digits[:ys])
		copy(z.digits[ys:], x.digits[ys:xs])
		z.neg = false
		z.normalize()
		return nil
	}

	var o1, o2 Int
	defer o1.Clear()
	defer o2.Clear()
	if x.neg && !y.neg {
		x, y = y, x
	}
	if !x.neg {
		// x | -m = -(((m-1) &^ x) + 1): negative, at most m's width.
		if err := magMinusOne(&o2, y); err != nil {
			return err
		}
		bs := len(o2.digits)
		xd := x.digits
		if err := z.resize(bs + 1); err != nil {
			return err
		}
		n := min(bs, len(xd))
		mpn.AndnN(z.digits[:n], o2.digits[:n], xd[:n])
		copy(z.digits[n:bs], o2.digits[n:])
		z.digits[bs] = mpn.AddW(z.digits[:bs], z.digits[:bs], 1)
		z.neg = true
		z.normalize()
		return nil
	}
	// -m | -k = -(((m-1) & (k-1)) + 1).
	if err := magMinusOne(&o1, x); err != nil {
		return err
	}
	if err := magMinusOne(&o2, y); err != nil {
		return err
	}
	a, b := o1.digits, o2.digits
	if len(a) > len(b) {
		a, b = b, a
	}
	n := len(a)
	if err := z.resize(n + 1); err != nil {
		return err
	}
	mpn.AndN(z.digits[:n], a, b[:n])
	z.digits[n] = mpn.AddW(z.digits[:n], z.digits[:n], 1)
	z.neg = true
	z.normalize()
	return nil
}

// Xor sets z = x ^ y.
func (z *Int) Xor(x, y *Int) error {
	var o1, o2 Int
	defer o1.Clear()
	defer o2.Clear()

	if x.neg == y.neg {
		// Same sign: the complements cancel, the result is plain
		// a ^ b of the (adjusted) magnitudes, non-negative.
		ax, ay := x.digits, y.digits
		if x.neg {
			if err := magMinusOne(&o1, x); err != nil {
				return err
			}
			if err := magMinusOne(&o2, y); err != nil {
				return err
			}
			ax, ay = o1.digits, o2.digits
		}
		if len(ax) < len(ay) {
			ax, ay = ay, ax
		}
		n := len(ax)
		if err := z.resize(n); err != nil {
			return err
		}
		mpn.XorN(z.digits[:len(ay)], ax[:len(ay)], ay)
		copy(z.digits[len(ay):], ax[len(ay):])
		z.neg = false
		z.normalize()
		return nil
	}

	// Mixed signs: x ^ -m = -((x ^ (m-1)) + 1).
	if x.neg {
		x, y = y, x
	}
	if err := magMinusOne(&o2, y); err != nil {
		return err
	}
	a, b := x.digits, o2.digits
	if len(a) < len(b) {
		a, b = b, a
	}
	n := len(a)
	if err := z.resize(n + 1); err != nil {
		return err
	}
	mpn.XorN(z.digits[:len(b)], a[:len(b)], b)
	copy(z.digits[len(b):n], a[len(b):])
	z.digits[n] = mpn.AddW(z.digits[:n], z.digits[:n], 1)
	z.neg = true
	z.normalize()
	return nil
}
