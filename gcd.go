package zint

import (
	"zint/internal/alloc"
	"zint/internal/mpn"
)

// Gcd sets z = gcd(x, y) >= 0, with gcd(x, 0) = |x|. The common power of
// two is split off first so the binary kernel runs on reduced operands.
func (z *Int) Gcd(x, y *Int) error {
	u, v := x, y
	if len(u.digits) < len(v.digits) {
		u, v = v, u
	}
	if len(v.digits) == 0 {
		return z.Abs(u)
	}

	shift := min(u.TrailingZeroBits(), v.TrailingZeroBits())
	var o1, o2 Int
	defer o1.Clear()
	defer o2.Clear()
	if err := o1.Abs(u); err != nil {
		return err
	}
	if err := o2.Abs(v); err != nil {
		return err
	}
	if shift > 0 {
		if err := o1.Rsh(&o1, shift); err != nil {
			return err
		}
		if err := o2.Rsh(&o2, shift); err != nil {
			return err
		}
	}

	if err := z.resize(min(len(o1.digits), len(o2.digits))); err != nil {
		return err
	}
	sc := alloc.NewScope()
	defer sc.Close()
	gl, err := mpn.Gcd(sc, z.digits, o1.digits, o2.digits)
	if err != nil {
		z.Clear()
		return ErrMem
	}
	z.digits = z.digits[:gl]
	z.neg = false
	if shift > 0 {
		return z.Lsh(z, shift)
	}
	return nil
}

// GcdExt computes g = gcd(u, v) together with Bezout coefficients
// satisfying u*s + v*t = g. Any of g, s, t may be nil when not needed;
// non-nil outputs must be distinct values. Inputs may alias outputs.
// On allocation failure all outputs are cleared.
func GcdExt(u, v, g, s, t *Int) error {
	if s == nil && t == nil {
		if g == nil {
			return nil
		}
		return g.Gcd(u, v)
	}
	if len(u.digits) < len(v.digits) {
		u, v = v, u
		s, t = t, s
	}
	fail := func(err error) error {
		for _, o := range []*Int{g, s, t} {
			if o != nil {
				o.Clear()
			}
		}
		return err
	}

	if len(v.digits) == 0 {
		// gcd(u, 0) = |u| with s = sign(u), t = 0.
		sgn := int64(u.Sign())
		if g != nil {
			if err := g.Abs(u); err != nil {
				return fail(err)
			}
		}
		if s != nil {
			if err := s.SetInt64(sgn); err != nil {
				return fail(err)
			}
		}
		if t != nil {
			if err := t.resize(0); err != nil {
				return fail(err)
			}
		}
		return nil
	}

	// Extended Euclid on the magnitudes; the g coefficient for |u| is
	// tracked, the one for |v| is recovered afterwards.
	var r0, r1, s0, s1, qq, tmp Int
	for _, o := range []*Int{&r0, &r1, &s0, &s1, &qq, &tmp} {
		defer o.Clear()
	}
	if err := r0.Abs(u); err != nil {
		return fail(err)
	}
	if err := r1.Abs(v); err != nil {
		return fail(err)
	}
	if err := s0.SetUint64(1); err != nil {
		return fail(err)
	}
	R0, R1 := &r0, &r1
	S0, S1 := &s0, &s1
	for !R1.IsZero() {
		if err := DivMod(R0, R1, &qq, R0); err != nil {
			return fail(err)
		}
		R0, R1 = R1, R0
		if err := tmp.Mul(&qq, S1); err != nil {
			return fail(err)
		}
		if err := S0.Sub(S0, &tmp); err != nil {
			return fail(err)
		}
		S0, S1 = S1, S0
	}
	// Coefficient for the signed u.
	if !S0.IsZero() && u.neg {
		S0.neg = !S0.neg
	}

	if t != nil {
		if len(u.digits)+len(S0.digits) < maxDigits && len(R0.digits) < maxDigits {
			// t = (g - u*s) / v, an exact division.
			if err := qq.Mul(u, S0); err != nil {
				return fail(err)
			}
			if err := tmp.Sub(R0, &qq); err != nil {
				return fail(err)
			}
			if err := DivMod(&tmp, v, t, nil); err != nil {
				return fail(err)
			}
		} else {
			// Identity would overflow the size cap: recover t as the
			// inverse of v/g modulo u/g.
			var ug, vg Int
			defer ug.Clear()
			defer vg.Clear()
			if err := DivMod(u, R0, &ug, nil); err != nil {
				return fail(err)
			}
			if err := DivMod(v, R0, &vg, nil); err != nil {
				return fail(err)
			}
			if err := inverseEuclidext(&vg, &ug, t); err != nil {
				return fail(err)
			}
		}
	}
	if s != nil {
		if err := s.Set(S0); err != nil {
			return fail(err)
		}
	}
	if g != nil {
		if err := g.Set(R0); err != nil {
			return fail(err)
		}
	}
	return nil
}

// inverseEuclidext computes t with u*t congruent to gcd(u, v) modulo v,
// failing with ErrVal unless that gcd is 1. Plain iterative extended
// Euclid over floor division, so negative operands are handled.
func inverseEuclidext(u, v, t *Int) error {
	uneg := u.neg
	var r0, r1, t0, t1, q, prod Int
	for _, o := range []*Int{&r0, &r1, &t0, &t1, &q, &prod} {
		defer o.Clear()
	}
	if err := r0.Set(v); err != nil {
		return err
	}
	if err := r1.Set(u); err != nil {
		return err
	}
	if err := t1.SetUint64(1); err != nil {
		return err
	}
	R0, R1 := &r0, &r1
	T0, T1 := &t0, &t1
	for !R1.IsZero() {
		if err := DivMod(R0, R1, &q, R0); err != nil {
			return err
		}
		R0, R1 = R1, R0
		if err := prod.Mul(&q, T1); err != nil {
			return err
		}
		if err := T0.Sub(T0, &prod); err != nil {
			return err
		}
		T0, T1 = T1, T0
	}
	if !T0.IsZero() && uneg {
		T0.neg = !T0.neg
	}
	R0.neg = false
	if R0.CmpInt64(1) != 0 {
		return ErrVal
	}
	return t.Set(T0)
}

// inverse sets z to the inverse of x modulo m, or ErrVal when gcd(x, m)
// is not 1.
func inverse(z, x, m *Int) error {
	var g Int
	defer g.Clear()
	if err := GcdExt(x, m, &g, z, nil); err != nil {
		return err
	}
	if g.CmpInt64(1) != 0 {
		z.Clear()
		return ErrVal
	}
	return nil
}

// Lcm sets z = |x*y| / gcd(x, y), with Lcm(x, 0) = 0.
func (z *Int) Lcm(x, y *Int) error {
	var g Int
	defer g.Clear()
	if err := g.Gcd(x, y); err != nil {
		return err
	}
	if g.IsZero() {
		return z.resize(0)
	}
	if err := DivMod(x, &g, &g, nil); err != nil {
		return err
	}
	if err := z.Mul(&g, y); err != nil {
		return err
	}
	return z.Abs(z)
}

// ExpMod sets z = x**y mod m. A negative exponent inverts x modulo m
// first (ErrVal when no inverse exists); a zero modulus is ErrVal. The
// result has the same sign convention as Mod: for a positive modulus it
// lies in [0, m), for a negative one in (m, 0].
func (z *Int) ExpMod(x, y, m *Int) error {
	if len(m.digits) == 0 {
		return ErrVal
	}
	var xcp, ycp, mcp Int
	defer xcp.Clear()
	defer ycp.Clear()
	defer mcp.Clear()
	if x == z {
		if err := xcp.Set(x); err != nil {
			return err
		}
		x = &xcp
	}
	if y == z {
		if err := ycp.Set(y); err != nil {
			return err
		}
		y = &ycp
	}
	if m == z {
		if err := mcp.Set(m); err != nil {
			return err
		}
		m = &mcp
	}

	var o1, o2 Int
	defer o1.Clear()
	defer o2.Clear()
	if y.neg {
		if err := inverse(&o2, x, m); err != nil {
			return err
		}
		if err := o1.Abs(y); err != nil {
			return err
		}
		x, y = &o2, &o1
	}

	var mAbs, acc, res Int
	defer mAbs.Clear()
	defer acc.Clear()
	defer res.Clear()
	if err := mAbs.Abs(m); err != nil {
		return err
	}
	if err := DivMod(x, &mAbs, nil, &acc); err != nil {
		return err
	}
	if err := res.SetUint64(1); err != nil {
		return err
	}

	last := len(y.digits) - 1
	for i, w := range y.digits {
		for j := 0; j < mpn.WordBits; j++ {
			if w&1 == 1 {
				if err := res.Mul(&res, &acc); err != nil {
					return err
				}
				if err := DivMod(&res, &mAbs, nil, &res); err != nil {
					return err
				}
			}
			w >>= 1
			if i == last && w == 0 {
				break
			}
			if err := acc.Mul(&acc, &acc); err != nil {
				return err
			}
			if err := DivMod(&acc, &mAbs, nil, &acc); err != nil {
				return err
			}
		}
	}

	// Covers both the empty exponent and a modulus of 1.
	if err := DivMod(&res, &mAbs, nil, &res); err != nil {
		return err
	}
	if m.neg && !res.IsZero() {
		if err := res.Add(&res, m); err != nil {
			return err
		}
	}
	return z.Set(&res)
}

// SqrtRem sets z = floor(sqrt(x)) and, when rem is non-nil,
// rem = x - z*z. Negative x is ErrVal. z and rem must be distinct.
func (z *Int) SqrtRem(x *Int, rem *Int) error {
	if x.neg {
		return ErrVal
	}
	if rem == z && rem != nil {
		return ErrVal
	}
	if len(x.digits) == 0 {
		if rem != nil {
			if err := rem.resize(0); err != nil {
				return err
			}
		}
		return z.resize(0)
	}
	if x == z || x == rem {
		var t Int
		defer t.Clear()
		if err := t.Set(x); err != nil {
			return err
		}
		return z.SqrtRem(&t, rem)
	}

	xs := len(x.digits)
	if err := z.resize((xs + 1) / 2); err != nil {
		return err
	}
	var rdig []Word
	if rem != nil {
		if err := rem.resize(xs); err != nil {
			z.Clear()
			return err
		}
		rdig = rem.digits
	}

	sc := alloc.NewScope()
	defer sc.Close()
	rl, reml, err := mpn.SqrtRem(sc, z.digits, rdig, x.digits)
	if err != nil {
		z.Clear()
		if rem != nil {
			rem.Clear()
		}
		return ErrMem
	}
	z.digits = z.digits[:rl]
	z.neg = false
	if rem != nil {
		rem.digits = rem.digits[:reml]
		rem.neg = false
	}
	return nil
}
