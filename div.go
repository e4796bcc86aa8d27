package zint

import (
	"zint/internal/alloc"
	"zint/internal/mpn"
)

// DivMod computes the floor division of u by v: q = floor(u/v) and
// r = u - q*v, so the remainder is zero or takes the divisor's sign.
// Either output may be nil when not needed; when both are given they must
// be distinct values. Inputs may alias outputs freely. Division by zero
// returns ErrVal; on an allocation failure both outputs are cleared to
// zero.
func DivMod(u, v, q, r *Int) error {
	if len(v.digits) == 0 {
		return ErrVal
	}
	var tq, tr Int
	defer tq.Clear()
	defer tr.Clear()
	if q == nil {
		q = &tq
	}
	if r == nil {
		r = &tr
	}
	if q == r {
		return ErrVal
	}
	fail := func(err error) error {
		q.Clear()
		r.Clear()
		return err
	}

	// The kernel needs disjoint buffers; inputs aliasing outputs are
	// copied once.
	if u == q || u == r {
		var tu Int
		defer tu.Clear()
		if err := tu.Set(u); err != nil {
			return fail(err)
		}
		return DivMod(&tu, v, q, r)
	}
	if v == q || v == r {
		var tv Int
		defer tv.Clear()
		if err := tv.Set(v); err != nil {
			return fail(err)
		}
		return DivMod(u, &tv, q, r)
	}

	if cmpMag(u.digits, v.digits) < 0 {
		// |u| < |v|: the quotient is 0 or -1 outright.
		if u.neg != v.neg && len(u.digits) > 0 {
			if err := r.Add(u, v); err != nil {
				return fail(err)
			}
			if err := q.SetInt64(-1); err != nil {
				return fail(err)
			}
		} else {
			if err := r.Set(u); err != nil {
				return fail(err)
			}
			if err := q.resize(0); err != nil {
				return fail(err)
			}
		}
		return nil
	}

	usize, vsize := len(u.digits), len(v.digits)
	qneg := u.neg != v.neg
	rneg := v.neg
	if err := q.resize(usize - vsize + 1); err != nil {
		return fail(err)
	}
	if err := r.resize(vsize); err != nil {
		return fail(err)
	}

	sc := alloc.NewScope()
	defer sc.Close()
	if err := mpn.DivRem(sc, q.digits, r.digits, u.digits, v.digits); err != nil {
		return fail(ErrMem)
	}
	q.neg = qneg
	r.neg = rneg
	q.normalize()
	r.normalize()

	// Truncating to floor: a negative quotient with a nonzero remainder
	// rounds one further down, and the remainder flips to |v| - |r|.
	if qneg && len(r.digits) > 0 {
		if err := q.SubInt64(q, 1); err != nil {
			return fail(err)
		}
		r.digits = r.digits[:vsize]
		mpn.SubN(r.digits, v.digits, r.digits)
		r.neg = rneg
		r.normalize()
	}
	return nil
}

// Div sets z = floor(x / y).
func (z *Int) Div(x, y *Int) error {
	return DivMod(x, y, z, nil)
}

// Mod sets z = x - floor(x/y)*y; the result is zero or has y's sign.
func (z *Int) Mod(x, y *Int) error {
	return DivMod(x, y, nil, z)
}

// DivInt64 sets z = floor(x / y) for a fixed-width divisor and, when rem
// is non-nil, stores the floor remainder (zero or y's sign) in *rem.
func (z *Int) DivInt64(x *Int, y int64, rem *int64) error {
	if y == 0 {
		return ErrVal
	}
	xs := len(x.digits)
	if xs == 0 {
		if rem != nil {
			*rem = 0
		}
		return z.SetUint64(0)
	}
	vneg := y < 0
	vv := uint64(y)
	if vneg {
		vv = -vv
	}
	xneg := x.neg
	sameSigns := xneg == vneg
	rl := mpn.Mod1(x.digits, vv)

	if err := z.resize(xs); err != nil {
		return err
	}
	mpn.DivRem1(z.digits, x.digits[:xs], vv)
	z.neg = xneg != vneg
	if rl != 0 && !sameSigns {
		// Floor adjustment; the increment cannot carry out because the
		// quotient magnitude shrank by at least one bit (vv >= 2 when
		// rl != 0).
		mpn.AddW(z.digits, z.digits, 1)
	}
	z.normalize()

	if rem != nil {
		rr := rl
		if rl != 0 && !sameSigns {
			rr = vv - rl
		}
		out := int64(rr)
		if vneg && out != 0 {
			out = -out
		}
		*rem = out
	}
	return nil
}

// Int64Div sets z = floor(x / y) for a fixed-width dividend.
func (z *Int) Int64Div(x int64, y *Int) error {
	if len(y.digits) == 0 {
		return ErrVal
	}
	var t Int
	defer t.Clear()
	if err := t.SetInt64(x); err != nil {
		return err
	}
	return DivMod(&t, y, z, nil)
}

// Lsh sets z = x * 2**s.
func (z *Int) Lsh(x *Int, s uint64) error {
	xs := len(x.digits)
	if xs == 0 {
		return z.resize(0)
	}
	if s/mpn.WordBits > uint64(maxDigits) {
		return ErrBuf
	}
	whole := int(s / mpn.WordBits)
	sb := uint(s % mpn.WordBits)
	size := xs + whole
	extra := 0
	if sb > 0 {
		extra = 1
	}
	zneg := x.neg
	if err := z.resize(size + extra); err != nil {
		return err
	}
	if sb > 0 {
		z.digits[size] = mpn.Lshift(z.digits[whole:size], x.digits[:xs], sb)
	} else {
		copy(z.digits[whole:size], x.digits[:xs])
	}
	mpn.Zero(z.digits[:whole])
	z.neg = zneg
	z.normalize()
	return nil
}

// Rsh sets z = floor(x / 2**s). For negative values any discarded bit
// rounds the result one further down.
func (z *Int) Rsh(x *Int, s uint64) error {
	xs := len(x.digits)
	if xs == 0 {
		return z.resize(0)
	}
	if s >= x.BitLen() {
		// Everything is shifted out: 0, or -1 for negative values.
		if x.neg {
			return z.SetInt64(-1)
		}
		return z.resize(0)
	}
	whole := int(s / mpn.WordBits)
	sb := uint(s % mpn.WordBits)
	size := xs - whole

	carry := false
	if x.neg {
		for i := 0; i < whole; i++ {
			if x.digits[i] != 0 {
				carry = true
				break
			}
		}
		if !carry && sb > 0 && x.digits[whole]&(1<<sb-1) != 0 {
			carry = true
		}
	}

	zneg := x.neg
	if err := z.resize(size); err != nil {
		return err
	}
	if sb > 0 {
		mpn.Rshift(z.digits[:size], x.digits[whole:whole+size], sb)
	} else {
		copy(z.digits[:size], x.digits[whole:whole+size])
	}
	z.neg = zneg
	z.normalize()

	if carry {
		if c := mpn.AddW(z.digits, z.digits, 1); c != 0 {
			n := len(z.digits)
			if err := z.resize(n + 1); err != nil {
				z.Clear()
				return err
			}
			z.digits[n] = 1
			z.neg = true
		}
	}
	return nil
}
