package zint

import "zint/internal/mpn"

// addsub sets w to u+v or u-v. All three may alias. The sign-magnitude
// cases reduce to one magnitude addition or subtraction after ordering
// the operands by length.
func addsub(u, v *Int, subtract bool, w *Int) error {
	negu, negv := u.neg, v.neg
	if subtract {
		negv = !negv
	}
	usize, vsize := len(u.digits), len(v.digits)
	if usize < vsize {
		u, v = v, u
		negu, negv = negv, negu
		usize, vsize = vsize, usize
	}

	if negu == negv {
		// Same sign: add magnitudes, keep the sign.
		if err := w.resize(usize + 1); err != nil {
			return err
		}
		w.neg = negu
		w.digits[usize] = mpn.Add(w.digits[:usize], u.digits[:usize], v.digits[:vsize])
	} else if usize != vsize {
		// Opposite signs, u strictly longer: |u| wins.
		if err := w.resize(usize); err != nil {
			return err
		}
		w.neg = negu
		mpn.Sub(w.digits, u.digits[:usize], v.digits[:vsize])
	} else {
		// Opposite signs, equal lengths: compare magnitudes to find
		// the direction and the resulting sign.
		switch mpn.Cmp(u.digits[:usize], v.digits[:vsize]) {
		case -1:
			if err := w.resize(usize); err != nil {
				return err
			}
			w.neg = negv
			mpn.SubN(w.digits, v.digits[:vsize], u.digits[:usize])
		case 1:
			if err := w.resize(usize); err != nil {
				return err
			}
			w.neg = negu
			mpn.SubN(w.digits, u.digits[:usize], v.digits[:vsize])
		default:
			if err := w.resize(0); err != nil {
				return err
			}
		}
	}
	w.normalize()
	return nil
}

// Add sets z = x + y.
func (z *Int) Add(x, y *Int) error {
	return addsub(x, y, false, z)
}

// Sub sets z = x - y.
func (z *Int) Sub(x, y *Int) error {
	return addsub(x, y, true, z)
}

// addsubUint64 sets w to u+v or u-v for an unsigned fixed-width v.
func addsubUint64(u *Int, v uint64, subtract bool, w *Int) error {
	usize := len(u.digits)
	if usize == 0 {
		// 0 ± v
		if v == 0 {
			return w.SetUint64(0)
		}
		if err := w.SetUint64(v); err != nil {
			return err
		}
		w.neg = subtract
		return nil
	}

	if u.neg == subtract {
		// Magnitudes add: (-a) - v or a + v.
		if err := w.resize(usize + 1); err != nil {
			return err
		}
		w.neg = u.neg
		w.digits[usize] = mpn.AddW(w.digits[:usize], u.digits[:usize], v)
	} else if usize == 1 && u.digits[0] < v {
		// Single digit with a flipped outcome: v wins.
		if err := w.resize(1); err != nil {
			return err
		}
		w.digits[0] = v - u.digits[0]
		w.neg = !u.neg
	} else {
		if err := w.resize(usize); err != nil {
			return err
		}
		w.neg = u.neg
		mpn.SubW(w.digits, u.digits[:usize], v)
	}
	w.normalize()
	return nil
}

// AddUint64 sets z = x + y.
func (z *Int) AddUint64(x *Int, y uint64) error {
	return addsubUint64(x, y, false, z)
}

// SubUint64 sets z = x - y.
func (z *Int) SubUint64(x *Int, y uint64) error {
	return addsubUint64(x, y, true, z)
}

// Uint64Sub sets z = x - y for a fixed-width x.
func (z *Int) Uint64Sub(x uint64, y *Int) error {
	if err := addsubUint64(y, x, true, z); err != nil {
		return err
	}
	return z.Neg(z)
}

// AddInt64 sets z = x + y.
func (z *Int) AddInt64(x *Int, y int64) error {
	if y < 0 {
		return addsubUint64(x, negAbs(y), true, z)
	}
	return addsubUint64(x, uint64(y), false, z)
}

// SubInt64 sets z = x - y.
func (z *Int) SubInt64(x *Int, y int64) error {
	if y < 0 {
		return addsubUint64(x, negAbs(y), false, z)
	}
	return addsubUint64(x, uint64(y), true, z)
}

// Int64Sub sets z = x - y for a fixed-width x.
func (z *Int) Int64Sub(x int64, y *Int) error {
	if err := z.SubInt64(y, x); err != nil {
		return err
	}
	return z.Neg(z)
}

// negAbs returns the magnitude of a negative int64, including MinInt64.
func negAbs(v int64) uint64 {
	return -uint64(v)
}
