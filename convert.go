package zint

import "math"

// SetUint64 sets z = v.
func (z *Int) SetUint64(v uint64) error {
	if v == 0 {
		return z.resize(0)
	}
	if err := z.resize(1); err != nil {
		return err
	}
	z.digits[0] = v
	z.neg = false
	return nil
}

// SetInt64 sets z = v.
func (z *Int) SetInt64(v int64) error {
	neg := v < 0
	m := uint64(v)
	if neg {
		m = -m
	}
	if err := z.SetUint64(m); err != nil {
		return err
	}
	z.neg = neg && m != 0
	return nil
}

// setInt64NoAlloc fills z from v using z's existing buffer, which must
// have capacity for one digit. Used for stack-allocated comparisons.
func (z *Int) setInt64NoAlloc(v int64) {
	if v == 0 {
		z.digits = z.digits[:0]
		z.neg = false
		return
	}
	m := uint64(v)
	z.neg = v < 0
	if z.neg {
		m = -m
	}
	z.digits = z.digits[:1]
	z.digits[0] = m
}

// Uint64 returns the value as a uint64. Negative values are ErrVal,
// values over 64 bits ErrBuf.
func (z *Int) Uint64() (uint64, error) {
	switch {
	case len(z.digits) == 0:
		return 0, nil
	case z.neg:
		return 0, ErrVal
	case len(z.digits) > 1:
		return 0, ErrBuf
	}
	return z.digits[0], nil
}

// Int64 returns the value as an int64, or ErrBuf when out of range.
// math.MinInt64 is in range.
func (z *Int) Int64() (int64, error) {
	switch {
	case len(z.digits) == 0:
		return 0, nil
	case len(z.digits) > 1:
		return 0, ErrBuf
	}
	d := z.digits[0]
	if z.neg {
		if d <= 1<<63 {
			return -1 - int64((d-1)&math.MaxInt64), nil
		}
	} else if d <= math.MaxInt64 {
		return int64(d), nil
	}
	return 0, ErrBuf
}

// Uint32 returns the value as a uint32. Negative values are ErrVal,
// values over 32 bits ErrBuf.
func (z *Int) Uint32() (uint32, error) {
	v, err := z.Uint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrBuf
	}
	return uint32(v), nil
}

// Int32 returns the value as an int32, or ErrBuf when out of range.
func (z *Int) Int32() (int32, error) {
	v, err := z.Int64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, ErrBuf
	}
	return int32(v), nil
}
