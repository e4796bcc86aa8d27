package zint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64} {
		var z Int
		require.NoError(t, z.SetInt64(v))
		got, err := z.Int64()
		require.NoError(t, err)
		assert.Equal(t, v, got)
		checkNorm(t, &z)
	}
	for _, v := range []uint64{0, 1, math.MaxUint64} {
		var z Int
		require.NoError(t, z.SetUint64(v))
		got, err := z.Uint64()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFixedWidthRangeErrors(t *testing.T) {
	var z Int

	// One past MinInt64 no longer fits.
	require.NoError(t, z.SetInt64(math.MinInt64))
	require.NoError(t, z.SubUint64(&z, 1))
	_, err := z.Int64()
	assert.ErrorIs(t, err, ErrBuf)

	// MaxInt64+1 fits uint64 but not int64.
	require.NoError(t, z.SetUint64(1<<63))
	_, err = z.Int64()
	assert.ErrorIs(t, err, ErrBuf)

	// Negative values are invalid for unsigned getters.
	require.NoError(t, z.SetInt64(-1))
	_, err = z.Uint64()
	assert.ErrorIs(t, err, ErrVal)
	_, err = z.Uint32()
	assert.ErrorIs(t, err, ErrVal)

	// Two digits never fit.
	require.NoError(t, z.SetString("0x10000000000000000", 0))
	_, err = z.Uint64()
	assert.ErrorIs(t, err, ErrBuf)

	require.NoError(t, z.SetInt64(math.MaxInt32+1))
	_, err = z.Int32()
	assert.ErrorIs(t, err, ErrBuf)
	require.NoError(t, z.SetInt64(math.MinInt32))
	v32, err := z.Int32()
	require.NoError(t, err)
	assert.EqualValues(t, math.MinInt32, v32)

	require.NoError(t, z.SetUint64(math.MaxUint32))
	u32, err := z.Uint32()
	require.NoError(t, err)
	assert.EqualValues(t, math.MaxUint32, u32)
	require.NoError(t, z.SetUint64(math.MaxUint32+1))
	_, err = z.Uint32()
	assert.ErrorIs(t, err, ErrBuf)
}

func TestSetFloat64(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.99, "0"},
		{-0.99, "0"},
		{1, "1"},
		{-1, "-1"},
		{2.7, "2"},
		{-2.7, "-2"},
		{1 << 53, "9007199254740992"},
		{math.Ldexp(1, 200), "1606938044258990275541962092341162602522202993782792835301376"},
	}
	for _, tc := range cases {
		var z Int
		require.NoError(t, z.SetFloat64(tc.in))
		assert.Equal(t, tc.want, z.String(), "SetFloat64(%v)", tc.in)
		checkNorm(t, &z)
	}

	var z Int
	assert.ErrorIs(t, z.SetFloat64(math.NaN()), ErrVal)
	assert.ErrorIs(t, z.SetFloat64(math.Inf(1)), ErrBuf)
	assert.ErrorIs(t, z.SetFloat64(math.Inf(-1)), ErrBuf)
}

func TestFloat64Exact(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 42, math.Ldexp(1, 100), -math.Ldexp(3, 80), 1 << 53} {
		var z Int
		require.NoError(t, z.SetFloat64(v))
		got, err := z.Float64()
		require.NoError(t, err)
		assert.Equal(t, v, got, "round trip %v", v)
	}
}

func TestFloat64Rounding(t *testing.T) {
	var z Int

	// 2^53 + 1 is the first integer float64 cannot hold; the tie goes to
	// the even significand, i.e. down to 2^53.
	require.NoError(t, z.SetString("9007199254740993", 10))
	got, err := z.Float64()
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53), got)

	// 2^53 + 3 ties upward to 2^53 + 4.
	require.NoError(t, z.SetString("9007199254740995", 10))
	got, err = z.Float64()
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53+4), got)

	// 2^53 + 5 ties back down to 2^53 + 4 (even significand again).
	require.NoError(t, z.SetString("9007199254740997", 10))
	got, err = z.Float64()
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53+4), got)

	// Past the halfway point it rounds up: 2^54 + 3 is closer to 2^54 + 4.
	require.NoError(t, z.SetString("18014398509481987", 10))
	got, err = z.Float64()
	require.NoError(t, err)
	assert.Equal(t, float64(1<<54+4), got)

	// Negative values round on the magnitude.
	require.NoError(t, z.SetString("-9007199254740993", 10))
	got, err = z.Float64()
	require.NoError(t, err)
	assert.Equal(t, -float64(1<<53), got)
}

func TestFloat64Overflow(t *testing.T) {
	var z Int
	require.NoError(t, z.SetString("1", 10))
	require.NoError(t, z.Lsh(&z, 1025))
	got, err := z.Float64()
	assert.ErrorIs(t, err, ErrBuf)
	assert.True(t, math.IsInf(got, 1))

	require.NoError(t, z.Neg(&z))
	got, err = z.Float64()
	assert.ErrorIs(t, err, ErrBuf)
	assert.True(t, math.IsInf(got, -1))

	// The largest finite float64 still converts.
	require.NoError(t, z.SetFloat64(math.MaxFloat64))
	got, err = z.Float64()
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, got)
}
