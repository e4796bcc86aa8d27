package zint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportExportBytes(t *testing.T) {
	// Plain big-endian bytes, the most common interchange form.
	be := Layout{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 1, DigitEndian: 0}

	var z Int
	require.NoError(t, z.Import([]byte{0x01, 0x02, 0x03}, be))
	assert.Equal(t, "66051", z.String()) // 0x010203
	checkNorm(t, &z)

	buf := make([]byte, 8)
	n, err := z.Export(buf, be)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, buf[:3])
	// Bytes past the value stay untouched.
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf[3:])

	// Little-endian digit order reverses the buffer.
	le := Layout{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: -1, DigitEndian: 0}
	require.NoError(t, z.Import([]byte{0x03, 0x02, 0x01}, le))
	assert.Equal(t, "66051", z.String())
}

func TestImportIgnoresSign(t *testing.T) {
	// The encoding carries the magnitude only.
	z := mustInt(t, "-5")
	require.NoError(t, z.Import([]byte{0x05}, Layout{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 1}))
	assert.Equal(t, "5", z.String())
	assert.Equal(t, 1, z.Sign())
}

func TestImportExportNails(t *testing.T) {
	// 7 significant bits per byte: the top bit is a nail, dropped on
	// import and written as zero on export.
	l := Layout{BitsPerDigit: 7, DigitSize: 1, DigitsOrder: -1, DigitEndian: 0}

	var z Int
	require.NoError(t, z.Import([]byte{0xFF, 0xFF}, l))
	// Two 7-bit digits of 0x7F each: 0x7F + 0x7F<<7 = 16383.
	assert.Equal(t, "16383", z.String())

	buf := make([]byte, 4)
	n, err := z.Export(buf, l)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x7F, 0x7F}, buf[:2])

	// 15 bits in 2-byte big-endian digits, most significant digit first.
	l = Layout{BitsPerDigit: 15, DigitSize: 2, DigitsOrder: 1, DigitEndian: 1}
	require.NoError(t, z.SetString("0x12345", 0)) // 74565 = 2*2^15 + 9029
	buf = make([]byte, 4)
	n, err = z.Export(buf, l)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x00, 0x02, 0x23, 0x45}, buf)

	var back Int
	require.NoError(t, back.Import(buf, l))
	assert.Equal(t, 0, z.Cmp(&back))
}

func TestExportZeroAndShortBuffer(t *testing.T) {
	l := Layout{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 1, DigitEndian: 0}

	// Zero needs zero digits.
	var zero Int
	n, err := zero.Export(nil, l)
	require.NoError(t, err)
	assert.Zero(t, n)

	z := mustInt(t, "0x10000")
	_, err = z.Export(make([]byte, 2), l)
	assert.ErrorIs(t, err, ErrBuf)

	// An empty import is zero.
	require.NoError(t, z.Import(nil, l))
	assert.True(t, z.IsZero())
	checkNorm(t, z)
}

func TestLayoutValidation(t *testing.T) {
	var z Int
	bad := []Layout{
		{BitsPerDigit: 0, DigitSize: 1, DigitsOrder: 1},
		{BitsPerDigit: 9, DigitSize: 1, DigitsOrder: 1},
		{BitsPerDigit: 8, DigitSize: 0, DigitsOrder: 1},
		{BitsPerDigit: 8, DigitSize: 9, DigitsOrder: 1},
		{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 0},
		{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 2},
		{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 1, DigitEndian: 2},
	}
	for _, l := range bad {
		assert.ErrorIs(t, z.Import([]byte{1}, l), ErrVal, "%+v", l)
		_, err := z.Export(make([]byte, 8), l)
		assert.ErrorIs(t, err, ErrVal, "%+v", l)
	}

	// Data length must be a multiple of the digit size.
	l := Layout{BitsPerDigit: 16, DigitSize: 2, DigitsOrder: 1}
	assert.ErrorIs(t, z.Import([]byte{1, 2, 3}, l), ErrVal)
}

func TestImportExportRoundTrips(t *testing.T) {
	layouts := []Layout{
		NativeLayout(),
		{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: 1, DigitEndian: 0},
		{BitsPerDigit: 8, DigitSize: 1, DigitsOrder: -1, DigitEndian: 0},
		{BitsPerDigit: 16, DigitSize: 2, DigitsOrder: -1, DigitEndian: 1},
		{BitsPerDigit: 16, DigitSize: 2, DigitsOrder: 1, DigitEndian: -1},
		{BitsPerDigit: 15, DigitSize: 2, DigitsOrder: 1, DigitEndian: -1},
		{BitsPerDigit: 7, DigitSize: 1, DigitsOrder: -1, DigitEndian: 0},
		{BitsPerDigit: 3, DigitSize: 1, DigitsOrder: 1, DigitEndian: 0},
		{BitsPerDigit: 33, DigitSize: 5, DigitsOrder: -1, DigitEndian: 1},
		{BitsPerDigit: 64, DigitSize: 8, DigitsOrder: 1, DigitEndian: 1},
	}
	rng := rand.New(rand.NewSource(61))
	for _, l := range layouts {
		for i := 0; i < 20; i++ {
			x := randInt(t, rng, 4)
			x.neg = false

			digits := (x.BitLen() + uint64(l.BitsPerDigit) - 1) / uint64(l.BitsPerDigit)
			buf := make([]byte, int(digits)*int(l.DigitSize))
			n, err := x.Export(buf, l)
			require.NoError(t, err, "%+v", l)

			var back Int
			require.NoError(t, back.Import(buf[:n*int(l.DigitSize)], l))
			assert.Equal(t, 0, x.Cmp(&back), "layout %+v value %s", l, x)
			checkNorm(t, &back)
		}
	}
}
