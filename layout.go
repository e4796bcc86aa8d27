package zint

import (
	"encoding/binary"

	"fortio.org/safecast"

	"zint/internal/mpn"
)

// Layout describes the bit packing of an Import/Export byte buffer. The
// buffer is a sequence of fixed-size digits; each digit stores
// BitsPerDigit significant bits, any remaining high bits of the digit
// ("nail" bits) being ignored on import and written as zero on export.
type Layout struct {
	// BitsPerDigit is the number of significant bits per stored digit,
	// 1 <= BitsPerDigit <= 8*DigitSize.
	BitsPerDigit uint8
	// DigitSize is the width of one stored digit in bytes, 1..8.
	DigitSize uint8
	// DigitsOrder is +1 when the most significant digit comes first in
	// the buffer, -1 when the least significant does.
	DigitsOrder int8
	// DigitEndian is the byte order inside one digit: +1 big-endian,
	// -1 little-endian, 0 for the host's native order.
	DigitEndian int8
}

// NativeLayout returns the layout matching the in-memory representation:
// full 64-bit digits, least significant first, host byte order.
func NativeLayout() Layout {
	return Layout{BitsPerDigit: 64, DigitSize: 8, DigitsOrder: -1, DigitEndian: 0}
}

func (l Layout) valid() bool {
	return l.DigitSize >= 1 && l.DigitSize <= 8 &&
		l.BitsPerDigit >= 1 && uint(l.BitsPerDigit) <= 8*uint(l.DigitSize) &&
		(l.DigitsOrder == 1 || l.DigitsOrder == -1) &&
		(l.DigitEndian >= -1 && l.DigitEndian <= 1)
}

// hostBigEndian resolves DigitEndian == 0.
var hostBigEndian = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

func (l Layout) bigEndian() bool {
	if l.DigitEndian == 0 {
		return hostBigEndian
	}
	return l.DigitEndian == 1
}

// digit reads one stored digit, masked to its significant bits.
func (l Layout) digit(buf []byte) uint64 {
	var v uint64
	if l.bigEndian() {
		for _, b := range buf {
			v = v<<8 | uint64(b)
		}
	} else {
		for k := len(buf) - 1; k >= 0; k-- {
			v = v<<8 | uint64(buf[k])
		}
	}
	if l.BitsPerDigit < 64 {
		v &= 1<<l.BitsPerDigit - 1
	}
	return v
}

// putDigit writes one stored digit, nail bits zero.
func (l Layout) putDigit(buf []byte, v uint64) {
	if l.BitsPerDigit < 64 {
		v &= 1<<l.BitsPerDigit - 1
	}
	if l.bigEndian() {
		for k := len(buf) - 1; k >= 0; k-- {
			buf[k] = byte(v)
			v >>= 8
		}
	} else {
		for k := range buf {
			buf[k] = byte(v)
			v >>= 8
		}
	}
}

// Import sets z to the non-negative value packed in data according to the
// layout. The sign is not part of the encoding; callers transmit it
// separately. A data length that is not a multiple of the digit size, or
// an invalid layout, is ErrVal.
func (z *Int) Import(data []byte, layout Layout) error {
	if !layout.valid() || len(data)%int(layout.DigitSize) != 0 {
		return ErrVal
	}
	count := len(data) / int(layout.DigitSize)
	totalBits := uint64(count) * uint64(layout.BitsPerDigit)
	size, err := safecast.Conv[int]((totalBits + mpn.WordBits - 1) / mpn.WordBits)
	if err != nil {
		return ErrBuf
	}
	if err := z.resize(size); err != nil {
		return err
	}
	mpn.Zero(z.digits)
	z.neg = false

	ds := int(layout.DigitSize)
	bits := uint64(layout.BitsPerDigit)
	for i := 0; i < count; i++ {
		// i counts digits from the least significant end.
		idx := i
		if layout.DigitsOrder == 1 {
			idx = count - 1 - i
		}
		d := layout.digit(data[idx*ds : idx*ds+ds])
		pos := uint64(i) * bits
		wi := pos / mpn.WordBits
		off := pos % mpn.WordBits
		z.digits[wi] |= d << off
		if off+bits > mpn.WordBits && int(wi+1) < size {
			z.digits[wi+1] |= d >> (mpn.WordBits - off)
		}
	}
	z.normalize()
	return nil
}

// Export packs the magnitude of z into dst according to the layout,
// writing exactly as many digits as the value needs and leaving any
// remaining bytes of dst untouched. A dst too small for the value is
// ErrBuf; the sign is not encoded. A zero value needs zero digits.
func (z *Int) Export(dst []byte, layout Layout) (int, error) {
	if !layout.valid() {
		return 0, ErrVal
	}
	bits := uint64(layout.BitsPerDigit)
	needed64 := (z.BitLen() + bits - 1) / bits
	needed, err := safecast.Conv[int](needed64)
	if err != nil {
		return 0, ErrBuf
	}
	ds := int(layout.DigitSize)
	if len(dst)/ds < needed {
		return 0, ErrBuf
	}

	for i := 0; i < needed; i++ {
		pos := uint64(i) * bits
		wi := pos / mpn.WordBits
		off := pos % mpn.WordBits
		var v uint64
		if int(wi) < len(z.digits) {
			v = z.digits[wi] >> off
			if off+bits > mpn.WordBits && int(wi+1) < len(z.digits) {
				v |= z.digits[wi+1] << (mpn.WordBits - off)
			}
		}
		idx := i
		if layout.DigitsOrder == 1 {
			idx = needed - 1 - i
		}
		layout.putDigit(dst[idx*ds:idx*ds+ds], v)
	}
	return needed, nil
}
