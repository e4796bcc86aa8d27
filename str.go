package zint

import (
	"zint/internal/alloc"
	"zint/internal/mpn"
)

const (
	lowerDigits = "0123456789abcdefghijklmnopqrstuvwxyz"
	upperDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

// digitVal maps an ASCII digit or letter to its value, or -1.
func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// SetString parses s in the given base (2..36, or 0 to autodetect from a
// 0b/0o/0x prefix, defaulting to 10). The grammar allows surrounding
// whitespace, one leading sign, an optional radix prefix, and single
// underscores between digits. Anything else, including doubled or
// trailing underscores and an empty digit string, is ErrVal, and z is
// left unchanged.
func (z *Int) SetString(s string, base int) error {
	if base != 0 && (base < 2 || base > 36) {
		return ErrVal
	}
	p, n := 0, len(s)
	for p < n && isSpace(s[p]) {
		p++
	}
	neg := false
	if p < n && s[p] == '-' {
		neg = true
		p++
	} else if p < n && s[p] == '+' {
		p++
	}
	if p < n && s[p] == '_' {
		return ErrVal
	}

	prefixed := false
	if base == 0 {
		base = 10
		if p < n && s[p] == '0' {
			if p+1 == n {
				return z.resize(0)
			}
			switch s[p+1] {
			case 'b', 'B':
				base, p, prefixed = 2, p+2, true
			case 'o', 'O':
				base, p, prefixed = 8, p+2, true
			case 'x', 'X':
				base, p, prefixed = 16, p+2, true
			default:
				if !isSpace(s[p+1]) {
					return ErrVal
				}
				for q := p + 1; q < n; q++ {
					if !isSpace(s[q]) {
						return ErrVal
					}
				}
				return z.resize(0)
			}
		}
	} else if p+1 < n && s[p] == '0' {
		// An explicit base skips its own prefix.
		c := s[p+1]
		switch {
		case base == 2 && (c == 'b' || c == 'B'),
			base == 8 && (c == 'o' || c == 'O'),
			base == 16 && (c == 'x' || c == 'X'):
			p, prefixed = p+2, true
		}
	}
	if prefixed && p < n && s[p] == '_' {
		// One underscore may separate the prefix from the digits.
		p++
	}
	if p >= n || s[p] == '_' {
		return ErrVal
	}

	digits := make([]byte, 0, n-p)
	underscore := false
	i := p
	for ; i < n; i++ {
		c := s[i]
		if c == '_' {
			if underscore {
				return ErrVal
			}
			underscore = true
			continue
		}
		dv := digitVal(c)
		if dv < 0 || dv >= base {
			break
		}
		underscore = false
		digits = append(digits, byte(dv))
	}
	if underscore || len(digits) == 0 {
		return ErrVal
	}
	for ; i < n; i++ {
		if !isSpace(s[i]) {
			return ErrVal
		}
	}

	if err := z.resize(1 + len(digits)/2); err != nil {
		return err
	}
	zl := mpn.SetStr(z.digits, digits, base)
	z.digits = z.digits[:zl]
	z.neg = neg && zl > 0
	return nil
}

// Text formats z in the given base. Bases 2..36 use lowercase letters;
// the negated base -2..-36 selects uppercase. Other bases are ErrVal.
func (z *Int) Text(base int) (string, error) {
	tab := lowerDigits
	if base < 0 {
		tab = upperDigits
		base = -base
	}
	if base < 2 || base > 36 {
		return "", ErrVal
	}

	sc := alloc.NewScope()
	defer sc.Close()
	digits, err := mpn.GetStr(sc, z.digits, base)
	if err != nil {
		return "", ErrMem
	}

	buf := make([]byte, 0, len(digits)+1)
	if z.neg {
		buf = append(buf, '-')
	}
	for _, d := range digits {
		buf = append(buf, tab[d])
	}
	return string(buf), nil
}

// String formats z in base 10. It implements fmt.Stringer; under a
// failing allocator it degrades to "?".
func (z *Int) String() string {
	s, err := z.Text(10)
	if err != nil {
		return "?"
	}
	return s
}

// SizeInBase returns the digit count of z in the given base (sign
// excluded, |base| in 2..36). Exact for power-of-two bases, otherwise
// possibly one more than needed; Text gives the exact length.
func (z *Int) SizeInBase(base int) (int, error) {
	if base < 0 {
		base = -base
	}
	if base < 2 || base > 36 {
		return 0, ErrVal
	}
	return mpn.SizeInBase(z.digits, base), nil
}
