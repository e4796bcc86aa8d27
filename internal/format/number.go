package format

import "fmt"

// FormatNumberString inserts underscore separators every three digits,
// counting from the least significant end. A leading sign is preserved.
// Non-numeric strings are returned unchanged.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	digits := s
	if digits[0] == '-' || digits[0] == '+' {
		sign, digits = digits[:1], digits[1:]
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return s
		}
	}
	n := len(digits)
	if n <= 3 {
		return s
	}
	var out []byte
	first := n % 3
	if first > 0 {
		out = append(out, digits[:first]...)
	}
	for i := first; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, '_')
		}
		out = append(out, digits[i:i+3]...)
	}
	return sign + string(out)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
