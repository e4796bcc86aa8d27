package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatEvalDuration(t *testing.T) {
	assert.Equal(t, "250µs", FormatEvalDuration(250*time.Microsecond))
	assert.Equal(t, "42ms", FormatEvalDuration(42*time.Millisecond))
	assert.Equal(t, "2s", FormatEvalDuration(2*time.Second))
}

func TestFormatNumberString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0", "0"},
		{"999", "999"},
		{"1000", "1_000"},
		{"1234567", "1_234_567"},
		{"-1234567", "-1_234_567"},
		{"+42000", "+42_000"},
		{"deadbeef", "deadbeef"}, // non-decimal left alone
		{"12a4", "12a4"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatNumberString(tc.in), "input %q", tc.in)
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3<<19))
	assert.Equal(t, "2.0 GiB", FormatBytes(2<<30))
}
