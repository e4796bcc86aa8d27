package format

import (
	"fmt"
	"time"
)

// FormatEvalDuration renders an evaluation time for display: microseconds
// below a millisecond, milliseconds below a second, and the default
// representation beyond that.
func FormatEvalDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
