package zint

import "errors"

// Every fallible operation reports its outcome through one of these
// sentinel errors (or nil on success). They are the complete error surface
// of the package; callers match them with errors.Is.
var (
	// ErrMem reports that the installed allocator could not satisfy a
	// request. The operation's outputs are cleared to zero; no scratch
	// space leaks.
	ErrMem = errors.New("zint: out of memory")

	// ErrVal reports an invalid operand: division by zero, a negative
	// square root, a malformed string, an unsupported base or layout,
	// a non-invertible modular inverse.
	ErrVal = errors.New("zint: invalid value")

	// ErrBuf reports that a result does not fit the destination: a
	// fixed-width getter on an out-of-range value, an export buffer too
	// small, a float conversion overflowing to infinity, an operand
	// size beyond MaxBits.
	ErrBuf = errors.New("zint: result does not fit")
)
