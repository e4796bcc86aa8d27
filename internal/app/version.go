package app

import (
	"fmt"
	"io"

	"zint"
)

// HasVersionFlag reports whether args request the version banner.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		if a == "-version" || a == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "zcalc %s\n", zint.Version())
}
