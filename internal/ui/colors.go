package ui

// Color accessor functions return the ANSI escape code for a color, or
// the empty string when the active theme disables colors. Call sites
// always pair them with ColorReset.

func colorCode(code string) string {
	if GetCurrentTheme().Name == "none" {
		return ""
	}
	return code
}

// ColorGreen returns the code for success output.
func ColorGreen() string { return colorCode("\033[32m") }

// ColorRed returns the code for errors.
func ColorRed() string { return colorCode("\033[31m") }

// ColorYellow returns the code for command names and warnings.
func ColorYellow() string { return colorCode("\033[33m") }

// ColorCyan returns the code for informational output.
func ColorCyan() string { return colorCode("\033[36m") }

// ColorMagenta returns the code for operand emphasis.
func ColorMagenta() string { return colorCode("\033[35m") }

// ColorBlue returns the code for identifiers.
func ColorBlue() string { return colorCode("\033[34m") }

// ColorBold returns the bold attribute code.
func ColorBold() string { return colorCode("\033[1m") }

// ColorUnderline returns the underline attribute code.
func ColorUnderline() string { return colorCode("\033[4m") }

// ColorReset returns the attribute reset code.
func ColorReset() string { return colorCode("\033[0m") }
