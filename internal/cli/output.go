// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatTruncated], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"zint/internal/format"
	"zint/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses everything except the result values.
	Quiet bool
	// Verbose disables truncation of long results.
	Verbose bool
}

// FormatTruncated shortens a long value to its leading and trailing
// digits. Values of TruncationLimit digits or fewer come back verbatim.
func FormatTruncated(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return s[:DisplayEdges] + "..." + s[len(s)-DisplayEdges:]
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single line suitable for scripting.
func FormatQuietResult(res Result) string {
	return res.Output()
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, res Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResult writes a result with timing and size details.
func DisplayResult(out io.Writer, expr string, res Result, duration time.Duration, cfg OutputConfig) {
	if cfg.Quiet {
		DisplayQuietResult(out, res)
		return
	}

	fmt.Fprintf(out, "%s%s%s = ", ui.ColorYellow(), expr, ui.ColorReset())
	for i, v := range res.Values {
		if i > 0 {
			fmt.Fprint(out, " ")
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "%s%s%s", ui.ColorGreen(), v, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s%s%s", ui.ColorGreen(), FormatTruncated(v), ui.ColorReset())
		}
	}
	fmt.Fprintln(out)

	digits := 0
	for _, v := range res.Values {
		if len(v) > digits {
			digits = len(v)
		}
	}
	fmt.Fprintf(out, "  %sTime:%s   %s\n", ui.ColorBold(), ui.ColorReset(),
		format.FormatEvalDuration(duration))
	fmt.Fprintf(out, "  %sDigits:%s %s\n", ui.ColorBold(), ui.ColorReset(),
		format.FormatNumberString(strconv.Itoa(digits)))
}

// DisplayResultWithConfig displays a result and optionally saves it to
// a file, per the output configuration.
func DisplayResultWithConfig(out io.Writer, expr string, res Result, duration time.Duration, cfg OutputConfig) error {
	DisplayResult(out, expr, res, duration, cfg)

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(expr, res, duration, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%sResult saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}

// WriteResultToFile writes an evaluation result to cfg.OutputFile with
// a commented header, creating parent directories as needed.
func WriteResultToFile(expr string, res Result, duration time.Duration, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# zcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expression: %s\n", expr)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n", res.Output())

	return nil
}
