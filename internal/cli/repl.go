// Package cli provides the expression evaluator and the REPL
// (Read-Eval-Print Loop) for interactive arbitrary-precision
// calculations.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"zint"

	"zint/internal/format"
	"zint/internal/metrics"
	"zint/internal/sysmon"
	"zint/internal/ui"
)

// EvalFunc evaluates one expression in the given base and reports how
// long it took. The application injects an instrumented implementation;
// the default simply times Evaluate.
type EvalFunc func(expr string, base int) (Result, time.Duration, error)

// defaultEval times a plain Evaluate call.
func defaultEval(expr string, base int) (Result, time.Duration, error) {
	start := time.Now()
	res, err := Evaluate(expr, base)
	return res, time.Since(start), err
}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Base is the initial output base.
	Base int
	// Verbose disables truncation of long results.
	Verbose bool
	// ShowSpinner animates a busy indicator during evaluations.
	ShowSpinner bool
}

// REPL represents an interactive calculator session.
type REPL struct {
	config  REPLConfig
	base    int
	eval    EvalFunc
	history []string // canonical decimal results, referenced as $1, $2, ...
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a new REPL instance. A nil eval falls back to the
// plain evaluator.
func NewREPL(config REPLConfig, eval EvalFunc) *REPL {
	base := config.Base
	if base == 0 {
		base = 10
	}
	if eval == nil {
		eval = defaultEval
	}
	return &REPL{
		config: config,
		base:   base,
		eval:   eval,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"zcalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%szcalc %s - arbitrary-precision calculator%s\n",
		ui.ColorBold(), zint.Version(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression, e.g.:%s  mul 6 7   powm 2 1000 0xffff   gcdext 240 46\n",
		ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sPrevious results can be reused:%s  add $1 $2\n",
		ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sSession commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s           - List available operations\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sbase <n>%s      - Change output base (2..36, negative for uppercase)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s           - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstats%s         - Display session statistics\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "ops", "list", "ls":
		r.cmdOps()
	case "base", "b":
		r.cmdBase(args)
	case "hex":
		r.cmdHex()
	case "stats", "st":
		r.cmdStats()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.calculate(input)
	}

	return true
}

// expandVars replaces $n tokens with earlier results.
func (r *REPL) expandVars(input string) (string, error) {
	fields := strings.Fields(input)
	for i, tok := range fields {
		if !strings.HasPrefix(tok, "$") {
			continue
		}
		n, err := strconv.Atoi(tok[1:])
		if err != nil || n < 1 || n > len(r.history) {
			return "", fmt.Errorf("no such result: %s", tok)
		}
		fields[i] = r.history[n-1]
	}
	return strings.Join(fields, " "), nil
}

// calculate evaluates an expression and displays the outcome.
func (r *REPL) calculate(input string) {
	expanded, err := r.expandVars(input)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	var (
		res      Result
		duration time.Duration
	)
	run := func() error {
		res, duration, err = r.eval(expanded, r.base)
		return err
	}

	if r.config.ShowSpinner {
		_ = withSpinner("evaluating...", run)
	} else {
		_ = run()
	}

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	DisplayResult(r.out, input, res, duration, OutputConfig{Verbose: r.config.Verbose})

	refs := make([]string, len(res.Decimal))
	for i, v := range res.Decimal {
		r.history = append(r.history, v)
		refs[i] = fmt.Sprintf("$%d", len(r.history))
	}
	if len(refs) > 0 {
		fmt.Fprintf(r.out, "  %sSaved as:%s %s\n", ui.ColorBold(), ui.ColorReset(),
			ui.ColorMagenta()+strings.Join(refs, " ")+ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdOps lists the operation table.
func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "\n%sAvailable operations:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range ListOperations() {
		fmt.Fprintf(r.out, "  %s%-10s%s %s\n", ui.ColorYellow(), name, ui.ColorReset(), OperationHelp(name))
	}
	fmt.Fprintln(r.out)
}

// cmdBase handles the "base" command.
func (r *REPL) cmdBase(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current base: %s%d%s\n", ui.ColorCyan(), r.base, ui.ColorReset())
		return
	}

	b, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid base: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	abs := b
	if abs < 0 {
		abs = -abs
	}
	if abs < 2 || abs > 36 {
		fmt.Fprintf(r.out, "%sBase out of range (2..36): %d%s\n", ui.ColorRed(), b, ui.ColorReset())
		return
	}

	r.base = b
	fmt.Fprintf(r.out, "Output base changed to: %s%d%s\n", ui.ColorGreen(), b, ui.ColorReset())
}

// cmdHex toggles between hexadecimal and decimal output.
func (r *REPL) cmdHex() {
	if r.base == 16 {
		r.base = 10
	} else {
		r.base = 16
	}
	fmt.Fprintf(r.out, "Output base changed to: %s%d%s\n", ui.ColorGreen(), r.base, ui.ColorReset())
}

// cmdStats displays session statistics.
func (r *REPL) cmdStats() {
	snap := metrics.NewMemoryCollector().Snapshot()

	fmt.Fprintf(r.out, "\n%sSession statistics:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Output base:      %s%d%s\n", ui.ColorCyan(), r.base, ui.ColorReset())
	fmt.Fprintf(r.out, "  Scratch buffers:  %s%d%s outstanding\n", ui.ColorCyan(), zint.LedgerDepth(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Heap in use:      %s%s%s\n", ui.ColorCyan(), format.FormatBytes(snap.HeapAlloc), ui.ColorReset())
	fmt.Fprintf(r.out, "  GC cycles:        %s%d%s\n", ui.ColorCyan(), snap.NumGC, ui.ColorReset())

	sys := sysmon.Sample()
	fmt.Fprintf(r.out, "  System CPU:       %s%.1f%%%s\n", ui.ColorCyan(), sys.CPUPercent, ui.ColorReset())
	fmt.Fprintf(r.out, "  System memory:    %s%.1f%%%s used\n", ui.ColorCyan(), sys.MemPercent, ui.ColorReset())
	fmt.Fprintln(r.out)
}
