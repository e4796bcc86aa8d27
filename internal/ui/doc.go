// Package ui provides theme and color support for zcalc's terminal
// output. It defines color schemes and ANSI escape accessors shared by
// the one-shot printer and the REPL, so presentation stays out of the
// evaluator itself.
package ui
