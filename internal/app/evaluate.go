package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"zint"

	"zint/internal/cli"
	apperrors "zint/internal/errors"
	"zint/internal/server"
)

// tracerName identifies the zcalc instrumentation scope.
const tracerName = "zcalc"

// instrumentedEval wraps the evaluator with tracing, metrics and the
// configured per-evaluation timeout.
func (a *Application) instrumentedEval(ctx context.Context, metrics *server.Metrics) cli.EvalFunc {
	tracer := otel.Tracer(tracerName)

	return func(expr string, base int) (cli.Result, time.Duration, error) {
		evalCtx := ctx
		if a.Config.Timeout > 0 {
			var cancel context.CancelFunc
			evalCtx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
			defer cancel()
		}

		spanCtx, span := tracer.Start(evalCtx, "zcalc.evaluate")
		defer span.End()

		type outcome struct {
			res cli.Result
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			res, err := cli.Evaluate(expr, base)
			done <- outcome{res, err}
		}()

		start := time.Now()
		var res cli.Result
		var err error
		select {
		case o := <-done:
			res, err = o.res, o.err
		case <-spanCtx.Done():
			// The evaluation goroutine keeps running; its result is
			// dropped once it finishes.
			if errors.Is(spanCtx.Err(), context.DeadlineExceeded) {
				err = apperrors.TimeoutError{Operation: opName(expr), Limit: a.Config.Timeout}
			} else {
				err = spanCtx.Err()
			}
		}
		duration := time.Since(start)

		op := res.Op
		if op == "" {
			op = opName(expr)
		}
		span.SetAttributes(
			attribute.String("zcalc.op", op),
			attribute.Int("zcalc.base", base),
		)
		if err != nil {
			span.RecordError(err)
		}
		if metrics != nil {
			metrics.RecordEvaluation(op, duration.Seconds(), err)
		}
		return res, duration, err
	}
}

// opName extracts the operation token from an expression.
func opName(expr string) string {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// runOneShot evaluates the -e expression and prints the result.
func (a *Application) runOneShot(out io.Writer, eval cli.EvalFunc) int {
	res, duration, err := eval(a.Config.Expr, a.Config.Base)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return exitCodeFor(err)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, a.Config.Expr, res, duration, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer, eval cli.EvalFunc) int {
	r := cli.NewREPL(cli.REPLConfig{
		Base:        a.Config.Base,
		Verbose:     a.Config.Verbose,
		ShowSpinner: !a.Config.Quiet,
	}, eval)
	r.SetOutput(out)
	r.Start()
	return apperrors.ExitSuccess
}

// exitCodeFor maps an evaluation error to a process exit code.
func exitCodeFor(err error) int {
	var timeoutErr apperrors.TimeoutError
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case errors.Is(err, zint.ErrMem):
		return apperrors.ExitErrorMem
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	case errors.As(err, &timeoutErr):
		return apperrors.ExitErrorEval
	case errors.Is(err, zint.ErrVal), errors.Is(err, zint.ErrBuf):
		return apperrors.ExitErrorEval
	default:
		var evalErr apperrors.EvalError
		if errors.As(err, &evalErr) {
			return apperrors.ExitErrorEval
		}
		return apperrors.ExitErrorGeneric
	}
}
