package cli

import (
	"fmt"
	"sort"
	"strings"

	"zint"

	apperrors "zint/internal/errors"
)

// Result is the outcome of a single evaluation.
type Result struct {
	// Op is the operation name, lowercased.
	Op string
	// Values holds the result values formatted in the requested base.
	// Most operations yield one; divmod, sqrtrem and gcdext yield more.
	Values []string
	// Decimal holds the same values in canonical base 10, reparseable
	// as operands of later expressions.
	Decimal []string
}

// Output joins the result values into the printable form.
func (r Result) Output() string {
	return strings.Join(r.Values, " ")
}

// operation describes one entry of the command table: how many operand
// values it consumes, how many results it produces, and how to apply
// it. args and out are pre-allocated by Evaluate.
type operation struct {
	arity   int
	results int
	apply   func(args, out []*zint.Int) error
	help    string
}

// asUint64 narrows an operand to uint64 for exponents and shift counts.
func asUint64(x *zint.Int) (uint64, error) {
	v, err := x.Uint64()
	if err != nil {
		return 0, fmt.Errorf("operand out of range: %w", err)
	}
	return v, nil
}

var operations = map[string]operation{
	"add": {2, 1, func(a, out []*zint.Int) error { return out[0].Add(a[0], a[1]) }, "add x y"},
	"sub": {2, 1, func(a, out []*zint.Int) error { return out[0].Sub(a[0], a[1]) }, "sub x y"},
	"mul": {2, 1, func(a, out []*zint.Int) error { return out[0].Mul(a[0], a[1]) }, "mul x y"},
	"div": {2, 1, func(a, out []*zint.Int) error { return out[0].Div(a[0], a[1]) }, "div x y (floor)"},
	"mod": {2, 1, func(a, out []*zint.Int) error { return out[0].Mod(a[0], a[1]) }, "mod x y (sign of y)"},
	"divmod": {2, 2, func(a, out []*zint.Int) error {
		return zint.DivMod(a[0], a[1], out[0], out[1])
	}, "divmod x y -> q r"},
	"pow": {2, 1, func(a, out []*zint.Int) error {
		e, err := asUint64(a[1])
		if err != nil {
			return err
		}
		return out[0].Pow(a[0], e)
	}, "pow x e"},
	"powm": {3, 1, func(a, out []*zint.Int) error {
		return out[0].ExpMod(a[0], a[1], a[2])
	}, "powm x e m"},
	"gcd": {2, 1, func(a, out []*zint.Int) error { return out[0].Gcd(a[0], a[1]) }, "gcd x y"},
	"gcdext": {2, 3, func(a, out []*zint.Int) error {
		return zint.GcdExt(a[0], a[1], out[0], out[1], out[2])
	}, "gcdext x y -> g s t"},
	"lcm":  {2, 1, func(a, out []*zint.Int) error { return out[0].Lcm(a[0], a[1]) }, "lcm x y"},
	"sqrt": {1, 1, func(a, out []*zint.Int) error { return out[0].SqrtRem(a[0], nil) }, "sqrt x"},
	"sqrtrem": {1, 2, func(a, out []*zint.Int) error {
		return out[0].SqrtRem(a[0], out[1])
	}, "sqrtrem x -> root rem"},
	"and": {2, 1, func(a, out []*zint.Int) error { return out[0].And(a[0], a[1]) }, "and x y"},
	"or":  {2, 1, func(a, out []*zint.Int) error { return out[0].Or(a[0], a[1]) }, "or x y"},
	"xor": {2, 1, func(a, out []*zint.Int) error { return out[0].Xor(a[0], a[1]) }, "xor x y"},
	"not": {1, 1, func(a, out []*zint.Int) error { return out[0].Not(a[0]) }, "not x"},
	"shl": {2, 1, func(a, out []*zint.Int) error {
		s, err := asUint64(a[1])
		if err != nil {
			return err
		}
		return out[0].Lsh(a[0], s)
	}, "shl x s"},
	"shr": {2, 1, func(a, out []*zint.Int) error {
		s, err := asUint64(a[1])
		if err != nil {
			return err
		}
		return out[0].Rsh(a[0], s)
	}, "shr x s (floor)"},
	"neg": {1, 1, func(a, out []*zint.Int) error { return out[0].Neg(a[0]) }, "neg x"},
	"abs": {1, 1, func(a, out []*zint.Int) error { return out[0].Abs(a[0]) }, "abs x"},
	"cmp": {2, 1, func(a, out []*zint.Int) error {
		return out[0].SetInt64(int64(a[0].Cmp(a[1])))
	}, "cmp x y -> -1|0|1"},
	"fac": {1, 1, func(a, out []*zint.Int) error {
		n, err := asUint64(a[0])
		if err != nil {
			return err
		}
		return out[0].Fac(n)
	}, "fac n"},
	"bin": {2, 1, func(a, out []*zint.Int) error {
		n, err := asUint64(a[0])
		if err != nil {
			return err
		}
		k, err := asUint64(a[1])
		if err != nil {
			return err
		}
		return out[0].Bin(n, k)
	}, "bin n k"},
	"bitlen": {1, 1, func(a, out []*zint.Int) error {
		return out[0].SetUint64(a[0].BitLen())
	}, "bitlen x"},
	"popcount": {1, 1, func(a, out []*zint.Int) error {
		if a[0].Sign() < 0 {
			return fmt.Errorf("popcount of negative value: %w", zint.ErrVal)
		}
		return out[0].SetUint64(a[0].PopCount())
	}, "popcount x (x >= 0)"},
}

// ListOperations returns the operation names in sorted order.
func ListOperations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationHelp returns the usage line for an operation, or "".
func OperationHelp(name string) string {
	return operations[name].help
}

// Evaluate parses and evaluates one prefix expression, e.g. "mul 6 7"
// or "powm 0x2 10 1000". Operands accept the 0b/0o/0x prefixes and
// underscore separators. Results are formatted in the given base;
// a negative base selects uppercase digits.
func Evaluate(expr string, base int) (Result, error) {
	fields := strings.Fields(expr)
	if len(fields) == 0 {
		return Result{}, apperrors.NewEvalError("", fmt.Errorf("empty expression"))
	}

	name := strings.ToLower(fields[0])
	op, ok := operations[name]
	if !ok {
		return Result{Op: name}, apperrors.NewEvalError(name, fmt.Errorf("unknown operation"))
	}
	if len(fields)-1 != op.arity {
		return Result{Op: name}, apperrors.NewEvalError(name,
			fmt.Errorf("want %d operand(s), got %d (usage: %s)", op.arity, len(fields)-1, op.help))
	}

	args := make([]*zint.Int, op.arity)
	out := make([]*zint.Int, op.results)
	defer func() {
		for _, a := range args {
			if a != nil {
				a.Clear()
			}
		}
		for _, o := range out {
			if o != nil {
				o.Clear()
			}
		}
	}()

	for i, tok := range fields[1:] {
		args[i] = new(zint.Int)
		if err := args[i].SetString(tok, 0); err != nil {
			return Result{Op: name}, apperrors.NewEvalError(name,
				fmt.Errorf("operand %q: %w", tok, err))
		}
	}
	for i := range out {
		out[i] = new(zint.Int)
	}

	if err := op.apply(args, out); err != nil {
		return Result{Op: name}, apperrors.NewEvalError(name, err)
	}

	values := make([]string, len(out))
	decimal := make([]string, len(out))
	for i, o := range out {
		s, err := o.Text(base)
		if err != nil {
			return Result{Op: name}, apperrors.NewEvalError(name, err)
		}
		values[i] = s
		if base == 10 {
			decimal[i] = s
		} else if decimal[i], err = o.Text(10); err != nil {
			return Result{Op: name}, apperrors.NewEvalError(name, err)
		}
	}
	return Result{Op: name, Values: values, Decimal: decimal}, nil
}
