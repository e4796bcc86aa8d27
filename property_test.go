package zint

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// intFromWords builds a signed value out of up to three raw 64-bit words,
// giving the property generators a cheap source of multi-word operands.
func intFromWords(w0, w1, w2 uint64, neg bool) *Int {
	z := new(Int)
	if err := z.resize(3); err != nil {
		return z
	}
	z.digits[0], z.digits[1], z.digits[2] = Word(w0), Word(w1), Word(w2)
	z.normalize()
	z.neg = neg && len(z.digits) > 0
	return z
}

// TestDivisionIdentity_PropertyBased verifies the floor-division contract:
//
//	u = q*v + r, with 0 <= |r| < |v| and sign(r) == sign(v) unless r == 0.
func TestDivisionIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("u == q*v + r with floored remainder", prop.ForAll(
		func(u0, u1, u2 uint64, uneg bool, v0, v1 uint64, vneg bool) bool {
			u := intFromWords(u0, u1, u2, uneg)
			v := intFromWords(v0, v1, 0, vneg)
			if v.IsZero() {
				return true
			}

			var q, r Int
			if err := DivMod(u, v, &q, &r); err != nil {
				return false
			}

			var qv Int
			if err := qv.Mul(&q, v); err != nil {
				return false
			}
			if err := qv.Add(&qv, &r); err != nil {
				return false
			}
			if qv.Cmp(u) != 0 {
				return false
			}
			if r.IsZero() {
				return true
			}
			var absR, absV Int
			if err := absR.Abs(&r); err != nil {
				return false
			}
			if err := absV.Abs(v); err != nil {
				return false
			}
			return r.Sign() == v.Sign() && absR.Cmp(&absV) < 0
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.Bool(),
		gen.UInt64(), gen.UInt64(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestBezoutIdentity_PropertyBased verifies u*s + v*t == gcd(u, v) for the
// coefficients produced by the extended GCD.
func TestBezoutIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("u*s + v*t == gcd(u, v)", prop.ForAll(
		func(u0, u1 uint64, uneg bool, v0, v1 uint64, vneg bool) bool {
			u := intFromWords(u0, u1, 0, uneg)
			v := intFromWords(v0, v1, 0, vneg)

			var g, s, tt Int
			if err := GcdExt(u, v, &g, &s, &tt); err != nil {
				return false
			}

			var us, vt Int
			if err := us.Mul(u, &s); err != nil {
				return false
			}
			if err := vt.Mul(v, &tt); err != nil {
				return false
			}
			if err := us.Add(&us, &vt); err != nil {
				return false
			}
			if us.Cmp(&g) != 0 {
				return false
			}

			var want Int
			if err := want.Gcd(u, v); err != nil {
				return false
			}
			return g.Cmp(&want) == 0
		},
		gen.UInt64(), gen.UInt64(), gen.Bool(),
		gen.UInt64(), gen.UInt64(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestStringRoundTrip_PropertyBased formats in a random base and parses
// the result back.
func TestStringRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Text/SetString round trip in every base", prop.ForAll(
		func(w0, w1, w2 uint64, neg bool, base uint64) bool {
			x := intFromWords(w0, w1, w2, neg)
			s, err := x.Text(int(base))
			if err != nil {
				return false
			}
			var back Int
			if err := back.SetString(s, int(base)); err != nil {
				return false
			}
			return x.Cmp(&back) == 0
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.Bool(),
		gen.UInt64Range(2, 36),
	))

	properties.TestingRun(t)
}

// TestShiftIdentities_PropertyBased verifies (x << s) >> s == x and
// x << s == x * 2^s.
func TestShiftIdentities_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("left shift then right shift is the identity", prop.ForAll(
		func(w0, w1 uint64, neg bool, s uint64) bool {
			x := intFromWords(w0, w1, 0, neg)
			var z Int
			if err := z.Lsh(x, s); err != nil {
				return false
			}
			if err := z.Rsh(&z, s); err != nil {
				return false
			}
			return z.Cmp(x) == 0
		},
		gen.UInt64(), gen.UInt64(), gen.Bool(),
		gen.UInt64Range(0, 300),
	))

	properties.Property("left shift multiplies by a power of two", prop.ForAll(
		func(w0 uint64, neg bool, s uint64) bool {
			x := intFromWords(w0, 0, 0, neg)
			var shifted, pow Int
			if err := shifted.Lsh(x, s); err != nil {
				return false
			}
			if err := pow.SetInt64(2); err != nil {
				return false
			}
			if err := pow.Pow(&pow, s); err != nil {
				return false
			}
			if err := pow.Mul(&pow, x); err != nil {
				return false
			}
			return shifted.Cmp(&pow) == 0
		},
		gen.UInt64(), gen.Bool(),
		gen.UInt64Range(0, 300),
	))

	properties.TestingRun(t)
}

// TestAddSubInverse_PropertyBased verifies (a + b) - b == a, including
// when the receiver aliases an operand.
func TestAddSubInverse_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("(a + b) - b == a, aliased and not", prop.ForAll(
		func(a0, a1, a2 uint64, aneg bool, b0, b1 uint64, bneg bool) bool {
			a := intFromWords(a0, a1, a2, aneg)
			b := intFromWords(b0, b1, 0, bneg)

			var z Int
			if err := z.Add(a, b); err != nil {
				return false
			}
			if err := z.Sub(&z, b); err != nil {
				return false
			}
			if z.Cmp(a) != 0 {
				return false
			}

			// In place on the first operand too.
			aliased := intFromWords(a0, a1, a2, aneg)
			if err := aliased.Add(aliased, b); err != nil {
				return false
			}
			if err := aliased.Sub(aliased, b); err != nil {
				return false
			}
			return aliased.Cmp(a) == 0
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.Bool(),
		gen.UInt64(), gen.UInt64(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestSqrtBounds_PropertyBased verifies root² <= x < (root+1)² and
// x == root² + rem.
func TestSqrtBounds_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("integer square root brackets the value", prop.ForAll(
		func(w0, w1, w2 uint64) bool {
			x := intFromWords(w0, w1, w2, false)

			var root, rem Int
			if err := root.SqrtRem(x, &rem); err != nil {
				return false
			}

			var sq Int
			if err := sq.Mul(&root, &root); err != nil {
				return false
			}
			if err := sq.Add(&sq, &rem); err != nil {
				return false
			}
			if sq.Cmp(x) != 0 {
				return false
			}

			var next Int
			if err := next.AddUint64(&root, 1); err != nil {
				return false
			}
			if err := next.Mul(&next, &next); err != nil {
				return false
			}
			return next.Cmp(x) > 0
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.TestingRun(t)
}
