package symbolic_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symbolic"
)

func TestProperty_ValueReduced(t *testing.T) {
	for n := int64(-12); n <= 12; n++ {
		for d := int64(-6); d <= 6; d++ {
			if d == 0 {
				continue
			}
			v, err := symbolic.NewValue(n, d)
			require.NoError(t, err)
			num, den := v.Numerator(), v.Denominator()
			assert.Positive(t, den.Sign(), "%d/%d", n, d)
			gcd := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
			if num.Sign() != 0 {
				assert.Equal(t, int64(1), gcd.Int64(), "%d/%d", n, d)
			}
		}
	}
}

func TestProperty_IdentityLaws(t *testing.T) {
	r := symbolic.NewRegistry()
	x, y := r.Var("x"), r.Var("y")
	for _, s := range []symbolic.Symbol{
		symbolic.F(3, 5),
		x,
		r.CosOf("alpha"),
		symbolic.Must(symbolic.Add(x, y)),
		symbolic.Must(symbolic.Multiply(symbolic.N(-2), symbolic.Must(symbolic.Multiply(x, y)))),
		symbolic.Must(symbolic.PowInt(symbolic.Must(symbolic.Add(x, symbolic.N(1))), 3)),
	} {
		assert.True(t, symbolic.Must(symbolic.Add(s, symbolic.N(0))).Equal(s), "%s + 0", s)
		assert.True(t, symbolic.Must(symbolic.Multiply(s, symbolic.N(1))).Equal(s), "%s * 1", s)
		assert.True(t, symbolic.Must(symbolic.Multiply(s, symbolic.N(0))).Equal(symbolic.N(0)), "%s * 0", s)
		assert.True(t, symbolic.Must(symbolic.Divide(s, symbolic.N(1))).Equal(s), "%s / 1", s)

		_, err := symbolic.Divide(s, symbolic.N(0))
		assert.ErrorIs(t, err, symbolic.ErrDivideByZero)
	}
}

func TestProperty_ValueSumCommutes(t *testing.T) {
	vals := []*symbolic.Value{symbolic.N(3), symbolic.F(-1, 2), symbolic.F(7, 3), symbolic.N(0)}
	for _, a := range vals {
		for _, b := range vals {
			assert.True(t, symbolic.Must(symbolic.Add(a, b)).Equal(symbolic.Must(symbolic.Add(b, a))))
			for _, c := range vals {
				left := symbolic.Must(symbolic.Add(symbolic.Must(symbolic.Add(a, b)), c))
				right := symbolic.Must(symbolic.Add(a, symbolic.Must(symbolic.Add(b, c))))
				assert.True(t, left.Equal(right))
			}
		}
	}
}

func permutations(items []symbolic.Symbol) [][]symbolic.Symbol {
	if len(items) <= 1 {
		return [][]symbolic.Symbol{items}
	}
	var out [][]symbolic.Symbol
	for i := range items {
		rest := make([]symbolic.Symbol, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]symbolic.Symbol{items[i]}, p...))
		}
	}
	return out
}

// Products mixing trig and non-trig factors canonicalize to the same tree
// whatever order the factors are multiplied in.
func TestProperty_MixedProductOrder(t *testing.T) {
	r := symbolic.NewRegistry()
	x := r.Var("x")
	for _, factors := range [][]symbolic.Symbol{
		{x, r.SinOf("alpha"), r.CosOf("beta"), r.Var("y")},
		{x, r.CosOf("alpha"), x, r.SinOf("alpha")},
		{symbolic.N(3), r.CosOf("gamma"), symbolic.Must(symbolic.PowInt(x, 2)), r.TanOf("alpha")},
		{r.SinOf("beta"), r.SinOf("alpha"), r.CosOf("alpha"), r.SinOf("beta")},
	} {
		var want symbolic.Symbol
		for _, perm := range permutations(factors) {
			var got symbolic.Symbol = symbolic.N(1)
			for _, f := range perm {
				got = symbolic.Must(symbolic.Multiply(got, f))
			}
			if want == nil {
				want = got
				continue
			}
			assert.True(t, got.Equal(want), "%s vs %s", got, want)
		}
	}

	got := symbolic.Must(symbolic.Multiply(
		symbolic.Must(symbolic.Multiply(r.CosOf("beta"), x)),
		symbolic.Must(symbolic.Multiply(r.SinOf("beta"), r.SinOf("alpha"))),
	))
	assert.Equal(t, "x * sin(alpha) * sin(beta) * cos(beta)", got.String())
}

func TestProperty_SharedArg(t *testing.T) {
	r := symbolic.NewRegistry()
	a, b := r.CosOf("theta"), r.CosOf("theta")
	assert.Same(t, a.Arg(), b.Arg())

	r.Get("theta").SetValue(0)
	v, ok := b.Eval()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-12)
	assert.True(t, a.IsOne())
}
