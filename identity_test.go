package symbolic_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symbolic"
)

func neg(t *testing.T, s symbolic.Symbol) symbolic.Symbol {
	t.Helper()
	n, err := symbolic.Negate(s)
	require.NoError(t, err)
	return n
}

func mul(t *testing.T, a, b symbolic.Symbol) symbolic.Symbol {
	t.Helper()
	p, err := symbolic.Multiply(a, b)
	require.NoError(t, err)
	return p
}

// rotation returns the 2D rotation matrix for arg.
func rotation(t *testing.T, r *symbolic.Registry, arg string) *symbolic.Matrix {
	t.Helper()
	s, c := r.SinOf(arg), r.CosOf(arg)
	m, err := symbolic.MatrixFromSlice(2, 2, []symbolic.Symbol{c, neg(t, s), s, c})
	require.NoError(t, err)
	return m
}

func at(t *testing.T, m *symbolic.Matrix, row, col int) symbolic.Symbol {
	t.Helper()
	s, err := m.At(row, col)
	require.NoError(t, err)
	return s
}

// ============================================================
// SumAndDifference
// ============================================================

func TestSumAndDifference_Expressions(t *testing.T) {
	r := symbolic.NewRegistry()
	ids, err := symbolic.NewSumAndDifference(r.Get("alpha"), r.Get("beta"))
	require.NoError(t, err)

	assert.Equal(t, "cos(alpha+beta)", ids.CosSum.Name.String())
	assert.Equal(t, "cos(alpha) * cos(beta) - sin(alpha) * sin(beta)", ids.CosSum.Expression.String())
	assert.Equal(t, "sin(alpha+beta)", ids.SinSum.Name.String())
	assert.Equal(t, "sin(alpha) * cos(beta) + sin(beta) * cos(alpha)", ids.SinSum.Expression.String())
	assert.Equal(t, "cos(alpha-beta)", ids.CosDifference.Name.String())
	assert.Equal(t, "cos(alpha) * cos(beta) + sin(alpha) * sin(beta)", ids.CosDifference.Expression.String())
	assert.Equal(t, "sin(alpha-beta)", ids.SinDifference.Name.String())
	assert.Equal(t, "sin(alpha) * cos(beta) - sin(beta) * cos(alpha)", ids.SinDifference.Expression.String())

	lines := strings.Split(strings.TrimSpace(ids.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "cos(alpha+beta) = cos(alpha) * cos(beta) - sin(alpha) * sin(beta)", lines[0])

	_, ok := r.Lookup("alpha+beta")
	assert.True(t, ok)
	_, ok = r.Lookup("alpha-beta")
	assert.True(t, ok)
}

func TestSumAndDifference_Match(t *testing.T) {
	r := symbolic.NewRegistry()
	ids, err := symbolic.NewSumAndDifference(r.Get("a"), r.Get("b"))
	require.NoError(t, err)

	got, ok, err := ids.Match(ids.SinDifference.Expression)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(r.SinOf("a-b")))

	got, ok, err = ids.Match(neg(t, ids.CosSum.Expression))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "-cos(a+b)", got.String())

	x := r.Var("x")
	got, ok, err = ids.Match(x)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, x, got)
}

// ============================================================
// ReplaceAngleSum(s)
// ============================================================

func TestReplaceAngleSum_PassThrough(t *testing.T) {
	r := symbolic.NewRegistry()
	for _, s := range []symbolic.Symbol{
		symbolic.N(3),
		r.SinOf("a"),
		symbolic.Must(symbolic.Add(r.Var("x"), r.Var("y"))),
		symbolic.Must(symbolic.Add(r.SinOf("a"), r.CosOf("b"))),
	} {
		got, err := symbolic.ReplaceAngleSum(s)
		require.NoError(t, err)
		assert.Same(t, s, got)
	}
}

func TestReplaceAngleSums_Rotation2D(t *testing.T) {
	r := symbolic.NewRegistry()
	a, b := rotation(t, r, "alpha"), rotation(t, r, "beta")
	ab, err := a.MatMul(b)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	got, err := symbolic.ReplaceAngleSums(ab, symbolic.WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, at(t, got, 0, 0).Equal(r.CosOf("alpha+beta")))
	assert.True(t, at(t, got, 0, 1).Equal(neg(t, r.SinOf("beta+alpha"))))
	assert.True(t, at(t, got, 1, 0).Equal(r.SinOf("alpha+beta")))
	assert.True(t, at(t, got, 1, 1).Equal(r.CosOf("alpha+beta")))
	assert.Equal(t, "-sin(beta+alpha)", at(t, got, 0, 1).String())
	assert.Equal(t, 4, strings.Count(buf.String(), "angle identity substituted"))

	// The input grid is left unchanged.
	assert.Equal(t, "cos(alpha) * cos(beta) - sin(alpha) * sin(beta)", at(t, ab, 0, 0).String())
}

func TestReplaceAngleSums_Gimbal(t *testing.T) {
	r := symbolic.NewRegistry()
	sa, ca := r.SinOf("alpha"), r.CosOf("alpha")
	sb, cb := r.SinOf("beta"), r.CosOf("beta")
	sg, cg := r.SinOf("gamma"), r.CosOf("gamma")
	zero, one := symbolic.N(0), symbolic.N(1)
	minus := func(s symbolic.Symbol) symbolic.Symbol { return mul(t, symbolic.N(-1), s) }

	rx, err := symbolic.MatrixFromSlice(3, 3, []symbolic.Symbol{
		one, zero, zero,
		zero, ca, minus(sa),
		zero, sa, ca,
	})
	require.NoError(t, err)
	ry, err := symbolic.MatrixFromSlice(3, 3, []symbolic.Symbol{
		cb, zero, sb,
		zero, one, zero,
		minus(sb), zero, cb,
	})
	require.NoError(t, err)
	rz, err := symbolic.MatrixFromSlice(3, 3, []symbolic.Symbol{
		cg, minus(sg), zero,
		sg, cg, zero,
		zero, zero, one,
	})
	require.NoError(t, err)

	r.SetValue("beta", math.Pi/2)
	zy, err := rz.MatMul(ry)
	require.NoError(t, err)
	m, err := zy.MatMul(rx)
	require.NoError(t, err)
	got, err := symbolic.ReplaceAngleSums(m)
	require.NoError(t, err)

	assert.True(t, at(t, got, 0, 1).Equal(r.SinOf("alpha-gamma")))
	assert.True(t, at(t, got, 1, 1).Equal(r.CosOf("alpha-gamma")))
	assert.True(t, at(t, got, 1, 2).Equal(r.SinOf("gamma-alpha")))

	// sin(a)sin(g) + cos(a)cos(g) leads with the sine product, which no
	// identity for (alpha, gamma) starts with, so it stays expanded.
	want := symbolic.Must(symbolic.Add(mul(t, sa, sg), mul(t, ca, cg)))
	assert.True(t, at(t, got, 0, 2).Equal(want))

	assert.Equal(t, "-1", at(t, got, 2, 0).String())
	for _, rc := range [][2]int{{0, 0}, {1, 0}, {2, 1}, {2, 2}} {
		assert.True(t, at(t, got, rc[0], rc[1]).Equal(zero), "cell %v", rc)
	}
}
