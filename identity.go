package symbolic

import (
	"log/slog"
	"strings"
)

// ============================================================
// Angle sum and difference identities
// ============================================================

// Identity pairs a placeholder with the expression it stands for.
type Identity struct {
	Name       *Named
	Expression Symbol
}

// SumAndDifference holds the four angle identities for one pair of arguments:
//
//	cos(a+b) = cos(a)cos(b) - sin(a)sin(b)
//	sin(a+b) = sin(a)cos(b) + cos(a)sin(b)
//	cos(a-b) = cos(a)cos(b) + sin(a)sin(b)
//	sin(a-b) = sin(a)cos(b) - cos(a)sin(b)
type SumAndDifference struct {
	First, Second *Arg

	CosSum        Identity
	SinSum        Identity
	CosDifference Identity
	SinDifference Identity
}

// NewSumAndDifference builds the identities for first and second. The
// placeholders are interned in first's registry as "a+b" and "a-b".
func NewSumAndDifference(first, second *Arg) (*SumAndDifference, error) {
	reg := first.registry
	if reg == nil {
		reg = Default
	}
	sinA, cosA := newNamed(Sin, first), newNamed(Cos, first)
	sinB, cosB := newNamed(Sin, second), newNamed(Cos, second)

	var err error
	product := func(a, b Symbol) Symbol {
		if err != nil {
			return nil
		}
		var p Symbol
		p, err = Multiply(a, b)
		return p
	}
	cc, ss := product(cosA, cosB), product(sinA, sinB)
	sc, cs := product(sinA, cosB), product(cosA, sinB)
	if err != nil {
		return nil, err
	}

	sum := reg.Get(first.name + "+" + second.name)
	diff := reg.Get(first.name + "-" + second.name)
	s := &SumAndDifference{First: first, Second: second}
	if s.CosSum.Expression, err = Subtract(cc, ss); err != nil {
		return nil, err
	}
	if s.SinSum.Expression, err = Add(sc, cs); err != nil {
		return nil, err
	}
	if s.CosDifference.Expression, err = Add(cc, ss); err != nil {
		return nil, err
	}
	if s.SinDifference.Expression, err = Subtract(sc, cs); err != nil {
		return nil, err
	}
	s.CosSum.Name = newNamed(Cos, sum)
	s.SinSum.Name = newNamed(Sin, sum)
	s.CosDifference.Name = newNamed(Cos, diff)
	s.SinDifference.Name = newNamed(Sin, diff)
	return s, nil
}

// Identities lists the identities in matching order.
func (s *SumAndDifference) Identities() []Identity {
	return []Identity{s.SinSum, s.CosSum, s.SinDifference, s.CosDifference}
}

func (s *SumAndDifference) String() string {
	var b strings.Builder
	for _, id := range []Identity{s.CosSum, s.SinSum, s.CosDifference, s.SinDifference} {
		b.WriteString(id.Name.String() + " = " + id.Expression.String() + "\n")
	}
	return b.String()
}

// Match returns the placeholder for cell, negated when cell equals the
// negation of an identity.
func (s *SumAndDifference) Match(cell Symbol) (Symbol, bool, error) {
	neg, err := Negate(cell)
	if err != nil {
		return nil, false, err
	}
	for _, id := range s.Identities() {
		if cell.Equal(id.Expression) {
			return id.Name, true, nil
		}
		if neg.Equal(id.Expression) {
			n, err := Negate(id.Name)
			return n, err == nil, err
		}
	}
	return cell, false, nil
}

// ReplaceAngleSum rewrites s into a named angle identity when s is a
// trig-only node whose left child is a product of two named symbols that
// fixes the identity's argument pair. Anything else is returned unchanged.
func ReplaceAngleSum(s Symbol) (Symbol, error) {
	e, ok := s.(*Expression)
	if !ok || !e.IsTrig() {
		return s, nil
	}
	left, ok := e.left.(*Expression)
	if !ok || !left.isProduct() {
		return s, nil
	}
	a, okA := left.left.(*Named)
	b, okB := left.right.(*Named)
	if !okA || !okB {
		return s, nil
	}
	ids, err := NewSumAndDifference(a.arg, b.arg)
	if err != nil {
		return nil, err
	}
	out, _, err := ids.Match(s)
	return out, err
}

// ReplaceOption configures ReplaceAngleSums.
type ReplaceOption func(*replaceOptions)

type replaceOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger that records each substitution at debug level.
func WithLogger(logger *slog.Logger) ReplaceOption {
	return func(o *replaceOptions) { o.logger = logger }
}

// ReplaceAngleSums applies ReplaceAngleSum to every cell in one pass and
// returns a new matrix; m is left untouched.
func ReplaceAngleSums(m *Matrix, opts ...ReplaceOption) (*Matrix, error) {
	o := replaceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	out := m.Clone()
	for c := 0; c < m.cols; c++ {
		for r := 0; r < m.rows; r++ {
			i := r*m.cols + c
			v, err := ReplaceAngleSum(m.data[i])
			if err != nil {
				return nil, err
			}
			if v != m.data[i] {
				o.logger.Debug("angle identity substituted", "row", r, "col", c, "identity", v.String())
			}
			out.data[i] = v
		}
	}
	return out, nil
}
