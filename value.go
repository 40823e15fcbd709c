package symbolic

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Value — exact rational with an optional power tag
// ============================================================

// maxResolvedExponent bounds the integer exponents Pow computes exactly.
const maxResolvedExponent = 64

// Value is a reduced rational number. A non-unit power tag records an
// exponentiation that could not be resolved exactly, e.g. 2^(1/2).
type Value struct {
	val *big.Rat
	pow *big.Rat
}

func N(n int64) *Value { return ratValue(new(big.Rat).SetInt64(n)) }

// F returns p/q and panics when q is zero. Use NewValue for untrusted input.
func F(p, q int64) *Value {
	v, err := NewValue(p, q)
	if err != nil {
		panic(err)
	}
	return v
}

// NewValue returns the reduced rational n/d.
func NewValue(n, d int64) (*Value, error) {
	if d == 0 {
		return nil, fmt.Errorf("NewValue(%d, %d): %w", n, d, ErrDivideByZero)
	}
	return ratValue(big.NewRat(n, d)), nil
}

// NewRat returns a copy of r as a Value.
func NewRat(r *big.Rat) *Value { return ratValue(new(big.Rat).Set(r)) }

func ratValue(r *big.Rat) *Value { return &Value{val: r, pow: big.NewRat(1, 1)} }

// powered returns base^pow, resolving small integer exponents exactly.
func powered(base, pow *big.Rat) (*Value, error) {
	if pow.Sign() == 0 {
		return N(1), nil
	}
	if base.Sign() == 0 {
		if pow.Sign() < 0 {
			return nil, fmt.Errorf("Value.Pow: 0^%s: %w", pow.RatString(), ErrDivideByZero)
		}
		return N(0), nil
	}
	if pow.IsInt() && pow.Num().IsInt64() {
		n := pow.Num().Int64()
		k := n
		if k < 0 {
			k = -k
		}
		if k <= maxResolvedExponent {
			e := big.NewInt(k)
			num := new(big.Int).Exp(base.Num(), e, nil)
			den := new(big.Int).Exp(base.Denom(), e, nil)
			if n < 0 {
				num, den = den, num
			}
			return ratValue(new(big.Rat).SetFrac(num, den)), nil
		}
	}
	return &Value{val: base, pow: pow}, nil
}

func (v *Value) Numerator() *big.Int   { return new(big.Int).Set(v.val.Num()) }
func (v *Value) Denominator() *big.Int { return new(big.Int).Set(v.val.Denom()) }
func (v *Value) Rat() *big.Rat         { return new(big.Rat).Set(v.val) }
func (v *Value) HasPower() bool        { return v.pow.Cmp(ratOne) != 0 }
func (v *Value) IsInteger() bool       { return !v.HasPower() && v.val.IsInt() }
func (v *Value) Cmp(other *Value) int  { return v.val.Cmp(other.val) }
func (v *Value) Float64() float64      { f, _ := v.val.Float64(); return f }

var ratOne = big.NewRat(1, 1)

// ============================================================
// Value arithmetic
// ============================================================

// AddValue returns v + other. Operands with a shared power tag combine only
// when their bases match: a^p + a^p doubles under the tag.
func (v *Value) AddValue(other *Value) (*Value, error) {
	if v.pow.Cmp(other.pow) != 0 {
		return nil, fmt.Errorf("Value.Add: %s + %s: %w", v, other, ErrIncompatiblePower)
	}
	if !v.HasPower() {
		return ratValue(new(big.Rat).Add(v.val, other.val)), nil
	}
	if v.val.Cmp(other.val) != 0 {
		return nil, fmt.Errorf("Value.Add: %s + %s: unlike bases: %w", v, other, ErrIncompatiblePower)
	}
	return v.doubled()
}

// SubtractValue returns v - other. Tagged operands must be equal, giving 0.
func (v *Value) SubtractValue(other *Value) (*Value, error) {
	if v.pow.Cmp(other.pow) != 0 {
		return nil, fmt.Errorf("Value.Subtract: %s - %s: %w", v, other, ErrIncompatiblePower)
	}
	if !v.HasPower() {
		return ratValue(new(big.Rat).Sub(v.val, other.val)), nil
	}
	if v.val.Cmp(other.val) != 0 {
		return nil, fmt.Errorf("Value.Subtract: %s - %s: unlike bases: %w", v, other, ErrIncompatiblePower)
	}
	return N(0), nil
}

// doubled folds the coefficient under the tag: 2*a^(m/n) = (2^n * a^m)^(1/n).
func (v *Value) doubled() (*Value, error) {
	m, n := v.pow.Num(), v.pow.Denom()
	if !m.IsInt64() || !n.IsInt64() || n.Int64() > maxResolvedExponent ||
		m.Int64() > maxResolvedExponent || m.Int64() < -maxResolvedExponent {
		return nil, fmt.Errorf("Value.Add: %s + %s: %w", v, v, ErrIncompatiblePower)
	}
	two, err := powered(big.NewRat(2, 1), new(big.Rat).SetInt(n))
	if err != nil {
		return nil, err
	}
	base, err := powered(v.val, new(big.Rat).SetInt(m))
	if err != nil {
		return nil, err
	}
	return powered(new(big.Rat).Mul(two.val, base.val), big.NewRat(1, n.Int64()))
}

// MultiplyValue returns v * other; both must carry the same power tag.
func (v *Value) MultiplyValue(other *Value) (*Value, error) {
	if v.pow.Cmp(other.pow) != 0 {
		return nil, fmt.Errorf("Value.Multiply: %s * %s: %w", v, other, ErrIncompatiblePower)
	}
	return &Value{val: new(big.Rat).Mul(v.val, other.val), pow: v.pow}, nil
}

// DivideValue returns v / other; both must carry the same power tag.
func (v *Value) DivideValue(other *Value) (*Value, error) {
	if other.val.Sign() == 0 {
		return nil, fmt.Errorf("Value.Divide: %s / 0: %w", v, ErrDivideByZero)
	}
	if v.pow.Cmp(other.pow) != 0 {
		return nil, fmt.Errorf("Value.Divide: %s / %s: %w", v, other, ErrIncompatiblePower)
	}
	return &Value{val: new(big.Rat).Quo(v.val, other.val), pow: v.pow}, nil
}

// PowValue raises v to the rational exponent e.
func (v *Value) PowValue(e *Value) (*Value, error) {
	if e.HasPower() {
		return nil, fmt.Errorf("Value.Pow: exponent %s: %w", e, ErrTypeMismatch)
	}
	return powered(v.val, new(big.Rat).Mul(v.pow, e.val))
}

// mulScalar multiplies coefficients, letting a unit side absorb a power tag.
func mulScalar(a, b *Value) (*Value, error) {
	switch {
	case a.IsOne():
		return b, nil
	case b.IsOne():
		return a, nil
	}
	return a.MultiplyValue(b)
}

func (v *Value) negated() *Value {
	return &Value{val: new(big.Rat).Neg(v.val), pow: v.pow}
}

// ============================================================
// Symbol implementation
// ============================================================

func (v *Value) String() string      { return Format(v) }
func (v *Value) Scalar() *Value      { return v }
func (v *Value) ClearScalar() Symbol { return N(1) }
func (v *Value) Power() *Value       { return ratValue(v.pow) }
func (v *Value) IsZero() bool        { return v.val.Sign() == 0 }
func (v *Value) IsOne() bool         { return !v.HasPower() && v.val.Cmp(ratOne) == 0 }
func (v *Value) IsNegativeOne() bool { return !v.HasPower() && v.val.Cmp(ratNegOne) == 0 }
func (v *Value) IsNegative() bool    { return !v.HasPower() && v.val.Sign() < 0 }
func (v *Value) IsTrig() bool        { return false }

var ratNegOne = big.NewRat(-1, 1)

func (v *Value) ClearPower() Symbol {
	if !v.HasPower() {
		return v
	}
	return ratValue(v.val)
}

func (v *Value) MultiplyScalar(scalar *Value) (Symbol, error) {
	return valueResult(mulScalar(v, scalar))
}

func (v *Value) AddPower(power *Value) (Symbol, error) {
	if power.HasPower() {
		return nil, fmt.Errorf("Value.AddPower: %s: %w", power, ErrTypeMismatch)
	}
	return valueResult(powered(v.val, new(big.Rat).Add(v.pow, power.val)))
}

func (v *Value) MultiplyPower(power *Value) (Symbol, error) {
	return valueResult(v.PowValue(power))
}

func (v *Value) Invert() (Symbol, error) {
	if v.IsZero() {
		return nil, fmt.Errorf("Value.Invert: %w", ErrDivideByZero)
	}
	return &Value{val: new(big.Rat).Inv(v.val), pow: v.pow}, nil
}

func (v *Value) Add(other Symbol) (Symbol, error)      { return Add(v, other) }
func (v *Value) Subtract(other Symbol) (Symbol, error) { return Subtract(v, other) }
func (v *Value) Multiply(other Symbol) (Symbol, error) { return Multiply(v, other) }
func (v *Value) Divide(other Symbol) (Symbol, error)   { return Divide(v, other) }

func (v *Value) Equal(other Symbol) bool {
	o, ok := other.(*Value)
	return ok && v.val.Cmp(o.val) == 0 && v.pow.Cmp(o.pow) == 0
}

func (v *Value) ScalarsAdd(other Symbol) bool {
	o, ok := other.(*Value)
	if !ok || v.pow.Cmp(o.pow) != 0 {
		return false
	}
	return !v.HasPower() || v.val.Cmp(o.val) == 0
}

func (v *Value) PowersAdd(other Symbol) bool {
	o, ok := other.(*Value)
	return ok && v.val.Cmp(o.val) == 0
}

func (v *Value) Eval() (float64, bool) {
	f := v.Float64()
	if v.HasPower() {
		p, _ := v.pow.Float64()
		f = math.Pow(f, p)
	}
	return f, true
}

func (v *Value) sortsProduct(Symbol) bool { return false }

func (v *Value) render(r *renderer) {
	r.writeRat(v.val)
	if v.HasPower() {
		r.WriteString("^")
		r.writeRat(v.pow)
	}
}

func (v *Value) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "value", "value": v.val.RatString()}
	if v.HasPower() {
		m["power"] = v.pow.RatString()
	}
	return m
}
