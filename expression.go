package symbolic

import (
	"fmt"
	"math"
)

// ============================================================
// Op
// ============================================================

type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
)

var opNames = [...]string{"add", "subtract", "multiply", "divide"}
var opSymbols = [...]string{"+", "-", "*", "/"}

func (o Op) String() string {
	if o < OpAdd || o > OpDivide {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp accepts an operator name ("add") or symbol ("+").
func ParseOp(s string) (Op, error) {
	for i := range opNames {
		if opNames[i] == s || opSymbols[i] == s {
			return Op(i), nil
		}
	}
	return OpAdd, fmt.Errorf("ParseOp(%q): %w", s, ErrTypeMismatch)
}

func (o Op) isSum() bool { return o == OpAdd || o == OpSubtract }

func (o Op) precedence() int {
	if o.isSum() {
		return 1
	}
	return 2
}

func (o Op) flipped() Op {
	switch o {
	case OpAdd:
		return OpSubtract
	case OpSubtract:
		return OpAdd
	}
	return o
}

// ============================================================
// Expression — binary operator node
// ============================================================

// Expression is a compound node with a hoisted scalar and power.
//
// Sums are left-leaning chains of add/subtract nodes whose right child is
// never negative. A sum carries a scalar only together with a non-unit
// power, e.g. 3(x + 2)^2. Products are left-leaning chains of multiply nodes
// with the whole coefficient on the top node and powers on the factors.
type Expression struct {
	op     Op
	left   Symbol
	right  Symbol
	scalar *Value
	power  *Value
}

func newNode(op Op, left, right Symbol) *Expression {
	return &Expression{op: op, left: left, right: right, scalar: N(1), power: N(1)}
}

func (e *Expression) with(scalar, power *Value) *Expression {
	return &Expression{op: e.op, left: e.left, right: e.right, scalar: scalar, power: power}
}

func (e *Expression) Op() Op        { return e.op }
func (e *Expression) Left() Symbol  { return e.left }
func (e *Expression) Right() Symbol { return e.right }

func (e *Expression) isSumChain() bool {
	return e.op.isSum() && e.power.IsOne() && e.scalar.IsOne()
}

func (e *Expression) isProduct() bool { return !e.op.isSum() }

func (e *Expression) insideEqual(o *Expression) bool {
	return e.op == o.op && e.left.Equal(o.left) && e.right.Equal(o.right)
}

// rebuilt returns the node with a new scalar and power, keeping sums
// with a unit power free of coefficients.
func (e *Expression) rebuilt(scalar, power *Value) (Symbol, error) {
	if scalar.IsZero() {
		return N(0), nil
	}
	if power.IsZero() {
		return scalar, nil
	}
	if e.op.isSum() && power.IsOne() && !scalar.IsOne() {
		return e.with(N(1), power).MultiplyScalar(scalar)
	}
	return e.with(scalar, power), nil
}

// ============================================================
// Symbol implementation
// ============================================================

func (e *Expression) String() string { return Format(e) }
func (e *Expression) Scalar() *Value { return e.scalar }
func (e *Expression) Power() *Value  { return e.power }

func (e *Expression) ClearScalar() Symbol {
	if e.scalar.IsOne() {
		return e
	}
	return e.with(N(1), e.power)
}

func (e *Expression) ClearPower() Symbol {
	if e.power.IsOne() {
		return e
	}
	return e.with(e.scalar, N(1))
}

func (e *Expression) MultiplyScalar(scalar *Value) (Symbol, error) {
	if scalar.IsZero() {
		return N(0), nil
	}
	if scalar.IsOne() {
		return e, nil
	}
	if e.isSumChain() {
		terms, err := e.sumTerms()
		if err != nil {
			return nil, err
		}
		for i, t := range terms {
			if terms[i], err = t.MultiplyScalar(scalar); err != nil {
				return nil, err
			}
		}
		return collectSum(terms)
	}
	product, err := mulScalar(e.scalar, scalar)
	if err != nil {
		return nil, err
	}
	return e.rebuilt(product, e.power)
}

func (e *Expression) AddPower(power *Value) (Symbol, error) {
	if power.HasPower() {
		return nil, fmt.Errorf("Expression.AddPower: %s: %w", power, ErrTypeMismatch)
	}
	if e.isProduct() {
		raised, err := Pow(e.ClearScalar(), power)
		if err != nil {
			return nil, err
		}
		return Multiply(e, raised)
	}
	sum, err := e.power.AddValue(power)
	if err != nil {
		return nil, err
	}
	return e.rebuilt(e.scalar, sum)
}

func (e *Expression) MultiplyPower(power *Value) (Symbol, error) {
	if power.HasPower() {
		return nil, fmt.Errorf("Expression.MultiplyPower: %s: %w", power, ErrTypeMismatch)
	}
	if e.isProduct() {
		_, factors := productFactors(e)
		var acc Symbol = e.scalar
		for _, f := range factors {
			raised, err := f.MultiplyPower(power)
			if err != nil {
				return nil, err
			}
			if acc, err = Multiply(acc, raised); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
	product, err := e.power.MultiplyValue(power)
	if err != nil {
		return nil, err
	}
	return e.rebuilt(e.scalar, product)
}

func (e *Expression) Invert() (Symbol, error) {
	inv, err := e.scalar.Invert()
	if err != nil {
		return nil, err
	}
	if !e.isProduct() {
		return e.rebuilt(inv.(*Value), e.power.negated())
	}
	_, factors := productFactors(e)
	acc := inv
	for _, f := range factors {
		fi, err := f.Invert()
		if err != nil {
			return nil, err
		}
		if acc, err = Multiply(acc, fi); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (e *Expression) Add(other Symbol) (Symbol, error)      { return Add(e, other) }
func (e *Expression) Subtract(other Symbol) (Symbol, error) { return Subtract(e, other) }
func (e *Expression) Multiply(other Symbol) (Symbol, error) { return Multiply(e, other) }
func (e *Expression) Divide(other Symbol) (Symbol, error)   { return Divide(e, other) }

func (e *Expression) Equal(other Symbol) bool {
	o, ok := other.(*Expression)
	return ok && e.insideEqual(o) && e.scalar.Equal(o.scalar) && e.power.Equal(o.power)
}

func (e *Expression) IsOne() bool         { return e.power.IsZero() && e.scalar.IsOne() }
func (e *Expression) IsNegativeOne() bool { return e.power.IsZero() && e.scalar.IsNegativeOne() }
func (e *Expression) IsNegative() bool    { return e.scalar.IsNegative() }
func (e *Expression) IsTrig() bool        { return e.left.IsTrig() && e.right.IsTrig() }

// IsZero also holds when every argument is bound and the node evaluates to 0.
func (e *Expression) IsZero() bool {
	if v, ok := e.Eval(); ok {
		return math.Abs(v) < evalEpsilon
	}
	return e.scalar.IsZero()
}

func (e *Expression) ScalarsAdd(other Symbol) bool {
	o, ok := other.(*Expression)
	return ok && e.insideEqual(o) && e.power.Equal(o.power)
}

// PowersAdd holds for equal sums only; products merge factor by factor.
func (e *Expression) PowersAdd(other Symbol) bool {
	o, ok := other.(*Expression)
	return ok && e.op.isSum() && e.insideEqual(o)
}

func (e *Expression) sortsProduct(Symbol) bool { return false }

func (e *Expression) Eval() (float64, bool) {
	l, ok := e.left.Eval()
	if !ok {
		return 0, false
	}
	r, ok := e.right.Eval()
	if !ok {
		return 0, false
	}
	var v float64
	switch e.op {
	case OpAdd:
		v = l + r
	case OpSubtract:
		v = l - r
	case OpMultiply:
		v = l * r
	case OpDivide:
		v = l / r
	}
	if !e.power.IsOne() {
		v = math.Pow(v, e.power.Float64())
	}
	s, _ := e.scalar.Eval()
	return s * v, true
}

// Terms flattens the receiver's chain for op: signed terms for add and
// subtract, factors (led by a non-unit coefficient) for multiply and divide.
func (e *Expression) Terms(op Op) ([]Symbol, error) {
	if op.isSum() {
		if !e.isSumChain() {
			return []Symbol{e}, nil
		}
		return e.sumTerms()
	}
	scalar, factors := productFactors(e)
	if scalar.IsOne() {
		return factors, nil
	}
	return append([]Symbol{scalar}, factors...), nil
}

// CollectTerms merges other's chain into the receiver's and groups the
// combined terms into buckets that combine under op.
func (e *Expression) CollectTerms(op Op, other Symbol) (Collected, error) {
	terms, err := e.Terms(op)
	if err != nil {
		return nil, err
	}
	more, err := termsOf(other, op)
	if err != nil {
		return nil, err
	}
	return collect(op, append(terms, more...)), nil
}

func (e *Expression) sumTerms() ([]Symbol, error) {
	terms, err := sumTerms(e.left)
	if err != nil {
		return nil, err
	}
	right, err := sumTerms(e.right)
	if err != nil {
		return nil, err
	}
	if e.op == OpSubtract {
		for i, t := range right {
			if right[i], err = Negate(t); err != nil {
				return nil, err
			}
		}
	}
	return append(terms, right...), nil
}

func (e *Expression) render(r *renderer) {
	wrap := !e.scalar.IsOne() || !e.power.IsOne()
	if wrap {
		switch {
		case e.scalar.IsNegativeOne():
			r.WriteString("-(")
		case e.scalar.IsOne():
			r.WriteString("(")
		default:
			e.scalar.render(r)
			r.WriteString("(")
		}
	}
	r.child(e.op, e.left)
	op, right := e.op, e.right
	if op.isSum() && right.IsNegative() {
		if neg, err := Negate(right); err == nil {
			op, right = op.flipped(), neg
		}
	}
	r.WriteString(r.opString(op))
	r.child(e.op, right)
	if wrap {
		r.WriteString(")")
		if !e.power.IsOne() {
			r.WriteString("^")
			e.power.render(r)
		}
	}
}

func (e *Expression) toJSON() map[string]interface{} {
	m := map[string]interface{}{
		"type":  "expr",
		"op":    e.op.String(),
		"left":  e.left.toJSON(),
		"right": e.right.toJSON(),
	}
	if !e.scalar.IsOne() {
		m["scalar"] = e.scalar.toJSON()
	}
	if !e.power.IsOne() {
		m["power"] = e.power.val.RatString()
	}
	return m
}
