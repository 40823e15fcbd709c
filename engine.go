package symbolic

import (
	"fmt"
	"sort"
)

// ============================================================
// Combinators
// ============================================================

// Add returns the canonical form of left + right.
func Add(left, right Symbol) (Symbol, error) {
	if right.IsZero() {
		return left, nil
	}
	if left.IsZero() {
		return right, nil
	}
	lv, lok := left.(*Value)
	rv, rok := right.(*Value)
	if lok && rok {
		return valueResult(lv.AddValue(rv))
	}
	if left.ScalarsAdd(right) {
		return combineScalars(left, right)
	}
	return collectSum([]Symbol{left, right})
}

// Subtract returns the canonical form of left - right.
func Subtract(left, right Symbol) (Symbol, error) {
	if right.IsZero() {
		return left, nil
	}
	if left.IsZero() {
		return Negate(right)
	}
	lv, lok := left.(*Value)
	rv, rok := right.(*Value)
	if lok && rok {
		return valueResult(lv.SubtractValue(rv))
	}
	neg, err := Negate(right)
	if err != nil {
		return nil, err
	}
	return Add(left, neg)
}

// Multiply returns the canonical form of left * right. Products of sums
// with a unit power are distributed; equal bases combine their powers.
func Multiply(left, right Symbol) (Symbol, error) {
	if left.IsZero() || right.IsZero() {
		return N(0), nil
	}
	if left.IsOne() {
		return right, nil
	}
	if right.IsOne() {
		return left, nil
	}
	if left.IsNegativeOne() {
		return Negate(right)
	}
	if right.IsNegativeOne() {
		return Negate(left)
	}
	lv, lok := left.(*Value)
	rv, rok := right.(*Value)
	switch {
	case lok && rok:
		return valueResult(lv.MultiplyValue(rv))
	case lok:
		return right.MultiplyScalar(lv)
	case rok:
		return left.MultiplyScalar(rv)
	}
	if left.PowersAdd(right) {
		return combinePowers(left, right)
	}
	if isSumChain(left) || isSumChain(right) {
		if sharesBase(left, right) || sharesBase(right, left) {
			return collectProduct([]Symbol{left, right})
		}
		return distribute(left, right)
	}
	return collectProduct([]Symbol{left, right})
}

// sharesBase reports whether sum is a sum chain that merges with one of
// other's factors, e.g. p and x * p^-1.
func sharesBase(sum, other Symbol) bool {
	if !isSumChain(sum) {
		return false
	}
	_, factors := productFactors(other)
	for _, f := range factors {
		if f.PowersAdd(sum) {
			return true
		}
	}
	return false
}

// Divide returns the canonical form of left / right.
func Divide(left, right Symbol) (Symbol, error) {
	if right.IsZero() {
		return nil, fmt.Errorf("Divide: %s / %s: %w", left, right, ErrDivideByZero)
	}
	if left.IsZero() {
		return N(0), nil
	}
	if right.IsOne() {
		return left, nil
	}
	lv, lok := left.(*Value)
	rv, rok := right.(*Value)
	if lok && rok {
		return valueResult(lv.DivideValue(rv))
	}
	inv, err := right.Invert()
	if err != nil {
		return nil, err
	}
	return Multiply(left, inv)
}

// Pow raises base to exponent, which must be a plain rational value.
// Sums keep the exponent as their power; products distribute it.
func Pow(base, exponent Symbol) (Symbol, error) {
	e, ok := exponent.(*Value)
	if !ok || e.HasPower() {
		return nil, fmt.Errorf("Pow: exponent %s: %w", exponent, ErrTypeMismatch)
	}
	if e.IsZero() {
		return N(1), nil
	}
	if e.IsOne() {
		return base, nil
	}
	if b, ok := base.(*Value); ok {
		return valueResult(b.PowValue(e))
	}
	scalar, err := base.Scalar().PowValue(e)
	if err != nil {
		return nil, err
	}
	raised, err := base.ClearScalar().MultiplyPower(e)
	if err != nil {
		return nil, err
	}
	return raised.MultiplyScalar(scalar)
}

// PowInt is Pow with an integer exponent.
func PowInt(base Symbol, n int64) (Symbol, error) { return Pow(base, N(n)) }

// Negate returns -s.
func Negate(s Symbol) (Symbol, error) { return s.MultiplyScalar(N(-1)) }

func valueResult(v *Value, err error) (Symbol, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func isSumChain(s Symbol) bool {
	e, ok := s.(*Expression)
	return ok && e.isSumChain()
}

// ============================================================
// Term collection
// ============================================================

// Collected is a sequence of buckets of mutually combinable terms.
type Collected [][]Symbol

// collect buckets items in first-appearance order. Sums bucket on
// ScalarsAdd; products on PowersAdd or when both factors are trig.
func collect(op Op, items []Symbol) Collected {
	var groups Collected
	for _, item := range items {
		placed := false
		for i, g := range groups {
			front := g[0]
			var joins bool
			if op.isSum() {
				joins = front.ScalarsAdd(item)
			} else {
				joins = front.PowersAdd(item) || front.sortsProduct(item)
			}
			if joins {
				groups[i] = append(g, item)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []Symbol{item})
		}
	}
	return groups
}

func sumTerms(s Symbol) ([]Symbol, error) {
	if e, ok := s.(*Expression); ok && e.isSumChain() {
		return e.sumTerms()
	}
	return []Symbol{s}, nil
}

func termsOf(s Symbol, op Op) ([]Symbol, error) {
	if e, ok := s.(*Expression); ok {
		return e.Terms(op)
	}
	if op.isSum() || s.Scalar().IsOne() {
		return []Symbol{s}, nil
	}
	if _, ok := s.(*Value); ok {
		return []Symbol{s}, nil
	}
	return []Symbol{s.Scalar(), s.ClearScalar()}, nil
}

// productFactors splits s into its coefficient and its factors.
func productFactors(s Symbol) (*Value, []Symbol) {
	if v, ok := s.(*Value); ok {
		return v, nil
	}
	e, ok := s.(*Expression)
	if !ok || !e.isProduct() {
		return s.Scalar(), []Symbol{s.ClearScalar()}
	}
	return e.scalar, append(chainFactors(e.left), chainFactors(e.right)...)
}

func chainFactors(s Symbol) []Symbol {
	if e, ok := s.(*Expression); ok && e.isProduct() && e.scalar.IsOne() && e.power.IsOne() {
		return append(chainFactors(e.left), chainFactors(e.right)...)
	}
	return []Symbol{s}
}

func combineScalars(left, right Symbol) (Symbol, error) {
	total, err := left.Scalar().AddValue(right.Scalar())
	if err != nil {
		return nil, err
	}
	if total.IsZero() {
		return N(0), nil
	}
	return left.ClearScalar().MultiplyScalar(total)
}

func combinePowers(left, right Symbol) (Symbol, error) {
	scalar, err := mulScalar(left.Scalar(), right.Scalar())
	if err != nil {
		return nil, err
	}
	power, err := left.Power().AddValue(right.Power())
	if err != nil {
		return nil, err
	}
	if power.IsZero() {
		return scalar, nil
	}
	raised, err := left.ClearScalar().ClearPower().MultiplyPower(power)
	if err != nil {
		return nil, err
	}
	return raised.MultiplyScalar(scalar)
}

func distribute(left, right Symbol) (Symbol, error) {
	lt, err := sumTerms(left)
	if err != nil {
		return nil, err
	}
	rt, err := sumTerms(right)
	if err != nil {
		return nil, err
	}
	products := make([]Symbol, 0, len(lt)*len(rt))
	for _, a := range lt {
		for _, b := range rt {
			p, err := Multiply(a, b)
			if err != nil {
				return nil, err
			}
			products = append(products, p)
		}
	}
	return collectSum(products)
}

// collectSum flattens items into signed terms, folds each bucket and
// chains the totals with non-negative terms first.
func collectSum(items []Symbol) (Symbol, error) {
	var terms []Symbol
	for _, item := range items {
		t, err := sumTerms(item)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t...)
	}
	var positive, negative []Symbol
	for _, g := range collect(OpAdd, terms) {
		total := g[0]
		if len(g) > 1 {
			sum := g[0].Scalar()
			for _, t := range g[1:] {
				var err error
				if sum, err = sum.AddValue(t.Scalar()); err != nil {
					return nil, err
				}
			}
			if sum.IsZero() {
				continue
			}
			var err error
			if total, err = g[0].ClearScalar().MultiplyScalar(sum); err != nil {
				return nil, err
			}
		}
		if total.IsZero() {
			continue
		}
		if total.IsNegative() {
			negative = append(negative, total)
		} else {
			positive = append(positive, total)
		}
	}
	return buildSum(append(positive, negative...))
}

func buildSum(terms []Symbol) (Symbol, error) {
	switch len(terms) {
	case 0:
		return N(0), nil
	case 1:
		return terms[0], nil
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		op := OpAdd
		if t.IsNegative() {
			neg, err := Negate(t)
			if err != nil {
				return nil, err
			}
			op, t = OpSubtract, neg
		}
		acc = newNode(op, acc, t)
	}
	return acc, nil
}

// collectProduct hoists every coefficient, merges equal bases and orders
// the remaining factors canonically.
func collectProduct(items []Symbol) (Symbol, error) {
	scalar := N(1)
	var factors []Symbol
	for _, item := range items {
		s, fs := productFactors(item)
		var err error
		if scalar, err = mulScalar(scalar, s); err != nil {
			return nil, err
		}
		factors = append(factors, fs...)
	}
	var merged []Symbol
	for _, g := range collect(OpMultiply, factors) {
		if g[0].sortsProduct(g[0]) {
			sort.SliceStable(g, func(i, j int) bool { return Less(g[i], g[j]) })
		}
		var run []Symbol
		for _, f := range g {
			n := len(run)
			if n == 0 || !run[n-1].PowersAdd(f) {
				run = append(run, f)
				continue
			}
			c, err := combinePowers(run[n-1], f)
			if err != nil {
				return nil, err
			}
			if v, ok := c.(*Value); ok {
				if scalar, err = mulScalar(scalar, v); err != nil {
					return nil, err
				}
				run = run[:n-1]
				continue
			}
			run[n-1] = c
		}
		merged = append(merged, run...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return Less(merged[i], merged[j]) })
	return buildProduct(scalar, merged)
}

func buildProduct(scalar *Value, factors []Symbol) (Symbol, error) {
	if scalar.IsZero() {
		return N(0), nil
	}
	for _, f := range factors {
		if !isSumChain(f) {
			continue
		}
		var acc Symbol = scalar
		for _, g := range factors {
			var err error
			if acc, err = Multiply(acc, g); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}
	switch len(factors) {
	case 0:
		return scalar, nil
	case 1:
		return factors[0].MultiplyScalar(scalar)
	}
	acc := newNode(OpMultiply, factors[0], factors[1])
	for _, f := range factors[2:] {
		acc = newNode(OpMultiply, acc, f)
	}
	if scalar.IsOne() {
		return acc, nil
	}
	return acc.with(scalar, N(1)), nil
}
