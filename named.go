package symbolic

import (
	"fmt"
	"math"
)

// ============================================================
// Kind — variable or trig function
// ============================================================

type Kind int

const (
	Variable Kind = iota
	Sin
	Cos
	Tan
	Sec
	Csc
	Cot
)

var kindNames = [...]string{"var", "sin", "cos", "tan", "sec", "csc", "cot"}

// kindAbbrev is used by compact rendering.
var kindAbbrev = [...]string{"", "s", "c", "t", "sc", "cs", "ct"}

func (k Kind) String() string {
	if k < Variable || k > Cot {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) IsTrig() bool { return k >= Sin && k <= Cot }

// ParseKind maps "var" and the six trig names to a Kind.
func ParseKind(name string) (Kind, error) {
	for i, s := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return Variable, fmt.Errorf("ParseKind(%q): %w", name, ErrUnknownFunction)
}

func (k Kind) apply(x float64) float64 {
	switch k {
	case Sin:
		return math.Sin(x)
	case Cos:
		return math.Cos(x)
	case Tan:
		return math.Tan(x)
	case Sec:
		return 1 / math.Cos(x)
	case Csc:
		return 1 / math.Sin(x)
	case Cot:
		return math.Cos(x) / math.Sin(x)
	}
	return x
}

// evalEpsilon is the tolerance for numeric zero/one checks on bound symbols.
const evalEpsilon = 1e-9

// ============================================================
// Named — variable or trig application bound to an Arg
// ============================================================

type Named struct {
	kind   Kind
	arg    *Arg
	scalar *Value
	power  *Value
}

func newNamed(kind Kind, arg *Arg) *Named {
	return &Named{kind: kind, arg: arg, scalar: N(1), power: N(1)}
}

func (n *Named) with(scalar, power *Value) *Named {
	return &Named{kind: n.kind, arg: n.arg, scalar: scalar, power: power}
}

// Var returns the plain variable name.
func (r *Registry) Var(name string) *Named { return newNamed(Variable, r.Get(name)) }

// Trig returns kind applied to the argument arg. Variable yields a plain variable.
func (r *Registry) Trig(kind Kind, arg string) *Named { return newNamed(kind, r.Get(arg)) }

// Func returns the trig function called name applied to arg.
func (r *Registry) Func(name, arg string) (*Named, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	if !k.IsTrig() {
		return nil, fmt.Errorf("Func(%q): %w", name, ErrUnknownFunction)
	}
	return r.Trig(k, arg), nil
}

func (r *Registry) SinOf(arg string) *Named { return r.Trig(Sin, arg) }
func (r *Registry) CosOf(arg string) *Named { return r.Trig(Cos, arg) }
func (r *Registry) TanOf(arg string) *Named { return r.Trig(Tan, arg) }
func (r *Registry) SecOf(arg string) *Named { return r.Trig(Sec, arg) }
func (r *Registry) CscOf(arg string) *Named { return r.Trig(Csc, arg) }
func (r *Registry) CotOf(arg string) *Named { return r.Trig(Cot, arg) }

// S returns a variable interned in the Default registry.
func S(name string) *Named { return Default.Var(name) }

func SinOf(arg string) *Named { return Default.SinOf(arg) }
func CosOf(arg string) *Named { return Default.CosOf(arg) }
func TanOf(arg string) *Named { return Default.TanOf(arg) }
func SecOf(arg string) *Named { return Default.SecOf(arg) }
func CscOf(arg string) *Named { return Default.CscOf(arg) }
func CotOf(arg string) *Named { return Default.CotOf(arg) }

func (n *Named) Kind() Kind { return n.kind }
func (n *Named) Arg() *Arg  { return n.arg }

// Name is the base name without coefficient or power: "x" or "cos(alpha)".
func (n *Named) Name() string {
	if n.kind.IsTrig() {
		return n.kind.String() + "(" + n.arg.name + ")"
	}
	return n.arg.name
}

func (n *Named) sameBase(o *Named) bool { return n.arg == o.arg && n.kind == o.kind }

// ============================================================
// Symbol implementation
// ============================================================

func (n *Named) String() string { return Format(n) }
func (n *Named) Scalar() *Value { return n.scalar }
func (n *Named) Power() *Value  { return n.power }
func (n *Named) IsTrig() bool   { return n.kind.IsTrig() }

func (n *Named) ClearScalar() Symbol {
	if n.scalar.IsOne() {
		return n
	}
	return n.with(N(1), n.power)
}

func (n *Named) ClearPower() Symbol {
	if n.power.IsOne() {
		return n
	}
	return n.with(n.scalar, N(1))
}

func (n *Named) MultiplyScalar(scalar *Value) (Symbol, error) {
	product, err := mulScalar(n.scalar, scalar)
	if err != nil {
		return nil, err
	}
	if product.IsZero() {
		return N(0), nil
	}
	return n.with(product, n.power), nil
}

func (n *Named) AddPower(power *Value) (Symbol, error) {
	if power.HasPower() {
		return nil, fmt.Errorf("Named.AddPower: %s: %w", power, ErrTypeMismatch)
	}
	sum, err := n.power.AddValue(power)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return n.scalar, nil
	}
	return n.with(n.scalar, sum), nil
}

func (n *Named) MultiplyPower(power *Value) (Symbol, error) {
	if power.HasPower() {
		return nil, fmt.Errorf("Named.MultiplyPower: %s: %w", power, ErrTypeMismatch)
	}
	product, err := n.power.MultiplyValue(power)
	if err != nil {
		return nil, err
	}
	if product.IsZero() {
		return n.scalar, nil
	}
	return n.with(n.scalar, product), nil
}

func (n *Named) Invert() (Symbol, error) {
	inv, err := n.scalar.Invert()
	if err != nil {
		return nil, err
	}
	return n.with(inv.(*Value), n.power.negated()), nil
}

func (n *Named) Add(other Symbol) (Symbol, error)      { return Add(n, other) }
func (n *Named) Subtract(other Symbol) (Symbol, error) { return Subtract(n, other) }
func (n *Named) Multiply(other Symbol) (Symbol, error) { return Multiply(n, other) }
func (n *Named) Divide(other Symbol) (Symbol, error)   { return Divide(n, other) }

func (n *Named) Equal(other Symbol) bool {
	o, ok := other.(*Named)
	return ok && n.sameBase(o) && n.scalar.Equal(o.scalar) && n.power.Equal(o.power)
}

// Eval returns scalar * f(arg)^power when the argument is bound.
func (n *Named) Eval() (float64, bool) {
	x, ok := n.arg.Value()
	if !ok {
		return 0, false
	}
	f := n.kind.apply(x)
	if !n.power.IsOne() {
		f = math.Pow(f, n.power.Float64())
	}
	s, _ := n.scalar.Eval()
	return s * f, true
}

func (n *Named) IsZero() bool {
	if v, ok := n.Eval(); ok {
		return math.Abs(v) < evalEpsilon
	}
	return n.scalar.IsZero()
}

func (n *Named) IsOne() bool {
	v, ok := n.Eval()
	return ok && math.Abs(v-1) < evalEpsilon
}

func (n *Named) IsNegativeOne() bool {
	v, ok := n.Eval()
	return ok && math.Abs(v+1) < evalEpsilon
}

func (n *Named) IsNegative() bool {
	if v, ok := n.Eval(); ok {
		return v < 0 && math.Abs(v) >= evalEpsilon
	}
	return n.scalar.IsNegative()
}

func (n *Named) ScalarsAdd(other Symbol) bool {
	o, ok := other.(*Named)
	return ok && n.sameBase(o) && n.power.Equal(o.power)
}

func (n *Named) PowersAdd(other Symbol) bool {
	o, ok := other.(*Named)
	return ok && n.sameBase(o)
}

// sortsProduct is true when both factors are trig applications.
func (n *Named) sortsProduct(other Symbol) bool {
	o, ok := other.(*Named)
	return ok && n.IsTrig() && o.IsTrig()
}

func (n *Named) render(r *renderer) {
	if v, ok := n.Eval(); ok {
		r.writeFloat(v)
		return
	}
	switch {
	case n.scalar.IsNegativeOne():
		r.WriteString("-")
	case !n.scalar.IsOne():
		n.scalar.render(r)
		r.WriteString("*")
	}
	if n.kind.IsTrig() {
		r.WriteString(r.kindName(n.kind))
		if !n.power.IsOne() {
			r.WriteString("^")
			n.power.render(r)
		}
		r.WriteString("(" + n.arg.name + ")")
		return
	}
	r.WriteString(n.arg.name)
	if !n.power.IsOne() {
		r.WriteString("^")
		n.power.render(r)
	}
}

func (n *Named) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "named", "kind": n.kind.String(), "arg": n.arg.name}
	if !n.scalar.IsOne() {
		m["scalar"] = n.scalar.toJSON()
	}
	if !n.power.IsOne() {
		m["power"] = n.power.val.RatString()
	}
	return m
}
