// Package symbolic is an exact symbolic algebra kernel.
//
// Expressions are built from rational values, named variables and
// trigonometric applications, and combined with Add, Subtract, Multiply,
// Divide and Pow. Every combinator returns a canonical tree, so structural
// equality doubles as algebraic equality for the shapes the kernel produces.
// Trees are immutable and share unchanged sub-trees; the only mutable state
// is the value bound to an Arg.
//
// The kernel is single-threaded: a Registry and the values bound to its Args
// must not be used from several goroutines at once.
package symbolic

// ============================================================
// Core Interface
// ============================================================

// Symbol is a node of an expression tree: *Value, *Named or *Expression.
type Symbol interface {
	String() string

	Scalar() *Value
	ClearScalar() Symbol
	Power() *Value
	ClearPower() Symbol
	MultiplyScalar(scalar *Value) (Symbol, error)
	AddPower(power *Value) (Symbol, error)
	MultiplyPower(power *Value) (Symbol, error)
	Invert() (Symbol, error)

	Add(other Symbol) (Symbol, error)
	Subtract(other Symbol) (Symbol, error)
	Multiply(other Symbol) (Symbol, error)
	Divide(other Symbol) (Symbol, error)

	Equal(other Symbol) bool
	IsZero() bool
	IsOne() bool
	IsNegativeOne() bool
	IsNegative() bool
	IsTrig() bool

	// ScalarsAdd reports whether other merges with the receiver under
	// addition: same base and same power.
	ScalarsAdd(other Symbol) bool
	// PowersAdd reports whether other merges with the receiver under
	// multiplication: same base, powers may differ.
	PowersAdd(other Symbol) bool

	Eval() (float64, bool)

	sortsProduct(other Symbol) bool
	render(r *renderer)
	toJSON() map[string]interface{}
}

// Must panics if err is non-nil and returns s otherwise.
func Must(s Symbol, err error) Symbol {
	if err != nil {
		panic(err)
	}
	return s
}
