package symbolic

import "errors"

// Sentinel errors. Operations wrap them with context; match with errors.Is.
var (
	// ErrDivideByZero is returned when dividing by, or inverting, an exactly zero value.
	ErrDivideByZero = errors.New("symbolic: divide by zero")

	// ErrIncompatiblePower is returned when two values with different power tags are combined.
	ErrIncompatiblePower = errors.New("symbolic: incompatible power")

	// ErrTypeMismatch is returned when an operation receives the wrong kind of symbol,
	// e.g. an exponent that is not a plain rational value.
	ErrTypeMismatch = errors.New("symbolic: type mismatch")

	// ErrDimensionMismatch is returned by grid operations whose operand shapes disagree.
	ErrDimensionMismatch = errors.New("symbolic: dimension mismatch")

	// ErrOutOfRange indicates a grid row or column index outside its bounds.
	ErrOutOfRange = errors.New("symbolic: index out of range")

	// ErrBadShape is returned when a grid is requested with non-positive dimensions.
	ErrBadShape = errors.New("symbolic: invalid shape")

	// ErrUnknownFunction is returned for a function name that is not a trig kind.
	ErrUnknownFunction = errors.New("symbolic: unknown function")
)
