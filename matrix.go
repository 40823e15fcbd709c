package symbolic

import (
	"fmt"
	"strings"
)

// ============================================================
// Matrix — grid of symbols
// ============================================================

// Matrix is a rows x cols grid of symbols stored row-major. Its arithmetic
// is expressed entirely through the symbol combinators.
type Matrix struct {
	rows, cols int
	data       []Symbol
}

// NewMatrix returns a zero-filled matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewMatrix(%d, %d): %w", rows, cols, ErrBadShape)
	}
	data := make([]Symbol, rows*cols)
	for i := range data {
		data[i] = N(0)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// MatrixFromSlice builds a matrix from row-major entries.
func MatrixFromSlice(rows, cols int, entries []Symbol) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := m.Assign(entries...); err != nil {
		return nil, err
	}
	return m, nil
}

func IdentityMatrix(n int) (*Matrix, error) {
	m, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = N(1)
	}
	return m, nil
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("Matrix(%d, %d) at (%d, %d): %w", m.rows, m.cols, row, col, ErrOutOfRange)
	}
	return row*m.cols + col, nil
}

func (m *Matrix) At(row, col int) (Symbol, error) {
	i, err := m.index(row, col)
	if err != nil {
		return nil, err
	}
	return m.data[i], nil
}

func (m *Matrix) Set(row, col int, s Symbol) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[i] = s
	return nil
}

// Assign replaces every cell from row-major entries.
func (m *Matrix) Assign(entries ...Symbol) error {
	if len(entries) != len(m.data) {
		return fmt.Errorf("Matrix.Assign: %d entries for %dx%d: %w", len(entries), m.rows, m.cols, ErrDimensionMismatch)
	}
	copy(m.data, entries)
	return nil
}

func (m *Matrix) Clone() *Matrix {
	data := make([]Symbol, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if !m.data[i].Equal(other.data[i]) {
			return false
		}
	}
	return true
}

// Map returns a new matrix with fn applied to every cell.
func (m *Matrix) Map(fn func(Symbol) (Symbol, error)) (*Matrix, error) {
	out := m.Clone()
	for i, s := range m.data {
		v, err := fn(s)
		if err != nil {
			return nil, err
		}
		out.data[i] = v
	}
	return out, nil
}

// ============================================================
// Matrix arithmetic
// ============================================================

func (m *Matrix) MatAdd(other *Matrix) (*Matrix, error) { return m.elementwise("MatAdd", other, Add) }
func (m *Matrix) MatSub(other *Matrix) (*Matrix, error) { return m.elementwise("MatSub", other, Subtract) }

func (m *Matrix) elementwise(name string, other *Matrix, op func(a, b Symbol) (Symbol, error)) (*Matrix, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, fmt.Errorf("Matrix.%s: %dx%d and %dx%d: %w", name, m.rows, m.cols, other.rows, other.cols, ErrDimensionMismatch)
	}
	out := m.Clone()
	for i := range m.data {
		v, err := op(m.data[i], other.data[i])
		if err != nil {
			return nil, err
		}
		out.data[i] = v
	}
	return out, nil
}

// MatMul returns m * other; each cell is the running sum of its products.
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("Matrix.MatMul: %dx%d * %dx%d: %w", m.rows, m.cols, other.rows, other.cols, ErrDimensionMismatch)
	}
	out, err := NewMatrix(m.rows, other.cols)
	if err != nil {
		return nil, err
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			cell, err := Multiply(m.data[r*m.cols], other.data[c])
			if err != nil {
				return nil, err
			}
			for i := 1; i < m.cols; i++ {
				p, err := Multiply(m.data[r*m.cols+i], other.data[i*other.cols+c])
				if err != nil {
					return nil, err
				}
				if cell, err = Add(cell, p); err != nil {
					return nil, err
				}
			}
			out.data[r*out.cols+c] = cell
		}
	}
	return out, nil
}

func (m *Matrix) AddScalar(s Symbol) (*Matrix, error) {
	return m.Map(func(v Symbol) (Symbol, error) { return Add(v, s) })
}

func (m *Matrix) SubScalar(s Symbol) (*Matrix, error) {
	return m.Map(func(v Symbol) (Symbol, error) { return Subtract(v, s) })
}

func (m *Matrix) Scale(s Symbol) (*Matrix, error) {
	return m.Map(func(v Symbol) (Symbol, error) { return Multiply(v, s) })
}

func (m *Matrix) DivScalar(s Symbol) (*Matrix, error) {
	return m.Map(func(v Symbol) (Symbol, error) { return Divide(v, s) })
}

func (m *Matrix) Transpose() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, data: make([]Symbol, len(m.data))}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			out.data[c*out.cols+r] = m.data[r*m.cols+c]
		}
	}
	return out
}

// ============================================================
// Matrix rendering
// ============================================================

func (m *Matrix) String() string { return m.Format() }

// Format renders one bracketed line per row with centered cells. Cells share
// one width, or one width per column in compact mode.
func (m *Matrix) Format(opts ...RenderOption) string {
	o := gatherRenderOptions(opts)
	cells := make([]string, len(m.data))
	widths := make([]int, m.cols)
	uniform := 0
	for i, s := range m.data {
		cells[i] = Format(s, opts...)
		w := DisplayWidth(cells[i])
		if c := i % m.cols; w > widths[c] {
			widths[c] = w
		}
		if w > uniform {
			uniform = w
		}
	}
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		b.WriteString("[")
		for c := 0; c < m.cols; c++ {
			w := uniform
			if o.compact {
				w = widths[c]
			}
			b.WriteString(center(cells[r*m.cols+c], w+2))
		}
		b.WriteString("]\n")
	}
	return b.String()
}

func center(text string, width int) string {
	pad := width - DisplayWidth(text)
	if pad <= 0 {
		return text
	}
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}
