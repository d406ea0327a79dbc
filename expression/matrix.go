package expression

import (
	"fmt"
	"strings"
)

// Matrix is a dense 2-D value grid with a display name. The grid is copied
// on construction and never mutated; renaming builds a new node.
type Matrix struct {
	values [][]float64
	name   string
}

// NewMatrix creates a Matrix from a row-major grid. Rows are copied.
func NewMatrix(name string, values [][]float64) *Matrix {
	copied := make([][]float64, len(values))
	for i, row := range values {
		copied[i] = make([]float64, len(row))
		copy(copied[i], row)
	}
	return &Matrix{values: copied, name: name}
}

// WithName returns a copy of the matrix under a different display name.
func (m *Matrix) WithName(name string) *Matrix {
	return &Matrix{values: m.values, name: name}
}

// Name returns the display name.
func (m *Matrix) Name() string {
	return m.name
}

// Rows returns the row count.
func (m *Matrix) Rows() int {
	return len(m.values)
}

// Columns returns the column count.
func (m *Matrix) Columns() int {
	if len(m.values) == 0 {
		return 0
	}
	return len(m.values[0])
}

// At returns the value at row r, column c.
func (m *Matrix) At(r, c int) float64 {
	return m.values[r][c]
}

// Values returns a deep copy of the grid.
func (m *Matrix) Values() [][]float64 {
	copied := make([][]float64, len(m.values))
	for i, row := range m.values {
		copied[i] = make([]float64, len(row))
		copy(copied[i], row)
	}
	return copied
}

func (m *Matrix) Evaluate() (float64, error) {
	return 0, fmt.Errorf("%w: a matrix has no scalar value", ErrUnsupportedOperation)
}

func (m *Matrix) EvaluateWith(map[string]float64) (float64, error) {
	return 0, fmt.Errorf("%w: a matrix has no scalar value", ErrUnsupportedOperation)
}

func (m *Matrix) ToDisplayText() string {
	if m.name != "" {
		return m.name
	}
	rows := make([]string, len(m.values))
	for i, row := range m.values {
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = FormatNumber(value)
		}
		rows[i] = strings.Join(cells, " ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}

func (m *Matrix) ToLatex() string {
	rows := make([]string, len(m.values))
	for i, row := range m.values {
		cells := make([]string, len(row))
		for j, value := range row {
			cells[j] = FormatNumber(value)
		}
		rows[i] = strings.Join(cells, " & ")
	}
	return "\\begin{bmatrix}" + strings.Join(rows, " \\\\ ") + "\\end{bmatrix}"
}

func (m *Matrix) Precedence() int {
	return PrecedenceAtom
}

func (m *Matrix) Accept(v Visitor) any {
	return v.VisitMatrix(m)
}
