// Package matrix provides dense matrix algebra, a text grid format, an
// incremental formula editor, and an infix-to-postfix compiler that turns a
// matrix formula into a replayable operation sequence.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/VrezenStrijder/SharpMath/expression"
)

// Sentinel errors
var (
	ErrNotSquare         = errors.New("matrix is not square")
	ErrDimensionMismatch = errors.New("matrix dimensions do not match")
	ErrNotInvertible     = errors.New("matrix is not invertible")
	ErrNegativePower     = errors.New("matrix power must be non-negative")
	ErrTooLarge          = errors.New("matrix is too large")
	ErrEmptyMatrix       = errors.New("matrix has no values")
)

const epsilon = 1e-10

// MaxDeterminantSize bounds cofactor expansion, which is factorial-time.
const MaxDeterminantSize = 10

// Add returns a + b.
func Add(a, b *expression.Matrix) (*expression.Matrix, error) {
	return elementwise(a, b, "+", func(x, y float64) float64 { return x + y })
}

// Subtract returns a - b.
func Subtract(a, b *expression.Matrix) (*expression.Matrix, error) {
	return elementwise(a, b, "-", func(x, y float64) float64 { return x - y })
}

// Hadamard returns the element-wise product.
func Hadamard(a, b *expression.Matrix) (*expression.Matrix, error) {
	return elementwise(a, b, "∘", func(x, y float64) float64 { return x * y })
}

func elementwise(a, b *expression.Matrix, symbol string, apply func(x, y float64) float64) (*expression.Matrix, error) {
	if a.Rows() != b.Rows() || a.Columns() != b.Columns() {
		return nil, fmt.Errorf("%w: %dx%d %s %dx%d",
			ErrDimensionMismatch, a.Rows(), a.Columns(), symbol, b.Rows(), b.Columns())
	}
	values := a.Values()
	for i := range values {
		for j := range values[i] {
			values[i][j] = apply(values[i][j], b.At(i, j))
		}
	}
	return expression.NewMatrix(composeName(a.Name(), symbol, b.Name()), values), nil
}

// Multiply returns the matrix product a·b.
func Multiply(a, b *expression.Matrix) (*expression.Matrix, error) {
	if a.Columns() != b.Rows() {
		return nil, fmt.Errorf("%w: %dx%d × %dx%d",
			ErrDimensionMismatch, a.Rows(), a.Columns(), b.Rows(), b.Columns())
	}
	values := make([][]float64, a.Rows())
	for i := range values {
		values[i] = make([]float64, b.Columns())
		for j := range values[i] {
			sum := 0.0
			for k := 0; k < a.Columns(); k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			values[i][j] = sum
		}
	}
	return expression.NewMatrix(composeName(a.Name(), "×", b.Name()), values), nil
}

// ScalarMultiply returns scalar·m.
func ScalarMultiply(m *expression.Matrix, scalar float64) *expression.Matrix {
	values := m.Values()
	for i := range values {
		for j := range values[i] {
			values[i][j] *= scalar
		}
	}
	name := composeName(expression.FormatNumber(scalar), "×", m.Name())
	return expression.NewMatrix(name, values)
}

// Transpose returns mᵀ.
func Transpose(m *expression.Matrix) *expression.Matrix {
	values := make([][]float64, m.Columns())
	for i := range values {
		values[i] = make([]float64, m.Rows())
		for j := range values[i] {
			values[i][j] = m.At(j, i)
		}
	}
	return expression.NewMatrix(m.Name()+"ᵀ", values)
}

// Trace returns the sum of the diagonal.
func Trace(m *expression.Matrix) (float64, error) {
	if err := requireSquare(m); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < m.Rows(); i++ {
		sum += m.At(i, i)
	}
	return sum, nil
}

// Determinant computes the determinant by cofactor expansion along the
// first row. Size is capped because the expansion is factorial-time.
func Determinant(m *expression.Matrix) (float64, error) {
	if err := requireSquare(m); err != nil {
		return 0, err
	}
	if m.Rows() > MaxDeterminantSize {
		return 0, fmt.Errorf("%w: %dx%d exceeds the cofactor limit of %d",
			ErrTooLarge, m.Rows(), m.Columns(), MaxDeterminantSize)
	}
	return determinant(m.Values()), nil
}

func determinant(values [][]float64) float64 {
	switch len(values) {
	case 1:
		return values[0][0]
	case 2:
		return values[0][0]*values[1][1] - values[0][1]*values[1][0]
	}

	total := 0.0
	sign := 1.0
	for column := range values[0] {
		total += sign * values[0][column] * determinant(minor(values, column))
		sign = -sign
	}
	return total
}

// minor removes row 0 and the given column.
func minor(values [][]float64, column int) [][]float64 {
	result := make([][]float64, 0, len(values)-1)
	for _, row := range values[1:] {
		reduced := make([]float64, 0, len(row)-1)
		reduced = append(reduced, row[:column]...)
		reduced = append(reduced, row[column+1:]...)
		result = append(result, reduced)
	}
	return result
}

// Rank reduces to row-echelon form with partial pivoting and counts the
// non-zero pivots.
func Rank(m *expression.Matrix) int {
	values := m.Values()
	rank := 0
	pivotRow := 0
	for column := 0; column < m.Columns() && pivotRow < len(values); column++ {
		best := pivotRow
		for r := pivotRow + 1; r < len(values); r++ {
			if math.Abs(values[r][column]) > math.Abs(values[best][column]) {
				best = r
			}
		}
		if math.Abs(values[best][column]) < epsilon {
			continue
		}
		values[best], values[pivotRow] = values[pivotRow], values[best]
		for r := pivotRow + 1; r < len(values); r++ {
			factor := values[r][column] / values[pivotRow][column]
			for c := column; c < m.Columns(); c++ {
				values[r][c] -= factor * values[pivotRow][c]
			}
		}
		rank++
		pivotRow++
	}
	return rank
}

// Inverse computes m⁻¹ by Gauss-Jordan reduction of [m|I].
func Inverse(m *expression.Matrix) (*expression.Matrix, error) {
	if err := requireSquare(m); err != nil {
		return nil, err
	}

	n := m.Rows()
	augmented := make([][]float64, n)
	for i, row := range m.Values() {
		augmented[i] = make([]float64, 2*n)
		copy(augmented[i], row)
		augmented[i][n+i] = 1
	}

	for column := 0; column < n; column++ {
		best := column
		for r := column + 1; r < n; r++ {
			if math.Abs(augmented[r][column]) > math.Abs(augmented[best][column]) {
				best = r
			}
		}
		if math.Abs(augmented[best][column]) < epsilon {
			return nil, fmt.Errorf("%w: pivot in column %d vanishes", ErrNotInvertible, column+1)
		}
		augmented[best], augmented[column] = augmented[column], augmented[best]

		pivot := augmented[column][column]
		for c := range augmented[column] {
			augmented[column][c] /= pivot
		}
		for r := 0; r < n; r++ {
			if r == column {
				continue
			}
			factor := augmented[r][column]
			for c := range augmented[r] {
				augmented[r][c] -= factor * augmented[column][c]
			}
		}
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		copy(values[i], augmented[i][n:])
	}
	return expression.NewMatrix(m.Name()+"⁻¹", values), nil
}

// Power raises a square matrix to a non-negative integer power by repeated
// multiplication. Power zero gives the identity.
func Power(m *expression.Matrix, exponent int) (*expression.Matrix, error) {
	if err := requireSquare(m); err != nil {
		return nil, err
	}
	if exponent < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativePower, exponent)
	}

	name := fmt.Sprintf("%s%s", m.Name(), expression.Superscript(fmt.Sprintf("%d", exponent)))
	result := Identity(m.Rows())
	base := m
	for i := 0; i < exponent; i++ {
		product, err := Multiply(result, base)
		if err != nil {
			return nil, err
		}
		result = product
	}
	return result.WithName(name), nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) *expression.Matrix {
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	return expression.NewMatrix("I", values)
}

func requireSquare(m *expression.Matrix) error {
	if m.Rows() == 0 {
		return ErrEmptyMatrix
	}
	if m.Rows() != m.Columns() {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, m.Rows(), m.Columns())
	}
	return nil
}

// composeName derives a result's display name from its operands.
func composeName(left, symbol, right string) string {
	if left == "" || right == "" {
		return ""
	}
	return "(" + left + symbol + right + ")"
}
