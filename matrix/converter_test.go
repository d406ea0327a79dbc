package matrix

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
)

func TestCompile(t *testing.T) {
	operations, err := NewConverter(nil).Compile("A×B+C", []string{"A", "B", "C"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(operations))

	multiply := operations[0]
	assert.Equal(t, OpMultiply, multiply.Kind)
	assert.Equal(t, OperandSource{Kind: FromExpression, Index: 0}, multiply.Left)
	assert.Equal(t, OperandSource{Kind: FromExpression, Index: 1}, *multiply.Right)

	add := operations[1]
	assert.Equal(t, OpAdd, add.Kind)
	// the left operand is the product computed one step earlier
	assert.Equal(t, OperandSource{Kind: FromResult, Index: 0}, add.Left)
	assert.Equal(t, OperandSource{Kind: FromExpression, Index: 2}, *add.Right)
}

func TestCompileSpecializations(t *testing.T) {
	operations, err := NewConverter(nil).Compile("2×A", []string{"A"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(operations))
	assert.Equal(t, OpScalarMultiply, operations[0].Kind)
	assert.Equal(t, 2.0, operations[0].Scalar)

	operations, err = NewConverter(nil).Compile("A^3", []string{"A"})
	assert.NoError(t, err)
	assert.Equal(t, OpPower, operations[0].Kind)
	assert.Equal(t, 3.0, operations[0].Scalar)

	operations, err = NewConverter(nil).Compile("det(A)", []string{"A"})
	assert.NoError(t, err)
	assert.Equal(t, OpDeterminant, operations[0].Kind)
}

func TestCompileRespectsParentheses(t *testing.T) {
	operations, err := NewConverter(nil).Compile("A×(B+C)", []string{"A", "B", "C"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(operations))
	assert.Equal(t, OpAdd, operations[0].Kind)
	assert.Equal(t, OpMultiply, operations[1].Kind)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		formula  string
		names    []string
		expected error
	}{
		{
			name:     "unknown matrix",
			formula:  "A+X",
			names:    []string{"A"},
			expected: ErrUnknownMatrix,
		},
		{
			name:     "incomplete formula",
			formula:  "A+",
			names:    []string{"A"},
			expected: ErrBadFormula,
		},
		{
			name:     "two scalars",
			formula:  "2×3",
			names:    nil,
			expected: ErrScalarOperand,
		},
		{
			name:     "scalar exponent base",
			formula:  "2^A",
			names:    []string{"A"},
			expected: ErrScalarOperand,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewConverter(nil).Compile(test.formula, test.names)
			assert.IsError(t, err, test.expected)
		})
	}
}

func TestProcessFormula(t *testing.T) {
	a := expression.NewMatrix("A", [][]float64{{1, 2}, {3, 4}})
	b := expression.NewMatrix("B", [][]float64{{2, 0}, {1, 2}})

	result, err := NewSolver().ProcessFormula("A×B", []*expression.Matrix{a, b})
	assert.NoError(t, err)

	product, ok := result.Final.(*expression.Matrix)
	assert.True(t, ok)
	assertMatrix(t, [][]float64{{4, 4}, {10, 8}}, product)
	assert.Equal(t, 1, len(result.Steps()))
}

func TestProcessFormulaChainsResults(t *testing.T) {
	a := expression.NewMatrix("A", [][]float64{{4, 7}, {2, 6}})

	result, err := NewSolver().ProcessFormula("A×inv(A)", []*expression.Matrix{a})
	assert.NoError(t, err)

	identity, ok := result.Final.(*expression.Matrix)
	assert.True(t, ok)
	assertMatrix(t, [][]float64{{1, 0}, {0, 1}}, identity)
}

func TestProcessFormulaScalarResult(t *testing.T) {
	// det produces a scalar that feeds the next multiplication
	a := expression.NewMatrix("A", [][]float64{{2, 0}, {0, 1}})
	b := expression.NewMatrix("B", [][]float64{{1, 1}, {1, 1}})

	result, err := NewSolver().ProcessFormula("det(A)×B", []*expression.Matrix{a, b})
	assert.NoError(t, err)

	scaled, ok := result.Final.(*expression.Matrix)
	assert.True(t, ok)
	assertMatrix(t, [][]float64{{2, 2}, {2, 2}}, scaled)
}

func TestProcessExpressionTree(t *testing.T) {
	a := expression.NewMatrix("A", [][]float64{{1, 2}, {3, 4}})
	b := expression.NewMatrix("B", [][]float64{{2, 0}, {1, 2}})
	tree := expression.NewBinary(
		expression.NewBinary(a, expression.Multiply, b),
		expression.Add,
		expression.NewBinary(expression.NewNumber(2), expression.Multiply, a))

	result, err := NewSolver().Process(tree, calculation.SortDescending)
	assert.NoError(t, err)

	final, ok := result.Final.(*expression.Matrix)
	assert.True(t, ok)
	assertMatrix(t, [][]float64{{6, 8}, {16, 16}}, final)
	assert.True(t, len(result.Steps()) >= 3)
}

func TestProcessExpressionTreePower(t *testing.T) {
	a := expression.NewMatrix("A", [][]float64{{1, 1}, {0, 1}})
	tree := expression.NewBinary(a, expression.Power, expression.NewNumber(2))

	result, err := NewSolver().Process(tree, calculation.SortDescending)
	assert.NoError(t, err)

	squared := result.Final.(*expression.Matrix)
	assertMatrix(t, [][]float64{{1, 2}, {0, 1}}, squared)
}

func TestProcessRejectsScalarOnlyTree(t *testing.T) {
	tree := expression.NewVariable("x")
	_, err := NewSolver().Process(tree, calculation.SortDescending)
	assert.IsError(t, err, ErrNotMatrixExpression)
}

func TestTraceDescriptions(t *testing.T) {
	a := expression.NewMatrix("A", [][]float64{{1, 2}, {3, 4}})
	b := expression.NewMatrix("B", [][]float64{{2, 0}, {1, 2}})

	result, err := NewSolver().ProcessFormula("A×B+A", []*expression.Matrix{a, b})
	assert.NoError(t, err)

	steps := result.Steps()
	assert.Equal(t, 2, len(steps))
	assert.Equal(t, "multiply A by B", steps[0].Description)
	assert.Equal(t, "add (A×B) and A", steps[1].Description)
	assert.True(t, math.Abs(result.Final.(*expression.Matrix).At(1, 1)-12) < 1e-9)
}
