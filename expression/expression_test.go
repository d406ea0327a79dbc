package expression

import (
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		bindings map[string]float64
		expected float64
	}{
		{
			name:     "addition",
			expr:     NewBinary(NewNumber(2), Add, NewNumber(3)),
			expected: 5,
		},
		{
			name:     "subtraction and multiplication",
			expr:     NewBinary(NewBinary(NewNumber(7), Subtract, NewNumber(3)), Multiply, NewNumber(2)),
			expected: 8,
		},
		{
			name:     "power",
			expr:     NewBinary(NewNumber(2), Power, NewNumber(10)),
			expected: 1024,
		},
		{
			name:     "modulo",
			expr:     NewBinary(NewNumber(7), Modulo, NewNumber(3)),
			expected: 1,
		},
		{
			name:     "negation",
			expr:     Negate(NewNumber(4)),
			expected: -4,
		},
		{
			name:     "variable binding",
			expr:     NewBinary(NewVariable("x"), Multiply, NewVariable("y")),
			bindings: map[string]float64{"x": 3, "y": 4},
			expected: 12,
		},
		{
			name:     "comparison true",
			expr:     NewBinary(NewNumber(1), LessThan, NewNumber(2)),
			expected: 1,
		},
		{
			name:     "comparison false",
			expr:     NewBinary(NewNumber(1), GreaterEqual, NewNumber(2)),
			expected: 0,
		},
		{
			name:     "function",
			expr:     NewFunction("sqrt", NewNumber(16)),
			expected: 4,
		},
		{
			name:     "variadic min",
			expr:     NewFunction("min", NewNumber(3), NewNumber(-1), NewNumber(2)),
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := tt.expr.EvaluateWith(tt.bindings)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestEvaluateDivisionByZeroIsNaN(t *testing.T) {
	value, err := NewBinary(NewNumber(1), Divide, NewNumber(0)).Evaluate()
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(value))
}

func TestEvaluateUnboundVariable(t *testing.T) {
	_, err := NewBinary(NewVariable("x"), Add, NewNumber(1)).Evaluate()
	assert.True(t, errors.Is(err, ErrUnboundVariable))

	_, err = NewVariable("x").EvaluateWith(map[string]float64{"y": 1})
	assert.True(t, errors.Is(err, ErrUnboundVariable))
}

func TestEvaluateNonScalarNodes(t *testing.T) {
	equation := NewEquation(NewVariable("x"), NewNumber(1))
	_, err := equation.Evaluate()
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))

	_, err = NewEquationSystem(equation).Evaluate()
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))

	_, err = NewMatrix("A", [][]float64{{1}}).Evaluate()
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestDisplayText(t *testing.T) {
	x := NewVariable("x")
	y := NewVariable("y")

	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{
			name:     "flat sum",
			expr:     NewBinary(NewBinary(x, Add, y), Add, NewNumber(1)),
			expected: "x + y + 1",
		},
		{
			name:     "product of sums",
			expr:     NewBinary(NewBinary(x, Add, NewNumber(1)), Multiply, NewBinary(y, Subtract, NewNumber(2))),
			expected: "(x + 1)*(y - 2)",
		},
		{
			name:     "right operand of subtraction",
			expr:     NewBinary(x, Subtract, NewBinary(y, Add, NewNumber(1))),
			expected: "x - (y + 1)",
		},
		{
			name:     "right operand of division",
			expr:     NewBinary(x, Divide, NewBinary(y, Multiply, NewNumber(2))),
			expected: "x/(y*2)",
		},
		{
			name:     "integer power superscripted",
			expr:     NewBinary(x, Power, NewNumber(2)),
			expected: "x²",
		},
		{
			name:     "negative integer power superscripted",
			expr:     NewBinary(x, Power, NewNumber(-12)),
			expected: "x⁻¹²",
		},
		{
			name:     "power of a sum",
			expr:     NewBinary(NewBinary(x, Add, y), Power, NewNumber(2)),
			expected: "(x + y)²",
		},
		{
			name:     "non-integer exponent keeps caret",
			expr:     NewBinary(x, Power, NewNumber(0.5)),
			expected: "x^0.5",
		},
		{
			name:     "variable exponent keeps caret",
			expr:     NewBinary(x, Power, y),
			expected: "x^y",
		},
		{
			name:     "negation of a sum",
			expr:     Negate(NewBinary(x, Add, y)),
			expected: "-(x + y)",
		},
		{
			name:     "multiplication by negative literal",
			expr:     NewBinary(NewNumber(2), Multiply, NewNumber(-3)),
			expected: "2*(-3)",
		},
		{
			name:     "equation",
			expr:     NewEquation(NewBinary(x, Power, NewNumber(2)), NewNumber(4)),
			expected: "x² = 4",
		},
		{
			name:     "function call",
			expr:     NewFunction("min", x, y, NewNumber(1)),
			expected: "min(x, y, 1)",
		},
		{
			name:     "float noise is rounded away",
			expr:     NewNumber(0.1 + 0.2),
			expected: "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.ToDisplayText())
		})
	}
}

func TestToLatex(t *testing.T) {
	x := NewVariable("x")

	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{
			name:     "fraction",
			expr:     NewBinary(NewBinary(x, Add, NewNumber(1)), Divide, NewNumber(2)),
			expected: "\\frac{x + 1}{2}",
		},
		{
			name:     "power",
			expr:     NewBinary(NewBinary(x, Add, NewNumber(1)), Power, NewNumber(2)),
			expected: "\\left(x + 1\\right)^{2}",
		},
		{
			name:     "square root",
			expr:     NewFunction("sqrt", NewBinary(x, Add, NewNumber(1))),
			expected: "\\sqrt{x + 1}",
		},
		{
			name:     "multiplication",
			expr:     NewBinary(NewNumber(2), Multiply, x),
			expected: "2 \\cdot x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.ToLatex())
		})
	}
}

func TestVariables(t *testing.T) {
	expr := NewBinary(
		NewBinary(NewVariable("b"), Add, NewVariable("a")),
		Multiply,
		NewBinary(NewVariable("b"), Subtract, NewVariable("c")),
	)

	assert.Equal(t, []string{"b", "a", "c"}, Variables(expr))

	first, ok := FirstVariable(expr)
	assert.True(t, ok)
	assert.Equal(t, "b", first)

	_, ok = FirstVariable(NewNumber(1))
	assert.False(t, ok)
}

func TestContainsSqrt(t *testing.T) {
	inner := NewEquation(
		NewBinary(NewFunction("sqrt", NewVariable("x")), Add, NewNumber(1)),
		NewNumber(3),
	)
	assert.True(t, ContainsSqrt(inner))
	assert.False(t, ContainsSqrt(NewBinary(NewVariable("x"), Add, NewNumber(1))))
}

func TestSubstitute(t *testing.T) {
	// x^2 + x with x := 3 evaluates to 12
	expr := NewBinary(
		NewBinary(NewVariable("x"), Power, NewNumber(2)),
		Add,
		NewVariable("x"),
	)

	substituted := Substitute(expr, "x", NewNumber(3))
	value, err := substituted.Evaluate()
	assert.NoError(t, err)
	assert.Equal(t, 12.0, value)

	// the original tree is untouched
	_, err = expr.Evaluate()
	assert.True(t, errors.Is(err, ErrUnboundVariable))
}

func TestSignedParts(t *testing.T) {
	x := NewVariable("x")
	y := NewVariable("y")

	// x - (y + 2) - -3 splits into x, -(y+2) as one opaque negative part... the
	// chain only splits Add/Subtract, so y+2 splits too: x, -y, -2, +3.
	expr := NewBinary(
		NewBinary(x, Subtract, NewBinary(y, Add, NewNumber(2))),
		Subtract,
		Negate(NewNumber(3)),
	)

	parts := SignedParts(expr)
	assert.Equal(t, 4, len(parts))

	assert.Equal(t, "x", parts[0].Expr.ToDisplayText())
	assert.False(t, parts[0].Negative)

	assert.Equal(t, "y", parts[1].Expr.ToDisplayText())
	assert.True(t, parts[1].Negative)

	assert.Equal(t, "2", parts[2].Expr.ToDisplayText())
	assert.True(t, parts[2].Negative)

	assert.Equal(t, "3", parts[3].Expr.ToDisplayText())
	assert.False(t, parts[3].Negative)
}

func TestMatrixImmutability(t *testing.T) {
	grid := [][]float64{{1, 2}, {3, 4}}
	m := NewMatrix("A", grid)

	grid[0][0] = 99
	assert.Equal(t, 1.0, m.At(0, 0))

	values := m.Values()
	values[1][1] = 99
	assert.Equal(t, 4.0, m.At(1, 1))

	renamed := m.WithName("B")
	assert.Equal(t, "B", renamed.Name())
	assert.Equal(t, "A", m.Name())
}

func TestMatrixDisplayText(t *testing.T) {
	m := NewMatrix("", [][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, "[1 2; 3 4]", m.ToDisplayText())
	assert.Equal(t, "A", m.WithName("A").ToDisplayText())
}
