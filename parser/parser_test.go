package parser

import (
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/VrezenStrijder/SharpMath/expression"
)

func TestParseEvaluation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		bindings map[string]float64
		expected float64
	}{
		{
			name:     "precedence",
			input:    "1+2*3",
			expected: 7,
		},
		{
			name:     "parentheses",
			input:    "(1+2)*3",
			expected: 9,
		},
		{
			name:     "power is right associative",
			input:    "2^3^2",
			expected: 512,
		},
		{
			name:     "unary minus binds looser than power",
			input:    "-2^2",
			expected: -4,
		},
		{
			name:     "unary minus after operator",
			input:    "2*-3",
			expected: -6,
		},
		{
			name:     "unary minus as power exponent",
			input:    "2^-2",
			expected: 0.25,
		},
		{
			name:     "modulo",
			input:    "10%3",
			expected: 1,
		},
		{
			name:     "division chain is left associative",
			input:    "12/3/2",
			expected: 2,
		},
		{
			name:     "function call",
			input:    "sqrt(16)+1",
			expected: 5,
		},
		{
			name:     "nested variadic call",
			input:    "min(4, max(2, 3), 7)",
			expected: 3,
		},
		{
			name:     "two argument function",
			input:    "pow(2, 10)",
			expected: 1024,
		},
		{
			name:     "variables",
			input:    "2*x + 3*y",
			bindings: map[string]float64{"x": 1, "y": 2},
			expected: 8,
		},
		{
			name:     "unicode operators",
			input:    "6×2÷4",
			expected: 3,
		},
		{
			name:     "superscript power",
			input:    "x² + 1",
			bindings: map[string]float64{"x": 3},
			expected: 10,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := p.Parse(tt.input)
			assert.NoError(t, err)

			actual, err := expr.EvaluateWith(tt.bindings)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestParseConstants(t *testing.T) {
	p := New()

	expr, err := p.Parse("2*pi")
	assert.NoError(t, err)

	value, err := expr.Evaluate()
	assert.NoError(t, err)
	assert.Equal(t, 2*math.Pi, value)
}

func TestParseEquation(t *testing.T) {
	p := New()

	expr, err := p.Parse("x^2 - 5*x + 6 = 0")
	assert.NoError(t, err)

	equation, ok := expr.(*expression.Equation)
	assert.True(t, ok)
	assert.Equal(t, "0", equation.Right().ToDisplayText())
	assert.Equal(t, "x² - 5*x + 6", equation.Left().ToDisplayText())
}

func TestParseEquationSystem(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{
			name:  "semicolon separated",
			input: "2*x+3*y = 5; x-y = 1",
			count: 2,
		},
		{
			name:  "comma separated",
			input: "x+y = 2, x-y = 0",
			count: 2,
		},
		{
			name:  "three equations",
			input: "2*x+3*y-z = 5; x-y+2*z = 5; 3*x+y+z = 8",
			count: 3,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := p.Parse(tt.input)
			assert.NoError(t, err)

			system, ok := expr.(*expression.EquationSystem)
			assert.True(t, ok)
			assert.Equal(t, tt.count, len(system.Equations()))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// parsing the display text of a parsed tree evaluates identically
	inputs := []string{
		"2*x + 3*y + x*(x+y) - 3*x",
		"x^2 - 5*x + 6",
		"-(x+1)*(y-2)",
		"sqrt(x+1) - x/2",
		"x^(y+1) + 2^x",
		"min(x, y, 2)*max(x, 1)",
	}
	bindings := map[string]float64{"x": 1.5, "y": -2.25}

	p := New()
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := p.Parse(input)
			assert.NoError(t, err)

			second, err := p.Parse(first.ToDisplayText())
			assert.NoError(t, err)

			expected, err := first.EvaluateWith(bindings)
			assert.NoError(t, err)
			actual, err := second.EvaluateWith(bindings)
			assert.NoError(t, err)

			assert.True(t, math.Abs(expected-actual) < 1e-9)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "empty input",
			input:    "   ",
			expected: ErrEmptyExpression,
		},
		{
			name:     "missing closing paren",
			input:    "(1+2",
			expected: ErrUnmatchedParenthesis,
		},
		{
			name:     "stray closing paren",
			input:    "1+2)",
			expected: ErrUnmatchedParenthesis,
		},
		{
			name:     "adjacent operands",
			input:    "1 2",
			expected: ErrSyntax,
		},
		{
			name:     "dangling operator",
			input:    "1+",
			expected: ErrSyntax,
		},
		{
			name:     "empty call",
			input:    "sin()",
			expected: ErrSyntax,
		},
		{
			name:     "wrong arity",
			input:    "pow(1)",
			expected: expression.ErrInvalidArgumentCount,
		},
		{
			name:     "comma outside call",
			input:    "(1, 2) + 3",
			expected: ErrSyntax,
		},
		{
			name:     "system member without equal sign",
			input:    "x = 1; y + 2",
			expected: ErrSyntax,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected))
		})
	}
}

func TestRegisterFunctionAndConstant(t *testing.T) {
	p := New()
	p.RegisterConstant("phi", 0.5)
	p.RegisterFunction("double", FunctionSpec{Arity: 1})

	expr, err := p.Parse("phi + 1")
	assert.NoError(t, err)
	value, err := expr.Evaluate()
	assert.NoError(t, err)
	assert.Equal(t, 1.5, value)

	// a second parser instance is unaffected
	other := New()
	expr, err = other.Parse("phi")
	assert.NoError(t, err)
	_, err = expr.Evaluate()
	assert.True(t, errors.Is(err, expression.ErrUnboundVariable))
}
