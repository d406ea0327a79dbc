package latex

import (
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
			name:     "addition and multiplication precedence",
			input:    `1 + 2 * 3`,
			expected: 7,
		},
		{
			name:     "fraction",
			input:    `\frac{x + 1}{2}`,
			bindings: map[string]float64{"x": 3},
			expected: 2,
		},
		{
			name:     "nested fraction",
			input:    `\frac{\frac{8}{2}}{4}`,
			expected: 1,
		},
		{
			name:     "square root command",
			input:    `\sqrt{16}`,
			expected: 4,
		},
		{
			name:     "power with braced exponent",
			input:    `x^{2}`,
			bindings: map[string]float64{"x": 5},
			expected: 25,
		},
		{
			name:     "power with bare exponent",
			input:    `x^2 + 1`,
			bindings: map[string]float64{"x": 3},
			expected: 10,
		},
		{
			name:     "unary minus",
			input:    `-x + 3`,
			bindings: map[string]float64{"x": 1},
			expected: 2,
		},
		{
			name:     "cdot as multiplication",
			input:    `2 \cdot 3`,
			expected: 6,
		},
		{
			name:     "left right delimiters",
			input:    `\left(1 + 2\right) * 3`,
			expected: 9,
		},
		{
			name:     "function call",
			input:    `\sin(0) + 2`,
			expected: 2,
		},
		{
			name:     "two argument function",
			input:    `\pow(2, 5)`,
			expected: 32,
		},
		{
			name:     "pi constant",
			input:    `2 * \pi`,
			expected: 2 * math.Pi,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expr, err := New().Parse(test.input)
			assert.NoError(t, err)
			value, err := expr.EvaluateWith(test.bindings)
			assert.NoError(t, err)
			assert.True(t, math.Abs(value-test.expected) < 1e-9,
				"got %g, expected %g", value, test.expected)
		})
	}
}

func TestParseEquation(t *testing.T) {
	expr, err := New().Parse(`\frac{x}{2} = 3`)
	assert.NoError(t, err)

	equation, ok := expr.(*expression.Equation)
	assert.True(t, ok)
	satisfied, err := equation.Satisfied(map[string]float64{"x": 6}, 1e-10)
	assert.NoError(t, err)
	assert.True(t, satisfied)
}

func TestParseDisplayText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fraction becomes division",
			input:    `\frac{x + 1}{2}`,
			expected: "(x + 1)/2",
		},
		{
			name:     "sqrt keeps function form",
			input:    `\sqrt{x}`,
			expected: "sqrt(x)",
		},
		{
			name:     "power renders superscript",
			input:    `x^{2} + y`,
			expected: "x² + y",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expr, err := New().Parse(test.input)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, expr.ToDisplayText())
		})
	}
}

func TestLatexRoundTrip(t *testing.T) {
	// parse → ToLatex → parse again must evaluate identically
	inputs := []string{
		`\frac{x + 1}{2}`,
		`x^{2} - \sqrt{x + 4}`,
		`2 \cdot x + \frac{1}{x}`,
	}
	bindings := map[string]float64{"x": 2.5}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := New().Parse(input)
			assert.NoError(t, err)
			second, err := New().Parse(first.ToLatex())
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
			input:    "",
			expected: ErrEmptyExpression,
		},
		{
			name:     "unclosed brace",
			input:    `\frac{x + 1}{2`,
			expected: ErrUnmatchedGroup,
		},
		{
			name:     "unclosed parenthesis",
			input:    `(1 + 2`,
			expected: ErrUnmatchedGroup,
		},
		{
			name:     "missing frac denominator",
			input:    `\frac{x}`,
			expected: ErrFormat,
		},
		{
			name:     "trailing operand",
			input:    `1 + 2 3`,
			expected: ErrFormat,
		},
		{
			name:     "dangling operator",
			input:    `x +`,
			expected: ErrFormat,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New().Parse(test.input)
			assert.IsError(t, err, test.expected)
		})
	}
}
