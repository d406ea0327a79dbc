package solve

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/parser"
)

func solveSystem(t *testing.T, input string) *calculation.Result {
	t.Helper()
	expr, err := parser.New().Parse(input)
	assert.NoError(t, err)
	result, err := NewSystemSolver().Process(expr, calculation.SortDescending)
	assert.NoError(t, err)
	return result
}

func TestSolveSystemUnique(t *testing.T) {
	result := solveSystem(t, "x + y + z = 6; 2*x - y + z = 3; x + 2*y - z = 2")
	assert.Equal(t, "x = 1; y = 2; z = 3", result.Final.ToDisplayText())
}

func TestSolveSystemSatisfiesOriginal(t *testing.T) {
	input := "2*x + 3*y - z = 5; x - y + 2*z = 5; 3*x + y + z = 8"
	result := solveSystem(t, input)
	assert.Equal(t, "x = 1; y = 2; z = 3", result.Final.ToDisplayText())

	bindings := map[string]float64{"x": 1, "y": 2, "z": 3}
	original, err := parser.New().Parse(input)
	assert.NoError(t, err)

	for _, equation := range original.(*expression.EquationSystem).Equations() {
		ok, err := equation.Satisfied(bindings, 1e-9)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSolveSystemTwoVariables(t *testing.T) {
	result := solveSystem(t, "2*x + y = 5; x - y = 1")
	assert.Equal(t, "x = 2; y = 1", result.Final.ToDisplayText())
}

func TestSolveSystemInfinite(t *testing.T) {
	result := solveSystem(t, "x + y = 3; 2*x + 2*y = 6")
	assert.Equal(t, "x = 3 - y; y = y", result.Final.ToDisplayText())
}

func TestSolveSystemTracesRowOperations(t *testing.T) {
	result := solveSystem(t, "x + y + z = 6; 2*x - y + z = 3; x + 2*y - z = 2")

	var descriptions []string
	for _, step := range result.Steps() {
		descriptions = append(descriptions, step.Description)
		// every intermediate state renders as a symbolic system
		_, ok := step.Result.(*expression.EquationSystem)
		assert.True(t, ok)
	}
	joined := strings.Join(descriptions, "\n")
	assert.True(t, strings.Contains(joined, "eliminate"))
	assert.True(t, strings.Contains(joined, "normalize"))
}

func TestSolveSystemErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "inconsistent",
			input:    "x + y = 1; x + y = 2",
			expected: ErrInconsistent,
		},
		{
			name:     "nonlinear term",
			input:    "x*y = 1; x = 2",
			expected: ErrNonLinear,
		},
		{
			name:     "quadratic term",
			input:    "x^2 + y = 1; x + y = 2",
			expected: ErrNonLinear,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expr, err := parser.New().Parse(test.input)
			assert.NoError(t, err)
			_, err = NewSystemSolver().Process(expr, calculation.SortDescending)
			assert.IsError(t, err, test.expected)
		})
	}
}

func TestSolveSystemRejectsPlainEquation(t *testing.T) {
	expr, err := parser.New().Parse("x + 1 = 2")
	assert.NoError(t, err)
	_, err = NewSystemSolver().Process(expr, calculation.SortDescending)
	assert.IsError(t, err, ErrNotSystem)
}
