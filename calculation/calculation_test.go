package calculation

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/VrezenStrijder/SharpMath/expression"
)

func TestResultAppend(t *testing.T) {
	input := expression.NewBinary(expression.NewNumber(1), expression.Add, expression.NewNumber(2))
	result := NewResult(input)

	folded := expression.NewNumber(3)
	result.Append(folded, "fold constants")

	assert.Equal(t, 1, len(result.Steps()))
	assert.Equal(t, 0, result.Steps()[0].Index)
	assert.Equal(t, "fold constants", result.Steps()[0].Description)
	assert.Equal(t, "3", result.Final.ToDisplayText())
}

func TestResultSuppressesTextualNoOp(t *testing.T) {
	input := expression.NewVariable("x")
	result := NewResult(input)

	// a different tree with the same display text is not a visible step
	result.Append(expression.NewVariable("x"), "rebuild")
	assert.Equal(t, 0, len(result.Steps()))

	result.Append(expression.NewNumber(1), "substitute")
	result.Append(expression.NewNumber(1), "again")
	assert.Equal(t, 1, len(result.Steps()))
	assert.Equal(t, "1", result.Final.ToDisplayText())
}

func TestResultAdvancesFinalOnSuppressedStep(t *testing.T) {
	// a matrix named A² renders exactly like the power expression that
	// produced it; the step is invisible but the value must not be lost
	input := expression.NewMatrix("A", [][]float64{{1, 1}, {0, 1}})
	power := expression.NewBinary(input, expression.Power, expression.NewNumber(2))
	result := NewResult(power)

	computed := expression.NewMatrix("A²", [][]float64{{1, 2}, {0, 1}})
	result.Append(computed, "raise A to the power 2")

	assert.Equal(t, 0, len(result.Steps()))

	final, ok := result.Final.(*expression.Matrix)
	assert.True(t, ok)
	assert.Equal(t, "A²", final.Name())
}

func TestResultIndexesSequentially(t *testing.T) {
	result := NewResult(expression.NewVariable("x"))
	result.Append(expression.NewNumber(1), "first")
	result.Append(expression.NewNumber(2), "second")
	result.AppendPlaced(expression.NewNumber(3), "third", true)

	steps := result.Steps()
	assert.Equal(t, 3, len(steps))
	for i, step := range steps {
		assert.Equal(t, i, step.Index)
	}
	assert.True(t, steps[2].DescriptionAfter)
}
