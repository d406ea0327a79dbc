package matrix

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAddAndFormat(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		token    string
		expected string
	}{
		{
			name:     "first variable",
			existing: "",
			token:    "A",
			expected: "A",
		},
		{
			name:     "operator after variable",
			existing: "A",
			token:    "+",
			expected: "A+",
		},
		{
			name:     "same precedence appends flat",
			existing: "A×B",
			token:    "×",
			expected: "A×B×",
		},
		{
			name:     "lower precedence appends flat",
			existing: "A×B",
			token:    "+",
			expected: "A×B+",
		},
		{
			name:     "higher precedence regroups the last operand",
			existing: "A+B",
			token:    "×",
			expected: "A+(B×",
		},
		{
			name:     "regrouped operand closes with the next one",
			existing: "A+(B×",
			token:    "C",
			expected: "A+(B×C)",
		},
		{
			name:     "regrouping wraps a function span",
			existing: "A+det(B)",
			token:    "×",
			expected: "A+(det(B)×",
		},
		{
			name:     "scalar with multiplication",
			existing: "2",
			token:    "×",
			expected: "2×",
		},
		{
			name:     "function call",
			existing: "det(",
			token:    "A",
			expected: "det(A",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok, formula, message := NewFormatter().AddAndFormat(test.existing, test.token)
			assert.True(t, ok, "rejected with %q", message)
			assert.Equal(t, test.expected, formula)
		})
	}
}

func TestAddAndFormatRejects(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		token    string
	}{
		{name: "leading operator", existing: "", token: "+"},
		{name: "operator after open paren", existing: "(", token: "×"},
		{name: "double operator", existing: "A+", token: "×"},
		{name: "adjacent variables", existing: "A", token: "B"},
		{name: "variable after close paren", existing: "(A+B)", token: "C"},
		{name: "unmatched close paren", existing: "A", token: ")"},
		{name: "function on a bare number", existing: "det(", token: "2"},
		{name: "number with addition", existing: "A+", token: "2"},
		{name: "number then addition", existing: "2", token: "+"},
		{name: "empty parens", existing: "A×(", token: ")"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok, formula, message := NewFormatter().AddAndFormat(test.existing, test.token)
			assert.False(t, ok)
			assert.Equal(t, test.existing, formula)
			assert.NotZero(t, message)
		})
	}
}

func TestRemoveLastElement(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		expected string
	}{
		{
			name:     "simple token",
			existing: "A+B",
			expected: "A+",
		},
		{
			name:     "closing paren drops the span",
			existing: "A+(B×C)",
			expected: "A+",
		},
		{
			name:     "closing paren drops the function too",
			existing: "A+det(B)",
			expected: "A+",
		},
		{
			name:     "open paren with function name",
			existing: "A+det(",
			expected: "A+",
		},
		{
			name:     "bare open paren",
			existing: "A+(",
			expected: "A+",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ok, formula, message := NewFormatter().RemoveLastElement(test.existing)
			assert.True(t, ok, "rejected with %q", message)
			assert.Equal(t, test.expected, formula)
		})
	}

	ok, _, message := NewFormatter().RemoveLastElement("")
	assert.False(t, ok)
	assert.NotZero(t, message)
}

func TestValidateCompleteness(t *testing.T) {
	formatter := NewFormatter()

	for _, valid := range []string{"A", "A+B", "det(A)×B", "2×(A+B)^2"} {
		ok, _, message := formatter.ValidateCompleteness(valid)
		assert.True(t, ok, "%s rejected with %q", valid, message)
	}

	for _, invalid := range []string{"", "A+", "A+(B", "det(", "(A+B"} {
		ok, _, _ := formatter.ValidateCompleteness(invalid)
		assert.False(t, ok, "%s accepted", invalid)
	}
}

func TestFormatterInstancesAreIndependent(t *testing.T) {
	custom := NewFormatter()
	custom.RegisterFunction("adj")

	ok, formula, _ := custom.AddAndFormat("", "adj")
	assert.True(t, ok)
	assert.Equal(t, "adj", formula)

	elements, err := NewFormatter().Tokenize("adj")
	assert.NoError(t, err)
	assert.Equal(t, ElementVariable, elements[0].Type)

	elements, err = custom.Tokenize("adj")
	assert.NoError(t, err)
	assert.Equal(t, ElementFunction, elements[0].Type)
}
