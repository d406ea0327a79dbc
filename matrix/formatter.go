package matrix

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ElementType classifies one token of a matrix formula.
type ElementType int

const (
	ElementVariable ElementType = iota
	ElementNumber
	ElementOperator
	ElementFunction
	ElementLeftParen
	ElementRightParen
)

// Element is one token of a matrix formula.
type Element struct {
	Value string
	Type  ElementType
}

// Formatter incrementally edits and validates a matrix formula string. Each
// instance owns its operator and function tables; two formatters never
// interfere with each other.
type Formatter struct {
	operators  map[string]int
	functions  map[string]bool
	scalarDeny map[string]bool
	pattern    *regexp.Regexp
}

// NewFormatter creates a formatter with the default matrix operators
// (+ - × ∘ ^) and functions (det inv rank trans trace).
func NewFormatter() *Formatter {
	f := &Formatter{
		operators: map[string]int{
			"+": 1, "-": 1,
			"×": 2, "∘": 2,
			"^": 3,
		},
		functions: map[string]bool{
			"det": true, "inv": true, "rank": true, "trans": true, "trace": true,
		},
		// scalars only combine with scaling and powers
		scalarDeny: map[string]bool{"+": true, "-": true, "∘": true},
	}
	f.rebuildPattern()
	return f
}

// RegisterOperator adds or updates an operator symbol with its precedence.
func (f *Formatter) RegisterOperator(symbol string, precedence int) {
	f.operators[symbol] = precedence
	f.rebuildPattern()
}

// RegisterFunction adds a function name.
func (f *Formatter) RegisterFunction(name string) {
	f.functions[name] = true
	f.rebuildPattern()
}

// rebuildPattern derives the tokenizing regexp from the current tables.
func (f *Formatter) rebuildPattern() {
	symbols := make([]string, 0, len(f.operators))
	for symbol := range f.operators {
		symbols = append(symbols, symbol)
	}
	// longest match first
	sort.Slice(symbols, func(i, j int) bool {
		if len(symbols[i]) != len(symbols[j]) {
			return len(symbols[i]) > len(symbols[j])
		}
		return symbols[i] < symbols[j]
	})
	for i, symbol := range symbols {
		symbols[i] = regexp.QuoteMeta(symbol)
	}

	pattern := `\d+(?:\.\d+)?|[A-Za-z][A-Za-z0-9]*|[()]`
	if len(symbols) > 0 {
		pattern = strings.Join(symbols, "|") + "|" + pattern
	}
	f.pattern = regexp.MustCompile(pattern)
}

// Tokenize splits a formula into elements, classifying identifiers as
// functions or variables by the function table.
func (f *Formatter) Tokenize(formula string) ([]Element, error) {
	stripped := strings.Join(strings.Fields(formula), "")
	matches := f.pattern.FindAllString(stripped, -1)
	if len(strings.Join(matches, "")) != len(stripped) {
		return nil, fmt.Errorf("formula contains an unrecognized token: %s", formula)
	}

	elements := make([]Element, len(matches))
	for i, match := range matches {
		elements[i] = Element{Value: match, Type: f.classify(match)}
	}
	return elements, nil
}

func (f *Formatter) classify(value string) ElementType {
	switch {
	case value == "(":
		return ElementLeftParen
	case value == ")":
		return ElementRightParen
	case f.functions[value]:
		return ElementFunction
	default:
		if _, ok := f.operators[value]; ok {
			return ElementOperator
		}
		if value[0] >= '0' && value[0] <= '9' {
			return ElementNumber
		}
		return ElementVariable
	}
}

// AddAndFormat appends one token to the formula, validating the transition
// from the current trailing element and regrouping when a tighter-binding
// operator follows a looser one. It returns a success flag, the updated
// formula, and the failure reason.
func (f *Formatter) AddAndFormat(existing, token string) (bool, string, string) {
	elements, err := f.Tokenize(existing)
	if err != nil {
		return false, existing, err.Error()
	}
	added, err := f.Tokenize(token)
	if err != nil || len(added) != 1 {
		return false, existing, fmt.Sprintf("cannot add %q: not a single token", token)
	}
	element := added[0]

	if message := f.checkTransition(elements, element); message != "" {
		return false, existing, message
	}

	if element.Type == ElementOperator {
		elements = f.regroup(elements, element)
	} else {
		elements = append(elements, element)
	}
	if operandComplete(element.Type) {
		elements = f.closeRegroups(elements)
	}

	return true, render(elements), ""
}

func operandComplete(t ElementType) bool {
	return t == ElementVariable || t == ElementNumber || t == ElementRightParen
}

// checkTransition validates appending element after the current tail.
func (f *Formatter) checkTransition(elements []Element, element Element) string {
	if len(elements) == 0 {
		switch element.Type {
		case ElementOperator:
			return "a formula cannot start with an operator"
		case ElementRightParen:
			return "unmatched closing parenthesis"
		}
		return ""
	}
	last := elements[len(elements)-1]

	switch element.Type {
	case ElementOperator:
		if last.Type == ElementLeftParen {
			return "an operator cannot follow an opening parenthesis"
		}
		if last.Type == ElementOperator {
			return "two operators in a row"
		}
		if last.Type == ElementFunction {
			return "an operator cannot follow a function name"
		}
		if last.Type == ElementNumber && f.scalarDeny[element.Value] {
			return fmt.Sprintf("a number cannot combine with %q", element.Value)
		}

	case ElementVariable, ElementNumber:
		if operandComplete(last.Type) {
			return "two adjacent operands"
		}
		if element.Type == ElementNumber {
			if functionArgument(elements) {
				return "a function cannot apply to a bare number"
			}
			if last.Type == ElementOperator && f.scalarDeny[last.Value] {
				return fmt.Sprintf("a number cannot combine with %q", last.Value)
			}
		}

	case ElementFunction, ElementLeftParen:
		if operandComplete(last.Type) {
			return "an operand cannot directly follow another operand"
		}

	case ElementRightParen:
		if openParens(elements) == 0 {
			return "unmatched closing parenthesis"
		}
		if last.Type == ElementOperator {
			return "a group cannot end with an operator"
		}
		if last.Type == ElementLeftParen {
			return "empty parentheses"
		}
	}
	return ""
}

// functionArgument reports whether the next operand lands directly inside a
// function call, as in det( here.
func functionArgument(elements []Element) bool {
	n := len(elements)
	return n >= 2 &&
		elements[n-1].Type == ElementLeftParen &&
		elements[n-2].Type == ElementFunction
}

func openParens(elements []Element) int {
	open := 0
	for _, element := range elements {
		switch element.Type {
		case ElementLeftParen:
			open++
		case ElementRightParen:
			open--
		}
	}
	return open
}

// regroup appends an operator. When it binds tighter than the formula's
// trailing operator, the previous operand is wrapped so the new operator
// groups with it: A+B followed by × becomes A+(B×.
func (f *Formatter) regroup(elements []Element, operator Element) []Element {
	trailing := f.trailingOperatorPrecedence(elements)
	if trailing == 0 || f.operators[operator.Value] <= trailing {
		return append(elements, operator)
	}

	start := lastOperandStart(elements)
	regrouped := make([]Element, 0, len(elements)+2)
	regrouped = append(regrouped, elements[:start]...)
	regrouped = append(regrouped, Element{Value: "(", Type: ElementLeftParen})
	regrouped = append(regrouped, elements[start:]...)
	return append(regrouped, operator)
}

// trailingOperatorPrecedence finds the top-level operator that precedes the
// formula's final operand, or 0 if there is none.
func (f *Formatter) trailingOperatorPrecedence(elements []Element) int {
	start := lastOperandStart(elements)
	if start == 0 {
		return 0
	}
	previous := elements[start-1]
	if previous.Type != ElementOperator {
		return 0
	}
	return f.operators[previous.Value]
}

// lastOperandStart returns the index where the formula's final operand span
// begins: a single token, or a balanced group with an optional function name.
func lastOperandStart(elements []Element) int {
	n := len(elements)
	if n == 0 {
		return 0
	}
	if elements[n-1].Type != ElementRightParen {
		return n - 1
	}

	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch elements[i].Type {
		case ElementRightParen:
			depth++
		case ElementLeftParen:
			depth--
			if depth == 0 {
				if i > 0 && elements[i-1].Type == ElementFunction {
					return i - 1
				}
				return i
			}
		}
	}
	return 0
}

// closeRegroups closes a group that was opened by regrouping once its
// tighter-binding operation has both operands: A+(B×C gains the closing
// parenthesis.
func (f *Formatter) closeRegroups(elements []Element) []Element {
	for {
		open := unmatchedOpen(elements)
		if open <= 0 || elements[open-1].Type != ElementOperator {
			return elements
		}
		inner := elements[open+1:]
		if !binaryGroup(inner) {
			return elements
		}
		elements = append(elements, Element{Value: ")", Type: ElementRightParen})
	}
}

// unmatchedOpen returns the index of the last unmatched '(' or -1.
func unmatchedOpen(elements []Element) int {
	depth := 0
	for i := len(elements) - 1; i >= 0; i-- {
		switch elements[i].Type {
		case ElementRightParen:
			depth++
		case ElementLeftParen:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// binaryGroup reports whether elements form exactly operand-operator-operand.
func binaryGroup(elements []Element) bool {
	end, ok := operandSpan(elements, 0)
	if !ok || end >= len(elements) || elements[end].Type != ElementOperator {
		return false
	}
	end2, ok := operandSpan(elements, end+1)
	return ok && end2 == len(elements)
}

// operandSpan scans one complete operand starting at start and returns the
// index just past it.
func operandSpan(elements []Element, start int) (int, bool) {
	if start >= len(elements) {
		return 0, false
	}
	switch elements[start].Type {
	case ElementVariable, ElementNumber:
		return start + 1, true
	case ElementFunction:
		return operandSpan(elements, start+1)
	case ElementLeftParen:
		depth := 0
		for i := start; i < len(elements); i++ {
			switch elements[i].Type {
			case ElementLeftParen:
				depth++
			case ElementRightParen:
				depth--
				if depth == 0 {
					return i + 1, true
				}
			}
		}
		return 0, false
	}
	return 0, false
}

// RemoveLastElement undoes the most recent addition. Removing a parenthesis
// or a function drops the whole parenthesized span.
func (f *Formatter) RemoveLastElement(existing string) (bool, string, string) {
	elements, err := f.Tokenize(existing)
	if err != nil {
		return false, existing, err.Error()
	}
	if len(elements) == 0 {
		return false, existing, "the formula is empty"
	}

	last := elements[len(elements)-1]
	switch last.Type {
	case ElementRightParen:
		start := lastOperandStart(elements)
		return true, render(elements[:start]), ""
	case ElementLeftParen:
		cut := len(elements) - 1
		if cut > 0 && elements[cut-1].Type == ElementFunction {
			cut--
		}
		return true, render(elements[:cut]), ""
	default:
		return true, render(elements[:len(elements)-1]), ""
	}
}

// ValidateCompleteness checks that the formula can be compiled: balanced
// parentheses and a trailing operand.
func (f *Formatter) ValidateCompleteness(formula string) (bool, string, string) {
	elements, err := f.Tokenize(formula)
	if err != nil {
		return false, formula, err.Error()
	}
	if len(elements) == 0 {
		return false, formula, "the formula is empty"
	}
	if openParens(elements) != 0 {
		return false, formula, "unbalanced parentheses"
	}
	switch elements[len(elements)-1].Type {
	case ElementOperator:
		return false, formula, "the formula ends with an operator"
	case ElementLeftParen, ElementFunction:
		return false, formula, "the formula ends with an opening parenthesis"
	}
	return true, formula, ""
}

func render(elements []Element) string {
	var builder strings.Builder
	for _, element := range elements {
		builder.WriteString(element.Value)
	}
	return builder.String()
}
