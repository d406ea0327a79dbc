// Package term decomposes sum-of-products expressions into canonical
// monomial terms. The canonical variable part is the grouping key for
// like-term collection in the simplifier and the solvers.
package term

import (
	"sort"
	"strings"

	"github.com/VrezenStrijder/SharpMath/expression"
)

// Factor is one base^exponent part of a monomial.
type Factor struct {
	Base     expression.Expression
	Exponent expression.Expression
}

// text renders the factor for the canonical variable part.
func (f Factor) text() string {
	if number, ok := f.Exponent.(*expression.Number); ok && number.Value() == 1 {
		return f.Base.ToDisplayText()
	}
	return f.Base.ToDisplayText() + "^" + f.Exponent.ToDisplayText()
}

// Term is one additive monomial: a numeric coefficient times a product of
// factors. Factors are always sorted by base display text, so the variable
// part is a stable grouping key regardless of original term order.
type Term struct {
	Coefficient float64
	Factors     []Factor
}

// FromExpression flattens a multiplication chain into a canonical term.
// Number factors fold into the coefficient, repeated bases merge by summing
// exponents, and unary negation folds into the coefficient sign.
func FromExpression(expr expression.Expression) *Term {
	term := &Term{Coefficient: 1}
	term.collect(expr)
	term.mergeFactors()
	term.sortFactors()
	return term
}

func (t *Term) collect(expr expression.Expression) {
	switch node := expr.(type) {
	case *expression.Number:
		t.Coefficient *= node.Value()
	case *expression.Unary:
		t.Coefficient = -t.Coefficient
		t.collect(node.Operand())
	case *expression.Binary:
		switch node.Operator() {
		case expression.Multiply:
			t.collect(node.Left())
			t.collect(node.Right())
		case expression.Power:
			t.Factors = append(t.Factors, Factor{Base: node.Left(), Exponent: node.Right()})
		default:
			t.Factors = append(t.Factors, Factor{Base: node, Exponent: expression.NewNumber(1)})
		}
	default:
		t.Factors = append(t.Factors, Factor{Base: expr, Exponent: expression.NewNumber(1)})
	}
}

// mergeFactors sums the exponents of factors sharing a base.
func (t *Term) mergeFactors() {
	merged := make([]Factor, 0, len(t.Factors))
	byBase := map[string]int{}

	for _, factor := range t.Factors {
		key := factor.Base.ToDisplayText()
		if i, ok := byBase[key]; ok {
			merged[i].Exponent = addExponents(merged[i].Exponent, factor.Exponent)
			continue
		}
		byBase[key] = len(merged)
		merged = append(merged, factor)
	}

	t.Factors = merged
}

// addExponents folds numeric exponent sums and falls back to an Add node.
func addExponents(a, b expression.Expression) expression.Expression {
	left, leftOk := a.(*expression.Number)
	right, rightOk := b.(*expression.Number)
	if leftOk && rightOk {
		return expression.NewNumber(left.Value() + right.Value())
	}
	return expression.NewBinary(a, expression.Add, b)
}

func (t *Term) sortFactors() {
	sort.SliceStable(t.Factors, func(i, j int) bool {
		return t.Factors[i].Base.ToDisplayText() < t.Factors[j].Base.ToDisplayText()
	})
}

// VariablePart is the canonical textual signature of the non-constant
// factors. Two terms are like terms iff their variable parts are identical.
func (t *Term) VariablePart() string {
	if len(t.Factors) == 0 {
		return ""
	}
	parts := make([]string, len(t.Factors))
	for i, factor := range t.Factors {
		parts[i] = factor.text()
	}
	return strings.Join(parts, "*")
}

// Degree is the sum of the numeric exponents.
func (t *Term) Degree() float64 {
	total := 0.0
	for _, factor := range t.Factors {
		if number, ok := factor.Exponent.(*expression.Number); ok {
			total += number.Value()
		}
	}
	return total
}

// Variables returns the distinct variable names appearing in the term, in
// factor order.
func (t *Term) Variables() []string {
	seen := map[string]bool{}
	var names []string
	for _, factor := range t.Factors {
		for _, name := range expression.Variables(factor.Base) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		for _, name := range expression.Variables(factor.Exponent) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// IsConstant reports whether the term has no factors.
func (t *Term) IsConstant() bool {
	return len(t.Factors) == 0
}

// ExponentOf returns the numeric exponent of the named variable, summing
// over factors whose base is exactly that variable.
func (t *Term) ExponentOf(name string) float64 {
	total := 0.0
	for _, factor := range t.Factors {
		variable, ok := factor.Base.(*expression.Variable)
		if !ok || variable.Name() != name {
			continue
		}
		if number, ok := factor.Exponent.(*expression.Number); ok {
			total += number.Value()
		}
	}
	return total
}

// ToExpression reconstructs the multiplication chain. A coefficient of
// exactly 1 is omitted and -1 renders as a leading negation.
func (t *Term) ToExpression() expression.Expression {
	if len(t.Factors) == 0 {
		return expression.NewNumber(t.Coefficient)
	}
	if t.Coefficient == 0 {
		return expression.NewNumber(0)
	}

	var chain expression.Expression
	for _, factor := range t.Factors {
		factorExpr := factor.toExpression()
		if chain == nil {
			chain = factorExpr
		} else {
			chain = expression.NewBinary(chain, expression.Multiply, factorExpr)
		}
	}

	switch {
	case t.Coefficient == 1:
		return chain
	case t.Coefficient == -1:
		return expression.Negate(chain)
	case t.Coefficient < 0:
		scaled := expression.NewBinary(expression.NewNumber(-t.Coefficient), expression.Multiply, chain)
		return expression.Negate(scaled)
	default:
		return expression.NewBinary(expression.NewNumber(t.Coefficient), expression.Multiply, chain)
	}
}

func (f Factor) toExpression() expression.Expression {
	if number, ok := f.Exponent.(*expression.Number); ok && number.Value() == 1 {
		return f.Base
	}
	return expression.NewBinary(f.Base, expression.Power, f.Exponent)
}

// Negated returns a copy of the term with the coefficient sign flipped.
func (t *Term) Negated() *Term {
	return &Term{Coefficient: -t.Coefficient, Factors: t.Factors}
}

// Decompose splits a top-level Add/Subtract chain into a flat term list,
// negating the coefficients of subtracted operands. Non-additive
// sub-expressions become single opaque terms.
func Decompose(expr expression.Expression) []*Term {
	parts := expression.SignedParts(expr)
	terms := make([]*Term, len(parts))
	for i, part := range parts {
		term := FromExpression(part.Expr)
		if part.Negative {
			term.Coefficient = -term.Coefficient
		}
		terms[i] = term
	}
	return terms
}

// Recompose rebuilds an additive chain from terms, rendering negative
// coefficients as subtractions after the first term.
func Recompose(terms []*Term) expression.Expression {
	if len(terms) == 0 {
		return expression.NewNumber(0)
	}

	result := terms[0].ToExpression()
	for _, term := range terms[1:] {
		if term.Coefficient < 0 {
			result = expression.NewBinary(result, expression.Subtract, term.Negated().ToExpression())
		} else {
			result = expression.NewBinary(result, expression.Add, term.ToExpression())
		}
	}
	return result
}
