// Package simplify rewrites expressions through three passes: expand to a
// fixed point, combine like terms, and sort terms into canonical order. Each
// pass contributes trace steps to the calculation result.
package simplify

import (
	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/term"
)

const epsilon = 1e-10

// Simplifier implements calculation.Solver for plain expressions and
// single equations.
type Simplifier struct{}

func New() *Simplifier {
	return &Simplifier{}
}

// Process simplifies expr, recording one step per visible rewrite.
func (s *Simplifier) Process(expr expression.Expression, order calculation.SortOrder) (*calculation.Result, error) {
	result := calculation.NewResult(expr)
	if _, err := s.Run(expr, order, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Run simplifies expr and appends its trace onto an existing result, so
// solvers can thread simplification steps through their own traces. The
// returned expression is the simplified form even when every step was
// textually suppressed.
func (s *Simplifier) Run(expr expression.Expression, order calculation.SortOrder, result *calculation.Result) (expression.Expression, error) {
	if equation, ok := expr.(*expression.Equation); ok {
		left := s.Quiet(equation.Left(), order)
		right := s.Quiet(equation.Right(), order)
		simplified := expression.NewEquation(left, right)
		result.Append(simplified, "simplify both sides")
		return simplified, nil
	}

	// appearance order is captured before any rewrite so sorting reflects
	// the input as the user wrote it
	appearance := expression.Variables(expr)

	current := expr
	for {
		worker := &expander{}
		next := worker.expand(current)
		if next.ToDisplayText() == current.ToDisplayText() {
			break
		}
		result.Append(next, worker.description())
		current = next
	}

	combined := combineTerms(current)
	result.Append(combined, "combine like terms")

	sorted := sortTerms(combined, appearance, order)
	result.Append(sorted, "order terms")

	return sorted, nil
}

// Quiet simplifies without recording steps.
func (s *Simplifier) Quiet(expr expression.Expression, order calculation.SortOrder) expression.Expression {
	scratch := calculation.NewResult(expr)
	simplified, err := s.Run(expr, order, scratch)
	if err != nil {
		return expr
	}
	return simplified
}

// combineTerms groups like terms by their canonical variable part, sums
// coefficients, and drops groups that cancel to zero. Order of first
// appearance is preserved.
func combineTerms(expr expression.Expression) expression.Expression {
	terms := term.Decompose(expr)

	grouped := make(map[string]*term.Term)
	var order []string
	for _, t := range terms {
		key := t.VariablePart()
		if existing, ok := grouped[key]; ok {
			existing.Coefficient += t.Coefficient
			continue
		}
		copied := *t
		grouped[key] = &copied
		order = append(order, key)
	}

	var kept []*term.Term
	for _, key := range order {
		t := grouped[key]
		if t.Coefficient > -epsilon && t.Coefficient < epsilon {
			continue
		}
		kept = append(kept, t)
	}

	if len(kept) == 0 {
		return expression.NewNumber(0)
	}
	return term.Recompose(kept)
}

func sortTerms(expr expression.Expression, appearance []string, order calculation.SortOrder) expression.Expression {
	terms := term.Decompose(expr)
	if len(terms) < 2 {
		return expr
	}
	term.NewComparer(appearance, order == calculation.SortAscending).Sort(terms)
	return term.Recompose(terms)
}
