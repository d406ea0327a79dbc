package solve

import (
	"fmt"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
)

// solveRadical isolates the square-root terms on one side, squares once,
// solves the resulting polynomial equation, and keeps only the candidates
// that survive verification in the original equation.
func (s *EquationSolver) solveRadical(equation *expression.Equation, variable string, order calculation.SortOrder, result *calculation.Result) error {
	difference := expression.NewBinary(equation.Left(), expression.Subtract, equation.Right())
	parts := expression.SignedParts(difference)

	var radicalSide, otherSide expression.Expression
	for _, part := range parts {
		if expression.ContainsSqrt(part.Expr) {
			radicalSide = accumulateSigned(radicalSide, part.Expr, part.Negative)
		} else {
			// moved across the equals sign, so the sign flips
			otherSide = accumulateSigned(otherSide, part.Expr, !part.Negative)
		}
	}
	if radicalSide == nil {
		return fmt.Errorf("%w: no radical term found", ErrUnsupported)
	}
	if otherSide == nil {
		otherSide = expression.NewNumber(0)
	}

	radicalSide = s.simplifier.Quiet(radicalSide, order)
	otherSide = s.simplifier.Quiet(otherSide, order)
	result.Append(expression.NewEquation(radicalSide, otherSide), "isolate the radical terms")

	squaredLeft := s.simplifier.Quiet(
		expression.NewBinary(radicalSide, expression.Power, expression.NewNumber(2)), order)
	squaredRight := s.simplifier.Quiet(
		expression.NewBinary(otherSide, expression.Power, expression.NewNumber(2)), order)
	squared := expression.NewEquation(squaredLeft, squaredRight)
	result.Append(squared, "square both sides")

	// squaring once must clear every radical; two independent radical
	// groups would need repeated isolation, which is out of scope
	if expression.ContainsSqrt(squared) {
		return fmt.Errorf("%w: more than one radical group", ErrUnsupported)
	}

	if err := s.solvePolynomial(squared, variable, order, result); err != nil {
		return err
	}

	accepted := verifyCandidates(equation, variable, candidateValues(result.Final))
	if len(accepted) == 0 {
		return fmt.Errorf("%w: every candidate is extraneous", ErrNoSolution)
	}

	if len(accepted) == 1 {
		result.Append(expression.NewEquation(
			expression.NewVariable(variable), expression.NewNumber(accepted[0])),
			"verify candidates in the original equation")
		return nil
	}
	equations := make([]*expression.Equation, len(accepted))
	for i, value := range accepted {
		name := fmt.Sprintf("%s%s", variable, subscript(i+1))
		equations[i] = expression.NewEquation(expression.NewVariable(name), expression.NewNumber(value))
	}
	result.Append(expression.NewEquationSystem(equations...), "verify candidates in the original equation")
	return nil
}

func accumulateSigned(sum, part expression.Expression, negative bool) expression.Expression {
	if sum == nil {
		if negative {
			return expression.Negate(part)
		}
		return part
	}
	if negative {
		return expression.NewBinary(sum, expression.Subtract, part)
	}
	return expression.NewBinary(sum, expression.Add, part)
}

// candidateValues reads the numeric right-hand sides out of the polynomial
// solver's final expression.
func candidateValues(final expression.Expression) []float64 {
	var values []float64
	collect := func(equation *expression.Equation) {
		if number, ok := equation.Right().(*expression.Number); ok {
			values = append(values, number.Value())
		}
	}
	switch typed := final.(type) {
	case *expression.Equation:
		collect(typed)
	case *expression.EquationSystem:
		for _, equation := range typed.Equations() {
			collect(equation)
		}
	}
	return values
}

// verifyCandidates substitutes each candidate into the original equation and
// keeps those where both sides agree and every sqrt argument is non-negative.
func verifyCandidates(original *expression.Equation, variable string, candidates []float64) []float64 {
	arguments := sqrtArguments(original)
	var accepted []float64
	for _, candidate := range candidates {
		bindings := map[string]float64{variable: candidate}

		valid := true
		for _, argument := range arguments {
			value, err := argument.EvaluateWith(bindings)
			if err != nil || value < -epsilon {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}

		satisfied, err := original.Satisfied(bindings, verifyEpsilon)
		if err == nil && satisfied {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}

var subscripts = []rune("₀₁₂₃₄₅₆₇₈₉")

func subscript(n int) string {
	if n == 0 {
		return string(subscripts[0])
	}
	var digits []rune
	for n > 0 {
		digits = append([]rune{subscripts[n%10]}, digits...)
		n /= 10
	}
	return string(digits)
}

// sqrtArgumentCollector gathers the argument expressions of every sqrt call.
type sqrtArgumentCollector struct {
	arguments []expression.Expression
}

func sqrtArguments(expr expression.Expression) []expression.Expression {
	collector := &sqrtArgumentCollector{}
	expr.Accept(collector)
	return collector.arguments
}

func (c *sqrtArgumentCollector) VisitNumber(*expression.Number) any     { return nil }
func (c *sqrtArgumentCollector) VisitVariable(*expression.Variable) any { return nil }

func (c *sqrtArgumentCollector) VisitUnary(u *expression.Unary) any {
	u.Operand().Accept(c)
	return nil
}

func (c *sqrtArgumentCollector) VisitBinary(b *expression.Binary) any {
	b.Left().Accept(c)
	b.Right().Accept(c)
	return nil
}

func (c *sqrtArgumentCollector) VisitFunction(f *expression.Function) any {
	if f.Name() == expression.SqrtName && len(f.Arguments()) == 1 {
		c.arguments = append(c.arguments, f.Arguments()[0])
	}
	for _, argument := range f.Arguments() {
		argument.Accept(c)
	}
	return nil
}

func (c *sqrtArgumentCollector) VisitEquation(e *expression.Equation) any {
	e.Left().Accept(c)
	e.Right().Accept(c)
	return nil
}

func (c *sqrtArgumentCollector) VisitEquationSystem(s *expression.EquationSystem) any {
	for _, equation := range s.Equations() {
		equation.Accept(c)
	}
	return nil
}

func (c *sqrtArgumentCollector) VisitMatrix(*expression.Matrix) any { return nil }
