// Package solve implements the equation and equation-system solvers. Both
// record every algebraic step into a calculation result.
package solve

import (
	"errors"
	"fmt"
	"math"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/simplify"
	"github.com/VrezenStrijder/SharpMath/term"
)

// Sentinel errors
var (
	ErrNotEquation  = errors.New("input is not an equation")
	ErrNotSystem    = errors.New("input is not an equation system")
	ErrNoVariable   = errors.New("no variable to solve for")
	ErrNoSolution   = errors.New("no solution")
	ErrUnsupported  = errors.New("unsupported equation")
	ErrNonLinear    = errors.New("only linear systems supported")
	ErrInconsistent = errors.New("inconsistent system")
)

// coefficient comparisons and pivot checks share one tolerance
const epsilon = 1e-10

// verification of radical candidates in the original equation
const verifyEpsilon = 1e-6

// EquationSolver solves a single equation in one variable: linear,
// quadratic, or radical (square-root-bearing).
type EquationSolver struct {
	// Variable pins the unknown; empty means the first variable found in
	// the equation.
	Variable string

	simplifier *simplify.Simplifier
}

func NewEquationSolver() *EquationSolver {
	return &EquationSolver{simplifier: simplify.New()}
}

// Process implements calculation.Solver.
func (s *EquationSolver) Process(expr expression.Expression, order calculation.SortOrder) (*calculation.Result, error) {
	equation, ok := expr.(*expression.Equation)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotEquation, expr.ToDisplayText())
	}

	variable := s.Variable
	if variable == "" {
		variable, _ = expression.FirstVariable(equation)
	}
	if variable == "" {
		return nil, ErrNoVariable
	}

	result := calculation.NewResult(equation)
	if expression.ContainsSqrt(equation) {
		if err := s.solveRadical(equation, variable, order, result); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := s.solvePolynomial(equation, variable, order, result); err != nil {
		return nil, err
	}
	return result, nil
}

// solvePolynomial standardizes to `p(x) = 0`, reads off the coefficients and
// dispatches on the degree.
func (s *EquationSolver) solvePolynomial(equation *expression.Equation, variable string, order calculation.SortOrder, result *calculation.Result) error {
	zero := expression.NewNumber(0)
	standardized := expression.NewBinary(equation.Left(), expression.Subtract, equation.Right())
	result.Append(expression.NewEquation(standardized, zero), "move every term to the left side")

	simplified := s.simplifier.Quiet(standardized, order)
	result.Append(expression.NewEquation(simplified, zero), "simplify the left side")

	coefficients, err := polynomialCoefficients(simplified, variable)
	if err != nil {
		return err
	}

	switch degree(coefficients) {
	case 0:
		if math.Abs(coefficients[0]) < epsilon {
			return fmt.Errorf("%w: every value of %s satisfies the equation", ErrUnsupported, variable)
		}
		return fmt.Errorf("%w: the equation reduces to %s = 0", ErrNoSolution, expression.FormatNumber(coefficients[0]))
	case 1:
		return s.solveLinear(coefficients, variable, result)
	case 2:
		return s.solveQuadratic(coefficients, variable, result)
	default:
		return fmt.Errorf("%w: degree %d in %s", ErrUnsupported, degree(coefficients), variable)
	}
}

func (s *EquationSolver) solveLinear(coefficients [3]float64, variable string, result *calculation.Result) error {
	b, c := coefficients[1], coefficients[0]
	if math.Abs(b) < epsilon {
		return fmt.Errorf("%w: the coefficient of %s vanishes", ErrNoSolution, variable)
	}
	solution := expression.NewEquation(expression.NewVariable(variable), expression.NewNumber(-c/b))
	result.Append(solution, "isolate the variable")
	return nil
}

func (s *EquationSolver) solveQuadratic(coefficients [3]float64, variable string, result *calculation.Result) error {
	a, b, c := coefficients[2], coefficients[1], coefficients[0]
	discriminant := b*b - 4*a*c
	description := fmt.Sprintf("apply the quadratic formula, discriminant = %s", expression.FormatNumber(discriminant))

	switch {
	case discriminant < -epsilon:
		return fmt.Errorf("%w: negative discriminant %s", ErrNoSolution, expression.FormatNumber(discriminant))
	case discriminant < epsilon:
		repeated := expression.NewEquation(
			expression.NewVariable(variable),
			expression.NewNumber(-b/(2*a)))
		result.AppendPlaced(repeated, description+", repeated root", false)
		return nil
	default:
		root := math.Sqrt(discriminant)
		solutions := expression.NewEquationSystem(
			expression.NewEquation(expression.NewVariable(variable+"₁"), expression.NewNumber((-b+root)/(2*a))),
			expression.NewEquation(expression.NewVariable(variable+"₂"), expression.NewNumber((-b-root)/(2*a))),
		)
		result.Append(solutions, description)
		return nil
	}
}

// polynomialCoefficients extracts [constant, linear, quadratic] for the
// target variable. Mixed-variable or non-integer-power terms are rejected.
func polynomialCoefficients(expr expression.Expression, variable string) ([3]float64, error) {
	var coefficients [3]float64
	for _, t := range term.Decompose(expr) {
		if !polynomialTerm(t, variable) {
			return coefficients, fmt.Errorf("%w: term %s is not a polynomial in %s",
				ErrUnsupported, t.ToExpression().ToDisplayText(), variable)
		}
		exponent := t.ExponentOf(variable)
		switch exponent {
		case 0, 1, 2:
			coefficients[int(exponent)] += t.Coefficient
		default:
			return coefficients, fmt.Errorf("%w: degree %s in %s",
				ErrUnsupported, expression.FormatNumber(exponent), variable)
		}
	}
	return coefficients, nil
}

// polynomialTerm reports whether every factor is the target variable raised
// to a numeric power. Opaque factors like sin(x) disqualify the term.
func polynomialTerm(t *term.Term, variable string) bool {
	for _, factor := range t.Factors {
		base, ok := factor.Base.(*expression.Variable)
		if !ok || base.Name() != variable {
			return false
		}
		if _, ok := factor.Exponent.(*expression.Number); !ok {
			return false
		}
	}
	return true
}

func degree(coefficients [3]float64) int {
	if math.Abs(coefficients[2]) >= epsilon {
		return 2
	}
	if math.Abs(coefficients[1]) >= epsilon {
		return 1
	}
	return 0
}
