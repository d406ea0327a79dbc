// Package sharpmath is a symbolic algebra engine: it parses infix and LaTeX
// math notation into expression trees and simplifies expressions, solves
// equations and linear systems, and evaluates matrix formulas, tracing every
// transformation step.
package sharpmath

import (
	"fmt"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/matrix"
	"github.com/VrezenStrijder/SharpMath/parser"
	"github.com/VrezenStrijder/SharpMath/parser/latex"
	"github.com/VrezenStrijder/SharpMath/simplify"
	"github.com/VrezenStrijder/SharpMath/solve"
)

// CalculateType classifies what kind of calculation an expression needs.
type CalculateType int

const (
	CalculateSimplify CalculateType = iota
	CalculateEquation
	CalculateEquationSystem
	CalculateMatrix
)

func (t CalculateType) String() string {
	switch t {
	case CalculateSimplify:
		return "simplify"
	case CalculateEquation:
		return "equation"
	case CalculateEquationSystem:
		return "equation system"
	case CalculateMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("calculate type %d", int(t))
	}
}

// Parse parses plain infix notation.
func Parse(text string) (expression.Expression, error) {
	return parser.New().Parse(text)
}

// ParseLaTeX parses LaTeX math notation.
func ParseLaTeX(text string) (expression.Expression, error) {
	return latex.New().Parse(text)
}

// TypeOf detects the calculation an expression calls for: systems and
// equations solve, matrix-bearing trees evaluate, everything else
// simplifies.
func TypeOf(expr expression.Expression) CalculateType {
	switch expr.(type) {
	case *expression.EquationSystem:
		return CalculateEquationSystem
	case *expression.Equation:
		return CalculateEquation
	}
	if containsMatrix(expr) {
		return CalculateMatrix
	}
	return CalculateSimplify
}

// ChooseSolver returns the solver for a calculation type. Unknown types are
// an explicit error, never a nil solver.
func ChooseSolver(calculateType CalculateType) (calculation.Solver, error) {
	switch calculateType {
	case CalculateSimplify:
		return simplify.New(), nil
	case CalculateEquation:
		return solve.NewEquationSolver(), nil
	case CalculateEquationSystem:
		return solve.NewSystemSolver(), nil
	case CalculateMatrix:
		return matrix.NewSolver(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculateType, calculateType)
	}
}

// Calculate parses text, picks the matching solver and runs it.
func Calculate(text string, order calculation.SortOrder) (*calculation.Result, error) {
	expr, err := Parse(text)
	if err != nil {
		return nil, err
	}
	solver, err := ChooseSolver(TypeOf(expr))
	if err != nil {
		return nil, err
	}
	return solver.Process(expr, order)
}

// matrixDetector finds Matrix nodes anywhere in a tree.
type matrixDetector struct {
	found bool
}

func containsMatrix(expr expression.Expression) bool {
	detector := &matrixDetector{}
	expr.Accept(detector)
	return detector.found
}

func (d *matrixDetector) VisitNumber(*expression.Number) any     { return nil }
func (d *matrixDetector) VisitVariable(*expression.Variable) any { return nil }

func (d *matrixDetector) VisitUnary(u *expression.Unary) any {
	u.Operand().Accept(d)
	return nil
}

func (d *matrixDetector) VisitBinary(b *expression.Binary) any {
	b.Left().Accept(d)
	b.Right().Accept(d)
	return nil
}

func (d *matrixDetector) VisitFunction(f *expression.Function) any {
	for _, argument := range f.Arguments() {
		argument.Accept(d)
	}
	return nil
}

func (d *matrixDetector) VisitEquation(e *expression.Equation) any {
	e.Left().Accept(d)
	e.Right().Accept(d)
	return nil
}

func (d *matrixDetector) VisitEquationSystem(s *expression.EquationSystem) any {
	for _, equation := range s.Equations() {
		equation.Accept(d)
	}
	return nil
}

func (d *matrixDetector) VisitMatrix(*expression.Matrix) any {
	d.found = true
	return nil
}
