package expression

import (
	"fmt"
	"strings"
)

// Equation is a binary node specialized to equality. Evaluating it as a
// scalar is an unsupported operation.
type Equation struct {
	left  Expression
	right Expression
}

// NewEquation creates an Equation.
func NewEquation(left, right Expression) *Equation {
	return &Equation{left: left, right: right}
}

// Left returns the left side.
func (e *Equation) Left() Expression {
	return e.left
}

// Right returns the right side.
func (e *Equation) Right() Expression {
	return e.right
}

func (e *Equation) Evaluate() (float64, error) {
	return 0, fmt.Errorf("%w: an equation has no scalar value", ErrUnsupportedOperation)
}

func (e *Equation) EvaluateWith(map[string]float64) (float64, error) {
	return 0, fmt.Errorf("%w: an equation has no scalar value", ErrUnsupportedOperation)
}

// Satisfied reports whether both sides evaluate equal within epsilon under
// the given bindings.
func (e *Equation) Satisfied(bindings map[string]float64, epsilon float64) (bool, error) {
	left, err := e.left.EvaluateWith(bindings)
	if err != nil {
		return false, err
	}
	right, err := e.right.EvaluateWith(bindings)
	if err != nil {
		return false, err
	}
	difference := left - right
	if difference < 0 {
		difference = -difference
	}
	return difference <= epsilon, nil
}

func (e *Equation) ToDisplayText() string {
	return e.left.ToDisplayText() + " = " + e.right.ToDisplayText()
}

func (e *Equation) ToLatex() string {
	return e.left.ToLatex() + " = " + e.right.ToLatex()
}

func (e *Equation) Precedence() int {
	return PrecedenceEquation
}

func (e *Equation) Accept(v Visitor) any {
	return v.VisitEquation(e)
}

// EquationSystem is an ordered list of equations.
type EquationSystem struct {
	equations []*Equation
}

// NewEquationSystem creates an EquationSystem.
func NewEquationSystem(equations ...*Equation) *EquationSystem {
	return &EquationSystem{equations: equations}
}

// Equations returns the ordered equations.
func (s *EquationSystem) Equations() []*Equation {
	return s.equations
}

func (s *EquationSystem) Evaluate() (float64, error) {
	return 0, fmt.Errorf("%w: an equation system has no scalar value", ErrUnsupportedOperation)
}

func (s *EquationSystem) EvaluateWith(map[string]float64) (float64, error) {
	return 0, fmt.Errorf("%w: an equation system has no scalar value", ErrUnsupportedOperation)
}

func (s *EquationSystem) ToDisplayText() string {
	parts := make([]string, len(s.equations))
	for i, equation := range s.equations {
		parts[i] = equation.ToDisplayText()
	}
	return strings.Join(parts, "; ")
}

func (s *EquationSystem) ToLatex() string {
	parts := make([]string, len(s.equations))
	for i, equation := range s.equations {
		parts[i] = equation.ToLatex()
	}
	return "\\begin{cases}" + strings.Join(parts, " \\\\ ") + "\\end{cases}"
}

func (s *EquationSystem) Precedence() int {
	return PrecedenceEquation
}

func (s *EquationSystem) Accept(v Visitor) any {
	return v.VisitEquationSystem(s)
}
