// Package calculation defines the step-by-step result shared by every
// solver: an ordered trace of intermediate expressions with descriptions.
package calculation

import (
	"errors"

	"github.com/VrezenStrijder/SharpMath/expression"
)

// ErrNoSolver is returned when no solver handles a calculation type.
var ErrNoSolver = errors.New("no solver available")

// SortOrder controls how the simplifier orders terms in its final pass.
type SortOrder int

const (
	SortDescending SortOrder = iota
	SortAscending
)

// Step is one intermediate state of a calculation. Description explains the
// transformation that produced Result; DescriptionAfter places the
// description after the expression when rendering.
type Step struct {
	Result           expression.Expression
	Index            int
	Description      string
	DescriptionAfter bool
}

// Result is the outcome of one solver run over one input expression.
type Result struct {
	Input expression.Expression
	Final expression.Expression
	steps []Step
}

// NewResult creates a result for the given input. Final starts equal to the
// input and advances with every appended step.
func NewResult(input expression.Expression) *Result {
	return &Result{Input: input, Final: input}
}

// Append records an intermediate expression. The step is dropped when its
// display text matches the previous state, so rewrites that change nothing
// visible do not clutter the trace. Final still advances to the new
// expression either way.
func (r *Result) Append(expr expression.Expression, description string) {
	r.AppendPlaced(expr, description, false)
}

// AppendPlaced is Append with control over description placement.
func (r *Result) AppendPlaced(expr expression.Expression, description string, after bool) {
	if expr.ToDisplayText() == r.Final.ToDisplayText() {
		r.Final = expr
		return
	}
	r.steps = append(r.steps, Step{
		Result:           expr,
		Index:            len(r.steps),
		Description:      description,
		DescriptionAfter: after,
	})
	r.Final = expr
}

// Steps returns the recorded steps in order.
func (r *Result) Steps() []Step {
	return r.steps
}

// Solver turns an expression into a traced result.
type Solver interface {
	Process(expr expression.Expression, order SortOrder) (*Result, error)
}
