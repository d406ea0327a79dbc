// Package expression defines the immutable expression tree shared by the
// parsers, the simplifier and the solvers, together with the visitor
// contract every traversal algorithm is written against.
package expression

import "errors"

// Sentinel errors
var (
	ErrUnboundVariable      = errors.New("unbound variable")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrUnknownFunction      = errors.New("unknown function")
	ErrInvalidArgumentCount = errors.New("invalid argument count")
)

// Precedence levels. Higher binds tighter; parenthesization compares these.
const (
	PrecedenceEquation   = 0
	PrecedenceComparison = 1
	PrecedenceAdditive   = 2 // also negations and negative literals
	PrecedenceMultiply   = 3
	PrecedencePower      = 4
	PrecedenceAtom       = 5
)

// Expression is one node of the immutable expression tree. Transformations
// always build new trees; no node is mutated after construction, so
// concurrent reads of a shared tree are safe.
type Expression interface {
	// Evaluate computes the numeric value; it fails with ErrUnboundVariable
	// if any variable is referenced.
	Evaluate() (float64, error)
	// EvaluateWith computes the numeric value resolving variables from
	// bindings; it fails with ErrUnboundVariable for missing names.
	EvaluateWith(bindings map[string]float64) (float64, error)
	// ToDisplayText renders plain text, parenthesizing a child only when its
	// precedence requires it.
	ToDisplayText() string
	// ToLatex renders LaTeX markup.
	ToLatex() string
	// Precedence reports the node's binding strength for rendering.
	Precedence() int
	// Accept dispatches to the visitor method for the concrete variant.
	Accept(v Visitor) any
}

// Visitor has one method per expression variant. All traversal algorithms
// (variable detection, substitution, term collection, ...) are visitors;
// no variant carries algorithm-specific logic itself.
type Visitor interface {
	VisitNumber(n *Number) any
	VisitVariable(v *Variable) any
	VisitUnary(u *Unary) any
	VisitBinary(b *Binary) any
	VisitFunction(f *Function) any
	VisitEquation(e *Equation) any
	VisitEquationSystem(s *EquationSystem) any
	VisitMatrix(m *Matrix) any
}
