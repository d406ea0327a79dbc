package expression

import "fmt"

// Variable is a named free variable.
type Variable struct {
	name string
}

// NewVariable creates a Variable.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// Name returns the variable name.
func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Evaluate() (float64, error) {
	return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, v.name)
}

func (v *Variable) EvaluateWith(bindings map[string]float64) (float64, error) {
	value, ok := bindings[v.name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnboundVariable, v.name)
	}
	return value, nil
}

func (v *Variable) ToDisplayText() string {
	return v.name
}

func (v *Variable) ToLatex() string {
	return v.name
}

func (v *Variable) Precedence() int {
	return PrecedenceAtom
}

func (v *Variable) Accept(visitor Visitor) any {
	return visitor.VisitVariable(v)
}
