package expression

// Number is a numeric literal.
type Number struct {
	value float64
}

// NewNumber creates a Number.
func NewNumber(value float64) *Number {
	return &Number{value: value}
}

// Value returns the numeric value.
func (n *Number) Value() float64 {
	return n.value
}

func (n *Number) Evaluate() (float64, error) {
	return n.value, nil
}

func (n *Number) EvaluateWith(map[string]float64) (float64, error) {
	return n.value, nil
}

func (n *Number) ToDisplayText() string {
	return FormatNumber(n.value)
}

func (n *Number) ToLatex() string {
	return FormatNumber(n.value)
}

// Precedence treats negative literals like a negation so that rendering
// parenthesizes e.g. 2*(-3).
func (n *Number) Precedence() int {
	if n.value < 0 {
		return PrecedenceAdditive
	}
	return PrecedenceAtom
}

func (n *Number) Accept(v Visitor) any {
	return v.VisitNumber(n)
}
