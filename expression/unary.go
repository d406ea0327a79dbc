package expression

// Unary is a negated operand.
type Unary struct {
	operand Expression
}

// Negate creates a negation of operand.
func Negate(operand Expression) *Unary {
	return &Unary{operand: operand}
}

// Operand returns the negated expression.
func (u *Unary) Operand() Expression {
	return u.operand
}

func (u *Unary) Evaluate() (float64, error) {
	return u.EvaluateWith(nil)
}

func (u *Unary) EvaluateWith(bindings map[string]float64) (float64, error) {
	value, err := u.operand.EvaluateWith(bindings)
	if err != nil {
		return 0, err
	}
	return -value, nil
}

func (u *Unary) ToDisplayText() string {
	if u.operand.Precedence() <= PrecedenceAdditive {
		return "-(" + u.operand.ToDisplayText() + ")"
	}
	return "-" + u.operand.ToDisplayText()
}

func (u *Unary) ToLatex() string {
	if u.operand.Precedence() <= PrecedenceAdditive {
		return "-\\left(" + u.operand.ToLatex() + "\\right)"
	}
	return "-" + u.operand.ToLatex()
}

// Precedence is additive level so that enclosing products and powers
// parenthesize a negation.
func (u *Unary) Precedence() int {
	return PrecedenceAdditive
}

func (u *Unary) Accept(v Visitor) any {
	return v.VisitUnary(u)
}
