package expression

import "math"

// Binary is an operator applied to two operands.
type Binary struct {
	left     Expression
	right    Expression
	operator Operator
}

// NewBinary creates a Binary.
func NewBinary(left Expression, operator Operator, right Expression) *Binary {
	return &Binary{left: left, right: right, operator: operator}
}

// Left returns the left operand.
func (b *Binary) Left() Expression {
	return b.left
}

// Right returns the right operand.
func (b *Binary) Right() Expression {
	return b.right
}

// Operator returns the operator.
func (b *Binary) Operator() Operator {
	return b.operator
}

func (b *Binary) Evaluate() (float64, error) {
	return b.EvaluateWith(nil)
}

func (b *Binary) EvaluateWith(bindings map[string]float64) (float64, error) {
	left, err := b.left.EvaluateWith(bindings)
	if err != nil {
		return 0, err
	}
	right, err := b.right.EvaluateWith(bindings)
	if err != nil {
		return 0, err
	}

	switch b.operator {
	case Add:
		return left + right, nil
	case Subtract:
		return left - right, nil
	case Multiply:
		return left * right, nil
	case Divide:
		// Division by zero is not-a-number, not a failure.
		if right == 0 {
			return math.NaN(), nil
		}
		return left / right, nil
	case Power:
		return math.Pow(left, right), nil
	case Modulo:
		if right == 0 {
			return math.NaN(), nil
		}
		return math.Mod(left, right), nil
	case NotEqual:
		return truth(left != right), nil
	case LessThan:
		return truth(left < right), nil
	case GreaterThan:
		return truth(left > right), nil
	case LessEqual:
		return truth(left <= right), nil
	case GreaterEqual:
		return truth(left >= right), nil
	default:
		return math.NaN(), nil
	}
}

// truth maps comparison results to 1.0/0.0.
func truth(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func (b *Binary) ToDisplayText() string {
	if b.operator == Power {
		return b.powerDisplayText()
	}

	left := b.left.ToDisplayText()
	if b.left.Precedence() < b.Precedence() {
		left = "(" + left + ")"
	}

	right := b.right.ToDisplayText()
	if b.needsRightParens() {
		right = "(" + right + ")"
	}

	if b.Precedence() >= PrecedenceMultiply {
		return left + b.operator.Symbol() + right
	}
	return left + " " + b.operator.Symbol() + " " + right
}

// powerDisplayText renders integer exponents superscripted (x²) and falls
// back to the caret form otherwise.
func (b *Binary) powerDisplayText() string {
	base := b.left.ToDisplayText()
	if b.left.Precedence() < PrecedencePower {
		base = "(" + base + ")"
	}

	if number, ok := b.right.(*Number); ok && IsInteger(number.Value()) {
		return base + Superscript(FormatNumber(number.Value()))
	}

	exponent := b.right.ToDisplayText()
	if b.right.Precedence() <= PrecedencePower {
		exponent = "(" + exponent + ")"
	}
	return base + "^" + exponent
}

// needsRightParens implements the lower-or-equal rule for the right operand
// of non-commutative operators.
func (b *Binary) needsRightParens() bool {
	if b.right.Precedence() < b.Precedence() {
		return true
	}
	return b.right.Precedence() == b.Precedence() && !b.operator.IsCommutative()
}

func (b *Binary) ToLatex() string {
	switch b.operator {
	case Divide:
		return "\\frac{" + b.left.ToLatex() + "}{" + b.right.ToLatex() + "}"
	case Power:
		base := b.left.ToLatex()
		if b.left.Precedence() < PrecedencePower {
			base = "\\left(" + base + "\\right)"
		}
		return base + "^{" + b.right.ToLatex() + "}"
	}

	left := b.left.ToLatex()
	if b.left.Precedence() < b.Precedence() {
		left = "\\left(" + left + "\\right)"
	}

	right := b.right.ToLatex()
	if b.needsRightParens() {
		right = "\\left(" + right + "\\right)"
	}

	return left + " " + b.latexSymbol() + " " + right
}

func (b *Binary) latexSymbol() string {
	switch b.operator {
	case Multiply:
		return "\\cdot"
	case Modulo:
		return "\\bmod"
	case NotEqual:
		return "\\neq"
	case LessEqual:
		return "\\le"
	case GreaterEqual:
		return "\\ge"
	default:
		return b.operator.Symbol()
	}
}

func (b *Binary) Precedence() int {
	return b.operator.Precedence()
}

func (b *Binary) Accept(v Visitor) any {
	return v.VisitBinary(b)
}
