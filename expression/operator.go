package expression

// Operator identifies a binary operator.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Power
	Modulo
	NotEqual
	LessThan
	GreaterThan
	LessEqual
	GreaterEqual
)

// Symbol returns the display symbol of the operator.
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Power:
		return "^"
	case Modulo:
		return "%"
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Precedence returns the binding strength of the operator.
func (o Operator) Precedence() int {
	switch o {
	case Power:
		return PrecedencePower
	case Multiply, Divide, Modulo:
		return PrecedenceMultiply
	case Add, Subtract:
		return PrecedenceAdditive
	default:
		return PrecedenceComparison
	}
}

// IsCommutative reports whether operand order is irrelevant. The right
// operand of a non-commutative operator is parenthesized on equal
// precedence as well.
func (o Operator) IsCommutative() bool {
	switch o {
	case Add, Multiply:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the operator yields a truth value.
func (o Operator) IsComparison() bool {
	switch o {
	case NotEqual, LessThan, GreaterThan, LessEqual, GreaterEqual:
		return true
	default:
		return false
	}
}
