package simplify

import (
	"github.com/VrezenStrijder/SharpMath/expression"
)

// rewrite rules the expand pass can fire. One fired rule gives the step its
// specific description; several collapse to a generic one.
type rule int

const (
	ruleConstantFold rule = iota
	ruleDistribute
	rulePower
	ruleNegation
	ruleFunctionFold
	ruleSqrtSquare
	ruleNegativeSquare
	ruleSquareExpand
)

var ruleDescriptions = map[rule]string{
	ruleConstantFold:   "fold constant subexpressions",
	ruleDistribute:     "distribute the product over sums",
	rulePower:          "apply the power rules",
	ruleNegation:       "fold the negated constant",
	ruleFunctionFold:   "evaluate the constant function",
	ruleSqrtSquare:     "cancel the square root against the square",
	ruleNegativeSquare: "squaring removes the negation",
	ruleSquareExpand:   "expand the squared sum",
}

// expander runs one bottom-up expansion sweep. The caller iterates sweeps
// until the textual form stabilizes.
type expander struct {
	fired map[rule]bool
}

func (e *expander) fire(r rule) {
	if e.fired == nil {
		e.fired = make(map[rule]bool)
	}
	e.fired[r] = true
}

func (e *expander) description() string {
	if len(e.fired) == 1 {
		for r := range e.fired {
			return ruleDescriptions[r]
		}
	}
	return "expand and simplify"
}

func (e *expander) expand(expr expression.Expression) expression.Expression {
	return expr.Accept(e).(expression.Expression)
}

func (e *expander) VisitNumber(n *expression.Number) any {
	return expression.Expression(n)
}

func (e *expander) VisitVariable(v *expression.Variable) any {
	return expression.Expression(v)
}

func (e *expander) VisitUnary(u *expression.Unary) any {
	operand := e.expand(u.Operand())
	if number, ok := operand.(*expression.Number); ok {
		e.fire(ruleNegation)
		return expression.Expression(expression.NewNumber(-number.Value()))
	}
	return expression.Expression(expression.Negate(operand))
}

func (e *expander) VisitBinary(b *expression.Binary) any {
	left := e.expand(b.Left())
	right := e.expand(b.Right())

	_, leftNumber := left.(*expression.Number)
	_, rightNumber := right.(*expression.Number)
	if leftNumber && rightNumber {
		value, err := expression.NewBinary(left, b.Operator(), right).Evaluate()
		if err == nil {
			e.fire(ruleConstantFold)
			return expression.Expression(expression.NewNumber(value))
		}
	}

	switch b.Operator() {
	case expression.Multiply:
		if product := e.distribute(left, right); product != nil {
			return expression.Expression(product)
		}
	case expression.Power:
		if power := e.expandPower(left, right); power != nil {
			return expression.Expression(power)
		}
	}

	return expression.Expression(expression.NewBinary(left, b.Operator(), right))
}

// distribute expands (Σ termsL)·(Σ termsR) into the signed cross product.
// Returns nil when neither side is a sum.
func (e *expander) distribute(left, right expression.Expression) expression.Expression {
	leftParts := expression.SignedParts(left)
	rightParts := expression.SignedParts(right)
	if len(leftParts) < 2 && len(rightParts) < 2 {
		return nil
	}

	e.fire(ruleDistribute)
	var sum expression.Expression
	for _, l := range leftParts {
		for _, r := range rightParts {
			product := expression.NewBinary(l.Expr, expression.Multiply, r.Expr)
			sum = accumulate(sum, product, l.Negative != r.Negative)
		}
	}
	return sum
}

// expandPower applies x^0=1, x^1=x, sqrt(e)^2=e, (-e)^2=e^2 and the binomial
// square. Returns nil when no rule applies.
func (e *expander) expandPower(base, exponent expression.Expression) expression.Expression {
	number, ok := exponent.(*expression.Number)
	if !ok {
		return nil
	}

	switch number.Value() {
	case 0:
		e.fire(rulePower)
		return expression.NewNumber(1)
	case 1:
		e.fire(rulePower)
		return base
	case 2:
		switch typed := base.(type) {
		case *expression.Function:
			if typed.Name() == expression.SqrtName && len(typed.Arguments()) == 1 {
				e.fire(ruleSqrtSquare)
				return typed.Arguments()[0]
			}
		case *expression.Unary:
			e.fire(ruleNegativeSquare)
			return expression.NewBinary(typed.Operand(), expression.Power, expression.NewNumber(2))
		case *expression.Binary:
			if typed.Operator() == expression.Add || typed.Operator() == expression.Subtract {
				e.fire(ruleSquareExpand)
				return squareBinomial(typed)
			}
		}
	}
	return nil
}

// squareBinomial rewrites (a±b)² as a² ± 2*a*b + b².
func squareBinomial(b *expression.Binary) expression.Expression {
	a := b.Left()
	c := b.Right()
	two := expression.NewNumber(2)

	aSquared := expression.NewBinary(a, expression.Power, expression.NewNumber(2))
	cSquared := expression.NewBinary(c, expression.Power, expression.NewNumber(2))
	middle := expression.NewBinary(
		expression.NewBinary(two, expression.Multiply, a),
		expression.Multiply, c)

	middleOp := expression.Add
	if b.Operator() == expression.Subtract {
		middleOp = expression.Subtract
	}
	return expression.NewBinary(
		expression.NewBinary(aSquared, middleOp, middle),
		expression.Add, cSquared)
}

func accumulate(sum, part expression.Expression, negative bool) expression.Expression {
	if sum == nil {
		if negative {
			return expression.Negate(part)
		}
		return part
	}
	if negative {
		return expression.NewBinary(sum, expression.Subtract, part)
	}
	return expression.NewBinary(sum, expression.Add, part)
}

func (e *expander) VisitFunction(f *expression.Function) any {
	arguments := make([]expression.Expression, len(f.Arguments()))
	allNumbers := true
	for i, argument := range f.Arguments() {
		arguments[i] = e.expand(argument)
		if _, ok := arguments[i].(*expression.Number); !ok {
			allNumbers = false
		}
	}

	rebuilt := expression.NewFunction(f.Name(), arguments...)
	if allNumbers {
		if value, err := rebuilt.Evaluate(); err == nil {
			e.fire(ruleFunctionFold)
			return expression.Expression(expression.NewNumber(value))
		}
	}
	return expression.Expression(rebuilt)
}

func (e *expander) VisitEquation(eq *expression.Equation) any {
	return expression.Expression(expression.NewEquation(e.expand(eq.Left()), e.expand(eq.Right())))
}

func (e *expander) VisitEquationSystem(s *expression.EquationSystem) any {
	equations := make([]*expression.Equation, len(s.Equations()))
	for i, equation := range s.Equations() {
		equations[i] = e.expand(equation).(*expression.Equation)
	}
	return expression.Expression(expression.NewEquationSystem(equations...))
}

func (e *expander) VisitMatrix(m *expression.Matrix) any {
	return expression.Expression(m)
}
