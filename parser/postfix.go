package parser

import (
	"fmt"
	"strconv"

	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/tokenizer"
)

// postfixItem is one output of the shunting-yard conversion. Function items
// carry the argument count recorded at their closing parenthesis, which is
// how variadic calls keep their arity through the postfix form.
type postfixItem struct {
	token    tokenizer.Token
	argCount int
}

// tokenPrecedence returns shunting-yard precedence for operator tokens.
func tokenPrecedence(t tokenizer.TokenType) int {
	switch t {
	case tokenizer.EQUAL:
		return 1
	case tokenizer.NOT_EQUAL, tokenizer.LESS_THAN, tokenizer.GREATER_THAN,
		tokenizer.LESS_EQUAL, tokenizer.GREATER_EQUAL:
		return 2
	case tokenizer.PLUS, tokenizer.MINUS:
		return 3
	case tokenizer.MULTIPLY, tokenizer.DIVIDE, tokenizer.MODULO:
		return 4
	case tokenizer.UNARY_MINUS:
		return 5
	case tokenizer.POWER:
		return 6
	default:
		return 0
	}
}

func rightAssociative(t tokenizer.TokenType) bool {
	return t == tokenizer.POWER || t == tokenizer.UNARY_MINUS
}

func isOperatorToken(t tokenizer.TokenType) bool {
	return t.IsOperator() || t == tokenizer.UNARY_MINUS
}

// toPostfix converts infix tokens to postfix order.
func toPostfix(tokens []tokenizer.Token) ([]postfixItem, error) {
	var output []postfixItem
	var ops []tokenizer.Token

	// per open parenthesis: is it a function call, and its argument count
	var parenIsCall []bool
	var argCounts []int

	previous := tokenizer.EOF
	for _, token := range tokens {
		switch {
		case token.Type == tokenizer.NUMBER || token.Type == tokenizer.IDENTIFIER || token.Type == tokenizer.CONSTANT:
			output = append(output, postfixItem{token: token})

		case token.Type == tokenizer.FUNCTION:
			ops = append(ops, token)

		case token.Type == tokenizer.OPENED_PARENS:
			ops = append(ops, token)
			parenIsCall = append(parenIsCall, previous == tokenizer.FUNCTION)
			argCounts = append(argCounts, 0)

		case token.Type == tokenizer.COMMA:
			if err := popUntilParen(&ops, &output); err != nil {
				return nil, fmt.Errorf("%w: comma outside parentheses at line %d, column %d",
					ErrSyntax, token.Position.Line, token.Position.Column)
			}
			if len(parenIsCall) == 0 || !parenIsCall[len(parenIsCall)-1] {
				return nil, fmt.Errorf("%w: comma outside a function call at line %d, column %d",
					ErrSyntax, token.Position.Line, token.Position.Column)
			}
			argCounts[len(argCounts)-1]++

		case token.Type == tokenizer.CLOSED_PARENS:
			if previous == tokenizer.OPENED_PARENS {
				return nil, fmt.Errorf("%w: empty parentheses at line %d, column %d",
					ErrSyntax, token.Position.Line, token.Position.Column)
			}
			if err := popUntilParen(&ops, &output); err != nil {
				return nil, fmt.Errorf("%w: unexpected ')' at line %d, column %d",
					ErrUnmatchedParenthesis, token.Position.Line, token.Position.Column)
			}
			ops = ops[:len(ops)-1] // drop the '('

			count := argCounts[len(argCounts)-1] + 1
			isCall := parenIsCall[len(parenIsCall)-1]
			argCounts = argCounts[:len(argCounts)-1]
			parenIsCall = parenIsCall[:len(parenIsCall)-1]

			if isCall {
				function := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				output = append(output, postfixItem{token: function, argCount: count})
			}

		case isOperatorToken(token.Type):
			precedence := tokenPrecedence(token.Type)
			// a prefix minus has no left operand, so nothing pending on
			// the stack can be completed by popping it here
			for len(ops) > 0 && token.Type != tokenizer.UNARY_MINUS {
				top := ops[len(ops)-1]
				if !isOperatorToken(top.Type) {
					break
				}
				topPrecedence := tokenPrecedence(top.Type)
				if topPrecedence > precedence || (topPrecedence == precedence && !rightAssociative(token.Type)) {
					output = append(output, postfixItem{token: top})
					ops = ops[:len(ops)-1]
					continue
				}
				break
			}
			ops = append(ops, token)

		default:
			return nil, fmt.Errorf("%w: unexpected token %s at line %d, column %d",
				ErrSyntax, token, token.Position.Line, token.Position.Column)
		}

		previous = token.Type
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.Type == tokenizer.OPENED_PARENS {
			return nil, fmt.Errorf("%w: missing ')' for '(' at line %d, column %d",
				ErrUnmatchedParenthesis, top.Position.Line, top.Position.Column)
		}
		output = append(output, postfixItem{token: top})
	}

	return output, nil
}

// popUntilParen moves operators to output until an open parenthesis is on
// top of the stack.
func popUntilParen(ops *[]tokenizer.Token, output *[]postfixItem) error {
	for len(*ops) > 0 {
		top := (*ops)[len(*ops)-1]
		if top.Type == tokenizer.OPENED_PARENS {
			return nil
		}
		*output = append(*output, postfixItem{token: top})
		*ops = (*ops)[:len(*ops)-1]
	}
	return ErrUnmatchedParenthesis
}

// binaryOperators maps operator tokens to expression operators.
var binaryOperators = map[tokenizer.TokenType]expression.Operator{
	tokenizer.PLUS:          expression.Add,
	tokenizer.MINUS:         expression.Subtract,
	tokenizer.MULTIPLY:      expression.Multiply,
	tokenizer.DIVIDE:        expression.Divide,
	tokenizer.POWER:         expression.Power,
	tokenizer.MODULO:        expression.Modulo,
	tokenizer.NOT_EQUAL:     expression.NotEqual,
	tokenizer.LESS_THAN:     expression.LessThan,
	tokenizer.GREATER_THAN:  expression.GreaterThan,
	tokenizer.LESS_EQUAL:    expression.LessEqual,
	tokenizer.GREATER_EQUAL: expression.GreaterEqual,
}

// buildTree interprets postfix items on an expression stack.
func (p *Parser) buildTree(postfix []postfixItem) (expression.Expression, error) {
	var stack []expression.Expression

	pop := func() (expression.Expression, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, true
	}

	for _, item := range postfix {
		token := item.token

		switch token.Type {
		case tokenizer.NUMBER:
			value, err := strconv.ParseFloat(token.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at line %d, column %d",
					ErrSyntax, token.Value, token.Position.Line, token.Position.Column)
			}
			stack = append(stack, expression.NewNumber(value))

		case tokenizer.IDENTIFIER:
			stack = append(stack, expression.NewVariable(token.Value))

		case tokenizer.CONSTANT:
			value, ok := p.constants[token.Value]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownConstant, token.Value)
			}
			stack = append(stack, expression.NewNumber(value))

		case tokenizer.FUNCTION:
			spec, ok := p.functions[token.Value]
			if !ok {
				return nil, fmt.Errorf("%w: %s", expression.ErrUnknownFunction, token.Value)
			}
			if !spec.Variadic && item.argCount != spec.Arity {
				return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d",
					expression.ErrInvalidArgumentCount, token.Value, spec.Arity, item.argCount)
			}
			if item.argCount < 1 || item.argCount > len(stack) {
				return nil, fmt.Errorf("%w: malformed call to %s", ErrSyntax, token.Value)
			}
			arguments := make([]expression.Expression, item.argCount)
			for i := item.argCount - 1; i >= 0; i-- {
				arguments[i], _ = pop()
			}
			stack = append(stack, expression.NewFunction(token.Value, arguments...))

		case tokenizer.UNARY_MINUS:
			operand, ok := pop()
			if !ok {
				return nil, fmt.Errorf("%w: dangling negation", ErrSyntax)
			}
			stack = append(stack, expression.Negate(operand))

		case tokenizer.EQUAL:
			right, okRight := pop()
			left, okLeft := pop()
			if !okRight || !okLeft {
				return nil, fmt.Errorf("%w: '=' needs two operands", ErrSyntax)
			}
			stack = append(stack, expression.NewEquation(left, right))

		default:
			operator, ok := binaryOperators[token.Type]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected token %s", ErrSyntax, token)
			}
			right, okRight := pop()
			left, okLeft := pop()
			if !okRight || !okLeft {
				return nil, fmt.Errorf("%w: operator %q needs two operands at line %d, column %d",
					ErrSyntax, token.Value, token.Position.Line, token.Position.Column)
			}
			stack = append(stack, expression.NewBinary(left, operator, right))
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: malformed expression", ErrSyntax)
	}
	return stack[0], nil
}
