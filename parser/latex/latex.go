// Package latex parses LaTeX math notation with a recursive-descent grammar
// (expression → term → factor → group) written over parsercombinator token
// streams.
package latex

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/tokenizer"
)

// Sentinel errors
var (
	ErrFormat          = errors.New("invalid latex format")
	ErrUnmatchedGroup  = errors.New("unmatched brace or parenthesis")
	ErrUnknownCommand  = errors.New("unknown latex command")
	ErrEmptyExpression = errors.New("empty expression")
)

// Entity is the parsercombinator payload: the original token, plus the
// expression synthesized for a reduced group.
type Entity struct {
	Original tokenizer.Token
	Expr     expression.Expression
}

type entityToken = pc.Token[Entity]

// Parser parses LaTeX text into expression trees.
type Parser struct {
	notation *tokenizer.Notation
}

// New creates a LaTeX parser.
func New() *Parser {
	return &Parser{notation: tokenizer.NewLatexNotation()}
}

// Parse parses LaTeX text. A top-level '=' produces an Equation.
func (p *Parser) Parse(text string) (expression.Expression, error) {
	tokens, err := tokenizer.NewExpressionTokenizer(text, p.notation, tokenizer.TokenizerOptions{
		SkipWhitespace: true,
	}).AllTokens()
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}

	pctx := pc.NewParseContext[Entity]()
	entities := tokenToEntity(normalize(tokens))
	if len(entities) == 0 {
		return nil, ErrEmptyExpression
	}

	consumed, parsed, err := parseEquation(pctx, entities)
	if err != nil {
		return nil, err
	}
	if consumed != len(entities) {
		trailing := entities[consumed].Val.Original
		return nil, fmt.Errorf("%w: unexpected %q at line %d, column %d",
			ErrFormat, trailing.Value, trailing.Position.Line, trailing.Position.Column)
	}

	return parsed[0].Val.Expr, nil
}

// normalize rewrites layout commands: \cdot and \times become '*', \left and
// \right vanish so output of ToLatex parses back.
func normalize(tokens []tokenizer.Token) []tokenizer.Token {
	results := make([]tokenizer.Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Type == tokenizer.COMMAND {
			switch token.Value {
			case "cdot", "times":
				token.Type = tokenizer.MULTIPLY
				token.Value = "*"
			case "left", "right":
				continue
			case "pi":
				token.Type = tokenizer.CONSTANT
			}
		}
		results = append(results, token)
	}
	return results
}

func tokenToEntity(tokens []tokenizer.Token) []entityToken {
	results := make([]entityToken, 0, len(tokens))
	for _, token := range tokens {
		results = append(results, entityToken{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: Entity{Original: token},
			Raw: token.Value,
		})
	}
	return results
}

// reduced wraps a built expression as a single synthesized token.
func reduced(expr expression.Expression) []entityToken {
	return []entityToken{{
		Type: "expression",
		Val:  Entity{Expr: expr},
	}}
}

func errorAt(sentinel error, tokens []entityToken, message string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: %s at end of input", sentinel, message)
	}
	position := tokens[0].Val.Original.Position
	return fmt.Errorf("%w: %s at line %d, column %d", sentinel, message, position.Line, position.Column)
}

// parseEquation: expression ('=' expression)?
func parseEquation(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	consumed, left, err := parseExpression(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	if consumed < len(tokens) && tokens[consumed].Val.Original.Type == tokenizer.EQUAL {
		rightConsumed, right, err := parseExpression(pctx, tokens[consumed+1:])
		if err != nil {
			return 0, nil, err
		}
		equation := expression.NewEquation(left[0].Val.Expr, right[0].Val.Expr)
		return consumed + 1 + rightConsumed, reduced(equation), nil
	}

	return consumed, left, nil
}

// parseExpression: term (('+' | '-') term)*
func parseExpression(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	consumed, left, err := parseTerm(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	result := left[0].Val.Expr
	for consumed < len(tokens) {
		tokenType := tokens[consumed].Val.Original.Type
		var operator expression.Operator
		switch tokenType {
		case tokenizer.PLUS:
			operator = expression.Add
		case tokenizer.MINUS:
			operator = expression.Subtract
		default:
			return consumed, reduced(result), nil
		}

		rightConsumed, right, err := parseTerm(pctx, tokens[consumed+1:])
		if err != nil {
			return 0, nil, err
		}
		result = expression.NewBinary(result, operator, right[0].Val.Expr)
		consumed += 1 + rightConsumed
	}

	return consumed, reduced(result), nil
}

// parseTerm: factor (('*' | '/') factor)*
func parseTerm(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	consumed, left, err := parseFactor(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	result := left[0].Val.Expr
	for consumed < len(tokens) {
		tokenType := tokens[consumed].Val.Original.Type
		var operator expression.Operator
		switch tokenType {
		case tokenizer.MULTIPLY:
			operator = expression.Multiply
		case tokenizer.DIVIDE:
			operator = expression.Divide
		default:
			return consumed, reduced(result), nil
		}

		rightConsumed, right, err := parseFactor(pctx, tokens[consumed+1:])
		if err != nil {
			return 0, nil, err
		}
		result = expression.NewBinary(result, operator, right[0].Val.Expr)
		consumed += 1 + rightConsumed
	}

	return consumed, reduced(result), nil
}

// parseFactor: group ('^' group)?  — the exponent may be brace-grouped.
func parseFactor(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	consumed, base, err := parseGroup(pctx, tokens)
	if err != nil {
		return 0, nil, err
	}

	if consumed < len(tokens) && tokens[consumed].Val.Original.Type == tokenizer.POWER {
		exponentConsumed, exponent, err := parseGroup(pctx, tokens[consumed+1:])
		if err != nil {
			return 0, nil, err
		}
		power := expression.NewBinary(base[0].Val.Expr, expression.Power, exponent[0].Val.Expr)
		return consumed + 1 + exponentConsumed, reduced(power), nil
	}

	return consumed, base, nil
}

// parseGroup: NUMBER | IDENTIFIER | CONSTANT | '-' factor | '(' expr ')' |
// '{' expr '}' | command
func parseGroup(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	if len(tokens) == 0 {
		return 0, nil, fmt.Errorf("%w: missing operand at end of input", ErrFormat)
	}

	token := tokens[0].Val.Original
	switch token.Type {
	case tokenizer.NUMBER:
		value, err := parseNumber(token)
		if err != nil {
			return 0, nil, err
		}
		return 1, reduced(value), nil

	case tokenizer.IDENTIFIER:
		return 1, reduced(expression.NewVariable(token.Value)), nil

	case tokenizer.CONSTANT:
		value, ok := constantValue(token.Value)
		if !ok {
			return 0, nil, errorAt(ErrFormat, tokens, "unknown constant "+token.Value)
		}
		return 1, reduced(expression.NewNumber(value)), nil

	case tokenizer.UNARY_MINUS:
		consumed, operand, err := parseFactor(pctx, tokens[1:])
		if err != nil {
			return 0, nil, err
		}
		return 1 + consumed, reduced(expression.Negate(operand[0].Val.Expr)), nil

	case tokenizer.OPENED_PARENS:
		return parseDelimited(pctx, tokens, tokenizer.CLOSED_PARENS)

	case tokenizer.OPENED_BRACE:
		return parseDelimited(pctx, tokens, tokenizer.CLOSED_BRACE)

	case tokenizer.COMMAND, tokenizer.FUNCTION:
		return parseCommand(pctx, tokens)

	default:
		return 0, nil, errorAt(ErrFormat, tokens, fmt.Sprintf("unexpected %q", token.Value))
	}
}

// parseDelimited parses '(' expr ')' or '{' expr '}'.
func parseDelimited(pctx *pc.ParseContext[Entity], tokens []entityToken, closing tokenizer.TokenType) (int, []entityToken, error) {
	consumed, inner, err := parseExpression(pctx, tokens[1:])
	if err != nil {
		return 0, nil, err
	}

	end := 1 + consumed
	if end >= len(tokens) || tokens[end].Val.Original.Type != closing {
		return 0, nil, errorAt(ErrUnmatchedGroup, tokens, "no closing delimiter for "+tokens[0].Val.Original.Value)
	}

	return end + 1, inner, nil
}

// parseCommand parses \frac{a}{b}, \sqrt{a} and generic \name(...) calls.
// Function identifiers like sqrt(x) take the generic path as well.
func parseCommand(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	token := tokens[0].Val.Original
	rest := tokens[1:]

	switch token.Value {
	case "frac":
		consumed, numerator, err := parseBraceGroup(pctx, rest)
		if err != nil {
			return 0, nil, err
		}
		denominatorConsumed, denominator, err := parseBraceGroup(pctx, rest[consumed:])
		if err != nil {
			return 0, nil, err
		}
		fraction := expression.NewBinary(numerator[0].Val.Expr, expression.Divide, denominator[0].Val.Expr)
		return 1 + consumed + denominatorConsumed, reduced(fraction), nil

	case "sqrt":
		// \sqrt{x}; plain sqrt(x) is handled by the argument-list path below
		if len(rest) > 0 && rest[0].Val.Original.Type == tokenizer.OPENED_BRACE {
			consumed, operand, err := parseBraceGroup(pctx, rest)
			if err != nil {
				return 0, nil, err
			}
			return 1 + consumed, reduced(expression.NewFunction(expression.SqrtName, operand[0].Val.Expr)), nil
		}
	}

	if len(rest) == 0 || rest[0].Val.Original.Type != tokenizer.OPENED_PARENS {
		return 0, nil, errorAt(ErrFormat, tokens, "command "+token.Value+" needs arguments")
	}

	consumed := 1 // the '('
	var arguments []expression.Expression
	for {
		argumentConsumed, argument, err := parseExpression(pctx, rest[consumed:])
		if err != nil {
			return 0, nil, err
		}
		arguments = append(arguments, argument[0].Val.Expr)
		consumed += argumentConsumed

		if consumed >= len(rest) {
			return 0, nil, errorAt(ErrUnmatchedGroup, tokens, "no closing parenthesis for "+token.Value)
		}
		separator := rest[consumed].Val.Original.Type
		if separator == tokenizer.COMMA {
			consumed++
			continue
		}
		if separator == tokenizer.CLOSED_PARENS {
			consumed++
			break
		}
		return 0, nil, errorAt(ErrUnmatchedGroup, tokens, "no closing parenthesis for "+token.Value)
	}

	return 1 + consumed, reduced(expression.NewFunction(token.Value, arguments...)), nil
}

// parseBraceGroup parses '{' expr '}'.
func parseBraceGroup(pctx *pc.ParseContext[Entity], tokens []entityToken) (int, []entityToken, error) {
	if len(tokens) == 0 || tokens[0].Val.Original.Type != tokenizer.OPENED_BRACE {
		return 0, nil, errorAt(ErrFormat, tokens, "expected '{'")
	}
	return parseDelimited(pctx, tokens, tokenizer.CLOSED_BRACE)
}

func parseNumber(token tokenizer.Token) (expression.Expression, error) {
	value, err := strconv.ParseFloat(token.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q at line %d, column %d",
			ErrFormat, token.Value, token.Position.Line, token.Position.Column)
	}
	return expression.NewNumber(value), nil
}

func constantValue(name string) (float64, bool) {
	switch name {
	case "pi":
		return math.Pi, true
	case "e":
		return math.E, true
	default:
		return 0, false
	}
}
