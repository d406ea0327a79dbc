// Package parser builds expression trees from plain infix notation using a
// shunting-yard conversion to postfix and a stack-machine tree builder.
package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/tokenizer"
)

// Sentinel errors
var (
	ErrSyntax               = errors.New("syntax error")
	ErrUnmatchedParenthesis = errors.New("unmatched parenthesis")
	ErrUnknownConstant      = errors.New("unknown constant")
	ErrNotAnEquation        = errors.New("expression is not an equation")
	ErrEmptyExpression      = errors.New("empty expression")
)

// FunctionSpec describes a registered function's arity.
type FunctionSpec struct {
	Arity    int
	Variadic bool // variadic functions accept one or more arguments
}

// Parser parses infix text. Each parser owns its operator, function and
// constant tables; differently configured parsers do not interfere.
type Parser struct {
	notation  *tokenizer.Notation
	functions map[string]FunctionSpec
	constants map[string]float64
}

// New creates a parser with the built-in functions and constants.
func New() *Parser {
	return &Parser{
		notation: tokenizer.NewInfixNotation(),
		functions: map[string]FunctionSpec{
			"sqrt":  {Arity: 1},
			"abs":   {Arity: 1},
			"sin":   {Arity: 1},
			"cos":   {Arity: 1},
			"tan":   {Arity: 1},
			"log":   {Arity: 1},
			"log10": {Arity: 1},
			"exp":   {Arity: 1},
			"pow":   {Arity: 2},
			"min":   {Variadic: true},
			"max":   {Variadic: true},
		},
		constants: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
	}
}

// RegisterFunction adds a function to this parser's tables.
func (p *Parser) RegisterFunction(name string, spec FunctionSpec) {
	p.functions[name] = spec
	p.notation.RegisterFunction(name)
}

// RegisterConstant adds a named constant to this parser's tables.
func (p *Parser) RegisterConstant(name string, value float64) {
	p.constants[name] = value
	p.notation.RegisterConstant(name)
}

// Parse parses text. Multiple ';'- or ','-separated top-level expressions
// that all contain '=' parse as an EquationSystem; otherwise the text is a
// single expression.
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

	segments := splitTopLevel(tokens)
	if len(segments) > 1 && allContainEqual(segments) {
		equations := make([]*expression.Equation, len(segments))
		for i, segment := range segments {
			expr, err := p.parseTokens(segment)
			if err != nil {
				return nil, err
			}
			equation, ok := expr.(*expression.Equation)
			if !ok {
				return nil, fmt.Errorf("%w: system member %d", ErrNotAnEquation, i+1)
			}
			equations[i] = equation
		}
		return expression.NewEquationSystem(equations...), nil
	}

	return p.parseTokens(tokens)
}

// splitTopLevel splits on semicolons and on commas outside parentheses.
func splitTopLevel(tokens []tokenizer.Token) [][]tokenizer.Token {
	var segments [][]tokenizer.Token
	var current []tokenizer.Token
	depth := 0

	for _, token := range tokens {
		switch token.Type {
		case tokenizer.OPENED_PARENS:
			depth++
		case tokenizer.CLOSED_PARENS:
			depth--
		case tokenizer.SEMICOLON:
			segments = append(segments, current)
			current = nil
			continue
		case tokenizer.COMMA:
			if depth == 0 {
				segments = append(segments, current)
				current = nil
				continue
			}
		}
		current = append(current, token)
	}

	segments = append(segments, current)
	return segments
}

func allContainEqual(segments [][]tokenizer.Token) bool {
	for _, segment := range segments {
		found := false
		for _, token := range segment {
			if token.Type == tokenizer.EQUAL {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// parseTokens converts one expression's tokens to a tree.
func (p *Parser) parseTokens(tokens []tokenizer.Token) (expression.Expression, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}

	postfix, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}

	return p.buildTree(postfix)
}
