package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// ExpressionTokenizer is a tokenizer that returns an iterator
type ExpressionTokenizer struct {
	input    string
	notation *Notation
	options  TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewExpressionTokenizer creates a new ExpressionTokenizer
func NewExpressionTokenizer(input string, notation *Notation, options ...TokenizerOptions) *ExpressionTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &ExpressionTokenizer{
		input:    input,
		notation: notation,
		options:  opts,
	}
}

// Tokens returns an iterator of tokens
func (t *ExpressionTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:    []rune(t.input),
			position: 0,
			line:     1,
			column:   1,
			notation: t.notation,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if token.Type != WHITESPACE {
				tokenizer.previous = token.Type
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *ExpressionTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 32)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		if token.Type == EOF {
			break
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input    []rune
	position int
	line     int
	column   int
	current  rune
	notation *Notation
	previous TokenType // last significant token, for unary minus detection
	pending  *Token    // second half of a two-token rune sequence
}

// superscripts maps superscript runes to their plain equivalents, so a
// rendered power like x² tokenizes back to x^2.
var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9', '⁻': '-',
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	if t.pending != nil {
		token := *t.pending
		t.pending = nil
		return token, nil
	}

	if _, ok := superscripts[t.current]; ok {
		return t.readSuperscript(), nil
	}

	switch t.current {
	case 0:
		return t.newToken(EOF, ""), nil
	case ' ', '\t', '\r', '\n':
		return t.readWhitespace(), nil
	case '(':
		return t.single(OPENED_PARENS), nil
	case ')':
		return t.single(CLOSED_PARENS), nil
	case ',':
		return t.single(COMMA), nil
	case ';':
		return t.single(SEMICOLON), nil
	case '+':
		return t.single(PLUS), nil
	case '-':
		if t.minusIsUnary() {
			return t.single(UNARY_MINUS), nil
		}
		return t.single(MINUS), nil
	case '*', '×':
		return t.single(MULTIPLY), nil
	case '/', '÷':
		return t.single(DIVIDE), nil
	case '^':
		return t.single(POWER), nil
	case '%':
		return t.single(MODULO), nil
	case '=':
		return t.single(EQUAL), nil
	case '!':
		if t.peekChar() == '=' {
			return t.double(NOT_EQUAL, "!="), nil
		}
		return Token{}, fmt.Errorf("%w: '!' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	case '<':
		if t.peekChar() == '=' {
			return t.double(LESS_EQUAL, "<="), nil
		}
		return t.single(LESS_THAN), nil
	case '>':
		if t.peekChar() == '=' {
			return t.double(GREATER_EQUAL, ">="), nil
		}
		return t.single(GREATER_THAN), nil
	case '{':
		if t.notation.AllowCommands() {
			return t.single(OPENED_BRACE), nil
		}
		return Token{}, fmt.Errorf("%w: '{' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	case '}':
		if t.notation.AllowCommands() {
			return t.single(CLOSED_BRACE), nil
		}
		return Token{}, fmt.Errorf("%w: '}' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	case '\\':
		if t.notation.AllowCommands() {
			return t.readCommand()
		}
		return Token{}, fmt.Errorf("%w: '\\' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	default:
		if unicode.IsLetter(t.current) || t.current == '_' {
			return t.readWord(), nil
		}
		if unicode.IsDigit(t.current) {
			return t.readNumber()
		}
		return Token{}, fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, t.current, t.line, t.column-1)
	}
}

// minusIsUnary reports whether a '-' at the current position negates the
// following operand: at the start of input, after an operator, after an
// opening parenthesis or brace, or after a comma/semicolon.
func (t *tokenizer) minusIsUnary() bool {
	switch {
	case t.previous == EOF: // nothing significant seen yet
		return true
	case t.previous.IsOperator():
		return true
	case t.previous == UNARY_MINUS:
		return true
	case t.previous == OPENED_PARENS, t.previous == OPENED_BRACE:
		return true
	case t.previous == COMMA, t.previous == SEMICOLON:
		return true
	default:
		return false
	}
}

// readChar reads the next character
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.position++
		return
	}

	t.current = t.input[t.position]
	t.position++

	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next character
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}
	return t.input[t.position]
}

// single consumes the current character as a one-character token
func (t *tokenizer) single(tokenType TokenType) Token {
	token := t.newToken(tokenType, string(t.current))
	t.readChar()
	return token
}

// double consumes two characters as one token
func (t *tokenizer) double(tokenType TokenType, value string) Token {
	token := t.newToken(tokenType, value)
	t.readChar()
	t.readChar()
	return token
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	for unicode.IsSpace(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:  WHITESPACE,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// readWord reads identifiers, classifying them against the notation tables
func (t *tokenizer) readWord() Token {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	for unicode.IsLetter(t.current) || unicode.IsDigit(t.current) || t.current == '_' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	word := builder.String()

	tokenType := IDENTIFIER
	switch {
	case t.notation.IsFunction(word):
		tokenType = FUNCTION
	case t.notation.IsConstant(word):
		tokenType = CONSTANT
	}

	return Token{
		Type:  tokenType,
		Value: word,
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}
}

// readNumber reads numeric literals
func (t *tokenizer) readNumber() (Token, error) {
	var builder strings.Builder
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	// Integer part
	for unicode.IsDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	// Decimal point
	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		builder.WriteRune(t.current)
		t.readChar()

		for unicode.IsDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	// Exponential part
	if t.current == 'e' || t.current == 'E' {
		// Only a well-formed exponent belongs to the number; otherwise the
		// 'e' starts an identifier (e.g. "2e" is "2" then "e").
		next := t.peekChar()
		if unicode.IsDigit(next) || next == '+' || next == '-' {
			builder.WriteRune(t.current)
			t.readChar()

			if t.current == '+' || t.current == '-' {
				builder.WriteRune(t.current)
				t.readChar()
			}

			if !unicode.IsDigit(t.current) {
				return Token{}, fmt.Errorf("%w: invalid exponent at line %d, column %d", ErrInvalidNumber, startLine, startColumn)
			}

			for unicode.IsDigit(t.current) {
				builder.WriteRune(t.current)
				t.readChar()
			}
		}
	}

	return Token{
		Type:  NUMBER,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}, nil
}

// readSuperscript reads a run of superscript runes as a power operator
// followed by a plain exponent literal.
func (t *tokenizer) readSuperscript() Token {
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	var builder strings.Builder
	for {
		plain, ok := superscripts[t.current]
		if !ok {
			break
		}
		builder.WriteRune(plain)
		t.readChar()
	}

	position := Position{Line: startLine, Column: startColumn, Offset: startOffset}
	t.pending = &Token{Type: NUMBER, Value: builder.String(), Position: position}

	return Token{Type: POWER, Value: "^", Position: position}
}

// readCommand reads a backslash command like \frac or \sqrt
func (t *tokenizer) readCommand() (Token, error) {
	startLine := t.line
	startColumn := t.column - 1
	startOffset := t.position - 1

	t.readChar() // skip the backslash

	var builder strings.Builder
	for unicode.IsLetter(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if builder.Len() == 0 {
		return Token{}, fmt.Errorf("%w at line %d, column %d", ErrEmptyCommand, startLine, startColumn)
	}

	return Token{
		Type:  COMMAND,
		Value: builder.String(),
		Position: Position{
			Line:   startLine,
			Column: startColumn,
			Offset: startOffset,
		},
	}, nil
}

// newToken creates a new token
func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Position: Position{
			Line:   t.line,
			Column: t.column - len([]rune(value)),
			Offset: t.position - len([]rune(value)),
		},
	}
}
