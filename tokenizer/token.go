package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrInvalidNumber       = errors.New("invalid number format")
	ErrEmptyCommand        = errors.New("empty command name")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NUMBER     // numeric literals
	IDENTIFIER // variable names
	FUNCTION   // identifiers registered as functions (sqrt, sin, ...)
	CONSTANT   // identifiers registered as constants (pi, e)

	// Operators
	PLUS          // +
	MINUS         // - (binary)
	UNARY_MINUS   // - (negation)
	MULTIPLY      // *, ×
	DIVIDE        // /, ÷
	POWER         // ^
	MODULO        // %
	EQUAL         // =
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=

	// Grouping and separators
	OPENED_PARENS // (
	CLOSED_PARENS // )
	OPENED_BRACE  // { (LaTeX grouping)
	CLOSED_BRACE  // } (LaTeX grouping)
	COMMA         // ,
	SEMICOLON     // ; (equation separator)

	// LaTeX commands
	COMMAND // \frac, \sqrt, \name

	// Others
	OTHER
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NUMBER:
		return "NUMBER"
	case IDENTIFIER:
		return "IDENTIFIER"
	case FUNCTION:
		return "FUNCTION"
	case CONSTANT:
		return "CONSTANT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case UNARY_MINUS:
		return "UNARY_MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case POWER:
		return "POWER"
	case MODULO:
		return "MODULO"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case OPENED_BRACE:
		return "OPENED_BRACE"
	case CLOSED_BRACE:
		return "CLOSED_BRACE"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case COMMAND:
		return "COMMAND"
	case OTHER:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// IsOperator reports whether the token type is a binary operator.
func (t TokenType) IsOperator() bool {
	switch t {
	case PLUS, MINUS, MULTIPLY, DIVIDE, POWER, MODULO,
		EQUAL, NOT_EQUAL, LESS_THAN, GREATER_THAN, LESS_EQUAL, GREATER_EQUAL:
		return true
	default:
		return false
	}
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
