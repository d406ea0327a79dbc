package tokenizer

// Notation classifies identifiers and controls notation-specific syntax.
// Each tokenizer owns its notation instance; there is no process-wide
// registry, so differently configured tokenizers can coexist.
type Notation struct {
	name      string
	functions map[string]bool
	constants map[string]bool
	commands  bool // backslash commands and brace grouping (LaTeX)
}

// defaultFunctions are the built-in function names for both notations.
func defaultFunctions() map[string]bool {
	return map[string]bool{
		"sqrt":  true,
		"abs":   true,
		"sin":   true,
		"cos":   true,
		"tan":   true,
		"log":   true,
		"log10": true,
		"exp":   true,
		"pow":   true,
		"min":   true,
		"max":   true,
	}
}

// defaultConstants are the built-in constant names for both notations.
func defaultConstants() map[string]bool {
	return map[string]bool{
		"pi": true,
		"e":  true,
	}
}

// NewInfixNotation creates a notation for plain infix text.
func NewInfixNotation() *Notation {
	return &Notation{
		name:      "infix",
		functions: defaultFunctions(),
		constants: defaultConstants(),
		commands:  false,
	}
}

// NewLatexNotation creates a notation for LaTeX text.
func NewLatexNotation() *Notation {
	return &Notation{
		name:      "latex",
		functions: defaultFunctions(),
		constants: defaultConstants(),
		commands:  true,
	}
}

// Name returns the notation name.
func (n *Notation) Name() string {
	return n.name
}

// RegisterFunction adds a function name so identifiers tokenize as FUNCTION.
func (n *Notation) RegisterFunction(name string) {
	n.functions[name] = true
}

// RegisterConstant adds a constant name so identifiers tokenize as CONSTANT.
func (n *Notation) RegisterConstant(name string) {
	n.constants[name] = true
}

// IsFunction reports whether name is a registered function.
func (n *Notation) IsFunction(name string) bool {
	return n.functions[name]
}

// IsConstant reports whether name is a registered constant.
func (n *Notation) IsConstant(name string) bool {
	return n.constants[name]
}

// AllowCommands reports whether backslash commands and braces are legal.
func (n *Notation) AllowCommands() bool {
	return n.commands
}
