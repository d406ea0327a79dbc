package matrix

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for compilation
var (
	ErrUnknownMatrix = errors.New("unknown matrix name")
	ErrBadFormula    = errors.New("invalid matrix formula")
	ErrScalarOperand = errors.New("operator needs matrix operands")
)

// OperandKind says where an operand comes from.
type OperandKind int

const (
	// FromExpression indexes the caller's original matrix list.
	FromExpression OperandKind = iota
	// FromResult indexes the outputs of earlier operations.
	FromResult
)

// OperandSource points at an operand without owning it, so the compiled
// sequence can reference originals and prior results non-hierarchically.
type OperandSource struct {
	Kind  OperandKind
	Index int
}

// OperationKind enumerates the compiled matrix operations.
type OperationKind int

const (
	OpAdd OperationKind = iota
	OpSubtract
	OpMultiply
	OpHadamard
	OpScalarMultiply
	OpPower
	OpDeterminant
	OpInverse
	OpRank
	OpTranspose
	OpTrace
)

func (k OperationKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpHadamard:
		return "hadamard"
	case OpScalarMultiply:
		return "scale"
	case OpPower:
		return "power"
	case OpDeterminant:
		return "determinant"
	case OpInverse:
		return "inverse"
	case OpRank:
		return "rank"
	case OpTranspose:
		return "transpose"
	case OpTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// Operation is one compiled step. Unary operations leave Right nil; Scalar
// carries the literal for scaling and powers.
type Operation struct {
	Kind   OperationKind
	Scalar float64
	Left   OperandSource
	Right  *OperandSource
}

var functionKinds = map[string]OperationKind{
	"det":   OpDeterminant,
	"inv":   OpInverse,
	"rank":  OpRank,
	"trans": OpTranspose,
	"trace": OpTrace,
}

// Converter compiles a validated matrix formula into a flat operation
// sequence. Names maps formula variables onto the caller's matrix list.
type Converter struct {
	formatter *Formatter
}

func NewConverter(formatter *Formatter) *Converter {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return &Converter{formatter: formatter}
}

// Compile validates the formula, converts it to postfix, and interprets the
// postfix into operations with explicit operand provenance.
func (c *Converter) Compile(formula string, names []string) ([]Operation, error) {
	ok, _, message := c.formatter.ValidateCompleteness(formula)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBadFormula, message)
	}
	elements, err := c.formatter.Tokenize(formula)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFormula, err.Error())
	}

	postfix, err := c.toPostfix(elements)
	if err != nil {
		return nil, err
	}
	return c.interpret(postfix, names)
}

// toPostfix is a shunting-yard pass: functions always push, a right paren
// pops to the left paren and then any trailing function.
func (c *Converter) toPostfix(elements []Element) ([]Element, error) {
	var output, stack []Element
	for _, element := range elements {
		switch element.Type {
		case ElementVariable, ElementNumber:
			output = append(output, element)

		case ElementFunction, ElementLeftParen:
			stack = append(stack, element)

		case ElementOperator:
			precedence := c.formatter.operators[element.Value]
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Type != ElementOperator || c.formatter.operators[top.Value] < precedence {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, element)

		case ElementRightParen:
			for len(stack) > 0 && stack[len(stack)-1].Type != ElementLeftParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched closing parenthesis", ErrBadFormula)
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].Type == ElementFunction {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Type == ElementLeftParen {
			return nil, fmt.Errorf("%w: unmatched opening parenthesis", ErrBadFormula)
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

// operand is a postfix stack item: a matrix source or a scalar literal.
type operand struct {
	source   OperandSource
	scalar   float64
	isScalar bool
}

func (c *Converter) interpret(postfix []Element, names []string) ([]Operation, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	var operations []Operation
	var stack []operand

	push := func(o operand) { stack = append(stack, o) }
	pop := func() (operand, error) {
		if len(stack) == 0 {
			return operand{}, fmt.Errorf("%w: missing operand", ErrBadFormula)
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}
	emit := func(op Operation) OperandSource {
		operations = append(operations, op)
		return OperandSource{Kind: FromResult, Index: len(operations) - 1}
	}

	for _, element := range postfix {
		switch element.Type {
		case ElementVariable:
			i, ok := index[element.Value]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownMatrix, element.Value)
			}
			push(operand{source: OperandSource{Kind: FromExpression, Index: i}})

		case ElementNumber:
			value, err := strconv.ParseFloat(element.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrBadFormula, element.Value)
			}
			push(operand{scalar: value, isScalar: true})

		case ElementFunction:
			kind, ok := functionKinds[element.Value]
			if !ok {
				return nil, fmt.Errorf("%w: unknown function %s", ErrBadFormula, element.Value)
			}
			argument, err := pop()
			if err != nil {
				return nil, err
			}
			if argument.isScalar {
				return nil, fmt.Errorf("%w: %s needs a matrix", ErrScalarOperand, element.Value)
			}
			push(operand{source: emit(Operation{Kind: kind, Left: argument.source})})

		case ElementOperator:
			right, err := pop()
			if err != nil {
				return nil, err
			}
			left, err := pop()
			if err != nil {
				return nil, err
			}
			source, err := c.binaryOperation(element.Value, left, right, emit)
			if err != nil {
				return nil, err
			}
			push(operand{source: source})
		}
	}

	if len(stack) != 1 || stack[0].isScalar {
		return nil, fmt.Errorf("%w: the formula does not reduce to one matrix result", ErrBadFormula)
	}
	return operations, nil
}

// binaryOperation specializes × with a scalar operand to a scaling and ^
// with a scalar exponent to a power; everything else needs two matrices.
func (c *Converter) binaryOperation(symbol string, left, right operand, emit func(Operation) OperandSource) (OperandSource, error) {
	switch symbol {
	case "×":
		if left.isScalar && right.isScalar {
			return OperandSource{}, fmt.Errorf("%w: %s", ErrScalarOperand, symbol)
		}
		if left.isScalar {
			return emit(Operation{Kind: OpScalarMultiply, Scalar: left.scalar, Left: right.source}), nil
		}
		if right.isScalar {
			return emit(Operation{Kind: OpScalarMultiply, Scalar: right.scalar, Left: left.source}), nil
		}
		return emit(Operation{Kind: OpMultiply, Left: left.source, Right: &right.source}), nil

	case "^":
		if !right.isScalar || left.isScalar {
			return OperandSource{}, fmt.Errorf("%w: a power needs a matrix base and a scalar exponent", ErrScalarOperand)
		}
		return emit(Operation{Kind: OpPower, Scalar: right.scalar, Left: left.source}), nil
	}

	if left.isScalar || right.isScalar {
		return OperandSource{}, fmt.Errorf("%w: %s", ErrScalarOperand, symbol)
	}

	var kind OperationKind
	switch symbol {
	case "+":
		kind = OpAdd
	case "-":
		kind = OpSubtract
	case "∘":
		kind = OpHadamard
	default:
		return OperandSource{}, fmt.Errorf("%w: unknown operator %s", ErrBadFormula, symbol)
	}
	return emit(Operation{Kind: kind, Left: left.source, Right: &right.source}), nil
}
