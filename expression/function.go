package expression

import (
	"fmt"
	"math"
	"strings"
)

// SqrtName is the square root function name; radical equation handling
// depends on detecting it.
const SqrtName = "sqrt"

// Function is a named function applied to an ordered argument list.
type Function struct {
	name      string
	arguments []Expression
}

// NewFunction creates a Function.
func NewFunction(name string, arguments ...Expression) *Function {
	return &Function{name: name, arguments: arguments}
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.name
}

// Arguments returns the ordered argument list.
func (f *Function) Arguments() []Expression {
	return f.arguments
}

func (f *Function) Evaluate() (float64, error) {
	return f.EvaluateWith(nil)
}

func (f *Function) EvaluateWith(bindings map[string]float64) (float64, error) {
	values := make([]float64, len(f.arguments))
	for i, argument := range f.arguments {
		value, err := argument.EvaluateWith(bindings)
		if err != nil {
			return 0, err
		}
		values[i] = value
	}

	return f.apply(values)
}

func (f *Function) apply(values []float64) (float64, error) {
	switch f.name {
	case SqrtName:
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Sqrt(values[0]), nil
	case "abs":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Abs(values[0]), nil
	case "sin":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Sin(values[0]), nil
	case "cos":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Cos(values[0]), nil
	case "tan":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Tan(values[0]), nil
	case "log":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Log(values[0]), nil
	case "log10":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Log10(values[0]), nil
	case "exp":
		if err := f.wantArguments(values, 1); err != nil {
			return 0, err
		}
		return math.Exp(values[0]), nil
	case "pow":
		if err := f.wantArguments(values, 2); err != nil {
			return 0, err
		}
		return math.Pow(values[0], values[1]), nil
	case "min":
		if len(values) == 0 {
			return 0, fmt.Errorf("%w: min requires at least one argument", ErrInvalidArgumentCount)
		}
		result := values[0]
		for _, value := range values[1:] {
			result = math.Min(result, value)
		}
		return result, nil
	case "max":
		if len(values) == 0 {
			return 0, fmt.Errorf("%w: max requires at least one argument", ErrInvalidArgumentCount)
		}
		result := values[0]
		for _, value := range values[1:] {
			result = math.Max(result, value)
		}
		return result, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFunction, f.name)
	}
}

func (f *Function) wantArguments(values []float64, count int) error {
	if len(values) != count {
		return fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrInvalidArgumentCount, f.name, count, len(values))
	}
	return nil
}

func (f *Function) ToDisplayText() string {
	arguments := make([]string, len(f.arguments))
	for i, argument := range f.arguments {
		arguments[i] = argument.ToDisplayText()
	}
	return f.name + "(" + strings.Join(arguments, ", ") + ")"
}

func (f *Function) ToLatex() string {
	switch f.name {
	case SqrtName:
		if len(f.arguments) == 1 {
			return "\\sqrt{" + f.arguments[0].ToLatex() + "}"
		}
	case "abs":
		if len(f.arguments) == 1 {
			return "\\left|" + f.arguments[0].ToLatex() + "\\right|"
		}
	}

	arguments := make([]string, len(f.arguments))
	for i, argument := range f.arguments {
		arguments[i] = argument.ToLatex()
	}
	return "\\" + f.name + "\\left(" + strings.Join(arguments, ", ") + "\\right)"
}

func (f *Function) Precedence() int {
	return PrecedenceAtom
}

func (f *Function) Accept(v Visitor) any {
	return v.VisitFunction(f)
}
