package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
)

var (
	ErrNotMatrixExpression = errors.New("expression has no matrix operands")
	ErrBadOperand          = errors.New("operand reference out of range")
)

// Solver evaluates matrix expression trees and compiled operation
// sequences, tracing every operation.
type Solver struct {
	formatter *Formatter
	converter *Converter
}

func NewSolver() *Solver {
	formatter := NewFormatter()
	return &Solver{formatter: formatter, converter: NewConverter(formatter)}
}

// Formatter exposes the solver's formula editor so callers can build
// formulas against the same operator tables the solver compiles with.
func (s *Solver) Formatter() *Formatter {
	return s.formatter
}

// Process implements calculation.Solver for a single matrix expression
// tree: matrices and scalars combined with + - × ^ and negation.
func (s *Solver) Process(expr expression.Expression, _ calculation.SortOrder) (*calculation.Result, error) {
	result := calculation.NewResult(expr)
	final, err := s.evaluateTree(expr, result)
	if err != nil {
		return nil, err
	}
	result.Append(final, "result")
	return result, nil
}

// ProcessFormula compiles a formula over named matrices and replays the
// operation sequence.
func (s *Solver) ProcessFormula(formula string, matrices []*expression.Matrix) (*calculation.Result, error) {
	names := make([]string, len(matrices))
	for i, m := range matrices {
		names[i] = m.Name()
	}
	operations, err := s.converter.Compile(formula, names)
	if err != nil {
		return nil, err
	}
	return s.ProcessOperations(formula, operations, matrices)
}

// ProcessOperations executes an already-compiled sequence. The formula text
// only labels the trace.
func (s *Solver) ProcessOperations(formula string, operations []Operation, matrices []*expression.Matrix) (*calculation.Result, error) {
	result := calculation.NewResult(expression.NewVariable(formula))

	results := make([]expression.Expression, 0, len(operations))
	for _, operation := range operations {
		value, description, err := s.apply(operation, matrices, results)
		if err != nil {
			return nil, err
		}
		results = append(results, value)
		result.Append(value, description)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: empty operation sequence", ErrBadFormula)
	}
	return result, nil
}

func (s *Solver) apply(operation Operation, matrices []*expression.Matrix, results []expression.Expression) (expression.Expression, string, error) {
	left, err := resolve(operation.Left, matrices, results)
	if err != nil {
		return nil, "", err
	}

	if operation.Right == nil {
		return s.applyUnary(operation, left)
	}

	right, err := resolve(*operation.Right, matrices, results)
	if err != nil {
		return nil, "", err
	}
	return s.applyBinary(operation, left, right)
}

func (s *Solver) applyUnary(operation Operation, left expression.Expression) (expression.Expression, string, error) {
	switch operation.Kind {
	case OpScalarMultiply:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		scaled := ScalarMultiply(m, operation.Scalar)
		return scaled, fmt.Sprintf("scale %s by %s", label(m), expression.FormatNumber(operation.Scalar)), nil

	case OpPower:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		exponent := int(operation.Scalar)
		if float64(exponent) != operation.Scalar {
			return nil, "", fmt.Errorf("%w: exponent %s is not an integer",
				ErrBadFormula, expression.FormatNumber(operation.Scalar))
		}
		powered, err := Power(m, exponent)
		if err != nil {
			return nil, "", err
		}
		return powered, fmt.Sprintf("raise %s to the power %d", label(m), exponent), nil

	case OpDeterminant:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		value, err := Determinant(m)
		if err != nil {
			return nil, "", err
		}
		return expression.NewNumber(value), fmt.Sprintf("determinant of %s", label(m)), nil

	case OpInverse:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		inverse, err := Inverse(m)
		if err != nil {
			return nil, "", err
		}
		return inverse, fmt.Sprintf("invert %s", label(m)), nil

	case OpRank:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		return expression.NewNumber(float64(Rank(m))), fmt.Sprintf("rank of %s", label(m)), nil

	case OpTranspose:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		return Transpose(m), fmt.Sprintf("transpose %s", label(m)), nil

	case OpTrace:
		m, err := asMatrix(left)
		if err != nil {
			return nil, "", err
		}
		value, err := Trace(m)
		if err != nil {
			return nil, "", err
		}
		return expression.NewNumber(value), fmt.Sprintf("trace of %s", label(m)), nil
	}
	return nil, "", fmt.Errorf("%w: %s without a right operand", ErrBadFormula, operation.Kind)
}

func (s *Solver) applyBinary(operation Operation, left, right expression.Expression) (expression.Expression, string, error) {
	// a prior result can be a scalar, so multiplication specializes again
	// at execution time
	if operation.Kind == OpMultiply {
		if scalar, ok := left.(*expression.Number); ok {
			m, err := asMatrix(right)
			if err != nil {
				return nil, "", err
			}
			scaled := ScalarMultiply(m, scalar.Value())
			return scaled, fmt.Sprintf("scale %s by %s", label(m), scalar.ToDisplayText()), nil
		}
		if scalar, ok := right.(*expression.Number); ok {
			m, err := asMatrix(left)
			if err != nil {
				return nil, "", err
			}
			scaled := ScalarMultiply(m, scalar.Value())
			return scaled, fmt.Sprintf("scale %s by %s", label(m), scalar.ToDisplayText()), nil
		}
	}

	a, err := asMatrix(left)
	if err != nil {
		return nil, "", err
	}
	b, err := asMatrix(right)
	if err != nil {
		return nil, "", err
	}

	switch operation.Kind {
	case OpAdd:
		sum, err := Add(a, b)
		return sum, fmt.Sprintf("add %s and %s", label(a), label(b)), err
	case OpSubtract:
		difference, err := Subtract(a, b)
		return difference, fmt.Sprintf("subtract %s from %s", label(b), label(a)), err
	case OpMultiply:
		product, err := Multiply(a, b)
		return product, fmt.Sprintf("multiply %s by %s", label(a), label(b)), err
	case OpHadamard:
		product, err := Hadamard(a, b)
		return product, fmt.Sprintf("element-wise multiply %s and %s", label(a), label(b)), err
	}
	return nil, "", fmt.Errorf("%w: unexpected binary %s", ErrBadFormula, operation.Kind)
}

func resolve(source OperandSource, matrices []*expression.Matrix, results []expression.Expression) (expression.Expression, error) {
	switch source.Kind {
	case FromExpression:
		if source.Index < 0 || source.Index >= len(matrices) {
			return nil, fmt.Errorf("%w: expression %d of %d", ErrBadOperand, source.Index, len(matrices))
		}
		return matrices[source.Index], nil
	case FromResult:
		if source.Index < 0 || source.Index >= len(results) {
			return nil, fmt.Errorf("%w: result %d of %d", ErrBadOperand, source.Index, len(results))
		}
		return results[source.Index], nil
	}
	return nil, fmt.Errorf("%w: unknown source kind", ErrBadOperand)
}

func asMatrix(expr expression.Expression) (*expression.Matrix, error) {
	m, ok := expr.(*expression.Matrix)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a scalar", ErrScalarOperand, expr.ToDisplayText())
	}
	return m, nil
}

func label(m *expression.Matrix) string {
	if m.Name() != "" {
		return m.Name()
	}
	return m.ToDisplayText()
}

// evaluateTree walks a matrix expression tree, tracing each operation.
func (s *Solver) evaluateTree(expr expression.Expression, result *calculation.Result) (expression.Expression, error) {
	switch typed := expr.(type) {
	case *expression.Matrix, *expression.Number:
		return expr, nil

	case *expression.Unary:
		operand, err := s.evaluateTree(typed.Operand(), result)
		if err != nil {
			return nil, err
		}
		if number, ok := operand.(*expression.Number); ok {
			return expression.NewNumber(-number.Value()), nil
		}
		m, err := asMatrix(operand)
		if err != nil {
			return nil, err
		}
		negated := ScalarMultiply(m, -1)
		result.Append(negated, fmt.Sprintf("negate %s", label(m)))
		return negated, nil

	case *expression.Binary:
		left, err := s.evaluateTree(typed.Left(), result)
		if err != nil {
			return nil, err
		}
		right, err := s.evaluateTree(typed.Right(), result)
		if err != nil {
			return nil, err
		}
		return s.combineTree(typed.Operator(), left, right, result)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotMatrixExpression, expr.ToDisplayText())
}

func (s *Solver) combineTree(operator expression.Operator, left, right expression.Expression, result *calculation.Result) (expression.Expression, error) {
	leftNumber, leftScalar := left.(*expression.Number)
	rightNumber, rightScalar := right.(*expression.Number)

	if leftScalar && rightScalar {
		value, err := expression.NewBinary(leftNumber, operator, rightNumber).Evaluate()
		if err != nil {
			return nil, err
		}
		return expression.NewNumber(value), nil
	}

	var kind OperationKind
	operation := Operation{}
	switch operator {
	case expression.Add:
		kind = OpAdd
	case expression.Subtract:
		kind = OpSubtract
	case expression.Multiply:
		kind = OpMultiply
	case expression.Power:
		if !rightScalar {
			return nil, fmt.Errorf("%w: a power needs a scalar exponent", ErrScalarOperand)
		}
		m, err := asMatrix(left)
		if err != nil {
			return nil, err
		}
		if math.Trunc(rightNumber.Value()) != rightNumber.Value() {
			return nil, fmt.Errorf("%w: exponent %s is not an integer",
				ErrBadFormula, rightNumber.ToDisplayText())
		}
		powered, err := Power(m, int(rightNumber.Value()))
		if err != nil {
			return nil, err
		}
		result.Append(powered, fmt.Sprintf("raise %s to the power %s", label(m), rightNumber.ToDisplayText()))
		return powered, nil
	default:
		return nil, fmt.Errorf("%w: operator %s", ErrNotMatrixExpression, operator.Symbol())
	}

	operation.Kind = kind
	value, description, err := s.applyBinary(operation, left, right)
	if err != nil {
		return nil, err
	}
	result.Append(value, description)
	return value, nil
}
