package solve

import (
	"fmt"
	"math"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/term"
)

// SystemSolver solves a linear equation system by Gaussian elimination with
// partial pivoting. Every row operation is traced as the equivalent
// symbolic system.
type SystemSolver struct{}

func NewSystemSolver() *SystemSolver {
	return &SystemSolver{}
}

// Process implements calculation.Solver.
func (s *SystemSolver) Process(expr expression.Expression, _ calculation.SortOrder) (*calculation.Result, error) {
	system, ok := expr.(*expression.EquationSystem)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotSystem, expr.ToDisplayText())
	}

	variables := expression.Variables(system)
	if len(variables) == 0 {
		return nil, ErrNoVariable
	}

	rows, err := extractRows(system, variables)
	if err != nil {
		return nil, err
	}

	result := calculation.NewResult(system)
	pivots := eliminate(rows, variables, result)

	columns := len(variables)
	for _, row := range rows {
		if zeroCoefficients(row, columns) && math.Abs(row[columns]) >= epsilon {
			return nil, fmt.Errorf("%w: 0 = %s", ErrInconsistent, expression.FormatNumber(row[columns]))
		}
	}

	if len(pivots) == columns {
		unique := make([]*expression.Equation, columns)
		for i, column := range pivots {
			unique[column] = expression.NewEquation(
				expression.NewVariable(variables[column]),
				expression.NewNumber(rows[i][columns]))
		}
		result.Append(expression.NewEquationSystem(unique...), "read off the solution")
		return result, nil
	}

	result.Append(parameterize(rows, variables, pivots), "express pivot variables through the free variables")
	return result, nil
}

// zeroCoefficients reports whether every coefficient of the row vanishes.
func zeroCoefficients(row []float64, columns int) bool {
	for _, coefficient := range row[:columns] {
		if math.Abs(coefficient) >= epsilon {
			return false
		}
	}
	return true
}

// extractRows builds the augmented coefficient matrix. Any term that is not
// a single variable of degree one aborts the extraction.
func extractRows(system *expression.EquationSystem, variables []string) ([][]float64, error) {
	index := make(map[string]int, len(variables))
	for i, name := range variables {
		index[name] = i
	}

	columns := len(variables)
	rows := make([][]float64, 0, len(system.Equations()))
	for _, equation := range system.Equations() {
		difference := expression.NewBinary(equation.Left(), expression.Subtract, equation.Right())
		row := make([]float64, columns+1)
		for _, t := range term.Decompose(difference) {
			if t.IsConstant() {
				row[columns] -= t.Coefficient
				continue
			}
			if len(t.Factors) != 1 {
				return nil, fmt.Errorf("%w: term %s", ErrNonLinear, t.ToExpression().ToDisplayText())
			}
			factor := t.Factors[0]
			variable, baseOK := factor.Base.(*expression.Variable)
			exponent, exponentOK := factor.Exponent.(*expression.Number)
			if !baseOK || !exponentOK || exponent.Value() != 1 {
				return nil, fmt.Errorf("%w: term %s", ErrNonLinear, t.ToExpression().ToDisplayText())
			}
			row[index[variable.Name()]] += t.Coefficient
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// eliminate runs Gauss-Jordan reduction in place and returns the pivot
// columns in order.
func eliminate(rows [][]float64, variables []string, result *calculation.Result) []int {
	columns := len(variables)
	var pivots []int
	pivotRow := 0

	for column := 0; column < columns && pivotRow < len(rows); column++ {
		best := pivotRow
		for r := pivotRow + 1; r < len(rows); r++ {
			if math.Abs(rows[r][column]) > math.Abs(rows[best][column]) {
				best = r
			}
		}
		if math.Abs(rows[best][column]) < epsilon {
			continue
		}

		if best != pivotRow {
			rows[best], rows[pivotRow] = rows[pivotRow], rows[best]
			result.Append(render(rows, variables),
				fmt.Sprintf("swap row %d with row %d", pivotRow+1, best+1))
		}

		pivot := rows[pivotRow][column]
		if math.Abs(pivot-1) >= epsilon {
			for c := range rows[pivotRow] {
				rows[pivotRow][c] /= pivot
			}
			result.Append(render(rows, variables),
				fmt.Sprintf("normalize row %d", pivotRow+1))
		}

		for r := range rows {
			if r == pivotRow {
				continue
			}
			factor := rows[r][column]
			if math.Abs(factor) < epsilon {
				continue
			}
			for c := range rows[r] {
				rows[r][c] -= factor * rows[pivotRow][c]
			}
			result.Append(render(rows, variables),
				fmt.Sprintf("eliminate %s from row %d", variables[column], r+1))
		}

		pivots = append(pivots, column)
		pivotRow++
	}
	return pivots
}

// render turns the augmented matrix back into the equivalent symbolic
// system for the trace.
func render(rows [][]float64, variables []string) *expression.EquationSystem {
	equations := make([]*expression.Equation, len(rows))
	for i, row := range rows {
		var left expression.Expression
		for column, name := range variables {
			coefficient := row[column]
			if math.Abs(coefficient) < epsilon {
				continue
			}
			left = accumulateSigned(left, scaled(coefficient, name), coefficient < 0)
		}
		if left == nil {
			left = expression.NewNumber(0)
		}
		equations[i] = expression.NewEquation(left, expression.NewNumber(row[len(variables)]))
	}
	return expression.NewEquationSystem(equations...)
}

// scaled builds |c|*name, omitting a unit coefficient.
func scaled(coefficient float64, name string) expression.Expression {
	magnitude := math.Abs(coefficient)
	variable := expression.NewVariable(name)
	if math.Abs(magnitude-1) < epsilon {
		return variable
	}
	return expression.NewBinary(expression.NewNumber(magnitude), expression.Multiply, variable)
}

// parameterize expresses each pivot variable through the free variables;
// free variables stay as self-referential placeholders.
func parameterize(rows [][]float64, variables []string, pivots []int) *expression.EquationSystem {
	columns := len(variables)
	pivotOf := make(map[int]int, len(pivots)) // column -> row
	for row, column := range pivots {
		pivotOf[column] = row
	}

	equations := make([]*expression.Equation, columns)
	for column, name := range variables {
		row, isPivot := pivotOf[column]
		if !isPivot {
			equations[column] = expression.NewEquation(
				expression.NewVariable(name), expression.NewVariable(name))
			continue
		}

		// rhs minus the free-variable contributions
		var right expression.Expression
		if math.Abs(rows[row][columns]) >= epsilon {
			right = expression.NewNumber(rows[row][columns])
		}
		for other := 0; other < columns; other++ {
			if other == column {
				continue
			}
			coefficient := rows[row][other]
			if math.Abs(coefficient) < epsilon {
				continue
			}
			right = accumulateSigned(right, scaled(coefficient, variables[other]), coefficient > 0)
		}
		if right == nil {
			right = expression.NewNumber(0)
		}
		equations[column] = expression.NewEquation(expression.NewVariable(name), right)
	}
	return expression.NewEquationSystem(equations...)
}
