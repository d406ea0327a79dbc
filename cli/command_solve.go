package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/VrezenStrijder/SharpMath"
	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/solve"
)

// SolveCmd represents the solve command
type SolveCmd struct {
	Equation  []string `arg:"" help:"Equation or ';'-separated system to solve"`
	Variable  string   `help:"Variable to solve a single equation for"`
	Latex     bool     `help:"Parse the input as LaTeX"`
	Ascending bool     `help:"Order terms by ascending degree"`
}

func (c *SolveCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	input := joinInput(c.Equation)
	if ctx.Verbose {
		color.Blue("Solving %s", input)
	}

	expr, err := parseInput(config, c.Latex, input)
	if err != nil {
		return err
	}

	solver, err := c.chooseSolver(expr)
	if err != nil {
		return err
	}

	result, err := solver.Process(expr, sortOrder(config, c.Ascending))
	if err != nil {
		return err
	}

	printResult(ctx, result)

	return nil
}

func (c *SolveCmd) chooseSolver(expr expression.Expression) (calculation.Solver, error) {
	calculateType := sharpmath.TypeOf(expr)

	switch calculateType {
	case sharpmath.CalculateEquation:
		equationSolver := solve.NewEquationSolver()
		equationSolver.Variable = c.Variable

		return equationSolver, nil
	case sharpmath.CalculateEquationSystem:
		return sharpmath.ChooseSolver(calculateType)
	default:
		return nil, fmt.Errorf("%w: input is not an equation", solve.ErrNotEquation)
	}
}
