package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/VrezenStrijder/SharpMath"
)

// SimplifyCmd represents the simplify command
type SimplifyCmd struct {
	Expression []string `arg:"" help:"Expression to simplify"`
	Latex      bool     `help:"Parse the input as LaTeX"`
	Ascending  bool     `help:"Order terms by ascending degree"`
}

func (c *SimplifyCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	input := joinInput(c.Expression)
	if ctx.Verbose {
		color.Blue("Simplifying %s", input)
	}

	expr, err := parseInput(config, c.Latex, input)
	if err != nil {
		return err
	}

	solver, err := sharpmath.ChooseSolver(sharpmath.CalculateSimplify)
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
