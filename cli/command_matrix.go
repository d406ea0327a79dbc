package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/VrezenStrijder/SharpMath/expression"
	"github.com/VrezenStrijder/SharpMath/matrix"
)

// MatrixCmd represents the matrix command
type MatrixCmd struct {
	Formula string            `arg:"" help:"Matrix formula, e.g. 'A×B+C'"`
	Matrix  map[string]string `short:"m" help:"Matrix files as name=path pairs" type:"path"`
}

func (c *MatrixCmd) Run(ctx *Context) error {
	config, err := LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx.Verbose {
		color.Blue("Evaluating %s", c.Formula)
	}

	// Command-line matrices override config entries of the same name.
	files := make(map[string]string, len(config.MatrixFiles)+len(c.Matrix))
	for name, path := range config.MatrixFiles {
		files[name] = path
	}

	for name, path := range c.Matrix {
		files[name] = path
	}

	matrices, err := c.loadMatrices(files, config.Solver.MaxMatrixSize)
	if err != nil {
		return err
	}

	result, err := matrix.NewSolver().ProcessFormula(c.Formula, matrices)
	if err != nil {
		return err
	}

	printResult(ctx, result)

	return nil
}

func (c *MatrixCmd) loadMatrices(files map[string]string, maxSize int) ([]*expression.Matrix, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}

	sort.Strings(names)

	matrices := make([]*expression.Matrix, 0, len(names))

	for _, name := range names {
		data, err := os.ReadFile(files[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read matrix %s: %w", name, err)
		}

		m, err := matrix.ParseText(name, string(data))
		if err != nil {
			return nil, fmt.Errorf("matrix %s: %w", name, err)
		}

		if maxSize > 0 && (m.Rows() > maxSize || m.Columns() > maxSize) {
			return nil, fmt.Errorf("matrix %s is %dx%d: %w (limit %d)",
				name, m.Rows(), m.Columns(), ErrMatrixTooLarge, maxSize)
		}

		matrices = append(matrices, m)
	}

	return matrices, nil
}
