package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/VrezenStrijder/SharpMath/expression"
)

var (
	ErrRaggedRows = errors.New("matrix rows have different lengths")
	ErrBadCell    = errors.New("matrix cell is not a number")
)

// ParseText reads a matrix from row-per-line, whitespace-separated text.
// Blank lines are skipped.
func ParseText(name, text string) (*expression.Matrix, error) {
	var values [][]float64
	for lineNumber, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		row := make([]float64, len(fields))
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at line %d", ErrBadCell, field, lineNumber+1)
			}
			row[i] = value
		}

		if len(values) > 0 && len(row) != len(values[0]) {
			return nil, fmt.Errorf("%w: line %d has %d values, expected %d",
				ErrRaggedRows, lineNumber+1, len(row), len(values[0]))
		}
		values = append(values, row)
	}

	if len(values) == 0 {
		return nil, ErrEmptyMatrix
	}
	return expression.NewMatrix(name, values), nil
}

// ToText renders the grid as row-per-line, space-separated text.
func ToText(m *expression.Matrix) string {
	var builder strings.Builder
	for i := 0; i < m.Rows(); i++ {
		if i > 0 {
			builder.WriteByte('\n')
		}
		for j := 0; j < m.Columns(); j++ {
			if j > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(expression.FormatNumber(m.At(i, j)))
		}
	}
	return builder.String()
}
