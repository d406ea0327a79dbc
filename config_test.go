package sharpmath

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/VrezenStrijder/SharpMath/calculation"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sharpmath.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, "text", config.Display.Notation)
	assert.Equal(t, "descending", config.Display.SortOrder)
	assert.Equal(t, 10, config.Solver.MaxMatrixSize)
	assert.Equal(t, calculation.SortDescending, config.SortOrder())
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
display:
  notation: latex
  sort_order: ascending
solver:
  max_matrix_size: 6
constants:
  g: 9.81
functions:
  hypot:
    arity: 2
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "latex", config.Display.Notation)
	assert.Equal(t, calculation.SortAscending, config.SortOrder())
	assert.Equal(t, 6, config.Solver.MaxMatrixSize)
	assert.Equal(t, 9.81, config.Constants["g"])
	assert.Equal(t, 2, config.Functions["hypot"].Arity)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown notation",
			content: `
display:
  notation: mathml
`,
		},
		{
			name: "unknown sort order",
			content: `
display:
  sort_order: sideways
`,
		},
		{
			name: "negative matrix size",
			content: `
solver:
  max_matrix_size: -1
`,
		},
		{
			name: "variadic function with fixed arity",
			content: `
functions:
  max:
    arity: 2
    variadic: true
`,
		},
		{
			name: "unknown key rejected",
			content: `
displays:
  notation: text
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_NewParser(t *testing.T) {
	path := writeConfigFile(t, `
constants:
  g: 9.81
functions:
  double:
    arity: 1
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	p := config.NewParser()

	expr, err := p.Parse("g + 1")
	assert.NoError(t, err)

	value, err := expr.Evaluate()
	assert.NoError(t, err)
	assert.True(t, math.Abs(value-10.81) < 1e-9)

	_, err = p.Parse("double(2, 3)")
	assert.Error(t, err)
}

func TestLoadConfig_ExpandsEnvInMatrixFiles(t *testing.T) {
	t.Setenv("SHARPMATH_DATA", "/tmp/data")

	path := writeConfigFile(t, `
matrix_files:
  A: ${SHARPMATH_DATA}/a.txt
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/data/a.txt", config.MatrixFiles["A"])
}
