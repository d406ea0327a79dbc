// Package cli implements the sharpmath command implementations shared by
// the command-line entry point.
package cli

import (
	"strings"

	"github.com/VrezenStrijder/SharpMath"
	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/expression"
)

// Context carries the global flags into each command.
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*sharpmath.Config, error) {
	return sharpmath.LoadConfig(configPath)
}

// joinInput glues positional argument fragments back into one expression so
// users can write `sharpmath simplify 2*x + 3*x` without quoting.
func joinInput(fragments []string) string {
	return strings.TrimSpace(strings.Join(fragments, " "))
}

func parseInput(config *sharpmath.Config, useLatex bool, text string) (expression.Expression, error) {
	if useLatex || config.Display.Notation == "latex" {
		return sharpmath.ParseLaTeX(text)
	}

	return config.NewParser().Parse(text)
}

func sortOrder(config *sharpmath.Config, ascending bool) calculation.SortOrder {
	if ascending {
		return calculation.SortAscending
	}

	return config.SortOrder()
}
