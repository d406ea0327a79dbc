package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/VrezenStrijder/SharpMath/cli"
)

// CLI represents the command-line interface
var CLI struct {
	Config   string          `help:"Configuration file path" default:"sharpmath.yaml"`
	Verbose  bool            `help:"Enable verbose output" short:"v"`
	Quiet    bool            `help:"Suppress step-by-step output" short:"q"`
	Simplify cli.SimplifyCmd `cmd:"" help:"Simplify an expression with step-by-step trace"`
	Solve    cli.SolveCmd    `cmd:"" help:"Solve an equation or a linear system"`
	Matrix   cli.MatrixCmd   `cmd:"" help:"Evaluate a matrix formula"`
	Version  VersionCmd      `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("SharpMath v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
