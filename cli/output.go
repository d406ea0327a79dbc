package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/VrezenStrijder/SharpMath/calculation"
)

// printResult writes the trace and the final value. Steps are suppressed
// in quiet mode.
func printResult(ctx *Context, result *calculation.Result) {
	if !ctx.Quiet {
		for _, step := range result.Steps() {
			if step.DescriptionAfter {
				fmt.Println(step.Result.ToDisplayText())
				color.Blue("  %s", step.Description)
			} else {
				color.Blue("%s:", step.Description)
				fmt.Printf("  %s\n", step.Result.ToDisplayText())
			}
		}
	}

	color.Green("%s", result.Final.ToDisplayText())
}
