package main

import (
	"fmt"

	"github.com/fatih/color"
)

// warning prints a warning message to standard error, matching cobra's own
// error-reporting convention for non-fatal conditions surfaced mid-run.
func warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}
