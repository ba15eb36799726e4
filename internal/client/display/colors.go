// FILE: internal/client/display/colors.go
package display

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color helpers, each returns its arguments wrapped in the terminal color
var (
	Red     = color.New(color.FgRed).SprintFunc()
	Green   = color.New(color.FgGreen).SprintFunc()
	Yellow  = color.New(color.FgYellow).SprintFunc()
	Blue    = color.New(color.FgBlue).SprintFunc()
	Magenta = color.New(color.FgMagenta).SprintFunc()
	Cyan    = color.New(color.FgCyan).SprintFunc()
	White   = color.New(color.FgWhite).SprintFunc()
)

// Init turns colors off when stdout is not a terminal or disabled is set
func Init(disabled bool) {
	color.NoColor = disabled || !term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow(text + " > ")
}

// Errorf prints a red line
func Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf(format+"\n", args...)
}

// Successf prints a green line
func Successf(format string, args ...any) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

// Infof prints a cyan line
func Infof(format string, args ...any) {
	color.New(color.FgCyan).Printf(format+"\n", args...)
}
