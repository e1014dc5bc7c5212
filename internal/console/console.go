// Package console holds the colour helpers shared by the interactive session
// and the history printer. Colours switch off automatically when stdout is
// not a terminal or NO_COLOR is set.
package console

import (
	"github.com/fatih/color"
)

var (
	Heading  = color.New(color.Bold, color.FgCyan).SprintFunc()
	Language = color.New(color.FgGreen).SprintFunc()
	Prompt   = color.New(color.Bold, color.FgYellow).SprintFunc()
	Error    = color.New(color.FgRed).SprintFunc()
	Muted    = color.New(color.Faint).SprintFunc()
)

// Disable turns colour output off for the whole process.
func Disable() {
	color.NoColor = true
}
