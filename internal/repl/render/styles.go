// Package render provides plan and output rendering for the plansh REPL.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorCyan  = lipgloss.Color("12") // step descriptions
	ColorGreen = lipgloss.Color("10") // command text, success
	ColorRed   = lipgloss.Color("9")  // errors
	ColorGray  = lipgloss.Color("8")  // secondary info
)

var (
	// StepStyle is used for plan step descriptions.
	StepStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	// CommandStyle is used for the literal command text of a step.
	CommandStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	// ErrorStyle is used for error output and exit code markers.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// DimStyle is used for secondary information.
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)
)
