package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: module names, context names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for success and "installed" statuses.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and "skipped" statuses.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for failures.
	ColorRed = lipgloss.Color("196")

	// ColorGray is used for borders and secondary text.
	ColorGray = lipgloss.Color("240")
)

// Styles holds the lipgloss styles used across command output.
type Styles struct {
	Name    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

var defaultStyles = &Styles{
	Name:    lipgloss.NewStyle().Foreground(ColorCyan),
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	Error:   lipgloss.NewStyle().Foreground(ColorRed),
	Muted:   lipgloss.NewStyle().Foreground(ColorGray),
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return defaultStyles
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
