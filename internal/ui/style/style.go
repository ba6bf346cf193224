// Package style provides the colors and icons shared by the CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Success renders a headline for a successful operation.
func Success(msg string) string {
	return lipgloss.NewStyle().Foreground(Green).Bold(true).Render(Check + " " + msg)
}

// Failure renders a headline for a failed operation.
func Failure(msg string) string {
	return lipgloss.NewStyle().Foreground(Red).Bold(true).Render(Cross + " " + msg)
}

// Caution renders a headline for an operation that finished with warnings.
func Caution(msg string) string {
	return lipgloss.NewStyle().Foreground(Yellow).Bold(true).Render(Warning + " " + msg)
}
