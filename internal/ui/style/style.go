// Package style holds the colors and icons shared by the CLI output and the logger.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#8B5CF6")
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
	Arrow   = "→"
)

// Severity returns the icon and color used for a diagnostic severity.
func Severity(severity string) (string, lipgloss.Color) {
	switch severity {
	case "error":
		return Cross, Red
	case "warning":
		return Warning, Yellow
	default:
		return Arrow, Slate
	}
}
