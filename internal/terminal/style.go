package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// MatchColor marks text that is about to be replaced.
	MatchColor = lipgloss.Color("9")
	// ReplacementColor marks proposed replacement text.
	ReplacementColor = lipgloss.Color("12")
	// SubtleColor is used for context lines and hints.
	SubtleColor = lipgloss.Color("241")

	// MatchStyle highlights matched text.
	MatchStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(MatchColor)

	// ReplacementStyle highlights replacement text.
	ReplacementStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ReplacementColor)

	// WarningStyle highlights paths and branch names in warnings.
	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(MatchColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// Highlight renders every occurrence of key in text with style.
func Highlight(text, key string, style lipgloss.Style) string {
	if key == "" {
		return text
	}
	return strings.ReplaceAll(text, key, style.Render(key))
}
