package viewer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the viewer's keyboard shortcuts.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Edit       key.Binding
	Quit       key.Binding
	Abort      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "enter", "right"),
			key.WithHelp("n/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "previous"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "next file"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stop"),
		),
	}
}

// help returns the one-line help text.
func (k KeyMap) help() string {
	bindings := []key.Binding{k.Next, k.Prev, k.Edit, k.Quit, k.Abort}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, "["+b.Help().Key+"] "+b.Help().Desc)
	}
	return strings.Join(parts, " | ")
}
