// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the editor.
// Printable keys not bound here are inserted as text.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	LineStart key.Binding
	LineEnd   key.Binding

	// Editing
	NewLine       key.Binding
	Backspace     key.Binding
	ForwardDelete key.Binding
	Paste         key.Binding
	Clear         key.Binding
	Undo          key.Binding
	Redo          key.Binding

	// Formatting
	Bold        key.Binding
	Italic      key.Binding
	Underline   key.Binding
	AlignLeft   key.Binding
	AlignCenter key.Binding
	AlignRight  key.Binding
	FontBigger  key.Binding
	FontSmaller key.Binding

	// General
	Export     key.Binding
	SaveFormat key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "column left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "column right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "line end"),
		),

		// Editing
		NewLine: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete back"),
		),
		ForwardDelete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete forward"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+shift+z"),
			key.WithHelp("ctrl+y", "redo"),
		),

		// Formatting
		Bold: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "bold"),
		),
		// Terminals send ctrl+i as tab.
		Italic: key.NewBinding(
			key.WithKeys("ctrl+i", "tab"),
			key.WithHelp("ctrl+i", "italic"),
		),
		Underline: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "underline"),
		),
		AlignLeft: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "align left"),
		),
		AlignCenter: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "align center"),
		),
		AlignRight: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "align right"),
		),
		FontBigger: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑", "font size +2"),
		),
		FontSmaller: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↓", "font size -2"),
		),

		// General
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export png"),
		),
		SaveFormat: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "save format"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Redo, k.Export, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.LineStart, k.LineEnd},                     // Navigation
		{k.NewLine, k.Backspace, k.ForwardDelete, k.Paste, k.Clear, k.Undo, k.Redo}, // Editing
		{k.Bold, k.Italic, k.Underline, k.AlignLeft, k.AlignCenter, k.AlignRight},   // Formatting
		{k.FontBigger, k.FontSmaller, k.Export, k.SaveFormat, k.Help, k.Quit},       // General
	}
}
