package tui

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard is where paste reads from.
type Clipboard interface {
	ReadAll() (string, error)
}

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("clipboard not supported on this system")
	}
	return clipboard.ReadAll()
}

// StaticClipboard always pastes the same text. Useful in tests.
type StaticClipboard string

// ReadAll returns s.
func (s StaticClipboard) ReadAll() (string, error) { return string(s), nil }
