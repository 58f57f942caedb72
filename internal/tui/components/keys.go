package components

import "github.com/charmbracelet/bubbles/key"

// FileListKeyMap defines key bindings for the file list
type FileListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Filter key.Binding
	Save   key.Binding
	Open   key.Binding
}

// DefaultFileListKeyMap returns the default file list key bindings
func DefaultFileListKeyMap() FileListKeyMap {
	return FileListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "save file"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
	}
}

// URLInputKeyMap defines key bindings handled by the URL field itself
type URLInputKeyMap struct {
	Accept key.Binding
}

// DefaultURLInputKeyMap returns the default URL field key bindings
func DefaultURLInputKeyMap() URLInputKeyMap {
	return URLInputKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab", "accept suggestion"),
		),
	}
}

// Package-level key map instances
var (
	ListKeys     = DefaultFileListKeyMap()
	URLInputKeys = DefaultURLInputKeyMap()
)
