package tui

import "github.com/rgehrsitz/taxpilot/internal/store"

// SessionChangedMsg carries a session snapshot published after any change,
// including changes made outside the wizard.
type SessionChangedMsg struct {
	Snapshot store.Snapshot
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
