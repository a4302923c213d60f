package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotInteractive is returned when no prompt driver was supplied and
	// stdin is not a terminal.
	ErrNotInteractive = errors.New("tui: stdin is not a terminal")
	// ErrWidgetClosed is returned when a closed widget is closed again.
	ErrWidgetClosed = errors.New("tui: widget already closed")
)
