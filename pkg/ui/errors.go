package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType matches every UnknownTypeError via errors.Is.
	ErrUnknownType = errors.New("ui: unknown button type")
	// ErrFormNotReady is returned by DOFORM when no widget has been created.
	ErrFormNotReady = errors.New("UI: FORM NOT READY")
)

// UnknownTypeError reports a BUTTON command with an unrecognised type.
type UnknownTypeError struct {
	Type       string
	Suggestion string
}

func (e *UnknownTypeError) Error() string {
	msg := fmt.Sprintf("UI: UNKNOWN BUTTON TYPE: %s", e.Type)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Is makes errors.Is(err, ErrUnknownType) hold.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}
