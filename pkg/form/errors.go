package form

import "errors"

var (
	// ErrNilVariable is returned when a widget is bound to a nil variable.
	ErrNilVariable = errors.New("form: bound variable is nil")
	// ErrNilWidget is returned when a binding is requested without a widget.
	ErrNilWidget = errors.New("form: widget is nil")
	// ErrNilPump is returned when a form is executed without an event pump.
	ErrNilPump = errors.New("form: event pump is nil")
)
