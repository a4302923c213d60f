package form

import (
	"context"
	"time"

	"github.com/goliatone/go-formbind/pkg/listmodel"
)

// ControlType identifies the kind of widget a binding drives.
type ControlType int

const (
	ControlButton ControlType = iota
	ControlLabel
	ControlText
	ControlListBox
)

// String implements fmt.Stringer.
func (c ControlType) String() string {
	switch c {
	case ControlButton:
		return "button"
	case ControlLabel:
		return "label"
	case ControlText:
		return "text"
	case ControlListBox:
		return "listbox"
	default:
		return "unknown"
	}
}

// Mode tracks the state of a form session.
type Mode int

const (
	// ModeInit means no widget interaction is in progress.
	ModeInit Mode = iota
	// ModeActive means the event loop is running and waiting for a widget.
	ModeActive
	// ModeSelected means a widget fired and the loop is about to exit.
	ModeSelected
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeInit:
		return "init"
	case ModeActive:
		return "active"
	case ModeSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// NoTimeout asks the event pump to block until something happens.
const NoTimeout time.Duration = -1

// Rect is widget geometry in rendering units. Negative width or height asks
// the factory for a default size.
type Rect struct {
	X, Y, W, H int
}

// Listener receives widget interaction callbacks.
type Listener interface {
	ButtonClicked(action string)
}

// Widget is a live widget created by a Factory.
type Widget interface {
	Text() string
	SetText(text string)
	// List returns the backing model for list widgets and nil otherwise.
	List() *listmodel.Model
	// SetListener installs l as the single interaction listener. A nil
	// listener detaches the previous one.
	SetListener(l Listener)
	Close() error
}

// Factory creates widgets on the rendering surface.
type Factory interface {
	CreateButton(caption string, rect Rect) (Widget, error)
	CreateLabel(caption string, rect Rect) (Widget, error)
	CreateList(model *listmodel.Model, rect Rect) (Widget, error)
	CreateLineInput(text string, rect Rect) (Widget, error)
}

// EventPump delivers platform events and reports session liveness.
type EventPump interface {
	// ProcessEvents blocks until at least one event was handled or timeout
	// elapses. Widget callbacks run synchronously inside the call.
	ProcessEvents(ctx context.Context, timeout time.Duration) error
	IsRunning() bool
	IsExit() bool
}

// KeyInput is implemented by event pumps that can report raw key presses.
type KeyInput interface {
	KeyHit() bool
	ClearKeys()
}

// Dismisser is implemented by event pumps whose user can leave the form
// without invoking a widget. Dismissed reports a pending request and clears it.
type Dismisser interface {
	Dismissed() bool
}
