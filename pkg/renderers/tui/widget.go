package tui

import (
	"fmt"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/listmodel"
)

type widgetKind int

const (
	kindButton widgetKind = iota
	kindLabel
	kindList
	kindInput
)

// widget is a terminal widget. Its text is kept verbatim; sanitizing happens
// only when it is displayed so pulled values match what the program stored.
type widget struct {
	screen   *Screen
	kind     widgetKind
	id       int
	text     string
	rect     form.Rect
	model    *listmodel.Model
	listener form.Listener
	closed   bool
}

func (w *widget) Text() string { return w.text }

func (w *widget) SetText(text string) { w.text = text }

func (w *widget) List() *listmodel.Model { return w.model }

func (w *widget) SetListener(l form.Listener) { w.listener = l }

func (w *widget) Close() error {
	if w.closed {
		return ErrWidgetClosed
	}
	w.closed = true
	w.listener = nil
	w.screen.remove(w)
	return nil
}

func (w *widget) fire(action string) {
	if w.listener != nil {
		w.listener.ButtonClicked(action)
	}
}

// display renders the widget as a menu entry.
func (w *widget) display() string {
	var line string
	switch w.kind {
	case kindButton:
		line = fmt.Sprintf("[ %s ]", sanitizeCaption(w.text))
	case kindInput:
		line = fmt.Sprintf("%s: %s", w.name(), sanitizeCaption(w.text))
	case kindList:
		selected, ok := w.model.SelectedText()
		if !ok {
			selected = "(none)"
		}
		line = fmt.Sprintf("%s: %s", w.name(), sanitizeCaption(selected))
	default:
		line = sanitizeCaption(w.text)
	}
	return fitWidth(line, w.rect.W)
}

func (w *widget) name() string {
	switch w.kind {
	case kindList:
		return fmt.Sprintf("List %d", w.id)
	case kindInput:
		return fmt.Sprintf("Text %d", w.id)
	case kindLabel:
		return fmt.Sprintf("Label %d", w.id)
	default:
		return fmt.Sprintf("Button %d", w.id)
	}
}
