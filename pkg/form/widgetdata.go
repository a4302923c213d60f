package form

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/listmodel"
	"github.com/goliatone/go-formbind/pkg/variable"
)

// snapshot is the last observed state of a bound variable. Strings and arrays
// are compared by storage identity, never by content.
type snapshot struct {
	kind variable.Kind
	i    int64
	id   any
}

func observe(v *variable.Variable) snapshot {
	return snapshot{kind: v.Kind(), i: v.Int(), id: v.Identity()}
}

func (s snapshot) differs(v *variable.Variable) bool {
	if s.kind != v.Kind() {
		return true
	}
	if v.Kind() == variable.KindInteger {
		return s.i != v.Int()
	}
	return s.id != v.Identity()
}

// WidgetData binds one widget to one interpreter variable and keeps the two in
// sync. It owns the widget and closes it when the owning form is reset.
type WidgetData struct {
	form   *Form
	widget Widget
	ctrl   ControlType
	v      *variable.Variable
	snap   snapshot
	closed bool
}

// Widget returns the bound widget.
func (w *WidgetData) Widget() Widget { return w.widget }

// Control returns the control type.
func (w *WidgetData) Control() ControlType { return w.ctrl }

// Variable returns the bound variable.
func (w *WidgetData) Variable() *variable.Variable { return w.v }

// TransferData runs one synchronization step. A variable changed by the
// program since the last pass is pushed into the widget and any pending user
// edit is discarded; otherwise the widget state is pulled into the variable.
func (w *WidgetData) TransferData() {
	if w.closed {
		return
	}
	if w.v.Kind() == variable.KindArray && w.ctrl != ControlListBox {
		// arrays are not single values; blank the widget rather than fail
		w.widget.SetText("")
		w.snap = observe(w.v)
		return
	}
	if w.snap.differs(w.v) && w.push() {
		w.form.logger.Debug("form: push", "control", w.ctrl.String(), "kind", w.v.Kind().String())
		w.snap = observe(w.v)
		return
	}
	w.pull()
	w.snap = observe(w.v)
}

// push copies the variable into the widget and reports whether it did so.
func (w *WidgetData) push() bool {
	switch w.v.Kind() {
	case variable.KindInteger:
		// integers only drive list selection; other controls keep their text
		if w.ctrl != ControlListBox {
			return false
		}
		if model := w.widget.List(); model != nil {
			model.SetSelectedIndex(int(w.v.Int()))
		}
		return true

	case variable.KindArray:
		model := w.widget.List()
		if model == nil {
			return false
		}
		model.Create(listmodel.FromVariable(w.v), nil)
		return true

	case variable.KindString:
		text := w.v.Str()
		if w.ctrl != ControlListBox {
			w.widget.SetText(text)
			return true
		}
		model := w.widget.List()
		if model == nil {
			return true
		}
		if strings.Contains(text, listmodel.Delimiter) {
			model.Create(listmodel.FromString(text), nil)
		} else if idx, ok := model.Index(text); ok {
			model.SetSelectedIndex(idx)
		}
		return true
	}
	return false
}

// pull copies the widget state into the variable.
func (w *WidgetData) pull() {
	switch w.ctrl {
	case ControlText, ControlButton:
		if text := w.widget.Text(); text != "" {
			w.v.SetString(text)
		} else {
			w.v.ZeroString()
		}
		w.form.logger.Debug("form: pull", "control", w.ctrl.String())

	case ControlListBox:
		if text, ok := w.widget.List().SelectedText(); ok {
			w.v.SetString(text)
			w.form.logger.Debug("form: pull", "control", w.ctrl.String(), "selected", text)
		}
	}
}

// ButtonClicked implements Listener. While the session is running it
// synchronizes this binding and hands it to the form as the trigger.
func (w *WidgetData) ButtonClicked(action string) {
	if w.closed || !w.form.running() {
		return
	}
	w.form.logger.Debug("form: widget invoked", "control", w.ctrl.String(), "action", action)
	w.TransferData()
	w.form.Invoke(w)
}

// Close detaches the listener and closes the widget. It is safe to call more
// than once; only the first call has an effect.
func (w *WidgetData) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.widget.SetListener(nil)
	return w.widget.Close()
}
