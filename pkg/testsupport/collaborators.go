package testsupport

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/listmodel"
)

// Widget is an in-memory form.Widget. Tests drive it directly and fire its
// listener with Click.
type Widget struct {
	Kind     string
	Rect     form.Rect
	Value    string
	Model    *listmodel.Model
	Listener form.Listener
	Closed   int
}

func (w *Widget) Text() string                { return w.Value }
func (w *Widget) SetText(text string)         { w.Value = text }
func (w *Widget) List() *listmodel.Model      { return w.Model }
func (w *Widget) SetListener(l form.Listener) { w.Listener = l }

func (w *Widget) Close() error {
	w.Closed++
	return nil
}

// Click fires the widget's listener the way a rendering surface would: lists
// report the selected entry, everything else its text.
func (w *Widget) Click() {
	if w.Listener == nil {
		return
	}
	action := w.Value
	if w.Model != nil {
		action, _ = w.Model.SelectedText()
	}
	w.Listener.ButtonClicked(action)
}

// Factory records every widget it creates, in creation order.
type Factory struct {
	Widgets []*Widget
}

var _ form.Factory = (*Factory)(nil)

func (f *Factory) add(kind, text string, rect form.Rect, model *listmodel.Model) (form.Widget, error) {
	w := &Widget{Kind: kind, Rect: rect, Value: text, Model: model}
	f.Widgets = append(f.Widgets, w)
	return w, nil
}

func (f *Factory) CreateButton(caption string, rect form.Rect) (form.Widget, error) {
	return f.add("button", caption, rect, nil)
}

func (f *Factory) CreateLabel(caption string, rect form.Rect) (form.Widget, error) {
	return f.add("label", caption, rect, nil)
}

func (f *Factory) CreateList(model *listmodel.Model, rect form.Rect) (form.Widget, error) {
	return f.add("list", "", rect, model)
}

func (f *Factory) CreateLineInput(text string, rect form.Rect) (form.Widget, error) {
	return f.add("text", text, rect, nil)
}

// Journal describes the created widgets, one line each.
func (f *Factory) Journal() []string {
	out := make([]string, 0, len(f.Widgets))
	for idx, w := range f.Widgets {
		line := fmt.Sprintf("%d %s %q", idx, w.Kind, w.Value)
		if w.Model != nil {
			selected, _ := w.Model.SelectedText()
			line = fmt.Sprintf("%d %s %v selected=%q", idx, w.Kind, w.Model.Items(), selected)
		}
		out = append(out, line)
	}
	return out
}

// Pump is a scripted form.EventPump. Each ProcessEvents call runs the next
// step; once the script is exhausted the session stops.
type Pump struct {
	Steps []func()
	Calls int
	done  bool
}

var _ form.EventPump = (*Pump)(nil)

func (p *Pump) ProcessEvents(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.Calls++
	if len(p.Steps) == 0 {
		p.done = true
		return nil
	}
	step := p.Steps[0]
	p.Steps = p.Steps[1:]
	step()
	return nil
}

func (p *Pump) IsRunning() bool { return !p.done }
func (p *Pump) IsExit() bool    { return p.done }
