package form

import (
	"context"
	"time"

	"github.com/goliatone/go-formbind/pkg/listmodel"
)

type fakeWidget struct {
	name     string
	text     string
	model    *listmodel.Model
	listener Listener
	closed   int
	setTexts int
	journal  *[]string
}

func (w *fakeWidget) Text() string { return w.text }

func (w *fakeWidget) SetText(text string) {
	w.text = text
	w.setTexts++
}

func (w *fakeWidget) List() *listmodel.Model { return w.model }

func (w *fakeWidget) SetListener(l Listener) { w.listener = l }

func (w *fakeWidget) Close() error {
	w.closed++
	return nil
}

func (w *fakeWidget) click() {
	if w.listener != nil {
		w.listener.ButtonClicked(w.name)
	}
}

// journalWidget records every Text/List access so tests can observe the
// order in which bindings are synchronized.
type journalWidget struct {
	fakeWidget
}

func (w *journalWidget) Text() string {
	*w.journal = append(*w.journal, w.name)
	return w.fakeWidget.Text()
}

func (w *journalWidget) SetText(text string) {
	*w.journal = append(*w.journal, w.name)
	w.fakeWidget.SetText(text)
}

// fakePump runs one scripted step per ProcessEvents call. Once the script is
// exhausted the pump stops running.
type fakePump struct {
	running bool
	exit    bool
	steps   []func()
	calls   int
	keyHit  bool
	cleared int
	err     error
}

func newFakePump(steps ...func()) *fakePump {
	return &fakePump{running: true, steps: steps}
}

func (p *fakePump) ProcessEvents(_ context.Context, timeout time.Duration) error {
	if timeout != NoTimeout {
		panic("event pump must be called without a timeout")
	}
	p.calls++
	if p.err != nil {
		return p.err
	}
	if len(p.steps) == 0 {
		p.running = false
		p.exit = true
		return nil
	}
	step := p.steps[0]
	p.steps = p.steps[1:]
	step()
	return nil
}

func (p *fakePump) IsRunning() bool { return p.running }

func (p *fakePump) IsExit() bool { return p.exit }

type keyPump struct {
	*fakePump
}

func (p *keyPump) KeyHit() bool { return p.keyHit }

func (p *keyPump) ClearKeys() {
	p.cleared++
	p.keyHit = false
}

type dismissPump struct {
	*fakePump
	dismissed bool
	consumed  int
}

func (p *dismissPump) Dismissed() bool {
	p.consumed++
	hit := p.dismissed
	p.dismissed = false
	return hit
}
