package form

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/variable"
)

// Option configures a Form.
type Option func(*Form)

// WithLogger routes session diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithKeyboardMonitor makes Execute return as soon as the pump reports a raw
// key press, in addition to widget events.
func WithKeyboardMonitor(enabled bool) Option {
	return func(f *Form) {
		f.kbHandle = enabled
	}
}

// Form owns the widget bindings of one modal session and drives its event
// loop. It is not safe for concurrent use; all calls are expected from the
// interpreter's single control flow.
type Form struct {
	pump     EventPump
	logger   *slog.Logger
	items    []*WidgetData
	mode     Mode
	cmd      int64
	target   *variable.Variable
	kbHandle bool
}

// New constructs an empty form in ModeInit.
func New(pump EventPump, options ...Option) *Form {
	f := &Form{
		pump:   pump,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		mode:   ModeInit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Bind wraps widget in a WidgetData bound to v, appends it to the form in
// creation order and installs it as the widget's listener.
func (f *Form) Bind(widget Widget, ctrl ControlType, v *variable.Variable) (*WidgetData, error) {
	if widget == nil {
		return nil, ErrNilWidget
	}
	if v == nil {
		return nil, ErrNilVariable
	}
	wd := &WidgetData{
		form:   f,
		widget: widget,
		ctrl:   ctrl,
		v:      v,
	}
	f.items = append(f.items, wd)
	widget.SetListener(wd)
	f.logger.Debug("form: bind", "control", ctrl.String(), "index", len(f.items)-1)
	return wd, nil
}

// Mode reports the session state.
func (f *Form) Mode() Mode { return f.mode }

// Len reports the number of registered bindings.
func (f *Form) Len() int { return len(f.items) }

// Bindings returns the bindings in creation order.
func (f *Form) Bindings() []*WidgetData {
	return append([]*WidgetData(nil), f.items...)
}

// Target returns the direct target variable requested by the last Execute.
func (f *Form) Target() *variable.Variable { return f.target }

// KeyboardMonitor reports whether key presses end the event loop.
func (f *Form) KeyboardMonitor() bool { return f.kbHandle }

// Update synchronizes every binding in creation order. Later widgets may rely
// on earlier ones having been synchronized within the same pass.
func (f *Form) Update() {
	if !f.running() {
		return
	}
	for _, wd := range f.items {
		wd.TransferData()
	}
}

// Execute runs one DOFORM. It synchronizes all bindings, then either resets
// the form (reset argument) or pumps events until a widget invokes the form,
// the session stops, a monitored key is pressed, the user dismisses the form
// or ctx is done. A final synchronization pass runs after the loop.
func (f *Form) Execute(ctx context.Context, arg Arg) error {
	if f.pump == nil {
		return ErrNilPump
	}
	f.resolve(arg)
	f.Update()

	if f.cmd == 0 {
		f.logger.Debug("form: reset requested")
		return f.Reset()
	}

	f.mode = ModeActive
	keys, monitor := f.pump.(KeyInput)
	monitor = monitor && f.kbHandle
	if monitor {
		keys.ClearKeys()
	}
	dismisser, dismissable := f.pump.(Dismisser)
	if dismissable {
		// drop a request left over from outside this session
		dismisser.Dismissed()
	}
	f.logger.Debug("form: session start", "widgets", len(f.items), "target", f.target != nil, "keyboard", monitor)

	var loopErr error
	for f.pump.IsRunning() && f.mode == ModeActive {
		if err := ctx.Err(); err != nil {
			loopErr = err
			break
		}
		if err := f.pump.ProcessEvents(ctx, NoTimeout); err != nil {
			loopErr = err
			break
		}
		if monitor && keys.KeyHit() {
			break
		}
		if dismissable && dismisser.Dismissed() {
			f.logger.Debug("form: dismissed")
			break
		}
	}

	f.Update()
	f.logger.Debug("form: session end", "mode", f.mode.String(), "exit", f.pump.IsExit())
	return loopErr
}

// resolve applies the DOFORM argument to the session state.
func (f *Form) resolve(arg Arg) {
	f.target = nil
	switch arg.kind {
	case argVariable:
		f.target = arg.v
		f.cmd = -1
	case argCode:
		f.cmd = arg.code
		f.applyOption(arg.code)
	default:
		f.cmd = 0
	}
}

func (f *Form) applyOption(code int64) {
	switch code {
	case OptionKeyboard:
		f.kbHandle = true
	}
}

// Invoke marks the session as selected by wd. When Execute was given a target
// variable, the triggering widget's value is copied into it; array values are
// not valid selections and clear the target instead.
func (f *Form) Invoke(wd *WidgetData) {
	f.mode = ModeSelected
	if f.target == nil || wd == nil {
		return
	}
	if wd.v.Kind() == variable.KindArray {
		f.target.ZeroString()
		return
	}
	f.target.Set(wd.v)
}

// Reset closes every binding exactly once and returns the form to ModeInit.
func (f *Form) Reset() error {
	var errs []error
	for _, wd := range f.items {
		if err := wd.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.items = nil
	f.mode = ModeInit
	f.target = nil
	f.cmd = 0
	return errors.Join(errs...)
}

func (f *Form) running() bool {
	return f.pump != nil && f.pump.IsRunning()
}
