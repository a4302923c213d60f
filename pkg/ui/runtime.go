package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/listmodel"
	"github.com/goliatone/go-formbind/pkg/variable"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

// Rect aliases form.Rect for callers of the command surface.
type Rect = form.Rect

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger routes command diagnostics, and those of the forms the runtime
// creates, to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistry overrides the widget type registry used by Button.
func WithRegistry(reg *widgets.Registry) Option {
	return func(r *Runtime) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// WithFormOptions forwards options to every form the runtime creates.
func WithFormOptions(options ...form.Option) Option {
	return func(r *Runtime) {
		r.formOptions = append(r.formOptions, options...)
	}
}

// Runtime implements the BUTTON, TEXT and DOFORM commands. It owns at most
// one form at a time, creating it lazily when the first widget is added.
type Runtime struct {
	factory     form.Factory
	pump        form.EventPump
	registry    *widgets.Registry
	logger      *slog.Logger
	formOptions []form.Option
	form        *form.Form
}

// New constructs a runtime drawing widgets through factory and pumping events
// through pump.
func New(factory form.Factory, pump form.EventPump, options ...Option) *Runtime {
	r := &Runtime{
		factory:  factory,
		pump:     pump,
		registry: widgets.NewRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Form returns the active form, or nil when none exists.
func (r *Runtime) Form() *form.Form {
	return r.form
}

func (r *Runtime) activeForm() *form.Form {
	if r.form == nil {
		opts := append([]form.Option{form.WithLogger(r.logger)}, r.formOptions...)
		r.form = form.New(r.pump, opts...)
		r.logger.Debug("ui: form created")
	}
	return r.form
}

// Button implements BUTTON x, y, w, h, variable, caption [, type]. An empty
// type creates a button. An unknown type resets the form and returns an
// *UnknownTypeError.
func (r *Runtime) Button(rect Rect, v *variable.Variable, caption, typ string) error {
	ctrl, ok := r.registry.Resolve(typ)
	if !ok {
		resetErr := r.Reset()
		unknown := &UnknownTypeError{Type: typ}
		if suggestion, found := r.registry.Suggest(typ); found {
			unknown.Suggestion = suggestion
		}
		r.logger.Warn("ui: unknown button type", "type", typ, "suggestion", unknown.Suggestion)
		if resetErr != nil {
			return errors.Join(unknown, resetErr)
		}
		return unknown
	}

	var (
		widget form.Widget
		err    error
	)
	switch ctrl {
	case form.ControlLabel:
		widget, err = r.factory.CreateLabel(caption, rect)
	case form.ControlListBox:
		model := listmodel.New(listmodel.FromCaption(caption, v), v)
		widget, err = r.factory.CreateList(model, rect)
	case form.ControlText:
		widget, err = r.factory.CreateLineInput(caption, rect)
	default:
		widget, err = r.factory.CreateButton(caption, rect)
	}
	if err != nil {
		return fmt.Errorf("ui: create %s: %w", ctrl, err)
	}
	return r.bind(widget, ctrl, v)
}

// Text implements TEXT x, y, w, h, variable. When DOFORM returns the variable
// holds the text the user entered.
func (r *Runtime) Text(rect Rect, v *variable.Variable) error {
	widget, err := r.factory.CreateLineInput("", rect)
	if err != nil {
		return fmt.Errorf("ui: create text: %w", err)
	}
	return r.bind(widget, form.ControlText, v)
}

func (r *Runtime) bind(widget form.Widget, ctrl form.ControlType, v *variable.Variable) error {
	if _, err := r.activeForm().Bind(widget, ctrl, v); err != nil {
		// the binding never took ownership, release the widget here
		return errors.Join(fmt.Errorf("ui: bind %s: %w", ctrl, err), widget.Close())
	}
	return nil
}

// DoForm implements DOFORM [flag|variable].
func (r *Runtime) DoForm(ctx context.Context, arg form.Arg) error {
	if r.form == nil {
		return ErrFormNotReady
	}
	err := r.form.Execute(ctx, arg)
	if arg.IsReset() {
		r.form = nil
	}
	return err
}

// Reset destroys the active form and all of its widgets.
func (r *Runtime) Reset() error {
	if r.form == nil {
		return nil
	}
	err := r.form.Reset()
	r.form = nil
	r.logger.Debug("ui: form reset")
	return err
}
