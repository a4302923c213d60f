package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/listmodel"
)

// doneLabel is the menu entry that ends the session.
const doneLabel = "Done"

// Screen is a terminal rendering surface and event pump for form sessions.
// Each ProcessEvents call presents one menu of the interactive widgets; the
// user's choice is delivered to the widget's listener before it returns.
// Choosing Done dismisses the form; an interrupt stops the session.
type Screen struct {
	driver     PromptDriver
	theme      Theme
	pageSize   int
	out        io.Writer
	logger     *slog.Logger
	labelStyle lipgloss.Style

	widgets   []*widget
	nextID    int
	running   bool
	exit      bool
	keyHit    bool
	dismissed bool
}

var (
	_ form.Factory   = (*Screen)(nil)
	_ form.EventPump = (*Screen)(nil)
	_ form.KeyInput  = (*Screen)(nil)
	_ form.Dismisser = (*Screen)(nil)
)

// New constructs a screen with defaults (survey driver on stdout). Without an
// injected driver stdin must be a terminal.
func New(options ...Option) (*Screen, error) {
	s := &Screen{
		theme:      DefaultTheme,
		pageSize:   10,
		out:        os.Stdout,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		labelStyle: lipgloss.NewStyle().Bold(true),
		running:    true,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.driver == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, ErrNotInteractive
		}
		driver, err := newSurveyDriver(s.out)
		if err != nil {
			return nil, err
		}
		s.driver = driver
	}

	return s, nil
}

// CreateButton implements form.Factory.
func (s *Screen) CreateButton(caption string, rect form.Rect) (form.Widget, error) {
	return s.add(kindButton, caption, rect, nil), nil
}

// CreateLabel implements form.Factory.
func (s *Screen) CreateLabel(caption string, rect form.Rect) (form.Widget, error) {
	return s.add(kindLabel, caption, rect, nil), nil
}

// CreateList implements form.Factory.
func (s *Screen) CreateList(model *listmodel.Model, rect form.Rect) (form.Widget, error) {
	if model == nil {
		model = listmodel.New(listmodel.Source{}, nil)
	}
	return s.add(kindList, "", rect, model), nil
}

// CreateLineInput implements form.Factory.
func (s *Screen) CreateLineInput(text string, rect form.Rect) (form.Widget, error) {
	return s.add(kindInput, text, rect, nil), nil
}

func (s *Screen) add(kind widgetKind, text string, rect form.Rect, model *listmodel.Model) *widget {
	s.nextID++
	w := &widget{
		screen: s,
		kind:   kind,
		id:     s.nextID,
		text:   text,
		rect:   rect,
		model:  model,
	}
	s.widgets = append(s.widgets, w)
	return w
}

func (s *Screen) remove(target *widget) {
	for idx, w := range s.widgets {
		if w == target {
			s.widgets = append(s.widgets[:idx], s.widgets[idx+1:]...)
			return
		}
	}
}

// IsRunning implements form.EventPump.
func (s *Screen) IsRunning() bool { return s.running }

// IsExit implements form.EventPump.
func (s *Screen) IsExit() bool { return s.exit }

// Stop ends the session; subsequent event processing is a no-op.
func (s *Screen) Stop() {
	s.running = false
	s.exit = true
}

// KeyHit implements form.KeyInput. Every answered menu counts as a key press.
func (s *Screen) KeyHit() bool { return s.keyHit }

// ClearKeys implements form.KeyInput.
func (s *Screen) ClearKeys() { s.keyHit = false }

// Dismissed implements form.Dismisser. It reports whether the user left the
// form through the Done entry since the last call.
func (s *Screen) Dismissed() bool {
	hit := s.dismissed
	s.dismissed = false
	return hit
}

// ProcessEvents implements form.EventPump. The terminal has no timers, so the
// timeout is ignored and every call blocks on user input.
func (s *Screen) ProcessEvents(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.running {
		return nil
	}

	interactive := make([]*widget, 0, len(s.widgets))
	options := make([]string, 0, len(s.widgets)+1)
	for _, w := range s.widgets {
		if w.kind == kindLabel {
			if err := s.driver.Info(ctx, s.theme.InfoPrefix+s.labelStyle.Render(w.display())); err != nil {
				return fmt.Errorf("tui: label: %w", err)
			}
			continue
		}
		interactive = append(interactive, w)
		options = append(options, w.display())
	}
	options = append(options, doneLabel)

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.theme.PromptPrefix + "Form",
		Options:      options,
		DefaultIndex: 0,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return s.handleErr(ctx, err)
	}
	s.keyHit = true
	if idx < 0 || idx >= len(interactive) {
		leave, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.theme.PromptPrefix + "Leave the form?",
			Default: true,
		})
		if err != nil {
			return s.handleErr(ctx, err)
		}
		if leave {
			// the screen keeps running so the form can still pull edits
			s.logger.Debug("tui: form dismissed")
			s.dismissed = true
		}
		return nil
	}
	return s.activate(ctx, interactive[idx])
}

func (s *Screen) activate(ctx context.Context, w *widget) error {
	switch w.kind {
	case kindInput:
		text, err := s.driver.Input(ctx, InputConfig{
			Message: s.theme.PromptPrefix + w.name(),
			Default: w.text,
		})
		if err != nil {
			return s.handleErr(ctx, err)
		}
		w.text = text
		s.logger.Debug("tui: text edited", "widget", w.name())

	case kindList:
		if w.model.RowCount() == 0 {
			return s.driver.Info(ctx, s.theme.ErrorPrefix+w.name()+" is empty")
		}
		items := w.model.Items()
		for idx := range items {
			items[idx] = sanitizeCaption(items[idx])
		}
		choice, err := s.driver.Select(ctx, SelectConfig{
			Message:      s.theme.PromptPrefix + w.name(),
			Options:      items,
			DefaultIndex: w.model.SelectedIndex(),
			PageSize:     s.pageSize,
		})
		if err != nil {
			return s.handleErr(ctx, err)
		}
		w.model.SetSelectedIndex(choice)
		selected, _ := w.model.SelectedText()
		s.logger.Debug("tui: list selection", "widget", w.name(), "index", choice)
		w.fire(selected)

	default:
		s.logger.Debug("tui: button pressed", "widget", w.name())
		w.fire(w.text)
	}
	return nil
}

// handleErr turns a user abort into the end of the session and reports other
// failures.
func (s *Screen) handleErr(ctx context.Context, err error) error {
	if errors.Is(err, ErrAborted) {
		s.logger.Debug("tui: session aborted")
		s.Stop()
		return nil
	}
	if infoErr := s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error()); infoErr != nil {
		return errors.Join(err, infoErr)
	}
	return err
}
