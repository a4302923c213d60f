package form

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/listmodel"
	"github.com/goliatone/go-formbind/pkg/variable"
)

func mustBind(t *testing.T, f *Form, w Widget, ctrl ControlType, v *variable.Variable) *WidgetData {
	t.Helper()
	wd, err := f.Bind(w, ctrl, v)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return wd
}

func TestBind_RegistersListenerAndRejectsNil(t *testing.T) {
	f := New(newFakePump())
	w := &fakeWidget{}

	wd := mustBind(t, f, w, ControlButton, variable.NewString("ok"))
	if w.listener != wd {
		t.Fatalf("binding should install itself as the widget listener")
	}
	if f.Len() != 1 || f.Mode() != ModeInit {
		t.Fatalf("unexpected form state: len=%d mode=%s", f.Len(), f.Mode())
	}
	if _, err := f.Bind(&fakeWidget{}, ControlText, nil); !errors.Is(err, ErrNilVariable) {
		t.Fatalf("expected ErrNilVariable, got %v", err)
	}
	if _, err := f.Bind(nil, ControlText, variable.NewString("")); !errors.Is(err, ErrNilWidget) {
		t.Fatalf("expected ErrNilWidget, got %v", err)
	}
}

func TestTransferData_FirstPassPushesProgramValue(t *testing.T) {
	f := New(newFakePump())
	name := variable.NewString("Bob")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, name)

	wd.TransferData()

	if w.text != "Bob" {
		t.Fatalf("expected widget to show program value, got %q", w.text)
	}
	if name.Str() != "Bob" {
		t.Fatalf("push must not modify the variable, got %q", name.Str())
	}
}

func TestTransferData_PullsUserEdit(t *testing.T) {
	f := New(newFakePump())
	name := variable.NewString("Bob")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, name)
	wd.TransferData()

	w.text = "Alice"
	wd.TransferData()

	if name.Str() != "Alice" {
		t.Fatalf("expected pulled text, got %q", name.Str())
	}
	// the pull refreshed the snapshot, so the next pass pulls again rather
	// than pushing the value back
	setTexts := w.setTexts
	wd.TransferData()
	if w.setTexts != setTexts {
		t.Fatalf("pulled value must not be pushed back")
	}
}

func TestTransferData_EmptyTextBecomesEmptyString(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("seed")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, v)
	wd.TransferData()

	w.text = ""
	wd.TransferData()

	if v.Kind() != variable.KindString || v.Str() != "" {
		t.Fatalf("expected empty string sentinel, got %s %q", v.Kind(), v.Str())
	}
}

func TestTransferData_EmptyTextOnIntegerVariable(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewInt(0)
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, v)

	// integer 0 matches the blank snapshot, so the first pass pulls
	wd.TransferData()

	if v.Kind() != variable.KindString || v.Str() != "" {
		t.Fatalf("expected empty string sentinel, got %s %q", v.Kind(), v.Text())
	}
}

func TestTransferData_PushWinsOverUserEdit(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("original")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, v)
	wd.TransferData()

	w.text = "typed by user"
	v.SetString("from program")
	wd.TransferData()

	if w.text != "from program" {
		t.Fatalf("expected program value to win, widget shows %q", w.text)
	}
	if v.Str() != "from program" {
		t.Fatalf("user edit must be discarded, variable is %q", v.Str())
	}
}

func TestTransferData_IdentityNotContent(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("same")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlText, v)
	wd.TransferData()

	w.text = "edited"
	v.SetString("same")
	wd.TransferData()

	if w.text != "same" {
		t.Fatalf("re-binding identical text must count as a change, widget shows %q", w.text)
	}
}

func TestTransferData_ButtonPullsCaption(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewInt(0)
	w := &fakeWidget{text: "OK"}
	wd := mustBind(t, f, w, ControlButton, v)

	wd.TransferData()

	if v.Str() != "OK" {
		t.Fatalf("expected caption to be pulled, got %q", v.Text())
	}
}

func TestTransferData_IntegerChangeKeepsButtonCaption(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewInt(0)
	w := &fakeWidget{text: "OK"}
	wd := mustBind(t, f, w, ControlButton, v)
	wd.TransferData()

	v.SetInt(3)
	wd.TransferData()

	if w.text != "OK" || w.setTexts != 0 {
		t.Fatalf("integer change must not overwrite the caption, widget shows %q", w.text)
	}
	if v.Kind() != variable.KindString || v.Str() != "OK" {
		t.Fatalf("the pass should fall through to a pull, got %s %q", v.Kind(), v.Text())
	}
}

func TestTransferData_LabelNeverPulls(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("title")
	w := &fakeWidget{}
	wd := mustBind(t, f, w, ControlLabel, v)
	wd.TransferData()
	before := v.Identity()

	w.text = "changed"
	wd.TransferData()

	if v.Identity() != before {
		t.Fatalf("labels are display only")
	}
}

func TestTransferData_ListBox(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("Medium")
	model := listmodel.New(listmodel.FromString("Easy|Medium|Hard"), v)
	w := &fakeWidget{model: model}
	wd := mustBind(t, f, w, ControlListBox, v)

	// first pass: string push selects the matching entry
	wd.TransferData()
	if model.SelectedIndex() != 1 {
		t.Fatalf("expected Medium selected, got %d", model.SelectedIndex())
	}

	// user picks another entry
	model.SetSelectedIndex(2)
	wd.TransferData()
	if v.Str() != "Hard" {
		t.Fatalf("expected pulled selection, got %q", v.Str())
	}

	// program assigns a delimited string: list is rebuilt
	v.SetString("Red|Green")
	wd.TransferData()
	if diff := cmp.Diff([]string{"Red", "Green"}, model.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if model.SelectedIndex() != -1 {
		t.Fatalf("rebuilt list should start unselected")
	}

	// nothing selected: variable untouched by the pull
	before := v.Identity()
	wd.TransferData()
	if v.Identity() != before {
		t.Fatalf("pull without selection must not modify the variable")
	}

	// integer assignment selects by index
	v.SetInt(1)
	wd.TransferData()
	if model.SelectedIndex() != 1 {
		t.Fatalf("expected index 1 selected, got %d", model.SelectedIndex())
	}

	// array assignment rebuilds from the flattened array
	v.Set(variable.FromValue([]any{"A", []any{"B"}, 3}))
	wd.TransferData()
	if diff := cmp.Diff([]string{"A", "B", "3"}, model.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestTransferData_ArrayOnScalarControlClearsWidget(t *testing.T) {
	f := New(newFakePump())
	arr := variable.FromValue([]any{"a", "b"})
	w := &fakeWidget{text: "caption"}
	wd := mustBind(t, f, w, ControlButton, arr)

	wd.TransferData()
	wd.TransferData()

	if w.text != "" {
		t.Fatalf("expected cleared widget, got %q", w.text)
	}
	if arr.Kind() != variable.KindArray || arr.Len() != 2 {
		t.Fatalf("array variable must be left untouched")
	}
}

func TestUpdate_CreationOrder(t *testing.T) {
	var journal []string
	f := New(newFakePump())
	for _, name := range []string{"A", "B", "C"} {
		w := &journalWidget{fakeWidget{name: name, journal: &journal}}
		mustBind(t, f, w, ControlText, variable.NewString(name))
	}

	f.Update()
	f.Update()

	want := []string{"A", "B", "C", "A", "B", "C"}
	if diff := cmp.Diff(want, journal); diff != "" {
		t.Fatalf("transfer order mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_SkippedWhenNotRunning(t *testing.T) {
	pump := newFakePump()
	pump.running = false
	f := New(pump)
	w := &fakeWidget{}
	mustBind(t, f, w, ControlText, variable.NewString("x"))

	f.Update()

	if w.setTexts != 0 {
		t.Fatalf("stopped sessions must not synchronize")
	}
}

func TestExecute_ResetArguments(t *testing.T) {
	for name, arg := range map[string]Arg{
		"none":         ArgNone(),
		"zero":         ArgCode(0),
		"nil variable": ArgVariable(nil),
	} {
		t.Run(name, func(t *testing.T) {
			pump := newFakePump()
			f := New(pump)
			v := variable.NewString("hello")
			w := &fakeWidget{}
			mustBind(t, f, w, ControlText, v)

			if err := f.Execute(context.Background(), arg); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if w.text != "hello" {
				t.Fatalf("update pass must run before reset, widget shows %q", w.text)
			}
			if f.Len() != 0 || w.closed != 1 {
				t.Fatalf("expected form reset: len=%d closed=%d", f.Len(), w.closed)
			}
			if pump.calls != 0 {
				t.Fatalf("reset must not pump events")
			}
			if !arg.IsReset() {
				t.Fatalf("IsReset should report true")
			}
		})
	}
}

func TestExecute_DirectTargetReceivesTriggerValue(t *testing.T) {
	var ok *fakeWidget
	pump := newFakePump(func() { ok.click() })
	f := New(pump)
	target := variable.NewString("")
	ok = &fakeWidget{name: "ok", text: "OK"}
	mustBind(t, f, &fakeWidget{}, ControlText, variable.NewString("name"))
	mustBind(t, f, ok, ControlButton, variable.NewInt(0))

	if err := f.Execute(context.Background(), ArgVariable(target)); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if f.Mode() != ModeSelected {
		t.Fatalf("expected selected mode, got %s", f.Mode())
	}
	if pump.calls != 1 {
		t.Fatalf("loop should exit after the first widget event, got %d calls", pump.calls)
	}
	if target.Str() != "OK" {
		t.Fatalf("target = %q, want OK", target.Text())
	}
	if f.Target() != target {
		t.Fatalf("target should be retained for inspection")
	}
}

func TestInvoke_ArrayTriggerClearsTarget(t *testing.T) {
	f := New(newFakePump())
	arr := variable.FromValue([]any{"x", "y"})
	model := listmodel.New(listmodel.FromVariable(arr), nil)
	wd := mustBind(t, f, &fakeWidget{model: model}, ControlListBox, arr)
	f.resolve(ArgVariable(variable.NewInt(5)))

	f.Invoke(wd)

	target := f.Target()
	if target.Kind() != variable.KindString || target.Str() != "" {
		t.Fatalf("expected cleared target, got %s %q", target.Kind(), target.Text())
	}
	if f.Mode() != ModeSelected {
		t.Fatalf("expected selected mode")
	}
}

func TestInvoke_WithoutTargetOnlyChangesMode(t *testing.T) {
	f := New(newFakePump())
	v := variable.NewString("keep")
	wd := mustBind(t, f, &fakeWidget{}, ControlButton, v)

	f.Invoke(wd)

	if f.Mode() != ModeSelected || v.Str() != "keep" {
		t.Fatalf("unexpected state: mode=%s v=%q", f.Mode(), v.Str())
	}
}

func TestExecute_EndsWhenSessionStops(t *testing.T) {
	pump := newFakePump(func() {}, func() {})
	f := New(pump)
	v := variable.NewString("start")
	w := &fakeWidget{}
	mustBind(t, f, w, ControlText, v)
	pump.steps = append(pump.steps, func() { w.text = "typed" })
	// after the last step the user closes the window, stopping the pump
	pump.steps = append(pump.steps, func() { pump.running = false })

	if err := f.Execute(context.Background(), ArgCode(-1)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if f.Mode() != ModeActive {
		t.Fatalf("no widget fired, mode should stay active, got %s", f.Mode())
	}
	// the final update is skipped because the session is no longer running
	if v.Str() != "start" {
		t.Fatalf("stopped session must not pull, got %q", v.Str())
	}
}

func TestExecute_FinalUpdatePullsEdits(t *testing.T) {
	var ok *fakeWidget
	name := &fakeWidget{}
	pump := newFakePump(func() { name.text = "Alice" }, func() { ok.click() })
	f := New(pump)
	v := variable.NewString("Bob")
	ok = &fakeWidget{text: "OK"}
	mustBind(t, f, name, ControlText, v)
	mustBind(t, f, ok, ControlButton, variable.NewString(""))

	if err := f.Execute(context.Background(), ArgCode(-1)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if v.Str() != "Alice" {
		t.Fatalf("final update should pull the edit, got %q", v.Str())
	}
}

func TestExecute_DismissKeepsFinalUpdate(t *testing.T) {
	name := &fakeWidget{}
	base := newFakePump()
	pump := &dismissPump{fakePump: base, dismissed: true}
	base.steps = []func(){
		func() {
			name.text = "Alice"
			pump.dismissed = true
		},
		func() { t.Fatalf("loop should have ended on dismissal") },
	}
	f := New(pump)
	v := variable.NewString("Bob")
	mustBind(t, f, name, ControlText, v)

	if err := f.Execute(context.Background(), ArgCode(-1)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if base.calls != 1 {
		t.Fatalf("expected one pump call, got %d", base.calls)
	}
	if f.Mode() != ModeActive {
		t.Fatalf("dismissal is not a selection, got %s", f.Mode())
	}
	if v.Str() != "Alice" {
		t.Fatalf("final update should pull the edit after dismissal, got %q", v.Str())
	}
}

func TestExecute_ClickIgnoredAfterSessionStops(t *testing.T) {
	pump := newFakePump()
	f := New(pump)
	w := &fakeWidget{text: "OK"}
	mustBind(t, f, w, ControlButton, variable.NewString(""))
	pump.running = false

	w.click()

	if f.Mode() != ModeInit {
		t.Fatalf("clicks outside a running session must be ignored")
	}
}

func TestExecute_KeyboardMonitor(t *testing.T) {
	base := newFakePump()
	pump := &keyPump{fakePump: base}
	base.keyHit = true
	base.steps = []func(){
		func() { base.keyHit = true },
		func() { t.Fatalf("loop should have stopped after the key press") },
	}
	f := New(pump)
	mustBind(t, f, &fakeWidget{}, ControlText, variable.NewString(""))

	if err := f.Execute(context.Background(), ArgCode(OptionKeyboard)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !f.KeyboardMonitor() {
		t.Fatalf("option 1 should enable keyboard monitoring")
	}
	if base.cleared != 1 {
		t.Fatalf("pending keys should be cleared before the loop")
	}
	if base.calls != 1 {
		t.Fatalf("expected one pump call, got %d", base.calls)
	}
}

func TestExecute_KeyboardMonitorIgnoredWithoutKeyInput(t *testing.T) {
	pump := newFakePump(func() {})
	f := New(pump, WithKeyboardMonitor(true))
	if !f.KeyboardMonitor() {
		t.Fatalf("WithKeyboardMonitor should enable monitoring")
	}

	// the pump cannot report keys, so only the session ending stops the loop
	if err := f.Execute(context.Background(), ArgCode(-1)); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if pump.calls != 2 {
		t.Fatalf("expected the loop to run until the pump stopped, got %d calls", pump.calls)
	}
}

func TestExecute_ContextAndPumpErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := New(newFakePump(func() {}))
	mustBind(t, f, &fakeWidget{}, ControlText, variable.NewString(""))
	if err := f.Execute(ctx, ArgCode(-1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	boom := errors.New("boom")
	pump := newFakePump()
	pump.err = boom
	f = New(pump)
	if err := f.Execute(context.Background(), ArgCode(-1)); !errors.Is(err, boom) {
		t.Fatalf("expected pump error, got %v", err)
	}

	if err := New(nil).Execute(context.Background(), ArgCode(-1)); !errors.Is(err, ErrNilPump) {
		t.Fatalf("expected ErrNilPump, got %v", err)
	}
}

func TestReset_ClosesEachWidgetOnce(t *testing.T) {
	f := New(newFakePump())
	a, b := &fakeWidget{}, &fakeWidget{}
	wdA := mustBind(t, f, a, ControlText, variable.NewString(""))
	mustBind(t, f, b, ControlLabel, variable.NewString(""))

	if err := f.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := wdA.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := f.Reset(); err != nil {
		t.Fatalf("second reset: %v", err)
	}

	if a.closed != 1 || b.closed != 1 {
		t.Fatalf("widgets closed %d/%d times, want 1/1", a.closed, b.closed)
	}
	if a.listener != nil {
		t.Fatalf("listener should be detached on close")
	}
	if f.Len() != 0 || f.Mode() != ModeInit {
		t.Fatalf("reset form should be empty and in init mode")
	}
}
