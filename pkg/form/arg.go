package form

import "github.com/goliatone/go-formbind/pkg/variable"

// OptionKeyboard is the DOFORM code that enables keyboard-hit monitoring.
const OptionKeyboard int64 = 1

type argKind int

const (
	argNone argKind = iota
	argVariable
	argCode
)

// Arg is the resolved DOFORM argument token.
type Arg struct {
	kind argKind
	v    *variable.Variable
	code int64
}

// ArgNone is an empty DOFORM argument; it resets the form.
func ArgNone() Arg { return Arg{} }

// ArgVariable asks Execute to block until a widget fires and to copy the
// triggering widget's value into v. A nil v behaves like ArgNone.
func ArgVariable(v *variable.Variable) Arg {
	if v == nil {
		return Arg{}
	}
	return Arg{kind: argVariable, v: v}
}

// ArgCode carries an evaluated integer option. Zero resets the form; other
// values apply the matching configuration option and then block.
func ArgCode(code int64) Arg {
	return Arg{kind: argCode, code: code}
}

// IsReset reports whether the argument resets the form.
func (a Arg) IsReset() bool {
	return a.kind == argNone || (a.kind == argCode && a.code == 0)
}
