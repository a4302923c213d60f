package variable

import (
	"strconv"
	"strings"
)

// MaxDepth bounds how deep array traversals descend. Arrays nested deeper,
// including arrays that contain themselves, are treated as empty.
const MaxDepth = 64

// Kind enumerates the variants a Variable can hold.
type Kind int

const (
	KindInteger Kind = iota
	KindString
	KindArray
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

type stringCell struct {
	text string
}

type arrayCell struct {
	elems []*Variable
}

// Variable is a dynamically typed interpreter value. String and array payloads
// live in separately allocated cells; every assignment allocates a new cell so
// the cell pointer identifies the storage the variable is currently bound to.
//
// The zero value is the integer 0.
type Variable struct {
	kind Kind
	i    int64
	s    *stringCell
	a    *arrayCell
}

// NewInt returns an integer variable.
func NewInt(i int64) *Variable {
	return &Variable{kind: KindInteger, i: i}
}

// NewString returns a string variable bound to fresh storage.
func NewString(s string) *Variable {
	v := &Variable{}
	v.SetString(s)
	return v
}

// NewArray returns an array variable holding elems. The slice is copied, the
// element Variables are not.
func NewArray(elems ...*Variable) *Variable {
	v := &Variable{}
	v.SetArray(elems)
	return v
}

// Kind reports the current variant.
func (v *Variable) Kind() Kind {
	if v == nil {
		return KindInteger
	}
	return v.kind
}

// Int returns the integer payload, or 0 for non-integer variables.
func (v *Variable) Int() int64 {
	if v == nil || v.kind != KindInteger {
		return 0
	}
	return v.i
}

// Str returns the string payload, or "" for non-string variables.
func (v *Variable) Str() string {
	if v == nil || v.kind != KindString || v.s == nil {
		return ""
	}
	return v.s.text
}

// Elems returns the array elements. The returned slice is shared with the
// variable; callers must not append to it.
func (v *Variable) Elems() []*Variable {
	if v == nil || v.kind != KindArray || v.a == nil {
		return nil
	}
	return v.a.elems
}

// Len returns the number of array elements.
func (v *Variable) Len() int {
	return len(v.Elems())
}

// Identity returns a comparable token for the storage currently backing a
// string or array variable. Integers have no storage and return nil.
func (v *Variable) Identity() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindString:
		return v.s
	case KindArray:
		return v.a
	default:
		return nil
	}
}

// SetInt rebinds v to an integer.
func (v *Variable) SetInt(i int64) {
	v.kind = KindInteger
	v.i = i
	v.s = nil
	v.a = nil
}

// SetString rebinds v to new string storage, even when the text is unchanged.
func (v *Variable) SetString(s string) {
	v.kind = KindString
	v.i = 0
	v.s = &stringCell{text: s}
	v.a = nil
}

// ZeroString rebinds v to the empty string.
func (v *Variable) ZeroString() {
	v.SetString("")
}

// SetArray rebinds v to new array storage holding elems.
func (v *Variable) SetArray(elems []*Variable) {
	v.kind = KindArray
	v.i = 0
	v.s = nil
	v.a = &arrayCell{elems: append([]*Variable(nil), elems...)}
}

// Set copies the value of src into v. Arrays are copied deeply so the two
// variables never share storage.
func (v *Variable) Set(src *Variable) {
	v.set(src, 0)
}

func (v *Variable) set(src *Variable, depth int) {
	if src == nil {
		v.SetInt(0)
		return
	}
	switch src.kind {
	case KindString:
		v.SetString(src.Str())
	case KindArray:
		if depth >= MaxDepth {
			v.SetArray(nil)
			return
		}
		elems := src.Elems()
		copied := make([]*Variable, len(elems))
		for idx, el := range elems {
			copied[idx] = &Variable{}
			copied[idx].set(el, depth+1)
		}
		v.SetArray(copied)
	default:
		v.SetInt(src.i)
	}
}

// Clone returns a deep copy of v.
func (v *Variable) Clone() *Variable {
	out := &Variable{}
	out.Set(v)
	return out
}

// Text returns the canonical text form of a scalar variable: integers in
// decimal, strings verbatim. Arrays return their flattened lines joined by
// newlines.
func (v *Variable) Text() string {
	switch v.Kind() {
	case KindString:
		return v.Str()
	case KindArray:
		return strings.Join(v.Lines(), "\n")
	default:
		return strconv.FormatInt(v.Int(), 10)
	}
}

// Lines flattens an array variable depth first into scalar text lines.
func (v *Variable) Lines() []string {
	var out []string
	var walk func(*Variable, int)
	walk = func(node *Variable, depth int) {
		if depth >= MaxDepth {
			return
		}
		for _, el := range node.Elems() {
			switch el.Kind() {
			case KindArray:
				walk(el, depth+1)
			default:
				out = append(out, el.Text())
			}
		}
	}
	if v.Kind() == KindArray {
		walk(v, 0)
	}
	return out
}

// Value converts v into plain Go values: int64, string, or []any.
func (v *Variable) Value() any {
	return v.value(0)
}

func (v *Variable) value(depth int) any {
	switch v.Kind() {
	case KindString:
		return v.Str()
	case KindArray:
		if depth >= MaxDepth {
			return []any{}
		}
		elems := v.Elems()
		out := make([]any, len(elems))
		for idx, el := range elems {
			out[idx] = el.value(depth + 1)
		}
		return out
	default:
		return v.Int()
	}
}

// FromValue builds a Variable from plain Go values as produced by decoders.
// Unsupported values become the empty string.
func FromValue(value any) *Variable {
	switch typed := value.(type) {
	case nil:
		return NewString("")
	case *Variable:
		return typed.Clone()
	case string:
		return NewString(typed)
	case int:
		return NewInt(int64(typed))
	case int64:
		return NewInt(typed)
	case int32:
		return NewInt(int64(typed))
	case uint64:
		return NewInt(int64(typed))
	case float64:
		return NewInt(int64(typed))
	case bool:
		if typed {
			return NewInt(1)
		}
		return NewInt(0)
	case []any:
		elems := make([]*Variable, len(typed))
		for idx, el := range typed {
			elems[idx] = FromValue(el)
		}
		return NewArray(elems...)
	case []string:
		elems := make([]*Variable, len(typed))
		for idx, el := range typed {
			elems[idx] = NewString(el)
		}
		return NewArray(elems...)
	default:
		return NewString("")
	}
}
