package listmodel

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formbind/pkg/variable"
)

// Delimiter separates entries in a string source such as "Easy|Medium|Hard".
const Delimiter = "|"

const (
	// MaxDepth bounds array nesting during flattening; deeper arrays are skipped.
	MaxDepth = variable.MaxDepth
	// MaxEntries bounds the number of entries a single build produces.
	MaxEntries = 1 << 16
)

// Source describes what a list is built from: delimited text or an array
// variable. The zero value is an empty source.
type Source struct {
	text  string
	array *variable.Variable
}

// FromString returns a delimited-text source.
func FromString(text string) Source {
	return Source{text: text}
}

// FromVariable returns a source backed by v. Arrays are flattened, strings are
// split on the delimiter, integers yield an empty list.
func FromVariable(v *variable.Variable) Source {
	switch v.Kind() {
	case variable.KindArray:
		return Source{array: v}
	case variable.KindString:
		return Source{text: v.Str()}
	default:
		return Source{}
	}
}

// FromCaption picks the source for a list widget created by a UI command: an
// array variable supplies the items itself, otherwise the caption does.
func FromCaption(caption string, v *variable.Variable) Source {
	if v.Kind() == variable.KindArray {
		return Source{array: v}
	}
	return Source{text: caption}
}

// Model is an ordered, single-selection list of display strings.
type Model struct {
	items    []string
	selected int
}

// New builds a model from source, selecting the entry that matches hint.
func New(source Source, hint *variable.Variable) *Model {
	m := &Model{selected: -1}
	m.Create(source, hint)
	return m
}

// Create rebuilds the list from source. A string hint selects the first entry
// equal to it ignoring case; otherwise nothing is selected.
func (m *Model) Create(source Source, hint *variable.Variable) {
	m.Clear()
	want, match := "", false
	if hint.Kind() == variable.KindString {
		want, match = hint.Str(), true
	}
	if source.array != nil {
		m.fromArray(source.array, want, match, 0)
		return
	}
	for _, segment := range strings.Split(source.text, Delimiter) {
		if segment == "" {
			continue
		}
		if len(m.items) >= MaxEntries {
			break
		}
		if match && m.selected == -1 && strings.EqualFold(segment, want) {
			m.selected = len(m.items)
		}
		m.items = append(m.items, segment)
	}
}

func (m *Model) fromArray(v *variable.Variable, want string, match bool, depth int) {
	if depth >= MaxDepth {
		return
	}
	for _, el := range v.Elems() {
		if len(m.items) >= MaxEntries {
			return
		}
		switch el.Kind() {
		case variable.KindString:
			if match && m.selected == -1 && strings.EqualFold(el.Str(), want) {
				m.selected = len(m.items)
			}
			m.items = append(m.items, el.Str())
		case variable.KindInteger:
			m.items = append(m.items, strconv.FormatInt(el.Int(), 10))
		case variable.KindArray:
			m.fromArray(el, want, match, depth+1)
		}
	}
}

// Clear empties the list and drops the selection.
func (m *Model) Clear() {
	m.items = nil
	m.selected = -1
}

// TextAt returns the entry at index.
func (m *Model) TextAt(index int) (string, bool) {
	if m == nil || index < 0 || index >= len(m.items) {
		return "", false
	}
	return m.items[index], true
}

// Index returns the first entry equal to text ignoring case.
func (m *Model) Index(text string) (int, bool) {
	if m == nil {
		return -1, false
	}
	for idx, item := range m.items {
		if strings.EqualFold(item, text) {
			return idx, true
		}
	}
	return -1, false
}

// RowCount returns the number of entries.
func (m *Model) RowCount() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// Items returns a copy of the entries.
func (m *Model) Items() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.items...)
}

// SelectedIndex returns the selected position, or -1.
func (m *Model) SelectedIndex() int {
	if m == nil {
		return -1
	}
	return m.selected
}

// SetSelectedIndex selects index. Out of range values clear the selection.
func (m *Model) SetSelectedIndex(index int) {
	if index < 0 || index >= len(m.items) {
		index = -1
	}
	m.selected = index
}

// SelectedText returns the selected entry, if any.
func (m *Model) SelectedText() (string, bool) {
	return m.TextAt(m.SelectedIndex())
}
