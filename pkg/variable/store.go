package variable

import "strings"

// Store is a named variable table. Names are case-insensitive, matching BASIC
// conventions, and iteration follows declaration order.
type Store struct {
	vars  map[string]*Variable
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{vars: make(map[string]*Variable)}
}

// Get returns the variable registered under name.
func (s *Store) Get(name string) (*Variable, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.vars[normaliseName(name)]
	return v, ok
}

// Lookup returns the variable registered under name. Like an undeclared BASIC
// variable, a missing name is created as the integer 0.
func (s *Store) Lookup(name string) *Variable {
	if v, ok := s.Get(name); ok {
		return v
	}
	v := NewInt(0)
	s.Put(name, v)
	return v
}

// Put registers v under name, replacing any previous variable.
func (s *Store) Put(name string, v *Variable) {
	if s.vars == nil {
		s.vars = make(map[string]*Variable)
	}
	key := normaliseName(name)
	if _, exists := s.vars[key]; !exists {
		s.order = append(s.order, key)
	}
	s.vars[key] = v
}

// Names returns the registered names in declaration order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Values snapshots the store as plain Go values keyed by name.
func (s *Store) Values() map[string]any {
	out := make(map[string]any, len(s.Names()))
	for _, name := range s.Names() {
		out[name] = s.vars[name].Value()
	}
	return out
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
