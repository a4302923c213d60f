package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/goliatone/go-formbind/pkg/form"
)

// Built-in widget type names accepted by the BUTTON command.
const (
	TypeButton  = "button"
	TypeLabel   = "label"
	TypeListBox = "listbox"
	TypeList    = "list"
)

// maxSuggestDistance bounds how far a misspelt type may be from a known name
// before no suggestion is offered.
const maxSuggestDistance = 3

type rule struct {
	name    string
	control form.ControlType
	order   int
}

// Registry maps widget type names to control types. Lookups ignore case; the
// latest registration of a name wins.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]rule
}

// NewRegistry constructs a registry with the built-in widget types
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a widget type name. Blank names are ignored.
func (r *Registry) Register(name string, control form.ControlType) {
	if r == nil {
		return
	}
	key := normalise(name)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rules == nil {
		r.rules = make(map[string]rule)
	}
	r.rules[key] = rule{
		name:    key,
		control: control,
		order:   len(r.rules),
	}
}

// Resolve returns the control type for a widget type name. An empty name
// resolves to a button, the BUTTON command's default.
func (r *Registry) Resolve(name string) (form.ControlType, bool) {
	key := normalise(name)
	if key == "" {
		return form.ControlButton, true
	}
	if r == nil {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.rules[key]
	if !ok {
		return 0, false
	}
	return entry.control, true
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	rules := make([]rule, 0, len(r.rules))
	for _, entry := range r.rules {
		rules = append(rules, entry)
	}
	r.mu.RUnlock()
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].order < rules[j].order
	})
	out := make([]string, len(rules))
	for idx, entry := range rules {
		out[idx] = entry.name
	}
	return out
}

// Suggest returns the registered name closest to name by edit distance, if
// one is close enough to be a plausible typo.
func (r *Registry) Suggest(name string) (string, bool) {
	key := normalise(name)
	if key == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range r.Names() {
		dist := levenshtein.ComputeDistance(key, candidate)
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func (r *Registry) registerBuiltins() {
	r.Register(TypeButton, form.ControlButton)
	r.Register(TypeLabel, form.ControlLabel)
	r.Register(TypeListBox, form.ControlListBox)
	r.Register(TypeList, form.ControlListBox)
}

func normalise(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
