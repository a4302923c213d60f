// Package formfile loads YAML form scripts: initial variables, a sequence of
// BUTTON and TEXT commands and an optional DOFORM argument.
package formfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/ui"
	"github.com/goliatone/go-formbind/pkg/variable"
)

// Widget kinds accepted in form files.
const (
	KindButton = "button"
	KindText   = "text"
)

// Document is a decoded form file.
type Document struct {
	Variables Variables `yaml:"variables"`
	Widgets   []Widget  `yaml:"widgets"`
	DoForm    *DoForm   `yaml:"doform"`
}

// Variables holds the initial variable values in file order.
type Variables struct {
	Names  []string
	Values map[string]any
}

// UnmarshalYAML keeps the mapping order so variables are declared in the
// order they appear.
func (v *Variables) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("formfile: line %d: variables must be a mapping", node.Line)
	}
	v.Values = make(map[string]any, len(node.Content)/2)
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key := strings.TrimSpace(node.Content[idx].Value)
		if key == "" {
			return fmt.Errorf("formfile: line %d: empty variable name", node.Content[idx].Line)
		}
		var value any
		if err := node.Content[idx+1].Decode(&value); err != nil {
			return fmt.Errorf("formfile: variable %s: %w", key, err)
		}
		if _, exists := v.Values[key]; !exists {
			v.Names = append(v.Names, key)
		}
		v.Values[key] = value
	}
	return nil
}

// Widget is one BUTTON or TEXT command.
type Widget struct {
	Kind    string `yaml:"kind"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	W       int    `yaml:"w"`
	H       int    `yaml:"h"`
	Var     string `yaml:"var"`
	Caption string `yaml:"caption"`
	Type    string `yaml:"type"`
}

// Rect returns the widget geometry.
func (w Widget) Rect() form.Rect {
	return form.Rect{X: w.X, Y: w.Y, W: w.W, H: w.H}
}

// DoForm is the DOFORM argument: a variable name or an integer option code.
type DoForm struct {
	Var  string
	Code *int64
}

// UnmarshalYAML accepts either a scalar integer or a variable name.
func (d *DoForm) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("formfile: line %d: doform must be a scalar", node.Line)
	}
	text := strings.TrimSpace(node.Value)
	if text == "" {
		return nil
	}
	if code, err := strconv.ParseInt(text, 10, 64); err == nil {
		d.Code = &code
		return nil
	}
	d.Var = text
	return nil
}

// Load decodes a form file from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("formfile: read: %w", err)
	}
	return parseDocument(data, "<input>")
}

// LoadFile decodes the form file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	return parseDocument(data, path)
}

func parseDocument(data []byte, path string) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("formfile: parse %s: %w", path, err)
	}
	for idx, w := range doc.Widgets {
		kind := strings.ToLower(strings.TrimSpace(w.Kind))
		if kind == "" {
			kind = KindButton
		}
		if kind != KindButton && kind != KindText {
			return nil, fmt.Errorf("formfile: %s: widget %d: unknown kind %q", path, idx, w.Kind)
		}
		if strings.TrimSpace(w.Var) == "" {
			return nil, fmt.Errorf("formfile: %s: widget %d: missing var", path, idx)
		}
		doc.Widgets[idx].Kind = kind
	}
	return &doc, nil
}

// Build declares the document's variables in store.
func (d *Document) Build(store *variable.Store) {
	for _, name := range d.Variables.Names {
		store.Put(name, variable.FromValue(d.Variables.Values[name]))
	}
}

// Apply declares the variables, issues every widget command against rt and
// finally runs DOFORM when the document requests it. Variables referenced by
// widgets but not declared are created as the integer 0.
func (d *Document) Apply(ctx context.Context, rt *ui.Runtime, store *variable.Store) error {
	d.Build(store)
	for idx, w := range d.Widgets {
		v := store.Lookup(w.Var)
		var err error
		switch w.Kind {
		case KindText:
			err = rt.Text(w.Rect(), v)
		default:
			err = rt.Button(w.Rect(), v, w.Caption, w.Type)
		}
		if err != nil {
			return fmt.Errorf("formfile: widget %d: %w", idx, err)
		}
	}
	if d.DoForm == nil {
		return nil
	}
	return rt.DoForm(ctx, d.Arg(store))
}

// Arg resolves the DOFORM argument against store.
func (d *Document) Arg(store *variable.Store) form.Arg {
	switch {
	case d.DoForm == nil:
		return form.ArgNone()
	case d.DoForm.Code != nil:
		return form.ArgCode(*d.DoForm.Code)
	case d.DoForm.Var != "":
		return form.ArgVariable(store.Lookup(d.DoForm.Var))
	default:
		return form.ArgNone()
	}
}
