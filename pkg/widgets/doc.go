// Package widgets resolves the widget type names accepted by the BUTTON
// command ("button", "label", "listbox"/"list") to form control types and
// offers close-match suggestions for misspelt names.
package widgets
