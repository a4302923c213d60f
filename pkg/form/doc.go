// Package form implements the data binding engine behind BUTTON, TEXT and
// DOFORM. A Form owns the WidgetData bindings created for one modal session;
// each binding pairs a widget from a rendering Factory with an interpreter
// variable and synchronizes the two in both directions.
//
// Synchronization is snapshot based. A binding remembers the last integer
// value or string/array storage identity it observed. When the program has
// re-assigned the variable since then, the value is pushed into the widget and
// any user edit from the same pass is discarded. Otherwise the widget state is
// pulled into the variable. Identity, not content, decides: assigning the same
// text to a variable still counts as a change.
//
// Execute drives the session. It synchronizes every binding in creation order,
// pumps events through the EventPump until a widget fires (Invoke), the
// session stops, or a monitored key is pressed, then synchronizes again.
package form
