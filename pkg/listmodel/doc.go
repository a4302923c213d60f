// Package listmodel adapts list widget content from either a "|" delimited
// string or a (possibly nested) array variable into a flat, ordered,
// single-selection model. Malformed or empty input never fails; it yields an
// empty list with no selection.
package listmodel
