// Package variable models the dynamically typed values owned by the BASIC
// interpreter: integers, strings, and arrays whose elements are themselves
// variables. String and array payloads are held in separately allocated cells
// so that callers can tell a program-driven re-assignment (new cell) apart from
// an untouched value, even when the text is identical. The form binding layer
// relies on that identity for change detection.
package variable
