// Package ui exposes the BASIC form commands. BUTTON and TEXT create widgets
// through a rendering factory and bind them to interpreter variables; DOFORM
// runs the modal session. The Runtime is the session context: it owns the
// single active form and is passed to whatever executes those commands.
package ui
