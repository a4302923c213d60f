package tui

import (
	"html"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

var (
	captionPolicyOnce sync.Once
	captionPolicy     *bluemonday.Policy
)

// sanitizeCaption strips markup and terminal escape sequences from program
// supplied text before it reaches the terminal. Entities are decoded back so
// plain text round-trips.
func sanitizeCaption(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := raw
	if strings.ContainsAny(cleaned, "<>&") {
		cleaned = html.UnescapeString(captionSanitizer().Sanitize(cleaned))
	}
	return ansi.Strip(cleaned)
}

// fitWidth truncates text to width cells. Non-positive widths leave the text
// untouched.
func fitWidth(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

func captionSanitizer() *bluemonday.Policy {
	captionPolicyOnce.Do(func() {
		captionPolicy = bluemonday.StrictPolicy()
	})
	return captionPolicy
}
