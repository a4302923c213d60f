package tui

import (
	"io"
	"log/slog"
)

// Theme captures optional formatting hints the screen applies when printing
// prompts and messages. Keep minimal to avoid coupling screen logic to ANSI
// specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	PromptPrefix: "",
	InfoPrefix:   "",
	ErrorPrefix:  "! ",
}

// Option configures the Screen.
type Option func(*Screen)

// WithPromptDriver overrides the prompt driver used by the screen.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Screen) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Screen) {
		s.theme = theme
	}
}

// WithPageSize limits how many menu entries are shown at once.
func WithPageSize(size int) Option {
	return func(s *Screen) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithOutput redirects the default driver. Info messages always go to w;
// survey prompts follow only when w is a file such as os.Stderr, otherwise
// they stay on stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Screen) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger routes screen diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Screen) {
		if logger != nil {
			s.logger = logger
		}
	}
}
