// Package logging builds the process-wide slog logger.  The level lives in
// a slog.LevelVar so it can be changed while the server runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures New.
type Option func(*options)

type options struct {
	format string
	output io.Writer
}

// WithFormat selects "text" (default) or "json" output.
func WithFormat(format string) Option {
	return func(o *options) { o.format = strings.ToLower(format) }
}

// WithOutput sets the destination writer (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// New returns a logger whose minimum level tracks level.
func New(level *slog.LevelVar, opts ...Option) *slog.Logger {
	o := &options{format: "text", output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if o.format == "json" {
		h = slog.NewJSONHandler(o.output, hopts)
	} else {
		h = slog.NewTextHandler(o.output, hopts)
	}
	return slog.New(h)
}
