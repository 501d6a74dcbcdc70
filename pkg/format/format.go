// Package format declares the line formatter contract used to lay out
// generated scripts, together with a name-keyed registry. Concrete formatters
// live in internal/format and are registered by the root package.
package format

import "errors"

// Default layout settings.
const (
	DefaultWidth  = 80
	DefaultIndent = "    "
)

// ErrUnknownFormatter is returned when a registry lookup misses.
var ErrUnknownFormatter = errors.New("format: unknown formatter")

// Options controls indentation and wrapping.
type Options struct {
	// Width is the preferred maximum display width of a line. Zero disables
	// wrapping.
	Width int
	// Indent is the string emitted once per nesting level.
	Indent string
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.Width < 0 {
		o.Width = 0
	}
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	return o
}

// Formatter re-lays out already valid script text. Implementations must not
// change the token sequence.
type Formatter interface {
	Name() string
	Format(source string, opts Options) (string, error)
}
