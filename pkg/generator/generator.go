// Package generator declares the contract for emitting a composition-style
// script from a model.Component, plus the options shared by implementations.
package generator

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-vuemigrate/pkg/format"
	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// DefaultStoreAccessorImport is emitted when a component reads the shared
// store.
const DefaultStoreAccessorImport = "import { useStore } from 'js/store';"

// Generator turns a component model into script text. Implementations never
// fail: empty models yield empty strings.
type Generator interface {
	// Generate returns the script wrapped in its <script> block.
	Generate(component model.Component) string
	// GenerateScript returns only the script body.
	GenerateScript(component model.Component) string
}

// Options configures a Generator.
type Options struct {
	Logger *slog.Logger

	// Formatter lays out the assembled script. Nil selects the built-in
	// beautifier.
	Formatter format.Formatter

	// Format carries the width and indentation handed to the formatter. The
	// indentation is also used for the emitted layout.
	Format format.Options

	// StoreAccessorImport is the import line providing useStore.
	StoreAccessorImport string
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithFormatter selects the formatter applied to the assembled script.
func WithFormatter(formatter format.Formatter) Option {
	return func(opts *Options) {
		opts.Formatter = formatter
	}
}

// WithWidth sets the preferred maximum line width.
func WithWidth(width int) Option {
	return func(opts *Options) {
		opts.Format.Width = width
	}
}

// WithIndent sets the per-level indentation string.
func WithIndent(indent string) Option {
	return func(opts *Options) {
		opts.Format.Indent = indent
	}
}

// WithStoreAccessorImport overrides the store accessor import line.
func WithStoreAccessorImport(line string) Option {
	return func(opts *Options) {
		opts.StoreAccessorImport = line
	}
}

// NewOptions applies options on top of the defaults. The formatter is left
// as given so callers can tell an explicit choice from the default.
func NewOptions(options ...Option) Options {
	cfg := Options{Format: format.Options{Width: format.DefaultWidth}}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.StoreAccessorImport == "" {
		cfg.StoreAccessorImport = DefaultStoreAccessorImport
	}
	cfg.Format = cfg.Format.WithDefaults()
	return cfg
}
