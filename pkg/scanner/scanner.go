// Package scanner declares the contract for turning an options-style component
// document into a model.Component. The implementation lives in
// internal/scanner and is constructed through the root vuemigrate package or
// the orchestrator.
package scanner

import (
	"context"
	"io"
	"log/slog"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// Scanner parses a component document into the intermediate model. Parse
// failures are absorbed: the returned error is reserved for context
// cancellation.
type Scanner interface {
	Scan(ctx context.Context, document string) (model.Component, error)
}

// Default store settings recognised by the scanner.
var (
	DefaultLegacyStoreModules = []string{"vuex"}
	DefaultStoreHelpers       = []string{"mapGetters", "mapState", "mapActions", "mapMutations"}
)

// DefaultGetterHelper names the helper whose arguments become store-bound
// computed properties.
const DefaultGetterHelper = "mapGetters"

// Options configures a Scanner.
type Options struct {
	// Logger receives parse failures and debug traces. Defaults to a discard
	// logger.
	Logger *slog.Logger

	// LegacyStoreModules lists import paths dropped from the output because the
	// composition store accessor supersedes them.
	LegacyStoreModules []string

	// StoreHelpers lists import specifiers dropped from passthrough imports.
	StoreHelpers []string

	// GetterHelper is the computed spread helper mapped onto store getters.
	GetterHelper string
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithLogger injects the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithLegacyStoreModules overrides the import paths treated as the legacy
// store.
func WithLegacyStoreModules(modules ...string) Option {
	return func(opts *Options) {
		opts.LegacyStoreModules = append([]string(nil), modules...)
	}
}

// WithStoreHelpers overrides the helper specifiers stripped from imports.
func WithStoreHelpers(helpers ...string) Option {
	return func(opts *Options) {
		opts.StoreHelpers = append([]string(nil), helpers...)
	}
}

// WithGetterHelper overrides the getter aggregation helper name.
func WithGetterHelper(name string) Option {
	return func(opts *Options) {
		opts.GetterHelper = name
	}
}

// NewOptions applies options on top of the defaults.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.LegacyStoreModules == nil {
		cfg.LegacyStoreModules = append([]string(nil), DefaultLegacyStoreModules...)
	}
	if cfg.StoreHelpers == nil {
		cfg.StoreHelpers = append([]string(nil), DefaultStoreHelpers...)
	}
	if cfg.GetterHelper == "" {
		cfg.GetterHelper = DefaultGetterHelper
	}
	return cfg
}
