package vuemigrate

import (
	internalformat "github.com/goliatone/go-vuemigrate/internal/format"
	internalgenerator "github.com/goliatone/go-vuemigrate/internal/generator"
	internalloader "github.com/goliatone/go-vuemigrate/internal/loader"
	internalscanner "github.com/goliatone/go-vuemigrate/internal/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/format"
	pkggenerator "github.com/goliatone/go-vuemigrate/pkg/generator"
	pkgscanner "github.com/goliatone/go-vuemigrate/pkg/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...sfc.LoaderOption) sfc.Loader {
	cfg := sfc.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// NewScanner constructs the AST-backed scanner.
func NewScanner(options ...pkgscanner.Option) pkgscanner.Scanner {
	cfg := pkgscanner.NewOptions(options...)
	return internalscanner.New(cfg)
}

// NewGenerator constructs the composition script generator. Without
// pkggenerator.WithFormatter the beautifier is used.
func NewGenerator(options ...pkggenerator.Option) pkggenerator.Generator {
	cfg := pkggenerator.NewOptions(options...)
	return internalgenerator.New(cfg)
}

// NewFormatterRegistry returns a registry holding the built-in formatters.
func NewFormatterRegistry() *format.Registry {
	registry := format.NewRegistry()
	if err := internalformat.Register(registry); err != nil {
		panic(err)
	}
	return registry
}
