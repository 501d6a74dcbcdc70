package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	internalformat "github.com/goliatone/go-vuemigrate/internal/format"
	internalgenerator "github.com/goliatone/go-vuemigrate/internal/generator"
	internalloader "github.com/goliatone/go-vuemigrate/internal/loader"
	internalscanner "github.com/goliatone/go-vuemigrate/internal/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/format"
	pkggenerator "github.com/goliatone/go-vuemigrate/pkg/generator"
	"github.com/goliatone/go-vuemigrate/pkg/model"
	pkgscanner "github.com/goliatone/go-vuemigrate/pkg/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

const defaultFormatterName = internalformat.BeautifyName

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom component loader.
func WithLoader(loader sfc.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithScanner injects a custom scanner. Scanner options are ignored when a
// scanner is supplied.
func WithScanner(scanner pkgscanner.Scanner) Option {
	return func(o *Orchestrator) {
		o.scanner = scanner
	}
}

// WithGenerator injects a custom generator. Generator options and the
// formatter selection are ignored when a generator is supplied.
func WithGenerator(generator pkggenerator.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

// WithScannerOptions forwards options to the built-in scanner.
func WithScannerOptions(options ...pkgscanner.Option) Option {
	return func(o *Orchestrator) {
		o.scannerOptions = append(o.scannerOptions, options...)
	}
}

// WithGeneratorOptions forwards options to the built-in generator.
func WithGeneratorOptions(options ...pkggenerator.Option) Option {
	return func(o *Orchestrator) {
		o.generatorOptions = append(o.generatorOptions, options...)
	}
}

// WithRegistry injects the formatter registry used to resolve the formatter
// name.
func WithRegistry(registry *format.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithFormatter selects the formatter by registry name.
func WithFormatter(name string) Option {
	return func(o *Orchestrator) {
		o.formatterName = name
	}
}

// WithTransformer registers a Transformer that rewrites the component model
// after scanning and before generation.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger injects the logger shared with the built-in scanner and
// generator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from component document to
// converted document. It applies sensible defaults (AST scanner, beautifier)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader           sfc.Loader
	scanner          pkgscanner.Scanner
	generator        pkggenerator.Generator
	registry         *format.Registry
	formatterName    string
	transformer      Transformer
	logger           *slog.Logger
	scannerOptions   []pkgscanner.Option
	generatorOptions []pkggenerator.Option
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		formatterName: defaultFormatterName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the component to convert.
type Request struct {
	// Source identifies where the component lives. Optional when Document is
	// supplied.
	Source sfc.Source

	// Document allows callers to bypass the loader when they already hold the
	// component text.
	Document *sfc.Document
}

// Result carries the converted document alongside the intermediate values.
type Result struct {
	// Document is the full converted document. It equals the input when the
	// component could not be converted.
	Document string

	// Script is the generated script body without the surrounding tags.
	Script string

	// Component is the scanned model after transformers ran.
	Component model.Component

	// Changed reports whether the script block was replaced.
	Changed bool
}

// Convert executes the loader → scanner → transformer → generator sequence and
// splices the generated script into the original document. Documents without
// an options script, or whose model is empty, are returned unchanged.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Result{}, err
	}
	text := doc.Text()
	result := Result{Document: text}

	block, ok := doc.Script()
	if !ok {
		o.logger.Info("orchestrator: document left unchanged", "location", doc.Location(), "reason", sfc.ErrNoScript)
		return result, nil
	}

	component, err := o.scanner.Scan(ctx, text)
	if err != nil {
		return result, fmt.Errorf("orchestrator: scan %s: %w", doc.Location(), err)
	}
	component, err = o.applyTransformer(ctx, component)
	if err != nil {
		return result, err
	}
	result.Component = component

	if err := ctx.Err(); err != nil {
		return result, err
	}
	script := o.generator.GenerateScript(component)
	if script == "" {
		o.logger.Info("orchestrator: document left unchanged", "location", doc.Location(), "reason", "empty component")
		return result, nil
	}

	result.Script = script
	result.Document = sfc.ReplaceScript(text, block, script)
	result.Changed = true
	o.logger.Debug("orchestrator: converted document",
		"location", doc.Location(),
		"input_bytes", len(text),
		"output_bytes", len(result.Document),
	)
	return result, nil
}

// ConvertText converts an in-memory document. The name labels log entries and
// errors.
func (o *Orchestrator) ConvertText(ctx context.Context, name, text string) (Result, error) {
	doc, err := sfc.NewDocument(sfc.SourceInline(name), []byte(text))
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}
	return o.Convert(ctx, Request{Document: &doc})
}

// Scan loads and scans a component without generating output.
func (o *Orchestrator) Scan(ctx context.Context, req Request) (model.Component, error) {
	if ctx == nil {
		return model.Component{}, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return model.Component{}, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.Component{}, err
	}
	component, err := o.scanner.Scan(ctx, doc.Text())
	if err != nil {
		return component, fmt.Errorf("orchestrator: scan %s: %w", doc.Location(), err)
	}
	return o.applyTransformer(ctx, component)
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (sfc.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return sfc.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return sfc.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, component model.Component) (model.Component, error) {
	if o.transformer == nil {
		return component, nil
	}
	out, err := o.transformer.Transform(ctx, component)
	if err != nil {
		return component, fmt.Errorf("orchestrator: transform component: %w", err)
	}
	return out, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = internalloader.New(sfc.NewLoaderOptions())
	}
	if o.scanner == nil {
		options := append([]pkgscanner.Option{pkgscanner.WithLogger(o.logger)}, o.scannerOptions...)
		o.scanner = internalscanner.New(pkgscanner.NewOptions(options...))
	}
	if o.generator == nil {
		formatter, err := o.formatterFor(o.formatterName)
		if err != nil {
			o.initialiseErr = err
			return
		}
		options := append([]pkggenerator.Option{
			pkggenerator.WithLogger(o.logger),
			pkggenerator.WithFormatter(formatter),
		}, o.generatorOptions...)
		o.generator = internalgenerator.New(pkggenerator.NewOptions(options...))
	}
}

func (o *Orchestrator) formatterFor(name string) (format.Formatter, error) {
	if o.registry == nil {
		o.registry = format.NewRegistry()
		if err := internalformat.Register(o.registry); err != nil {
			return nil, fmt.Errorf("orchestrator: register formatters: %w", err)
		}
	}
	if name == "" {
		name = defaultFormatterName
	}
	formatter, err := o.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: formatter %q: %w", name, err)
	}
	return formatter, nil
}
