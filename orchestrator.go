package vuemigrate

import (
	"context"

	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// Result aliases orchestrator.Result so callers of Convert do not need to
// import the orchestrator package.
type Result = orchestrator.Result

// Transformer rewrites scanned components before generation.
type Transformer = orchestrator.Transformer

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Convert loads the component from source and returns the converted document.
// It is the simplest entry point for callers that just want output text.
func Convert(ctx context.Context, source sfc.Source, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Convert(ctx, orchestrator.Request{Source: source})
}

// ConvertDocument converts a pre-loaded document, bypassing the loader stage
// while still delegating to the orchestrator.
func ConvertDocument(ctx context.Context, doc sfc.Document, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Convert(ctx, orchestrator.Request{Document: &doc})
}

// ConvertString converts component text held in memory and returns only the
// resulting document.
func ConvertString(ctx context.Context, text string, options ...orchestrator.Option) (string, error) {
	result, err := orchestrator.New(options...).ConvertText(ctx, "inline", text)
	if err != nil {
		return "", err
	}
	return result.Document, nil
}
