package orchestrator

import (
	"context"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// Transformer rewrites a scanned component before generation. Components are
// immutable so implementations return the replacement value; use
// model.BuilderFrom to derive one.
type Transformer interface {
	Transform(ctx context.Context, component model.Component) (model.Component, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, component model.Component) (model.Component, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, component model.Component) (model.Component, error) {
	if fn == nil {
		return component, nil
	}
	return fn(ctx, component)
}

// ChainTransformers runs transformers in order, feeding each result into the
// next one. Nil entries are skipped.
func ChainTransformers(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, component model.Component) (model.Component, error) {
		var err error
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err = ctx.Err(); err != nil {
				return component, err
			}
			component, err = t.Transform(ctx, component)
			if err != nil {
				return component, err
			}
		}
		return component, nil
	})
}
