package scanner

import (
	"context"
	"log/slog"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/goliatone/go-vuemigrate/pkg/model"
	pkgscanner "github.com/goliatone/go-vuemigrate/pkg/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// Scanner implements pkgscanner.Scanner on top of the tdewolff JavaScript
// parser.
type Scanner struct {
	logger       *slog.Logger
	legacyStore  map[string]struct{}
	storeHelpers map[string]struct{}
	getterHelper string
}

var _ pkgscanner.Scanner = (*Scanner)(nil)

// New constructs a Scanner from pre-resolved options.
func New(options pkgscanner.Options) *Scanner {
	defaults := pkgscanner.NewOptions()
	if options.Logger == nil {
		options.Logger = defaults.Logger
	}
	if options.LegacyStoreModules == nil {
		options.LegacyStoreModules = defaults.LegacyStoreModules
	}
	if options.StoreHelpers == nil {
		options.StoreHelpers = defaults.StoreHelpers
	}
	if options.GetterHelper == "" {
		options.GetterHelper = defaults.GetterHelper
	}
	return &Scanner{
		logger:       options.Logger,
		legacyStore:  toSet(options.LegacyStoreModules),
		storeHelpers: toSet(options.StoreHelpers),
		getterHelper: options.GetterHelper,
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Scan extracts the component script block and scans it. A document without a
// script block yields an empty component.
func (s *Scanner) Scan(ctx context.Context, document string) (model.Component, error) {
	if err := ctx.Err(); err != nil {
		return model.NewBuilder().Build(), err
	}
	block, ok := sfc.ExtractScript(document)
	if !ok {
		s.logger.Debug("scanner: no script content found")
		return model.NewBuilder().Build(), nil
	}
	s.logger.Debug("scanner: extracted script", "bytes", len(block.Body), "lang", block.Lang())
	return s.ScanScript(ctx, block.Body)
}

// ScanScript scans the body of a script block. Parse failures are logged and
// produce an empty component.
func (s *Scanner) ScanScript(ctx context.Context, script string) (model.Component, error) {
	b := model.NewBuilder()
	if err := ctx.Err(); err != nil {
		return b.Build(), err
	}

	ast, err := js.Parse(parse.NewInputString(script), js.Options{})
	if err != nil {
		s.logger.Warn("scanner: parse script", "error", err)
		return b.Build(), nil
	}

	for _, stmt := range ast.BlockStmt.List {
		switch n := stmt.(type) {
		case *js.ImportStmt:
			b = s.scanImport(b, n)
		case *js.ExportStmt:
			if obj := defaultExportObject(n); obj != nil {
				b = s.scanComponent(b, obj)
			}
		}
	}

	component := b.Build()
	s.logger.Debug("scanner: scanned component",
		"name", component.Name,
		"props", component.Props.Len(),
		"data", component.ReactiveFields.Len(),
		"computed", component.DerivedFields.Len(),
		"methods", component.Behaviors.Len(),
		"watch", component.Watchers.Len(),
		"hooks", component.LifecycleHooks.Len(),
		"imports", component.ExternalImports.Len(),
	)
	return component, nil
}

// defaultExportObject returns the component options object of a default
// export, unwrapping defineComponent({...}) and Vue.extend({...}).
func defaultExportObject(stmt *js.ExportStmt) *js.ObjectExpr {
	if !stmt.Default || stmt.Decl == nil {
		return nil
	}
	expr := stmt.Decl
	if call, ok := expr.(*js.CallExpr); ok && len(call.Args.List) == 1 {
		expr = call.Args.List[0].Value
	}
	obj, _ := unwrapGroup(expr).(*js.ObjectExpr)
	return obj
}

func unwrapGroup(expr js.IExpr) js.IExpr {
	for {
		group, ok := expr.(*js.GroupExpr)
		if !ok {
			return expr
		}
		expr = group.X
	}
}
