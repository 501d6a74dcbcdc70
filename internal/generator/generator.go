// Package generator emits composition-style scripts from a model.Component.
// Sections are rendered in a fixed order, the setup method is passed through
// an ordered list of rewrite stages and the assembled script is handed to the
// configured formatter.
package generator

import (
	"log/slog"
	"slices"
	"strings"

	internalformat "github.com/goliatone/go-vuemigrate/internal/format"
	"github.com/goliatone/go-vuemigrate/pkg/format"
	pkggenerator "github.com/goliatone/go-vuemigrate/pkg/generator"
	"github.com/goliatone/go-vuemigrate/pkg/model"
)

const vueModule = "vue"

// Generator implements pkggenerator.Generator.
type Generator struct {
	logger      *slog.Logger
	formatter   format.Formatter
	format      format.Options
	storeImport string
}

var _ pkggenerator.Generator = (*Generator)(nil)

// New constructs a Generator. A nil formatter selects the beautifier.
func New(options pkggenerator.Options) *Generator {
	defaults := pkggenerator.NewOptions()
	if options.Logger == nil {
		options.Logger = defaults.Logger
	}
	if options.StoreAccessorImport == "" {
		options.StoreAccessorImport = defaults.StoreAccessorImport
	}
	if options.Formatter == nil {
		options.Formatter = internalformat.NewBeautifier()
	}
	return &Generator{
		logger:      options.Logger,
		formatter:   options.Formatter,
		format:      options.Format.WithDefaults(),
		storeImport: options.StoreAccessorImport,
	}
}

// Generate returns the script wrapped in a <script> block, or "" for an empty
// model.
func (g *Generator) Generate(component model.Component) string {
	script := g.GenerateScript(component)
	if script == "" {
		return ""
	}
	return "<script>\n" + script + "\n</script>"
}

// GenerateScript returns the script body, or "" for an empty model.
func (g *Generator) GenerateScript(component model.Component) string {
	if component.IsEmpty() {
		g.logger.Debug("generator: empty component")
		return ""
	}

	e := emitter{indent: g.format.Indent}
	fragment := Fragment{
		Symbols:   baseSymbols(component),
		UsesStore: component.UsesSharedStore,
	}
	if component.NeedsSetup() {
		fragment.Setup = e.setupBlock(component)
		fragment = runStages(fragment, setupStages(namesOf(component), g.format.Indent))
	}

	script := g.assemble(e, component, fragment)
	formatted, err := g.formatter.Format(script, g.format)
	if err != nil {
		g.logger.Warn("generator: format script", "formatter", g.formatter.Name(), "error", err)
		formatted = script
	}
	formatted = cleanup(formatted)

	g.logger.Debug("generator: generated script",
		"bytes", len(formatted),
		"formatter", g.formatter.Name(),
		"symbols", len(fragment.Symbols),
	)
	return formatted
}

func namesOf(c model.Component) nameSets {
	return nameSets{
		props:    toSet(c.Props.Keys()),
		reactive: toSet(c.ReactiveFields.Keys()),
		derived:  toSet(c.DerivedFields.Keys()),
		methods:  toSet(c.Behaviors.Keys()),
	}
}

func (g *Generator) assemble(e emitter, c model.Component, f Fragment) string {
	symbols := slices.Clone(f.Symbols)
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)

	imports := []string{"import { " + strings.Join(symbols, ", ") + " } from '" + vueModule + "';"}
	if f.UsesStore {
		imports = append(imports, g.storeImport)
	}
	for _, line := range c.ExternalImports.Values() {
		imports = append(imports, terminate(line))
	}

	var clauses []string
	for _, clause := range []string{
		e.nameClause(c),
		e.componentsClause(c),
		e.mixinsClause(c),
		e.propsClause(c),
		f.Setup,
	} {
		if clause != "" {
			clauses = append(clauses, clause)
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(imports, "\n"))
	b.WriteString("\n\nexport default defineComponent({")
	if len(clauses) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(clauses, ",\n"))
		b.WriteString("\n")
	}
	b.WriteString("});")
	return b.String()
}
