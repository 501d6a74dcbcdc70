package model

// PropKind distinguishes the shapes a prop declaration can take.
type PropKind string

const (
	// PropIdent is a bare identifier such as a constructor (String, Number).
	PropIdent PropKind = "ident"
	// PropLiteral is a literal value kept in source notation ('x', 12, true).
	PropLiteral PropKind = "literal"
	// PropObject is an object-form declaration ({ type, default, required }).
	PropObject PropKind = "object"
	// PropFunc is a function-valued entry, usually a default factory.
	PropFunc PropKind = "func"
)

// Prop is a resolved prop declaration. Object declarations keep their nested
// entries in Fields; all other kinds carry their source text in Text.
type Prop struct {
	Kind   PropKind
	Text   string
	Fields Section[Prop]
}

// IdentProp builds an identifier prop.
func IdentProp(name string) Prop { return Prop{Kind: PropIdent, Text: name} }

// LiteralProp builds a literal prop from source notation.
func LiteralProp(text string) Prop { return Prop{Kind: PropLiteral, Text: text} }

// FuncProp builds a function-valued prop from its serialized text.
func FuncProp(text string) Prop { return Prop{Kind: PropFunc, Text: text} }

// ObjectProp builds an object-form prop.
func ObjectProp(fields Section[Prop]) Prop { return Prop{Kind: PropObject, Fields: fields} }

// MarshalYAML flattens scalar props to their text.
func (p Prop) MarshalYAML() (interface{}, error) {
	if p.Kind == PropObject {
		return p.Fields, nil
	}
	return p.Text, nil
}

// DerivedField is a computed property body. StoreBound marks entries produced
// from a store getter helper; Setter holds the function text of a writable
// computed declared with get/set.
type DerivedField struct {
	Body       string `yaml:"body"`
	Setter     string `yaml:"setter,omitempty"`
	StoreBound bool   `yaml:"storeBound,omitempty"`
}

// Behavior is a method split into its parameter list and body statements.
// Methods declared with a non-function value (debounce(fn, 100)) keep the
// expression in Value instead.
type Behavior struct {
	Params string `yaml:"params"`
	Body   string `yaml:"body"`
	Async  bool   `yaml:"async,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

// Watcher is a watch handler with the options of the object form.
type Watcher struct {
	Handler   string `yaml:"handler"`
	Deep      bool   `yaml:"deep,omitempty"`
	Immediate bool   `yaml:"immediate,omitempty"`
}

// HasOptions reports whether the watcher needs an options argument.
func (w Watcher) HasOptions() bool {
	return w.Deep || w.Immediate
}

// Lifecycle hook names recognised by the scanner.
const (
	HookCreated       = "created"
	HookMounted       = "mounted"
	HookBeforeDestroy = "beforeDestroy"
)

// RecognizedHooks lists the lifecycle keys that are captured from the input.
var RecognizedHooks = []string{HookCreated, HookMounted, HookBeforeDestroy}

// Component is the normalized view of a single options-style component.
type Component struct {
	Name               string                `yaml:"name,omitempty"`
	SubComponents      Section[string]       `yaml:"components"`
	Mixins             []string              `yaml:"mixins"`
	Props              Section[Prop]         `yaml:"props"`
	ReactiveFields     Section[string]       `yaml:"data"`
	DerivedFields      Section[DerivedField] `yaml:"computed"`
	Behaviors          Section[Behavior]     `yaml:"methods"`
	Watchers           Section[Watcher]      `yaml:"watch"`
	LifecycleHooks     Section[string]       `yaml:"hooks"`
	ExternalImports    ImportSet             `yaml:"imports"`
	FrameworkSymbols   []string              `yaml:"frameworkSymbols,omitempty"`
	UsesSharedStore    bool                  `yaml:"usesSharedStore"`
	HasBehaviorContent bool                  `yaml:"hasBehaviorContent"`
}

// IsEmpty reports whether nothing was captured.
func (c Component) IsEmpty() bool {
	return c.Name == "" &&
		c.SubComponents.IsEmpty() &&
		len(c.Mixins) == 0 &&
		c.Props.IsEmpty() &&
		c.ReactiveFields.IsEmpty() &&
		c.DerivedFields.IsEmpty() &&
		c.Behaviors.IsEmpty() &&
		c.Watchers.IsEmpty() &&
		c.LifecycleHooks.IsEmpty() &&
		c.ExternalImports.Len() == 0 &&
		len(c.FrameworkSymbols) == 0
}

// NeedsSetup reports whether a setup function has to be emitted.
func (c Component) NeedsSetup() bool {
	return c.HasBehaviorContent ||
		!c.DerivedFields.IsEmpty() ||
		!c.ReactiveFields.IsEmpty() ||
		!c.Watchers.IsEmpty() ||
		!c.LifecycleHooks.IsEmpty()
}

// StoreBoundFields returns the names of derived fields bound to the store.
func (c Component) StoreBoundFields() []string {
	var out []string
	c.DerivedFields.Each(func(name string, field DerivedField) {
		if field.StoreBound {
			out = append(out, name)
		}
	})
	return out
}
