package model

import "slices"

// Builder assembles a Component one section entry at a time. Builders are
// values: every With method returns an updated copy, so scanning steps can be
// written as plain functions from Builder to Builder.
type Builder struct {
	component Component
}

// NewBuilder returns a builder holding an empty component whose sections are
// all initialised.
func NewBuilder() Builder {
	return Builder{component: Component{
		SubComponents:  NewSection[string](),
		Mixins:         []string{},
		Props:          NewSection[Prop](),
		ReactiveFields: NewSection[string](),
		DerivedFields:  NewSection[DerivedField](),
		Behaviors:      NewSection[Behavior](),
		Watchers:       NewSection[Watcher](),
		LifecycleHooks: NewSection[string](),
	}}
}

// BuilderFrom returns a builder seeded with an existing component so callers
// can extend a scanned model without mutating it.
func BuilderFrom(component Component) Builder {
	b := NewBuilder()
	if component.SubComponents.entries != nil {
		b.component.SubComponents = component.SubComponents
	}
	if component.Mixins != nil {
		b.component.Mixins = slices.Clone(component.Mixins)
	}
	if component.Props.entries != nil {
		b.component.Props = component.Props
	}
	if component.ReactiveFields.entries != nil {
		b.component.ReactiveFields = component.ReactiveFields
	}
	if component.DerivedFields.entries != nil {
		b.component.DerivedFields = component.DerivedFields
	}
	if component.Behaviors.entries != nil {
		b.component.Behaviors = component.Behaviors
	}
	if component.Watchers.entries != nil {
		b.component.Watchers = component.Watchers
	}
	if component.LifecycleHooks.entries != nil {
		b.component.LifecycleHooks = component.LifecycleHooks
	}
	b.component.Name = component.Name
	b.component.ExternalImports = component.ExternalImports
	b.component.FrameworkSymbols = slices.Clone(component.FrameworkSymbols)
	b.component.UsesSharedStore = component.UsesSharedStore
	b.component.HasBehaviorContent = component.HasBehaviorContent
	return b
}

// WithName sets the component name.
func (b Builder) WithName(name string) Builder {
	b.component.Name = name
	return b
}

// WithSubComponent registers a locally named child component.
func (b Builder) WithSubComponent(local, ref string) Builder {
	b.component.SubComponents = b.component.SubComponents.With(local, ref)
	return b
}

// WithMixin appends a mixin identifier.
func (b Builder) WithMixin(name string) Builder {
	b.component.Mixins = append(slices.Clone(b.component.Mixins), name)
	return b
}

// WithProp records a prop declaration.
func (b Builder) WithProp(name string, prop Prop) Builder {
	b.component.Props = b.component.Props.With(name, prop)
	return b
}

// WithReactiveField records a data field and its initializer text.
func (b Builder) WithReactiveField(name, init string) Builder {
	b.component.ReactiveFields = b.component.ReactiveFields.With(name, init)
	return b
}

// WithDerivedField records a computed property. Store-bound fields flag the
// component as using the shared store.
func (b Builder) WithDerivedField(name string, field DerivedField) Builder {
	b.component.DerivedFields = b.component.DerivedFields.With(name, field)
	if field.StoreBound {
		b.component.UsesSharedStore = true
	}
	return b
}

// WithBehavior records a method; any method requires a setup block.
func (b Builder) WithBehavior(name string, behavior Behavior) Builder {
	b.component.Behaviors = b.component.Behaviors.With(name, behavior)
	b.component.HasBehaviorContent = true
	return b
}

// WithWatcher records a watch handler.
func (b Builder) WithWatcher(name string, watcher Watcher) Builder {
	b.component.Watchers = b.component.Watchers.With(name, watcher)
	return b
}

// WithLifecycleHook records a hook body under its options-API name.
func (b Builder) WithLifecycleHook(name, body string) Builder {
	b.component.LifecycleHooks = b.component.LifecycleHooks.With(name, body)
	return b
}

// WithImport adds a passthrough import statement.
func (b Builder) WithImport(stmt string) Builder {
	b.component.ExternalImports = b.component.ExternalImports.With(stmt)
	return b
}

// WithFrameworkSymbol records a named framework import specifier such as
// "reactive" or "h as render". Repeated specifiers are kept once.
func (b Builder) WithFrameworkSymbol(spec string) Builder {
	if slices.Contains(b.component.FrameworkSymbols, spec) {
		return b
	}
	b.component.FrameworkSymbols = append(slices.Clone(b.component.FrameworkSymbols), spec)
	return b
}

// Build returns the assembled component.
func (b Builder) Build() Component {
	return b.component
}
