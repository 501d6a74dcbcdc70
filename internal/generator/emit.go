package generator

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// emitter renders model sections with a fixed indentation unit.
type emitter struct {
	indent string
}

func (e emitter) at(level int, text string) string {
	return strings.Repeat(e.indent, level) + text
}

// baseSymbols lists the framework imports implied by the model together with
// the named framework imports the component already had.
func baseSymbols(c model.Component) []string {
	symbols := append([]string{"defineComponent"}, c.FrameworkSymbols...)
	if !c.DerivedFields.IsEmpty() {
		symbols = append(symbols, "computed")
	}
	if !c.Watchers.IsEmpty() {
		symbols = append(symbols, "watch")
	}
	if !c.ReactiveFields.IsEmpty() {
		symbols = append(symbols, "ref")
	}
	for _, hook := range c.LifecycleHooks.Keys() {
		if target, framework := mapHook(hook); framework {
			symbols = append(symbols, target)
		}
	}
	return symbols
}

func quoteSingle(text string) string {
	return "'" + strings.ReplaceAll(text, "'", `\'`) + "'"
}

// propertyName renders an object key, quoting keys that are not identifiers
// such as 'my-child'.
func propertyName(key string) string {
	if isIdentifier(key) {
		return key
	}
	return quoteSingle(key)
}

func isIdentifier(text string) bool {
	if text == "" {
		return false
	}
	for i, r := range text {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func (e emitter) nameClause(c model.Component) string {
	if c.Name == "" {
		return ""
	}
	return e.at(1, "name: "+quoteSingle(c.Name))
}

func (e emitter) componentsClause(c model.Component) string {
	if c.SubComponents.IsEmpty() {
		return ""
	}
	entries := make([]string, 0, c.SubComponents.Len())
	c.SubComponents.Each(func(local, ref string) {
		if local == ref {
			entries = append(entries, e.at(2, local))
			return
		}
		entries = append(entries, e.at(2, propertyName(local)+": "+ref))
	})
	return e.at(1, "components: {\n") + strings.Join(entries, ",\n") + "\n" + e.at(1, "}")
}

func (e emitter) mixinsClause(c model.Component) string {
	if len(c.Mixins) == 0 {
		return ""
	}
	return e.at(1, "mixins: ["+strings.Join(c.Mixins, ", ")+"]")
}

func (e emitter) propsClause(c model.Component) string {
	if c.Props.IsEmpty() {
		return ""
	}
	entries := make([]string, 0, c.Props.Len())
	c.Props.Each(func(name string, prop model.Prop) {
		entries = append(entries, e.at(2, propertyName(name)+": "+propText(prop)))
	})
	return e.at(1, "props: {\n") + strings.Join(entries, ",\n") + "\n" + e.at(1, "}")
}

// propText renders a prop declaration in literal notation. Object forms are
// kept on one line as { key: value }.
func propText(prop model.Prop) string {
	switch prop.Kind {
	case model.PropObject:
		if prop.Fields.IsEmpty() {
			return "{}"
		}
		parts := make([]string, 0, prop.Fields.Len())
		prop.Fields.Each(func(key string, field model.Prop) {
			parts = append(parts, propertyName(key)+": "+propText(field))
		})
		return "{ " + strings.Join(parts, ", ") + " }"
	case model.PropLiteral:
		switch strings.ToLower(prop.Text) {
		case "true", "false":
			return strings.ToLower(prop.Text)
		}
		return prop.Text
	default:
		return prop.Text
	}
}

// setupBlock renders the setup method. The result is the text the rewrite
// stages operate on.
func (e emitter) setupBlock(c model.Component) string {
	var lines []string
	add := func(level int, text string) {
		lines = append(lines, e.at(level, text))
	}

	add(1, "setup(props) {")
	if c.UsesSharedStore {
		add(2, storeDecl)
	}
	c.ReactiveFields.Each(func(name, init string) {
		add(2, "const "+name+" = ref("+init+");")
	})
	c.DerivedFields.Each(func(name string, field model.DerivedField) {
		if field.StoreBound {
			add(2, "const "+name+" = computed(() => "+field.Body+");")
		}
	})
	c.DerivedFields.Each(func(name string, field model.DerivedField) {
		if !field.StoreBound {
			lines = append(lines, e.derivedDecl(name, field)...)
		}
	})
	c.Behaviors.Each(func(name string, behavior model.Behavior) {
		lines = append(lines, e.behaviorDecl(name, behavior)...)
	})
	c.Watchers.Each(func(name string, watcher model.Watcher) {
		add(2, e.watchCall(c, name, watcher))
	})
	c.LifecycleHooks.Each(func(hook, body string) {
		target, _ := mapHook(hook)
		add(2, target+"("+toArrow(body)+");")
	})

	returned := returnedNames(c)
	if len(returned) == 0 {
		add(2, "return {};")
	} else {
		add(2, "return {")
		for i, name := range returned {
			if i < len(returned)-1 {
				name += ","
			}
			add(3, name)
		}
		add(2, "};")
	}
	add(1, "}")
	return strings.Join(lines, "\n")
}

// returnedNames lists derived fields, then behaviors, then reactive fields.
func returnedNames(c model.Component) []string {
	names := make([]string, 0, c.DerivedFields.Len()+c.Behaviors.Len()+c.ReactiveFields.Len())
	names = append(names, c.DerivedFields.Keys()...)
	names = append(names, c.Behaviors.Keys()...)
	names = append(names, c.ReactiveFields.Keys()...)
	return names
}

func (e emitter) block(level int, head string, stmts []string, tail string) []string {
	if len(stmts) == 0 {
		return []string{e.at(level, head+"}"+tail)}
	}
	out := []string{e.at(level, head)}
	for _, stmt := range stmts {
		out = append(out, e.at(level+1, terminate(stmt)))
	}
	return append(out, e.at(level, "}"+tail))
}

func (e emitter) derivedDecl(name string, field model.DerivedField) []string {
	body := normalizeDerived(field.Body)
	decl := "const " + name + " = computed("

	if field.Setter != "" {
		setter := toArrow(field.Setter)
		out := []string{e.at(2, decl+"{")}
		if body.isBlock() {
			out = append(out, e.block(3, "get: () => {", body.stmts, ",")...)
		} else {
			out = append(out, e.at(3, "get: () => "+arrowResult(body.expr)+","))
		}
		out = append(out, e.at(3, "set: "+setter))
		return append(out, e.at(2, "});"))
	}

	if body.isBlock() {
		return e.block(2, decl+"() => {", body.stmts, ");")
	}
	return []string{e.at(2, decl+"() => "+arrowResult(body.expr)+");")}
}

func (e emitter) behaviorDecl(name string, behavior model.Behavior) []string {
	decl := "const " + name + " = "
	if behavior.Value != "" {
		return []string{e.at(2, decl+behavior.Value+";")}
	}
	head := "(" + strings.TrimSpace(behavior.Params) + ") => {"
	if behavior.Async {
		head = "async " + head
	}
	return e.block(2, decl+head, splitStatements(behavior.Body), ";")
}

// watchCall renders a watcher registration. Props, dotted paths and
// instance properties are watched through a getter; other names are watched
// directly.
func (e emitter) watchCall(c model.Component, name string, watcher model.Watcher) string {
	source := name
	if c.Props.Has(name) || strings.Contains(name, ".") || strings.HasPrefix(name, "$") {
		source = "() => this." + name
	}
	args := []string{source, toArrow(watcher.Handler)}
	if watcher.HasOptions() {
		var opts []string
		if watcher.Deep {
			opts = append(opts, "deep: true")
		}
		if watcher.Immediate {
			opts = append(opts, "immediate: true")
		}
		args = append(args, "{ "+strings.Join(opts, ", ")+" }")
	}
	return "watch(" + strings.Join(args, ", ") + ");"
}
