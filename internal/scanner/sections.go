package scanner

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2/js"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

// sectionScanner folds one options entry into the builder.
type sectionScanner func(s *Scanner, b model.Builder, value js.IExpr) model.Builder

var sectionScanners = map[string]sectionScanner{
	"name":       (*Scanner).scanName,
	"components": (*Scanner).scanComponents,
	"mixins":     (*Scanner).scanMixins,
	"props":      (*Scanner).scanProps,
	"data":       (*Scanner).scanData,
	"computed":   (*Scanner).scanComputed,
	"methods":    (*Scanner).scanMethods,
	"watch":      (*Scanner).scanWatch,
}

func (s *Scanner) scanComponent(b model.Builder, obj *js.ObjectExpr) model.Builder {
	for _, prop := range obj.List {
		key, value := propertyEntry(prop)
		if key == "" {
			continue
		}
		if scan, ok := sectionScanners[key]; ok {
			b = scan(s, b, value)
			continue
		}
		if isRecognizedHook(key) {
			b = b.WithLifecycleHook(key, functionText(value))
			continue
		}
		s.logger.Debug("scanner: ignored option", "key", key)
	}
	return b
}

func isRecognizedHook(key string) bool {
	for _, hook := range model.RecognizedHooks {
		if hook == key {
			return true
		}
	}
	return false
}

// propertyEntry returns the key and value of an object literal property.
// Method shorthand yields the method itself as value; spreads have no key.
func propertyEntry(prop js.Property) (string, js.IExpr) {
	if prop.Spread {
		return "", prop.Value
	}
	if method, ok := prop.Value.(*js.MethodDecl); ok && prop.Name == nil {
		return propertyKey(&method.Name.PropertyName), method
	}
	return propertyKey(prop.Name), prop.Value
}

// propertyKey returns a bare key name; computed keys have none.
func propertyKey(name *js.PropertyName) string {
	if name == nil || name.IsComputed() {
		return ""
	}
	if name.Literal.TokenType == js.StringToken {
		return unquote(string(name.Literal.Data))
	}
	return string(name.Literal.Data)
}

// functionParts splits a function-like value into its parameter text, body
// statements and async flag.
func functionParts(value js.IExpr) (params string, body []js.IStmt, async, ok bool) {
	switch fn := value.(type) {
	case *js.MethodDecl:
		return paramsText(fn.Params), fn.Body.List, fn.Async, true
	case *js.FuncDecl:
		return paramsText(fn.Params), fn.Body.List, fn.Async, true
	case *js.ArrowFunc:
		return paramsText(fn.Params), fn.Body.List, fn.Async, true
	}
	return "", nil, false, false
}

// functionText renders function-like values as function expressions, which
// the generator later turns into arrows. Other values are serialized as is.
func functionText(value js.IExpr) string {
	if method, ok := value.(*js.MethodDecl); ok {
		return funcText(method.Async, method.Generator, nil, method.Params, method.Body.List)
	}
	return exprText(value)
}

func (s *Scanner) scanName(b model.Builder, value js.IExpr) model.Builder {
	lit, ok := value.(*js.LiteralExpr)
	if !ok || lit.TokenType != js.StringToken {
		s.logger.Debug("scanner: name is not a string literal")
		return b
	}
	return b.WithName(unquote(string(lit.Data)))
}

func (s *Scanner) scanComponents(b model.Builder, value js.IExpr) model.Builder {
	obj, ok := value.(*js.ObjectExpr)
	if !ok {
		return b
	}
	for _, prop := range obj.List {
		key, val := propertyEntry(prop)
		if key == "" {
			continue
		}
		b = b.WithSubComponent(key, exprText(val))
	}
	return b
}

func (s *Scanner) scanMixins(b model.Builder, value js.IExpr) model.Builder {
	arr, ok := value.(*js.ArrayExpr)
	if !ok {
		return b
	}
	for _, el := range arr.List {
		v, ok := el.Value.(*js.Var)
		if !ok || el.Spread {
			s.logger.Debug("scanner: skipped mixin", "value", exprText(el.Value))
			continue
		}
		b = b.WithMixin(string(v.Name()))
	}
	return b
}

func (s *Scanner) scanProps(b model.Builder, value js.IExpr) model.Builder {
	switch props := value.(type) {
	case *js.ArrayExpr:
		for _, el := range props.List {
			lit, ok := el.Value.(*js.LiteralExpr)
			if !ok || lit.TokenType != js.StringToken {
				continue
			}
			b = b.WithProp(unquote(string(lit.Data)), model.IdentProp("null"))
		}
	case *js.ObjectExpr:
		for _, prop := range props.List {
			key, val := propertyEntry(prop)
			if key == "" {
				continue
			}
			b = b.WithProp(key, resolveProp(val))
		}
	}
	return b
}

// resolveProp turns a prop declaration value into a model.Prop, recursing
// into object-form declarations (including their default entry).
func resolveProp(value js.IExpr) model.Prop {
	switch v := value.(type) {
	case *js.Var:
		return model.IdentProp(string(v.Name()))
	case *js.LiteralExpr:
		return model.LiteralProp(literalText(*v))
	case *js.ObjectExpr:
		fields := model.NewSection[model.Prop]()
		for _, prop := range v.List {
			key, val := propertyEntry(prop)
			if key == "" {
				continue
			}
			fields = fields.With(key, resolveProp(val))
		}
		return model.ObjectProp(fields)
	case *js.MethodDecl, *js.FuncDecl, *js.ArrowFunc:
		return model.FuncProp(functionText(v))
	default:
		return model.LiteralProp(exprText(value))
	}
}

func (s *Scanner) scanData(b model.Builder, value js.IExpr) model.Builder {
	obj, ok := value.(*js.ObjectExpr)
	if !ok {
		_, body, _, isFunc := functionParts(value)
		if !isFunc {
			s.logger.Debug("scanner: data is not a function")
			return b
		}
		obj = returnedObject(body)
	}
	if obj == nil {
		s.logger.Debug("scanner: data does not return an object literal")
		return b
	}
	for _, prop := range obj.List {
		key, val := propertyEntry(prop)
		if key == "" {
			continue
		}
		b = b.WithReactiveField(key, exprText(val))
	}
	return b
}

// returnedObject finds the first top-level return of an object literal.
func returnedObject(body []js.IStmt) *js.ObjectExpr {
	for _, stmt := range body {
		ret, ok := stmt.(*js.ReturnStmt)
		if !ok {
			continue
		}
		obj, _ := unwrapGroup(ret.Value).(*js.ObjectExpr)
		return obj
	}
	return nil
}

// arrowReturnPattern matches the zero-argument arrow wrappers a computed
// property body is reduced from.
var arrowReturnPattern = regexp.MustCompile(`^\(\) => \{ return (.*?);? \}$`)

// normalizeComputed strips `() => { return X }` and `() => X` down to X.
func normalizeComputed(body string) string {
	body = strings.TrimSpace(body)
	if m := arrowReturnPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if rest, ok := strings.CutPrefix(body, "() => "); ok && !strings.HasPrefix(rest, "{") {
		return rest
	}
	return body
}

func (s *Scanner) scanComputed(b model.Builder, value js.IExpr) model.Builder {
	obj, ok := value.(*js.ObjectExpr)
	if !ok {
		return b
	}
	for _, prop := range obj.List {
		if prop.Spread {
			b = s.scanGetterHelper(b, prop.Value)
			continue
		}
		key, val := propertyEntry(prop)
		if key == "" {
			continue
		}
		if accessor, ok := val.(*js.ObjectExpr); ok {
			b = b.WithDerivedField(key, computedAccessor(accessor))
			continue
		}
		b = b.WithDerivedField(key, model.DerivedField{Body: normalizeComputed(functionText(val))})
	}
	return b
}

// computedAccessor handles the { get() {}, set(v) {} } form.
func computedAccessor(obj *js.ObjectExpr) model.DerivedField {
	field := model.DerivedField{}
	for _, prop := range obj.List {
		key, val := propertyEntry(prop)
		switch key {
		case "get":
			field.Body = normalizeComputed(functionText(val))
		case "set":
			field.Setter = functionText(val)
		}
	}
	return field
}

// scanGetterHelper maps ...mapGetters([...]) (and the object alias form) onto
// store-bound derived fields.
func (s *Scanner) scanGetterHelper(b model.Builder, value js.IExpr) model.Builder {
	call, ok := value.(*js.CallExpr)
	if !ok {
		return b
	}
	callee, ok := call.X.(*js.Var)
	if !ok || string(callee.Name()) != s.getterHelper {
		s.logger.Debug("scanner: skipped computed spread", "value", exprText(value))
		return b
	}

	bind := func(b model.Builder, alias, getter string) model.Builder {
		return b.WithDerivedField(alias, model.DerivedField{
			Body:       "store.getters." + getter,
			StoreBound: true,
		})
	}
	for _, arg := range call.Args.List {
		switch v := arg.Value.(type) {
		case *js.LiteralExpr:
			if v.TokenType == js.StringToken {
				name := unquote(string(v.Data))
				b = bind(b, name, name)
			}
		case *js.ArrayExpr:
			for _, el := range v.List {
				lit, ok := el.Value.(*js.LiteralExpr)
				if !ok || lit.TokenType != js.StringToken {
					s.logger.Debug("scanner: unexpected getter element", "value", exprText(el.Value))
					continue
				}
				name := unquote(string(lit.Data))
				b = bind(b, name, name)
			}
		case *js.ObjectExpr:
			for _, prop := range v.List {
				alias, val := propertyEntry(prop)
				lit, ok := val.(*js.LiteralExpr)
				if alias == "" || !ok || lit.TokenType != js.StringToken {
					continue
				}
				b = bind(b, alias, unquote(string(lit.Data)))
			}
		default:
			s.logger.Debug("scanner: unexpected getter argument", "value", exprText(arg.Value))
		}
	}
	return b
}

func (s *Scanner) scanMethods(b model.Builder, value js.IExpr) model.Builder {
	obj, ok := value.(*js.ObjectExpr)
	if !ok {
		return b
	}
	for _, prop := range obj.List {
		key, val := propertyEntry(prop)
		if key == "" {
			continue
		}
		params, body, async, isFunc := functionParts(val)
		if !isFunc {
			b = b.WithBehavior(key, model.Behavior{Value: exprText(val)})
			continue
		}
		b = b.WithBehavior(key, model.Behavior{
			Params: params,
			Body:   bodyText(body),
			Async:  async,
		})
	}
	return b
}

func (s *Scanner) scanWatch(b model.Builder, value js.IExpr) model.Builder {
	obj, ok := value.(*js.ObjectExpr)
	if !ok {
		return b
	}
	for _, prop := range obj.List {
		key, val := propertyEntry(prop)
		if key == "" {
			continue
		}
		b = b.WithWatcher(key, watcherFor(val))
	}
	return b
}

// watcherFor resolves a watch entry. String handlers name a method and become
// a self reference that the generator rewrites to the bare method.
func watcherFor(value js.IExpr) model.Watcher {
	switch v := value.(type) {
	case *js.LiteralExpr:
		if v.TokenType == js.StringToken {
			return model.Watcher{Handler: "this." + unquote(string(v.Data))}
		}
	case *js.ObjectExpr:
		w := model.Watcher{}
		for _, prop := range v.List {
			key, val := propertyEntry(prop)
			switch key {
			case "handler":
				w.Handler = watcherFor(val).Handler
			case "deep":
				w.Deep = isTrue(val)
			case "immediate":
				w.Immediate = isTrue(val)
			}
		}
		return w
	}
	return model.Watcher{Handler: functionText(value)}
}

func isTrue(value js.IExpr) bool {
	lit, ok := value.(*js.LiteralExpr)
	return ok && lit.TokenType == js.TrueToken
}
