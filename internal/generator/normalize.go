package generator

import "strings"

// hookTargets maps options-style lifecycle hooks onto composition
// registrations. Names outside the table pass through unchanged.
var hookTargets = map[string]string{
	"created":       "onBeforeMount",
	"mounted":       "onMounted",
	"beforeDestroy": "onBeforeUnmount",
}

// mapHook returns the registration function for hook and whether it is a
// framework import.
func mapHook(hook string) (string, bool) {
	if target, ok := hookTargets[hook]; ok {
		return target, true
	}
	return hook, false
}

// statementKeywords start bodies that cannot be used as an expression.
var statementKeywords = []string{
	"if", "for", "while", "do", "switch", "try", "const", "let", "var", "throw",
}

func startsWithStatement(text string) bool {
	for _, kw := range statementKeywords {
		if rest, ok := strings.CutPrefix(text, kw); ok && (rest == "" || !isIdentByte(rest[0])) {
			return true
		}
	}
	return false
}

// derivedBody is a normalized computed body: either a single expression or a
// list of statements.
type derivedBody struct {
	expr  string
	stmts []string
}

func (d derivedBody) isBlock() bool { return d.stmts != nil }

// normalizeDerived reduces a computed body to the form used inside
// computed(() => ...). A body counts as a block when its code, outside
// strings and comments, holds more than one terminator, a line break or a
// leading statement keyword.
func normalizeDerived(body string) derivedBody {
	text := strings.TrimSpace(body)
	if parts, ok := splitFunction(text); ok && !parts.async {
		if !parts.block {
			return derivedBody{expr: expressionForm(parts.body)}
		}
		text = parts.body
	}
	if countCode(text, ';') > 1 || countCode(text, '\n') > 0 || startsWithStatement(text) {
		return derivedBody{stmts: splitStatements(text)}
	}
	return derivedBody{expr: expressionForm(text)}
}

// expressionForm strips a leading return, a trailing terminator and braces
// that only wrap a return.
func expressionForm(text string) string {
	for {
		text = strings.TrimSpace(text)
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
		if rest, ok := strings.CutPrefix(text, "return"); ok && (rest == "" || !isIdentByte(rest[0])) {
			text = strings.TrimSpace(rest)
			continue
		}
		if inner, ok := blockInner(text); ok && strings.HasPrefix(inner, "return") {
			text = inner
			continue
		}
		return text
	}
}

// arrowResult renders an expression as an arrow result, wrapping object
// literals in parentheses.
func arrowResult(expr string) string {
	if strings.HasPrefix(expr, "{") {
		return "(" + expr + ")"
	}
	return expr
}

// nameSets holds the modeled names used to resolve self references.
type nameSets struct {
	props    map[string]struct{}
	reactive map[string]struct{}
	derived  map[string]struct{}
	methods  map[string]struct{}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// selfReference returns the composition form of this.name, in precedence
// props, data, computed, methods.
func (n nameSets) selfReference(name string) (string, bool) {
	if _, ok := n.props[name]; ok {
		return "props." + name, true
	}
	if _, ok := n.reactive[name]; ok {
		return name + ".value", true
	}
	if _, ok := n.derived[name]; ok {
		return name + ".value", true
	}
	if _, ok := n.methods[name]; ok {
		return name, true
	}
	return "", false
}
