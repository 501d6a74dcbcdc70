package scanner

import (
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

func parseStatements(t *testing.T, source string) []js.IStmt {
	t.Helper()

	ast, err := js.Parse(parse.NewInputString(source), js.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return ast.BlockStmt.List
}

func TestSerializerStatements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"mixed logical operators", "a && b || c", "(a && b) || c;"},
		{"same logical operator", "a || b || c", "a || b || c;"},
		{"explicit grouping", "(a + b) * c", "(a + b) * c;"},
		{"postfix update", "this.count++", "this.count++;"},
		{"typeof", "typeof x === 'string'", "typeof x === 'string';"},
		{"not", "x = !flag", "x = !flag;"},
		{"computed member", "obj[key] = value", "obj[key] = value;"},
		{"conditional", "x = cond ? a : b", "x = (cond ? a : b);"},
		{"new expression", "d = new Date(now)", "d = new Date(now);"},
		{"template literal", "msg = `hi ${name}!`", "msg = `hi ${name}!`;"},
		{"spread call", "fn(...args)", "fn(...args);"},
		{"array", "list = [1, 'two', ...rest]", "list = [1, 'two', ...rest];"},
		{"object", "o = { ...base, k: 1, 'x-y': 2 }", "o = { ...base, k: 1, 'x-y': 2 };"},
		{"object destructuring", "const { a, b: c } = obj", "const { a, b: c } = obj;"},
		{"booleans", "ok = true && !false", "ok = true && !false;"},
		{"if else", "if (x) { y() } else { z = 1 }", "if (x) { y(); } else { z = 1; }"},
		{"if without block", "if (x) y()", "if (x) y();"},
		{
			"try catch finally",
			"try { load() } catch (e) { console.log(e) } finally { done() }",
			"try { load(); } catch (e) { console.log(e); } finally { done(); }",
		},
		{
			"switch",
			"switch (k) { case 1: a(); break; default: b() }",
			"switch (k) { case 1: a(); break; default: b(); }",
		},
		{"for loop", "for (let i = 0; i < n; i++) { s += i }", "for (let i = 0; i < n; i++) { s += i; }"},
		{"for of", "for (const item of items) { use(item) }", "for (const item of items) { use(item); }"},
		{"concise arrow", "f = async (x, y) => { return x + y }", "f = async (x, y) => x + y;"},
		{"object arrow", "f = () => ({ a: 1 })", "f = () => ({ a: 1 });"},
		{"await", "f = async () => { await g() }", "f = async () => { await g(); };"},
		{"block arrow", "f = () => { a(); b() }", "f = () => { a(); b(); };"},
		{"function expression", "f = function (a, b = 2) { return a }", "f = function(a, b = 2) { return a; };"},
		{"throw", "throw new Error('boom')", "throw new Error('boom');"},
		{"unsupported class", "class A {}", "/* Unsupported node type: ClassDecl */"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := stmtsText(parseStatements(t, tc.source))
			if got != tc.want {
				t.Fatalf("serialize %q\n got: %s\nwant: %s", tc.source, got, tc.want)
			}
		})
	}
}

func TestBodyTextTrimsFinalTerminator(t *testing.T) {
	t.Parallel()

	got := bodyText(parseStatements(t, "a = 1; b()"))
	if got != "a = 1; b()" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestBlockTextEmpty(t *testing.T) {
	t.Parallel()

	if got := blockText(nil); got != "{}" {
		t.Fatalf("unexpected empty block %q", got)
	}
}

func TestUnsupportedNeverPanics(t *testing.T) {
	t.Parallel()

	if got := exprText(&js.ClassDecl{}); got != "/* Unsupported node type: ClassDecl */" {
		t.Fatalf("unexpected placeholder %q", got)
	}
	if got := exprText(nil); got != "" {
		t.Fatalf("expected empty text for nil, got %q", got)
	}
}
