package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vuemigrate/pkg/model"
)

func TestMapHook(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hook      string
		want      string
		framework bool
	}{
		{"created", "onBeforeMount", true},
		{"mounted", "onMounted", true},
		{"beforeDestroy", "onBeforeUnmount", true},
		{"updated", "updated", false},
		{"activated", "activated", false},
	}
	for _, tc := range cases {
		got, framework := mapHook(tc.hook)
		if got != tc.want || framework != tc.framework {
			t.Fatalf("mapHook(%q) = %q, %v; want %q, %v", tc.hook, got, framework, tc.want, tc.framework)
		}
	}
}

func TestNormalizeDerived(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want derivedBody
	}{
		{"plain expression", "a + b", derivedBody{expr: "a + b"}},
		{"function wrapper", "function() { return this.first; }", derivedBody{expr: "this.first"}},
		{"braces around return", "{ return x; }", derivedBody{expr: "x"}},
		{"concise arrow", "() => ({ a: 1 })", derivedBody{expr: "({ a: 1 })"}},
		{"store getter", "store.getters.user", derivedBody{expr: "store.getters.user"}},
		{
			"several statements",
			"() => { a(); return b; }",
			derivedBody{stmts: []string{"a();", "return b;"}},
		},
		{
			"leading statement keyword",
			"function() { if (x) return 1; }",
			derivedBody{stmts: []string{"if (x) return 1;"}},
		},
		{
			"line break",
			"const a = 1\nreturn a",
			derivedBody{stmts: []string{"const a = 1\nreturn a"}},
		},
	}

	for _, tc := range cases {
		got := normalizeDerived(tc.body)
		if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(derivedBody{})); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestToArrow(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"function() { this.load(); }":          "() => { this.load(); }",
		"async function(a, b) { await x(a); }": "async (a, b) => { await x(a); }",
		"function named(v) { return v; }":      "(v) => { return v; }",
		"function() {}":                        "() => {}",
		"(v) => v":                             "(v) => v",
		"this.refresh":                         "this.refresh",
		"function(a = f(1)) { return a.b(); }": "(a = f(1)) => { return a.b(); }",
	}
	for in, want := range cases {
		if got := toArrow(in); got != want {
			t.Fatalf("toArrow(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want []string
	}{
		{"", nil},
		{"this.count++", []string{"this.count++"}},
		{
			"const a = 1; if (a) { b(); } else { c(); } d()",
			[]string{"const a = 1;", "if (a) { b(); } else { c(); }", "d()"},
		},
		{"x = ';'; y()", []string{"x = ';';", "y()"}},
		{"for (let i = 0; i < 3; i++) { f(i); }", []string{"for (let i = 0; i < 3; i++) { f(i); }"}},
		{"o = { a: 1 }; g(o)", []string{"o = { a: 1 };", "g(o)"}},
		{"try { a(); } catch (e) { b(e); } finally { c(); }", []string{"try { a(); } catch (e) { b(e); } finally { c(); }"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, splitStatements(tc.body)); diff != "" {
			t.Fatalf("splitStatements(%q) mismatch (-want +got):\n%s", tc.body, diff)
		}
	}
}

func TestTerminate(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"a()":                              "a();",
		"a();":                             "a();",
		"if (a) { b(); }":                  "if (a) { b(); }",
		"  ":                               "",
		"return { x: 1, y: re.value }":     "return { x: 1, y: re.value };",
		"const o = { a: 1 }":               "const o = { a: 1 };",
		"const f = () => { g(); }":         "const f = () => { g(); };",
		"try { a(); } catch (e) { b(e); }": "try { a(); } catch (e) { b(e); }",
		"function named() { return 1; }":   "function named() { return 1; }",
		"for (const x of xs) { f(x); }":    "for (const x of xs) { f(x); }",
		"{ scoped(); }":                    "{ scoped(); }",
		"switch (k) { case 1: break; }":    "switch (k) { case 1: break; }",
	}
	for in, want := range cases {
		if got := terminate(in); got != want {
			t.Fatalf("terminate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPropText(t *testing.T) {
	t.Parallel()

	nested := model.NewSection[model.Prop]().
		With("type", model.IdentProp("Array")).
		With("default", model.FuncProp("() => []")).
		With("required", model.LiteralProp("False"))

	cases := []struct {
		prop model.Prop
		want string
	}{
		{model.IdentProp("String"), "String"},
		{model.LiteralProp("'small'"), "'small'"},
		{model.LiteralProp("TRUE"), "true"},
		{model.ObjectProp(model.NewSection[model.Prop]()), "{}"},
		{model.ObjectProp(model.NewSection[model.Prop]().With("type", model.IdentProp("Number"))), "{ type: Number }"},
		{model.ObjectProp(nested), "{ type: Array, default: () => [], required: false }"},
	}
	for _, tc := range cases {
		if got := propText(tc.prop); got != tc.want {
			t.Fatalf("propText(%+v) = %q, want %q", tc.prop, got, tc.want)
		}
	}
}

func TestMatchingClose(t *testing.T) {
	t.Parallel()

	text := "f(a, ')', [b], `${c}`) + 1"
	if got := matchingClose(text, 1); got != 21 {
		t.Fatalf("matchingClose = %d, want 21", got)
	}
	if got := matchingClose("(unterminated", 0); got != -1 {
		t.Fatalf("expected -1 for unterminated bracket, got %d", got)
	}
}

func TestPropertyName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"size":     "size",
		"$attrs":   "$attrs",
		"_private": "_private",
		"v2":       "v2",
		"my-child": "'my-child'",
		"data-id":  "'data-id'",
		"2col":     "'2col'",
		"a.b":      "'a.b'",
		"":         "''",
	}
	for in, want := range cases {
		if got := propertyName(in); got != want {
			t.Fatalf("propertyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDerivedIgnoresQuotedTerminators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want derivedBody
	}{
		{`function() { return this.s.split(";").length; }`, derivedBody{expr: `this.s.split(";").length`}},
		{"function() { return `a;b;c`; }", derivedBody{expr: "`a;b;c`"}},
		{"function() { return `x\ny`; }", derivedBody{expr: "`x\ny`"}},
	}
	for _, tc := range cases {
		got := normalizeDerived(tc.body)
		if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(derivedBody{})); diff != "" {
			t.Fatalf("normalizeDerived(%q) mismatch (-want +got):\n%s", tc.body, diff)
		}
	}
}
