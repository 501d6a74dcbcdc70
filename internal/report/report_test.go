package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		expected string
		output   string
		want     Comparison
	}{
		{"identical", "a\nb\n", "a\nb\n", Comparison{Match: true}},
		{"trailing whitespace ignored", "a  \nb\n\n\n", "a\nb", Comparison{Match: true}},
		{"crlf ignored", "a\r\nb\r\n", "a\nb\n", Comparison{Match: true}},
		{"first difference", "a\nb\nc", "a\nx\nc", Comparison{Line: 2, Want: "b", Got: "x"}},
		{"output shorter", "a\nb", "a", Comparison{Line: 2, Want: "b", GotEnded: true}},
		{"output longer", "a", "a\n\nb", Comparison{Line: 2, Got: "", WantEnded: true}},
		{"blank line differs", "a\n\nb", "a\nc\nb", Comparison{Line: 2, Want: "", Got: "c"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, Compare(tc.expected, tc.output)); diff != "" {
			t.Fatalf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestMarkdownWithoutExpectation(t *testing.T) {
	t.Parallel()

	got := mustMarkdown(t, Document{Input: "<script>\nexport default {}\n</script>\n", Output: "<script>\n</script>"})
	want := "# Conversion report\n" +
		"\n## Input\n\n```vue\n<script>\nexport default {}\n</script>\n```\n" +
		"\n## Output\n\n```vue\n<script>\n</script>\n```\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdownSummarisesComparison(t *testing.T) {
	t.Parallel()

	matching := mustMarkdown(t, Document{Input: "in", Output: "same\n", Expected: "same", HasExpected: true})
	if !strings.Contains(matching, "**Result:** output matches the expected document.") {
		t.Fatalf("expected match summary in:\n%s", matching)
	}
	if !strings.HasSuffix(matching, "## Expected output\n\n```vue\nsame\n```\n") {
		t.Fatalf("expected trailing expectation section in:\n%s", matching)
	}

	differing := mustMarkdown(t, Document{Input: "in", Output: "a\nuse `x`", Expected: "a\nb", HasExpected: true})
	for _, want := range []string{
		"output differs from the expected document at line 2.",
		"- expected: ` b `",
		"- actual: `` use `x` ``",
	} {
		if !strings.Contains(differing, want) {
			t.Fatalf("expected %q in:\n%s", want, differing)
		}
	}

	empty := mustMarkdown(t, Document{Input: "in", Output: "", Expected: "", HasExpected: true})
	if !strings.Contains(empty, "output matches") {
		t.Fatalf("expected empty texts to match:\n%s", empty)
	}
}

func TestFenceOutgrowsBackticksInBody(t *testing.T) {
	t.Parallel()

	if got := fenceFor("const s = `x`;"); got != "```" {
		t.Fatalf("fenceFor = %q", got)
	}
	if got := fenceFor("text with ```` fence"); got != "`````" {
		t.Fatalf("fenceFor = %q", got)
	}
}

func TestMarkdownKeepsMarkupUnescaped(t *testing.T) {
	t.Parallel()

	got := mustMarkdown(t, Document{
		Input:       "<b v-if=\"a && b\">{{ x }}</b>",
		Output:      "<b v-if=\"a && b\">{{ x }}</b>\n",
		Expected:    "<b>",
		HasExpected: true,
	})
	want := "# Conversion report\n" +
		"\n**Result:** output differs from the expected document at line 1.\n" +
		"\n- expected: ` <b> `\n- actual: ` <b v-if=\"a && b\">{{ x }}</b> `\n" +
		"\n## Input\n\n```vue\n<b v-if=\"a && b\">{{ x }}</b>\n```\n" +
		"\n## Output\n\n```vue\n<b v-if=\"a && b\">{{ x }}</b>\n```\n" +
		"\n## Expected output\n\n```vue\n<b>\n```\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineRendersFromDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "report.md.tpl"), []byte("{{ sections|length }} sections"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := NewEngine(WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var out strings.Builder
	got, err := engine.RenderTemplate("report", reportContext(Document{Input: "a", Output: "b"}), &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "2 sections" || out.String() != got {
		t.Fatalf("unexpected render %q / %q", got, out.String())
	}

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := NewEngine(); err == nil {
		t.Fatalf("expected error without a template source")
	}
}

func mustMarkdown(t *testing.T, doc Document) string {
	t.Helper()

	got, err := Markdown(doc)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	return got
}
