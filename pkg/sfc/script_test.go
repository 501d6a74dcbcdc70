package sfc

import (
	"strings"
	"testing"
)

const counterComponent = `<template>
  <button @click="inc">{{ count }}</button>
</template>

<script lang="js">
export default {
  name: 'Counter'
}
</script>

<style scoped>
button { color: red; }
</style>
`

func TestExtractScriptReturnsBodyAndOffsets(t *testing.T) {
	t.Parallel()

	block, ok := ExtractScript(counterComponent)
	if !ok {
		t.Fatalf("expected script block")
	}
	want := "\nexport default {\n  name: 'Counter'\n}\n"
	if block.Body != want {
		t.Fatalf("unexpected body %q", block.Body)
	}
	if got := counterComponent[block.Start:block.End]; got != want {
		t.Fatalf("offsets do not match body: %q", got)
	}
	if block.Lang() != "js" {
		t.Fatalf("unexpected lang %q", block.Lang())
	}
}

func TestExtractScriptSkipsSetupBlocks(t *testing.T) {
	t.Parallel()

	doc := "<script setup>\nconst a = 1\n</script>\n<script>\nexport default {}\n</script>"
	block, ok := ExtractScript(doc)
	if !ok {
		t.Fatalf("expected options script block")
	}
	if strings.TrimSpace(block.Body) != "export default {}" {
		t.Fatalf("unexpected body %q", block.Body)
	}
}

func TestExtractScriptMissingBlock(t *testing.T) {
	t.Parallel()

	if _, ok := ExtractScript("<template><div/></template>"); ok {
		t.Fatalf("expected no script block")
	}
}

func TestExtractScriptEmptyBlock(t *testing.T) {
	t.Parallel()

	block, ok := ExtractScript("<script></script>")
	if !ok {
		t.Fatalf("expected empty script block to be found")
	}
	if block.Body != "" || block.Start != len("<script>") || block.End != block.Start {
		t.Fatalf("unexpected block %+v", block)
	}
}

func TestReplaceScriptKeepsSurroundingMarkup(t *testing.T) {
	t.Parallel()

	block, ok := ExtractScript(counterComponent)
	if !ok {
		t.Fatalf("expected script block")
	}
	out := ReplaceScript(counterComponent, block, "export default defineComponent({});")

	if !strings.Contains(out, "<script lang=\"js\">\nexport default defineComponent({});\n</script>") {
		t.Fatalf("script not replaced:\n%s", out)
	}
	if !strings.HasPrefix(out, "<template>\n  <button @click=\"inc\">{{ count }}</button>\n</template>") {
		t.Fatalf("template not preserved:\n%s", out)
	}
	if !strings.HasSuffix(out, "<style scoped>\nbutton { color: red; }\n</style>\n") {
		t.Fatalf("style not preserved:\n%s", out)
	}
}

func TestNewDocumentValidatesInput(t *testing.T) {
	t.Parallel()

	if _, err := NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceInline(""), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	doc := MustNewDocument(SourceInline(""), []byte(counterComponent))
	if doc.Location() != "inline" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if _, ok := doc.Script(); !ok {
		t.Fatalf("expected document script")
	}
}
