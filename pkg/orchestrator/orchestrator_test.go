package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	internalloader "github.com/goliatone/go-vuemigrate/internal/loader"
	"github.com/goliatone/go-vuemigrate/pkg/format"
	pkggenerator "github.com/goliatone/go-vuemigrate/pkg/generator"
	"github.com/goliatone/go-vuemigrate/pkg/model"
	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
	pkgscanner "github.com/goliatone/go-vuemigrate/pkg/scanner"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
	"github.com/goliatone/go-vuemigrate/pkg/testsupport"
)

const storeComponent = `<template>
  <div>{{ user.name }}</div>
</template>
<script lang="js">
import { mapGetters } from 'vuex';
import Avatar from './Avatar.vue';

export default {
  name: 'Profile',
  components: { Avatar },
  props: ['userId'],
  data() {
    return { open: false };
  },
  computed: {
    ...mapGetters(['user']),
  },
  watch: {
    userId(id) { this.$store.dispatch('load', id); },
  },
  mounted() {
    this.$emit('ready');
  },
  methods: {
    toggle() {
      this.open = !this.open;
      this.$nextTick(() => this.$refs.panel.focus());
    },
  },
};
</script>
`

func TestOrchestrator_Convert_Counter(t *testing.T) {
	ctx := testsupport.Context()
	source := sfc.SourceFromFile(filepath.Join("testdata", "counter.vue"))

	result, err := orchestrator.New().Convert(ctx, orchestrator.Request{Source: source})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !result.Changed {
		t.Fatalf("expected document to change")
	}

	goldenPath := filepath.Join("testdata", "counter.golden.vue")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(result.Document)) {
		return
	}

	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, result.Document); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_Convert_StoreComponent(t *testing.T) {
	t.Parallel()

	result, err := orchestrator.New().ConvertText(context.Background(), "Profile.vue", storeComponent)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	if !strings.HasPrefix(result.Document, "<template>\n  <div>{{ user.name }}</div>\n</template>\n<script lang=\"js\">\n") {
		t.Fatalf("expected template and script tag preserved, got:\n%s", result.Document)
	}
	if !strings.HasSuffix(result.Document, "\n</script>\n") {
		t.Fatalf("expected closing tag preserved, got:\n%s", result.Document)
	}
	for _, want := range []string{
		"import { computed, defineComponent, getCurrentInstance, nextTick, onMounted, ref, watch } from 'vue';",
		"import { useStore } from 'js/store';",
		"import Avatar from './Avatar.vue';",
		"components: {\n        Avatar\n    },",
		"userId: null",
		"setup(props, { emit }) {",
		"const store = useStore();",
		"const open = ref(false);",
		"const user = computed(() => store.getters.user);",
		"open.value = !open.value;",
		"nextTick(() => proxy.$refs.panel.focus());",
		"watch(() => props.userId, (id) => {",
		"store.dispatch('load', id);",
		"onMounted(() => {",
		"emit('ready');",
	} {
		if !strings.Contains(result.Document, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Document)
		}
	}
	for _, absent := range []string{"vuex", "mapGetters", "this."} {
		if strings.Contains(result.Document, absent) {
			t.Fatalf("expected %q to be removed from:\n%s", absent, result.Document)
		}
	}
	if !result.Component.UsesSharedStore {
		t.Fatalf("expected scanned component to use the store")
	}
}

func TestOrchestrator_Convert_Unchanged(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no script":       "<template><p>static</p></template>\n",
		"empty export":    "<template><p/></template>\n<script>\nexport default {}\n</script>\n",
		"setup script":    "<script setup>\nconst a = 1\n</script>\n",
		"unparsable body": "<script>\nexport default {\n</script>\n",
	}
	for name, input := range cases {
		result, err := orchestrator.New().ConvertText(context.Background(), name, input)
		if err != nil {
			t.Fatalf("%s: convert: %v", name, err)
		}
		if result.Changed || result.Document != input {
			t.Fatalf("%s: expected document unchanged, got %q", name, result.Document)
		}
		if result.Script != "" {
			t.Fatalf("%s: expected no script, got %q", name, result.Script)
		}
	}
}

func TestOrchestrator_Convert_RequiresInput(t *testing.T) {
	t.Parallel()

	_, err := orchestrator.New().Convert(context.Background(), orchestrator.Request{})
	if err == nil || !strings.Contains(err.Error(), "source or document is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestOrchestrator_Convert_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orchestrator.New().ConvertText(ctx, "cancelled", storeComponent)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOrchestrator_UnknownFormatter(t *testing.T) {
	t.Parallel()

	gen := orchestrator.New(orchestrator.WithFormatter("prettier"))
	_, err := gen.ConvertText(context.Background(), "x", storeComponent)
	if !errors.Is(err, format.ErrUnknownFormatter) {
		t.Fatalf("expected ErrUnknownFormatter, got %v", err)
	}
}

func TestOrchestrator_PassthroughFormatterMatchesEmittedLayout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	beautified, err := orchestrator.New().ConvertText(ctx, "a", storeComponent)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	raw, err := orchestrator.New(orchestrator.WithFormatter("passthrough")).ConvertText(ctx, "b", storeComponent)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if diff := testsupport.CompareGolden(beautified.Document, raw.Document); diff != "" {
		t.Fatalf("layout mismatch (-beautify +passthrough):\n%s", diff)
	}
}

func TestOrchestrator_LoadsFromFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"components/Counter.vue": &fstest.MapFile{Data: testsupport.MustReadGolden(t, filepath.Join("testdata", "counter.vue"))},
	}
	loader := internalloader.New(sfc.NewLoaderOptions(sfc.WithFileSystem(files)))
	gen := orchestrator.New(orchestrator.WithLoader(loader))

	result, err := gen.Convert(context.Background(), orchestrator.Request{Source: sfc.SourceFromFS("components/Counter.vue")})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "counter.golden.vue"))
	if diff := testsupport.CompareGolden(want, result.Document); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = gen.Convert(context.Background(), orchestrator.Request{Source: sfc.SourceFromFS("missing.vue")})
	if err == nil || !strings.Contains(err.Error(), "orchestrator: load document") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestOrchestrator_TransformerRunsBeforeGeneration(t *testing.T) {
	t.Parallel()

	rename := orchestrator.TransformerFunc(func(_ context.Context, c model.Component) (model.Component, error) {
		return model.BuilderFrom(c).WithName("Renamed").Build(), nil
	})
	gen := orchestrator.New(orchestrator.WithTransformer(rename))
	result, err := gen.ConvertText(context.Background(), "x", storeComponent)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(result.Document, "name: 'Renamed'") || result.Component.Name != "Renamed" {
		t.Fatalf("expected transformer output in:\n%s", result.Document)
	}

	boom := errors.New("boom")
	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(_ context.Context, c model.Component) (model.Component, error) { return c, boom },
	)))
	if _, err := failing.ConvertText(context.Background(), "x", storeComponent); !errors.Is(err, boom) {
		t.Fatalf("expected transformer error, got %v", err)
	}
}

func TestChainTransformersRunsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	step := func(name string) orchestrator.Transformer {
		return orchestrator.TransformerFunc(func(_ context.Context, c model.Component) (model.Component, error) {
			order = append(order, name)
			return model.BuilderFrom(c).WithMixin(name).Build(), nil
		})
	}
	chain := orchestrator.ChainTransformers(step("first"), nil, step("second"))
	out, err := chain.Transform(context.Background(), model.NewBuilder().Build())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := testsupport.CompareGolden([]string{"first", "second"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden([]string{"first", "second"}, out.Mixins); diff != "" {
		t.Fatalf("mixins mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_ForwardsComponentOptions(t *testing.T) {
	t.Parallel()

	gen := orchestrator.New(
		orchestrator.WithScannerOptions(pkgscanner.WithLegacyStoreModules("@/legacy-store")),
		orchestrator.WithGeneratorOptions(pkggenerator.WithStoreAccessorImport("import { useStore } from '@/store';")),
	)
	input := "<script>\nimport { mapGetters } from '@/legacy-store';\nexport default { computed: { ...mapGetters(['total']) } };\n</script>\n"
	result, err := gen.ConvertText(context.Background(), "x", input)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(result.Document, "import { useStore } from '@/store';") {
		t.Fatalf("expected custom accessor import in:\n%s", result.Document)
	}
	if strings.Contains(result.Document, "legacy-store") {
		t.Fatalf("expected legacy store import to be dropped in:\n%s", result.Document)
	}
}

const kebabComponent = `<template><my-child :data-id="id"/></template>
<script>
import Vue, { reactive } from 'vue'
import MyChild from './MyChild.vue'
export default {
  components: { 'my-child': MyChild },
  props: { 'data-id': { type: String, 'x-kind': 'id' } },
  data() { return { obj: {} } },
  methods: {
    store() { Vue.set(this.obj, 'k', reactive({ a: 1 })) },
    pair() { return { x: 1, y: this.obj } }
  }
}
</script>
`

func TestOrchestrator_Convert_KeepsScriptParsable(t *testing.T) {
	t.Parallel()

	result, err := orchestrator.New().ConvertText(context.Background(), "Kebab.vue", kebabComponent)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := js.Parse(parse.NewInputString(result.Script), js.Options{}); err != nil {
		t.Fatalf("generated script does not parse: %v\n%s", err, result.Script)
	}
	for _, want := range []string{
		"import { defineComponent, reactive, ref } from 'vue';",
		"import Vue from 'vue';",
		"import MyChild from './MyChild.vue';",
		"'my-child': MyChild",
		"'data-id': {",
		"'x-kind': 'id'",
		"reactive(",
	} {
		if !strings.Contains(result.Script, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Script)
		}
	}
}
