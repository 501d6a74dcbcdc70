package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vuemigrate/pkg/config"
	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	want := config.Config{
		Store: config.Store{
			LegacyModules:  []string{"vuex"},
			Helpers:        []string{"mapGetters", "mapState", "mapActions", "mapMutations"},
			GetterHelper:   "mapGetters",
			AccessorImport: "import { useStore } from 'js/store';",
		},
		Format: config.Format{Name: "beautify", Width: 80, Indent: "    "},
	}
	if diff := cmp.Diff(want, config.Default()); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ext  string
		data string
	}{
		{
			name: "yaml",
			ext:  ".yaml",
			data: "store:\n  legacyModules: ['@/store/legacy']\n  accessorImport: \"import { useStore } from '@/store';\"\nformat:\n  width: 100\n  indent: \"  \"\n",
		},
		{
			name: "json",
			ext:  ".json",
			data: `{"store": {"legacyModules": ["@/store/legacy"], "accessorImport": "import { useStore } from '@/store';"}, "format": {"width": 100, "indent": "  "}}`,
		},
		{
			name: "toml",
			ext:  "toml",
			data: "[store]\nlegacyModules = ['@/store/legacy']\naccessorImport = \"import { useStore } from '@/store';\"\n\n[format]\nwidth = 100\nindent = \"  \"\n",
		},
	}

	want := config.Default()
	want.Store.LegacyModules = []string{"@/store/legacy"}
	want.Store.AccessorImport = "import { useStore } from '@/store';"
	want.Format.Width = 100
	want.Format.Indent = "  "

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Parse([]byte(tc.data), tc.ext)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmptyDocumentKeepsDefaults(t *testing.T) {
	t.Parallel()

	got, err := config.Parse(nil, ".yml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(config.Default(), got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		ext     string
		data    string
		message string
	}{
		{"unknown yaml key", ".yaml", "format:\n  colour: red\n", "decode yaml"},
		{"unknown toml key", ".toml", "[format]\ncolour = 'red'\n", "unknown toml keys: format.colour"},
		{"negative width", ".yaml", "format:\n  width: -1\n", "format.width"},
		{"visible indent", ".yaml", "format:\n  indent: '--'\n", "format.indent"},
		{"accessor not an import", ".toml", "[store]\naccessorImport = 'useStore'\n", "store.accessorImport"},
	}
	for _, tc := range cases {
		_, err := config.Parse([]byte(tc.data), tc.ext)
		if err == nil || !strings.Contains(err.Error(), tc.message) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.message, err)
		}
	}

	_, err := config.Parse([]byte("a = 1"), ".ini")
	if !errors.Is(err, config.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "vuemigrate.toml")
	if err := os.WriteFile(path, []byte("[format]\nname = 'passthrough'\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format.Name != "passthrough" || cfg.Format.Width != 80 {
		t.Fatalf("unexpected format settings %+v", cfg.Format)
	}

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := config.Load(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOptionsConfigureOrchestrator(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.LegacyModules = []string{"@/legacy"}
	cfg.Store.AccessorImport = "import { useStore } from '@/store';"
	cfg.Format.Indent = "  "

	gen := orchestrator.New(cfg.Options()...)
	input := "<script>\nimport { mapGetters } from '@/legacy';\nexport default { computed: { ...mapGetters(['total']) } };\n</script>\n"
	result, err := gen.ConvertText(context.Background(), "store.vue", input)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{
		"import { useStore } from '@/store';",
		"\n  setup() {\n    const store = useStore();\n    const total = computed(() => store.getters.total);",
	} {
		if !strings.Contains(result.Document, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Document)
		}
	}
	if strings.Contains(result.Document, "@/legacy") {
		t.Fatalf("expected legacy import dropped in:\n%s", result.Document)
	}

	cfg.Format.Name = "unknown"
	if _, err := orchestrator.New(cfg.Options()...).ConvertText(context.Background(), "x", input); err == nil {
		t.Fatalf("expected unknown formatter error")
	}
}
