package format_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vuemigrate/pkg/format"
)

type stubFormatter struct{ name string }

func (s stubFormatter) Name() string { return s.name }

func (s stubFormatter) Format(source string, _ format.Options) (string, error) {
	return source, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := format.NewRegistry()
	registry.MustRegister(stubFormatter{name: "beta"})
	registry.MustRegister(stubFormatter{name: "alpha"})

	if !registry.Has("alpha") {
		t.Fatalf("expected alpha to be registered")
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	got, err := registry.Get("beta")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "beta" {
		t.Fatalf("unexpected formatter %q", got.Name())
	}
}

func TestRegistryRejectsDuplicatesAndEmptyNames(t *testing.T) {
	registry := format.NewRegistry()
	registry.MustRegister(stubFormatter{name: "alpha"})

	if err := registry.Register(stubFormatter{name: "alpha"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := registry.Register(stubFormatter{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil formatter to fail")
	}
}

func TestRegistryUnknownFormatter(t *testing.T) {
	registry := format.NewRegistry()

	_, err := registry.Get("missing")
	if !errors.Is(err, format.ErrUnknownFormatter) {
		t.Fatalf("expected ErrUnknownFormatter, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustGet to panic")
		}
	}()
	registry.MustGet("missing")
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := format.Options{Width: -1}.WithDefaults()
	if opts.Width != 0 || opts.Indent != format.DefaultIndent {
		t.Fatalf("unexpected defaults %+v", opts)
	}
}
