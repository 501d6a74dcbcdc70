// Package config loads converter settings from YAML, JSON, or TOML files and
// turns them into orchestrator options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pkgformat "github.com/goliatone/go-vuemigrate/pkg/format"
	pkggenerator "github.com/goliatone/go-vuemigrate/pkg/generator"
	"github.com/goliatone/go-vuemigrate/pkg/orchestrator"
	pkgscanner "github.com/goliatone/go-vuemigrate/pkg/scanner"
)

// DefaultFormatter names the formatter used when the file omits one.
const DefaultFormatter = "beautify"

// ErrUnsupportedFormat reports a settings file with an unknown extension.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Config is the on-disk settings document.
type Config struct {
	Store  Store  `yaml:"store" toml:"store"`
	Format Format `yaml:"format" toml:"format"`
}

// Store controls how the legacy shared store is recognised and replaced.
type Store struct {
	LegacyModules  []string `yaml:"legacyModules" toml:"legacyModules"`
	Helpers        []string `yaml:"helpers" toml:"helpers"`
	GetterHelper   string   `yaml:"getterHelper" toml:"getterHelper"`
	AccessorImport string   `yaml:"accessorImport" toml:"accessorImport"`
}

// Format selects the formatter and its layout settings.
type Format struct {
	Name   string `yaml:"name" toml:"name"`
	Width  int    `yaml:"width" toml:"width"`
	Indent string `yaml:"indent" toml:"indent"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store: Store{
			LegacyModules:  append([]string(nil), pkgscanner.DefaultLegacyStoreModules...),
			Helpers:        append([]string(nil), pkgscanner.DefaultStoreHelpers...),
			GetterHelper:   pkgscanner.DefaultGetterHelper,
			AccessorImport: pkggenerator.DefaultStoreAccessorImport,
		},
		Format: Format{
			Name:   DefaultFormatter,
			Width:  pkgformat.DefaultWidth,
			Indent: pkgformat.DefaultIndent,
		},
	}
}

// Load reads a settings file, picking the decoder from its extension. Fields
// missing from the file keep their defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data according to ext (".yaml", ".yml", ".json", or ".toml")
// on top of Default and validates the result.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml", "json":
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, err
		}
	case "toml":
		if err := decodeTOML(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("config: decode toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("config: unknown toml keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate reports settings that cannot be honoured.
func (c Config) Validate() error {
	if c.Format.Width < 0 {
		return fmt.Errorf("config: format.width must not be negative, got %d", c.Format.Width)
	}
	if strings.TrimSpace(c.Format.Indent) != "" {
		return fmt.Errorf("config: format.indent must be whitespace, got %q", c.Format.Indent)
	}
	if strings.TrimSpace(c.Store.AccessorImport) != "" && !strings.HasPrefix(strings.TrimSpace(c.Store.AccessorImport), "import ") {
		return fmt.Errorf("config: store.accessorImport must be an import statement, got %q", c.Store.AccessorImport)
	}
	return nil
}

// Options converts the settings into orchestrator options.
func (c Config) Options() []orchestrator.Option {
	scannerOptions := []pkgscanner.Option{
		pkgscanner.WithLegacyStoreModules(c.Store.LegacyModules...),
		pkgscanner.WithStoreHelpers(c.Store.Helpers...),
	}
	if c.Store.GetterHelper != "" {
		scannerOptions = append(scannerOptions, pkgscanner.WithGetterHelper(c.Store.GetterHelper))
	}

	generatorOptions := []pkggenerator.Option{
		pkggenerator.WithWidth(c.Format.Width),
	}
	if c.Format.Indent != "" {
		generatorOptions = append(generatorOptions, pkggenerator.WithIndent(c.Format.Indent))
	}
	if c.Store.AccessorImport != "" {
		generatorOptions = append(generatorOptions, pkggenerator.WithStoreAccessorImport(c.Store.AccessorImport))
	}

	return []orchestrator.Option{
		orchestrator.WithScannerOptions(scannerOptions...),
		orchestrator.WithGeneratorOptions(generatorOptions...),
		orchestrator.WithFormatter(c.Format.Name),
	}
}
