package config

import (
	"os"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
)

const (
	EnvPrefix = "BATCHREN_"

	// DefaultFile is looked up below the XDG config directories.
	DefaultFile = "batchren/config.yaml"
)

var (
	engines = []string{"re2", "dotnet"}
	outputs = []string{"table", "yaml"}
)

type Config struct {
	Root      string   `koanf:"root"`
	Globs     []string `koanf:"globs"`
	Engine    string   `koanf:"engine"`
	Shortcuts bool     `koanf:"shortcuts"`
	AssumeYes bool     `koanf:"assume_yes"`
	Strict    bool     `koanf:"strict"`
	Output    string   `koanf:"output"`
}

func defaults() map[string]any {
	return map[string]any{
		"root":       ".",
		"globs":      []string{"**/*"},
		"engine":     "re2",
		"shortcuts":  false,
		"assume_yes": false,
		"strict":     false,
		"output":     "table",
	}
}

// Load layers defaults, a YAML file and BATCHREN_* environment variables.
// An empty path falls back to the XDG config file when one exists.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		if found, err := xdg.SearchConfigFile(DefaultFile); err == nil {
			path = found
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Errorf("%w: config file: %s", domain.ErrInvalidConfig, err)
		}
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, errors.Errorf("%w: loading %s: %s", domain.ErrInvalidConfig, path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Errorf("loading environment: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Errorf("%w: %s", domain.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(engines, c.Engine) {
		return errors.Errorf("%w: engine %q, want one of %s", domain.ErrInvalidConfig, c.Engine, strings.Join(engines, ", "))
	}
	if !slices.Contains(outputs, c.Output) {
		return errors.Errorf("%w: output %q, want one of %s", domain.ErrInvalidConfig, c.Output, strings.Join(outputs, ", "))
	}
	if c.Root == "" {
		return errors.Errorf("%w: root is empty", domain.ErrInvalidConfig)
	}
	return nil
}
