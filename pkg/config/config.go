package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-config/cfgx"
)

// Config captures module-level configuration knobs. Feature packages
// (frame display, variables, suppliers) pull from these nested structs.
type Config struct {
	Formatting FormattingConfig `mapstructure:"formatting" json:"formatting"`
	Variables  VariablesConfig  `mapstructure:"variables" json:"variables"`
	Links      LinksConfig      `mapstructure:"links" json:"links"`
}

// FormattingConfig drives the default display processor.
type FormattingConfig struct {
	Locale   string `mapstructure:"locale" json:"locale"`
	Decimals *int   `mapstructure:"decimals" json:"decimals,omitempty"`
}

// VariablesConfig controls how dashboard variables are serialized.
type VariablesConfig struct {
	QueryPrefix string `mapstructure:"query_prefix" json:"query_prefix"`
}

// LinksConfig toggles resolution side effects.
type LinksConfig struct {
	Observe     bool `mapstructure:"observe" json:"observe"`
	LogResolved bool `mapstructure:"log_resolved" json:"log_resolved"`
}

// DefaultDecimals trims trailing zeros when a field declares no decimals.
const DefaultDecimals = -1

// Defaults returns the baseline configuration.
func Defaults() Config {
	decimals := DefaultDecimals
	return Config{
		Formatting: FormattingConfig{
			Locale:   "en",
			Decimals: &decimals,
		},
		Variables: VariablesConfig{
			QueryPrefix: "var-",
		},
		Links: LinksConfig{
			Observe:     true,
			LogResolved: false,
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Formatting.Locale) == "" {
		return errors.New("formatting.locale is required")
	}
	if c.Formatting.Decimals != nil && *c.Formatting.Decimals > 20 {
		return fmt.Errorf("formatting.decimals must be <= 20")
	}
	if strings.ContainsAny(c.Variables.QueryPrefix, "&=?# ") {
		return fmt.Errorf("variables.query_prefix must not contain query delimiters")
	}
	return nil
}

// DecimalsOrDefault returns the configured decimals.
func (c Config) DecimalsOrDefault() int {
	if c.Formatting.Decimals == nil {
		return DefaultDecimals
	}
	return *c.Formatting.Decimals
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder to keep smoke tests meaningful.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

// withDefaults fills unset values. Booleans cannot be told apart from an
// explicit false, so Links is only defaulted when the whole section is empty.
func (c Config) withDefaults() Config {
	defaults := Defaults()

	if strings.TrimSpace(c.Formatting.Locale) == "" {
		c.Formatting.Locale = defaults.Formatting.Locale
	}
	if c.Formatting.Decimals == nil {
		c.Formatting.Decimals = defaults.Formatting.Decimals
	}
	if c.Variables.QueryPrefix == "" {
		c.Variables.QueryPrefix = defaults.Variables.QueryPrefix
	}
	if c.Links == (LinksConfig{}) {
		c.Links = defaults.Links
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
