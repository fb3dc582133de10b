package linter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/i18nlint/pkg/casing"
	"github.com/platinummonkey/i18nlint/pkg/catalog"
	"github.com/platinummonkey/i18nlint/pkg/locale"
)

// Rule names of the built-in rules
const (
	RuleKeyFormatStyle = "key-format-style"
	RuleNoMissingKeys  = "no-missing-keys"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid lint configuration")

// ConfigFileNames are searched, in order, by LoadConfigFromDir
var ConfigFileNames = []string{"i18nlint.yaml", "i18nlint.yml", ".i18nlint.yaml", ".i18nlint.yml"}

// Config represents the linting configuration
type Config struct {
	Version  string                `yaml:"version"`
	Settings Settings              `yaml:"settings"`
	Rules    map[string]RuleConfig `yaml:"rules"`
	Ignore   []string              `yaml:"ignore"`
}

// Settings locate the message catalogs
type Settings struct {
	LocaleDir Patterns `yaml:"localeDir"`
	// LocaleKey is "file" when catalog file names are locale codes, or "key"
	// when the first-level keys of every catalog are locale codes
	LocaleKey         string `yaml:"localeKey"`
	FileLocalePattern string `yaml:"fileLocalePattern,omitempty"`
}

// Locale key modes
const (
	LocaleKeyFile = "file"
	LocaleKeyKey  = "key"
)

// Patterns is a glob list that may be written as a single string
type Patterns []string

// UnmarshalYAML accepts a scalar or a sequence
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = Patterns{node.Value}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*p = list
	return nil
}

// RuleConfig configures one rule. Unset fields keep the rule defaults.
type RuleConfig struct {
	Enabled  *bool    `yaml:"enabled,omitempty"`
	Severity Severity `yaml:"severity,omitempty"`

	// key-format-style
	CaseOption string `yaml:"caseOption,omitempty"`
	AllowArray bool   `yaml:"allowArray,omitempty"`

	// no-missing-keys
	MissingPathPolicy string `yaml:"missingPathPolicy,omitempty"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Settings: Settings{
			LocaleDir: Patterns{"locales/*.{json,yaml,yml}"},
			LocaleKey: LocaleKeyFile,
		},
		Rules: map[string]RuleConfig{
			RuleKeyFormatStyle: {Severity: SeverityWarning, CaseOption: string(casing.Default)},
			RuleNoMissingKeys:  {Severity: SeverityError, MissingPathPolicy: string(locale.PolicyFirst)},
		},
		Ignore: []string{"node_modules/**", "dist/**", ".git/**"},
	}
}

// Rule returns the configuration of a rule, or the zero value
func (c *Config) Rule(name string) RuleConfig {
	return c.Rules[name]
}

// RuleEnabled reports whether a rule runs. Rules are enabled unless
// configured otherwise.
func (c *Config) RuleEnabled(name string) bool {
	rc, ok := c.Rules[name]
	if !ok || rc.Enabled == nil {
		return true
	}
	return *rc.Enabled
}

// RuleSeverity returns the configured severity of a rule, or def
func (c *Config) RuleSeverity(name string, def Severity) Severity {
	if s := c.Rules[name].Severity; s != "" {
		return s
	}
	return def
}

// CatalogOptions derives the tree build options from the key-format-style
// rule
func (c *Config) CatalogOptions() (catalog.Options, error) {
	rc := c.Rule(RuleKeyFormatStyle)
	opt, err := casing.Parse(rc.CaseOption)
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{
		CaseOption: opt,
		AllowArray: rc.AllowArray,
		CheckKeys:  c.RuleEnabled(RuleKeyFormatStyle),
	}, nil
}

// MissingPathPolicy returns the no-missing-keys policy
func (c *Config) MissingPathPolicy() (locale.MissingPathPolicy, error) {
	return locale.ParsePolicy(c.Rule(RuleNoMissingKeys).MissingPathPolicy)
}

// Resolver builds the file name locale resolver
func (c *Config) Resolver() (*locale.Resolver, error) {
	return locale.NewResolver(c.Settings.FileLocalePattern)
}

// ByFileName reports whether catalog file names carry the locale
func (c *Config) ByFileName() bool {
	return c.Settings.LocaleKey != LocaleKeyKey
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	switch c.Settings.LocaleKey {
	case "", LocaleKeyFile, LocaleKeyKey:
	default:
		return fmt.Errorf("%w: localeKey must be %q or %q, got %q", ErrInvalidConfig, LocaleKeyFile, LocaleKeyKey, c.Settings.LocaleKey)
	}
	if len(c.Settings.LocaleDir) == 0 {
		return fmt.Errorf("%w: localeDir is required", ErrInvalidConfig)
	}
	for name, rc := range c.Rules {
		switch rc.Severity {
		case "", SeverityError, SeverityWarning, SeverityInfo:
		default:
			return fmt.Errorf("%w: rule %s: unknown severity %q", ErrInvalidConfig, name, rc.Severity)
		}
	}
	if _, err := c.CatalogOptions(); err != nil {
		return fmt.Errorf("%w: rule %s: %v", ErrInvalidConfig, RuleKeyFormatStyle, err)
	}
	if _, err := c.MissingPathPolicy(); err != nil {
		return fmt.Errorf("%w: rule %s: %v", ErrInvalidConfig, RuleNoMissingKeys, err)
	}
	if _, err := c.Resolver(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig loads configuration from a file. Values not present in the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// LoadConfigFromDir searches for config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
