package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deltaddl/deltaddl/internal/ddl"
)

const (
	CurrentVersion = 1
	DefaultPath    = "~/.deltaddl/deltaddl.yaml"
)

// Config is the top-level configuration.
type Config struct {
	Version int          `yaml:"version"`
	Ellie   EllieConfig  `yaml:"ellie,omitempty"`
	Output  OutputConfig `yaml:"output,omitempty"`
	DDL     *ddl.Options `yaml:"ddl,omitempty"`
	Logging LogConfig    `yaml:"logging,omitempty"`
}

// EllieConfig defines the Ellie.ai API connection.
type EllieConfig struct {
	Environment string `yaml:"environment,omitempty"` // slug like "templates" or a full host
	Token       string `yaml:"token,omitempty"`       // supports ${ENV/VAULT/AWS_SM:..} references
}

// OutputConfig defines where generated artifacts go.
type OutputConfig struct {
	Directory   string `yaml:"directory,omitempty"`     // default "output"
	TypeMapPath string `yaml:"type_map_path,omitempty"` // optional typemap override file
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level         string `yaml:"level,omitempty"`          // debug, info, warn, error
	Directory     string `yaml:"directory,omitempty"`      // default ~/.deltaddl/logs/
	RetentionDays int    `yaml:"retention_days,omitempty"` // default 30
}

// Load reads and parses the config file from the given path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentVersion)
	}

	if err := cfg.resolveSecrets(); err != nil {
		return nil, fmt.Errorf("resolving secrets: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to the given path.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ExpandHome(DefaultPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Options returns the generation options from the config file, or the
// defaults when the ddl section is absent.
func (c *Config) Options() ddl.Options {
	if c == nil || c.DDL == nil {
		return ddl.DefaultOptions()
	}
	return *c.DDL
}

func (c *Config) applyDefaults() {
	if c.Ellie.Environment == "" {
		c.Ellie.Environment = "templates"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "output"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Directory == "" {
		c.Logging.Directory = ExpandHome("~/.deltaddl/logs/")
	}
	if c.Logging.RetentionDays == 0 {
		c.Logging.RetentionDays = 30
	}
}

var secretPattern = regexp.MustCompile(`\$\{(ENV|VAULT|AWS_SM):([^}]+)\}`)

func (c *Config) resolveSecrets() error {
	var err error
	c.Ellie.Token, err = ResolveValue(c.Ellie.Token)
	if err != nil {
		return fmt.Errorf("ellie token: %w", err)
	}
	return nil
}

// ResolveValue resolves secret references in a string value.
func ResolveValue(val string) (string, error) {
	matches := secretPattern.FindStringSubmatch(val)
	if matches == nil {
		return val, nil
	}

	provider := matches[1]
	ref := matches[2]

	switch provider {
	case "ENV":
		v := os.Getenv(ref)
		if v == "" {
			return "", fmt.Errorf("environment variable %s not set", ref)
		}
		return v, nil
	case "VAULT":
		return resolveVault(ref)
	case "AWS_SM":
		return resolveAWSSecretsManager(ref)
	default:
		return "", fmt.Errorf("unknown secrets provider: %s", provider)
	}
}

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
