package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRawBaseURL      = "https://raw.githubusercontent.com/gravity9-tech/pandora-marketplace/main"
	DefaultManifestBaseURL = DefaultRawBaseURL + "/plugins/community/online"
	DefaultCacheTTL        = 5 * time.Minute
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultLogLevel        = "warn"
)

// Environment keys that override the file.
const (
	EnvRawBaseURL      = "PANDORA_RAW_BASE_URL"
	EnvManifestBaseURL = "PANDORA_MANIFEST_BASE_URL"
	EnvCacheTTL        = "PANDORA_CACHE_TTL"
	EnvHTTPTimeout     = "PANDORA_HTTP_TIMEOUT"
	EnvLogLevel        = "PANDORA_LOG_LEVEL"
)

// EnvKeys lists every override key in template order.
var EnvKeys = []string{EnvRawBaseURL, EnvManifestBaseURL, EnvCacheTTL, EnvHTTPTimeout, EnvLogLevel}

// Config is the in-memory representation of ~/.pandora/pandora.yaml.
type Config struct {
	RawBaseURL      string   `yaml:"raw_base_url"`
	ManifestBaseURL string   `yaml:"manifest_base_url"`
	CacheTTL        Duration `yaml:"cache_ttl"`
	HTTPTimeout     Duration `yaml:"http_timeout"`
	LogLevel        string   `yaml:"log_level,omitempty"`
}

// Duration is a time.Duration stored as a Go duration string ("5m").
type Duration time.Duration

// D returns d as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// parseDuration accepts Go duration strings and bare seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := time.ParseDuration(s); err == nil {
		return v, nil
	}
	if v, err := time.ParseDuration(s + "s"); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("invalid duration %q", s)
}

// PandoraDir returns the absolute path to ~/.pandora/.
func PandoraDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".pandora"), nil
}

// ConfigPath returns the absolute path to ~/.pandora/pandora.yaml.
func ConfigPath() (string, error) {
	dir, err := PandoraDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pandora.yaml"), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		RawBaseURL:      DefaultRawBaseURL,
		ManifestBaseURL: DefaultManifestBaseURL,
		CacheTTL:        Duration(DefaultCacheTTL),
		HTTPTimeout:     Duration(DefaultHTTPTimeout),
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads ~/.pandora/pandora.yaml, fills unset fields with defaults and
// applies environment and dotenv overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config at path without overrides.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if strings.TrimSpace(c.RawBaseURL) == "" {
		c.RawBaseURL = def.RawBaseURL
	}
	if strings.TrimSpace(c.ManifestBaseURL) == "" {
		c.ManifestBaseURL = def.ManifestBaseURL
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = def.HTTPTimeout
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
	c.RawBaseURL = strings.TrimRight(c.RawBaseURL, "/")
	c.ManifestBaseURL = strings.TrimRight(c.ManifestBaseURL, "/")
}

func (c *Config) applyOverrides() error {
	vals, err := GetConfigValues(EnvKeys...)
	if err != nil {
		return err
	}
	if v := vals[EnvRawBaseURL]; v != "" {
		c.RawBaseURL = v
	}
	if v := vals[EnvManifestBaseURL]; v != "" {
		c.ManifestBaseURL = v
	}
	for key, dst := range map[string]*Duration{EnvCacheTTL: &c.CacheTTL, EnvHTTPTimeout: &c.HTTPTimeout} {
		v := vals[key]
		if v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = Duration(d)
	}
	if v := vals[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	c.fillDefaults()
	return nil
}

// Save marshals cfg and writes it to ~/.pandora/pandora.yaml, creating the
// directory when needed.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
