// Package config loads and validates the directory-path configuration every
// pipeline subcommand needs (spec §6.3): origin/support/cache/substrate/
// target directories, plus the ambient logging/metrics knobs. Modeled on
// the teacher's internal/config/config.go: YAML file, defaults,
// environment overrides, then validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config holds every directory path a pipeline stage reads from or writes
// to, plus ambient logging/metrics settings. CLI argument parsing (§6.3) is
// out of scope; this package owns path validation, the one in-scope part
// of configuration the CLI otherwise just forwards.
type Config struct {
	// Origin is where raw input files live: the Wikidata dump, OFF/EU/BCorp
	// CSVs, TCO/FTI YAMLs.
	Origin string `yaml:"origin"`
	// Support holds small auxiliary files feeding advisors: matches.yaml
	// is the only one read or written.
	Support string `yaml:"support"`
	// Cache is scratch space: the filtered Wikidata dump, the coagulator's
	// on-disk bucket store. Coagulate removes its store file at the start of
	// each run; the other stages overwrite the files they write.
	Cache string `yaml:"cache"`
	// Substrate is where condenser stages write, and coagulator/crystalizer
	// read from.
	Substrate string `yaml:"substrate"`
	// Target is where crystalizer writes the final vertex/edge collections.
	Target string `yaml:"target"`

	Workers     int    `yaml:"workers"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

const (
	envPrefix       = "TRANSPAER_"
	defaultLogLevel = "info"
)

// Load reads configFile (if non-empty), applies defaults and environment
// overrides, then validates the result.
func Load(configFile string) (*Config, error) {
	cfg := &Config{}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configFile, err)
		}
	}

	applyDefaults(cfg)
	applyEnvironmentOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

func applyEnvironmentOverrides(cfg *Config) {
	overrides := map[string]*string{
		envPrefix + "ORIGIN":       &cfg.Origin,
		envPrefix + "SUPPORT":      &cfg.Support,
		envPrefix + "CACHE":        &cfg.Cache,
		envPrefix + "SUBSTRATE":    &cfg.Substrate,
		envPrefix + "TARGET":       &cfg.Target,
		envPrefix + "LOG_LEVEL":    &cfg.LogLevel,
		envPrefix + "METRICS_ADDR": &cfg.MetricsAddr,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
	if v := os.Getenv(envPrefix + "WORKERS"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			cfg.Workers = n
		}
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: invalid positive integer %q", s)
	}
	return n, nil
}

// Validate checks that every required input path exists and every output
// path's parent directory is creatable (spec §6.3: "Configuration is
// validated before running: every required input path must exist; every
// output path's parent must be creatable").
func (c *Config) Validate() error {
	for _, d := range []struct{ name, path string }{
		{"origin", c.Origin},
		{"support", c.Support},
	} {
		if d.path == "" {
			return fmt.Errorf("config: %s path is required", d.name)
		}
		if _, err := os.Stat(d.path); err != nil {
			return fmt.Errorf("config: %s path %q does not exist: %w", d.name, d.path, err)
		}
	}

	for _, d := range []struct{ name, path string }{
		{"cache", c.Cache},
		{"substrate", c.Substrate},
		{"target", c.Target},
	} {
		if d.path == "" {
			return fmt.Errorf("config: %s path is required", d.name)
		}
		if err := ensureCreatable(filepath.Dir(d.path)); err != nil {
			return fmt.Errorf("config: %s path %q: %w", d.name, d.path, err)
		}
	}
	return nil
}

// ensureCreatable checks that dir either already exists or can be created,
// walking up to the first existing ancestor without creating anything.
func ensureCreatable(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return fmt.Errorf("%s is not creatable", dir)
	}
	return ensureCreatable(parent)
}

// PrepareCache wipes and recreates the cache directory (spec §9: "The store
// directory is wiped at stage start").
func (c *Config) PrepareCache() error {
	if err := os.RemoveAll(c.Cache); err != nil {
		return fmt.Errorf("config: wipe cache %s: %w", c.Cache, err)
	}
	if err := os.MkdirAll(c.Cache, 0o755); err != nil {
		return fmt.Errorf("config: create cache %s: %w", c.Cache, err)
	}
	return nil
}

// EnsureDir creates dir (and parents) if missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
