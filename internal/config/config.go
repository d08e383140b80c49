// Package config loads the portalscripts runtime configuration from a TOML
// file, environment variables, and built-in defaults, in that order of
// increasing precedence for the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

const (
	// VersionLatest is the newest config schema version.
	VersionLatest = "v1"

	// VersionUnknown is used when the version is not specified.
	VersionUnknown = "unknown"

	// EnvPrefix is prepended to every environment override.
	EnvPrefix = "PORTALSCRIPTS_"

	DefaultScriptsDir = "scripts"
	DefaultEngine     = "lua"
	DefaultTimeout    = Duration(5 * time.Second)
)

// Config is the top-level configuration.
type Config struct {
	Version string        `toml:"version" env:"VERSION"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`

	Telemetry TelemetryConfig `toml:"telemetry"`
}

// ScriptsConfig controls where portal scripts come from and how they run.
type ScriptsConfig struct {
	// Dir is the root directory; scripts live under Dir/portal/.
	Dir    string `toml:"dir"    env:"SCRIPTS_DIR"`
	Engine string `toml:"engine" env:"SCRIPTS_ENGINE"`
	// Timeout bounds a single enter call. Zero disables the bound.
	Timeout Duration `toml:"timeout" env:"SCRIPTS_TIMEOUT"`
	// Preload names scripts to resolve when the reloader starts.
	Preload []string `toml:"preload" env:"SCRIPTS_PRELOAD"`
}

// Default returns a config with every field at its default value.
func Default() *Config {
	return &Config{
		Version: VersionLatest,
		Scripts: ScriptsConfig{
			Dir:     DefaultScriptsDir,
			Engine:  DefaultEngine,
			Timeout: DefaultTimeout,
		},
		Logging: LoggingConfig{
			Format: LogFormatText,
			Level:  LogLevelInfo,
			Output: "stderr",
		},
	}
}

// NewConfig loads configuration from a TOML file path. An empty path loads
// only defaults and environment overrides. A relative scripts.dir is resolved
// against the directory holding the file.
func NewConfig(path string) (*Config, error) {
	if path == "" {
		return finish(Default())
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if cfg.Scripts.Dir != "" && !filepath.IsAbs(cfg.Scripts.Dir) && !hasEnvRef(cfg.Scripts.Dir) {
		cfg.Scripts.Dir = filepath.Join(filepath.Dir(path), cfg.Scripts.Dir)
	}
	return finish(cfg)
}

// NewConfigFromBytes loads configuration from TOML bytes.
func NewConfigFromBytes(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func decode(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrFailedToLoadConfig, err)
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToValidateConfig, err)
	}
	return cfg, nil
}

func hasEnvRef(s string) bool {
	return envRef.MatchString(s)
}
