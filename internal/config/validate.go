package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atlanticdynamic/portalscripts/internal/scripting/engines"
)

// Validate checks every field and returns all problems joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Version == "" {
		c.Version = VersionLatest
	}
	if c.Version != VersionLatest {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnsupportedConfigVer, c.Version))
	}

	if err := c.Scripts.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the scripts section.
func (s *ScriptsConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: scripts.dir", ErrMissingRequiredField))
	}
	if _, err := engines.ParseType(s.Engine); err != nil {
		errs = append(errs, fmt.Errorf("%w: scripts.engine: %w", ErrInvalidValue, err))
	}
	if s.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: scripts.timeout must not be negative: %s", ErrInvalidValue, s.Timeout))
	}
	for i, name := range s.Preload {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("%w: scripts.preload[%d] is empty", ErrInvalidValue, i))
		}
	}

	return errors.Join(errs...)
}

// Validate checks the logging section.
func (l *LoggingConfig) Validate() error {
	var errs []error
	if !l.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w: logging.format %q", ErrInvalidValue, l.Format))
	}
	if !l.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, l.Level))
	}
	return errors.Join(errs...)
}

// EngineType returns the parsed engine. Call after Validate.
func (c *Config) EngineType() engines.Type {
	t, err := engines.ParseType(c.Scripts.Engine)
	if err != nil {
		return engines.TypeUnspecified
	}
	return t
}
