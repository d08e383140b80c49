package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// envRef matches ${NAME} and ${NAME:fallback}. The second group records
// whether a fallback was written, so ${NAME:} can expand to "".
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// ExpandEnvVars replaces every ${NAME} and ${NAME:fallback} reference in
// input. A reference to an unset variable without a fallback is left in place
// and reported in the returned error.
func ExpandEnvVars(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	var missing []error
	out := envRef.ReplaceAllStringFunc(input, func(ref string) string {
		parts := envRef.FindStringSubmatch(ref)
		name, hasFallback, fallback := parts[1], parts[2] == ":", parts[3]

		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasFallback {
			return fallback
		}
		missing = append(missing, fmt.Errorf("environment variable not defined: %s", name))
		return ref
	})

	return out, errors.Join(missing...)
}

// expandPaths runs ExpandEnvVars over the path-like fields of cfg.
func (c *Config) expandPaths() error {
	var errs []error
	for _, field := range []*string{
		&c.Scripts.Dir,
		&c.Logging.Output,
		&c.Telemetry.MetricsFile,
		&c.Telemetry.TraceFile,
		&c.Telemetry.OTLPEndpoint,
	} {
		expanded, err := ExpandEnvVars(*field)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*field = expanded
	}
	return errors.Join(errs...)
}
