// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workscript/workscript/pkg/types"
)

// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
var ErrInvalidSearchPath = errors.New("invalid search path")

type (
	// Config is the loaded tool configuration.
	Config struct {
		// SearchPaths lists extra directories scanned for workscript files,
		// after the current directory and the user scripts directory.
		SearchPaths []string `mapstructure:"search_paths" env:"SEARCH_PATHS" envSeparator:":"`

		// EnvNamespace is the prefix for reading declared inputs from
		// environment variables.
		EnvNamespace string `mapstructure:"env_namespace" env:"ENV_NAMESPACE"`

		// UI groups terminal output preferences.
		UI UIConfig `mapstructure:"ui" envPrefix:"UI_"`
	}

	// UIConfig groups terminal output preferences.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose" env:"VERBOSE"`
		NoColor bool `mapstructure:"no_color" env:"NO_COLOR"`
	}

	// InvalidSearchPathError is returned when a configured search path is
	// empty or whitespace-only.
	InvalidSearchPathError struct {
		Index int
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("invalid search path at index %d: %q", e.Index, e.Value)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// DefaultConfig returns the built-in defaults before any file or
// environment override.
func DefaultConfig() *Config {
	return &Config{
		SearchPaths:  nil,
		EnvNamespace: string(types.DefaultEnvNamespace),
		UI:           UIConfig{Verbose: false, NoColor: false},
	}
}

// Validate applies the constraints CUE cannot check once overrides have
// been merged.
func (c *Config) Validate() error {
	var errs []error
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, &InvalidSearchPathError{Index: i, Value: p})
		}
	}
	if err := types.EnvNamespace(c.EnvNamespace).Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
