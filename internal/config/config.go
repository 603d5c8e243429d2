// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/workscript/workscript/internal/issue"
	"github.com/workscript/workscript/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "workscript"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix is the prefix for tool-level environment overrides.
	EnvPrefix = "WORKSCRIPT_"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the workscript configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ScriptsDir returns the directory for user-level workscript files.
// The path is ~/.workscript/scripts on all platforms.
func ScriptsDir() (string, error) {
	if scriptsDirOverride != "" {
		return scriptsDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".workscript", "scripts"), nil
}

// Load resolves the configuration: built-in defaults, then the config file
// (explicit path override, config dir, or current directory), then
// WORKSCRIPT_* environment variables on top.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("search_paths", defaults.SearchPaths)
	v.SetDefault("env_namespace", defaults.EnvNamespace)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.no_color", defaults.UI.NoColor)

	path, explicit, err := resolveConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			ctx := issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema")
			if explicit {
				ctx = ctx.WithSuggestion("Verify the --config path is correct")
			}
			return nil, ctx.Wrap(err).BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Fix the reported values and retry").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// resolveConfigFile picks the config file to read: the explicit override,
// else <config dir>/config.cue, else ./config.cue, else none.
func resolveConfigFile() (path string, explicit bool, err error) {
	if configFilePathOverride != "" {
		if !fileExists(configFilePathOverride) {
			return "", true, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFilePathOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", configFilePathOverride)).
				BuildError()
		}
		return configFilePathOverride, true, nil
	}

	cfgDir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}
	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, false, nil
	}

	localPath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localPath) {
		return localPath, false, nil
	}
	return "", false, nil
}

// loadCUEIntoViper parses and schema-validates a CUE config file, then
// merges the decoded map into viper so defaults survive and later env
// overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Concrete(false): every config field is optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	return v.MergeConfigMap(configMap)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
