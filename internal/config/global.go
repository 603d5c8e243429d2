// SPDX-License-Identifier: MPL-2.0

package config

import "sync"

var (
	mu sync.Mutex

	cached *Config

	// configFilePathOverride is set from the --config flag.
	configFilePathOverride string

	// configDirOverride and scriptsDirOverride let tests bypass
	// os.UserHomeDir(), which does not reliably respect the HOME
	// environment variable on all platforms.
	configDirOverride  string
	scriptsDirOverride string
)

// Get returns the cached configuration, loading it on first use.
// A load failure yields the defaults so callers always get a usable value;
// the error is still returned for reporting.
func Get() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if cached != nil {
		return cached, nil
	}
	cfg, err := Load()
	if err != nil {
		return DefaultConfig(), err
	}
	cached = cfg
	return cached, nil
}

// SetConfigFilePathOverride points Load at a specific config file and
// drops the cache.
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = path
	cached = nil
}

// SetConfigDirOverride sets a custom config directory path, for tests.
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	cached = nil
}

// SetScriptsDirOverride sets a custom user scripts directory, for tests.
func SetScriptsDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	scriptsDirOverride = dir
	cached = nil
}

// Reset clears all overrides and the cache. Call from test cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = ""
	configDirOverride = ""
	scriptsDirOverride = ""
	cached = nil
}
