// SPDX-License-Identifier: MPL-2.0

// Package config loads the workscript tool configuration: a CUE config
// file (schema-validated, loaded through viper so defaults merge cleanly)
// with WORKSCRIPT_* environment variable overrides applied on top.
package config
