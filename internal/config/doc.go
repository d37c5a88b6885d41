// Package config loads and merges scry configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SCRY_PROVIDER, SCRY_MODEL, SCRY_FORMAT, ...)
//  3. Config file ($XDG_CONFIG_HOME/scry/config.yaml)
//  4. Built-in defaults
package config
