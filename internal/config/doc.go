// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, HANZI_ environment variables and
// command-line flags. It provides type-safe access to settings while keeping
// configuration details separate from the review logic.
package config
