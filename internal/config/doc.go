// Package config loads and validates application configuration.
//
// Configuration is layered: built-in defaults, then an optional TOML
// file, then REELSMITH_* environment variables, each layer overriding
// the one below. The loader subpackage reads the file and environment
// layers; the watcher subpackage notices file changes for live reload.
package config
