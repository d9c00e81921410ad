// Package config loads, normalizes, and validates autosort configuration data.
//
// It supplies repository defaults (including the built-in category tree),
// expands user paths (including tilde shortcuts), and reads TOML files. The
// Config type centralizes every knob the CLI needs: state and log
// directories, organize and watch settings, and the ordered classification
// rules the classifier consumes.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lower-cased extensions, and clear validation errors.
package config
