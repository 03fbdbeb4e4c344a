// Package config loads, normalizes, and validates skelreview configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the dataset
// location, the action class under review, review mode and key bindings, the
// external media binaries, and logging, so the CLI resolves everything in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical action labels, and clear validation errors.
package config
