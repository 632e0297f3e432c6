// Package config loads, normalizes, and validates VinoScan configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// VINOSCAN_API_KEY. The Config type centralizes every knob the CLI needs:
// the data directory, the storage backend and its quota, label-analysis
// connection settings, image compression bounds, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
