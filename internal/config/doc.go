// Package config loads, normalizes, and validates sprocket configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FFMPEG_PATH. The Config type centralizes every knob the CLI needs, from
// external binary locations to history database placement.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
