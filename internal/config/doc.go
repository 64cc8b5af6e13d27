// Package config loads, normalizes, and validates mediakit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads .env files and honours MEDIAKIT_*
// environment overrides such as MEDIAKIT_TELEGRAM_TOKEN. The Config type
// centralizes every knob the bot and CLI need, so work directories, tool
// binaries and the translation endpoint are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
