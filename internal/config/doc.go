// Package config loads the grabber configuration from TOML, applies defaults,
// normalizes and validates it, and persists GUI choices through fyne
// Preferences.
package config
