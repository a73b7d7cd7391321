// Package config loads, validates, and normalizes the TOML configuration
// shared by every inlay command. All path fields are expanded (~ and
// relative segments) before the rest of the program sees them.
package config
